// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/akudrin/bibliograph/internal/catalog"
	"github.com/akudrin/bibliograph/internal/report"
	"github.com/akudrin/bibliograph/internal/retrieval"
	"github.com/akudrin/bibliograph/pkg/types"
)

var retrieveCmd = &cobra.Command{
	Use:   "retrieve",
	Short: "Retrieve the distinct documents a set of institutions published in a year",
	Long: `Retrieve joins documents to authors through the authorship relation,
keeps documents published in the requested year by at least one author
affiliated with any of the requested institutions, and returns each
qualifying document exactly once.

Institutions default to the retrieval.institutions list in the config file
when no --institution flag is given.`,
	RunE: runRetrieve,
}

func runRetrieve(cmd *cobra.Command, args []string) error {
	if !cmd.Flags().Changed("year") {
		return fmt.Errorf("--year is required")
	}
	year, _ := cmd.Flags().GetInt("year")

	institutions, _ := cmd.Flags().GetStringSlice("institution")
	if len(institutions) == 0 {
		institutions = viper.GetStringSlice("retrieval.institutions")
	}

	store, err := catalog.Open(types.CatalogConfig{DBPath: dbPath(cmd)})
	if err != nil {
		return err
	}
	defer store.Close()

	engine := retrieval.NewEngine(store, types.RetrievalConfig{
		MaxConcurrency: viper.GetInt("retrieval.max_concurrency"),
	})

	docs, err := engine.Retrieve(context.Background(), institutions, year)
	if err != nil {
		return err
	}
	report.SortByID(docs)

	out := cmd.OutOrStdout()
	if outPath, _ := cmd.Flags().GetString("out"); outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	format, _ := cmd.Flags().GetString("format")
	return writeDocuments(out, docs, format)
}

func writeDocuments(w io.Writer, docs []types.Document, format string) error {
	switch format {
	case "table", "":
		report.FormatTable(w, docs)
		return nil
	case "json":
		return report.FormatJSON(w, docs)
	case "yaml":
		return report.FormatYAML(w, docs)
	default:
		return fmt.Errorf("unsupported format %q: use table, json, or yaml", format)
	}
}

func init() {
	retrieveCmd.Flags().StringSlice("institution", nil, "institution id to include (repeatable)")
	retrieveCmd.Flags().Int("year", 0, "publication year to filter on (required)")
	retrieveCmd.Flags().String("format", "table", "output format: table, json, or yaml")
	retrieveCmd.Flags().String("out", "", "write output to a file instead of stdout")

	rootCmd.AddCommand(retrieveCmd)
}
