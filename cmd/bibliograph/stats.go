// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/akudrin/bibliograph/internal/catalog"
	"github.com/akudrin/bibliograph/pkg/types"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print per-table record counts for the catalog",
	RunE:  runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	store, err := catalog.Open(types.CatalogConfig{DBPath: dbPath(cmd)})
	if err != nil {
		return err
	}
	defer store.Close()

	stats, err := store.Stats(context.Background())
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "institutions: %d\n", stats.Institutions)
	fmt.Fprintf(w, "authors:      %d\n", stats.Authors)
	fmt.Fprintf(w, "documents:    %d\n", stats.Documents)
	fmt.Fprintf(w, "authorship:   %d\n", stats.Authorship)
	return nil
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
