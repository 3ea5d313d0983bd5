// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/akudrin/bibliograph/internal/catalog"
	"github.com/akudrin/bibliograph/pkg/types"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest <snapshot.yaml>",
	Short: "Load a catalog snapshot into the SQLite catalog",
	Long: `Ingest reads a YAML catalog snapshot (institutions, authors, documents,
authorship edges) and upserts it into the catalog database. Existing
institutions, authors, and documents are updated in place; authorship edges
are inserted once and never duplicated. The whole snapshot is applied in a
single transaction.`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func runIngest(cmd *cobra.Command, args []string) error {
	snap, err := catalog.LoadSnapshot(args[0])
	if err != nil {
		return err
	}

	store, err := catalog.Open(types.CatalogConfig{DBPath: dbPath(cmd)})
	if err != nil {
		return err
	}
	defer store.Close()

	_, err = store.Ingest(context.Background(), snap, cmd.OutOrStdout())
	return err
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}
