// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the bibliograph CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the bibliograph CLI.
var rootCmd = &cobra.Command{
	Use:   "bibliograph",
	Short: "Affiliation-filtered retrieval over a publication catalog",
	Long: `bibliograph answers the reporting question "which documents did my
institutions publish in year Y". It keeps a local SQLite catalog of
documents, authors, and authorship edges, and retrieves the distinct set of
documents attributed to at least one author affiliated with a requested set
of institutions.

The catalog is populated from snapshot files produced by an external
harvesting pipeline; see the ingest subcommand.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./bibliograph.yaml or ~/.config/bibliograph/config.yaml)")
	rootCmd.PersistentFlags().String("db", "", "path of the SQLite catalog database (overrides config)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("bibliograph")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "bibliograph"))
		}
	}

	viper.SetDefault("catalog.db_path", filepath.Join("catalog", "bibliograph.db"))
	viper.SetDefault("retrieval.max_concurrency", 8)

	viper.SetEnvPrefix("BIBLIOGRAPH")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// dbPath resolves the catalog database location: the --db flag wins over the
// config file.
func dbPath(cmd *cobra.Command) string {
	if path, _ := cmd.Flags().GetString("db"); path != "" {
		return path
	}
	return viper.GetString("catalog.db_path")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
