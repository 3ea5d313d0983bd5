// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// CatalogConfig holds settings for the catalog store.
type CatalogConfig struct {
	// DBPath is the path of the SQLite catalog database
	// (e.g. "catalog/bibliograph.db").
	DBPath string `json:"db_path" yaml:"db_path"`
}

// RetrievalConfig holds settings for the retrieval engine.
type RetrievalConfig struct {
	// MaxConcurrency bounds the per-author fan-out (default 8).
	MaxConcurrency int `json:"max_concurrency" yaml:"max_concurrency"`

	// Institutions is the default institution-id set used when the caller
	// supplies none on the command line.
	Institutions []string `json:"institutions,omitempty" yaml:"institutions,omitempty"`
}
