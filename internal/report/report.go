// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report formats retrieval results for humans and machines. The
// engine returns documents in no particular order; callers wanting a stable
// listing sort here first.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/akudrin/bibliograph/pkg/types"
)

// SortByID orders documents by Scopus identifier, in place.
func SortByID(docs []types.Document) {
	sort.Slice(docs, func(i, j int) bool {
		return docs[i].ScopusID < docs[j].ScopusID
	})
}

// FormatTable writes documents as a human-readable table to w.
func FormatTable(w io.Writer, docs []types.Document) {
	if len(docs) == 0 {
		fmt.Fprintln(w, "No documents found.")
		return
	}

	fmt.Fprintf(w, "%-14s  %-60s  %-4s  %-10s  %s\n",
		"Scopus ID", "Title", "Year", "Type", "DOI")
	fmt.Fprintln(w, strings.Repeat("-", 110))

	for _, d := range docs {
		title := d.MainTitle
		if len(title) > 60 {
			title = title[:57] + "..."
		}
		docType := d.DocumentType
		if len(docType) > 10 {
			docType = docType[:7] + "..."
		}
		fmt.Fprintf(w, "%-14s  %-60s  %-4d  %-10s  %s\n",
			d.ScopusID, title, d.PubYear, docType, d.DOI)
	}

	fmt.Fprintf(w, "\n%d documents\n", len(docs))
}

// FormatJSON writes documents as indented JSON to w.
func FormatJSON(w io.Writer, docs []types.Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(docs)
}

// FormatYAML writes documents as YAML to w.
func FormatYAML(w io.Writer, docs []types.Document) error {
	data, err := yaml.Marshal(docs)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	_, err = w.Write(data)
	return err
}
