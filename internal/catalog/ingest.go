// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/akudrin/bibliograph/pkg/types"
)

// IngestSummary holds counts from a snapshot load.
type IngestSummary struct {
	Institutions int
	Authors      int
	Documents    int
	Edges        int
}

// LoadSnapshot reads a YAML catalog snapshot from path.
func LoadSnapshot(path string) (*types.CatalogSnapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot %s: %w", path, err)
	}
	var snap types.CatalogSnapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parsing snapshot %s: %w", path, err)
	}
	return &snap, nil
}

// Ingest upserts a snapshot into the catalog inside one transaction.
// Institutions, authors, and documents update their attributes on conflict;
// authorship edges are insert-or-ignore since the pair is the whole record.
// Progress lines go to w.
func (s *Store) Ingest(ctx context.Context, snap *types.CatalogSnapshot, w io.Writer) (IngestSummary, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return IngestSummary{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, inst := range snap.Institutions {
		if inst.ID == "" || inst.Name == "" {
			return IngestSummary{}, fmt.Errorf("institution requires id and name, got %+v", inst)
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO institutions (id, name, country, city)
			 VALUES (?, ?, ?, ?)
			 ON CONFLICT(id) DO UPDATE SET
				name=excluded.name, country=excluded.country, city=excluded.city`,
			inst.ID, inst.Name, inst.Country, inst.City,
		)
		if err != nil {
			return IngestSummary{}, fmt.Errorf("upserting institution %s: %w", inst.ID, err)
		}
	}

	for _, a := range snap.Authors {
		if a.ID == "" || a.AffiliatedInstitutionID == "" {
			return IngestSummary{}, fmt.Errorf("author requires id and affiliated_institution_id, got %+v", a)
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO authors (id, eid, orc_id, given_name, family_name, full_name,
				affiliated_institution_id, h_index, cited_by_count)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
			 ON CONFLICT(id) DO UPDATE SET
				eid=excluded.eid, orc_id=excluded.orc_id,
				given_name=excluded.given_name, family_name=excluded.family_name,
				full_name=excluded.full_name,
				affiliated_institution_id=excluded.affiliated_institution_id,
				h_index=excluded.h_index, cited_by_count=excluded.cited_by_count`,
			a.ID, a.EID, a.ORCID, a.GivenName, a.FamilyName, a.FullName,
			a.AffiliatedInstitutionID, a.HIndex, a.CitedByCount,
		)
		if err != nil {
			return IngestSummary{}, fmt.Errorf("upserting author %s: %w", a.ID, err)
		}
	}

	for _, d := range snap.Documents {
		if d.ScopusID == "" || d.MainTitle == "" {
			return IngestSummary{}, fmt.Errorf("document requires scopus_id and main_title, got %+v", d)
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO documents (scopus_id, eid, main_title, pub_year, document_type,
				publication_stage, doi, source_title, total_authors,
				citations_count, references_count, free_to_read)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			 ON CONFLICT(scopus_id) DO UPDATE SET
				eid=excluded.eid, main_title=excluded.main_title,
				pub_year=excluded.pub_year, document_type=excluded.document_type,
				publication_stage=excluded.publication_stage, doi=excluded.doi,
				source_title=excluded.source_title, total_authors=excluded.total_authors,
				citations_count=excluded.citations_count,
				references_count=excluded.references_count,
				free_to_read=excluded.free_to_read`,
			d.ScopusID, d.EID, d.MainTitle, d.PubYear, d.DocumentType,
			d.PublicationStage, d.DOI, d.SourceTitle, d.TotalAuthors,
			d.CitationsCount, d.ReferencesCount, d.FreeToRead,
		)
		if err != nil {
			return IngestSummary{}, fmt.Errorf("upserting document %s: %w", d.ScopusID, err)
		}
	}

	for _, edge := range snap.Authorship {
		if edge.DocumentID == "" || edge.AuthorID == "" {
			return IngestSummary{}, fmt.Errorf("authorship edge requires document_id and author_id, got %+v", edge)
		}
		_, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO authorship (document_id, author_id) VALUES (?, ?)`,
			edge.DocumentID, edge.AuthorID,
		)
		if err != nil {
			return IngestSummary{}, fmt.Errorf("inserting authorship %s/%s: %w", edge.DocumentID, edge.AuthorID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return IngestSummary{}, fmt.Errorf("committing snapshot: %w", err)
	}

	summary := IngestSummary{
		Institutions: len(snap.Institutions),
		Authors:      len(snap.Authors),
		Documents:    len(snap.Documents),
		Edges:        len(snap.Authorship),
	}
	fmt.Fprintf(w, "institutions: %d, authors: %d, documents: %d, authorship edges: %d\n",
		summary.Institutions, summary.Authors, summary.Documents, summary.Edges)
	return summary, nil
}
