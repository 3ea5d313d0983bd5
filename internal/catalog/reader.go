// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/akudrin/bibliograph/internal/retrieval"
	"github.com/akudrin/bibliograph/pkg/types"
)

// Store satisfies the engine's read contract.
var _ retrieval.Reader = (*Store)(nil)

var authorColumns = []string{
	"id", "eid", "orc_id", "given_name", "family_name", "full_name",
	"affiliated_institution_id", "h_index", "cited_by_count",
}

var documentColumns = []string{
	"scopus_id", "eid", "main_title", "pub_year", "document_type",
	"publication_stage", "doi", "source_title", "total_authors",
	"citations_count", "references_count", "free_to_read",
}

// AuthorsByInstitution returns all authors whose affiliated institution is
// in institutionIDs. Unknown institutions contribute nothing; the result is
// restartable by re-invoking the query.
func (s *Store) AuthorsByInstitution(ctx context.Context, institutionIDs []string) ([]types.Author, error) {
	if len(institutionIDs) == 0 {
		return []types.Author{}, nil
	}

	// sq.Eq with a slice renders the IN-membership predicate.
	query, args, err := sq.Select(authorColumns...).
		From("authors").
		Where(sq.Eq{"affiliated_institution_id": institutionIDs}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building authors query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying authors by institution: %w", err)
	}
	defer rows.Close()

	return scanAuthors(rows)
}

// DocumentIDsByAuthor returns the ids of every document the author
// contributed to. Unknown authors yield an empty slice.
func (s *Store) DocumentIDsByAuthor(ctx context.Context, authorID string) ([]string, error) {
	query, args, err := sq.Select("document_id").
		From("authorship").
		Where(sq.Eq{"author_id": authorID}).
		OrderBy("document_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building authorship query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying authorship: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning authorship row: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// DocumentByID returns the document, or nil when absent.
func (s *Store) DocumentByID(ctx context.Context, documentID string) (*types.Document, error) {
	query, args, err := sq.Select(documentColumns...).
		From("documents").
		Where(sq.Eq{"scopus_id": documentID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building document query: %w", err)
	}

	doc, err := scanDocument(s.db.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying document %s: %w", documentID, err)
	}
	return doc, nil
}

// DocumentYear returns the publication year of a document. The bool reports
// presence; an unknown id is a normal outcome, not an error.
func (s *Store) DocumentYear(ctx context.Context, documentID string) (int, bool, error) {
	query, args, err := sq.Select("pub_year").
		From("documents").
		Where(sq.Eq{"scopus_id": documentID}).
		ToSql()
	if err != nil {
		return 0, false, fmt.Errorf("building year query: %w", err)
	}

	var year int
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&year)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("querying year of %s: %w", documentID, err)
	}
	return year, true, nil
}

// InstitutionByID returns the institution record, or nil when absent.
func (s *Store) InstitutionByID(ctx context.Context, institutionID string) (*types.Institution, error) {
	query, args, err := sq.Select("id", "name", "country", "city").
		From("institutions").
		Where(sq.Eq{"id": institutionID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building institution query: %w", err)
	}

	var (
		inst          types.Institution
		country, city sql.NullString
	)
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&inst.ID, &inst.Name, &country, &city)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying institution %s: %w", institutionID, err)
	}
	inst.Country = country.String
	inst.City = city.String
	return &inst, nil
}

func scanAuthors(rows *sql.Rows) ([]types.Author, error) {
	authors := []types.Author{}
	for rows.Next() {
		var (
			a                                          types.Author
			eid, orcID, givenName, familyName, fullName sql.NullString
			hIndex, citedBy                             sql.NullInt64
		)
		if err := rows.Scan(
			&a.ID, &eid, &orcID, &givenName, &familyName, &fullName,
			&a.AffiliatedInstitutionID, &hIndex, &citedBy,
		); err != nil {
			return nil, fmt.Errorf("scanning author row: %w", err)
		}
		a.EID = eid.String
		a.ORCID = orcID.String
		a.GivenName = givenName.String
		a.FamilyName = familyName.String
		a.FullName = fullName.String
		a.HIndex = int(hIndex.Int64)
		a.CitedByCount = int(citedBy.Int64)
		authors = append(authors, a)
	}
	return authors, rows.Err()
}

func scanDocument(row *sql.Row) (*types.Document, error) {
	var (
		d                                       types.Document
		eid, docType, stage, doi, sourceTitle   sql.NullString
		totalAuthors, citations, references     sql.NullInt64
		freeToRead                              sql.NullBool
	)
	if err := row.Scan(
		&d.ScopusID, &eid, &d.MainTitle, &d.PubYear, &docType,
		&stage, &doi, &sourceTitle, &totalAuthors,
		&citations, &references, &freeToRead,
	); err != nil {
		return nil, err
	}
	d.EID = eid.String
	d.DocumentType = docType.String
	d.PublicationStage = stage.String
	d.DOI = doi.String
	d.SourceTitle = sourceTitle.String
	d.TotalAuthors = int(totalAuthors.Int64)
	d.CitationsCount = int(citations.Int64)
	d.ReferencesCount = int(references.Int64)
	d.FreeToRead = freeToRead.Bool
	return &d, nil
}
