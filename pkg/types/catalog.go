// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the bibliograph catalog
// and retrieval pipeline.
package types

// Document is a publication record keyed by its Scopus identifier. The
// fields beyond ScopusID and PubYear are bibliographic metadata carried for
// reporting; the retrieval engine treats them as opaque.
type Document struct {
	// ScopusID is the unique publication identifier.
	ScopusID string `json:"scopus_id" yaml:"scopus_id"`

	// EID is the Scopus electronic identifier.
	EID string `json:"eid,omitempty" yaml:"eid,omitempty"`

	// MainTitle is the primary title of the publication.
	MainTitle string `json:"main_title" yaml:"main_title"`

	// PubYear is the calendar year of publication.
	PubYear int `json:"pub_year" yaml:"pub_year"`

	// DocumentType classifies the record (e.g. "Article", "Review").
	DocumentType string `json:"document_type,omitempty" yaml:"document_type,omitempty"`

	// PublicationStage is the lifecycle stage reported upstream (e.g. "final").
	PublicationStage string `json:"publication_stage,omitempty" yaml:"publication_stage,omitempty"`

	// DOI is the digital object identifier, when known.
	DOI string `json:"doi,omitempty" yaml:"doi,omitempty"`

	// SourceTitle is the journal or conference the document appeared in.
	SourceTitle string `json:"source_title,omitempty" yaml:"source_title,omitempty"`

	// TotalAuthors is the author count reported upstream.
	TotalAuthors int `json:"total_authors,omitempty" yaml:"total_authors,omitempty"`

	// CitationsCount is the number of citations the document has received.
	CitationsCount int `json:"citations_count,omitempty" yaml:"citations_count,omitempty"`

	// ReferencesCount is the number of references the document cites.
	ReferencesCount int `json:"references_count,omitempty" yaml:"references_count,omitempty"`

	// FreeToRead reports open-access availability.
	FreeToRead bool `json:"free_to_read,omitempty" yaml:"free_to_read,omitempty"`
}

// Author is a person entity with exactly one current institutional
// affiliation. Affiliation is evaluated as of the stored snapshot, not as of
// any particular publication date.
type Author struct {
	// ID is the unique author identifier.
	ID string `json:"id" yaml:"id"`

	// EID is the Scopus electronic identifier.
	EID string `json:"eid,omitempty" yaml:"eid,omitempty"`

	// ORCID is the author's ORCID, when known.
	ORCID string `json:"orc_id,omitempty" yaml:"orc_id,omitempty"`

	// GivenName and FamilyName are the preferred name parts.
	GivenName  string `json:"given_name,omitempty" yaml:"given_name,omitempty"`
	FamilyName string `json:"family_name,omitempty" yaml:"family_name,omitempty"`

	// FullName is the preferred display name.
	FullName string `json:"full_name,omitempty" yaml:"full_name,omitempty"`

	// AffiliatedInstitutionID names the author's single current affiliation.
	AffiliatedInstitutionID string `json:"affiliated_institution_id" yaml:"affiliated_institution_id"`

	// HIndex is the author's h-index reported upstream.
	HIndex int `json:"h_index,omitempty" yaml:"h_index,omitempty"`

	// CitedByCount is the total citation count reported upstream.
	CitedByCount int `json:"cited_by_count,omitempty" yaml:"cited_by_count,omitempty"`
}

// Institution is an affiliated organization. IDs are opaque upstream keys
// (e.g. "100459484").
type Institution struct {
	ID      string `json:"id" yaml:"id"`
	Name    string `json:"name" yaml:"name"`
	Country string `json:"country,omitempty" yaml:"country,omitempty"`
	City    string `json:"city,omitempty" yaml:"city,omitempty"`
}

// Authorship is a many-to-many edge linking a document to one of its
// authors. The (DocumentID, AuthorID) pair is unique; the edge carries no
// other attributes.
type Authorship struct {
	DocumentID string `json:"document_id" yaml:"document_id"`
	AuthorID   string `json:"author_id" yaml:"author_id"`
}

// CatalogSnapshot bundles catalog records for loading and for test
// fixtures. Snapshots are produced by the external harvesting pipeline.
type CatalogSnapshot struct {
	Institutions []Institution `json:"institutions,omitempty" yaml:"institutions,omitempty"`
	Authors      []Author      `json:"authors,omitempty" yaml:"authors,omitempty"`
	Documents    []Document    `json:"documents,omitempty" yaml:"documents,omitempty"`
	Authorship   []Authorship  `json:"authorship,omitempty" yaml:"authorship,omitempty"`
}
