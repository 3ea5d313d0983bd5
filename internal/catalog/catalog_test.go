// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/akudrin/bibliograph/internal/retrieval"
	"github.com/akudrin/bibliograph/pkg/types"
)

// --- test helpers ---

func testStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(types.CatalogConfig{
		DBPath: filepath.Join(t.TempDir(), "catalog", "bibliograph.db"),
	})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func ingest(t *testing.T, store *Store, snap *types.CatalogSnapshot) {
	t.Helper()
	var buf bytes.Buffer
	if _, err := store.Ingest(context.Background(), snap, &buf); err != nil {
		t.Fatal(err)
	}
}

// testSnapshot is the concrete scenario from the OmSTU reporting fixture:
// D1 (2020) by A1 (inst 100459484) and A2 (inst 999999999); D2 (2019) by A1.
func testSnapshot() *types.CatalogSnapshot {
	return &types.CatalogSnapshot{
		Institutions: []types.Institution{
			{ID: "100459484", Name: "Omsk State Technical University", Country: "Russia", City: "Omsk"},
			{ID: "999999999", Name: "Elsewhere University"},
		},
		Authors: []types.Author{
			{ID: "A1", FullName: "Ivanov I.I.", AffiliatedInstitutionID: "100459484"},
			{ID: "A2", FullName: "Petrov P.P.", AffiliatedInstitutionID: "999999999"},
		},
		Documents: []types.Document{
			{ScopusID: "D1", MainTitle: "Paper one", PubYear: 2020, DOI: "10.1/d1"},
			{ScopusID: "D2", MainTitle: "Paper two", PubYear: 2019},
		},
		Authorship: []types.Authorship{
			{DocumentID: "D1", AuthorID: "A1"},
			{DocumentID: "D1", AuthorID: "A2"},
			{DocumentID: "D2", AuthorID: "A1"},
		},
	}
}

// --- read primitives ---

func TestAuthorsByInstitution(t *testing.T) {
	store := testStore(t)
	ingest(t, store, testSnapshot())
	ctx := context.Background()

	authors, err := store.AuthorsByInstitution(ctx, []string{"100459484"})
	if err != nil {
		t.Fatal(err)
	}
	if len(authors) != 1 || authors[0].ID != "A1" {
		t.Fatalf("expected [A1], got %+v", authors)
	}

	// The set form is an IN-membership test, not equality.
	authors, err = store.AuthorsByInstitution(ctx, []string{"100459484", "999999999"})
	if err != nil {
		t.Fatal(err)
	}
	if len(authors) != 2 {
		t.Fatalf("expected 2 authors, got %+v", authors)
	}

	authors, err = store.AuthorsByInstitution(ctx, []string{"no-such-institution"})
	if err != nil {
		t.Fatal(err)
	}
	if len(authors) != 0 {
		t.Fatalf("unknown institution must yield an empty slice, got %+v", authors)
	}
}

func TestDocumentIDsByAuthor(t *testing.T) {
	store := testStore(t)
	ingest(t, store, testSnapshot())
	ctx := context.Background()

	ids, err := store.DocumentIDsByAuthor(ctx, "A1")
	if err != nil {
		t.Fatal(err)
	}
	sort.Strings(ids)
	if len(ids) != 2 || ids[0] != "D1" || ids[1] != "D2" {
		t.Fatalf("expected [D1 D2], got %v", ids)
	}

	ids, err = store.DocumentIDsByAuthor(ctx, "nobody")
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 0 {
		t.Fatalf("unknown author must yield an empty slice, got %v", ids)
	}
}

func TestDocumentByID(t *testing.T) {
	store := testStore(t)
	ingest(t, store, testSnapshot())
	ctx := context.Background()

	doc, err := store.DocumentByID(ctx, "D1")
	if err != nil {
		t.Fatal(err)
	}
	if doc == nil || doc.MainTitle != "Paper one" || doc.PubYear != 2020 || doc.DOI != "10.1/d1" {
		t.Fatalf("unexpected document: %+v", doc)
	}

	doc, err = store.DocumentByID(ctx, "missing")
	if err != nil {
		t.Fatal(err)
	}
	if doc != nil {
		t.Fatalf("absent document must be nil, not %+v", doc)
	}
}

func TestDocumentYear(t *testing.T) {
	store := testStore(t)
	ingest(t, store, testSnapshot())
	ctx := context.Background()

	year, ok, err := store.DocumentYear(ctx, "D2")
	if err != nil {
		t.Fatal(err)
	}
	if !ok || year != 2019 {
		t.Fatalf("expected (2019, true), got (%d, %v)", year, ok)
	}

	_, ok, err = store.DocumentYear(ctx, "missing")
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("absent document must report ok=false")
	}
}

func TestInstitutionByID(t *testing.T) {
	store := testStore(t)
	ingest(t, store, testSnapshot())
	ctx := context.Background()

	inst, err := store.InstitutionByID(ctx, "100459484")
	if err != nil {
		t.Fatal(err)
	}
	if inst == nil || inst.City != "Omsk" {
		t.Fatalf("unexpected institution: %+v", inst)
	}

	inst, err = store.InstitutionByID(ctx, "missing")
	if err != nil {
		t.Fatal(err)
	}
	if inst != nil {
		t.Fatalf("absent institution must be nil, not %+v", inst)
	}
}

// --- ingestion ---

func TestIngest_UpsertSemantics(t *testing.T) {
	store := testStore(t)
	ingest(t, store, testSnapshot())

	// Re-ingesting with an updated title must overwrite, not duplicate.
	snap := testSnapshot()
	snap.Documents[0].MainTitle = "Paper one, revised"
	ingest(t, store, snap)

	stats, err := store.Stats(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if stats.Documents != 2 || stats.Authors != 2 || stats.Authorship != 3 {
		t.Fatalf("unexpected stats after re-ingest: %+v", stats)
	}

	doc, err := store.DocumentByID(context.Background(), "D1")
	if err != nil {
		t.Fatal(err)
	}
	if doc.MainTitle != "Paper one, revised" {
		t.Fatalf("expected updated title, got %q", doc.MainTitle)
	}
}

func TestIngest_RejectsIncompleteRecords(t *testing.T) {
	store := testStore(t)
	var buf bytes.Buffer

	_, err := store.Ingest(context.Background(), &types.CatalogSnapshot{
		Documents: []types.Document{{ScopusID: "", MainTitle: "untitled"}},
	}, &buf)
	if err == nil {
		t.Fatal("expected an error for a document without scopus_id")
	}

	// Nothing from the failed snapshot may be visible.
	stats, err := store.Stats(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if stats.Documents != 0 {
		t.Fatalf("failed ingest must leave the catalog empty, got %+v", stats)
	}
}

func TestIngest_DanglingEdgeAccepted(t *testing.T) {
	store := testStore(t)

	// An edge whose author was never stored (or was removed by a later
	// harvest) is a valid catalog state.
	ingest(t, store, &types.CatalogSnapshot{
		Documents:  []types.Document{{ScopusID: "D9", MainTitle: "orphan", PubYear: 2020}},
		Authorship: []types.Authorship{{DocumentID: "D9", AuthorID: "A5"}},
	})

	ids, err := store.DocumentIDsByAuthor(context.Background(), "A5")
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 1 || ids[0] != "D9" {
		t.Fatalf("expected dangling edge to be stored, got %v", ids)
	}
}

func TestLoadSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.yaml")
	data := `documents:
  - scopus_id: D1
    main_title: Paper one
    pub_year: 2020
authors:
  - id: A1
    affiliated_institution_id: "100459484"
authorship:
  - document_id: D1
    author_id: A1
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	snap, err := LoadSnapshot(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(snap.Documents) != 1 || snap.Documents[0].PubYear != 2020 {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
	if len(snap.Authors) != 1 || snap.Authors[0].AffiliatedInstitutionID != "100459484" {
		t.Fatalf("unexpected authors: %+v", snap.Authors)
	}
}

func TestLoadSnapshot_Missing(t *testing.T) {
	if _, err := LoadSnapshot(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected an error for a missing snapshot file")
	}
}

// --- engine over the real store ---

func TestRetrieveAgainstCatalog(t *testing.T) {
	store := testStore(t)
	ingest(t, store, testSnapshot())

	engine := retrieval.NewEngine(store, types.RetrievalConfig{})
	docs, err := engine.Retrieve(context.Background(), []string{"100459484"}, 2020)
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) != 1 || docs[0].ScopusID != "D1" {
		t.Fatalf("expected exactly D1, got %+v", docs)
	}
}
