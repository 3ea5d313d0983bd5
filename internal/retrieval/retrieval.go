// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package retrieval joins documents to authors through authorship edges and
// returns the distinct set of documents published in a given year by at
// least one author affiliated with a requested set of institutions.
package retrieval

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/akudrin/bibliograph/pkg/types"
)

// Reader provides the read primitives the engine consumes. Implementations
// are read-only and side-effect free; an unknown identifier yields an absent
// result, never an error. All methods honor context cancellation, so a
// caller-imposed deadline reaches the underlying store.
type Reader interface {
	// AuthorsByInstitution returns all authors whose affiliated institution
	// is in institutionIDs. Unknown institutions contribute nothing.
	AuthorsByInstitution(ctx context.Context, institutionIDs []string) ([]types.Author, error)

	// DocumentIDsByAuthor returns the ids of every document the author
	// contributed to. Unknown authors yield an empty slice.
	DocumentIDsByAuthor(ctx context.Context, authorID string) ([]string, error)

	// DocumentByID returns the document, or nil when absent.
	DocumentByID(ctx context.Context, documentID string) (*types.Document, error)

	// DocumentYear returns the publication year of a document. The bool
	// reports presence; an absent document is not an error.
	DocumentYear(ctx context.Context, documentID string) (int, bool, error)
}

var (
	// ErrInvalidArgument reports malformed input, detected before any store
	// access.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrRetrievalFailed wraps store failures. The operation is
	// all-or-nothing: no partial results accompany this error. The engine
	// never retries; retry policy belongs to the caller because it depends
	// on the store's own failure characteristics.
	ErrRetrievalFailed = errors.New("retrieval failed")
)

const defaultMaxConcurrency = 8

// Engine executes affiliation-filtered document retrieval against a Reader.
// It holds no state across invocations and is safe for concurrent use.
type Engine struct {
	reader Reader
	limit  int
}

// NewEngine wraps reader with the given settings. A non-positive
// MaxConcurrency falls back to the default.
func NewEngine(reader Reader, cfg types.RetrievalConfig) *Engine {
	limit := cfg.MaxConcurrency
	if limit <= 0 {
		limit = defaultMaxConcurrency
	}
	return &Engine{reader: reader, limit: limit}
}

// Retrieve returns the distinct documents published in year by at least one
// author affiliated with any institution in institutionIDs. Each qualifying
// document appears exactly once regardless of how many of its authors
// qualify. The result carries no ordering guarantee; callers needing a
// stable order sort downstream (report.SortByID).
//
// An empty institution set is a valid input and yields an empty result. Any
// integer year is valid. Authorship edges whose author or document is
// absent from the store are skipped silently: a harvest may have removed
// the referent since the edge was written.
func (e *Engine) Retrieve(ctx context.Context, institutionIDs []string, year int) ([]types.Document, error) {
	insts, err := normalizeInstitutions(institutionIDs)
	if err != nil {
		return nil, err
	}
	if len(insts) == 0 {
		return []types.Document{}, nil
	}

	authors, err := e.reader.AuthorsByInstitution(ctx, insts)
	if err != nil {
		return nil, fmt.Errorf("%w: resolving authors: %w", ErrRetrievalFailed, err)
	}

	ids, err := e.joinFilter(ctx, authors, year)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRetrievalFailed, err)
	}

	docs, err := e.materialize(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRetrievalFailed, err)
	}
	return docs, nil
}

// joinFilter walks authorship edges for every resolved author and collects
// the ids of documents published in the requested year. Authors are fanned
// out concurrently; emissions converge on a shared docSet, so a document
// reached through several qualifying co-authors is still counted once.
func (e *Engine) joinFilter(ctx context.Context, authors []types.Author, year int) ([]string, error) {
	set := newDocSet()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.limit)

	for _, authorID := range authorIDs(authors) {
		authorID := authorID
		g.Go(func() error {
			docIDs, err := e.reader.DocumentIDsByAuthor(gctx, authorID)
			if err != nil {
				return fmt.Errorf("enumerating authorship for author %s: %w", authorID, err)
			}
			for _, docID := range docIDs {
				docYear, ok, err := e.reader.DocumentYear(gctx, docID)
				if err != nil {
					return fmt.Errorf("reading year of document %s: %w", docID, err)
				}
				if ok && docYear == year {
					set.Add(docID)
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return set.Values(), nil
}

// materialize resolves distinct document ids into full records. Ids that
// vanished since the year check are dropped, matching the dangling-edge
// rule.
func (e *Engine) materialize(ctx context.Context, ids []string) ([]types.Document, error) {
	docs := make([]types.Document, 0, len(ids))
	for _, id := range ids {
		doc, err := e.reader.DocumentByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("fetching document %s: %w", id, err)
		}
		if doc == nil {
			continue
		}
		docs = append(docs, *doc)
	}
	return docs, nil
}

// normalizeInstitutions validates the requested institution ids and
// collapses duplicates, preserving first-seen order. Blank ids and ids
// containing whitespace are rejected before any store access.
func normalizeInstitutions(ids []string) ([]string, error) {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if id == "" || strings.ContainsFunc(id, isSpace) {
			return nil, fmt.Errorf("%w: institution id %q", ErrInvalidArgument, id)
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out, nil
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

// authorIDs collapses the resolved authors to their distinct ids. The store
// should not return duplicates, but the join must not emit an author twice
// if it does.
func authorIDs(authors []types.Author) []string {
	ids := make([]string, 0, len(authors))
	seen := make(map[string]struct{}, len(authors))
	for _, a := range authors {
		if _, ok := seen[a.ID]; ok {
			continue
		}
		seen[a.ID] = struct{}{}
		ids = append(ids, a.ID)
	}
	return ids
}
