// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package retrieval

import "sync"

// docSet accumulates distinct document ids from concurrent emitters. Insert
// cost does not grow with the duplicate count per key, so a document with
// many qualifying co-authors is as cheap as one with a single author.
type docSet struct {
	mu  sync.Mutex
	ids map[string]struct{}
}

func newDocSet() *docSet {
	return &docSet{ids: make(map[string]struct{})}
}

// Add records id, ignoring repeats. Safe for concurrent use.
func (s *docSet) Add(id string) {
	s.mu.Lock()
	s.ids[id] = struct{}{}
	s.mu.Unlock()
}

// Values returns the distinct ids in no particular order.
func (s *docSet) Values() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	return out
}

// Dedupe collapses a multiset of document ids into a set, preserving
// first-seen order. It is idempotent: applying it to its own output returns
// an equal slice.
func Dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
