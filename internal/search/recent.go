// Package search remembers the most recent catalog queries.
package search

import (
	"context"
	"log"
	"strings"
	"sync"

	"codecup/internal/kvstore"
)

// MaxRecent is the number of queries kept.
const MaxRecent = 5

// RecentLog is a de-duplicated, most-recent-first list of queries, stored as
// a comma-joined string.
type RecentLog struct {
	mu      sync.Mutex
	queries []string
	writer  *kvstore.Writer
}

func NewRecentLog(ctx context.Context, writer *kvstore.Writer) *RecentLog {
	r := &RecentLog{writer: writer}

	raw, ok, err := writer.Store().Get(ctx, kvstore.KeyRecentSearches)
	switch {
	case err != nil:
		log.Println("[SEARCH] [ERROR] reading recent searches failed:", err)
	case ok:
		for _, q := range strings.Split(raw, ",") {
			if q = strings.TrimSpace(q); q != "" && !contains(r.queries, q) && len(r.queries) < MaxRecent {
				r.queries = append(r.queries, q)
			}
		}
	}
	return r
}

// Add moves query to the front. Blank queries are ignored and commas are
// replaced so the stored form stays splittable.
func (r *RecentLog) Add(query string) []string {
	query = strings.TrimSpace(strings.ReplaceAll(query, ",", " "))
	if query == "" {
		return r.All()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	next := []string{query}
	for _, q := range r.queries {
		if q != query {
			next = append(next, q)
		}
	}
	if len(next) > MaxRecent {
		next = next[:MaxRecent]
	}
	r.queries = next
	r.writer.Put(kvstore.KeyRecentSearches, strings.Join(next, ","))
	return append([]string(nil), next...)
}

func (r *RecentLog) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.queries = nil
	r.writer.Delete(kvstore.KeyRecentSearches)
}

func (r *RecentLog) All() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string{}, r.queries...)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
