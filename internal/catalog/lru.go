package catalog

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"bookworm-search/internal/models"
	"bookworm-search/internal/query"
)

// memo is the capacity-bounded query memo. Get promotes an entry, Contains
// does not, and Add reports whether the least recently used entry was
// evicted. Client still serializes access with its own mutex so that an
// insert and the size it reports stay consistent.
type memo = lru.Cache[query.Descriptor, models.SearchResponse]

func newMemo(capacity int) *memo {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	// lru.New only fails for a non-positive size.
	m, _ := lru.New[query.Descriptor, models.SearchResponse](capacity)
	return m
}
