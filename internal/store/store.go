package store

import (
	"context"

	"bookworm-search/internal/models"
)

// ResultStore shares successful search results between client processes.
type ResultStore interface {
	GetResult(ctx context.Context, key string) (models.SearchResponse, bool, error)
	SetResult(ctx context.Context, key string, resp models.SearchResponse) error
}
