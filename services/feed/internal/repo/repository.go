package repo

import (
	"context"
	"errors"

	"feed-planner/pkg/models"
)

// ErrFeedNotFound distinguishes an unknown feed id from a storage fault.
var ErrFeedNotFound = errors.New("feed not found")

// FeedRepository is the blob-store contract: one JSON post array per feed id,
// read and replaced wholesale. Replace upserts; there is no delete.
type FeedRepository interface {
	Create(ctx context.Context, feedID string, posts []models.Post) error
	Get(ctx context.Context, feedID string) ([]models.Post, error)
	Replace(ctx context.Context, feedID string, posts []models.Post) error
}
