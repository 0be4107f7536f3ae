package persistent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"feed-planner/pkg/models"
	"feed-planner/services/feed/internal/entity"
	"feed-planner/services/feed/internal/repo"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type feedRepository struct {
	db *gorm.DB
}

func NewFeedRepository(db *gorm.DB) repo.FeedRepository {
	return &feedRepository{db: db}
}

func (r *feedRepository) Create(ctx context.Context, feedID string, posts []models.Post) error {
	record, err := newFeedRecord(feedID, posts)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("failed to store feed: %w", err)
	}
	return nil
}

func (r *feedRepository) Get(ctx context.Context, feedID string) ([]models.Post, error) {
	var record entity.Feed
	err := r.db.WithContext(ctx).First(&record, "feed_id = ?", feedID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repo.ErrFeedNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read feed: %w", err)
	}

	var posts []models.Post
	if err := json.Unmarshal(record.Posts, &posts); err != nil {
		return nil, fmt.Errorf("failed to decode stored feed: %w", err)
	}
	if posts == nil {
		posts = []models.Post{}
	}
	return posts, nil
}

func (r *feedRepository) Replace(ctx context.Context, feedID string, posts []models.Post) error {
	record, err := newFeedRecord(feedID, posts)
	if err != nil {
		return err
	}
	err = r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "feed_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"posts", "post_count", "updated_at"}),
	}).Create(record).Error
	if err != nil {
		return fmt.Errorf("failed to store feed: %w", err)
	}
	return nil
}

func newFeedRecord(feedID string, posts []models.Post) (*entity.Feed, error) {
	if posts == nil {
		posts = []models.Post{}
	}
	data, err := json.Marshal(posts)
	if err != nil {
		return nil, fmt.Errorf("failed to encode feed: %w", err)
	}
	return &entity.Feed{
		FeedID:    feedID,
		Posts:     data,
		PostCount: len(posts),
	}, nil
}
