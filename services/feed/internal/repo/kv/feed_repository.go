package kv

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"feed-planner/pkg/models"
	"feed-planner/services/feed/internal/repo"

	"github.com/redis/go-redis/v9"
)

type feedRepository struct {
	redisClient *redis.Client
}

func NewFeedRepository(redisClient *redis.Client) repo.FeedRepository {
	return &feedRepository{redisClient: redisClient}
}

func feedKey(feedID string) string {
	return fmt.Sprintf("feed:%s", feedID)
}

func metaKey(feedID string) string {
	return fmt.Sprintf("feed:%s:meta", feedID)
}

func (r *feedRepository) Create(ctx context.Context, feedID string, posts []models.Post) error {
	data, err := marshalPosts(posts)
	if err != nil {
		return err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	pipe := r.redisClient.TxPipeline()
	pipe.Set(ctx, feedKey(feedID), data, 0)
	pipe.HSet(ctx, metaKey(feedID),
		"created_at", now,
		"updated_at", now,
		"post_count", strconv.Itoa(len(posts)),
	)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to store feed: %w", err)
	}
	return nil
}

func (r *feedRepository) Get(ctx context.Context, feedID string) ([]models.Post, error) {
	data, err := r.redisClient.Get(ctx, feedKey(feedID)).Result()
	if err == redis.Nil {
		return nil, repo.ErrFeedNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read feed: %w", err)
	}

	var posts []models.Post
	if err := json.Unmarshal([]byte(data), &posts); err != nil {
		return nil, fmt.Errorf("failed to decode stored feed: %w", err)
	}
	if posts == nil {
		posts = []models.Post{}
	}
	return posts, nil
}

func (r *feedRepository) Replace(ctx context.Context, feedID string, posts []models.Post) error {
	data, err := marshalPosts(posts)
	if err != nil {
		return err
	}

	pipe := r.redisClient.TxPipeline()
	pipe.Set(ctx, feedKey(feedID), data, 0)
	pipe.HSet(ctx, metaKey(feedID),
		"updated_at", time.Now().UTC().Format(time.RFC3339),
		"post_count", strconv.Itoa(len(posts)),
	)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to store feed: %w", err)
	}
	return nil
}

func marshalPosts(posts []models.Post) (string, error) {
	if posts == nil {
		posts = []models.Post{}
	}
	data, err := json.Marshal(posts)
	if err != nil {
		return "", fmt.Errorf("failed to encode feed: %w", err)
	}
	return string(data), nil
}
