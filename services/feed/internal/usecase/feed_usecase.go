package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"feed-planner/pkg/logger"
	"feed-planner/pkg/models"
	"feed-planner/pkg/queue"
	"feed-planner/services/feed/internal/repo"
)

type FeedUseCase interface {
	CreateFeed(ctx context.Context) (string, error)
	GetFeed(ctx context.Context, feedID string) ([]models.Post, error)
	SaveFeed(ctx context.Context, feedID string, posts []models.Post) error
}

// Broadcaster pushes a saved post array to live viewers of a feed.
type Broadcaster interface {
	Broadcast(feedID string, posts []models.Post)
}

// EventPublisher announces feed changes on the message bus.
type EventPublisher interface {
	PublishFeedEvent(routingKey string, event queue.FeedEvent) error
}

type feedUseCase struct {
	feedRepo    repo.FeedRepository
	broadcaster Broadcaster
	events      EventPublisher
	logger      *logger.Logger
}

func NewFeedUseCase(feedRepo repo.FeedRepository, broadcaster Broadcaster, events EventPublisher, log *logger.Logger) FeedUseCase {
	return &feedUseCase{
		feedRepo:    feedRepo,
		broadcaster: broadcaster,
		events:      events,
		logger:      log,
	}
}

// CreateFeed stores a fresh empty feed under a random 16-hex-character id and
// returns the id.
func (uc *feedUseCase) CreateFeed(ctx context.Context) (string, error) {
	feedID, err := newFeedID()
	if err != nil {
		return "", err
	}

	if err := uc.feedRepo.Create(ctx, feedID, []models.Post{}); err != nil {
		return "", err
	}

	uc.publish(queue.RoutingKeyFeedCreated, feedID, 0)
	return feedID, nil
}

func (uc *feedUseCase) GetFeed(ctx context.Context, feedID string) ([]models.Post, error) {
	return uc.feedRepo.Get(ctx, feedID)
}

// SaveFeed overwrites the stored blob wholesale. Live viewers and the event
// bus are notified best-effort after the write lands.
func (uc *feedUseCase) SaveFeed(ctx context.Context, feedID string, posts []models.Post) error {
	if posts == nil {
		posts = []models.Post{}
	}

	if err := uc.feedRepo.Replace(ctx, feedID, posts); err != nil {
		return err
	}

	if uc.broadcaster != nil {
		uc.broadcaster.Broadcast(feedID, posts)
	}
	uc.publish(queue.RoutingKeyFeedSaved, feedID, len(posts))
	return nil
}

func (uc *feedUseCase) publish(routingKey, feedID string, postCount int) {
	if uc.events == nil {
		return
	}
	event := queue.FeedEvent{
		FeedID:    feedID,
		PostCount: postCount,
		UpdatedAt: time.Now().UTC(),
	}
	if err := uc.events.PublishFeedEvent(routingKey, event); err != nil {
		uc.logger.Warn("Failed to publish %s for feed %s: %v", routingKey, feedID, err)
	}
}

func newFeedID() (string, error) {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate feed id: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
