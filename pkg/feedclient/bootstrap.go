package feedclient

import (
	"context"

	"feed-planner/pkg/models"
)

type Mode string

const (
	ModeEdit Mode = "edit"
	ModeView Mode = "view"
)

// BootstrapOptions mirror the planner's startup URL parameters: a feed id to
// bind to, an edit/view mode toggle, and the legacy static-JSON feed URL.
type BootstrapOptions struct {
	FeedID        string
	Mode          Mode
	LegacyFeedURL string
}

// Bootstrap brings the store into its initial state. Unlike the sync-after-
// mutation path, the remote calls here are awaited.
//
// Rules, in order:
//   - a legacy feed URL wins: its static post array is loaded read-only;
//   - view mode never binds the id for writes, it only loads;
//   - edit mode with a feed id loads that feed for mutation;
//   - edit mode without one creates a fresh remote feed, binds it, and pushes
//     any locally cached posts up to it.
func (s *Store) Bootstrap(ctx context.Context, opts BootstrapOptions) error {
	if opts.LegacyFeedURL != "" {
		posts, err := s.client.GetLegacyFeed(ctx, opts.LegacyFeedURL)
		if err != nil {
			return err
		}
		s.mu.Lock()
		s.posts = posts
		s.readOnly = true
		s.mu.Unlock()
		return nil
	}

	if opts.Mode == ModeView {
		s.mu.Lock()
		s.readOnly = true
		s.mu.Unlock()
		if opts.FeedID == "" {
			return nil
		}
		posts, err := s.client.GetFeed(ctx, opts.FeedID)
		if err != nil {
			return err
		}
		s.mu.Lock()
		s.posts = posts
		s.mu.Unlock()
		return nil
	}

	if opts.FeedID != "" {
		return s.LoadFeed(ctx, opts.FeedID)
	}

	feedID, err := s.client.CreateFeed(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.feedID = feedID
	snapshot := make([]models.Post, len(s.posts))
	copy(snapshot, s.posts)
	s.mu.Unlock()

	if len(snapshot) > 0 {
		if err := s.client.SaveFeed(ctx, feedID, snapshot); err != nil {
			return err
		}
	}
	return nil
}
