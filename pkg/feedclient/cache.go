package feedclient

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"feed-planner/pkg/models"
)

// Cache mirrors the most recently known post sequence to a local JSON file so
// the planner can render instantly (or offline) before the remote feed loads.
type Cache struct {
	path string
}

func NewCache(path string) *Cache {
	return &Cache{path: path}
}

// DefaultCachePath places the mirror under the user cache directory.
func DefaultCachePath() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve cache directory: %w", err)
	}
	return filepath.Join(dir, "feed-planner", "feed.json"), nil
}

func (c *Cache) Store(posts []models.Post) error {
	if posts == nil {
		posts = []models.Post{}
	}
	data, err := json.Marshal(posts)
	if err != nil {
		return fmt.Errorf("failed to encode cached feed: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	if err := os.WriteFile(c.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write cached feed: %w", err)
	}
	return nil
}

func (c *Cache) Load() ([]models.Post, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read cached feed: %w", err)
	}

	var posts []models.Post
	if err := json.Unmarshal(data, &posts); err != nil {
		return nil, fmt.Errorf("failed to decode cached feed: %w", err)
	}
	if posts == nil {
		posts = []models.Post{}
	}
	return posts, nil
}
