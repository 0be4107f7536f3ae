package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"feed-planner/pkg/feedclient"
	"feed-planner/pkg/logger"
	"feed-planner/pkg/models"
	feedHTTP "feed-planner/services/feed/internal/controller/http"
	"feed-planner/services/feed/internal/live"
	"feed-planner/services/feed/internal/repo"
	"feed-planner/services/feed/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryFeedRepository keeps feed blobs in a map so the full request path can
// run without external storage.
type memoryFeedRepository struct {
	mu    sync.Mutex
	feeds map[string][]models.Post
}

func newMemoryFeedRepository() *memoryFeedRepository {
	return &memoryFeedRepository{feeds: make(map[string][]models.Post)}
}

func (r *memoryFeedRepository) Create(ctx context.Context, feedID string, posts []models.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.feeds[feedID] = posts
	return nil
}

func (r *memoryFeedRepository) Get(ctx context.Context, feedID string) ([]models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	posts, ok := r.feeds[feedID]
	if !ok {
		return nil, repo.ErrFeedNotFound
	}
	return posts, nil
}

func (r *memoryFeedRepository) Replace(ctx context.Context, feedID string, posts []models.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.feeds[feedID] = posts
	return nil
}

var _ repo.FeedRepository = (*memoryFeedRepository)(nil)

func startFeedService(t *testing.T) (*httptest.Server, *live.Hub) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := logger.New()

	hub := live.NewHub(log)
	feedUseCase := usecase.NewFeedUseCase(newMemoryFeedRepository(), hub, nil, log)
	feedHandler := feedHTTP.NewFeedHandler(feedUseCase, hub, log)

	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method Not Allowed"})
	})

	api := r.Group("/api/v1")
	{
		api.POST("/feeds", feedHandler.CreateFeed)
		api.GET("/feeds", feedHandler.GetFeed)
		api.POST("/feeds/save", feedHandler.SaveFeed)
		api.GET("/feeds/live", feedHandler.LiveFeed)
	}

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)
	return server, hub
}

func newPlannerStore(t *testing.T, serverURL string) *feedclient.Store {
	t.Helper()
	cache := feedclient.NewCache(filepath.Join(t.TempDir(), "feed.json"))
	client := feedclient.NewClient(serverURL, serverURL)
	return feedclient.NewStore(client, cache, logger.New())
}

func TestEditorAndViewerShareAFeed(t *testing.T) {
	server, _ := startFeedService(t)

	// Editor starts fresh: a remote feed is created and bound
	editor := newPlannerStore(t, server.URL)
	require.NoError(t, editor.Bootstrap(context.Background(), feedclient.BootstrapOptions{Mode: feedclient.ModeEdit}))
	feedID := editor.FeedID()
	require.Len(t, feedID, 16)

	// Editor adds a post; the mutation syncs in the background
	editor.SetPosts([]models.Post{{
		ID:             feedclient.NewPostID(),
		Type:           models.PostKindStatic,
		Day:            "Mon Dec 15",
		Title:          "COTW: Milk vs Dark",
		VisualMediaURL: "https://example.com/one.jpg",
	}})
	editor.Flush()
	assert.Equal(t, feedclient.StatusSaved, editor.SaveStatus())

	// A second client opens the shared link in view mode and sees the post
	viewer := newPlannerStore(t, server.URL)
	require.NoError(t, viewer.Bootstrap(context.Background(), feedclient.BootstrapOptions{
		Mode:   feedclient.ModeView,
		FeedID: feedID,
	}))

	posts := viewer.Posts()
	require.Len(t, posts, 1)
	assert.Equal(t, "COTW: Milk vs Dark", posts[0].Title)

	// The viewer cannot push edits back
	viewer.DeletePost(posts[0].ID)
	viewer.Flush()

	reloaded, err := feedclient.NewClient(server.URL, server.URL).GetFeed(context.Background(), feedID)
	require.NoError(t, err)
	assert.Len(t, reloaded, 1)
}

func TestUnknownFeedIDIsNotFound(t *testing.T) {
	server, _ := startFeedService(t)

	client := feedclient.NewClient(server.URL, server.URL)
	_, err := client.GetFeed(context.Background(), "deadbeefdeadbeef")

	assert.ErrorIs(t, err, feedclient.ErrFeedNotFound)
}

func TestLiveViewerSeesSaves(t *testing.T) {
	server, hub := startFeedService(t)

	editor := newPlannerStore(t, server.URL)
	require.NoError(t, editor.Bootstrap(context.Background(), feedclient.BootstrapOptions{Mode: feedclient.ModeEdit}))
	feedID := editor.FeedID()

	// A live viewer watches the feed over a websocket
	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/api/v1/feeds/live?feedId=" + feedID
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	// Registration happens after the upgrade, on the server goroutine
	require.Eventually(t, func() bool {
		return hub.ViewerCount(feedID) == 1
	}, time.Second, 10*time.Millisecond)

	editor.SetPosts([]models.Post{{
		ID:             feedclient.NewPostID(),
		Type:           models.PostKindReel,
		Title:          "ASMR Crunch",
		VisualMediaURL: "https://example.com/two.mp4",
	}})
	editor.Flush()

	conn.SetReadDeadline(time.Now().Add(time.Second))
	var update struct {
		Success bool          `json:"success"`
		FeedID  string        `json:"feedId"`
		Posts   []models.Post `json:"posts"`
	}
	require.NoError(t, conn.ReadJSON(&update))
	assert.True(t, update.Success)
	assert.Equal(t, feedID, update.FeedID)
	require.Len(t, update.Posts, 1)
	assert.Equal(t, "ASMR Crunch", update.Posts[0].Title)
}
