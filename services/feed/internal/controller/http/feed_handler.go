package http

import (
	"errors"
	"net/http"

	"feed-planner/pkg/logger"
	"feed-planner/pkg/models"
	"feed-planner/services/feed/internal/live"
	"feed-planner/services/feed/internal/repo"
	"feed-planner/services/feed/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type FeedHandler struct {
	feedUseCase usecase.FeedUseCase
	hub         *live.Hub
	logger      *logger.Logger
}

func NewFeedHandler(feedUseCase usecase.FeedUseCase, hub *live.Hub, logger *logger.Logger) *FeedHandler {
	return &FeedHandler{
		feedUseCase: feedUseCase,
		hub:         hub,
		logger:      logger,
	}
}

// Posts is a pointer so that an absent or null "posts" field is
// distinguishable from an explicitly empty array.
type SaveFeedRequest struct {
	FeedID string         `json:"feedId"`
	Posts  *[]models.Post `json:"posts"`
}

// CreateFeed godoc
// @Summary      Create a new feed
// @Description  Creates an empty feed under a fresh random id and returns the id
// @Tags         feeds
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]interface{}
// @Router       /feeds [post]
func (h *FeedHandler) CreateFeed(c *gin.Context) {
	feedID, err := h.feedUseCase.CreateFeed(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to create feed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"feedId":  feedID,
		"message": "Feed created successfully",
	})
}

// GetFeed godoc
// @Summary      Get a feed
// @Description  Returns the stored post array for a feed id
// @Tags         feeds
// @Accept       json
// @Produce      json
// @Param        feedId query string true "Feed id"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]interface{}
// @Router       /feeds [get]
func (h *FeedHandler) GetFeed(c *gin.Context) {
	feedID := c.Query("feedId")
	if feedID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "feedId is required"})
		return
	}

	posts, err := h.feedUseCase.GetFeed(c.Request.Context(), feedID)
	if err != nil {
		if errors.Is(err, repo.ErrFeedNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Feed not found"})
			return
		}
		h.logger.Error("Failed to get feed %s: %v", feedID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"feedId":  feedID,
		"posts":   posts,
	})
}

// SaveFeed godoc
// @Summary      Save a feed
// @Description  Overwrites the stored post array for a feed id wholesale
// @Tags         feeds
// @Accept       json
// @Produce      json
// @Param        request body SaveFeedRequest true "Feed id and full post array"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]interface{}
// @Router       /feeds/save [post]
func (h *FeedHandler) SaveFeed(c *gin.Context) {
	var req SaveFeedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "feedId and posts are required"})
		return
	}

	if req.FeedID == "" || req.Posts == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "feedId and posts are required"})
		return
	}

	if err := h.feedUseCase.SaveFeed(c.Request.Context(), req.FeedID, *req.Posts); err != nil {
		h.logger.Error("Failed to save feed %s: %v", req.FeedID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"feedId":  req.FeedID,
		"message": "Feed saved successfully",
	})
}

// LiveFeed godoc
// @Summary      Watch a feed live
// @Description  Upgrades to a websocket and pushes the full post array on every save
// @Tags         feeds
// @Param        feedId query string true "Feed id"
// @Success      101
// @Failure      400  {object}  map[string]string
// @Router       /feeds/live [get]
func (h *FeedHandler) LiveFeed(c *gin.Context) {
	feedID := c.Query("feedId")
	if feedID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "feedId is required"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("Failed to upgrade live viewer for feed %s: %v", feedID, err)
		return
	}

	h.hub.Register(feedID, conn)
	defer func() {
		h.hub.Unregister(feedID, conn)
		conn.Close()
	}()

	// Viewers never send data; the read loop only detects disconnects.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
