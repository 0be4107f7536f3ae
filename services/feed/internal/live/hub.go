package live

import (
	"sync"

	"feed-planner/pkg/logger"
	"feed-planner/pkg/models"

	"github.com/gorilla/websocket"
)

// Hub tracks websocket viewers per feed id and pushes the full post array to
// them whenever the feed is saved. Viewers only receive; they never send.
type Hub struct {
	mu      sync.Mutex
	viewers map[string]map[*websocket.Conn]bool
	logger  *logger.Logger
}

type feedUpdate struct {
	Success bool          `json:"success"`
	FeedID  string        `json:"feedId"`
	Posts   []models.Post `json:"posts"`
}

func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		viewers: make(map[string]map[*websocket.Conn]bool),
		logger:  log,
	}
}

func (h *Hub) Register(feedID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.viewers[feedID] == nil {
		h.viewers[feedID] = make(map[*websocket.Conn]bool)
	}
	h.viewers[feedID][conn] = true
}

func (h *Hub) Unregister(feedID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if conns, ok := h.viewers[feedID]; ok {
		delete(conns, conn)
		if len(conns) == 0 {
			delete(h.viewers, feedID)
		}
	}
}

// Broadcast sends the saved post array to every viewer of feedID. A failed
// write drops that viewer; the save path never sees an error from here.
func (h *Hub) Broadcast(feedID string, posts []models.Post) {
	h.mu.Lock()
	defer h.mu.Unlock()

	conns := h.viewers[feedID]
	if len(conns) == 0 {
		return
	}

	update := feedUpdate{Success: true, FeedID: feedID, Posts: posts}
	for conn := range conns {
		if err := conn.WriteJSON(update); err != nil {
			h.logger.Warn("Dropping live viewer of feed %s: %v", feedID, err)
			conn.Close()
			delete(conns, conn)
		}
	}
	if len(conns) == 0 {
		delete(h.viewers, feedID)
	}
}

// ViewerCount reports how many live viewers a feed currently has.
func (h *Hub) ViewerCount(feedID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.viewers[feedID])
}
