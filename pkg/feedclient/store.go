package feedclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"

	"feed-planner/pkg/logger"
	"feed-planner/pkg/models"
)

// SaveStatus is the tri-state indicator for the most recently resolved remote
// sync. Saved and error states revert to idle after a fixed display delay.
type SaveStatus string

const (
	StatusIdle   SaveStatus = "idle"
	StatusSaving SaveStatus = "saving"
	StatusSaved  SaveStatus = "saved"
	StatusError  SaveStatus = "error"
)

const defaultRevertDelay = 2 * time.Second
const defaultSaveTimeout = 30 * time.Second

// Store is the single source of truth for the current feed's post sequence.
// Every mutation writes the local cache mirror synchronously and, when a feed
// id is bound, pushes the full sequence to the feed service in the background.
// Remote failures only ever surface through the save status; local state is
// authoritative regardless of the remote outcome.
type Store struct {
	mu     sync.Mutex
	client *Client
	cache  *Cache
	logger *logger.Logger

	posts        []models.Post
	feedID       string
	selectedID   int64
	hasSelection bool
	readOnly     bool

	status    SaveStatus
	statusGen int
	// seq stamps each replace call; responses older than acked are discarded,
	// so the status always reflects the last *issued* save.
	seq   uint64
	acked uint64

	wg          sync.WaitGroup
	revertDelay time.Duration
	saveTimeout time.Duration
	onStatus    func(SaveStatus)
}

type StoreOption func(*Store)

// WithRevertDelay overrides how long saved/error states stay visible.
func WithRevertDelay(d time.Duration) StoreOption {
	return func(s *Store) { s.revertDelay = d }
}

// WithStatusHook registers a callback for save-status changes. The hook runs
// with the store locked and must not call back into the store.
func WithStatusHook(hook func(SaveStatus)) StoreOption {
	return func(s *Store) { s.onStatus = hook }
}

func NewStore(client *Client, cache *Cache, log *logger.Logger, opts ...StoreOption) *Store {
	s := &Store{
		client:      client,
		cache:       cache,
		logger:      log,
		posts:       []models.Post{},
		status:      StatusIdle,
		revertDelay: defaultRevertDelay,
		saveTimeout: defaultSaveTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewPostID derives a fresh post id from the current time, unique within a
// feed for any realistic editing cadence.
func NewPostID() int64 {
	return time.Now().UnixMilli()
}

// SetPosts replaces the entire post sequence.
func (s *Store) SetPosts(posts []models.Post) {
	s.dispatch(setPostsCmd{posts: posts})
}

// UpdatePost shallow-merges the patch into the post with the matching id.
// Silently a no-op when no post matches.
func (s *Store) UpdatePost(patch PostPatch) {
	s.dispatch(updatePostCmd{patch: patch})
}

// DeletePost removes the post with the given id and clears the selection if
// it pointed at that post.
func (s *Store) DeletePost(id int64) {
	s.dispatch(deletePostCmd{id: id})
}

func (s *Store) dispatch(cmd command) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, changed := apply(s.posts, cmd)
	if !changed {
		return
	}
	s.posts = next

	if del, ok := cmd.(deletePostCmd); ok && s.hasSelection && s.selectedID == del.id {
		s.hasSelection = false
		s.selectedID = 0
	}

	s.writeCacheLocked()
	s.syncLocked()
}

// LoadFeed fetches the remote post sequence for feedID. On success it replaces
// local state and binds the id; on any failure existing state is untouched and
// the id stays unbound.
func (s *Store) LoadFeed(ctx context.Context, feedID string) error {
	posts, err := s.client.GetFeed(ctx, feedID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.posts = posts
	s.feedID = feedID
	s.writeCacheLocked()
	return nil
}

// BindFeedID associates a feed id without fetching, for feeds just created
// remotely.
func (s *Store) BindFeedID(feedID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.feedID = feedID
}

func (s *Store) FeedID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.feedID
}

// Posts returns a snapshot of the current sequence.
func (s *Store) Posts() []models.Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := make([]models.Post, len(s.posts))
	copy(snapshot, s.posts)
	return snapshot
}

func (s *Store) SetSelectedPost(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.posts {
		if s.posts[i].ID == id {
			s.selectedID = id
			s.hasSelection = true
			return
		}
	}
}

func (s *Store) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hasSelection = false
	s.selectedID = 0
}

// SelectedPost returns the currently selected post, if any.
func (s *Store) SelectedPost() (models.Post, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.hasSelection {
		return models.Post{}, false
	}
	for i := range s.posts {
		if s.posts[i].ID == s.selectedID {
			return s.posts[i], true
		}
	}
	return models.Post{}, false
}

func (s *Store) SaveStatus() SaveStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// LoadCached restores the post sequence from the local mirror without
// triggering a remote sync.
func (s *Store) LoadCached() error {
	if s.cache == nil {
		return nil
	}
	posts, err := s.cache.Load()
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.posts = posts
	return nil
}

// Export writes the current sequence as pretty-printed JSON.
func (s *Store) Export(w io.Writer) error {
	posts := s.Posts()
	data, err := json.MarshalIndent(posts, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode feed: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write feed export: %w", err)
	}
	return nil
}

// Import replaces the sequence wholesale with the parsed file contents. A
// parse error aborts the import and leaves existing state unchanged.
func (s *Store) Import(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to read feed import: %w", err)
	}
	var posts []models.Post
	if err := json.Unmarshal(data, &posts); err != nil {
		return fmt.Errorf("failed to parse feed import: %w", err)
	}
	if posts == nil {
		posts = []models.Post{}
	}
	s.SetPosts(posts)
	return nil
}

// Flush waits for all in-flight remote syncs to resolve.
func (s *Store) Flush() {
	s.wg.Wait()
}

func (s *Store) writeCacheLocked() {
	if s.cache == nil {
		return
	}
	if err := s.cache.Store(s.posts); err != nil {
		s.logger.Warn("Failed to write feed cache: %v", err)
	}
}

// syncLocked fires the remote replace without blocking the caller. The save
// status follows the last issued call: a response for an older sequence
// number than one already acknowledged is dropped.
func (s *Store) syncLocked() {
	if s.feedID == "" || s.readOnly {
		return
	}

	s.seq++
	mySeq := s.seq
	feedID := s.feedID
	snapshot := make([]models.Post, len(s.posts))
	copy(snapshot, s.posts)

	s.setStatusLocked(StatusSaving)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), s.saveTimeout)
		defer cancel()
		err := s.client.SaveFeed(ctx, feedID, snapshot)

		s.mu.Lock()
		defer s.mu.Unlock()
		if mySeq <= s.acked {
			// A newer save already resolved; this outcome is stale.
			return
		}
		s.acked = mySeq

		if err != nil {
			s.logger.Warn("Failed to sync feed %s: %v", feedID, err)
			s.setStatusLocked(StatusError)
		} else {
			s.setStatusLocked(StatusSaved)
		}
		s.scheduleRevertLocked()
	}()
}

func (s *Store) setStatusLocked(status SaveStatus) {
	if s.status == status {
		return
	}
	s.status = status
	s.statusGen++
	if s.onStatus != nil {
		s.onStatus(status)
	}
}

// scheduleRevertLocked returns the indicator to idle after the display delay,
// unless the status changed again in the meantime.
func (s *Store) scheduleRevertLocked() {
	gen := s.statusGen
	time.AfterFunc(s.revertDelay, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.statusGen != gen {
			return
		}
		if s.status == StatusSaved || s.status == StatusError {
			s.setStatusLocked(StatusIdle)
		}
	})
}
