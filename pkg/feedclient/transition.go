package feedclient

import (
	"feed-planner/pkg/models"
)

// Commands describe state transitions over the post sequence. apply is pure:
// it never touches the input slice, performs no I/O, and reports whether the
// sequence changed so the store knows if a cache write and remote sync are due.

type command interface {
	isCommand()
}

type setPostsCmd struct {
	posts []models.Post
}

type updatePostCmd struct {
	patch PostPatch
}

type deletePostCmd struct {
	id int64
}

func (setPostsCmd) isCommand()   {}
func (updatePostCmd) isCommand() {}
func (deletePostCmd) isCommand() {}

// PostPatch carries a partial update for one post. Nil fields are left alone;
// the post kind itself is immutable once created.
type PostPatch struct {
	ID             int64
	Day            *string
	ImageType      *string
	Icon           *string
	Title          *string
	Objective      *string
	Copy           *string
	Hashtags       *[]string
	Media          *[]models.MediaItem
	VisualMediaURL *string
	DownloadURL    *string
	Stats          *models.PostStats
}

func apply(posts []models.Post, cmd command) ([]models.Post, bool) {
	switch c := cmd.(type) {
	case setPostsCmd:
		next := make([]models.Post, len(c.posts))
		copy(next, c.posts)
		return next, true

	case updatePostCmd:
		for i := range posts {
			if posts[i].ID != c.patch.ID {
				continue
			}
			next := make([]models.Post, len(posts))
			copy(next, posts)
			next[i] = mergePatch(posts[i], c.patch)
			return next, true
		}
		// Unknown id: silent no-op
		return posts, false

	case deletePostCmd:
		for i := range posts {
			if posts[i].ID != c.id {
				continue
			}
			next := make([]models.Post, 0, len(posts)-1)
			next = append(next, posts[:i]...)
			next = append(next, posts[i+1:]...)
			return next, true
		}
		return posts, false
	}
	return posts, false
}

func mergePatch(post models.Post, patch PostPatch) models.Post {
	if patch.Day != nil {
		post.Day = *patch.Day
	}
	if patch.ImageType != nil {
		post.ImageType = *patch.ImageType
	}
	if patch.Icon != nil {
		post.Icon = *patch.Icon
	}
	if patch.Title != nil {
		post.Title = *patch.Title
	}
	if patch.Objective != nil {
		post.Objective = *patch.Objective
	}
	if patch.Copy != nil {
		post.Copy = *patch.Copy
	}
	if patch.Hashtags != nil {
		post.Hashtags = models.NormalizeHashtags(*patch.Hashtags)
	}
	if patch.Media != nil {
		// SetMedia enforces the carousel invariants and re-derives the primary
		// URLs; an invalid media patch leaves the media untouched.
		_ = post.SetMedia(*patch.Media)
	}
	if patch.VisualMediaURL != nil {
		post.VisualMediaURL = *patch.VisualMediaURL
	}
	if patch.DownloadURL != nil {
		post.DownloadURL = *patch.DownloadURL
	}
	if patch.Stats != nil {
		post.Stats = *patch.Stats
	}
	return post
}
