package feedclient

import (
	"testing"

	"feed-planner/pkg/models"

	"github.com/stretchr/testify/assert"
)

func samplePosts() []models.Post {
	return []models.Post{
		{
			ID:             1,
			Type:           models.PostKindStatic,
			Day:            "Mon Dec 15",
			Title:          "COTW: Milk vs Dark",
			Objective:      "Product / Dilemma",
			Copy:           "Team Milk vs Team Dark.",
			Hashtags:       []string{"#TeamMilk", "#TeamDark"},
			VisualMediaURL: "https://example.com/one.jpg",
			Stats:          models.PostStats{Likes: 310, Views: "4.2k"},
		},
		{
			ID:             2,
			Type:           models.PostKindReel,
			Day:            "Tue Dec 16",
			Title:          "ASMR Crunch",
			Objective:      "Sensory / Engagement",
			VisualMediaURL: "https://example.com/two.mp4",
			Stats:          models.PostStats{Likes: 1600, Views: "22.1k"},
		},
		{
			ID:    3,
			Type:  models.PostKindCarousel,
			Day:   "Fri Dec 19",
			Title: "Caught the Vibe",
			Media: []models.MediaItem{
				{Type: models.MediaKindImage, URL: "https://example.com/a.jpg"},
				{Type: models.MediaKindImage, URL: "https://example.com/b.jpg"},
			},
			VisualMediaURL: "https://example.com/a.jpg",
		},
	}
}

func TestApply_SetPosts(t *testing.T) {
	posts := samplePosts()
	replacement := []models.Post{posts[1]}

	next, changed := apply(posts, setPostsCmd{posts: replacement})

	assert.True(t, changed)
	assert.Len(t, next, 1)
	assert.Equal(t, int64(2), next[0].ID)
	// Input untouched
	assert.Len(t, posts, 3)
}

func TestApply_UpdatePost_SingleField(t *testing.T) {
	posts := samplePosts()
	title := "A"

	next, changed := apply(posts, updatePostCmd{patch: PostPatch{ID: 1, Title: &title}})

	assert.True(t, changed)
	assert.Equal(t, "A", next[0].Title)
	// Every other field of the patched post is untouched
	assert.Equal(t, posts[0].Day, next[0].Day)
	assert.Equal(t, posts[0].Objective, next[0].Objective)
	assert.Equal(t, posts[0].Copy, next[0].Copy)
	assert.Equal(t, posts[0].Hashtags, next[0].Hashtags)
	assert.Equal(t, posts[0].Stats, next[0].Stats)
	assert.Equal(t, posts[0].VisualMediaURL, next[0].VisualMediaURL)
	// Other posts are identical
	assert.Equal(t, posts[1], next[1])
	assert.Equal(t, posts[2], next[2])
	// Original untouched
	assert.Equal(t, "COTW: Milk vs Dark", posts[0].Title)
}

func TestApply_UpdatePost_UnknownID(t *testing.T) {
	posts := samplePosts()
	title := "A"

	next, changed := apply(posts, updatePostCmd{patch: PostPatch{ID: 999, Title: &title}})

	assert.False(t, changed)
	assert.Equal(t, posts, next)
}

func TestApply_UpdatePost_NormalizesHashtags(t *testing.T) {
	posts := samplePosts()
	tags := []string{"CandyLovers", "#MiamiBeach"}

	next, _ := apply(posts, updatePostCmd{patch: PostPatch{ID: 1, Hashtags: &tags}})

	assert.Equal(t, []string{"#CandyLovers", "#MiamiBeach"}, next[0].Hashtags)
}

func TestApply_UpdatePost_MediaDerivesPrimary(t *testing.T) {
	posts := samplePosts()
	media := []models.MediaItem{
		{Type: models.MediaKindVideo, URL: "https://example.com/new.mp4", DownloadURL: "https://example.com/dl/new"},
		{Type: models.MediaKindImage, URL: "https://example.com/b.jpg"},
	}

	next, changed := apply(posts, updatePostCmd{patch: PostPatch{ID: 3, Media: &media}})

	assert.True(t, changed)
	assert.Equal(t, "https://example.com/new.mp4", next[2].VisualMediaURL)
	assert.Equal(t, "https://example.com/dl/new", next[2].DownloadURL)
	assert.Len(t, next[2].Media, 2)
}

func TestApply_UpdatePost_MediaOnStaticIgnored(t *testing.T) {
	posts := samplePosts()
	media := []models.MediaItem{{Type: models.MediaKindImage, URL: "https://example.com/x.jpg"}}

	next, changed := apply(posts, updatePostCmd{patch: PostPatch{ID: 1, Media: &media}})

	// The patch matched a post, but media is only valid on carousels
	assert.True(t, changed)
	assert.Empty(t, next[0].Media)
	assert.Equal(t, posts[0].VisualMediaURL, next[0].VisualMediaURL)
}

func TestApply_DeletePost(t *testing.T) {
	posts := samplePosts()

	next, changed := apply(posts, deletePostCmd{id: 2})

	assert.True(t, changed)
	assert.Len(t, next, 2)
	assert.Equal(t, int64(1), next[0].ID)
	assert.Equal(t, int64(3), next[1].ID)
}

func TestApply_DeletePost_UnknownID(t *testing.T) {
	posts := samplePosts()

	next, changed := apply(posts, deletePostCmd{id: 999})

	assert.False(t, changed)
	assert.Len(t, next, 3)
}
