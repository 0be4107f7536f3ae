package feedclient

import (
	"testing"

	"feed-planner/pkg/models"

	"github.com/stretchr/testify/assert"
)

func TestStories_KnownGroups(t *testing.T) {
	stories := Stories()

	assert.Contains(t, stories, "Boutique")
	assert.Contains(t, stories, "Chocolates")
	assert.Contains(t, stories, "Reviews")
	assert.Contains(t, stories, "CandyLovers")
	assert.Contains(t, stories, "Candies")

	for category, group := range stories {
		assert.NotEmpty(t, group, "category %s has no stories", category)
		for _, story := range group {
			assert.NotEmpty(t, story.URL)
			assert.Greater(t, story.Duration, 0)
		}
	}
}

func TestStories_ReturnsACopy(t *testing.T) {
	first := Stories()
	first["Boutique"][0] = models.Story{Type: models.MediaKindImage, URL: "mutated"}

	second := Stories()
	assert.NotEqual(t, "mutated", second["Boutique"][0].URL)
}
