package feedclient

import (
	"feed-planner/pkg/models"
)

// Story highlights shown above the grid. Static lookup data, never persisted.
var storiesData = map[string][]models.Story{
	"Boutique": {
		{Type: models.MediaKindImage, URL: "https://i.imgur.com/hUbk3tk.png", Duration: 5000},
		{Type: models.MediaKindImage, URL: "https://i.imgur.com/4zlKVOp.png", Duration: 5000},
	},
	"Chocolates": {
		{Type: models.MediaKindImage, URL: "https://i.imgur.com/cODXWwD.jpeg", Duration: 5000},
		{Type: models.MediaKindVideo, URL: "https://i.imgur.com/o2zykFg.mp4", Duration: 10000},
	},
	"Reviews": {
		{Type: models.MediaKindImage, URL: "https://i.imgur.com/b3HdF7B.jpeg", Duration: 5000},
	},
	"CandyLovers": {
		{Type: models.MediaKindImage, URL: "https://i.imgur.com/6lhpSrE.png", Duration: 5000},
	},
	"Candies": {
		{Type: models.MediaKindVideo, URL: "https://i.imgur.com/b3GUS5O.mp4", Duration: 15000},
	},
}

// Stories returns the story highlight groups keyed by category name.
func Stories() map[string][]models.Story {
	out := make(map[string][]models.Story, len(storiesData))
	for category, stories := range storiesData {
		group := make([]models.Story, len(stories))
		copy(group, stories)
		out[category] = group
	}
	return out
}
