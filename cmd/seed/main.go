package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"feed-planner/pkg/config"
	"feed-planner/pkg/feedclient"
	"feed-planner/pkg/logger"
	"feed-planner/pkg/models"
)

// Seeds a demo content week into a fresh feed through the running services,
// so a new deployment has something to show.
func main() {
	var feedID string
	flag.StringVar(&feedID, "feed-id", "", "Existing feed id to overwrite (a new feed is created when empty)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log := logger.New()
	client := feedclient.NewClient(cfg.FeedServiceURL, cfg.UploadServiceURL)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if feedID == "" {
		feedID, err = client.CreateFeed(ctx)
		if err != nil {
			log.Error("Failed to create feed: %v", err)
			panic(err)
		}
		log.Info("Created feed: %s", feedID)
	}

	if err := client.SaveFeed(ctx, feedID, demoPosts()); err != nil {
		log.Error("Failed to seed feed %s: %v", feedID, err)
		panic(err)
	}

	log.Info("Feed %s seeded successfully!", feedID)
	log.Info("Share link: ?feedId=%s", feedID)
}

func demoPosts() []models.Post {
	return []models.Post{
		{
			ID:             1,
			Type:           models.PostKindStatic,
			Day:            "Mon Dec 15",
			ImageType:      "Product Photo",
			Icon:           "📸",
			Title:          "COTW: Milk vs Dark",
			Objective:      "Product / Dilemma",
			Stats:          models.PostStats{Views: "4.2k", Likes: 310},
			VisualMediaURL: "https://i.imgur.com/8wZ0g3d.jpeg",
			Copy:           "The eternal question. Team Milk or Team Dark? Drop your side below 🍫",
			Hashtags:       []string{"#TeamMilk", "#TeamDark", "#CandyLovers"},
		},
		{
			ID:             2,
			Type:           models.PostKindReel,
			Day:            "Tue Dec 16",
			ImageType:      "ASMR Video",
			Icon:           "🎬",
			Title:          "ASMR Crunch",
			Objective:      "Sensory / Engagement",
			Stats:          models.PostStats{Views: "22.1k", Likes: 1640},
			VisualMediaURL: "https://i.imgur.com/GbYvbLQ.mp4",
			Copy:           "Sound ON 🔊 That first crack tho...",
			Hashtags:       []string{"#ASMR", "#SatisfyingSounds", "#ChocolateCrunch"},
		},
		{
			ID:        3,
			Type:      models.PostKindCarousel,
			Day:       "Fri Dec 19",
			ImageType: "Customer Photos",
			Icon:      "🖼️",
			Title:     "Caught the Vibe",
			Objective: "Community / UGC",
			Stats:     models.PostStats{Views: "8.7k", Likes: 590},
			Media: []models.MediaItem{
				{Type: models.MediaKindImage, URL: "https://i.imgur.com/0tWvajM.jpeg"},
				{Type: models.MediaKindImage, URL: "https://i.imgur.com/UZb0Uah.jpeg"},
				{Type: models.MediaKindImage, URL: "https://i.imgur.com/hDb7AZO.jpeg"},
			},
			VisualMediaURL: "https://i.imgur.com/0tWvajM.jpeg",
			Copy:           "You bring the vibe, we bring the sugar. Tag us to get featured ✨",
			Hashtags:       []string{"#CandyShop", "#SweetTooth", "#MiamiBeach"},
		},
	}
}
