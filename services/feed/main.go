package main

import (
	"feed-planner/pkg/cache"
	"feed-planner/pkg/config"
	"feed-planner/pkg/database"
	"feed-planner/pkg/logger"
	"feed-planner/services/feed/internal/app"

	"gorm.io/gorm"
)

// @title           Feed Planner API
// @version         1.0
// @description     Key-value feed persistence for the content planner.
// @BasePath        /api/v1
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New()

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("Failed to connect to redis: %v", err)
		panic(err)
	}

	var db *gorm.DB
	if cfg.StorageBackend == "postgres" {
		db, err = database.NewPostgresDB(cfg)
		if err != nil {
			log.Error("Failed to connect to database: %v", err)
			panic(err)
		}
	}

	app.Run(cfg, log, db, redisClient)
}
