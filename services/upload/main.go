package main

import (
	"feed-planner/pkg/config"
	"feed-planner/pkg/logger"
	"feed-planner/services/upload/internal/app"
)

// @title           Feed Planner Upload Relay
// @version         1.0
// @description     Pass-through media upload proxy for the content planner.
// @BasePath        /api/v1
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New()

	app.Run(cfg, log)
}
