package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"feed-planner/pkg/config"
	"feed-planner/pkg/logger"
	"feed-planner/pkg/middleware"
	"feed-planner/pkg/queue"
	feedHTTP "feed-planner/services/feed/internal/controller/http"
	"feed-planner/services/feed/internal/live"
	"feed-planner/services/feed/internal/repo"
	"feed-planner/services/feed/internal/repo/kv"
	"feed-planner/services/feed/internal/repo/persistent"
	"feed-planner/services/feed/internal/usecase"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "feed-planner/services/feed/docs" // Swagger docs
)

func Run(cfg *config.Config, log *logger.Logger, db *gorm.DB, redisClient *redis.Client) {
	var feedRepo repo.FeedRepository
	if cfg.StorageBackend == "postgres" {
		feedRepo = persistent.NewFeedRepository(db)
	} else {
		feedRepo = kv.NewFeedRepository(redisClient)
	}

	// Feed events are optional; without a broker the save path just skips them.
	var events usecase.EventPublisher
	var queueClient *queue.Client
	if cfg.RabbitMQHost != "" {
		var err error
		queueClient, err = queue.NewRabbitMQClient(cfg, log)
		if err != nil {
			log.Warn("Feed events disabled, failed to connect to RabbitMQ: %v", err)
		} else {
			events = queueClient
		}
	}

	hub := live.NewHub(log)
	feedUseCase := usecase.NewFeedUseCase(feedRepo, hub, events, log)
	feedHandler := feedHTTP.NewFeedHandler(feedUseCase, hub, log)

	// Setup router
	r := gin.Default()
	r.HandleMethodNotAllowed = true
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method Not Allowed"})
	})

	// CORS middleware: feeds are shared by link across arbitrary origins
	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")
	api.Use(middleware.RateLimitMiddleware(redisClient, 200, time.Minute)) // 200 requests per minute

	{
		api.POST("/feeds", feedHandler.CreateFeed)
		api.GET("/feeds", feedHandler.GetFeed)
		api.POST("/feeds/save", feedHandler.SaveFeed)
		api.GET("/feeds/live", feedHandler.LiveFeed)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// Start server in a goroutine
	go func() {
		log.Info("Feed service starting on port %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down feed service...")

	// The context is used to inform the server it has 5 seconds to finish
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if queueClient != nil {
		queueClient.Close()
	}

	if db != nil {
		sqlDB, err := db.DB()
		if err == nil {
			if err := sqlDB.Close(); err != nil {
				log.Error("Error closing database: %v", err)
			}
		}
	}

	if err := redisClient.Close(); err != nil {
		log.Error("Error closing Redis: %v", err)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
		panic(err)
	}

	log.Info("Feed service exited")
}
