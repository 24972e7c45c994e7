package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"youtube-be/config"
	"youtube-be/controllers"
	"youtube-be/middlewares"
	"youtube-be/models"
	"youtube-be/repository"
	"youtube-be/routes"
	"youtube-be/services"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	db, err := config.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	log.Println("MongoDB connection established successfully!")

	if err := models.EnsureIndexes(db); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}

	store := repository.NewMongoVoteStore(
		config.GetCollection(config.VideosCollection),
		config.GetCollection(config.UsersCollection),
	)

	var (
		limiter gin.HandlerFunc
		locker  services.Locker
	)
	if cfg.RedisEnabled() {
		rdb, err := config.ConnectRedis(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer rdb.Close()

		if cfg.VoteRateLimit > 0 {
			limiter = middlewares.VoteRateLimiter(rdb, cfg.VoteLimitPrefix, cfg.VoteRateLimit, cfg.VoteRateWindow)
		}
		if cfg.VoteLockEnabled {
			locker = services.NewRedisLocker(rdb, cfg.VoteLockTTL)
		}
	} else {
		log.Println("REDIS_ADDRESS not set, vote rate limiting and locking disabled")
	}

	r := gin.New()
	r.Use(middlewares.Logger(), gin.Recovery())

	routes.Setup(r, routes.Deps{
		Tokens:      controllers.TokenConfig{Secret: cfg.JWTSecret, TTL: cfg.JWTTTL},
		Votes:       services.NewEngagementService(store, locker),
		Likes:       store,
		Cleaner:     store,
		VoteLimiter: limiter,
		MediaDir:    cfg.MediaDir,
		CORSOrigins: cfg.CORSOrigins,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		log.Printf("Server listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
	if err := config.DisconnectDB(ctx); err != nil {
		log.Printf("Error disconnecting MongoDB: %v", err)
	}
}
