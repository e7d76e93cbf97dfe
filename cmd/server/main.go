package main

import (
	"context"
	"log"
	"time"

	"bountyboard/internal/api"
	"bountyboard/internal/config"
	"bountyboard/internal/geocode"
	"bountyboard/internal/middleware"
	"bountyboard/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Main function to set up and run the server. All entity state lives in
// the in-memory stores: created empty here, discarded at process end.
func main() {
	cfg := config.LoadConfig()

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Setup Redis client for the response cache. Caching is optional: with
	// no REDIS_ADDR the server runs with every lookup going to the stores.
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPass,
			DB:       cfg.RedisDB,
		})
		if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
			logrus.Fatalf("failed to connect to Redis: %v", err)
		}
	}

	stores := store.New()
	geocoder := geocode.NewClient(cfg.GeocodeBaseURL)

	// Background sweep: expire overdue open tasks for the process lifetime.
	go func() {
		ticker := time.NewTicker(cfg.SweepInterval)
		defer ticker.Stop()
		for now := range ticker.C {
			if n := stores.Tasks.ExpireTasks(now); n > 0 {
				logrus.WithField("count", n).Info("Expired overdue tasks")
			}
		}
	}()

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup Gin
	r := gin.Default()
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	// Auth routes
	r.POST("/register", api.RegisterHandler(stores.Users, cfg.AdminEmail))
	r.POST("/login", api.LoginHandler(stores.Users, cfg.JWTSecret))

	// Everything below requires a live session bound to an active account.
	authed := r.Group("")
	authed.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret), middleware.ActiveUserMiddleware(stores.Users))

	// Profile page: data load plus the form action dispatch.
	authed.GET("/profile/:id", api.ProfileHandler(stores, redisClient))
	authed.POST("/profile/:id", api.ProfileActionHandler(stores, geocoder, redisClient))

	// Task board
	authed.GET("/tasks", api.TasksHandler(stores))
	authed.POST("/tasks", api.TaskActionHandler(stores))

	// Notifications
	authed.GET("/notifications", api.ListNotificationsHandler(stores))
	authed.POST("/notifications/:id/read", api.MarkNotificationReadHandler(stores))

	// Operator routes: listings and ledger settlement. Admin accounts only.
	adminGroup := authed.Group("/admin")
	adminGroup.Use(middleware.AdminOnlyMiddleware(stores.Users))
	adminGroup.GET("/users", api.ListUsersHandler(stores, redisClient))
	adminGroup.GET("/transactions", api.ListTransactionsHandler(stores, redisClient))
	adminGroup.POST("/transactions/:id/complete", api.SettleTransactionHandler(stores, redisClient, true))
	adminGroup.POST("/transactions/:id/fail", api.SettleTransactionHandler(stores, redisClient, false))

	log.Println("Server running on " + cfg.AppPort)
	r.Run(":" + cfg.AppPort)
}
