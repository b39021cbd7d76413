package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/deeppatel632/ThinkVerse-social-site/internal/api"
	"github.com/deeppatel632/ThinkVerse-social-site/internal/auth"
	"github.com/deeppatel632/ThinkVerse-social-site/internal/cache"
	"github.com/deeppatel632/ThinkVerse-social-site/internal/db"
	"github.com/deeppatel632/ThinkVerse-social-site/internal/service"
	"github.com/deeppatel632/ThinkVerse-social-site/pkg/config"
	"github.com/deeppatel632/ThinkVerse-social-site/pkg/logging"
	"github.com/deeppatel632/ThinkVerse-social-site/pkg/telemetry"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logging.InitLogger(&cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logging.GetLogger().Sync()

	logger := logging.GetLogger()
	logger.Info("Starting ThinkVerse API Server")

	// Initialize telemetry
	telemetryShutdown, err := telemetry.Init(&cfg.Telemetry)
	if err != nil {
		logger.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	defer telemetryShutdown()

	// Connect to the database and run migrations
	database, err := db.New(&cfg.Database, cfg.Logging.Level)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close()

	if err := database.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Redis is optional; a nil-safe cache is returned when disabled
	redisCache, err := cache.New(&cfg.Redis)
	if err != nil {
		logger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisCache.Close()

	// Auth services
	tokens, err := auth.NewTokenService(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLHours)*time.Hour)
	if err != nil {
		logger.Fatal("Failed to create token service", zap.Error(err))
	}
	passwords := auth.NewPasswordService(cfg.Auth.BcryptCost)

	// Wire the service layer over the repositories
	repo := db.NewRepository(database.DB)
	accountRepo := db.NewAccountRepository(repo)
	socialRepo := db.NewSocialRepository(repo)
	postRepo := db.NewPostRepository(repo)
	engagementRepo := db.NewEngagementRepository(repo)
	conversationRepo := db.NewConversationRepository(repo)
	activityRepo := db.NewActivityRepository(repo)

	activity := service.NewActivity(activityRepo)
	services := api.Services{
		Accounts:  service.NewAccounts(accountRepo, socialRepo, postRepo, engagementRepo, activity, passwords, tokens),
		Social:    service.NewSocialGraph(accountRepo, socialRepo, activity, redisCache),
		Content:   service.NewContent(accountRepo, postRepo, engagementRepo, activity),
		Messaging: service.NewMessaging(accountRepo, conversationRepo),
		Activity:  activity,
	}

	// Create Gin router
	if cfg.Logging.Level == "DEBUG" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())

	router := api.NewRouter(services, tokens)
	router.SetupRoutes(engine)

	// Create HTTP server
	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: engine,
	}

	// Start server in goroutine
	go func() {
		logger.Info("Server starting", zap.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
