package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/RaviPatel94/Gitstats/internal/gateway"
	"github.com/RaviPatel94/Gitstats/internal/handlers"
	"github.com/RaviPatel94/Gitstats/internal/middleware"
	"github.com/RaviPatel94/Gitstats/internal/services"
	"github.com/RaviPatel94/Gitstats/pkg/config"
	"github.com/RaviPatel94/Gitstats/pkg/logger"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	if err := config.Load(); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Set Gin mode
	gin.SetMode(config.AppConfig.Server.Mode)
	logger.Init()

	// Outbound GitHub plumbing
	estimatorCfg := config.AppConfig.Estimator
	gqlClient := gateway.NewGraphQLClient(config.AppConfig.GitHub.GraphQLURL)
	restClient, err := gateway.NewRESTClient(config.AppConfig.GitHub.Token, config.AppConfig.GitHub.APIURL)
	if err != nil {
		log.Fatalf("Failed to create GitHub REST client: %v", err)
	}
	batchPacer := gateway.NewPacer(time.Duration(estimatorCfg.BatchDelayMS) * time.Millisecond)
	requestPacer := gateway.NewPacer(time.Duration(estimatorCfg.RequestDelayMS) * time.Millisecond)

	// Initialize services
	profileService := services.NewProfileService(restClient)
	snapshotService := services.NewSnapshotService(
		gqlClient,
		estimatorCfg.MaxRetries,
		time.Duration(estimatorCfg.RetryBaseDelayMS)*time.Millisecond,
	)
	estimator := services.NewCommitEstimator(
		services.NewFallbackStrategy(estimatorCfg.CommitsPerRepoYear),
		services.NewTimelineStrategy(gqlClient, estimatorCfg.InitialCommitBonus),
		services.NewRepoHistoryStrategy(gqlClient, batchPacer, estimatorCfg.RepoBatchSize, estimatorCfg.InitialCommitBonus),
		services.NewCommitSearchStrategy(restClient, requestPacer),
	)
	languageService := services.NewLanguageService()
	statsService := services.NewStatsService(profileService, snapshotService, estimator, languageService)

	// Initialize router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.CredentialsMiddleware())

	// Setup routes
	userStatsHandler := handlers.NewUserStatsHandler(statsService)
	healthHandler := handlers.NewHealthHandler()
	router.GET("/githubuser/:username", userStatsHandler.GetUserStats)
	router.GET("/health", healthHandler.HealthCheck)

	// Setup server
	server := &http.Server{
		Addr:         ":" + config.AppConfig.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(config.AppConfig.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(config.AppConfig.Server.WriteTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		logger.Infof("Server starting on :%s", config.AppConfig.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Infof("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Errorf("Server shutdown failed: %v", err)
	}
	logger.Infof("Server stopped")
}
