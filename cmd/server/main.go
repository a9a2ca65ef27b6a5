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
	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/auction-data-service/internal/api/handlers"
	"github.com/stitts-dev/auction-data-service/internal/api/middleware"
	"github.com/stitts-dev/auction-data-service/internal/models"
	"github.com/stitts-dev/auction-data-service/internal/providers"
	"github.com/stitts-dev/auction-data-service/internal/services"
	"github.com/stitts-dev/auction-data-service/pkg/config"
	"github.com/stitts-dev/auction-data-service/pkg/database"
	"github.com/stitts-dev/auction-data-service/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Initialize structured logger with service context
	structuredLogger := logger.InitLogger("info", cfg.IsDevelopment())
	logger.WithService("auction-data-service").WithFields(logrus.Fields{
		"environment": cfg.Env,
		"port":        cfg.Port,
	}).Info("Starting Auction Data Service")

	// Setup Gin mode
	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewConnection(cfg.DatabaseURL, cfg.IsDevelopment())
	if err != nil {
		logger.WithService("auction-data-service").Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.AutoMigrate(&models.PersistedPlayer{}); err != nil {
		logger.WithService("auction-data-service").Fatalf("Failed to migrate database: %v", err)
	}

	// Initialize source adapters
	sleeper := providers.NewSleeperClient(cfg.SleeperBaseURL, cfg.ExternalAPITimeout, structuredLogger)
	fantasyPros := providers.NewFantasyProsClient(cfg.FantasyProsBaseURL, cfg.ExternalAPITimeout, structuredLogger)
	nfl := providers.NewNFLClient(cfg.NFLBaseURL, cfg.ExternalAPITimeout, structuredLogger)
	espn := providers.NewESPNClient(
		cfg.ESPNBaseURL,
		cfg.ExternalAPITimeout,
		providers.DefaultESPNTeamNames,
		providers.DefaultESPNPositionNames,
		structuredLogger,
	)
	yahoo := providers.NewYahooClient(cfg.YahooBaseURL, cfg.ExternalAPITimeout, structuredLogger)

	// Initialize services
	circuitBreakerService := services.NewCircuitBreakerService(
		cfg.CircuitBreakerThreshold,
		cfg.ExternalAPITimeout,
		structuredLogger,
	)
	mergeDefaults := services.MergeDefaults{
		Scoring:  cfg.DefaultScoring,
		NumTeams: cfg.DefaultNumTeams,
		Budget:   cfg.DefaultBudget,
	}
	auctionService := services.NewAuctionService(
		fantasyPros,
		sleeper,
		nfl,
		espn,
		yahoo,
		circuitBreakerService,
		mergeDefaults,
		structuredLogger,
	)
	playerService := services.NewPlayerService(db, structuredLogger)

	// Initialize router
	router := gin.New()
	router.Use(middleware.RequestID(), middleware.RequestLogger(structuredLogger), gin.Recovery())

	// Initialize handlers
	auctionHandler := handlers.NewAuctionHandler(auctionService, mergeDefaults, structuredLogger)
	playerHandler := handlers.NewPlayerHandler(playerService, structuredLogger)
	healthHandler := handlers.NewHealthHandler(db, structuredLogger)

	// Aggregation endpoints
	router.GET("/", auctionHandler.Root)
	router.GET("/draft/:draft_id", auctionHandler.GetDraftPrices)
	router.GET("/fantasypros", auctionHandler.GetProjectedValues)
	router.GET("/auction", auctionHandler.GetMergedValues)
	router.GET("/auction/nfl-com", auctionHandler.GetNFLValues)
	router.GET("/auction/espn", auctionHandler.GetESPNValues)
	router.GET("/auction/yahoo", auctionHandler.GetYahooValues)

	// Persisted player endpoints
	router.GET("/players", playerHandler.ListPlayers)
	router.POST("/players", playerHandler.CreatePlayer)
	router.GET("/players/:id", playerHandler.GetPlayer)

	// Health check endpoints
	router.GET("/health", healthHandler.GetHealth)
	router.HEAD("/health", healthHandler.GetHealth)

	// Create HTTP server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		logger.WithService("auction-data-service").WithField("port", cfg.Port).Info("Auction data service started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithService("auction-data-service").Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.WithService("auction-data-service").Info("Shutting down auction data service...")

	// The server has 5 seconds to finish the request it is currently handling
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.WithService("auction-data-service").Fatalf("Auction data service forced to shutdown: %v", err)
	}

	logger.WithService("auction-data-service").Info("Auction data service exited")
}
