package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lingomate/api/docs" // Swagger docs (generated)
	"github.com/lingomate/api/internal/auth"
	"github.com/lingomate/api/internal/chat"
	"github.com/lingomate/api/internal/config"
	"github.com/lingomate/api/internal/database"
	httpServer "github.com/lingomate/api/internal/http"
	"github.com/lingomate/api/internal/logging"
	"github.com/lingomate/api/internal/user"
)

// @title           LingoMate API
// @version         1.0
// @description     Authentication and profile service for the LingoMate language-exchange app.

// @host      localhost:8080
// @BasePath  /

func main() {
	if err := run(); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	logger := logging.NewLogger(cfg.Server.IsDevelopment())
	logger.Info("starting application",
		"env", cfg.Server.Env,
		"port", cfg.Server.Port,
	)

	// Initialize MongoDB connection
	ctx := context.Background()
	mongoClient, err := database.Connect(ctx, cfg.Mongo)
	if err != nil {
		return fmt.Errorf("failed to initialize mongodb: %w", err)
	}
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()

	db := mongoClient.Database(cfg.Mongo.Database)
	if err := database.EnsureIndexes(ctx, db); err != nil {
		return fmt.Errorf("failed to ensure indexes: %w", err)
	}

	// Initialize repositories
	userRepo := user.NewRepository(db)

	// Initialize token service
	tokenService, err := auth.NewJWTService(cfg.Auth.JWTSecret)
	if err != nil {
		return fmt.Errorf("failed to initialize token service: %w", err)
	}

	// Initialize chat presence service
	chatService, err := chat.NewService(cfg.Stream.APIKey, cfg.Stream.APISecret)
	if err != nil {
		return fmt.Errorf("failed to initialize chat service: %w", err)
	}

	// Initialize auth service
	authService := auth.NewService(
		userRepo,
		tokenService,
		chatService,
		logger,
		cfg.Auth.SessionTokenDuration,
	)

	// Initialize HTTP handlers
	authHandler := auth.NewHandler(
		authService,
		!cfg.Server.IsDevelopment(), // isProduction
		cfg.Auth.SessionTokenDuration,
	)
	authMiddleware := auth.NewMiddleware(tokenService, userRepo)

	// Initialize router
	router := httpServer.NewRouter(cfg, authHandler, authMiddleware, logger)

	// Initialize HTTP server
	serverAddr := ":" + cfg.Server.Port
	server := httpServer.NewServer(
		serverAddr,
		router,
		logger,
		cfg.Server.ReadTimeout,
		cfg.Server.WriteTimeout,
	)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- server.Start()
	}()

	// Wait for interrupt signal or server error
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Printf("Received signal: %v", sig)

		// Graceful shutdown with timeout
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}
