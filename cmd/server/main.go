package main

import (
	"context"
	"ctchen222/bucketlist/internal/api/controller"
	"ctchen222/bucketlist/internal/api/repository"
	"ctchen222/bucketlist/internal/api/service"
	"ctchen222/bucketlist/internal/config"
	"ctchen222/bucketlist/internal/db"
	"ctchen222/bucketlist/internal/logger"
	"ctchen222/bucketlist/internal/server"
	"ctchen222/bucketlist/internal/telemetry"
	"ctchen222/bucketlist/internal/validator"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func main() {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	// Initialize telemetry
	if cfg.TelemetryEnabled {
		shutdown, err := telemetry.InitOtel(ctx, cfg.ServiceName, cfg.OTLPEndpoint)
		if err != nil {
			log.Fatalf("failed to initialize telemetry: %v", err)
		}
		defer func() {
			if err := shutdown(ctx); err != nil {
				log.Printf("Error shutting down telemetry: %v", err)
			}
		}()
	}

	logger.Init(cfg.TelemetryEnabled)

	// Register custom validation rules
	if err := validator.Init(); err != nil {
		log.Fatalf("failed to initialize validator: %v", err)
	}

	// Open SQLite pool and apply schema
	pool, err := db.Connect(cfg.DBPath)
	if err != nil {
		log.Fatalf("failed to initialize sqlite db: %v", err)
	}
	defer pool.Close()

	// Create repositories
	userRepo := repository.NewUserRepository(pool)
	bucketlistRepo := repository.NewBucketlistRepository(pool)

	// Create services
	tokenService := service.NewTokenService([]byte(cfg.TokenSecret), cfg.TokenTTL)
	authService := service.NewAuthService(userRepo, tokenService)
	bucketlistService := service.NewBucketlistService(bucketlistRepo)

	// Create controllers
	authController := controller.NewAuthController(authService)
	bucketlistController := controller.NewBucketlistController(bucketlistService)

	// Create the Gin-based server
	srv := server.NewServer(authController, bucketlistController, tokenService)

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	httpServer := &http.Server{
		Addr:    cfg.Addr,
		Handler: srv.Engine(),
	}

	go func() {
		log.Printf("http server started on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("ListenAndServe: %v", err)
		}
	}()

	<-stop

	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}
