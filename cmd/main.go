/*
Package main is the entry point for the PulseHub server.

It is responsible for loading configuration, initializing the global logging system,
connecting to PostgreSQL and object storage, starting the realtime hub, and gracefully
handling operating system interrupt signals (SIGINT, SIGTERM) to ensure a smooth
server shutdown.
*/
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"pulsehub/internal/app/db"
	"pulsehub/internal/app/hub"
	"pulsehub/internal/app/storage"
	"pulsehub/internal/app/store"
	"pulsehub/internal/configs"
	"pulsehub/internal/handler"
	"pulsehub/internal/pkg/logx"
)

func main() {
	// Load configuration from environment variables
	cfg, err := configs.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	logx.InitGlobalLogger(cfg.IsDevelopment())
	logx.Logger().Info().
		Str("environment", cfg.Environment).
		Int("port", cfg.Port).
		Strs("allowed_origins", cfg.AllowedOrigins).
		Msg("Configuration loaded successfully")

	// Create a context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(cfg.DatabaseDSN)
	if err != nil {
		logx.Fatal(err, "Failed to connect to database")
	}
	defer pool.Close()

	storageService, err := storage.NewStorageService(storage.ServiceConfig{
		S3BucketName:      cfg.S3BucketName,
		S3Endpoint:        cfg.S3Endpoint,
		S3AccessKeyID:     cfg.S3AccessKeyID,
		S3SecretAccessKey: cfg.S3SecretAccessKey,
	})
	if err != nil {
		logx.Fatal(err, "Failed to initialize storage service")
	}

	users := store.NewUserStore(pool, storageService)
	messages := store.NewMessageStore(pool)
	updates := store.NewUpdateStore(pool)

	// Initialize the realtime hub
	h := hub.NewHub(users, messages, updates)

	// Setup HTTP server and routes
	router := handler.Router(&handler.AppDeps{
		Hub:            h,
		Config:         cfg,
		StorageService: storageService,
		Users:          users,
	})

	serverAddr := fmt.Sprintf(":%d", cfg.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logx.Info(fmt.Sprintf("PulseHub Server starting on http://localhost%s", serverAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		// Wait for interrupt signal to gracefully shutdown the server with a timeout of 5 seconds.
		<-gCtx.Done()
		logx.Info("Received shutdown signal. Starting graceful shutdown...")

		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancelShutdown()

		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logx.Fatal(err, "Server terminated abnormally")
	}

	h.Shutdown()

	logx.Info("Server gracefully stopped.")
}
