package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.temporal.io/sdk/client"

	"github.com/sandaveisa-cloud/Balearic-Charter-2026-sub001/internal/config"
	"github.com/sandaveisa-cloud/Balearic-Charter-2026-sub001/internal/document"
	"github.com/sandaveisa-cloud/Balearic-Charter-2026-sub001/internal/handlers"
	"github.com/sandaveisa-cloud/Balearic-Charter-2026-sub001/internal/pricing"
	"github.com/sandaveisa-cloud/Balearic-Charter-2026-sub001/internal/repository"
	"github.com/sandaveisa-cloud/Balearic-Charter-2026-sub001/internal/router"
	"github.com/sandaveisa-cloud/Balearic-Charter-2026-sub001/internal/service"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	// Connect to database for the inquiry read surface
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}

	// Create Temporal client
	temporalClient, err := client.Dial(client.Options{
		HostPort: cfg.TemporalHost,
	})
	if err != nil {
		log.Fatalf("Failed to create Temporal client: %v", err)
	}
	defer temporalClient.Close()

	// Load the fleet
	catalog := pricing.DefaultCatalog()
	if cfg.CatalogPath != "" {
		catalog, err = pricing.LoadCatalog(cfg.CatalogPath)
		if err != nil {
			log.Fatalf("Failed to load yacht catalog: %v", err)
		}
	}

	repo := repository.NewRepository(pool)
	generator := document.NewGenerator(document.Branding{
		CompanyName: cfg.CompanyName,
		AddressLine: cfg.CompanyAddress,
		ContactLine: cfg.CompanyContact,
	})

	// Initialize services
	bookingService := service.NewBookingService(temporalClient, catalog, repo, generator)

	// Initialize handlers
	h := handlers.NewHandler(bookingService)

	// Create router
	r := router.SetupRouter(h)

	// Create HTTP server. The write timeout leaves room for a synchronous
	// pipeline run, which can take up to the sum of the stage timeouts.
	srv := &http.Server{
		Addr:         ":" + cfg.APIPort,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("API server starting on port %s", cfg.APIPort)
		log.Printf("Connected to Temporal server at %s", cfg.TemporalHost)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}
