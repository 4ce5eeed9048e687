package main

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	"github.com/sandaveisa-cloud/Balearic-Charter-2026-sub001/internal/activities"
	"github.com/sandaveisa-cloud/Balearic-Charter-2026-sub001/internal/config"
	"github.com/sandaveisa-cloud/Balearic-Charter-2026-sub001/internal/document"
	"github.com/sandaveisa-cloud/Balearic-Charter-2026-sub001/internal/mailer"
	"github.com/sandaveisa-cloud/Balearic-Charter-2026-sub001/internal/models"
	"github.com/sandaveisa-cloud/Balearic-Charter-2026-sub001/internal/notify"
	"github.com/sandaveisa-cloud/Balearic-Charter-2026-sub001/internal/repository"
	"github.com/sandaveisa-cloud/Balearic-Charter-2026-sub001/internal/workflows"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	// Connect to database
	log.Println("Connecting to database...")
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}
	log.Println("Connected to database")

	// Apply pending migrations
	if err := repository.RunMigrations(cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	repo := repository.NewRepository(pool)
	generator := document.NewGenerator(document.Branding{
		CompanyName: cfg.CompanyName,
		AddressLine: cfg.CompanyAddress,
		ContactLine: cfg.CompanyContact,
	})
	sender := mailer.NewSendGridSender(mailer.Config{
		APIKey:      cfg.SendGridAPIKey,
		FromName:    cfg.EmailFromName,
		FromAddress: cfg.EmailFromAddr,
	})
	if !sender.Configured() {
		log.Println("SENDGRID_API_KEY not set, notifications will be skipped")
	}
	dispatcher := notify.NewDispatcher(sender, cfg.OpsEmailAddr)

	// Connect to Temporal
	log.Printf("Connecting to Temporal at %s...", cfg.TemporalHost)
	c, err := client.Dial(client.Options{
		HostPort: cfg.TemporalHost,
	})
	if err != nil {
		log.Fatalf("Failed to connect to Temporal: %v", err)
	}
	defer c.Close()
	log.Println("Connected to Temporal")

	// Create worker
	w := worker.New(c, models.TaskQueue, worker.Options{})

	// Register workflows
	w.RegisterWorkflowWithOptions(workflows.OfferPipelineWorkflow, workflow.RegisterOptions{Name: models.OfferPipelineName})

	// Create and register activities
	acts := activities.NewActivities(generator, repo, dispatcher)
	w.RegisterActivityWithOptions(acts.RenderOfferDocument, activity.RegisterOptions{Name: "RenderOfferDocument"})
	w.RegisterActivityWithOptions(acts.PersistInquiry, activity.RegisterOptions{Name: "PersistInquiry"})
	w.RegisterActivityWithOptions(acts.NotifyGuest, activity.RegisterOptions{Name: "NotifyGuest"})
	w.RegisterActivityWithOptions(acts.NotifyInternal, activity.RegisterOptions{Name: "NotifyInternal"})

	// Start worker
	log.Println("Starting Temporal worker...")
	err = w.Run(worker.InterruptCh())
	if err != nil {
		log.Fatalf("Worker failed: %v", err)
	}
}
