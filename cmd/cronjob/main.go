package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"

	"leasehold-backend/internal/config"
	"leasehold-backend/internal/jobs"
	"leasehold-backend/internal/logger"
	"leasehold-backend/internal/repository/postgres"
	"leasehold-backend/internal/scheduler"
	"leasehold-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run a specific job once and exit (e.g., 'apply-auto-renewals', 'all-nightly')")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Leasehold Cronjob Runner...", "log_level", cfg.Log.Level)

	// Initialize Database
	logger.Info("Connecting to database...", "host", cfg.Database.Host, "port", cfg.Database.Port)
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Services
	emailService := buildEmailService(cfg)
	noteService := service.NewNotificationService(store.NotificationRepository)
	renewalService := service.NewRenewalService(
		store.LeaseRepository,
		store.UserRepository,
		emailService,
		noteService,
		service.RenewalConfig{
			DefaultExtensionMonths:  cfg.Renewal.DefaultExtensionMonths,
			ResponseExtensionMonths: cfg.Renewal.ResponseExtensionMonths,
		},
	)

	jobServices := &jobs.Services{
		Renewal:      renewalService,
		Email:        emailService,
		Notification: noteService,
	}

	// Initialize Job Runner
	jobRunner := jobs.NewJobRunner(db, store, jobServices, cfg)

	// Check if running a single job
	if *runOnce != "" {
		logger.Info("Running job once", "job", *runOnce)
		runJobOnce(jobRunner, *runOnce)
		logger.Info("Job execution completed", "job", *runOnce)
		return
	}

	// Initialize Scheduler
	cronScheduler := scheduler.NewScheduler(jobRunner)

	// Start scheduler
	cronScheduler.Start()
	logger.Info("Cronjob scheduler is running. Press Ctrl+C to stop.")

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down cronjob scheduler...")
	cronScheduler.Stop()
	logger.Info("Cronjob scheduler stopped. Goodbye!")
}

// runJobOnce runs a specific job once and exits
func runJobOnce(jobRunner *jobs.JobRunner, jobName string) {
	switch jobName {
	case "apply-auto-renewals":
		jobRunner.ApplyAutoRenewals()
	case "send-renewal-notices":
		jobRunner.SendRenewalNotices()
	case "all-nightly":
		jobRunner.RunAllNightlyJobs()
	default:
		logger.Error("Unknown job name", "job", jobName)
		fmt.Printf("Available jobs:\n")
		fmt.Printf("  - apply-auto-renewals\n")
		fmt.Printf("  - send-renewal-notices\n")
		fmt.Printf("  - all-nightly\n")
		os.Exit(1)
	}
}

// buildEmailService picks the configured mail provider.
func buildEmailService(cfg *config.Config) service.EmailService {
	switch cfg.Email.Provider {
	case "sendgrid":
		logger.Info("Using SendGrid email provider")
		return service.NewSendGridEmailService(cfg.Email.SendGridAPIKey, cfg.SMTP.From, cfg.Email.FromName)
	default:
		logger.Info("Using SMTP email provider", "host", cfg.SMTP.Host, "port", cfg.SMTP.Port)
		return service.NewEmailService(
			cfg.SMTP.Host,
			fmt.Sprintf("%d", cfg.SMTP.Port),
			cfg.SMTP.User,
			cfg.SMTP.Password,
			cfg.SMTP.From,
		)
	}
}
