package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	httpapi "leasehold-backend/internal/api/http"
	"leasehold-backend/internal/config"
	"leasehold-backend/internal/lifecycle"
	"leasehold-backend/internal/logger"
	"leasehold-backend/internal/repository/postgres"
	"leasehold-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Leasehold Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)
	logger.Info("Settlement configuration", "rule_set", cfg.Settlement.RuleSet)

	// Initialize Database
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

	// Initialize Email Service
	emailSvc := buildEmailService(cfg)

	// Initialize Services
	noteSvc := service.NewNotificationService(store.NotificationRepository)
	leaseSvc := service.NewLeaseService(store.LeaseRepository)
	termSvc := service.NewTerminationService(
		store.LeaseRepository,
		store.UserRepository,
		emailSvc,
		noteSvc,
		lifecycle.RuleSet(cfg.Settlement.RuleSet),
		nil,
	)

	// Initialize HTTP handlers
	leaseHandler := httpapi.NewLeaseHandler(leaseSvc, noteSvc)
	terminationHandler := httpapi.NewTerminationHandler(termSvc)
	router := httpapi.NewRouter(leaseHandler, terminationHandler)

	srv := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	// Start HTTP server in a goroutine
	go func() {
		logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", "error", err)
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down HTTP server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}
	logger.Info("Server stopped. Goodbye!")
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
