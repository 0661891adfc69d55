package cmd

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/Samuel1-ona/tikka-contracts/api"
	"github.com/Samuel1-ona/tikka-contracts/application"
	"github.com/Samuel1-ona/tikka-contracts/config"
	"github.com/Samuel1-ona/tikka-contracts/database"
	"github.com/Samuel1-ona/tikka-contracts/infrastructure"

	"github.com/gin-gonic/gin"
)

// Run initializes and starts the application
func Run(ctx context.Context) error {
	log.Println("Starting tikka raffle service...")

	// Load configuration
	cfg := config.Get()

	// Initialize database connection
	log.Println("Connecting to database...")
	db, err := database.NewConnection(ctx, database.ConstructDatabaseURL(cfg.DatabaseURL, cfg.DatabaseName))
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Println("Database connection established successfully")

	// Initialize NATS event publisher
	log.Println("Connecting to NATS...")
	natsClient := infrastructure.NewNATSClient(cfg.NATSServers)
	if err := natsClient.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to NATS: %w", err)
	}
	eventPublisher := infrastructure.NewNATSEventPublisher(natsClient, infrastructure.NewEventSubjectMapper())
	if err := eventPublisher.EnsureRaffleEventStream(); err != nil {
		return fmt.Errorf("failed to ensure raffle event stream: %w", err)
	}
	log.Println("NATS connection established successfully")

	// Initialize unit of work factory
	log.Println("Initializing unit of work factory...")
	uowFactory := infrastructure.NewUnitOfWorkFactoryWrapper(db, eventPublisher)
	log.Println("Unit of work factory initialized successfully")

	// Start the oracle fulfillment consumer
	log.Println("Starting message consumer...")
	fulfillmentHandler := application.NewFulfillmentHandler(uowFactory, cfg.OperatorAddress, cfg.CoordinatorAddress, cfg.PendingRequestTimeout)
	messageConsumer := infrastructure.NewMessageConsumer(cfg.NATSServers, fulfillmentHandler)
	consumerErr := make(chan error, 1)
	go func() {
		if err := messageConsumer.Start(ctx); err != nil {
			consumerErr <- err
		}
	}()

	// Start the draw worker
	log.Println("Starting draw worker...")
	drawWorker := application.NewDrawWorker(uowFactory, cfg.DrawWorkerInterval, cfg.OperatorAddress, cfg.CoordinatorAddress, cfg.PendingRequestTimeout)
	stopDrawWorker := drawWorker.Start(ctx)

	// Initialize HTTP API
	log.Println("Initializing HTTP API...")
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	server := api.NewServer(uowFactory, api.ServerConfig{
		Operator:    cfg.OperatorAddress,
		Coordinator: cfg.CoordinatorAddress,
		Escrow:      cfg.EscrowAddress,
		StaleAfter:  cfg.PendingRequestTimeout,
		DevMode:     cfg.Environment != "production",
	})
	server.RegisterRoutes(router)

	httpServer := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: router,
	}
	serverErr := make(chan error, 1)
	go func() {
		log.Printf("HTTP API listening on %s", cfg.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	// Wait for context cancellation or a fatal component error
	log.Printf("Service is running in %s mode...", cfg.Environment)
	select {
	case <-ctx.Done():
	case err := <-serverErr:
		return fmt.Errorf("http server error: %w", err)
	case err := <-consumerErr:
		return fmt.Errorf("message consumer error: %w", err)
	}

	// Cleanup resources
	log.Println("Shutting down service...")

	// Give cleanup operations time to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error shutting down HTTP server: %v", err)
	}

	stopDrawWorker()
	messageConsumer.Stop()

	if err := natsClient.Close(); err != nil {
		log.Printf("Error closing NATS connection: %v", err)
	}

	// Close database connection
	log.Println("Closing database connection...")
	db.Close()

	log.Println("Shutdown completed")
	return nil
}
