package application

import (
	"context"
	"fmt"
	"time"

	"github.com/Samuel1-ona/tikka-contracts/domain/entities"
	"github.com/Samuel1-ona/tikka-contracts/domain/services"

	log "github.com/sirupsen/logrus"
)

// DrawWorker requests randomness for ended raffles. The original design
// relied on the operator calling in by hand; the worker acts as the operator
// on an interval instead.
type DrawWorker struct {
	uowFactory  UnitOfWorkFactory
	interval    time.Duration
	operator    string
	coordinator string
	staleAfter  time.Duration
}

// NewDrawWorker creates a new draw worker
func NewDrawWorker(
	uowFactory UnitOfWorkFactory,
	interval time.Duration,
	operator string,
	coordinator string,
	staleAfter time.Duration,
) *DrawWorker {
	return &DrawWorker{
		uowFactory:  uowFactory,
		interval:    interval,
		operator:    operator,
		coordinator: coordinator,
		staleAfter:  staleAfter,
	}
}

// Start begins the draw worker
func (w *DrawWorker) Start(ctx context.Context) func() {
	stopChan := make(chan struct{})

	// Start the worker goroutine
	go func() {
		log.WithField("interval", w.interval).Info("Draw worker started")

		for {
			if err := w.processEndedRaffles(ctx); err != nil {
				log.Errorf("Error processing ended raffles: %v", err)
			}

			select {
			case <-ctx.Done():
				log.Info("Draw worker shutting down (context cancelled)...")
				return
			case <-stopChan:
				log.Info("Draw worker shutting down (stop requested)...")
				return
			case <-time.After(w.interval):
				// Timer fired, loop to process
			}
		}
	}()

	// Return cleanup function
	return func() {
		close(stopChan)
	}
}

// processEndedRaffles requests randomness for every raffle awaiting a draw
func (w *DrawWorker) processEndedRaffles(ctx context.Context) error {
	// Use a read transaction just to find the candidates
	uow := w.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	raffles, err := uow.RaffleRepository().GetEndedAwaitingDraw(ctx)
	if err != nil {
		uow.Rollback()
		return fmt.Errorf("failed to get raffles awaiting draw: %w", err)
	}
	uow.Rollback() // Close the read transaction

	if len(raffles) == 0 {
		log.Debug("No raffles awaiting draw")
		return nil
	}

	log.Infof("Found %d raffles awaiting draw", len(raffles))

	var successCount, failureCount int

	// Process each raffle in its own transaction
	for _, raffle := range raffles {
		if err := w.requestDraw(ctx, raffle); err != nil {
			log.Errorf("Error requesting draw for raffle %d: %v", raffle.ID, err)
			failureCount++
		} else {
			successCount++
		}
	}

	log.WithFields(log.Fields{
		"total_raffles": len(raffles),
		"successful":    successCount,
		"failed":        failureCount,
	}).Info("Completed draw request processing")

	return nil
}

// requestDraw requests randomness for a single raffle
func (w *DrawWorker) requestDraw(ctx context.Context, raffle *entities.Raffle) error {
	uow := w.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	randomnessService := services.NewRandomnessService(
		uow.RaffleRepository(),
		uow.TicketRepository(),
		uow.RandomnessRequestRepository(),
		uow.PlatformSettingsRepository(),
		uow.EventBus(),
		w.operator,
		w.coordinator,
		w.staleAfter,
	)

	requestID, err := randomnessService.RequestRandomWinner(ctx, w.operator, raffle.ID)
	if err != nil {
		return fmt.Errorf("failed to request random winner: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.WithFields(log.Fields{
		"raffle_id":    raffle.ID,
		"request_id":   requestID,
		"tickets_sold": raffle.TicketsSold,
	}).Info("Randomness requested for ended raffle")

	return nil
}
