package application

import (
	"context"
	"fmt"
	"time"

	"github.com/Samuel1-ona/tikka-contracts/application/dto"
	"github.com/Samuel1-ona/tikka-contracts/domain/services"

	log "github.com/sirupsen/logrus"
)

// FulfillmentHandlerImpl implements the FulfillmentHandler interface
type FulfillmentHandlerImpl struct {
	uowFactory  UnitOfWorkFactory
	operator    string
	coordinator string
	staleAfter  time.Duration
}

// NewFulfillmentHandler creates a new oracle fulfillment handler
func NewFulfillmentHandler(
	uowFactory UnitOfWorkFactory,
	operator string,
	coordinator string,
	staleAfter time.Duration,
) FulfillmentHandler {
	return &FulfillmentHandlerImpl{
		uowFactory:  uowFactory,
		operator:    operator,
		coordinator: coordinator,
		staleAfter:  staleAfter,
	}
}

// HandleFulfillment applies an oracle callback inside its own transaction.
// Returning an error lets the message bus redeliver, which covers a
// fulfillment racing ahead of its request's commit.
func (h *FulfillmentHandlerImpl) HandleFulfillment(ctx context.Context, fulfillment dto.FulfillmentDTO) error {
	log.WithFields(log.Fields{
		"requestId":   fulfillment.RequestID,
		"coordinator": fulfillment.Coordinator,
		"wordCount":   len(fulfillment.RandomWords),
	}).Info("Handling oracle fulfillment")

	uow := h.uowFactory.Create()
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
		h.operator,
		h.coordinator,
		h.staleAfter,
	)

	raffle, err := randomnessService.FulfillRandomWords(ctx, fulfillment.Coordinator, fulfillment.RequestID, fulfillment.RandomWords)
	if err != nil {
		return fmt.Errorf("failed to fulfill random words: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.WithFields(log.Fields{
		"raffleId":        raffle.ID,
		"requestId":       fulfillment.RequestID,
		"winner":          *raffle.Winner,
		"winningTicketId": *raffle.WinningTicketID,
	}).Info("Winner selected from oracle fulfillment")

	return nil
}
