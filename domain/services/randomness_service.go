package services

import (
	"context"
	"fmt"
	"time"

	"github.com/Samuel1-ona/tikka-contracts/domain/entities"
	"github.com/Samuel1-ona/tikka-contracts/domain/events"
	"github.com/Samuel1-ona/tikka-contracts/domain/interfaces"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// randomnessService implements the oracle request/fulfill handshake.
// Per raffle the handshake moves NONE -> PENDING -> FULFILLED; the pending
// flag on the raffle row permits at most one outstanding request.
type randomnessService struct {
	raffleRepo     interfaces.RaffleRepository
	ticketRepo     interfaces.TicketRepository
	requestRepo    interfaces.RandomnessRequestRepository
	settingsRepo   interfaces.PlatformSettingsRepository
	eventPublisher interfaces.EventPublisher
	operator       string
	coordinator    string
	staleAfter     time.Duration
}

// NewRandomnessService creates a new randomness handshake service. The
// operator and coordinator identities are fixed at construction; staleAfter
// is the minimum age before a pending request may be reset.
func NewRandomnessService(
	raffleRepo interfaces.RaffleRepository,
	ticketRepo interfaces.TicketRepository,
	requestRepo interfaces.RandomnessRequestRepository,
	settingsRepo interfaces.PlatformSettingsRepository,
	eventPublisher interfaces.EventPublisher,
	operator string,
	coordinator string,
	staleAfter time.Duration,
) interfaces.RandomnessService {
	return &randomnessService{
		raffleRepo:     raffleRepo,
		ticketRepo:     ticketRepo,
		requestRepo:    requestRepo,
		settingsRepo:   settingsRepo,
		eventPublisher: eventPublisher,
		operator:       operator,
		coordinator:    coordinator,
		staleAfter:     staleAfter,
	}
}

// RequestRandomWinner starts the draw for an ended raffle
func (s *randomnessService) RequestRandomWinner(ctx context.Context, caller string, raffleID int64) (string, error) {
	if caller != s.operator {
		return "", entities.ErrNotOperator
	}

	raffle, err := s.raffleRepo.GetByIDForUpdate(ctx, raffleID)
	if err != nil {
		return "", fmt.Errorf("failed to get raffle: %w", err)
	}
	if raffle == nil {
		return "", entities.ErrRaffleNotFound
	}

	if !raffle.HasEnded() {
		return "", entities.ErrRaffleNotEnded
	}
	if !raffle.IsActive {
		return "", entities.ErrRaffleInactive
	}
	if raffle.TicketsSold == 0 {
		return "", entities.ErrNoTicketsSold
	}
	if raffle.DrawPending {
		return "", entities.ErrDrawAlreadyPending
	}

	settings, err := s.settingsRepo.GetOrCreate(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get platform settings: %w", err)
	}

	request := &entities.RandomnessRequest{
		RequestID: uuid.New().String(),
		RaffleID:  raffleID,
	}
	if err := s.requestRepo.Create(ctx, request); err != nil {
		return "", fmt.Errorf("failed to record randomness request: %w", err)
	}

	raffle.DrawPending = true
	if err := s.raffleRepo.Update(ctx, raffle); err != nil {
		return "", fmt.Errorf("failed to mark raffle pending: %w", err)
	}

	// This publication is the outbound oracle request; it reaches the
	// transport only after the enclosing transaction commits.
	if err := s.eventPublisher.Publish(events.RandomnessRequestedEvent{
		RaffleID:         raffleID,
		RequestID:        request.RequestID,
		KeyHash:          settings.Oracle.KeyHash,
		SubscriptionID:   settings.Oracle.SubscriptionID,
		Confirmations:    settings.Oracle.Confirmations,
		CallbackGasLimit: settings.Oracle.CallbackGasLimit,
		NumWords:         entities.RandomWordCount,
		NativePayment:    settings.Oracle.NativePayment,
	}); err != nil {
		return "", fmt.Errorf("failed to publish randomness request: %w", err)
	}

	log.WithFields(log.Fields{
		"raffleID":  raffleID,
		"requestID": request.RequestID,
	}).Info("Randomness requested")

	return request.RequestID, nil
}

// FulfillRandomWords applies the oracle callback and selects the winner.
// This is the only path that sets a raffle's winner.
func (s *randomnessService) FulfillRandomWords(ctx context.Context, coordinator, requestID string, randomWords []uint64) (*entities.Raffle, error) {
	if coordinator != s.coordinator {
		return nil, entities.ErrNotCoordinator
	}

	request, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to get randomness request: %w", err)
	}
	if request == nil {
		// A request id this system never issued is a protocol error, not a retryable miss
		return nil, fmt.Errorf("%w: %s", entities.ErrUnknownRandomnessRequest, requestID)
	}
	if request.IsFulfilled() || request.IsAbandoned() {
		return nil, fmt.Errorf("%w: request %s already consumed", entities.ErrNoPendingDraw, requestID)
	}

	if len(randomWords) == 0 {
		return nil, entities.ErrEmptyRandomWords
	}

	raffle, err := s.raffleRepo.GetByIDForUpdate(ctx, request.RaffleID)
	if err != nil {
		return nil, fmt.Errorf("failed to get raffle: %w", err)
	}
	if raffle == nil {
		return nil, entities.ErrRaffleNotFound
	}

	if !raffle.DrawPending {
		return nil, entities.ErrNoPendingDraw
	}
	if !raffle.IsActive {
		return nil, entities.ErrRaffleInactive
	}

	// Winning index over the raffle's tickets in purchase order
	word := randomWords[0]
	index := word % uint64(raffle.TicketsSold)

	ticket, err := s.ticketRepo.GetByRaffleOffset(ctx, raffle.ID, int64(index))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve winning ticket: %w", err)
	}
	if ticket == nil {
		return nil, fmt.Errorf("no ticket at index %d for raffle %d", index, raffle.ID)
	}

	if err := s.ticketRepo.MarkWinning(ctx, ticket.ID); err != nil {
		return nil, fmt.Errorf("failed to mark winning ticket: %w", err)
	}

	request.Fulfill(word)
	if err := s.requestRepo.Update(ctx, request); err != nil {
		return nil, fmt.Errorf("failed to update randomness request: %w", err)
	}

	raffle.SelectWinner(ticket)
	if err := s.raffleRepo.Update(ctx, raffle); err != nil {
		return nil, fmt.Errorf("failed to update raffle: %w", err)
	}

	if err := s.eventPublisher.Publish(events.WinnerSelectedEvent{
		RaffleID:        raffle.ID,
		RequestID:       requestID,
		Winner:          ticket.Owner,
		WinningTicketID: ticket.ID,
		TicketsSold:     raffle.TicketsSold,
		RandomWord:      word,
	}); err != nil {
		log.WithError(err).Error("Failed to publish winner selected event")
	}

	log.WithFields(log.Fields{
		"raffleID":        raffle.ID,
		"requestID":       requestID,
		"winner":          ticket.Owner,
		"winningTicketID": ticket.ID,
	}).Info("Winner selected")

	return raffle, nil
}

// ResetStaleRequest abandons a pending request that has outlived the timeout
func (s *randomnessService) ResetStaleRequest(ctx context.Context, caller string, raffleID int64) error {
	if caller != s.operator {
		return entities.ErrNotOperator
	}

	raffle, err := s.raffleRepo.GetByIDForUpdate(ctx, raffleID)
	if err != nil {
		return fmt.Errorf("failed to get raffle: %w", err)
	}
	if raffle == nil {
		return entities.ErrRaffleNotFound
	}
	if !raffle.DrawPending {
		return entities.ErrNoPendingDraw
	}

	request, err := s.requestRepo.GetPendingByRaffleID(ctx, raffleID)
	if err != nil {
		return fmt.Errorf("failed to get pending request: %w", err)
	}
	if request == nil {
		return entities.ErrNoPendingDraw
	}

	if !request.IsStale(s.staleAfter) {
		return fmt.Errorf("%w: outstanding %s of %s",
			entities.ErrRequestNotStale, time.Since(request.RequestedAt).Round(time.Second), s.staleAfter)
	}

	// The abandoned row is kept so a late fulfillment for this id still rejects
	request.Abandon()
	if err := s.requestRepo.Update(ctx, request); err != nil {
		return fmt.Errorf("failed to abandon request: %w", err)
	}

	raffle.DrawPending = false
	if err := s.raffleRepo.Update(ctx, raffle); err != nil {
		return fmt.Errorf("failed to clear pending flag: %w", err)
	}

	if err := s.eventPublisher.Publish(events.RandomnessAbandonedEvent{
		RaffleID:  raffleID,
		RequestID: request.RequestID,
	}); err != nil {
		log.WithError(err).Error("Failed to publish randomness abandoned event")
	}

	log.WithFields(log.Fields{
		"raffleID":  raffleID,
		"requestID": request.RequestID,
	}).Warn("Stale randomness request abandoned")

	return nil
}

// SetOracleConfig replaces the oracle request parameters
func (s *randomnessService) SetOracleConfig(ctx context.Context, caller string, cfg entities.OracleConfig) error {
	if caller != s.operator {
		return entities.ErrNotOperator
	}

	settings, err := s.settingsRepo.GetOrCreate(ctx)
	if err != nil {
		return fmt.Errorf("failed to get platform settings: %w", err)
	}

	settings.ApplyOracleConfig(cfg)
	if err := s.settingsRepo.Update(ctx, settings); err != nil {
		return fmt.Errorf("failed to update platform settings: %w", err)
	}

	log.WithFields(log.Fields{
		"subscriptionID":   cfg.SubscriptionID,
		"confirmations":    cfg.Confirmations,
		"callbackGasLimit": cfg.CallbackGasLimit,
	}).Info("Oracle config updated")

	return nil
}
