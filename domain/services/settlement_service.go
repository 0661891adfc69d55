package services

import (
	"context"
	"fmt"

	"github.com/Samuel1-ona/tikka-contracts/domain/entities"
	"github.com/Samuel1-ona/tikka-contracts/domain/events"
	"github.com/Samuel1-ona/tikka-contracts/domain/interfaces"

	log "github.com/sirupsen/logrus"
)

// settlementService implements payouts and prize escrow
type settlementService struct {
	raffleRepo     interfaces.RaffleRepository
	prizeRepo      interfaces.PrizeRepository
	settingsRepo   interfaces.PlatformSettingsRepository
	bank           interfaces.NativeBank
	tokenClient    interfaces.TokenClient
	nftClient      interfaces.NFTClient
	eventPublisher interfaces.EventPublisher
	operator       string
	escrow         string
}

// NewSettlementService creates a new settlement service
func NewSettlementService(
	raffleRepo interfaces.RaffleRepository,
	prizeRepo interfaces.PrizeRepository,
	settingsRepo interfaces.PlatformSettingsRepository,
	bank interfaces.NativeBank,
	tokenClient interfaces.TokenClient,
	nftClient interfaces.NFTClient,
	eventPublisher interfaces.EventPublisher,
	operator string,
	escrow string,
) interfaces.SettlementService {
	return &settlementService{
		raffleRepo:     raffleRepo,
		prizeRepo:      prizeRepo,
		settingsRepo:   settingsRepo,
		bank:           bank,
		tokenClient:    tokenClient,
		nftClient:      nftClient,
		eventPublisher: eventPublisher,
		operator:       operator,
		escrow:         escrow,
	}
}

// WithdrawWinnings pays the ticket pool to the winner minus the service charge
func (s *settlementService) WithdrawWinnings(ctx context.Context, caller string, raffleID int64) (*entities.WithdrawalResult, error) {
	raffle, err := s.raffleRepo.GetByIDForUpdate(ctx, raffleID)
	if err != nil {
		return nil, fmt.Errorf("failed to get raffle: %w", err)
	}
	if raffle == nil {
		return nil, entities.ErrRaffleNotFound
	}

	if raffle.IsActive || !raffle.HasWinner() {
		return nil, entities.ErrWinnerNotSelected
	}
	if !raffle.IsWinner(caller) {
		return nil, entities.ErrNotWinner
	}
	if raffle.WinningsWithdrawn {
		return nil, entities.ErrWinningsAlreadyWithdrawn
	}

	settings, err := s.settingsRepo.GetOrCreate(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get platform settings: %w", err)
	}

	totalPool := raffle.TotalPool()
	serviceCharge := settings.ServiceCharge(totalPool)
	winnerAmount := totalPool - serviceCharge

	// Latch before transferring; a failed transfer rolls the latch back with
	// the rest of the transaction
	raffle.WinningsWithdrawn = true
	if err := s.raffleRepo.Update(ctx, raffle); err != nil {
		return nil, fmt.Errorf("failed to set withdrawal latch: %w", err)
	}

	asset, err := s.payOut(ctx, raffle, settings, caller, winnerAmount, serviceCharge)
	if err != nil {
		return nil, err
	}

	result := &entities.WithdrawalResult{
		RaffleID:      raffleID,
		Winner:        caller,
		TotalPool:     totalPool,
		ServiceCharge: serviceCharge,
		WinnerAmount:  winnerAmount,
		Asset:         asset,
	}

	if err := s.eventPublisher.Publish(events.WinningsWithdrawnEvent{
		RaffleID:      raffleID,
		Winner:        caller,
		TotalPool:     totalPool,
		ServiceCharge: serviceCharge,
		WinnerAmount:  winnerAmount,
		Asset:         asset,
	}); err != nil {
		log.WithError(err).Error("Failed to publish winnings withdrawn event")
	}

	log.WithFields(log.Fields{
		"raffleID":      raffleID,
		"winner":        caller,
		"totalPool":     totalPool,
		"serviceCharge": serviceCharge,
	}).Info("Winnings withdrawn")

	return result, nil
}

// payOut routes the winner and operator shares through the configured
// settlement asset. Returns the asset paid (nil for native currency).
func (s *settlementService) payOut(ctx context.Context, raffle *entities.Raffle, settings *entities.PlatformSettings, winner string, winnerAmount, serviceCharge int64) (*string, error) {
	if settings.SettlementAssetMode == entities.SettlementAssetTicket && !raffle.IsNativePayment() {
		token := *raffle.PaymentToken
		if err := s.tokenClient.TransferFrom(ctx, token, s.escrow, winner, winnerAmount); err != nil {
			return nil, fmt.Errorf("failed to pay winner: %w", err)
		}
		if serviceCharge > 0 {
			if err := s.tokenClient.TransferFrom(ctx, token, s.escrow, s.operator, serviceCharge); err != nil {
				return nil, fmt.Errorf("failed to pay service charge: %w", err)
			}
		}
		return raffle.PaymentToken, nil
	}

	if err := s.bank.Transfer(ctx, s.escrow, winner, winnerAmount); err != nil {
		return nil, fmt.Errorf("failed to pay winner: %w", err)
	}
	if serviceCharge > 0 {
		if err := s.bank.Transfer(ctx, s.escrow, s.operator, serviceCharge); err != nil {
			return nil, fmt.Errorf("failed to pay service charge: %w", err)
		}
	}
	return nil, nil
}

// FinalizeRaffle transfers the escrowed prize to the winner. Permissionless
// so finalization never waits on operator availability.
func (s *settlementService) FinalizeRaffle(ctx context.Context, raffleID int64) (*entities.Prize, error) {
	raffle, err := s.raffleRepo.GetByIDForUpdate(ctx, raffleID)
	if err != nil {
		return nil, fmt.Errorf("failed to get raffle: %w", err)
	}
	if raffle == nil {
		return nil, entities.ErrRaffleNotFound
	}

	if raffle.IsFinalized {
		return nil, entities.ErrRaffleAlreadyFinalized
	}
	if !raffle.HasWinner() {
		return nil, entities.ErrWinnerNotSelected
	}

	prize, err := s.prizeRepo.GetByRaffleID(ctx, raffleID)
	if err != nil {
		return nil, fmt.Errorf("failed to get prize: %w", err)
	}
	if prize == nil || !prize.IsDeposited {
		return nil, entities.ErrPrizeNotDeposited
	}

	winner := *raffle.Winner

	raffle.IsFinalized = true
	if err := s.raffleRepo.Update(ctx, raffle); err != nil {
		return nil, fmt.Errorf("failed to set finalized latch: %w", err)
	}

	switch prize.Kind() {
	case entities.PrizeKindNFT:
		if err := s.nftClient.TransferFrom(ctx, *prize.Token, s.escrow, winner, *prize.TokenItemID); err != nil {
			return nil, fmt.Errorf("failed to transfer prize item: %w", err)
		}
	case entities.PrizeKindToken:
		if err := s.tokenClient.TransferFrom(ctx, *prize.Token, s.escrow, winner, prize.Amount); err != nil {
			return nil, fmt.Errorf("failed to transfer prize tokens: %w", err)
		}
	default:
		if err := s.bank.Transfer(ctx, s.escrow, winner, prize.Amount); err != nil {
			return nil, fmt.Errorf("failed to transfer prize: %w", err)
		}
	}

	if err := s.eventPublisher.Publish(events.PrizeWithdrawnEvent{
		RaffleID:    raffleID,
		Winner:      winner,
		Kind:        string(prize.Kind()),
		Token:       prize.Token,
		TokenItemID: prize.TokenItemID,
		Amount:      prize.Amount,
	}); err != nil {
		log.WithError(err).Error("Failed to publish prize withdrawn event")
	}
	if err := s.eventPublisher.Publish(events.RaffleFinalizedEvent{
		RaffleID:        raffleID,
		Winner:          winner,
		WinningTicketID: *raffle.WinningTicketID,
	}); err != nil {
		log.WithError(err).Error("Failed to publish raffle finalized event")
	}

	log.WithFields(log.Fields{
		"raffleID": raffleID,
		"winner":   winner,
		"kind":     prize.Kind(),
	}).Info("Raffle finalized")

	return prize, nil
}

// DepositPrizeNative escrows attached native currency as the prize
func (s *settlementService) DepositPrizeNative(ctx context.Context, caller string, raffleID int64, attached int64) (*entities.Prize, error) {
	if attached <= 0 {
		return nil, entities.ErrInvalidAmount
	}

	raffle, err := s.depositGuard(ctx, caller, raffleID)
	if err != nil {
		return nil, err
	}

	if err := s.bank.Transfer(ctx, caller, s.escrow, attached); err != nil {
		return nil, fmt.Errorf("failed to escrow prize: %w", err)
	}

	prize := entities.NewNativePrize(raffle.ID, attached)
	return s.storePrize(ctx, caller, prize)
}

// DepositPrizeToken pulls a fungible-token prize into escrow
func (s *settlementService) DepositPrizeToken(ctx context.Context, caller string, raffleID int64, token string, amount int64) (*entities.Prize, error) {
	if amount <= 0 {
		return nil, entities.ErrInvalidAmount
	}

	raffle, err := s.depositGuard(ctx, caller, raffleID)
	if err != nil {
		return nil, err
	}

	if err := s.tokenClient.TransferFrom(ctx, token, caller, s.escrow, amount); err != nil {
		return nil, fmt.Errorf("failed to escrow prize tokens: %w", err)
	}

	prize := entities.NewTokenPrize(raffle.ID, token, amount)
	return s.storePrize(ctx, caller, prize)
}

// DepositPrizeNFT pulls a non-fungible item into escrow. Ownership is checked
// immediately before the transfer.
func (s *settlementService) DepositPrizeNFT(ctx context.Context, caller string, raffleID int64, collection string, itemID int64) (*entities.Prize, error) {
	raffle, err := s.depositGuard(ctx, caller, raffleID)
	if err != nil {
		return nil, err
	}

	owner, err := s.nftClient.OwnerOf(ctx, collection, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to check item owner: %w", err)
	}
	if owner != caller {
		return nil, entities.ErrNotItemOwner
	}

	if err := s.nftClient.TransferFrom(ctx, collection, caller, s.escrow, itemID); err != nil {
		return nil, fmt.Errorf("failed to escrow prize item: %w", err)
	}

	prize := entities.NewNFTPrize(raffle.ID, collection, itemID)
	return s.storePrize(ctx, caller, prize)
}

// depositGuard enforces the shared prize-deposit preconditions
func (s *settlementService) depositGuard(ctx context.Context, caller string, raffleID int64) (*entities.Raffle, error) {
	raffle, err := s.raffleRepo.GetByIDForUpdate(ctx, raffleID)
	if err != nil {
		return nil, fmt.Errorf("failed to get raffle: %w", err)
	}
	if raffle == nil {
		return nil, entities.ErrRaffleNotFound
	}

	if raffle.Creator != caller {
		return nil, entities.ErrNotRaffleCreator
	}
	if raffle.IsFinalized {
		return nil, entities.ErrRaffleAlreadyFinalized
	}

	existing, err := s.prizeRepo.GetByRaffleID(ctx, raffleID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing prize: %w", err)
	}
	if existing != nil {
		return nil, entities.ErrPrizeAlreadyDeposited
	}

	return raffle, nil
}

// storePrize persists the deposited prize and publishes the notification
func (s *settlementService) storePrize(ctx context.Context, depositor string, prize *entities.Prize) (*entities.Prize, error) {
	prize.MarkDeposited()
	if err := s.prizeRepo.Create(ctx, prize); err != nil {
		return nil, fmt.Errorf("failed to store prize: %w", err)
	}

	if err := s.eventPublisher.Publish(events.PrizeDepositedEvent{
		RaffleID:    prize.RaffleID,
		Depositor:   depositor,
		Kind:        string(prize.Kind()),
		Token:       prize.Token,
		TokenItemID: prize.TokenItemID,
		Amount:      prize.Amount,
	}); err != nil {
		log.WithError(err).Error("Failed to publish prize deposited event")
	}

	log.WithFields(log.Fields{
		"raffleID": prize.RaffleID,
		"kind":     prize.Kind(),
	}).Info("Prize deposited")

	return prize, nil
}

// SetServiceCharge updates the platform's percentage cut
func (s *settlementService) SetServiceCharge(ctx context.Context, caller string, rate int64) error {
	if caller != s.operator {
		return entities.ErrNotOperator
	}
	if rate < 0 || rate > entities.MaxServiceChargeRate {
		return fmt.Errorf("%w: %d", entities.ErrChargeRateTooHigh, rate)
	}

	settings, err := s.settingsRepo.GetOrCreate(ctx)
	if err != nil {
		return fmt.Errorf("failed to get platform settings: %w", err)
	}

	oldRate := settings.ServiceChargeRate
	settings.ServiceChargeRate = rate
	if err := s.settingsRepo.Update(ctx, settings); err != nil {
		return fmt.Errorf("failed to update platform settings: %w", err)
	}

	if err := s.eventPublisher.Publish(events.ServiceChargeUpdatedEvent{
		OldRate: oldRate,
		NewRate: rate,
	}); err != nil {
		log.WithError(err).Error("Failed to publish service charge updated event")
	}

	log.WithFields(log.Fields{
		"oldRate": oldRate,
		"newRate": rate,
	}).Info("Service charge updated")

	return nil
}
