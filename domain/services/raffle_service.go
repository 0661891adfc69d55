package services

import (
	"context"
	"fmt"
	"time"

	"github.com/Samuel1-ona/tikka-contracts/domain/entities"
	"github.com/Samuel1-ona/tikka-contracts/domain/events"
	"github.com/Samuel1-ona/tikka-contracts/domain/interfaces"

	log "github.com/sirupsen/logrus"
)

// raffleService implements business logic for the raffle registry
type raffleService struct {
	raffleRepo     interfaces.RaffleRepository
	ticketRepo     interfaces.TicketRepository
	prizeRepo      interfaces.PrizeRepository
	bank           interfaces.NativeBank
	tokenClient    interfaces.TokenClient
	eventPublisher interfaces.EventPublisher
	escrow         string
}

// NewRaffleService creates a new raffle registry service. escrow is the
// platform address that holds ticket proceeds until settlement.
func NewRaffleService(
	raffleRepo interfaces.RaffleRepository,
	ticketRepo interfaces.TicketRepository,
	prizeRepo interfaces.PrizeRepository,
	bank interfaces.NativeBank,
	tokenClient interfaces.TokenClient,
	eventPublisher interfaces.EventPublisher,
	escrow string,
) interfaces.RaffleService {
	return &raffleService{
		raffleRepo:     raffleRepo,
		ticketRepo:     ticketRepo,
		prizeRepo:      prizeRepo,
		bank:           bank,
		tokenClient:    tokenClient,
		eventPublisher: eventPublisher,
		escrow:         escrow,
	}
}

// CreateRaffle registers a new raffle
func (s *raffleService) CreateRaffle(ctx context.Context, creator, description string, endTime time.Time, maxTickets int64, allowMultiple bool, ticketPrice int64, paymentToken *string) (*entities.Raffle, error) {
	if !endTime.After(time.Now()) {
		return nil, entities.ErrInvalidEndTime
	}
	if maxTickets <= 0 {
		return nil, entities.ErrInvalidMaxTickets
	}
	if ticketPrice <= 0 {
		return nil, entities.ErrInvalidTicketPrice
	}

	raffle := &entities.Raffle{
		Creator:       creator,
		Description:   description,
		EndTime:       endTime.UTC(),
		MaxTickets:    maxTickets,
		AllowMultiple: allowMultiple,
		TicketPrice:   ticketPrice,
		PaymentToken:  paymentToken,
		IsActive:      true,
	}

	if err := s.raffleRepo.Create(ctx, raffle); err != nil {
		return nil, fmt.Errorf("failed to create raffle: %w", err)
	}

	if err := s.eventPublisher.Publish(events.RaffleCreatedEvent{
		RaffleID:      raffle.ID,
		Creator:       raffle.Creator,
		Description:   raffle.Description,
		EndTime:       raffle.EndTime,
		MaxTickets:    raffle.MaxTickets,
		AllowMultiple: raffle.AllowMultiple,
		TicketPrice:   raffle.TicketPrice,
		PaymentToken:  raffle.PaymentToken,
	}); err != nil {
		log.WithError(err).Error("Failed to publish raffle created event")
	}

	log.WithFields(log.Fields{
		"raffleID":   raffle.ID,
		"creator":    creator,
		"endTime":    raffle.EndTime,
		"maxTickets": maxTickets,
	}).Info("Raffle created")

	return raffle, nil
}

// PurchaseTickets buys tickets for a buyer, collecting payment in the
// raffle's ticket asset
func (s *raffleService) PurchaseTickets(ctx context.Context, buyer string, raffleID int64, quantity int, attached int64) ([]*entities.Ticket, error) {
	if quantity <= 0 {
		return nil, entities.ErrInvalidQuantity
	}

	// Lock the raffle row so the sold counter and cap check are serialized
	raffle, err := s.raffleRepo.GetByIDForUpdate(ctx, raffleID)
	if err != nil {
		return nil, fmt.Errorf("failed to get raffle: %w", err)
	}
	if raffle == nil {
		return nil, entities.ErrRaffleNotFound
	}

	if !raffle.IsActive {
		return nil, entities.ErrRaffleInactive
	}
	if raffle.HasEnded() {
		return nil, entities.ErrRaffleEnded
	}

	if raffle.TicketsSold+int64(quantity) > raffle.MaxTickets {
		return nil, fmt.Errorf("%w: %d sold of %d, requested %d",
			entities.ErrMaxTicketsExceeded, raffle.TicketsSold, raffle.MaxTickets, quantity)
	}

	// The multiple-tickets rule is checked once per call against the
	// pre-call count, so a single multi-ticket call can still grant more
	// than one ticket the first time.
	if !raffle.AllowMultiple {
		held, err := s.ticketRepo.CountByRaffleAndOwner(ctx, raffleID, buyer)
		if err != nil {
			return nil, fmt.Errorf("failed to count buyer tickets: %w", err)
		}
		if held > 0 {
			return nil, entities.ErrMultipleTicketsNotAllowed
		}
	}

	totalCost := raffle.TicketPrice * int64(quantity)

	if err := s.collectPayment(ctx, raffle, buyer, totalCost, attached); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	tickets := make([]*entities.Ticket, 0, quantity)
	for i := 0; i < quantity; i++ {
		tickets = append(tickets, &entities.Ticket{
			RaffleID:    raffleID,
			Owner:       buyer,
			PurchasedAt: now,
		})
	}

	if err := s.ticketRepo.CreateBatch(ctx, tickets); err != nil {
		return nil, fmt.Errorf("failed to create tickets: %w", err)
	}

	raffle.TicketsSold += int64(quantity)
	if err := s.raffleRepo.Update(ctx, raffle); err != nil {
		return nil, fmt.Errorf("failed to update raffle: %w", err)
	}

	// One purchase notification per ticket created
	for _, ticket := range tickets {
		if err := s.eventPublisher.Publish(events.TicketPurchasedEvent{
			RaffleID:    raffleID,
			TicketID:    ticket.ID,
			Buyer:       buyer,
			Price:       raffle.TicketPrice,
			PurchasedAt: ticket.PurchasedAt,
		}); err != nil {
			log.WithError(err).Error("Failed to publish ticket purchased event")
		}
	}

	log.WithFields(log.Fields{
		"raffleID":  raffleID,
		"buyer":     buyer,
		"quantity":  quantity,
		"totalCost": totalCost,
	}).Info("Tickets purchased")

	return tickets, nil
}

// collectPayment moves the ticket cost into escrow. Native raffles require the
// exact cost attached; token raffles require zero attached and pull the cost
// from the buyer's token balance.
func (s *raffleService) collectPayment(ctx context.Context, raffle *entities.Raffle, buyer string, totalCost, attached int64) error {
	if raffle.IsNativePayment() {
		if attached != totalCost {
			return fmt.Errorf("%w: attached %d, need %d", entities.ErrPaymentMismatch, attached, totalCost)
		}
		if err := s.bank.Transfer(ctx, buyer, s.escrow, totalCost); err != nil {
			return fmt.Errorf("failed to collect ticket payment: %w", err)
		}
		return nil
	}

	if attached != 0 {
		return fmt.Errorf("%w: attached %d native on a token raffle", entities.ErrPaymentMismatch, attached)
	}
	if err := s.tokenClient.TransferFrom(ctx, *raffle.PaymentToken, buyer, s.escrow, totalCost); err != nil {
		return fmt.Errorf("failed to collect token payment: %w", err)
	}
	return nil
}

// GetRaffle retrieves a raffle by id
func (s *raffleService) GetRaffle(ctx context.Context, id int64) (*entities.Raffle, error) {
	raffle, err := s.raffleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get raffle: %w", err)
	}
	if raffle == nil {
		return nil, entities.ErrRaffleNotFound
	}
	return raffle, nil
}

// GetTicket retrieves a ticket by id
func (s *raffleService) GetTicket(ctx context.Context, id int64) (*entities.Ticket, error) {
	ticket, err := s.ticketRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get ticket: %w", err)
	}
	if ticket == nil {
		return nil, entities.ErrTicketNotFound
	}
	return ticket, nil
}

// GetPrize retrieves the raffle's prize record
func (s *raffleService) GetPrize(ctx context.Context, raffleID int64) (*entities.Prize, error) {
	prize, err := s.prizeRepo.GetByRaffleID(ctx, raffleID)
	if err != nil {
		return nil, fmt.Errorf("failed to get prize: %w", err)
	}
	if prize == nil {
		return nil, entities.ErrPrizeNotFound
	}
	return prize, nil
}

// ListRaffles returns raffles ordered by id
func (s *raffleService) ListRaffles(ctx context.Context, limit, offset int) ([]*entities.Raffle, error) {
	limit, offset = clampPage(limit, offset)
	raffles, err := s.raffleRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list raffles: %w", err)
	}
	return raffles, nil
}

// ListTickets returns tickets ordered by id
func (s *raffleService) ListTickets(ctx context.Context, limit, offset int) ([]*entities.Ticket, error) {
	limit, offset = clampPage(limit, offset)
	tickets, err := s.ticketRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list tickets: %w", err)
	}
	return tickets, nil
}

// GetRaffleTicketIDs returns the raffle's ticket ids in purchase order
func (s *raffleService) GetRaffleTicketIDs(ctx context.Context, raffleID int64) ([]int64, error) {
	ids, err := s.ticketRepo.ListIDsByRaffle(ctx, raffleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list raffle tickets: %w", err)
	}
	return ids, nil
}

// GetUserTicketIDs returns every ticket id held by the owner
func (s *raffleService) GetUserTicketIDs(ctx context.Context, owner string) ([]int64, error) {
	ids, err := s.ticketRepo.ListIDsByOwner(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to list user tickets: %w", err)
	}
	return ids, nil
}

// GetRaffleStats summarizes one raffle's sales
func (s *raffleService) GetRaffleStats(ctx context.Context, raffleID int64) (*entities.RaffleStats, error) {
	raffle, err := s.GetRaffle(ctx, raffleID)
	if err != nil {
		return nil, err
	}
	return &entities.RaffleStats{
		RaffleID:         raffle.ID,
		TicketsSold:      raffle.TicketsSold,
		TicketsRemaining: raffle.TicketsRemaining(),
		MaxTickets:       raffle.MaxTickets,
		TotalRevenue:     raffle.TotalPool(),
	}, nil
}

// GetPlatformStats aggregates counts and revenue across all raffles
func (s *raffleService) GetPlatformStats(ctx context.Context) (*entities.PlatformStats, error) {
	stats, err := s.raffleRepo.GetPlatformStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get platform stats: %w", err)
	}
	return stats, nil
}

// clampPage bounds paging arguments to safe values
func clampPage(limit, offset int) (int, int) {
	if limit <= 0 || limit > entities.MaxPageLimit {
		limit = entities.MaxPageLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
