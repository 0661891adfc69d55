package interfaces

import (
	"context"

	"github.com/Samuel1-ona/tikka-contracts/domain/entities"
	"github.com/Samuel1-ona/tikka-contracts/domain/events"
)

// RaffleRepository defines the interface for raffle data access
type RaffleRepository interface {
	// Create persists a new raffle and assigns its sequential id
	Create(ctx context.Context, raffle *entities.Raffle) error

	// GetByID retrieves a raffle by its ID, or nil if not found
	GetByID(ctx context.Context, id int64) (*entities.Raffle, error)

	// GetByIDForUpdate retrieves a raffle with a row lock for atomic state transitions
	GetByIDForUpdate(ctx context.Context, id int64) (*entities.Raffle, error)

	// Update persists the raffle's mutable lifecycle fields
	Update(ctx context.Context, raffle *entities.Raffle) error

	// List returns raffles ordered by id
	List(ctx context.Context, limit, offset int) ([]*entities.Raffle, error)

	// GetEndedAwaitingDraw returns active raffles whose sale window has closed,
	// with at least one ticket sold and no randomness request outstanding
	GetEndedAwaitingDraw(ctx context.Context) ([]*entities.Raffle, error)

	// GetPlatformStats aggregates counts and revenue across all raffles
	GetPlatformStats(ctx context.Context) (*entities.PlatformStats, error)
}

// TicketRepository defines the interface for ticket data access
type TicketRepository interface {
	// CreateBatch inserts tickets in purchase order, assigning monotonic ids
	CreateBatch(ctx context.Context, tickets []*entities.Ticket) error

	// GetByID retrieves a ticket by its ID, or nil if not found
	GetByID(ctx context.Context, id int64) (*entities.Ticket, error)

	// GetByRaffleOffset returns the raffle's n-th ticket in purchase order (0-based)
	GetByRaffleOffset(ctx context.Context, raffleID int64, offset int64) (*entities.Ticket, error)

	// CountByRaffleAndOwner returns how many tickets the owner holds in the raffle
	CountByRaffleAndOwner(ctx context.Context, raffleID int64, owner string) (int64, error)

	// ListIDsByRaffle returns the raffle's ticket ids in purchase order
	ListIDsByRaffle(ctx context.Context, raffleID int64) ([]int64, error)

	// ListIDsByOwner returns all ticket ids held by an owner, in purchase order
	ListIDsByOwner(ctx context.Context, owner string) ([]int64, error)

	// List returns tickets ordered by id
	List(ctx context.Context, limit, offset int) ([]*entities.Ticket, error)

	// MarkWinning flags the ticket as the winning entry
	MarkWinning(ctx context.Context, ticketID int64) error
}

// PrizeRepository defines the interface for prize escrow records
type PrizeRepository interface {
	// Create persists the prize record; fails if one already exists for the raffle
	Create(ctx context.Context, prize *entities.Prize) error

	// GetByRaffleID retrieves the raffle's prize, or nil if none deposited
	GetByRaffleID(ctx context.Context, raffleID int64) (*entities.Prize, error)
}

// RandomnessRequestRepository defines the interface for oracle request tracking
type RandomnessRequestRepository interface {
	// Create persists a new request mapping
	Create(ctx context.Context, request *entities.RandomnessRequest) error

	// GetByID retrieves a request by its external id, or nil if unknown
	GetByID(ctx context.Context, requestID string) (*entities.RandomnessRequest, error)

	// GetPendingByRaffleID returns the raffle's outstanding request, or nil
	GetPendingByRaffleID(ctx context.Context, raffleID int64) (*entities.RandomnessRequest, error)

	// Update persists fulfillment or abandonment timestamps
	Update(ctx context.Context, request *entities.RandomnessRequest) error
}

// PlatformSettingsRepository defines the interface for the singleton settings row
type PlatformSettingsRepository interface {
	// GetOrCreate retrieves the settings, inserting defaults on first use
	GetOrCreate(ctx context.Context) (*entities.PlatformSettings, error)

	// Update persists the settings
	Update(ctx context.Context, settings *entities.PlatformSettings) error
}

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(event events.Event) error
}

// TransactionalEventPublisher buffers events during a transaction and releases
// them on commit
type TransactionalEventPublisher interface {
	EventPublisher

	// Flush publishes all buffered events after a successful commit
	Flush(ctx context.Context)

	// Discard drops all buffered events after a rollback
	Discard()
}
