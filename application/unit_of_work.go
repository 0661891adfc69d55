package application

import (
	"context"

	"github.com/Samuel1-ona/tikka-contracts/domain/interfaces"
)

// UnitOfWork defines the interface for transactional repository operations.
// One unit of work wraps one external entry point, so every state transition
// and asset movement inside it commits or rolls back together.
type UnitOfWork interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) error

	// Commit commits the transaction and releases buffered events
	Commit() error

	// Rollback rolls back the transaction and discards buffered events
	Rollback() error

	// Repository getters
	RaffleRepository() interfaces.RaffleRepository
	TicketRepository() interfaces.TicketRepository
	PrizeRepository() interfaces.PrizeRepository
	RandomnessRequestRepository() interfaces.RandomnessRequestRepository
	PlatformSettingsRepository() interfaces.PlatformSettingsRepository

	// Asset ledgers, transactional with the repositories above
	NativeBank() interfaces.NativeBank
	TokenClient() interfaces.TokenClient
	NFTClient() interfaces.NFTClient

	// EventBus returns the transactional event publisher for this unit of work
	EventBus() interfaces.EventPublisher
}

// UnitOfWorkFactory defines the interface for creating UnitOfWork instances
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}
