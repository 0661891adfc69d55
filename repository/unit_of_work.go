package repository

import (
	"context"
	"fmt"

	"github.com/Samuel1-ona/tikka-contracts/application"
	"github.com/Samuel1-ona/tikka-contracts/database"
	"github.com/Samuel1-ona/tikka-contracts/domain/interfaces"

	"github.com/jackc/pgx/v5"
)

// unitOfWork implements the UnitOfWork interface
type unitOfWork struct {
	db                     *database.DB
	tx                     pgx.Tx
	ctx                    context.Context
	transactionalPublisher interfaces.TransactionalEventPublisher
	raffleRepo             interfaces.RaffleRepository
	ticketRepo             interfaces.TicketRepository
	prizeRepo              interfaces.PrizeRepository
	randomnessRequestRepo  interfaces.RandomnessRequestRepository
	platformSettingsRepo   interfaces.PlatformSettingsRepository
	bank                   interfaces.NativeBank
	tokenClient            interfaces.TokenClient
	nftClient              interfaces.NFTClient
}

type unitOfWorkFactory struct {
	db *database.DB
}

// NewUnitOfWorkFactory creates a new UnitOfWork factory
func NewUnitOfWorkFactory(db *database.DB) *unitOfWorkFactory {
	return &unitOfWorkFactory{
		db: db,
	}
}

// CreateWithPublisher creates a new UnitOfWork with a specific transactional publisher
func (f *unitOfWorkFactory) CreateWithPublisher(transactionalPublisher interfaces.TransactionalEventPublisher) application.UnitOfWork {
	return &unitOfWork{
		db:                     f.db,
		transactionalPublisher: transactionalPublisher,
	}
}

// Begin starts a new transaction
func (u *unitOfWork) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}

	tx, err := u.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	u.tx = tx
	u.ctx = ctx

	// Create repositories bound to the transaction
	u.raffleRepo = NewRaffleRepository(tx)
	u.ticketRepo = NewTicketRepository(tx)
	u.prizeRepo = NewPrizeRepository(tx)
	u.randomnessRequestRepo = NewRandomnessRequestRepository(tx)
	u.platformSettingsRepo = NewPlatformSettingsRepository(tx)
	u.bank = NewBankRepository(tx)
	u.tokenClient = NewTokenRepository(tx)
	u.nftClient = NewNFTRepository(tx)

	return nil
}

// Commit commits the transaction
func (u *unitOfWork) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}

	err := u.tx.Commit(u.ctx)
	if err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	u.tx = nil

	// Flush pending events after successful commit
	if u.transactionalPublisher != nil {
		u.transactionalPublisher.Flush(u.ctx)
	}

	return nil
}

// Rollback rolls back the transaction
func (u *unitOfWork) Rollback() error {
	if u.tx == nil {
		return nil // Nothing to rollback
	}

	err := u.tx.Rollback(u.ctx)
	if err != nil && err != pgx.ErrTxClosed {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}

	u.tx = nil

	// Discard pending events on rollback
	if u.transactionalPublisher != nil {
		u.transactionalPublisher.Discard()
	}

	return nil
}

// RaffleRepository returns the raffle repository for this unit of work
func (u *unitOfWork) RaffleRepository() interfaces.RaffleRepository {
	if u.raffleRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.raffleRepo
}

// TicketRepository returns the ticket repository for this unit of work
func (u *unitOfWork) TicketRepository() interfaces.TicketRepository {
	if u.ticketRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.ticketRepo
}

// PrizeRepository returns the prize repository for this unit of work
func (u *unitOfWork) PrizeRepository() interfaces.PrizeRepository {
	if u.prizeRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.prizeRepo
}

// RandomnessRequestRepository returns the randomness request repository for this unit of work
func (u *unitOfWork) RandomnessRequestRepository() interfaces.RandomnessRequestRepository {
	if u.randomnessRequestRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.randomnessRequestRepo
}

// PlatformSettingsRepository returns the platform settings repository for this unit of work
func (u *unitOfWork) PlatformSettingsRepository() interfaces.PlatformSettingsRepository {
	if u.platformSettingsRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.platformSettingsRepo
}

// NativeBank returns the native balance ledger for this unit of work
func (u *unitOfWork) NativeBank() interfaces.NativeBank {
	if u.bank == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.bank
}

// TokenClient returns the token balance ledger for this unit of work
func (u *unitOfWork) TokenClient() interfaces.TokenClient {
	if u.tokenClient == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.tokenClient
}

// NFTClient returns the item ownership ledger for this unit of work
func (u *unitOfWork) NFTClient() interfaces.NFTClient {
	if u.nftClient == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.nftClient
}

// EventBus returns the transactional event publisher for this unit of work
func (u *unitOfWork) EventBus() interfaces.EventPublisher {
	if u.transactionalPublisher == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.transactionalPublisher
}
