package infrastructure

import (
	"github.com/Samuel1-ona/tikka-contracts/application"
	"github.com/Samuel1-ona/tikka-contracts/database"
	"github.com/Samuel1-ona/tikka-contracts/domain/interfaces"
	"github.com/Samuel1-ona/tikka-contracts/repository"
)

// UnitOfWorkFactoryWrapper wraps the repository UnitOfWorkFactory to provide transactional publishers
type UnitOfWorkFactoryWrapper struct {
	repoFactory interface {
		CreateWithPublisher(transactionalPublisher interfaces.TransactionalEventPublisher) application.UnitOfWork
	}
	eventPublisher interfaces.EventPublisher
}

// NewUnitOfWorkFactoryWrapper creates a new wrapper that implements application.UnitOfWorkFactory
func NewUnitOfWorkFactoryWrapper(db *database.DB, eventPublisher interfaces.EventPublisher) application.UnitOfWorkFactory {
	repoFactory := repository.NewUnitOfWorkFactory(db)
	return &UnitOfWorkFactoryWrapper{
		repoFactory:    repoFactory,
		eventPublisher: eventPublisher,
	}
}

// Create creates a new UnitOfWork with its own transactional event publisher,
// so events buffered during the transaction flush only on commit
func (w *UnitOfWorkFactoryWrapper) Create() application.UnitOfWork {
	transactionalPublisher := NewNATSTransactionalPublisher(w.eventPublisher)

	return w.repoFactory.CreateWithPublisher(transactionalPublisher)
}
