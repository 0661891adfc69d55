package application

import (
	"context"

	"github.com/Samuel1-ona/tikka-contracts/domain/interfaces"
	"github.com/Samuel1-ona/tikka-contracts/domain/testhelpers"
)

// MockUnitOfWork implements UnitOfWork for testing, backed by the shared
// repository mocks. Begin, Commit and Rollback are counted rather than
// executed.
type MockUnitOfWork struct {
	RaffleRepo   *testhelpers.MockRaffleRepository
	TicketRepo   *testhelpers.MockTicketRepository
	PrizeRepo    *testhelpers.MockPrizeRepository
	RequestRepo  *testhelpers.MockRandomnessRequestRepository
	SettingsRepo *testhelpers.MockPlatformSettingsRepository
	Bank         *testhelpers.MockNativeBank
	Tokens       *testhelpers.MockTokenClient
	NFTs         *testhelpers.MockNFTClient
	Publisher    *testhelpers.MockEventPublisher

	BeginErr  error
	CommitErr error

	Begun      int
	Committed  int
	RolledBack int
}

// NewMockUnitOfWork creates a mock unit of work with fresh repository mocks
func NewMockUnitOfWork() *MockUnitOfWork {
	return &MockUnitOfWork{
		RaffleRepo:   new(testhelpers.MockRaffleRepository),
		TicketRepo:   new(testhelpers.MockTicketRepository),
		PrizeRepo:    new(testhelpers.MockPrizeRepository),
		RequestRepo:  new(testhelpers.MockRandomnessRequestRepository),
		SettingsRepo: new(testhelpers.MockPlatformSettingsRepository),
		Bank:         new(testhelpers.MockNativeBank),
		Tokens:       new(testhelpers.MockTokenClient),
		NFTs:         new(testhelpers.MockNFTClient),
		Publisher:    new(testhelpers.MockEventPublisher),
	}
}

func (m *MockUnitOfWork) Begin(ctx context.Context) error {
	if m.BeginErr != nil {
		return m.BeginErr
	}
	m.Begun++
	return nil
}

func (m *MockUnitOfWork) Commit() error {
	if m.CommitErr != nil {
		return m.CommitErr
	}
	m.Committed++
	return nil
}

func (m *MockUnitOfWork) Rollback() error {
	m.RolledBack++
	return nil
}

func (m *MockUnitOfWork) RaffleRepository() interfaces.RaffleRepository {
	return m.RaffleRepo
}

func (m *MockUnitOfWork) TicketRepository() interfaces.TicketRepository {
	return m.TicketRepo
}

func (m *MockUnitOfWork) PrizeRepository() interfaces.PrizeRepository {
	return m.PrizeRepo
}

func (m *MockUnitOfWork) RandomnessRequestRepository() interfaces.RandomnessRequestRepository {
	return m.RequestRepo
}

func (m *MockUnitOfWork) PlatformSettingsRepository() interfaces.PlatformSettingsRepository {
	return m.SettingsRepo
}

func (m *MockUnitOfWork) NativeBank() interfaces.NativeBank {
	return m.Bank
}

func (m *MockUnitOfWork) TokenClient() interfaces.TokenClient {
	return m.Tokens
}

func (m *MockUnitOfWork) NFTClient() interfaces.NFTClient {
	return m.NFTs
}

func (m *MockUnitOfWork) EventBus() interfaces.EventPublisher {
	return m.Publisher
}

// MockUnitOfWorkFactory returns the same mock unit of work for every Create
type MockUnitOfWorkFactory struct {
	UoW     *MockUnitOfWork
	Created int
}

func (f *MockUnitOfWorkFactory) Create() UnitOfWork {
	f.Created++
	return f.UoW
}
