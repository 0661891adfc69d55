package testhelpers

import (
	"context"

	"github.com/Samuel1-ona/tikka-contracts/domain/entities"
	"github.com/Samuel1-ona/tikka-contracts/domain/events"

	"github.com/stretchr/testify/mock"
)

// MockRaffleRepository is a mock implementation of RaffleRepository
type MockRaffleRepository struct {
	mock.Mock
}

func (m *MockRaffleRepository) Create(ctx context.Context, raffle *entities.Raffle) error {
	args := m.Called(ctx, raffle)
	return args.Error(0)
}

func (m *MockRaffleRepository) GetByID(ctx context.Context, id int64) (*entities.Raffle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Raffle), args.Error(1)
}

func (m *MockRaffleRepository) GetByIDForUpdate(ctx context.Context, id int64) (*entities.Raffle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Raffle), args.Error(1)
}

func (m *MockRaffleRepository) Update(ctx context.Context, raffle *entities.Raffle) error {
	args := m.Called(ctx, raffle)
	return args.Error(0)
}

func (m *MockRaffleRepository) List(ctx context.Context, limit, offset int) ([]*entities.Raffle, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Raffle), args.Error(1)
}

func (m *MockRaffleRepository) GetEndedAwaitingDraw(ctx context.Context) ([]*entities.Raffle, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Raffle), args.Error(1)
}

func (m *MockRaffleRepository) GetPlatformStats(ctx context.Context) (*entities.PlatformStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.PlatformStats), args.Error(1)
}

// MockTicketRepository is a mock implementation of TicketRepository
type MockTicketRepository struct {
	mock.Mock
}

func (m *MockTicketRepository) CreateBatch(ctx context.Context, tickets []*entities.Ticket) error {
	args := m.Called(ctx, tickets)
	return args.Error(0)
}

func (m *MockTicketRepository) GetByID(ctx context.Context, id int64) (*entities.Ticket, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Ticket), args.Error(1)
}

func (m *MockTicketRepository) GetByRaffleOffset(ctx context.Context, raffleID int64, offset int64) (*entities.Ticket, error) {
	args := m.Called(ctx, raffleID, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Ticket), args.Error(1)
}

func (m *MockTicketRepository) CountByRaffleAndOwner(ctx context.Context, raffleID int64, owner string) (int64, error) {
	args := m.Called(ctx, raffleID, owner)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTicketRepository) ListIDsByRaffle(ctx context.Context, raffleID int64) ([]int64, error) {
	args := m.Called(ctx, raffleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *MockTicketRepository) ListIDsByOwner(ctx context.Context, owner string) ([]int64, error) {
	args := m.Called(ctx, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *MockTicketRepository) List(ctx context.Context, limit, offset int) ([]*entities.Ticket, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Ticket), args.Error(1)
}

func (m *MockTicketRepository) MarkWinning(ctx context.Context, ticketID int64) error {
	args := m.Called(ctx, ticketID)
	return args.Error(0)
}

// MockPrizeRepository is a mock implementation of PrizeRepository
type MockPrizeRepository struct {
	mock.Mock
}

func (m *MockPrizeRepository) Create(ctx context.Context, prize *entities.Prize) error {
	args := m.Called(ctx, prize)
	return args.Error(0)
}

func (m *MockPrizeRepository) GetByRaffleID(ctx context.Context, raffleID int64) (*entities.Prize, error) {
	args := m.Called(ctx, raffleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Prize), args.Error(1)
}

// MockRandomnessRequestRepository is a mock implementation of RandomnessRequestRepository
type MockRandomnessRequestRepository struct {
	mock.Mock
}

func (m *MockRandomnessRequestRepository) Create(ctx context.Context, request *entities.RandomnessRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockRandomnessRequestRepository) GetByID(ctx context.Context, requestID string) (*entities.RandomnessRequest, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.RandomnessRequest), args.Error(1)
}

func (m *MockRandomnessRequestRepository) GetPendingByRaffleID(ctx context.Context, raffleID int64) (*entities.RandomnessRequest, error) {
	args := m.Called(ctx, raffleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.RandomnessRequest), args.Error(1)
}

func (m *MockRandomnessRequestRepository) Update(ctx context.Context, request *entities.RandomnessRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

// MockPlatformSettingsRepository is a mock implementation of PlatformSettingsRepository
type MockPlatformSettingsRepository struct {
	mock.Mock
}

func (m *MockPlatformSettingsRepository) GetOrCreate(ctx context.Context) (*entities.PlatformSettings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.PlatformSettings), args.Error(1)
}

func (m *MockPlatformSettingsRepository) Update(ctx context.Context, settings *entities.PlatformSettings) error {
	args := m.Called(ctx, settings)
	return args.Error(0)
}

// MockEventPublisher is a mock implementation of EventPublisher for testing
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(event events.Event) error {
	args := m.Called(event)
	return args.Error(0)
}

// MockNativeBank is a mock implementation of NativeBank
type MockNativeBank struct {
	mock.Mock
}

func (m *MockNativeBank) Transfer(ctx context.Context, from, to string, amount int64) error {
	args := m.Called(ctx, from, to, amount)
	return args.Error(0)
}

func (m *MockNativeBank) BalanceOf(ctx context.Context, addr string) (int64, error) {
	args := m.Called(ctx, addr)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNativeBank) Mint(ctx context.Context, addr string, amount int64) error {
	args := m.Called(ctx, addr, amount)
	return args.Error(0)
}

// MockTokenClient is a mock implementation of TokenClient
type MockTokenClient struct {
	mock.Mock
}

func (m *MockTokenClient) TransferFrom(ctx context.Context, token, from, to string, amount int64) error {
	args := m.Called(ctx, token, from, to, amount)
	return args.Error(0)
}

func (m *MockTokenClient) BalanceOf(ctx context.Context, token, addr string) (int64, error) {
	args := m.Called(ctx, token, addr)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTokenClient) Mint(ctx context.Context, token, addr string, amount int64) error {
	args := m.Called(ctx, token, addr, amount)
	return args.Error(0)
}

// MockNFTClient is a mock implementation of NFTClient
type MockNFTClient struct {
	mock.Mock
}

func (m *MockNFTClient) OwnerOf(ctx context.Context, collection string, itemID int64) (string, error) {
	args := m.Called(ctx, collection, itemID)
	return args.String(0), args.Error(1)
}

func (m *MockNFTClient) TransferFrom(ctx context.Context, collection, from, to string, itemID int64) error {
	args := m.Called(ctx, collection, from, to, itemID)
	return args.Error(0)
}

func (m *MockNFTClient) Mint(ctx context.Context, collection string, itemID int64, addr string) error {
	args := m.Called(ctx, collection, itemID, addr)
	return args.Error(0)
}
