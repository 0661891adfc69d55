package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Samuel1-ona/tikka-contracts/domain/entities"
	"github.com/Samuel1-ona/tikka-contracts/domain/events"
	"github.com/Samuel1-ona/tikka-contracts/domain/interfaces"
	"github.com/Samuel1-ona/tikka-contracts/domain/testhelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	testOperator    = "tikka:operator"
	testCoordinator = "oracle:coordinator"
)

// Helper to create a raffle whose sale window has already closed
func createEndedRaffle(id, ticketsSold int64, opts ...func(*entities.Raffle)) *entities.Raffle {
	raffle := createTestRaffle(id, withEndTime(time.Now().Add(-time.Hour)))
	raffle.TicketsSold = ticketsSold
	for _, opt := range opts {
		opt(raffle)
	}
	return raffle
}

func createPendingRequest(raffleID int64, age time.Duration) *entities.RandomnessRequest {
	return &entities.RandomnessRequest{
		RequestID:   "11111111-2222-3333-4444-555555555555",
		RaffleID:    raffleID,
		RequestedAt: time.Now().Add(-age),
	}
}

func setupRandomnessServiceMocks() (
	*testhelpers.MockRaffleRepository,
	*testhelpers.MockTicketRepository,
	*testhelpers.MockRandomnessRequestRepository,
	*testhelpers.MockPlatformSettingsRepository,
	*testhelpers.MockEventPublisher,
) {
	return new(testhelpers.MockRaffleRepository),
		new(testhelpers.MockTicketRepository),
		new(testhelpers.MockRandomnessRequestRepository),
		new(testhelpers.MockPlatformSettingsRepository),
		new(testhelpers.MockEventPublisher)
}

func newTestRandomnessService(
	raffleRepo *testhelpers.MockRaffleRepository,
	ticketRepo *testhelpers.MockTicketRepository,
	requestRepo *testhelpers.MockRandomnessRequestRepository,
	settingsRepo *testhelpers.MockPlatformSettingsRepository,
	publisher *testhelpers.MockEventPublisher,
) interfaces.RandomnessService {
	return NewRandomnessService(raffleRepo, ticketRepo, requestRepo, settingsRepo, publisher,
		testOperator, testCoordinator, time.Hour)
}

func TestRandomnessService_RequestRandomWinner_Preconditions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		caller     string
		setupMocks func(*testhelpers.MockRaffleRepository)
		wantErr    error
	}{
		{
			name:       "caller is not the operator",
			caller:     "mallory",
			setupMocks: func(*testhelpers.MockRaffleRepository) {},
			wantErr:    entities.ErrNotOperator,
		},
		{
			name:   "raffle not found",
			caller: testOperator,
			setupMocks: func(raffleRepo *testhelpers.MockRaffleRepository) {
				raffleRepo.On("GetByIDForUpdate", mock.Anything, int64(1)).Return(nil, nil)
			},
			wantErr: entities.ErrRaffleNotFound,
		},
		{
			name:   "sale window still open",
			caller: testOperator,
			setupMocks: func(raffleRepo *testhelpers.MockRaffleRepository) {
				raffle := createTestRaffle(1)
				raffle.TicketsSold = 3
				raffleRepo.On("GetByIDForUpdate", mock.Anything, int64(1)).Return(raffle, nil)
			},
			wantErr: entities.ErrRaffleNotEnded,
		},
		{
			name:   "winner already selected",
			caller: testOperator,
			setupMocks: func(raffleRepo *testhelpers.MockRaffleRepository) {
				raffle := createEndedRaffle(1, 3)
				raffle.IsActive = false
				raffleRepo.On("GetByIDForUpdate", mock.Anything, int64(1)).Return(raffle, nil)
			},
			wantErr: entities.ErrRaffleInactive,
		},
		{
			name:   "no tickets sold",
			caller: testOperator,
			setupMocks: func(raffleRepo *testhelpers.MockRaffleRepository) {
				raffleRepo.On("GetByIDForUpdate", mock.Anything, int64(1)).Return(createEndedRaffle(1, 0), nil)
			},
			wantErr: entities.ErrNoTicketsSold,
		},
		{
			name:   "draw already pending",
			caller: testOperator,
			setupMocks: func(raffleRepo *testhelpers.MockRaffleRepository) {
				raffle := createEndedRaffle(1, 3)
				raffle.DrawPending = true
				raffleRepo.On("GetByIDForUpdate", mock.Anything, int64(1)).Return(raffle, nil)
			},
			wantErr: entities.ErrDrawAlreadyPending,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			raffleRepo, ticketRepo, requestRepo, settingsRepo, publisher := setupRandomnessServiceMocks()
			tt.setupMocks(raffleRepo)

			service := newTestRandomnessService(raffleRepo, ticketRepo, requestRepo, settingsRepo, publisher)

			requestID, err := service.RequestRandomWinner(context.Background(), tt.caller, 1)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, requestID)
			raffleRepo.AssertExpectations(t)
			requestRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			publisher.AssertNotCalled(t, "Publish", mock.Anything)
		})
	}
}

func TestRandomnessService_RequestRandomWinner_Success(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	raffleRepo, ticketRepo, requestRepo, settingsRepo, publisher := setupRandomnessServiceMocks()

	raffle := createEndedRaffle(1, 3)
	raffleRepo.On("GetByIDForUpdate", mock.Anything, int64(1)).Return(raffle, nil)
	raffleRepo.On("Update", mock.Anything, raffle).Return(nil)

	settings := entities.NewDefaultPlatformSettings()
	settingsRepo.On("GetOrCreate", mock.Anything).Return(settings, nil)

	var created *entities.RandomnessRequest
	requestRepo.On("Create", mock.Anything, mock.AnythingOfType("*entities.RandomnessRequest")).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(*entities.RandomnessRequest)
		}).Return(nil)

	var published events.RandomnessRequestedEvent
	publisher.On("Publish", mock.AnythingOfType("events.RandomnessRequestedEvent")).
		Run(func(args mock.Arguments) {
			published = args.Get(0).(events.RandomnessRequestedEvent)
		}).Return(nil)

	service := newTestRandomnessService(raffleRepo, ticketRepo, requestRepo, settingsRepo, publisher)

	requestID, err := service.RequestRandomWinner(ctx, testOperator, 1)
	require.NoError(t, err)
	require.NotEmpty(t, requestID)

	require.NotNil(t, created)
	assert.Equal(t, requestID, created.RequestID)
	assert.Equal(t, int64(1), created.RaffleID)
	assert.Nil(t, created.FulfilledAt)

	assert.True(t, raffle.DrawPending)

	assert.Equal(t, requestID, published.RequestID)
	assert.Equal(t, int64(1), published.RaffleID)
	assert.Equal(t, settings.Oracle.KeyHash, published.KeyHash)
	assert.Equal(t, settings.Oracle.SubscriptionID, published.SubscriptionID)
	assert.Equal(t, settings.Oracle.Confirmations, published.Confirmations)
	assert.Equal(t, settings.Oracle.CallbackGasLimit, published.CallbackGasLimit)
	assert.Equal(t, entities.RandomWordCount, published.NumWords)

	raffleRepo.AssertExpectations(t)
	requestRepo.AssertExpectations(t)
	settingsRepo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestRandomnessService_RequestRandomWinner_PublishFailure(t *testing.T) {
	t.Parallel()

	// The publication is the outbound oracle request, so a publish failure
	// must fail the whole call instead of being swallowed.
	ctx := context.Background()
	raffleRepo, ticketRepo, requestRepo, settingsRepo, publisher := setupRandomnessServiceMocks()

	raffle := createEndedRaffle(1, 3)
	raffleRepo.On("GetByIDForUpdate", mock.Anything, int64(1)).Return(raffle, nil)
	raffleRepo.On("Update", mock.Anything, raffle).Return(nil)
	settingsRepo.On("GetOrCreate", mock.Anything).Return(entities.NewDefaultPlatformSettings(), nil)
	requestRepo.On("Create", mock.Anything, mock.AnythingOfType("*entities.RandomnessRequest")).Return(nil)
	publisher.On("Publish", mock.AnythingOfType("events.RandomnessRequestedEvent")).Return(errors.New("nats unavailable"))

	service := newTestRandomnessService(raffleRepo, ticketRepo, requestRepo, settingsRepo, publisher)

	requestID, err := service.RequestRandomWinner(ctx, testOperator, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to publish randomness request")
	assert.Empty(t, requestID)
}

func TestRandomnessService_FulfillRandomWords_Preconditions(t *testing.T) {
	t.Parallel()

	requestID := "11111111-2222-3333-4444-555555555555"
	now := time.Now()

	tests := []struct {
		name        string
		coordinator string
		randomWords []uint64
		setupMocks  func(*testhelpers.MockRaffleRepository, *testhelpers.MockRandomnessRequestRepository)
		wantErr     error
	}{
		{
			name:        "caller is not the coordinator",
			coordinator: "mallory",
			randomWords: []uint64{5},
			setupMocks:  func(*testhelpers.MockRaffleRepository, *testhelpers.MockRandomnessRequestRepository) {},
			wantErr:     entities.ErrNotCoordinator,
		},
		{
			name:        "unknown request id",
			coordinator: testCoordinator,
			randomWords: []uint64{5},
			setupMocks: func(_ *testhelpers.MockRaffleRepository, requestRepo *testhelpers.MockRandomnessRequestRepository) {
				requestRepo.On("GetByID", mock.Anything, requestID).Return(nil, nil)
			},
			wantErr: entities.ErrUnknownRandomnessRequest,
		},
		{
			name:        "request already fulfilled",
			coordinator: testCoordinator,
			randomWords: []uint64{5},
			setupMocks: func(_ *testhelpers.MockRaffleRepository, requestRepo *testhelpers.MockRandomnessRequestRepository) {
				request := createPendingRequest(1, time.Minute)
				request.FulfilledAt = &now
				requestRepo.On("GetByID", mock.Anything, requestID).Return(request, nil)
			},
			wantErr: entities.ErrNoPendingDraw,
		},
		{
			name:        "request abandoned by reset",
			coordinator: testCoordinator,
			randomWords: []uint64{5},
			setupMocks: func(_ *testhelpers.MockRaffleRepository, requestRepo *testhelpers.MockRandomnessRequestRepository) {
				request := createPendingRequest(1, time.Minute)
				request.AbandonedAt = &now
				requestRepo.On("GetByID", mock.Anything, requestID).Return(request, nil)
			},
			wantErr: entities.ErrNoPendingDraw,
		},
		{
			name:        "empty random words",
			coordinator: testCoordinator,
			randomWords: nil,
			setupMocks: func(_ *testhelpers.MockRaffleRepository, requestRepo *testhelpers.MockRandomnessRequestRepository) {
				requestRepo.On("GetByID", mock.Anything, requestID).Return(createPendingRequest(1, time.Minute), nil)
			},
			wantErr: entities.ErrEmptyRandomWords,
		},
		{
			name:        "raffle no longer pending",
			coordinator: testCoordinator,
			randomWords: []uint64{5},
			setupMocks: func(raffleRepo *testhelpers.MockRaffleRepository, requestRepo *testhelpers.MockRandomnessRequestRepository) {
				requestRepo.On("GetByID", mock.Anything, requestID).Return(createPendingRequest(1, time.Minute), nil)
				raffleRepo.On("GetByIDForUpdate", mock.Anything, int64(1)).Return(createEndedRaffle(1, 3), nil)
			},
			wantErr: entities.ErrNoPendingDraw,
		},
		{
			name:        "raffle already completed",
			coordinator: testCoordinator,
			randomWords: []uint64{5},
			setupMocks: func(raffleRepo *testhelpers.MockRaffleRepository, requestRepo *testhelpers.MockRandomnessRequestRepository) {
				requestRepo.On("GetByID", mock.Anything, requestID).Return(createPendingRequest(1, time.Minute), nil)
				raffle := createEndedRaffle(1, 3)
				raffle.DrawPending = true
				raffle.IsActive = false
				raffleRepo.On("GetByIDForUpdate", mock.Anything, int64(1)).Return(raffle, nil)
			},
			wantErr: entities.ErrRaffleInactive,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			raffleRepo, ticketRepo, requestRepo, settingsRepo, publisher := setupRandomnessServiceMocks()
			tt.setupMocks(raffleRepo, requestRepo)

			service := newTestRandomnessService(raffleRepo, ticketRepo, requestRepo, settingsRepo, publisher)

			raffle, err := service.FulfillRandomWords(context.Background(), tt.coordinator, requestID, tt.randomWords)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, raffle)
			ticketRepo.AssertNotCalled(t, "MarkWinning", mock.Anything, mock.Anything)
			publisher.AssertNotCalled(t, "Publish", mock.Anything)
		})
	}
}

func TestRandomnessService_FulfillRandomWords_SelectsWinnerByModulo(t *testing.T) {
	t.Parallel()

	// Three tickets sold, random word 5: 5 mod 3 = 2, so the third ticket in
	// purchase order wins regardless of who bought the others.
	ctx := context.Background()
	raffleRepo, ticketRepo, requestRepo, settingsRepo, publisher := setupRandomnessServiceMocks()

	request := createPendingRequest(1, time.Minute)
	requestRepo.On("GetByID", mock.Anything, request.RequestID).Return(request, nil)
	requestRepo.On("Update", mock.Anything, request).Return(nil)

	raffle := createEndedRaffle(1, 3)
	raffle.DrawPending = true
	raffleRepo.On("GetByIDForUpdate", mock.Anything, int64(1)).Return(raffle, nil)
	raffleRepo.On("Update", mock.Anything, raffle).Return(nil)

	winningTicket := &entities.Ticket{ID: 42, RaffleID: 1, Owner: "bob"}
	ticketRepo.On("GetByRaffleOffset", mock.Anything, int64(1), int64(2)).Return(winningTicket, nil)
	ticketRepo.On("MarkWinning", mock.Anything, int64(42)).Return(nil)

	var published events.WinnerSelectedEvent
	publisher.On("Publish", mock.AnythingOfType("events.WinnerSelectedEvent")).
		Run(func(args mock.Arguments) {
			published = args.Get(0).(events.WinnerSelectedEvent)
		}).Return(nil)

	service := newTestRandomnessService(raffleRepo, ticketRepo, requestRepo, settingsRepo, publisher)

	result, err := service.FulfillRandomWords(ctx, testCoordinator, request.RequestID, []uint64{5})
	require.NoError(t, err)
	require.NotNil(t, result)

	require.NotNil(t, result.Winner)
	assert.Equal(t, "bob", *result.Winner)
	require.NotNil(t, result.WinningTicketID)
	assert.Equal(t, int64(42), *result.WinningTicketID)
	assert.False(t, result.IsActive)
	assert.False(t, result.DrawPending)
	assert.Equal(t, entities.RaffleStatusComplete, result.Status())

	require.NotNil(t, request.FulfilledAt)
	require.NotNil(t, request.RandomWord)
	assert.Equal(t, int64(5), *request.RandomWord)

	assert.Equal(t, "bob", published.Winner)
	assert.Equal(t, uint64(5), published.RandomWord)
	assert.Equal(t, int64(42), published.WinningTicketID)

	raffleRepo.AssertExpectations(t)
	ticketRepo.AssertExpectations(t)
	requestRepo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestRandomnessService_FulfillRandomWords_UsesOnlyFirstWord(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	raffleRepo, ticketRepo, requestRepo, settingsRepo, publisher := setupRandomnessServiceMocks()

	request := createPendingRequest(1, time.Minute)
	requestRepo.On("GetByID", mock.Anything, request.RequestID).Return(request, nil)
	requestRepo.On("Update", mock.Anything, request).Return(nil)

	raffle := createEndedRaffle(1, 4)
	raffle.DrawPending = true
	raffleRepo.On("GetByIDForUpdate", mock.Anything, int64(1)).Return(raffle, nil)
	raffleRepo.On("Update", mock.Anything, raffle).Return(nil)

	// 7 mod 4 = 3; the extra words must not shift the selection
	ticketRepo.On("GetByRaffleOffset", mock.Anything, int64(1), int64(3)).
		Return(&entities.Ticket{ID: 4, RaffleID: 1, Owner: "carol"}, nil)
	ticketRepo.On("MarkWinning", mock.Anything, int64(4)).Return(nil)
	publisher.On("Publish", mock.AnythingOfType("events.WinnerSelectedEvent")).Return(nil)

	service := newTestRandomnessService(raffleRepo, ticketRepo, requestRepo, settingsRepo, publisher)

	result, err := service.FulfillRandomWords(ctx, testCoordinator, request.RequestID, []uint64{7, 99, 12345})
	require.NoError(t, err)
	require.NotNil(t, result.Winner)
	assert.Equal(t, "carol", *result.Winner)
	ticketRepo.AssertExpectations(t)
}

func TestRandomnessService_ResetStaleRequest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		caller     string
		setupMocks func(*testhelpers.MockRaffleRepository, *testhelpers.MockRandomnessRequestRepository, *testhelpers.MockEventPublisher)
		wantErr    error
	}{
		{
			name:   "caller is not the operator",
			caller: "mallory",
			setupMocks: func(*testhelpers.MockRaffleRepository, *testhelpers.MockRandomnessRequestRepository, *testhelpers.MockEventPublisher) {
			},
			wantErr: entities.ErrNotOperator,
		},
		{
			name:   "raffle not found",
			caller: testOperator,
			setupMocks: func(raffleRepo *testhelpers.MockRaffleRepository, _ *testhelpers.MockRandomnessRequestRepository, _ *testhelpers.MockEventPublisher) {
				raffleRepo.On("GetByIDForUpdate", mock.Anything, int64(1)).Return(nil, nil)
			},
			wantErr: entities.ErrRaffleNotFound,
		},
		{
			name:   "no draw pending",
			caller: testOperator,
			setupMocks: func(raffleRepo *testhelpers.MockRaffleRepository, _ *testhelpers.MockRandomnessRequestRepository, _ *testhelpers.MockEventPublisher) {
				raffleRepo.On("GetByIDForUpdate", mock.Anything, int64(1)).Return(createEndedRaffle(1, 3), nil)
			},
			wantErr: entities.ErrNoPendingDraw,
		},
		{
			name:   "pending request row missing",
			caller: testOperator,
			setupMocks: func(raffleRepo *testhelpers.MockRaffleRepository, requestRepo *testhelpers.MockRandomnessRequestRepository, _ *testhelpers.MockEventPublisher) {
				raffle := createEndedRaffle(1, 3)
				raffle.DrawPending = true
				raffleRepo.On("GetByIDForUpdate", mock.Anything, int64(1)).Return(raffle, nil)
				requestRepo.On("GetPendingByRaffleID", mock.Anything, int64(1)).Return(nil, nil)
			},
			wantErr: entities.ErrNoPendingDraw,
		},
		{
			name:   "request not yet stale",
			caller: testOperator,
			setupMocks: func(raffleRepo *testhelpers.MockRaffleRepository, requestRepo *testhelpers.MockRandomnessRequestRepository, _ *testhelpers.MockEventPublisher) {
				raffle := createEndedRaffle(1, 3)
				raffle.DrawPending = true
				raffleRepo.On("GetByIDForUpdate", mock.Anything, int64(1)).Return(raffle, nil)
				requestRepo.On("GetPendingByRaffleID", mock.Anything, int64(1)).Return(createPendingRequest(1, 10*time.Minute), nil)
			},
			wantErr: entities.ErrRequestNotStale,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			raffleRepo, ticketRepo, requestRepo, settingsRepo, publisher := setupRandomnessServiceMocks()
			tt.setupMocks(raffleRepo, requestRepo, publisher)

			service := newTestRandomnessService(raffleRepo, ticketRepo, requestRepo, settingsRepo, publisher)

			err := service.ResetStaleRequest(context.Background(), tt.caller, 1)

			assert.ErrorIs(t, err, tt.wantErr)
			raffleRepo.AssertExpectations(t)
			requestRepo.AssertExpectations(t)
		})
	}

	t.Run("stale request is abandoned and the raffle reopened for a new draw", func(t *testing.T) {
		t.Parallel()

		raffleRepo, ticketRepo, requestRepo, settingsRepo, publisher := setupRandomnessServiceMocks()

		raffle := createEndedRaffle(1, 3)
		raffle.DrawPending = true
		raffleRepo.On("GetByIDForUpdate", mock.Anything, int64(1)).Return(raffle, nil)
		raffleRepo.On("Update", mock.Anything, raffle).Return(nil)

		request := createPendingRequest(1, 2*time.Hour)
		requestRepo.On("GetPendingByRaffleID", mock.Anything, int64(1)).Return(request, nil)
		requestRepo.On("Update", mock.Anything, request).Return(nil)

		publisher.On("Publish", mock.AnythingOfType("events.RandomnessAbandonedEvent")).Return(nil)

		service := newTestRandomnessService(raffleRepo, ticketRepo, requestRepo, settingsRepo, publisher)

		err := service.ResetStaleRequest(context.Background(), testOperator, 1)
		require.NoError(t, err)

		assert.NotNil(t, request.AbandonedAt)
		assert.False(t, raffle.DrawPending)
		assert.True(t, raffle.IsActive)

		raffleRepo.AssertExpectations(t)
		requestRepo.AssertExpectations(t)
		publisher.AssertExpectations(t)
	})
}

func TestRandomnessService_SetOracleConfig(t *testing.T) {
	t.Parallel()

	t.Run("caller is not the operator", func(t *testing.T) {
		t.Parallel()

		raffleRepo, ticketRepo, requestRepo, settingsRepo, publisher := setupRandomnessServiceMocks()

		service := newTestRandomnessService(raffleRepo, ticketRepo, requestRepo, settingsRepo, publisher)

		err := service.SetOracleConfig(context.Background(), "mallory", entities.OracleConfig{})
		assert.ErrorIs(t, err, entities.ErrNotOperator)
		settingsRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("operator updates the oracle parameters", func(t *testing.T) {
		t.Parallel()

		raffleRepo, ticketRepo, requestRepo, settingsRepo, publisher := setupRandomnessServiceMocks()

		settings := entities.NewDefaultPlatformSettings()
		settingsRepo.On("GetOrCreate", mock.Anything).Return(settings, nil)
		settingsRepo.On("Update", mock.Anything, settings).Return(nil)

		service := newTestRandomnessService(raffleRepo, ticketRepo, requestRepo, settingsRepo, publisher)

		cfg := entities.OracleConfig{
			KeyHash:          "0xdeadbeef",
			SubscriptionID:   77,
			Confirmations:    5,
			CallbackGasLimit: 250000,
			NativePayment:    true,
		}
		err := service.SetOracleConfig(context.Background(), testOperator, cfg)
		require.NoError(t, err)

		assert.Equal(t, cfg, settings.Oracle)
		settingsRepo.AssertExpectations(t)
	})
}
