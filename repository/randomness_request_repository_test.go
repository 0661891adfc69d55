package repository

import (
	"context"
	"testing"
	"time"

	"github.com/Samuel1-ona/tikka-contracts/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomnessRequestRepository_Create(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	raffleRepo := NewRaffleRepository(testDB.DB)
	repo := NewRandomnessRequestRepository(testDB.DB)
	ctx := context.Background()

	raffle := testutil.CreateTestEndedRaffle("alice")
	require.NoError(t, raffleRepo.Create(ctx, raffle))

	t.Run("assigns requested_at", func(t *testing.T) {
		request := testutil.CreateTestRandomnessRequest("req-1", raffle.ID)
		require.NoError(t, repo.Create(ctx, request))
		assert.False(t, request.RequestedAt.IsZero())
	})

	t.Run("duplicate request id fails", func(t *testing.T) {
		err := repo.Create(ctx, testutil.CreateTestRandomnessRequest("req-1", raffle.ID))
		assert.Error(t, err)
	})
}

func TestRandomnessRequestRepository_GetByID(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	raffleRepo := NewRaffleRepository(testDB.DB)
	repo := NewRandomnessRequestRepository(testDB.DB)
	ctx := context.Background()

	t.Run("request not found", func(t *testing.T) {
		request, err := repo.GetByID(ctx, "req-missing")
		require.NoError(t, err)
		assert.Nil(t, request)
	})

	t.Run("request found", func(t *testing.T) {
		raffle := testutil.CreateTestEndedRaffle("alice")
		require.NoError(t, raffleRepo.Create(ctx, raffle))
		require.NoError(t, repo.Create(ctx, testutil.CreateTestRandomnessRequest("req-2", raffle.ID)))

		request, err := repo.GetByID(ctx, "req-2")
		require.NoError(t, err)
		require.NotNil(t, request)
		assert.Equal(t, raffle.ID, request.RaffleID)
		assert.False(t, request.IsFulfilled())
		assert.False(t, request.IsAbandoned())
	})
}

func TestRandomnessRequestRepository_GetPendingByRaffleID(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	raffleRepo := NewRaffleRepository(testDB.DB)
	repo := NewRandomnessRequestRepository(testDB.DB)
	ctx := context.Background()

	raffle := testutil.CreateTestEndedRaffle("alice")
	require.NoError(t, raffleRepo.Create(ctx, raffle))

	t.Run("no requests", func(t *testing.T) {
		request, err := repo.GetPendingByRaffleID(ctx, raffle.ID)
		require.NoError(t, err)
		assert.Nil(t, request)
	})

	t.Run("skips settled requests", func(t *testing.T) {
		// An abandoned request followed by a live retry
		abandoned := testutil.CreateTestRandomnessRequest("req-abandoned", raffle.ID)
		require.NoError(t, repo.Create(ctx, abandoned))
		now := time.Now().UTC()
		abandoned.AbandonedAt = &now
		require.NoError(t, repo.Update(ctx, abandoned))

		retry := testutil.CreateTestRandomnessRequest("req-retry", raffle.ID)
		require.NoError(t, repo.Create(ctx, retry))

		pending, err := repo.GetPendingByRaffleID(ctx, raffle.ID)
		require.NoError(t, err)
		require.NotNil(t, pending)
		assert.Equal(t, "req-retry", pending.RequestID)
	})
}

func TestRandomnessRequestRepository_Update(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	raffleRepo := NewRaffleRepository(testDB.DB)
	repo := NewRandomnessRequestRepository(testDB.DB)
	ctx := context.Background()

	t.Run("persists fulfillment", func(t *testing.T) {
		raffle := testutil.CreateTestEndedRaffle("alice")
		require.NoError(t, raffleRepo.Create(ctx, raffle))

		request := testutil.CreateTestRandomnessRequest("req-3", raffle.ID)
		require.NoError(t, repo.Create(ctx, request))

		request.Fulfill(12345)
		require.NoError(t, repo.Update(ctx, request))

		got, err := repo.GetByID(ctx, "req-3")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.True(t, got.IsFulfilled())
		require.NotNil(t, got.RandomWord)
		assert.Equal(t, int64(12345), *got.RandomWord)
	})

	t.Run("request not found", func(t *testing.T) {
		missing := testutil.CreateTestRandomnessRequest("req-missing", 1)
		err := repo.Update(ctx, missing)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})
}
