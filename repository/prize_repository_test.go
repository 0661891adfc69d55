package repository

import (
	"context"
	"testing"
	"time"

	"github.com/Samuel1-ona/tikka-contracts/domain/entities"
	"github.com/Samuel1-ona/tikka-contracts/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrizeRepository_Create(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	raffleRepo := NewRaffleRepository(testDB.DB)
	repo := NewPrizeRepository(testDB.DB)
	ctx := context.Background()

	t.Run("native prize roundtrip", func(t *testing.T) {
		raffle := testutil.CreateTestRaffle("alice")
		require.NoError(t, raffleRepo.Create(ctx, raffle))

		now := time.Now().UTC()
		prize := entities.NewNativePrize(raffle.ID, 5000)
		prize.IsDeposited = true
		prize.DepositedAt = &now
		require.NoError(t, repo.Create(ctx, prize))

		got, err := repo.GetByRaffleID(ctx, raffle.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, raffle.ID, got.RaffleID)
		assert.Equal(t, int64(5000), got.Amount)
		assert.Nil(t, got.Token)
		assert.False(t, got.IsNFT)
		assert.True(t, got.IsDeposited)
		require.NotNil(t, got.DepositedAt)
		assert.WithinDuration(t, now, *got.DepositedAt, time.Millisecond)
	})

	t.Run("nft prize roundtrip", func(t *testing.T) {
		raffle := testutil.CreateTestRaffle("alice")
		require.NoError(t, raffleRepo.Create(ctx, raffle))

		now := time.Now().UTC()
		prize := entities.NewNFTPrize(raffle.ID, "collection:apes", 7)
		prize.IsDeposited = true
		prize.DepositedAt = &now
		require.NoError(t, repo.Create(ctx, prize))

		got, err := repo.GetByRaffleID(ctx, raffle.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.True(t, got.IsNFT)
		require.NotNil(t, got.Token)
		assert.Equal(t, "collection:apes", *got.Token)
		require.NotNil(t, got.TokenItemID)
		assert.Equal(t, int64(7), *got.TokenItemID)
	})

	t.Run("second deposit for the same raffle fails", func(t *testing.T) {
		raffle := testutil.CreateTestRaffle("alice")
		require.NoError(t, raffleRepo.Create(ctx, raffle))

		require.NoError(t, repo.Create(ctx, entities.NewNativePrize(raffle.ID, 100)))
		err := repo.Create(ctx, entities.NewNativePrize(raffle.ID, 200))
		assert.Error(t, err)
	})
}

func TestPrizeRepository_GetByRaffleID(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewPrizeRepository(testDB.DB)
	ctx := context.Background()

	prize, err := repo.GetByRaffleID(ctx, 999999)
	require.NoError(t, err)
	assert.Nil(t, prize)
}
