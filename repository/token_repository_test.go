package repository

import (
	"context"
	"testing"

	"github.com/Samuel1-ona/tikka-contracts/domain/entities"
	"github.com/Samuel1-ona/tikka-contracts/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRepository_Mint(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewTokenRepository(testDB.DB)
	ctx := context.Background()

	t.Run("credits per token and address", func(t *testing.T) {
		require.NoError(t, repo.Mint(ctx, "token:gold", "alice", 400))
		require.NoError(t, repo.Mint(ctx, "token:silver", "alice", 100))

		gold, err := repo.BalanceOf(ctx, "token:gold", "alice")
		require.NoError(t, err)
		assert.Equal(t, int64(400), gold)

		silver, err := repo.BalanceOf(ctx, "token:silver", "alice")
		require.NoError(t, err)
		assert.Equal(t, int64(100), silver)
	})

	t.Run("accumulates on repeat mints", func(t *testing.T) {
		require.NoError(t, repo.Mint(ctx, "token:gold", "alice", 50))

		gold, err := repo.BalanceOf(ctx, "token:gold", "alice")
		require.NoError(t, err)
		assert.Equal(t, int64(450), gold)
	})

	t.Run("rejects non-positive amounts", func(t *testing.T) {
		err := repo.Mint(ctx, "token:gold", "alice", 0)
		assert.ErrorIs(t, err, entities.ErrInvalidAmount)
	})
}

func TestTokenRepository_BalanceOf(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewTokenRepository(testDB.DB)
	ctx := context.Background()

	t.Run("unknown pair holds zero", func(t *testing.T) {
		balance, err := repo.BalanceOf(ctx, "token:gold", "nobody")
		require.NoError(t, err)
		assert.Equal(t, int64(0), balance)
	})
}

func TestTokenRepository_TransferFrom(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewTokenRepository(testDB.DB)
	ctx := context.Background()

	require.NoError(t, repo.Mint(ctx, "token:gold", "bob", 300))
	require.NoError(t, repo.Mint(ctx, "token:silver", "bob", 80))

	t.Run("moves the named token only", func(t *testing.T) {
		require.NoError(t, repo.TransferFrom(ctx, "token:gold", "bob", "carol", 120))

		bobGold, err := repo.BalanceOf(ctx, "token:gold", "bob")
		require.NoError(t, err)
		assert.Equal(t, int64(180), bobGold)

		carolGold, err := repo.BalanceOf(ctx, "token:gold", "carol")
		require.NoError(t, err)
		assert.Equal(t, int64(120), carolGold)

		bobSilver, err := repo.BalanceOf(ctx, "token:silver", "bob")
		require.NoError(t, err)
		assert.Equal(t, int64(80), bobSilver)
	})

	t.Run("rejects overdraft per token", func(t *testing.T) {
		err := repo.TransferFrom(ctx, "token:silver", "bob", "carol", 81)
		assert.ErrorIs(t, err, entities.ErrInsufficientFunds)

		bobSilver, err := repo.BalanceOf(ctx, "token:silver", "bob")
		require.NoError(t, err)
		assert.Equal(t, int64(80), bobSilver)
	})

	t.Run("rejects non-positive amounts", func(t *testing.T) {
		err := repo.TransferFrom(ctx, "token:gold", "bob", "carol", -1)
		assert.ErrorIs(t, err, entities.ErrInvalidAmount)
	})
}
