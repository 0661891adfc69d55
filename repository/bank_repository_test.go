package repository

import (
	"context"
	"testing"

	"github.com/Samuel1-ona/tikka-contracts/domain/entities"
	"github.com/Samuel1-ona/tikka-contracts/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBankRepository_Mint(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewBankRepository(testDB.DB)
	ctx := context.Background()

	t.Run("credits a fresh address", func(t *testing.T) {
		require.NoError(t, repo.Mint(ctx, "alice", 1000))

		balance, err := repo.BalanceOf(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, int64(1000), balance)
	})

	t.Run("accumulates on repeat mints", func(t *testing.T) {
		require.NoError(t, repo.Mint(ctx, "alice", 250))

		balance, err := repo.BalanceOf(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, int64(1250), balance)
	})

	t.Run("rejects non-positive amounts", func(t *testing.T) {
		err := repo.Mint(ctx, "alice", 0)
		assert.ErrorIs(t, err, entities.ErrInvalidAmount)

		err = repo.Mint(ctx, "alice", -5)
		assert.ErrorIs(t, err, entities.ErrInvalidAmount)
	})
}

func TestBankRepository_BalanceOf(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewBankRepository(testDB.DB)
	ctx := context.Background()

	t.Run("unknown address holds zero", func(t *testing.T) {
		balance, err := repo.BalanceOf(ctx, "nobody")
		require.NoError(t, err)
		assert.Equal(t, int64(0), balance)
	})
}

func TestBankRepository_Transfer(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewBankRepository(testDB.DB)
	ctx := context.Background()

	require.NoError(t, repo.Mint(ctx, "bob", 500))

	t.Run("moves funds between addresses", func(t *testing.T) {
		require.NoError(t, repo.Transfer(ctx, "bob", "carol", 200))

		bobBalance, err := repo.BalanceOf(ctx, "bob")
		require.NoError(t, err)
		assert.Equal(t, int64(300), bobBalance)

		carolBalance, err := repo.BalanceOf(ctx, "carol")
		require.NoError(t, err)
		assert.Equal(t, int64(200), carolBalance)
	})

	t.Run("credits an address with no prior row", func(t *testing.T) {
		require.NoError(t, repo.Transfer(ctx, "carol", "dave", 50))

		daveBalance, err := repo.BalanceOf(ctx, "dave")
		require.NoError(t, err)
		assert.Equal(t, int64(50), daveBalance)
	})

	t.Run("rejects overdraft and leaves balances untouched", func(t *testing.T) {
		err := repo.Transfer(ctx, "bob", "carol", 9999)
		assert.ErrorIs(t, err, entities.ErrInsufficientFunds)

		bobBalance, err := repo.BalanceOf(ctx, "bob")
		require.NoError(t, err)
		assert.Equal(t, int64(300), bobBalance)

		carolBalance, err := repo.BalanceOf(ctx, "carol")
		require.NoError(t, err)
		assert.Equal(t, int64(150), carolBalance)
	})

	t.Run("rejects transfers from unknown addresses", func(t *testing.T) {
		err := repo.Transfer(ctx, "nobody", "bob", 10)
		assert.ErrorIs(t, err, entities.ErrInsufficientFunds)
	})

	t.Run("rejects non-positive amounts", func(t *testing.T) {
		err := repo.Transfer(ctx, "bob", "carol", 0)
		assert.ErrorIs(t, err, entities.ErrInvalidAmount)
	})
}
