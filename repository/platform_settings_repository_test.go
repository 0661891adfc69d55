package repository

import (
	"context"
	"testing"

	"github.com/Samuel1-ona/tikka-contracts/domain/entities"
	"github.com/Samuel1-ona/tikka-contracts/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlatformSettingsRepository_GetOrCreate(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewPlatformSettingsRepository(testDB.DB)
	ctx := context.Background()

	t.Run("first call inserts defaults", func(t *testing.T) {
		settings, err := repo.GetOrCreate(ctx)
		require.NoError(t, err)
		require.NotNil(t, settings)

		assert.Equal(t, int64(5), settings.ServiceChargeRate)
		assert.Equal(t, entities.SettlementAssetNative, settings.SettlementAssetMode)
		assert.Equal(t, int64(3), settings.Oracle.Confirmations)
		assert.Equal(t, int64(100_000), settings.Oracle.CallbackGasLimit)
		assert.False(t, settings.UpdatedAt.IsZero())
	})

	t.Run("second call returns the stored row", func(t *testing.T) {
		settings, err := repo.GetOrCreate(ctx)
		require.NoError(t, err)

		settings.ServiceChargeRate = 10
		require.NoError(t, repo.Update(ctx, settings))

		again, err := repo.GetOrCreate(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(10), again.ServiceChargeRate)
	})
}

func TestPlatformSettingsRepository_Update(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewPlatformSettingsRepository(testDB.DB)
	ctx := context.Background()

	t.Run("persists oracle config and settlement mode", func(t *testing.T) {
		settings, err := repo.GetOrCreate(ctx)
		require.NoError(t, err)

		settings.ApplyOracleConfig(entities.OracleConfig{
			KeyHash:          "0xdeadbeef",
			SubscriptionID:   77,
			Confirmations:    5,
			CallbackGasLimit: 250_000,
			NativePayment:    true,
		})
		settings.SettlementAssetMode = entities.SettlementAssetTicket
		require.NoError(t, repo.Update(ctx, settings))

		got, err := repo.GetOrCreate(ctx)
		require.NoError(t, err)
		assert.Equal(t, "0xdeadbeef", got.Oracle.KeyHash)
		assert.Equal(t, int64(77), got.Oracle.SubscriptionID)
		assert.Equal(t, int64(5), got.Oracle.Confirmations)
		assert.Equal(t, int64(250_000), got.Oracle.CallbackGasLimit)
		assert.True(t, got.Oracle.NativePayment)
		assert.Equal(t, entities.SettlementAssetTicket, got.SettlementAssetMode)
	})

	t.Run("rejects out-of-range charge rate", func(t *testing.T) {
		settings, err := repo.GetOrCreate(ctx)
		require.NoError(t, err)

		settings.ServiceChargeRate = entities.MaxServiceChargeRate + 1
		err = repo.Update(ctx, settings)
		assert.Error(t, err)
	})
}

func TestPlatformSettingsRepository_UpdateWithoutRow(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewPlatformSettingsRepository(testDB.DB)
	ctx := context.Background()

	err := repo.Update(ctx, entities.NewDefaultPlatformSettings())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
