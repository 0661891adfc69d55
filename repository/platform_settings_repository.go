package repository

import (
	"context"
	"fmt"

	"github.com/Samuel1-ona/tikka-contracts/domain/entities"

	"github.com/jackc/pgx/v5"
)

// PlatformSettingsRepository implements the singleton settings row
type PlatformSettingsRepository struct {
	q Queryable
}

// NewPlatformSettingsRepository creates a new platform settings repository
func NewPlatformSettingsRepository(q Queryable) *PlatformSettingsRepository {
	return &PlatformSettingsRepository{q: q}
}

// GetOrCreate retrieves the settings, inserting defaults on first use
func (r *PlatformSettingsRepository) GetOrCreate(ctx context.Context) (*entities.PlatformSettings, error) {
	query := `
		SELECT service_charge_rate, oracle_key_hash, oracle_subscription_id,
		       oracle_confirmations, oracle_callback_gas_limit, oracle_native_payment,
		       settlement_asset_mode, updated_at
		FROM platform_settings
		WHERE id = 1
	`

	var settings entities.PlatformSettings
	err := r.q.QueryRow(ctx, query).Scan(
		&settings.ServiceChargeRate,
		&settings.Oracle.KeyHash,
		&settings.Oracle.SubscriptionID,
		&settings.Oracle.Confirmations,
		&settings.Oracle.CallbackGasLimit,
		&settings.Oracle.NativePayment,
		&settings.SettlementAssetMode,
		&settings.UpdatedAt,
	)

	if err == nil {
		return &settings, nil
	}

	if err != pgx.ErrNoRows {
		return nil, fmt.Errorf("failed to get platform settings: %w", err)
	}

	defaults := entities.NewDefaultPlatformSettings()
	insertQuery := `
		INSERT INTO platform_settings (id, service_charge_rate, oracle_key_hash,
		                               oracle_subscription_id, oracle_confirmations,
		                               oracle_callback_gas_limit, oracle_native_payment,
		                               settlement_asset_mode)
		VALUES (1, $1, $2, $3, $4, $5, $6, $7)
		RETURNING service_charge_rate, oracle_key_hash, oracle_subscription_id,
		          oracle_confirmations, oracle_callback_gas_limit, oracle_native_payment,
		          settlement_asset_mode, updated_at
	`

	err = r.q.QueryRow(ctx, insertQuery,
		defaults.ServiceChargeRate,
		defaults.Oracle.KeyHash,
		defaults.Oracle.SubscriptionID,
		defaults.Oracle.Confirmations,
		defaults.Oracle.CallbackGasLimit,
		defaults.Oracle.NativePayment,
		defaults.SettlementAssetMode,
	).Scan(
		&settings.ServiceChargeRate,
		&settings.Oracle.KeyHash,
		&settings.Oracle.SubscriptionID,
		&settings.Oracle.Confirmations,
		&settings.Oracle.CallbackGasLimit,
		&settings.Oracle.NativePayment,
		&settings.SettlementAssetMode,
		&settings.UpdatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create platform settings: %w", err)
	}

	return &settings, nil
}

// Update persists the settings
func (r *PlatformSettingsRepository) Update(ctx context.Context, settings *entities.PlatformSettings) error {
	query := `
		UPDATE platform_settings
		SET service_charge_rate = $1,
		    oracle_key_hash = $2,
		    oracle_subscription_id = $3,
		    oracle_confirmations = $4,
		    oracle_callback_gas_limit = $5,
		    oracle_native_payment = $6,
		    settlement_asset_mode = $7,
		    updated_at = NOW()
		WHERE id = 1
	`

	result, err := r.q.Exec(ctx, query,
		settings.ServiceChargeRate,
		settings.Oracle.KeyHash,
		settings.Oracle.SubscriptionID,
		settings.Oracle.Confirmations,
		settings.Oracle.CallbackGasLimit,
		settings.Oracle.NativePayment,
		settings.SettlementAssetMode,
	)

	if err != nil {
		return fmt.Errorf("failed to update platform settings: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("platform settings row not found")
	}

	return nil
}
