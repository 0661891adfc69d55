package entities

import (
	"time"
)

// MaxServiceChargeRate caps the platform's percentage cut of ticket proceeds
const MaxServiceChargeRate = 20

// SettlementAssetMode selects which asset winnings are paid out in.
// The original system always paid native currency even for token-denominated
// raffles; that behavior is preserved as the default and the corrected
// behavior is available as an explicit choice.
type SettlementAssetMode string

const (
	// SettlementAssetNative pays winner and operator in native currency
	SettlementAssetNative SettlementAssetMode = "native"
	// SettlementAssetTicket pays winner and operator in the raffle's ticket asset
	SettlementAssetTicket SettlementAssetMode = "ticket"
)

// OracleConfig carries the parameters attached to every randomness request
type OracleConfig struct {
	KeyHash          string `db:"oracle_key_hash"`
	SubscriptionID   int64  `db:"oracle_subscription_id"`
	Confirmations    int64  `db:"oracle_confirmations"`
	CallbackGasLimit int64  `db:"oracle_callback_gas_limit"`
	NativePayment    bool   `db:"oracle_native_payment"`
}

// PlatformSettings is the singleton operator-tunable configuration row
type PlatformSettings struct {
	ServiceChargeRate   int64               `db:"service_charge_rate"` // Percent, 0..20
	Oracle              OracleConfig
	SettlementAssetMode SettlementAssetMode `db:"settlement_asset_mode"`
	UpdatedAt           time.Time           `db:"updated_at"`
}

// NewDefaultPlatformSettings returns the settings used until the operator
// tunes them
func NewDefaultPlatformSettings() *PlatformSettings {
	return &PlatformSettings{
		ServiceChargeRate: 5,
		Oracle: OracleConfig{
			Confirmations:    3,
			CallbackGasLimit: 100_000,
		},
		SettlementAssetMode: SettlementAssetNative,
	}
}

// ApplyOracleConfig replaces the oracle parameters. Takes effect for
// subsequent requests only.
func (s *PlatformSettings) ApplyOracleConfig(cfg OracleConfig) {
	s.Oracle = cfg
}

// ServiceCharge computes the platform's cut of a pool using integer division
// (truncates toward zero)
func (s *PlatformSettings) ServiceCharge(totalPool int64) int64 {
	return totalPool * s.ServiceChargeRate / 100
}
