package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every variable load reads so ambient values cannot leak in
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"DATABASE_URL", "DATABASE_NAME", "NATS_SERVERS",
		"OPERATOR_ADDRESS", "COORDINATOR_ADDRESS", "ESCROW_ADDRESS",
		"HTTP_ADDR", "DRAW_WORKER_INTERVAL", "PENDING_REQUEST_TIMEOUT",
		"ORACLE_FIXED_WORDS", "ENVIRONMENT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("ENVIRONMENT", "test")

	cfg, err := load()
	require.NoError(t, err)

	assert.Equal(t, "tikka:operator", cfg.OperatorAddress)
	assert.Equal(t, "tikka:coordinator", cfg.CoordinatorAddress)
	assert.Equal(t, "tikka:escrow", cfg.EscrowAddress)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, time.Minute, cfg.DrawWorkerInterval)
	assert.Equal(t, time.Hour, cfg.PendingRequestTimeout)
	assert.Empty(t, cfg.OracleFixedWords)
	assert.Equal(t, "test", cfg.Environment)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("ENVIRONMENT", "test")
	t.Setenv("OPERATOR_ADDRESS", "ops:main")
	t.Setenv("COORDINATOR_ADDRESS", "vrf:main")
	t.Setenv("ESCROW_ADDRESS", "vault:main")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("DRAW_WORKER_INTERVAL", "30s")
	t.Setenv("PENDING_REQUEST_TIMEOUT", "2h")
	t.Setenv("ORACLE_FIXED_WORDS", "5, 7,12")

	cfg, err := load()
	require.NoError(t, err)

	assert.Equal(t, "ops:main", cfg.OperatorAddress)
	assert.Equal(t, "vrf:main", cfg.CoordinatorAddress)
	assert.Equal(t, "vault:main", cfg.EscrowAddress)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, 30*time.Second, cfg.DrawWorkerInterval)
	assert.Equal(t, 2*time.Hour, cfg.PendingRequestTimeout)
	assert.Equal(t, []uint64{5, 7, 12}, cfg.OracleFixedWords)
}

func TestLoad_IgnoresMalformedOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("ENVIRONMENT", "test")
	t.Setenv("DRAW_WORKER_INTERVAL", "soon")
	t.Setenv("ORACLE_FIXED_WORDS", "5,x,12")

	cfg, err := load()
	require.NoError(t, err)

	assert.Equal(t, time.Minute, cfg.DrawWorkerInterval)
	assert.Equal(t, []uint64{5, 12}, cfg.OracleFixedWords)
}

func TestLoad_RequiredOutsideTestEnvironment(t *testing.T) {
	clearEnv(t)

	_, err := load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")

	t.Setenv("DATABASE_URL", "postgres://localhost:5432/tikka")
	_, err = load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NATS_SERVERS")

	t.Setenv("NATS_SERVERS", "nats://localhost:4222")
	cfg, err := load()
	require.NoError(t, err)
	assert.Equal(t, "development", cfg.Environment)
}

func TestSetTestConfig(t *testing.T) {
	ResetConfig()
	defer ResetConfig()

	testConfig := NewTestConfig()
	SetTestConfig(testConfig)

	assert.Same(t, testConfig, Get())
}
