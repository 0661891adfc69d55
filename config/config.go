package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Config holds all application configuration
type Config struct {
	// Database configuration
	DatabaseURL  string
	DatabaseName string

	// NATS configuration
	NATSServers string

	// Platform identities. The operator collects service charges and starts
	// draws; the coordinator is the only identity allowed to fulfill them;
	// the escrow account holds ticket proceeds and deposited prizes.
	OperatorAddress    string
	CoordinatorAddress string
	EscrowAddress      string

	// HTTP API configuration
	HTTPAddr string

	// Draw worker configuration
	DrawWorkerInterval    time.Duration // How often ended raffles are swept for draws
	PendingRequestTimeout time.Duration // Age after which a pending randomness request may be abandoned

	// Oracle responder configuration
	OracleFixedWords []uint64 // When set, the dev responder returns these instead of random words

	// Environment
	Environment string // "development" or "production"
}

var (
	instance *Config
	once     sync.Once
	mu       sync.Mutex // Protects instance for test setup
)

// Get returns the global configuration instance
func Get() *Config {
	mu.Lock()
	defer mu.Unlock()

	// If instance is already set (e.g., by tests), return it
	if instance != nil {
		return instance
	}

	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			panic(fmt.Sprintf("failed to load config: %v", err))
		}
	})
	return instance
}

// load loads configuration from environment variables
func load() (*Config, error) {
	config := &Config{
		// Database
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		DatabaseName: os.Getenv("DATABASE_NAME"),

		// NATS
		NATSServers: os.Getenv("NATS_SERVERS"),

		// Identity defaults suit local development; production overrides them
		OperatorAddress:    "tikka:operator",
		CoordinatorAddress: "tikka:coordinator",
		EscrowAddress:      "tikka:escrow",

		// HTTP
		HTTPAddr: ":8080",

		// Worker defaults
		DrawWorkerInterval:    time.Minute,
		PendingRequestTimeout: time.Hour,

		// Environment
		Environment: os.Getenv("ENVIRONMENT"),
	}

	// Override defaults if environment variables are set
	if addr := os.Getenv("OPERATOR_ADDRESS"); addr != "" {
		config.OperatorAddress = addr
	}
	if addr := os.Getenv("COORDINATOR_ADDRESS"); addr != "" {
		config.CoordinatorAddress = addr
	}
	if addr := os.Getenv("ESCROW_ADDRESS"); addr != "" {
		config.EscrowAddress = addr
	}
	if addr := os.Getenv("HTTP_ADDR"); addr != "" {
		config.HTTPAddr = addr
	}
	if interval := os.Getenv("DRAW_WORKER_INTERVAL"); interval != "" {
		if parsedInterval, err := time.ParseDuration(interval); err == nil {
			config.DrawWorkerInterval = parsedInterval
		}
	}
	if timeout := os.Getenv("PENDING_REQUEST_TIMEOUT"); timeout != "" {
		if parsedTimeout, err := time.ParseDuration(timeout); err == nil {
			config.PendingRequestTimeout = parsedTimeout
		}
	}

	// Parse fixed oracle words
	if fixedWords := os.Getenv("ORACLE_FIXED_WORDS"); fixedWords != "" {
		wordStrings := strings.Split(fixedWords, ",")
		for _, wordStr := range wordStrings {
			wordStr = strings.TrimSpace(wordStr)
			if wordStr != "" {
				if word, err := strconv.ParseUint(wordStr, 10, 64); err == nil {
					config.OracleFixedWords = append(config.OracleFixedWords, word)
				}
			}
		}
	}

	// Set default environment if not specified
	if config.Environment == "" {
		config.Environment = "development"
	}

	if config.Environment != "test" {
		// Validate required configuration
		if config.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required")
		}
		if config.NATSServers == "" {
			return nil, fmt.Errorf("NATS_SERVERS is required")
		}
	}

	return config, nil
}

// Test helpers - only use in tests

// SetTestConfig overrides the global config instance for testing
// This should only be called from test files
func SetTestConfig(testConfig *Config) {
	mu.Lock()
	defer mu.Unlock()
	instance = testConfig
}

// ResetConfig resets the global config instance and sync.Once for testing
// This should only be called from test files
func ResetConfig() {
	mu.Lock()
	defer mu.Unlock()
	instance = nil
	once = sync.Once{}
}

// NewTestConfig creates a minimal config suitable for unit tests
func NewTestConfig() *Config {
	return &Config{
		Environment:           "test",
		OperatorAddress:       "tikka:operator",
		CoordinatorAddress:    "tikka:coordinator",
		EscrowAddress:         "tikka:escrow",
		HTTPAddr:              ":0",
		DrawWorkerInterval:    time.Minute,
		PendingRequestTimeout: time.Hour,
	}
}
