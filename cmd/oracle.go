package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/Samuel1-ona/tikka-contracts/config"
	"github.com/Samuel1-ona/tikka-contracts/infrastructure"
)

// RunOracle starts the standalone oracle responder. It watches for
// randomness requests and answers them with fulfillment messages, standing
// in for an external randomness coordinator during development.
func RunOracle(ctx context.Context) error {
	log.Println("Starting oracle responder...")

	cfg := config.Get()

	responder := infrastructure.NewOracleResponder(cfg.NATSServers, cfg.CoordinatorAddress, cfg.OracleFixedWords)
	go func() {
		<-ctx.Done()
		responder.Stop()
	}()

	log.Printf("Oracle responder running as %s...", cfg.CoordinatorAddress)
	if err := responder.Start(ctx); err != nil {
		return fmt.Errorf("oracle responder error: %w", err)
	}

	return nil
}
