package infrastructure

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Samuel1-ona/tikka-contracts/application"
	"github.com/Samuel1-ona/tikka-contracts/application/dto"

	log "github.com/sirupsen/logrus"
)

// FulfillmentSubject is the subject coordinators publish oracle callbacks on
const FulfillmentSubject = "tikka.oracle.fulfillment"

// FulfillmentMessage is the wire format of an oracle callback. The claimed
// coordinator identity is passed through to the domain layer, which owns the
// equality check against the configured coordinator.
type FulfillmentMessage struct {
	Coordinator string   `json:"coordinator"`
	RequestID   string   `json:"request_id"`
	RandomWords []uint64 `json:"random_words"`
}

// OracleEventListener handles oracle NATS messages and converts them to application DTOs
type OracleEventListener struct {
	fulfillmentHandler application.FulfillmentHandler
}

// NewOracleEventListener creates a new oracle event listener
func NewOracleEventListener(fulfillmentHandler application.FulfillmentHandler) *OracleEventListener {
	return &OracleEventListener{
		fulfillmentHandler: fulfillmentHandler,
	}
}

// HandleFulfillment processes oracle fulfillment messages from NATS
func (l *OracleEventListener) HandleFulfillment(ctx context.Context, data []byte) error {
	var msg FulfillmentMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return fmt.Errorf("failed to unmarshal fulfillment message: %w", err)
	}

	log.WithFields(log.Fields{
		"requestId":   msg.RequestID,
		"coordinator": msg.Coordinator,
		"wordCount":   len(msg.RandomWords),
	}).Debug("Processing oracle fulfillment")

	fulfillmentDTO := dto.FulfillmentDTO{
		Coordinator: msg.Coordinator,
		RequestID:   msg.RequestID,
		RandomWords: msg.RandomWords,
	}

	return l.fulfillmentHandler.HandleFulfillment(ctx, fulfillmentDTO)
}
