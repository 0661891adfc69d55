package application

import (
	"context"

	"github.com/Samuel1-ona/tikka-contracts/application/dto"
)

// FulfillmentHandler defines the interface for handling oracle fulfillment
// messages. This is implemented by the application layer and called by the
// infrastructure layer when a coordinator message arrives.
type FulfillmentHandler interface {
	// HandleFulfillment applies an oracle callback to its raffle
	HandleFulfillment(ctx context.Context, fulfillment dto.FulfillmentDTO) error
}
