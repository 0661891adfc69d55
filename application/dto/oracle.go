package dto

// FulfillmentDTO carries a decoded oracle fulfillment from the transport
// layer into the application layer
type FulfillmentDTO struct {
	Coordinator string
	RequestID   string
	RandomWords []uint64
}
