package events

import "time"

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeRaffleCreated        EventType = "raffle_created"
	EventTypeTicketPurchased      EventType = "ticket_purchased"
	EventTypeRandomnessRequested  EventType = "randomness_requested"
	EventTypeRandomnessAbandoned  EventType = "randomness_abandoned"
	EventTypeWinnerSelected       EventType = "winner_selected"
	EventTypePrizeDeposited       EventType = "prize_deposited"
	EventTypeWinningsWithdrawn    EventType = "winnings_withdrawn"
	EventTypePrizeWithdrawn       EventType = "prize_withdrawn"
	EventTypeRaffleFinalized      EventType = "raffle_finalized"
	EventTypeServiceChargeUpdated EventType = "service_charge_updated"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// RaffleCreatedEvent is published when a raffle is registered
type RaffleCreatedEvent struct {
	RaffleID      int64
	Creator       string
	Description   string
	EndTime       time.Time
	MaxTickets    int64
	AllowMultiple bool
	TicketPrice   int64
	PaymentToken  *string
}

func (e RaffleCreatedEvent) Type() EventType {
	return EventTypeRaffleCreated
}

// TicketPurchasedEvent is published once per ticket created
type TicketPurchasedEvent struct {
	RaffleID    int64
	TicketID    int64
	Buyer       string
	Price       int64
	PurchasedAt time.Time
}

func (e TicketPurchasedEvent) Type() EventType {
	return EventTypeTicketPurchased
}

// RandomnessRequestedEvent is the outbound oracle request. It carries every
// configured oracle parameter and is flushed to the transport only after the
// enclosing transaction commits.
type RandomnessRequestedEvent struct {
	RaffleID         int64
	RequestID        string
	KeyHash          string
	SubscriptionID   int64
	Confirmations    int64
	CallbackGasLimit int64
	NumWords         int
	NativePayment    bool
}

func (e RandomnessRequestedEvent) Type() EventType {
	return EventTypeRandomnessRequested
}

// RandomnessAbandonedEvent is published when the operator resets a stale
// pending request
type RandomnessAbandonedEvent struct {
	RaffleID  int64
	RequestID string
}

func (e RandomnessAbandonedEvent) Type() EventType {
	return EventTypeRandomnessAbandoned
}

// WinnerSelectedEvent is published when a fulfillment selects a winner
type WinnerSelectedEvent struct {
	RaffleID        int64
	RequestID       string
	Winner          string
	WinningTicketID int64
	TicketsSold     int64
	RandomWord      uint64
}

func (e WinnerSelectedEvent) Type() EventType {
	return EventTypeWinnerSelected
}

// PrizeDepositedEvent is published when a creator escrows a prize
type PrizeDepositedEvent struct {
	RaffleID    int64
	Depositor   string
	Kind        string
	Token       *string
	TokenItemID *int64
	Amount      int64
}

func (e PrizeDepositedEvent) Type() EventType {
	return EventTypePrizeDeposited
}

// WinningsWithdrawnEvent reports the payout split of a withdrawal
type WinningsWithdrawnEvent struct {
	RaffleID      int64
	Winner        string
	TotalPool     int64
	ServiceCharge int64
	WinnerAmount  int64
	Asset         *string
}

func (e WinningsWithdrawnEvent) Type() EventType {
	return EventTypeWinningsWithdrawn
}

// PrizeWithdrawnEvent is published when finalization transfers the prize
type PrizeWithdrawnEvent struct {
	RaffleID    int64
	Winner      string
	Kind        string
	Token       *string
	TokenItemID *int64
	Amount      int64
}

func (e PrizeWithdrawnEvent) Type() EventType {
	return EventTypePrizeWithdrawn
}

// RaffleFinalizedEvent is published when a raffle reaches its terminal state
type RaffleFinalizedEvent struct {
	RaffleID        int64
	Winner          string
	WinningTicketID int64
}

func (e RaffleFinalizedEvent) Type() EventType {
	return EventTypeRaffleFinalized
}

// ServiceChargeUpdatedEvent is published when the operator tunes the platform cut
type ServiceChargeUpdatedEvent struct {
	OldRate int64
	NewRate int64
}

func (e ServiceChargeUpdatedEvent) Type() EventType {
	return EventTypeServiceChargeUpdated
}
