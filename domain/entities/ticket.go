package entities

import (
	"time"
)

// Ticket represents a purchased raffle entry. Ticket ids are allocated from a
// single monotonic sequence shared by all raffles, so an id never repeats and
// zero always means "no ticket".
type Ticket struct {
	ID          int64     `db:"id"`
	RaffleID    int64     `db:"raffle_id"`
	Owner       string    `db:"owner"`
	IsWinning   bool      `db:"is_winning"` // Set exactly once by randomness fulfillment
	PurchasedAt time.Time `db:"purchased_at"`
}

// TicketHolderInfo summarizes one buyer's tickets within a raffle
type TicketHolderInfo struct {
	Owner       string `db:"owner"`
	TicketCount int64  `db:"ticket_count"`
}
