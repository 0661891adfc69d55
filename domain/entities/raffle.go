package entities

import (
	"time"
)

// RaffleStatus is a read-only projection derived from the raffle's flags.
type RaffleStatus string

const (
	// RaffleStatusOpen means the raffle is active and tickets can be purchased
	RaffleStatusOpen RaffleStatus = "open"
	// RaffleStatusEnded means the sale window has closed but no draw has started
	RaffleStatusEnded RaffleStatus = "ended"
	// RaffleStatusDrawing means a randomness request is outstanding
	RaffleStatusDrawing RaffleStatus = "drawing"
	// RaffleStatusComplete means a winner has been selected
	RaffleStatusComplete RaffleStatus = "complete"
	// RaffleStatusFinalized means the prize has been transferred to the winner
	RaffleStatusFinalized RaffleStatus = "finalized"
)

// Raffle represents a single raffle and its lifecycle state
type Raffle struct {
	ID                int64     `db:"id"`
	Creator           string    `db:"creator"`
	Description       string    `db:"description"`
	EndTime           time.Time `db:"end_time"`
	MaxTickets        int64     `db:"max_tickets"`
	AllowMultiple     bool      `db:"allow_multiple"`
	TicketPrice       int64     `db:"ticket_price"`  // Smallest currency/token unit
	PaymentToken      *string   `db:"payment_token"` // NULL means native currency
	TicketsSold       int64     `db:"tickets_sold"`
	IsActive          bool      `db:"is_active"`          // True until winner selection
	DrawPending       bool      `db:"draw_pending"`       // True while a randomness request is outstanding
	Winner            *string   `db:"winner"`             // NULL until fulfillment selects a winner
	WinningTicketID   *int64    `db:"winning_ticket_id"`  // NULL until fulfillment
	WinningsWithdrawn bool      `db:"winnings_withdrawn"` // One-way latch
	IsFinalized       bool      `db:"is_finalized"`       // One-way latch
	CreatedAt         time.Time `db:"created_at"`
}

// IsNativePayment returns true if tickets are sold for native currency
func (r *Raffle) IsNativePayment() bool {
	return r.PaymentToken == nil
}

// HasEnded returns true once the sale window has closed
func (r *Raffle) HasEnded() bool {
	return !time.Now().Before(r.EndTime)
}

// CanPurchaseTickets returns true if tickets can still be purchased
func (r *Raffle) CanPurchaseTickets() bool {
	return r.IsActive && time.Now().Before(r.EndTime)
}

// HasWinner returns true once the randomness fulfillment has selected a winner
func (r *Raffle) HasWinner() bool {
	return r.Winner != nil
}

// IsWinner checks whether the given address is the selected winner
func (r *Raffle) IsWinner(addr string) bool {
	return r.Winner != nil && *r.Winner == addr
}

// TicketsRemaining returns how many tickets are still available
func (r *Raffle) TicketsRemaining() int64 {
	return r.MaxTickets - r.TicketsSold
}

// TotalPool returns the total ticket-sale proceeds
func (r *Raffle) TotalPool() int64 {
	return r.TicketsSold * r.TicketPrice
}

// SelectWinner records the winning ticket and closes the raffle.
// This is the only path that sets Winner.
func (r *Raffle) SelectWinner(ticket *Ticket) {
	r.DrawPending = false
	r.IsActive = false
	r.Winner = &ticket.Owner
	r.WinningTicketID = &ticket.ID
}

// Status derives the lifecycle stage from the raffle's flags
func (r *Raffle) Status() RaffleStatus {
	switch {
	case r.IsFinalized:
		return RaffleStatusFinalized
	case r.HasWinner():
		return RaffleStatusComplete
	case r.DrawPending:
		return RaffleStatusDrawing
	case r.HasEnded():
		return RaffleStatusEnded
	default:
		return RaffleStatusOpen
	}
}
