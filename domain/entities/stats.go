package entities

// MaxPageLimit caps paginated listing queries
const MaxPageLimit = 100

// RaffleStats summarizes a single raffle's sales
type RaffleStats struct {
	RaffleID         int64 `db:"raffle_id"`
	TicketsSold      int64 `db:"tickets_sold"`
	TicketsRemaining int64 `db:"tickets_remaining"`
	MaxTickets       int64 `db:"max_tickets"`
	TotalRevenue     int64 `db:"total_revenue"` // tickets_sold * ticket_price
}

// PlatformStats aggregates across all raffles
type PlatformStats struct {
	TotalRaffles     int64 `db:"total_raffles"`
	ActiveRaffles    int64 `db:"active_raffles"`
	EndedRaffles     int64 `db:"ended_raffles"` // Sale window closed, winner not yet selected
	CompleteRaffles  int64 `db:"complete_raffles"`
	FinalizedRaffles int64 `db:"finalized_raffles"`
	TotalTicketsSold int64 `db:"total_tickets_sold"`
	TotalRevenue     int64 `db:"total_revenue"` // Sum of tickets_sold * ticket_price
}

// WithdrawalResult reports the payout split of a winnings withdrawal
type WithdrawalResult struct {
	RaffleID      int64
	Winner        string
	TotalPool     int64
	ServiceCharge int64
	WinnerAmount  int64
	Asset         *string // NULL means native currency
}
