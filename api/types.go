package api

import (
	"time"

	"github.com/Samuel1-ona/tikka-contracts/domain/entities"
)

// Caller identity travels in the request body; there is no ambient identity
// off-chain, so the service layer owns every authorization check.

type errorResponse struct {
	Error string `json:"error"`
}

type createRaffleRequest struct {
	Caller        string    `json:"caller" binding:"required"`
	Description   string    `json:"description"`
	EndTime       time.Time `json:"end_time"`
	MaxTickets    int64     `json:"max_tickets"`
	AllowMultiple bool      `json:"allow_multiple"`
	TicketPrice   int64     `json:"ticket_price"`
	PaymentToken  *string   `json:"payment_token"`
}

type purchaseTicketsRequest struct {
	Caller   string `json:"caller" binding:"required"`
	Quantity int    `json:"quantity"`
	Attached int64  `json:"attached"`
}

type callerRequest struct {
	Caller string `json:"caller" binding:"required"`
}

type fulfillmentRequest struct {
	Coordinator string   `json:"coordinator" binding:"required"`
	RequestID   string   `json:"request_id" binding:"required"`
	RandomWords []uint64 `json:"random_words"`
}

type oracleConfigRequest struct {
	Caller           string `json:"caller" binding:"required"`
	KeyHash          string `json:"key_hash"`
	SubscriptionID   int64  `json:"subscription_id"`
	Confirmations    int64  `json:"confirmations"`
	CallbackGasLimit int64  `json:"callback_gas_limit"`
	NativePayment    bool   `json:"native_payment"`
}

type serviceChargeRequest struct {
	Caller string `json:"caller" binding:"required"`
	Rate   int64  `json:"rate"`
}

type depositNativeRequest struct {
	Caller   string `json:"caller" binding:"required"`
	Attached int64  `json:"attached"`
}

type depositTokenRequest struct {
	Caller string `json:"caller" binding:"required"`
	Token  string `json:"token" binding:"required"`
	Amount int64  `json:"amount"`
}

type depositNFTRequest struct {
	Caller     string `json:"caller" binding:"required"`
	Collection string `json:"collection" binding:"required"`
	ItemID     int64  `json:"item_id"`
}

type mintNativeRequest struct {
	Address string `json:"address" binding:"required"`
	Amount  int64  `json:"amount"`
}

type mintTokenRequest struct {
	Token   string `json:"token" binding:"required"`
	Address string `json:"address" binding:"required"`
	Amount  int64  `json:"amount"`
}

type mintNFTRequest struct {
	Collection string `json:"collection" binding:"required"`
	ItemID     int64  `json:"item_id"`
	Address    string `json:"address" binding:"required"`
}

type raffleResponse struct {
	ID                int64     `json:"id"`
	Creator           string    `json:"creator"`
	Description       string    `json:"description"`
	EndTime           time.Time `json:"end_time"`
	MaxTickets        int64     `json:"max_tickets"`
	AllowMultiple     bool      `json:"allow_multiple"`
	TicketPrice       int64     `json:"ticket_price"`
	PaymentToken      *string   `json:"payment_token,omitempty"`
	TicketsSold       int64     `json:"tickets_sold"`
	Status            string    `json:"status"`
	Winner            *string   `json:"winner,omitempty"`
	WinningTicketID   *int64    `json:"winning_ticket_id,omitempty"`
	WinningsWithdrawn bool      `json:"winnings_withdrawn"`
	IsFinalized       bool      `json:"is_finalized"`
	CreatedAt         time.Time `json:"created_at"`
}

func toRaffleResponse(raffle *entities.Raffle) raffleResponse {
	return raffleResponse{
		ID:                raffle.ID,
		Creator:           raffle.Creator,
		Description:       raffle.Description,
		EndTime:           raffle.EndTime,
		MaxTickets:        raffle.MaxTickets,
		AllowMultiple:     raffle.AllowMultiple,
		TicketPrice:       raffle.TicketPrice,
		PaymentToken:      raffle.PaymentToken,
		TicketsSold:       raffle.TicketsSold,
		Status:            string(raffle.Status()),
		Winner:            raffle.Winner,
		WinningTicketID:   raffle.WinningTicketID,
		WinningsWithdrawn: raffle.WinningsWithdrawn,
		IsFinalized:       raffle.IsFinalized,
		CreatedAt:         raffle.CreatedAt,
	}
}

func toRaffleResponses(raffles []*entities.Raffle) []raffleResponse {
	out := make([]raffleResponse, 0, len(raffles))
	for _, raffle := range raffles {
		out = append(out, toRaffleResponse(raffle))
	}
	return out
}

type ticketResponse struct {
	ID          int64     `json:"id"`
	RaffleID    int64     `json:"raffle_id"`
	Owner       string    `json:"owner"`
	IsWinning   bool      `json:"is_winning"`
	PurchasedAt time.Time `json:"purchased_at"`
}

func toTicketResponse(ticket *entities.Ticket) ticketResponse {
	return ticketResponse{
		ID:          ticket.ID,
		RaffleID:    ticket.RaffleID,
		Owner:       ticket.Owner,
		IsWinning:   ticket.IsWinning,
		PurchasedAt: ticket.PurchasedAt,
	}
}

func toTicketResponses(tickets []*entities.Ticket) []ticketResponse {
	out := make([]ticketResponse, 0, len(tickets))
	for _, ticket := range tickets {
		out = append(out, toTicketResponse(ticket))
	}
	return out
}

type prizeResponse struct {
	RaffleID    int64      `json:"raffle_id"`
	Kind        string     `json:"kind"`
	Token       *string    `json:"token,omitempty"`
	TokenItemID *int64     `json:"token_item_id,omitempty"`
	Amount      int64      `json:"amount"`
	IsDeposited bool       `json:"is_deposited"`
	DepositedAt *time.Time `json:"deposited_at,omitempty"`
}

func toPrizeResponse(prize *entities.Prize) prizeResponse {
	return prizeResponse{
		RaffleID:    prize.RaffleID,
		Kind:        string(prize.Kind()),
		Token:       prize.Token,
		TokenItemID: prize.TokenItemID,
		Amount:      prize.Amount,
		IsDeposited: prize.IsDeposited,
		DepositedAt: prize.DepositedAt,
	}
}

type drawResponse struct {
	RequestID string `json:"request_id"`
}

type withdrawalResponse struct {
	RaffleID      int64   `json:"raffle_id"`
	Winner        string  `json:"winner"`
	TotalPool     int64   `json:"total_pool"`
	ServiceCharge int64   `json:"service_charge"`
	WinnerAmount  int64   `json:"winner_amount"`
	Asset         *string `json:"asset,omitempty"`
}

func toWithdrawalResponse(result *entities.WithdrawalResult) withdrawalResponse {
	return withdrawalResponse{
		RaffleID:      result.RaffleID,
		Winner:        result.Winner,
		TotalPool:     result.TotalPool,
		ServiceCharge: result.ServiceCharge,
		WinnerAmount:  result.WinnerAmount,
		Asset:         result.Asset,
	}
}

type raffleStatsResponse struct {
	RaffleID         int64 `json:"raffle_id"`
	TicketsSold      int64 `json:"tickets_sold"`
	TicketsRemaining int64 `json:"tickets_remaining"`
	MaxTickets       int64 `json:"max_tickets"`
	TotalRevenue     int64 `json:"total_revenue"`
}

func toRaffleStatsResponse(stats *entities.RaffleStats) raffleStatsResponse {
	return raffleStatsResponse{
		RaffleID:         stats.RaffleID,
		TicketsSold:      stats.TicketsSold,
		TicketsRemaining: stats.TicketsRemaining,
		MaxTickets:       stats.MaxTickets,
		TotalRevenue:     stats.TotalRevenue,
	}
}

type platformStatsResponse struct {
	TotalRaffles     int64 `json:"total_raffles"`
	ActiveRaffles    int64 `json:"active_raffles"`
	EndedRaffles     int64 `json:"ended_raffles"`
	CompleteRaffles  int64 `json:"complete_raffles"`
	FinalizedRaffles int64 `json:"finalized_raffles"`
	TotalTicketsSold int64 `json:"total_tickets_sold"`
	TotalRevenue     int64 `json:"total_revenue"`
}

func toPlatformStatsResponse(stats *entities.PlatformStats) platformStatsResponse {
	return platformStatsResponse{
		TotalRaffles:     stats.TotalRaffles,
		ActiveRaffles:    stats.ActiveRaffles,
		EndedRaffles:     stats.EndedRaffles,
		CompleteRaffles:  stats.CompleteRaffles,
		FinalizedRaffles: stats.FinalizedRaffles,
		TotalTicketsSold: stats.TotalTicketsSold,
		TotalRevenue:     stats.TotalRevenue,
	}
}

type ticketIDsResponse struct {
	TicketIDs []int64 `json:"ticket_ids"`
}

type balanceResponse struct {
	Address string  `json:"address"`
	Token   *string `json:"token,omitempty"`
	Balance int64   `json:"balance"`
}
