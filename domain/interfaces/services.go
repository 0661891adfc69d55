package interfaces

import (
	"context"
	"time"

	"github.com/Samuel1-ona/tikka-contracts/domain/entities"
)

// RaffleService defines the interface for raffle registry operations
type RaffleService interface {
	// CreateRaffle registers a new raffle; no payment is collected at creation
	CreateRaffle(ctx context.Context, creator, description string, endTime time.Time, maxTickets int64, allowMultiple bool, ticketPrice int64, paymentToken *string) (*entities.Raffle, error)

	// PurchaseTickets buys quantity tickets for the buyer, collecting payment
	// in the raffle's ticket asset. attached is the native currency sent with
	// the call; it must equal price*quantity for native raffles and zero for
	// token raffles.
	PurchaseTickets(ctx context.Context, buyer string, raffleID int64, quantity int, attached int64) ([]*entities.Ticket, error)

	// GetRaffle retrieves a raffle by id
	GetRaffle(ctx context.Context, id int64) (*entities.Raffle, error)

	// GetTicket retrieves a ticket by id
	GetTicket(ctx context.Context, id int64) (*entities.Ticket, error)

	// GetPrize retrieves the raffle's prize record
	GetPrize(ctx context.Context, raffleID int64) (*entities.Prize, error)

	// ListRaffles returns raffles ordered by id; limit is capped
	ListRaffles(ctx context.Context, limit, offset int) ([]*entities.Raffle, error)

	// ListTickets returns tickets ordered by id; limit is capped
	ListTickets(ctx context.Context, limit, offset int) ([]*entities.Ticket, error)

	// GetRaffleTicketIDs returns the raffle's ticket ids in purchase order
	GetRaffleTicketIDs(ctx context.Context, raffleID int64) ([]int64, error)

	// GetUserTicketIDs returns every ticket id held by the owner
	GetUserTicketIDs(ctx context.Context, owner string) ([]int64, error)

	// GetRaffleStats summarizes one raffle's sales
	GetRaffleStats(ctx context.Context, raffleID int64) (*entities.RaffleStats, error)

	// GetPlatformStats aggregates counts and revenue across all raffles
	GetPlatformStats(ctx context.Context) (*entities.PlatformStats, error)
}

// RandomnessService defines the interface for the oracle handshake
type RandomnessService interface {
	// RequestRandomWinner starts the draw for an ended raffle. Operator only.
	// Returns the opaque request id handed to the oracle.
	RequestRandomWinner(ctx context.Context, caller string, raffleID int64) (string, error)

	// FulfillRandomWords applies the oracle callback: selects the winning
	// ticket from randomWords[0] and closes the raffle. Coordinator only.
	FulfillRandomWords(ctx context.Context, coordinator, requestID string, randomWords []uint64) (*entities.Raffle, error)

	// ResetStaleRequest abandons a pending request older than the configured
	// timeout so the operator can issue a fresh one. Operator only.
	ResetStaleRequest(ctx context.Context, caller string, raffleID int64) error

	// SetOracleConfig replaces the oracle request parameters. Operator only.
	SetOracleConfig(ctx context.Context, caller string, cfg entities.OracleConfig) error
}

// SettlementService defines the interface for payouts and prize escrow
type SettlementService interface {
	// WithdrawWinnings pays the ticket pool to the winner minus the platform
	// service charge. Winner only, once per raffle.
	WithdrawWinnings(ctx context.Context, caller string, raffleID int64) (*entities.WithdrawalResult, error)

	// FinalizeRaffle transfers the escrowed prize to the winner. Permissionless,
	// once per raffle.
	FinalizeRaffle(ctx context.Context, raffleID int64) (*entities.Prize, error)

	// DepositPrizeNative escrows attached native currency as the prize. Creator only.
	DepositPrizeNative(ctx context.Context, caller string, raffleID int64, attached int64) (*entities.Prize, error)

	// DepositPrizeToken pulls a fungible-token prize into escrow. Creator only.
	DepositPrizeToken(ctx context.Context, caller string, raffleID int64, token string, amount int64) (*entities.Prize, error)

	// DepositPrizeNFT pulls a non-fungible item into escrow. Creator only.
	DepositPrizeNFT(ctx context.Context, caller string, raffleID int64, collection string, itemID int64) (*entities.Prize, error)

	// SetServiceCharge updates the platform's percentage cut, capped at 20.
	// Operator only; applies to future settlements.
	SetServiceCharge(ctx context.Context, caller string, rate int64) error
}
