package entities

import (
	"errors"
)

// Domain errors. Every precondition violation aborts the whole call; callers
// match these with errors.Is to distinguish the failure class.

// Not found
var (
	ErrRaffleNotFound           = errors.New("raffle not found")
	ErrTicketNotFound           = errors.New("ticket not found")
	ErrPrizeNotFound            = errors.New("prize not found")
	ErrUnknownRandomnessRequest = errors.New("unknown randomness request id")
)

// Authorization
var (
	ErrNotOperator      = errors.New("caller is not the platform operator")
	ErrNotCoordinator   = errors.New("caller is not the oracle coordinator")
	ErrNotRaffleCreator = errors.New("caller is not the raffle creator")
	ErrNotWinner        = errors.New("caller is not the raffle winner")
)

// State conflict
var (
	ErrRaffleInactive           = errors.New("raffle is no longer active")
	ErrRaffleEnded              = errors.New("raffle sale window has closed")
	ErrRaffleNotEnded           = errors.New("raffle sale window is still open")
	ErrDrawAlreadyPending       = errors.New("randomness request already pending")
	ErrNoPendingDraw            = errors.New("no randomness request pending")
	ErrRequestNotStale          = errors.New("randomness request is not stale yet")
	ErrWinnerNotSelected        = errors.New("winner has not been selected")
	ErrWinningsAlreadyWithdrawn = errors.New("winnings already withdrawn")
	ErrRaffleAlreadyFinalized   = errors.New("raffle already finalized")
	ErrPrizeAlreadyDeposited    = errors.New("prize already deposited")
	ErrPrizeNotDeposited        = errors.New("no prize deposited")
)

// Capacity
var (
	ErrMaxTicketsExceeded        = errors.New("purchase exceeds max tickets")
	ErrMultipleTicketsNotAllowed = errors.New("multiple tickets not allowed for this raffle")
	ErrNoTicketsSold             = errors.New("no tickets sold")
)

// Payment
var (
	ErrPaymentMismatch   = errors.New("attached amount does not match required payment")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrNotItemOwner      = errors.New("caller does not own the item")
)

// Validation
var (
	ErrInvalidEndTime     = errors.New("end time must be in the future")
	ErrInvalidMaxTickets  = errors.New("max tickets must be positive")
	ErrInvalidTicketPrice = errors.New("ticket price must be positive")
	ErrInvalidQuantity    = errors.New("quantity must be positive")
	ErrInvalidAmount      = errors.New("amount must be positive")
	ErrChargeRateTooHigh  = errors.New("service charge rate exceeds maximum")
	ErrEmptyRandomWords   = errors.New("fulfillment carried no random words")
)
