package entities

import (
	"time"
)

// PrizeKind identifies which transfer path finalization must take
type PrizeKind string

const (
	PrizeKindNative PrizeKind = "native"
	PrizeKindToken  PrizeKind = "token"
	PrizeKindNFT    PrizeKind = "nft"
)

// Prize is the escrowed reward for a raffle's winner. At most one record per
// raffle; deposit is a single irreversible action with no top-up or
// replacement.
type Prize struct {
	RaffleID    int64      `db:"raffle_id"`
	Token       *string    `db:"token"`         // NULL means native currency; otherwise token or collection
	TokenItemID *int64     `db:"token_item_id"` // Meaningful only for NFT prizes
	Amount      int64      `db:"amount"`        // Meaningful only for native/fungible prizes
	IsNFT       bool       `db:"is_nft"`
	IsDeposited bool       `db:"is_deposited"` // One-way latch
	DepositedAt *time.Time `db:"deposited_at"`
}

// NewNativePrize builds a native-currency prize record
func NewNativePrize(raffleID, amount int64) *Prize {
	return &Prize{
		RaffleID: raffleID,
		Amount:   amount,
	}
}

// NewTokenPrize builds a fungible-token prize record
func NewTokenPrize(raffleID int64, token string, amount int64) *Prize {
	return &Prize{
		RaffleID: raffleID,
		Token:    &token,
		Amount:   amount,
	}
}

// NewNFTPrize builds a non-fungible prize record
func NewNFTPrize(raffleID int64, collection string, itemID int64) *Prize {
	return &Prize{
		RaffleID:    raffleID,
		Token:       &collection,
		TokenItemID: &itemID,
		IsNFT:       true,
	}
}

// Kind derives the prize kind from the stored asset fields
func (p *Prize) Kind() PrizeKind {
	switch {
	case p.IsNFT:
		return PrizeKindNFT
	case p.Token != nil:
		return PrizeKindToken
	default:
		return PrizeKindNative
	}
}

// MarkDeposited sets the deposit latch
func (p *Prize) MarkDeposited() {
	p.IsDeposited = true
	now := time.Now().UTC()
	p.DepositedAt = &now
}
