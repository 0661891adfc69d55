package repository

import (
	"context"
	"fmt"

	"github.com/Samuel1-ona/tikka-contracts/domain/entities"

	"github.com/jackc/pgx/v5"
)

// PrizeRepository implements prize escrow record data access
type PrizeRepository struct {
	q Queryable
}

// NewPrizeRepository creates a new prize repository
func NewPrizeRepository(q Queryable) *PrizeRepository {
	return &PrizeRepository{q: q}
}

// Create persists the prize record. The primary key on raffle_id makes a
// second deposit fail at the database even if two requests race past the
// service-level guard.
func (r *PrizeRepository) Create(ctx context.Context, prize *entities.Prize) error {
	query := `
		INSERT INTO prizes (raffle_id, token, token_item_id, amount, is_nft, is_deposited, deposited_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.q.Exec(ctx, query,
		prize.RaffleID,
		prize.Token,
		prize.TokenItemID,
		prize.Amount,
		prize.IsNFT,
		prize.IsDeposited,
		prize.DepositedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create prize for raffle %d: %w", prize.RaffleID, err)
	}

	return nil
}

// GetByRaffleID retrieves the raffle's prize, or nil if none deposited
func (r *PrizeRepository) GetByRaffleID(ctx context.Context, raffleID int64) (*entities.Prize, error) {
	query := `
		SELECT raffle_id, token, token_item_id, amount, is_nft, is_deposited, deposited_at
		FROM prizes
		WHERE raffle_id = $1
	`

	var prize entities.Prize
	err := r.q.QueryRow(ctx, query, raffleID).Scan(
		&prize.RaffleID,
		&prize.Token,
		&prize.TokenItemID,
		&prize.Amount,
		&prize.IsNFT,
		&prize.IsDeposited,
		&prize.DepositedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get prize for raffle %d: %w", raffleID, err)
	}

	return &prize, nil
}
