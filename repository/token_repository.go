package repository

import (
	"context"
	"fmt"

	"github.com/Samuel1-ona/tikka-contracts/domain/entities"

	"github.com/jackc/pgx/v5"
)

// TokenRepository implements fungible-token balances as ledger rows keyed by
// token and address
type TokenRepository struct {
	q Queryable
}

// NewTokenRepository creates a new token balance repository
func NewTokenRepository(q Queryable) *TokenRepository {
	return &TokenRepository{q: q}
}

// TransferFrom moves amount of token between addresses
func (r *TokenRepository) TransferFrom(ctx context.Context, token, from, to string, amount int64) error {
	if amount <= 0 {
		return entities.ErrInvalidAmount
	}

	debitQuery := `
		UPDATE token_balances
		SET balance = balance - $3
		WHERE token = $1
		  AND address = $2
		  AND balance >= $3
	`

	result, err := r.q.Exec(ctx, debitQuery, token, from, amount)
	if err != nil {
		return fmt.Errorf("failed to debit %s of %s: %w", from, token, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s needs %d of %s", entities.ErrInsufficientFunds, from, amount, token)
	}

	creditQuery := `
		INSERT INTO token_balances (token, address, balance)
		VALUES ($1, $2, $3)
		ON CONFLICT (token, address) DO UPDATE SET balance = token_balances.balance + $3
	`

	if _, err := r.q.Exec(ctx, creditQuery, token, to, amount); err != nil {
		return fmt.Errorf("failed to credit %s of %s: %w", to, token, err)
	}

	return nil
}

// BalanceOf returns the address's balance of the token. Unknown pairs hold zero.
func (r *TokenRepository) BalanceOf(ctx context.Context, token, addr string) (int64, error) {
	query := `SELECT balance FROM token_balances WHERE token = $1 AND address = $2`

	var balance int64
	err := r.q.QueryRow(ctx, query, token, addr).Scan(&balance)

	if err == pgx.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get %s balance of %s: %w", token, addr, err)
	}

	return balance, nil
}

// Mint credits an address; dev and test funding only
func (r *TokenRepository) Mint(ctx context.Context, token, addr string, amount int64) error {
	if amount <= 0 {
		return entities.ErrInvalidAmount
	}

	query := `
		INSERT INTO token_balances (token, address, balance)
		VALUES ($1, $2, $3)
		ON CONFLICT (token, address) DO UPDATE SET balance = token_balances.balance + $3
	`

	if _, err := r.q.Exec(ctx, query, token, addr, amount); err != nil {
		return fmt.Errorf("failed to mint %d of %s to %s: %w", amount, token, addr, err)
	}

	return nil
}
