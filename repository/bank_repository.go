package repository

import (
	"context"
	"fmt"

	"github.com/Samuel1-ona/tikka-contracts/domain/entities"

	"github.com/jackc/pgx/v5"
)

// BankRepository implements native currency balances as ledger rows
type BankRepository struct {
	q Queryable
}

// NewBankRepository creates a new native balance repository
func NewBankRepository(q Queryable) *BankRepository {
	return &BankRepository{q: q}
}

// Transfer moves amount from one address to another. The guarded debit makes
// an overdraft impossible even under concurrent transfers.
func (r *BankRepository) Transfer(ctx context.Context, from, to string, amount int64) error {
	if amount <= 0 {
		return entities.ErrInvalidAmount
	}

	debitQuery := `
		UPDATE native_balances
		SET balance = balance - $2
		WHERE address = $1
		  AND balance >= $2
	`

	result, err := r.q.Exec(ctx, debitQuery, from, amount)
	if err != nil {
		return fmt.Errorf("failed to debit %s: %w", from, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s needs %d", entities.ErrInsufficientFunds, from, amount)
	}

	creditQuery := `
		INSERT INTO native_balances (address, balance)
		VALUES ($1, $2)
		ON CONFLICT (address) DO UPDATE SET balance = native_balances.balance + $2
	`

	if _, err := r.q.Exec(ctx, creditQuery, to, amount); err != nil {
		return fmt.Errorf("failed to credit %s: %w", to, err)
	}

	return nil
}

// BalanceOf returns the address's native balance. Unknown addresses hold zero.
func (r *BankRepository) BalanceOf(ctx context.Context, addr string) (int64, error) {
	query := `SELECT balance FROM native_balances WHERE address = $1`

	var balance int64
	err := r.q.QueryRow(ctx, query, addr).Scan(&balance)

	if err == pgx.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get balance of %s: %w", addr, err)
	}

	return balance, nil
}

// Mint credits an address out of thin air; dev and test funding only
func (r *BankRepository) Mint(ctx context.Context, addr string, amount int64) error {
	if amount <= 0 {
		return entities.ErrInvalidAmount
	}

	query := `
		INSERT INTO native_balances (address, balance)
		VALUES ($1, $2)
		ON CONFLICT (address) DO UPDATE SET balance = native_balances.balance + $2
	`

	if _, err := r.q.Exec(ctx, query, addr, amount); err != nil {
		return fmt.Errorf("failed to mint %d to %s: %w", amount, addr, err)
	}

	return nil
}
