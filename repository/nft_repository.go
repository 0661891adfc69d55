package repository

import (
	"context"
	"fmt"

	"github.com/Samuel1-ona/tikka-contracts/domain/entities"

	"github.com/jackc/pgx/v5"
)

// NFTRepository implements non-fungible item ownership as rows keyed by
// collection and item id
type NFTRepository struct {
	q Queryable
}

// NewNFTRepository creates a new item ownership repository
func NewNFTRepository(q Queryable) *NFTRepository {
	return &NFTRepository{q: q}
}

// OwnerOf returns the current owner of the item
func (r *NFTRepository) OwnerOf(ctx context.Context, collection string, itemID int64) (string, error) {
	query := `SELECT owner FROM nft_items WHERE collection = $1 AND item_id = $2`

	var owner string
	err := r.q.QueryRow(ctx, query, collection, itemID).Scan(&owner)

	if err == pgx.ErrNoRows {
		return "", fmt.Errorf("%w: %s #%d", entities.ErrNotItemOwner, collection, itemID)
	}
	if err != nil {
		return "", fmt.Errorf("failed to get owner of %s #%d: %w", collection, itemID, err)
	}

	return owner, nil
}

// TransferFrom moves the item between addresses. The ownership check is part
// of the UPDATE predicate, so a non-owner transfer affects no rows.
func (r *NFTRepository) TransferFrom(ctx context.Context, collection, from, to string, itemID int64) error {
	query := `
		UPDATE nft_items
		SET owner = $4
		WHERE collection = $1
		  AND item_id = $2
		  AND owner = $3
	`

	result, err := r.q.Exec(ctx, query, collection, itemID, from, to)
	if err != nil {
		return fmt.Errorf("failed to transfer %s #%d: %w", collection, itemID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s does not own %s #%d", entities.ErrNotItemOwner, from, collection, itemID)
	}

	return nil
}

// Mint creates an item owned by addr; dev and test funding only
func (r *NFTRepository) Mint(ctx context.Context, collection string, itemID int64, addr string) error {
	query := `
		INSERT INTO nft_items (collection, item_id, owner)
		VALUES ($1, $2, $3)
	`

	if _, err := r.q.Exec(ctx, query, collection, itemID, addr); err != nil {
		return fmt.Errorf("failed to mint %s #%d to %s: %w", collection, itemID, addr, err)
	}

	return nil
}
