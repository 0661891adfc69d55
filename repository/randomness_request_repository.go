package repository

import (
	"context"
	"fmt"

	"github.com/Samuel1-ona/tikka-contracts/domain/entities"

	"github.com/jackc/pgx/v5"
)

// RandomnessRequestRepository implements oracle request tracking
type RandomnessRequestRepository struct {
	q Queryable
}

// NewRandomnessRequestRepository creates a new randomness request repository
func NewRandomnessRequestRepository(q Queryable) *RandomnessRequestRepository {
	return &RandomnessRequestRepository{q: q}
}

// Create persists a new request mapping
func (r *RandomnessRequestRepository) Create(ctx context.Context, request *entities.RandomnessRequest) error {
	query := `
		INSERT INTO randomness_requests (request_id, raffle_id)
		VALUES ($1, $2)
		RETURNING requested_at
	`

	err := r.q.QueryRow(ctx, query, request.RequestID, request.RaffleID).Scan(&request.RequestedAt)
	if err != nil {
		return fmt.Errorf("failed to create randomness request for raffle %d: %w", request.RaffleID, err)
	}

	return nil
}

// GetByID retrieves a request by its external id, or nil if unknown
func (r *RandomnessRequestRepository) GetByID(ctx context.Context, requestID string) (*entities.RandomnessRequest, error) {
	query := `
		SELECT request_id, raffle_id, requested_at, fulfilled_at, abandoned_at, random_word
		FROM randomness_requests
		WHERE request_id = $1
	`

	var request entities.RandomnessRequest
	err := r.q.QueryRow(ctx, query, requestID).Scan(
		&request.RequestID,
		&request.RaffleID,
		&request.RequestedAt,
		&request.FulfilledAt,
		&request.AbandonedAt,
		&request.RandomWord,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get randomness request %s: %w", requestID, err)
	}

	return &request, nil
}

// GetPendingByRaffleID returns the raffle's outstanding request, or nil
func (r *RandomnessRequestRepository) GetPendingByRaffleID(ctx context.Context, raffleID int64) (*entities.RandomnessRequest, error) {
	query := `
		SELECT request_id, raffle_id, requested_at, fulfilled_at, abandoned_at, random_word
		FROM randomness_requests
		WHERE raffle_id = $1
		  AND fulfilled_at IS NULL
		  AND abandoned_at IS NULL
		ORDER BY requested_at DESC
		LIMIT 1
	`

	var request entities.RandomnessRequest
	err := r.q.QueryRow(ctx, query, raffleID).Scan(
		&request.RequestID,
		&request.RaffleID,
		&request.RequestedAt,
		&request.FulfilledAt,
		&request.AbandonedAt,
		&request.RandomWord,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get pending randomness request for raffle %d: %w", raffleID, err)
	}

	return &request, nil
}

// Update persists fulfillment or abandonment timestamps
func (r *RandomnessRequestRepository) Update(ctx context.Context, request *entities.RandomnessRequest) error {
	query := `
		UPDATE randomness_requests
		SET fulfilled_at = $2,
		    abandoned_at = $3,
		    random_word = $4
		WHERE request_id = $1
	`

	result, err := r.q.Exec(ctx, query,
		request.RequestID,
		request.FulfilledAt,
		request.AbandonedAt,
		request.RandomWord,
	)

	if err != nil {
		return fmt.Errorf("failed to update randomness request %s: %w", request.RequestID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("randomness request %s not found", request.RequestID)
	}

	return nil
}
