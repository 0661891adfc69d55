package repository

import (
	"context"
	"fmt"

	"github.com/Samuel1-ona/tikka-contracts/domain/entities"

	"github.com/jackc/pgx/v5"
)

// RaffleRepository implements raffle data access
type RaffleRepository struct {
	q Queryable
}

// NewRaffleRepository creates a new raffle repository
func NewRaffleRepository(q Queryable) *RaffleRepository {
	return &RaffleRepository{q: q}
}

// Create persists a new raffle and assigns its sequential id
func (r *RaffleRepository) Create(ctx context.Context, raffle *entities.Raffle) error {
	query := `
		INSERT INTO raffles (creator, description, end_time, max_tickets, allow_multiple,
		                     ticket_price, payment_token, tickets_sold, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, 0, TRUE)
		RETURNING id, tickets_sold, is_active, created_at
	`

	err := r.q.QueryRow(ctx, query,
		raffle.Creator,
		raffle.Description,
		raffle.EndTime,
		raffle.MaxTickets,
		raffle.AllowMultiple,
		raffle.TicketPrice,
		raffle.PaymentToken,
	).Scan(
		&raffle.ID,
		&raffle.TicketsSold,
		&raffle.IsActive,
		&raffle.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create raffle: %w", err)
	}

	return nil
}

// GetByID retrieves a raffle by its ID, or nil if not found
func (r *RaffleRepository) GetByID(ctx context.Context, id int64) (*entities.Raffle, error) {
	query := `
		SELECT id, creator, description, end_time, max_tickets, allow_multiple,
		       ticket_price, payment_token, tickets_sold, is_active, draw_pending,
		       winner, winning_ticket_id, winnings_withdrawn, is_finalized, created_at
		FROM raffles
		WHERE id = $1
	`

	var raffle entities.Raffle
	err := r.q.QueryRow(ctx, query, id).Scan(
		&raffle.ID,
		&raffle.Creator,
		&raffle.Description,
		&raffle.EndTime,
		&raffle.MaxTickets,
		&raffle.AllowMultiple,
		&raffle.TicketPrice,
		&raffle.PaymentToken,
		&raffle.TicketsSold,
		&raffle.IsActive,
		&raffle.DrawPending,
		&raffle.Winner,
		&raffle.WinningTicketID,
		&raffle.WinningsWithdrawn,
		&raffle.IsFinalized,
		&raffle.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get raffle by ID %d: %w", id, err)
	}

	return &raffle, nil
}

// GetByIDForUpdate retrieves a raffle by ID with a row lock so state
// transitions serialize per raffle
func (r *RaffleRepository) GetByIDForUpdate(ctx context.Context, id int64) (*entities.Raffle, error) {
	query := `
		SELECT id, creator, description, end_time, max_tickets, allow_multiple,
		       ticket_price, payment_token, tickets_sold, is_active, draw_pending,
		       winner, winning_ticket_id, winnings_withdrawn, is_finalized, created_at
		FROM raffles
		WHERE id = $1
		FOR UPDATE
	`

	var raffle entities.Raffle
	err := r.q.QueryRow(ctx, query, id).Scan(
		&raffle.ID,
		&raffle.Creator,
		&raffle.Description,
		&raffle.EndTime,
		&raffle.MaxTickets,
		&raffle.AllowMultiple,
		&raffle.TicketPrice,
		&raffle.PaymentToken,
		&raffle.TicketsSold,
		&raffle.IsActive,
		&raffle.DrawPending,
		&raffle.Winner,
		&raffle.WinningTicketID,
		&raffle.WinningsWithdrawn,
		&raffle.IsFinalized,
		&raffle.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get raffle for update by ID %d: %w", id, err)
	}

	return &raffle, nil
}

// Update persists the raffle's mutable lifecycle fields
func (r *RaffleRepository) Update(ctx context.Context, raffle *entities.Raffle) error {
	query := `
		UPDATE raffles
		SET tickets_sold = $2,
		    is_active = $3,
		    draw_pending = $4,
		    winner = $5,
		    winning_ticket_id = $6,
		    winnings_withdrawn = $7,
		    is_finalized = $8
		WHERE id = $1
	`

	result, err := r.q.Exec(ctx, query,
		raffle.ID,
		raffle.TicketsSold,
		raffle.IsActive,
		raffle.DrawPending,
		raffle.Winner,
		raffle.WinningTicketID,
		raffle.WinningsWithdrawn,
		raffle.IsFinalized,
	)

	if err != nil {
		return fmt.Errorf("failed to update raffle %d: %w", raffle.ID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("raffle with ID %d not found", raffle.ID)
	}

	return nil
}

// List returns raffles ordered by id
func (r *RaffleRepository) List(ctx context.Context, limit, offset int) ([]*entities.Raffle, error) {
	query := `
		SELECT id, creator, description, end_time, max_tickets, allow_multiple,
		       ticket_price, payment_token, tickets_sold, is_active, draw_pending,
		       winner, winning_ticket_id, winnings_withdrawn, is_finalized, created_at
		FROM raffles
		ORDER BY id ASC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list raffles: %w", err)
	}
	defer rows.Close()

	var raffles []*entities.Raffle
	for rows.Next() {
		var raffle entities.Raffle
		err := rows.Scan(
			&raffle.ID,
			&raffle.Creator,
			&raffle.Description,
			&raffle.EndTime,
			&raffle.MaxTickets,
			&raffle.AllowMultiple,
			&raffle.TicketPrice,
			&raffle.PaymentToken,
			&raffle.TicketsSold,
			&raffle.IsActive,
			&raffle.DrawPending,
			&raffle.Winner,
			&raffle.WinningTicketID,
			&raffle.WinningsWithdrawn,
			&raffle.IsFinalized,
			&raffle.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan raffle: %w", err)
		}
		raffles = append(raffles, &raffle)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate raffles: %w", err)
	}

	return raffles, nil
}

// GetEndedAwaitingDraw returns active raffles whose sale window has closed,
// with tickets sold and no randomness request outstanding
func (r *RaffleRepository) GetEndedAwaitingDraw(ctx context.Context) ([]*entities.Raffle, error) {
	query := `
		SELECT id, creator, description, end_time, max_tickets, allow_multiple,
		       ticket_price, payment_token, tickets_sold, is_active, draw_pending,
		       winner, winning_ticket_id, winnings_withdrawn, is_finalized, created_at
		FROM raffles
		WHERE is_active = TRUE
		  AND draw_pending = FALSE
		  AND tickets_sold > 0
		  AND end_time <= NOW()
		ORDER BY end_time ASC
	`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get raffles awaiting draw: %w", err)
	}
	defer rows.Close()

	var raffles []*entities.Raffle
	for rows.Next() {
		var raffle entities.Raffle
		err := rows.Scan(
			&raffle.ID,
			&raffle.Creator,
			&raffle.Description,
			&raffle.EndTime,
			&raffle.MaxTickets,
			&raffle.AllowMultiple,
			&raffle.TicketPrice,
			&raffle.PaymentToken,
			&raffle.TicketsSold,
			&raffle.IsActive,
			&raffle.DrawPending,
			&raffle.Winner,
			&raffle.WinningTicketID,
			&raffle.WinningsWithdrawn,
			&raffle.IsFinalized,
			&raffle.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan raffle: %w", err)
		}
		raffles = append(raffles, &raffle)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate raffles awaiting draw: %w", err)
	}

	return raffles, nil
}

// GetPlatformStats aggregates counts and revenue across all raffles
func (r *RaffleRepository) GetPlatformStats(ctx context.Context) (*entities.PlatformStats, error) {
	query := `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE is_active AND end_time > NOW()),
		       COUNT(*) FILTER (WHERE is_active AND end_time <= NOW()),
		       COUNT(*) FILTER (WHERE winner IS NOT NULL AND NOT is_finalized),
		       COUNT(*) FILTER (WHERE is_finalized),
		       COALESCE(SUM(tickets_sold), 0),
		       COALESCE(SUM(tickets_sold * ticket_price), 0)
		FROM raffles
	`

	var stats entities.PlatformStats
	err := r.q.QueryRow(ctx, query).Scan(
		&stats.TotalRaffles,
		&stats.ActiveRaffles,
		&stats.EndedRaffles,
		&stats.CompleteRaffles,
		&stats.FinalizedRaffles,
		&stats.TotalTicketsSold,
		&stats.TotalRevenue,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get platform stats: %w", err)
	}

	return &stats, nil
}
