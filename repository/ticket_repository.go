package repository

import (
	"context"
	"fmt"

	"github.com/Samuel1-ona/tikka-contracts/domain/entities"

	"github.com/jackc/pgx/v5"
)

// TicketRepository implements ticket data access
type TicketRepository struct {
	q Queryable
}

// NewTicketRepository creates a new ticket repository
func NewTicketRepository(q Queryable) *TicketRepository {
	return &TicketRepository{q: q}
}

// CreateBatch inserts tickets in purchase order with a single batch insert.
// Ids come from one shared sequence, so they are monotonic across raffles and
// RETURNING preserves insert order.
func (r *TicketRepository) CreateBatch(ctx context.Context, tickets []*entities.Ticket) error {
	if len(tickets) == 0 {
		return nil
	}

	query := `
		INSERT INTO tickets (raffle_id, owner)
		VALUES `

	values := make([]interface{}, 0, len(tickets)*2)
	for i, ticket := range tickets {
		if i > 0 {
			query += ", "
		}
		paramOffset := i * 2
		query += fmt.Sprintf("($%d, $%d)", paramOffset+1, paramOffset+2)
		values = append(values, ticket.RaffleID, ticket.Owner)
	}
	query += " RETURNING id, purchased_at"

	rows, err := r.q.Query(ctx, query, values...)
	if err != nil {
		return fmt.Errorf("failed to batch create tickets: %w", err)
	}
	defer rows.Close()

	i := 0
	for rows.Next() {
		if err := rows.Scan(&tickets[i].ID, &tickets[i].PurchasedAt); err != nil {
			return fmt.Errorf("failed to scan ticket result: %w", err)
		}
		i++
	}

	return rows.Err()
}

// GetByID retrieves a ticket by its ID, or nil if not found
func (r *TicketRepository) GetByID(ctx context.Context, id int64) (*entities.Ticket, error) {
	query := `
		SELECT id, raffle_id, owner, is_winning, purchased_at
		FROM tickets
		WHERE id = $1
	`

	var ticket entities.Ticket
	err := r.q.QueryRow(ctx, query, id).Scan(
		&ticket.ID,
		&ticket.RaffleID,
		&ticket.Owner,
		&ticket.IsWinning,
		&ticket.PurchasedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get ticket by ID %d: %w", id, err)
	}

	return &ticket, nil
}

// GetByRaffleOffset returns the raffle's n-th ticket in purchase order
// (0-based). Purchase order is id order because ids are assigned at insert.
func (r *TicketRepository) GetByRaffleOffset(ctx context.Context, raffleID int64, offset int64) (*entities.Ticket, error) {
	query := `
		SELECT id, raffle_id, owner, is_winning, purchased_at
		FROM tickets
		WHERE raffle_id = $1
		ORDER BY id ASC
		LIMIT 1 OFFSET $2
	`

	var ticket entities.Ticket
	err := r.q.QueryRow(ctx, query, raffleID, offset).Scan(
		&ticket.ID,
		&ticket.RaffleID,
		&ticket.Owner,
		&ticket.IsWinning,
		&ticket.PurchasedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get ticket at offset %d for raffle %d: %w", offset, raffleID, err)
	}

	return &ticket, nil
}

// CountByRaffleAndOwner returns how many tickets the owner holds in the raffle
func (r *TicketRepository) CountByRaffleAndOwner(ctx context.Context, raffleID int64, owner string) (int64, error) {
	query := `SELECT COUNT(*) FROM tickets WHERE raffle_id = $1 AND owner = $2`

	var count int64
	err := r.q.QueryRow(ctx, query, raffleID, owner).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count tickets for owner %s in raffle %d: %w", owner, raffleID, err)
	}

	return count, nil
}

// ListIDsByRaffle returns the raffle's ticket ids in purchase order
func (r *TicketRepository) ListIDsByRaffle(ctx context.Context, raffleID int64) ([]int64, error) {
	query := `SELECT id FROM tickets WHERE raffle_id = $1 ORDER BY id ASC`

	rows, err := r.q.Query(ctx, query, raffleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list ticket ids for raffle %d: %w", raffleID, err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan ticket id: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate ticket ids: %w", err)
	}

	return ids, nil
}

// ListIDsByOwner returns all ticket ids held by an owner, in purchase order
func (r *TicketRepository) ListIDsByOwner(ctx context.Context, owner string) ([]int64, error) {
	query := `SELECT id FROM tickets WHERE owner = $1 ORDER BY id ASC`

	rows, err := r.q.Query(ctx, query, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to list ticket ids for owner %s: %w", owner, err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan ticket id: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate ticket ids: %w", err)
	}

	return ids, nil
}

// List returns tickets ordered by id
func (r *TicketRepository) List(ctx context.Context, limit, offset int) ([]*entities.Ticket, error) {
	query := `
		SELECT id, raffle_id, owner, is_winning, purchased_at
		FROM tickets
		ORDER BY id ASC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list tickets: %w", err)
	}
	defer rows.Close()

	var tickets []*entities.Ticket
	for rows.Next() {
		var ticket entities.Ticket
		err := rows.Scan(
			&ticket.ID,
			&ticket.RaffleID,
			&ticket.Owner,
			&ticket.IsWinning,
			&ticket.PurchasedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ticket: %w", err)
		}
		tickets = append(tickets, &ticket)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tickets: %w", err)
	}

	return tickets, nil
}

// MarkWinning flags the ticket as the winning entry
func (r *TicketRepository) MarkWinning(ctx context.Context, ticketID int64) error {
	query := `UPDATE tickets SET is_winning = TRUE WHERE id = $1`

	result, err := r.q.Exec(ctx, query, ticketID)
	if err != nil {
		return fmt.Errorf("failed to mark ticket %d winning: %w", ticketID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("ticket with ID %d not found", ticketID)
	}

	return nil
}
