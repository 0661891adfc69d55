package testutil

import (
	"time"

	"github.com/Samuel1-ona/tikka-contracts/domain/entities"
)

// CreateTestRaffle creates an open raffle with default values
func CreateTestRaffle(creator string) *entities.Raffle {
	return &entities.Raffle{
		Creator:       creator,
		Description:   "test raffle",
		EndTime:       time.Now().Add(24 * time.Hour).UTC(),
		MaxTickets:    100,
		AllowMultiple: true,
		TicketPrice:   50,
		IsActive:      true,
	}
}

// CreateTestEndedRaffle creates a raffle whose sale window has already closed
func CreateTestEndedRaffle(creator string) *entities.Raffle {
	raffle := CreateTestRaffle(creator)
	raffle.EndTime = time.Now().Add(-time.Hour).UTC()
	return raffle
}

// CreateTestTokenRaffle creates a raffle whose tickets are sold for a token
func CreateTestTokenRaffle(creator, token string) *entities.Raffle {
	raffle := CreateTestRaffle(creator)
	raffle.PaymentToken = &token
	return raffle
}

// CreateTestTickets creates count unsaved tickets for a raffle and owner
func CreateTestTickets(raffleID int64, owner string, count int) []*entities.Ticket {
	now := time.Now().UTC()
	tickets := make([]*entities.Ticket, 0, count)
	for i := 0; i < count; i++ {
		tickets = append(tickets, &entities.Ticket{
			RaffleID:    raffleID,
			Owner:       owner,
			PurchasedAt: now,
		})
	}
	return tickets
}

// CreateTestRandomnessRequest creates a pending randomness request
func CreateTestRandomnessRequest(requestID string, raffleID int64) *entities.RandomnessRequest {
	return &entities.RandomnessRequest{
		RequestID:   requestID,
		RaffleID:    raffleID,
		RequestedAt: time.Now().UTC(),
	}
}
