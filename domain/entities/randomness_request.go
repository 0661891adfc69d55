package entities

import (
	"time"
)

// RandomWordCount is the number of random words requested from the oracle.
// Winner selection only consumes the first word.
const RandomWordCount = 1

// RandomnessRequest maps an oracle request id back to its raffle. Rows are
// retained after fulfillment or abandonment so duplicate and stale
// fulfillments can be rejected.
type RandomnessRequest struct {
	RequestID   string     `db:"request_id"`
	RaffleID    int64      `db:"raffle_id"`
	RequestedAt time.Time  `db:"requested_at"`
	FulfilledAt *time.Time `db:"fulfilled_at"`
	AbandonedAt *time.Time `db:"abandoned_at"`
	RandomWord  *int64     `db:"random_word"` // First word of the fulfillment, for audit
}

// IsFulfilled returns true once the oracle callback has been applied
func (r *RandomnessRequest) IsFulfilled() bool {
	return r.FulfilledAt != nil
}

// IsAbandoned returns true if the operator reset this request
func (r *RandomnessRequest) IsAbandoned() bool {
	return r.AbandonedAt != nil
}

// IsStale reports whether the request has been outstanding longer than the
// given timeout
func (r *RandomnessRequest) IsStale(timeout time.Duration) bool {
	return time.Since(r.RequestedAt) >= timeout
}

// Fulfill records the applied random word
func (r *RandomnessRequest) Fulfill(word uint64) {
	now := time.Now().UTC()
	r.FulfilledAt = &now
	w := int64(word)
	r.RandomWord = &w
}

// Abandon marks the request as reset by the operator
func (r *RandomnessRequest) Abandon() {
	now := time.Now().UTC()
	r.AbandonedAt = &now
}
