package infrastructure

import (
	"context"
	"errors"
	"testing"

	"github.com/Samuel1-ona/tikka-contracts/domain/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockEventPublisher is a mock implementation of EventPublisher
type MockEventPublisher struct {
	PublishedEvents []events.Event
	PublishError    error
}

func (m *MockEventPublisher) Publish(event events.Event) error {
	if m.PublishError != nil {
		return m.PublishError
	}
	m.PublishedEvents = append(m.PublishedEvents, event)
	return nil
}

func TestNATSTransactionalPublisher_FlushPublishesBuffered(t *testing.T) {
	mockPublisher := &MockEventPublisher{
		PublishedEvents: make([]events.Event, 0),
	}

	transPublisher := NewNATSTransactionalPublisher(mockPublisher)

	createdEvent := events.RaffleCreatedEvent{
		RaffleID:    1,
		Creator:     "alice",
		MaxTickets:  100,
		TicketPrice: 50,
	}
	purchasedEvent := events.TicketPurchasedEvent{
		RaffleID: 1,
		TicketID: 10,
		Buyer:    "bob",
		Price:    50,
	}

	require.NoError(t, transPublisher.Publish(createdEvent))
	require.NoError(t, transPublisher.Publish(purchasedEvent))

	// Nothing reaches the real publisher before flush
	assert.Len(t, mockPublisher.PublishedEvents, 0)

	transPublisher.Flush(context.Background())

	// Events are forwarded in publish order
	require.Len(t, mockPublisher.PublishedEvents, 2)
	assert.Equal(t, createdEvent, mockPublisher.PublishedEvents[0])
	assert.Equal(t, purchasedEvent, mockPublisher.PublishedEvents[1])
}

func TestNATSTransactionalPublisher_FlushClearsQueue(t *testing.T) {
	mockPublisher := &MockEventPublisher{
		PublishedEvents: make([]events.Event, 0),
	}

	transPublisher := NewNATSTransactionalPublisher(mockPublisher)

	testEvent := events.RaffleFinalizedEvent{
		RaffleID:        2,
		Winner:          "carol",
		WinningTicketID: 7,
	}

	require.NoError(t, transPublisher.Publish(testEvent))
	transPublisher.Flush(context.Background())
	require.Len(t, mockPublisher.PublishedEvents, 1)

	// A second flush must not republish
	transPublisher.Flush(context.Background())
	assert.Len(t, mockPublisher.PublishedEvents, 1)
}

func TestNATSTransactionalPublisher_Discard(t *testing.T) {
	mockPublisher := &MockEventPublisher{
		PublishedEvents: make([]events.Event, 0),
	}

	transPublisher := NewNATSTransactionalPublisher(mockPublisher)

	testEvent := events.WinnerSelectedEvent{
		RaffleID:        3,
		RequestID:       "req-1",
		Winner:          "dave",
		WinningTicketID: 42,
	}

	require.NoError(t, transPublisher.Publish(testEvent))

	// Discard instead of flush
	transPublisher.Discard()

	assert.Len(t, mockPublisher.PublishedEvents, 0)

	// The queue is empty, so a later flush publishes nothing
	transPublisher.Flush(context.Background())
	assert.Len(t, mockPublisher.PublishedEvents, 0)
}

func TestNATSTransactionalPublisher_FlushContinuesAfterError(t *testing.T) {
	mockPublisher := &MockEventPublisher{
		PublishedEvents: make([]events.Event, 0),
		PublishError:    errors.New("stream unavailable"),
	}

	transPublisher := NewNATSTransactionalPublisher(mockPublisher)

	require.NoError(t, transPublisher.Publish(events.ServiceChargeUpdatedEvent{OldRate: 5, NewRate: 10}))

	// Flush swallows publish failures and still clears the queue
	transPublisher.Flush(context.Background())
	assert.Len(t, mockPublisher.PublishedEvents, 0)

	mockPublisher.PublishError = nil
	transPublisher.Flush(context.Background())
	assert.Len(t, mockPublisher.PublishedEvents, 0)
}
