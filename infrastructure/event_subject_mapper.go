package infrastructure

import (
	"fmt"

	"github.com/Samuel1-ona/tikka-contracts/domain/events"
)

// EventSubjectMapper handles mapping between domain events and NATS subjects
type EventSubjectMapper struct{}

// NewEventSubjectMapper creates a new event subject mapper
func NewEventSubjectMapper() *EventSubjectMapper {
	return &EventSubjectMapper{}
}

// MapEventToSubject converts a domain event to its corresponding NATS subject
func (m *EventSubjectMapper) MapEventToSubject(event events.Event) string {
	switch event.Type() {
	case events.EventTypeRaffleCreated:
		return "tikka.raffle.created"
	case events.EventTypeTicketPurchased:
		return "tikka.raffle.ticket_purchased"
	case events.EventTypeRandomnessRequested:
		return "tikka.raffle.randomness_requested"
	case events.EventTypeRandomnessAbandoned:
		return "tikka.raffle.randomness_abandoned"
	case events.EventTypeWinnerSelected:
		return "tikka.raffle.winner_selected"
	case events.EventTypePrizeDeposited:
		return "tikka.raffle.prize_deposited"
	case events.EventTypeWinningsWithdrawn:
		return "tikka.raffle.winnings_withdrawn"
	case events.EventTypePrizeWithdrawn:
		return "tikka.raffle.prize_withdrawn"
	case events.EventTypeRaffleFinalized:
		return "tikka.raffle.finalized"
	case events.EventTypeServiceChargeUpdated:
		return "tikka.platform.service_charge_updated"
	default:
		// Fallback for unknown event types
		return fmt.Sprintf("tikka.unknown.%s", event.Type())
	}
}

// MapSubjectToEventType converts a NATS subject back to an event type
func (m *EventSubjectMapper) MapSubjectToEventType(subject string) events.EventType {
	switch subject {
	case "tikka.raffle.created":
		return events.EventTypeRaffleCreated
	case "tikka.raffle.ticket_purchased":
		return events.EventTypeTicketPurchased
	case "tikka.raffle.randomness_requested":
		return events.EventTypeRandomnessRequested
	case "tikka.raffle.randomness_abandoned":
		return events.EventTypeRandomnessAbandoned
	case "tikka.raffle.winner_selected":
		return events.EventTypeWinnerSelected
	case "tikka.raffle.prize_deposited":
		return events.EventTypePrizeDeposited
	case "tikka.raffle.winnings_withdrawn":
		return events.EventTypeWinningsWithdrawn
	case "tikka.raffle.prize_withdrawn":
		return events.EventTypePrizeWithdrawn
	case "tikka.raffle.finalized":
		return events.EventTypeRaffleFinalized
	case "tikka.platform.service_charge_updated":
		return events.EventTypeServiceChargeUpdated
	default:
		return events.EventType(subject)
	}
}

// GetAllSubjects returns all subjects that this service publishes to
func (m *EventSubjectMapper) GetAllSubjects() []string {
	return []string{
		"tikka.raffle.created",
		"tikka.raffle.ticket_purchased",
		"tikka.raffle.randomness_requested",
		"tikka.raffle.randomness_abandoned",
		"tikka.raffle.winner_selected",
		"tikka.raffle.prize_deposited",
		"tikka.raffle.winnings_withdrawn",
		"tikka.raffle.prize_withdrawn",
		"tikka.raffle.finalized",
		"tikka.platform.service_charge_updated",
	}
}
