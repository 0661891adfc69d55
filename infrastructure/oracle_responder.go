package infrastructure

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"encoding/json"
	"fmt"

	"github.com/Samuel1-ona/tikka-contracts/domain/events"

	log "github.com/sirupsen/logrus"
)

// RandomnessRequestSubject is the subject randomness requests are published on
const RandomnessRequestSubject = "tikka.raffle.randomness_requested"

// OracleResponder plays the coordinator for local development runs. It
// watches randomness requests and publishes a fulfillment back, either with
// configured fixed words or cryptographically random ones.
type OracleResponder struct {
	natsClient  *NATSClient
	coordinator string
	fixedWords  []uint64

	ctx    context.Context
	cancel context.CancelFunc
}

// NewOracleResponder creates a new dev-mode oracle responder. When fixedWords
// is non-empty every request is answered with exactly those words, which makes
// end-to-end runs deterministic.
func NewOracleResponder(natsServers, coordinator string, fixedWords []uint64) *OracleResponder {
	ctx, cancel := context.WithCancel(context.Background())

	return &OracleResponder{
		natsClient:  NewNATSClient(natsServers),
		coordinator: coordinator,
		fixedWords:  fixedWords,
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Start begins answering randomness requests.
// Blocks until Stop is called or the responder's context is cancelled.
func (r *OracleResponder) Start(ctx context.Context) error {
	log.WithField("coordinator", r.coordinator).Info("Starting oracle responder")

	if err := r.natsClient.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to NATS: %w", err)
	}

	// Both streams must exist: one to watch requests, one to answer on
	subjectMapper := NewEventSubjectMapper()
	if err := r.natsClient.ensureStream("raffle_events", subjectMapper.GetAllSubjects(), "Raffle lifecycle and platform events"); err != nil {
		return fmt.Errorf("failed to ensure raffle event stream: %w", err)
	}
	if err := r.natsClient.EnsureOracleStream(); err != nil {
		return fmt.Errorf("failed to ensure oracle stream: %w", err)
	}

	if err := r.natsClient.Subscribe(RandomnessRequestSubject, r.handleRequest); err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", RandomnessRequestSubject, err)
	}

	log.Info("Oracle responder started")

	<-r.ctx.Done()

	return r.natsClient.Close()
}

// Stop gracefully shuts down the responder
func (r *OracleResponder) Stop() {
	log.Info("Stopping oracle responder")
	r.cancel()
}

// handleRequest answers a single randomness request with a fulfillment message
func (r *OracleResponder) handleRequest(data []byte) error {
	var envelope EventEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return fmt.Errorf("failed to unmarshal event envelope: %w", err)
	}

	var request events.RandomnessRequestedEvent
	if err := json.Unmarshal(envelope.Payload, &request); err != nil {
		return fmt.Errorf("failed to unmarshal randomness request: %w", err)
	}

	words, err := r.wordsFor(request.NumWords)
	if err != nil {
		return err
	}

	msg := FulfillmentMessage{
		Coordinator: r.coordinator,
		RequestID:   request.RequestID,
		RandomWords: words,
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal fulfillment message: %w", err)
	}

	if err := r.natsClient.Publish(context.Background(), FulfillmentSubject, payload); err != nil {
		return fmt.Errorf("failed to publish fulfillment: %w", err)
	}

	log.WithFields(log.Fields{
		"raffleId":  request.RaffleID,
		"requestId": request.RequestID,
		"words":     words,
	}).Info("Answered randomness request")

	return nil
}

// wordsFor returns the words to answer a request with
func (r *OracleResponder) wordsFor(numWords int) ([]uint64, error) {
	if len(r.fixedWords) > 0 {
		return r.fixedWords, nil
	}

	words := make([]uint64, numWords)
	for i := range words {
		var buf [8]byte
		if _, err := rand.Read(buf[:]); err != nil {
			return nil, fmt.Errorf("failed to generate random word: %w", err)
		}
		words[i] = binary.BigEndian.Uint64(buf[:])
	}
	return words, nil
}
