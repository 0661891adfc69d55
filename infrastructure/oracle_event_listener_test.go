package infrastructure

import (
	"context"
	"errors"
	"testing"

	"github.com/Samuel1-ona/tikka-contracts/application/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockFulfillmentHandler records fulfillments passed to the application layer
type MockFulfillmentHandler struct {
	Received    []dto.FulfillmentDTO
	HandleError error
}

func (m *MockFulfillmentHandler) HandleFulfillment(ctx context.Context, fulfillment dto.FulfillmentDTO) error {
	if m.HandleError != nil {
		return m.HandleError
	}
	m.Received = append(m.Received, fulfillment)
	return nil
}

func TestOracleEventListener_HandleFulfillment(t *testing.T) {
	handler := &MockFulfillmentHandler{}
	listener := NewOracleEventListener(handler)

	data := []byte(`{"coordinator":"oracle:coordinator","request_id":"req-abc","random_words":[5,99]}`)

	err := listener.HandleFulfillment(context.Background(), data)
	require.NoError(t, err)

	require.Len(t, handler.Received, 1)
	assert.Equal(t, dto.FulfillmentDTO{
		Coordinator: "oracle:coordinator",
		RequestID:   "req-abc",
		RandomWords: []uint64{5, 99},
	}, handler.Received[0])
}

func TestOracleEventListener_MalformedMessage(t *testing.T) {
	handler := &MockFulfillmentHandler{}
	listener := NewOracleEventListener(handler)

	err := listener.HandleFulfillment(context.Background(), []byte(`not json`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to unmarshal fulfillment message")
	assert.Len(t, handler.Received, 0)
}

func TestOracleEventListener_HandlerErrorPropagates(t *testing.T) {
	handler := &MockFulfillmentHandler{HandleError: errors.New("raffle not pending")}
	listener := NewOracleEventListener(handler)

	data := []byte(`{"coordinator":"oracle:coordinator","request_id":"req-abc","random_words":[1]}`)

	err := listener.HandleFulfillment(context.Background(), data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "raffle not pending")
}
