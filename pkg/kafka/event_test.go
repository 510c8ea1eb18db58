package kafka

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testPayload struct {
	SessionID string `json:"session_id"`
	Total     string `json:"total"`
}

func TestNewEvent_PopulatesEnvelope(t *testing.T) {
	payload := testPayload{SessionID: "sess-1", Total: "1200.00"}

	event, err := NewEvent("storefront.order.placed", "sess-1", "checkout_session", "storefront", payload)

	require.NoError(t, err)
	assert.NotEmpty(t, event.EventID)
	assert.Equal(t, "storefront.order.placed", event.EventType)
	assert.Equal(t, "sess-1", event.AggregateID)
	assert.Equal(t, "checkout_session", event.AggregateType)
	assert.Equal(t, 1, event.Version)
	assert.False(t, event.Timestamp.IsZero())
}

func TestEvent_DataRoundTrip(t *testing.T) {
	payload := testPayload{SessionID: "sess-2", Total: "450.50"}

	event, err := NewEvent("storefront.cart.updated", "sess-2", "checkout_session", "storefront", payload)
	require.NoError(t, err)

	var decoded testPayload
	require.NoError(t, event.UnmarshalData(&decoded))
	assert.Equal(t, payload, decoded)
}

func TestEvent_MarshalIncludesCorrelationID(t *testing.T) {
	event, err := NewEvent("storefront.coupon.applied", "sess-3", "checkout_session", "storefront", testPayload{})
	require.NoError(t, err)
	event.WithCorrelationID("corr-42")

	data, err := event.Marshal()
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "corr-42", raw["correlation_id"])
}
