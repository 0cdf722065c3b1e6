package checkoutevents

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/SanakShres/emergent-ecommerce/lib/myevents"
)

type eventRecorder struct {
	started   []CheckoutStarted
	completed []CheckoutCompleted
}

func (r *eventRecorder) OnCheckoutStarted(c context.Context, topic string, event CheckoutStarted) error {
	r.started = append(r.started, event)
	return nil
}

func (r *eventRecorder) OnCheckoutCompleted(c context.Context, topic string, event CheckoutCompleted) error {
	r.completed = append(r.completed, event)
	return nil
}

func TestDispatchEvent(t *testing.T) {
	c := context.TODO()

	t.Run("Dispatch completed event", func(t *testing.T) {
		// given
		recorder := &eventRecorder{}
		event := CheckoutCompleted{
			OrderUID:      "order-1",
			Reference:     "cs_123",
			Status:        "paid",
			Success:       true,
			AmountInCents: 13500,
			Currency:      "usd",
		}

		// when
		err := DispatchEvent(c, asEnvelopeReader(t, event), recorder)

		// then
		assert.NoError(t, err)
		assert.Empty(t, recorder.started)
		assert.Equal(t, []CheckoutCompleted{event}, recorder.completed)
	})

	t.Run("Dispatch started event", func(t *testing.T) {
		// given
		recorder := &eventRecorder{}
		event := CheckoutStarted{
			OrderUID:      "order-1",
			Reference:     "cs_123",
			ProviderName:  "stripe",
			AmountInCents: 13500,
			Currency:      "usd",
		}

		// when
		err := DispatchEvent(c, asEnvelopeReader(t, event), recorder)

		// then
		assert.NoError(t, err)
		assert.Equal(t, []CheckoutStarted{event}, recorder.started)
	})

	t.Run("Unknown event type is rejected", func(t *testing.T) {
		// given
		recorder := &eventRecorder{}
		envelope, err := json.Marshal(myevents.EventEnvelope{Topic: TopicName, EventTypeName: "checkout.unknown"})
		assert.NoError(t, err)

		// when
		err = DispatchEvent(c, strings.NewReader(string(envelope)), recorder)

		// then
		assert.Error(t, err)
	})
}

func asEnvelopeReader(t *testing.T, event myevents.Event) *strings.Reader {
	payload, err := json.Marshal(event)
	assert.NoError(t, err)
	envelope, err := json.Marshal(myevents.EventEnvelope{
		Topic:         TopicName,
		AggregateUID:  event.GetAggregateName(),
		EventTypeName: event.GetEventTypeName(),
		EventPayload:  string(payload),
	})
	assert.NoError(t, err)

	return strings.NewReader(string(envelope))
}
