package mypublisher

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/SanakShres/emergent-ecommerce/lib/myevents"
	"github.com/SanakShres/emergent-ecommerce/lib/mypubsub"
	"github.com/SanakShres/emergent-ecommerce/lib/mystore"
	"github.com/SanakShres/emergent-ecommerce/lib/mytime"
	"github.com/SanakShres/emergent-ecommerce/lib/myuuid"
)

type outboxPublisher struct {
	outbox    mystore.Store[myevents.EventEnvelope]
	enveloper enveloper
	pubsub    mypubsub.PubSub
}

func New(c context.Context, pubsub mypubsub.PubSub, nower mytime.Nower, uuider myuuid.UUIDer) (Publisher, func(), error) {
	outbox, outboxCleanup, err := mystore.New[myevents.EventEnvelope](c)
	if err != nil {
		return nil, nil, err
	}

	return &outboxPublisher{
		outbox:    outbox,
		enveloper: newEnveloper(nower, uuider),
		pubsub:    pubsub,
	}, outboxCleanup, nil
}

func (p *outboxPublisher) CreateTopic(c context.Context, topicName string) error {
	return p.pubsub.CreateTopic(c, topicName)
}

// Publish stores the envelope in the outbox first, then drains the outbox.
// A failed drain leaves the envelope behind for the next publication to pick up.
func (p *outboxPublisher) Publish(c context.Context, topic string, event myevents.Event) error {
	envelope, err := p.enveloper.do(topic, event)
	if err != nil {
		return fmt.Errorf("error creating envelope: %s", err)
	}

	err = p.outbox.Put(c, envelope.UID, envelope)
	if err != nil {
		return fmt.Errorf("error storing envelope: %s", err)
	}

	return p.drain(c)
}

func (p *outboxPublisher) drain(c context.Context) error {
	return p.outbox.RunInTransaction(c, func(c context.Context) error {
		envelopes, err := p.outbox.Query(c, []mystore.Filter{{Field: "Published", Compare: "=", Value: false}}, "CreatedAt")
		if err != nil {
			return fmt.Errorf("error fetching unpublished envelopes: %s", err)
		}

		for _, envelope := range envelopes {
			jsonBytes, err := json.Marshal(envelope)
			if err != nil {
				return fmt.Errorf("error serializing envelope: %s", err)
			}

			err = p.pubsub.Publish(c, envelope.Topic, string(jsonBytes))
			if err != nil {
				return fmt.Errorf("error publishing envelope %s: %s", envelope.UID, err)
			}

			// mark as published
			envelope.Published = true
			err = p.outbox.Put(c, envelope.UID, envelope)
			if err != nil {
				return fmt.Errorf("error storing envelope %s: %s", envelope.UID, err)
			}
		}

		return nil
	})
}
