package mypublisher

import (
	"encoding/json"
	"fmt"

	"github.com/SanakShres/emergent-ecommerce/lib/myevents"
	"github.com/SanakShres/emergent-ecommerce/lib/mytime"
	"github.com/SanakShres/emergent-ecommerce/lib/myuuid"
)

type enveloper struct {
	nower  mytime.Nower
	uuider myuuid.UUIDer
}

func newEnveloper(nower mytime.Nower, uuider myuuid.UUIDer) enveloper {
	return enveloper{
		nower:  nower,
		uuider: uuider,
	}
}

func (e enveloper) do(topic string, event myevents.Event) (myevents.EventEnvelope, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return myevents.EventEnvelope{}, fmt.Errorf("error serializing event payload: %s", err)
	}

	return myevents.EventEnvelope{
		UID:           e.uuider.Create(),
		CreatedAt:     e.nower.Now(),
		Topic:         topic,
		AggregateUID:  event.GetAggregateName(),
		EventTypeName: event.GetEventTypeName(),
		EventPayload:  string(payload),
		Published:     false,
	}, nil
}
