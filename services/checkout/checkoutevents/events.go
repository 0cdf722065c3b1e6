package checkoutevents

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/SanakShres/emergent-ecommerce/lib/myerrors"
	"github.com/SanakShres/emergent-ecommerce/lib/myevents"
)

const (
	TopicName             = "checkout"
	checkoutStartedName   = TopicName + ".started"
	checkoutCompletedName = TopicName + ".completed"
)

type CheckoutEventService interface {
	OnCheckoutStarted(c context.Context, topic string, event CheckoutStarted) error
	OnCheckoutCompleted(c context.Context, topic string, event CheckoutCompleted) error
}

func DispatchEvent(c context.Context, reader io.Reader, service CheckoutEventService) error {
	envelope, err := myevents.ParseEventEnvelope(reader)
	if err != nil {
		return myerrors.NewInvalidInputError(err)
	}

	switch envelope.EventTypeName {
	case checkoutStartedName:
		event := CheckoutStarted{}
		err := json.Unmarshal([]byte(envelope.EventPayload), &event)
		if err != nil {
			return myerrors.NewInvalidInputError(err)
		}
		return service.OnCheckoutStarted(c, envelope.Topic, event)
	case checkoutCompletedName:
		event := CheckoutCompleted{}
		err := json.Unmarshal([]byte(envelope.EventPayload), &event)
		if err != nil {
			return myerrors.NewInvalidInputError(err)
		}
		return service.OnCheckoutCompleted(c, envelope.Topic, event)
	default:
		return myerrors.NewNotImplementedError(fmt.Errorf("unknown event type %s", envelope.EventTypeName))
	}
}

type CheckoutStarted struct {
	OrderUID      string
	Reference     string
	ProviderName  string
	AmountInCents int64
	Currency      string
	ShopperKey    string
}

func (e CheckoutStarted) GetEventTypeName() string {
	return checkoutStartedName
}

func (e CheckoutStarted) GetAggregateName() string {
	return e.OrderUID
}

type CheckoutCompleted struct {
	OrderUID      string
	Reference     string
	Status        string
	Success       bool
	AmountInCents int64
	Currency      string
	ShopperKey    string
}

func (e CheckoutCompleted) GetEventTypeName() string {
	return checkoutCompletedName
}

func (e CheckoutCompleted) GetAggregateName() string {
	return e.OrderUID
}
