package confirmation

import (
	"context"
	"fmt"

	"github.com/SanakShres/emergent-ecommerce/lib/myerrors"
	"github.com/SanakShres/emergent-ecommerce/lib/mylog"
	"github.com/SanakShres/emergent-ecommerce/lib/mypublisher"
	"github.com/SanakShres/emergent-ecommerce/lib/mystore"
	"github.com/SanakShres/emergent-ecommerce/lib/mytime"
	"github.com/SanakShres/emergent-ecommerce/services/checkoutapi"
	"github.com/SanakShres/emergent-ecommerce/services/checkout/checkoutevents"
	"github.com/SanakShres/emergent-ecommerce/services/identity"
	"github.com/SanakShres/emergent-ecommerce/services/payment"
)

// CartClearer empties the cart of the shopper whose payment settled.
//
//go:generate mockgen -source=service.go -package confirmation -destination clearer_mock.go CartClearer
type CartClearer interface {
	Clear(c context.Context, id identity.Identity) error
}

type service struct {
	poller        poller
	clearer       CartClearer
	checkoutStore mystore.Store[checkoutapi.CheckoutContext]
	publisher     mypublisher.Publisher
	nower         mytime.Nower
	logger        mylog.Logger
}

// Use dependency injection to isolate the infrastructure and easy testing
func newService(gateway payment.Gateway, clearer CartClearer, checkoutStore mystore.Store[checkoutapi.CheckoutContext],
	publisher mypublisher.Publisher, nower mytime.Nower, logger mylog.Logger) *service {
	return &service{
		poller:        newPoller(gateway),
		clearer:       clearer,
		checkoutStore: checkoutStore,
		publisher:     publisher,
		nower:         nower,
		logger:        logger,
	}
}

// Confirm resolves the settlement of the payment session the shopper returned
// with. A reference that was already settled short-circuits without polling
// and without clearing again: the cart-clear side effect is at most once per
// reference.
func (s *service) Confirm(c context.Context, reference string) (Outcome, error) {
	if reference == "" {
		return Outcome{State: StateIdle}, nil
	}

	checkoutContext, found, err := s.checkoutStore.Get(c, reference)
	if err != nil {
		return Outcome{}, myerrors.NewInternalError(fmt.Errorf("error fetching checkout context %s: %s", reference, err))
	}
	if found && checkoutContext.Settled {
		s.logger.Log(c, reference, mylog.SeverityInfo, "Reference %s already settled", reference)

		return Outcome{
			State:    StateConfirmed,
			Attempts: 0,
			Settlement: payment.Settlement{
				Reference:     reference,
				Status:        payment.StatusPaid,
				AmountInCents: checkoutContext.AmountInCents,
				Currency:      checkoutContext.Currency,
			},
		}, nil
	}

	return s.poller.run(c, reference, s.settle)
}

// settle runs on the single transition into StateConfirmed.
func (s *service) settle(c context.Context, settlement payment.Settlement) error {
	s.logger.Log(c, settlement.Reference, mylog.SeverityInfo, "Payment %s settled: %s", settlement.Reference, settlement.Status)

	now := s.nower.Now()

	var checkoutContext checkoutapi.CheckoutContext
	var found bool
	var alreadySettled bool
	err := s.checkoutStore.RunInTransaction(c, func(c context.Context) error {
		// must be idempotent

		var err error
		checkoutContext, found, err = s.checkoutStore.Get(c, settlement.Reference)
		if err != nil {
			return myerrors.NewInternalError(fmt.Errorf("error fetching checkout context %s: %s", settlement.Reference, err))
		}
		if !found {
			return myerrors.NewNotFoundError(fmt.Errorf("checkout context %s not found", settlement.Reference))
		}
		if checkoutContext.Settled {
			// a concurrent confirmation won the race: the side effects ran already
			alreadySettled = true
			return nil
		}

		checkoutContext.PaymentStatus = string(settlement.Status)
		checkoutContext.Settled = true
		checkoutContext.LastModified = &now

		err = s.checkoutStore.Put(c, settlement.Reference, checkoutContext)
		if err != nil {
			return myerrors.NewInternalError(err)
		}

		return nil
	})
	if err != nil {
		return err
	}
	if alreadySettled {
		s.logger.Log(c, settlement.Reference, mylog.SeverityInfo, "Reference %s already settled", settlement.Reference)
		return nil
	}

	err = s.clearer.Clear(c, checkoutContext.Identity())
	if err != nil {
		// the payment is settled either way, an unclearable cart is not fatal
		s.logger.Log(c, settlement.Reference, mylog.SeverityWarn, "Error clearing cart after settlement: %s", err)
	}

	err = s.publisher.Publish(c, checkoutevents.TopicName, checkoutevents.CheckoutCompleted{
		OrderUID:      checkoutContext.OrderUID,
		Reference:     settlement.Reference,
		Status:        string(settlement.Status),
		Success:       true,
		AmountInCents: settlement.AmountInCents,
		Currency:      settlement.Currency,
		ShopperKey:    checkoutContext.Identity().Key(),
	})
	if err != nil {
		s.logger.Log(c, settlement.Reference, mylog.SeverityWarn, "Error publishing completion event: %s", err)
	}

	return nil
}
