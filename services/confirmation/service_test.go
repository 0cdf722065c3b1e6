package confirmation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/SanakShres/emergent-ecommerce/lib/mylog"
	"github.com/SanakShres/emergent-ecommerce/lib/mypublisher"
	"github.com/SanakShres/emergent-ecommerce/lib/mystore"
	"github.com/SanakShres/emergent-ecommerce/lib/mytime"
	"github.com/SanakShres/emergent-ecommerce/services/checkout/checkoutevents"
	"github.com/SanakShres/emergent-ecommerce/services/checkoutapi"
	"github.com/SanakShres/emergent-ecommerce/services/identity"
	"github.com/SanakShres/emergent-ecommerce/services/payment"
)

var pendingCheckoutContext = checkoutapi.CheckoutContext{
	Reference:     "cs_123",
	OrderUID:      "order-1",
	CreatedAt:     mytime.ExampleTime,
	AmountInCents: 13500,
	Currency:      "usd",
	IdentityKind:  string(identity.KindAnonymous),
	SessionToken:  "session-abc",
	PaymentStatus: string(payment.StatusPending),
}

func TestConfirm(t *testing.T) {
	t.Run("No reference, polling never starts", func(t *testing.T) {
		c := context.TODO()
		ctrl, gateway, clearer, checkoutStore, publisher, nower := setup(t, c)
		defer ctrl.Finish()

		// given
		sut := newSut(gateway, clearer, checkoutStore, publisher, nower)

		// when
		outcome, err := sut.Confirm(c, "")

		// then
		assert.NoError(t, err)
		assert.Equal(t, StateIdle, outcome.State)
		assert.Zero(t, outcome.Attempts)
	})

	t.Run("Paid on last attempt, cart cleared once", func(t *testing.T) {
		c := context.TODO()
		ctrl, gateway, clearer, checkoutStore, publisher, nower := setup(t, c)
		defer ctrl.Finish()

		// given
		err := checkoutStore.Put(c, "cs_123", pendingCheckoutContext)
		assert.NoError(t, err)
		pending := payment.Settlement{Reference: "cs_123", Status: payment.StatusPending}
		paid := payment.Settlement{Reference: "cs_123", Status: payment.StatusPaid, AmountInCents: 13500, Currency: "usd"}
		gomock.InOrder(
			gateway.EXPECT().SettlementStatus(gomock.Any(), "cs_123").Return(pending, nil).Times(4),
			gateway.EXPECT().SettlementStatus(gomock.Any(), "cs_123").Return(paid, nil),
		)
		nower.EXPECT().Now().Return(mytime.ExampleTime)
		clearer.EXPECT().Clear(gomock.Any(), pendingCheckoutContext.Identity()).Return(nil)
		publisher.EXPECT().Publish(gomock.Any(), checkoutevents.TopicName, checkoutevents.CheckoutCompleted{
			OrderUID:      "order-1",
			Reference:     "cs_123",
			Status:        string(payment.StatusPaid),
			Success:       true,
			AmountInCents: 13500,
			Currency:      "usd",
			ShopperKey:    pendingCheckoutContext.Identity().Key(),
		}).Return(nil)
		sut := newSut(gateway, clearer, checkoutStore, publisher, nower)

		// when
		outcome, err := sut.Confirm(c, "cs_123")

		// then
		assert.NoError(t, err)
		assert.Equal(t, StateConfirmed, outcome.State)
		assert.Equal(t, 5, outcome.Attempts)
		assert.Equal(t, paid, outcome.Settlement)
		stored, found, err := checkoutStore.Get(c, "cs_123")
		assert.NoError(t, err)
		assert.True(t, found)
		assert.True(t, stored.Settled)
		assert.Equal(t, string(payment.StatusPaid), stored.PaymentStatus)
	})

	t.Run("Never paid, gives up without clearing", func(t *testing.T) {
		c := context.TODO()
		ctrl, gateway, clearer, checkoutStore, publisher, nower := setup(t, c)
		defer ctrl.Finish()

		// given
		err := checkoutStore.Put(c, "cs_123", pendingCheckoutContext)
		assert.NoError(t, err)
		pending := payment.Settlement{Reference: "cs_123", Status: payment.StatusPending}
		gateway.EXPECT().SettlementStatus(gomock.Any(), "cs_123").Return(pending, nil).Times(5)
		sut := newSut(gateway, clearer, checkoutStore, publisher, nower)

		// when
		outcome, err := sut.Confirm(c, "cs_123")

		// then
		assert.NoError(t, err)
		assert.Equal(t, StateGaveUp, outcome.State)
		assert.Equal(t, 5, outcome.Attempts)
		stored, _, err := checkoutStore.Get(c, "cs_123")
		assert.NoError(t, err)
		assert.False(t, stored.Settled)
	})

	t.Run("Query failure counts as a regular attempt", func(t *testing.T) {
		c := context.TODO()
		ctrl, gateway, clearer, checkoutStore, publisher, nower := setup(t, c)
		defer ctrl.Finish()

		// given
		err := checkoutStore.Put(c, "cs_123", pendingCheckoutContext)
		assert.NoError(t, err)
		gateway.EXPECT().SettlementStatus(gomock.Any(), "cs_123").
			Return(payment.Settlement{}, assert.AnError).Times(5)
		sut := newSut(gateway, clearer, checkoutStore, publisher, nower)

		// when
		outcome, err := sut.Confirm(c, "cs_123")

		// then
		assert.NoError(t, err)
		assert.Equal(t, StateGaveUp, outcome.State)
		assert.Equal(t, 5, outcome.Attempts)
	})

	t.Run("Cancelled mid poll, no further attempts and no clear", func(t *testing.T) {
		c, cancel := context.WithCancel(context.TODO())
		defer cancel()
		ctrl, gateway, clearer, checkoutStore, publisher, nower := setup(t, c)
		defer ctrl.Finish()

		// given: the shopper navigates away while the first query is in flight
		err := checkoutStore.Put(c, "cs_123", pendingCheckoutContext)
		assert.NoError(t, err)
		pending := payment.Settlement{Reference: "cs_123", Status: payment.StatusPending}
		gateway.EXPECT().SettlementStatus(gomock.Any(), "cs_123").
			DoAndReturn(func(c context.Context, reference string) (payment.Settlement, error) {
				cancel()
				return pending, nil
			})
		sut := newSut(gateway, clearer, checkoutStore, publisher, nower)
		sut.poller.interval = time.Hour // cancellation must win from the timer

		// when
		outcome, err := sut.Confirm(c, "cs_123")

		// then: no second query, no clear
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, StatePolling, outcome.State)
		assert.Equal(t, 1, outcome.Attempts)
	})

	t.Run("Racing settlements clear the cart only once", func(t *testing.T) {
		c := context.TODO()
		ctrl, gateway, clearer, checkoutStore, publisher, nower := setup(t, c)
		defer ctrl.Finish()

		// given: two confirmations passed the pre-poll check before either settled
		err := checkoutStore.Put(c, "cs_123", pendingCheckoutContext)
		assert.NoError(t, err)
		paid := payment.Settlement{Reference: "cs_123", Status: payment.StatusPaid, AmountInCents: 13500, Currency: "usd"}
		nower.EXPECT().Now().Return(mytime.ExampleTime).Times(2)
		clearer.EXPECT().Clear(gomock.Any(), pendingCheckoutContext.Identity()).Return(nil).Times(1)
		publisher.EXPECT().Publish(gomock.Any(), checkoutevents.TopicName, gomock.Any()).Return(nil).Times(1)
		sut := newSut(gateway, clearer, checkoutStore, publisher, nower)

		// when
		err = sut.settle(c, paid)
		assert.NoError(t, err)
		err = sut.settle(c, paid)

		// then: the loser of the race runs no side effects
		assert.NoError(t, err)
	})

	t.Run("Already settled reference short-circuits without polling", func(t *testing.T) {
		c := context.TODO()
		ctrl, gateway, clearer, checkoutStore, publisher, nower := setup(t, c)
		defer ctrl.Finish()

		// given
		settled := pendingCheckoutContext
		settled.PaymentStatus = string(payment.StatusPaid)
		settled.Settled = true
		err := checkoutStore.Put(c, "cs_123", settled)
		assert.NoError(t, err)
		sut := newSut(gateway, clearer, checkoutStore, publisher, nower)

		// when
		outcome, err := sut.Confirm(c, "cs_123")

		// then
		assert.NoError(t, err)
		assert.Equal(t, StateConfirmed, outcome.State)
		assert.Zero(t, outcome.Attempts)
		assert.Equal(t, payment.StatusPaid, outcome.Settlement.Status)
		assert.Equal(t, int64(13500), outcome.Settlement.AmountInCents)
	})
}

func newSut(gateway payment.Gateway, clearer CartClearer, checkoutStore mystore.Store[checkoutapi.CheckoutContext],
	publisher mypublisher.Publisher, nower mytime.Nower) *service {
	sut := newService(gateway, clearer, checkoutStore, publisher, nower, mylog.New("confirmation"))
	sut.poller.interval = time.Millisecond

	return sut
}

func setup(t *testing.T, c context.Context) (*gomock.Controller, *payment.MockGateway, *MockCartClearer,
	mystore.Store[checkoutapi.CheckoutContext], *mypublisher.MockPublisher, *mytime.MockNower) {
	ctrl := gomock.NewController(t)
	gateway := payment.NewMockGateway(ctrl)
	clearer := NewMockCartClearer(ctrl)
	checkoutStore, _, err := mystore.New[checkoutapi.CheckoutContext](c)
	assert.NoError(t, err)
	publisher := mypublisher.NewMockPublisher(ctrl)
	nower := mytime.NewMockNower(ctrl)

	return ctrl, gateway, clearer, checkoutStore, publisher, nower
}
