package payment

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/SanakShres/emergent-ecommerce/lib/myerrors"
	"github.com/SanakShres/emergent-ecommerce/lib/myhttpclient"
)

func TestBackendGatewayStart(t *testing.T) {
	c := context.TODO()

	t.Run("Creates checkout session", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// given
		sender := myhttpclient.NewMockHTTPSender(ctrl)
		sender.EXPECT().Send(gomock.Any(), http.MethodPost, "https://backend.example.com/api/payments/create-checkout?order_id=order-1", nil, nil).
			Return(200, []byte(`{"url":"https://pay.example.com/cs_123","session_id":"cs_123"}`), nil)
		sut := NewBackendGateway("https://backend.example.com/api", sender)

		// when
		session, err := sut.Start(c, CheckoutRequest{OrderID: "order-1", TotalInCents: 13500, Currency: "usd"})

		// then
		assert.NoError(t, err)
		assert.Equal(t, "cs_123", session.Reference)
		assert.Equal(t, "https://pay.example.com/cs_123", session.URL)
	})

	t.Run("Falls back to the order id when no session id comes back", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// given
		sender := myhttpclient.NewMockHTTPSender(ctrl)
		sender.EXPECT().Send(gomock.Any(), http.MethodPost, gomock.Any(), nil, nil).
			Return(200, []byte(`{"url":"https://pay.example.com/abc"}`), nil)
		sut := NewBackendGateway("https://backend.example.com/api", sender)

		// when
		session, err := sut.Start(c, CheckoutRequest{OrderID: "order-1"})

		// then
		assert.NoError(t, err)
		assert.Equal(t, "order-1", session.Reference)
	})

	t.Run("Unreachable backend is unavailable", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// given
		sender := myhttpclient.NewMockHTTPSender(ctrl)
		sender.EXPECT().Send(gomock.Any(), http.MethodPost, gomock.Any(), nil, nil).
			Return(0, nil, assert.AnError)
		sut := NewBackendGateway("https://backend.example.com/api", sender)

		// when
		_, err := sut.Start(c, CheckoutRequest{OrderID: "order-1"})

		// then
		assert.Error(t, err)
		assert.Equal(t, 503, myerrors.GetHTTPStatus(err))
	})
}

func TestBackendGatewaySettlementStatus(t *testing.T) {
	c := context.TODO()

	tests := []struct {
		name           string
		paymentStatus  string
		expectedStatus Status
	}{
		{name: "Paid", paymentStatus: "paid", expectedStatus: StatusPaid},
		{name: "Pending", paymentStatus: "pending", expectedStatus: StatusPending},
		{name: "Unknown is pending", paymentStatus: "processing", expectedStatus: StatusPending},
		{name: "Failed", paymentStatus: "failed", expectedStatus: StatusFailed},
		{name: "Canceled", paymentStatus: "canceled", expectedStatus: StatusFailed},
		{name: "Expired", paymentStatus: "expired", expectedStatus: StatusExpired},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			// given
			sender := myhttpclient.NewMockHTTPSender(ctrl)
			sender.EXPECT().Send(gomock.Any(), http.MethodGet, "https://backend.example.com/api/payments/status/cs_123", nil, nil).
				Return(200, []byte(`{"payment_status":"`+tc.paymentStatus+`","amount_total":13500,"currency":"usd"}`), nil)
			sut := NewBackendGateway("https://backend.example.com/api", sender)

			// when
			settlement, err := sut.SettlementStatus(c, "cs_123")

			// then
			assert.NoError(t, err)
			assert.Equal(t, "cs_123", settlement.Reference)
			assert.Equal(t, tc.expectedStatus, settlement.Status)
			assert.Equal(t, int64(13500), settlement.AmountInCents)
			assert.Equal(t, "usd", settlement.Currency)
		})
	}

	t.Run("Error status from backend is internal", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// given
		sender := myhttpclient.NewMockHTTPSender(ctrl)
		sender.EXPECT().Send(gomock.Any(), http.MethodGet, gomock.Any(), nil, nil).
			Return(500, []byte(`{}`), nil)
		sut := NewBackendGateway("https://backend.example.com/api", sender)

		// when
		_, err := sut.SettlementStatus(c, "cs_123")

		// then
		assert.Error(t, err)
		assert.Equal(t, 500, myerrors.GetHTTPStatus(err))
	})
}
