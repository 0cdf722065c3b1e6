package confirmation

import (
	"context"
	"time"

	"github.com/SanakShres/emergent-ecommerce/services/payment"
)

type State string

const (
	// StateIdle: no reference token came back with the redirect, confirmation
	// is not possible and polling never starts.
	StateIdle State = "idle"
	// StatePolling is only observed externally when polling was cancelled.
	StatePolling State = "polling"
	// StateConfirmed and StateGaveUp are terminal.
	StateConfirmed State = "confirmed"
	StateGaveUp    State = "gave_up"
)

const (
	maxAttempts  = 5
	pollInterval = 2 * time.Second
)

// Outcome is what the post-payment page renders: the terminal state plus the
// settlement record when the payment was confirmed.
type Outcome struct {
	State      State              `json:"state"`
	Attempts   int                `json:"attempts"`
	Settlement payment.Settlement `json:"settlement,omitzero"`
}

// poller drives the bounded settlement poll: a fixed number of attempts, a
// fixed wait in between, no backoff and no jitter. The post-redirect
// confirmation window is short, anything not settled within it is handed to
// the shopper as "check back later".
type poller struct {
	gateway     payment.Gateway
	maxAttempts int
	interval    time.Duration
}

func newPoller(gateway payment.Gateway) poller {
	return poller{
		gateway:     gateway,
		maxAttempts: maxAttempts,
		interval:    pollInterval,
	}
}

// run queries the gateway up to maxAttempts times. onPaid is invoked exactly
// once, on the transition into StateConfirmed: that transition is the single
// gate for the cart-clear side effect. Cancelling the context stops the timer
// and suppresses the side effect; no further attempt is made after teardown.
func (p poller) run(c context.Context, reference string, onPaid func(c context.Context, settlement payment.Settlement) error) (Outcome, error) {
	if reference == "" {
		return Outcome{State: StateIdle}, nil
	}

	for attempt := 0; attempt < p.maxAttempts; attempt++ {
		settlement, err := p.gateway.SettlementStatus(c, reference)
		if err == nil && settlement.Status == payment.StatusPaid {
			err = onPaid(c, settlement)
			if err != nil {
				return Outcome{State: StatePolling, Attempts: attempt + 1}, err
			}

			return Outcome{
				State:      StateConfirmed,
				Attempts:   attempt + 1,
				Settlement: settlement,
			}, nil
		}

		// a query failure counts as a regular non-paid attempt

		if attempt+1 < p.maxAttempts {
			timer := time.NewTimer(p.interval)
			select {
			case <-c.Done():
				timer.Stop()
				return Outcome{State: StatePolling, Attempts: attempt + 1}, c.Err()
			case <-timer.C:
			}
		}
	}

	return Outcome{State: StateGaveUp, Attempts: p.maxAttempts}, nil
}
