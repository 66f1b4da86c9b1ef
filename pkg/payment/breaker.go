package payment

import (
	"context"
	"errors"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/akil18/cop-shop-server-side/pkg/logger"
	"github.com/akil18/cop-shop-server-side/pkg/metrics"
)

// Breaker guards a Processor with a circuit breaker. After at least three
// requests with a failure ratio of 60% or more it rejects calls with
// ErrUnavailable until the open timeout elapses.
type Breaker struct {
	next Processor
	cb   *gobreaker.CircuitBreaker[Intent]
}

// NewBreaker wraps next. name labels the breaker in logs.
func NewBreaker(next Processor, name string) *Breaker {
	var st gobreaker.Settings
	st.Name = name
	st.Timeout = 30 * time.Second
	st.ReadyToTrip = func(counts gobreaker.Counts) bool {
		failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
		return counts.Requests >= 3 && failureRatio >= 0.6
	}
	// A caller mistake says nothing about the processor's health.
	st.IsSuccessful = func(err error) bool {
		return err == nil || errors.Is(err, ErrInvalidAmount) || errors.Is(err, context.Canceled)
	}
	st.OnStateChange = func(name string, from, to gobreaker.State) {
		logger.Warn("payment: breaker state changed", "breaker", name, "from", from.String(), "to", to.String())
	}

	return &Breaker{next: next, cb: gobreaker.NewCircuitBreaker[Intent](st)}
}

func (b *Breaker) CreateIntent(ctx context.Context, amount int64, currency string) (Intent, error) {
	intent, err := b.cb.Execute(func() (Intent, error) {
		return b.next.CreateIntent(ctx, amount, currency)
	})

	switch {
	case err == nil:
		metrics.RecordPaymentIntent("created")
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.RecordPaymentIntent("rejected")
		return Intent{}, ErrUnavailable
	default:
		metrics.RecordPaymentIntent("failed")
	}
	return intent, err
}

// State reports the breaker state ("closed", "half-open", "open").
func (b *Breaker) State() string {
	return b.cb.State().String()
}
