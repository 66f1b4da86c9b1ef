// Package payment requests payment intents from a card processor.
//
//	p := payment.NewBreaker(payment.NewStripe(key, nil), "stripe")
//	amount, err := payment.AmountFromPrice(19.99)
//	...
//	intent, err := p.CreateIntent(ctx, amount, payment.CurrencyUSD)
//	// intent.ClientSecret goes back to the browser
//
// There are no idempotency keys: a retried request creates a second intent.
package payment

import (
	"context"
	"errors"
	"math"
)

// CurrencyUSD is the only currency the storefront charges in.
const CurrencyUSD = "usd"

var (
	// ErrInvalidAmount is returned for an amount that is not a positive,
	// finite number of minor units that fits in an int64.
	ErrInvalidAmount = errors.New("payment: amount must be positive")
	// ErrUnavailable is returned while the processor's breaker is open.
	ErrUnavailable = errors.New("payment: processor unavailable")
)

// Intent is the processor's handle on a pending charge.
type Intent struct {
	ID           string
	ClientSecret string
	Amount       int64
	Currency     string
}

// Processor creates payment intents. amount is in the currency's minor unit.
type Processor interface {
	CreateIntent(ctx context.Context, amount int64, currency string) (Intent, error)
}

// AmountFromPrice converts a decimal price to minor units, rounding half
// away from zero so 19.99 becomes 1999 despite float error. NaN, infinities,
// prices under one cent and prices past int64 cents are ErrInvalidAmount.
func AmountFromPrice(price float64) (int64, error) {
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return 0, ErrInvalidAmount
	}
	cents := math.Round(price * 100)
	// float64(math.MaxInt64) rounds up to 2^63, which int64 cannot hold.
	if cents < 1 || cents >= float64(math.MaxInt64) {
		return 0, ErrInvalidAmount
	}
	return int64(cents), nil
}
