package payment

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// Stripe is the Processor backed by the Stripe PaymentIntents API.
type Stripe struct {
	api *client.API
}

// NewStripe builds a client for key. A nil backend uses Stripe's API with
// network retries disabled; tests pass one aimed at a local server.
func NewStripe(key string, backend stripe.Backend) *Stripe {
	if backend == nil {
		backend = NewBackend("")
	}
	return &Stripe{
		api: client.New(key, &stripe.Backends{API: backend, Connect: backend, Uploads: backend}),
	}
}

// NewBackend returns an API backend without automatic retries. An empty
// url selects the production endpoint.
func NewBackend(url string) stripe.Backend {
	cfg := &stripe.BackendConfig{
		MaxNetworkRetries: stripe.Int64(0),
		LeveledLogger:     &stripe.LeveledLogger{Level: stripe.LevelError},
	}
	if url != "" {
		cfg.URL = stripe.String(url)
	}
	return stripe.GetBackendWithConfig(stripe.APIBackend, cfg)
}

func (s *Stripe) CreateIntent(ctx context.Context, amount int64, currency string) (Intent, error) {
	if amount <= 0 {
		return Intent{}, ErrInvalidAmount
	}

	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amount),
		Currency:           stripe.String(currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx

	pi, err := s.api.PaymentIntents.New(params)
	if err != nil {
		return Intent{}, fmt.Errorf("payment: stripe create intent: %w", err)
	}
	return Intent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Amount:       pi.Amount,
		Currency:     string(pi.Currency),
	}, nil
}
