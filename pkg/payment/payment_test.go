package payment_test

import (
	"context"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akil18/cop-shop-server-side/pkg/payment"
)

func TestAmountFromPrice(t *testing.T) {
	cases := map[float64]int64{
		19.99: 1999,
		0.29:  29,
		10:    1000,
		4.5:   450,
	}
	for price, want := range cases {
		got, err := payment.AmountFromPrice(price)
		require.NoError(t, err, price)
		assert.Equal(t, want, got, price)
	}
}

func TestAmountFromPriceRejectsUnchargeable(t *testing.T) {
	for _, price := range []float64{0, -5, 0.004, math.NaN(), math.Inf(1), math.Inf(-1), 1e20, 9.3e16} {
		_, err := payment.AmountFromPrice(price)
		assert.ErrorIs(t, err, payment.ErrInvalidAmount, "%v", price)
	}

	got, err := payment.AmountFromPrice(9e16)
	require.NoError(t, err)
	assert.Equal(t, int64(9e18), got)
}

func stripeServer(t *testing.T, status int, body string) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "/v1/payment_intents", r.URL.Path)
		assert.Equal(t, "Bearer sk_test_123", r.Header.Get("Authorization"))
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "1999", r.PostForm.Get("amount"))
		assert.Equal(t, "usd", r.PostForm.Get("currency"))
		assert.Equal(t, "card", r.PostForm.Get("payment_method_types[0]"))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func TestStripeCreateIntent(t *testing.T) {
	srv, calls := stripeServer(t, http.StatusOK,
		`{"id":"pi_1","object":"payment_intent","client_secret":"pi_1_secret_x","amount":1999,"currency":"usd"}`)

	p := payment.NewStripe("sk_test_123", payment.NewBackend(srv.URL))
	intent, err := p.CreateIntent(context.Background(), 1999, payment.CurrencyUSD)
	require.NoError(t, err)

	assert.Equal(t, "pi_1", intent.ID)
	assert.Equal(t, "pi_1_secret_x", intent.ClientSecret)
	assert.Equal(t, int64(1999), intent.Amount)
	assert.Equal(t, int32(1), calls.Load())
}

func TestStripeErrorIsNotRetried(t *testing.T) {
	srv, calls := stripeServer(t, http.StatusInternalServerError,
		`{"error":{"type":"api_error","message":"upstream exploded"}}`)

	p := payment.NewStripe("sk_test_123", payment.NewBackend(srv.URL))
	_, err := p.CreateIntent(context.Background(), 1999, payment.CurrencyUSD)

	assert.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestStripeRejectsNonPositiveAmount(t *testing.T) {
	p := payment.NewStripe("sk_test_123", payment.NewBackend("http://127.0.0.1:1"))
	_, err := p.CreateIntent(context.Background(), 0, payment.CurrencyUSD)
	assert.ErrorIs(t, err, payment.ErrInvalidAmount)
}

type flakyProcessor struct {
	calls int
	err   error
}

func (f *flakyProcessor) CreateIntent(_ context.Context, amount int64, currency string) (payment.Intent, error) {
	f.calls++
	if f.err != nil {
		return payment.Intent{}, f.err
	}
	return payment.Intent{ID: "pi", ClientSecret: "secret", Amount: amount, Currency: currency}, nil
}

func TestBreakerTripsAfterFailures(t *testing.T) {
	inner := &flakyProcessor{err: errors.New("timeout")}
	b := payment.NewBreaker(inner, "test")

	for i := 0; i < 3; i++ {
		_, err := b.CreateIntent(context.Background(), 100, payment.CurrencyUSD)
		require.Error(t, err)
		assert.NotErrorIs(t, err, payment.ErrUnavailable)
	}
	assert.Equal(t, "open", b.State())

	_, err := b.CreateIntent(context.Background(), 100, payment.CurrencyUSD)
	assert.ErrorIs(t, err, payment.ErrUnavailable)
	assert.Equal(t, 3, inner.calls, "open breaker does not reach the processor")
}

func TestBreakerIgnoresCallerErrors(t *testing.T) {
	inner := &flakyProcessor{err: payment.ErrInvalidAmount}
	b := payment.NewBreaker(inner, "test")

	for i := 0; i < 5; i++ {
		_, err := b.CreateIntent(context.Background(), 0, payment.CurrencyUSD)
		assert.ErrorIs(t, err, payment.ErrInvalidAmount)
	}
	assert.Equal(t, "closed", b.State())
}

func TestBreakerPassesThrough(t *testing.T) {
	b := payment.NewBreaker(&flakyProcessor{}, "test")

	intent, err := b.CreateIntent(context.Background(), 2500, payment.CurrencyUSD)
	require.NoError(t, err)
	assert.Equal(t, "secret", intent.ClientSecret)
	assert.Equal(t, int64(2500), intent.Amount)
}
