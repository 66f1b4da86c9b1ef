// Package app wires the copshop application: configuration, logging, the
// document store, the cache, the token signer and the payment processor.
//
//	a, err := app.Boot(ctx)
//	if err != nil { ... }
//	defer a.Close(context.Background())
//	http.ListenAndServe(":"+config.AppPort(), a.Handler())
//
// Tests build an Application from their own collaborators with New.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/akil18/cop-shop-server-side/config"
	"github.com/akil18/cop-shop-server-side/pkg/auth"
	"github.com/akil18/cop-shop-server-side/pkg/cache"
	"github.com/akil18/cop-shop-server-side/pkg/logger"
	"github.com/akil18/cop-shop-server-side/pkg/payment"
	"github.com/akil18/cop-shop-server-side/pkg/store"
)

const logsCollection = "logs"

// Application holds the long-lived collaborators shared by every request.
type Application struct {
	Store     store.Gateway
	Cache     cache.Cache
	Signer    *auth.Signer
	Processor payment.Processor

	closers []func(context.Context) error
}

// New assembles an Application from already-built parts. The caller keeps
// ownership of them; Close is a no-op.
func New(gw store.Gateway, c cache.Cache, signer *auth.Signer, p payment.Processor) *Application {
	return &Application{Store: gw, Cache: c, Signer: signer, Processor: p}
}

// Boot loads config and opens every backend it names.
func Boot(ctx context.Context) (*Application, error) {
	if err := config.Load(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	logger.Configure(config.AppEnv())

	a := &Application{}

	gw, err := a.openStore(ctx)
	if err != nil {
		return nil, err
	}
	a.Store = gw

	c, err := cache.New(ctx, cache.Options{
		Driver:        config.CacheDriver(),
		RedisAddr:     config.RedisAddr(),
		RedisPassword: config.RedisPassword(),
	})
	if err != nil {
		a.Close(ctx) //nolint:errcheck
		return nil, err
	}
	a.Cache = c
	if closer, ok := c.(io.Closer); ok {
		a.onClose(func(context.Context) error { return closer.Close() })
	}

	signer, err := auth.NewSigner(config.JWTSecret(), auth.DefaultTTL)
	if err != nil {
		a.Close(ctx) //nolint:errcheck
		return nil, err
	}
	a.Signer = signer

	key := config.StripeSecretKey()
	if key == "" {
		logger.Warn("STRIPE_SECRET_KEY is empty; payment intents will be rejected by the processor")
	}
	a.Processor = payment.NewBreaker(payment.NewStripe(key, nil), "stripe")

	logger.Info("application booted",
		"env", config.AppEnv(),
		"store", config.DatabaseDriver(),
		"cache", config.CacheDriver(),
	)
	return a, nil
}

// openStore connects the configured driver. With the mongo driver and
// LOG_TO_MONGO set, log records are also shipped to the logs collection.
func (a *Application) openStore(ctx context.Context) (store.Gateway, error) {
	opts := store.Options{
		Driver:       config.DatabaseDriver(),
		URI:          config.MongoURI(),
		Database:     config.DatabaseName(),
		MaxPoolSize:  config.DatabaseMaxPool(),
		Transactions: config.DatabaseTransactions(),
	}
	if opts.Driver != "mongo" || !config.LogToMongo() {
		gw, err := store.Open(ctx, opts)
		if err != nil {
			return nil, err
		}
		a.onClose(gw.Close)
		return gw, nil
	}

	m, err := store.NewMongo(ctx, opts)
	if err != nil {
		return nil, err
	}
	a.onClose(m.Close)

	col := m.Client().Database(opts.Database).Collection(logsCollection)
	if err := logger.EnsureIndexes(ctx, col); err != nil {
		logger.Warn("log index creation failed", "error", err)
	}
	sink := logger.NewMongoHandler(col, slog.LevelInfo)
	logger.Configure(config.AppEnv(), sink)
	// Registered after the client so it flushes before disconnect.
	a.onClose(func(context.Context) error {
		logger.Configure(config.AppEnv())
		sink.Close()
		return nil
	})

	return store.Instrument(m), nil
}

func (a *Application) onClose(fn func(context.Context) error) {
	a.closers = append(a.closers, fn)
}

// Close releases backends in reverse order of opening.
func (a *Application) Close(ctx context.Context) error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
