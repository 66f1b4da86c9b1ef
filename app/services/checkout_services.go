package services

import (
	"context"
	"errors"

	"github.com/akil18/cop-shop-server-side/app/models"
	"github.com/akil18/cop-shop-server-side/app/repositories"
	"github.com/akil18/cop-shop-server-side/pkg/apperr"
	"github.com/akil18/cop-shop-server-side/pkg/logger"
	"github.com/akil18/cop-shop-server-side/pkg/metrics"
	"github.com/akil18/cop-shop-server-side/pkg/payment"
	"github.com/akil18/cop-shop-server-side/pkg/store"
)

// CheckoutService starts card payments and records their settlement.
type CheckoutService struct {
	gw        store.Gateway
	payments  *repositories.PaymentRepository
	orders    *repositories.OrderRepository
	products  *repositories.ProductRepository
	processor payment.Processor
}

func NewCheckoutService(
	gw store.Gateway,
	payments *repositories.PaymentRepository,
	orders *repositories.OrderRepository,
	products *repositories.ProductRepository,
	processor payment.Processor,
) *CheckoutService {
	return &CheckoutService{gw: gw, payments: payments, orders: orders, products: products, processor: processor}
}

// CreateIntent asks the processor for a USD card intent of price dollars
// and returns its client secret.
func (s *CheckoutService) CreateIntent(ctx context.Context, price float64) (string, error) {
	amount, err := payment.AmountFromPrice(price)
	if err != nil {
		return "", apperr.BadRequest("price must be a positive number")
	}

	intent, err := s.processor.CreateIntent(ctx, amount, payment.CurrencyUSD)
	switch {
	case err == nil:
		return intent.ClientSecret, nil
	case errors.Is(err, payment.ErrInvalidAmount):
		return "", apperr.BadRequest("price must be a positive number")
	case errors.Is(err, payment.ErrUnavailable):
		return "", apperr.Wrap(err, apperr.KindUnavailable, "payment processor unavailable")
	default:
		logger.WithCtx(ctx).Error("checkout: create intent failed", "error", err)
		return "", apperr.Wrap(err, apperr.KindBadGateway, "payment processor error")
	}
}

// Settle records p and, in the same transaction, marks its order paid and
// its product sold. A missing order or product aborts the whole settlement.
func (s *CheckoutService) Settle(ctx context.Context, p models.Payment) (store.InsertResult, error) {
	orderID, err := store.ParseID(p.OrderID)
	if err != nil {
		return store.InsertResult{}, apperr.BadRequest("invalid orderId")
	}
	productID, err := store.ParseID(p.ProductID)
	if err != nil {
		return store.InsertResult{}, apperr.BadRequest("invalid productId")
	}

	var res store.InsertResult
	err = s.gw.WithTransaction(ctx, func(ctx context.Context) error {
		var err error
		if res, err = s.payments.Create(ctx, p); err != nil {
			return err
		}
		if _, err = s.orders.MarkPaid(ctx, orderID, p.PaymentID); err != nil {
			return err
		}
		_, err = s.products.MarkSold(ctx, productID)
		return err
	})
	if err != nil {
		metrics.RecordSettlement("aborted")
		return store.InsertResult{}, err
	}

	metrics.RecordSettlement("committed")
	logger.WithCtx(ctx).Info("checkout: payment settled",
		"order_id", p.OrderID, "product_id", p.ProductID, "payment_id", p.PaymentID)
	return res, nil
}
