package services

import (
	"context"

	"github.com/akil18/cop-shop-server-side/app/models"
	"github.com/akil18/cop-shop-server-side/app/repositories"
	"github.com/akil18/cop-shop-server-side/pkg/apperr"
	"github.com/akil18/cop-shop-server-side/pkg/store"
)

// ErrOrderExists is returned when the buyer already ordered the listing.
var ErrOrderExists = apperr.Conflict("Order already exists")

type OrderService struct {
	orders *repositories.OrderRepository
}

func NewOrderService(orders *repositories.OrderRepository) *OrderService {
	return &OrderService{orders: orders}
}

// Place inserts o unless the buyer already has an order with the same
// title. The check and the insert are separate calls, so two concurrent
// requests can both succeed.
func (s *OrderService) Place(ctx context.Context, o models.Order) (store.InsertResult, error) {
	existing, err := s.orders.FindByBuyerAndTitle(ctx, o.BuyerEmail, o.Title)
	if err != nil {
		return store.InsertResult{}, err
	}
	if existing != nil {
		return store.InsertResult{}, ErrOrderExists
	}
	return s.orders.Create(ctx, o)
}
