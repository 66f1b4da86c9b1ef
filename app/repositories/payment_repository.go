package repositories

import (
	"context"

	"github.com/akil18/cop-shop-server-side/app/models"
	"github.com/akil18/cop-shop-server-side/pkg/store"
)

type PaymentRepository struct {
	col store.Collection
}

func NewPaymentRepository(gw store.Gateway) *PaymentRepository {
	return &PaymentRepository{col: gw.Collection(store.Payments)}
}

func (r *PaymentRepository) Create(ctx context.Context, p models.Payment) (store.InsertResult, error) {
	return insert(ctx, r.col, p)
}
