package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/akil18/cop-shop-server-side/app/models"
	"github.com/akil18/cop-shop-server-side/pkg/store"
)

type OrderRepository struct {
	col store.Collection
}

func NewOrderRepository(gw store.Gateway) *OrderRepository {
	return &OrderRepository{col: gw.Collection(store.Orders)}
}

// FindByBuyerAndTitle looks up the order a buyer already placed for a
// listing, or nil.
func (r *OrderRepository) FindByBuyerAndTitle(ctx context.Context, buyerEmail, title string) (*models.Order, error) {
	var o models.Order
	ok, err := findOne(ctx, r.col, store.Filter{"buyerEmail": buyerEmail, "title": title}, &o)
	if err != nil || !ok {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) ByBuyer(ctx context.Context, email string) ([]models.Order, error) {
	return find[models.Order](ctx, r.col, store.Filter{"buyerEmail": email})
}

func (r *OrderRepository) Find(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	var o models.Order
	ok, err := findOne(ctx, r.col, store.ByID(id), &o)
	if err != nil || !ok {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) Create(ctx context.Context, o models.Order) (store.InsertResult, error) {
	return insert(ctx, r.col, o)
}

func (r *OrderRepository) MarkPaid(ctx context.Context, id primitive.ObjectID, paymentID string) (store.UpdateResult, error) {
	return setFlags(ctx, r.col, id, store.Patch{"paid": true, "paymentId": paymentID}, "order not found")
}
