package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/akil18/cop-shop-server-side/app/models"
	"github.com/akil18/cop-shop-server-side/pkg/store"
)

type ProductRepository struct {
	col store.Collection
}

func NewProductRepository(gw store.Gateway) *ProductRepository {
	return &ProductRepository{col: gw.Collection(store.Products)}
}

func (r *ProductRepository) ByCategory(ctx context.Context, category string) ([]models.Product, error) {
	return find[models.Product](ctx, r.col, store.Filter{"category": category})
}

func (r *ProductRepository) Advertised(ctx context.Context) ([]models.Product, error) {
	return find[models.Product](ctx, r.col, store.Filter{"advertise": true})
}

// BySeller lists a seller's products. A nil email matches products that
// have no email field.
func (r *ProductRepository) BySeller(ctx context.Context, email *string) ([]models.Product, error) {
	filter := store.Filter{"email": nil}
	if email != nil {
		filter["email"] = *email
	}
	return find[models.Product](ctx, r.col, filter)
}

func (r *ProductRepository) Reported(ctx context.Context) ([]models.Product, error) {
	return find[models.Product](ctx, r.col, store.Filter{"report": true})
}

func (r *ProductRepository) Find(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	var p models.Product
	ok, err := findOne(ctx, r.col, store.ByID(id), &p)
	if err != nil || !ok {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepository) Create(ctx context.Context, p models.Product) (store.InsertResult, error) {
	return insert(ctx, r.col, p)
}

func (r *ProductRepository) Advertise(ctx context.Context, id primitive.ObjectID) (store.UpdateResult, error) {
	return setFlags(ctx, r.col, id, store.Patch{"advertise": true}, "product not found")
}

func (r *ProductRepository) Report(ctx context.Context, id primitive.ObjectID) (store.UpdateResult, error) {
	return setFlags(ctx, r.col, id, store.Patch{"report": true}, "product not found")
}

// MarkSold takes a product off the storefront once it is paid for.
func (r *ProductRepository) MarkSold(ctx context.Context, id primitive.ObjectID) (store.UpdateResult, error) {
	return setFlags(ctx, r.col, id, store.Patch{"advertise": false, "sold": true}, "product not found")
}

func (r *ProductRepository) Delete(ctx context.Context, id primitive.ObjectID) (store.DeleteResult, error) {
	return remove(ctx, r.col, id)
}
