package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/akil18/cop-shop-server-side/app/models"
	"github.com/akil18/cop-shop-server-side/pkg/store"
)

// UserRepository handles store operations for User.
type UserRepository struct {
	col store.Collection
}

func NewUserRepository(gw store.Gateway) *UserRepository {
	return &UserRepository{col: gw.Collection(store.Users)}
}

// FindByEmail returns nil when no user has email.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	ok, err := findOne(ctx, r.col, store.Filter{"email": email}, &u)
	if err != nil || !ok {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) ByRole(ctx context.Context, role string) ([]models.User, error) {
	return find[models.User](ctx, r.col, store.Filter{"role": role})
}

func (r *UserRepository) Create(ctx context.Context, u models.User) (store.InsertResult, error) {
	return insert(ctx, r.col, u)
}

func (r *UserRepository) Verify(ctx context.Context, id primitive.ObjectID) (store.UpdateResult, error) {
	return setFlags(ctx, r.col, id, store.Patch{"verifiedUser": true}, "user not found")
}

func (r *UserRepository) Delete(ctx context.Context, id primitive.ObjectID) (store.DeleteResult, error) {
	return remove(ctx, r.col, id)
}
