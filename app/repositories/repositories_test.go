package repositories_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/akil18/cop-shop-server-side/app/models"
	"github.com/akil18/cop-shop-server-side/app/repositories"
	"github.com/akil18/cop-shop-server-side/pkg/apperr"
	"github.com/akil18/cop-shop-server-side/pkg/cache"
	"github.com/akil18/cop-shop-server-side/pkg/store"
)

func TestCategoryListIsCached(t *testing.T) {
	ctx := context.Background()
	gw := store.NewMemory()
	repo := repositories.NewCategoryRepository(gw, cache.NewMemory(), time.Minute)

	_, err := repo.Create(ctx, models.Category{Name: "Phones"})
	require.NoError(t, err)

	first, err := repo.All(ctx)
	require.NoError(t, err)
	require.Len(t, first, 1)

	// A write that bypasses the repository is not seen until invalidation.
	_, err = gw.Collection(store.Categories).InsertOne(ctx, models.Category{Name: "Laptops"})
	require.NoError(t, err)

	cached, err := repo.All(ctx)
	require.NoError(t, err)
	assert.Len(t, cached, 1)
	assert.Equal(t, first[0].ID, cached[0].ID)

	repo.Invalidate(ctx)
	fresh, err := repo.All(ctx)
	require.NoError(t, err)
	assert.Len(t, fresh, 2)
}

func TestCategoryListWithoutCache(t *testing.T) {
	repo := repositories.NewCategoryRepository(store.NewMemory(), nil, 0)

	all, err := repo.All(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, all)
	assert.Empty(t, all)
}

func TestFlagUpdatesNeverCreate(t *testing.T) {
	ctx := context.Background()
	gw := store.NewMemory()
	products := repositories.NewProductRepository(gw)
	users := repositories.NewUserRepository(gw)

	_, err := products.Advertise(ctx, primitive.NewObjectID())
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))

	_, err = users.Verify(ctx, primitive.NewObjectID())
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))

	assert.Equal(t, 0, gw.Len(store.Products))
	assert.Equal(t, 0, gw.Len(store.Users))
}

func TestProductQueries(t *testing.T) {
	ctx := context.Background()
	gw := store.NewMemory()
	products := repositories.NewProductRepository(gw)

	res, err := products.Create(ctx, models.Product{Title: "Pixel", Category: "phones", Email: "s@shop.test"})
	require.NoError(t, err)
	_, err = products.Create(ctx, models.Product{Title: "Orphan", Category: "phones"})
	require.NoError(t, err)

	id := res.InsertedID.(primitive.ObjectID)
	_, err = products.Advertise(ctx, id)
	require.NoError(t, err)
	_, err = products.Report(ctx, id)
	require.NoError(t, err)

	advertised, err := products.Advertised(ctx)
	require.NoError(t, err)
	require.Len(t, advertised, 1)
	assert.Equal(t, "Pixel", advertised[0].Title)

	email := "s@shop.test"
	bySeller, err := products.BySeller(ctx, &email)
	require.NoError(t, err)
	assert.Len(t, bySeller, 1)

	noEmail, err := products.BySeller(ctx, nil)
	require.NoError(t, err)
	require.Len(t, noEmail, 1)
	assert.Equal(t, "Orphan", noEmail[0].Title)

	_, err = products.MarkSold(ctx, id)
	require.NoError(t, err)
	p, err := products.Find(ctx, id)
	require.NoError(t, err)
	assert.True(t, p.Sold)
	assert.False(t, p.Advertise)
	assert.True(t, p.Report)
}

func TestFindUnknownReturnsNil(t *testing.T) {
	ctx := context.Background()
	gw := store.NewMemory()

	u, err := repositories.NewUserRepository(gw).FindByEmail(ctx, "ghost@shop.test")
	require.NoError(t, err)
	assert.Nil(t, u)

	o, err := repositories.NewOrderRepository(gw).Find(ctx, primitive.NewObjectID())
	require.NoError(t, err)
	assert.Nil(t, o)
}
