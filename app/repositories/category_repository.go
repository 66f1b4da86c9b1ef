package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/akil18/cop-shop-server-side/app/models"
	"github.com/akil18/cop-shop-server-side/pkg/cache"
	"github.com/akil18/cop-shop-server-side/pkg/logger"
	"github.com/akil18/cop-shop-server-side/pkg/store"
)

const categoriesCacheKey = "copshop:categories:all"

// CategoryRepository reads categories. The full list is cached because it
// changes only when seed data is loaded.
type CategoryRepository struct {
	col   store.Collection
	cache cache.Cache
	ttl   time.Duration
}

// NewCategoryRepository builds the repository. A nil cache disables caching.
func NewCategoryRepository(gw store.Gateway, c cache.Cache, ttl time.Duration) *CategoryRepository {
	return &CategoryRepository{col: gw.Collection(store.Categories), cache: c, ttl: ttl}
}

func (r *CategoryRepository) All(ctx context.Context) ([]models.Category, error) {
	var cached []models.Category
	if r.cache != nil && r.cache.Get(ctx, categoriesCacheKey, &cached) {
		return cached, nil
	}

	categories, err := find[models.Category](ctx, r.col, store.Filter{})
	if err != nil {
		return nil, err
	}
	if r.cache != nil {
		if err := r.cache.Set(ctx, categoriesCacheKey, categories, r.ttl); err != nil {
			logger.WithCtx(ctx).Warn("categories: cache set failed", "error", err)
		}
	}
	return categories, nil
}

// Find returns nil when id matches nothing.
func (r *CategoryRepository) Find(ctx context.Context, id primitive.ObjectID) (*models.Category, error) {
	var c models.Category
	ok, err := findOne(ctx, r.col, store.ByID(id), &c)
	if err != nil || !ok {
		return nil, err
	}
	return &c, nil
}

// Create inserts a category and drops the cached list.
func (r *CategoryRepository) Create(ctx context.Context, c models.Category) (store.InsertResult, error) {
	res, err := insert(ctx, r.col, c)
	if err != nil {
		return res, err
	}
	r.Invalidate(ctx)
	return res, nil
}

func (r *CategoryRepository) Invalidate(ctx context.Context) {
	if r.cache == nil {
		return
	}
	if err := r.cache.Del(ctx, categoriesCacheKey); err != nil {
		logger.WithCtx(ctx).Warn("categories: cache invalidate failed", "error", err)
	}
}
