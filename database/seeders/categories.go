package seeders

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/akil18/cop-shop-server-side/app/models"
	"github.com/akil18/cop-shop-server-side/app/repositories"
	"github.com/akil18/cop-shop-server-side/pkg/cache"
	"github.com/akil18/cop-shop-server-side/pkg/logger"
	"github.com/akil18/cop-shop-server-side/pkg/store"
)

// Categories seeds the category documents listed in the JSON array at path.
// Categories whose name is already stored are skipped. Pass the cache the
// server reads through so the cached list is dropped; with the memory
// driver that cache lives in the server process and a separate seed run
// cannot reach it, so the server sees new categories once ttl expires.
func Categories(path string, c cache.Cache, ttl time.Duration) Seeder {
	return Seeder{
		Name: "categories",
		Fn: func(ctx context.Context, gw store.Gateway) error {
			f, err := os.Open(path)
			if err != nil {
				return err
			}
			defer f.Close()

			n, err := LoadCategories(ctx, repositories.NewCategoryRepository(gw, c, ttl), f)
			if err != nil {
				return err
			}
			logger.Info("categories seeded", "file", path, "inserted", n)
			return nil
		},
	}
}

// LoadCategories decodes a JSON array of categories from r and inserts the
// ones not yet present. It returns how many were inserted.
func LoadCategories(ctx context.Context, repo *repositories.CategoryRepository, r io.Reader) (int, error) {
	var docs []models.Category
	if err := json.NewDecoder(r).Decode(&docs); err != nil {
		return 0, fmt.Errorf("decode categories: %w", err)
	}

	// The dedupe read must see the store, not a stale cached list.
	repo.Invalidate(ctx)
	existing, err := repo.All(ctx)
	if err != nil {
		return 0, err
	}
	seen := make(map[string]bool, len(existing))
	for _, c := range existing {
		seen[c.Name] = true
	}

	inserted := 0
	for i, c := range docs {
		if c.Name == "" {
			return inserted, fmt.Errorf("category %d: name is required", i)
		}
		if seen[c.Name] {
			continue
		}
		if _, err := repo.Create(ctx, c); err != nil {
			return inserted, err
		}
		seen[c.Name] = true
		inserted++
	}
	return inserted, nil
}
