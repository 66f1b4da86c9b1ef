// Package repositories turns each collection's queries into named methods
// over store.Collection.
package repositories

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/akil18/cop-shop-server-side/pkg/apperr"
	"github.com/akil18/cop-shop-server-side/pkg/store"
)

// findOne decodes the first match into dest. An absent document is not an
// error: it returns false.
func findOne(ctx context.Context, col store.Collection, filter store.Filter, dest any) (bool, error) {
	err := col.FindOne(ctx, filter, dest)
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, apperr.Wrap(err, apperr.KindInternal, "find "+col.Name())
	}
	return true, nil
}

func find[T any](ctx context.Context, col store.Collection, filter store.Filter) ([]T, error) {
	out := make([]T, 0)
	if err := col.Find(ctx, filter, &out); err != nil {
		return nil, apperr.Wrap(err, apperr.KindInternal, "list "+col.Name())
	}
	return out, nil
}

func insert(ctx context.Context, col store.Collection, doc any) (store.InsertResult, error) {
	res, err := col.InsertOne(ctx, doc)
	if err != nil {
		return store.InsertResult{}, apperr.Wrap(err, apperr.KindInternal, "insert "+col.Name())
	}
	return res, nil
}

// setFlags updates an existing document and fails with NotFound when id
// matches nothing. It never creates a document.
func setFlags(ctx context.Context, col store.Collection, id primitive.ObjectID, patch store.Patch, missing string) (store.UpdateResult, error) {
	res, err := col.UpdateOne(ctx, store.ByID(id), patch, false)
	if err != nil {
		return store.UpdateResult{}, apperr.Wrap(err, apperr.KindInternal, "update "+col.Name())
	}
	if res.MatchedCount == 0 {
		return res, apperr.NotFound(missing)
	}
	return res, nil
}

func remove(ctx context.Context, col store.Collection, id primitive.ObjectID) (store.DeleteResult, error) {
	res, err := col.DeleteOne(ctx, store.ByID(id))
	if err != nil {
		return store.DeleteResult{}, apperr.Wrap(err, apperr.KindInternal, "delete "+col.Name())
	}
	return res, nil
}
