// Package store is the data store gateway: named document collections with
// find/insert/update/delete primitives keyed by field-equality filters.
//
// Two drivers implement Gateway:
//
//	mongo   → MongoDB (production)
//	memory  → process-local maps (tests, local development)
//
// Build one with Open and release it with Close.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/akil18/cop-shop-server-side/pkg/metrics"
)

// Collection names.
const (
	Categories = "categories"
	Products   = "products"
	Users      = "users"
	Orders     = "orders"
	Payments   = "payments"
)

// ErrNotFound is returned by FindOne when no document matches.
var ErrNotFound = errors.New("store: document not found")

// Filter selects documents by field equality. An empty filter matches all.
type Filter map[string]any

// Patch assigns fields on matched documents ($set semantics).
type Patch map[string]any

// InsertResult mirrors the driver's insertOne acknowledgement.
type InsertResult struct {
	Acknowledged bool `json:"acknowledged"`
	InsertedID   any  `json:"insertedId"`
}

// UpdateResult mirrors the driver's updateOne acknowledgement.
type UpdateResult struct {
	Acknowledged  bool  `json:"acknowledged"`
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
	UpsertedCount int64 `json:"upsertedCount"`
	UpsertedID    any   `json:"upsertedId"`
}

// DeleteResult mirrors the driver's deleteOne acknowledgement.
type DeleteResult struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}

// Collection is one named set of documents.
type Collection interface {
	Name() string
	// FindOne decodes the first match into dest or returns ErrNotFound.
	FindOne(ctx context.Context, filter Filter, dest any) error
	// Find decodes every match into dest, which must point to a slice.
	Find(ctx context.Context, filter Filter, dest any) error
	InsertOne(ctx context.Context, doc any) (InsertResult, error)
	UpdateOne(ctx context.Context, filter Filter, patch Patch, upsert bool) (UpdateResult, error)
	DeleteOne(ctx context.Context, filter Filter) (DeleteResult, error)
}

// Gateway owns the connection and hands out collections.
type Gateway interface {
	Collection(name string) Collection
	// WithTransaction runs fn so that its mutations apply together or not
	// at all. fn must use the ctx it is given.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// Options configures Open.
type Options struct {
	Driver       string // "mongo" | "memory"
	URI          string
	Database     string
	MaxPoolSize  uint64
	Transactions bool
}

// Open builds the gateway for opts.Driver.
func Open(ctx context.Context, opts Options) (Gateway, error) {
	var (
		gw  Gateway
		err error
	)
	switch opts.Driver {
	case "memory":
		gw = NewMemory()
	case "mongo", "":
		gw, err = NewMongo(ctx, opts)
	default:
		return nil, fmt.Errorf("store: unsupported driver %q (supported: mongo, memory)", opts.Driver)
	}
	if err != nil {
		return nil, err
	}
	return Instrument(gw), nil
}

// ParseID converts a hex string into an ObjectID.
func ParseID(hex string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("store: invalid id %q: %w", hex, err)
	}
	return id, nil
}

// ByID is the filter for a document's _id.
func ByID(id primitive.ObjectID) Filter {
	return Filter{"_id": id}
}

// ─── Instrumentation ─────────────────────────────────────────────────────────

// Instrument wraps gw so every collection call is timed in
// metrics.StoreOperationDuration.
func Instrument(gw Gateway) Gateway {
	if _, ok := gw.(*instrumented); ok {
		return gw
	}
	return &instrumented{Gateway: gw}
}

type instrumented struct {
	Gateway
}

func (i *instrumented) Collection(name string) Collection {
	return &timedCollection{Collection: i.Gateway.Collection(name)}
}

type timedCollection struct {
	Collection
}

func (c *timedCollection) observe(op string, start time.Time) {
	metrics.ObserveStoreOperation(c.Name(), op, start)
}

func (c *timedCollection) FindOne(ctx context.Context, filter Filter, dest any) error {
	defer c.observe("find_one", time.Now())
	return c.Collection.FindOne(ctx, filter, dest)
}

func (c *timedCollection) Find(ctx context.Context, filter Filter, dest any) error {
	defer c.observe("find", time.Now())
	return c.Collection.Find(ctx, filter, dest)
}

func (c *timedCollection) InsertOne(ctx context.Context, doc any) (InsertResult, error) {
	defer c.observe("insert_one", time.Now())
	return c.Collection.InsertOne(ctx, doc)
}

func (c *timedCollection) UpdateOne(ctx context.Context, filter Filter, patch Patch, upsert bool) (UpdateResult, error) {
	defer c.observe("update_one", time.Now())
	return c.Collection.UpdateOne(ctx, filter, patch, upsert)
}

func (c *timedCollection) DeleteOne(ctx context.Context, filter Filter) (DeleteResult, error) {
	defer c.observe("delete_one", time.Now())
	return c.Collection.DeleteOne(ctx, filter)
}
