package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/akil18/cop-shop-server-side/pkg/logger"
)

// Mongo is the MongoDB-backed Gateway.
type Mongo struct {
	client       *mongo.Client
	db           *mongo.Database
	transactions bool
}

// NewMongo connects, pings and selects opts.Database.
func NewMongo(ctx context.Context, opts Options) (*Mongo, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions(opts))
	if err != nil {
		return nil, fmt.Errorf("store: mongo connect: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("store: mongo ping: %w", err)
	}

	return &Mongo{
		client:       client,
		db:           client.Database(opts.Database),
		transactions: opts.Transactions,
	}, nil
}

func clientOptions(opts Options) *options.ClientOptions {
	co := options.Client().ApplyURI(opts.URI).
		SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1)).
		SetConnectTimeout(5 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		// Nested documents in Attributes decode as maps, not ordered pairs.
		SetBSONOptions(&options.BSONOptions{DefaultDocumentM: true})
	if opts.MaxPoolSize > 0 {
		co.SetMaxPoolSize(opts.MaxPoolSize)
	}
	return co
}

// Client exposes the underlying driver client (used by the log sink).
func (m *Mongo) Client() *mongo.Client { return m.client }

func (m *Mongo) Collection(name string) Collection {
	return &mongoCollection{name: name, col: m.db.Collection(name)}
}

func (m *Mongo) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if !m.transactions {
		return fn(ctx)
	}

	session, err := m.client.StartSession()
	if err != nil {
		return fmt.Errorf("store: start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		if err := fn(sc); err != nil {
			logger.WithCtx(ctx).Warn("store: transaction aborted", "error", err)
			return nil, err
		}
		return nil, nil
	})
	return err
}

func (m *Mongo) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, nil)
}

func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

// ─── Collection ──────────────────────────────────────────────────────────────

type mongoCollection struct {
	name string
	col  *mongo.Collection
}

func (c *mongoCollection) Name() string { return c.name }

func (c *mongoCollection) fail(ctx context.Context, op string, err error) error {
	logger.WithCtx(ctx).Error("store: operation failed",
		"collection", c.name, "operation", op, "error", err)
	return fmt.Errorf("store: %s %s: %w", c.name, op, err)
}

func (c *mongoCollection) FindOne(ctx context.Context, filter Filter, dest any) error {
	err := c.col.FindOne(ctx, filterDoc(filter)).Decode(dest)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	if err != nil {
		return c.fail(ctx, "find_one", err)
	}
	return nil
}

func (c *mongoCollection) Find(ctx context.Context, filter Filter, dest any) error {
	cursor, err := c.col.Find(ctx, filterDoc(filter))
	if err != nil {
		return c.fail(ctx, "find", err)
	}

	if err := cursor.All(ctx, dest); err != nil {
		return c.fail(ctx, "find", err)
	}
	return nil
}

func (c *mongoCollection) InsertOne(ctx context.Context, doc any) (InsertResult, error) {
	res, err := c.col.InsertOne(ctx, doc)
	if err != nil {
		return InsertResult{}, c.fail(ctx, "insert_one", err)
	}
	return InsertResult{Acknowledged: true, InsertedID: res.InsertedID}, nil
}

func (c *mongoCollection) UpdateOne(ctx context.Context, filter Filter, patch Patch, upsert bool) (UpdateResult, error) {
	res, err := c.col.UpdateOne(ctx, filterDoc(filter), updateDoc(patch), options.Update().SetUpsert(upsert))
	if err != nil {
		return UpdateResult{}, c.fail(ctx, "update_one", err)
	}
	return UpdateResult{
		Acknowledged:  true,
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
		UpsertedCount: res.UpsertedCount,
		UpsertedID:    res.UpsertedID,
	}, nil
}

func (c *mongoCollection) DeleteOne(ctx context.Context, filter Filter) (DeleteResult, error) {
	res, err := c.col.DeleteOne(ctx, filterDoc(filter))
	if err != nil {
		return DeleteResult{}, c.fail(ctx, "delete_one", err)
	}
	return DeleteResult{Acknowledged: true, DeletedCount: res.DeletedCount}, nil
}

// filterDoc never returns nil; the driver rejects a nil filter.
func filterDoc(f Filter) bson.M {
	if f == nil {
		return bson.M{}
	}
	return bson.M(f)
}

func updateDoc(p Patch) bson.M {
	set := bson.M{}
	for k, v := range p {
		set[k] = v
	}
	return bson.M{"$set": set}
}
