package store

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsonrw"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Memory is an in-process Gateway. Documents round-trip through BSON on the
// way in and out, so typed models encode and decode exactly as they would
// against MongoDB.
type Memory struct {
	mu   sync.RWMutex
	txMu sync.Mutex
	data map[string][]bson.M
}

// NewMemory returns an empty in-memory gateway.
func NewMemory() *Memory {
	return &Memory{data: make(map[string][]bson.M)}
}

func (m *Memory) Collection(name string) Collection {
	return &memoryCollection{name: name, m: m}
}

// WithTransaction serializes transactions. Writes made through the ctx
// handed to fn are journaled, and when fn fails they are undone newest
// first. Writes made outside the transaction are kept, except where they
// touched a document the transaction also wrote.
func (m *Memory) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.txMu.Lock()
	defer m.txMu.Unlock()

	tx := &memoryTx{owner: m}
	if err := fn(context.WithValue(ctx, memoryTxKey{}, tx)); err != nil {
		m.mu.Lock()
		tx.rollback()
		m.mu.Unlock()
		return err
	}
	return nil
}

func (m *Memory) Ping(context.Context) error  { return nil }
func (m *Memory) Close(context.Context) error { return nil }

// Len reports the number of documents in a collection.
func (m *Memory) Len(name string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data[name])
}

// ─── Transactions ────────────────────────────────────────────────────────────

type memoryTxKey struct{}

// undo reverts one write. before is nil for an insert; otherwise it is the
// document as it was, and at is where a deleted document sat.
type undo struct {
	collection string
	id         any
	before     bson.M
	at         int
	deleted    bool
}

type memoryTx struct {
	owner   *Memory
	journal []undo
}

// txFrom returns the transaction ctx belongs to on m, or nil.
func txFrom(ctx context.Context, m *Memory) *memoryTx {
	tx, _ := ctx.Value(memoryTxKey{}).(*memoryTx)
	if tx == nil || tx.owner != m {
		return nil
	}
	return tx
}

func (tx *memoryTx) record(u undo) {
	if tx != nil {
		tx.journal = append(tx.journal, u)
	}
}

// rollback must run with owner.mu held.
func (tx *memoryTx) rollback() {
	data := tx.owner.data
	for i := len(tx.journal) - 1; i >= 0; i-- {
		u := tx.journal[i]
		docs := data[u.collection]
		switch {
		case u.deleted:
			at := min(u.at, len(docs))
			docs = append(docs[:at], append([]bson.M{u.before}, docs[at:]...)...)
		case u.before == nil:
			if j := indexByID(docs, u.id); j >= 0 {
				docs = append(docs[:j:j], docs[j+1:]...)
			}
		default:
			if j := indexByID(docs, u.id); j >= 0 {
				docs[j] = u.before
			}
		}
		data[u.collection] = docs
	}
	tx.journal = nil
}

func indexByID(docs []bson.M, id any) int {
	for i, d := range docs {
		if reflect.DeepEqual(d["_id"], id) {
			return i
		}
	}
	return -1
}

// ─── Collection ──────────────────────────────────────────────────────────────

type memoryCollection struct {
	name string
	m    *Memory
}

func (c *memoryCollection) Name() string { return c.name }

func (c *memoryCollection) FindOne(_ context.Context, filter Filter, dest any) error {
	f, err := normalize(filter)
	if err != nil {
		return err
	}

	c.m.mu.RLock()
	defer c.m.mu.RUnlock()

	for _, doc := range c.m.data[c.name] {
		if matches(doc, f) {
			return decode(doc, dest)
		}
	}
	return ErrNotFound
}

func (c *memoryCollection) Find(_ context.Context, filter Filter, dest any) error {
	f, err := normalize(filter)
	if err != nil {
		return err
	}

	rv := reflect.ValueOf(dest)
	if rv.Kind() != reflect.Ptr || rv.Elem().Kind() != reflect.Slice {
		return fmt.Errorf("store: Find dest must be a pointer to a slice, got %T", dest)
	}
	slice := rv.Elem()
	elemType := slice.Type().Elem()
	out := reflect.MakeSlice(slice.Type(), 0, 0)

	c.m.mu.RLock()
	defer c.m.mu.RUnlock()

	for _, doc := range c.m.data[c.name] {
		if !matches(doc, f) {
			continue
		}
		item := reflect.New(elemType)
		if err := decode(doc, item.Interface()); err != nil {
			return err
		}
		out = reflect.Append(out, item.Elem())
	}
	slice.Set(out)
	return nil
}

func (c *memoryCollection) InsertOne(ctx context.Context, doc any) (InsertResult, error) {
	d, err := normalize(doc)
	if err != nil {
		return InsertResult{}, err
	}
	if _, ok := d["_id"]; !ok {
		d["_id"] = primitive.NewObjectID()
	}

	c.m.mu.Lock()
	defer c.m.mu.Unlock()

	for _, existing := range c.m.data[c.name] {
		if reflect.DeepEqual(existing["_id"], d["_id"]) {
			return InsertResult{}, fmt.Errorf("store: %s insert_one: duplicate key _id %v", c.name, d["_id"])
		}
	}
	c.m.data[c.name] = append(c.m.data[c.name], d)
	txFrom(ctx, c.m).record(undo{collection: c.name, id: d["_id"]})
	return InsertResult{Acknowledged: true, InsertedID: d["_id"]}, nil
}

func (c *memoryCollection) UpdateOne(ctx context.Context, filter Filter, patch Patch, upsert bool) (UpdateResult, error) {
	f, err := normalize(filter)
	if err != nil {
		return UpdateResult{}, err
	}
	p, err := normalize(patch)
	if err != nil {
		return UpdateResult{}, err
	}

	tx := txFrom(ctx, c.m)

	c.m.mu.Lock()
	defer c.m.mu.Unlock()

	for _, doc := range c.m.data[c.name] {
		if !matches(doc, f) {
			continue
		}
		if tx != nil {
			before, err := normalize(doc)
			if err != nil {
				return UpdateResult{}, err
			}
			tx.record(undo{collection: c.name, id: doc["_id"], before: before})
		}
		var modified int64
		for k, v := range p {
			if k == "_id" {
				continue
			}
			if old, ok := doc[k]; !ok || !reflect.DeepEqual(old, v) {
				doc[k] = v
				modified = 1
			}
		}
		return UpdateResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: modified}, nil
	}

	if !upsert {
		return UpdateResult{Acknowledged: true}, nil
	}

	created := bson.M{}
	for k, v := range f {
		created[k] = v
	}
	for k, v := range p {
		created[k] = v
	}
	if _, ok := created["_id"]; !ok {
		created["_id"] = primitive.NewObjectID()
	}
	c.m.data[c.name] = append(c.m.data[c.name], created)
	tx.record(undo{collection: c.name, id: created["_id"]})
	return UpdateResult{Acknowledged: true, UpsertedCount: 1, UpsertedID: created["_id"]}, nil
}

func (c *memoryCollection) DeleteOne(ctx context.Context, filter Filter) (DeleteResult, error) {
	f, err := normalize(filter)
	if err != nil {
		return DeleteResult{}, err
	}

	c.m.mu.Lock()
	defer c.m.mu.Unlock()

	docs := c.m.data[c.name]
	for i, doc := range docs {
		if matches(doc, f) {
			c.m.data[c.name] = append(docs[:i:i], docs[i+1:]...)
			txFrom(ctx, c.m).record(undo{collection: c.name, id: doc["_id"], before: doc, at: i, deleted: true})
			return DeleteResult{Acknowledged: true, DeletedCount: 1}, nil
		}
	}
	return DeleteResult{Acknowledged: true}, nil
}

// ─── BSON helpers ────────────────────────────────────────────────────────────

// normalize encodes v to BSON and back so values compare the way the
// server would see them (ints widened consistently, ObjectIDs preserved).
func normalize(v any) (bson.M, error) {
	if v == nil {
		return bson.M{}, nil
	}
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Map && rv.IsNil() {
		return bson.M{}, nil
	}

	raw, err := bson.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("store: encode: %w", err)
	}
	out := bson.M{}
	if err := decodeRaw(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func decode(doc bson.M, dest any) error {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return fmt.Errorf("store: encode: %w", err)
	}
	return decodeRaw(raw, dest)
}

func decodeRaw(raw []byte, dest any) error {
	dec, err := bson.NewDecoder(bsonrw.NewBSONDocumentReader(raw))
	if err != nil {
		return fmt.Errorf("store: decoder: %w", err)
	}
	dec.DefaultDocumentM()
	if err := dec.Decode(dest); err != nil {
		return fmt.Errorf("store: decode: %w", err)
	}
	return nil
}

// matches applies field-equality semantics. A nil filter value matches a
// missing field, as in MongoDB.
func matches(doc, filter bson.M) bool {
	for k, want := range filter {
		got, ok := doc[k]
		if !ok {
			if want != nil {
				return false
			}
			continue
		}
		if !reflect.DeepEqual(got, want) {
			return false
		}
	}
	return true
}
