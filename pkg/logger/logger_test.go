package logger_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/akil18/cop-shop-server-side/pkg/logger"
)

type fakeInserter struct {
	mu   sync.Mutex
	docs []logger.LogDocument
}

func (f *fakeInserter) InsertMany(_ context.Context, documents []interface{}, _ ...*options.InsertManyOptions) (*mongo.InsertManyResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, d := range documents {
		f.docs = append(f.docs, d.(logger.LogDocument))
	}
	return &mongo.InsertManyResult{}, nil
}

func TestWithCtxFallsBackToBase(t *testing.T) {
	assert.Same(t, logger.L, logger.WithCtx(context.Background()))

	var buf bytes.Buffer
	reqLog := slog.New(slog.NewTextHandler(&buf, nil)).With("request_id", "abc")
	ctx := logger.InjectLogger(context.Background(), reqLog)

	logger.WithCtx(ctx).Info("hello")
	assert.Contains(t, buf.String(), "request_id=abc")
}

func TestNewHandlerFormatByEnv(t *testing.T) {
	var buf bytes.Buffer
	slog.New(logger.NewHandler("production", &buf)).Info("x", "k", "v")
	assert.Contains(t, buf.String(), `"k":"v"`)

	buf.Reset()
	slog.New(logger.NewHandler("local", &buf)).Debug("y")
	assert.Contains(t, buf.String(), "level=DEBUG")
}

func TestMongoHandlerFlushesOnClose(t *testing.T) {
	sink := &fakeInserter{}
	h := logger.NewMongoHandler(sink, slog.LevelInfo)

	log := slog.New(h).With("request_id", "r-1")
	log.Debug("dropped by level")
	log.WithGroup("store").Error("operation failed", "collection", "orders", "error", errors.New("timeout"))
	h.Close()
	h.Close()

	sink.mu.Lock()
	defer sink.mu.Unlock()
	require.Len(t, sink.docs, 1)
	doc := sink.docs[0]
	assert.Equal(t, "ERROR", doc.Level)
	assert.Equal(t, "r-1", doc.RequestID)
	assert.Equal(t, "orders", doc.Attrs["store.collection"])
	assert.Equal(t, "timeout", doc.Attrs["store.error"])
}

func TestMultiHandlerFansOut(t *testing.T) {
	var a, b bytes.Buffer
	h := logger.NewMultiHandler(
		slog.NewTextHandler(&a, nil),
		slog.NewJSONHandler(&b, nil),
	)
	slog.New(h).Info("both")

	assert.Contains(t, a.String(), "msg=both")
	assert.Contains(t, b.String(), `"msg":"both"`)
}
