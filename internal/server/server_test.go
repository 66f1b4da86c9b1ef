package server_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akil18/cop-shop-server-side/internal/server"
)

func TestServeStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	srv := &http.Server{Addr: "127.0.0.1:0", Handler: http.NotFoundHandler()}

	done := make(chan error, 1)
	go func() { done <- server.Serve(ctx, srv) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(server.ShutdownTimeout):
		t.Fatal("server did not shut down")
	}
}

func TestServeReturnsListenError(t *testing.T) {
	srv := &http.Server{Addr: "127.0.0.1:-1", Handler: http.NotFoundHandler()}
	err := server.Serve(context.Background(), srv)
	require.Error(t, err)
}
