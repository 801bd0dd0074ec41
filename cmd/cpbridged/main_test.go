package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

// run must not return until the keepalive pinger has observed cancellation;
// otherwise the process exits with the goroutine mid-flight.
func TestRun_JoinsKeepaliveOnShutdown(t *testing.T) {
	ping := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	defer ping.Close()

	t.Setenv("AUTH_TOKEN", "secret")
	t.Setenv("CLIST_API_KEY", "testkey")
	t.Setenv("PORT", "0")
	t.Setenv("KEEPALIVE_URL", ping.URL)

	before := goleak.IgnoreCurrent()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- run(ctx, slog.New(slog.NewTextHandler(io.Discard, nil)))
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("run did not return after cancellation")
	}
	goleak.VerifyNone(t, before)
}
