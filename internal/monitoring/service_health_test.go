package monitoring

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/spacesedan/sentiview/internal/clients"
)

type stubSession struct{}

func (stubSession) HTTPClient(ctx context.Context) (*http.Client, error) { return &http.Client{}, nil }
func (stubSession) Invalidate()                                          {}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not reached in time")
}

func TestMonitorServiceHealth(t *testing.T) {
	t.Run("flips the flag down when the service fails", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		healthy := &atomic.Bool{}
		healthy.Store(true)

		client := clients.NewSentimentClient(srv.URL, stubSession{}, 0)
		go MonitorServiceHealth(ctx, 20*time.Millisecond, client, healthy)

		waitFor(t, func() bool { return !healthy.Load() })
	})

	t.Run("flips the flag back up on recovery", func(t *testing.T) {
		var failing atomic.Bool
		failing.Store(true)

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if failing.Load() {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			w.Write([]byte(`{"status":"ok"}`))
		}))
		defer srv.Close()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		healthy := &atomic.Bool{}
		healthy.Store(true)

		client := clients.NewSentimentClient(srv.URL, stubSession{}, 0)
		go MonitorServiceHealth(ctx, 20*time.Millisecond, client, healthy)

		waitFor(t, func() bool { return !healthy.Load() })
		failing.Store(false)
		waitFor(t, func() bool { return healthy.Load() })
	})

	t.Run("unreachable service never propagates", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		healthy := &atomic.Bool{}
		healthy.Store(true)

		client := clients.NewSentimentClient(srv.URL, stubSession{}, 0)
		go MonitorServiceHealth(ctx, 20*time.Millisecond, client, healthy)

		waitFor(t, func() bool { return !healthy.Load() })
		assert.False(t, healthy.Load())
	})

	t.Run("stops on context cancel", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{}`))
		}))
		defer srv.Close()

		ctx, cancel := context.WithCancel(context.Background())
		healthy := &atomic.Bool{}

		done := make(chan struct{})
		client := clients.NewSentimentClient(srv.URL, stubSession{}, 0)
		go func() {
			MonitorServiceHealth(ctx, 20*time.Millisecond, client, healthy)
			close(done)
		}()

		cancel()
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("monitor did not stop after cancel")
		}
	})
}
