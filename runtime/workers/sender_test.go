package workers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"chat-feed/observability"

	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
)

func TestSenderWorker_SendsAllRequestsAndStops(t *testing.T) {
	req := require.New(t)

	var hits uint64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req.Equal(http.MethodPost, r.Method)
		req.Equal("/messages/", r.URL.Path)
		var payload struct {
			SenderName string `json:"sender_name"`
			Text       string `json:"text"`
		}
		req.NoError(json.NewDecoder(r.Body).Decode(&payload))
		req.NotEmpty(payload.SenderName)
		atomic.AddUint64(&hits, 1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"messages": []}`))
	}))
	defer srv.Close()

	log := slog.Default()
	monitoring := observability.NewMonitoringManager(log)
	worker := NewSenderWorker(
		log, &fasthttp.Client{}, monitoring,
		[]string{srv.URL}, []string{"Alice", "Bob"},
		"load test", 5, time.Second, 1,
	)

	err := worker.Run(context.Background())
	req.NoError(err)
	req.Equal(uint64(5), atomic.LoadUint64(&hits))

	stats := monitoring.Snapshot()
	req.Equal(uint64(5), stats.Accepted)
	req.Zero(stats.Failed)
}

func TestSenderWorker_CountsServerErrors(t *testing.T) {
	req := require.New(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	log := slog.Default()
	monitoring := observability.NewMonitoringManager(log)
	worker := NewSenderWorker(
		log, &fasthttp.Client{}, monitoring,
		[]string{srv.URL}, []string{"Alice"},
		"load test", 3, time.Second, 1,
	)

	err := worker.Run(context.Background())
	req.NoError(err)

	stats := monitoring.Snapshot()
	req.Equal(uint64(3), stats.Failed)
	req.Zero(stats.Accepted)
}

func TestSenderWorker_StopsOnCanceledContext(t *testing.T) {
	req := require.New(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	log := slog.Default()
	monitoring := observability.NewMonitoringManager(log)
	worker := NewSenderWorker(
		log, &fasthttp.Client{}, monitoring,
		[]string{"http://127.0.0.1:1"}, []string{"Alice"},
		"load test", 100, time.Second, 1,
	)

	err := worker.Run(ctx)
	req.NoError(err)

	stats := monitoring.Snapshot()
	req.Zero(stats.Accepted + stats.Failed + stats.ValidationRejected)
}
