package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"chat-feed/observability"

	"github.com/valyala/fasthttp"
)

// SenderWorker drives one stream of POST /messages/ requests for the load
// generator. Each request picks a random replica and a random sender name,
// mirroring real traffic where senders are spread across the fleet.
// It finishes after requestCount requests and is not restarted.
type SenderWorker struct {
	client       *fasthttp.Client
	servers      []string
	names        []string
	text         string
	requestCount int
	timeout      time.Duration
	monitoring   *observability.MonitoringManager
	log          *slog.Logger
	rnd          *rand.Rand
}

func NewSenderWorker(
	log *slog.Logger,
	client *fasthttp.Client,
	monitoring *observability.MonitoringManager,
	servers, names []string,
	text string,
	requestCount int,
	timeout time.Duration,
	seed int64,
) *SenderWorker {
	return &SenderWorker{
		client:       client,
		servers:      servers,
		names:        names,
		text:         text,
		requestCount: requestCount,
		timeout:      timeout,
		monitoring:   monitoring,
		log:          log,
		rnd:          rand.New(rand.NewSource(seed)),
	}
}

type postMessagePayload struct {
	SenderName string `json:"sender_name"`
	Text       string `json:"text"`
}

func (w *SenderWorker) Run(ctx context.Context) error {
	for i := 0; i < w.requestCount; i++ {
		if ctx.Err() != nil {
			return nil
		}
		w.sendOne()
	}
	return nil
}

func (w *SenderWorker) sendOne() {
	server := w.servers[w.rnd.Intn(len(w.servers))]
	name := w.names[w.rnd.Intn(len(w.names))]

	body, err := json.Marshal(postMessagePayload{SenderName: name, Text: w.text})
	if err != nil {
		w.monitoring.IncrFailed()
		return
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(fmt.Sprintf("%s/messages/", server))
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.SetBody(body)

	start := time.Now()
	err = w.client.DoTimeout(req, resp, w.timeout)
	w.monitoring.RecordLatency(time.Since(start))

	switch {
	case err != nil:
		w.monitoring.IncrFailed()
		w.log.Debug("Request failed", "server", server, "error", err)
	case resp.StatusCode() == fasthttp.StatusOK:
		w.monitoring.IncrAccepted()
	case resp.StatusCode() >= fasthttp.StatusInternalServerError:
		w.monitoring.IncrFailed()
		w.log.Debug("Server error", "server", server, "status", resp.StatusCode())
	default:
		w.monitoring.IncrValidationRejected()
	}
}
