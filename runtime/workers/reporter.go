package workers

import (
	"context"
	"log/slog"
	"time"

	"chat-feed/observability"
)

// ReporterWorker periodically logs a metrics snapshot until its context
// is canceled, then prints one final line so short runs still report.
type ReporterWorker struct {
	monitoring *observability.MonitoringManager
	log        *slog.Logger
	interval   time.Duration
}

func NewReporterWorker(log *slog.Logger, monitoring *observability.MonitoringManager, interval time.Duration) *ReporterWorker {
	return &ReporterWorker{monitoring: monitoring, log: log, interval: interval}
}

func (w *ReporterWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logStats()
			return nil
		case <-ticker.C:
			w.logStats()
		}
	}
}

func (w *ReporterWorker) logStats() {
	stats := w.monitoring.Snapshot()
	w.log.Info("Feed stats",
		"accepted", stats.Accepted,
		"rejected", stats.ValidationRejected,
		"retries", stats.TransientRetries,
		"contention", stats.ContentionFailures,
		"integrity", stats.IntegrityFailures,
		"failed", stats.Failed,
		"mean_latency", stats.MeanLatency.Round(time.Microsecond).String(),
		"throughput_rps", stats.Throughput,
	)
}
