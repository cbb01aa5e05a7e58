// Package observability aggregates runtime counters for the reporter
// worker. Counters are atomic; the latency aggregate sits behind a mutex.
package observability

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// Stats is a point-in-time snapshot for reporting.
type Stats struct {
	Accepted           uint64        `json:"accepted"`
	ValidationRejected uint64        `json:"validation_rejected"`
	TransientRetries   uint64        `json:"transient_retries"`
	ContentionFailures uint64        `json:"contention_failures"`
	IntegrityFailures  uint64        `json:"integrity_failures"`
	Failed             uint64        `json:"failed"`
	MeanLatency        time.Duration `json:"mean_latency"`
	Throughput         float64       `json:"throughput"`
}

// MonitoringManager collects counters from handlers and the service layer.
type MonitoringManager struct {
	log *slog.Logger

	accepted           uint64
	validationRejected uint64
	transientRetries   uint64
	contentionFailures uint64
	integrityFailures  uint64
	failed             uint64

	mu           sync.Mutex
	latencySum   time.Duration
	latencyCount uint64
	startedAt    time.Time
}

func NewMonitoringManager(log *slog.Logger) *MonitoringManager {
	return &MonitoringManager{log: log, startedAt: time.Now()}
}

func (mm *MonitoringManager) IncrAccepted()           { atomic.AddUint64(&mm.accepted, 1) }
func (mm *MonitoringManager) IncrValidationRejected() { atomic.AddUint64(&mm.validationRejected, 1) }
func (mm *MonitoringManager) IncrTransientRetries()   { atomic.AddUint64(&mm.transientRetries, 1) }
func (mm *MonitoringManager) IncrContentionFailures() { atomic.AddUint64(&mm.contentionFailures, 1) }
func (mm *MonitoringManager) IncrIntegrityFailures()  { atomic.AddUint64(&mm.integrityFailures, 1) }
func (mm *MonitoringManager) IncrFailed()             { atomic.AddUint64(&mm.failed, 1) }

// RecordLatency feeds one request duration into the mean.
func (mm *MonitoringManager) RecordLatency(d time.Duration) {
	mm.mu.Lock()
	defer mm.mu.Unlock()
	mm.latencySum += d
	mm.latencyCount++
}

// Snapshot computes the current aggregate view (thread-safe).
func (mm *MonitoringManager) Snapshot() Stats {
	mm.mu.Lock()
	sum, count := mm.latencySum, mm.latencyCount
	started := mm.startedAt
	mm.mu.Unlock()

	var mean time.Duration
	if count > 0 {
		mean = sum / time.Duration(count)
	}
	elapsed := time.Since(started).Seconds()
	accepted := atomic.LoadUint64(&mm.accepted)
	var throughput float64
	if elapsed > 0 {
		throughput = float64(accepted) / elapsed
	}

	return Stats{
		Accepted:           accepted,
		ValidationRejected: atomic.LoadUint64(&mm.validationRejected),
		TransientRetries:   atomic.LoadUint64(&mm.transientRetries),
		ContentionFailures: atomic.LoadUint64(&mm.contentionFailures),
		IntegrityFailures:  atomic.LoadUint64(&mm.integrityFailures),
		Failed:             atomic.LoadUint64(&mm.failed),
		MeanLatency:        mean,
		Throughput:         throughput,
	}
}
