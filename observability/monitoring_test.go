package observability

import (
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMonitoringManager_CountersUnderConcurrency(t *testing.T) {
	req := require.New(t)
	mm := NewMonitoringManager(slog.Default())

	const writers = 10
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				mm.IncrAccepted()
				mm.RecordLatency(2 * time.Millisecond)
			}
			mm.IncrTransientRetries()
		}()
	}
	wg.Wait()

	stats := mm.Snapshot()
	req.Equal(uint64(writers*100), stats.Accepted)
	req.Equal(uint64(writers), stats.TransientRetries)
	req.Equal(2*time.Millisecond, stats.MeanLatency)
	req.Positive(stats.Throughput)
}

func TestMonitoringManager_EmptySnapshot(t *testing.T) {
	req := require.New(t)
	mm := NewMonitoringManager(slog.Default())

	stats := mm.Snapshot()
	req.Zero(stats.Accepted)
	req.Zero(stats.MeanLatency)
}
