package voxgo

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordDownsample is called after each DownsampleChunk.
	// sparse is true when the source chunk was absent and the ambient value
	// was written. err is nil if successful.
	RecordDownsample(lodDelta uint8, sparse bool, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordDownsample(uint8, bool, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	DownsampleCount      atomic.Int64
	DownsampleErrors     atomic.Int64
	DownsampleSparse     atomic.Int64
	DownsampleTotalNanos atomic.Int64
	LevelsSkipped        atomic.Int64
}

// RecordDownsample implements MetricsCollector.
func (b *BasicMetricsCollector) RecordDownsample(lodDelta uint8, sparse bool, duration time.Duration, err error) {
	b.DownsampleCount.Add(1)
	b.DownsampleTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.DownsampleErrors.Add(1)
		return
	}
	if sparse {
		b.DownsampleSparse.Add(1)
	}
	b.LevelsSkipped.Add(int64(lodDelta))
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector.
type BasicMetricsStats struct {
	DownsampleCount    int64
	DownsampleErrors   int64
	DownsampleSparse   int64
	DownsampleAvgNanos int64
	LevelsSkipped      int64
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		DownsampleCount:    b.DownsampleCount.Load(),
		DownsampleErrors:   b.DownsampleErrors.Load(),
		DownsampleSparse:   b.DownsampleSparse.Load(),
		DownsampleAvgNanos: b.getAvgDownsampleNanos(),
		LevelsSkipped:      b.LevelsSkipped.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgDownsampleNanos() int64 {
	count := b.DownsampleCount.Load()
	if count == 0 {
		return 0
	}
	return b.DownsampleTotalNanos.Load() / count
}
