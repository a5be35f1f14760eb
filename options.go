package voxgo

import (
	"fmt"

	"github.com/hupe1980/voxgo/compression"
	"github.com/hupe1980/voxgo/resource"
)

// Backend selects the chunk storage of every level.
type Backend uint8

const (
	// BackendHashMap keeps all chunks decompressed in a map.
	BackendHashMap Backend = iota
	// BackendCompressible keeps a bounded hot set and compresses the rest.
	BackendCompressible
)

func (b Backend) String() string {
	switch b {
	case BackendHashMap:
		return "hashmap"
	case BackendCompressible:
		return "compressible"
	default:
		return fmt.Sprintf("backend(%d)", uint8(b))
	}
}

type options struct {
	backend          Backend
	compression      compression.Compression
	cacheBytes       int64
	rc               *resource.Controller
	logger           *Logger
	metricsCollector MetricsCollector
}

func defaultOptions() options {
	return options{
		backend:          BackendHashMap,
		compression:      compression.LZ4,
		logger:           NoopLogger(),
		metricsCollector: NoopMetricsCollector{},
	}
}

func (o options) validate() error {
	if o.backend > BackendCompressible {
		return fmt.Errorf("%w: unknown backend %d", ErrInvalidArgument, uint8(o.backend))
	}
	if !o.compression.Valid() {
		return fmt.Errorf("%w: %w: %d", ErrInvalidArgument, compression.ErrUnknownCompression, uint8(o.compression))
	}
	return nil
}

// Option configures pyramid construction.
type Option func(*options)

// WithBackend selects the storage backend used by every level.
func WithBackend(b Backend) Option {
	return func(o *options) {
		o.backend = b
	}
}

// WithCompression selects the codec used by BackendCompressible.
// Defaults to compression.LZ4.
func WithCompression(c compression.Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}

// WithCacheCapacity bounds each level's decompressed hot set in bytes when
// using BackendCompressible. Zero selects chunk.DefaultCacheCapacityBytes; a
// negative value leaves only the resource controller as a bound.
func WithCacheCapacity(bytes int64) Option {
	return func(o *options) {
		o.cacheBytes = bytes
	}
}

// WithResourceController shares one memory budget across all levels.
//
// The budget is soft: a level that must admit a chunk but has nothing left
// to compress holds it over the limit, so usage can exceed the limit by up
// to one chunk per level. rc.MemoryUsage always reports the true total.
//
// Example:
//
//	rc := resource.NewController(resource.Config{MemoryLimitBytes: 512 << 20})
//	p, err := voxgo.New3(b, 6,
//	    voxgo.WithBackend(voxgo.BackendCompressible),
//	    voxgo.WithResourceController(rc),
//	)
func WithResourceController(rc *resource.Controller) Option {
	return func(o *options) {
		o.rc = rc
	}
}

// WithLogger configures structured logging. If nil, logging is disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithMetricsCollector configures a metrics collector for monitoring
// operations. Pass nil to disable metrics collection.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}
