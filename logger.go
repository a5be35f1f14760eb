package voxgo

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with voxgo-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithLOD adds a level-of-detail field to the logger.
func (l *Logger) WithLOD(lod uint8) *Logger {
	return &Logger{
		Logger: l.Logger.With("lod", lod),
	}
}

// LogBuild logs pyramid construction.
func (l *Logger) LogBuild(levels int, backend Backend, chunkShape any) {
	l.Info("pyramid created",
		"levels", levels,
		"backend", backend.String(),
		"chunk_shape", chunkShape,
	)
}

// LogDownsample logs one downsample call.
func (l *Logger) LogDownsample(srcKey, dstKey any, srcLOD, dstLOD uint8, sparse bool, err error) {
	if err != nil {
		l.Error("downsample failed",
			"src_key", srcKey,
			"src_lod", srcLOD,
			"dst_lod", dstLOD,
			"error", err,
		)
		return
	}
	l.Debug("downsample completed",
		"src_key", srcKey,
		"dst_key", dstKey,
		"src_lod", srcLOD,
		"dst_lod", dstLOD,
		"sparse", sparse,
	)
}
