package raster

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler silently discards all log records. Enabled returns false
// so the caller skips message formatting entirely, keeping disabled
// logging zero-cost on the per-frame path.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// loggerPtr stores the active logger. Accessed atomically so SetLogger
// can be called concurrently with logging from any worker goroutine.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(slog.New(nopHandler{}))
}

// SetLogger configures the logger used by the raster package. By
// default the package produces no log output; pass nil to restore
// that default.
//
// SetLogger is safe for concurrent use.
//
// Log levels used by this package:
//   - [slog.LevelDebug]: per-frame stats (triangles submitted, culled,
//     degenerate, fragments written).
//   - [slog.LevelWarn]: recoverable per-call problems (resize to a
//     zero dimension request, a shader resolving an unknown texture
//     handle).
//
// The rasterizer's per-pixel path never logs.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	loggerPtr.Store(l)
}

// Logger returns the logger currently used by the raster package.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
