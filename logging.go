// Copyright 2026 Yigithan Sonmez. All rights reserved.

package rsx

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler silently discards all log records; it is the default until
// an embedder calls SetLogger. Grounded on gogpu-gg's
// internal/gpu/logger.go, which uses the same pattern for a package that
// (like this one) has no business picking a logging destination for its
// host application.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler      { return nopHandler{} }

// loggerPtr holds the active package logger, accessed atomically so
// SetLogger can be called concurrently with (though never during, per
// §5's single-threaded model) store operations.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(slog.New(nopHandler{}))
}

// SetLogger installs l as the destination for this package's diagnostic
// logging: the §4.6 bind-while-invalidate warning and the §4.1
// dirty-on-sample notice. A nil l restores the no-op default.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	loggerPtr.Store(l)
}

func logger() *slog.Logger { return loggerPtr.Load() }
