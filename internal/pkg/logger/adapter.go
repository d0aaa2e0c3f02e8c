package logger

import (
	"io"
	"log/slog"

	"mixin_wallet/internal/app/port"
)

// slogAdapter implements port.Logger on top of a *slog.Logger. A nil logger
// defers to the package-level functions so it picks up whatever InitZap installed.
type slogAdapter struct {
	l *slog.Logger
}

// NewSlogAdapter returns a port.Logger backed by the global logger.
func NewSlogAdapter() port.Logger {
	return &slogAdapter{}
}

// NewNop returns a port.Logger that drops everything.
func NewNop() port.Logger {
	return &slogAdapter{l: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

func (a *slogAdapter) Info(msg string, args ...any) {
	if a.l != nil {
		a.l.Info(msg, args...)
		return
	}
	Info(msg, args...)
}

func (a *slogAdapter) Debug(msg string, args ...any) {
	if a.l != nil {
		a.l.Debug(msg, args...)
		return
	}
	Debug(msg, args...)
}

func (a *slogAdapter) Warn(msg string, args ...any) {
	if a.l != nil {
		a.l.Warn(msg, args...)
		return
	}
	Warn(msg, args...)
}

func (a *slogAdapter) Error(msg string, args ...any) {
	if a.l != nil {
		a.l.Error(msg, args...)
		return
	}
	Error(msg, args...)
}

// With returns an adapter bound to the extra attributes.
func (a *slogAdapter) With(args ...any) port.Logger {
	base := a.l
	if base == nil {
		ensureInitialized()
		base = globalLogger
	}
	return &slogAdapter{l: base.With(args...)}
}
