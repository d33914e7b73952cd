package clearloop

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
)

// nopHandler drops every record. Enabled reports false, so callers never
// format attributes while logging is off.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr holds the process-wide logger. SetLogger may race with logging
// from the render loop.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for clearloop and all its sub-packages.
// By default, clearloop produces no log output. Call SetLogger (or
// InitLogger) to enable logging.
//
// Pass nil to disable logging (restore default silent behavior).
//
// Log levels used by clearloop:
//   - [slog.LevelDebug]: per-frame diagnostics (surface reconfiguration)
//   - [slog.LevelInfo]: lifecycle events (adapter selected, window created)
//   - [slog.LevelWarn]: recoverable surface errors (lost, timeout, outdated)
//   - [slog.LevelError]: fatal startup failures
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger used by clearloop.
// Sub-packages call this at log time, so a later SetLogger takes effect
// everywhere without re-wiring.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

// ComponentLogger returns the current logger tagged with the given component
// name. FilterHandler uses the tag to apply per-component levels.
func ComponentLogger(component string) *slog.Logger {
	return Logger().With(ComponentKey, component)
}

// InitLogger installs a text logger writing to w, filtered by spec.
// See ParseFilterSpec for the spec syntax. It is meant to be called once at
// process start.
func InitLogger(w io.Writer, spec string) error {
	fs, err := ParseFilterSpec(spec)
	if err != nil {
		return err
	}
	text := slog.NewTextHandler(w, &slog.HandlerOptions{Level: fs.MinLevel()})
	SetLogger(slog.New(NewFilterHandler(text, fs)))
	return nil
}
