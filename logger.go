package wgsafe

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled returns false so callers skip formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for wgsafe.
// By default, wgsafe produces no log output. Pass nil to restore the
// silent default.
//
// SetLogger is safe for concurrent use.
//
// Log levels used by wgsafe:
//   - [slog.LevelDebug]: handle creation and release, pass begin/end, submit
//
// Native backends that accept a logger (a SetLogger(*slog.Logger) method)
// receive it when an [Instance] is created on them, and again on every
// later SetLogger call while that Instance is alive.
//
// Example:
//
//	wgsafe.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)

	backendsMu.Lock()
	defer backendsMu.Unlock()
	for ls := range backends {
		ls.SetLogger(l)
	}
}

// Logger returns the current logger used by wgsafe.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

// loggerSetter is implemented by native backends that accept a logger.
type loggerSetter interface {
	SetLogger(*slog.Logger)
}

// backends counts the live instances on each logger-accepting backend.
var (
	backendsMu sync.Mutex
	backends   = make(map[loggerSetter]int)
)

// trackBackend hands the current logger to api if it accepts one and
// keeps api in the set SetLogger updates.
func trackBackend(api any) {
	ls, ok := api.(loggerSetter)
	if !ok {
		return
	}
	backendsMu.Lock()
	defer backendsMu.Unlock()
	ls.SetLogger(Logger())
	backends[ls]++
}

// untrackBackend drops one instance reference to api.
func untrackBackend(api any) {
	ls, ok := api.(loggerSetter)
	if !ok {
		return
	}
	backendsMu.Lock()
	defer backendsMu.Unlock()
	if backends[ls] <= 1 {
		delete(backends, ls)
		return
	}
	backends[ls]--
}
