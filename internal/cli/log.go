package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
// It is safe for sequential use by a single goroutine; concurrent calls to done will race.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// Example output: "Enumerated 720 items (1.234s)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, falling back to log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if ctx == nil {
		return log.Default()
	}
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// logHooks reports enumeration and HTTP events to the CLI logger.
type logHooks struct {
	logger *log.Logger
}

func (h *logHooks) OnEnumerateStart(_ context.Context, kind string, n, k int) {
	h.logger.Debug("Enumeration started", "kind", kind, "n", n, "k", k)
}

func (h *logHooks) OnEnumerateComplete(_ context.Context, kind string, items int64, duration time.Duration, err error) {
	if err != nil {
		h.logger.Warn("Enumeration stopped", "kind", kind, "items", items, "err", err)
		return
	}
	h.logger.Debug("Enumeration finished", "kind", kind, "items", items, "duration", duration.Round(time.Microsecond))
}

func (h *logHooks) OnRequest(_ context.Context, requestID, method, path string) {
	h.logger.Debug("Request", "id", requestID, "method", method, "path", path)
}

func (h *logHooks) OnResponse(_ context.Context, requestID, method, path string, status int, duration time.Duration) {
	h.logger.Info("Response", "id", requestID, "method", method, "path", path, "status", status, "duration", duration.Round(time.Millisecond))
}
