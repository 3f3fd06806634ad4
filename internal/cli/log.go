package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger returns a logger writing to w with "15:04:05.00" timestamps.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

type loggerKey struct{}

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// loggerFromContext returns the logger attached by the root command, or
// log.Default() outside of a command run.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// step times one slow part of a command, such as a Packagist fetch or a
// Graphviz render.
type step struct {
	logger *log.Logger
	start  time.Time
}

func startStep(l *log.Logger) step {
	return step{logger: l, start: time.Now()}
}

// done logs msg at info level with the elapsed time, e.g.
// "Fetched laravel/sanctum took=312ms".
func (s step) done(msg string, keyvals ...any) {
	keyvals = append(keyvals, "took", time.Since(s.start).Round(time.Millisecond))
	s.logger.Info(msg, keyvals...)
}

// logHooks turns observability events into debug log lines, so -v shows
// searches, cache traffic and Packagist requests.
type logHooks struct {
	logger *log.Logger
}

func (h logHooks) OnSearch(_ context.Context, framework, query string, results int) {
	h.logger.Debug("search", "framework", framework, "query", query, "results", results)
}

func (h logHooks) OnGenerate(_ context.Context, framework string, dependencies int, err error) {
	if err != nil {
		h.logger.Debug("generate rejected", "framework", framework, "err", err)
		return
	}
	h.logger.Debug("generate", "framework", framework, "dependencies", dependencies)
}

func (h logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h logHooks) OnRequest(_ context.Context, method, host, path string) {
	h.logger.Debug("http request", "method", method, "host", host, "path", path)
}

func (h logHooks) OnResponse(_ context.Context, method, host, path string, status int, d time.Duration) {
	h.logger.Debug("http response", "method", method, "host", host, "path", path,
		"status", status, "duration", d.Round(time.Millisecond))
}

func (h logHooks) OnError(_ context.Context, method, host, path string, err error) {
	h.logger.Warn("http error", "method", method, "host", host, "path", path, "err", err)
}
