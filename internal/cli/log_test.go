package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{"info at info level", log.InfoLevel, func(l *log.Logger) { l.Info("test") }, true},
		{"debug at info level", log.InfoLevel, func(l *log.Logger) { l.Debug("test") }, false},
		{"debug at debug level", log.DebugLevel, func(l *log.Logger) { l.Debug("test") }, true},
		{"warn at info level", log.InfoLevel, func(l *log.Logger) { l.Warn("test") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.logFunc(newLogger(&buf, tt.level))
			if got := buf.Len() > 0; got != tt.wantLog {
				t.Errorf("got log output = %v, want %v", got, tt.wantLog)
			}
		})
	}
}

func TestStepDone(t *testing.T) {
	var buf bytes.Buffer
	s := startStep(newLogger(&buf, log.InfoLevel))
	time.Sleep(5 * time.Millisecond)
	s.done("Fetched laravel/sanctum", "version", "v4.0.2")

	out := buf.String()
	for _, want := range []string{"Fetched laravel/sanctum", "version=v4.0.2", "took="} {
		if !strings.Contains(out, want) {
			t.Errorf("step output %q should contain %q", out, want)
		}
	}
}

func TestLoggerFromContext(t *testing.T) {
	if loggerFromContext(context.Background()) == nil {
		t.Fatal("loggerFromContext should fall back to the default logger")
	}

	var buf bytes.Buffer
	custom := newLogger(&buf, log.InfoLevel)
	ctx := withLogger(context.Background(), custom)
	if got := loggerFromContext(ctx); got != custom {
		t.Error("loggerFromContext should return the attached logger")
	}
}

func TestLogHooks(t *testing.T) {
	ctx := context.Background()

	var buf bytes.Buffer
	h := logHooks{newLogger(&buf, log.DebugLevel)}
	h.OnSearch(ctx, "laravel", "auth", 3)
	h.OnCacheMiss(ctx, "session")
	h.OnGenerate(ctx, "slim", 0, errors.New("boom"))

	out := buf.String()
	for _, want := range []string{"search", "query=auth", "cache miss", "generate rejected"} {
		if !strings.Contains(out, want) {
			t.Errorf("hook output missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	quiet := logHooks{newLogger(&buf, log.InfoLevel)}
	quiet.OnSearch(ctx, "laravel", "auth", 3)
	if buf.Len() != 0 {
		t.Errorf("debug events should be hidden at info level, got %q", buf.String())
	}
}
