package obs

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestTimeLogsFailure(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	ctx := WithLogger(context.Background(), logger)

	err := errors.New("boom")
	Time(ctx, "ncp.Geocode")(&err)

	out := buf.String()
	if !strings.Contains(out, "op=ncp.Geocode") || !strings.Contains(out, "err=boom") {
		t.Fatalf("log line = %q, want op and err attributes", out)
	}
}

func TestTimeLogsSuccessAtDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	ctx := WithLogger(context.Background(), logger)

	var err error
	Time(ctx, "aggregate.Run")(&err)

	if !strings.Contains(buf.String(), "level=DEBUG") {
		t.Fatalf("log line = %q, want debug level", buf.String())
	}
}

func TestLoggerFallsBackToDefault(t *testing.T) {
	if Logger(context.Background()) != slog.Default() {
		t.Fatalf("Logger() without context value should return slog.Default()")
	}
}

func TestNewLoggerLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "warn")

	logger.Info("hidden")
	logger.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "shown") {
		t.Fatalf("log output = %q, want only the warn line", out)
	}

	buf.Reset()
	NewLogger(&buf, "bogus").Info("fallback")
	if !strings.Contains(buf.String(), "fallback") {
		t.Fatalf("unknown level should fall back to info")
	}
}
