package fieldfmt_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unitkey/fieldfmt"
)

func TestHandlerJSON(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	logger := slog.New(fieldfmt.NewHandler(&buf, fieldfmt.JSON))

	logger.Info("request served", "duration_ms", 250, "path", "/health")

	line := strings.TrimSuffix(buf.String(), "\n")
	require.NotContains(t, line, "\n")

	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(line), &m))
	assert.Equal(t, "info", m["code"])
	assert.Equal(t, "request served", m["message"])
	assert.Equal(t, float64(250), m["duration_ms"])
	assert.Equal(t, "/health", m["path"])
	assert.Contains(t, m, "timestamp_epoch_ms")
}

func TestHandlerPlain(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	logger := slog.New(fieldfmt.NewHandler(&buf, fieldfmt.Plain))

	logger.Info("served", "duration_ms", 250)

	line := buf.String()
	assert.True(t, strings.HasSuffix(line, "\n"))
	assert.Equal(t, 1, strings.Count(line, "\n"))
	assert.Contains(t, line, "code=info")
	assert.Contains(t, line, "duration=250ms")
	assert.Contains(t, line, "message=served")
	assert.Contains(t, line, "timestamp=")
}

func TestHandlerYAML(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	logger := slog.New(fieldfmt.NewHandler(&buf, fieldfmt.YAML))

	logger.Warn("low disk", "free_bytes", 1024)

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "---\n"))
	assert.Contains(t, out, "code: \"warn\"")
	assert.Contains(t, out, "free: \"1.0KB\"")
}

func TestHandlerLevelCodes(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		level slog.Level
		want  string
	}{
		"trace": {level: slog.LevelDebug - 4, want: "trace"},
		"debug": {level: slog.LevelDebug, want: "debug"},
		"info":  {level: slog.LevelInfo, want: "info"},
		"warn":  {level: slog.LevelWarn, want: "warn"},
		"error": {level: slog.LevelError, want: "error"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			logger := slog.New(fieldfmt.NewHandler(&buf, fieldfmt.Plain))
			logger.Log(context.Background(), tt.level, "m")
			assert.Contains(t, buf.String(), "code="+tt.want)
		})
	}
}

func TestHandlerExplicitCodeWins(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	logger := slog.New(fieldfmt.NewHandler(&buf, fieldfmt.Plain))

	logger.Error("boom", "code", "fatal")

	assert.Contains(t, buf.String(), "code=fatal")
	assert.NotContains(t, buf.String(), "code=error")
}

func TestHandlerSpanFields(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	logger := slog.New(fieldfmt.NewHandler(&buf, fieldfmt.Plain))

	logger.With("request_id", "r-1").Info("step")

	assert.Contains(t, buf.String(), "request_id=r-1")
}

func TestHandlerEventOverridesSpan(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	logger := slog.New(fieldfmt.NewHandler(&buf, fieldfmt.Plain))

	logger.With("stage", "init").Info("m", "stage", "run")

	assert.Contains(t, buf.String(), "stage=run")
	assert.NotContains(t, buf.String(), "stage=init")
}

func TestHandlerWithAttrsDoesNotLeakBetweenChildren(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	base := slog.New(fieldfmt.NewHandler(&buf, fieldfmt.Plain))

	a := base.With("child", "a")
	_ = base.With("child", "b")
	a.Info("m")

	assert.Contains(t, buf.String(), "child=a")
	assert.NotContains(t, buf.String(), "child=b")
}

func TestHandlerDurationAndTimeAttrs(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	logger := slog.New(fieldfmt.NewHandler(&buf, fieldfmt.Plain))

	at := time.UnixMilli(1700000000123)
	logger.Info("m",
		slog.Duration("elapsed_ms", 1500*time.Millisecond),
		slog.Time("started_epoch_ms", at),
	)

	out := buf.String()
	assert.Contains(t, out, "elapsed=1.5s")
	assert.Contains(t, out, "started=2023-11-14T22:13:20.123Z")
}

func TestHandlerGroupAttr(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	logger := slog.New(fieldfmt.NewHandler(&buf, fieldfmt.Plain))

	logger.Info("m", slog.Group("db", slog.Int("rows", 3)))

	assert.Contains(t, buf.String(), "db.rows=3")
}

func TestHandlerEnabled(t *testing.T) {
	t.Parallel()
	h := fieldfmt.NewHandler(&bytes.Buffer{}, fieldfmt.JSON)
	assert.True(t, h.Enabled(context.Background(), slog.LevelDebug-8))
	assert.True(t, h.Enabled(context.Background(), slog.LevelError+8))
}

func TestHandlerWithGroupIsNoop(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	logger := slog.New(fieldfmt.NewHandler(&buf, fieldfmt.Plain)).WithGroup("g")

	logger.Info("m", "k", "v")

	assert.Contains(t, buf.String(), "k=v")
	assert.NotContains(t, buf.String(), "g.")
}

func TestWithSpan(t *testing.T) {
	// Swaps the process default logger; not parallel.
	var buf bytes.Buffer
	prev := slog.Default()
	defer slog.SetDefault(prev)
	slog.SetDefault(slog.New(fieldfmt.NewHandler(&buf, fieldfmt.Plain)))

	ctx := fieldfmt.WithSpan(context.Background(), map[string]any{"trace_id": "t-1"})
	fieldfmt.LoggerFrom(ctx).Info("inside")

	assert.Contains(t, buf.String(), "trace_id=t-1")
	assert.Contains(t, buf.String(), "message=inside")

	// Nested spans accumulate fields.
	buf.Reset()
	inner := fieldfmt.WithSpan(ctx, map[string]any{"step": "two"})
	fieldfmt.LoggerFrom(inner).Info("deeper")
	assert.Contains(t, buf.String(), "trace_id=t-1")
	assert.Contains(t, buf.String(), "step=two")
}

func TestLoggerFromWithoutSpan(t *testing.T) {
	t.Parallel()
	assert.Equal(t, slog.Default(), fieldfmt.LoggerFrom(context.Background()))
}
