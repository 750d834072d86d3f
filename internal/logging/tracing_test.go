package logging_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/progressly/progressly-api/internal/logging"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
)

func TestTracingLogHandler(t *testing.T) {
	t.Parallel()

	t.Run("without span", func(t *testing.T) {
		t.Parallel()

		w := newWriter(t)
		logger := slog.New(logging.NewTracingLogHandler(slog.NewJSONHandler(w, nil)))

		logger.InfoContext(t.Context(), "test")

		entry, ok := w.PopWithoutTime()
		require.True(t, ok)
		require.Equal(t, map[string]any{
			"level": "INFO",
			"msg":   "test",
		}, entry)
	})

	t.Run("with span", func(t *testing.T) {
		t.Parallel()

		traceID, err := trace.TraceIDFromHex("0102030405060708090a0b0c0d0e0f10")
		require.NoError(t, err)
		spanID, err := trace.SpanIDFromHex("0102030405060708")
		require.NoError(t, err)

		ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
			TraceID:    traceID,
			SpanID:     spanID,
			TraceFlags: trace.FlagsSampled,
		}))

		w := newWriter(t)
		logger := slog.New(logging.NewTracingLogHandler(slog.NewJSONHandler(w, nil))).With(slog.String("component", "test"))

		logger.InfoContext(ctx, "test")

		entry, ok := w.PopWithoutTime()
		require.True(t, ok)
		require.Equal(t, map[string]any{
			"level":        "INFO",
			"msg":          "test",
			"component":    "test",
			"traceId":      "0102030405060708090a0b0c0d0e0f10",
			"spanId":       "0102030405060708",
			"traceSampled": true,
		}, entry)
	})
}
