package logger

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

// TestParseLogLevel verifies mapping from strings to zapcore.Level and handling of unknown values.
func TestParseLogLevel(t *testing.T) {
	t.Parallel()

	cases := map[string]zapcore.Level{
		"debug": zapcore.DebugLevel,
		"info":  zapcore.InfoLevel,
		"warn":  zapcore.WarnLevel,
		"error": zapcore.ErrorLevel,
		"panic": zapcore.PanicLevel,
		"fatal": zapcore.FatalLevel,
	}
	for s, lvl := range cases {
		got, ok := ParseLogLevel(s)
		require.True(t, ok)
		require.Equal(t, lvl, got)
	}

	_, ok := ParseLogLevel("unknown")
	require.False(t, ok)
}

// TestContextHelpers verifies that loggers travel through the context and carry names and fields.
func TestContextHelpers(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	l := NewWithWriter(&buf, zapcore.DebugLevel)
	ctx := ToContext(context.Background(), l)
	require.Same(t, l, FromContext(ctx))

	ctx = WithName(ctx, "security")
	ctx = WithKV(ctx, "sensor", "front-door")
	ctx = WithFields(ctx, map[string]any{"alarm_status": "ALARM"})

	InfoKV(ctx, "Alarm status changed", "source", "test")

	out := buf.String()
	require.Contains(t, out, "security")
	require.Contains(t, out, "Alarm status changed")
	require.Contains(t, out, "front-door")
	require.Contains(t, out, "ALARM")
}

// TestFromContextFallsBackToGlobal ensures a bare context yields the global logger.
func TestFromContextFallsBackToGlobal(t *testing.T) {
	t.Parallel()

	require.Same(t, global, FromContext(context.Background()))
	require.Same(t, global, FromContext(nil)) //nolint:staticcheck // nil context is handled explicitly.
}

// TestSetLevel verifies loggers built without a level follow the shared level.
func TestSetLevel(t *testing.T) {
	var buf bytes.Buffer

	ctx := ToContext(context.Background(), NewWithWriter(&buf, nil))

	SetLevel(zapcore.WarnLevel)
	t.Cleanup(func() { SetLevel(zapcore.InfoLevel) })

	Info(ctx, "armed")
	WarnKV(ctx, "pending alarm", "sensor", "DOOR:Front Door")

	require.NotContains(t, buf.String(), "armed")
	require.Contains(t, buf.String(), "pending alarm")
}
