package notifier

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	domain "github.com/oshokin/catpoint/internal/domain/security"
	"github.com/oshokin/catpoint/internal/logger"
	repo "github.com/oshokin/catpoint/internal/repository/security"
)

// TestLogListener verifies notifications reach the context logger.
func TestLogListener(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	ctx := logger.ToContext(context.Background(), logger.NewWithWriter(&buf, zapcore.DebugLevel))

	repository := repo.NewMemoryRepository()
	sensor, err := domain.NewSensor("Front Door", domain.Door)
	require.NoError(t, err)

	sensor.Active = true
	require.NoError(t, repository.AddSensor(ctx, sensor))

	listener := NewLogListener(repository)
	listener.AlarmStatusChanged(ctx, domain.Alarm)
	listener.CatDetected(ctx, true)
	listener.SensorStatusChanged(ctx)

	out := buf.String()
	require.Contains(t, out, domain.Alarm.Description())
	require.Contains(t, out, "CAT DETECTED")
	require.Contains(t, out, "Sensors changed")
	require.Contains(t, out, "active")
}

// TestLogListenerWithoutReader verifies the listener works without repository access.
func TestLogListenerWithoutReader(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	ctx := logger.ToContext(context.Background(), logger.NewWithWriter(&buf, zapcore.DebugLevel))

	listener := NewLogListener(nil)
	listener.AlarmStatusChanged(ctx, domain.NoAlarm)
	listener.CatDetected(ctx, false)
	listener.SensorStatusChanged(ctx)

	out := buf.String()
	require.Contains(t, out, domain.NoAlarm.Description())
	require.Contains(t, out, "No cat")
	require.Contains(t, out, "Sensors changed")
}
