package metrics

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	domain "github.com/oshokin/catpoint/internal/domain/security"
	repo "github.com/oshokin/catpoint/internal/repository/security"
	"github.com/oshokin/catpoint/internal/service/security/mocks"
)

// TestListenerTracksState verifies gauges and counters follow notifications.
func TestListenerTracksState(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repository := repo.NewMemoryRepository()
	listener := New(prometheus.NewRegistry(), repository)

	require.NoError(t, listener.Sync(ctx))
	require.InDelta(t, 1, testutil.ToFloat64(listener.AlarmStatus.WithLabelValues(domain.NoAlarm.String())), 0)
	require.InDelta(t, 1, testutil.ToFloat64(listener.ArmingStatus.WithLabelValues(domain.Disarmed.String())), 0)

	listener.AlarmStatusChanged(ctx, domain.PendingAlarm)
	listener.AlarmStatusChanged(ctx, domain.Alarm)
	listener.AlarmStatusChanged(ctx, domain.Alarm)

	require.InDelta(t, 0, testutil.ToFloat64(listener.AlarmStatus.WithLabelValues(domain.NoAlarm.String())), 0)
	require.InDelta(t, 0, testutil.ToFloat64(listener.AlarmStatus.WithLabelValues(domain.PendingAlarm.String())), 0)
	require.InDelta(t, 1, testutil.ToFloat64(listener.AlarmStatus.WithLabelValues(domain.Alarm.String())), 0)
	require.InDelta(t, 2, testutil.ToFloat64(listener.AlarmStatusChanges.WithLabelValues(domain.Alarm.String())), 0)

	listener.CatDetected(ctx, true)
	listener.CatDetected(ctx, false)
	listener.CatDetected(ctx, false)

	require.InDelta(t, 1, testutil.ToFloat64(listener.CameraFrames.WithLabelValues(ResultCat)), 0)
	require.InDelta(t, 2, testutil.ToFloat64(listener.CameraFrames.WithLabelValues(ResultNoCat)), 0)

	door, err := domain.NewSensor("Front Door", domain.Door)
	require.NoError(t, err)

	door.Active = true

	window, err := domain.NewSensor("Kitchen", domain.Window)
	require.NoError(t, err)

	require.NoError(t, repository.AddSensor(ctx, door))
	require.NoError(t, repository.AddSensor(ctx, window))
	require.NoError(t, repository.SetArmingStatus(ctx, domain.ArmedAway))

	listener.SensorStatusChanged(ctx)

	require.InDelta(t, 2, testutil.ToFloat64(listener.Sensors), 0)
	require.InDelta(t, 1, testutil.ToFloat64(listener.ActiveSensors), 0)
	require.InDelta(t, 1, testutil.ToFloat64(listener.ArmingStatus.WithLabelValues(domain.ArmedAway.String())), 0)
	require.InDelta(t, 0, testutil.ToFloat64(listener.ArmingStatus.WithLabelValues(domain.Disarmed.String())), 0)
}

// TestListenerKeepsGaugesOnReadError verifies a failing reader does not reset gauges.
func TestListenerKeepsGaugesOnReadError(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	reader := mocks.NewMockReader(gomock.NewController(t))
	listener := New(prometheus.NewRegistry(), reader)

	listener.ActiveSensors.Set(3)
	reader.EXPECT().Sensors(gomock.Any()).Return(nil, errors.New("unavailable"))

	listener.SensorStatusChanged(ctx)

	require.InDelta(t, 3, testutil.ToFloat64(listener.ActiveSensors), 0)

	reader.EXPECT().AlarmStatus(gomock.Any()).Return(domain.AlarmStatus(""), errors.New("unavailable"))
	require.Error(t, listener.Sync(ctx))
}
