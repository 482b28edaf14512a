package security

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	domain "github.com/oshokin/catpoint/internal/domain/security"
)

// newTestSensor builds a sensor or fails the test.
func newTestSensor(t *testing.T, name string, sensorType domain.SensorType) domain.Sensor {
	t.Helper()

	sensor, err := domain.NewSensor(name, sensorType)
	require.NoError(t, err)

	return sensor
}

// testRepositoryContract exercises the behavior every Repository must share.
func testRepositoryContract(t *testing.T, repo Repository) {
	t.Helper()

	ctx := context.Background()

	// Defaults.
	alarm, err := repo.AlarmStatus(ctx)
	require.NoError(t, err)
	require.Equal(t, domain.NoAlarm, alarm)

	arming, err := repo.ArmingStatus(ctx)
	require.NoError(t, err)
	require.Equal(t, domain.Disarmed, arming)

	sensors, err := repo.Sensors(ctx)
	require.NoError(t, err)
	require.Empty(t, sensors)

	// Statuses round trip.
	require.NoError(t, repo.SetAlarmStatus(ctx, domain.PendingAlarm))
	require.NoError(t, repo.SetArmingStatus(ctx, domain.ArmedAway))

	alarm, err = repo.AlarmStatus(ctx)
	require.NoError(t, err)
	require.Equal(t, domain.PendingAlarm, alarm)

	arming, err = repo.ArmingStatus(ctx)
	require.NoError(t, err)
	require.Equal(t, domain.ArmedAway, arming)

	// Sensors are unique by name and type and come back ordered.
	window := newTestSensor(t, "Kitchen", domain.Window)
	door := newTestSensor(t, "Front", domain.Door)
	duplicate := newTestSensor(t, "Front", domain.Door)
	duplicate.Active = true

	require.NoError(t, repo.AddSensor(ctx, window))
	require.NoError(t, repo.AddSensor(ctx, door))
	require.NoError(t, repo.AddSensor(ctx, duplicate))

	sensors, err = repo.Sensors(ctx)
	require.NoError(t, err)
	require.Len(t, sensors, 2)
	require.Equal(t, door, sensors[0])
	require.Equal(t, window, sensors[1])

	// Updates replace the stored record.
	door.Active = true
	require.NoError(t, repo.UpdateSensor(ctx, door))

	sensors, err = repo.Sensors(ctx)
	require.NoError(t, err)
	require.True(t, sensors[0].Active)

	missing := newTestSensor(t, "Attic", domain.Motion)
	require.ErrorIs(t, repo.UpdateSensor(ctx, missing), domain.ErrSensorNotFound)

	// Removal is keyed by identity and tolerates unknown sensors.
	require.NoError(t, repo.RemoveSensor(ctx, duplicate))
	require.NoError(t, repo.RemoveSensor(ctx, missing))

	sensors, err = repo.Sensors(ctx)
	require.NoError(t, err)
	require.Equal(t, []domain.Sensor{window}, sensors)
}

// TestMemoryRepository_Contract runs the shared contract against MemoryRepository.
func TestMemoryRepository_Contract(t *testing.T) {
	t.Parallel()

	testRepositoryContract(t, NewMemoryRepository())
}
