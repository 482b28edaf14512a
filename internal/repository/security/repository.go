package security

import (
	"context"

	domain "github.com/oshokin/catpoint/internal/domain/security"
)

//go:generate mockgen -source=repository.go -destination=../../service/security/mocks/repository.go -package=mocks

// Repository defines persistence operations for the security state.
type Repository interface {
	// Sensors returns every registered sensor ordered by name and type.
	Sensors(ctx context.Context) ([]domain.Sensor, error)
	// AddSensor registers a sensor. An existing sensor with the same key is kept.
	AddSensor(ctx context.Context, sensor domain.Sensor) error
	// RemoveSensor unregisters a sensor. Unknown sensors are ignored.
	RemoveSensor(ctx context.Context, sensor domain.Sensor) error
	// UpdateSensor stores a changed sensor. Unknown sensors yield domain.ErrSensorNotFound.
	UpdateSensor(ctx context.Context, sensor domain.Sensor) error
	// AlarmStatus returns the stored alarm status.
	AlarmStatus(ctx context.Context) (domain.AlarmStatus, error)
	// SetAlarmStatus stores the alarm status.
	SetAlarmStatus(ctx context.Context, status domain.AlarmStatus) error
	// ArmingStatus returns the stored arming status.
	ArmingStatus(ctx context.Context) (domain.ArmingStatus, error)
	// SetArmingStatus stores the arming status.
	SetArmingStatus(ctx context.Context, status domain.ArmingStatus) error
}

// Reader is the read-only view of a Repository handed to status listeners.
type Reader interface {
	Sensors(ctx context.Context) ([]domain.Sensor, error)
	AlarmStatus(ctx context.Context) (domain.AlarmStatus, error)
	ArmingStatus(ctx context.Context) (domain.ArmingStatus, error)
}

const (
	// DefaultAlarmStatus is reported before any alarm status is stored.
	DefaultAlarmStatus = domain.NoAlarm
	// DefaultArmingStatus is reported before any arming status is stored.
	DefaultArmingStatus = domain.Disarmed
)
