package security

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"
)

// SensorType is the kind of point a sensor monitors.
type SensorType string

// SensorType values.
const (
	// Door sensors report open doors.
	Door SensorType = "DOOR"
	// Window sensors report open windows.
	Window SensorType = "WINDOW"
	// Motion sensors report movement.
	Motion SensorType = "MOTION"
)

var (
	// ErrUnknownSensorType is returned when a sensor type name is not recognised.
	ErrUnknownSensorType = errors.New("unknown sensor type")
	// ErrSensorNotFound is returned when a sensor is not registered.
	ErrSensorNotFound = errors.New("sensor not found")
	// ErrSensorNameRequired is returned when a sensor has an empty name.
	ErrSensorNameRequired = errors.New("sensor name is required")
)

// SensorTypes lists every sensor type.
func SensorTypes() []SensorType {
	return []SensorType{Door, Window, Motion}
}

// String returns the canonical name of the sensor type.
func (t SensorType) String() string {
	return string(t)
}

// ParseSensorType converts a case-insensitive name into a SensorType.
func ParseSensorType(s string) (SensorType, error) {
	normalized := normalize(s)
	for _, t := range SensorTypes() {
		if string(t) == normalized {
			return t, nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownSensorType, s)
}

// SensorKey identifies a sensor. Two sensors with the same key are the same entity.
type SensorKey struct {
	// Name is the user-facing sensor name.
	Name string
	// Type is the monitored point kind.
	Type SensorType
}

// String renders the key as "TYPE:name".
func (k SensorKey) String() string {
	return fmt.Sprintf("%s:%s", k.Type, k.Name)
}

// Sensor is a monitored point with an activation flag.
type Sensor struct {
	// ID is a stable external reference used in topics and discovery payloads.
	// It does not take part in equality; see Key.
	ID uuid.UUID
	// Name is the user-facing sensor name.
	Name string
	// Type is the monitored point kind.
	Type SensorType
	// Active is true while the sensor reports activity.
	Active bool
}

// NewSensor creates an inactive sensor with a fresh identifier.
func NewSensor(name string, sensorType SensorType) (Sensor, error) {
	if name == "" {
		return Sensor{}, ErrSensorNameRequired
	}

	parsed, err := ParseSensorType(string(sensorType))
	if err != nil {
		return Sensor{}, err
	}

	return Sensor{
		ID:   uuid.New(),
		Name: name,
		Type: parsed,
	}, nil
}

// Key returns the identity of the sensor.
func (s Sensor) Key() SensorKey {
	return SensorKey{
		Name: s.Name,
		Type: s.Type,
	}
}

// Same reports whether both sensors describe the same entity.
func (s Sensor) Same(other Sensor) bool {
	return s.Key() == other.Key()
}

// CompareSensors orders sensors by name, then by type.
func CompareSensors(a, b Sensor) int {
	if c := cmp.Compare(a.Name, b.Name); c != 0 {
		return c
	}

	return cmp.Compare(a.Type, b.Type)
}

// SortSensors sorts sensors in place using CompareSensors.
func SortSensors(sensors []Sensor) {
	slices.SortFunc(sensors, CompareSensors)
}

// AnyActive reports whether at least one sensor is active.
func AnyActive(sensors []Sensor) bool {
	return slices.ContainsFunc(sensors, func(s Sensor) bool {
		return s.Active
	})
}

// Snapshot is a consistent view of the system state.
type Snapshot struct {
	// AlarmStatus is the current alert level.
	AlarmStatus AlarmStatus
	// ArmingStatus is the current arming mode.
	ArmingStatus ArmingStatus
	// CatDetected is the verdict of the last processed camera frame.
	CatDetected bool
	// Sensors holds every registered sensor ordered by name and type.
	Sensors []Sensor
}

// Clone returns a copy of the snapshot that does not share the sensor slice.
func (s *Snapshot) Clone() *Snapshot {
	if s == nil {
		return nil
	}

	cloned := *s
	cloned.Sensors = slices.Clone(s.Sensors)

	return &cloned
}
