package security

import (
	"context"
	"maps"
	"slices"
	"sync"

	domain "github.com/oshokin/catpoint/internal/domain/security"
)

// MemoryRepository keeps the security state in process memory.
type MemoryRepository struct {
	// sensors holds registered sensors keyed by name and type.
	sensors map[domain.SensorKey]domain.Sensor
	// alarmStatus is the stored alarm status.
	alarmStatus domain.AlarmStatus
	// armingStatus is the stored arming status.
	armingStatus domain.ArmingStatus
	// mu protects the fields above.
	mu sync.RWMutex
}

// NewMemoryRepository creates an empty repository with default statuses.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		sensors:      make(map[domain.SensorKey]domain.Sensor),
		alarmStatus:  DefaultAlarmStatus,
		armingStatus: DefaultArmingStatus,
	}
}

// Sensors returns every registered sensor ordered by name and type.
func (r *MemoryRepository) Sensors(_ context.Context) ([]domain.Sensor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sortedSensors(), nil
}

// AddSensor registers a sensor unless one with the same key exists.
func (r *MemoryRepository) AddSensor(_ context.Context, sensor domain.Sensor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sensors[sensor.Key()]; !ok {
		r.sensors[sensor.Key()] = sensor
	}

	return nil
}

// RemoveSensor unregisters a sensor.
func (r *MemoryRepository) RemoveSensor(_ context.Context, sensor domain.Sensor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sensors, sensor.Key())

	return nil
}

// UpdateSensor replaces a registered sensor.
func (r *MemoryRepository) UpdateSensor(_ context.Context, sensor domain.Sensor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sensors[sensor.Key()]; !ok {
		return domain.ErrSensorNotFound
	}

	r.sensors[sensor.Key()] = sensor

	return nil
}

// AlarmStatus returns the stored alarm status.
func (r *MemoryRepository) AlarmStatus(_ context.Context) (domain.AlarmStatus, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.alarmStatus, nil
}

// SetAlarmStatus stores the alarm status.
func (r *MemoryRepository) SetAlarmStatus(_ context.Context, status domain.AlarmStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.alarmStatus = status

	return nil
}

// ArmingStatus returns the stored arming status.
func (r *MemoryRepository) ArmingStatus(_ context.Context) (domain.ArmingStatus, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.armingStatus, nil
}

// SetArmingStatus stores the arming status.
func (r *MemoryRepository) SetArmingStatus(_ context.Context, status domain.ArmingStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.armingStatus = status

	return nil
}

// document returns the whole state for serialization. The caller holds mu.
func (r *MemoryRepository) document() *document {
	return &document{
		AlarmStatus:  r.alarmStatus,
		ArmingStatus: r.armingStatus,
		Sensors:      r.sortedSensors(),
	}
}

// restore replaces the whole state. The caller holds mu.
func (r *MemoryRepository) restore(doc *document) {
	r.alarmStatus = doc.AlarmStatus
	r.armingStatus = doc.ArmingStatus
	r.sensors = make(map[domain.SensorKey]domain.Sensor, len(doc.Sensors))

	for _, sensor := range doc.Sensors {
		r.sensors[sensor.Key()] = sensor
	}
}

// sortedSensors copies the sensor map into an ordered slice. The caller holds mu.
func (r *MemoryRepository) sortedSensors() []domain.Sensor {
	return slices.SortedFunc(maps.Values(r.sensors), domain.CompareSensors)
}
