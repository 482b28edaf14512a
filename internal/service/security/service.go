package security

import (
	"context"
	"fmt"
	"image"
	"reflect"
	"slices"
	"sync"

	domain "github.com/oshokin/catpoint/internal/domain/security"
	"github.com/oshokin/catpoint/internal/logger"
	repo "github.com/oshokin/catpoint/internal/repository/security"
)

// DefaultSensitivity is the classifier confidence threshold in percent.
const DefaultSensitivity float32 = 50

// Service is the alarm state machine.
type Service struct {
	// repo holds sensors, alarm status and arming status.
	repo repo.Repository
	// classifier judges camera frames.
	classifier Classifier
	// sensitivity is the threshold handed to the classifier.
	sensitivity float32
	// listeners are notified in registration order.
	listeners []StatusListener
	// catDetected is the verdict of the last processed frame. It is not persisted.
	catDetected bool
	// mu serializes every operation so state checks and writes cannot interleave.
	mu sync.Mutex
}

// Option configures a Service.
type Option func(*Service)

// WithSensitivity overrides the classifier threshold.
func WithSensitivity(sensitivity float32) Option {
	return func(s *Service) {
		if sensitivity > 0 {
			s.sensitivity = sensitivity
		}
	}
}

// WithListeners registers listeners at construction.
func WithListeners(listeners ...StatusListener) Option {
	return func(s *Service) {
		for _, l := range listeners {
			s.addListener(l)
		}
	}
}

// New creates a service backed by the provided repository and classifier.
func New(repository repo.Repository, classifier Classifier, opts ...Option) *Service {
	s := &Service{
		repo:        repository,
		classifier:  classifier,
		sensitivity: DefaultSensitivity,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// AddStatusListener registers a listener. Registering the same listener twice has no effect.
// Listeners should be pointers: a value of a non-comparable type is always added.
func (s *Service) AddStatusListener(listener StatusListener) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.addListener(listener)
}

// RemoveStatusListener unregisters a listener.
func (s *Service) RemoveStatusListener(listener StatusListener) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.listeners = slices.DeleteFunc(s.listeners, func(l StatusListener) bool {
		return sameListener(l, listener)
	})
}

// SetArmingStatus stores the arming status and applies its consequences:
// disarming clears the alarm, arming deactivates every sensor, and arming at
// home while a cat is in view triggers the alarm.
func (s *Service) SetArmingStatus(ctx context.Context, status domain.ArmingStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx = logger.WithName(ctx, "security")

	if err := s.repo.SetArmingStatus(ctx, status); err != nil {
		return fmt.Errorf("store arming status: %w", err)
	}

	logger.InfoKV(ctx, "Arming status changed", "arming_status", status)

	if status == domain.Disarmed {
		if err := s.setAlarmStatus(ctx, domain.NoAlarm); err != nil {
			return err
		}
	} else {
		if err := s.deactivateAll(ctx); err != nil {
			return err
		}

		if s.catDetected && status == domain.ArmedHome {
			if err := s.setAlarmStatus(ctx, domain.Alarm); err != nil {
				return err
			}
		}
	}

	s.notifySensorStatusChanged(ctx)

	return nil
}

// ChangeSensorActivationStatus sets the active flag of the registered sensor
// with the same key, stores it and moves the alarm status according to the
// activation rules. The stored record is the source of truth: the ID and flag
// of the passed sensor are ignored. It returns the stored sensor.
func (s *Service) ChangeSensorActivationStatus(
	ctx context.Context,
	sensor domain.Sensor,
	active bool,
) (domain.Sensor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := sensor.Key()
	ctx = logger.WithKV(logger.WithName(ctx, "security"), "sensor", key.String())

	sensors, err := s.repo.Sensors(ctx)
	if err != nil {
		return domain.Sensor{}, fmt.Errorf("read sensors: %w", err)
	}

	index := slices.IndexFunc(sensors, func(stored domain.Sensor) bool {
		return stored.Key() == key
	})
	if index < 0 {
		return domain.Sensor{}, fmt.Errorf("%s: %w", key, domain.ErrSensorNotFound)
	}

	sensor = sensors[index]
	wasActive := sensor.Active
	sensor.Active = active
	sensors[index] = sensor

	// Deactivating an inactive sensor never moves the alarm status.
	if !active && !wasActive {
		if err = s.storeSensor(ctx, sensor); err != nil {
			return domain.Sensor{}, err
		}

		return sensor, nil
	}

	alarmStatus, err := s.repo.AlarmStatus(ctx)
	if err != nil {
		return domain.Sensor{}, fmt.Errorf("read alarm status: %w", err)
	}

	if err = s.storeSensor(ctx, sensor); err != nil {
		return domain.Sensor{}, err
	}

	// The alarm only clears by disarming or through a cat-free camera frame.
	if alarmStatus == domain.Alarm {
		return sensor, nil
	}

	if active {
		err = s.handleSensorActivated(ctx, alarmStatus)
	} else {
		err = s.handleSensorDeactivated(ctx, alarmStatus, sensors)
	}

	if err != nil {
		return domain.Sensor{}, err
	}

	return sensor, nil
}

// ProcessImage classifies a camera frame, remembers the verdict and updates
// the alarm status. It returns the verdict.
func (s *Service) ProcessImage(ctx context.Context, img image.Image) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx = logger.WithName(ctx, "security")

	detected, err := s.classifier.ContainsCat(ctx, img, s.sensitivity)
	if err != nil {
		return false, fmt.Errorf("classify image: %w", err)
	}

	s.catDetected = detected

	logger.InfoKV(ctx, "Camera frame processed", "cat_detected", detected, "sensitivity", s.sensitivity)

	if detected {
		armingStatus, err := s.repo.ArmingStatus(ctx)
		if err != nil {
			return false, fmt.Errorf("read arming status: %w", err)
		}

		if armingStatus == domain.ArmedHome {
			if err = s.setAlarmStatus(ctx, domain.Alarm); err != nil {
				return false, err
			}
		}
	} else {
		anyActive, err := s.anySensorActive(ctx)
		if err != nil {
			return false, err
		}

		if !anyActive {
			if err = s.setAlarmStatus(ctx, domain.NoAlarm); err != nil {
				return false, err
			}
		}
	}

	for _, l := range s.listeners {
		l.CatDetected(ctx, detected)
	}

	return detected, nil
}

// AddSensor registers a sensor.
func (s *Service) AddSensor(ctx context.Context, sensor domain.Sensor) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.AddSensor(ctx, sensor); err != nil {
		return fmt.Errorf("add sensor: %w", err)
	}

	logger.InfoKV(logger.WithName(ctx, "security"), "Sensor added", "sensor", sensor.Key().String())
	s.notifySensorStatusChanged(ctx)

	return nil
}

// RemoveSensor unregisters a sensor.
func (s *Service) RemoveSensor(ctx context.Context, sensor domain.Sensor) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.RemoveSensor(ctx, sensor); err != nil {
		return fmt.Errorf("remove sensor: %w", err)
	}

	logger.InfoKV(logger.WithName(ctx, "security"), "Sensor removed", "sensor", sensor.Key().String())
	s.notifySensorStatusChanged(ctx)

	return nil
}

// FindSensor returns the registered sensor with the given key.
func (s *Service) FindSensor(ctx context.Context, key domain.SensorKey) (domain.Sensor, error) {
	sensors, err := s.Sensors(ctx)
	if err != nil {
		return domain.Sensor{}, err
	}

	for _, sensor := range sensors {
		if sensor.Key() == key {
			return sensor, nil
		}
	}

	return domain.Sensor{}, fmt.Errorf("%s: %w", key, domain.ErrSensorNotFound)
}

// Sensors returns every registered sensor.
func (s *Service) Sensors(ctx context.Context) ([]domain.Sensor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sensors, err := s.repo.Sensors(ctx)
	if err != nil {
		return nil, fmt.Errorf("read sensors: %w", err)
	}

	return sensors, nil
}

// AlarmStatus returns the stored alarm status.
func (s *Service) AlarmStatus(ctx context.Context) (domain.AlarmStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	status, err := s.repo.AlarmStatus(ctx)
	if err != nil {
		return "", fmt.Errorf("read alarm status: %w", err)
	}

	return status, nil
}

// ArmingStatus returns the stored arming status.
func (s *Service) ArmingStatus(ctx context.Context) (domain.ArmingStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	status, err := s.repo.ArmingStatus(ctx)
	if err != nil {
		return "", fmt.Errorf("read arming status: %w", err)
	}

	return status, nil
}

// CatDetected returns the verdict of the last processed frame.
func (s *Service) CatDetected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.catDetected
}

// Snapshot returns the whole state in one consistent read.
func (s *Service) Snapshot(ctx context.Context) (*domain.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	alarmStatus, err := s.repo.AlarmStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("read alarm status: %w", err)
	}

	armingStatus, err := s.repo.ArmingStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("read arming status: %w", err)
	}

	sensors, err := s.repo.Sensors(ctx)
	if err != nil {
		return nil, fmt.Errorf("read sensors: %w", err)
	}

	return &domain.Snapshot{
		AlarmStatus:  alarmStatus,
		ArmingStatus: armingStatus,
		CatDetected:  s.catDetected,
		Sensors:      sensors,
	}, nil
}

// handleSensorActivated escalates the alarm while armed.
func (s *Service) handleSensorActivated(ctx context.Context, alarmStatus domain.AlarmStatus) error {
	armingStatus, err := s.repo.ArmingStatus(ctx)
	if err != nil {
		return fmt.Errorf("read arming status: %w", err)
	}

	if armingStatus == domain.Disarmed {
		return nil
	}

	switch alarmStatus {
	case domain.NoAlarm:
		return s.setAlarmStatus(ctx, domain.PendingAlarm)
	case domain.PendingAlarm:
		return s.setAlarmStatus(ctx, domain.Alarm)
	default:
		return nil
	}
}

// handleSensorDeactivated clears a pending alarm once the last active sensor
// goes quiet. sensors is the registered set after the update.
func (s *Service) handleSensorDeactivated(
	ctx context.Context,
	alarmStatus domain.AlarmStatus,
	sensors []domain.Sensor,
) error {
	if alarmStatus != domain.PendingAlarm || domain.AnyActive(sensors) {
		return nil
	}

	return s.setAlarmStatus(ctx, domain.NoAlarm)
}

// deactivateAll resets every sensor without applying the deactivation rules.
func (s *Service) deactivateAll(ctx context.Context) error {
	sensors, err := s.repo.Sensors(ctx)
	if err != nil {
		return fmt.Errorf("read sensors: %w", err)
	}

	for _, sensor := range sensors {
		sensor.Active = false

		if err = s.repo.UpdateSensor(ctx, sensor); err != nil {
			return fmt.Errorf("reset sensor %s: %w", sensor.Key(), err)
		}
	}

	return nil
}

// storeSensor writes the sensor back and notifies listeners.
func (s *Service) storeSensor(ctx context.Context, sensor domain.Sensor) error {
	if err := s.repo.UpdateSensor(ctx, sensor); err != nil {
		return fmt.Errorf("store sensor: %w", err)
	}

	logger.DebugKV(ctx, "Sensor activation changed", "active", sensor.Active)
	s.notifySensorStatusChanged(ctx)

	return nil
}

// anySensorActive reports whether a registered sensor is active.
func (s *Service) anySensorActive(ctx context.Context) (bool, error) {
	sensors, err := s.repo.Sensors(ctx)
	if err != nil {
		return false, fmt.Errorf("read sensors: %w", err)
	}

	return domain.AnyActive(sensors), nil
}

// setAlarmStatus stores the alarm status and notifies listeners.
func (s *Service) setAlarmStatus(ctx context.Context, status domain.AlarmStatus) error {
	if err := s.repo.SetAlarmStatus(ctx, status); err != nil {
		return fmt.Errorf("store alarm status: %w", err)
	}

	logger.InfoKV(ctx, "Alarm status changed", "alarm_status", status)

	for _, l := range s.listeners {
		l.AlarmStatusChanged(ctx, status)
	}

	return nil
}

// notifySensorStatusChanged tells listeners that sensors changed.
func (s *Service) notifySensorStatusChanged(ctx context.Context) {
	for _, l := range s.listeners {
		l.SensorStatusChanged(ctx)
	}
}

// addListener appends a listener unless it is nil or already registered. The caller holds mu.
func (s *Service) addListener(listener StatusListener) {
	if listener == nil {
		return
	}

	for _, l := range s.listeners {
		if sameListener(l, listener) {
			return
		}
	}

	s.listeners = append(s.listeners, listener)
}

// sameListener reports whether a and b are the same listener. Values of a
// non-comparable type never match, so they cannot be deduplicated or removed.
func sameListener(a, b StatusListener) bool {
	ta := reflect.TypeOf(a)
	if ta != reflect.TypeOf(b) || !ta.Comparable() {
		return false
	}

	return a == b
}
