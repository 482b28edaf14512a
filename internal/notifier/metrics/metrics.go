// Package metrics exports the security state as Prometheus metrics.
package metrics

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	domain "github.com/oshokin/catpoint/internal/domain/security"
	"github.com/oshokin/catpoint/internal/logger"
	repo "github.com/oshokin/catpoint/internal/repository/security"
)

// Camera verdict labels.
const (
	ResultCat   = "cat"
	ResultNoCat = "no_cat"
)

// Listener is a status listener that keeps Prometheus metrics up to date.
type Listener struct {
	// reader is used to refresh sensor and arming gauges.
	reader repo.Reader

	// AlarmStatus is 1 for the current alarm status and 0 for the others.
	AlarmStatus *prometheus.GaugeVec
	// AlarmStatusChanges counts alarm status writes by target status.
	AlarmStatusChanges *prometheus.CounterVec
	// ArmingStatus is 1 for the current arming status and 0 for the others.
	ArmingStatus *prometheus.GaugeVec
	// CameraFrames counts processed frames by verdict.
	CameraFrames *prometheus.CounterVec
	// Sensors is the number of registered sensors.
	Sensors prometheus.Gauge
	// ActiveSensors is the number of active sensors.
	ActiveSensors prometheus.Gauge
}

// New creates a metrics listener registered with reg.
func New(reg prometheus.Registerer, reader repo.Reader) *Listener {
	factory := promauto.With(reg)

	return &Listener{
		reader: reader,
		AlarmStatus: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "catpoint_alarm_status",
			Help: "Current alarm status, 1 for the active status",
		}, []string{"status"}),

		AlarmStatusChanges: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "catpoint_alarm_status_changes_total",
			Help: "Total alarm status writes by target status",
		}, []string{"status"}),

		ArmingStatus: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "catpoint_arming_status",
			Help: "Current arming status, 1 for the active status",
		}, []string{"status"}),

		CameraFrames: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "catpoint_camera_frames_total",
			Help: "Total processed camera frames by verdict",
		}, []string{"result"}),

		Sensors: factory.NewGauge(prometheus.GaugeOpts{
			Name: "catpoint_sensors",
			Help: "Number of registered sensors",
		}),

		ActiveSensors: factory.NewGauge(prometheus.GaugeOpts{
			Name: "catpoint_active_sensors",
			Help: "Number of active sensors",
		}),
	}
}

// Sync loads the current state into the gauges.
func (l *Listener) Sync(ctx context.Context) error {
	status, err := l.reader.AlarmStatus(ctx)
	if err != nil {
		return err
	}

	l.setAlarmStatus(status)

	return l.refresh(ctx)
}

// AlarmStatusChanged records the alarm status write.
func (l *Listener) AlarmStatusChanged(_ context.Context, status domain.AlarmStatus) {
	l.AlarmStatusChanges.WithLabelValues(status.String()).Inc()
	l.setAlarmStatus(status)
}

// CatDetected counts the processed frame.
func (l *Listener) CatDetected(_ context.Context, detected bool) {
	result := ResultNoCat
	if detected {
		result = ResultCat
	}

	l.CameraFrames.WithLabelValues(result).Inc()
}

// SensorStatusChanged refreshes sensor and arming gauges.
func (l *Listener) SensorStatusChanged(ctx context.Context) {
	if err := l.refresh(ctx); err != nil {
		logger.Warnf(logger.WithName(ctx, "metrics"), "Failed to refresh sensor metrics: %v", err)
	}
}

func (l *Listener) refresh(ctx context.Context) error {
	sensors, err := l.reader.Sensors(ctx)
	if err != nil {
		return err
	}

	active := 0

	for _, sensor := range sensors {
		if sensor.Active {
			active++
		}
	}

	l.Sensors.Set(float64(len(sensors)))
	l.ActiveSensors.Set(float64(active))

	arming, err := l.reader.ArmingStatus(ctx)
	if err != nil {
		return err
	}

	for _, status := range domain.ArmingStatuses() {
		l.ArmingStatus.WithLabelValues(status.String()).Set(boolToFloat(status == arming))
	}

	return nil
}

func (l *Listener) setAlarmStatus(current domain.AlarmStatus) {
	for _, status := range domain.AlarmStatuses() {
		l.AlarmStatus.WithLabelValues(status.String()).Set(boolToFloat(status == current))
	}
}

func boolToFloat(v bool) float64 {
	if v {
		return 1
	}

	return 0
}
