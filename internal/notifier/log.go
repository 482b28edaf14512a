package notifier

import (
	"context"

	domain "github.com/oshokin/catpoint/internal/domain/security"
	"github.com/oshokin/catpoint/internal/logger"
	repo "github.com/oshokin/catpoint/internal/repository/security"
)

// LogListener writes every notification to the context logger.
type LogListener struct {
	// reader is used to describe sensor changes. It may be nil.
	reader repo.Reader
}

// NewLogListener creates a logging listener. When reader is not nil, sensor
// notifications include the number of active sensors.
func NewLogListener(reader repo.Reader) *LogListener {
	return &LogListener{reader: reader}
}

// AlarmStatusChanged logs the new alarm status.
func (l *LogListener) AlarmStatusChanged(ctx context.Context, status domain.AlarmStatus) {
	ctx = logger.WithName(ctx, "notifier")

	if status == domain.Alarm {
		logger.WarnKV(ctx, status.Description(), "alarm_status", status)

		return
	}

	logger.InfoKV(ctx, status.Description(), "alarm_status", status)
}

// CatDetected logs the camera verdict.
func (l *LogListener) CatDetected(ctx context.Context, detected bool) {
	ctx = logger.WithName(ctx, "notifier")

	if detected {
		logger.Info(ctx, "DANGER - CAT DETECTED")

		return
	}

	logger.Debug(ctx, "No cat in the camera frame")
}

// SensorStatusChanged logs how many sensors are active.
func (l *LogListener) SensorStatusChanged(ctx context.Context) {
	ctx = logger.WithName(ctx, "notifier")

	if l.reader == nil {
		logger.Debug(ctx, "Sensors changed")

		return
	}

	sensors, err := l.reader.Sensors(ctx)
	if err != nil {
		logger.Warnf(ctx, "Failed to read sensors: %v", err)

		return
	}

	active := 0

	for _, sensor := range sensors {
		if sensor.Active {
			active++
		}
	}

	logger.DebugKV(ctx, "Sensors changed", "total", len(sensors), "active", active)
}
