package security

import (
	"errors"
	"fmt"
	"strings"
)

// AlarmStatus is the current alert level of the system.
type AlarmStatus string

// AlarmStatus values.
const (
	// NoAlarm means nothing requires attention.
	NoAlarm AlarmStatus = "NO_ALARM"
	// PendingAlarm means a sensor fired while armed and a second event escalates.
	PendingAlarm AlarmStatus = "PENDING_ALARM"
	// Alarm means the alarm is triggered.
	Alarm AlarmStatus = "ALARM"
)

// ArmingStatus tells whether the system is disarmed or armed in a given mode.
type ArmingStatus string

// ArmingStatus values.
const (
	// Disarmed ignores sensor activity.
	Disarmed ArmingStatus = "DISARMED"
	// ArmedHome watches sensors and the camera while people are home.
	ArmedHome ArmingStatus = "ARMED_HOME"
	// ArmedAway watches sensors while the house is empty.
	ArmedAway ArmingStatus = "ARMED_AWAY"
)

var (
	// ErrUnknownAlarmStatus is returned when an alarm status name is not recognised.
	ErrUnknownAlarmStatus = errors.New("unknown alarm status")
	// ErrUnknownArmingStatus is returned when an arming status name is not recognised.
	ErrUnknownArmingStatus = errors.New("unknown arming status")
)

// AlarmStatuses lists every alarm status in escalation order.
func AlarmStatuses() []AlarmStatus {
	return []AlarmStatus{NoAlarm, PendingAlarm, Alarm}
}

// ArmingStatuses lists every arming status.
func ArmingStatuses() []ArmingStatus {
	return []ArmingStatus{Disarmed, ArmedHome, ArmedAway}
}

// String returns the canonical name of the status.
func (s AlarmStatus) String() string {
	return string(s)
}

// Description returns a human readable label used by CLI output.
func (s AlarmStatus) Description() string {
	switch s {
	case NoAlarm:
		return "Cool and Good"
	case PendingAlarm:
		return "I'm in Danger..."
	case Alarm:
		return "Awooga!"
	default:
		return "unknown"
	}
}

// String returns the canonical name of the status.
func (s ArmingStatus) String() string {
	return string(s)
}

// IsArmed reports whether sensors should raise alarms in this mode.
func (s ArmingStatus) IsArmed() bool {
	return s == ArmedHome || s == ArmedAway
}

// Description returns a human readable label used by CLI output.
func (s ArmingStatus) Description() string {
	switch s {
	case Disarmed:
		return "Disarmed"
	case ArmedHome:
		return "Armed - At Home"
	case ArmedAway:
		return "Armed - Away"
	default:
		return "unknown"
	}
}

// ParseAlarmStatus converts a case-insensitive name into an AlarmStatus.
func ParseAlarmStatus(s string) (AlarmStatus, error) {
	normalized := normalize(s)
	for _, status := range AlarmStatuses() {
		if string(status) == normalized {
			return status, nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownAlarmStatus, s)
}

// ParseArmingStatus converts a case-insensitive name into an ArmingStatus.
// The short forms "home" and "away" are accepted as well.
func ParseArmingStatus(s string) (ArmingStatus, error) {
	normalized := normalize(s)
	switch normalized {
	case "HOME":
		return ArmedHome, nil
	case "AWAY":
		return ArmedAway, nil
	}

	for _, status := range ArmingStatuses() {
		if string(status) == normalized {
			return status, nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownArmingStatus, s)
}

// normalize upper-cases the name and accepts dashes in place of underscores.
func normalize(s string) string {
	return strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(s)), "-", "_")
}
