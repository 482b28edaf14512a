// Package security implements the alarm state machine.
//
// Service derives the alarm status from sensor activity, the arming status
// and camera verdicts, keeps sensors consistent when the system is armed, and
// notifies registered status listeners synchronously. All durable state lives
// in the repository handed to New.
package security
