// Package security contains core domain types for the home security engine.
//
// It defines Sensor (a monitored door, window or motion point), the
// AlarmStatus and ArmingStatus enumerations, and Snapshot, a consistent view
// of the whole system returned to transports.
package security
