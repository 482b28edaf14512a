// Package notifier holds status listeners that forward security service
// notifications to logs, metrics and MQTT.
package notifier
