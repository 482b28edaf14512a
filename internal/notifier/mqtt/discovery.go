package mqtt

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	domain "github.com/oshokin/catpoint/internal/domain/security"
	"github.com/oshokin/catpoint/internal/version"
)

// Home Assistant components used by the discovery configs.
const (
	componentSensor       = "sensor"
	componentBinarySensor = "binary_sensor"
)

// deviceID groups every catpoint entity under one Home Assistant device.
const deviceID = "catpoint"

// HADiscoveryConfig is a Home Assistant MQTT discovery payload.
type HADiscoveryConfig struct {
	Device      HADiscoveryDevice `json:"device"`
	StateTopic  string            `json:"state_topic"`
	AvTopic     string            `json:"availability_topic,omitempty"`
	DeviceClass string            `json:"device_class,omitempty"`
	Name        string            `json:"name"`
	UniqueID    string            `json:"unique_id"`
	Platform    string            `json:"platform"`
	PayloadOn   string            `json:"payload_on,omitempty"`
	PayloadOff  string            `json:"payload_off,omitempty"`
	Icon        string            `json:"icon,omitempty"`
}

// HADiscoveryDevice describes the device owning the entities.
type HADiscoveryDevice struct {
	ID           []string `json:"identifiers"`
	Manufacturer string   `json:"manufacturer,omitempty"`
	Version      string   `json:"sw_version,omitempty"`
	Model        string   `json:"model,omitempty"`
	Name         string   `json:"name,omitempty"`
}

// discoveryMessage pairs a discovery config with its topic.
type discoveryMessage struct {
	topic  string
	config HADiscoveryConfig
}

// serviceDiscovery returns configs for the entities that exist regardless of sensors.
func serviceDiscovery(p *Publisher) []discoveryMessage {
	return []discoveryMessage{
		{
			topic: discoveryTopic(p.discoveryPrefix, componentSensor, "alarm_status"),
			config: entity(p, HADiscoveryConfig{
				StateTopic: p.AlarmStateTopic(),
				Name:       "Alarm status",
				UniqueID:   "catpoint_alarm_status",
				Icon:       "mdi:shield-home",
			}),
		},
		{
			topic: discoveryTopic(p.discoveryPrefix, componentSensor, "arming_status"),
			config: entity(p, HADiscoveryConfig{
				StateTopic: p.ArmingStateTopic(),
				Name:       "Arming status",
				UniqueID:   "catpoint_arming_status",
				Icon:       "mdi:shield-lock",
			}),
		},
		{
			topic: discoveryTopic(p.discoveryPrefix, componentBinarySensor, "cat_detected"),
			config: entity(p, HADiscoveryConfig{
				StateTopic: p.CatStateTopic(),
				Name:       "Cat detected",
				UniqueID:   "catpoint_cat_detected",
				Icon:       "mdi:cat",
				PayloadOn:  PayloadOn,
				PayloadOff: PayloadOff,
			}),
		},
		{
			topic: discoveryTopic(p.discoveryPrefix, componentBinarySensor, "bridge_state"),
			config: entity(p, HADiscoveryConfig{
				StateTopic:  p.BridgeStateTopic(),
				Name:        "Bridge state",
				UniqueID:    "catpoint_bridge_state",
				DeviceClass: "connectivity",
				PayloadOn:   PayloadOnline,
				PayloadOff:  PayloadOffline,
			}),
		},
	}
}

// sensorDiscovery returns the binary sensor config of a registered sensor.
func sensorDiscovery(p *Publisher, sensor domain.Sensor) discoveryMessage {
	return discoveryMessage{
		topic: sensorDiscoveryTopic(p.discoveryPrefix, sensor),
		config: entity(p, HADiscoveryConfig{
			StateTopic:  p.SensorStateTopic(sensor.ID),
			Name:        sensor.Name,
			UniqueID:    "catpoint_sensor_" + sensor.ID.String(),
			DeviceClass: deviceClass(sensor.Type),
			PayloadOn:   PayloadOn,
			PayloadOff:  PayloadOff,
		}),
	}
}

// entity fills the fields shared by every config.
func entity(p *Publisher, cfg HADiscoveryConfig) HADiscoveryConfig {
	cfg.Device = HADiscoveryDevice{
		ID:           []string{deviceID},
		Manufacturer: "catpoint",
		Version:      version.Short(),
		Model:        "Home security",
		Name:         "Catpoint",
	}
	cfg.Platform = "mqtt"

	if cfg.AvTopic == "" && cfg.StateTopic != p.BridgeStateTopic() {
		cfg.AvTopic = p.BridgeStateTopic()
	}

	return cfg
}

func deviceClass(sensorType domain.SensorType) string {
	switch sensorType {
	case domain.Door:
		return "door"
	case domain.Window:
		return "window"
	case domain.Motion:
		return "motion"
	default:
		return ""
	}
}

func discoveryTopic(prefix, component, objectID string) string {
	return fmt.Sprintf("%s/%s/%s/%s/config", prefix, component, deviceID, objectID)
}

func sensorDiscoveryTopic(prefix string, sensor domain.Sensor) string {
	return discoveryTopic(prefix, componentBinarySensor, "sensor_"+strings.ReplaceAll(sensor.ID.String(), "-", ""))
}

func (p *Publisher) publishJSON(ctx context.Context, topic string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal discovery config: %w", err)
	}

	p.publish(ctx, topic, payload)

	return nil
}
