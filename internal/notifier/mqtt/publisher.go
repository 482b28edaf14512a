package mqtt

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	domain "github.com/oshokin/catpoint/internal/domain/security"
	"github.com/oshokin/catpoint/internal/logger"
	repo "github.com/oshokin/catpoint/internal/repository/security"
)

// DefaultPublishTimeout bounds how long a publish acknowledgement is awaited.
const DefaultPublishTimeout = time.Second

// Publisher is a status listener that mirrors the security state to retained MQTT topics.
type Publisher struct {
	client    Client
	reader    repo.Reader
	baseTopic string
	timeout   time.Duration
	// discoveryPrefix enables Home Assistant discovery when not empty.
	discoveryPrefix string

	// announced holds sensors whose discovery config was published.
	announced map[uuid.UUID]domain.Sensor
	mu        sync.Mutex
	// pending tracks publish acknowledgements still awaited.
	pending sync.WaitGroup
}

// PublisherOption configures a Publisher.
type PublisherOption func(*Publisher)

// WithHADiscovery enables Home Assistant discovery under the provided prefix.
func WithHADiscovery(prefix string) PublisherOption {
	return func(p *Publisher) {
		p.discoveryPrefix = prefix
	}
}

// WithPublishTimeout overrides DefaultPublishTimeout.
func WithPublishTimeout(timeout time.Duration) PublisherOption {
	return func(p *Publisher) {
		if timeout > 0 {
			p.timeout = timeout
		}
	}
}

// NewPublisher creates a publisher writing below baseTopic.
func NewPublisher(client Client, reader repo.Reader, baseTopic string, opts ...PublisherOption) *Publisher {
	p := &Publisher{
		client:    client,
		reader:    reader,
		baseTopic: baseTopic,
		timeout:   DefaultPublishTimeout,
		announced: make(map[uuid.UUID]domain.Sensor),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Announce marks the bridge online, publishes discovery configs and the current state.
func (p *Publisher) Announce(ctx context.Context) error {
	ctx = logger.WithName(ctx, "mqtt")

	p.publish(ctx, p.BridgeStateTopic(), PayloadOnline)

	if p.discoveryPrefix != "" {
		for _, msg := range serviceDiscovery(p) {
			if err := p.publishJSON(ctx, msg.topic, msg.config); err != nil {
				return err
			}
		}
	}

	status, err := p.reader.AlarmStatus(ctx)
	if err != nil {
		return fmt.Errorf("read alarm status: %w", err)
	}

	p.publish(ctx, p.AlarmStateTopic(), status.String())

	return p.publishSensors(ctx)
}

// Offline marks the bridge offline and waits for pending acknowledgements.
func (p *Publisher) Offline(ctx context.Context) {
	p.publish(logger.WithName(ctx, "mqtt"), p.BridgeStateTopic(), PayloadOffline)
	p.pending.Wait()
}

// AlarmStatusChanged publishes the alarm status.
func (p *Publisher) AlarmStatusChanged(ctx context.Context, status domain.AlarmStatus) {
	p.publish(logger.WithName(ctx, "mqtt"), p.AlarmStateTopic(), status.String())
}

// CatDetected publishes the camera verdict.
func (p *Publisher) CatDetected(ctx context.Context, detected bool) {
	p.publish(logger.WithName(ctx, "mqtt"), p.CatStateTopic(), boolPayload(detected))
}

// SensorStatusChanged publishes the arming status and every sensor state.
func (p *Publisher) SensorStatusChanged(ctx context.Context) {
	ctx = logger.WithName(ctx, "mqtt")

	if err := p.publishSensors(ctx); err != nil {
		logger.Warnf(ctx, "Failed to publish sensor states: %v", err)
	}
}

// BridgeStateTopic returns the availability topic.
func (p *Publisher) BridgeStateTopic() string {
	return bridgeStateTopic(p.baseTopic)
}

// AlarmStateTopic returns the alarm status topic.
func (p *Publisher) AlarmStateTopic() string {
	return fmt.Sprintf("%s/alarm/state", p.baseTopic)
}

// ArmingStateTopic returns the arming status topic.
func (p *Publisher) ArmingStateTopic() string {
	return fmt.Sprintf("%s/arming/state", p.baseTopic)
}

// CatStateTopic returns the camera verdict topic.
func (p *Publisher) CatStateTopic() string {
	return fmt.Sprintf("%s/camera/cat", p.baseTopic)
}

// SensorStateTopic returns the state topic of a sensor.
func (p *Publisher) SensorStateTopic(id uuid.UUID) string {
	return fmt.Sprintf("%s/sensor/%s/state", p.baseTopic, id)
}

func (p *Publisher) publishSensors(ctx context.Context) error {
	arming, err := p.reader.ArmingStatus(ctx)
	if err != nil {
		return fmt.Errorf("read arming status: %w", err)
	}

	sensors, err := p.reader.Sensors(ctx)
	if err != nil {
		return fmt.Errorf("read sensors: %w", err)
	}

	p.publish(ctx, p.ArmingStateTopic(), arming.String())

	if p.discoveryPrefix != "" {
		if err = p.syncSensorDiscovery(ctx, sensors); err != nil {
			return err
		}
	}

	for _, sensor := range sensors {
		p.publish(ctx, p.SensorStateTopic(sensor.ID), boolPayload(sensor.Active))
	}

	return nil
}

// syncSensorDiscovery announces new sensors and withdraws removed ones.
func (p *Publisher) syncSensorDiscovery(ctx context.Context, sensors []domain.Sensor) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	current := make(map[uuid.UUID]struct{}, len(sensors))

	for _, sensor := range sensors {
		current[sensor.ID] = struct{}{}

		if _, ok := p.announced[sensor.ID]; ok {
			continue
		}

		msg := sensorDiscovery(p, sensor)
		if err := p.publishJSON(ctx, msg.topic, msg.config); err != nil {
			return err
		}

		p.announced[sensor.ID] = sensor
	}

	for id, sensor := range p.announced {
		if _, ok := current[id]; ok {
			continue
		}

		// An empty retained config removes the entity from Home Assistant.
		p.publish(ctx, sensorDiscoveryTopic(p.discoveryPrefix, sensor), "")
		delete(p.announced, id)
	}

	return nil
}

// publish sends a retained message and logs a failed acknowledgement in the background.
func (p *Publisher) publish(ctx context.Context, topic string, payload any) {
	token := p.client.Publish(topic, 0, true, payload)

	p.pending.Add(1)

	go func() {
		defer p.pending.Done()

		if !token.WaitTimeout(p.timeout) {
			logger.WarnKV(ctx, errPublishTimeout.Error(), "topic", topic)

			return
		}

		if err := token.Error(); err != nil {
			logger.WarnKV(ctx, "MQTT publish failed", "topic", topic, "error", err)
		}
	}()
}

func boolPayload(v bool) string {
	if v {
		return PayloadOn
	}

	return PayloadOff
}
