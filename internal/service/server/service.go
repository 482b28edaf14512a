package server

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/oshokin/catpoint/internal/config"
	"github.com/oshokin/catpoint/internal/imaging"
	"github.com/oshokin/catpoint/internal/logger"
	"github.com/oshokin/catpoint/internal/notifier"
	"github.com/oshokin/catpoint/internal/notifier/metrics"
	"github.com/oshokin/catpoint/internal/notifier/mqtt"
	repo "github.com/oshokin/catpoint/internal/repository/security"
	"github.com/oshokin/catpoint/internal/service/security"
)

// components holds everything the servers share.
type components struct {
	// service is the alarm state machine.
	service *security.Service
	// registry collects the metrics served on /metrics.
	registry *prometheus.Registry
	// closers release resources in reverse order of acquisition.
	closers []func(ctx context.Context)
}

// newComponents builds the repository, classifier, listeners and service described by settings.
func newComponents(ctx context.Context, settings *config.Config) (*components, error) {
	c := &components{
		registry: prometheus.NewRegistry(),
	}

	c.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	repository, err := c.openRepository(ctx, settings.Storage)
	if err != nil {
		c.Close(ctx)

		return nil, err
	}

	listeners, err := c.newListeners(ctx, settings, repository)
	if err != nil {
		c.Close(ctx)

		return nil, err
	}

	c.service = security.New(repository, newClassifier(settings.Camera),
		security.WithSensitivity(settings.Camera.Sensitivity),
		security.WithListeners(listeners...),
	)

	return c, nil
}

// Close releases every acquired resource.
func (c *components) Close(ctx context.Context) {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i](ctx)
	}

	c.closers = nil
}

// openRepository opens the configured storage backend.
func (c *components) openRepository(ctx context.Context, storage config.StorageConfig) (repo.Repository, error) {
	switch storage.Backend {
	case config.BackendMemory:
		return repo.NewMemoryRepository(), nil
	case config.BackendRedis:
		client, err := repo.DialRedis(ctx, storage.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("open redis storage: %w", err)
		}

		c.closers = append(c.closers, func(ctx context.Context) {
			if err := client.Close(); err != nil {
				logger.Warnf(ctx, "Failed to close redis client: %v", err)
			}
		})

		return repo.NewRedisRepository(client, repo.WithRedisPrefix(storage.RedisPrefix)), nil
	default:
		repository, err := repo.OpenFileRepository(ctx, storage.StateFile)
		if err != nil {
			return nil, fmt.Errorf("open file storage: %w", err)
		}

		return repository, nil
	}
}

// newListeners creates the logging and metrics listeners, plus the MQTT publisher when a broker is configured.
func (c *components) newListeners(
	ctx context.Context,
	settings *config.Config,
	reader repo.Reader,
) ([]security.StatusListener, error) {
	metricsListener := metrics.New(c.registry, reader)
	if err := metricsListener.Sync(ctx); err != nil {
		return nil, fmt.Errorf("initialise metrics: %w", err)
	}

	listeners := []security.StatusListener{
		notifier.NewLogListener(reader),
		metricsListener,
	}

	if settings.MQTT.Broker == "" {
		return listeners, nil
	}

	client, err := mqtt.Connect(ctx, mqtt.OptionsFromConfig(settings.MQTT), settings.Timeout)
	if err != nil {
		return nil, err
	}

	var opts []mqtt.PublisherOption
	if settings.MQTT.HADiscovery {
		opts = append(opts, mqtt.WithHADiscovery(settings.MQTT.HADiscoveryPrefix))
	}

	publisher := mqtt.NewPublisher(client, reader, settings.MQTT.BaseTopic, opts...)

	c.closers = append(c.closers, func(ctx context.Context) {
		publisher.Offline(ctx)
		mqtt.Disconnect(client)
	})

	if err = publisher.Announce(ctx); err != nil {
		return nil, fmt.Errorf("announce MQTT state: %w", err)
	}

	logger.InfoKV(ctx, "MQTT publisher connected", "broker", settings.MQTT.Broker, "base_topic", settings.MQTT.BaseTopic)

	return append(listeners, publisher), nil
}

// newClassifier creates the configured classifier.
func newClassifier(camera config.CameraConfig) security.Classifier {
	if camera.Classifier == config.ClassifierHeuristic {
		return imaging.NewHeuristicClassifier()
	}

	return imaging.NewFakeClassifier(uint64(time.Now().UnixNano())) //nolint:gosec // Seed only.
}
