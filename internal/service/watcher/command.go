package watcher

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"time"

	"github.com/oshokin/catpoint/internal/config"
	domain "github.com/oshokin/catpoint/internal/domain/security"
	"github.com/oshokin/catpoint/internal/logger"
	"github.com/oshokin/catpoint/internal/service/common"
)

// Options controls the watcher polling behavior and configuration.
type Options struct {
	// ConfigPath specifies the path to the settings YAML file.
	ConfigPath string
	// ServerAddress provides an optional gRPC server address override.
	ServerAddress string
	// PollInterval defines the interval between status checks.
	PollInterval time.Duration
	// Out receives one line per observed transition. Defaults to stdout.
	Out io.Writer
}

// DefaultPollInterval is used when no interval is provided.
const DefaultPollInterval = 2 * time.Second

// StatusSource provides snapshots to poll.
type StatusSource interface {
	Status(ctx context.Context) (*domain.Snapshot, error)
}

// Run polls the server until the context is canceled and prints every alarm,
// arming or camera transition.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "catpoint-watch")

	// Load settings from configuration file.
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	// Determine server address: command line argument overrides config.
	serverAddress := cfg.ServerAddress
	if opts.ServerAddress != "" {
		serverAddress = opts.ServerAddress
	}

	actor, err := common.DetectActor()
	if err != nil {
		return fmt.Errorf("detect actor: %w", err)
	}

	client, err := common.Dial(ctx, serverAddress, common.WithCallTimeout(cfg.Timeout), common.WithActor(actor))
	if err != nil {
		return fmt.Errorf("dial server: %w", err)
	}

	// Ensure connection cleanup on function exit.
	defer func() {
		_ = client.Close()
	}()

	logger.InfoKV(ctx, "Watching security status", "server_address", serverAddress, "interval", opts.PollInterval.String())

	return Watch(ctx, client, opts.PollInterval, opts.Out)
}

// Watch polls source every interval and writes transitions to out.
// Poll failures are logged and retried on the next tick.
func Watch(ctx context.Context, source StatusSource, interval time.Duration, out io.Writer) error {
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	if out == nil {
		out = os.Stdout
	}

	var previous *domain.Snapshot

	poll := func() {
		current, err := source.Status(ctx)
		if err != nil {
			logger.ErrorKV(ctx, "Status check failed", "error", err)

			return
		}

		for _, line := range transitions(previous, current) {
			_, _ = fmt.Fprintf(out, "%s %s\n", time.Now().Format(time.RFC3339), line)
		}

		previous = current
	}

	poll()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "Context canceled, exiting")

			return nil
		case <-ticker.C:
			poll()
		}
	}
}

// transitions describes what changed between two snapshots. A nil previous
// snapshot reports the full current state.
func transitions(previous, current *domain.Snapshot) []string {
	var lines []string

	if previous == nil || previous.AlarmStatus != current.AlarmStatus {
		lines = append(lines, fmt.Sprintf("alarm %s: %s", current.AlarmStatus, current.AlarmStatus.Description()))
	}

	if previous == nil || previous.ArmingStatus != current.ArmingStatus {
		lines = append(lines, fmt.Sprintf("arming %s: %s", current.ArmingStatus, current.ArmingStatus.Description()))
	}

	if previous == nil || previous.CatDetected != current.CatDetected {
		if current.CatDetected {
			lines = append(lines, "camera: cat detected")
		} else {
			lines = append(lines, "camera: no cat")
		}
	}

	active := activeSensors(current.Sensors)

	if previous == nil {
		return append(lines, fmt.Sprintf("sensors: %d registered, %d active", len(current.Sensors), len(active)))
	}

	before := activeSensors(previous.Sensors)

	for _, key := range sortedKeys(active) {
		if _, ok := before[key]; !ok {
			lines = append(lines, fmt.Sprintf("sensor %s: active", key))
		}
	}

	for _, key := range sortedKeys(before) {
		if _, ok := active[key]; !ok {
			lines = append(lines, fmt.Sprintf("sensor %s: inactive", key))
		}
	}

	return lines
}

func activeSensors(sensors []domain.Sensor) map[domain.SensorKey]struct{} {
	active := make(map[domain.SensorKey]struct{})

	for _, sensor := range sensors {
		if sensor.Active {
			active[sensor.Key()] = struct{}{}
		}
	}

	return active
}

// sortedKeys orders sensor keys by name, then type.
func sortedKeys(set map[domain.SensorKey]struct{}) []domain.SensorKey {
	return slices.SortedFunc(maps.Keys(set), func(a, b domain.SensorKey) int {
		return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.Type, b.Type))
	})
}
