package client

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/oshokin/catpoint/internal/config"
	domain "github.com/oshokin/catpoint/internal/domain/security"
	"github.com/oshokin/catpoint/internal/logger"
	"github.com/oshokin/catpoint/internal/service/common"
)

// Options configures how the CLI reaches the server.
type Options struct {
	// ConfigPath to YAML settings file, defaults to standard filename if empty.
	ConfigPath string

	// ServerAddress overrides server address from config when specified.
	ServerAddress string

	// Out receives the printed state. Defaults to stdout.
	Out io.Writer
}

// Session is a connected CLI client.
type Session struct {
	client *common.Client
	out    io.Writer
}

// Run connects to the server, runs action and closes the connection.
func Run(ctx context.Context, opts *Options, action func(ctx context.Context, s *Session) error) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "catpoint")

	// Load settings from configuration file.
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}

	if level, ok := logger.ParseLogLevel(cfg.LogLevel); ok {
		logger.SetLevel(level)
	}

	// Use server address from options if provided, otherwise use config.
	serverAddress := cfg.ServerAddress
	if opts.ServerAddress != "" {
		serverAddress = opts.ServerAddress
	}

	// Identify current user and hostname for audit logging.
	actor, err := common.DetectActor()
	if err != nil {
		return err
	}

	client, err := common.Dial(ctx, serverAddress, common.WithCallTimeout(cfg.Timeout), common.WithActor(actor))
	if err != nil {
		return err
	}

	// Close connection on function exit.
	defer func() {
		_ = client.Close()
	}()

	logger.DebugKV(ctx, "Connected to security server", "server_address", serverAddress, "actor", actor)

	return action(ctx, NewSession(client, opts.Out))
}

// NewSession wraps a connected client. A nil out writes to stdout.
func NewSession(client *common.Client, out io.Writer) *Session {
	if out == nil {
		out = os.Stdout
	}

	return &Session{
		client: client,
		out:    out,
	}
}

// Status prints the current state.
func (s *Session) Status(ctx context.Context) error {
	snapshot, err := s.client.Status(ctx)
	if err != nil {
		return err
	}

	return PrintSnapshot(s.out, snapshot)
}

// SetArmingStatus changes the arming status and prints the resulting state.
func (s *Session) SetArmingStatus(ctx context.Context, status string) error {
	armingStatus, err := domain.ParseArmingStatus(status)
	if err != nil {
		return err
	}

	snapshot, err := s.client.SetArmingStatus(ctx, armingStatus)
	if err != nil {
		return err
	}

	return PrintSnapshot(s.out, snapshot)
}

// AddSensor registers a sensor and prints it.
func (s *Session) AddSensor(ctx context.Context, name, sensorType string) error {
	key, err := parseKey(name, sensorType)
	if err != nil {
		return err
	}

	sensor, err := s.client.AddSensor(ctx, key)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(s.out, "Added %s sensor %q (%s)\n", sensor.Type, sensor.Name, sensor.ID)

	return err
}

// RemoveSensor unregisters a sensor.
func (s *Session) RemoveSensor(ctx context.Context, name, sensorType string) error {
	key, err := parseKey(name, sensorType)
	if err != nil {
		return err
	}

	if err = s.client.RemoveSensor(ctx, key); err != nil {
		return err
	}

	_, err = fmt.Fprintf(s.out, "Removed %s sensor %q\n", key.Type, key.Name)

	return err
}

// SetSensorActive changes a sensor's active flag and prints the resulting state.
func (s *Session) SetSensorActive(ctx context.Context, name, sensorType string, active bool) error {
	key, err := parseKey(name, sensorType)
	if err != nil {
		return err
	}

	snapshot, err := s.client.ChangeSensorActivation(ctx, key, active)
	if err != nil {
		return err
	}

	return PrintSnapshot(s.out, snapshot)
}

// ProcessImage uploads a camera frame and prints the resulting state.
func (s *Session) ProcessImage(ctx context.Context, path string) error {
	frame, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("read image: %w", err)
	}

	snapshot, err := s.client.ProcessImage(ctx, frame)
	if err != nil {
		return err
	}

	return PrintSnapshot(s.out, snapshot)
}

// PrintSnapshot writes a human readable state summary.
func PrintSnapshot(w io.Writer, snapshot *domain.Snapshot) error {
	cat := "no"
	if snapshot.CatDetected {
		cat = "yes"
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	_, _ = fmt.Fprintf(tw, "Alarm:\t%s\t%s\n", snapshot.AlarmStatus, snapshot.AlarmStatus.Description())
	_, _ = fmt.Fprintf(tw, "Arming:\t%s\t%s\n", snapshot.ArmingStatus, snapshot.ArmingStatus.Description())
	_, _ = fmt.Fprintf(tw, "Cat detected:\t%s\t\n", cat)

	if len(snapshot.Sensors) > 0 {
		_, _ = fmt.Fprintln(tw, "\nNAME\tTYPE\tSTATE")

		for _, sensor := range snapshot.Sensors {
			state := "inactive"
			if sensor.Active {
				state = "active"
			}

			_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", sensor.Name, strings.ToLower(sensor.Type.String()), state)
		}
	}

	return tw.Flush()
}

func parseKey(name, sensorType string) (domain.SensorKey, error) {
	sensor, err := domain.NewSensor(name, domain.SensorType(sensorType))
	if err != nil {
		return domain.SensorKey{}, err
	}

	return sensor.Key(), nil
}
