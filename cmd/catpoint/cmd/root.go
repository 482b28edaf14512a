package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/oshokin/catpoint/internal/config"
	"github.com/oshokin/catpoint/internal/domain/security"
	client "github.com/oshokin/catpoint/internal/service/client"
	"github.com/oshokin/catpoint/internal/service/watcher"
	"github.com/oshokin/catpoint/internal/version"
)

var (
	// cfgPath stores the configuration file path.
	cfgPath string
	// serverAddress overrides the server address from the configuration.
	serverAddress string

	// rootCmd represents the base command of the client.
	rootCmd = &cobra.Command{
		Use:   "catpoint",
		Short: "Control the catpoint home security system.",
		Long: `Reads and changes the state of a catpoint security server.

Arm the system at home or away, disarm it, manage door, window and motion sensors,
and submit camera frames for cat detection. Every command prints the resulting state.`,
		SilenceUsage: true,
	}
)

// run executes action against the configured server with signal handling.
func run(cmd *cobra.Command, action func(ctx context.Context, s *client.Session) error) error {
	// Setup graceful shutdown handling.
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	return client.Run(ctx, &client.Options{
		ConfigPath:    cfgPath,
		ServerAddress: serverAddress,
		Out:           cmd.OutOrStdout(),
	}, action)
}

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Print the alarm status, arming status and sensors.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, func(ctx context.Context, s *client.Session) error {
				return s.Status(ctx)
			})
		},
	}
}

func newArmCommand() *cobra.Command {
	return &cobra.Command{
		Use:       "arm home|away",
		Short:     "Arm the system. Every sensor is reset.",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"home", "away"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(ctx context.Context, s *client.Session) error {
				return s.SetArmingStatus(ctx, args[0])
			})
		},
	}
}

func newDisarmCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "disarm",
		Short: "Disarm the system and clear the alarm.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, func(ctx context.Context, s *client.Session) error {
				return s.SetArmingStatus(ctx, security.Disarmed.String())
			})
		},
	}
}

func newSensorCommand() *cobra.Command {
	sensorCmd := &cobra.Command{
		Use:   "sensor",
		Short: "Manage door, window and motion sensors.",
	}

	sensorCmd.AddCommand(
		&cobra.Command{
			Use:   "add <name> <door|window|motion>",
			Short: "Register a sensor.",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return run(cmd, func(ctx context.Context, s *client.Session) error {
					return s.AddSensor(ctx, args[0], args[1])
				})
			},
		},
		&cobra.Command{
			Use:   "remove <name> <door|window|motion>",
			Short: "Unregister a sensor.",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return run(cmd, func(ctx context.Context, s *client.Session) error {
					return s.RemoveSensor(ctx, args[0], args[1])
				})
			},
		},
		newActivationCommand("activate", "Report activity on a sensor.", true),
		newActivationCommand("deactivate", "Report that a sensor is quiet.", false),
	)

	return sensorCmd
}

func newActivationCommand(use, short string, active bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <name> <door|window|motion>",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(ctx context.Context, s *client.Session) error {
				return s.SetSensorActive(ctx, args[0], args[1], active)
			})
		},
	}
}

func newImageCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "image <file>",
		Short: "Submit a PNG, JPEG or GIF camera frame for cat detection.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(ctx context.Context, s *client.Session) error {
				return s.ProcessImage(ctx, args[0])
			})
		},
	}
}

func newWatchCommand() *cobra.Command {
	var interval time.Duration

	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "Poll the server and print every state transition until interrupted.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			return watcher.Run(ctx, &watcher.Options{
				ConfigPath:    cfgPath,
				ServerAddress: serverAddress,
				PollInterval:  interval,
				Out:           cmd.OutOrStdout(),
			})
		},
	}

	watchCmd.Flags().DurationVarP(&interval, "interval", "i", watcher.DefaultPollInterval, "poll interval")

	return watchCmd
}

// Execute runs the catpoint CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	rootCmd.PersistentFlags().
		StringVarP(&cfgPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	rootCmd.PersistentFlags().StringVarP(&serverAddress, "server", "s", "", "server address override")

	rootCmd.AddCommand(
		newStatusCommand(),
		newArmCommand(),
		newDisarmCommand(),
		newSensorCommand(),
		newImageCommand(),
		newWatchCommand(),
	)
}
