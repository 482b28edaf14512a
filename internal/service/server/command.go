package server

import (
	"context"
	"errors"
	"fmt"
	"net"

	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	"github.com/oshokin/catpoint/internal/api/admin"
	api "github.com/oshokin/catpoint/internal/api/grpc/security"
	"github.com/oshokin/catpoint/internal/config"
	"github.com/oshokin/catpoint/internal/logger"
	"github.com/oshokin/catpoint/internal/version"
)

// Options controls the catpoint-server process and configuration.
type Options struct {
	// ConfigPath specifies the path to settings YAML file.
	ConfigPath string
	// ListenAddress provides an optional listen address override for the gRPC server.
	ListenAddress string
	// HTTPAddress provides an optional listen address override for the admin server.
	HTTPAddress string
	// StateFile overrides the state file of the file backend.
	StateFile string
}

// ErrNoServerAddress indicates missing server configuration.
var ErrNoServerAddress = errors.New("no server address configured")

// Run starts the gRPC and admin servers and blocks until context is canceled or a server stops.
// Loads configuration first, then determines listen addresses from config or overrides.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "catpoint-server")

	settings, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	if level, ok := logger.ParseLogLevel(settings.LogLevel); ok {
		logger.SetLevel(level)
	}

	if opts.StateFile != "" {
		settings.Storage.StateFile = opts.StateFile
	}

	if opts.HTTPAddress != "" {
		settings.HTTPAddress = opts.HTTPAddress
	}

	// Determine listen address: CLI argument overrides config port extraction.
	listenAddress, err := resolveListenAddress(settings.ServerAddress, opts.ListenAddress)
	if err != nil {
		return fmt.Errorf("resolve listen address: %w", err)
	}

	lc := net.ListenConfig{}

	grpcListener, err := lc.Listen(ctx, "tcp", listenAddress)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", listenAddress, err)
	}

	var httpListener net.Listener

	if settings.HTTPAddress != "" {
		httpListener, err = lc.Listen(ctx, "tcp", settings.HTTPAddress)
		if err != nil {
			_ = grpcListener.Close()

			return fmt.Errorf("listen on %s: %w", settings.HTTPAddress, err)
		}
	}

	return serve(ctx, settings, grpcListener, httpListener)
}

// serve wires the security service to its collaborators and runs the servers
// on the provided listeners. A nil httpListener disables the admin server.
func serve(ctx context.Context, settings *config.Config, grpcListener, httpListener net.Listener) error {
	components, err := newComponents(ctx, settings)
	if err != nil {
		_ = grpcListener.Close()

		if httpListener != nil {
			_ = httpListener.Close()
		}

		return err
	}

	defer components.Close(ctx)

	logger.InfoKV(ctx, "Security server starting",
		"version", version.Short(),
		"storage", settings.Storage.Backend,
		"classifier", settings.Camera.Classifier,
		"sensitivity", settings.Camera.Sensitivity,
	)

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		return serveGRPC(groupCtx, grpcListener, components)
	})

	if httpListener != nil {
		handler := admin.New(components.service, components.registry).Router()

		group.Go(func() error {
			return admin.Serve(groupCtx, httpListener, handler, settings.Timeout)
		})
	}

	return group.Wait()
}

// serveGRPC runs the gRPC server until ctx is canceled.
func serveGRPC(ctx context.Context, lis net.Listener, components *components) error {
	grpcServer := grpc.NewServer(grpc.UnaryInterceptor(api.LoggingInterceptor(ctx)))
	api.RegisterSecurityServiceServer(grpcServer, api.NewServer(components.service))

	logger.InfoKV(ctx, "Security server listening", "listen_address", lis.Addr().String())

	// Done channel is closed after GracefulStop finishes to ensure we block
	// until the server fully stops before returning.
	done := make(chan struct{})

	go func() {
		<-ctx.Done()
		logger.Info(ctx, "Shutting down gRPC server")
		grpcServer.GracefulStop()
		close(done)
	}()

	if err := grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return fmt.Errorf("serve gRPC: %w", err)
	}

	<-done
	logger.Info(ctx, "GRPC server stopped")

	return nil
}

// resolveListenAddress determines the listen address for the gRPC server.
// If override is provided, uses it directly. Otherwise extracts port from configAddr.
// Returns appropriate listen address (e.g., ":8080" for port-only binding).
func resolveListenAddress(configAddr, override string) (string, error) {
	// Use override address if provided (e.g., ":9090", "0.0.0.0:8080").
	if override != "" {
		return override, nil
	}

	// Extract port from config address (e.g., "server.example.com:8080" -> ":8080").
	if configAddr == "" {
		return "", ErrNoServerAddress
	}

	// Parse the address to extract port.
	_, port, err := net.SplitHostPort(configAddr)
	if err != nil {
		return "", fmt.Errorf("invalid server address format %q: %w", configAddr, err)
	}

	// Return port-only listen address to bind on all interfaces.
	return ":" + port, nil
}
