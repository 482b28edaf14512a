package admin

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/oshokin/catpoint/internal/logger"
)

// readHeaderTimeout bounds slow clients.
const readHeaderTimeout = 5 * time.Second

// Serve runs the admin HTTP server on lis until ctx is canceled.
func Serve(ctx context.Context, lis net.Listener, handler http.Handler, shutdownTimeout time.Duration) error {
	ctx = logger.WithName(ctx, "admin")

	server := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	errCh := make(chan error, 1)

	go func() {
		errCh <- server.Serve(lis)
	}()

	logger.InfoKV(ctx, "Admin server listening", "listen_address", lis.Addr().String())

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}

		return fmt.Errorf("serve HTTP: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown HTTP: %w", err)
	}

	logger.Info(ctx, "Admin server stopped")

	return nil
}
