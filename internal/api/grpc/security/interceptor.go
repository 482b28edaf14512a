package security

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/oshokin/catpoint/internal/logger"
)

// ActorMetadataKey carries the "user@host" of the caller.
const ActorMetadataKey = "x-catpoint-actor"

// WithActor returns a context whose outgoing calls identify the caller.
func WithActor(ctx context.Context, actor string) context.Context {
	if actor == "" {
		return ctx
	}

	return metadata.AppendToOutgoingContext(ctx, ActorMetadataKey, actor)
}

// ActorFromContext returns the caller identity of an incoming call.
func ActorFromContext(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}

	values := md.Get(ActorMetadataKey)
	if len(values) == 0 {
		return ""
	}

	return values[0]
}

// LoggingInterceptor attaches the caller to the context logger and logs every call.
func LoggingInterceptor(base context.Context) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		started := time.Now()

		ctx = logger.ToContext(ctx, logger.FromContext(base))
		ctx = logger.WithFields(ctx, map[string]any{
			"method": info.FullMethod,
			"actor":  ActorFromContext(ctx),
		})

		resp, err := handler(ctx, req)

		logger.DebugKV(ctx, "Call handled",
			"code", status.Code(err).String(),
			"duration", time.Since(started),
		)

		return resp, err
	}
}
