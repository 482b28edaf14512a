//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"context"
	"errors"
	"fmt"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	api "github.com/oshokin/catpoint/internal/api/grpc/security"
	"github.com/oshokin/catpoint/internal/config"
	domain "github.com/oshokin/catpoint/internal/domain/security"
	"github.com/oshokin/catpoint/internal/version"
)

// Client wraps the gRPC SecurityService client with convenience helpers.
type Client struct {
	// conn is the underlying gRPC connection to the security server.
	conn *grpc.ClientConn
	// api is the SecurityService client.
	api api.SecurityServiceClient

	// callTimeout is the default timeout for individual RPC calls.
	callTimeout time.Duration
	// actor identifies the caller in server logs.
	actor string
}

// Option configures client behaviour.
type Option func(*Client)

// WithCallTimeout sets a default timeout for service calls.
func WithCallTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.callTimeout = timeout
		}
	}
}

// WithActor sets the "user@host" sent with every call.
func WithActor(actor string) Option {
	return func(c *Client) {
		c.actor = actor
	}
}

// errAddressRequired is returned when a required address value is missing.
var errAddressRequired = errors.New("address must be provided")

// Dial establishes a gRPC connection to the security server.
// Note: this uses insecure transport credentials; deploy on a trusted network
// or terminate TLS in a proxy until native TLS is added.
func Dial(_ context.Context, address string, opts ...Option) (*Client, error) {
	if address == "" {
		return nil, errAddressRequired
	}

	conn, err := grpc.NewClient(address,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUserAgent(version.UserAgent()),
	)
	if err != nil {
		return nil, fmt.Errorf("dial security server: %w", err)
	}

	client := NewClient(api.NewSecurityServiceClient(conn), opts...)
	client.conn = conn

	return client, nil
}

// NewClient wraps an existing SecurityService client.
func NewClient(securityClient api.SecurityServiceClient, opts ...Option) *Client {
	client := &Client{
		api:         securityClient,
		callTimeout: config.DefaultTimeout,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Close releases the underlying gRPC connection.
func (c *Client) Close() error {
	if c == nil || c.conn == nil {
		return nil
	}

	return c.conn.Close()
}

// Status retrieves the current snapshot.
func (c *Client) Status(ctx context.Context) (*domain.Snapshot, error) {
	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	resp, err := c.api.GetStatus(callCtx, &emptypb.Empty{})
	if err != nil {
		return nil, fmt.Errorf("get status: %w", err)
	}

	return api.SnapshotFromStruct(resp)
}

// SetArmingStatus changes the arming status.
func (c *Client) SetArmingStatus(ctx context.Context, status domain.ArmingStatus) (*domain.Snapshot, error) {
	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	resp, err := c.api.SetArmingStatus(callCtx, wrapperspb.String(status.String()))
	if err != nil {
		return nil, fmt.Errorf("set arming status: %w", err)
	}

	return api.SnapshotFromStruct(resp)
}

// AddSensor registers a sensor and returns the stored record.
func (c *Client) AddSensor(ctx context.Context, key domain.SensorKey) (domain.Sensor, error) {
	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	resp, err := c.api.AddSensor(callCtx, api.SensorKeyToStruct(key))
	if err != nil {
		return domain.Sensor{}, fmt.Errorf("add sensor: %w", err)
	}

	return api.SensorFromStruct(resp)
}

// RemoveSensor unregisters a sensor.
func (c *Client) RemoveSensor(ctx context.Context, key domain.SensorKey) error {
	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	if _, err := c.api.RemoveSensor(callCtx, api.SensorKeyToStruct(key)); err != nil {
		return fmt.Errorf("remove sensor: %w", err)
	}

	return nil
}

// ChangeSensorActivation sets the active flag of a sensor.
func (c *Client) ChangeSensorActivation(
	ctx context.Context,
	key domain.SensorKey,
	active bool,
) (*domain.Snapshot, error) {
	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	req := api.SensorKeyToStruct(key)
	req.Fields[api.FieldActive] = structpb.NewBoolValue(active)

	resp, err := c.api.ChangeSensorActivation(callCtx, req)
	if err != nil {
		return nil, fmt.Errorf("change sensor activation: %w", err)
	}

	return api.SnapshotFromStruct(resp)
}

// ProcessImage sends an encoded camera frame for classification.
func (c *Client) ProcessImage(ctx context.Context, frame []byte) (*domain.Snapshot, error) {
	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	resp, err := c.api.ProcessImage(callCtx, wrapperspb.Bytes(frame))
	if err != nil {
		return nil, fmt.Errorf("process image: %w", err)
	}

	return api.SnapshotFromStruct(resp)
}

// callContext returns a context with the client's call timeout if configured,
// otherwise a cancellable child context without a deadline. The caller
// identity is attached as metadata.
func (c *Client) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx = api.WithActor(ctx, c.actor)

	if c.callTimeout <= 0 {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, c.callTimeout)
}
