package security

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "catpoint.v1.SecurityService"

// Full method names.
const (
	GetStatusFullMethodName              = "/" + ServiceName + "/GetStatus"
	SetArmingStatusFullMethodName        = "/" + ServiceName + "/SetArmingStatus"
	AddSensorFullMethodName              = "/" + ServiceName + "/AddSensor"
	RemoveSensorFullMethodName           = "/" + ServiceName + "/RemoveSensor"
	ChangeSensorActivationFullMethodName = "/" + ServiceName + "/ChangeSensorActivation"
	ProcessImageFullMethodName           = "/" + ServiceName + "/ProcessImage"
)

// SecurityServiceServer is the server API for the security service.
type SecurityServiceServer interface {
	// GetStatus returns the current snapshot.
	GetStatus(ctx context.Context, in *emptypb.Empty) (*structpb.Struct, error)
	// SetArmingStatus changes the arming status and returns the resulting snapshot.
	SetArmingStatus(ctx context.Context, in *wrapperspb.StringValue) (*structpb.Struct, error)
	// AddSensor registers a sensor and returns the stored record.
	AddSensor(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	// RemoveSensor unregisters a sensor.
	RemoveSensor(ctx context.Context, in *structpb.Struct) (*emptypb.Empty, error)
	// ChangeSensorActivation sets a sensor's active flag and returns the resulting snapshot.
	ChangeSensorActivation(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	// ProcessImage classifies a camera frame and returns the resulting snapshot.
	ProcessImage(ctx context.Context, in *wrapperspb.BytesValue) (*structpb.Struct, error)
}

// UnimplementedSecurityServiceServer can be embedded to get forward compatible implementations.
type UnimplementedSecurityServiceServer struct{}

func (UnimplementedSecurityServiceServer) GetStatus(context.Context, *emptypb.Empty) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method GetStatus not implemented")
}

func (UnimplementedSecurityServiceServer) SetArmingStatus(
	context.Context,
	*wrapperspb.StringValue,
) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method SetArmingStatus not implemented")
}

func (UnimplementedSecurityServiceServer) AddSensor(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method AddSensor not implemented")
}

func (UnimplementedSecurityServiceServer) RemoveSensor(context.Context, *structpb.Struct) (*emptypb.Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method RemoveSensor not implemented")
}

func (UnimplementedSecurityServiceServer) ChangeSensorActivation(
	context.Context,
	*structpb.Struct,
) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method ChangeSensorActivation not implemented")
}

func (UnimplementedSecurityServiceServer) ProcessImage(
	context.Context,
	*wrapperspb.BytesValue,
) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method ProcessImage not implemented")
}

// SecurityServiceDesc describes the security service for grpc.Server registration.
//
//nolint:gochecknoglobals // Service descriptors are package-level by convention.
var SecurityServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*SecurityServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetStatus", Handler: unary(GetStatusFullMethodName, SecurityServiceServer.GetStatus)},
		{
			MethodName: "SetArmingStatus",
			Handler:    unary(SetArmingStatusFullMethodName, SecurityServiceServer.SetArmingStatus),
		},
		{MethodName: "AddSensor", Handler: unary(AddSensorFullMethodName, SecurityServiceServer.AddSensor)},
		{MethodName: "RemoveSensor", Handler: unary(RemoveSensorFullMethodName, SecurityServiceServer.RemoveSensor)},
		{
			MethodName: "ChangeSensorActivation",
			Handler:    unary(ChangeSensorActivationFullMethodName, SecurityServiceServer.ChangeSensorActivation),
		},
		{MethodName: "ProcessImage", Handler: unary(ProcessImageFullMethodName, SecurityServiceServer.ProcessImage)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "catpoint/v1/security.proto",
}

// RegisterSecurityServiceServer registers the implementation with a gRPC service registrar.
func RegisterSecurityServiceServer(registrar grpc.ServiceRegistrar, srv SecurityServiceServer) {
	registrar.RegisterService(&SecurityServiceDesc, srv)
}

// unary adapts a typed server method to a grpc.MethodHandler.
func unary[Req any, PReq interface {
	*Req
	proto.Message
}, Resp proto.Message](
	fullMethod string,
	call func(SecurityServiceServer, context.Context, PReq) (Resp, error),
) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := PReq(new(Req))
		if err := dec(in); err != nil {
			return nil, err
		}

		handler := func(ctx context.Context, req any) (any, error) {
			//nolint:forcetypeassert // The descriptor guarantees both types.
			return call(srv.(SecurityServiceServer), ctx, req.(PReq))
		}

		if interceptor == nil {
			return handler(ctx, in)
		}

		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}

		return interceptor(ctx, in, info, handler)
	}
}

// SecurityServiceClient is the client API for the security service.
type SecurityServiceClient interface {
	GetStatus(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error)
	SetArmingStatus(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error)
	AddSensor(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	RemoveSensor(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*emptypb.Empty, error)
	ChangeSensorActivation(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	ProcessImage(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*structpb.Struct, error)
}

// securityServiceClient invokes the security service over a connection.
type securityServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewSecurityServiceClient creates a client over the provided connection.
func NewSecurityServiceClient(cc grpc.ClientConnInterface) SecurityServiceClient {
	return &securityServiceClient{cc: cc}
}

func (c *securityServiceClient) GetStatus(
	ctx context.Context,
	in *emptypb.Empty,
	opts ...grpc.CallOption,
) (*structpb.Struct, error) {
	return invoke[structpb.Struct](ctx, c.cc, GetStatusFullMethodName, in, opts)
}

func (c *securityServiceClient) SetArmingStatus(
	ctx context.Context,
	in *wrapperspb.StringValue,
	opts ...grpc.CallOption,
) (*structpb.Struct, error) {
	return invoke[structpb.Struct](ctx, c.cc, SetArmingStatusFullMethodName, in, opts)
}

func (c *securityServiceClient) AddSensor(
	ctx context.Context,
	in *structpb.Struct,
	opts ...grpc.CallOption,
) (*structpb.Struct, error) {
	return invoke[structpb.Struct](ctx, c.cc, AddSensorFullMethodName, in, opts)
}

func (c *securityServiceClient) RemoveSensor(
	ctx context.Context,
	in *structpb.Struct,
	opts ...grpc.CallOption,
) (*emptypb.Empty, error) {
	return invoke[emptypb.Empty](ctx, c.cc, RemoveSensorFullMethodName, in, opts)
}

func (c *securityServiceClient) ChangeSensorActivation(
	ctx context.Context,
	in *structpb.Struct,
	opts ...grpc.CallOption,
) (*structpb.Struct, error) {
	return invoke[structpb.Struct](ctx, c.cc, ChangeSensorActivationFullMethodName, in, opts)
}

func (c *securityServiceClient) ProcessImage(
	ctx context.Context,
	in *wrapperspb.BytesValue,
	opts ...grpc.CallOption,
) (*structpb.Struct, error) {
	return invoke[structpb.Struct](ctx, c.cc, ProcessImageFullMethodName, in, opts)
}

// invoke performs a unary call decoding the reply into a new Resp.
func invoke[Resp any](
	ctx context.Context,
	cc grpc.ClientConnInterface,
	method string,
	in proto.Message,
	opts []grpc.CallOption,
) (*Resp, error) {
	out := new(Resp)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}

	return out, nil
}
