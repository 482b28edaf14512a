package security

import (
	"context"
	"errors"
	"image"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	domain "github.com/oshokin/catpoint/internal/domain/security"
	"github.com/oshokin/catpoint/internal/imaging"
	"github.com/oshokin/catpoint/internal/logger"
)

// Service abstracts the business operations the transport layer depends on.
type Service interface {
	Snapshot(ctx context.Context) (*domain.Snapshot, error)
	SetArmingStatus(ctx context.Context, status domain.ArmingStatus) error
	AddSensor(ctx context.Context, sensor domain.Sensor) error
	RemoveSensor(ctx context.Context, sensor domain.Sensor) error
	FindSensor(ctx context.Context, key domain.SensorKey) (domain.Sensor, error)
	ChangeSensorActivationStatus(ctx context.Context, sensor domain.Sensor, active bool) (domain.Sensor, error)
	ProcessImage(ctx context.Context, img image.Image) (bool, error)
}

// Server implements the SecurityService gRPC API.
type Server struct {
	UnimplementedSecurityServiceServer

	// service provides the alarm state machine.
	service Service
}

// NewServer wires the provided service implementation into a gRPC handler.
func NewServer(service Service) *Server {
	return &Server{
		service: service,
	}
}

// GetStatus returns the current snapshot.
func (s *Server) GetStatus(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	return s.snapshot(ctx)
}

// SetArmingStatus changes the arming status.
func (s *Server) SetArmingStatus(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	armingStatus, err := domain.ParseArmingStatus(req.GetValue())
	if err != nil {
		return nil, toStatusError(ctx, err, "invalid arming status")
	}

	if err = s.service.SetArmingStatus(ctx, armingStatus); err != nil {
		return nil, toStatusError(ctx, err, "unable to change arming status")
	}

	return s.snapshot(ctx)
}

// AddSensor registers a sensor. Adding an existing sensor returns the stored record.
func (s *Server) AddSensor(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	key, err := SensorKeyFromStruct(req)
	if err != nil {
		return nil, toStatusError(ctx, err, "invalid sensor")
	}

	sensor, err := domain.NewSensor(key.Name, key.Type)
	if err != nil {
		return nil, toStatusError(ctx, err, "invalid sensor")
	}

	if err = s.service.AddSensor(ctx, sensor); err != nil {
		return nil, toStatusError(ctx, err, "unable to add sensor")
	}

	stored, err := s.service.FindSensor(ctx, key)
	if err != nil {
		return nil, toStatusError(ctx, err, "unable to read sensor")
	}

	result, err := SensorToStruct(stored)
	if err != nil {
		return nil, toStatusError(ctx, err, "unable to encode sensor")
	}

	return result, nil
}

// RemoveSensor unregisters a sensor. Unknown sensors are ignored.
func (s *Server) RemoveSensor(ctx context.Context, req *structpb.Struct) (*emptypb.Empty, error) {
	key, err := SensorKeyFromStruct(req)
	if err != nil {
		return nil, toStatusError(ctx, err, "invalid sensor")
	}

	if err = s.service.RemoveSensor(ctx, domain.Sensor{Name: key.Name, Type: key.Type}); err != nil {
		return nil, toStatusError(ctx, err, "unable to remove sensor")
	}

	return &emptypb.Empty{}, nil
}

// ChangeSensorActivation sets the active flag of a registered sensor.
func (s *Server) ChangeSensorActivation(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	key, err := SensorKeyFromStruct(req)
	if err != nil {
		return nil, toStatusError(ctx, err, "invalid sensor")
	}

	active, ok := req.GetFields()[FieldActive].GetKind().(*structpb.Value_BoolValue)
	if !ok {
		return nil, status.Error(codes.InvalidArgument, "active flag is required")
	}

	sensor := domain.Sensor{Name: key.Name, Type: key.Type}

	if _, err = s.service.ChangeSensorActivationStatus(ctx, sensor, active.BoolValue); err != nil {
		return nil, toStatusError(ctx, err, "unable to change sensor activation")
	}

	return s.snapshot(ctx)
}

// ProcessImage decodes and classifies a camera frame.
func (s *Server) ProcessImage(ctx context.Context, req *wrapperspb.BytesValue) (*structpb.Struct, error) {
	img, err := imaging.Decode(req.GetValue())
	if err != nil {
		return nil, toStatusError(ctx, err, "invalid image")
	}

	if _, err = s.service.ProcessImage(ctx, img); err != nil {
		return nil, toStatusError(ctx, err, "unable to process image")
	}

	return s.snapshot(ctx)
}

func (s *Server) snapshot(ctx context.Context) (*structpb.Struct, error) {
	snapshot, err := s.service.Snapshot(ctx)
	if err != nil {
		return nil, toStatusError(ctx, err, "unable to read state")
	}

	result, err := SnapshotToStruct(snapshot)
	if err != nil {
		return nil, toStatusError(ctx, err, "unable to encode state")
	}

	return result, nil
}

// toStatusError maps domain errors to gRPC codes. Internal errors are logged and hidden from the caller.
func toStatusError(ctx context.Context, err error, message string) error {
	switch {
	case errors.Is(err, domain.ErrSensorNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, domain.ErrUnknownArmingStatus),
		errors.Is(err, domain.ErrUnknownAlarmStatus),
		errors.Is(err, domain.ErrUnknownSensorType),
		errors.Is(err, domain.ErrSensorNameRequired),
		errors.Is(err, imaging.ErrEmptyImage),
		errors.Is(err, imaging.ErrInvalidImage):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, message)
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, message)
	default:
		logger.Errorf(logger.WithName(ctx, "grpc"), "%s: %v", message, err)

		return status.Error(codes.Internal, message)
	}
}
