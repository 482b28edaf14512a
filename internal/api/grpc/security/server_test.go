package security

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	domain "github.com/oshokin/catpoint/internal/domain/security"
)

var errTestService = errors.New("test service error")

// fakeService implements Service for unit testing the transport.
type fakeService struct {
	// snapshot is returned by Snapshot.
	snapshot domain.Snapshot
	// sensors are the registered sensors.
	sensors []domain.Sensor
	// err is returned by every mutating call when set.
	err error
	// frames counts processed images.
	frames int
}

func (f *fakeService) Snapshot(context.Context) (*domain.Snapshot, error) {
	snapshot := f.snapshot
	snapshot.Sensors = f.sensors

	return &snapshot, nil
}

func (f *fakeService) SetArmingStatus(_ context.Context, status domain.ArmingStatus) error {
	if f.err != nil {
		return f.err
	}

	f.snapshot.ArmingStatus = status

	return nil
}

func (f *fakeService) AddSensor(_ context.Context, sensor domain.Sensor) error {
	if f.err != nil {
		return f.err
	}

	for _, s := range f.sensors {
		if s.Same(sensor) {
			return nil
		}
	}

	f.sensors = append(f.sensors, sensor)

	return nil
}

func (f *fakeService) RemoveSensor(_ context.Context, sensor domain.Sensor) error {
	if f.err != nil {
		return f.err
	}

	for i, s := range f.sensors {
		if s.Same(sensor) {
			f.sensors = append(f.sensors[:i], f.sensors[i+1:]...)

			break
		}
	}

	return nil
}

func (f *fakeService) FindSensor(_ context.Context, key domain.SensorKey) (domain.Sensor, error) {
	for _, s := range f.sensors {
		if s.Key() == key {
			return s, nil
		}
	}

	return domain.Sensor{}, domain.ErrSensorNotFound
}

func (f *fakeService) ChangeSensorActivationStatus(
	_ context.Context,
	sensor domain.Sensor,
	active bool,
) (domain.Sensor, error) {
	if f.err != nil {
		return domain.Sensor{}, f.err
	}

	for i, s := range f.sensors {
		if s.Same(sensor) {
			f.sensors[i].Active = active

			return f.sensors[i], nil
		}
	}

	return domain.Sensor{}, domain.ErrSensorNotFound
}

func (f *fakeService) ProcessImage(context.Context, image.Image) (bool, error) {
	if f.err != nil {
		return false, f.err
	}

	f.frames++
	f.snapshot.CatDetected = true

	return true, nil
}

// sensorRequest builds a sensor request struct.
func sensorRequest(name, sensorType string, active *bool) *structpb.Struct {
	req := &structpb.Struct{Fields: map[string]*structpb.Value{
		FieldName: structpb.NewStringValue(name),
		FieldType: structpb.NewStringValue(sensorType),
	}}

	if active != nil {
		req.Fields[FieldActive] = structpb.NewBoolValue(*active)
	}

	return req
}

// pngFrame encodes a small PNG image.
func pngFrame(t *testing.T) []byte {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2))))

	return buf.Bytes()
}

// TestServer_Validation ensures invalid requests return InvalidArgument errors.
func TestServer_Validation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewServer(&fakeService{})

	_, err := s.SetArmingStatus(ctx, nil)
	require.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = s.SetArmingStatus(ctx, wrapperspb.String("ARMED_SOMEWHERE"))
	require.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = s.AddSensor(ctx, sensorRequest("", "DOOR", nil))
	require.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = s.AddSensor(ctx, sensorRequest("Garage", "CHIMNEY", nil))
	require.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = s.ChangeSensorActivation(ctx, sensorRequest("Garage", "DOOR", nil))
	require.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = s.ProcessImage(ctx, wrapperspb.Bytes(nil))
	require.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = s.ProcessImage(ctx, wrapperspb.Bytes([]byte("noise")))
	require.Equal(t, codes.InvalidArgument, status.Code(err))
}

// TestServer_SensorLifecycle exercises add, activate and remove on the server implementation.
func TestServer_SensorLifecycle(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	service := new(fakeService)
	s := NewServer(service)

	added, err := s.AddSensor(ctx, sensorRequest("Front Door", "door", nil))
	require.NoError(t, err)
	require.Equal(t, "DOOR", added.GetFields()[FieldType].GetStringValue())
	require.NotEmpty(t, added.GetFields()[FieldID].GetStringValue())

	again, err := s.AddSensor(ctx, sensorRequest("Front Door", "DOOR", nil))
	require.NoError(t, err)
	require.Equal(t, added.GetFields()[FieldID].GetStringValue(), again.GetFields()[FieldID].GetStringValue())
	require.Len(t, service.sensors, 1)

	active := true
	snapshot, err := s.ChangeSensorActivation(ctx, sensorRequest("Front Door", "DOOR", &active))
	require.NoError(t, err)

	decoded, err := SnapshotFromStruct(snapshot)
	require.NoError(t, err)
	require.Len(t, decoded.Sensors, 1)
	require.True(t, decoded.Sensors[0].Active)

	_, err = s.ChangeSensorActivation(ctx, sensorRequest("Back Door", "DOOR", &active))
	require.Equal(t, codes.NotFound, status.Code(err))

	_, err = s.RemoveSensor(ctx, sensorRequest("Front Door", "DOOR", nil))
	require.NoError(t, err)
	require.Empty(t, service.sensors)

	_, err = s.RemoveSensor(ctx, sensorRequest("Front Door", "DOOR", nil))
	require.NoError(t, err)
}

// TestServer_StatusAndImage verifies arming and image calls return the resulting snapshot.
func TestServer_StatusAndImage(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	service := &fakeService{snapshot: domain.Snapshot{AlarmStatus: domain.NoAlarm, ArmingStatus: domain.Disarmed}}
	s := NewServer(service)

	result, err := s.SetArmingStatus(ctx, wrapperspb.String("home"))
	require.NoError(t, err)
	require.Equal(t, "ARMED_HOME", result.GetFields()[FieldArmingStatus].GetStringValue())

	result, err = s.ProcessImage(ctx, wrapperspb.Bytes(pngFrame(t)))
	require.NoError(t, err)
	require.True(t, result.GetFields()[FieldCatDetected].GetBoolValue())
	require.Equal(t, 1, service.frames)

	result, err = s.GetStatus(ctx, &emptypb.Empty{})
	require.NoError(t, err)
	require.Equal(t, "NO_ALARM", result.GetFields()[FieldAlarmStatus].GetStringValue())
}

// TestServer_InternalErrors verifies unexpected failures are reported as Internal.
func TestServer_InternalErrors(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewServer(&fakeService{err: errTestService})

	_, err := s.SetArmingStatus(ctx, wrapperspb.String("DISARMED"))
	require.Equal(t, codes.Internal, status.Code(err))
	require.NotContains(t, err.Error(), errTestService.Error())

	_, err = s.AddSensor(ctx, sensorRequest("Front Door", "DOOR", nil))
	require.Equal(t, codes.Internal, status.Code(err))

	_, err = s.ProcessImage(ctx, wrapperspb.Bytes(pngFrame(t)))
	require.Equal(t, codes.Internal, status.Code(err))
}

// TestSnapshotRoundTrip verifies snapshots survive the wire form.
func TestSnapshotRoundTrip(t *testing.T) {
	t.Parallel()

	door, err := domain.NewSensor("Front Door", domain.Door)
	require.NoError(t, err)

	door.Active = true

	snapshot := &domain.Snapshot{
		AlarmStatus:  domain.PendingAlarm,
		ArmingStatus: domain.ArmedAway,
		CatDetected:  true,
		Sensors:      []domain.Sensor{door},
	}

	encoded, err := SnapshotToStruct(snapshot)
	require.NoError(t, err)

	decoded, err := SnapshotFromStruct(encoded)
	require.NoError(t, err)
	require.Equal(t, snapshot, decoded)

	_, err = SnapshotFromStruct(&structpb.Struct{})
	require.ErrorIs(t, err, domain.ErrUnknownAlarmStatus)
}
