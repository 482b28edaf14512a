package security

import (
	"fmt"

	"github.com/google/uuid"
	"google.golang.org/protobuf/types/known/structpb"

	domain "github.com/oshokin/catpoint/internal/domain/security"
)

// Struct field names.
const (
	FieldAlarmStatus  = "alarm_status"
	FieldArmingStatus = "arming_status"
	FieldCatDetected  = "cat_detected"
	FieldSensors      = "sensors"
	FieldID           = "id"
	FieldName         = "name"
	FieldType         = "type"
	FieldActive       = "active"
)

// SnapshotToStruct converts a snapshot to its wire form.
func SnapshotToStruct(snapshot *domain.Snapshot) (*structpb.Struct, error) {
	if snapshot == nil {
		return &structpb.Struct{}, nil
	}

	sensors := make([]any, 0, len(snapshot.Sensors))
	for _, sensor := range snapshot.Sensors {
		sensors = append(sensors, sensorMap(sensor))
	}

	result, err := structpb.NewStruct(map[string]any{
		FieldAlarmStatus:  snapshot.AlarmStatus.String(),
		FieldArmingStatus: snapshot.ArmingStatus.String(),
		FieldCatDetected:  snapshot.CatDetected,
		FieldSensors:      sensors,
	})
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}

	return result, nil
}

// SnapshotFromStruct converts the wire form back into a snapshot.
func SnapshotFromStruct(s *structpb.Struct) (*domain.Snapshot, error) {
	fields := s.GetFields()

	alarmStatus, err := domain.ParseAlarmStatus(fields[FieldAlarmStatus].GetStringValue())
	if err != nil {
		return nil, err
	}

	armingStatus, err := domain.ParseArmingStatus(fields[FieldArmingStatus].GetStringValue())
	if err != nil {
		return nil, err
	}

	values := fields[FieldSensors].GetListValue().GetValues()
	sensors := make([]domain.Sensor, 0, len(values))

	for _, value := range values {
		sensor, err := SensorFromStruct(value.GetStructValue())
		if err != nil {
			return nil, err
		}

		sensors = append(sensors, sensor)
	}

	return &domain.Snapshot{
		AlarmStatus:  alarmStatus,
		ArmingStatus: armingStatus,
		CatDetected:  fields[FieldCatDetected].GetBoolValue(),
		Sensors:      sensors,
	}, nil
}

// SensorToStruct converts a sensor to its wire form.
func SensorToStruct(sensor domain.Sensor) (*structpb.Struct, error) {
	result, err := structpb.NewStruct(sensorMap(sensor))
	if err != nil {
		return nil, fmt.Errorf("encode sensor: %w", err)
	}

	return result, nil
}

// SensorFromStruct converts the wire form back into a sensor.
// A missing identifier is left as uuid.Nil.
func SensorFromStruct(s *structpb.Struct) (domain.Sensor, error) {
	key, err := SensorKeyFromStruct(s)
	if err != nil {
		return domain.Sensor{}, err
	}

	fields := s.GetFields()

	var id uuid.UUID

	if raw := fields[FieldID].GetStringValue(); raw != "" {
		if id, err = uuid.Parse(raw); err != nil {
			return domain.Sensor{}, fmt.Errorf("parse sensor id: %w", err)
		}
	}

	return domain.Sensor{
		ID:     id,
		Name:   key.Name,
		Type:   key.Type,
		Active: fields[FieldActive].GetBoolValue(),
	}, nil
}

// SensorKeyToStruct converts a sensor key to its wire form.
func SensorKeyToStruct(key domain.SensorKey) *structpb.Struct {
	return &structpb.Struct{
		Fields: map[string]*structpb.Value{
			FieldName: structpb.NewStringValue(key.Name),
			FieldType: structpb.NewStringValue(key.Type.String()),
		},
	}
}

// SensorKeyFromStruct reads the name and type of a sensor.
func SensorKeyFromStruct(s *structpb.Struct) (domain.SensorKey, error) {
	fields := s.GetFields()

	name := fields[FieldName].GetStringValue()
	if name == "" {
		return domain.SensorKey{}, domain.ErrSensorNameRequired
	}

	sensorType, err := domain.ParseSensorType(fields[FieldType].GetStringValue())
	if err != nil {
		return domain.SensorKey{}, err
	}

	return domain.SensorKey{Name: name, Type: sensorType}, nil
}

func sensorMap(sensor domain.Sensor) map[string]any {
	return map[string]any{
		FieldID:     sensor.ID.String(),
		FieldName:   sensor.Name,
		FieldType:   sensor.Type.String(),
		FieldActive: sensor.Active,
	}
}
