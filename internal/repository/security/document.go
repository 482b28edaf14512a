package security

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	domain "github.com/oshokin/catpoint/internal/domain/security"
)

// Field names of the persisted document.
const (
	fieldAlarmStatus  = "alarmStatus"
	fieldArmingStatus = "armingStatus"
	fieldSensors      = "sensors"
	fieldID           = "id"
	fieldName         = "name"
	fieldType         = "type"
	fieldActive       = "active"
)

// errMalformedSensor is returned when a stored sensor entry is not an object.
var errMalformedSensor = errors.New("malformed sensor entry")

// document is the full persisted state.
type document struct {
	AlarmStatus  domain.AlarmStatus
	ArmingStatus domain.ArmingStatus
	Sensors      []domain.Sensor
}

// marshalDocument encodes the document as indented JSON through protojson.
func marshalDocument(doc *document) ([]byte, error) {
	sensors := make([]any, 0, len(doc.Sensors))
	for _, sensor := range doc.Sensors {
		sensors = append(sensors, sensorToMap(sensor))
	}

	protoState, err := structpb.NewStruct(map[string]any{
		fieldAlarmStatus:  doc.AlarmStatus.String(),
		fieldArmingStatus: doc.ArmingStatus.String(),
		fieldSensors:      sensors,
	})
	if err != nil {
		return nil, fmt.Errorf("build state document: %w", err)
	}

	marshalOptions := protojson.MarshalOptions{
		Multiline:       true,
		EmitUnpopulated: true,
	}

	return marshalOptions.Marshal(protoState)
}

// unmarshalDocument decodes a document produced by marshalDocument.
// Missing statuses fall back to the defaults.
func unmarshalDocument(contents []byte) (*document, error) {
	var protoState structpb.Struct
	if err := protojson.Unmarshal(contents, &protoState); err != nil {
		return nil, fmt.Errorf("decode state document: %w", err)
	}

	fields := protoState.GetFields()
	doc := &document{
		AlarmStatus:  DefaultAlarmStatus,
		ArmingStatus: DefaultArmingStatus,
	}

	if v := fields[fieldAlarmStatus].GetStringValue(); v != "" {
		status, err := domain.ParseAlarmStatus(v)
		if err != nil {
			return nil, err
		}

		doc.AlarmStatus = status
	}

	if v := fields[fieldArmingStatus].GetStringValue(); v != "" {
		status, err := domain.ParseArmingStatus(v)
		if err != nil {
			return nil, err
		}

		doc.ArmingStatus = status
	}

	for i, value := range fields[fieldSensors].GetListValue().GetValues() {
		entry := value.GetStructValue()
		if entry == nil {
			return nil, fmt.Errorf("sensor #%d: %w", i, errMalformedSensor)
		}

		sensor, err := sensorFromFields(entry.GetFields())
		if err != nil {
			return nil, fmt.Errorf("sensor #%d: %w", i, err)
		}

		doc.Sensors = append(doc.Sensors, sensor)
	}

	return doc, nil
}

// sensorToMap converts a sensor into a structpb-compatible map.
func sensorToMap(sensor domain.Sensor) map[string]any {
	return map[string]any{
		fieldID:     sensor.ID.String(),
		fieldName:   sensor.Name,
		fieldType:   sensor.Type.String(),
		fieldActive: sensor.Active,
	}
}

// sensorFromFields converts stored fields back into a sensor.
// A missing or invalid identifier is replaced with a fresh one.
func sensorFromFields(fields map[string]*structpb.Value) (domain.Sensor, error) {
	sensorType, err := domain.ParseSensorType(fields[fieldType].GetStringValue())
	if err != nil {
		return domain.Sensor{}, err
	}

	name := fields[fieldName].GetStringValue()
	if name == "" {
		return domain.Sensor{}, domain.ErrSensorNameRequired
	}

	id, err := uuid.Parse(fields[fieldID].GetStringValue())
	if err != nil {
		id = uuid.New()
	}

	return domain.Sensor{
		ID:     id,
		Name:   name,
		Type:   sensorType,
		Active: fields[fieldActive].GetBoolValue(),
	}, nil
}
