package security

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	domain "github.com/oshokin/catpoint/internal/domain/security"
)

// TestUnmarshalDocument_Defaults verifies that an empty document yields default statuses.
func TestUnmarshalDocument_Defaults(t *testing.T) {
	t.Parallel()

	doc, err := unmarshalDocument([]byte(`{}`))
	require.NoError(t, err)
	require.Equal(t, domain.NoAlarm, doc.AlarmStatus)
	require.Equal(t, domain.Disarmed, doc.ArmingStatus)
	require.Empty(t, doc.Sensors)
}

// TestUnmarshalDocument_RegeneratesInvalidID ensures sensors without a valid id get a new one.
func TestUnmarshalDocument_RegeneratesInvalidID(t *testing.T) {
	t.Parallel()

	doc, err := unmarshalDocument([]byte(`{"sensors": [{"id": "nope", "name": "Hall", "type": "motion", "active": true}]}`))
	require.NoError(t, err)
	require.Len(t, doc.Sensors, 1)
	require.NotEqual(t, uuid.Nil, doc.Sensors[0].ID)
	require.Equal(t, domain.Motion, doc.Sensors[0].Type)
	require.True(t, doc.Sensors[0].Active)
}

// TestMarshalDocument_Readable checks the JSON field names written to disk.
func TestMarshalDocument_Readable(t *testing.T) {
	t.Parallel()

	data, err := marshalDocument(&document{
		AlarmStatus:  domain.Alarm,
		ArmingStatus: domain.ArmedAway,
		Sensors:      []domain.Sensor{{ID: uuid.New(), Name: "Hall", Type: domain.Motion}},
	})
	require.NoError(t, err)

	out := string(data)
	require.Contains(t, out, `"alarmStatus"`)
	require.Contains(t, out, `"ALARM"`)
	require.Contains(t, out, `"ARMED_AWAY"`)
	require.Contains(t, out, `"Hall"`)
}
