package records

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrescriptionID_Matching(t *testing.T) {
	tests := []struct {
		body  string
		match bool
	}{
		{`{"prescriptionId":123456}`, true},
		{`{"prescriptionId":123456.0}`, true},
		{`{"prescriptionId":1.23456e5}`, true},
		{`{"prescriptionId":"123456"}`, false},
		{`{"prescriptionId":123456.5}`, false},
		{`{"prescriptionId":true}`, false},
		{`{"prescriptionId":[123456]}`, false},
		{`{"prescriptionId":{"id":123456}}`, false},
	}
	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			var upd PrescriptionUpdate
			require.NoError(t, json.Unmarshal([]byte(tt.body), &upd))
			require.NotNil(t, upd.PrescriptionID, "a supplied id is present even when it cannot match")
			assert.Equal(t, tt.match, upd.PrescriptionID.Matches(123456))
		})
	}
}

func TestPrescriptionID_Absent(t *testing.T) {
	var upd PrescriptionUpdate
	require.NoError(t, json.Unmarshal([]byte(`{"fillStatus":"Filled","refills":0}`), &upd))
	assert.Nil(t, upd.PrescriptionID)
	require.NotNil(t, upd.Refills)
	assert.Equal(t, 0, *upd.Refills)

	var nilID *PrescriptionID
	assert.False(t, nilID.Matches(0))
}

func TestPrescriptionUpdate_NullKeysAreSupplied(t *testing.T) {
	var upd PrescriptionUpdate
	require.NoError(t, json.Unmarshal([]byte(`{"prescriptionId":null,"fillStatus":null,"refills":null}`), &upd))
	require.NotNil(t, upd.PrescriptionID)
	assert.False(t, upd.PrescriptionID.Matches(0))
	require.NotNil(t, upd.FillStatus)
	assert.Equal(t, "", *upd.FillStatus)
	require.NotNil(t, upd.Refills)
	assert.Equal(t, 0, *upd.Refills)
}

func TestPrescriptionUpdate_TypeMismatchFails(t *testing.T) {
	var upd PrescriptionUpdate
	assert.Error(t, json.Unmarshal([]byte(`{"prescriptionId":1,"fillStatus":"x","refills":"2"}`), &upd))
}

func TestPrescriptionID_MarshalRoundsTripsRaw(t *testing.T) {
	b, err := json.Marshal(NewPrescriptionID(42))
	require.NoError(t, err)
	assert.Equal(t, "42", string(b))

	var id PrescriptionID
	require.NoError(t, json.Unmarshal([]byte(`"42"`), &id))
	b, err = json.Marshal(id)
	require.NoError(t, err)
	assert.Equal(t, `"42"`, string(b))
}
