package scan

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseIdentification_Valid(t *testing.T) {
	raw := `{"camper_id":42,"camper_code":"A1B2C3D4","type":"camper_identification"}`

	payload, err := ParseIdentification(raw)

	assert.NoError(t, err)
	assert.Equal(t, uint(42), payload.CamperID)
	assert.Equal(t, "A1B2C3D4", payload.CamperCode)
}

func TestParseIdentification_NotJSON(t *testing.T) {
	_, err := ParseIdentification("https://example.com/some-random-qr")
	assert.ErrorIs(t, err, ErrMalformedPayload)
}

func TestParseIdentification_WrongType(t *testing.T) {
	raw := `{"camper_id":42,"camper_code":"A1B2C3D4","type":"staff_identification"}`

	_, err := ParseIdentification(raw)
	assert.ErrorIs(t, err, ErrMalformedPayload)
}

func TestParseIdentification_MissingType(t *testing.T) {
	raw := `{"camper_id":42,"camper_code":"A1B2C3D4"}`

	_, err := ParseIdentification(raw)
	assert.ErrorIs(t, err, ErrMalformedPayload)
}

func TestParseIdentification_ZeroCamperID(t *testing.T) {
	raw := `{"camper_id":0,"camper_code":"A1B2C3D4","type":"camper_identification"}`

	_, err := ParseIdentification(raw)
	assert.ErrorIs(t, err, ErrMalformedPayload)
}

func TestParseIdentification_EmptyCamperCode(t *testing.T) {
	raw := `{"camper_id":42,"camper_code":"","type":"camper_identification"}`

	_, err := ParseIdentification(raw)
	assert.ErrorIs(t, err, ErrMalformedPayload)
}

func TestParseIdentification_UnknownFieldsRejected(t *testing.T) {
	raw := `{"camper_id":42,"camper_code":"A1B2C3D4","type":"camper_identification","admin":true}`

	_, err := ParseIdentification(raw)
	assert.ErrorIs(t, err, ErrMalformedPayload)
}
