package scan

import (
	"encoding/json"
	"errors"
	"strings"
)

// PayloadTypeCamperIdentification is the sentinel type a QR payload must
// carry to be treated as a camper identification.
const PayloadTypeCamperIdentification = "camper_identification"

var ErrMalformedPayload = errors.New("malformed scan payload")

// IdentificationPayload is the JSON shape a camper's QR code encodes.
type IdentificationPayload struct {
	CamperID   uint   `json:"camper_id"`
	CamperCode string `json:"camper_code"`
	Type       string `json:"type"`
}

// ParseIdentification decodes a raw scan payload. The payload comes from a
// camera feed and is untrusted: anything that is not a well-formed camper
// identification is rejected before it can reach the allocation engine.
func ParseIdentification(raw string) (IdentificationPayload, error) {
	var payload IdentificationPayload

	decoder := json.NewDecoder(strings.NewReader(raw))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&payload); err != nil {
		return IdentificationPayload{}, ErrMalformedPayload
	}

	if payload.Type != PayloadTypeCamperIdentification {
		return IdentificationPayload{}, ErrMalformedPayload
	}
	if payload.CamperID == 0 || payload.CamperCode == "" {
		return IdentificationPayload{}, ErrMalformedPayload
	}

	return payload, nil
}
