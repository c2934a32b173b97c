package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type ScanRequest struct {
	SessionID string `json:"session_id"`
	Payload   string `json:"payload"`
}

func (req *ScanRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.SessionID, validation.Required, is.UUIDv4),
		validation.Field(&req.Payload, validation.Required),
	)
}

type ManualFoodAllocationRequest struct {
	CampID     uint   `json:"camp_id"`
	CamperCode string `json:"camper_code"`
}

func (req *ManualFoodAllocationRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.CampID, validation.Required, validation.Min(uint(1))),
		validation.Field(&req.CamperCode, validation.Required, validation.Length(1, 20)),
	)
}
