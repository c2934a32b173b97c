package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type CreateRoomRequest struct {
	Hostel     string `json:"hostel"`
	Block      string `json:"block"`
	RoomNumber string `json:"room_number"`
	Capacity   int    `json:"capacity"`
	ExtraBeds  int    `json:"extra_beds"`
	Gender     string `json:"gender"`
}

func (req *CreateRoomRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Hostel, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.RoomNumber, validation.Required, validation.Length(1, 20)),
		validation.Field(&req.Capacity, validation.Required, validation.Min(1)),
		validation.Field(&req.ExtraBeds, validation.Min(0)),
		validation.Field(&req.Gender, validation.Required, validation.In("male", "female", "other")),
	)
}

type SetRoomDamagedRequest struct {
	Damaged *bool `json:"damaged"`
}

func (req *SetRoomDamagedRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Damaged, validation.NotNil),
	)
}

type AllocateRoomRequest struct {
	CamperIDs []uint `json:"camper_ids"`
	Notes     string `json:"notes"`
}

func (req *AllocateRoomRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.CamperIDs, validation.Required, validation.Length(1, 0)),
		validation.Field(&req.Notes, validation.Length(0, 500)),
	)
}

type UpdateRoomAllocationRequest struct {
	Active *bool   `json:"active"`
	Notes  *string `json:"notes"`
}

func (req *UpdateRoomAllocationRequest) Validate() error {
	if req.Notes != nil {
		return validation.Validate(*req.Notes, validation.Length(0, 500))
	}
	return nil
}
