package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type RegisterCamperRequest struct {
	FullName string `json:"full_name"`
	Gender   string `json:"gender"`
	Category string `json:"category"`
}

func (req *RegisterCamperRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.FullName, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.Gender, validation.Required, validation.In("male", "female")),
		validation.Field(&req.Category, validation.Length(0, 50)),
	)
}

type CheckInRequest struct {
	CheckedIn *bool `json:"checked_in"`
}

func (req *CheckInRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.CheckedIn, validation.NotNil),
	)
}
