package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type CreateFoodBatchRequest struct {
	Name     string `json:"name"`
	Vendor   string `json:"vendor"`
	Date     string `json:"date" format:"YYYY-MM-DD"`
	Category string `json:"category"`
	Quantity int    `json:"quantity"`
}

func (req *CreateFoodBatchRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Vendor, validation.Length(0, 100)),
		validation.Field(&req.Date, validation.Required, validation.Date("2006-01-02")),
		validation.Field(&req.Category, validation.Required, validation.In("breakfast", "lunch", "supper", "snacks")),
		validation.Field(&req.Quantity, validation.Required, validation.Min(1)),
	)
}

type AllocateFoodRequest struct {
	CamperID uint `json:"camper_id"`
}

func (req *AllocateFoodRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.CamperID, validation.Required, validation.Min(uint(1))),
	)
}

type BulkAllocateFoodRequest struct {
	CamperIDs []uint `json:"camper_ids"`
	Category  string `json:"category"`
}

func (req *BulkAllocateFoodRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.CamperIDs, validation.Required, validation.Length(1, 0)),
		validation.Field(&req.Category, validation.Length(0, 64)),
	)
}
