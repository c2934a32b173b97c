package domain

import "time"

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

func (g Gender) IsValid() bool {
	return g == GenderMale || g == GenderFemale
}

// Camper is one registered individual within a camp. Identity fields are
// immutable after registration; campers are soft-cancelled, never deleted.
type Camper struct {
	ID         uint      `json:"id"`
	CampID     uint      `json:"camp_id"`
	FullName   string    `json:"full_name"`
	Gender     Gender    `json:"gender"`
	Category   string    `json:"category"`
	CamperCode string    `json:"camper_code"`
	Paid       bool      `json:"paid"`
	CheckedIn  bool      `json:"checked_in"`
	Cancelled  bool      `json:"cancelled"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
