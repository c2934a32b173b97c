package domain

import "time"

type RoomGender string

const (
	RoomGenderMale   RoomGender = "male"
	RoomGenderFemale RoomGender = "female"
	// RoomGenderOther marks a room that accepts campers of any gender.
	RoomGenderOther RoomGender = "other"
)

func (g RoomGender) IsValid() bool {
	return g == RoomGenderMale || g == RoomGenderFemale || g == RoomGenderOther
}

// Room is a housing unit. Occupancy is derived from active allocations and
// filled in by the repository; it is never stored as an independent counter.
type Room struct {
	ID         uint       `json:"id"`
	CampID     uint       `json:"camp_id"`
	Hostel     string     `json:"hostel"`
	Block      string     `json:"block"`
	RoomNumber string     `json:"room_number"`
	Capacity   int        `json:"capacity"`
	ExtraBeds  int        `json:"extra_beds"`
	Gender     RoomGender `json:"gender"`
	Damaged    bool       `json:"damaged"`
	Occupancy  int        `json:"occupancy"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

func (r Room) TotalBeds() int {
	return r.Capacity + r.ExtraBeds
}

func (r Room) AvailableCapacity() int {
	return r.TotalBeds() - r.Occupancy
}

func (r Room) IsFull() bool {
	return r.AvailableCapacity() <= 0
}

// RoomEligible decides whether every camper in the batch may be placed in
// the room. A single-gender room rejects any batch containing a camper of
// another gender, so mixed-gender batches only ever fit "other" rooms.
// Returns nil when the whole batch fits.
func RoomEligible(room Room, campers []Camper) error {
	if room.Damaged {
		return ErrRoomDamaged
	}
	if len(campers) > room.AvailableCapacity() {
		return ErrCapacityExceeded
	}
	if room.Gender == RoomGenderOther {
		return nil
	}
	for _, c := range campers {
		if RoomGender(c.Gender) != room.Gender {
			return ErrIneligibleGender
		}
	}

	return nil
}
