package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoom_TotalBeds(t *testing.T) {
	room := Room{Capacity: 4, ExtraBeds: 2}
	assert.Equal(t, 6, room.TotalBeds())
}

func TestRoom_AvailableCapacity(t *testing.T) {
	room := Room{Capacity: 4, ExtraBeds: 2, Occupancy: 5}
	assert.Equal(t, 1, room.AvailableCapacity())
	assert.False(t, room.IsFull())

	room.Occupancy = 6
	assert.True(t, room.IsFull())
}

func TestRoomEligible_Fits(t *testing.T) {
	room := Room{Capacity: 4, Gender: RoomGenderFemale}
	campers := []Camper{
		{ID: 1, Gender: GenderFemale},
		{ID: 2, Gender: GenderFemale},
	}

	assert.NoError(t, RoomEligible(room, campers))
}

func TestRoomEligible_Damaged(t *testing.T) {
	room := Room{Capacity: 4, Gender: RoomGenderFemale, Damaged: true}
	campers := []Camper{{ID: 1, Gender: GenderFemale}}

	assert.ErrorIs(t, RoomEligible(room, campers), ErrRoomDamaged)
}

func TestRoomEligible_BatchLargerThanRemainingBeds(t *testing.T) {
	room := Room{Capacity: 2, ExtraBeds: 1, Occupancy: 2, Gender: RoomGenderMale}
	campers := []Camper{
		{ID: 1, Gender: GenderMale},
		{ID: 2, Gender: GenderMale},
	}

	// One bed left, two campers. The whole batch must fit or none of it does.
	assert.ErrorIs(t, RoomEligible(room, campers), ErrCapacityExceeded)
}

func TestRoomEligible_ExtraBedsExtendCapacity(t *testing.T) {
	room := Room{Capacity: 2, ExtraBeds: 1, Occupancy: 2, Gender: RoomGenderMale}
	campers := []Camper{{ID: 1, Gender: GenderMale}}

	assert.NoError(t, RoomEligible(room, campers))
}

func TestRoomEligible_GenderMismatch(t *testing.T) {
	room := Room{Capacity: 4, Gender: RoomGenderMale}
	campers := []Camper{{ID: 1, Gender: GenderFemale}}

	assert.ErrorIs(t, RoomEligible(room, campers), ErrIneligibleGender)
}

func TestRoomEligible_MixedBatchRejectedBySingleGenderRoom(t *testing.T) {
	room := Room{Capacity: 4, Gender: RoomGenderFemale}
	campers := []Camper{
		{ID: 1, Gender: GenderFemale},
		{ID: 2, Gender: GenderMale},
	}

	assert.ErrorIs(t, RoomEligible(room, campers), ErrIneligibleGender)
}

func TestRoomEligible_OtherRoomAcceptsAnyMix(t *testing.T) {
	room := Room{Capacity: 4, Gender: RoomGenderOther}
	campers := []Camper{
		{ID: 1, Gender: GenderFemale},
		{ID: 2, Gender: GenderMale},
	}

	assert.NoError(t, RoomEligible(room, campers))
}

func TestRoomEligible_DamagedReportedBeforeCapacity(t *testing.T) {
	room := Room{Capacity: 1, Occupancy: 1, Gender: RoomGenderMale, Damaged: true}
	campers := []Camper{
		{ID: 1, Gender: GenderMale},
		{ID: 2, Gender: GenderMale},
	}

	assert.ErrorIs(t, RoomEligible(room, campers), ErrRoomDamaged)
}

func TestRoomGender_IsValid(t *testing.T) {
	assert.True(t, RoomGenderMale.IsValid())
	assert.True(t, RoomGenderFemale.IsValid())
	assert.True(t, RoomGenderOther.IsValid())
	assert.False(t, RoomGender("mixed").IsValid())
	assert.False(t, RoomGender("").IsValid())
}
