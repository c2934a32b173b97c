package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/campbase/campbase-api/internal/domain"
)

type fakeRoomRepo struct {
	rooms       map[uint]domain.Room
	allocations []domain.RoomAllocation
	nextID      uint
}

func newFakeRoomRepo(rooms ...domain.Room) *fakeRoomRepo {
	repo := &fakeRoomRepo{rooms: make(map[uint]domain.Room), nextID: 1}
	for _, r := range rooms {
		repo.rooms[r.ID] = r
	}
	return repo
}

func (f *fakeRoomRepo) Create(_ context.Context, room domain.Room) (domain.Room, error) {
	room.ID = f.nextID
	f.nextID++
	f.rooms[room.ID] = room
	return room, nil
}

func (f *fakeRoomRepo) FindByID(_ context.Context, id uint) (domain.Room, error) {
	room, ok := f.rooms[id]
	if !ok {
		return domain.Room{}, ErrRoomNotFound
	}
	return room, nil
}

func (f *fakeRoomRepo) ListAvailable(_ context.Context, campID uint, gender domain.Gender) ([]domain.Room, error) {
	var out []domain.Room
	for _, r := range f.rooms {
		if r.CampID != campID || r.Damaged || r.IsFull() {
			continue
		}
		if gender != "" && r.Gender != domain.RoomGenderOther && r.Gender != domain.RoomGender(gender) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeRoomRepo) SetDamaged(_ context.Context, id uint, damaged bool) (domain.Room, error) {
	room, ok := f.rooms[id]
	if !ok {
		return domain.Room{}, ErrRoomNotFound
	}
	room.Damaged = damaged
	f.rooms[id] = room
	return room, nil
}

// Allocate mirrors the transactional ledger write: everything is
// re-validated against current state and the batch is all-or-nothing.
func (f *fakeRoomRepo) Allocate(_ context.Context, roomID uint, camperIDs []uint, allocatedBy uint, notes string) ([]domain.RoomAllocation, error) {
	room, ok := f.rooms[roomID]
	if !ok {
		return nil, ErrRoomNotFound
	}
	if room.Damaged {
		return nil, ErrRoomDamaged
	}
	if len(camperIDs) > room.AvailableCapacity() {
		return nil, ErrCapacityExceeded
	}

	created := make([]domain.RoomAllocation, len(camperIDs))
	for i, camperID := range camperIDs {
		created[i] = domain.RoomAllocation{
			ID:          uint(len(f.allocations) + i + 1),
			RoomID:      roomID,
			CamperID:    camperID,
			AllocatedBy: allocatedBy,
			Active:      true,
			Notes:       notes,
		}
	}
	f.allocations = append(f.allocations, created...)
	room.Occupancy += len(created)
	f.rooms[roomID] = room

	return created, nil
}

func (f *fakeRoomRepo) Deallocate(_ context.Context, allocationID uint) (domain.RoomAllocation, error) {
	for i, a := range f.allocations {
		if a.ID == allocationID {
			if a.Active {
				f.allocations[i].Active = false
				room := f.rooms[a.RoomID]
				room.Occupancy--
				f.rooms[a.RoomID] = room
			}
			return f.allocations[i], nil
		}
	}
	return domain.RoomAllocation{}, ErrRoomAllocationNotFound
}

func (f *fakeRoomRepo) UpdateAllocation(_ context.Context, allocationID uint, active *bool, notes *string) (domain.RoomAllocation, error) {
	for i, a := range f.allocations {
		if a.ID == allocationID {
			if active != nil && *active && !a.Active {
				room := f.rooms[a.RoomID]
				if room.Damaged {
					return domain.RoomAllocation{}, ErrRoomDamaged
				}
				if room.IsFull() {
					return domain.RoomAllocation{}, ErrCapacityExceeded
				}
				for _, other := range f.allocations {
					if other.ID != a.ID && other.Active && other.CamperID == a.CamperID &&
						f.rooms[other.RoomID].CampID == room.CampID {
						return domain.RoomAllocation{}, ErrDuplicateAllocation
					}
				}
				room.Occupancy++
				f.rooms[a.RoomID] = room
			}
			if active != nil {
				f.allocations[i].Active = *active
			}
			if notes != nil {
				f.allocations[i].Notes = *notes
			}
			return f.allocations[i], nil
		}
	}
	return domain.RoomAllocation{}, ErrRoomAllocationNotFound
}

func (f *fakeRoomRepo) ListAllocations(_ context.Context, roomID uint, activeOnly bool) ([]domain.RoomAllocationDetail, error) {
	var out []domain.RoomAllocationDetail
	for _, a := range f.allocations {
		if a.RoomID != roomID {
			continue
		}
		if activeOnly && !a.Active {
			continue
		}
		out = append(out, domain.RoomAllocationDetail{RoomAllocation: a})
	}
	return out, nil
}

func (f *fakeRoomRepo) activeCount(roomID uint) int {
	n := 0
	for _, a := range f.allocations {
		if a.RoomID == roomID && a.Active {
			n++
		}
	}
	return n
}

type fakeCamperRepo struct {
	campers map[uint]domain.Camper
}

func newFakeCamperRepo(campers ...domain.Camper) *fakeCamperRepo {
	repo := &fakeCamperRepo{campers: make(map[uint]domain.Camper)}
	for _, c := range campers {
		repo.campers[c.ID] = c
	}
	return repo
}

func (f *fakeCamperRepo) FindByIDs(_ context.Context, ids []uint) ([]domain.Camper, error) {
	var out []domain.Camper
	for _, id := range ids {
		if c, ok := f.campers[id]; ok && !c.Cancelled {
			out = append(out, c)
		}
	}
	return out, nil
}

func TestAllocationService_CreateRoom(t *testing.T) {
	svc := NewAllocationService(newFakeRoomRepo(), newFakeCamperRepo())

	room, err := svc.CreateRoom(context.Background(), domain.Room{
		CampID:     1,
		Hostel:     "North",
		RoomNumber: "101",
		Capacity:   4,
		Gender:     domain.RoomGenderFemale,
	})

	assert.NoError(t, err)
	assert.NotZero(t, room.ID)
}

func TestAllocationService_CreateRoom_InvalidGender(t *testing.T) {
	svc := NewAllocationService(newFakeRoomRepo(), newFakeCamperRepo())

	_, err := svc.CreateRoom(context.Background(), domain.Room{Capacity: 4, Gender: "mixed"})
	assert.ErrorIs(t, err, ErrInvalidGender)
}

func TestAllocationService_CreateRoom_InvalidCapacity(t *testing.T) {
	svc := NewAllocationService(newFakeRoomRepo(), newFakeCamperRepo())

	_, err := svc.CreateRoom(context.Background(), domain.Room{Capacity: 0, Gender: domain.RoomGenderMale})
	assert.ErrorIs(t, err, ErrInvalidCapacity)
}

func TestAllocationService_ListAvailableRooms_InvalidGenderFilter(t *testing.T) {
	svc := NewAllocationService(newFakeRoomRepo(), newFakeCamperRepo())

	_, err := svc.ListAvailableRooms(context.Background(), 1, "unknown")
	assert.ErrorIs(t, err, ErrInvalidGender)
}

func TestAllocationService_ListAvailableRooms_ExcludesDamagedAndFull(t *testing.T) {
	repo := newFakeRoomRepo(
		domain.Room{ID: 1, CampID: 1, Capacity: 4, Gender: domain.RoomGenderFemale},
		domain.Room{ID: 2, CampID: 1, Capacity: 4, Gender: domain.RoomGenderFemale, Damaged: true},
		domain.Room{ID: 3, CampID: 1, Capacity: 2, Occupancy: 2, Gender: domain.RoomGenderFemale},
	)
	svc := NewAllocationService(repo, newFakeCamperRepo())

	rooms, err := svc.ListAvailableRooms(context.Background(), 1, domain.GenderFemale)

	assert.NoError(t, err)
	assert.Len(t, rooms, 1)
	assert.Equal(t, uint(1), rooms[0].ID)
}

func TestAllocationService_AllocateRoom(t *testing.T) {
	repo := newFakeRoomRepo(domain.Room{ID: 1, CampID: 1, Capacity: 4, Gender: domain.RoomGenderFemale})
	campers := newFakeCamperRepo(
		domain.Camper{ID: 10, CampID: 1, Gender: domain.GenderFemale},
		domain.Camper{ID: 11, CampID: 1, Gender: domain.GenderFemale},
	)
	svc := NewAllocationService(repo, campers)

	allocations, err := svc.AllocateRoom(context.Background(), 1, []uint{10, 11}, 99, "")

	assert.NoError(t, err)
	assert.Len(t, allocations, 2)
	for _, a := range allocations {
		assert.True(t, a.Active)
		assert.Equal(t, uint(99), a.AllocatedBy)
	}
	assert.Equal(t, 2, repo.activeCount(1))
}

func TestAllocationService_AllocateRoom_EmptySelection(t *testing.T) {
	svc := NewAllocationService(newFakeRoomRepo(), newFakeCamperRepo())

	_, err := svc.AllocateRoom(context.Background(), 1, nil, 99, "")
	assert.ErrorIs(t, err, ErrEmptySelection)
}

func TestAllocationService_AllocateRoom_RepeatedCamper(t *testing.T) {
	svc := NewAllocationService(newFakeRoomRepo(), newFakeCamperRepo())

	_, err := svc.AllocateRoom(context.Background(), 1, []uint{10, 10}, 99, "")
	assert.ErrorIs(t, err, ErrRepeatedCamper)
}

func TestAllocationService_AllocateRoom_UnknownCamper(t *testing.T) {
	repo := newFakeRoomRepo(domain.Room{ID: 1, CampID: 1, Capacity: 4, Gender: domain.RoomGenderFemale})
	campers := newFakeCamperRepo(domain.Camper{ID: 10, CampID: 1, Gender: domain.GenderFemale})
	svc := NewAllocationService(repo, campers)

	_, err := svc.AllocateRoom(context.Background(), 1, []uint{10, 999}, 99, "")
	assert.ErrorIs(t, err, ErrCamperNotFound)
	assert.Zero(t, repo.activeCount(1))
}

func TestAllocationService_AllocateRoom_CancelledCamper(t *testing.T) {
	repo := newFakeRoomRepo(domain.Room{ID: 1, CampID: 1, Capacity: 4, Gender: domain.RoomGenderFemale})
	campers := newFakeCamperRepo(domain.Camper{ID: 10, CampID: 1, Gender: domain.GenderFemale, Cancelled: true})
	svc := NewAllocationService(repo, campers)

	_, err := svc.AllocateRoom(context.Background(), 1, []uint{10}, 99, "")
	assert.ErrorIs(t, err, ErrCamperNotFound)
}

func TestAllocationService_AllocateRoom_DamagedRoom(t *testing.T) {
	repo := newFakeRoomRepo(domain.Room{ID: 1, CampID: 1, Capacity: 4, Gender: domain.RoomGenderFemale, Damaged: true})
	campers := newFakeCamperRepo(domain.Camper{ID: 10, CampID: 1, Gender: domain.GenderFemale})
	svc := NewAllocationService(repo, campers)

	_, err := svc.AllocateRoom(context.Background(), 1, []uint{10}, 99, "")
	assert.ErrorIs(t, err, ErrRoomDamaged)
	assert.Zero(t, repo.activeCount(1))
}

func TestAllocationService_AllocateRoom_BatchExceedsCapacity(t *testing.T) {
	repo := newFakeRoomRepo(domain.Room{ID: 1, CampID: 1, Capacity: 2, Occupancy: 1, Gender: domain.RoomGenderMale})
	campers := newFakeCamperRepo(
		domain.Camper{ID: 10, CampID: 1, Gender: domain.GenderMale},
		domain.Camper{ID: 11, CampID: 1, Gender: domain.GenderMale},
	)
	svc := NewAllocationService(repo, campers)

	_, err := svc.AllocateRoom(context.Background(), 1, []uint{10, 11}, 99, "")

	// One bed short for a batch of two: nobody gets placed.
	assert.ErrorIs(t, err, ErrCapacityExceeded)
	assert.Equal(t, 0, repo.activeCount(1))
}

func TestAllocationService_AllocateRoom_MixedBatchIntoSingleGenderRoom(t *testing.T) {
	repo := newFakeRoomRepo(domain.Room{ID: 1, CampID: 1, Capacity: 4, Gender: domain.RoomGenderFemale})
	campers := newFakeCamperRepo(
		domain.Camper{ID: 10, CampID: 1, Gender: domain.GenderFemale},
		domain.Camper{ID: 11, CampID: 1, Gender: domain.GenderMale},
	)
	svc := NewAllocationService(repo, campers)

	_, err := svc.AllocateRoom(context.Background(), 1, []uint{10, 11}, 99, "")
	assert.ErrorIs(t, err, ErrIneligibleGender)
	assert.Zero(t, repo.activeCount(1))
}

func TestAllocationService_AllocateRoom_MixedBatchIntoOtherRoom(t *testing.T) {
	repo := newFakeRoomRepo(domain.Room{ID: 1, CampID: 1, Capacity: 4, Gender: domain.RoomGenderOther})
	campers := newFakeCamperRepo(
		domain.Camper{ID: 10, CampID: 1, Gender: domain.GenderFemale},
		domain.Camper{ID: 11, CampID: 1, Gender: domain.GenderMale},
	)
	svc := NewAllocationService(repo, campers)

	allocations, err := svc.AllocateRoom(context.Background(), 1, []uint{10, 11}, 99, "")

	assert.NoError(t, err)
	assert.Len(t, allocations, 2)
}

func TestAllocationService_DeallocateRoom_Idempotent(t *testing.T) {
	repo := newFakeRoomRepo(domain.Room{ID: 1, CampID: 1, Capacity: 4, Gender: domain.RoomGenderFemale})
	campers := newFakeCamperRepo(domain.Camper{ID: 10, CampID: 1, Gender: domain.GenderFemale})
	svc := NewAllocationService(repo, campers)

	allocations, err := svc.AllocateRoom(context.Background(), 1, []uint{10}, 99, "")
	assert.NoError(t, err)

	first, err := svc.DeallocateRoom(context.Background(), allocations[0].ID)
	assert.NoError(t, err)
	assert.False(t, first.Active)
	assert.Equal(t, 0, repo.activeCount(1))

	// Deallocating again changes nothing.
	second, err := svc.DeallocateRoom(context.Background(), allocations[0].ID)
	assert.NoError(t, err)
	assert.False(t, second.Active)
	assert.Equal(t, 0, repo.activeCount(1))
}

func TestAllocationService_DeallocateRoom_NotFound(t *testing.T) {
	svc := NewAllocationService(newFakeRoomRepo(), newFakeCamperRepo())

	_, err := svc.DeallocateRoom(context.Background(), 999)
	assert.ErrorIs(t, err, ErrRoomAllocationNotFound)
}

func TestAllocationService_UpdateRoomAllocation_ReactivationChecksCapacity(t *testing.T) {
	repo := newFakeRoomRepo(domain.Room{ID: 1, CampID: 1, Capacity: 1, Gender: domain.RoomGenderFemale})
	campers := newFakeCamperRepo(
		domain.Camper{ID: 10, CampID: 1, Gender: domain.GenderFemale},
		domain.Camper{ID: 11, CampID: 1, Gender: domain.GenderFemale},
	)
	svc := NewAllocationService(repo, campers)

	allocations, err := svc.AllocateRoom(context.Background(), 1, []uint{10}, 99, "")
	assert.NoError(t, err)

	_, err = svc.DeallocateRoom(context.Background(), allocations[0].ID)
	assert.NoError(t, err)

	// The freed bed goes to someone else.
	_, err = svc.AllocateRoom(context.Background(), 1, []uint{11}, 99, "")
	assert.NoError(t, err)

	// Reactivation must fail now that the room is full again.
	active := true
	_, err = svc.UpdateRoomAllocation(context.Background(), allocations[0].ID, &active, nil)
	assert.ErrorIs(t, err, ErrCapacityExceeded)
}

func TestAllocationService_UpdateRoomAllocation_ReactivationChecksHeldAllocation(t *testing.T) {
	repo := newFakeRoomRepo(
		domain.Room{ID: 1, CampID: 1, Capacity: 4, Gender: domain.RoomGenderFemale},
		domain.Room{ID: 2, CampID: 1, Capacity: 4, Gender: domain.RoomGenderFemale},
	)
	campers := newFakeCamperRepo(domain.Camper{ID: 10, CampID: 1, Gender: domain.GenderFemale})
	svc := NewAllocationService(repo, campers)

	allocations, err := svc.AllocateRoom(context.Background(), 1, []uint{10}, 99, "")
	assert.NoError(t, err)

	_, err = svc.DeallocateRoom(context.Background(), allocations[0].ID)
	assert.NoError(t, err)

	// The camper has since been moved to another room in the camp; the old
	// row must not come back to life alongside the new one.
	_, err = svc.AllocateRoom(context.Background(), 2, []uint{10}, 99, "")
	assert.NoError(t, err)

	active := true
	_, err = svc.UpdateRoomAllocation(context.Background(), allocations[0].ID, &active, nil)
	assert.ErrorIs(t, err, ErrDuplicateAllocation)
	assert.Zero(t, repo.activeCount(1))
	assert.Equal(t, 1, repo.activeCount(2))
}

func TestAllocationService_UpdateRoomAllocation_Notes(t *testing.T) {
	repo := newFakeRoomRepo(domain.Room{ID: 1, CampID: 1, Capacity: 4, Gender: domain.RoomGenderFemale})
	campers := newFakeCamperRepo(domain.Camper{ID: 10, CampID: 1, Gender: domain.GenderFemale})
	svc := NewAllocationService(repo, campers)

	allocations, err := svc.AllocateRoom(context.Background(), 1, []uint{10}, 99, "")
	assert.NoError(t, err)

	notes := "moved from room 102 after repairs"
	updated, err := svc.UpdateRoomAllocation(context.Background(), allocations[0].ID, nil, &notes)

	assert.NoError(t, err)
	assert.Equal(t, notes, updated.Notes)
	assert.True(t, updated.Active)
}

func TestAllocationService_ListRoomAllocations(t *testing.T) {
	repo := newFakeRoomRepo(domain.Room{ID: 1, CampID: 1, Capacity: 4, Gender: domain.RoomGenderFemale})
	campers := newFakeCamperRepo(
		domain.Camper{ID: 10, CampID: 1, Gender: domain.GenderFemale},
		domain.Camper{ID: 11, CampID: 1, Gender: domain.GenderFemale},
	)
	svc := NewAllocationService(repo, campers)

	allocations, err := svc.AllocateRoom(context.Background(), 1, []uint{10, 11}, 99, "")
	assert.NoError(t, err)

	_, err = svc.DeallocateRoom(context.Background(), allocations[0].ID)
	assert.NoError(t, err)

	all, err := svc.ListRoomAllocations(context.Background(), 1, false)
	assert.NoError(t, err)
	assert.Len(t, all, 2)

	active, err := svc.ListRoomAllocations(context.Background(), 1, true)
	assert.NoError(t, err)
	assert.Len(t, active, 1)
}

func TestAllocationService_ListRoomAllocations_UnknownRoom(t *testing.T) {
	svc := NewAllocationService(newFakeRoomRepo(), newFakeCamperRepo())

	_, err := svc.ListRoomAllocations(context.Background(), 999, false)
	assert.ErrorIs(t, err, ErrRoomNotFound)
}
