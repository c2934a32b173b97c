package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/campbase/campbase-api/internal/domain"
	"github.com/campbase/campbase-api/internal/repository"
)

var (
	ErrRoomNotFound           = repository.ErrRoomNotFound
	ErrRoomAllocationNotFound = repository.ErrRoomAllocationNotFound
	ErrRoomDamaged            = repository.ErrRoomDamaged
	ErrCapacityExceeded       = repository.ErrCapacityExceeded
	ErrIneligibleGender       = repository.ErrIneligibleGender
	ErrDuplicateAllocation    = repository.ErrDuplicateAllocation
	ErrCamperNotFound         = repository.ErrCamperNotFound

	ErrEmptySelection  = errors.New("no campers selected")
	ErrRepeatedCamper  = errors.New("camper listed more than once in the selection")
	ErrInvalidGender   = errors.New("invalid gender designation")
	ErrInvalidCapacity = errors.New("capacity must be positive")
)

type RoomRepository interface {
	Create(ctx context.Context, room domain.Room) (domain.Room, error)
	FindByID(ctx context.Context, id uint) (domain.Room, error)
	ListAvailable(ctx context.Context, campID uint, gender domain.Gender) ([]domain.Room, error)
	SetDamaged(ctx context.Context, id uint, damaged bool) (domain.Room, error)
	Allocate(ctx context.Context, roomID uint, camperIDs []uint, allocatedBy uint, notes string) ([]domain.RoomAllocation, error)
	Deallocate(ctx context.Context, allocationID uint) (domain.RoomAllocation, error)
	UpdateAllocation(ctx context.Context, allocationID uint, active *bool, notes *string) (domain.RoomAllocation, error)
	ListAllocations(ctx context.Context, roomID uint, activeOnly bool) ([]domain.RoomAllocationDetail, error)
}

type AllocationCamperRepository interface {
	FindByIDs(ctx context.Context, ids []uint) ([]domain.Camper, error)
}

// AllocationService is the room half of the allocation engine. The
// eligibility pre-check here gives callers precise errors; the repository
// re-validates everything inside the ledger transaction, which is what
// actually closes the read-then-write race.
type AllocationService struct {
	roomRepo   RoomRepository
	camperRepo AllocationCamperRepository
}

func NewAllocationService(roomRepo RoomRepository, camperRepo AllocationCamperRepository) *AllocationService {
	return &AllocationService{
		roomRepo:   roomRepo,
		camperRepo: camperRepo,
	}
}

func (s *AllocationService) CreateRoom(ctx context.Context, room domain.Room) (domain.Room, error) {
	if !room.Gender.IsValid() {
		return domain.Room{}, ErrInvalidGender
	}
	if room.Capacity <= 0 || room.ExtraBeds < 0 {
		return domain.Room{}, ErrInvalidCapacity
	}

	created, err := s.roomRepo.Create(ctx, room)
	if err != nil {
		return domain.Room{}, fmt.Errorf("s.roomRepo.Create -> %w", err)
	}

	return created, nil
}

func (s *AllocationService) ListAvailableRooms(ctx context.Context, campID uint, gender domain.Gender) ([]domain.Room, error) {
	if gender != "" && !gender.IsValid() {
		return nil, ErrInvalidGender
	}

	rooms, err := s.roomRepo.ListAvailable(ctx, campID, gender)
	if err != nil {
		return nil, fmt.Errorf("s.roomRepo.ListAvailable -> %w", err)
	}

	return rooms, nil
}

func (s *AllocationService) SetRoomDamaged(ctx context.Context, roomID uint, damaged bool) (domain.Room, error) {
	room, err := s.roomRepo.SetDamaged(ctx, roomID, damaged)
	if err != nil {
		return domain.Room{}, fmt.Errorf("s.roomRepo.SetDamaged -> %w", err)
	}

	return room, nil
}

// AllocateRoom places the whole selection into one room as a single batch.
// Partial placement is never a valid outcome.
func (s *AllocationService) AllocateRoom(ctx context.Context, roomID uint, camperIDs []uint, allocatedBy uint, notes string) ([]domain.RoomAllocation, error) {
	if len(camperIDs) == 0 {
		return nil, ErrEmptySelection
	}
	seen := make(map[uint]struct{}, len(camperIDs))
	for _, id := range camperIDs {
		if _, ok := seen[id]; ok {
			return nil, ErrRepeatedCamper
		}
		seen[id] = struct{}{}
	}

	room, err := s.roomRepo.FindByID(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("s.roomRepo.FindByID -> %w", err)
	}

	campers, err := s.camperRepo.FindByIDs(ctx, camperIDs)
	if err != nil {
		return nil, fmt.Errorf("s.camperRepo.FindByIDs -> %w", err)
	}
	if len(campers) != len(camperIDs) {
		return nil, ErrCamperNotFound
	}

	if err = domain.RoomEligible(room, campers); err != nil {
		return nil, err
	}

	allocations, err := s.roomRepo.Allocate(ctx, roomID, camperIDs, allocatedBy, notes)
	if err != nil {
		return nil, fmt.Errorf("s.roomRepo.Allocate -> %w", err)
	}

	zap.L().Info("room allocated",
		zap.Uint("room_id", roomID),
		zap.Int("campers", len(allocations)),
		zap.Uint("allocated_by", allocatedBy),
	)

	return allocations, nil
}

// DeallocateRoom soft-deletes the allocation. Idempotent.
func (s *AllocationService) DeallocateRoom(ctx context.Context, allocationID uint) (domain.RoomAllocation, error) {
	allocation, err := s.roomRepo.Deallocate(ctx, allocationID)
	if err != nil {
		return domain.RoomAllocation{}, fmt.Errorf("s.roomRepo.Deallocate -> %w", err)
	}

	return allocation, nil
}

// UpdateRoomAllocation edits notes and/or toggles the active flag.
// Reactivation goes through the same capacity and gender validation as a
// fresh allocation; a room that has filled up or been flagged damaged in
// the meantime rejects it.
func (s *AllocationService) UpdateRoomAllocation(ctx context.Context, allocationID uint, active *bool, notes *string) (domain.RoomAllocation, error) {
	allocation, err := s.roomRepo.UpdateAllocation(ctx, allocationID, active, notes)
	if err != nil {
		return domain.RoomAllocation{}, fmt.Errorf("s.roomRepo.UpdateAllocation -> %w", err)
	}

	return allocation, nil
}

func (s *AllocationService) ListRoomAllocations(ctx context.Context, roomID uint, activeOnly bool) ([]domain.RoomAllocationDetail, error) {
	if _, err := s.roomRepo.FindByID(ctx, roomID); err != nil {
		return nil, fmt.Errorf("s.roomRepo.FindByID -> %w", err)
	}

	allocations, err := s.roomRepo.ListAllocations(ctx, roomID, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("s.roomRepo.ListAllocations -> %w", err)
	}

	return allocations, nil
}
