package repository

import (
	"context"
	"fmt"

	"github.com/campbase/campbase-api/internal/domain"
	"github.com/campbase/campbase-api/internal/repository/dao"
)

var (
	ErrRoomNotFound           = dao.ErrRoomNotFound
	ErrRoomAllocationNotFound = dao.ErrRoomAllocationNotFound
	ErrRoomDamaged            = domain.ErrRoomDamaged
	ErrCapacityExceeded       = domain.ErrCapacityExceeded
	ErrIneligibleGender       = domain.ErrIneligibleGender
	ErrDuplicateAllocation    = domain.ErrDuplicateAllocation
)

type RoomDAO interface {
	Insert(ctx context.Context, room dao.Room) (dao.Room, error)
	FindByID(ctx context.Context, id uint) (dao.RoomWithOccupancy, error)
	ListAvailable(ctx context.Context, campID uint, gender string) ([]dao.RoomWithOccupancy, error)
	SetDamaged(ctx context.Context, id uint, damaged bool) (dao.Room, error)
	Allocate(ctx context.Context, roomID uint, camperIDs []uint, allocatedBy uint, notes string) ([]dao.RoomAllocation, error)
	Deallocate(ctx context.Context, allocationID uint) (dao.RoomAllocation, error)
	UpdateAllocation(ctx context.Context, allocationID uint, active *bool, notes *string) (dao.RoomAllocation, error)
	FindAllocationByID(ctx context.Context, allocationID uint) (dao.RoomAllocation, error)
	ListAllocations(ctx context.Context, roomID uint, activeOnly bool) ([]dao.RoomAllocation, error)
}

type RoomRepository struct {
	dao RoomDAO
}

func NewRoomRepository(dao RoomDAO) *RoomRepository {
	return &RoomRepository{
		dao: dao,
	}
}

func (r *RoomRepository) Create(ctx context.Context, room domain.Room) (domain.Room, error) {
	created, err := r.dao.Insert(ctx, r.domainToDao(room))
	if err != nil {
		return domain.Room{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(dao.RoomWithOccupancy{Room: created}), nil
}

func (r *RoomRepository) FindByID(ctx context.Context, id uint) (domain.Room, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Room{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *RoomRepository) ListAvailable(ctx context.Context, campID uint, gender domain.Gender) ([]domain.Room, error) {
	found, err := r.dao.ListAvailable(ctx, campID, string(gender))
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListAvailable -> %w", err)
	}

	rooms := make([]domain.Room, len(found))
	for i, room := range found {
		rooms[i] = r.daoToDomain(room)
	}

	return rooms, nil
}

func (r *RoomRepository) SetDamaged(ctx context.Context, id uint, damaged bool) (domain.Room, error) {
	updated, err := r.dao.SetDamaged(ctx, id, damaged)
	if err != nil {
		return domain.Room{}, fmt.Errorf("r.dao.SetDamaged -> %w", err)
	}

	updated.Damaged = damaged

	return r.daoToDomain(dao.RoomWithOccupancy{Room: updated}), nil
}

func (r *RoomRepository) Allocate(ctx context.Context, roomID uint, camperIDs []uint, allocatedBy uint, notes string) ([]domain.RoomAllocation, error) {
	created, err := r.dao.Allocate(ctx, roomID, camperIDs, allocatedBy, notes)
	if err != nil {
		return nil, fmt.Errorf("r.dao.Allocate -> %w", err)
	}

	allocations := make([]domain.RoomAllocation, len(created))
	for i, a := range created {
		allocations[i] = r.allocationDaoToDomain(a)
	}

	return allocations, nil
}

func (r *RoomRepository) Deallocate(ctx context.Context, allocationID uint) (domain.RoomAllocation, error) {
	row, err := r.dao.Deallocate(ctx, allocationID)
	if err != nil {
		return domain.RoomAllocation{}, fmt.Errorf("r.dao.Deallocate -> %w", err)
	}

	row.Active = false

	return r.allocationDaoToDomain(row), nil
}

func (r *RoomRepository) UpdateAllocation(ctx context.Context, allocationID uint, active *bool, notes *string) (domain.RoomAllocation, error) {
	row, err := r.dao.UpdateAllocation(ctx, allocationID, active, notes)
	if err != nil {
		return domain.RoomAllocation{}, fmt.Errorf("r.dao.UpdateAllocation -> %w", err)
	}

	if active != nil {
		row.Active = *active
	}
	if notes != nil {
		row.Notes = *notes
	}

	return r.allocationDaoToDomain(row), nil
}

func (r *RoomRepository) FindAllocationByID(ctx context.Context, allocationID uint) (domain.RoomAllocation, error) {
	row, err := r.dao.FindAllocationByID(ctx, allocationID)
	if err != nil {
		return domain.RoomAllocation{}, fmt.Errorf("r.dao.FindAllocationByID -> %w", err)
	}

	return r.allocationDaoToDomain(row), nil
}

func (r *RoomRepository) ListAllocations(ctx context.Context, roomID uint, activeOnly bool) ([]domain.RoomAllocationDetail, error) {
	rows, err := r.dao.ListAllocations(ctx, roomID, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListAllocations -> %w", err)
	}

	details := make([]domain.RoomAllocationDetail, len(rows))
	for i, row := range rows {
		details[i] = domain.RoomAllocationDetail{
			RoomAllocation: r.allocationDaoToDomain(row),
			Camper: domain.Camper{
				ID:         row.Camper.ID,
				CampID:     row.Camper.CampID,
				FullName:   row.Camper.FullName,
				Gender:     domain.Gender(row.Camper.Gender),
				Category:   row.Camper.Category,
				CamperCode: row.Camper.CamperCode,
				Paid:       row.Camper.Paid,
				CheckedIn:  row.Camper.CheckedIn,
				Cancelled:  row.Camper.Cancelled,
			},
		}
	}

	return details, nil
}

func (r *RoomRepository) domainToDao(room domain.Room) dao.Room {
	return dao.Room{
		ID:         room.ID,
		CampID:     room.CampID,
		Hostel:     room.Hostel,
		Block:      room.Block,
		RoomNumber: room.RoomNumber,
		Capacity:   room.Capacity,
		ExtraBeds:  room.ExtraBeds,
		Gender:     string(room.Gender),
		Damaged:    room.Damaged,
	}
}

func (r *RoomRepository) daoToDomain(room dao.RoomWithOccupancy) domain.Room {
	return domain.Room{
		ID:         room.ID,
		CampID:     room.CampID,
		Hostel:     room.Hostel,
		Block:      room.Block,
		RoomNumber: room.RoomNumber,
		Capacity:   room.Capacity,
		ExtraBeds:  room.ExtraBeds,
		Gender:     domain.RoomGender(room.Gender),
		Damaged:    room.Damaged,
		Occupancy:  room.Occupancy,
		CreatedAt:  room.CreatedAt,
		UpdatedAt:  room.UpdatedAt,
	}
}

func (r *RoomRepository) allocationDaoToDomain(a dao.RoomAllocation) domain.RoomAllocation {
	return domain.RoomAllocation{
		ID:          a.ID,
		RoomID:      a.RoomID,
		CamperID:    a.CamperID,
		AllocatedBy: a.AllocatedBy,
		AllocatedAt: a.AllocatedAt,
		Active:      a.Active,
		Notes:       a.Notes,
	}
}
