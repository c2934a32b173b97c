package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/campbase/campbase-api/internal/domain"
)

var (
	ErrRoomNotFound           = errors.New("room not found")
	ErrRoomAllocationNotFound = errors.New("room allocation not found")
)

type Room struct {
	ID uint `gorm:"primaryKey"`

	CampID     uint   `gorm:"not null;index"`
	Hostel     string `gorm:"not null"`
	Block      string
	RoomNumber string `gorm:"not null"`
	Capacity   int    `gorm:"not null"`
	ExtraBeds  int    `gorm:"default:0"`
	Gender     string `gorm:"not null"`
	Damaged    bool   `gorm:"default:false"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type RoomAllocation struct {
	ID uint `gorm:"primaryKey"`

	RoomID      uint `gorm:"not null;index"`
	Room        Room `gorm:"foreignKey:RoomID"`
	CamperID    uint `gorm:"not null;index"`
	Camper      Camper `gorm:"foreignKey:CamperID"`
	AllocatedBy uint
	AllocatedAt time.Time `gorm:"not null"`
	Active      bool      `gorm:"default:true;index"`
	Notes       string

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// RoomWithOccupancy carries a room row plus its derived active-allocation
// count, scanned from the listing query.
type RoomWithOccupancy struct {
	Room
	Occupancy int
}

type RoomDAO struct {
	db *gorm.DB
}

func NewRoomDAO(db *gorm.DB) *RoomDAO {
	return &RoomDAO{
		db: db,
	}
}

func (d *RoomDAO) Insert(ctx context.Context, room Room) (Room, error) {
	result := d.db.WithContext(ctx).Create(&room)
	if result.Error != nil {
		return Room{}, result.Error
	}

	return room, nil
}

func (d *RoomDAO) FindByID(ctx context.Context, id uint) (RoomWithOccupancy, error) {
	var room Room

	result := d.db.WithContext(ctx).First(&room, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return RoomWithOccupancy{}, ErrRoomNotFound
		}

		return RoomWithOccupancy{}, result.Error
	}

	occupancy, err := d.countActive(d.db.WithContext(ctx), id)
	if err != nil {
		return RoomWithOccupancy{}, err
	}

	return RoomWithOccupancy{Room: room, Occupancy: occupancy}, nil
}

// ListAvailable returns undamaged rooms of the camp that still have beds
// free, optionally narrowed to rooms accepting the given gender. The
// occupancy subquery counts only active ledger rows.
func (d *RoomDAO) ListAvailable(ctx context.Context, campID uint, gender string) ([]RoomWithOccupancy, error) {
	query := d.db.WithContext(ctx).
		Model(&Room{}).
		Select("rooms.*, (?) AS occupancy",
			d.db.Model(&RoomAllocation{}).
				Select("COUNT(*)").
				Where("room_allocations.room_id = rooms.id AND room_allocations.active = ?", true),
		).
		Where("rooms.camp_id = ? AND rooms.damaged = ?", campID, false)

	if gender != "" {
		query = query.Where("rooms.gender IN ?", []string{gender, string(domain.RoomGenderOther)})
	}

	var rooms []RoomWithOccupancy
	result := query.Find(&rooms)
	if result.Error != nil {
		return nil, result.Error
	}

	available := make([]RoomWithOccupancy, 0, len(rooms))
	for _, r := range rooms {
		if r.Occupancy < r.Capacity+r.ExtraBeds {
			available = append(available, r)
		}
	}

	return available, nil
}

func (d *RoomDAO) SetDamaged(ctx context.Context, id uint, damaged bool) (Room, error) {
	var room Room

	result := d.db.WithContext(ctx).First(&room, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Room{}, ErrRoomNotFound
		}

		return Room{}, result.Error
	}

	result = d.db.WithContext(ctx).Model(&room).Update("damaged", damaged)
	if result.Error != nil {
		return Room{}, result.Error
	}

	return room, nil
}

// Allocate writes one active ledger row per camper as a single
// transaction. The room row is locked for the duration, so the capacity
// check and the inserts cannot interleave with a concurrent allocation
// against the same room. Either every row commits or none does.
func (d *RoomDAO) Allocate(ctx context.Context, roomID uint, camperIDs []uint, allocatedBy uint, notes string) ([]RoomAllocation, error) {
	var created []RoomAllocation

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var room Room
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&room, roomID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRoomNotFound
			}
			return err
		}

		if room.Damaged {
			return domain.ErrRoomDamaged
		}

		occupancy, err := d.countActive(tx, roomID)
		if err != nil {
			return err
		}
		if occupancy+len(camperIDs) > room.Capacity+room.ExtraBeds {
			return domain.ErrCapacityExceeded
		}

		var campers []Camper
		if err = tx.Where("id IN ? AND cancelled = ?", camperIDs, false).Find(&campers).Error; err != nil {
			return err
		}
		if len(campers) != len(camperIDs) {
			return ErrCamperNotFound
		}
		for _, c := range campers {
			if room.Gender != string(domain.RoomGenderOther) && c.Gender != room.Gender {
				return domain.ErrIneligibleGender
			}
		}

		// One active room allocation per camper per camp.
		var held int64
		err = tx.Model(&RoomAllocation{}).
			Joins("JOIN rooms ON rooms.id = room_allocations.room_id").
			Where("room_allocations.camper_id IN ? AND room_allocations.active = ? AND rooms.camp_id = ?",
				camperIDs, true, room.CampID).
			Count(&held).Error
		if err != nil {
			return err
		}
		if held > 0 {
			return domain.ErrDuplicateAllocation
		}

		now := time.Now()
		rows := make([]RoomAllocation, len(camperIDs))
		for i, camperID := range camperIDs {
			rows[i] = RoomAllocation{
				RoomID:      roomID,
				CamperID:    camperID,
				AllocatedBy: allocatedBy,
				AllocatedAt: now,
				Active:      true,
				Notes:       notes,
			}
		}
		if err = tx.Create(&rows).Error; err != nil {
			return err
		}

		created = rows
		return nil
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

// Deallocate clears the active flag. Deallocating an already-inactive row
// is a no-op, not an error.
func (d *RoomDAO) Deallocate(ctx context.Context, allocationID uint) (RoomAllocation, error) {
	var allocation RoomAllocation

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&allocation, allocationID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRoomAllocationNotFound
			}
			return err
		}

		if !allocation.Active {
			return nil
		}

		return tx.Model(&allocation).Update("active", false).Error
	})
	if err != nil {
		return RoomAllocation{}, err
	}

	return allocation, nil
}

// UpdateAllocation updates notes and/or the active flag. Reactivating an
// inactive row re-validates damage, capacity, gender and the one active
// allocation per camper rule against current state under the same room
// lock as a fresh allocation.
func (d *RoomDAO) UpdateAllocation(ctx context.Context, allocationID uint, active *bool, notes *string) (RoomAllocation, error) {
	var allocation RoomAllocation

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&allocation, allocationID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRoomAllocationNotFound
			}
			return err
		}

		updates := map[string]interface{}{}
		if notes != nil {
			updates["notes"] = *notes
		}

		if active != nil && *active != allocation.Active {
			if *active {
				var room Room
				if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&room, allocation.RoomID).Error; err != nil {
					return err
				}
				if room.Damaged {
					return domain.ErrRoomDamaged
				}

				occupancy, err := d.countActive(tx, allocation.RoomID)
				if err != nil {
					return err
				}
				if occupancy+1 > room.Capacity+room.ExtraBeds {
					return domain.ErrCapacityExceeded
				}

				var camper Camper
				if err = tx.First(&camper, allocation.CamperID).Error; err != nil {
					return err
				}
				if room.Gender != string(domain.RoomGenderOther) && camper.Gender != room.Gender {
					return domain.ErrIneligibleGender
				}

				// The camper may have been moved elsewhere since this row
				// went inactive.
				var held int64
				err = tx.Model(&RoomAllocation{}).
					Joins("JOIN rooms ON rooms.id = room_allocations.room_id").
					Where("room_allocations.camper_id = ? AND room_allocations.active = ? AND room_allocations.id <> ? AND rooms.camp_id = ?",
						allocation.CamperID, true, allocation.ID, room.CampID).
					Count(&held).Error
				if err != nil {
					return err
				}
				if held > 0 {
					return domain.ErrDuplicateAllocation
				}
			}
			updates["active"] = *active
		}

		if len(updates) == 0 {
			return nil
		}

		return tx.Model(&allocation).Updates(updates).Error
	})
	if err != nil {
		return RoomAllocation{}, err
	}

	return allocation, nil
}

func (d *RoomDAO) FindAllocationByID(ctx context.Context, allocationID uint) (RoomAllocation, error) {
	var allocation RoomAllocation

	result := d.db.WithContext(ctx).First(&allocation, allocationID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return RoomAllocation{}, ErrRoomAllocationNotFound
		}

		return RoomAllocation{}, result.Error
	}

	return allocation, nil
}

func (d *RoomDAO) ListAllocations(ctx context.Context, roomID uint, activeOnly bool) ([]RoomAllocation, error) {
	query := d.db.WithContext(ctx).
		Preload("Camper").
		Where("room_id = ?", roomID)
	if activeOnly {
		query = query.Where("active = ?", true)
	}

	var allocations []RoomAllocation
	result := query.Order("allocated_at").Find(&allocations)
	if result.Error != nil {
		return nil, result.Error
	}

	return allocations, nil
}

func (d *RoomDAO) countActive(tx *gorm.DB, roomID uint) (int, error) {
	var count int64
	err := tx.Model(&RoomAllocation{}).
		Where("room_id = ? AND active = ?", roomID, true).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return int(count), nil
}
