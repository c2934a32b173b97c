package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/campbase/campbase-api/internal/domain"
)

var ErrFoodBatchNotFound = errors.New("food batch not found")

type FoodBatch struct {
	ID uint `gorm:"primaryKey"`

	CampID   uint   `gorm:"not null;index"`
	Name     string `gorm:"not null"`
	Vendor   string
	Date     time.Time `gorm:"not null;index"`
	Category string    `gorm:"not null"`
	Quantity int       `gorm:"not null"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type FoodAllocation struct {
	ID uint `gorm:"primaryKey"`

	FoodBatchID uint      `gorm:"not null;index"`
	FoodBatch   FoodBatch `gorm:"foreignKey:FoodBatchID"`
	CamperID    uint      `gorm:"not null;index"`
	AllocatedBy uint
	AllocatedAt time.Time `gorm:"not null"`
	Active      bool      `gorm:"default:true;index"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// FoodBatchWithAllocated carries a batch row plus its derived
// active-allocation count.
type FoodBatchWithAllocated struct {
	FoodBatch
	Allocated int
}

type FoodDAO struct {
	db *gorm.DB
}

func NewFoodDAO(db *gorm.DB) *FoodDAO {
	return &FoodDAO{
		db: db,
	}
}

func (d *FoodDAO) Insert(ctx context.Context, batch FoodBatch) (FoodBatch, error) {
	result := d.db.WithContext(ctx).Create(&batch)
	if result.Error != nil {
		return FoodBatch{}, result.Error
	}

	return batch, nil
}

func (d *FoodDAO) FindByID(ctx context.Context, id uint) (FoodBatchWithAllocated, error) {
	var batch FoodBatch

	result := d.db.WithContext(ctx).First(&batch, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return FoodBatchWithAllocated{}, ErrFoodBatchNotFound
		}

		return FoodBatchWithAllocated{}, result.Error
	}

	allocated, err := d.countActive(d.db.WithContext(ctx), id)
	if err != nil {
		return FoodBatchWithAllocated{}, err
	}

	return FoodBatchWithAllocated{FoodBatch: batch, Allocated: allocated}, nil
}

// ListAvailable returns the camp's batches for one date and meal category
// that still have servings left.
func (d *FoodDAO) ListAvailable(ctx context.Context, campID uint, date time.Time, category string) ([]FoodBatchWithAllocated, error) {
	var batches []FoodBatchWithAllocated

	result := d.db.WithContext(ctx).
		Model(&FoodBatch{}).
		Select("food_batches.*, (?) AS allocated",
			d.db.Model(&FoodAllocation{}).
				Select("COUNT(*)").
				Where("food_allocations.food_batch_id = food_batches.id AND food_allocations.active = ?", true),
		).
		Where("food_batches.camp_id = ? AND food_batches.date = ? AND food_batches.category = ?",
			campID, date, category).
		Find(&batches)
	if result.Error != nil {
		return nil, result.Error
	}

	available := make([]FoodBatchWithAllocated, 0, len(batches))
	for _, b := range batches {
		if b.Allocated < b.Quantity {
			available = append(available, b)
		}
	}

	return available, nil
}

// Allocate reserves one serving for the camper. The batch row is locked so
// the remaining-quantity check and the ledger insert are atomic. The
// duplicate check spans every batch of the same camp, category and date:
// a camper is served each meal slot at most once, regardless of which
// batch covers it.
func (d *FoodDAO) Allocate(ctx context.Context, batchID, camperID, allocatedBy uint) (FoodAllocation, error) {
	var created FoodAllocation

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var batch FoodBatch
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&batch, batchID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrFoodBatchNotFound
			}
			return err
		}

		var camper Camper
		if err := tx.Where("id = ? AND cancelled = ?", camperID, false).First(&camper).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCamperNotFound
			}
			return err
		}

		var served int64
		err := tx.Model(&FoodAllocation{}).
			Joins("JOIN food_batches ON food_batches.id = food_allocations.food_batch_id").
			Where("food_allocations.camper_id = ? AND food_allocations.active = ?", camperID, true).
			Where("food_batches.camp_id = ? AND food_batches.category = ? AND food_batches.date = ?",
				batch.CampID, batch.Category, batch.Date).
			Count(&served).Error
		if err != nil {
			return err
		}
		if served > 0 {
			return domain.ErrDuplicateAllocation
		}

		allocated, err := d.countActive(tx, batchID)
		if err != nil {
			return err
		}
		if allocated >= batch.Quantity {
			return domain.ErrCapacityExceeded
		}

		created = FoodAllocation{
			FoodBatchID: batchID,
			CamperID:    camperID,
			AllocatedBy: allocatedBy,
			AllocatedAt: time.Now(),
			Active:      true,
		}

		return tx.Create(&created).Error
	})
	if err != nil {
		return FoodAllocation{}, err
	}

	return created, nil
}

func (d *FoodDAO) countActive(tx *gorm.DB, batchID uint) (int, error) {
	var count int64
	err := tx.Model(&FoodAllocation{}).
		Where("food_batch_id = ? AND active = ?", batchID, true).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return int(count), nil
}
