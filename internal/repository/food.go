package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/campbase/campbase-api/internal/domain"
	"github.com/campbase/campbase-api/internal/repository/dao"
)

var ErrFoodBatchNotFound = dao.ErrFoodBatchNotFound

type FoodDAO interface {
	Insert(ctx context.Context, batch dao.FoodBatch) (dao.FoodBatch, error)
	FindByID(ctx context.Context, id uint) (dao.FoodBatchWithAllocated, error)
	ListAvailable(ctx context.Context, campID uint, date time.Time, category string) ([]dao.FoodBatchWithAllocated, error)
	Allocate(ctx context.Context, batchID, camperID, allocatedBy uint) (dao.FoodAllocation, error)
}

type FoodRepository struct {
	dao FoodDAO
}

func NewFoodRepository(dao FoodDAO) *FoodRepository {
	return &FoodRepository{
		dao: dao,
	}
}

func (r *FoodRepository) Create(ctx context.Context, batch domain.FoodBatch) (domain.FoodBatch, error) {
	created, err := r.dao.Insert(ctx, dao.FoodBatch{
		CampID:   batch.CampID,
		Name:     batch.Name,
		Vendor:   batch.Vendor,
		Date:     batch.Date,
		Category: string(batch.Category),
		Quantity: batch.Quantity,
	})
	if err != nil {
		return domain.FoodBatch{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(dao.FoodBatchWithAllocated{FoodBatch: created}), nil
}

func (r *FoodRepository) FindByID(ctx context.Context, id uint) (domain.FoodBatch, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.FoodBatch{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *FoodRepository) ListAvailable(ctx context.Context, campID uint, date time.Time, category domain.MealCategory) ([]domain.FoodBatch, error) {
	found, err := r.dao.ListAvailable(ctx, campID, date, string(category))
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListAvailable -> %w", err)
	}

	batches := make([]domain.FoodBatch, len(found))
	for i, b := range found {
		batches[i] = r.daoToDomain(b)
	}

	return batches, nil
}

func (r *FoodRepository) Allocate(ctx context.Context, batchID, camperID, allocatedBy uint) (domain.FoodAllocation, error) {
	created, err := r.dao.Allocate(ctx, batchID, camperID, allocatedBy)
	if err != nil {
		return domain.FoodAllocation{}, fmt.Errorf("r.dao.Allocate -> %w", err)
	}

	return domain.FoodAllocation{
		ID:          created.ID,
		FoodBatchID: created.FoodBatchID,
		CamperID:    created.CamperID,
		AllocatedBy: created.AllocatedBy,
		AllocatedAt: created.AllocatedAt,
		Active:      created.Active,
	}, nil
}

func (r *FoodRepository) daoToDomain(b dao.FoodBatchWithAllocated) domain.FoodBatch {
	return domain.FoodBatch{
		ID:        b.ID,
		CampID:    b.CampID,
		Name:      b.Name,
		Vendor:    b.Vendor,
		Date:      b.Date,
		Category:  domain.MealCategory(b.Category),
		Quantity:  b.Quantity,
		Allocated: b.Allocated,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}
