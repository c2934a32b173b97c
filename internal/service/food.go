package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/campbase/campbase-api/internal/domain"
	"github.com/campbase/campbase-api/internal/repository"
)

var (
	ErrFoodBatchNotFound = repository.ErrFoodBatchNotFound

	ErrInvalidMealCategory = errors.New("invalid meal category")
	ErrInvalidQuantity     = errors.New("quantity must be positive")
	ErrCategoryMismatch    = errors.New("camper outside the requested category")
)

type FoodRepository interface {
	Create(ctx context.Context, batch domain.FoodBatch) (domain.FoodBatch, error)
	FindByID(ctx context.Context, id uint) (domain.FoodBatch, error)
	ListAvailable(ctx context.Context, campID uint, date time.Time, category domain.MealCategory) ([]domain.FoodBatch, error)
	Allocate(ctx context.Context, batchID, camperID, allocatedBy uint) (domain.FoodAllocation, error)
}

// FoodService is the meal half of the allocation engine.
type FoodService struct {
	foodRepo   FoodRepository
	camperRepo AllocationCamperRepository
}

func NewFoodService(foodRepo FoodRepository, camperRepo AllocationCamperRepository) *FoodService {
	return &FoodService{
		foodRepo:   foodRepo,
		camperRepo: camperRepo,
	}
}

func (s *FoodService) CreateBatch(ctx context.Context, batch domain.FoodBatch) (domain.FoodBatch, error) {
	if !batch.Category.IsValid() {
		return domain.FoodBatch{}, ErrInvalidMealCategory
	}
	if batch.Quantity <= 0 {
		return domain.FoodBatch{}, ErrInvalidQuantity
	}

	created, err := s.foodRepo.Create(ctx, batch)
	if err != nil {
		return domain.FoodBatch{}, fmt.Errorf("s.foodRepo.Create -> %w", err)
	}

	return created, nil
}

func (s *FoodService) ListAvailableBatches(ctx context.Context, campID uint, date time.Time, category domain.MealCategory) ([]domain.FoodBatch, error) {
	if !category.IsValid() {
		return nil, ErrInvalidMealCategory
	}

	batches, err := s.foodRepo.ListAvailable(ctx, campID, date, category)
	if err != nil {
		return nil, fmt.Errorf("s.foodRepo.ListAvailable -> %w", err)
	}

	return batches, nil
}

// AllocateFood serves one camper from the batch. The pre-check gives a
// fast answer on an exhausted batch; the repository enforces both the
// quantity invariant and the one-serving-per-meal-slot rule inside the
// ledger transaction.
func (s *FoodService) AllocateFood(ctx context.Context, batchID, camperID, allocatedBy uint) (domain.FoodAllocation, error) {
	batch, err := s.foodRepo.FindByID(ctx, batchID)
	if err != nil {
		return domain.FoodAllocation{}, fmt.Errorf("s.foodRepo.FindByID -> %w", err)
	}

	if err = domain.FoodEligible(batch); err != nil {
		return domain.FoodAllocation{}, err
	}

	allocation, err := s.foodRepo.Allocate(ctx, batchID, camperID, allocatedBy)
	if err != nil {
		return domain.FoodAllocation{}, fmt.Errorf("s.foodRepo.Allocate -> %w", err)
	}

	zap.L().Info("food allocated",
		zap.Uint("batch_id", batchID),
		zap.Uint("camper_id", camperID),
		zap.Uint("allocated_by", allocatedBy),
	)

	return allocation, nil
}

// BulkAllocateFood serves each camper in turn. Meal capacity is a shared
// pool, so one camper's failure must not block the rest: every camper gets
// an independent result instead of the all-or-nothing semantics room
// batches use. A non-empty categoryFilter restricts serving to campers
// registered under that category; the rest fail their own result entry.
func (s *FoodService) BulkAllocateFood(ctx context.Context, batchID uint, camperIDs []uint, categoryFilter string, allocatedBy uint) ([]domain.FoodAllocationResult, error) {
	if len(camperIDs) == 0 {
		return nil, ErrEmptySelection
	}

	if _, err := s.foodRepo.FindByID(ctx, batchID); err != nil {
		return nil, fmt.Errorf("s.foodRepo.FindByID -> %w", err)
	}

	excluded := make(map[uint]bool)
	if categoryFilter != "" {
		campers, err := s.camperRepo.FindByIDs(ctx, camperIDs)
		if err != nil {
			return nil, fmt.Errorf("s.camperRepo.FindByIDs -> %w", err)
		}
		for _, camper := range campers {
			if camper.Category != categoryFilter {
				excluded[camper.ID] = true
			}
		}
	}

	results := make([]domain.FoodAllocationResult, len(camperIDs))
	for i, camperID := range camperIDs {
		if excluded[camperID] {
			results[i] = domain.FoodAllocationResult{CamperID: camperID, Err: ErrCategoryMismatch}
			continue
		}

		allocation, err := s.AllocateFood(ctx, batchID, camperID, allocatedBy)
		results[i] = domain.FoodAllocationResult{CamperID: camperID, Err: err}
		if err == nil {
			a := allocation
			results[i].Allocation = &a
		}
	}

	return results, nil
}
