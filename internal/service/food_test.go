package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/campbase/campbase-api/internal/domain"
)

type fakeFoodRepo struct {
	batches     map[uint]domain.FoodBatch
	allocations []domain.FoodAllocation
	nextID      uint
}

func newFakeFoodRepo(batches ...domain.FoodBatch) *fakeFoodRepo {
	repo := &fakeFoodRepo{batches: make(map[uint]domain.FoodBatch), nextID: 1}
	for _, b := range batches {
		repo.batches[b.ID] = b
	}
	return repo
}

func (f *fakeFoodRepo) Create(_ context.Context, batch domain.FoodBatch) (domain.FoodBatch, error) {
	batch.ID = f.nextID
	f.nextID++
	f.batches[batch.ID] = batch
	return batch, nil
}

func (f *fakeFoodRepo) FindByID(_ context.Context, id uint) (domain.FoodBatch, error) {
	batch, ok := f.batches[id]
	if !ok {
		return domain.FoodBatch{}, ErrFoodBatchNotFound
	}
	return batch, nil
}

func (f *fakeFoodRepo) ListAvailable(_ context.Context, campID uint, date time.Time, category domain.MealCategory) ([]domain.FoodBatch, error) {
	var out []domain.FoodBatch
	for _, b := range f.batches {
		if b.CampID == campID && b.Date.Equal(date) && b.Category == category && !b.Exhausted() {
			out = append(out, b)
		}
	}
	return out, nil
}

// Allocate mirrors the ledger transaction: re-check quantity and the
// one-serving-per-slot rule against current state, then append.
func (f *fakeFoodRepo) Allocate(_ context.Context, batchID, camperID, allocatedBy uint) (domain.FoodAllocation, error) {
	batch, ok := f.batches[batchID]
	if !ok {
		return domain.FoodAllocation{}, ErrFoodBatchNotFound
	}
	if batch.Exhausted() {
		return domain.FoodAllocation{}, ErrCapacityExceeded
	}
	for _, a := range f.allocations {
		other, ok := f.batches[a.FoodBatchID]
		if !ok || !a.Active || a.CamperID != camperID {
			continue
		}
		if other.CampID == batch.CampID && other.Category == batch.Category && other.Date.Equal(batch.Date) {
			return domain.FoodAllocation{}, ErrDuplicateAllocation
		}
	}

	allocation := domain.FoodAllocation{
		ID:          uint(len(f.allocations) + 1),
		FoodBatchID: batchID,
		CamperID:    camperID,
		AllocatedBy: allocatedBy,
		Active:      true,
	}
	f.allocations = append(f.allocations, allocation)
	batch.Allocated++
	f.batches[batchID] = batch

	return allocation, nil
}

func TestFoodService_CreateBatch(t *testing.T) {
	svc := NewFoodService(newFakeFoodRepo(), newFakeCamperRepo())

	batch, err := svc.CreateBatch(context.Background(), domain.FoodBatch{
		CampID:   1,
		Name:     "Jollof Rice",
		Category: domain.MealLunch,
		Quantity: 150,
	})

	assert.NoError(t, err)
	assert.NotZero(t, batch.ID)
	assert.Equal(t, 150, batch.Remaining())
}

func TestFoodService_CreateBatch_InvalidCategory(t *testing.T) {
	svc := NewFoodService(newFakeFoodRepo(), newFakeCamperRepo())

	_, err := svc.CreateBatch(context.Background(), domain.FoodBatch{Category: "dinner", Quantity: 10})
	assert.ErrorIs(t, err, ErrInvalidMealCategory)
}

func TestFoodService_CreateBatch_InvalidQuantity(t *testing.T) {
	svc := NewFoodService(newFakeFoodRepo(), newFakeCamperRepo())

	_, err := svc.CreateBatch(context.Background(), domain.FoodBatch{Category: domain.MealLunch, Quantity: 0})
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestFoodService_ListAvailableBatches_InvalidCategory(t *testing.T) {
	svc := NewFoodService(newFakeFoodRepo(), newFakeCamperRepo())

	_, err := svc.ListAvailableBatches(context.Background(), 1, time.Now(), "brunch")
	assert.ErrorIs(t, err, ErrInvalidMealCategory)
}

func TestFoodService_AllocateFood(t *testing.T) {
	repo := newFakeFoodRepo(domain.FoodBatch{ID: 1, CampID: 1, Category: domain.MealLunch, Quantity: 10})
	svc := NewFoodService(repo, newFakeCamperRepo())

	allocation, err := svc.AllocateFood(context.Background(), 1, 42, 99)

	assert.NoError(t, err)
	assert.Equal(t, uint(42), allocation.CamperID)
	assert.True(t, allocation.Active)
	assert.Equal(t, 1, repo.batches[1].Allocated)
}

func TestFoodService_AllocateFood_UnknownBatch(t *testing.T) {
	svc := NewFoodService(newFakeFoodRepo(), newFakeCamperRepo())

	_, err := svc.AllocateFood(context.Background(), 999, 42, 99)
	assert.ErrorIs(t, err, ErrFoodBatchNotFound)
}

func TestFoodService_AllocateFood_ExhaustedBatch(t *testing.T) {
	repo := newFakeFoodRepo(domain.FoodBatch{ID: 1, CampID: 1, Category: domain.MealLunch, Quantity: 1, Allocated: 1})
	svc := NewFoodService(repo, newFakeCamperRepo())

	_, err := svc.AllocateFood(context.Background(), 1, 42, 99)
	assert.ErrorIs(t, err, ErrCapacityExceeded)
	assert.Empty(t, repo.allocations)
}

func TestFoodService_AllocateFood_DuplicateMealSlot(t *testing.T) {
	day := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)
	repo := newFakeFoodRepo(
		domain.FoodBatch{ID: 1, CampID: 1, Category: domain.MealLunch, Date: day, Quantity: 10},
		domain.FoodBatch{ID: 2, CampID: 1, Category: domain.MealLunch, Date: day, Quantity: 10},
	)
	svc := NewFoodService(repo, newFakeCamperRepo())

	_, err := svc.AllocateFood(context.Background(), 1, 42, 99)
	assert.NoError(t, err)

	// Same camper, same meal slot, different batch: still one serving.
	_, err = svc.AllocateFood(context.Background(), 2, 42, 99)
	assert.ErrorIs(t, err, ErrDuplicateAllocation)
	assert.Len(t, repo.allocations, 1)
}

func TestFoodService_AllocateFood_DifferentCategorySameDay(t *testing.T) {
	day := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)
	repo := newFakeFoodRepo(
		domain.FoodBatch{ID: 1, CampID: 1, Category: domain.MealLunch, Date: day, Quantity: 10},
		domain.FoodBatch{ID: 2, CampID: 1, Category: domain.MealSupper, Date: day, Quantity: 10},
	)
	svc := NewFoodService(repo, newFakeCamperRepo())

	_, err := svc.AllocateFood(context.Background(), 1, 42, 99)
	assert.NoError(t, err)

	_, err = svc.AllocateFood(context.Background(), 2, 42, 99)
	assert.NoError(t, err)
}

func TestFoodService_BulkAllocateFood_EmptySelection(t *testing.T) {
	svc := NewFoodService(newFakeFoodRepo(), newFakeCamperRepo())

	_, err := svc.BulkAllocateFood(context.Background(), 1, nil, "", 99)
	assert.ErrorIs(t, err, ErrEmptySelection)
}

func TestFoodService_BulkAllocateFood_UnknownBatch(t *testing.T) {
	svc := NewFoodService(newFakeFoodRepo(), newFakeCamperRepo())

	_, err := svc.BulkAllocateFood(context.Background(), 999, []uint{1}, "", 99)
	assert.ErrorIs(t, err, ErrFoodBatchNotFound)
}

func TestFoodService_BulkAllocateFood_PartialSuccess(t *testing.T) {
	repo := newFakeFoodRepo(domain.FoodBatch{ID: 1, CampID: 1, Category: domain.MealLunch, Quantity: 3})
	svc := NewFoodService(repo, newFakeCamperRepo())

	results, err := svc.BulkAllocateFood(context.Background(), 1, []uint{10, 11, 12, 13}, "", 99)

	assert.NoError(t, err)
	assert.Len(t, results, 4)

	// Three servings, four campers: the first three succeed, the last
	// one hits the quantity wall without rolling anything back.
	for _, r := range results[:3] {
		assert.NoError(t, r.Err)
		assert.NotNil(t, r.Allocation)
	}
	assert.ErrorIs(t, results[3].Err, ErrCapacityExceeded)
	assert.Nil(t, results[3].Allocation)

	assert.Len(t, repo.allocations, 3)
	assert.True(t, repo.batches[1].Exhausted())
}

func TestFoodService_BulkAllocateFood_DuplicateInSelection(t *testing.T) {
	repo := newFakeFoodRepo(domain.FoodBatch{ID: 1, CampID: 1, Category: domain.MealLunch, Quantity: 10})
	svc := NewFoodService(repo, newFakeCamperRepo())

	results, err := svc.BulkAllocateFood(context.Background(), 1, []uint{10, 10, 11}, "", 99)

	assert.NoError(t, err)
	assert.NoError(t, results[0].Err)
	assert.ErrorIs(t, results[1].Err, ErrDuplicateAllocation)
	assert.NoError(t, results[2].Err)
	assert.Len(t, repo.allocations, 2)
}

func TestFoodService_BulkAllocateFood_CategoryFilter(t *testing.T) {
	repo := newFakeFoodRepo(domain.FoodBatch{ID: 1, CampID: 1, Category: domain.MealLunch, Quantity: 10})
	campers := newFakeCamperRepo(
		domain.Camper{ID: 10, CampID: 1, Category: "children"},
		domain.Camper{ID: 11, CampID: 1, Category: "adults"},
		domain.Camper{ID: 12, CampID: 1, Category: "children"},
	)
	svc := NewFoodService(repo, campers)

	results, err := svc.BulkAllocateFood(context.Background(), 1, []uint{10, 11, 12}, "children", 99)

	assert.NoError(t, err)
	assert.NoError(t, results[0].Err)
	assert.ErrorIs(t, results[1].Err, ErrCategoryMismatch)
	assert.NoError(t, results[2].Err)
	assert.Len(t, repo.allocations, 2)
}
