package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFoodBatch_Remaining(t *testing.T) {
	batch := FoodBatch{Quantity: 100, Allocated: 30}
	assert.Equal(t, 70, batch.Remaining())
	assert.False(t, batch.Exhausted())
}

func TestFoodBatch_Exhausted(t *testing.T) {
	batch := FoodBatch{Quantity: 100, Allocated: 100}
	assert.Equal(t, 0, batch.Remaining())
	assert.True(t, batch.Exhausted())
}

func TestFoodEligible(t *testing.T) {
	assert.NoError(t, FoodEligible(FoodBatch{Quantity: 1, Allocated: 0}))
	assert.ErrorIs(t, FoodEligible(FoodBatch{Quantity: 1, Allocated: 1}), ErrCapacityExceeded)
}

func TestMealCategory_IsValid(t *testing.T) {
	assert.True(t, MealBreakfast.IsValid())
	assert.True(t, MealLunch.IsValid())
	assert.True(t, MealSupper.IsValid())
	assert.True(t, MealSnacks.IsValid())
	assert.False(t, MealCategory("dinner").IsValid())
	assert.False(t, MealCategory("").IsValid())
}
