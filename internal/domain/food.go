package domain

import "time"

type MealCategory string

const (
	MealBreakfast MealCategory = "breakfast"
	MealLunch     MealCategory = "lunch"
	MealSupper    MealCategory = "supper"
	MealSnacks    MealCategory = "snacks"
)

func (c MealCategory) IsValid() bool {
	switch c {
	case MealBreakfast, MealLunch, MealSupper, MealSnacks:
		return true
	}
	return false
}

// FoodBatch is a dated, categorized meal preparation with a finite
// quantity. Allocated is derived from active allocations against the batch.
type FoodBatch struct {
	ID        uint         `json:"id"`
	CampID    uint         `json:"camp_id"`
	Name      string       `json:"name"`
	Vendor    string       `json:"vendor"`
	Date      time.Time    `json:"date"`
	Category  MealCategory `json:"category"`
	Quantity  int          `json:"quantity"`
	Allocated int          `json:"allocated"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

func (b FoodBatch) Remaining() int {
	return b.Quantity - b.Allocated
}

func (b FoodBatch) Exhausted() bool {
	return b.Remaining() <= 0
}

// FoodEligible checks the batch itself. The per-(camper, category, date)
// duplicate rule needs the ledger and is enforced at allocation time.
func FoodEligible(batch FoodBatch) error {
	if batch.Exhausted() {
		return ErrCapacityExceeded
	}

	return nil
}
