package response

import "github.com/campbase/campbase-api/internal/domain"

// BulkFoodAllocationResult is one camper's outcome in a bulk food
// allocation. Error is empty on success.
type BulkFoodAllocationResult struct {
	CamperID   uint                   `json:"camper_id"`
	Allocation *domain.FoodAllocation `json:"allocation,omitempty"`
	Error      string                 `json:"error,omitempty"`
}

func NewBulkFoodAllocationResults(results []domain.FoodAllocationResult) []BulkFoodAllocationResult {
	out := make([]BulkFoodAllocationResult, len(results))
	for i, r := range results {
		out[i] = BulkFoodAllocationResult{
			CamperID:   r.CamperID,
			Allocation: r.Allocation,
		}
		if r.Err != nil {
			out[i].Error = r.Err.Error()
		}
	}

	return out
}
