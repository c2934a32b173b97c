package domain

import (
	"errors"
	"time"
)

// Allocation rule violations. Declared here because both the engine's
// pre-checks and the transactional ledger writes report them.
var (
	ErrRoomDamaged         = errors.New("room is marked damaged")
	ErrCapacityExceeded    = errors.New("not enough capacity remaining")
	ErrIneligibleGender    = errors.New("camper gender not allowed in this room")
	ErrDuplicateAllocation = errors.New("camper already holds an active allocation for this slot")
)

// RoomAllocation links one camper to one room. Rows are soft-deleted by
// clearing Active; the row itself is kept for audit.
type RoomAllocation struct {
	ID          uint      `json:"id"`
	RoomID      uint      `json:"room_id"`
	CamperID    uint      `json:"camper_id"`
	AllocatedBy uint      `json:"allocated_by"`
	AllocatedAt time.Time `json:"allocated_at"`
	Active      bool      `json:"active"`
	Notes       string    `json:"notes"`
}

// FoodAllocation links one camper to one food batch.
type FoodAllocation struct {
	ID          uint      `json:"id"`
	FoodBatchID uint      `json:"food_batch_id"`
	CamperID    uint      `json:"camper_id"`
	AllocatedBy uint      `json:"allocated_by"`
	AllocatedAt time.Time `json:"allocated_at"`
	Active      bool      `json:"active"`
}

// FoodAllocationResult is one camper's outcome within a bulk food
// allocation. Bulk food allocation is deliberately partial-success: one
// camper's failure must not block the rest of the queue.
type FoodAllocationResult struct {
	CamperID   uint
	Allocation *FoodAllocation
	Err        error
}

// RoomAllocationDetail is a ledger row joined with the camper it covers,
// the shape the allocation table views render.
type RoomAllocationDetail struct {
	RoomAllocation
	Camper Camper `json:"camper"`
}
