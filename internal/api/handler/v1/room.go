package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campbase/campbase-api/internal/api/handler/v1/request"
	"github.com/campbase/campbase-api/internal/api/handler/v1/response"
	"github.com/campbase/campbase-api/internal/domain"
	"github.com/campbase/campbase-api/internal/service"
)

type AllocationService interface {
	CreateRoom(ctx context.Context, room domain.Room) (domain.Room, error)
	ListAvailableRooms(ctx context.Context, campID uint, gender domain.Gender) ([]domain.Room, error)
	SetRoomDamaged(ctx context.Context, roomID uint, damaged bool) (domain.Room, error)
	AllocateRoom(ctx context.Context, roomID uint, camperIDs []uint, allocatedBy uint, notes string) ([]domain.RoomAllocation, error)
	DeallocateRoom(ctx context.Context, allocationID uint) (domain.RoomAllocation, error)
	UpdateRoomAllocation(ctx context.Context, allocationID uint, active *bool, notes *string) (domain.RoomAllocation, error)
	ListRoomAllocations(ctx context.Context, roomID uint, activeOnly bool) ([]domain.RoomAllocationDetail, error)
}

type RoomHandler struct {
	svc AllocationService
}

func NewRoomHandler(svc AllocationService) *RoomHandler {
	return &RoomHandler{
		svc: svc,
	}
}

// HandleListAvailableRooms godoc
// @Summary      List available rooms
// @Description  Returns undamaged rooms with free beds, optionally filtered by gender
// @Tags         rooms
// @Produce      json
// @Param        campID  path     int     true   "camp ID"
// @Param        gender  query    string  false  "gender filter (male|female)"
// @Success      200     {array}  domain.Room
// @Failure      400     {object} response.Err
// @Failure      500     {object} response.Err
// @Router       /camps/{campID}/rooms [get]
// @Security BearerAuth
func (h *RoomHandler) HandleListAvailableRooms(ctx *gin.Context) {
	campID, err := parseUintParam(ctx, "campID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	gender := domain.Gender(ctx.Query("gender"))

	rooms, err := h.svc.ListAvailableRooms(ctx.Request.Context(), campID, gender)
	if err != nil {
		if errors.Is(err, service.ErrInvalidGender) {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}

		err = fmt.Errorf("HandleListAvailableRooms -> h.svc.ListAvailableRooms -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, rooms)
}

// HandleCreateRoom godoc
// @Summary      Create a room
// @Tags         rooms
// @Accept       json
// @Produce      json
// @Param        campID  path      int                        true  "camp ID"
// @Param        input   body      request.CreateRoomRequest  true  "room details"
// @Success      201     {object}  domain.Room
// @Failure      400     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /camps/{campID}/rooms [post]
// @Security BearerAuth
func (h *RoomHandler) HandleCreateRoom(ctx *gin.Context) {
	campID, err := parseUintParam(ctx, "campID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	var input request.CreateRoomRequest
	if err = ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err = input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	room, err := h.svc.CreateRoom(ctx.Request.Context(), domain.Room{
		CampID:     campID,
		Hostel:     input.Hostel,
		Block:      input.Block,
		RoomNumber: input.RoomNumber,
		Capacity:   input.Capacity,
		ExtraBeds:  input.ExtraBeds,
		Gender:     domain.RoomGender(input.Gender),
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidGender) || errors.Is(err, service.ErrInvalidCapacity) {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}

		err = fmt.Errorf("HandleCreateRoom -> h.svc.CreateRoom -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, room)
}

// HandleSetRoomDamaged godoc
// @Summary      Toggle a room's damaged flag
// @Description  A damaged room is excluded from new allocation regardless of remaining capacity
// @Tags         rooms
// @Accept       json
// @Produce      json
// @Param        roomID  path      int                            true  "room ID"
// @Param        input   body      request.SetRoomDamagedRequest  true  "damaged flag"
// @Success      200     {object}  domain.Room
// @Failure      400     {object}  response.Err
// @Failure      404     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /rooms/{roomID}/damaged [patch]
// @Security BearerAuth
func (h *RoomHandler) HandleSetRoomDamaged(ctx *gin.Context) {
	roomID, err := parseUintParam(ctx, "roomID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	var input request.SetRoomDamagedRequest
	if err = ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err = input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	room, err := h.svc.SetRoomDamaged(ctx.Request.Context(), roomID, *input.Damaged)
	if err != nil {
		if errors.Is(err, service.ErrRoomNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("room", "roomID", roomID))
			return
		}

		err = fmt.Errorf("HandleSetRoomDamaged -> h.svc.SetRoomDamaged -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, room)
}

// HandleAllocateRoom godoc
// @Summary      Allocate campers to a room
// @Description  Places the whole selection as one batch; either every camper gets a bed or none does
// @Tags         rooms
// @Accept       json
// @Produce      json
// @Param        roomID  path      int                          true  "room ID"
// @Param        input   body      request.AllocateRoomRequest  true  "campers to place"
// @Success      201     {array}   domain.RoomAllocation
// @Failure      400     {object}  response.Err
// @Failure      404     {object}  response.Err
// @Failure      409     {object}  response.Err
// @Failure      422     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /rooms/{roomID}/allocations [post]
// @Security BearerAuth
func (h *RoomHandler) HandleAllocateRoom(ctx *gin.Context) {
	allocatedBy, respErr := allocatorFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	roomID, err := parseUintParam(ctx, "roomID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	var input request.AllocateRoomRequest
	if err = ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err = input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	allocations, err := h.svc.AllocateRoom(ctx.Request.Context(), roomID, input.CamperIDs, allocatedBy, input.Notes)
	if err != nil {
		h.renderAllocationErr(ctx, roomID, err)
		return
	}

	ctx.JSON(http.StatusCreated, allocations)
}

// HandleListRoomAllocations godoc
// @Summary      List a room's allocations
// @Tags         rooms
// @Produce      json
// @Param        roomID  path      int     true   "room ID"
// @Param        active  query     bool    false  "active rows only"
// @Success      200     {array}   domain.RoomAllocationDetail
// @Failure      404     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /rooms/{roomID}/allocations [get]
// @Security BearerAuth
func (h *RoomHandler) HandleListRoomAllocations(ctx *gin.Context) {
	roomID, err := parseUintParam(ctx, "roomID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	activeOnly := ctx.Query("active") == "true"

	allocations, err := h.svc.ListRoomAllocations(ctx.Request.Context(), roomID, activeOnly)
	if err != nil {
		if errors.Is(err, service.ErrRoomNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("room", "roomID", roomID))
			return
		}

		err = fmt.Errorf("HandleListRoomAllocations -> h.svc.ListRoomAllocations -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, allocations)
}

// HandleDeallocateRoom godoc
// @Summary      Deallocate a room allocation
// @Description  Soft delete; the row is kept for audit. Deallocating an inactive row is a no-op.
// @Tags         rooms
// @Produce      json
// @Param        allocationID  path      int  true  "allocation ID"
// @Success      200           {object}  domain.RoomAllocation
// @Failure      404           {object}  response.Err
// @Failure      500           {object}  response.Err
// @Router       /room-allocations/{allocationID} [delete]
// @Security BearerAuth
func (h *RoomHandler) HandleDeallocateRoom(ctx *gin.Context) {
	allocationID, err := parseUintParam(ctx, "allocationID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	allocation, err := h.svc.DeallocateRoom(ctx.Request.Context(), allocationID)
	if err != nil {
		if errors.Is(err, service.ErrRoomAllocationNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("room allocation", "allocationID", allocationID))
			return
		}

		err = fmt.Errorf("HandleDeallocateRoom -> h.svc.DeallocateRoom -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, allocation)
}

// HandleUpdateRoomAllocation godoc
// @Summary      Update a room allocation
// @Description  Edits notes and/or toggles the active flag. Reactivation re-validates capacity and gender.
// @Tags         rooms
// @Accept       json
// @Produce      json
// @Param        allocationID  path      int                                  true  "allocation ID"
// @Param        input         body      request.UpdateRoomAllocationRequest  true  "changes"
// @Success      200           {object}  domain.RoomAllocation
// @Failure      400           {object}  response.Err
// @Failure      404           {object}  response.Err
// @Failure      409           {object}  response.Err
// @Failure      422           {object}  response.Err
// @Failure      500           {object}  response.Err
// @Router       /room-allocations/{allocationID} [patch]
// @Security BearerAuth
func (h *RoomHandler) HandleUpdateRoomAllocation(ctx *gin.Context) {
	allocationID, err := parseUintParam(ctx, "allocationID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	var input request.UpdateRoomAllocationRequest
	if err = ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err = input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	allocation, err := h.svc.UpdateRoomAllocation(ctx.Request.Context(), allocationID, input.Active, input.Notes)
	if err != nil {
		if errors.Is(err, service.ErrRoomAllocationNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("room allocation", "allocationID", allocationID))
			return
		}

		h.renderAllocationErr(ctx, allocationID, err)
		return
	}

	ctx.JSON(http.StatusOK, allocation)
}

func (h *RoomHandler) renderAllocationErr(ctx *gin.Context, roomID uint, err error) {
	switch {
	case errors.Is(err, service.ErrRoomNotFound):
		response.RenderErr(ctx, response.ErrNotFound("room", "roomID", roomID))
	case errors.Is(err, service.ErrCamperNotFound):
		response.RenderErr(ctx, response.ErrNotFoundErr(service.ErrCamperNotFound))
	case errors.Is(err, service.ErrCapacityExceeded),
		errors.Is(err, service.ErrDuplicateAllocation):
		response.RenderErr(ctx, response.ErrConflict(err))
	case errors.Is(err, service.ErrIneligibleGender),
		errors.Is(err, service.ErrRoomDamaged):
		response.RenderErr(ctx, response.ErrUnprocessable(err))
	case errors.Is(err, service.ErrEmptySelection),
		errors.Is(err, service.ErrRepeatedCamper):
		response.RenderErr(ctx, response.ErrBadRequest(err))
	default:
		err = fmt.Errorf("RoomHandler -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
	}
}
