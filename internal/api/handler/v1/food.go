package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/campbase/campbase-api/internal/api/handler/v1/request"
	"github.com/campbase/campbase-api/internal/api/handler/v1/response"
	"github.com/campbase/campbase-api/internal/domain"
	"github.com/campbase/campbase-api/internal/service"
)

const dateLayout = "2006-01-02"

type FoodService interface {
	CreateBatch(ctx context.Context, batch domain.FoodBatch) (domain.FoodBatch, error)
	ListAvailableBatches(ctx context.Context, campID uint, date time.Time, category domain.MealCategory) ([]domain.FoodBatch, error)
	AllocateFood(ctx context.Context, batchID, camperID, allocatedBy uint) (domain.FoodAllocation, error)
	BulkAllocateFood(ctx context.Context, batchID uint, camperIDs []uint, categoryFilter string, allocatedBy uint) ([]domain.FoodAllocationResult, error)
}

type FoodHandler struct {
	svc FoodService
}

func NewFoodHandler(svc FoodService) *FoodHandler {
	return &FoodHandler{
		svc: svc,
	}
}

// HandleListAvailableBatches godoc
// @Summary      List available food batches
// @Description  Batches for the camp, date and meal category that still have servings left
// @Tags         food
// @Produce      json
// @Param        campID    path      int     true  "camp ID"
// @Param        date      query     string  true  "date (YYYY-MM-DD)"
// @Param        category  query     string  true  "meal category (breakfast|lunch|supper|snacks)"
// @Success      200       {array}   domain.FoodBatch
// @Failure      400       {object}  response.Err
// @Failure      500       {object}  response.Err
// @Router       /camps/{campID}/food-batches [get]
// @Security BearerAuth
func (h *FoodHandler) HandleListAvailableBatches(ctx *gin.Context) {
	campID, err := parseUintParam(ctx, "campID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	date, err := time.Parse(dateLayout, ctx.Query("date"))
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid date (%v)", ctx.Query("date"))))
		return
	}
	category := domain.MealCategory(ctx.Query("category"))

	batches, err := h.svc.ListAvailableBatches(ctx.Request.Context(), campID, date, category)
	if err != nil {
		if errors.Is(err, service.ErrInvalidMealCategory) {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}

		err = fmt.Errorf("HandleListAvailableBatches -> h.svc.ListAvailableBatches -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, batches)
}

// HandleCreateBatch godoc
// @Summary      Create a food batch
// @Tags         food
// @Accept       json
// @Produce      json
// @Param        campID  path      int                             true  "camp ID"
// @Param        input   body      request.CreateFoodBatchRequest  true  "batch details"
// @Success      201     {object}  domain.FoodBatch
// @Failure      400     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /camps/{campID}/food-batches [post]
// @Security BearerAuth
func (h *FoodHandler) HandleCreateBatch(ctx *gin.Context) {
	campID, err := parseUintParam(ctx, "campID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	var input request.CreateFoodBatchRequest
	if err = ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err = input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	date, err := time.Parse(dateLayout, input.Date)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	batch, err := h.svc.CreateBatch(ctx.Request.Context(), domain.FoodBatch{
		CampID:   campID,
		Name:     input.Name,
		Vendor:   input.Vendor,
		Date:     date,
		Category: domain.MealCategory(input.Category),
		Quantity: input.Quantity,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidMealCategory) || errors.Is(err, service.ErrInvalidQuantity) {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}

		err = fmt.Errorf("HandleCreateBatch -> h.svc.CreateBatch -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, batch)
}

// HandleAllocateFood godoc
// @Summary      Allocate one serving to a camper
// @Tags         food
// @Accept       json
// @Produce      json
// @Param        batchID  path      int                          true  "food batch ID"
// @Param        input    body      request.AllocateFoodRequest  true  "camper"
// @Success      201      {object}  domain.FoodAllocation
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /food-batches/{batchID}/allocations [post]
// @Security BearerAuth
func (h *FoodHandler) HandleAllocateFood(ctx *gin.Context) {
	allocatedBy, respErr := allocatorFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	batchID, err := parseUintParam(ctx, "batchID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	var input request.AllocateFoodRequest
	if err = ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err = input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	allocation, err := h.svc.AllocateFood(ctx.Request.Context(), batchID, input.CamperID, allocatedBy)
	if err != nil {
		if errors.Is(err, service.ErrCamperNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("camper", "camperID", input.CamperID))
			return
		}

		renderFoodAllocationErr(ctx, batchID, err)
		return
	}

	ctx.JSON(http.StatusCreated, allocation)
}

// HandleBulkAllocateFood godoc
// @Summary      Allocate servings to several campers
// @Description  Each camper succeeds or fails independently; the response carries a per-camper result list. An optional category restricts serving to campers registered under it.
// @Tags         food
// @Accept       json
// @Produce      json
// @Param        batchID  path      int                              true  "food batch ID"
// @Param        input    body      request.BulkAllocateFoodRequest  true  "campers"
// @Success      200      {array}   response.BulkFoodAllocationResult
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /food-batches/{batchID}/allocations/bulk [post]
// @Security BearerAuth
func (h *FoodHandler) HandleBulkAllocateFood(ctx *gin.Context) {
	allocatedBy, respErr := allocatorFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	batchID, err := parseUintParam(ctx, "batchID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	var input request.BulkAllocateFoodRequest
	if err = ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err = input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	results, err := h.svc.BulkAllocateFood(ctx.Request.Context(), batchID, input.CamperIDs, input.Category, allocatedBy)
	if err != nil {
		renderFoodAllocationErr(ctx, batchID, err)
		return
	}

	ctx.JSON(http.StatusOK, response.NewBulkFoodAllocationResults(results))
}

func renderFoodAllocationErr(ctx *gin.Context, batchID uint, err error) {
	switch {
	case errors.Is(err, service.ErrFoodBatchNotFound):
		response.RenderErr(ctx, response.ErrNotFound("food batch", "batchID", batchID))
	case errors.Is(err, service.ErrCamperNotFound):
		response.RenderErr(ctx, response.ErrNotFoundErr(service.ErrCamperNotFound))
	case errors.Is(err, service.ErrCapacityExceeded),
		errors.Is(err, service.ErrDuplicateAllocation):
		response.RenderErr(ctx, response.ErrConflict(err))
	case errors.Is(err, service.ErrEmptySelection):
		response.RenderErr(ctx, response.ErrBadRequest(err))
	default:
		err = fmt.Errorf("FoodHandler -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
	}
}
