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

type CamperService interface {
	Register(ctx context.Context, camper domain.Camper) (domain.Camper, error)
	FindByCode(ctx context.Context, campID uint, camperCode string) (domain.Camper, error)
	SetCheckedIn(ctx context.Context, camperID uint, checkedIn bool) (domain.Camper, error)
}

type CamperHandler struct {
	svc CamperService
}

func NewCamperHandler(svc CamperService) *CamperHandler {
	return &CamperHandler{
		svc: svc,
	}
}

// HandleRegisterCamper godoc
// @Summary      Register a camper
// @Description  Adds a camper to the camp roster and assigns a unique camper code
// @Tags         campers
// @Accept       json
// @Produce      json
// @Param        campID  path      int                            true  "camp ID"
// @Param        input   body      request.RegisterCamperRequest  true  "camper details"
// @Success      201     {object}  domain.Camper
// @Failure      400     {object}  response.Err
// @Failure      409     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /camps/{campID}/campers [post]
// @Security BearerAuth
func (h *CamperHandler) HandleRegisterCamper(ctx *gin.Context) {
	campID, err := parseUintParam(ctx, "campID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	var input request.RegisterCamperRequest
	if err = ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err = input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	camper, err := h.svc.Register(ctx.Request.Context(), domain.Camper{
		CampID:   campID,
		FullName: input.FullName,
		Gender:   domain.Gender(input.Gender),
		Category: input.Category,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCamperData):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		case errors.Is(err, service.ErrCamperCodeExists):
			response.RenderErr(ctx, response.ErrConflict(err))
		default:
			err = fmt.Errorf("HandleRegisterCamper -> h.svc.Register -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusCreated, camper)
}

// HandleGetCamperByCode godoc
// @Summary      Look up a camper by code
// @Tags         campers
// @Produce      json
// @Param        campID      path      int     true  "camp ID"
// @Param        camperCode  path      string  true  "camper code"
// @Success      200         {object}  domain.Camper
// @Failure      400         {object}  response.Err
// @Failure      404         {object}  response.Err
// @Failure      500         {object}  response.Err
// @Router       /camps/{campID}/campers/{camperCode} [get]
// @Security BearerAuth
func (h *CamperHandler) HandleGetCamperByCode(ctx *gin.Context) {
	campID, err := parseUintParam(ctx, "campID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	camperCode := ctx.Param("camperCode")

	camper, err := h.svc.FindByCode(ctx.Request.Context(), campID, camperCode)
	if err != nil {
		if errors.Is(err, service.ErrCamperNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("camper", "camperCode", camperCode))
			return
		}

		err = fmt.Errorf("HandleGetCamperByCode -> h.svc.FindByCode -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, camper)
}

// HandleCheckIn godoc
// @Summary      Update a camper's check-in status
// @Tags         campers
// @Accept       json
// @Produce      json
// @Param        camperID  path      int                     true  "camper ID"
// @Param        input     body      request.CheckInRequest  true  "check-in flag"
// @Success      200       {object}  domain.Camper
// @Failure      400       {object}  response.Err
// @Failure      404       {object}  response.Err
// @Failure      500       {object}  response.Err
// @Router       /campers/{camperID}/check-in [patch]
// @Security BearerAuth
func (h *CamperHandler) HandleCheckIn(ctx *gin.Context) {
	camperID, err := parseUintParam(ctx, "camperID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	var input request.CheckInRequest
	if err = ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err = input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	camper, err := h.svc.SetCheckedIn(ctx.Request.Context(), camperID, *input.CheckedIn)
	if err != nil {
		if errors.Is(err, service.ErrCamperNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("camper", "camperID", camperID))
			return
		}

		err = fmt.Errorf("HandleCheckIn -> h.svc.SetCheckedIn -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, camper)
}
