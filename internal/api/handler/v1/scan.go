package v1

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campbase/campbase-api/internal/api/handler/v1/request"
	"github.com/campbase/campbase-api/internal/api/handler/v1/response"
	"github.com/campbase/campbase-api/internal/domain"
	"github.com/campbase/campbase-api/internal/scan"
	"github.com/campbase/campbase-api/internal/service"
)

type ScanService interface {
	CreateSession() scan.Session
	ResumeSession(sessionID string) error
	GetSession(sessionID string) (scan.Session, error)
	Ingest(ctx context.Context, sessionID string, batchID uint, rawPayload string, allocatedBy uint) (domain.FoodAllocation, error)
	ManualAllocate(ctx context.Context, campID uint, camperCode string, batchID uint, allocatedBy uint) (domain.FoodAllocation, error)
}

type ScanHandler struct {
	svc ScanService
}

func NewScanHandler(svc ScanService) *ScanHandler {
	return &ScanHandler{
		svc: svc,
	}
}

// HandleCreateSession godoc
// @Summary      Open a scan session
// @Tags         scan
// @Produce      json
// @Success      201 {object} scan.Session
// @Router       /scan-sessions [post]
// @Security BearerAuth
func (h *ScanHandler) HandleCreateSession(ctx *gin.Context) {
	ctx.JSON(http.StatusCreated, h.svc.CreateSession())
}

// HandleResumeSession godoc
// @Summary      Resume a suspended scan session
// @Tags         scan
// @Produce      json
// @Param        sessionID  path      string  true  "session ID"
// @Success      200        {object}  scan.Session
// @Failure      404        {object}  response.Err
// @Router       /scan-sessions/{sessionID}/resume [post]
// @Security BearerAuth
func (h *ScanHandler) HandleResumeSession(ctx *gin.Context) {
	sessionID := ctx.Param("sessionID")

	if err := h.svc.ResumeSession(sessionID); err != nil {
		response.RenderErr(ctx, response.ErrNotFound("scan session", "sessionID", sessionID))
		return
	}

	session, err := h.svc.GetSession(sessionID)
	if err != nil {
		response.RenderErr(ctx, response.ErrNotFound("scan session", "sessionID", sessionID))
		return
	}

	ctx.JSON(http.StatusOK, session)
}

// HandleIngestScan godoc
// @Summary      Ingest a QR scan for food allocation
// @Description  Decodes the untrusted payload, suspends the session on a successful decode and allocates at most once per physical scan
// @Tags         scan
// @Accept       json
// @Produce      json
// @Param        batchID  path      int                  true  "food batch ID"
// @Param        input    body      request.ScanRequest  true  "scan payload"
// @Success      201      {object}  domain.FoodAllocation
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /food-batches/{batchID}/scan [post]
// @Security BearerAuth
func (h *ScanHandler) HandleIngestScan(ctx *gin.Context) {
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

	var input request.ScanRequest
	if err = ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err = input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	allocation, err := h.svc.Ingest(ctx.Request.Context(), input.SessionID, batchID, input.Payload, allocatedBy)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMalformedScanPayload):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		case errors.Is(err, service.ErrScanSessionNotFound):
			response.RenderErr(ctx, response.ErrNotFound("scan session", "sessionID", input.SessionID))
		case errors.Is(err, service.ErrScanSessionSuspended):
			response.RenderErr(ctx, response.ErrConflict(err))
		default:
			renderFoodAllocationErr(ctx, batchID, err)
		}
		return
	}

	ctx.JSON(http.StatusCreated, allocation)
}

// HandleManualAllocate godoc
// @Summary      Allocate food by manually-typed camper code
// @Description  Fallback for when scanning is unavailable; the code must resolve against the camp roster
// @Tags         scan
// @Accept       json
// @Produce      json
// @Param        batchID  path      int                                  true  "food batch ID"
// @Param        input    body      request.ManualFoodAllocationRequest  true  "camp and camper code"
// @Success      201      {object}  domain.FoodAllocation
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /food-batches/{batchID}/scan/manual [post]
// @Security BearerAuth
func (h *ScanHandler) HandleManualAllocate(ctx *gin.Context) {
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

	var input request.ManualFoodAllocationRequest
	if err = ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err = input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	allocation, err := h.svc.ManualAllocate(ctx.Request.Context(), input.CampID, input.CamperCode, batchID, allocatedBy)
	if err != nil {
		if errors.Is(err, service.ErrCamperNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("camper", "camperCode", input.CamperCode))
			return
		}

		renderFoodAllocationErr(ctx, batchID, err)
		return
	}

	ctx.JSON(http.StatusCreated, allocation)
}
