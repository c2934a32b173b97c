package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/campbase/campbase-api/internal/api/middleware"
	"github.com/campbase/campbase-api/internal/domain"
	"github.com/campbase/campbase-api/internal/service"
)

type stubFoodService struct {
	err error
}

func (s *stubFoodService) CreateBatch(_ context.Context, batch domain.FoodBatch) (domain.FoodBatch, error) {
	return batch, s.err
}

func (s *stubFoodService) ListAvailableBatches(_ context.Context, _ uint, _ time.Time, _ domain.MealCategory) ([]domain.FoodBatch, error) {
	return nil, s.err
}

func (s *stubFoodService) AllocateFood(_ context.Context, _, _, _ uint) (domain.FoodAllocation, error) {
	return domain.FoodAllocation{}, s.err
}

func (s *stubFoodService) BulkAllocateFood(_ context.Context, _ uint, _ []uint, _ string, _ uint) ([]domain.FoodAllocationResult, error) {
	return nil, s.err
}

func performAllocateFood(t *testing.T, svc FoodService, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.POST("/food-batches/:batchID/allocations", func(ctx *gin.Context) {
		ctx.Set(middleware.CtxKeyUserID, uint(99))
		NewFoodHandler(svc).HandleAllocateFood(ctx)
	})

	req := httptest.NewRequest(http.MethodPost, "/food-batches/7/allocations", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	return recorder
}

func TestFoodHandler_AllocateFood_UnknownCamper(t *testing.T) {
	svc := &stubFoodService{err: fmt.Errorf("s.foodRepo.Allocate -> %w", service.ErrCamperNotFound)}

	recorder := performAllocateFood(t, svc, `{"camper_id":42}`)

	assert.Equal(t, http.StatusNotFound, recorder.Code)

	// The message must name the camper, not the batch path parameter.
	var payload map[string]string
	assert.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &payload))
	assert.Equal(t, "camper with camperID (42) not found", payload["message"])
}

func TestFoodHandler_AllocateFood_UnknownBatch(t *testing.T) {
	svc := &stubFoodService{err: fmt.Errorf("s.foodRepo.FindByID -> %w", service.ErrFoodBatchNotFound)}

	recorder := performAllocateFood(t, svc, `{"camper_id":42}`)

	assert.Equal(t, http.StatusNotFound, recorder.Code)

	var payload map[string]string
	assert.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &payload))
	assert.Equal(t, "food batch with batchID (7) not found", payload["message"])
}
