package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/campbase/campbase-api/internal/domain"
	"github.com/campbase/campbase-api/internal/scan"
)

var (
	ErrMalformedScanPayload = scan.ErrMalformedPayload
	ErrScanSessionNotFound  = scan.ErrSessionNotFound
	ErrScanSessionSuspended = scan.ErrSessionSuspended
)

type FoodAllocator interface {
	AllocateFood(ctx context.Context, batchID, camperID, allocatedBy uint) (domain.FoodAllocation, error)
}

type ScanCamperRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Camper, error)
	FindByCode(ctx context.Context, campID uint, code string) (domain.Camper, error)
}

// ScanService turns untrusted scan events into at most one allocation call
// each: decode, validate against the roster, then dispatch to the engine.
type ScanService struct {
	sessions *scan.SessionManager
	food     FoodAllocator
	campers  ScanCamperRepository
}

func NewScanService(sessions *scan.SessionManager, food FoodAllocator, campers ScanCamperRepository) *ScanService {
	return &ScanService{
		sessions: sessions,
		food:     food,
		campers:  campers,
	}
}

func (s *ScanService) CreateSession() scan.Session {
	return s.sessions.Create()
}

func (s *ScanService) ResumeSession(sessionID string) error {
	return s.sessions.Resume(sessionID)
}

func (s *ScanService) GetSession(sessionID string) (scan.Session, error) {
	return s.sessions.Get(sessionID)
}

// Ingest handles one camera poll tick. A malformed payload leaves the
// session ready so scanning continues. A successful decode suspends the
// session before anything else happens, so the code held in front of the
// camera cannot allocate twice; the suspension sticks only when the
// allocation commits. A rejected allocation (unknown camper, exhausted
// batch, duplicate meal) is surfaced as a retryable error and the
// session goes back to ready rather than terminating.
func (s *ScanService) Ingest(ctx context.Context, sessionID string, batchID uint, rawPayload string, allocatedBy uint) (domain.FoodAllocation, error) {
	if err := s.sessions.Begin(sessionID); err != nil {
		return domain.FoodAllocation{}, err
	}

	payload, err := scan.ParseIdentification(rawPayload)
	if err != nil {
		return domain.FoodAllocation{}, err
	}

	if err = s.sessions.Suspend(sessionID); err != nil {
		return domain.FoodAllocation{}, err
	}

	camper, err := s.campers.FindByID(ctx, payload.CamperID)
	if err != nil {
		if resumeErr := s.sessions.Resume(sessionID); resumeErr != nil {
			return domain.FoodAllocation{}, resumeErr
		}
		if errors.Is(err, ErrCamperNotFound) {
			return domain.FoodAllocation{}, ErrCamperNotFound
		}
		return domain.FoodAllocation{}, fmt.Errorf("s.campers.FindByID -> %w", err)
	}
	if camper.CamperCode != payload.CamperCode {
		// The id resolves but the code doesn't match the roster; treat the
		// payload as forged rather than allocating on the id alone.
		if resumeErr := s.sessions.Resume(sessionID); resumeErr != nil {
			return domain.FoodAllocation{}, resumeErr
		}
		return domain.FoodAllocation{}, ErrMalformedScanPayload
	}

	allocation, err := s.food.AllocateFood(ctx, batchID, camper.ID, allocatedBy)
	if err != nil {
		if resumeErr := s.sessions.Resume(sessionID); resumeErr != nil {
			return domain.FoodAllocation{}, resumeErr
		}
		return domain.FoodAllocation{}, err
	}

	zap.L().Info("scan allocation",
		zap.String("session_id", sessionID),
		zap.Uint("batch_id", batchID),
		zap.Uint("camper_id", camper.ID),
	)

	return allocation, nil
}

// ManualAllocate is the fallback path for when scanning is unavailable:
// the operator types the camper code, which must resolve against the
// camp's roster before the engine is called.
func (s *ScanService) ManualAllocate(ctx context.Context, campID uint, camperCode string, batchID uint, allocatedBy uint) (domain.FoodAllocation, error) {
	camper, err := s.campers.FindByCode(ctx, campID, camperCode)
	if err != nil {
		if errors.Is(err, ErrCamperNotFound) {
			return domain.FoodAllocation{}, ErrCamperNotFound
		}
		return domain.FoodAllocation{}, fmt.Errorf("s.campers.FindByCode -> %w", err)
	}

	return s.food.AllocateFood(ctx, batchID, camper.ID, allocatedBy)
}
