package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/campbase/campbase-api/internal/domain"
	"github.com/campbase/campbase-api/internal/repository"
)

var (
	ErrCamperCodeExists  = repository.ErrCamperCodeExists
	ErrInvalidCamperData = errors.New("invalid camper data")
)

type CamperRepository interface {
	Create(ctx context.Context, camper domain.Camper) (domain.Camper, error)
	FindByID(ctx context.Context, id uint) (domain.Camper, error)
	FindByCode(ctx context.Context, campID uint, code string) (domain.Camper, error)
	SetCheckedIn(ctx context.Context, id uint, checkedIn bool) (domain.Camper, error)
}

type CamperService struct {
	repo CamperRepository
}

func NewCamperService(repo CamperRepository) *CamperService {
	return &CamperService{
		repo: repo,
	}
}

// Register creates a camper and assigns the short human-facing camper code
// printed on badges and encoded into QR payloads.
func (s *CamperService) Register(ctx context.Context, camper domain.Camper) (domain.Camper, error) {
	if camper.FullName == "" || !camper.Gender.IsValid() {
		return domain.Camper{}, ErrInvalidCamperData
	}

	if camper.CamperCode == "" {
		camper.CamperCode = newCamperCode()
	}

	created, err := s.repo.Create(ctx, camper)
	if err != nil {
		return domain.Camper{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *CamperService) FindByCode(ctx context.Context, campID uint, code string) (domain.Camper, error) {
	camper, err := s.repo.FindByCode(ctx, campID, code)
	if err != nil {
		return domain.Camper{}, fmt.Errorf("s.repo.FindByCode -> %w", err)
	}

	return camper, nil
}

func (s *CamperService) SetCheckedIn(ctx context.Context, camperID uint, checkedIn bool) (domain.Camper, error) {
	camper, err := s.repo.SetCheckedIn(ctx, camperID, checkedIn)
	if err != nil {
		return domain.Camper{}, fmt.Errorf("s.repo.SetCheckedIn -> %w", err)
	}

	return camper, nil
}

func newCamperCode() string {
	return strings.ToUpper(strings.Split(uuid.New().String(), "-")[0])
}
