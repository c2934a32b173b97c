package repository

import (
	"context"
	"fmt"

	"github.com/campbase/campbase-api/internal/domain"
	"github.com/campbase/campbase-api/internal/repository/dao"
)

var (
	ErrCamperNotFound   = dao.ErrCamperNotFound
	ErrCamperCodeExists = dao.ErrCamperCodeExists
)

type CamperDAO interface {
	Insert(ctx context.Context, camper dao.Camper) (dao.Camper, error)
	FindByID(ctx context.Context, id uint) (dao.Camper, error)
	FindByCode(ctx context.Context, campID uint, code string) (dao.Camper, error)
	FindByIDs(ctx context.Context, ids []uint) ([]dao.Camper, error)
	SetCheckedIn(ctx context.Context, id uint, checkedIn bool) (dao.Camper, error)
}

type CamperRepository struct {
	dao CamperDAO
}

func NewCamperRepository(dao CamperDAO) *CamperRepository {
	return &CamperRepository{
		dao: dao,
	}
}

func (r *CamperRepository) Create(ctx context.Context, camper domain.Camper) (domain.Camper, error) {
	created, err := r.dao.Insert(ctx, r.domainToDao(camper))
	if err != nil {
		return domain.Camper{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *CamperRepository) FindByID(ctx context.Context, id uint) (domain.Camper, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Camper{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *CamperRepository) FindByCode(ctx context.Context, campID uint, code string) (domain.Camper, error) {
	found, err := r.dao.FindByCode(ctx, campID, code)
	if err != nil {
		return domain.Camper{}, fmt.Errorf("r.dao.FindByCode -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *CamperRepository) FindByIDs(ctx context.Context, ids []uint) ([]domain.Camper, error) {
	found, err := r.dao.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByIDs -> %w", err)
	}

	campers := make([]domain.Camper, len(found))
	for i, c := range found {
		campers[i] = r.daoToDomain(c)
	}

	return campers, nil
}

func (r *CamperRepository) SetCheckedIn(ctx context.Context, id uint, checkedIn bool) (domain.Camper, error) {
	updated, err := r.dao.SetCheckedIn(ctx, id, checkedIn)
	if err != nil {
		return domain.Camper{}, fmt.Errorf("r.dao.SetCheckedIn -> %w", err)
	}

	updated.CheckedIn = checkedIn

	return r.daoToDomain(updated), nil
}

func (r *CamperRepository) domainToDao(c domain.Camper) dao.Camper {
	return dao.Camper{
		ID:         c.ID,
		CampID:     c.CampID,
		FullName:   c.FullName,
		Gender:     string(c.Gender),
		Category:   c.Category,
		CamperCode: c.CamperCode,
		Paid:       c.Paid,
		CheckedIn:  c.CheckedIn,
		Cancelled:  c.Cancelled,
	}
}

func (r *CamperRepository) daoToDomain(c dao.Camper) domain.Camper {
	return domain.Camper{
		ID:         c.ID,
		CampID:     c.CampID,
		FullName:   c.FullName,
		Gender:     domain.Gender(c.Gender),
		Category:   c.Category,
		CamperCode: c.CamperCode,
		Paid:       c.Paid,
		CheckedIn:  c.CheckedIn,
		Cancelled:  c.Cancelled,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}
