package dao

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrCamperNotFound   = errors.New("camper not found")
	ErrCamperCodeExists = errors.New("camper code already exists in this camp")
)

type Camper struct {
	ID uint `gorm:"primaryKey"`

	CampID     uint   `gorm:"not null;index;uniqueIndex:uni_campers_camp_code"`
	FullName   string `gorm:"not null"`
	Gender     string `gorm:"not null"`
	Category   string
	CamperCode string `gorm:"not null;uniqueIndex:uni_campers_camp_code"`

	Paid      bool `gorm:"default:false"`
	CheckedIn bool `gorm:"default:false"`
	Cancelled bool `gorm:"default:false"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type CamperDAO struct {
	db *gorm.DB
}

func NewCamperDAO(db *gorm.DB) *CamperDAO {
	return &CamperDAO{
		db: db,
	}
}

func (d *CamperDAO) Insert(ctx context.Context, camper Camper) (Camper, error) {
	result := d.db.WithContext(ctx).Create(&camper)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) &&
			err.Code == pgerrcode.UniqueViolation &&
			strings.Contains(err.Message, `"uni_campers_camp_code"`) {
			return Camper{}, ErrCamperCodeExists
		}

		return Camper{}, result.Error
	}

	return camper, nil
}

func (d *CamperDAO) FindByID(ctx context.Context, id uint) (Camper, error) {
	var camper Camper

	result := d.db.WithContext(ctx).First(&camper, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Camper{}, ErrCamperNotFound
		}

		return Camper{}, result.Error
	}

	return camper, nil
}

// FindByCode resolves a human-facing camper code within one camp's roster.
// Cancelled registrations never resolve.
func (d *CamperDAO) FindByCode(ctx context.Context, campID uint, code string) (Camper, error) {
	var camper Camper

	result := d.db.WithContext(ctx).
		Where("camp_id = ? AND camper_code = ? AND cancelled = ?", campID, code, false).
		First(&camper)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Camper{}, ErrCamperNotFound
		}

		return Camper{}, result.Error
	}

	return camper, nil
}

func (d *CamperDAO) FindByIDs(ctx context.Context, ids []uint) ([]Camper, error) {
	var campers []Camper

	result := d.db.WithContext(ctx).Where("id IN ?", ids).Find(&campers)
	if result.Error != nil {
		return nil, result.Error
	}

	return campers, nil
}

func (d *CamperDAO) SetCheckedIn(ctx context.Context, id uint, checkedIn bool) (Camper, error) {
	camper, err := d.FindByID(ctx, id)
	if err != nil {
		return Camper{}, err
	}

	result := d.db.WithContext(ctx).Model(&camper).Update("checked_in", checkedIn)
	if result.Error != nil {
		return Camper{}, result.Error
	}

	return camper, nil
}
