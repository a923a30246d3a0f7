package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/seovista/crm-backend/internal/logging"
	"github.com/seovista/crm-backend/internal/models"
)

type PackService struct {
	db  *gorm.DB
	log *logrus.Entry
}

func NewPackService(db *gorm.DB) *PackService {
	return &PackService{db: db, log: logging.Service("packs")}
}

func (s *PackService) Create(ctx context.Context, p *models.SeoPack) (*models.SeoPack, error) {
	if p.Name == "" {
		return nil, errors.New("name is required")
	}
	p.ID = uuid.New()
	p.IsActive = true
	if err := s.db.WithContext(ctx).Create(p).Error; err != nil {
		s.log.WithError(err).Error("pack create failed")
		return nil, fmt.Errorf("create pack: %w", err)
	}
	return p, nil
}

func (s *PackService) Get(ctx context.Context, id uuid.UUID) (*models.SeoPack, error) {
	var p models.SeoPack
	err := s.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load pack: %w", err)
	}
	return &p, nil
}

// List returns active packs only unless includeInactive is set.
func (s *PackService) List(ctx context.Context, includeInactive bool) ([]models.SeoPack, error) {
	q := s.db.WithContext(ctx).Order("price asc")
	if !includeInactive {
		q = q.Where("is_active = ?", true)
	}
	var out []models.SeoPack
	if err := q.Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list packs: %w", err)
	}
	return out, nil
}

func (s *PackService) Update(ctx context.Context, p *models.SeoPack) (*models.SeoPack, error) {
	existing, err := s.Get(ctx, p.ID)
	if err != nil || existing == nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Save(p).Error; err != nil {
		s.log.WithError(err).Error("pack update failed")
		return nil, fmt.Errorf("update pack: %w", err)
	}
	return p, nil
}

// Deactivate is the pack's delete: invoices and proposals keep referencing
// it, so the row stays and only the flag flips.
func (s *PackService) Deactivate(ctx context.Context, id uuid.UUID) bool {
	res := s.db.WithContext(ctx).Model(&models.SeoPack{}).Where("id = ?", id).Update("is_active", false)
	if res.Error != nil {
		s.log.WithError(res.Error).Error("pack deactivate failed")
		return false
	}
	return res.RowsAffected > 0
}
