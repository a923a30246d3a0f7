package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/seovista/crm-backend/internal/logging"
	"github.com/seovista/crm-backend/internal/models"
)

type LocalSeoService struct {
	db  *gorm.DB
	log *logrus.Entry
}

func NewLocalSeoService(db *gorm.DB) *LocalSeoService {
	return &LocalSeoService{db: db, log: logging.Service("localseo")}
}

// LocalSeoView is the combined read shape: current settings plus metric
// history, newest first.
type LocalSeoView struct {
	Settings *models.LocalSeoSettings `json:"settings"`
	Metrics  []models.LocalSeoMetric  `json:"metrics"`
}

func (s *LocalSeoService) Get(ctx context.Context, clientID uuid.UUID) (*LocalSeoView, error) {
	view := &LocalSeoView{}
	var settings models.LocalSeoSettings
	err := s.db.WithContext(ctx).First(&settings, "client_id = ?", clientID).Error
	if err == nil {
		view.Settings = &settings
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	if err := s.db.WithContext(ctx).Where("client_id = ?", clientID).Order("date desc").Find(&view.Metrics).Error; err != nil {
		return nil, fmt.Errorf("load metrics: %w", err)
	}
	return view, nil
}

// Save upserts the settings and appends a metric snapshot in one
// transaction: either both writes land or neither does.
func (s *LocalSeoService) Save(ctx context.Context, clientID uuid.UUID, settings models.LocalSeoSettings, metric *models.LocalSeoMetric) (*LocalSeoView, error) {
	if clientID == uuid.Nil {
		return nil, errors.New("client_id is required")
	}
	settings.ClientID = clientID
	s.log.WithField("client", clientID).Info("saving local SEO data")
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.LocalSeoSettings
		err := tx.First(&existing, "client_id = ?", clientID).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			settings.ID = uuid.New()
			if err := tx.Create(&settings).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			settings.ID = existing.ID
			settings.CreatedAt = existing.CreatedAt
			if err := tx.Save(&settings).Error; err != nil {
				return err
			}
		}
		if metric != nil {
			metric.ID = uuid.New()
			metric.ClientID = clientID
			if metric.Date.IsZero() {
				metric.Date = time.Now()
			}
			if err := tx.Create(metric).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.log.WithError(err).Error("local SEO save failed")
		return nil, fmt.Errorf("save local seo: %w", err)
	}
	return s.Get(ctx, clientID)
}
