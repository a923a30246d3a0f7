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

type ClientService struct {
	db  *gorm.DB
	log *logrus.Entry
}

func NewClientService(db *gorm.DB) *ClientService {
	return &ClientService{db: db, log: logging.Service("clients")}
}

func (s *ClientService) Create(ctx context.Context, c *models.Client) (*models.Client, error) {
	if c.Name == "" {
		return nil, errors.New("name is required")
	}
	c.ID = uuid.New()
	c.IsActive = true
	if err := s.db.WithContext(ctx).Create(c).Error; err != nil {
		s.log.WithError(err).Error("client create failed")
		return nil, fmt.Errorf("create client: %w", err)
	}
	return c, nil
}

func (s *ClientService) Get(ctx context.Context, id uuid.UUID) (*models.Client, error) {
	var c models.Client
	err := s.db.WithContext(ctx).First(&c, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load client: %w", err)
	}
	return &c, nil
}

func (s *ClientService) List(ctx context.Context) ([]models.Client, error) {
	var out []models.Client
	if err := s.db.WithContext(ctx).Order("name asc").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	return out, nil
}

func (s *ClientService) Update(ctx context.Context, c *models.Client) (*models.Client, error) {
	existing, err := s.Get(ctx, c.ID)
	if err != nil || existing == nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Save(c).Error; err != nil {
		s.log.WithError(err).Error("client update failed")
		return nil, fmt.Errorf("update client: %w", err)
	}
	return c, nil
}

func (s *ClientService) Delete(ctx context.Context, id uuid.UUID) bool {
	res := s.db.WithContext(ctx).Delete(&models.Client{}, "id = ?", id)
	if res.Error != nil {
		s.log.WithError(res.Error).Error("client delete failed")
		return false
	}
	return res.RowsAffected > 0
}
