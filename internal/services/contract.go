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

type ContractService struct {
	db  *gorm.DB
	log *logrus.Entry
}

func NewContractService(db *gorm.DB) *ContractService {
	return &ContractService{db: db, log: logging.Service("contracts")}
}

func (s *ContractService) Create(ctx context.Context, c *models.Contract) (*models.Contract, error) {
	if c.ClientID == uuid.Nil || c.Title == "" {
		return nil, errors.New("client_id and title are required")
	}
	c.ID = uuid.New()
	if c.Status == "" {
		c.Status = models.ContractStatusDraft
	}
	for i := range c.Sections {
		c.Sections[i].ID = uuid.New()
		c.Sections[i].ContractID = c.ID
		c.Sections[i].Position = i
	}
	s.log.WithField("title", c.Title).Info("creating contract")
	if err := s.db.WithContext(ctx).Create(c).Error; err != nil {
		s.log.WithError(err).Error("contract create failed")
		return nil, fmt.Errorf("create contract: %w", err)
	}
	return c, nil
}

func (s *ContractService) Get(ctx context.Context, id uuid.UUID) (*models.Contract, error) {
	var c models.Contract
	err := s.db.WithContext(ctx).Preload("Sections").First(&c, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load contract: %w", err)
	}
	return &c, nil
}

func (s *ContractService) List(ctx context.Context, clientID *uuid.UUID) ([]models.Contract, error) {
	q := s.db.WithContext(ctx).Preload("Sections").Order("created_at desc")
	if clientID != nil {
		q = q.Where("client_id = ?", *clientID)
	}
	var out []models.Contract
	if err := q.Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list contracts: %w", err)
	}
	return out, nil
}

// Update replaces the row and its sections wholesale: old section rows are
// deleted and the supplied ordered list is written back.
func (s *ContractService) Update(ctx context.Context, c *models.Contract) (*models.Contract, error) {
	existing, err := s.Get(ctx, c.ID)
	if err != nil || existing == nil {
		return nil, err
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("contract_id = ?", c.ID).Delete(&models.ContractSection{}).Error; err != nil {
			return err
		}
		for i := range c.Sections {
			c.Sections[i].ID = uuid.New()
			c.Sections[i].ContractID = c.ID
			c.Sections[i].Position = i
		}
		return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(c).Error
	})
	if err != nil {
		s.log.WithError(err).Error("contract update failed")
		return nil, fmt.Errorf("update contract: %w", err)
	}
	return c, nil
}

func (s *ContractService) Delete(ctx context.Context, id uuid.UUID) bool {
	if err := s.db.WithContext(ctx).Where("contract_id = ?", id).Delete(&models.ContractSection{}).Error; err != nil {
		s.log.WithError(err).Warn("section cleanup failed, continuing with delete")
	}
	res := s.db.WithContext(ctx).Delete(&models.Contract{}, "id = ?", id)
	if res.Error != nil {
		s.log.WithError(res.Error).Error("contract delete failed")
		return false
	}
	return res.RowsAffected > 0
}

// Sign flips the signature flag for one party. When both parties have
// signed, the contract moves to signed and gets its timestamp.
func (s *ContractService) Sign(ctx context.Context, id uuid.UUID, party string) (*models.Contract, error) {
	c, err := s.Get(ctx, id)
	if err != nil || c == nil {
		return nil, err
	}
	switch party {
	case "client":
		c.SignedByClient = true
	case "professional":
		c.SignedByProfessional = true
	default:
		return nil, fmt.Errorf("unknown signing party %q", party)
	}
	updates := map[string]any{
		"signed_by_client":       c.SignedByClient,
		"signed_by_professional": c.SignedByProfessional,
	}
	if c.SignedByClient && c.SignedByProfessional {
		now := time.Now()
		updates["signed_at"] = &now
		updates["status"] = models.ContractStatusSigned
		c.SignedAt = &now
		c.Status = models.ContractStatusSigned
	}
	if err := s.db.WithContext(ctx).Model(&models.Contract{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("sign contract: %w", err)
	}
	return c, nil
}
