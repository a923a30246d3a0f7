package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/seovista/crm-backend/internal/ai"
	"github.com/seovista/crm-backend/internal/logging"
	"github.com/seovista/crm-backend/internal/models"
)

type ProposalService struct {
	db  *gorm.DB
	ai  ai.Generator
	log *logrus.Entry
}

func NewProposalService(db *gorm.DB, gen ai.Generator) *ProposalService {
	return &ProposalService{db: db, ai: gen, log: logging.Service("proposals")}
}

func (s *ProposalService) Create(ctx context.Context, p *models.Proposal) (*models.Proposal, error) {
	if p.ClientID == uuid.Nil || p.Title == "" {
		return nil, errors.New("client_id and title are required")
	}
	p.ID = uuid.New()
	if p.Status == "" {
		p.Status = models.ProposalStatusDraft
	}
	s.log.WithField("title", p.Title).Info("creating proposal")
	if err := s.db.WithContext(ctx).Create(p).Error; err != nil {
		s.log.WithError(err).Error("proposal create failed")
		return nil, fmt.Errorf("create proposal: %w", err)
	}
	return p, nil
}

func (s *ProposalService) Get(ctx context.Context, id uuid.UUID) (*models.Proposal, error) {
	var p models.Proposal
	err := s.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load proposal: %w", err)
	}
	return &p, nil
}

func (s *ProposalService) List(ctx context.Context, clientID *uuid.UUID) ([]models.Proposal, error) {
	q := s.db.WithContext(ctx).Order("created_at desc")
	if clientID != nil {
		q = q.Where("client_id = ?", *clientID)
	}
	var out []models.Proposal
	if err := q.Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list proposals: %w", err)
	}
	return out, nil
}

// Update is a whole-row replace keyed by id.
func (s *ProposalService) Update(ctx context.Context, p *models.Proposal) (*models.Proposal, error) {
	existing, err := s.Get(ctx, p.ID)
	if err != nil || existing == nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Save(p).Error; err != nil {
		s.log.WithError(err).Error("proposal update failed")
		return nil, fmt.Errorf("update proposal: %w", err)
	}
	return p, nil
}

func (s *ProposalService) Delete(ctx context.Context, id uuid.UUID) bool {
	res := s.db.WithContext(ctx).Delete(&models.Proposal{}, "id = ?", id)
	if res.Error != nil {
		s.log.WithError(res.Error).Error("proposal delete failed")
		return false
	}
	return res.RowsAffected > 0
}

// Send marks the proposal sent and stamps sent/expiry timestamps. Proposals
// expire 30 days after sending unless already set.
func (s *ProposalService) Send(ctx context.Context, id uuid.UUID) (*models.Proposal, error) {
	p, err := s.Get(ctx, id)
	if err != nil || p == nil {
		return nil, err
	}
	now := time.Now()
	updates := map[string]any{"status": models.ProposalStatusSent, "sent_at": &now}
	if p.ExpiresAt == nil {
		exp := now.AddDate(0, 0, 30)
		updates["expires_at"] = &exp
		p.ExpiresAt = &exp
	}
	if err := s.db.WithContext(ctx).Model(p).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("send proposal: %w", err)
	}
	p.Status = models.ProposalStatusSent
	p.SentAt = &now
	return p, nil
}

// GenerateContent asks the completion API for a narrative and stores it on
// the proposal. An API failure degrades to empty content: the proposal is
// returned unchanged and the caller falls back to a placeholder.
func (s *ProposalService) GenerateContent(ctx context.Context, id uuid.UUID) (*models.Proposal, error) {
	p, err := s.Get(ctx, id)
	if err != nil || p == nil {
		return nil, err
	}
	var client models.Client
	if err := s.db.WithContext(ctx).First(&client, "id = ?", p.ClientID).Error; err != nil {
		return nil, fmt.Errorf("load client: %w", err)
	}
	system := "Eres un consultor SEO senior. Redacta propuestas comerciales claras y persuasivas en español, en formato markdown."
	prompt := fmt.Sprintf("Redacta la propuesta %q para el cliente %s (%s). Descripción: %s",
		p.Title, client.Name, client.Website, p.Description)
	content, err := s.ai.Generate(ctx, system, prompt)
	if err != nil {
		s.log.WithError(err).Warn("ai content unavailable, keeping proposal as-is")
		return p, nil
	}
	if err := s.db.WithContext(ctx).Model(p).Update("ai_content", content).Error; err != nil {
		return nil, fmt.Errorf("store content: %w", err)
	}
	p.AIContent = content
	return p, nil
}
