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
	"github.com/seovista/crm-backend/internal/mapper"
	"github.com/seovista/crm-backend/internal/models"
	"github.com/seovista/crm-backend/internal/sharecache"
)

// ErrShareExpired marks a token that was valid once but whose entity has
// passed its expiry date.
var ErrShareExpired = errors.New("share link expired")

// InvoiceShareView is everything a public share page needs in one response.
type InvoiceShareView struct {
	Invoice mapper.Invoice          `json:"invoice"`
	Client  models.Client           `json:"client"`
	Company *models.CompanySettings `json:"company,omitempty"`
}

type ProposalShareView struct {
	Proposal mapper.Proposal         `json:"proposal"`
	Client   models.Client           `json:"client"`
	Company  *models.CompanySettings `json:"company,omitempty"`
}

type ContractShareView struct {
	Contract mapper.Contract         `json:"contract"`
	Client   models.Client           `json:"client"`
	Company  *models.CompanySettings `json:"company,omitempty"`
}

// ShareService mints opaque tokens and resolves them back to entities for
// unauthenticated viewing. Invoice and contract tokens never expire;
// proposal tokens honor the proposal's expires_at.
type ShareService struct {
	db      *gorm.DB
	cache   *sharecache.Cache
	baseURL string
	log     *logrus.Entry
}

func NewShareService(db *gorm.DB, cache *sharecache.Cache, baseURL string) *ShareService {
	return &ShareService{db: db, cache: cache, baseURL: baseURL, log: logging.Service("share")}
}

// CreateInvoiceShareLink mints a token, stores it inline on the invoice plus
// an audit row, and returns the public URL.
func (s *ShareService) CreateInvoiceShareLink(ctx context.Context, invoiceID uuid.UUID) (string, error) {
	var inv models.Invoice
	err := s.db.WithContext(ctx).First(&inv, "id = ?", invoiceID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("load invoice: %w", err)
	}
	token := uuid.NewString()
	now := time.Now()
	s.log.WithField("invoice", inv.InvoiceNumber).Info("minting share link")
	previous := inv.ShareToken
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&inv).Updates(map[string]any{"share_token": token, "shared_at": &now}).Error; err != nil {
			return err
		}
		return tx.Create(&models.InvoiceShare{ID: uuid.New(), InvoiceID: inv.ID, Token: token}).Error
	})
	if err != nil {
		s.log.WithError(err).Error("share link persist failed")
		return "", fmt.Errorf("persist share token: %w", err)
	}
	// the overwritten token must stop resolving immediately, not after TTL
	if previous != nil {
		s.cache.Invalidate(ctx, *previous)
	}
	s.cache.Set(ctx, token, inv.ID)
	return s.baseURL + "/invoices/share/" + token, nil
}

// ResolveInvoiceToken returns the invoice with its display dependencies, or
// nil when the token is unknown.
func (s *ShareService) ResolveInvoiceToken(ctx context.Context, token string) (*InvoiceShareView, error) {
	var inv models.Invoice
	if id, ok := s.cache.Get(ctx, token); ok {
		err := s.db.WithContext(ctx).First(&inv, "id = ?", id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.cache.Invalidate(ctx, token)
			return nil, nil
		}
		if err != nil {
			return nil, fmt.Errorf("resolve token: %w", err)
		}
	} else {
		err := s.db.WithContext(ctx).First(&inv, "share_token = ?", token).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		if err != nil {
			return nil, fmt.Errorf("resolve token: %w", err)
		}
		s.cache.Set(ctx, token, inv.ID)
	}
	client, company := s.displayData(ctx, inv.ClientID)
	if client == nil {
		return nil, nil
	}
	return &InvoiceShareView{Invoice: mapper.InvoiceToDomain(inv), Client: *client, Company: company}, nil
}

// CreateProposalShareLink mints a token on the proposal. Expiry stays
// whatever the proposal carries; resolution enforces it.
func (s *ShareService) CreateProposalShareLink(ctx context.Context, proposalID uuid.UUID) (string, error) {
	var prop models.Proposal
	err := s.db.WithContext(ctx).First(&prop, "id = ?", proposalID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("load proposal: %w", err)
	}
	token := uuid.NewString()
	previous := prop.ShareToken
	if err := s.db.WithContext(ctx).Model(&prop).Update("share_token", token).Error; err != nil {
		s.log.WithError(err).Error("proposal share persist failed")
		return "", fmt.Errorf("persist share token: %w", err)
	}
	if previous != nil {
		s.cache.Invalidate(ctx, *previous)
	}
	s.cache.Set(ctx, token, prop.ID)
	return s.baseURL + "/proposals/share/" + token, nil
}

// ResolveProposalToken returns nil for unknown tokens and ErrShareExpired
// for proposals whose expires_at has passed.
func (s *ShareService) ResolveProposalToken(ctx context.Context, token string) (*ProposalShareView, error) {
	var prop models.Proposal
	err := s.db.WithContext(ctx).First(&prop, "share_token = ?", token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("resolve token: %w", err)
	}
	if prop.ExpiresAt != nil && prop.ExpiresAt.Before(time.Now()) {
		s.log.WithField("proposal", prop.ID).Info("expired share token presented")
		return nil, ErrShareExpired
	}
	client, company := s.displayData(ctx, prop.ClientID)
	if client == nil {
		return nil, nil
	}
	return &ProposalShareView{Proposal: mapper.ProposalToDomain(prop), Client: *client, Company: company}, nil
}

func (s *ShareService) CreateContractShareLink(ctx context.Context, contractID uuid.UUID) (string, error) {
	var c models.Contract
	err := s.db.WithContext(ctx).First(&c, "id = ?", contractID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("load contract: %w", err)
	}
	token := uuid.NewString()
	previous := c.ShareToken
	if err := s.db.WithContext(ctx).Model(&c).Update("share_token", token).Error; err != nil {
		return "", fmt.Errorf("persist share token: %w", err)
	}
	if previous != nil {
		s.cache.Invalidate(ctx, *previous)
	}
	s.cache.Set(ctx, token, c.ID)
	return s.baseURL + "/contracts/share/" + token, nil
}

func (s *ShareService) ResolveContractToken(ctx context.Context, token string) (*ContractShareView, error) {
	var c models.Contract
	err := s.db.WithContext(ctx).Preload("Sections").First(&c, "share_token = ?", token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("resolve token: %w", err)
	}
	client, company := s.displayData(ctx, c.ClientID)
	if client == nil {
		return nil, nil
	}
	return &ContractShareView{Contract: mapper.ContractToDomain(c), Client: *client, Company: company}, nil
}

// displayData loads the client and company settings a share page renders
// next to the entity. Missing company settings are tolerated.
func (s *ShareService) displayData(ctx context.Context, clientID uuid.UUID) (*models.Client, *models.CompanySettings) {
	var client models.Client
	if err := s.db.WithContext(ctx).First(&client, "id = ?", clientID).Error; err != nil {
		s.log.WithError(err).Warn("share view client missing")
		return nil, nil
	}
	var company models.CompanySettings
	if err := s.db.WithContext(ctx).First(&company).Error; err != nil {
		return &client, nil
	}
	return &client, &company
}
