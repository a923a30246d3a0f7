package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/seovista/crm-backend/internal/logging"
	"github.com/seovista/crm-backend/internal/mapper"
	"github.com/seovista/crm-backend/internal/models"
)

// Dashboard is the merged view-model for the client summary screen.
type Dashboard struct {
	Metrics       []models.SeoMetric     `json:"metrics"`
	Timeline      []models.TimelineEvent `json:"timeline"`
	Documents     []mapper.ClientDocument `json:"documents"`
	Invoices      []mapper.Invoice       `json:"invoices"`
	KeywordStats  KeywordStats           `json:"keywordStats"`
	PendingAmount decimal.Decimal        `json:"pendingAmount"`
}

// DashboardService fans out over the independent sources and merges the
// results. A failed source contributes its empty default; it never fails
// the whole load and never cancels siblings.
type DashboardService struct {
	db       *gorm.DB
	keywords *KeywordService
	log      *logrus.Entry
}

func NewDashboardService(db *gorm.DB, keywords *KeywordService) *DashboardService {
	return &DashboardService{db: db, keywords: keywords, log: logging.Service("dashboard")}
}

func (s *DashboardService) Load(ctx context.Context, clientID uuid.UUID) *Dashboard {
	d := &Dashboard{
		Metrics:   []models.SeoMetric{},
		Timeline:  []models.TimelineEvent{},
		Documents: []mapper.ClientDocument{},
		Invoices:  []mapper.Invoice{},
	}
	var g errgroup.Group

	g.Go(func() error {
		var metrics []models.SeoMetric
		if err := s.db.WithContext(ctx).Where("client_id = ?", clientID).Order("date desc").Limit(12).Find(&metrics).Error; err != nil {
			s.log.WithError(err).Warn("metrics source failed, using empty default")
			return nil
		}
		d.Metrics = metrics
		return nil
	})
	g.Go(func() error {
		var events []models.TimelineEvent
		if err := s.db.WithContext(ctx).Where("client_id = ?", clientID).Order("occurred_at desc").Limit(20).Find(&events).Error; err != nil {
			s.log.WithError(err).Warn("timeline source failed, using empty default")
			return nil
		}
		d.Timeline = events
		return nil
	})
	g.Go(func() error {
		var docs []models.ClientDocument
		if err := s.db.WithContext(ctx).Where("client_id = ?", clientID).Order("upload_date desc").Find(&docs).Error; err != nil {
			s.log.WithError(err).Warn("documents source failed, using empty default")
			return nil
		}
		for _, doc := range docs {
			d.Documents = append(d.Documents, mapper.DocumentToDomain(doc))
		}
		return nil
	})
	g.Go(func() error {
		var invs []models.Invoice
		if err := s.db.WithContext(ctx).Where("client_id = ?", clientID).Order("created_at desc").Find(&invs).Error; err != nil {
			s.log.WithError(err).Warn("invoices source failed, using empty default")
			return nil
		}
		d.Invoices = mapper.InvoicesToDomain(invs)
		pending := decimal.Zero
		for _, inv := range invs {
			if inv.Status == models.InvoiceStatusPending {
				pending = pending.Add(inv.TotalAmount)
			}
		}
		d.PendingAmount = pending
		return nil
	})
	g.Go(func() error {
		stats, err := s.keywords.Stats(ctx, clientID)
		if err != nil {
			s.log.WithError(err).Warn("keyword stats source failed, using empty default")
			return nil
		}
		d.KeywordStats = stats
		return nil
	})

	// goroutines always return nil: partial failure degrades per source
	_ = g.Wait()
	return d
}
