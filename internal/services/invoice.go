package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/seovista/crm-backend/internal/logging"
	"github.com/seovista/crm-backend/internal/models"
)

var hundred = decimal.NewFromInt(100)

// ErrInvalidTransition is returned when a status change is not allowed by
// the invoice lifecycle graph.
var ErrInvalidTransition = errors.New("invalid invoice status transition")

// ErrProposalInvoiced is returned when converting a proposal that already
// produced an invoice.
var ErrProposalInvoiced = errors.New("proposal already invoiced")

// invoiceTransitions is the enforced lifecycle: paid and cancelled are
// terminal.
var invoiceTransitions = map[string][]string{
	models.InvoiceStatusDraft:   {models.InvoiceStatusPending, models.InvoiceStatusPaid, models.InvoiceStatusCancelled},
	models.InvoiceStatusPending: {models.InvoiceStatusPaid, models.InvoiceStatusCancelled},
}

type InvoiceService struct {
	db        *gorm.DB
	numbering *NumberingService
	log       *logrus.Entry
}

func NewInvoiceService(db *gorm.DB, numbering *NumberingService) *InvoiceService {
	return &InvoiceService{db: db, numbering: numbering, log: logging.Service("invoices")}
}

// ComputeAmounts derives tax and total from the base amount and rate:
// tax = round2(base * rate / 100), total = base + tax.
func ComputeAmounts(base, rate decimal.Decimal) (tax, total decimal.Decimal) {
	tax = base.Mul(rate).Div(hundred).Round(2)
	total = base.Add(tax).Round(2)
	return tax, total
}

// InvoiceInput carries caller-provided fields for Create. Everything else
// (id, number, derived amounts, timestamps) is generated here.
type InvoiceInput struct {
	ClientID   uuid.UUID
	PackID     *uuid.UUID
	ProposalID *uuid.UUID
	BaseAmount decimal.Decimal
	TaxRate    *decimal.Decimal
	Status     string
	IssueDate  *time.Time
	DueDate    *time.Time
	Notes      string
}

func (in *InvoiceInput) validate() error {
	if in.ClientID == uuid.Nil {
		return errors.New("client_id is required")
	}
	if in.BaseAmount.IsNegative() {
		return errors.New("base_amount must not be negative")
	}
	if in.Status != "" && in.Status != models.InvoiceStatusDraft && in.Status != models.InvoiceStatusPending {
		return fmt.Errorf("invoices cannot be created as %q", in.Status)
	}
	return nil
}

// Create persists a new invoice: number from the numbering service, UUID
// primary key, derived amounts. Returns nil on store failure (logged).
func (s *InvoiceService) Create(ctx context.Context, in InvoiceInput) (*models.Invoice, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	rate := decimal.NewFromInt(21)
	if in.TaxRate != nil {
		if in.TaxRate.IsNegative() {
			return nil, errors.New("tax_rate must not be negative")
		}
		rate = *in.TaxRate
	}
	tax, total := ComputeAmounts(in.BaseAmount, rate)
	status := in.Status
	if status == "" {
		status = models.InvoiceStatusDraft
	}
	issue := time.Now()
	if in.IssueDate != nil {
		issue = *in.IssueDate
	}
	inv := models.Invoice{
		ID:            uuid.New(),
		InvoiceNumber: s.numbering.GenerateInvoiceNumber(ctx),
		ClientID:      in.ClientID,
		PackID:        in.PackID,
		ProposalID:    in.ProposalID,
		BaseAmount:    in.BaseAmount.Round(2),
		TaxRate:       rate,
		TaxAmount:     tax,
		TotalAmount:   total,
		Status:        status,
		IssueDate:     issue,
		DueDate:       in.DueDate,
		Notes:         in.Notes,
	}
	s.log.WithFields(logrus.Fields{"invoice": inv.InvoiceNumber, "client": in.ClientID}).Info("creating invoice")
	if err := s.db.WithContext(ctx).Create(&inv).Error; err != nil {
		s.log.WithError(err).Error("invoice create failed")
		return nil, fmt.Errorf("create invoice: %w", err)
	}
	s.recordTimeline(ctx, in.ClientID, "invoice", "Factura "+inv.InvoiceNumber+" creada")
	s.log.WithField("invoice", inv.InvoiceNumber).Info("invoice created")
	return &inv, nil
}

// Get returns (nil, nil) when the invoice does not exist: absence is a
// normal outcome, not an error.
func (s *InvoiceService) Get(ctx context.Context, id uuid.UUID) (*models.Invoice, error) {
	var inv models.Invoice
	err := s.db.WithContext(ctx).First(&inv, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		s.log.WithError(err).WithField("id", id).Error("invoice load failed")
		return nil, fmt.Errorf("load invoice: %w", err)
	}
	return &inv, nil
}

// List returns invoices, newest first, optionally scoped to one client.
func (s *InvoiceService) List(ctx context.Context, clientID *uuid.UUID) ([]models.Invoice, error) {
	q := s.db.WithContext(ctx).Order("created_at desc")
	if clientID != nil {
		q = q.Where("client_id = ?", *clientID)
	}
	var invs []models.Invoice
	if err := q.Find(&invs).Error; err != nil {
		s.log.WithError(err).Error("invoice list failed")
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	return invs, nil
}

// Update replaces the whole row keyed by primary id. Callers must pass the
// complete entity (fetched and merged beforehand); partial structs would
// zero out omitted fields. The invoice number is immutable once assigned.
func (s *InvoiceService) Update(ctx context.Context, inv *models.Invoice) (*models.Invoice, error) {
	existing, err := s.Get(ctx, inv.ID)
	if err != nil || existing == nil {
		return nil, err
	}
	inv.InvoiceNumber = existing.InvoiceNumber
	tax, total := ComputeAmounts(inv.BaseAmount, inv.TaxRate)
	inv.TaxAmount, inv.TotalAmount = tax, total
	s.log.WithField("invoice", inv.InvoiceNumber).Info("updating invoice")
	if err := s.db.WithContext(ctx).Save(inv).Error; err != nil {
		s.log.WithError(err).Error("invoice update failed")
		return nil, fmt.Errorf("update invoice: %w", err)
	}
	return inv, nil
}

// ChangeStatus applies the lifecycle graph. Moving to paid stamps the
// payment date.
func (s *InvoiceService) ChangeStatus(ctx context.Context, id uuid.UUID, status string) (*models.Invoice, error) {
	inv, err := s.Get(ctx, id)
	if err != nil || inv == nil {
		return nil, err
	}
	if !transitionAllowed(inv.Status, status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, inv.Status, status)
	}
	updates := map[string]any{"status": status}
	if status == models.InvoiceStatusPaid {
		now := time.Now()
		updates["payment_date"] = &now
		inv.PaymentDate = &now
	}
	if err := s.db.WithContext(ctx).Model(inv).Updates(updates).Error; err != nil {
		s.log.WithError(err).Error("invoice status change failed")
		return nil, fmt.Errorf("change status: %w", err)
	}
	inv.Status = status
	s.recordTimeline(ctx, inv.ClientID, "invoice", "Factura "+inv.InvoiceNumber+" → "+status)
	return inv, nil
}

func transitionAllowed(from, to string) bool {
	if from == to {
		return true
	}
	for _, allowed := range invoiceTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Delete removes the invoice and, best-effort, its share rows first. A
// failure cleaning up shares does not block the primary delete.
func (s *InvoiceService) Delete(ctx context.Context, id uuid.UUID) bool {
	s.log.WithField("id", id).Info("deleting invoice")
	if err := s.db.WithContext(ctx).Where("invoice_id = ?", id).Delete(&models.InvoiceShare{}).Error; err != nil {
		s.log.WithError(err).Warn("share cleanup failed, continuing with delete")
	}
	res := s.db.WithContext(ctx).Delete(&models.Invoice{}, "id = ?", id)
	if res.Error != nil {
		s.log.WithError(res.Error).Error("invoice delete failed")
		return false
	}
	return res.RowsAffected > 0
}

// CreateFromProposal converts an accepted proposal into a draft invoice.
// Price resolution: custom price on the proposal wins, else the pack price.
// Every intermediate result is checked before proceeding.
func (s *InvoiceService) CreateFromProposal(ctx context.Context, proposalID uuid.UUID) (*models.Invoice, error) {
	var prop models.Proposal
	err := s.db.WithContext(ctx).First(&prop, "id = ?", proposalID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load proposal: %w", err)
	}
	if prop.Status == models.ProposalStatusInvoiced {
		return nil, ErrProposalInvoiced
	}
	var base decimal.Decimal
	switch {
	case prop.CustomPrice != nil:
		base = *prop.CustomPrice
	case prop.PackID != nil:
		var pack models.SeoPack
		if err := s.db.WithContext(ctx).First(&pack, "id = ?", *prop.PackID).Error; err != nil {
			return nil, fmt.Errorf("load pack: %w", err)
		}
		base = pack.Price
	default:
		return nil, errors.New("proposal has neither custom price nor pack")
	}
	inv, err := s.Create(ctx, InvoiceInput{
		ClientID:   prop.ClientID,
		PackID:     prop.PackID,
		ProposalID: &prop.ID,
		BaseAmount: base,
		Notes:      prop.Title,
	})
	if err != nil || inv == nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(&prop).Update("status", models.ProposalStatusInvoiced).Error; err != nil {
		s.log.WithError(err).Warn("proposal status update failed after invoicing")
	}
	return inv, nil
}

func (s *InvoiceService) recordTimeline(ctx context.Context, clientID uuid.UUID, kind, title string) {
	ev := models.TimelineEvent{ID: uuid.New(), ClientID: clientID, Type: kind, Title: title, OccurredAt: time.Now()}
	if err := s.db.WithContext(ctx).Create(&ev).Error; err != nil {
		s.log.WithError(err).Debug("timeline event not recorded")
	}
}
