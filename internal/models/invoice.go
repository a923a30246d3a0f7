package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Invoice statuses. Transitions are validated in services.InvoiceService.
const (
	InvoiceStatusDraft     = "draft"
	InvoiceStatusPending   = "pending"
	InvoiceStatusPaid      = "paid"
	InvoiceStatusCancelled = "cancelled"
)

type Invoice struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	InvoiceNumber string          `gorm:"column:invoice_number;uniqueIndex;not null" json:"invoice_number"`
	ClientID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"client_id"`
	Client        Client          `gorm:"foreignKey:ClientID" json:"-"`
	PackID        *uuid.UUID      `gorm:"type:uuid" json:"pack_id"`
	ProposalID    *uuid.UUID      `gorm:"type:uuid" json:"proposal_id"`
	BaseAmount    decimal.Decimal `gorm:"column:base_amount;type:decimal(12,2);not null" json:"base_amount"`
	TaxRate       decimal.Decimal `gorm:"column:tax_rate;type:decimal(5,2);not null" json:"tax_rate"`
	TaxAmount     decimal.Decimal `gorm:"column:tax_amount;type:decimal(12,2);not null" json:"tax_amount"`
	TotalAmount   decimal.Decimal `gorm:"column:total_amount;type:decimal(12,2);not null" json:"total_amount"`
	Status        string          `gorm:"not null;default:'draft'" json:"status"`
	IssueDate     time.Time       `gorm:"column:issue_date;not null" json:"issue_date"`
	DueDate       *time.Time      `gorm:"column:due_date" json:"due_date"`
	PaymentDate   *time.Time      `gorm:"column:payment_date" json:"payment_date"`
	Notes         string          `json:"notes"`
	PDFURL        string          `gorm:"column:pdf_url" json:"pdf_url"`
	ShareToken    *string         `gorm:"column:share_token;uniqueIndex" json:"share_token"`
	SharedAt      *time.Time      `gorm:"column:shared_at" json:"shared_at"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// InvoiceShare keeps one row per minted share token so links can be audited
// and cleaned up when the invoice goes away.
type InvoiceShare struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	InvoiceID uuid.UUID `gorm:"type:uuid;not null;index" json:"invoice_id"`
	Token     string    `gorm:"uniqueIndex;not null" json:"token"`
	CreatedAt time.Time `json:"created_at"`
}

// InvoiceCounter backs year-scoped sequential numbering. One row per year,
// bumped atomically (see services.NumberingService).
type InvoiceCounter struct {
	Year    int `gorm:"primaryKey" json:"year"`
	LastSeq int `gorm:"column:last_seq;not null" json:"last_seq"`
}
