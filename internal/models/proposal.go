package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	ProposalStatusDraft    = "draft"
	ProposalStatusSent     = "sent"
	ProposalStatusAccepted = "accepted"
	ProposalStatusRejected = "rejected"
	ProposalStatusInvoiced = "invoiced"
)

// Proposal is a commercial offer, optionally backed by a pack and
// convertible into an invoice.
type Proposal struct {
	ID             uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	ClientID       uuid.UUID        `gorm:"type:uuid;not null;index" json:"client_id"`
	Client         Client           `gorm:"foreignKey:ClientID" json:"-"`
	PackID         *uuid.UUID       `gorm:"type:uuid" json:"pack_id"`
	Title          string           `gorm:"not null" json:"title"`
	Description    string           `json:"description"`
	Status         string           `gorm:"not null;default:'draft'" json:"status"`
	CustomPrice    *decimal.Decimal `gorm:"column:custom_price;type:decimal(12,2)" json:"custom_price"`
	CustomFeatures string           `gorm:"column:custom_features" json:"custom_features"`
	AIContent      string           `gorm:"column:ai_content" json:"ai_content"`
	ShareToken     *string          `gorm:"column:share_token;uniqueIndex" json:"share_token"`
	SentAt         *time.Time       `gorm:"column:sent_at" json:"sent_at"`
	ExpiresAt      *time.Time       `gorm:"column:expires_at" json:"expires_at"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}
