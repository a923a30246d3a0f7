package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	ContractStatusDraft  = "draft"
	ContractStatusActive = "active"
	ContractStatusSigned = "signed"
	ContractStatusEnded  = "ended"
)

type Contract struct {
	ID                   uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	ClientID             uuid.UUID         `gorm:"type:uuid;not null;index" json:"client_id"`
	Client               Client            `gorm:"foreignKey:ClientID" json:"-"`
	Title                string            `gorm:"not null" json:"title"`
	StartDate            time.Time         `gorm:"column:start_date;not null" json:"start_date"`
	EndDate              *time.Time        `gorm:"column:end_date" json:"end_date"`
	SetupFee             decimal.Decimal   `gorm:"column:setup_fee;type:decimal(12,2)" json:"setup_fee"`
	MonthlyFee           decimal.Decimal   `gorm:"column:monthly_fee;type:decimal(12,2)" json:"monthly_fee"`
	Status               string            `gorm:"not null;default:'draft'" json:"status"`
	Sections             []ContractSection `gorm:"foreignKey:ContractID" json:"sections"`
	SignedByClient       bool              `gorm:"column:signed_by_client;not null" json:"signed_by_client"`
	SignedByProfessional bool              `gorm:"column:signed_by_professional;not null" json:"signed_by_professional"`
	SignedAt             *time.Time        `gorm:"column:signed_at" json:"signed_at"`
	PDFURL               string            `gorm:"column:pdf_url" json:"pdf_url"`
	ShareToken           *string           `gorm:"column:share_token;uniqueIndex" json:"share_token"`
	CreatedAt            time.Time         `json:"created_at"`
	UpdatedAt            time.Time         `json:"updated_at"`
}

// ContractSection is one titled block of contract body text. Position keeps
// the order stable across updates.
type ContractSection struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ContractID uuid.UUID `gorm:"type:uuid;not null;index" json:"contract_id"`
	Position   int       `gorm:"not null" json:"position"`
	Title      string    `gorm:"not null" json:"title"`
	Content    string    `json:"content"`
}
