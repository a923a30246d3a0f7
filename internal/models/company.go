package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CompanySettings holds the agency's own identity, a single row used by PDF
// rendering and the public share views.
type CompanySettings struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	Name           string          `gorm:"not null" json:"name"`
	TaxID          string          `gorm:"column:tax_id" json:"tax_id"`
	Address        string          `json:"address"`
	City           string          `json:"city"`
	PostalCode     string          `json:"postal_code"`
	Email          string          `json:"email"`
	Phone          string          `json:"phone"`
	Website        string          `json:"website"`
	IBAN           string          `gorm:"column:iban" json:"iban"`
	LogoURL        string          `gorm:"column:logo_url" json:"logo_url"`
	DefaultTaxRate decimal.Decimal `gorm:"type:decimal(5,2);not null;default:21" json:"default_tax_rate"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}
