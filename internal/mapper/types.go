// Package mapper translates between storage rows (snake_case gorm models)
// and the camelCase domain objects exposed to the UI layer. All functions
// are pure; relational joins loaded only on read are intentionally lossy on
// the way back.
package mapper

import (
	"bytes"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Invoice struct {
	ID            uuid.UUID       `json:"id"`
	InvoiceNumber string          `json:"invoiceNumber"`
	ClientID      uuid.UUID       `json:"clientId"`
	PackID        *uuid.UUID      `json:"packId,omitempty"`
	ProposalID    *uuid.UUID      `json:"proposalId,omitempty"`
	BaseAmount    decimal.Decimal `json:"baseAmount"`
	TaxRate       decimal.Decimal `json:"taxRate"`
	TaxAmount     decimal.Decimal `json:"taxAmount"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	Status        string          `json:"status"`
	IssueDate     time.Time       `json:"issueDate"`
	DueDate       *time.Time      `json:"dueDate,omitempty"`
	PaymentDate   *time.Time      `json:"paymentDate,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	PDFURL        string          `json:"pdfUrl,omitempty"`
	ShareToken    *string         `json:"shareToken,omitempty"`
	SharedAt      *time.Time      `json:"sharedAt,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

type Proposal struct {
	ID             uuid.UUID        `json:"id"`
	ClientID       uuid.UUID        `json:"clientId"`
	PackID         *uuid.UUID       `json:"packId,omitempty"`
	Title          string           `json:"title"`
	Description    string           `json:"description,omitempty"`
	Status         string           `json:"status"`
	CustomPrice    *decimal.Decimal `json:"customPrice,omitempty"`
	CustomFeatures string           `json:"customFeatures,omitempty"`
	AIContent      string           `json:"aiContent,omitempty"`
	ShareToken     *string          `json:"shareToken,omitempty"`
	SentAt         *time.Time       `json:"sentAt,omitempty"`
	ExpiresAt      *time.Time       `json:"expiresAt,omitempty"`
	CreatedAt      time.Time        `json:"createdAt"`
	UpdatedAt      time.Time        `json:"updatedAt"`
}

type ContractSection struct {
	Position int    `json:"position"`
	Title    string `json:"title"`
	Content  string `json:"content,omitempty"`
}

type Contract struct {
	ID                   uuid.UUID         `json:"id"`
	ClientID             uuid.UUID         `json:"clientId"`
	Title                string            `json:"title"`
	StartDate            time.Time         `json:"startDate"`
	EndDate              *time.Time        `json:"endDate,omitempty"`
	SetupFee             decimal.Decimal   `json:"setupFee"`
	MonthlyFee           decimal.Decimal   `json:"monthlyFee"`
	Status               string            `json:"status"`
	Sections             []ContractSection `json:"sections"`
	SignedByClient       bool              `json:"signedByClient"`
	SignedByProfessional bool              `json:"signedByProfessional"`
	SignedAt             *time.Time        `json:"signedAt,omitempty"`
	PDFURL               string            `json:"pdfUrl,omitempty"`
	CreatedAt            time.Time         `json:"createdAt"`
	UpdatedAt            time.Time         `json:"updatedAt"`
}

type ClientDocument struct {
	ID             uuid.UUID `json:"id"`
	ClientID       uuid.UUID `json:"clientId"`
	Name           string    `json:"name"`
	Type           string    `json:"type"`
	URL            string    `json:"url"`
	UploadDate     time.Time `json:"uploadDate"`
	AnalysisStatus string    `json:"analysisStatus"`
	Content        string    `json:"content,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

type Keyword struct {
	ID               uuid.UUID `json:"id"`
	ClientID         uuid.UUID `json:"clientId"`
	Keyword          string    `json:"keyword"`
	Position         *int      `json:"position,omitempty"`
	PreviousPosition *int      `json:"previousPosition,omitempty"`
	SearchVolume     *int      `json:"searchVolume,omitempty"`
	TargetURL        string    `json:"targetUrl,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// FlexFloat tolerates upstream payloads that serialize numbers as strings
// (the Google reviews average arrives both ways). Normalized here once so
// call sites never re-coerce.
type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(b []byte) error {
	s := string(bytes.Trim(b, `"`))
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	*f = FlexFloat(v)
	return nil
}

func (f FlexFloat) Float64() float64 { return float64(f) }
