package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	DocumentTypePDF   = "pdf"
	DocumentTypeDoc   = "doc"
	DocumentTypeImage = "image"
	DocumentTypeText  = "text"
)

const (
	AnalysisPending   = "pending"
	AnalysisAnalyzed  = "analyzed"
	AnalysisProcessed = "processed"
	AnalysisError     = "error"
	AnalysisFailed    = "failed"
)

// ClientDocument is an uploaded file tied to a client, optionally run
// through text extraction (Content holds the result).
type ClientDocument struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ClientID       uuid.UUID `gorm:"type:uuid;not null;index" json:"client_id"`
	Client         Client    `gorm:"foreignKey:ClientID" json:"-"`
	Name           string    `gorm:"not null" json:"name"`
	Type           string    `gorm:"not null" json:"type"`
	URL            string    `gorm:"column:url;not null" json:"url"`
	UploadDate     time.Time `gorm:"column:upload_date;not null" json:"upload_date"`
	AnalysisStatus string    `gorm:"column:analysis_status;not null;default:'pending'" json:"analysis_status"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
