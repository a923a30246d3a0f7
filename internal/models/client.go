package models

import (
	"time"

	"github.com/google/uuid"
)

// Client is the owning record for every other entity in the CRM.
type Client struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"not null;index" json:"name"`
	Company   string    `gorm:"column:company" json:"company"`
	Email     string    `gorm:"index" json:"email"`
	Phone     string    `json:"phone"`
	Website   string    `json:"website"`
	Sector    string    `json:"sector"`
	City      string    `json:"city"`
	Notes     string    `json:"notes"`
	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
