package models

import (
	"time"

	"github.com/google/uuid"
)

// Keyword is one tracked search term for a client.
type Keyword struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ClientID         uuid.UUID `gorm:"type:uuid;not null;index" json:"client_id"`
	Keyword          string    `gorm:"not null" json:"keyword"`
	Position         *int      `json:"position"`
	PreviousPosition *int      `gorm:"column:previous_position" json:"previous_position"`
	SearchVolume     *int      `gorm:"column:search_volume" json:"search_volume"`
	TargetURL        string    `gorm:"column:target_url" json:"target_url"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
