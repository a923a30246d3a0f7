package models

import (
	"time"

	"github.com/google/uuid"
)

// LocalSeoSettings describes the client's Google Business presence. One row
// per client.
type LocalSeoSettings struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ClientID          uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"client_id"`
	BusinessName      string    `gorm:"column:business_name" json:"business_name"`
	GoogleBusinessURL string    `gorm:"column:google_business_url" json:"google_business_url"`
	Category          string    `json:"category"`
	City              string    `json:"city"`
	Address           string    `json:"address"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// LocalSeoMetric is one dated snapshot of local visibility.
type LocalSeoMetric struct {
	ID                   uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ClientID             uuid.UUID `gorm:"type:uuid;not null;index" json:"client_id"`
	Date                 time.Time `gorm:"not null" json:"date"`
	MapRanking           *int      `gorm:"column:map_ranking" json:"map_ranking"`
	GoogleReviewsCount   int       `gorm:"column:google_reviews_count" json:"google_reviews_count"`
	GoogleReviewsAverage float64   `gorm:"column:google_reviews_average" json:"google_reviews_average"`
	DirectoryListings    int       `gorm:"column:directory_listings" json:"directory_listings"`
	CreatedAt            time.Time `json:"created_at"`
}

// SeoMetric is one dated snapshot of organic visibility used by the
// dashboard.
type SeoMetric struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ClientID        uuid.UUID `gorm:"type:uuid;not null;index" json:"client_id"`
	Date            time.Time `gorm:"not null" json:"date"`
	OrganicTraffic  int       `gorm:"column:organic_traffic" json:"organic_traffic"`
	KeywordsTop10   int       `gorm:"column:keywords_top10" json:"keywords_top10"`
	DomainAuthority int       `gorm:"column:domain_authority" json:"domain_authority"`
	CreatedAt       time.Time `json:"created_at"`
}

// TimelineEvent is one entry of the per-client activity feed.
type TimelineEvent struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ClientID    uuid.UUID `gorm:"type:uuid;not null;index" json:"client_id"`
	Type        string    `gorm:"not null" json:"type"` // invoice, proposal, contract, note
	Title       string    `gorm:"not null" json:"title"`
	Description string    `json:"description"`
	OccurredAt  time.Time `gorm:"column:occurred_at;not null" json:"occurred_at"`
	CreatedAt   time.Time `json:"created_at"`
}
