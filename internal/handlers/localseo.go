package handlers

import (
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/seovista/crm-backend/internal/httpx"
	"github.com/seovista/crm-backend/internal/mapper"
	"github.com/seovista/crm-backend/internal/models"
	"github.com/seovista/crm-backend/internal/services"
)

type LocalSeoHandler struct {
	DB  *gorm.DB
	Svc *services.LocalSeoService
}

func NewLocalSeoHandler(db *gorm.DB, svc *services.LocalSeoService) *LocalSeoHandler {
	return &LocalSeoHandler{DB: db, Svc: svc}
}

// Get: GET /clients/{id}/localseo
func (h *LocalSeoHandler) Get(w http.ResponseWriter, r *http.Request) {
	clientID, ok := urlID(w, r, "id")
	if !ok {
		return
	}
	view, err := h.Svc.Get(r.Context(), clientID)
	if err != nil {
		fail(w, r, http.StatusInternalServerError, "internal_error", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, view)
}

// localSeoMetricReq mirrors models.LocalSeoMetric except for the reviews
// average, which the Google scraper sends both as a number and as a string.
type localSeoMetricReq struct {
	Date                 *time.Time       `json:"date"`
	MapRanking           *int             `json:"map_ranking"`
	GoogleReviewsCount   int              `json:"google_reviews_count"`
	GoogleReviewsAverage mapper.FlexFloat `json:"google_reviews_average"`
	DirectoryListings    int              `json:"directory_listings"`
}

// Save: PUT /clients/{id}/localseo upserts settings and optionally appends a
// metric snapshot in the same transaction.
func (h *LocalSeoHandler) Save(w http.ResponseWriter, r *http.Request) {
	clientID, ok := urlID(w, r, "id")
	if !ok {
		return
	}
	var req struct {
		Settings models.LocalSeoSettings `json:"settings"`
		Metric   *localSeoMetricReq      `json:"metric"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	var metric *models.LocalSeoMetric
	if req.Metric != nil {
		metric = &models.LocalSeoMetric{
			MapRanking:           req.Metric.MapRanking,
			GoogleReviewsCount:   req.Metric.GoogleReviewsCount,
			GoogleReviewsAverage: req.Metric.GoogleReviewsAverage.Float64(),
			DirectoryListings:    req.Metric.DirectoryListings,
		}
		if req.Metric.Date != nil {
			metric.Date = *req.Metric.Date
		}
	}
	view, err := h.Svc.Save(r.Context(), clientID, req.Settings, metric)
	if err != nil {
		fail(w, r, http.StatusInternalServerError, "internal_error", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, view)
}
