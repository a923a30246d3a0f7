package handlers

import (
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/seovista/crm-backend/internal/httpx"
	"github.com/seovista/crm-backend/internal/mapper"
	"github.com/seovista/crm-backend/internal/models"
	"github.com/seovista/crm-backend/internal/pdf"
	"github.com/seovista/crm-backend/internal/services"
)

type DashboardHandler struct {
	DB       *gorm.DB
	Svc      *services.DashboardService
	Keywords *services.KeywordService
}

func NewDashboardHandler(db *gorm.DB, svc *services.DashboardService, keywords *services.KeywordService) *DashboardHandler {
	return &DashboardHandler{DB: db, Svc: svc, Keywords: keywords}
}

// Get: GET /clients/{id}/dashboard. Always answers 200; failed sources are
// served as empty defaults.
func (h *DashboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	clientID, ok := urlID(w, r, "id")
	if !ok {
		return
	}
	httpx.JSON(w, http.StatusOK, h.Svc.Load(r.Context(), clientID))
}

// Report: GET /clients/{id}/report renders the monthly progress PDF.
func (h *DashboardHandler) Report(w http.ResponseWriter, r *http.Request) {
	clientID, ok := urlID(w, r, "id")
	if !ok {
		return
	}
	client, company, ok := documentParties(r.Context(), h.DB, w, r, clientID)
	if !ok {
		return
	}
	kws, err := h.Keywords.List(r.Context(), &clientID)
	if err != nil {
		fail(w, r, http.StatusInternalServerError, "internal_error", nil)
		return
	}
	var rows []models.SeoMetric
	if err := h.DB.WithContext(r.Context()).Where("client_id = ?", clientID).Order("date desc").Limit(12).Find(&rows).Error; err != nil {
		fail(w, r, http.StatusInternalServerError, "internal_error", nil)
		return
	}
	metrics := make([]pdf.ReportMetric, 0, len(rows))
	for _, m := range rows {
		metrics = append(metrics, pdf.ReportMetric{
			Date:            m.Date,
			OrganicTraffic:  m.OrganicTraffic,
			KeywordsTop10:   m.KeywordsTop10,
			DomainAuthority: m.DomainAuthority,
		})
	}
	data, err := pdf.Report(pdf.ReportData{
		Client:   client,
		Company:  company,
		Period:   pdf.MonthYear(time.Now()),
		Keywords: mapper.KeywordsToDomain(kws),
		Metrics:  metrics,
	})
	if err != nil {
		fail(w, r, http.StatusInternalServerError, "pdf_generation_failed", nil)
		return
	}
	servePDF(w, "Informe_SEO.pdf", data)
}
