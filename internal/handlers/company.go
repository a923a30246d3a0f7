package handlers

import (
	"errors"
	"net/http"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/seovista/crm-backend/internal/httpx"
	"github.com/seovista/crm-backend/internal/models"
	"github.com/seovista/crm-backend/internal/validation"
)

// CompanyHandler manages the single agency settings row.
type CompanyHandler struct {
	DB *gorm.DB
}

func NewCompanyHandler(db *gorm.DB) *CompanyHandler {
	return &CompanyHandler{DB: db}
}

// Get: GET /company
func (h *CompanyHandler) Get(w http.ResponseWriter, r *http.Request) {
	var company models.CompanySettings
	err := h.DB.First(&company).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		fail(w, r, http.StatusNotFound, "company_not_configured", nil)
		return
	}
	if err != nil {
		fail(w, r, http.StatusInternalServerError, "internal_error", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, company)
}

// Save: PUT /company creates the row on first call, updates it afterwards.
func (h *CompanyHandler) Save(w http.ResponseWriter, r *http.Request) {
	var in models.CompanySettings
	if !decodeJSON(w, r, &in) {
		return
	}
	v := validation.Violations{}
	validation.Required("name", in.Name, v)
	validation.Range("default_tax_rate", in.DefaultTaxRate, decimal.Zero, decimal.NewFromInt(100), v)
	if !v.Empty() {
		fail(w, r, http.StatusBadRequest, "validation_failed", v)
		return
	}
	var existing models.CompanySettings
	err := h.DB.First(&existing).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		in.ID = 0
		if err := h.DB.Create(&in).Error; err != nil {
			fail(w, r, http.StatusInternalServerError, "internal_error", nil)
			return
		}
	case err != nil:
		fail(w, r, http.StatusInternalServerError, "internal_error", nil)
		return
	default:
		in.ID = existing.ID
		in.CreatedAt = existing.CreatedAt
		if err := h.DB.Save(&in).Error; err != nil {
			fail(w, r, http.StatusInternalServerError, "internal_error", nil)
			return
		}
	}
	httpx.JSON(w, http.StatusOK, in)
}
