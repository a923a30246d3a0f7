package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/seovista/crm-backend/internal/models"
	"github.com/seovista/crm-backend/internal/pdf"
)

// documentParties loads the two identity blocks every rendered document
// carries. A missing company row answers 400; a missing client 404.
func documentParties(ctx context.Context, db *gorm.DB, w http.ResponseWriter, r *http.Request, clientID uuid.UUID) (client, company pdf.Party, ok bool) {
	var cs models.CompanySettings
	err := db.WithContext(ctx).First(&cs).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		fail(w, r, http.StatusBadRequest, "company_not_configured", nil)
		return pdf.Party{}, pdf.Party{}, false
	}
	if err != nil {
		fail(w, r, http.StatusInternalServerError, "internal_error", nil)
		return pdf.Party{}, pdf.Party{}, false
	}
	var c models.Client
	if err := db.WithContext(ctx).First(&c, "id = ?", clientID).Error; err != nil {
		fail(w, r, http.StatusNotFound, "not_found", nil)
		return pdf.Party{}, pdf.Party{}, false
	}
	return partyFromClient(c), partyFromCompany(cs), true
}

func partyFromClient(c models.Client) pdf.Party {
	name := c.Company
	if name == "" {
		name = c.Name
	}
	return pdf.Party{
		Name:  name,
		City:  c.City,
		Email: c.Email,
		Phone: c.Phone,
	}
}

func partyFromCompany(cs models.CompanySettings) pdf.Party {
	city := cs.City
	if cs.PostalCode != "" {
		city = cs.PostalCode + " " + cs.City
	}
	return pdf.Party{
		Name:    cs.Name,
		TaxID:   cs.TaxID,
		Address: cs.Address,
		City:    city,
		Email:   cs.Email,
		Phone:   cs.Phone,
	}
}

func servePDF(w http.ResponseWriter, filename string, data []byte) {
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
