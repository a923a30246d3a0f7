package handlers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/seovista/crm-backend/internal/httpx"
	"github.com/seovista/crm-backend/internal/mapper"
	"github.com/seovista/crm-backend/internal/models"
	"github.com/seovista/crm-backend/internal/pdf"
	"github.com/seovista/crm-backend/internal/services"
	"github.com/seovista/crm-backend/internal/validation"
)

type ProposalHandler struct {
	DB    *gorm.DB
	Svc   *services.ProposalService
	Share *services.ShareService
}

func NewProposalHandler(db *gorm.DB, svc *services.ProposalService, share *services.ShareService) *ProposalHandler {
	return &ProposalHandler{DB: db, Svc: svc, Share: share}
}

// List: GET /proposals?clientId=...
func (h *ProposalHandler) List(w http.ResponseWriter, r *http.Request) {
	props, err := h.Svc.List(r.Context(), clientFilter(r))
	if err != nil {
		fail(w, r, http.StatusInternalServerError, "internal_error", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, mapper.ProposalsToDomain(props))
}

// Get: GET /proposals/{id}
func (h *ProposalHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}
	p, err := h.Svc.Get(r.Context(), id)
	if err != nil {
		fail(w, r, http.StatusInternalServerError, "internal_error", nil)
		return
	}
	if p == nil {
		fail(w, r, http.StatusNotFound, "not_found", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, mapper.ProposalToDomain(*p))
}

// Create: POST /proposals
func (h *ProposalHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in mapper.Proposal
	if !decodeJSON(w, r, &in) {
		return
	}
	v := validation.Violations{}
	validation.Required("title", in.Title, v)
	if in.ClientID == uuid.Nil {
		v["clientId"] = "required"
	}
	if !v.Empty() {
		fail(w, r, http.StatusBadRequest, "validation_failed", v)
		return
	}
	row := mapper.ProposalToStorage(in)
	created, err := h.Svc.Create(r.Context(), &row)
	if err != nil {
		fail(w, r, http.StatusInternalServerError, "internal_error", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, mapper.ProposalToDomain(*created))
}

// Update: PUT /proposals/{id}
func (h *ProposalHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}
	var in mapper.Proposal
	if !decodeJSON(w, r, &in) {
		return
	}
	in.ID = id
	row := mapper.ProposalToStorage(in)
	updated, err := h.Svc.Update(r.Context(), &row)
	if err != nil {
		fail(w, r, http.StatusInternalServerError, "internal_error", nil)
		return
	}
	if updated == nil {
		fail(w, r, http.StatusNotFound, "not_found", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, mapper.ProposalToDomain(*updated))
}

// Delete: DELETE /proposals/{id}
func (h *ProposalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}
	if !h.Svc.Delete(r.Context(), id) {
		fail(w, r, http.StatusNotFound, "not_found", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Send: POST /proposals/{id}/send
func (h *ProposalHandler) Send(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}
	p, err := h.Svc.Send(r.Context(), id)
	if err != nil {
		fail(w, r, http.StatusInternalServerError, "internal_error", nil)
		return
	}
	if p == nil {
		fail(w, r, http.StatusNotFound, "not_found", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, mapper.ProposalToDomain(*p))
}

// GenerateContent: POST /proposals/{id}/content
func (h *ProposalHandler) GenerateContent(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}
	p, err := h.Svc.GenerateContent(r.Context(), id)
	if err != nil {
		fail(w, r, http.StatusInternalServerError, "ai_content_unavailable", nil)
		return
	}
	if p == nil {
		fail(w, r, http.StatusNotFound, "not_found", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, mapper.ProposalToDomain(*p))
}

// ShareLink: POST /proposals/{id}/share
func (h *ProposalHandler) ShareLink(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}
	url, err := h.Share.CreateProposalShareLink(r.Context(), id)
	if err != nil {
		fail(w, r, http.StatusInternalServerError, "share_link_failed", nil)
		return
	}
	if url == "" {
		fail(w, r, http.StatusNotFound, "not_found", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]string{"url": url})
}

// PDF: GET /proposals/{id}/pdf
func (h *ProposalHandler) PDF(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}
	p, err := h.Svc.Get(r.Context(), id)
	if err != nil {
		fail(w, r, http.StatusInternalServerError, "internal_error", nil)
		return
	}
	if p == nil {
		fail(w, r, http.StatusNotFound, "not_found", nil)
		return
	}
	client, company, ok := documentParties(r.Context(), h.DB, w, r, p.ClientID)
	if !ok {
		return
	}
	price, features := h.resolveOffer(r, p)
	data, err := pdf.Proposal(pdf.ProposalData{
		Proposal: mapper.ProposalToDomain(*p),
		Price:    price,
		Features: features,
		Client:   client,
		Company:  company,
	})
	if err != nil {
		fail(w, r, http.StatusInternalServerError, "pdf_generation_failed", nil)
		return
	}
	servePDF(w, "Propuesta_"+p.ID.String()+".pdf", data)
}

// resolveOffer applies the pricing rule used when converting to an invoice:
// the custom price wins over the pack price. Features come from the custom
// list when set, otherwise from the pack.
func (h *ProposalHandler) resolveOffer(r *http.Request, p *models.Proposal) (decimal.Decimal, []string) {
	price := decimal.Zero
	features := splitFeatures(p.CustomFeatures)
	if p.CustomPrice != nil {
		price = *p.CustomPrice
	}
	if p.PackID != nil {
		var pack models.SeoPack
		if err := h.DB.WithContext(r.Context()).First(&pack, "id = ?", *p.PackID).Error; err == nil {
			if p.CustomPrice == nil {
				price = pack.Price
			}
			if len(features) == 0 {
				features = splitFeatures(pack.Features)
			}
		}
	}
	return price, features
}

func splitFeatures(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}
