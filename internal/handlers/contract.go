package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/seovista/crm-backend/internal/httpx"
	"github.com/seovista/crm-backend/internal/mapper"
	"github.com/seovista/crm-backend/internal/pdf"
	"github.com/seovista/crm-backend/internal/services"
	"github.com/seovista/crm-backend/internal/validation"
)

type ContractHandler struct {
	DB    *gorm.DB
	Svc   *services.ContractService
	Share *services.ShareService
}

func NewContractHandler(db *gorm.DB, svc *services.ContractService, share *services.ShareService) *ContractHandler {
	return &ContractHandler{DB: db, Svc: svc, Share: share}
}

// List: GET /contracts?clientId=...
func (h *ContractHandler) List(w http.ResponseWriter, r *http.Request) {
	contracts, err := h.Svc.List(r.Context(), clientFilter(r))
	if err != nil {
		fail(w, r, http.StatusInternalServerError, "internal_error", nil)
		return
	}
	out := make([]mapper.Contract, 0, len(contracts))
	for _, c := range contracts {
		out = append(out, mapper.ContractToDomain(c))
	}
	httpx.JSON(w, http.StatusOK, out)
}

// Get: GET /contracts/{id}
func (h *ContractHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}
	c, err := h.Svc.Get(r.Context(), id)
	if err != nil {
		fail(w, r, http.StatusInternalServerError, "internal_error", nil)
		return
	}
	if c == nil {
		fail(w, r, http.StatusNotFound, "not_found", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, mapper.ContractToDomain(*c))
}

// Create: POST /contracts
func (h *ContractHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in mapper.Contract
	if !decodeJSON(w, r, &in) {
		return
	}
	v := validation.Violations{}
	validation.Required("title", in.Title, v)
	validation.NonNegative("setupFee", in.SetupFee, v)
	validation.NonNegative("monthlyFee", in.MonthlyFee, v)
	if in.ClientID == uuid.Nil {
		v["clientId"] = "required"
	}
	if !v.Empty() {
		fail(w, r, http.StatusBadRequest, "validation_failed", v)
		return
	}
	row := mapper.ContractToStorage(in)
	created, err := h.Svc.Create(r.Context(), &row)
	if err != nil {
		fail(w, r, http.StatusInternalServerError, "internal_error", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, mapper.ContractToDomain(*created))
}

// Update: PUT /contracts/{id} replaces the contract and its sections.
func (h *ContractHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}
	var in mapper.Contract
	if !decodeJSON(w, r, &in) {
		return
	}
	in.ID = id
	row := mapper.ContractToStorage(in)
	updated, err := h.Svc.Update(r.Context(), &row)
	if err != nil {
		fail(w, r, http.StatusInternalServerError, "internal_error", nil)
		return
	}
	if updated == nil {
		fail(w, r, http.StatusNotFound, "not_found", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, mapper.ContractToDomain(*updated))
}

// Delete: DELETE /contracts/{id}
func (h *ContractHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

// Sign: POST /contracts/{id}/sign with {"party": "client"|"professional"}
func (h *ContractHandler) Sign(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}
	var req struct {
		Party string `json:"party"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	v := validation.Violations{}
	validation.OneOf("party", req.Party, []string{"client", "professional"}, v)
	if !v.Empty() {
		fail(w, r, http.StatusBadRequest, "validation_failed", v)
		return
	}
	c, err := h.Svc.Sign(r.Context(), id, req.Party)
	if err != nil {
		fail(w, r, http.StatusInternalServerError, "internal_error", nil)
		return
	}
	if c == nil {
		fail(w, r, http.StatusNotFound, "not_found", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, mapper.ContractToDomain(*c))
}

// PDF: GET /contracts/{id}/pdf
func (h *ContractHandler) PDF(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}
	c, err := h.Svc.Get(r.Context(), id)
	if err != nil {
		fail(w, r, http.StatusInternalServerError, "internal_error", nil)
		return
	}
	if c == nil {
		fail(w, r, http.StatusNotFound, "not_found", nil)
		return
	}
	client, company, ok := documentParties(r.Context(), h.DB, w, r, c.ClientID)
	if !ok {
		return
	}
	data, err := pdf.Contract(pdf.ContractData{
		Contract: mapper.ContractToDomain(*c),
		Client:   client,
		Company:  company,
	})
	if err != nil {
		fail(w, r, http.StatusInternalServerError, "pdf_generation_failed", nil)
		return
	}
	servePDF(w, "Contrato_"+c.ID.String()+".pdf", data)
}

// ShareLink: POST /contracts/{id}/share
func (h *ContractHandler) ShareLink(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}
	url, err := h.Share.CreateContractShareLink(r.Context(), id)
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
