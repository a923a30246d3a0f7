package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/seovista/crm-backend/internal/httpx"
	"github.com/seovista/crm-backend/internal/mapper"
	"github.com/seovista/crm-backend/internal/models"
	"github.com/seovista/crm-backend/internal/pdf"
	"github.com/seovista/crm-backend/internal/services"
)

type InvoiceHandler struct {
	DB    *gorm.DB
	Svc   *services.InvoiceService
	Share *services.ShareService
}

func NewInvoiceHandler(db *gorm.DB, svc *services.InvoiceService, share *services.ShareService) *InvoiceHandler {
	return &InvoiceHandler{DB: db, Svc: svc, Share: share}
}

// List: GET /invoices?clientId=...
func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	invs, err := h.Svc.List(r.Context(), clientFilter(r))
	if err != nil {
		fail(w, r, http.StatusInternalServerError, "failed_to_list_invoices", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, mapper.InvoicesToDomain(invs))
}

// Get: GET /invoices/{id}
func (h *InvoiceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}
	inv, err := h.Svc.Get(r.Context(), id)
	if err != nil {
		fail(w, r, http.StatusInternalServerError, "internal_error", nil)
		return
	}
	if inv == nil {
		fail(w, r, http.StatusNotFound, "not_found", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, mapper.InvoiceToDomain(*inv))
}

type invoiceReq struct {
	ClientID   uuid.UUID        `json:"clientId"`
	PackID     *uuid.UUID       `json:"packId"`
	ProposalID *uuid.UUID       `json:"proposalId"`
	BaseAmount decimal.Decimal  `json:"baseAmount"`
	TaxRate    *decimal.Decimal `json:"taxRate"`
	Status     string           `json:"status"`
	IssueDate  *time.Time       `json:"issueDate"`
	DueDate    *time.Time       `json:"dueDate"`
	Notes      string           `json:"notes"`
}

// Create: POST /invoices
func (h *InvoiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req invoiceReq
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.ClientID == uuid.Nil {
		fail(w, r, http.StatusBadRequest, "validation_failed", map[string]string{"clientId": "required"})
		return
	}
	inv, err := h.Svc.Create(r.Context(), services.InvoiceInput{
		ClientID:   req.ClientID,
		PackID:     req.PackID,
		ProposalID: req.ProposalID,
		BaseAmount: req.BaseAmount,
		TaxRate:    req.TaxRate,
		Status:     req.Status,
		IssueDate:  req.IssueDate,
		DueDate:    req.DueDate,
		Notes:      req.Notes,
	})
	if err != nil {
		fail(w, r, http.StatusBadRequest, "failed_to_create_invoice", err.Error())
		return
	}
	httpx.JSON(w, http.StatusCreated, mapper.InvoiceToDomain(*inv))
}

// Update: PUT /invoices/{id} takes the full domain shape; amounts are
// re-derived and the number is kept server-side.
func (h *InvoiceHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}
	var in mapper.Invoice
	if !decodeJSON(w, r, &in) {
		return
	}
	in.ID = id
	row := mapper.InvoiceToStorage(in)
	updated, err := h.Svc.Update(r.Context(), &row)
	if err != nil {
		fail(w, r, http.StatusInternalServerError, "failed_to_update_invoice", nil)
		return
	}
	if updated == nil {
		fail(w, r, http.StatusNotFound, "not_found", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, mapper.InvoiceToDomain(*updated))
}

// ChangeStatus: POST /invoices/{id}/status
func (h *InvoiceHandler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}
	var req struct {
		Status string `json:"status"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	inv, err := h.Svc.ChangeStatus(r.Context(), id, req.Status)
	if errors.Is(err, services.ErrInvalidTransition) {
		fail(w, r, http.StatusConflict, "invalid_status_change", err.Error())
		return
	}
	if err != nil {
		fail(w, r, http.StatusInternalServerError, "failed_to_update_invoice", nil)
		return
	}
	if inv == nil {
		fail(w, r, http.StatusNotFound, "not_found", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, mapper.InvoiceToDomain(*inv))
}

// Delete: DELETE /invoices/{id}
func (h *InvoiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

// PDF: GET /invoices/{id}/pdf
func (h *InvoiceHandler) PDF(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}
	inv, err := h.Svc.Get(r.Context(), id)
	if err != nil {
		fail(w, r, http.StatusInternalServerError, "internal_error", nil)
		return
	}
	if inv == nil {
		fail(w, r, http.StatusNotFound, "not_found", nil)
		return
	}
	client, company, ok := documentParties(r.Context(), h.DB, w, r, inv.ClientID)
	if !ok {
		return
	}
	data, err := pdf.Invoice(pdf.InvoiceData{
		Invoice: mapper.InvoiceToDomain(*inv),
		Concept: h.invoiceConcept(r, inv),
		Client:  client,
		Company: company,
	})
	if err != nil {
		fail(w, r, http.StatusInternalServerError, "pdf_generation_failed", nil)
		return
	}
	servePDF(w, "Factura_"+inv.InvoiceNumber+".pdf", data)
}

// invoiceConcept resolves the line description: pack name, then proposal
// title, then the rendering default.
func (h *InvoiceHandler) invoiceConcept(r *http.Request, inv *models.Invoice) string {
	if inv.PackID != nil {
		var pack models.SeoPack
		if err := h.DB.WithContext(r.Context()).First(&pack, "id = ?", *inv.PackID).Error; err == nil {
			return pack.Name
		}
	}
	if inv.ProposalID != nil {
		var prop models.Proposal
		if err := h.DB.WithContext(r.Context()).First(&prop, "id = ?", *inv.ProposalID).Error; err == nil {
			return prop.Title
		}
	}
	return ""
}

// ShareLink: POST /invoices/{id}/share
func (h *InvoiceHandler) ShareLink(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}
	url, err := h.Share.CreateInvoiceShareLink(r.Context(), id)
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

// FromProposal: POST /proposals/{id}/convert
func (h *InvoiceHandler) FromProposal(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}
	inv, err := h.Svc.CreateFromProposal(r.Context(), id)
	if errors.Is(err, services.ErrProposalInvoiced) {
		fail(w, r, http.StatusConflict, "proposal_already_invoiced", nil)
		return
	}
	if err != nil {
		fail(w, r, http.StatusBadRequest, "failed_to_create_invoice", err.Error())
		return
	}
	if inv == nil {
		fail(w, r, http.StatusNotFound, "not_found", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, mapper.InvoiceToDomain(*inv))
}
