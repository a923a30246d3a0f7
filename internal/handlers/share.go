package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/seovista/crm-backend/internal/httpx"
	"github.com/seovista/crm-backend/internal/services"
)

// ShareHandler serves the unauthenticated token views. Everything here is
// reachable without a session, so responses never include more than the
// share view shapes.
type ShareHandler struct {
	Svc *services.ShareService
}

func NewShareHandler(svc *services.ShareService) *ShareHandler {
	return &ShareHandler{Svc: svc}
}

// Invoice: GET /invoices/share/{token}
func (h *ShareHandler) Invoice(w http.ResponseWriter, r *http.Request) {
	view, err := h.Svc.ResolveInvoiceToken(r.Context(), chi.URLParam(r, "token"))
	if err != nil {
		fail(w, r, http.StatusInternalServerError, "internal_error", nil)
		return
	}
	if view == nil {
		fail(w, r, http.StatusNotFound, "not_found", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, view)
}

// Proposal: GET /proposals/share/{token}. Expired links answer 410 so the
// frontend can show the dedicated message.
func (h *ShareHandler) Proposal(w http.ResponseWriter, r *http.Request) {
	view, err := h.Svc.ResolveProposalToken(r.Context(), chi.URLParam(r, "token"))
	if errors.Is(err, services.ErrShareExpired) {
		fail(w, r, http.StatusGone, "share_link_expired", nil)
		return
	}
	if err != nil {
		fail(w, r, http.StatusInternalServerError, "internal_error", nil)
		return
	}
	if view == nil {
		fail(w, r, http.StatusNotFound, "not_found", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, view)
}

// Contract: GET /contracts/share/{token}
func (h *ShareHandler) Contract(w http.ResponseWriter, r *http.Request) {
	view, err := h.Svc.ResolveContractToken(r.Context(), chi.URLParam(r, "token"))
	if err != nil {
		fail(w, r, http.StatusInternalServerError, "internal_error", nil)
		return
	}
	if view == nil {
		fail(w, r, http.StatusNotFound, "not_found", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, view)
}
