package handlers

import (
	"net/http"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/seovista/crm-backend/internal/httpx"
	"github.com/seovista/crm-backend/internal/models"
	"github.com/seovista/crm-backend/internal/services"
	"github.com/seovista/crm-backend/internal/validation"
)

type PackHandler struct {
	DB  *gorm.DB
	Svc *services.PackService
}

func NewPackHandler(db *gorm.DB, svc *services.PackService) *PackHandler {
	return &PackHandler{DB: db, Svc: svc}
}

// List: GET /packs?includeInactive=true
func (h *PackHandler) List(w http.ResponseWriter, r *http.Request) {
	includeInactive := r.URL.Query().Get("includeInactive") == "true"
	packs, err := h.Svc.List(r.Context(), includeInactive)
	if err != nil {
		fail(w, r, http.StatusInternalServerError, "internal_error", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, packs)
}

// Get: GET /packs/{id}
func (h *PackHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}
	pack, err := h.Svc.Get(r.Context(), id)
	if err != nil {
		fail(w, r, http.StatusInternalServerError, "internal_error", nil)
		return
	}
	if pack == nil {
		fail(w, r, http.StatusNotFound, "not_found", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, pack)
}

// Create: POST /packs
func (h *PackHandler) Create(w http.ResponseWriter, r *http.Request) {
	var p models.SeoPack
	if !decodeJSON(w, r, &p) {
		return
	}
	v := validation.Violations{}
	validation.Required("name", p.Name, v)
	validation.NonNegative("price", p.Price, v)
	if !v.Empty() {
		fail(w, r, http.StatusBadRequest, "validation_failed", v)
		return
	}
	p.Price = p.Price.Round(2)
	created, err := h.Svc.Create(r.Context(), &p)
	if err != nil {
		fail(w, r, http.StatusInternalServerError, "internal_error", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, created)
}

// Update: PUT /packs/{id}
func (h *PackHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}
	var p models.SeoPack
	if !decodeJSON(w, r, &p) {
		return
	}
	p.ID = id
	v := validation.Violations{}
	validation.Range("price", p.Price, decimal.Zero, decimal.NewFromInt(1_000_000), v)
	if !v.Empty() {
		fail(w, r, http.StatusBadRequest, "validation_failed", v)
		return
	}
	updated, err := h.Svc.Update(r.Context(), &p)
	if err != nil {
		fail(w, r, http.StatusInternalServerError, "internal_error", nil)
		return
	}
	if updated == nil {
		fail(w, r, http.StatusNotFound, "not_found", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, updated)
}

// Delete: DELETE /packs/{id} deactivates, the row stays.
func (h *PackHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}
	if !h.Svc.Deactivate(r.Context(), id) {
		fail(w, r, http.StatusNotFound, "not_found", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deactivated"})
}
