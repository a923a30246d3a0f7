package handlers

import (
	"net/http"

	"gorm.io/gorm"

	"github.com/seovista/crm-backend/internal/httpx"
	"github.com/seovista/crm-backend/internal/models"
	"github.com/seovista/crm-backend/internal/services"
	"github.com/seovista/crm-backend/internal/validation"
)

type ClientHandler struct {
	DB  *gorm.DB
	Svc *services.ClientService
}

func NewClientHandler(db *gorm.DB, svc *services.ClientService) *ClientHandler {
	return &ClientHandler{DB: db, Svc: svc}
}

// List: GET /clients
func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	clients, err := h.Svc.List(r.Context())
	if err != nil {
		fail(w, r, http.StatusInternalServerError, "internal_error", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, clients)
}

// Get: GET /clients/{id}
func (h *ClientHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}
	client, err := h.Svc.Get(r.Context(), id)
	if err != nil {
		fail(w, r, http.StatusInternalServerError, "internal_error", nil)
		return
	}
	if client == nil {
		fail(w, r, http.StatusNotFound, "not_found", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, client)
}

// Create: POST /clients
func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var c models.Client
	if !decodeJSON(w, r, &c) {
		return
	}
	v := validation.Violations{}
	validation.Required("name", c.Name, v)
	if !v.Empty() {
		fail(w, r, http.StatusBadRequest, "validation_failed", v)
		return
	}
	created, err := h.Svc.Create(r.Context(), &c)
	if err != nil {
		fail(w, r, http.StatusInternalServerError, "internal_error", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, created)
}

// Update: PUT /clients/{id}
func (h *ClientHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}
	var c models.Client
	if !decodeJSON(w, r, &c) {
		return
	}
	c.ID = id
	updated, err := h.Svc.Update(r.Context(), &c)
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

// Delete: DELETE /clients/{id}
func (h *ClientHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
