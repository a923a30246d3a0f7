package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/seovista/crm-backend/internal/httpx"
	"github.com/seovista/crm-backend/internal/mapper"
	"github.com/seovista/crm-backend/internal/services"
	"github.com/seovista/crm-backend/internal/validation"
)

type KeywordHandler struct {
	DB  *gorm.DB
	Svc *services.KeywordService
}

func NewKeywordHandler(db *gorm.DB, svc *services.KeywordService) *KeywordHandler {
	return &KeywordHandler{DB: db, Svc: svc}
}

// List: GET /keywords?clientId=...
func (h *KeywordHandler) List(w http.ResponseWriter, r *http.Request) {
	kws, err := h.Svc.List(r.Context(), clientFilter(r))
	if err != nil {
		fail(w, r, http.StatusInternalServerError, "internal_error", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, mapper.KeywordsToDomain(kws))
}

// Create: POST /keywords
func (h *KeywordHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in mapper.Keyword
	if !decodeJSON(w, r, &in) {
		return
	}
	v := validation.Violations{}
	validation.Required("keyword", in.Keyword, v)
	if in.ClientID == uuid.Nil {
		v["clientId"] = "required"
	}
	if !v.Empty() {
		fail(w, r, http.StatusBadRequest, "validation_failed", v)
		return
	}
	row := mapper.KeywordToStorage(in)
	created, err := h.Svc.Create(r.Context(), &row)
	if err != nil {
		fail(w, r, http.StatusInternalServerError, "internal_error", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, mapper.KeywordToDomain(*created))
}

// Update: PUT /keywords/{id}
func (h *KeywordHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}
	var in mapper.Keyword
	if !decodeJSON(w, r, &in) {
		return
	}
	in.ID = id
	row := mapper.KeywordToStorage(in)
	updated, err := h.Svc.Update(r.Context(), &row)
	if err != nil {
		fail(w, r, http.StatusInternalServerError, "internal_error", nil)
		return
	}
	if updated == nil {
		fail(w, r, http.StatusNotFound, "not_found", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, mapper.KeywordToDomain(*updated))
}

// Delete: DELETE /keywords/{id}
func (h *KeywordHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

// Import: POST /clients/{id}/keywords/import, multipart with a "file" part
// holding the CSV in whatever charset the ranking tool exported.
func (h *KeywordHandler) Import(w http.ResponseWriter, r *http.Request) {
	clientID, ok := urlID(w, r, "id")
	if !ok {
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		fail(w, r, http.StatusBadRequest, "import_failed", nil)
		return
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		fail(w, r, http.StatusBadRequest, "validation_failed", map[string]string{"file": "required"})
		return
	}
	defer file.Close()
	res, err := h.Svc.ImportCSV(r.Context(), clientID, file)
	if err != nil {
		fail(w, r, http.StatusBadRequest, "import_failed", err.Error())
		return
	}
	httpx.JSON(w, http.StatusOK, res)
}

// Stats: GET /clients/{id}/keywords/stats
func (h *KeywordHandler) Stats(w http.ResponseWriter, r *http.Request) {
	clientID, ok := urlID(w, r, "id")
	if !ok {
		return
	}
	stats, err := h.Svc.Stats(r.Context(), clientID)
	if err != nil {
		fail(w, r, http.StatusInternalServerError, "internal_error", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, stats)
}
