package handlers

import (
	"io"
	"net/http"

	"gorm.io/gorm"

	"github.com/seovista/crm-backend/internal/httpx"
	"github.com/seovista/crm-backend/internal/mapper"
	"github.com/seovista/crm-backend/internal/services"
)

// maxUploadBytes caps document uploads at 20 MiB.
const maxUploadBytes = 20 << 20

type DocumentHandler struct {
	DB  *gorm.DB
	Svc *services.DocumentService
}

func NewDocumentHandler(db *gorm.DB, svc *services.DocumentService) *DocumentHandler {
	return &DocumentHandler{DB: db, Svc: svc}
}

// Upload: POST /clients/{id}/documents, multipart with a "file" part.
func (h *DocumentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	clientID, ok := urlID(w, r, "id")
	if !ok {
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		fail(w, r, http.StatusBadRequest, "upload_failed", nil)
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		fail(w, r, http.StatusBadRequest, "validation_failed", map[string]string{"file": "required"})
		return
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		fail(w, r, http.StatusBadRequest, "upload_failed", nil)
		return
	}
	doc, err := h.Svc.Upload(r.Context(), clientID, header.Filename, header.Header.Get("Content-Type"), data)
	if err != nil {
		fail(w, r, http.StatusInternalServerError, "upload_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, mapper.DocumentToDomain(*doc))
}

// List: GET /documents?clientId=...
func (h *DocumentHandler) List(w http.ResponseWriter, r *http.Request) {
	docs, err := h.Svc.List(r.Context(), clientFilter(r))
	if err != nil {
		fail(w, r, http.StatusInternalServerError, "internal_error", nil)
		return
	}
	out := make([]mapper.ClientDocument, 0, len(docs))
	for _, d := range docs {
		out = append(out, mapper.DocumentToDomain(d))
	}
	httpx.JSON(w, http.StatusOK, out)
}

// Get: GET /documents/{id}
func (h *DocumentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}
	doc, err := h.Svc.Get(r.Context(), id)
	if err != nil {
		fail(w, r, http.StatusInternalServerError, "internal_error", nil)
		return
	}
	if doc == nil {
		fail(w, r, http.StatusNotFound, "not_found", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, mapper.DocumentToDomain(*doc))
}

// SetAnalysis: PUT /documents/{id}/analysis
func (h *DocumentHandler) SetAnalysis(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}
	var req struct {
		Status  string `json:"status"`
		Content string `json:"content"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	doc, err := h.Svc.SetAnalysis(r.Context(), id, req.Status, req.Content)
	if err != nil {
		fail(w, r, http.StatusBadRequest, "validation_failed", map[string]string{"status": "invalid_value"})
		return
	}
	if doc == nil {
		fail(w, r, http.StatusNotFound, "not_found", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, mapper.DocumentToDomain(*doc))
}

// Delete: DELETE /documents/{id}
func (h *DocumentHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
