// Package handlers is the HTTP edge: decode, validate, call a service,
// translate the outcome. No business rules live here.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/seovista/crm-backend/internal/httpx"
	"github.com/seovista/crm-backend/internal/i18n"
)

// lang picks the response language from the Accept-Language header.
func lang(r *http.Request) string {
	return i18n.DetectLanguage(r.Header.Get("Accept-Language"))
}

// fail writes the standard error envelope: machine code plus translated
// message.
func fail(w http.ResponseWriter, r *http.Request, status int, code string, details any) {
	httpx.JSONError(w, status, code, i18n.T(lang(r), code), details)
}

// urlID parses the {id} route parameter. A malformed id answers 400 and
// returns false.
func urlID(w http.ResponseWriter, r *http.Request, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, param))
	if err != nil {
		fail(w, r, http.StatusBadRequest, "invalid_id", nil)
		return uuid.Nil, false
	}
	return id, true
}

// decodeJSON answers 400 on a malformed body and returns false.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		fail(w, r, http.StatusBadRequest, "invalid_json", nil)
		return false
	}
	return true
}

// clientFilter reads the optional clientId query parameter.
func clientFilter(r *http.Request) *uuid.UUID {
	v := r.URL.Query().Get("clientId")
	if v == "" {
		return nil
	}
	id, err := uuid.Parse(v)
	if err != nil {
		return nil
	}
	return &id
}
