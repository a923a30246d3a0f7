package server

import (
	"net/http"
	"runtime/debug"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/seovista/crm-backend/internal/httpx"
	"github.com/seovista/crm-backend/internal/logging"
)

// requestLogger emits one structured line per request once the response is
// written.
func requestLogger(next http.Handler) http.Handler {
	log := logging.Service("http")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		log.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   ww.Status(),
			"bytes":    ww.BytesWritten(),
			"duration": time.Since(start).String(),
		}).Info("request")
	})
}

// recoverer converts panics into 500 responses instead of dropping the
// connection.
func recoverer(next http.Handler) http.Handler {
	log := logging.Service("http")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.WithFields(logrus.Fields{
					"panic": rec,
					"stack": string(debug.Stack()),
					"path":  r.URL.Path,
				}).Error("panic recovered")
				httpx.JSONError(w, http.StatusInternalServerError, "internal_error", "", nil)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
