package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

type contextKey string

const docIDKey contextKey = "docID"

// RequestLogger logs incoming requests.
func RequestLogger(log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(sw, r)

			event := log.Info()
			if sw.status >= http.StatusInternalServerError {
				event = log.Error()
			}
			event.
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", sw.status).
				Dur("duration", time.Since(start)).
				Str("request_id", middleware.GetReqID(r.Context())).
				Msg("request")
		})
	}
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// documentIDMiddleware rejects malformed document ids before any handler
// touches the store.
func (s *Server) documentIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		docID := chi.URLParam(r, "docID")
		if err := s.validate.Var(docID, "required,uuid"); err != nil {
			jsonError(w, ErrInvalidParams.Error(), http.StatusBadRequest, fieldErrors("docID", err)...)
			return
		}
		ctx := context.WithValue(r.Context(), docIDKey, docID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func documentID(r *http.Request) string {
	id, _ := r.Context().Value(docIDKey).(string)
	return id
}
