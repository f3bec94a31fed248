package httpapi

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// corsMiddleware adds permissive CORS headers to every response and
// short-circuits preflight OPTIONS requests with an OK envelope.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-TIAF-ADMIN-KEY")
		if r.Method == http.MethodOptions {
			writeJSON(w, http.StatusOK, okEnvelope())
			return
		}
		next.ServeHTTP(w, r)
	})
}

// loggingMiddleware logs method, path, and latency for every request,
// mirroring the one-line request logger used throughout this corpus's
// HTTP servers.
func loggingMiddleware(logger *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			logger.WithFields(logrus.Fields{
				"method":  r.Method,
				"path":    r.URL.Path,
				"latency": time.Since(start),
			}).Info("request")
		})
	}
}

// adminAuth gates a handler behind the configured admin key header.
func (s *Server) adminAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-TIAF-ADMIN-KEY") != s.AdminKey || s.AdminKey == "" {
			writeError(w, http.StatusUnauthorized, "invalid or missing admin key")
			return
		}
		next(w, r)
	}
}
