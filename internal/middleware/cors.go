// Package middleware provides reusable HTTP middleware for the status listener.
package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// NewCORSHandler lets browser pages on allowedOrigins (CORS_ORIGINS, full
// origins without a trailing slash) call the listener. Browsers only need
// GET for /history and /healthz and POST for /status and /update. Ad-hoc
// posts send a JSON Content-Type, and X-Api-Key must pass the preflight when
// LISTENER_API_KEY is set. Other origins get no CORS headers at all.
func NewCORSHandler(allowedOrigins []string) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "X-Api-Key"},
	})
	return func(next http.Handler) http.Handler {
		return c.Handler(next)
	}
}
