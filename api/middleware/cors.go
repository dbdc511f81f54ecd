package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// The landing page is served from this process in production, but local dev
// serves it from a separate static server.
var defaultCORSOrigins = []string{
	"http://localhost:3000",
	"http://localhost:5500",
	"https://maritalgrace.onrender.com",
}

// CORS returns middleware that applies the site's allowed origin policy.
func CORS() func(http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins:   defaultCORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Idempotency-Key", "X-Requested-With"},
		AllowCredentials: false,
		MaxAge:           300,
	}).Handler
}
