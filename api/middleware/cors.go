package middleware

import (
	"net/http"

	"github.com/go-chi/cors"

	"github.com/adebayof/gromart-backend/pkg/config"
)

var defaultCORSOrigins = []string{
	"http://localhost:3000", // local dev
	"http://localhost:5173",
}

// CORS returns middleware that applies the API's allowed origin policy.
func CORS(cfg config.AppConfig) func(http.Handler) http.Handler {
	origins := defaultCORSOrigins
	if len(cfg.CORSOrigins) > 0 {
		origins = cfg.CORSOrigins
	}
	return cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "Idempotency-Key", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler
}
