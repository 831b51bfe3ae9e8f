package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORSOptions allowed origins of the browser clients
type CORSOptions struct {
	AllowedOrigins []string
	MaxAge         int // seconds
}

// CORS handles preflight requests and sets the CORS headers
func CORS(opts CORSOptions) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPatch,
			http.MethodOptions,
		},
		AllowedHeaders:   []string{"Accept", "Content-Type", RequestIDHeader},
		ExposedHeaders:   []string{RequestIDHeader},
		AllowCredentials: false,
		MaxAge:           opts.MaxAge,
	})
}
