package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	chathandler "github.com/youthmindhub/backend/internal/handler/chat"
	mailhandler "github.com/youthmindhub/backend/internal/handler/mail"
)

// NewRouter wires HTTP routes to the gateway handlers.
func NewRouter(mailHandler *mailhandler.Handler, chatHandler *chathandler.Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	}))

	// Both endpoints are POST-only; anything else gets the plain 405.
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
	})

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	mailHandler.RegisterRoutes(r)
	chatHandler.RegisterRoutes(r)

	return r
}
