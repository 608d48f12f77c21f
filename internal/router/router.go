// Package router sets up all HTTP routes and middleware chains for the
// link page server: the public landing page, the content API and the
// operational endpoints.
package router

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/klauspost/compress/gzhttp"

	"linkpage/internal/handlers"
	"linkpage/internal/metrics"
	"linkpage/internal/middleware"
)

// Deps holds everything the router wires together.
type Deps struct {
	Content     *handlers.Content
	Public      *handlers.Public
	Gate        middleware.PasswordChecker
	RateLimiter *middleware.RateLimiter
	Metrics     metrics.Recorder
	Static      fs.FS
}

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(d Deps) chi.Router {
	if d.Metrics == nil {
		d.Metrics = metrics.New(false)
	}

	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(chimw.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(metrics.Middleware(d.Metrics))
	r.Use(func(next http.Handler) http.Handler { return gzhttp.GzipHandler(next) })

	r.Get("/health", healthHandler)
	r.Method(http.MethodGet, "/metrics", d.Metrics.Handler())

	if d.Static != nil {
		r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(d.Static))))
	}

	// The content API is mounted twice: /api/content and the short /content.
	contentRoutes := func(r chi.Router) {
		r.Get("/", d.Content.Get)

		r.Group(func(r chi.Router) {
			if d.RateLimiter != nil {
				r.Use(d.RateLimiter.Middleware)
			}
			r.Use(middleware.RequireAdminPassword(d.Gate))
			r.Post("/", d.Content.Post)
			r.Post("/auth", d.Content.Auth)
		})
	}
	r.Route("/api/content", contentRoutes)
	r.Route("/content", contentRoutes)

	r.Get("/", d.Public.Homepage)

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
