package httpapi

import (
	"net/http"
	"net/http/pprof"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"civicfund-go/internal/notify"
	"civicfund-go/internal/repositories"
	"civicfund-go/internal/services/funding"
	"civicfund-go/internal/services/listing"
	"civicfund-go/internal/services/story"
)

type Deps struct {
	Catalog repositories.ProjectRepository
	Listing *listing.Service
	Funding *funding.Service
	Story   *story.Service
	Hub     *notify.Hub
	Origins []string
}

type Handler struct {
	catalog repositories.ProjectRepository
	listing *listing.Service
	funding *funding.Service
	story   *story.Service
	hub     *notify.Hub
	origins []string
}

func NewHandler(deps Deps) *Handler {
	origins := deps.Origins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return &Handler{
		catalog: deps.Catalog,
		listing: deps.Listing,
		funding: deps.Funding,
		story:   deps.Story,
		hub:     deps.Hub,
		origins: origins,
	}
}

func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger)
	r.Use(recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: h.origins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	}))

	r.Get("/health", h.handleHealth)
	r.Get("/projects", h.handleProjectsHTML)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/generate-story", h.handleGenerateStory)

		r.Get("/projects", h.handleListProjects)
		r.Get("/projects/{id}", h.handleGetProject)
		r.Post("/projects/{id}/actions", h.handleProjectAction)
		r.Post("/proposals", h.handlePropose)
		r.Get("/wallets/{address}", h.handleWallet)

		r.Get("/notifications", h.handleListNotifications)
		r.Delete("/notifications/{id}", h.handleDismissNotification)
	})

	r.Route("/debug/pprof", func(r chi.Router) {
		r.Get("/", pprof.Index)
		r.Get("/cmdline", pprof.Cmdline)
		r.Get("/profile", pprof.Profile)
		r.Get("/symbol", pprof.Symbol)
		r.Post("/symbol", pprof.Symbol)
		r.Get("/trace", pprof.Trace)
		r.Get("/allocs", pprof.Handler("allocs").ServeHTTP)
		r.Get("/block", pprof.Handler("block").ServeHTTP)
		r.Get("/goroutine", pprof.Handler("goroutine").ServeHTTP)
		r.Get("/heap", pprof.Handler("heap").ServeHTTP)
		r.Get("/mutex", pprof.Handler("mutex").ServeHTTP)
		r.Get("/threadcreate", pprof.Handler("threadcreate").ServeHTTP)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, envelope{Error: &apiError{Message: "route not found", Status: http.StatusNotFound}})
	})
	return r
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "status": "healthy"})
}
