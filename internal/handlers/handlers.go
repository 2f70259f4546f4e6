package handlers

import (
	"Scribz/internal/config"
	"Scribz/internal/middleware"
	"Scribz/internal/service"
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Pinger проверяет доступность хранилища для /healthz.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	Router   chi.Router
	Registry *prometheus.Registry
}

// NewHandler разводящий для хендлеров
func NewHandler(
	userService *service.UserService,
	noteService *service.NoteService,
	logger *zap.SugaredLogger,
	config *config.Config,
	pinger Pinger,
) *Handler {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := middleware.NewMetrics(reg)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(middleware.WithLogging)
	r.Use(metrics.Middleware)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	})

	// Handlers
	userHandler := NewUserHandler(userService, logger)
	noteHandler := NewNoteHandler(noteService, logger)
	health := &healthHandler{pinger: pinger, env: config.AppEnv, logger: logger}
	auth := middleware.WithAuth(userService)

	// метрики без gzip: promhttp сжимает сам
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	r.Get("/healthz", health.ServeHTTP)

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.WithGzip)

		// Auth routes
		r.Post("/auth/signup", userHandler.Signup)
		r.Post("/auth/login", userHandler.Login)
		r.With(auth).Get("/auth/me", userHandler.Me)

		// Note routes
		r.Route("/notes", func(r chi.Router) {
			r.Use(auth)
			r.Get("/", noteHandler.List)
			r.Post("/", noteHandler.Create)
			r.Get("/{id}", noteHandler.Get)
			r.Put("/{id}", noteHandler.Update)
			r.Patch("/{id}/favorite", noteHandler.ToggleFavorite)
			r.Patch("/{id}/trash", noteHandler.ToggleTrash)
			r.Delete("/{id}", noteHandler.Delete)
		})
	})

	return &Handler{Router: r, Registry: reg}
}

type healthHandler struct {
	pinger Pinger
	env    string
	logger *zap.SugaredLogger
}

func (h *healthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.pinger != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.pinger.Ping(ctx); err != nil {
			h.logger.Warnw("healthz: store unreachable", "error", err)
			render.Status(r, http.StatusServiceUnavailable)
			render.JSON(w, r, map[string]string{"status": "unavailable"})
			return
		}
	}
	render.JSON(w, r, map[string]string{"status": "ok", "env": h.env})
}
