package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/quangxuan98765/data-processing-api/internal/infrastructure/http/handlers"
	"github.com/quangxuan98765/data-processing-api/internal/infrastructure/http/middleware"
)

type RouterConfig struct {
	AuthHandler      *handlers.AuthHandler
	HealthHandler    *handlers.HealthHandler
	UsersHandler     *handlers.UsersHandler
	RevenueHandler   *handlers.RecordsHandler
	ExpenseHandler   *handlers.RecordsHandler
	SpeedTestHandler *handlers.SpeedTestHandler
	RequireJWT       func(http.Handler) http.Handler
	Log              zerolog.Logger
	Secure           func(http.Handler) http.Handler
	IPRateLimit      func(http.Handler) http.Handler // general API limit
	LoginRateLimit   func(http.Handler) http.Handler // tighter limit on credential endpoints
	APIVersion       string
	Metrics          bool // expose /metrics
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(chimid.RequestID)
	r.Use(chimid.RealIP)
	r.Use(loggerMiddleware(cfg.Log))
	r.Use(chimid.Recoverer)
	if cfg.Metrics {
		r.Use(middleware.PrometheusMiddleware)
	}
	if cfg.Secure != nil {
		r.Use(cfg.Secure)
	}
	if cfg.APIVersion != "" {
		r.Use(middleware.APIVersion(cfg.APIVersion))
	}
	r.Use(chimid.AllowContentType("application/json"))
	if cfg.IPRateLimit != nil {
		r.Use(cfg.IPRateLimit)
	}

	if cfg.HealthHandler != nil {
		r.Get("/health", cfg.HealthHandler.ServeHTTP)
	} else {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"status":"ok"}`))
		})
	}
	if cfg.Metrics {
		r.Handle("/metrics", promhttp.Handler())
	}

	r.Route("/auth", func(r chi.Router) {
		// Credential endpoints sit behind the tighter per-IP limit.
		r.Group(func(r chi.Router) {
			if cfg.LoginRateLimit != nil {
				r.Use(cfg.LoginRateLimit)
			}
			r.Post("/register", cfg.AuthHandler.Register)
			r.Post("/login", cfg.AuthHandler.Login)
		})
		r.Post("/validate", cfg.AuthHandler.Validate)
		// Logout and password change act on the authenticated session.
		r.Group(func(r chi.Router) {
			r.Use(cfg.RequireJWT)
			r.Post("/logout", cfg.AuthHandler.Logout)
			r.Post("/change-password", cfg.AuthHandler.ChangePassword)
		})
	})

	if cfg.UsersHandler != nil {
		r.Route("/users", func(r chi.Router) {
			r.Use(cfg.RequireJWT)
			r.Get("/me", cfg.UsersHandler.Me)
		})
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(cfg.RequireJWT)
		if cfg.RevenueHandler != nil {
			r.Route("/revenues", recordRoutes(cfg.RevenueHandler))
		}
		if cfg.ExpenseHandler != nil {
			r.Route("/expenses", recordRoutes(cfg.ExpenseHandler))
		}
		if cfg.SpeedTestHandler != nil {
			r.Route("/speedtests", func(r chi.Router) {
				r.Get("/", cfg.SpeedTestHandler.List)
				r.Post("/", cfg.SpeedTestHandler.Create)
				r.Get("/{id}", cfg.SpeedTestHandler.Get)
				r.Put("/{id}", cfg.SpeedTestHandler.Update)
				r.Delete("/{id}", cfg.SpeedTestHandler.Delete)
			})
		}
	})

	return r
}

func recordRoutes(h *handlers.RecordsHandler) func(chi.Router) {
	return func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Post("/import", h.Import)
		r.Get("/sources", h.Sources)
		r.Get("/{id}", h.Get)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	}
}

func loggerMiddleware(log zerolog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := chimid.GetReqID(r.Context())
			log.Info().
				Str("request_id", reqID).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Msg("request")
			next.ServeHTTP(w, r)
		})
	}
}
