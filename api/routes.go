package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/garnizeh/talentdesk/internal/config"
	"github.com/garnizeh/talentdesk/internal/metrics"
	"github.com/garnizeh/talentdesk/internal/portal"
	"github.com/garnizeh/talentdesk/internal/schema"
)

func SetupRoutes(cfg *config.Config, version, buildTime string, p *portal.Portal, schemas *schema.Loader) *mux.Router {
	r := mux.NewRouter()

	// Middleware chain
	r.Use(LoggingMiddleware)
	r.Use(metrics.HTTPMetricsMiddleware)
	r.Use(CORSMiddleware)
	r.Use(RecoveryMiddleware)

	// Create handlers
	systemHandler := &SystemHandler{}
	authHandler := NewAuthHandler(p, schemas, cfg.JWTSecret, cfg.TokenDuration)
	profileHandler := NewProfileHandler(p, schemas)
	positionsHandler := NewPositionsHandler(p, schemas)
	candidatesHandler := NewCandidatesHandler(p)

	// Every route also accepts OPTIONS so CORSMiddleware can answer preflights.

	// Open endpoints
	r.HandleFunc("/version", systemHandler.VersionHandler(version, buildTime)).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/health", systemHandler.HealthHandler).Methods(http.MethodGet, http.MethodOptions)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/v1/auth/register", authHandler.Register).Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc("/v1/auth/login", authHandler.Login).Methods(http.MethodPost, http.MethodOptions)

	// API v1 Protected routes
	apiV1 := r.PathPrefix("/v1").Subrouter()
	apiV1.Use(SessionMiddleware(cfg.JWTSecret, p))

	apiV1.HandleFunc("/auth/logout", authHandler.Logout).Methods(http.MethodPost, http.MethodOptions)

	apiV1.HandleFunc("/me", profileHandler.Get).Methods(http.MethodGet, http.MethodOptions)
	apiV1.HandleFunc("/me", profileHandler.Update).Methods(http.MethodPatch, http.MethodOptions)

	apiV1.HandleFunc("/positions", positionsHandler.List).Methods(http.MethodGet, http.MethodOptions)
	apiV1.HandleFunc("/positions", positionsHandler.Create).Methods(http.MethodPost, http.MethodOptions)
	apiV1.HandleFunc("/positions/stats", positionsHandler.Stats).Methods(http.MethodGet, http.MethodOptions)
	apiV1.HandleFunc("/positions/{id}", positionsHandler.Get).Methods(http.MethodGet, http.MethodOptions)
	apiV1.HandleFunc("/positions/{id}", positionsHandler.Update).Methods(http.MethodPatch, http.MethodOptions)
	apiV1.HandleFunc("/positions/{id}", positionsHandler.Delete).Methods(http.MethodDelete, http.MethodOptions)
	apiV1.HandleFunc("/positions/{id}/candidates", positionsHandler.Candidates).Methods(http.MethodGet, http.MethodOptions)

	apiV1.HandleFunc("/candidates", candidatesHandler.List).Methods(http.MethodGet, http.MethodOptions)

	return r
}
