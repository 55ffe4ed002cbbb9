package serverhttp

import (
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	catHnd "catalog-recon/internal/catalog/handler"
	"catalog-recon/internal/config"
	"catalog-recon/internal/middleware"
	"catalog-recon/server/http/handlers"
)

func NewRouter(cfg config.Config, logger zerolog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// order matters: recover -> requestID -> logging -> cors -> limit
	r.Use(middleware.Recover(logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS(cfg.AllowOrigins))
	r.Use(middleware.LimitBytes(int64(cfg.MaxUploadMB) * 1024 * 1024))

	// health-check
	r.Get("/health", handlers.Health)

	// matching endpoints
	r.Post("/match/prices", catHnd.MatchPrices(cfg, logger))
	r.Post("/match/discontinued", catHnd.FindDiscontinued(cfg, logger))

	return r
}
