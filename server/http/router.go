package serverhttp

import (
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"stock-import/internal/config"
	"stock-import/internal/middleware"
	stockHnd "stock-import/internal/stockimport/handler"
	"stock-import/server/http/handlers"
)

func NewRouter(cfg config.Config, store stockHnd.Catalog, logger zerolog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// порядок важен: recover -> requestID -> logging -> cors -> limit
	r.Use(middleware.Recover(logger))
	r.Use(middleware.RequestID(logger))
	r.Use(middleware.Logging())
	r.Use(middleware.CORS(cfg.AllowOrigins))
	r.Use(middleware.LimitBytes(int64(cfg.MaxUploadMB) << 20))

	r.Get("/health", handlers.Health)

	h := stockHnd.New(cfg, store, logger)
	r.Post("/import", h.Import)
	r.Post("/import/preview", h.Preview)
	r.Get("/products", h.ListProducts)
	r.Post("/products", h.AddProduct)
	r.Get("/locations", h.ListLocations)
	r.Post("/locations", h.SaveLocation)
	r.Post("/restore", h.Restore)

	return r
}
