package games

import (
	"uloggd/core/cache"
	"uloggd/core/catalog"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates a new games feature.
func NewFeature(cfg catalog.Config, fetcher Fetcher, store *cache.Store, backfill Submitter, logger *zap.Logger) *Feature {
	svc := NewService(cfg, fetcher, store, backfill, logger)
	return &Feature{service: svc, handler: NewHandler(svc, logger)}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "games"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}

// Service returns the feature's service for CLI use.
func (f *Feature) Service() *Service {
	return f.service
}
