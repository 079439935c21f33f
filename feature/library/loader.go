package library

import (
	"uloggd/core/shortid"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates a new library feature.
func NewFeature(db *gorm.DB, codec *shortid.Codec, logger *zap.Logger) *Feature {
	svc := NewService(NewRepository(db), logger)
	return &Feature{service: svc, handler: NewHandler(svc, codec, logger)}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "library"
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
