package lists

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates the lists feature over an already-constructed store.
func NewFeature(store Store, images ImageCopier, logger *zap.Logger) *Feature {
	resolver := NewResolver(store, images, logger)
	svc := NewService(store, resolver, logger)
	h := NewHandler(svc, logger)
	return &Feature{service: svc, handler: h}
}

// Service exposes the feature's service for other features and commands.
func (f *Feature) Service() *Service {
	return f.service
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "lists"
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
