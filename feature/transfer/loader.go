package transfer

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"listsync/feature/lists"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates the transfer feature.
func NewFeature(store lists.Store, images ImageStore, logger *zap.Logger) *Feature {
	svc := NewService(store, images, logger)
	return &Feature{
		service: svc,
		handler: NewHandler(svc, logger),
	}
}

// Service exposes the transfer service for commands.
func (f *Feature) Service() *Service {
	return f.service
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "transfer"
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
