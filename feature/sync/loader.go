package sync

import (
	"listsync/feature/lists"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service    *Service
	handler    *Handler
	debouncer  *Debouncer
	dispatcher *SerialDispatcher
}

// NewFeature creates the sync feature. When the store supports change
// notifications, a debouncer is wired to it so bursts of storage mutations
// collapse into single reload events on the dispatcher goroutine.
func NewFeature(store lists.Store, cfg Config, logger *zap.Logger) *Feature {
	svc := NewService(store, logger)
	f := &Feature{
		service: svc,
		handler: NewHandler(svc, logger),
	}

	if notifier, ok := store.(lists.Notifier); ok {
		f.dispatcher = NewSerialDispatcher()
		f.debouncer = NewDebouncer(cfg.Window(), f.dispatcher.Dispatch, func() {
			logger.Debug("Record store changed, reload published state")
		})
		notifier.OnChange(f.debouncer.Signal)
	}

	return f
}

// Service exposes the sync service for commands.
func (f *Feature) Service() *Service {
	return f.service
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "sync"
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

// Close stops the debouncer and its dispatcher.
func (f *Feature) Close() {
	if f.debouncer != nil {
		f.debouncer.Stop()
	}
	if f.dispatcher != nil {
		f.dispatcher.Close()
	}
}
