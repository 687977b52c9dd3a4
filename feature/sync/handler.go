package sync

import (
	"errors"

	"listsync/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for snapshot exchange.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, log *zap.Logger) *Handler {
	return &Handler{service: service, logger: log}
}

// RegisterRoutes registers the sync routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/sync")
	group.Get("/snapshot", h.HandleGetSnapshot)
	group.Post("/snapshot", h.HandleApplySnapshot)
}

// HandleGetSnapshot returns this device's full snapshot payload.
// @Summary Get Snapshot
// @Description Project the full local state into a transfer payload (images stripped, counts preserved).
// @Tags sync
// @Produce json
// @Success 200 {array} ListSyncData "Snapshot"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /sync/snapshot [get]
func (h *Handler) HandleGetSnapshot(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	payload, err := h.service.BuildSnapshotPayload(c.Context())
	if errors.Is(err, ErrPayloadTooLarge) {
		l.Error("Snapshot exceeds transport budget", zap.Error(err))
		return c.Status(fiber.StatusInsufficientStorage).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		l.Error("Failed to build snapshot", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(payload)
}

// HandleApplySnapshot applies a peer's snapshot payload to the local store.
// @Summary Apply Snapshot
// @Description Merge a peer's full snapshot into the local store (last-writer-wins per item, snapshot authoritative for membership).
// @Tags sync
// @Accept json
// @Produce json
// @Success 200 {object} Result "Applied"
// @Failure 400 {object} map[string]string "Malformed payload"
// @Failure 409 {object} map[string]string "Sync already in progress"
// @Failure 413 {object} map[string]string "Payload exceeds budget"
// @Router /sync/snapshot [post]
func (h *Handler) HandleApplySnapshot(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	payload := c.Body()
	if len(payload) > MaxPayloadBytes {
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(fiber.Map{
			"error": ErrPayloadTooLarge.Error(),
		})
	}

	result, err := h.service.ApplySnapshotPayload(c.Context(), payload)
	switch {
	case errors.Is(err, ErrDecodeSnapshot):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ErrSyncInProgress):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case err != nil:
		l.Error("Snapshot application failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(result)
}
