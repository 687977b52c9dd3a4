package transfer

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"listsync/core/logger"
)

// Handler handles HTTP requests for document import and export.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, log *zap.Logger) *Handler {
	return &Handler{service: service, logger: log}
}

// RegisterRoutes registers the transfer routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/transfer")
	group.Get("/export", h.HandleExport)
	group.Post("/preview", h.HandlePreview)
	group.Post("/import", h.HandleImport)
}

// optionsFromQuery reads import/export options off the query string. Absent
// parameters keep their defaults.
func optionsFromQuery(c *fiber.Ctx) (Options, error) {
	opts := DefaultOptions()
	strategy, err := ParseStrategy(c.Query("strategy"))
	if err != nil {
		return opts, err
	}
	opts.Strategy = strategy
	opts.ValidateData = c.QueryBool("validate", opts.ValidateData)
	opts.IncludeImages = c.QueryBool("images", opts.IncludeImages)
	opts.IncludeCrossedOut = c.QueryBool("crossed_out", opts.IncludeCrossedOut)
	opts.IncludeDescriptions = c.QueryBool("descriptions", opts.IncludeDescriptions)
	opts.IncludeQuantities = c.QueryBool("quantities", opts.IncludeQuantities)
	opts.IncludeDates = c.QueryBool("dates", opts.IncludeDates)
	opts.IncludeArchived = c.QueryBool("archived", opts.IncludeArchived)
	return opts, nil
}

// HandleExport writes local state out as a document.
// @Summary Export Document
// @Description Export all lists as a JSON document, shaped by the content filter query parameters.
// @Tags transfer
// @Produce json
// @Param images query bool false "Embed image payloads as base64"
// @Param crossed_out query bool false "Include crossed-out items"
// @Param descriptions query bool false "Include descriptions"
// @Param quantities query bool false "Include quantities"
// @Param dates query bool false "Include timestamps"
// @Param archived query bool false "Include archived lists"
// @Success 200 {object} Document "Exported document"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /transfer/export [get]
func (h *Handler) HandleExport(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	opts, err := optionsFromQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	payload, err := h.service.ExportPayload(c.Context(), opts)
	if err != nil {
		l.Error("Export failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(payload)
}

// HandlePreview reports what importing a document would do.
// @Summary Preview Import
// @Description Validate a document and report the changes, deletions and conflicts an import would produce, without applying anything.
// @Tags transfer
// @Accept json
// @Produce json
// @Param strategy query string false "Merge strategy (merge, replace, append)"
// @Success 200 {object} Preview "Preview"
// @Failure 400 {object} map[string]string "Malformed document or options"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /transfer/preview [post]
func (h *Handler) HandlePreview(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	opts, err := optionsFromQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	preview, err := h.service.PreviewPayload(c.Context(), c.Body(), opts)
	switch {
	case errors.Is(err, ErrDecodingFailed):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case err != nil:
		l.Error("Preview failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(preview)
}

// HandleImport applies a document to the local store.
// @Summary Import Document
// @Description Reconcile a document into the local store using the selected merge strategy. All-or-nothing: a validation failure leaves local state untouched.
// @Tags transfer
// @Accept json
// @Produce json
// @Param strategy query string false "Merge strategy (merge, replace, append)"
// @Param validate query bool false "Validate the document before applying"
// @Param images query bool false "Materialize embedded image payloads"
// @Success 200 {object} Result "Applied"
// @Failure 400 {object} map[string]string "Malformed or invalid document"
// @Failure 409 {object} map[string]string "Import already in progress"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /transfer/import [post]
func (h *Handler) HandleImport(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	opts, err := optionsFromQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	result, err := h.service.ImportPayload(c.Context(), c.Body(), opts, nil)
	switch {
	case errors.Is(err, ErrDecodingFailed):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case IsValidationError(err):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ErrImportInProgress):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case err != nil:
		l.Error("Import failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(result)
}
