package lists

import (
	"errors"

	"listsync/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for lists and items.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, log *zap.Logger) *Handler {
	return &Handler{service: service, logger: log}
}

// RegisterRoutes registers the lists routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/lists")
	group.Get("/", h.HandleGetLists)
	group.Post("/", h.HandleCreateList)
	group.Delete("/:id", h.HandleDeleteList)
	group.Post("/:id/archive", h.HandleArchiveList)
	group.Post("/:id/items", h.HandleAddItem)
	group.Delete("/:id/items/:itemId", h.HandleDeleteItem)
	group.Post("/:id/items/:itemId/cross", h.HandleSetCrossedOut)
	group.Post("/:id/items/:itemId/suggest", h.HandleApplySuggestion)
}

type createListRequest struct {
	Name string `json:"name"`
}

type addItemRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
}

// HandleGetLists returns all lists.
// @Summary Get Lists
// @Description Get all lists with their items. Pass archived=true to include archived lists.
// @Tags lists
// @Produce json
// @Param archived query bool false "Include archived lists"
// @Success 200 {array} models.List "Lists"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /lists [get]
func (h *Handler) HandleGetLists(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	result, err := h.service.GetLists(c.Context(), c.QueryBool("archived"))
	if err != nil {
		l.Error("Failed to load lists", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(result)
}

// HandleCreateList creates a new list.
// @Summary Create List
// @Tags lists
// @Accept json
// @Produce json
// @Param request body createListRequest true "List"
// @Success 201 {object} models.List "Created list"
// @Failure 400 {object} map[string]string "Invalid name"
// @Router /lists [post]
func (h *Handler) HandleCreateList(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	var req createListRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	list, err := h.service.CreateList(c.Context(), req.Name)
	if errors.Is(err, ErrInvalidName) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		l.Error("Failed to create list", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(list)
}

// HandleDeleteList deletes a list and all its items.
// @Summary Delete List
// @Tags lists
// @Param id path string true "List ID"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /lists/{id} [delete]
func (h *Handler) HandleDeleteList(c *fiber.Ctx) error {
	err := h.service.DeleteList(c.Context(), c.Params("id"))
	if errors.Is(err, ErrListNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		logger.WithRayID(h.logger, c).Error("Failed to delete list", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleArchiveList archives a list.
// @Summary Archive List
// @Tags lists
// @Param id path string true "List ID"
// @Success 204 "Archived"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /lists/{id}/archive [post]
func (h *Handler) HandleArchiveList(c *fiber.Ctx) error {
	err := h.service.ArchiveList(c.Context(), c.Params("id"))
	if errors.Is(err, ErrListNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		logger.WithRayID(h.logger, c).Error("Failed to archive list", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleAddItem adds an item to a list through the duplicate resolver.
// @Summary Add Item
// @Description Add an item. A semantically identical crossed-out item is uncrossed instead of duplicated.
// @Tags lists
// @Accept json
// @Produce json
// @Param id path string true "List ID"
// @Param request body addItemRequest true "Item"
// @Success 200 {object} models.Item "Existing item returned"
// @Success 201 {object} models.Item "New item created"
// @Failure 400 {object} map[string]string "Validation error"
// @Router /lists/{id}/items [post]
func (h *Handler) HandleAddItem(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	var req addItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	item, created, err := h.service.AddItem(c.Context(), c.Params("id"), req.Title, req.Description, req.Quantity)
	switch {
	case errors.Is(err, ErrListNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ErrInvalidTitle), errors.Is(err, ErrInvalidQuantity):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case err != nil:
		l.Error("Failed to add item", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	status := fiber.StatusOK
	if created {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(item)
}

type setCrossedOutRequest struct {
	CrossedOut bool `json:"crossed_out"`
}

// HandleSetCrossedOut marks an item bought or wanted.
// @Summary Cross Out Item
// @Tags lists
// @Accept json
// @Produce json
// @Param id path string true "List ID"
// @Param itemId path string true "Item ID"
// @Param request body setCrossedOutRequest true "Crossed state"
// @Success 200 {object} models.Item "Updated item"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /lists/{id}/items/{itemId}/cross [post]
func (h *Handler) HandleSetCrossedOut(c *fiber.Ctx) error {
	var req setCrossedOutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	item, err := h.service.SetCrossedOut(c.Context(), c.Params("itemId"), req.CrossedOut)
	if errors.Is(err, ErrItemNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		logger.WithRayID(h.logger, c).Error("Failed to cross out item", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(item)
}

// HandleDeleteItem removes an item from a list.
// @Summary Delete Item
// @Tags lists
// @Param id path string true "List ID"
// @Param itemId path string true "Item ID"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /lists/{id}/items/{itemId} [delete]
func (h *Handler) HandleDeleteItem(c *fiber.Ctx) error {
	err := h.service.DeleteItem(c.Context(), c.Params("itemId"))
	if errors.Is(err, ErrItemNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		logger.WithRayID(h.logger, c).Error("Failed to delete item", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleApplySuggestion copies an item into another list as a suggestion.
// @Summary Apply Suggestion
// @Description Copy an item into the target list as a fresh uncrossed item with newly-id'd images.
// @Tags lists
// @Produce json
// @Param id path string true "Target List ID"
// @Param itemId path string true "Source Item ID"
// @Success 201 {object} models.Item "Created copy"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /lists/{id}/items/{itemId}/suggest [post]
func (h *Handler) HandleApplySuggestion(c *fiber.Ctx) error {
	item, err := h.service.ApplySuggestion(c.Context(), c.Params("itemId"), c.Params("id"))
	switch {
	case errors.Is(err, ErrListNotFound), errors.Is(err, ErrItemNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case err != nil:
		logger.WithRayID(h.logger, c).Error("Failed to apply suggestion", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}
