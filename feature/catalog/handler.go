package catalog

import (
	"errors"

	"goods-receiving/core/logger"
	"goods-receiving/feature/catalog/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the catalog.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the catalog routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/catalog")
	group.Get("/items", h.HandleListItems)
	group.Get("/suppliers", h.HandleListSuppliers)
	group.Put("/items/:id/stock", h.HandleSetStock)
}

// itemView decorates an inventory item with the low-stock flag the
// receiving station highlights in the grid.
type itemView struct {
	models.InventoryItem
	IsLowStock bool `json:"is_low_stock"`
}

// HandleListItems returns every inventory item for the business.
// @Summary List inventory items
// @Description Returns the inventory catalog. Falls back to the local mirror when the remote store is unreachable.
// @Tags catalog
// @Produce json
// @Success 200 {array} itemView
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /catalog/items [get]
func (h *Handler) HandleListItems(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	items, err := h.service.ListItems(c.Context())
	if err != nil {
		l.Error("Catalog listing failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	views := make([]itemView, 0, len(items))
	for _, item := range items {
		views = append(views, itemView{InventoryItem: item, IsLowStock: item.IsLowStock()})
	}

	return c.JSON(views)
}

// HandleListSuppliers returns the supplier metadata.
// @Summary List suppliers
// @Tags catalog
// @Produce json
// @Success 200 {array} models.Supplier
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /catalog/suppliers [get]
func (h *Handler) HandleListSuppliers(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	suppliers, err := h.service.ListSuppliers(c.Context())
	if err != nil {
		l.Error("Supplier listing failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(suppliers)
}

// setStockRequest is the body for manual stock adjustment.
type setStockRequest struct {
	Stock     float64 `json:"stock"`
	CountedBy string  `json:"counted_by"`
}

// HandleSetStock sets an item's stock to an absolute value.
// @Summary Set stock (absolute)
// @Description Manual grid adjustment. Sets current_stock to the given value; receiving uses an additive path instead.
// @Tags catalog
// @Accept json
// @Produce json
// @Param id path string true "Inventory item id"
// @Param body body setStockRequest true "New absolute stock"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /catalog/items/{id}/stock [put]
func (h *Handler) HandleSetStock(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req setStockRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	err := h.service.SetStock(c.Context(), c.Params("id"), req.Stock, req.CountedBy)
	if errors.Is(err, ErrItemNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	if err != nil {
		l.Error("Manual stock adjustment failed",
			zap.String("item_id", c.Params("id")), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
