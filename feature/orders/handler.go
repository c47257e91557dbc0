package orders

import (
	"goods-receiving/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for incoming orders.
type Handler struct {
	repo   *Repository
	logger *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(repo *Repository, logger *zap.Logger) *Handler {
	return &Handler{repo: repo, logger: logger}
}

// RegisterRoutes registers the order routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/orders")
	group.Get("/incoming", h.HandleListIncoming)
}

// HandleListIncoming returns orders awaiting receipt.
// @Summary List incoming orders
// @Description Orders sent to suppliers that have not been received yet.
// @Tags orders
// @Produce json
// @Success 200 {array} SupplierOrder
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /orders/incoming [get]
func (h *Handler) HandleListIncoming(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	list, err := h.repo.ListAwaiting(c.Context())
	if err != nil {
		l.Error("Incoming order listing failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(list)
}

// Feature implements the loader.Feature interface.
type Feature struct {
	handler *Handler
}

// NewFeature creates the orders feature.
func NewFeature(repo *Repository, logger *zap.Logger) *Feature {
	return &Feature{handler: NewHandler(repo, logger)}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "orders"
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
