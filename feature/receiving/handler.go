package receiving

import (
	"context"
	"encoding/base64"
	"errors"
	"time"

	"goods-receiving/core/logger"
	"goods-receiving/feature/extraction"
	"goods-receiving/feature/orders"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// OrderSource loads supplier orders for order-based sessions.
type OrderSource interface {
	Get(ctx context.Context, id string) (*orders.SupplierOrder, error)
}

// Handler handles HTTP requests for the receiving flow.
type Handler struct {
	manager   *Manager
	extractor extraction.Extractor
	archiver  *extraction.Archiver // may be nil when object storage is off
	orders    OrderSource          // may be nil when order tracking is off
	logger    *zap.Logger
}

// NewHandler creates a new HTTP handler. archiver and orderSource may be nil.
func NewHandler(manager *Manager, extractor extraction.Extractor, archiver *extraction.Archiver, orderSource OrderSource, logger *zap.Logger) *Handler {
	return &Handler{
		manager:   manager,
		extractor: extractor,
		archiver:  archiver,
		orders:    orderSource,
		logger:    logger,
	}
}

// RegisterRoutes registers the receiving routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/receiving")
	group.Post("/scan", h.HandleScan)
	group.Post("/orders/:id", h.HandleStartFromOrder)
	group.Get("/session", h.HandleGetSession)
	group.Patch("/session/items/:id", h.HandleAdjustItem)
	group.Post("/session/confirm", h.HandleConfirm)
	group.Delete("/session", h.HandleClear)
}

// scanDocumentRequest carries the photographed document.
type scanDocumentRequest struct {
	// Document is the base64-encoded document bytes.
	Document string `json:"document"`
	MimeType string `json:"mime_type"`
}

// HandleScan extracts a draft from a delivery document and opens a session.
// @Summary Scan an invoice and start a receiving session
// @Description Sends the document to the recognition service, matches line items against the catalog and opens the device's receiving session.
// @Tags receiving
// @Accept json
// @Produce json
// @Param body body scanDocumentRequest true "Base64 document"
// @Success 201 {object} Session
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 409 {object} map[string]string "Session already active"
// @Failure 422 {object} map[string]string "No line items recognized"
// @Failure 502 {object} map[string]string "Recognition service failed"
// @Failure 504 {object} map[string]string "Recognition timed out"
// @Router /receiving/scan [post]
func (h *Handler) HandleScan(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	var req scanDocumentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	data, err := base64.StdEncoding.DecodeString(req.Document)
	if err != nil || len(data) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "document must be non-empty base64",
		})
	}

	doc := extraction.Document{Data: data, MimeType: req.MimeType}

	draft, err := h.extractor.ScanInvoice(c.Context(), doc)
	if err != nil {
		l.Error("Invoice extraction failed", zap.Error(err))
		return c.Status(h.extractionStatus(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	session, err := h.manager.InitializeSession(c.Context(), draft)
	if err != nil {
		return h.initError(c, l, err)
	}

	// The paper trail backup must never delay the answer to the device.
	if h.archiver != nil {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			_ = h.archiver.Archive(ctx, draft, doc)
		}()
	}

	return c.Status(fiber.StatusCreated).JSON(session)
}

// HandleStartFromOrder opens a session from a pending supplier order.
// @Summary Start a receiving session from an order
// @Tags receiving
// @Produce json
// @Param id path string true "Supplier order id"
// @Success 201 {object} Session
// @Failure 404 {object} map[string]string "Order not found"
// @Failure 409 {object} map[string]string "Session already active"
// @Router /receiving/orders/{id} [post]
func (h *Handler) HandleStartFromOrder(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	if h.orders == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "order tracking is not enabled",
		})
	}

	order, err := h.orders.Get(c.Context(), c.Params("id"))
	if errors.Is(err, orders.ErrOrderNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	if err != nil {
		l.Error("Order lookup failed", zap.String("order_id", c.Params("id")), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	session, err := h.manager.InitializeFromOrder(c.Context(), order)
	if err != nil {
		return h.initError(c, l, err)
	}

	return c.Status(fiber.StatusCreated).JSON(session)
}

// sessionView is the session endpoint response.
type sessionView struct {
	State        State    `json:"state"`
	IsConfirming bool     `json:"is_confirming"`
	Error        string   `json:"error,omitempty"`
	Session      *Session `json:"session"`
}

// HandleGetSession returns the live session and its lifecycle state.
// @Summary Get the current receiving session
// @Tags receiving
// @Produce json
// @Success 200 {object} sessionView
// @Router /receiving/session [get]
func (h *Handler) HandleGetSession(c *fiber.Ctx) error {
	state, session := h.manager.Snapshot()

	view := sessionView{
		State:        state,
		IsConfirming: h.manager.IsConfirming(),
		Session:      session,
	}
	if err := h.manager.LastError(); err != nil {
		view.Error = err.Error()
	}

	return c.JSON(view)
}

// adjustItemRequest mutates one session item's counted quantity. Either Qty
// is set for manual entry or Op is "increment"/"decrement" for step buttons.
type adjustItemRequest struct {
	Qty *float64 `json:"qty"`
	Op  string   `json:"op"`
}

// HandleAdjustItem updates an item's counted quantity.
// @Summary Adjust a counted quantity
// @Description Manual entry via qty, or step adjustment via op=increment|decrement. Negative results clamp to zero.
// @Tags receiving
// @Accept json
// @Produce json
// @Param id path string true "Session item id"
// @Param body body adjustItemRequest true "Adjustment"
// @Success 200 {object} sessionView
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "No session or unknown item"
// @Failure 409 {object} map[string]string "Commit in progress"
// @Router /receiving/session/items/{id} [patch]
func (h *Handler) HandleAdjustItem(c *fiber.Ctx) error {
	var req adjustItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	id := c.Params("id")

	var err error
	switch {
	case req.Qty != nil:
		err = h.manager.UpdateActualQty(id, *req.Qty)
	case req.Op == "increment":
		err = h.manager.IncrementQty(id)
	case req.Op == "decrement":
		err = h.manager.DecrementQty(id)
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "qty or op (increment|decrement) is required",
		})
	}

	switch {
	case errors.Is(err, ErrNoSession), errors.Is(err, ErrItemNotInSession):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ErrCommitInProgress):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case err != nil:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return h.HandleGetSession(c)
}

// confirmRequest carries the commit attribution.
type confirmRequest struct {
	CountedBy string `json:"counted_by"`
}

// HandleConfirm commits the session's counted quantities to the catalog.
// @Summary Confirm receipt and commit stock
// @Description Applies one independent stock write per counted item. A partial failure keeps the session alive with the already-applied items marked, so confirming again retries only the remainder.
// @Tags receiving
// @Accept json
// @Produce json
// @Param body body confirmRequest true "Attribution"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string "No session"
// @Failure 409 {object} map[string]string "Commit already in progress"
// @Failure 502 {object} map[string]interface{} "Partial commit"
// @Router /receiving/session/confirm [post]
func (h *Handler) HandleConfirm(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	var req confirmRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	err := h.manager.ConfirmReceipt(c.Context(), req.CountedBy)

	var commitErr *CommitError
	switch {
	case errors.Is(err, ErrNoSession):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ErrCommitInProgress):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case errors.As(err, &commitErr):
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error":     commitErr.Error(),
			"applied":   commitErr.Applied,
			"failed":    commitErr.FailedItem,
			"remaining": commitErr.Remaining,
		})
	case err != nil:
		l.Error("Receiving confirmation failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"status": "committed"})
}

// HandleClear discards the live session.
// @Summary Cancel the receiving session
// @Tags receiving
// @Success 204 "No Content"
// @Failure 409 {object} map[string]string "Commit in progress"
// @Router /receiving/session [delete]
func (h *Handler) HandleClear(c *fiber.Ctx) error {
	if err := h.manager.ClearSession(); err != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// extractionStatus maps the extraction error taxonomy onto HTTP statuses.
func (h *Handler) extractionStatus(err error) int {
	switch {
	case errors.Is(err, extraction.ErrTimeout):
		return fiber.StatusGatewayTimeout
	case errors.Is(err, extraction.ErrParse), errors.Is(err, extraction.ErrNetwork):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

// initError maps session initialization failures onto HTTP statuses.
func (h *Handler) initError(c *fiber.Ctx, l *zap.Logger, err error) error {
	switch {
	case errors.Is(err, ErrSessionActive):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ErrEmptyDraft):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	default:
		l.Error("Session initialization failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
}
