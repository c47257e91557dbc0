package receiving_test

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"goods-receiving/feature/catalog/models"
	"goods-receiving/feature/extraction"
	"goods-receiving/feature/orders"
	"goods-receiving/feature/receiving"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeExtractor returns a canned draft or error without any network.
type fakeExtractor struct {
	draft *extraction.Draft
	err   error
}

func (f *fakeExtractor) ScanInvoice(ctx context.Context, doc extraction.Document) (*extraction.Draft, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.draft, nil
}

// fakeOrderSource serves orders from a map.
type fakeOrderSource struct {
	orders map[string]*orders.SupplierOrder
}

func (f *fakeOrderSource) Get(ctx context.Context, id string) (*orders.SupplierOrder, error) {
	order, ok := f.orders[id]
	if !ok {
		return nil, orders.ErrOrderNotFound
	}
	return order, nil
}

type handlerFixture struct {
	app     *fiber.App
	manager *receiving.Manager
	writer  *fakeWriter
}

func newHandlerFixture(t *testing.T, extractor extraction.Extractor, orderSource receiving.OrderSource) *handlerFixture {
	t.Helper()

	source := &fakeCatalogSource{items: []models.InventoryItem{
		{ID: "milk-1", Name: "חלב 3%", Unit: "liter", CountStep: 1},
	}}
	writer := newFakeWriter()
	manager := newManager(source, writer, &fakeMarker{})

	app := fiber.New()
	handler := receiving.NewHandler(manager, extractor, nil, orderSource, zap.NewNop())
	handler.RegisterRoutes(app)

	return &handlerFixture{app: app, manager: manager, writer: writer}
}

func jsonRequest(method, target string, body any) *http.Request {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(method, target, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func scanBody() map[string]string {
	return map[string]string{
		"document":  base64.StdEncoding.EncodeToString([]byte("fake-jpeg-bytes")),
		"mime_type": "image/jpeg",
	}
}

func TestHandleScan_Success(t *testing.T) {
	extractor := &fakeExtractor{draft: &extraction.Draft{
		SupplierDetected: "תנובה",
		InvoiceNumber:    "INV-1",
		Items: []extraction.DraftItem{
			{Name: "חלב 3%", CurrentStockAdded: 12},
		},
	}}
	f := newHandlerFixture(t, extractor, nil)

	resp, err := f.app.Test(jsonRequest(http.MethodPost, "/receiving/scan", scanBody()))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var session receiving.Session
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&session))
	require.Len(t, session.Items, 1)
	assert.Equal(t, "milk-1", session.Items[0].CatalogID)
}

func TestHandleScan_SecondSessionConflicts(t *testing.T) {
	extractor := &fakeExtractor{draft: &extraction.Draft{
		Items: []extraction.DraftItem{{Name: "חלב 3%", CurrentStockAdded: 1}},
	}}
	f := newHandlerFixture(t, extractor, nil)

	resp, err := f.app.Test(jsonRequest(http.MethodPost, "/receiving/scan", scanBody()))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, err = f.app.Test(jsonRequest(http.MethodPost, "/receiving/scan", scanBody()))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestHandleScan_ErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"Timeout", fmt.Errorf("scan: %w", extraction.ErrTimeout), fiber.StatusGatewayTimeout},
		{"Network", fmt.Errorf("scan: %w", extraction.ErrNetwork), fiber.StatusBadGateway},
		{"Parse", fmt.Errorf("scan: %w", extraction.ErrParse), fiber.StatusBadGateway},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newHandlerFixture(t, &fakeExtractor{err: tc.err}, nil)

			resp, err := f.app.Test(jsonRequest(http.MethodPost, "/receiving/scan", scanBody()))
			require.NoError(t, err)
			assert.Equal(t, tc.status, resp.StatusCode)
		})
	}
}

func TestHandleScan_EmptyDraft(t *testing.T) {
	f := newHandlerFixture(t, &fakeExtractor{draft: &extraction.Draft{Items: []extraction.DraftItem{}}}, nil)

	resp, err := f.app.Test(jsonRequest(http.MethodPost, "/receiving/scan", scanBody()))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
}

func TestHandleScan_BadDocument(t *testing.T) {
	f := newHandlerFixture(t, &fakeExtractor{}, nil)

	resp, err := f.app.Test(jsonRequest(http.MethodPost, "/receiving/scan", map[string]string{
		"document":  "not!!base64",
		"mime_type": "image/jpeg",
	}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestHandleStartFromOrder(t *testing.T) {
	orderSource := &fakeOrderSource{orders: map[string]*orders.SupplierOrder{
		"ord-1": {
			ID:           "ord-1",
			SupplierName: "תנובה",
			Items:        orders.OrderLines{{Name: "חלב 3%", Qty: 12, Unit: "liter"}},
		},
	}}
	f := newHandlerFixture(t, &fakeExtractor{}, orderSource)

	resp, err := f.app.Test(httptest.NewRequest(http.MethodPost, "/receiving/orders/ord-1", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var session receiving.Session
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&session))
	require.NotNil(t, session.OrderID)
	assert.Equal(t, "ord-1", *session.OrderID)

	t.Run("Unknown order", func(t *testing.T) {
		// The live session blocks a second init, so use a fresh fixture.
		f := newHandlerFixture(t, &fakeExtractor{}, orderSource)
		resp, err := f.app.Test(httptest.NewRequest(http.MethodPost, "/receiving/orders/missing", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})
}

func TestHandleGetSession_NoSession(t *testing.T) {
	f := newHandlerFixture(t, &fakeExtractor{}, nil)

	resp, err := f.app.Test(httptest.NewRequest(http.MethodGet, "/receiving/session", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var view struct {
		State   receiving.State    `json:"state"`
		Session *receiving.Session `json:"session"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&view))
	assert.Equal(t, receiving.StateNone, view.State)
	assert.Nil(t, view.Session)
}

func TestHandleAdjustItem(t *testing.T) {
	extractor := &fakeExtractor{draft: &extraction.Draft{
		Items: []extraction.DraftItem{{Name: "חלב 3%", CurrentStockAdded: 10}},
	}}
	f := newHandlerFixture(t, extractor, nil)

	resp, err := f.app.Test(jsonRequest(http.MethodPost, "/receiving/scan", scanBody()))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, err = f.app.Test(jsonRequest(http.MethodPatch, "/receiving/session/items/milk-1",
		map[string]any{"qty": 7}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var view struct {
		State   receiving.State    `json:"state"`
		Session *receiving.Session `json:"session"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&view))
	assert.Equal(t, receiving.StateAdjusting, view.State)
	require.NotNil(t, view.Session)
	assert.Equal(t, 7.0, view.Session.Items[0].ActualQty)

	t.Run("Increment by step", func(t *testing.T) {
		resp, err := f.app.Test(jsonRequest(http.MethodPatch, "/receiving/session/items/milk-1",
			map[string]any{"op": "increment"}))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("Unknown item", func(t *testing.T) {
		resp, err := f.app.Test(jsonRequest(http.MethodPatch, "/receiving/session/items/ghost",
			map[string]any{"qty": 1}))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})

	t.Run("Missing qty and op", func(t *testing.T) {
		resp, err := f.app.Test(jsonRequest(http.MethodPatch, "/receiving/session/items/milk-1",
			map[string]any{}))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})
}

func TestHandleConfirm(t *testing.T) {
	extractor := &fakeExtractor{draft: &extraction.Draft{
		Items: []extraction.DraftItem{{Name: "חלב 3%", CurrentStockAdded: 10}},
	}}
	f := newHandlerFixture(t, extractor, nil)

	resp, err := f.app.Test(jsonRequest(http.MethodPost, "/receiving/scan", scanBody()))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, err = f.app.Test(jsonRequest(http.MethodPost, "/receiving/session/confirm",
		map[string]string{"counted_by": "דנה"}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 10.0, f.writer.added["milk-1"])

	t.Run("No session left", func(t *testing.T) {
		resp, err := f.app.Test(jsonRequest(http.MethodPost, "/receiving/session/confirm",
			map[string]string{"counted_by": "דנה"}))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})
}

func TestHandleConfirm_PartialFailure(t *testing.T) {
	extractor := &fakeExtractor{draft: &extraction.Draft{
		Items: []extraction.DraftItem{{Name: "חלב 3%", CurrentStockAdded: 10}},
	}}
	f := newHandlerFixture(t, extractor, nil)
	f.writer.failOn = "milk-1"

	resp, err := f.app.Test(jsonRequest(http.MethodPost, "/receiving/scan", scanBody()))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, err = f.app.Test(jsonRequest(http.MethodPost, "/receiving/session/confirm",
		map[string]string{"counted_by": "דנה"}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadGateway, resp.StatusCode)

	var body struct {
		Failed    string   `json:"failed"`
		Applied   []string `json:"applied"`
		Remaining []string `json:"remaining"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "milk-1", body.Failed)
	assert.Empty(t, body.Applied)
	assert.Empty(t, body.Remaining)

	// The session survived for a retry.
	resp, err = f.app.Test(httptest.NewRequest(http.MethodGet, "/receiving/session", nil))
	require.NoError(t, err)
	var view struct {
		State receiving.State `json:"state"`
		Error string          `json:"error"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&view))
	assert.Equal(t, receiving.StateAdjusting, view.State)
	assert.NotEmpty(t, view.Error)
}

func TestHandleClear(t *testing.T) {
	extractor := &fakeExtractor{draft: &extraction.Draft{
		Items: []extraction.DraftItem{{Name: "חלב 3%", CurrentStockAdded: 10}},
	}}
	f := newHandlerFixture(t, extractor, nil)

	resp, err := f.app.Test(jsonRequest(http.MethodPost, "/receiving/scan", scanBody()))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, err = f.app.Test(httptest.NewRequest(http.MethodDelete, "/receiving/session", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	// A new scan is allowed again.
	resp, err = f.app.Test(jsonRequest(http.MethodPost, "/receiving/scan", scanBody()))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
}
