package catalog_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"goods-receiving/feature/catalog"
	"goods-receiving/feature/catalog/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newCatalogApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	db := openTestDB(t)
	repo, err := catalog.NewRepository(db, nil, "biz-1", zap.NewNop())
	require.NoError(t, err)

	service := catalog.NewService(repo, catalog.NewSnapshotCache(repo, 0), zap.NewNop())

	app := fiber.New()
	catalog.NewHandler(service).RegisterRoutes(app)
	return app, db
}

func TestHandleListItems_LowStockFlag(t *testing.T) {
	app, db := newCatalogApp(t)

	require.NoError(t, db.Create(&models.InventoryItem{
		ID: "item-1", Name: "חלב 3%", CurrentStock: 2, LowStockAlert: 5, CountStep: 1, BusinessID: "biz-1",
	}).Error)
	require.NoError(t, db.Create(&models.InventoryItem{
		ID: "item-2", Name: "קמח לבן", CurrentStock: 40, LowStockAlert: 5, CountStep: 1, BusinessID: "biz-1",
	}).Error)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/catalog/items", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var views []struct {
		ID         string `json:"id"`
		IsLowStock bool   `json:"is_low_stock"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&views))
	require.Len(t, views, 2)

	flags := map[string]bool{}
	for _, v := range views {
		flags[v.ID] = v.IsLowStock
	}
	assert.True(t, flags["item-1"])
	assert.False(t, flags["item-2"])
}

func TestHandleSetStock(t *testing.T) {
	app, db := newCatalogApp(t)
	seedItem(t, db, "item-1", "חלב 3%", 9)

	body, _ := json.Marshal(map[string]any{"stock": 4, "counted_by": "noam"})
	req := httptest.NewRequest(http.MethodPut, "/catalog/items/item-1/stock", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	var item models.InventoryItem
	require.NoError(t, db.First(&item, "id = ?", "item-1").Error)
	assert.Equal(t, 4.0, item.CurrentStock)

	t.Run("Unknown item", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPut, "/catalog/items/missing/stock", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})
}
