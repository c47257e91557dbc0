package receiving_test

import (
	"context"
	"testing"

	"goods-receiving/core/database"
	"goods-receiving/feature/catalog"
	"goods-receiving/feature/catalog/models"
	"goods-receiving/feature/orders"
	"goods-receiving/feature/receiving"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func openCommitTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.InventoryItem{}, &models.Supplier{}, &orders.SupplierOrder{}))
	return db
}

// Commits against the real catalog repository over sqlite: additive stock,
// new-item insert, and the order flip all in one pass.
func TestCommit_AgainstStore(t *testing.T) {
	db := openCommitTestDB(t)
	repo, err := catalog.NewRepository(db, nil, "biz-1", zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, db.Create(&models.InventoryItem{
		ID: "milk-1", Name: "חלב 3%", Unit: "liter", CurrentStock: 8, CountStep: 1, BusinessID: "biz-1",
	}).Error)
	require.NoError(t, db.Create(&orders.SupplierOrder{
		ID:           "ord-1",
		SupplierName: "תנובה",
		Status:       orders.StatusAwaitingReceipt,
		Items:        orders.OrderLines{{Name: "חלב 3%", Qty: 12, Unit: "liter"}},
		BusinessID:   "biz-1",
	}).Error)

	orderRepo := orders.NewRepository(db, "biz-1", zap.NewNop())
	svc := receiving.NewCommitService(repo, orderRepo, zap.NewNop())

	orderID := "ord-1"
	session := &receiving.Session{
		ID:      "sess-1",
		OrderID: &orderID,
		Items: []receiving.SessionItem{
			{ID: "milk-1", Name: "חלב 3%", CatalogID: "milk-1", ActualQty: 12},
			{ID: "temp-1", Name: "שמנת חדשה", Unit: "ml", Category: "dairy", ActualQty: 6, CountStep: 1, IsNew: true},
		},
	}

	require.NoError(t, svc.Commit(context.Background(), session, "דנה"))

	item, err := repo.GetItem(context.Background(), "milk-1")
	require.NoError(t, err)
	assert.Equal(t, 20.0, item.CurrentStock)
	assert.Equal(t, "דנה", item.LastCountedBy)

	// The unknown item got a real catalog record with the counted quantity.
	assert.False(t, session.Items[1].IsNew)
	require.NotEmpty(t, session.Items[1].CatalogID)
	created, err := repo.GetItem(context.Background(), session.Items[1].CatalogID)
	require.NoError(t, err)
	assert.Equal(t, "שמנת חדשה", created.Name)
	assert.Equal(t, 6.0, created.CurrentStock)

	order, err := orderRepo.Get(context.Background(), "ord-1")
	require.NoError(t, err)
	assert.Equal(t, orders.StatusReceived, order.Status)
}

func TestCommit_FailureReportsPosition(t *testing.T) {
	db := openCommitTestDB(t)
	repo, err := catalog.NewRepository(db, nil, "biz-1", zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, db.Create(&models.InventoryItem{
		ID: "a-1", Name: "אורז", CurrentStock: 1, CountStep: 1, BusinessID: "biz-1",
	}).Error)

	svc := receiving.NewCommitService(repo, nil, zap.NewNop())

	// The middle item points at a catalog id that does not exist, which the
	// store reports as not found.
	session := &receiving.Session{
		ID: "sess-1",
		Items: []receiving.SessionItem{
			{ID: "a-1", CatalogID: "a-1", ActualQty: 2},
			{ID: "ghost", CatalogID: "ghost", ActualQty: 1},
			{ID: "c-1", CatalogID: "a-1", ActualQty: 3},
		},
	}

	err = svc.Commit(context.Background(), session, "דנה")
	var commitErr *receiving.CommitError
	require.ErrorAs(t, err, &commitErr)
	assert.ErrorIs(t, err, catalog.ErrItemNotFound)
	assert.Equal(t, []string{"a-1"}, commitErr.Applied)
	assert.Equal(t, "ghost", commitErr.FailedItem)
	assert.Equal(t, []string{"c-1"}, commitErr.Remaining)

	// The first write stayed applied; there is no rollback.
	item, err := repo.GetItem(context.Background(), "a-1")
	require.NoError(t, err)
	assert.Equal(t, 3.0, item.CurrentStock)
}

func TestCommit_AlreadyCommittedItemsAreSkipped(t *testing.T) {
	db := openCommitTestDB(t)
	repo, err := catalog.NewRepository(db, nil, "biz-1", zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, db.Create(&models.InventoryItem{
		ID: "a-1", Name: "אורז", CurrentStock: 10, CountStep: 1, BusinessID: "biz-1",
	}).Error)

	svc := receiving.NewCommitService(repo, nil, zap.NewNop())

	session := &receiving.Session{
		ID: "sess-1",
		Items: []receiving.SessionItem{
			{ID: "a-1", CatalogID: "a-1", ActualQty: 5, Committed: true},
		},
	}

	require.NoError(t, svc.Commit(context.Background(), session, "דנה"))

	item, err := repo.GetItem(context.Background(), "a-1")
	require.NoError(t, err)
	assert.Equal(t, 10.0, item.CurrentStock)
}
