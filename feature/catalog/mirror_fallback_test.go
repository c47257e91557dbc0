package catalog_test

import (
	"context"
	"errors"
	"testing"

	"goods-receiving/feature/catalog"
	"goods-receiving/feature/catalog/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func TestRepository_RemoteErrorFallsBackToMirror(t *testing.T) {
	remote, mock := setupMockDB(t)
	mirror := openTestDB(t)

	repo, err := catalog.NewRepository(remote, mirror, "biz-1", zap.NewNop())
	require.NoError(t, err)

	// The mirror still holds the last good sync.
	seedItem(t, mirror, "item-1", "חלב 3%", 5)

	mock.ExpectQuery("SELECT (.+) FROM `inventory_items`").
		WillReturnError(errors.New("driver: bad connection"))

	items, err := repo.ListItems(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "חלב 3%", items[0].Name)
}

func TestRepository_SuccessfulRemoteReadRefreshesMirror(t *testing.T) {
	remote, mock := setupMockDB(t)
	mirror := openTestDB(t)

	repo, err := catalog.NewRepository(remote, mirror, "biz-1", zap.NewNop())
	require.NoError(t, err)

	rows := sqlmock.NewRows([]string{"id", "name", "unit", "current_stock", "count_step", "business_id"}).
		AddRow("item-1", "קמח לבן", "kg", 25.0, 1.0, "biz-1")
	mock.ExpectQuery("SELECT (.+) FROM `inventory_items`").WillReturnRows(rows)

	items, err := repo.ListItems(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)

	// The read-through also replaced the mirror contents.
	var mirrored []models.InventoryItem
	require.NoError(t, mirror.Find(&mirrored).Error)
	require.Len(t, mirrored, 1)
	assert.Equal(t, "קמח לבן", mirrored[0].Name)
}
