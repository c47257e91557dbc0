package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"goods-receiving/feature/catalog/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Repository is the catalog data access layer. The remote store holds the
// source of truth; the optional sqlite mirror serves reads when the remote
// store errors out.
type Repository struct {
	db         *gorm.DB // remote store, may be nil when starting offline
	mirror     *gorm.DB // local mirror, may be nil
	businessID string
	logger     *zap.Logger
}

// NewRepository creates the catalog repository. Either database handle may be
// nil; reads require at least one of them.
func NewRepository(db, mirror *gorm.DB, businessID string, logger *zap.Logger) (*Repository, error) {
	if mirror != nil {
		if err := mirror.AutoMigrate(&models.InventoryItem{}, &models.Supplier{}); err != nil {
			return nil, fmt.Errorf("failed to migrate mirror schema: %w", err)
		}
	}

	return &Repository{
		db:         db,
		mirror:     mirror,
		businessID: businessID,
		logger:     logger,
	}, nil
}

// scoped applies the business scope when one is configured.
func (r *Repository) scoped(tx *gorm.DB) *gorm.DB {
	if r.businessID != "" {
		return tx.Where("business_id = ?", r.businessID)
	}
	return tx
}

// ListItems returns the full catalog, preferring the remote store and
// falling back to the mirror when it is unreachable.
func (r *Repository) ListItems(ctx context.Context) ([]models.InventoryItem, error) {
	if r.db != nil {
		var items []models.InventoryItem
		err := r.scoped(r.db.WithContext(ctx).Order("name")).Find(&items).Error
		if err == nil {
			r.refreshMirrorItems(ctx, items)
			return items, nil
		}
		r.logger.Warn("Remote catalog read failed, falling back to mirror", zap.Error(err))
	}

	if r.mirror == nil {
		return nil, ErrRemoteUnavailable
	}

	var items []models.InventoryItem
	if err := r.scoped(r.mirror.WithContext(ctx).Order("name")).Find(&items).Error; err != nil {
		return nil, fmt.Errorf("mirror catalog read failed: %w", err)
	}
	return items, nil
}

// ListSuppliers returns the supplier metadata with the same fallback policy
// as ListItems.
func (r *Repository) ListSuppliers(ctx context.Context) ([]models.Supplier, error) {
	if r.db != nil {
		var suppliers []models.Supplier
		err := r.scoped(r.db.WithContext(ctx).Order("name")).Find(&suppliers).Error
		if err == nil {
			r.refreshMirrorSuppliers(ctx, suppliers)
			return suppliers, nil
		}
		r.logger.Warn("Remote supplier read failed, falling back to mirror", zap.Error(err))
	}

	if r.mirror == nil {
		return nil, ErrRemoteUnavailable
	}

	var suppliers []models.Supplier
	if err := r.scoped(r.mirror.WithContext(ctx).Order("name")).Find(&suppliers).Error; err != nil {
		return nil, fmt.Errorf("mirror supplier read failed: %w", err)
	}
	return suppliers, nil
}

// GetItem fetches one item by id, remote first.
func (r *Repository) GetItem(ctx context.Context, id string) (*models.InventoryItem, error) {
	lookup := func(tx *gorm.DB) (*models.InventoryItem, error) {
		var item models.InventoryItem
		err := r.scoped(tx.WithContext(ctx)).First(&item, "id = ?", id).Error
		if err != nil {
			return nil, err
		}
		return &item, nil
	}

	if r.db != nil {
		item, err := lookup(r.db)
		if err == nil {
			return item, nil
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		r.logger.Warn("Remote item read failed, falling back to mirror",
			zap.String("id", id), zap.Error(err))
	}

	if r.mirror == nil {
		return nil, ErrRemoteUnavailable
	}

	item, err := lookup(r.mirror)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("mirror item read failed: %w", err)
	}
	return item, nil
}

// CreateItem inserts a new catalog item discovered during receiving.
// The id is generated when empty. Writes never go to the mirror.
func (r *Repository) CreateItem(ctx context.Context, item *models.InventoryItem) error {
	if r.db == nil {
		return ErrRemoteUnavailable
	}

	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	if item.CountStep <= 0 {
		item.CountStep = 1
	}
	if item.BusinessID == "" {
		item.BusinessID = r.businessID
	}

	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return fmt.Errorf("failed to create inventory item %q: %w", item.Name, err)
	}
	return nil
}

// AddStock applies an additive receiving delta to an existing item and stamps
// the count audit columns. Receiving increases stock, it does not replace it.
func (r *Repository) AddStock(ctx context.Context, id string, qty float64, countedBy string) error {
	if r.db == nil {
		return ErrRemoteUnavailable
	}

	res := r.scoped(r.db.WithContext(ctx).Model(&models.InventoryItem{})).
		Where("id = ?", id).
		Updates(map[string]any{
			"current_stock":   gorm.Expr("current_stock + ?", qty),
			"last_counted_at": time.Now(),
			"last_counted_by": countedBy,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to add stock for item %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrItemNotFound
	}
	return nil
}

// SetStock sets current_stock to an absolute value. This is the manual
// adjustment used by the inventory grid outside of a receiving session and
// must not be merged with the additive AddStock path. Negative input is
// clamped to zero rather than rejected.
func (r *Repository) SetStock(ctx context.Context, id string, stock float64, countedBy string) error {
	if r.db == nil {
		return ErrRemoteUnavailable
	}

	if stock < 0 {
		stock = 0
	}

	res := r.scoped(r.db.WithContext(ctx).Model(&models.InventoryItem{})).
		Where("id = ?", id).
		Updates(map[string]any{
			"current_stock":   stock,
			"last_counted_at": time.Now(),
			"last_counted_by": countedBy,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to set stock for item %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrItemNotFound
	}
	return nil
}

// refreshMirrorItems replaces the mirrored catalog rows after a successful
// remote read. Best-effort: failures are logged, never surfaced.
func (r *Repository) refreshMirrorItems(ctx context.Context, items []models.InventoryItem) {
	if r.mirror == nil {
		return
	}

	err := r.mirror.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.scoped(tx.Session(&gorm.Session{AllowGlobalUpdate: true})).
			Delete(&models.InventoryItem{}).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		return tx.Create(&items).Error
	})
	if err != nil {
		r.logger.Warn("Mirror refresh failed", zap.Error(err))
	}
}

// refreshMirrorSuppliers mirrors supplier rows, same policy as items.
func (r *Repository) refreshMirrorSuppliers(ctx context.Context, suppliers []models.Supplier) {
	if r.mirror == nil {
		return
	}

	err := r.mirror.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.scoped(tx.Session(&gorm.Session{AllowGlobalUpdate: true})).
			Delete(&models.Supplier{}).Error; err != nil {
			return err
		}
		if len(suppliers) == 0 {
			return nil
		}
		return tx.Create(&suppliers).Error
	})
	if err != nil {
		r.logger.Warn("Mirror supplier refresh failed", zap.Error(err))
	}
}
