package orders

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrOrderNotFound is returned when an order id does not exist.
var ErrOrderNotFound = errors.New("supplier order not found")

// Repository is the order data access layer.
type Repository struct {
	db         *gorm.DB
	businessID string
	logger     *zap.Logger
}

// NewRepository creates the orders repository.
func NewRepository(db *gorm.DB, businessID string, logger *zap.Logger) *Repository {
	return &Repository{db: db, businessID: businessID, logger: logger}
}

func (r *Repository) scoped(tx *gorm.DB) *gorm.DB {
	if r.businessID != "" {
		return tx.Where("business_id = ?", r.businessID)
	}
	return tx
}

// ListAwaiting returns orders still waiting for their delivery, newest first.
func (r *Repository) ListAwaiting(ctx context.Context) ([]SupplierOrder, error) {
	if r.db == nil {
		return nil, fmt.Errorf("order store unavailable")
	}

	var list []SupplierOrder
	err := r.scoped(r.db.WithContext(ctx)).
		Where("status = ?", StatusAwaitingReceipt).
		Order("created_at DESC").
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list awaiting orders: %w", err)
	}
	return list, nil
}

// Get fetches one order by id.
func (r *Repository) Get(ctx context.Context, id string) (*SupplierOrder, error) {
	if r.db == nil {
		return nil, fmt.Errorf("order store unavailable")
	}

	var order SupplierOrder
	err := r.scoped(r.db.WithContext(ctx)).First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load order %s: %w", id, err)
	}
	return &order, nil
}

// MarkReceived flips an order's status after a fully successful commit.
// This is the only write the receiving core performs on orders.
func (r *Repository) MarkReceived(ctx context.Context, id string) error {
	if r.db == nil {
		return fmt.Errorf("order store unavailable")
	}

	res := r.scoped(r.db.WithContext(ctx).Model(&SupplierOrder{})).
		Where("id = ?", id).
		Update("status", StatusReceived)
	if res.Error != nil {
		return fmt.Errorf("failed to mark order %s received: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrOrderNotFound
	}
	return nil
}
