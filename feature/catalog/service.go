package catalog

import (
	"context"

	"goods-receiving/feature/catalog/models"

	"go.uber.org/zap"
)

// Service handles catalog operations for the presentation layer.
type Service struct {
	repo     *Repository
	snapshot *SnapshotCache
	logger   *zap.Logger
}

// NewService creates a new catalog service.
func NewService(repo *Repository, snapshot *SnapshotCache, logger *zap.Logger) *Service {
	return &Service{repo: repo, snapshot: snapshot, logger: logger}
}

// ListItems returns the full catalog.
func (s *Service) ListItems(ctx context.Context) ([]models.InventoryItem, error) {
	return s.repo.ListItems(ctx)
}

// ListSuppliers returns the supplier metadata.
func (s *Service) ListSuppliers(ctx context.Context) ([]models.Supplier, error) {
	return s.repo.ListSuppliers(ctx)
}

// SetStock sets an item's stock to an absolute value (manual grid
// adjustment). The additive receiving path lives in the receiving feature.
func (s *Service) SetStock(ctx context.Context, itemID string, stock float64, countedBy string) error {
	if err := s.repo.SetStock(ctx, itemID, stock, countedBy); err != nil {
		return err
	}
	s.snapshot.Invalidate()
	return nil
}
