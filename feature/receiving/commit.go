package receiving

import (
	"context"

	"goods-receiving/feature/catalog/models"

	"go.uber.org/zap"
)

// CatalogWriter is the slice of the catalog layer the commit needs.
type CatalogWriter interface {
	CreateItem(ctx context.Context, item *models.InventoryItem) error
	AddStock(ctx context.Context, id string, qty float64, countedBy string) error
}

// OrderMarker flips a supplier order to received after a full commit.
type OrderMarker interface {
	MarkReceived(ctx context.Context, id string) error
}

// CommitService applies a session's counted quantities to the catalog. Each
// item is one independent write; there is no cross-item transaction, so a
// mid-commit failure leaves earlier writes in place.
type CommitService struct {
	catalog CatalogWriter
	orders  OrderMarker // may be nil when order tracking is off
	logger  *zap.Logger
}

// NewCommitService creates the commit service. orders may be nil.
func NewCommitService(catalog CatalogWriter, orders OrderMarker, logger *zap.Logger) *CommitService {
	return &CommitService{catalog: catalog, orders: orders, logger: logger}
}

// Commit walks the session items in order and applies one write each,
// mutating the items' bookkeeping fields in place. Items already marked
// Committed by an earlier attempt are skipped, which is what makes a retry
// after a partial failure safe. Zero and negative counts are skipped too:
// an unticked line means "did not arrive", not "stock is now zero".
//
// On full success the linked order, if any, is marked received; a failure
// there is logged and swallowed because the stock updates already happened
// and must not be reported as lost.
func (s *CommitService) Commit(ctx context.Context, session *Session, countedBy string) error {
	var applied []string

	for i := range session.Items {
		item := &session.Items[i]

		if item.Committed {
			applied = append(applied, item.ID)
			continue
		}
		if item.ActualQty <= 0 {
			item.Committed = true
			continue
		}

		if err := s.apply(ctx, item, session, countedBy); err != nil {
			var remaining []string
			for _, rest := range session.Items[i+1:] {
				if !rest.Committed {
					remaining = append(remaining, rest.ID)
				}
			}
			return &CommitError{
				Applied:    applied,
				FailedItem: item.ID,
				Remaining:  remaining,
				Err:        err,
			}
		}

		item.Committed = true
		applied = append(applied, item.ID)
	}

	if session.OrderID != nil && s.orders != nil {
		if err := s.orders.MarkReceived(ctx, *session.OrderID); err != nil {
			s.logger.Warn("Stock committed but order status update failed",
				zap.String("order_id", *session.OrderID), zap.Error(err))
		}
	}

	return nil
}

// apply performs the single write for one item: an insert for items unknown
// to the catalog, an additive stock bump for known ones.
func (s *CommitService) apply(ctx context.Context, item *SessionItem, session *Session, countedBy string) error {
	if item.IsNew {
		record := models.InventoryItem{
			Name:          item.Name,
			Unit:          item.Unit,
			Category:      item.Category,
			CurrentStock:  item.ActualQty,
			CountStep:     item.CountStep,
			SupplierID:    session.SupplierID,
			LastCountedBy: countedBy,
		}
		if err := s.catalog.CreateItem(ctx, &record); err != nil {
			return err
		}
		item.CatalogID = record.ID
		item.IsNew = false
		return nil
	}

	return s.catalog.AddStock(ctx, item.CatalogID, item.ActualQty, countedBy)
}
