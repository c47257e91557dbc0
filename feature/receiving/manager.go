package receiving

import (
	"context"
	"sync"

	"goods-receiving/feature/catalog/models"
	"goods-receiving/feature/extraction"
	"goods-receiving/feature/orders"
	"goods-receiving/feature/receiving/match"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CatalogSource provides the catalog view used for matching and gets
// invalidated after a committed stock change.
type CatalogSource interface {
	Items(ctx context.Context) ([]models.InventoryItem, error)
	Invalidate()
}

// Manager owns the single live receiving session of this device and
// serializes every mutation of it. The session itself is plain data; all
// concurrency control lives here.
type Manager struct {
	mu         sync.Mutex
	state      State
	session    *Session
	confirming bool
	lastErr    error

	catalog CatalogSource
	commit  *CommitService
	logger  *zap.Logger
}

// NewManager creates a session manager in the None state.
func NewManager(catalog CatalogSource, commit *CommitService, logger *zap.Logger) *Manager {
	return &Manager{
		state:   StateNone,
		catalog: catalog,
		commit:  commit,
		logger:  logger,
	}
}

// InitializeSession builds a session from an extraction draft, matching each
// line item against the catalog. Fails when a session is already active or
// the draft has no lines.
func (m *Manager) InitializeSession(ctx context.Context, draft *extraction.Draft) (*Session, error) {
	if len(draft.Items) == 0 {
		return nil, ErrEmptyDraft
	}

	catalog, err := m.catalog.Items(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]SessionItem, 0, len(draft.Items))
	for _, line := range draft.Items {
		invoiced := line.CurrentStockAdded
		item := SessionItem{
			ID:          "temp-" + uuid.NewString(),
			Name:        line.Name,
			Unit:        line.Unit,
			InvoicedQty: &invoiced,
			ActualQty:   invoiced,
			CountStep:   1,
			UnitPrice:   line.CostPerUnit,
			Category:    line.Category,
			IsNew:       true,
		}
		if hit, ok := match.Match(line.Name, catalog); ok {
			item.ID = hit.ID
			item.CatalogID = hit.ID
			item.IsNew = false
			item.CountStep = hit.CountStep
			if item.Unit == "" {
				item.Unit = hit.Unit
			}
			if item.Category == "" {
				item.Category = hit.Category
			}
		}
		items = append(items, item)
	}

	var supplierName *string
	if draft.SupplierDetected != "" {
		name := draft.SupplierDetected
		supplierName = &name
	}

	session := &Session{
		ID:            uuid.NewString(),
		SupplierName:  supplierName,
		SupplierID:    draft.SupplierID,
		InvoiceNumber: draft.InvoiceNumber,
		Items:         items,
	}

	return m.install(session)
}

// InitializeFromOrder builds a session from a pending supplier order. Line
// quantities arrive as OrderedQty; counted quantities start at the ordered
// amount since a correct delivery needs no adjustment.
func (m *Manager) InitializeFromOrder(ctx context.Context, order *orders.SupplierOrder) (*Session, error) {
	if len(order.Items) == 0 {
		return nil, ErrEmptyDraft
	}

	catalog, err := m.catalog.Items(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]SessionItem, 0, len(order.Items))
	for _, line := range order.Items {
		ordered := line.Qty
		item := SessionItem{
			ID:         "temp-" + uuid.NewString(),
			Name:       line.Name,
			Unit:       line.Unit,
			OrderedQty: &ordered,
			ActualQty:  ordered,
			CountStep:  1,
			IsNew:      true,
		}
		if hit, ok := match.Match(line.Name, catalog); ok {
			item.ID = hit.ID
			item.CatalogID = hit.ID
			item.IsNew = false
			item.CountStep = hit.CountStep
			item.Category = hit.Category
			if item.Unit == "" {
				item.Unit = hit.Unit
			}
		}
		items = append(items, item)
	}

	orderID := order.ID
	session := &Session{
		ID:           uuid.NewString(),
		SupplierName: &order.SupplierName,
		SupplierID:   order.SupplierID,
		OrderID:      &orderID,
		Items:        items,
	}

	return m.install(session)
}

// install atomically claims the manager for a freshly built session.
func (m *Manager) install(session *Session) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != StateNone {
		return nil, ErrSessionActive
	}

	m.session = session
	m.state = StateDraft
	m.lastErr = nil

	m.logger.Info("Receiving session initialized",
		zap.String("session_id", session.ID),
		zap.Int("items", len(session.Items)))

	return session.clone(), nil
}

// UpdateActualQty sets an item's counted quantity from manual entry.
// Negative input is clamped to zero, and any adjustment moves the session
// out of Draft.
func (m *Manager) UpdateActualQty(id string, qty float64) error {
	return m.adjust(id, func(item *SessionItem) {
		if qty < 0 {
			qty = 0
		}
		item.ActualQty = qty
	})
}

// IncrementQty bumps an item's counted quantity by its count step.
func (m *Manager) IncrementQty(id string) error {
	return m.adjust(id, func(item *SessionItem) {
		item.ActualQty += item.step()
	})
}

// DecrementQty lowers an item's counted quantity by its count step,
// clamping at zero.
func (m *Manager) DecrementQty(id string) error {
	return m.adjust(id, func(item *SessionItem) {
		next := item.ActualQty - item.step()
		if next < 0 {
			next = 0
		}
		item.ActualQty = next
	})
}

func (i *SessionItem) step() float64 {
	if i.CountStep > 0 {
		return i.CountStep
	}
	return 1
}

func (m *Manager) adjust(id string, fn func(*SessionItem)) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch m.state {
	case StateNone:
		return ErrNoSession
	case StateCommitting:
		return ErrCommitInProgress
	}

	item := m.session.item(id)
	if item == nil {
		return ErrItemNotInSession
	}

	fn(item)
	m.state = StateAdjusting
	return nil
}

// ClearSession discards the live session. Clearing when no session exists is
// a no-op; clearing during a commit is rejected.
func (m *Manager) ClearSession() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch m.state {
	case StateNone:
		return nil
	case StateCommitting:
		return ErrCommitInProgress
	}

	m.logger.Info("Receiving session cleared", zap.String("session_id", m.session.ID))
	m.session = nil
	m.state = StateNone
	m.lastErr = nil
	return nil
}

// ConfirmReceipt runs the commit. The lock is held only to flip state; the
// writes themselves run unlocked against a private copy of the session so a
// slow store does not block session reads, and Snapshot keeps serving the
// polling device while the commit is in flight. The per-item bookkeeping is
// merged back under the lock once the commit returns.
//
// On success the session is destroyed. On failure it survives in Adjusting
// with per-item Committed flags recording what already went through, and the
// error is retained for the session view until the next attempt.
func (m *Manager) ConfirmReceipt(ctx context.Context, countedBy string) error {
	m.mu.Lock()
	if m.state == StateNone {
		m.mu.Unlock()
		return ErrNoSession
	}
	if m.confirming {
		m.mu.Unlock()
		return ErrCommitInProgress
	}
	m.confirming = true
	m.state = StateCommitting
	session := m.session
	work := session.clone()
	m.mu.Unlock()

	err := m.commit.Commit(ctx, work, countedBy)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.confirming = false

	// The item set is fixed at init and mutations are rejected while
	// Committing, so positions still line up.
	for i := range work.Items {
		session.Items[i].Committed = work.Items[i].Committed
		session.Items[i].IsNew = work.Items[i].IsNew
		session.Items[i].CatalogID = work.Items[i].CatalogID
	}

	if err != nil {
		m.state = StateAdjusting
		m.lastErr = err
		m.logger.Error("Receiving commit failed",
			zap.String("session_id", session.ID), zap.Error(err))
		return err
	}

	m.logger.Info("Receiving session committed",
		zap.String("session_id", session.ID),
		zap.Int("items", len(session.Items)))

	m.session = nil
	m.state = StateNone
	m.lastErr = nil
	m.catalog.Invalidate()
	return nil
}

// Snapshot returns the current state and a deep copy of the session for the
// presentation layer. The copy may be read without holding any lock.
func (m *Manager) Snapshot() (State, *Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state, m.session.clone()
}

// IsConfirming reports whether a commit is in flight.
func (m *Manager) IsConfirming() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.confirming
}

// LastError returns the retained error of the last failed commit, if any.
func (m *Manager) LastError() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastErr
}
