package receiving

// State is the receiving session lifecycle state.
type State string

const (
	// StateNone means no session exists.
	StateNone State = "none"
	// StateDraft is a freshly initialized session before any adjustment.
	StateDraft State = "draft"
	// StateAdjusting means the user is reconciling counted quantities.
	StateAdjusting State = "adjusting"
	// StateCommitting means the stock update is in flight.
	StateCommitting State = "committing"
)

// SessionItem is one reconciled line of a receiving session.
type SessionItem struct {
	// ID is the catalog id when matched, otherwise a synthesized temp id.
	ID   string `json:"id"`
	Name string `json:"name"`
	Unit string `json:"unit"`
	// OrderedQty is present only when the session originated from an order.
	OrderedQty *float64 `json:"ordered_qty"`
	// InvoicedQty is present only when an OCR draft supplied it.
	InvoicedQty *float64 `json:"invoiced_qty"`
	// ActualQty is the physically counted quantity, never negative.
	ActualQty float64 `json:"actual_qty"`
	// CountStep governs only the +/- adjustment increment, not manual entry.
	CountStep float64 `json:"count_step"`
	UnitPrice float64 `json:"unit_price"`
	Category  string  `json:"category"`
	// IsNew is true when no catalog match was found; the item has no catalog
	// record until commit.
	IsNew bool `json:"is_new"`
	// CatalogID links to the matched inventory record. Empty while IsNew.
	CatalogID string `json:"catalog_id,omitempty"`
	// Committed marks lines already applied by a previous commit attempt so
	// a retry does not add their stock twice.
	Committed bool `json:"committed"`
}

// HasDiscrepancy reports an invoiced-vs-counted mismatch. Pure and
// side-effect free; it flags items visually and never blocks the commit.
// OrderedQty is deliberately excluded from the formula: ordered-vs-delivered
// gaps are a supplier conversation, not a counting error.
func (i SessionItem) HasDiscrepancy() bool {
	return i.InvoicedQty != nil && i.ActualQty != *i.InvoicedQty
}

// Session is the ephemeral, in-memory unit of work for one delivery. It is
// destroyed on cancel or after a successful commit and does not survive a
// restart.
type Session struct {
	ID            string        `json:"id"`
	SupplierName  *string       `json:"supplier_name"`
	SupplierID    *string       `json:"supplier_id"`
	OrderID       *string       `json:"order_id"`
	InvoiceNumber string        `json:"invoice_number,omitempty"`
	Items         []SessionItem `json:"items"`
}

// clone returns a deep copy safe to hand to the presentation layer.
// Pointer fields are never mutated after initialization, so sharing their
// targets is fine.
func (s *Session) clone() *Session {
	if s == nil {
		return nil
	}
	cp := *s
	cp.Items = make([]SessionItem, len(s.Items))
	copy(cp.Items, s.Items)
	return &cp
}

// item returns a pointer into the session's item slice, or nil.
func (s *Session) item(id string) *SessionItem {
	for i := range s.Items {
		if s.Items[i].ID == id {
			return &s.Items[i]
		}
	}
	return nil
}
