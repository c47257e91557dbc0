package extraction

import (
	"encoding/json"
	"strings"

	"goods-receiving/core/utils"
)

// Draft is the structured-but-unverified output of a recognition call,
// before human reconciliation.
type Draft struct {
	// SupplierDetected is the supplier name exactly as printed on the document.
	SupplierDetected string `json:"supplier_detected"`
	// SupplierID is set when the service matched the printed name against a
	// known supplier.
	SupplierID *string `json:"supplier_id,omitempty"`
	// InvoiceNumber is the document number.
	InvoiceNumber string `json:"invoice_number"`
	// Date is the date printed on the document (not the scan date), YYYY-MM-DD.
	Date string `json:"date"`
	// Items are the recognized line items.
	Items []DraftItem `json:"items"`
}

// DraftItem is one recognized line item.
type DraftItem struct {
	Name              string  `json:"name"`
	Category          string  `json:"category"`
	Unit              string  `json:"unit"`
	CurrentStockAdded float64 `json:"current_stock_added"`
	CostPerUnit       float64 `json:"cost_per_unit"`
	SupplierID        *string `json:"supplier_id,omitempty"`
	CaseQuantity      float64 `json:"case_quantity"`
	MultiplierMedium  float64 `json:"multiplier_medium"`
}

// UnmarshalJSON tolerates the field aliases different recognition models
// emit: quantities arrive as "current_stock_added", "quantity" or "amount",
// prices as "cost_per_unit" or "price", and numbers are sometimes strings.
func (d *DraftItem) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	d.Name = utils.ToString(firstOf(raw, "name", "description"))
	d.Category = utils.ToString(raw["category"])
	d.Unit = utils.ToString(raw["unit"])
	d.CurrentStockAdded = utils.ToFloat(firstOf(raw, "current_stock_added", "quantity", "amount"))
	d.CostPerUnit = utils.ToFloat(firstOf(raw, "cost_per_unit", "price"))
	d.CaseQuantity = utils.ToFloat(raw["case_quantity"])
	d.MultiplierMedium = utils.ToFloat(raw["multiplier_medium"])

	if sid := utils.ToString(raw["supplier_id"]); sid != "" {
		d.SupplierID = &sid
	}

	return nil
}

// firstOf returns the first present, non-nil value among the given keys.
func firstOf(raw map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := raw[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

// stripFences removes a surrounding markdown code fence from a model
// response. Recognition models frequently wrap their JSON in ```json fences
// even when told not to.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```JSON")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// parseDraft parses a raw recognition response into a Draft.
func parseDraft(body []byte) (*Draft, error) {
	cleaned := stripFences(string(body))

	var draft Draft
	if err := json.Unmarshal([]byte(cleaned), &draft); err != nil {
		return nil, err
	}

	if draft.Items == nil {
		draft.Items = []DraftItem{}
	}

	return &draft, nil
}
