// Package match associates free-text line-item names from an OCR draft or a
// supplier order with existing inventory records.
//
// The policy is deliberately simple and deterministic, applied in order with
// the first hit winning:
//
//  1. case-insensitive exact name match
//  2. case-insensitive substring match, in either direction
//  3. no match
//
// When a substring matches several catalog candidates the first one in
// catalog iteration order wins. That is an accepted simplification, not
// silent nondeterminism: given the same catalog and name the result is
// always the same. Fuzzy scoring is intentionally out; it would make the
// matcher untestable without a documented threshold.
package match

import (
	"strings"

	"goods-receiving/feature/catalog/models"
)

// Match returns the catalog item a line-item name refers to, if any.
func Match(name string, items []models.InventoryItem) (*models.InventoryItem, bool) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, false
	}
	lower := strings.ToLower(trimmed)

	// Pass 1: exact
	for i := range items {
		if strings.ToLower(strings.TrimSpace(items[i].Name)) == lower {
			return &items[i], true
		}
	}

	// Pass 2: substring, either direction
	for i := range items {
		cand := strings.ToLower(strings.TrimSpace(items[i].Name))
		if cand == "" {
			continue
		}
		if strings.Contains(cand, lower) || strings.Contains(lower, cand) {
			return &items[i], true
		}
	}

	return nil, false
}
