package match_test

import (
	"testing"

	"goods-receiving/feature/catalog/models"
	"goods-receiving/feature/receiving/match"

	"github.com/stretchr/testify/assert"
)

func catalogOf(names ...string) []models.InventoryItem {
	items := make([]models.InventoryItem, 0, len(names))
	for i, n := range names {
		items = append(items, models.InventoryItem{ID: string(rune('a' + i)), Name: n})
	}
	return items
}

func TestMatch_Exact(t *testing.T) {
	catalog := catalogOf("חלב 3%", "קמח לבן")

	item, ok := match.Match("חלב 3%", catalog)
	assert.True(t, ok)
	assert.Equal(t, "חלב 3%", item.Name)
}

func TestMatch_CaseInsensitive(t *testing.T) {
	catalog := catalogOf("Olive Oil Extra")

	item, ok := match.Match("olive oil extra", catalog)
	assert.True(t, ok)
	assert.Equal(t, "Olive Oil Extra", item.Name)
}

func TestMatch_ExactBeatsSubstring(t *testing.T) {
	// "חלב" is a substring of the first entry but an exact match on the second.
	catalog := catalogOf("חלב 3%", "חלב")

	item, ok := match.Match("חלב", catalog)
	assert.True(t, ok)
	assert.Equal(t, "חלב", item.Name)
}

func TestMatch_SubstringBothDirections(t *testing.T) {
	catalog := catalogOf("תות שדה קפוא 1 ק\"ג")

	// Line item name contained in catalog name
	item, ok := match.Match("תות שדה קפוא", catalog)
	assert.True(t, ok)
	assert.Equal(t, "a", item.ID)

	// Catalog name contained in line item name
	item, ok = match.Match("מארז תות שדה קפוא 1 ק\"ג כפול", catalog)
	assert.True(t, ok)
	assert.Equal(t, "a", item.ID)
}

func TestMatch_AmbiguousTakesFirst(t *testing.T) {
	catalog := catalogOf("גבינה צהובה", "גבינה לבנה")

	// Both contain "גבינה"; the first candidate in iteration order wins.
	item, ok := match.Match("גבינה", catalog)
	assert.True(t, ok)
	assert.Equal(t, "גבינה צהובה", item.Name)
}

func TestMatch_Deterministic(t *testing.T) {
	catalog := catalogOf("גבינה צהובה", "גבינה לבנה")

	first, _ := match.Match("גבינה", catalog)
	for i := 0; i < 50; i++ {
		again, ok := match.Match("גבינה", catalog)
		assert.True(t, ok)
		assert.Equal(t, first.ID, again.ID)
	}
}

func TestMatch_NoMatch(t *testing.T) {
	catalog := catalogOf("קמח לבן")

	item, ok := match.Match("שמן זית", catalog)
	assert.False(t, ok)
	assert.Nil(t, item)
}

func TestMatch_EmptyInputs(t *testing.T) {
	_, ok := match.Match("", catalogOf("קמח"))
	assert.False(t, ok)

	_, ok = match.Match("   ", catalogOf("קמח"))
	assert.False(t, ok)

	_, ok = match.Match("קמח", nil)
	assert.False(t, ok)
}
