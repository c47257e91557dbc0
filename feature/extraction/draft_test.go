package extraction

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"No fence", `{"a":1}`, `{"a":1}`},
		{"Json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"Bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"Leading whitespace", "  ```json\n{}\n```  ", "{}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stripFences(tt.in))
		})
	}
}

func TestParseDraft(t *testing.T) {
	t.Run("Missing items becomes empty slice", func(t *testing.T) {
		draft, err := parseDraft([]byte(`{"supplier_detected": "ביסקוטי", "invoice_number": "77"}`))
		assert.NoError(t, err)
		assert.NotNil(t, draft.Items)
		assert.Empty(t, draft.Items)
	})

	t.Run("Invalid JSON", func(t *testing.T) {
		_, err := parseDraft([]byte("not json at all"))
		assert.Error(t, err)
	})

	t.Run("Numeric supplier id", func(t *testing.T) {
		draft, err := parseDraft([]byte(`{"items": [{"name": "קמח", "supplier_id": 5, "amount": 3}]}`))
		assert.NoError(t, err)
		assert.Len(t, draft.Items, 1)
		assert.NotNil(t, draft.Items[0].SupplierID)
		assert.Equal(t, "5", *draft.Items[0].SupplierID)
		assert.Equal(t, 3.0, draft.Items[0].CurrentStockAdded)
	})
}
