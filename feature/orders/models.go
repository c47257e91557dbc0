package orders

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Order statuses.
const (
	StatusAwaitingReceipt = "awaiting_receipt"
	StatusReceived        = "received"
)

// OrderLine is one ordered position: what was asked for, not what arrived.
type OrderLine struct {
	Name string  `json:"name"`
	Qty  float64 `json:"qty"`
	Unit string  `json:"unit"`
}

// OrderLines is stored as a JSON column on the order row.
type OrderLines []OrderLine

// Value implements driver.Valuer.
func (l OrderLines) Value() (driver.Value, error) {
	return json.Marshal(l)
}

// Scan implements sql.Scanner.
func (l *OrderLines) Scan(value any) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	case nil:
		*l = nil
		return nil
	default:
		return fmt.Errorf("unsupported order lines column type %T", value)
	}
}

// SupplierOrder is a previously placed supplier order awaiting delivery.
type SupplierOrder struct {
	ID           string     `gorm:"column:id;primaryKey" json:"id"`
	SupplierName string     `gorm:"column:supplier_name" json:"supplier_name"`
	SupplierID   *string    `gorm:"column:supplier_id" json:"supplier_id"`
	CreatedAt    time.Time  `gorm:"column:created_at" json:"created_at"`
	Status       string     `gorm:"column:status" json:"status"`
	Items        OrderLines `gorm:"column:items;type:json" json:"items"`
	BusinessID   string     `gorm:"column:business_id;index" json:"business_id"`
}

// TableName overrides the table name.
func (SupplierOrder) TableName() string {
	return "supplier_orders"
}
