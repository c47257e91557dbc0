package models

import "time"

// InventoryItem is a stocked ingredient or prepared good.
// Rows are owned by the catalog; this service mutates only the stock and
// count-audit columns and never deletes items.
type InventoryItem struct {
	ID            string     `gorm:"column:id;primaryKey" json:"id"`
	Name          string     `gorm:"column:name" json:"name"`
	Unit          string     `gorm:"column:unit" json:"unit"`
	CurrentStock  float64    `gorm:"column:current_stock" json:"current_stock"`
	LowStockAlert float64    `gorm:"column:low_stock_alert" json:"low_stock_alert"`
	CountStep     float64    `gorm:"column:count_step;default:1" json:"count_step"`
	SupplierID    *string    `gorm:"column:supplier_id" json:"supplier_id"`
	Category      string     `gorm:"column:category" json:"category"`
	LastCountedAt *time.Time `gorm:"column:last_counted_at" json:"last_counted_at"`
	LastCountedBy string     `gorm:"column:last_counted_by" json:"last_counted_by"`
	BusinessID    string     `gorm:"column:business_id;index" json:"business_id"`
}

// TableName overrides the table name.
func (InventoryItem) TableName() string {
	return "inventory_items"
}

// IsLowStock reports whether the item is at or below its alert threshold.
func (i InventoryItem) IsLowStock() bool {
	return i.CurrentStock <= i.LowStockAlert
}

// Supplier is a vendor the business orders from.
type Supplier struct {
	ID         string `gorm:"column:id;primaryKey" json:"id"`
	Name       string `gorm:"column:name" json:"name"`
	BusinessID string `gorm:"column:business_id;index" json:"business_id"`
}

// TableName overrides the table name.
func (Supplier) TableName() string {
	return "suppliers"
}
