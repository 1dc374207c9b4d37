package models

import "time"

// StockRecord is the ledger row for one shop product. StockQuantity counts
// every unit on hand, reserved units included; available stock is always
// derived as StockQuantity - ReservedQuantity and never stored.
type StockRecord struct {
	ProductID        int       `gorm:"column:product_id;primaryKey"`
	ProductName      string    `gorm:"column:product_name;not null"`
	StockQuantity    int       `gorm:"column:stock_quantity;not null;default:0"`
	ReservedQuantity int       `gorm:"column:reserved_quantity;not null;default:0"`
	MinStockLevel    int       `gorm:"column:min_stock_level;not null;default:5"`
	LastUpdated      time.Time `gorm:"column:last_updated;autoUpdateTime"`
	CreatedAt        time.Time `gorm:"column:created_at;autoCreateTime"`
}

// TableName overrides GORM's pluralization.
func (StockRecord) TableName() string { return "stock_records" }

// Available returns the units a new shopper may still claim.
func (r StockRecord) Available() int {
	return r.StockQuantity - r.ReservedQuantity
}
