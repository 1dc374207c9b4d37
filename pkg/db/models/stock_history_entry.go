package models

import (
	"time"

	"github.com/robertocantu/ironclub-backend/pkg/enums"
)

// StockHistoryEntry is one immutable audit record of a quantity change.
// Rows are append-only; nothing updates or deletes them.
//
// PreviousQuantity/NewQuantity track the counter the change type moves:
// available stock for reserve/release, total stock for
// purchase/restock/adjustment.
type StockHistoryEntry struct {
	ID               int64                 `gorm:"column:id;primaryKey;autoIncrement"`
	ProductID        int                   `gorm:"column:product_id;not null;index"`
	ChangeType       enums.StockChangeType `gorm:"column:change_type;type:text;not null"`
	QuantityChange   int                   `gorm:"column:quantity_change;not null"`
	PreviousQuantity int                   `gorm:"column:previous_quantity;not null"`
	NewQuantity      int                   `gorm:"column:new_quantity;not null"`
	Reason           string                `gorm:"column:reason"`
	Timestamp        time.Time             `gorm:"column:timestamp;autoCreateTime"`
}

// TableName overrides GORM's pluralization.
func (StockHistoryEntry) TableName() string { return "stock_history" }
