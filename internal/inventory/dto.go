package inventory

import (
	"time"

	"github.com/robertocantu/ironclub-backend/pkg/db/models"
	"github.com/robertocantu/ironclub-backend/pkg/enums"
)

// StockView is the transport shape for a product's stock position.
type StockView struct {
	ProductID   int       `json:"product_id"`
	ProductName string    `json:"product_name,omitempty"`
	Available   bool      `json:"available"`
	Quantity    int       `json:"quantity"`
	TotalStock  int       `json:"total_stock"`
	Reserved    int       `json:"reserved"`
	IsLowStock  bool      `json:"is_low_stock"`
	LastUpdated time.Time `json:"last_updated,omitempty"`
}

// LowStockItem flags a product whose sellable quantity sits at or below its floor.
type LowStockItem struct {
	ProductID     int    `json:"product_id"`
	ProductName   string `json:"product_name"`
	Available     int    `json:"available"`
	TotalStock    int    `json:"total_stock"`
	Reserved      int    `json:"reserved"`
	MinStockLevel int    `json:"min_stock_level"`
}

// HistoryEntryDTO is the transport shape for one stock ledger entry.
type HistoryEntryDTO struct {
	ID               int64                 `json:"id"`
	ProductID        int                   `json:"product_id"`
	ChangeType       enums.StockChangeType `json:"change_type"`
	QuantityChange   int                   `json:"quantity_change"`
	PreviousQuantity int                   `json:"previous_quantity"`
	NewQuantity      int                   `json:"new_quantity"`
	Reason           string                `json:"reason,omitempty"`
	Timestamp        time.Time             `json:"timestamp"`
}

// PurchaseItem names one product line in a checkout request.
type PurchaseItem struct {
	ProductID int `json:"product_id"`
	Quantity  int `json:"quantity"`
}

// PurchaseItemResult reports the per-line outcome of a checkout.
type PurchaseItemResult struct {
	ProductID      int    `json:"product_id"`
	Quantity       int    `json:"quantity"`
	Success        bool   `json:"success"`
	RemainingStock int    `json:"remaining_stock"`
	Error          string `json:"error,omitempty"`
}

// ToStockView converts a stock record to its transport shape.
func ToStockView(record *models.StockRecord) StockView {
	available := record.Available()
	return StockView{
		ProductID:   record.ProductID,
		ProductName: record.ProductName,
		Available:   available > 0,
		Quantity:    available,
		TotalStock:  record.StockQuantity,
		Reserved:    record.ReservedQuantity,
		IsLowStock:  available <= record.MinStockLevel && available > 0,
		LastUpdated: record.LastUpdated,
	}
}

// EmptyStockView is the zeroed view served for products without a record.
func EmptyStockView(productID int) StockView {
	return StockView{ProductID: productID}
}

// ToHistoryEntryDTO converts a history row to its transport shape.
func ToHistoryEntryDTO(entry models.StockHistoryEntry) HistoryEntryDTO {
	return HistoryEntryDTO{
		ID:               entry.ID,
		ProductID:        entry.ProductID,
		ChangeType:       entry.ChangeType,
		QuantityChange:   entry.QuantityChange,
		PreviousQuantity: entry.PreviousQuantity,
		NewQuantity:      entry.NewQuantity,
		Reason:           entry.Reason,
		Timestamp:        entry.Timestamp,
	}
}
