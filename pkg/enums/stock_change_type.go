package enums

import "fmt"

// StockChangeType classifies a stock history entry. The set is closed so
// history queries stay reliable; free-text change types are not accepted.
type StockChangeType string

const (
	StockChangePurchase   StockChangeType = "purchase"
	StockChangeRestock    StockChangeType = "restock"
	StockChangeReserve    StockChangeType = "reserve"
	StockChangeRelease    StockChangeType = "release"
	StockChangeAdjustment StockChangeType = "adjustment"
)

var validStockChangeTypes = []StockChangeType{
	StockChangePurchase,
	StockChangeRestock,
	StockChangeReserve,
	StockChangeRelease,
	StockChangeAdjustment,
}

// String implements fmt.Stringer.
func (s StockChangeType) String() string {
	return string(s)
}

// IsValid reports whether the value is a known StockChangeType.
func (s StockChangeType) IsValid() bool {
	for _, candidate := range validStockChangeTypes {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseStockChangeType converts raw input into a StockChangeType.
func ParseStockChangeType(value string) (StockChangeType, error) {
	for _, candidate := range validStockChangeTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid stock change type %q", value)
}
