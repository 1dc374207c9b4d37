package inventory

import (
	"context"
	"fmt"

	pkgerrors "github.com/robertocantu/ironclub-backend/pkg/errors"
)

// Overview aggregates the whole catalog's stock position for admin dashboards.
type Overview struct {
	TotalProducts   int `json:"total_products"`
	TotalStock      int `json:"total_stock"`
	TotalReserved   int `json:"total_reserved"`
	TotalAvailable  int `json:"total_available"`
	LowStockCount   int `json:"low_stock_count"`
	OutOfStockCount int `json:"out_of_stock_count"`
}

// Reporter derives aggregate stock figures from the ledger store.
type Reporter struct {
	repo Repository
}

// NewReporter wires a reporter against the stock repository.
func NewReporter(repo Repository) (*Reporter, error) {
	if repo == nil {
		return nil, fmt.Errorf("inventory repository required")
	}
	return &Reporter{repo: repo}, nil
}

// Overview walks the catalog once and tallies totals.
func (r *Reporter) Overview(ctx context.Context) (Overview, error) {
	records, err := r.repo.ListRecords(ctx)
	if err != nil {
		return Overview{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list stock records")
	}

	overview := Overview{TotalProducts: len(records)}
	for _, record := range records {
		available := record.Available()
		overview.TotalStock += record.StockQuantity
		overview.TotalReserved += record.ReservedQuantity
		overview.TotalAvailable += available
		if available <= 0 {
			overview.OutOfStockCount++
			continue
		}
		if available <= record.MinStockLevel {
			overview.LowStockCount++
		}
	}
	return overview, nil
}
