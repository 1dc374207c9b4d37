package inventory

import (
	"context"
	"fmt"
	"sort"

	"github.com/robertocantu/ironclub-backend/pkg/db/models"
	"github.com/robertocantu/ironclub-backend/pkg/enums"
	pkgerrors "github.com/robertocantu/ironclub-backend/pkg/errors"
	"github.com/robertocantu/ironclub-backend/pkg/logger"
)

// casMaxAttempts bounds the optimistic retry loop on contended products.
const casMaxAttempts = 5

// Default reasons recorded against ledger entries when callers do not supply one.
const (
	ReasonReserved    = "Item reserved in cart"
	ReasonReleased    = "Item released from cart"
	ReasonPurchased   = "Item purchased"
	ReasonManualEntry = "Manual stock update"
)

// Service exposes the stock operations backing the storefront and admin surfaces.
type Service interface {
	GetStock(ctx context.Context, productID int) (StockView, error)
	GetAllStock(ctx context.Context) (map[int]StockView, error)
	ReserveStock(ctx context.Context, productID, quantity int) (StockView, error)
	ReleaseStock(ctx context.Context, productID, quantity int) (StockView, error)
	UpdateStock(ctx context.Context, productID, quantity int, reason string) (StockView, error)
	CompletePurchase(ctx context.Context, items []PurchaseItem) ([]PurchaseItemResult, error)
	GetLowStockItems(ctx context.Context) ([]LowStockItem, error)
	GetStockHistory(ctx context.Context, productID, limit int) ([]HistoryEntryDTO, error)
}

type service struct {
	repo Repository
	logg *logger.Logger
}

// NewService wires a stock service with the provided repository.
func NewService(repo Repository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("inventory repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, logg: logg}, nil
}

// GetStock returns the stock position for the product. Unknown products get a
// zeroed view rather than an error so storefront reads never fail on catalog gaps.
func (s *service) GetStock(ctx context.Context, productID int) (StockView, error) {
	record, err := s.repo.GetRecord(ctx, productID)
	if err != nil {
		return StockView{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load stock record")
	}
	if record == nil {
		return EmptyStockView(productID), nil
	}
	return ToStockView(record), nil
}

func (s *service) GetAllStock(ctx context.Context) (map[int]StockView, error) {
	records, err := s.repo.ListRecords(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list stock records")
	}
	views := make(map[int]StockView, len(records))
	for i := range records {
		views[records[i].ProductID] = ToStockView(&records[i])
	}
	return views, nil
}

// ReserveStock holds quantity units against the product for a pending cart.
func (s *service) ReserveStock(ctx context.Context, productID, quantity int) (StockView, error) {
	if err := validateMutation(productID, quantity); err != nil {
		return StockView{}, err
	}

	ctx = s.logg.WithProductID(ctx, productID)
	record, err := s.mutate(ctx, productID, func(record *models.StockRecord) (int, int, *models.StockHistoryEntry, error) {
		available := record.Available()
		if available < quantity {
			return 0, 0, nil, pkgerrors.New(pkgerrors.CodeConflict, "insufficient stock available").
				WithDetails(map[string]int{"requested": quantity, "available": available})
		}
		entry := &models.StockHistoryEntry{
			ProductID:        productID,
			ChangeType:       enums.StockChangeReserve,
			QuantityChange:   -quantity,
			PreviousQuantity: available,
			NewQuantity:      available - quantity,
			Reason:           ReasonReserved,
		}
		return record.StockQuantity, record.ReservedQuantity + quantity, entry, nil
	})
	if err != nil {
		return StockView{}, err
	}
	return ToStockView(record), nil
}

// ReleaseStock returns previously reserved units to the sellable pool. Releasing
// more than is currently reserved clamps the hold to zero instead of failing, so
// replayed cart removals stay harmless.
func (s *service) ReleaseStock(ctx context.Context, productID, quantity int) (StockView, error) {
	if err := validateMutation(productID, quantity); err != nil {
		return StockView{}, err
	}

	ctx = s.logg.WithProductID(ctx, productID)
	record, err := s.mutate(ctx, productID, func(record *models.StockRecord) (int, int, *models.StockHistoryEntry, error) {
		released := quantity
		if released > record.ReservedQuantity {
			released = record.ReservedQuantity
		}
		available := record.Available()
		entry := &models.StockHistoryEntry{
			ProductID:        productID,
			ChangeType:       enums.StockChangeRelease,
			QuantityChange:   released,
			PreviousQuantity: available,
			NewQuantity:      available + released,
			Reason:           ReasonReleased,
		}
		return record.StockQuantity, record.ReservedQuantity - released, entry, nil
	})
	if err != nil {
		return StockView{}, err
	}
	return ToStockView(record), nil
}

// UpdateStock sets the product's total stock to quantity. The current reservation
// hold is preserved, so the new total may not undercut it.
func (s *service) UpdateStock(ctx context.Context, productID, quantity int, reason string) (StockView, error) {
	if productID <= 0 {
		return StockView{}, pkgerrors.New(pkgerrors.CodeValidation, "product id must be positive")
	}
	if quantity < 0 {
		return StockView{}, pkgerrors.New(pkgerrors.CodeValidation, "quantity cannot be negative")
	}
	if reason == "" {
		reason = ReasonManualEntry
	}

	ctx = s.logg.WithProductID(ctx, productID)
	record, err := s.mutate(ctx, productID, func(record *models.StockRecord) (int, int, *models.StockHistoryEntry, error) {
		if quantity < record.ReservedQuantity {
			return 0, 0, nil, pkgerrors.New(pkgerrors.CodeStateConflict, "new quantity cannot undercut reserved stock").
				WithDetails(map[string]int{"quantity": quantity, "reserved": record.ReservedQuantity})
		}
		changeType := enums.StockChangeAdjustment
		if quantity > record.StockQuantity {
			changeType = enums.StockChangeRestock
		}
		entry := &models.StockHistoryEntry{
			ProductID:        productID,
			ChangeType:       changeType,
			QuantityChange:   quantity - record.StockQuantity,
			PreviousQuantity: record.StockQuantity,
			NewQuantity:      quantity,
			Reason:           reason,
		}
		return quantity, record.ReservedQuantity, entry, nil
	})
	if err != nil {
		return StockView{}, err
	}
	return ToStockView(record), nil
}

// CompletePurchase consumes stock for each checkout line independently. A failed
// line never rolls back the lines before it; callers get the per-line outcomes.
func (s *service) CompletePurchase(ctx context.Context, items []PurchaseItem) ([]PurchaseItemResult, error) {
	if len(items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "purchase requires at least one item")
	}

	results := make([]PurchaseItemResult, 0, len(items))
	for _, item := range items {
		results = append(results, s.purchaseItem(ctx, item))
	}
	return results, nil
}

func (s *service) purchaseItem(ctx context.Context, item PurchaseItem) PurchaseItemResult {
	result := PurchaseItemResult{ProductID: item.ProductID, Quantity: item.Quantity}
	if err := validateMutation(item.ProductID, item.Quantity); err != nil {
		result.Error = err.Error()
		return result
	}

	ctx = s.logg.WithProductID(ctx, item.ProductID)
	record, err := s.mutate(ctx, item.ProductID, func(record *models.StockRecord) (int, int, *models.StockHistoryEntry, error) {
		// The hold placed at reserve time must still cover the purchase; the
		// deduction from availability already happened when the hold was taken.
		if record.ReservedQuantity < item.Quantity {
			return 0, 0, nil, pkgerrors.New(pkgerrors.CodeConflict, "insufficient reserved stock").
				WithDetails(map[string]int{"requested": item.Quantity, "reserved": record.ReservedQuantity})
		}
		newReserved := record.ReservedQuantity - item.Quantity
		entry := &models.StockHistoryEntry{
			ProductID:        item.ProductID,
			ChangeType:       enums.StockChangePurchase,
			QuantityChange:   -item.Quantity,
			PreviousQuantity: record.StockQuantity,
			NewQuantity:      record.StockQuantity - item.Quantity,
			Reason:           ReasonPurchased,
		}
		return record.StockQuantity - item.Quantity, newReserved, entry, nil
	})
	if err != nil {
		if appErr := pkgerrors.As(err); appErr != nil {
			result.Error = appErr.Message()
		} else {
			result.Error = err.Error()
		}
		return result
	}

	result.Success = true
	result.RemainingStock = record.StockQuantity
	return result
}

// GetLowStockItems lists products whose sellable quantity sits at or below
// their floor, most depleted first.
func (s *service) GetLowStockItems(ctx context.Context) ([]LowStockItem, error) {
	records, err := s.repo.ListRecords(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list stock records")
	}

	items := make([]LowStockItem, 0)
	for _, record := range records {
		available := record.Available()
		// Sold-out products are out of stock, not low; only sellable
		// quantities at or below the floor raise the alert.
		if available <= 0 || available > record.MinStockLevel {
			continue
		}
		items = append(items, LowStockItem{
			ProductID:     record.ProductID,
			ProductName:   record.ProductName,
			Available:     available,
			TotalStock:    record.StockQuantity,
			Reserved:      record.ReservedQuantity,
			MinStockLevel: record.MinStockLevel,
		})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Available != items[j].Available {
			return items[i].Available < items[j].Available
		}
		return items[i].ProductID < items[j].ProductID
	})
	return items, nil
}

// GetStockHistory lists the product's ledger entries, newest first. Like the
// stock reads it has no existence precondition; unknown products yield an
// empty list.
func (s *service) GetStockHistory(ctx context.Context, productID, limit int) ([]HistoryEntryDTO, error) {
	entries, err := s.repo.ListHistory(ctx, productID, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list stock history")
	}
	dtos := make([]HistoryEntryDTO, 0, len(entries))
	for _, entry := range entries {
		dtos = append(dtos, ToHistoryEntryDTO(entry))
	}
	return dtos, nil
}

// mutateFn inspects the current record and returns the new stock and reserved
// quantities plus the history entry to append. Returning an error aborts the
// mutation without retrying.
type mutateFn func(record *models.StockRecord) (newStock, newReserved int, entry *models.StockHistoryEntry, err error)

// mutate runs one optimistic update against the product. It re-reads and
// retries when another writer got there first, up to casMaxAttempts, then
// reports the contention as a dependency failure.
func (s *service) mutate(ctx context.Context, productID int, fn mutateFn) (*models.StockRecord, error) {
	for attempt := 0; attempt < casMaxAttempts; attempt++ {
		record, err := s.repo.GetRecord(ctx, productID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load stock record")
		}
		if record == nil {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}

		newStock, newReserved, entry, err := fn(record)
		if err != nil {
			return nil, err
		}

		swapped, err := s.repo.CompareAndSwapQuantities(ctx, productID, record.StockQuantity, record.ReservedQuantity, newStock, newReserved)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: swap stock quantities")
		}
		if !swapped {
			continue
		}

		record.StockQuantity = newStock
		record.ReservedQuantity = newReserved
		s.appendHistory(ctx, entry)
		return record, nil
	}
	return nil, pkgerrors.New(pkgerrors.CodeDependency, "stock update contention, try again")
}

// appendHistory records the ledger entry for an applied mutation. The mutation
// has already committed, so a failed append is logged and swallowed rather than
// surfaced to the caller.
func (s *service) appendHistory(ctx context.Context, entry *models.StockHistoryEntry) {
	if entry == nil {
		return
	}
	if err := s.repo.AppendHistory(ctx, entry); err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "change_type", entry.ChangeType.String()), "stock history append failed: "+err.Error())
	}
}

func validateMutation(productID, quantity int) error {
	if productID <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id must be positive")
	}
	if quantity <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}
	return nil
}
