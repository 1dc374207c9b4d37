package inventory

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/robertocantu/ironclub-backend/pkg/db/models"
	"github.com/robertocantu/ironclub-backend/pkg/enums"
	pkgerrors "github.com/robertocantu/ironclub-backend/pkg/errors"
	"github.com/robertocantu/ironclub-backend/pkg/logger"
	"gorm.io/gorm"
)

func TestGetStockUnknownProductZeroView(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, newTestDB(t))
	view, err := svc.GetStock(context.Background(), 999)
	if err != nil {
		t.Fatalf("get stock: %v", err)
	}
	if view.ProductID != 999 || view.Available || view.Quantity != 0 || view.TotalStock != 0 {
		t.Fatalf("expected zeroed view, got %+v", view)
	}
}

func TestReadsTolerateNonPositiveProductID(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, newTestDB(t))
	ctx := context.Background()

	view, err := svc.GetStock(ctx, 0)
	if err != nil {
		t.Fatalf("get stock: %v", err)
	}
	if view.ProductID != 0 || view.Available || view.TotalStock != 0 {
		t.Fatalf("expected zeroed view, got %+v", view)
	}

	history, err := svc.GetStockHistory(ctx, -3, 0)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 0 {
		t.Fatalf("expected empty history, got %+v", history)
	}
}

func TestGetStockView(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	seedRecord(t, db, 6, "Pre-Workout Energy", 10, 4, 5)
	svc := newTestService(t, db)

	view, err := svc.GetStock(context.Background(), 6)
	if err != nil {
		t.Fatalf("get stock: %v", err)
	}
	if !view.Available || view.Quantity != 6 || view.TotalStock != 10 || view.Reserved != 4 {
		t.Fatalf("unexpected view: %+v", view)
	}
	if view.IsLowStock {
		t.Fatalf("available 6 above floor 5 should not flag low stock: %+v", view)
	}
}

func TestReserveStock(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	seedRecord(t, db, 15, "Leg Press Machine", 1, 0, 5)
	svc := newTestService(t, db)
	ctx := context.Background()

	view, err := svc.ReserveStock(ctx, 15, 1)
	if err != nil {
		t.Fatalf("reserve: %v", err)
	}
	if view.Quantity != 0 || view.Reserved != 1 || view.TotalStock != 1 {
		t.Fatalf("unexpected view after reserve: %+v", view)
	}

	_, err = svc.ReserveStock(ctx, 15, 1)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict on exhausted stock, got %v", err)
	}

	history, err := svc.GetStockHistory(ctx, 15, 0)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("expected one history entry, got %d", len(history))
	}
	entry := history[0]
	if entry.ChangeType != enums.StockChangeReserve || entry.QuantityChange != -1 {
		t.Fatalf("unexpected entry: %+v", entry)
	}
	if entry.PreviousQuantity != 1 || entry.NewQuantity != 0 || entry.Reason != ReasonReserved {
		t.Fatalf("expected available quantities logged, got %+v", entry)
	}
}

func TestReserveStockValidation(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, newTestDB(t))
	ctx := context.Background()

	_, err := svc.ReserveStock(ctx, 1, 0)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}

	_, err = svc.ReserveStock(ctx, 999, 1)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestReleaseStockClampsToZero(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	seedRecord(t, db, 5, "Yoga Mat Premium", 20, 2, 5)
	svc := newTestService(t, db)
	ctx := context.Background()

	view, err := svc.ReleaseStock(ctx, 5, 10)
	if err != nil {
		t.Fatalf("release: %v", err)
	}
	if view.Reserved != 0 || view.Quantity != 20 {
		t.Fatalf("expected hold clamped to zero, got %+v", view)
	}

	history, err := svc.GetStockHistory(ctx, 5, 0)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 1 || history[0].QuantityChange != 2 {
		t.Fatalf("expected release of 2 units logged, got %+v", history)
	}
	if history[0].PreviousQuantity != 18 || history[0].NewQuantity != 20 {
		t.Fatalf("expected available quantities logged, got %+v", history[0])
	}
}

func TestUpdateStock(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	seedRecord(t, db, 24, "Stair Climber", 2, 1, 5)
	svc := newTestService(t, db)
	ctx := context.Background()

	view, err := svc.UpdateStock(ctx, 24, 10, "")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if view.TotalStock != 10 || view.Reserved != 1 {
		t.Fatalf("unexpected view after restock: %+v", view)
	}

	if _, err := svc.UpdateStock(ctx, 24, 4, "shrinkage audit"); err != nil {
		t.Fatalf("update down: %v", err)
	}

	history, err := svc.GetStockHistory(ctx, 24, 0)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(history))
	}
	if history[0].ChangeType != enums.StockChangeAdjustment || history[0].Reason != "shrinkage audit" {
		t.Fatalf("unexpected adjustment entry: %+v", history[0])
	}
	if history[1].ChangeType != enums.StockChangeRestock || history[1].Reason != ReasonManualEntry {
		t.Fatalf("unexpected restock entry: %+v", history[1])
	}
	if history[1].PreviousQuantity != 2 || history[1].NewQuantity != 10 {
		t.Fatalf("expected total quantities logged, got %+v", history[1])
	}
}

func TestUpdateStockCannotUndercutReserved(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	seedRecord(t, db, 30, "Training Shoes", 12, 5, 5)
	svc := newTestService(t, db)

	_, err := svc.UpdateStock(context.Background(), 30, 3, "")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}

	_, err = svc.UpdateStock(context.Background(), 30, -1, "")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCompletePurchasePartialOutcomes(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	seedRecord(t, db, 15, "Leg Press Machine", 1, 1, 5)
	seedRecord(t, db, 26, "Boxing Gloves", 15, 5, 5)
	svc := newTestService(t, db)
	ctx := context.Background()

	results, err := svc.CompletePurchase(ctx, []PurchaseItem{
		{ProductID: 15, Quantity: 1},
		{ProductID: 26, Quantity: 3},
		{ProductID: 15, Quantity: 1},
		{ProductID: 999, Quantity: 1},
	})
	if err != nil {
		t.Fatalf("purchase: %v", err)
	}
	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(results))
	}
	if !results[0].Success || results[0].RemainingStock != 0 {
		t.Fatalf("expected first line to succeed, got %+v", results[0])
	}
	if !results[1].Success || results[1].RemainingStock != 12 {
		t.Fatalf("expected second line to succeed, got %+v", results[1])
	}
	if results[2].Success || results[2].Error != "insufficient reserved stock" {
		t.Fatalf("expected third line to fail on an exhausted hold, got %+v", results[2])
	}
	if results[3].Success || results[3].Error == "" {
		t.Fatalf("expected unknown product line to fail, got %+v", results[3])
	}
	record, err := NewRepository(db).GetRecord(ctx, 15)
	if err != nil {
		t.Fatalf("load record: %v", err)
	}
	if record.StockQuantity != 0 || record.ReservedQuantity != 0 {
		t.Fatalf("unexpected record after purchase: %+v", record)
	}

	history, err := svc.GetStockHistory(ctx, 26, 0)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 1 || history[0].ChangeType != enums.StockChangePurchase {
		t.Fatalf("expected purchase entry, got %+v", history)
	}
	if history[0].PreviousQuantity != 15 || history[0].NewQuantity != 12 {
		t.Fatalf("expected total quantities logged, got %+v", history[0])
	}
}

func TestCompletePurchaseEmptyItems(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, newTestDB(t))
	_, err := svc.CompletePurchase(context.Background(), nil)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestGetLowStockItemsMostDepletedFirst(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	seedRecord(t, db, 1, "Adjustable Dumbbell Set", 15, 0, 5)
	seedRecord(t, db, 3, "Smart Treadmill", 3, 1, 5)
	seedRecord(t, db, 15, "Leg Press Machine", 2, 1, 5)
	seedRecord(t, db, 24, "Stair Climber", 2, 0, 5)
	seedRecord(t, db, 30, "Rowing Machine", 2, 2, 5) // sold out, not low
	svc := newTestService(t, db)

	items, err := svc.GetLowStockItems(context.Background())
	if err != nil {
		t.Fatalf("low stock: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 low stock items, got %d", len(items))
	}
	for i, wantID := range []int{15, 3, 24} {
		if items[i].ProductID != wantID {
			t.Fatalf("expected product %d at position %d, got %+v", wantID, i, items)
		}
	}
}

func TestMutateRetriesOnContention(t *testing.T) {
	t.Parallel()

	fake := &fakeRepository{
		record:      models.StockRecord{ProductID: 8, ProductName: "Olympic Barbell Rod", StockQuantity: 8, MinStockLevel: 5},
		rejectSwaps: 2,
		driftOnSwap: true,
	}
	svc := newFakeService(t, fake)

	view, err := svc.ReserveStock(context.Background(), 8, 1)
	if err != nil {
		t.Fatalf("reserve: %v", err)
	}
	if fake.swapCalls != 3 {
		t.Fatalf("expected 3 swap attempts, got %d", fake.swapCalls)
	}
	if view.Reserved != 1 {
		t.Fatalf("unexpected view: %+v", view)
	}
}

func TestMutateGivesUpAfterMaxAttempts(t *testing.T) {
	t.Parallel()

	fake := &fakeRepository{
		record:      models.StockRecord{ProductID: 8, ProductName: "Olympic Barbell Rod", StockQuantity: 8, MinStockLevel: 5},
		rejectSwaps: casMaxAttempts,
	}
	svc := newFakeService(t, fake)

	_, err := svc.ReserveStock(context.Background(), 8, 1)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error after exhausted retries, got %v", err)
	}
}

func TestMutationSurvivesHistoryAppendFailure(t *testing.T) {
	t.Parallel()

	fake := &fakeRepository{
		record:     models.StockRecord{ProductID: 2, ProductName: "Whey Protein Powder", StockQuantity: 25, MinStockLevel: 5},
		historyErr: errors.New("history table gone"),
	}
	svc := newFakeService(t, fake)

	view, err := svc.ReserveStock(context.Background(), 2, 5)
	if err != nil {
		t.Fatalf("expected mutation to survive history failure, got %v", err)
	}
	if view.Reserved != 5 {
		t.Fatalf("unexpected view: %+v", view)
	}
}

func newTestService(t *testing.T, db *gorm.DB) Service {
	t.Helper()
	svc, err := NewService(NewRepository(db), testLogger())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func newFakeService(t *testing.T, repo Repository) Service {
	t.Helper()
	svc, err := NewService(repo, testLogger())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "inventory-test", Output: io.Discard})
}

func seedRecord(t *testing.T, db *gorm.DB, productID int, name string, stock, reserved, minLevel int) {
	t.Helper()
	record := models.StockRecord{
		ProductID:        productID,
		ProductName:      name,
		StockQuantity:    stock,
		ReservedQuantity: reserved,
		MinStockLevel:    minLevel,
	}
	if err := db.Create(&record).Error; err != nil {
		t.Fatalf("seed record %d: %v", productID, err)
	}
}

// fakeRepository drives the retry loop deterministically.
type fakeRepository struct {
	record      models.StockRecord
	rejectSwaps int
	driftOnSwap bool
	swapCalls   int
	historyErr  error
	history     []models.StockHistoryEntry
}

func (f *fakeRepository) GetRecord(ctx context.Context, productID int) (*models.StockRecord, error) {
	if productID != f.record.ProductID {
		return nil, nil
	}
	record := f.record
	return &record, nil
}

func (f *fakeRepository) ListRecords(ctx context.Context) ([]models.StockRecord, error) {
	return []models.StockRecord{f.record}, nil
}

func (f *fakeRepository) UpsertRecord(ctx context.Context, record *models.StockRecord) error {
	f.record = *record
	return nil
}

func (f *fakeRepository) CompareAndSwapQuantities(ctx context.Context, productID, expectedStock, expectedReserved, newStock, newReserved int) (bool, error) {
	f.swapCalls++
	if f.swapCalls <= f.rejectSwaps {
		if f.driftOnSwap {
			f.record.StockQuantity--
		}
		return false, nil
	}
	if f.record.StockQuantity != expectedStock || f.record.ReservedQuantity != expectedReserved {
		return false, nil
	}
	f.record.StockQuantity = newStock
	f.record.ReservedQuantity = newReserved
	return true, nil
}

func (f *fakeRepository) AppendHistory(ctx context.Context, entry *models.StockHistoryEntry) error {
	if f.historyErr != nil {
		return f.historyErr
	}
	f.history = append(f.history, *entry)
	return nil
}

func (f *fakeRepository) ListHistory(ctx context.Context, productID, limit int) ([]models.StockHistoryEntry, error) {
	return f.history, nil
}

func (f *fakeRepository) Count(ctx context.Context) (int64, error) {
	return 1, nil
}
