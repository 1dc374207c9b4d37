package inventory

import (
	"context"
	"testing"
)

func TestSeedLoadsCatalogOnce(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	if err := Seed(ctx, repo, testLogger(), 5); err != nil {
		t.Fatalf("seed: %v", err)
	}

	count, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != int64(len(seedCatalog)) {
		t.Fatalf("expected %d records, got %d", len(seedCatalog), count)
	}

	record, err := repo.GetRecord(ctx, 15)
	if err != nil {
		t.Fatalf("get record: %v", err)
	}
	if record == nil || record.ProductName != "Leg Press Machine" || record.StockQuantity != 1 {
		t.Fatalf("unexpected seeded record: %+v", record)
	}
	if record.ReservedQuantity != 0 || record.MinStockLevel != 5 {
		t.Fatalf("expected default hold and floor, got %+v", record)
	}
}

func TestSeedIsIdempotent(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	if err := Seed(ctx, repo, testLogger(), 5); err != nil {
		t.Fatalf("seed: %v", err)
	}

	// Drift a live quantity, then reseed. The drift must survive.
	swapped, err := repo.CompareAndSwapQuantities(ctx, 1, 15, 0, 9, 2)
	if err != nil || !swapped {
		t.Fatalf("swap: swapped=%v err=%v", swapped, err)
	}

	if err := Seed(ctx, repo, testLogger(), 5); err != nil {
		t.Fatalf("reseed: %v", err)
	}

	record, err := repo.GetRecord(ctx, 1)
	if err != nil {
		t.Fatalf("get record: %v", err)
	}
	if record.StockQuantity != 9 || record.ReservedQuantity != 2 {
		t.Fatalf("reseed overwrote live quantities: %+v", record)
	}
}
