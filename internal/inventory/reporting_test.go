package inventory

import (
	"context"
	"testing"
)

func TestReporterOverview(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	seedRecord(t, db, 1, "Adjustable Dumbbell Set", 15, 3, 5)
	seedRecord(t, db, 15, "Leg Press Machine", 1, 1, 5)
	seedRecord(t, db, 24, "Stair Climber", 2, 0, 5)

	reporter, err := NewReporter(NewRepository(db))
	if err != nil {
		t.Fatalf("new reporter: %v", err)
	}

	overview, err := reporter.Overview(context.Background())
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	if overview.TotalProducts != 3 {
		t.Fatalf("expected 3 products, got %d", overview.TotalProducts)
	}
	if overview.TotalStock != 18 || overview.TotalReserved != 4 || overview.TotalAvailable != 14 {
		t.Fatalf("unexpected totals: %+v", overview)
	}
	if overview.OutOfStockCount != 1 {
		t.Fatalf("expected product 15 counted out of stock, got %+v", overview)
	}
	if overview.LowStockCount != 1 {
		t.Fatalf("expected product 24 counted low, got %+v", overview)
	}
}

func TestNewReporterRequiresRepo(t *testing.T) {
	t.Parallel()

	if _, err := NewReporter(nil); err == nil {
		t.Fatal("expected error for nil repository")
	}
}
