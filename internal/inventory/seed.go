package inventory

import (
	"context"

	"github.com/robertocantu/ironclub-backend/pkg/db/models"
	pkgerrors "github.com/robertocantu/ironclub-backend/pkg/errors"
	"github.com/robertocantu/ironclub-backend/pkg/logger"
)

// seedProduct is one line of the starting catalog.
type seedProduct struct {
	ID    int
	Name  string
	Stock int
}

var seedCatalog = []seedProduct{
	{1, "Adjustable Dumbbell Set", 15},
	{2, "Whey Protein Powder", 25},
	{3, "Smart Treadmill", 3},
	{4, "Fitness Training Guide", 50},
	{5, "Yoga Mat Premium", 20},
	{6, "Pre-Workout Energy", 10},
	{7, "Hyperextension Machine", 2},
	{8, "Olympic Barbell Rod", 8},
	{9, "Incline Bench Press", 4},
	{10, "Decline Bench Press", 3},
	{11, "Flat Bench Press", 5},
	{12, "Shoulder Press Machine", 2},
	{13, "Leg Extension Machine", 3},
	{14, "Leg Curl Machine", 3},
	{15, "Leg Press Machine", 1},
	{16, "Lat Pulldown Machine", 2},
	{17, "T-Bar Chest Machine", 2},
	{18, "Seated Row Machine", 3},
	{19, "Thigh Abductor Machine", 2},
	{20, "Bicep Curl Machine", 4},
	{21, "Tricep Extension Machine", 4},
	{22, "Pull-Up/Chin-Up Station", 6},
	{23, "Exercise Bike", 5},
	{24, "Stair Climber", 2},
	{25, "Heavy Boxing Bag", 8},
	{26, "Boxing Gloves", 15},
	{27, "Protein Shaker Bottle", 30},
	{28, "Gym T-Shirt", 25},
	{29, "Athletic Shorts", 20},
	{30, "Training Shoes", 12},
	{31, "Workout Gloves", 18},
	{32, "Gym Towel", 35},
	{33, "Water Bottle", 22},
	{34, "Exercise Ball", 10},
	{35, "Hyper Extension Machine", 1},
	{36, "Hyper Extension Machine", 2},
}

// Seed loads the starting catalog with zero reservations. It is a no-op when
// any stock records already exist, so repeated boots never reset quantities.
func Seed(ctx context.Context, repo Repository, logg *logger.Logger, minStockLevel int) error {
	count, err := repo.Count(ctx)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: count stock records")
	}
	if count > 0 {
		logg.Info(ctx, "stock catalog already seeded")
		return nil
	}

	for _, product := range seedCatalog {
		record := &models.StockRecord{
			ProductID:     product.ID,
			ProductName:   product.Name,
			StockQuantity: product.Stock,
			MinStockLevel: minStockLevel,
		}
		if err := repo.UpsertRecord(ctx, record); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: seed stock record")
		}
	}

	logg.Info(logg.WithField(ctx, "products", len(seedCatalog)), "stock catalog seeded")
	return nil
}
