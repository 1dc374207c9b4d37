package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/robertocantu/ironclub-backend/pkg/db/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository manages persistence for stock records and their history.
type Repository interface {
	GetRecord(ctx context.Context, productID int) (*models.StockRecord, error)
	ListRecords(ctx context.Context) ([]models.StockRecord, error)
	UpsertRecord(ctx context.Context, record *models.StockRecord) error
	CompareAndSwapQuantities(ctx context.Context, productID, expectedStock, expectedReserved, newStock, newReserved int) (bool, error)
	AppendHistory(ctx context.Context, entry *models.StockHistoryEntry) error
	ListHistory(ctx context.Context, productID, limit int) ([]models.StockHistoryEntry, error)
	Count(ctx context.Context) (int64, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a stock repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// GetRecord returns the stock record for the product, or nil when none exists.
func (r *repository) GetRecord(ctx context.Context, productID int) (*models.StockRecord, error) {
	var record models.StockRecord
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (r *repository) ListRecords(ctx context.Context) ([]models.StockRecord, error) {
	var records []models.StockRecord
	if err := r.db.WithContext(ctx).
		Order("product_id ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// UpsertRecord inserts the record, fully overwriting any existing row.
func (r *repository) UpsertRecord(ctx context.Context, record *models.StockRecord) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "product_id"}},
			UpdateAll: true,
		}).
		Create(record).Error
}

// CompareAndSwapQuantities applies the new quantities only when the row still
// carries the expected ones. The boolean reports whether the swap took effect.
func (r *repository) CompareAndSwapQuantities(ctx context.Context, productID, expectedStock, expectedReserved, newStock, newReserved int) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.StockRecord{}).
		Where("product_id = ? AND stock_quantity = ? AND reserved_quantity = ?", productID, expectedStock, expectedReserved).
		Updates(map[string]any{
			"stock_quantity":    newStock,
			"reserved_quantity": newReserved,
			"last_updated":      time.Now().UTC(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repository) AppendHistory(ctx context.Context, entry *models.StockHistoryEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// ListHistory returns history entries for the product, newest first.
func (r *repository) ListHistory(ctx context.Context, productID, limit int) ([]models.StockHistoryEntry, error) {
	query := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("timestamp DESC, id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	var entries []models.StockHistoryEntry
	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *repository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.StockRecord{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
