package members

import (
	"context"
	"errors"

	"github.com/robertocantu/ironclub-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository manages persistence for membership intake records.
type Repository interface {
	Create(ctx context.Context, member *models.Member) error
	FindByID(ctx context.Context, id int64) (*models.Member, error)
	List(ctx context.Context) ([]models.Member, error)
	Update(ctx context.Context, member *models.Member) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
	AggregateStats(ctx context.Context) (*StatsRow, []GroupCount, []GroupCount, error)
}

// StatsRow carries the scalar aggregates over the members table.
type StatsRow struct {
	TotalMembers int64
	AverageAge   float64
	AverageBMI   float64
}

// GroupCount is one bucket of a GROUP BY aggregation.
type GroupCount struct {
	Label string `gorm:"column:label"`
	Count int64  `gorm:"column:count"`
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a members repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, member *models.Member) error {
	return r.db.WithContext(ctx).Create(member).Error
}

// FindByID returns the member, or nil when none exists.
func (r *repository) FindByID(ctx context.Context, id int64) (*models.Member, error) {
	var member models.Member
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &member, nil
}

// List returns all members, most recent submission first.
func (r *repository) List(ctx context.Context) ([]models.Member, error) {
	var members []models.Member
	if err := r.db.WithContext(ctx).
		Order("submitted_at DESC, id DESC").
		Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

// Update saves the member and reports whether a row was touched.
func (r *repository) Update(ctx context.Context, member *models.Member) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Member{}).
		Where("id = ?", member.ID).
		Updates(map[string]any{
			"full_name":          member.FullName,
			"email":              member.Email,
			"phone":              member.Phone,
			"age":                member.Age,
			"gender":             member.Gender,
			"height_cm":          member.HeightCM,
			"weight_kg":          member.WeightKG,
			"bmi":                member.BMI,
			"bmi_category":       member.BMICategory,
			"goal":               member.Goal,
			"experience":         member.Experience,
			"preferred_time":     member.PreferredTime,
			"medical_conditions": member.MedicalConditions,
			"address":            member.Address,
			"emergency_contact":  member.EmergencyContact,
			"membership_plan":    member.MembershipPlan,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repository) Delete(ctx context.Context, id int64) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.Member{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// AggregateStats runs the dashboard aggregations in one pass per dimension.
func (r *repository) AggregateStats(ctx context.Context) (*StatsRow, []GroupCount, []GroupCount, error) {
	var row struct {
		TotalMembers int64   `gorm:"column:total_members"`
		AverageAge   float64 `gorm:"column:average_age"`
		AverageBMI   float64 `gorm:"column:average_bmi"`
	}
	if err := r.db.WithContext(ctx).
		Model(&models.Member{}).
		Select("COUNT(*) AS total_members, COALESCE(AVG(age), 0) AS average_age, COALESCE(AVG(bmi), 0) AS average_bmi").
		Scan(&row).Error; err != nil {
		return nil, nil, nil, err
	}

	var goals []GroupCount
	if err := r.db.WithContext(ctx).
		Model(&models.Member{}).
		Select("goal AS label, COUNT(*) AS count").
		Group("goal").
		Order("count DESC, label ASC").
		Scan(&goals).Error; err != nil {
		return nil, nil, nil, err
	}

	var categories []GroupCount
	if err := r.db.WithContext(ctx).
		Model(&models.Member{}).
		Select("bmi_category AS label, COUNT(*) AS count").
		Group("bmi_category").
		Order("count DESC, label ASC").
		Scan(&categories).Error; err != nil {
		return nil, nil, nil, err
	}

	stats := &StatsRow{
		TotalMembers: row.TotalMembers,
		AverageAge:   row.AverageAge,
		AverageBMI:   row.AverageBMI,
	}
	return stats, goals, categories, nil
}
