package members

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/robertocantu/ironclub-backend/pkg/db"
	"github.com/robertocantu/ironclub-backend/pkg/db/models"
	pkgerrors "github.com/robertocantu/ironclub-backend/pkg/errors"
)

// BMI category boundaries follow the WHO adult classification.
const (
	bmiUnderweightMax = 18.5
	bmiNormalMax      = 25
	bmiOverweightMax  = 30
)

// Service exposes membership intake operations.
type Service interface {
	CreateMember(ctx context.Context, input MemberInput) (*MemberDTO, error)
	GetMember(ctx context.Context, id int64) (*MemberDTO, error)
	ListMembers(ctx context.Context) ([]MemberDTO, error)
	UpdateMember(ctx context.Context, id int64, input MemberInput) (*MemberDTO, error)
	DeleteMember(ctx context.Context, id int64) error
	GetStats(ctx context.Context) (*Stats, error)
}

type service struct {
	repo Repository
}

// NewService wires a members service with the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("members repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) CreateMember(ctx context.Context, input MemberInput) (*MemberDTO, error) {
	member, err := buildMember(input)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, member); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert member")
	}
	return ToDTO(member), nil
}

func (s *service) GetMember(ctx context.Context, id int64) (*MemberDTO, error) {
	member, err := s.loadMember(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToDTO(member), nil
}

func (s *service) ListMembers(ctx context.Context) ([]MemberDTO, error) {
	members, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list members")
	}
	dtos := make([]MemberDTO, 0, len(members))
	for i := range members {
		dtos = append(dtos, *ToDTO(&members[i]))
	}
	return dtos, nil
}

func (s *service) UpdateMember(ctx context.Context, id int64, input MemberInput) (*MemberDTO, error) {
	if id <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "member id must be positive")
	}
	member, err := buildMember(input)
	if err != nil {
		return nil, err
	}
	member.ID = id

	updated, err := s.repo.Update(ctx, member)
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update member")
	}
	if !updated {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "member not found")
	}
	return s.GetMember(ctx, id)
}

func (s *service) DeleteMember(ctx context.Context, id int64) error {
	if id <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "member id must be positive")
	}
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete member")
	}
	if !deleted {
		return pkgerrors.New(pkgerrors.CodeNotFound, "member not found")
	}
	return nil
}

func (s *service) GetStats(ctx context.Context) (*Stats, error) {
	row, goals, categories, err := s.repo.AggregateStats(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: aggregate member stats")
	}

	stats := &Stats{
		TotalMembers:     row.TotalMembers,
		AverageAge:       round1(row.AverageAge),
		AverageBMI:       round1(row.AverageBMI),
		GoalDistribution: make([]Distribution, 0, len(goals)),
		BMIDistribution:  make([]Distribution, 0, len(categories)),
	}
	for _, bucket := range goals {
		stats.GoalDistribution = append(stats.GoalDistribution, Distribution{Label: bucket.Label, Count: bucket.Count})
	}
	for _, bucket := range categories {
		stats.BMIDistribution = append(stats.BMIDistribution, Distribution{Label: bucket.Label, Count: bucket.Count})
	}
	return stats, nil
}

func (s *service) loadMember(ctx context.Context, id int64) (*models.Member, error) {
	if id <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "member id must be positive")
	}
	member, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load member")
	}
	if member == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "member not found")
	}
	return member, nil
}

func buildMember(input MemberInput) (*models.Member, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	bmi := CalculateBMI(input.HeightCM, input.WeightKG)
	return &models.Member{
		FullName:          strings.TrimSpace(input.FullName),
		Email:             strings.ToLower(strings.TrimSpace(input.Email)),
		Phone:             strings.TrimSpace(input.Phone),
		Age:               input.Age,
		Gender:            input.Gender,
		HeightCM:          input.HeightCM,
		WeightKG:          input.WeightKG,
		BMI:               bmi,
		BMICategory:       BMICategory(bmi),
		Goal:              input.Goal,
		Experience:        input.Experience,
		PreferredTime:     input.PreferredTime,
		MedicalConditions: input.MedicalConditions,
		Address:           input.Address,
		EmergencyContact:  strings.TrimSpace(input.EmergencyContact),
		MembershipPlan:    input.MembershipPlan,
	}, nil
}

func validateInput(input MemberInput) error {
	switch {
	case strings.TrimSpace(input.FullName) == "":
		return pkgerrors.New(pkgerrors.CodeValidation, "full name is required")
	case strings.TrimSpace(input.Email) == "":
		return pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	case strings.TrimSpace(input.Phone) == "":
		return pkgerrors.New(pkgerrors.CodeValidation, "phone is required")
	case input.Age <= 0:
		return pkgerrors.New(pkgerrors.CodeValidation, "age must be positive")
	case input.Gender == "":
		return pkgerrors.New(pkgerrors.CodeValidation, "gender is required")
	case input.HeightCM <= 0:
		return pkgerrors.New(pkgerrors.CodeValidation, "height must be positive")
	case input.WeightKG <= 0:
		return pkgerrors.New(pkgerrors.CodeValidation, "weight must be positive")
	case strings.TrimSpace(input.EmergencyContact) == "":
		return pkgerrors.New(pkgerrors.CodeValidation, "emergency contact is required")
	case input.MembershipPlan == "":
		return pkgerrors.New(pkgerrors.CodeValidation, "membership plan is required")
	}
	return nil
}

// CalculateBMI derives the body mass index from metric measurements,
// rounded to one decimal.
func CalculateBMI(heightCM, weightKG float64) float64 {
	if heightCM <= 0 {
		return 0
	}
	meters := heightCM / 100
	return round1(weightKG / (meters * meters))
}

// BMICategory maps a BMI value to its WHO classification label.
func BMICategory(bmi float64) string {
	switch {
	case bmi < bmiUnderweightMax:
		return "Underweight"
	case bmi < bmiNormalMax:
		return "Normal weight"
	case bmi < bmiOverweightMax:
		return "Overweight"
	default:
		return "Obese"
	}
}

func round1(value float64) float64 {
	return math.Round(value*10) / 10
}
