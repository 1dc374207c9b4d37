package members

import (
	"time"

	"github.com/robertocantu/ironclub-backend/pkg/db/models"
)

// MemberDTO is the transport shape for a membership intake record.
type MemberDTO struct {
	ID                int64     `json:"id"`
	FullName          string    `json:"full_name"`
	Email             string    `json:"email"`
	Phone             string    `json:"phone"`
	Age               int       `json:"age"`
	Gender            string    `json:"gender"`
	HeightCM          float64   `json:"height_cm"`
	WeightKG          float64   `json:"weight_kg"`
	BMI               float64   `json:"bmi"`
	BMICategory       string    `json:"bmi_category"`
	Goal              string    `json:"goal,omitempty"`
	Experience        string    `json:"experience,omitempty"`
	PreferredTime     string    `json:"preferred_time,omitempty"`
	MedicalConditions string    `json:"medical_conditions,omitempty"`
	Address           string    `json:"address,omitempty"`
	EmergencyContact  string    `json:"emergency_contact"`
	MembershipPlan    string    `json:"membership_plan"`
	SubmittedAt       time.Time `json:"submitted_at"`
}

// MemberInput holds the validated payload to create or replace a member.
type MemberInput struct {
	FullName          string
	Email             string
	Phone             string
	Age               int
	Gender            string
	HeightCM          float64
	WeightKG          float64
	Goal              string
	Experience        string
	PreferredTime     string
	MedicalConditions string
	Address           string
	EmergencyContact  string
	MembershipPlan    string
}

// Stats aggregates the membership base for the admin dashboard.
type Stats struct {
	TotalMembers     int64          `json:"total_members"`
	AverageAge       float64        `json:"average_age"`
	AverageBMI       float64        `json:"average_bmi"`
	GoalDistribution []Distribution `json:"goal_distribution"`
	BMIDistribution  []Distribution `json:"bmi_distribution"`
}

// Distribution is one labeled bucket of a stats breakdown.
type Distribution struct {
	Label string `json:"label"`
	Count int64  `json:"count"`
}

// ToDTO converts a model to the external DTO.
func ToDTO(m *models.Member) *MemberDTO {
	if m == nil {
		return nil
	}
	return &MemberDTO{
		ID:                m.ID,
		FullName:          m.FullName,
		Email:             m.Email,
		Phone:             m.Phone,
		Age:               m.Age,
		Gender:            m.Gender,
		HeightCM:          m.HeightCM,
		WeightKG:          m.WeightKG,
		BMI:               m.BMI,
		BMICategory:       m.BMICategory,
		Goal:              m.Goal,
		Experience:        m.Experience,
		PreferredTime:     m.PreferredTime,
		MedicalConditions: m.MedicalConditions,
		Address:           m.Address,
		EmergencyContact:  m.EmergencyContact,
		MembershipPlan:    m.MembershipPlan,
		SubmittedAt:       m.SubmittedAt,
	}
}
