package models

import "time"

// Member is one gym membership intake submission. Email is the only
// uniqueness constraint; everything else is free-form intake data.
type Member struct {
	ID                int64     `gorm:"column:id;primaryKey;autoIncrement"`
	FullName          string    `gorm:"column:full_name;not null"`
	Email             string    `gorm:"column:email;not null;uniqueIndex"`
	Phone             string    `gorm:"column:phone;not null"`
	Age               int       `gorm:"column:age;not null"`
	Gender            string    `gorm:"column:gender;not null"`
	HeightCM          float64   `gorm:"column:height_cm;not null"`
	WeightKG          float64   `gorm:"column:weight_kg;not null"`
	BMI               float64   `gorm:"column:bmi;not null"`
	BMICategory       string    `gorm:"column:bmi_category;not null"`
	Goal              string    `gorm:"column:goal"`
	Experience        string    `gorm:"column:experience"`
	PreferredTime     string    `gorm:"column:preferred_time"`
	MedicalConditions string    `gorm:"column:medical_conditions"`
	Address           string    `gorm:"column:address"`
	EmergencyContact  string    `gorm:"column:emergency_contact;not null"`
	MembershipPlan    string    `gorm:"column:membership_plan;not null"`
	SubmittedAt       time.Time `gorm:"column:submitted_at;autoCreateTime"`
	CreatedAt         time.Time `gorm:"column:created_at;autoCreateTime"`
}

// TableName overrides GORM's pluralization.
func (Member) TableName() string { return "members" }
