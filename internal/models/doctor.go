package models

import "time"

type Doctor struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name            string `gorm:"size:100;not null" json:"name"`
	ExperienceYears int    `json:"experience_years"`
	MobileNo        string `gorm:"size:20" json:"mobile_no"`
	Specialization  string `gorm:"size:100" json:"specialization"`
	Email           string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash    string `gorm:"size:255;not null" json:"-"`

	Role string `gorm:"size:20;default:'doctor'" json:"role"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
