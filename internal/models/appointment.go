package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// Reference is the public identifier handed to clients.
	Reference string `gorm:"size:36;uniqueIndex;not null" json:"reference"`

	DoctorID uint   `gorm:"index:idx_doctor_slot" json:"doctor_id"`
	Doctor   Doctor `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	PatientID uint    `json:"patient_id"`
	Patient   Patient `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	// Date and Time are the slot keys, stored as "2006-01-02" and
	// "15:04:05" so exact-match occupancy lookups stay string equality.
	Date string `gorm:"size:10;index:idx_doctor_slot" json:"date"`
	Time string `gorm:"size:8;index:idx_doctor_slot" json:"time"`

	// QueueNumber is the 1-based position within the doctor's working
	// session on that date.
	QueueNumber int `json:"queue_number"`

	Reason string `gorm:"size:255" json:"reason"`

	DoctorName  string `gorm:"size:100" json:"doctor_name"`
	PatientName string `gorm:"size:100" json:"patient_name"`

	Status string `gorm:"size:25;default:'pending'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
