package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	PatientID uint `gorm:"index" json:"patient_id"`
	Patient   User `gorm:"foreignKey:PatientID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"patient"`

	PhysicianID uint `gorm:"index" json:"physician_id"`
	Physician   User `gorm:"foreignKey:PhysicianID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"physician"`

	ServiceID uint    `json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service"`

	AppointmentDate time.Time `json:"appointment_date"`
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`

	Status string `gorm:"size:20;default:'PENDING'" json:"status"`

	ConsultationType string `gorm:"size:10;default:'VIDEO'" json:"consultation_type"`

	Symptoms    string `gorm:"size:500" json:"symptoms"`
	Notes       string `gorm:"size:500" json:"notes"`
	MeetingLink string `gorm:"size:255" json:"meeting_link"`

	// Who cancelled: patient, physician or admin. Kept for audit and
	// surfaced in the cancellation copy.
	CancelledBy *string    `gorm:"size:20" json:"cancelled_by,omitempty"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
