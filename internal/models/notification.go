package models

import "time"

const (
	NotificationAppointment   = "APPOINTMENT"
	NotificationPrescription  = "PRESCRIPTION"
	NotificationPayment       = "PAYMENT"
	NotificationMedicalRecord = "MEDICAL_RECORD"
	NotificationSystem        = "SYSTEM"
)

type Notification struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint `gorm:"index" json:"user_id"`

	Type    string `gorm:"size:20;default:'SYSTEM'" json:"type"`
	Title   string `gorm:"size:100" json:"title"`
	Message string `gorm:"size:500" json:"message"`
	Link    string `gorm:"size:255" json:"link,omitempty"`

	// Opaque key/value payload, stored as JSON.
	Metadata string `gorm:"type:text" json:"metadata,omitempty"`

	IsRead bool `gorm:"default:false" json:"is_read"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
