package models

import "time"

// AvailabilityWindow is one recurring weekly open/closed block for a
// physician. Times are wall-clock "HH:MM" in the clinic timezone.
type AvailabilityWindow struct {
	ID          uint `gorm:"primaryKey" json:"id"`
	PhysicianID uint `gorm:"index" json:"physician_id"`

	DayOfWeek int `json:"day_of_week"`

	StartTime   string `gorm:"size:5" json:"start_time"`
	EndTime     string `gorm:"size:5" json:"end_time"`
	IsAvailable bool   `gorm:"default:true" json:"is_available"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
