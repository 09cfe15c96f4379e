package models

import "time"

const (
	RolePatient   = "patient"
	RolePhysician = "physician"
	RoleAdmin     = "admin"
)

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name         string `gorm:"size:100;not null" json:"name"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Phone        string `gorm:"size:20" json:"phone"`
	Role         string `gorm:"size:20;default:'patient'" json:"role"`

	// Physician-only fields.
	Specialty string `gorm:"size:100" json:"specialty,omitempty"`
	AvatarURL string `gorm:"size:255" json:"avatar_url,omitempty"`

	// Coarse kill switch consulted on every booking, independent of the
	// weekly availability windows.
	IsAvailable bool `gorm:"default:true" json:"is_available"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
