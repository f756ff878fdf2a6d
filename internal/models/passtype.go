package models

import "time"

type PassTypeName string

const (
	PassTeens  PassTypeName = "Teens"
	PassCouple PassTypeName = "Couple"
	PassFamily PassTypeName = "Family"
)

// PassType is reference data managed by admins. Bookings denormalize
// name and price at purchase time, so catalog edits never alter
// historical bookings.
type PassType struct {
	ID            uint         `gorm:"primaryKey" json:"id"`
	Name          PassTypeName `gorm:"type:varchar(20);not null" json:"name"`
	Price         float64      `gorm:"not null" json:"price"`
	MaxPeople     int          `gorm:"not null" json:"max_people"`
	NoOfPeople    int          `gorm:"not null;default:0" json:"no_of_people"`
	NoOfPasses    int          `gorm:"not null;default:0" json:"no_of_passes"`
	ValidForEvent string       `gorm:"default:'New Year 2025'" json:"valid_for_event"`
	Description   string       `gorm:"default:''" json:"description"`
	IsActive      bool         `gorm:"default:true" json:"is_active"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}
