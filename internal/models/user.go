package models

import "time"

type Role string

const (
	RoleAdmin Role = "Admin"
	RoleSales Role = "Sales Staff"
	RoleGate  Role = "Gate Staff"
)

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Mobile    string    `gorm:"uniqueIndex;not null" json:"mobile"`
	Password  string    `gorm:"not null" json:"-"`
	Name      string    `gorm:"not null" json:"name"`
	Role      Role      `gorm:"type:varchar(20);not null" json:"role"`
	IsActive  bool      `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
