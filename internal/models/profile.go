package models

import (
	"time"

	"gorm.io/gorm"
)

// Roles for Profile.Role
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Profile represents an operator account
// Standardized: Go (PascalCase) -> DB (snake_case) -> JSON (camelCase)
type Profile struct {
	ID        string     `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	CallSign  string     `gorm:"uniqueIndex;not null" json:"callSign"`
	Email     string     `gorm:"uniqueIndex;not null" json:"email"`
	Password  string     `gorm:"not null" json:"-"`
	Name      string     `json:"name,omitempty"`
	Location  string     `json:"location,omitempty"`
	Role      string     `gorm:"default:'user'" json:"role"`
	IsActive  bool       `gorm:"default:true" json:"isActive"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for Profile model
func (Profile) TableName() string {
	return "profiles"
}

// IsAdmin reports whether the profile has the elevated role
func (p *Profile) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}
