package models

import (
	"time"

	"gorm.io/gorm"
)

// Role values stored on a profile. Routes are authorized against these.
const (
	RoleAdmin    = "admin"
	RoleManager  = "manager"
	RoleStaff    = "staff"
	RoleCustomer = "customer"
)

// Profile is the application-level user record. The authentication identity
// itself lives with the hosted auth provider; a profile row is created for
// each provider user and carries the role used for authorization.
type Profile struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    string         `gorm:"uniqueIndex;not null" json:"user_id"` // provider user ID (from 'sub' claim)
	FullName  string         `gorm:"not null" json:"full_name"`
	AvatarURL *string        `json:"avatar_url"`
	Email     string         `gorm:"uniqueIndex;not null" json:"email"`
	Phone     *string        `json:"phone"`
	Role      string         `gorm:"not null;default:'customer'" json:"role"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Profile model
func (Profile) TableName() string {
	return "profiles"
}

// IsAdmin reports whether the profile carries the admin role.
func (p *Profile) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}

// IsStaff reports whether the profile carries any back-office role.
func (p *Profile) IsStaff() bool {
	if p == nil {
		return false
	}
	return p.Role == RoleAdmin || p.Role == RoleManager || p.Role == RoleStaff
}
