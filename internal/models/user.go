package models

import (
	"strings"
	"time"
)

type UserRole string

const (
	RoleUser    UserRole = "User"
	RoleManager UserRole = "Manager"
	RoleAdmin   UserRole = "Admin"
)

type User struct {
	BaseModel
	Email        string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	FirstName    string     `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName     string     `gorm:"type:varchar(100);not null" json:"last_name"`
	PhoneNumber  string     `gorm:"type:varchar(32)" json:"phone_number,omitempty"`
	PasswordHash string     `gorm:"type:varchar(255);not null" json:"-"`
	Role         UserRole   `gorm:"type:varchar(20);not null;default:'User'" json:"role"`
	IsActive     bool       `gorm:"not null;default:true" json:"is_active"`
	LastLoginAt  *time.Time `json:"last_login_at"`

	// Relations
	AssignedTasks []TaskRequest `gorm:"foreignKey:AssignedToUserID" json:"-"`
	CreatedTasks  []TaskRequest `gorm:"foreignKey:CreatedByUserID" json:"-"`
}

// FullName is the display name used in projections.
func (u *User) FullName() string {
	if u == nil {
		return ""
	}
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}
