package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleUser      = "user"
	RoleModerator = "moderator"
	RoleAdmin     = "admin"
)

// ValidRole reports whether s is one of the known roles.
func ValidRole(s string) bool {
	return s == RoleUser || s == RoleModerator || s == RoleAdmin
}

type User struct {
	ID        string     `gorm:"primaryKey;type:uuid" json:"id"`
	Username  string     `gorm:"uniqueIndex;not null" json:"username"`
	Email     string     `gorm:"uniqueIndex;not null" json:"email"`
	FirstName string     `gorm:"default:''" json:"first_name"`
	LastName  string     `gorm:"default:''" json:"last_name"`
	Bio       string     `gorm:"type:text;default:''" json:"bio"`
	Role      string     `gorm:"default:'user';not null" json:"role"` // "user", "moderator" or "admin"
	IsStaff   bool       `gorm:"default:false;not null" json:"is_staff"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	LastLogin *time.Time `json:"last_login,omitempty"`
}

// BeforeCreate hook to set UUID before creating a User
func (user *User) BeforeCreate(tx *gorm.DB) (err error) {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	return
}

// IsAdmin reports whether the user holds full administrative rights,
// either through the admin role or the staff flag.
func (user *User) IsAdmin() bool {
	return user.IsStaff || user.Role == RoleAdmin
}

func (User) TableName() string {
	return "users"
}
