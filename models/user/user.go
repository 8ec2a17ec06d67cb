package user

import (
	"time"
)

// Role is the closed set of account types. Access guards switch on it
// exhaustively instead of comparing raw strings.
type Role string

const (
	RoleVendor   Role = "vendor"
	RoleTraveler Role = "traveler"
	RoleAdmin    Role = "admin"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleVendor, RoleTraveler, RoleAdmin:
		return true
	default:
		return false
	}
}

// User is the identity record shared by vendors, travelers and admins.
// Email doubles as the login name and is unique across every role.
type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Email        string `gorm:"type:varchar(255);not null;unique" json:"email"`
	PasswordHash string `gorm:"type:varchar(255);not null" json:"-"`
	Role         Role   `gorm:"type:varchar(10);not null;index" json:"role"`

	FirstName string  `gorm:"type:varchar(255)" json:"first_name"`
	LastName  string  `gorm:"type:varchar(255)" json:"last_name"`
	Phone     *string `gorm:"type:varchar(20)" json:"phone,omitempty"`

	IsVerified bool `gorm:"default:false" json:"is_verified"`
	IsStaff    bool `gorm:"default:false" json:"is_staff"`
	IsActive   bool `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
