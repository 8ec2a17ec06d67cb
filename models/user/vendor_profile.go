package user

import (
	"time"
)

// VendorProfile is the one-to-one business extension of a vendor User.
// It is created in the same transaction as the user at registration and
// IsApproved is only ever flipped by an admin action.
type VendorProfile struct {
	ID     uint `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID uint `gorm:"not null;unique" json:"user_id"`
	User   User `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"user"`

	BusinessName string  `gorm:"type:varchar(255);not null" json:"business_name"`
	OwnerName    string  `gorm:"type:varchar(255);not null" json:"owner_name"`
	LicensePath  *string `gorm:"type:varchar(512)" json:"license_path,omitempty"`
	IsApproved   bool    `gorm:"default:false" json:"is_approved"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
