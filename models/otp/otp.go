package otp

import (
	"time"

	"travel-booking/models/user"
)

// ExpiryMinutes is how long a freshly issued code stays valid.
const ExpiryMinutes = 10

// OTP is a short-lived one-time code bound to a user. At most one valid
// (unused and unexpired) row exists per user: issuing a new code marks every
// unused predecessor used first.
type OTP struct {
	ID     uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID uint      `gorm:"not null;index" json:"user_id"`
	User   user.User `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"user"`

	Code      string    `gorm:"type:varchar(6);not null" json:"code"`
	IsUsed    bool      `gorm:"default:false" json:"is_used"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// IsExpired checks if the OTP has expired.
func (o *OTP) IsExpired() bool {
	return time.Now().After(o.ExpiresAt)
}

// IsValid checks if the OTP is still usable (not used and not expired).
func (o *OTP) IsValid() bool {
	return !o.IsUsed && !o.IsExpired()
}
