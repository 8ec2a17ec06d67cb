package catalog

import (
	"time"

	"travel-booking/models/user"
)

// Review is traveler feedback against a package. Like bookings, reviews
// outlive their traveler but not their package.
type Review struct {
	ID        uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	PackageID uint    `gorm:"not null;index" json:"package_id"`
	Package   Package `gorm:"foreignKey:PackageID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"package"`

	TravelerID *uint      `gorm:"index" json:"traveler_id,omitempty"`
	Traveler   *user.User `gorm:"foreignKey:TravelerID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"traveler,omitempty"`

	Rating  int    `gorm:"not null" json:"rating"`
	Comment string `gorm:"type:text" json:"comment"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
