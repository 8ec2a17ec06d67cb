package catalog

import (
	"time"

	"travel-booking/models/user"
)

// Booking is a reservation against a package. The traveler reference is
// weak: deleting the traveler keeps the booking with a NULL traveler_id,
// while deleting the package removes its bookings entirely.
type Booking struct {
	ID        uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	PackageID uint    `gorm:"not null;index" json:"package_id"`
	Package   Package `gorm:"foreignKey:PackageID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"package"`

	TravelerID *uint      `gorm:"index" json:"traveler_id,omitempty"`
	Traveler   *user.User `gorm:"foreignKey:TravelerID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"traveler,omitempty"`

	StartDate time.Time `gorm:"type:date;not null" json:"start_date"`
	EndDate   time.Time `gorm:"type:date;not null" json:"end_date"`

	Status     BookingStatus `gorm:"type:varchar(10);not null;default:pending;index" json:"status"`
	Source     BookingSource `gorm:"type:varchar(20);not null;default:direct" json:"source"`
	TotalPrice float64       `gorm:"type:decimal(10,2);not null" json:"total_price"`

	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}
