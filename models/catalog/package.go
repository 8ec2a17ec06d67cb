package catalog

import (
	"time"

	"travel-booking/models/user"
)

// Package is a vendor-owned bookable travel listing.
type Package struct {
	ID       uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	VendorID uint      `gorm:"not null;index" json:"vendor_id"`
	Vendor   user.User `gorm:"foreignKey:VendorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"vendor"`

	Title       string  `gorm:"type:varchar(200);not null" json:"title"`
	Description string  `gorm:"type:text" json:"description"`
	Price       float64 `gorm:"type:decimal(10,2);not null" json:"price"`
	IsActive    bool    `gorm:"default:true" json:"is_active"`
	ViewsCount  uint    `gorm:"default:0" json:"views_count"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
