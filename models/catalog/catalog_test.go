package catalog_test

import (
	"testing"
	"time"

	"travel-booking/database"
	"travel-booking/models/catalog"
	"travel-booking/models/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)
	require.NoError(t, database.AutoMigrate(db))

	return db
}

func seedBooking(t *testing.T, db *gorm.DB) (*user.User, *catalog.Package, *catalog.Booking) {
	t.Helper()

	vendor := &user.User{Email: "vendor@example.com", PasswordHash: "x", Role: user.RoleVendor, IsActive: true}
	require.NoError(t, db.Create(vendor).Error)

	traveler := &user.User{Email: "traveler@example.com", PasswordHash: "x", Role: user.RoleTraveler, IsActive: true}
	require.NoError(t, db.Create(traveler).Error)

	pkg := &catalog.Package{VendorID: vendor.ID, Title: "Coastal Escape", Price: 350}
	require.NoError(t, db.Create(pkg).Error)

	booking := &catalog.Booking{
		PackageID:  pkg.ID,
		TravelerID: &traveler.ID,
		StartDate:  time.Now().AddDate(0, 0, 7),
		EndDate:    time.Now().AddDate(0, 0, 10),
		Status:     catalog.BookingStatusConfirmed,
		Source:     catalog.SourceDirect,
		TotalPrice: 350,
	}
	require.NoError(t, db.Create(booking).Error)

	return traveler, pkg, booking
}

func TestDeletingTravelerKeepsBooking(t *testing.T) {
	db := setupTestDB(t)
	traveler, _, booking := seedBooking(t, db)

	require.NoError(t, db.Delete(traveler).Error)

	var survived catalog.Booking
	require.NoError(t, db.First(&survived, booking.ID).Error)
	assert.Nil(t, survived.TravelerID)
	assert.Equal(t, 350.0, survived.TotalPrice)
}

func TestDeletingPackageRemovesItsBookingsAndReviews(t *testing.T) {
	db := setupTestDB(t)
	traveler, pkg, booking := seedBooking(t, db)

	review := &catalog.Review{PackageID: pkg.ID, TravelerID: &traveler.ID, Rating: 5}
	require.NoError(t, db.Create(review).Error)

	require.NoError(t, db.Delete(pkg).Error)

	var bookings int64
	require.NoError(t, db.Model(&catalog.Booking{}).Where("id = ?", booking.ID).Count(&bookings).Error)
	assert.Equal(t, int64(0), bookings)

	var reviews int64
	require.NoError(t, db.Model(&catalog.Review{}).Where("id = ?", review.ID).Count(&reviews).Error)
	assert.Equal(t, int64(0), reviews)
}

func TestDeletingTravelerKeepsReview(t *testing.T) {
	db := setupTestDB(t)
	traveler, pkg, _ := seedBooking(t, db)

	review := &catalog.Review{PackageID: pkg.ID, TravelerID: &traveler.ID, Rating: 4, Comment: "Great trip"}
	require.NoError(t, db.Create(review).Error)

	require.NoError(t, db.Delete(traveler).Error)

	var survived catalog.Review
	require.NoError(t, db.First(&survived, review.ID).Error)
	assert.Nil(t, survived.TravelerID)
	assert.Equal(t, "Great trip", survived.Comment)
}

func TestBookingDefaults(t *testing.T) {
	db := setupTestDB(t)
	_, pkg, _ := seedBooking(t, db)

	minimal := &catalog.Booking{
		PackageID:  pkg.ID,
		StartDate:  time.Now().AddDate(0, 0, 1),
		EndDate:    time.Now().AddDate(0, 0, 2),
		TotalPrice: 100,
	}
	require.NoError(t, db.Create(minimal).Error)

	var reloaded catalog.Booking
	require.NoError(t, db.First(&reloaded, minimal.ID).Error)
	assert.Equal(t, catalog.BookingStatusPending, reloaded.Status)
	assert.Equal(t, catalog.SourceDirect, reloaded.Source)
}
