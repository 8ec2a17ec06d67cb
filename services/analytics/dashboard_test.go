package analytics

import (
	"testing"
	"time"

	"travel-booking/database"
	"travel-booking/models/catalog"
	"travel-booking/models/user"

	"github.com/jinzhu/now"
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
	require.NoError(t, database.AutoMigrate(db))

	return db
}

func createVendor(t *testing.T, db *gorm.DB, email string) *user.User {
	t.Helper()

	u := &user.User{Email: email, PasswordHash: "x", Role: user.RoleVendor, IsActive: true, IsVerified: true}
	require.NoError(t, db.Create(u).Error)
	return u
}

func createPackage(t *testing.T, db *gorm.DB, vendorID uint, title string, views uint) *catalog.Package {
	t.Helper()

	pkg := &catalog.Package{VendorID: vendorID, Title: title, Price: 100, IsActive: true, ViewsCount: views}
	require.NoError(t, db.Create(pkg).Error)
	return pkg
}

func createBooking(t *testing.T, db *gorm.DB, pkg *catalog.Package, status catalog.BookingStatus, source catalog.BookingSource, price float64, createdAt time.Time) *catalog.Booking {
	t.Helper()

	booking := &catalog.Booking{
		PackageID:  pkg.ID,
		StartDate:  createdAt.AddDate(0, 0, 7),
		EndDate:    createdAt.AddDate(0, 0, 10),
		Status:     status,
		Source:     source,
		TotalPrice: price,
	}
	require.NoError(t, db.Create(booking).Error)
	// autoCreateTime ignores assignment on create, so backdate explicitly.
	require.NoError(t, db.Model(booking).Update("created_at", createdAt).Error)
	booking.CreatedAt = createdAt
	return booking
}

func TestHeadlineCountsOnlyConfirmedRevenue(t *testing.T) {
	db := setupTestDB(t)
	service := NewService(db)
	vendor := createVendor(t, db, "vendor@example.com")
	pkg := createPackage(t, db, vendor.ID, "City Lights", 0)

	nowTime := time.Now()
	createBooking(t, db, pkg, catalog.BookingStatusConfirmed, catalog.SourceDirect, 500, nowTime)
	createBooking(t, db, pkg, catalog.BookingStatusPending, catalog.SourceDirect, 300, nowTime)
	createBooking(t, db, pkg, catalog.BookingStatusCancelled, catalog.SourceSocial, 200, nowTime)

	stats, err := service.Headline(vendor.ID)
	require.NoError(t, err)

	assert.Equal(t, 500.0, stats.TotalRevenue)
	assert.Equal(t, int64(1), stats.ActivePackages)
	assert.Equal(t, int64(3), stats.TotalBookings)
	assert.Equal(t, int64(1), stats.PendingBookings)
	assert.Equal(t, 0.0, stats.AverageRating)
}

func TestHeadlineIgnoresOtherVendors(t *testing.T) {
	db := setupTestDB(t)
	service := NewService(db)
	vendor := createVendor(t, db, "mine@example.com")
	other := createVendor(t, db, "other@example.com")

	otherPkg := createPackage(t, db, other.ID, "Not Mine", 0)
	createBooking(t, db, otherPkg, catalog.BookingStatusConfirmed, catalog.SourceDirect, 900, time.Now())

	stats, err := service.Headline(vendor.ID)
	require.NoError(t, err)

	assert.Equal(t, 0.0, stats.TotalRevenue)
	assert.Equal(t, int64(0), stats.TotalBookings)
}

func TestHeadlineAverageRatingRoundedToOneDecimal(t *testing.T) {
	db := setupTestDB(t)
	service := NewService(db)
	vendor := createVendor(t, db, "rated@example.com")
	pkg := createPackage(t, db, vendor.ID, "Rated Trip", 0)

	for _, rating := range []int{5, 4, 4} {
		require.NoError(t, db.Create(&catalog.Review{PackageID: pkg.ID, Rating: rating}).Error)
	}

	stats, err := service.Headline(vendor.ID)
	require.NoError(t, err)

	// (5+4+4)/3 = 4.333... -> 4.3
	assert.Equal(t, 4.3, stats.AverageRating)
}

func TestWeeklyRevenueWindowsOldestFirst(t *testing.T) {
	db := setupTestDB(t)
	service := NewService(db)
	vendor := createVendor(t, db, "weekly@example.com")
	pkg := createPackage(t, db, vendor.ID, "Weekly", 0)

	today := now.BeginningOfDay()
	// One confirmed booking in the newest window, one three weeks back.
	createBooking(t, db, pkg, catalog.BookingStatusConfirmed, catalog.SourceDirect, 400, today.AddDate(0, 0, -2))
	createBooking(t, db, pkg, catalog.BookingStatusConfirmed, catalog.SourceDirect, 100, today.AddDate(0, 0, -23))
	// Pending revenue never counts.
	createBooking(t, db, pkg, catalog.BookingStatusPending, catalog.SourceDirect, 999, today)

	points, err := service.WeeklyRevenue(vendor.ID, today)
	require.NoError(t, err)
	require.Len(t, points, 4)

	assert.Equal(t, "Week 1", points[0].Label)
	assert.Equal(t, 100.0, points[0].Value)
	assert.Equal(t, 0.0, points[1].Value)
	assert.Equal(t, 0.0, points[2].Value)
	assert.Equal(t, 400.0, points[3].Value)

	// Bars normalize against the best window with a 12% visibility floor.
	assert.Equal(t, 25, points[0].Percent)
	assert.Equal(t, 12, points[1].Percent)
	assert.Equal(t, 12, points[2].Percent)
	assert.Equal(t, 100, points[3].Percent)
}

func TestWeeklyRevenueAllZero(t *testing.T) {
	db := setupTestDB(t)
	service := NewService(db)
	vendor := createVendor(t, db, "zero@example.com")

	points, err := service.WeeklyRevenue(vendor.ID, now.BeginningOfDay())
	require.NoError(t, err)
	require.Len(t, points, 4)

	for _, p := range points {
		assert.Equal(t, 0.0, p.Value)
		assert.Equal(t, 12, p.Percent)
	}
}

func TestDailyBookingCountsSevenTrailingDays(t *testing.T) {
	db := setupTestDB(t)
	service := NewService(db)
	vendor := createVendor(t, db, "daily@example.com")
	pkg := createPackage(t, db, vendor.ID, "Daily", 0)

	today := now.BeginningOfDay()
	createBooking(t, db, pkg, catalog.BookingStatusPending, catalog.SourceDirect, 50, today.Add(2*time.Hour))
	createBooking(t, db, pkg, catalog.BookingStatusPending, catalog.SourceDirect, 50, today.AddDate(0, 0, -6).Add(time.Hour))
	// Eight days back falls outside the window.
	createBooking(t, db, pkg, catalog.BookingStatusPending, catalog.SourceDirect, 50, today.AddDate(0, 0, -8))

	counts, err := service.DailyBookingCounts(vendor.ID, today)
	require.NoError(t, err)
	require.Len(t, counts, 7)

	assert.Equal(t, today.AddDate(0, 0, -6).Format("Mon"), counts[0].Label)
	assert.Equal(t, int64(1), counts[0].Value)
	assert.Equal(t, today.Format("Mon"), counts[6].Label)
	assert.Equal(t, int64(1), counts[6].Value)

	var middle int64
	for _, c := range counts[1:6] {
		middle += c.Value
	}
	assert.Equal(t, int64(0), middle)
}

func TestSourceBreakdownFixedOrderAndPercents(t *testing.T) {
	db := setupTestDB(t)
	service := NewService(db)
	vendor := createVendor(t, db, "sources@example.com")
	pkg := createPackage(t, db, vendor.ID, "Sourced", 0)

	nowTime := time.Now()
	createBooking(t, db, pkg, catalog.BookingStatusConfirmed, catalog.SourceDirect, 100, nowTime)
	createBooking(t, db, pkg, catalog.BookingStatusPending, catalog.SourceDirect, 100, nowTime)
	createBooking(t, db, pkg, catalog.BookingStatusCancelled, catalog.SourceSocial, 100, nowTime)

	slices, gradient, err := service.SourceBreakdown(vendor.ID)
	require.NoError(t, err)
	require.Len(t, slices, 4)

	assert.Equal(t, "direct", slices[0].Key)
	assert.Equal(t, int64(2), slices[0].Count)
	assert.Equal(t, 67, slices[0].Percent)

	assert.Equal(t, "partner", slices[1].Key)
	assert.Equal(t, int64(0), slices[1].Count)

	assert.Equal(t, "social", slices[2].Key)
	assert.Equal(t, int64(1), slices[2].Count)
	assert.Equal(t, 33, slices[2].Percent)

	assert.Equal(t, "marketplace", slices[3].Key)

	assert.Equal(t, "conic-gradient(#1d4ed8 0.0% 66.7%, #60a5fa 66.7% 100.0%)", gradient)
}

func TestSourceBreakdownNoBookings(t *testing.T) {
	db := setupTestDB(t)
	service := NewService(db)
	vendor := createVendor(t, db, "nosales@example.com")

	slices, gradient, err := service.SourceBreakdown(vendor.ID)
	require.NoError(t, err)
	require.Len(t, slices, 4)
	for _, slice := range slices {
		assert.Equal(t, int64(0), slice.Count)
		assert.Equal(t, 0, slice.Percent)
	}
	assert.Equal(t, "conic-gradient(#e5e7eb 0 100%)", gradient)
}

func TestUpcomingBookingsWindowAndOrder(t *testing.T) {
	db := setupTestDB(t)
	service := NewService(db)
	vendor := createVendor(t, db, "upcoming@example.com")
	pkg := createPackage(t, db, vendor.ID, "Upcoming", 0)

	today := now.BeginningOfDay()

	makeBooking := func(start time.Time, status catalog.BookingStatus) *catalog.Booking {
		b := &catalog.Booking{
			PackageID:  pkg.ID,
			StartDate:  start,
			EndDate:    start.AddDate(0, 0, 3),
			Status:     status,
			Source:     catalog.SourceDirect,
			TotalPrice: 100,
		}
		require.NoError(t, db.Create(b).Error)
		return b
	}

	inWindow := makeBooking(today.AddDate(0, 0, 5), catalog.BookingStatusPending)
	soonest := makeBooking(today.AddDate(0, 0, 1), catalog.BookingStatusConfirmed)
	makeBooking(today.AddDate(0, 0, 5), catalog.BookingStatusCancelled)
	makeBooking(today.AddDate(0, 0, 20), catalog.BookingStatusConfirmed)
	makeBooking(today.AddDate(0, 0, -1), catalog.BookingStatusConfirmed)

	upcoming, err := service.UpcomingBookings(vendor.ID, today)
	require.NoError(t, err)
	require.Len(t, upcoming, 2)

	assert.Equal(t, soonest.ID, upcoming[0].ID)
	assert.Equal(t, inWindow.ID, upcoming[1].ID)
	assert.Equal(t, pkg.ID, upcoming[0].Package.ID)
}

func TestTopPackagesRankedByDemandThenViews(t *testing.T) {
	db := setupTestDB(t)
	service := NewService(db)
	vendor := createVendor(t, db, "top@example.com")

	busy := createPackage(t, db, vendor.ID, "Busy", 10)
	quietPopular := createPackage(t, db, vendor.ID, "Quiet Popular", 500)
	quiet := createPackage(t, db, vendor.ID, "Quiet", 5)
	createPackage(t, db, vendor.ID, "Fourth", 1)

	nowTime := time.Now()
	createBooking(t, db, busy, catalog.BookingStatusConfirmed, catalog.SourceDirect, 100, nowTime)
	createBooking(t, db, busy, catalog.BookingStatusPending, catalog.SourceDirect, 100, nowTime)

	require.NoError(t, db.Create(&catalog.Review{PackageID: busy.ID, Rating: 4}).Error)
	require.NoError(t, db.Create(&catalog.Review{PackageID: busy.ID, Rating: 5}).Error)

	top, err := service.TopPackages(vendor.ID)
	require.NoError(t, err)
	require.Len(t, top, 3)

	assert.Equal(t, busy.ID, top[0].ID)
	assert.Equal(t, int64(2), top[0].BookingCount)
	assert.Equal(t, 4.5, top[0].AvgRating)

	// Zero-booking tie broken by views.
	assert.Equal(t, quietPopular.ID, top[1].ID)
	assert.Equal(t, quiet.ID, top[2].ID)
}

func TestDashboardEmptyVendor(t *testing.T) {
	db := setupTestDB(t)
	service := NewService(db)
	vendor := createVendor(t, db, "fresh@example.com")

	dashboard, err := service.Dashboard(vendor.ID)
	require.NoError(t, err)

	assert.Equal(t, 0.0, dashboard.Stats.TotalRevenue)
	assert.Len(t, dashboard.WeeklyRevenue, 4)
	assert.Len(t, dashboard.DailyCounts, 7)
	assert.NotEmpty(t, dashboard.LinePoints)
	assert.Len(t, dashboard.SourceBreakdown, 4)
	assert.Equal(t, "conic-gradient(#e5e7eb 0 100%)", dashboard.PieGradient)
	assert.Empty(t, dashboard.UpcomingBookings)
	assert.Empty(t, dashboard.TopPackages)
}

func TestAnalyticsSummary(t *testing.T) {
	db := setupTestDB(t)
	service := NewService(db)
	vendor := createVendor(t, db, "summary@example.com")
	pkg := createPackage(t, db, vendor.ID, "Summed", 0)

	createBooking(t, db, pkg, catalog.BookingStatusConfirmed, catalog.SourceDirect, 250, time.Now())
	require.NoError(t, db.Create(&catalog.Review{PackageID: pkg.ID, Rating: 4}).Error)

	summary, err := service.AnalyticsSummary(vendor.ID)
	require.NoError(t, err)

	assert.Equal(t, int64(1), summary.Packages)
	assert.Equal(t, int64(1), summary.Bookings)
	assert.Equal(t, 250.0, summary.Revenue)
	assert.Equal(t, int64(1), summary.Reviews)
	assert.Equal(t, 4.0, summary.AvgRating)
}
