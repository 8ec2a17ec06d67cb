package analytics

import (
	"fmt"
	"math"
	"time"

	"travel-booking/models/catalog"

	"github.com/jinzhu/now"
	"gorm.io/gorm"
)

// Service computes the vendor dashboard. Every metric is a separate typed
// query, recomputed in full on each request; the dashboard is low-QPS and
// caching would only buy staleness.
type Service struct {
	DB *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{DB: db}
}

// HeadlineStats are the cards across the top of the dashboard.
type HeadlineStats struct {
	TotalRevenue    float64 `json:"total_revenue"`
	ActivePackages  int64   `json:"active_packages"`
	TotalBookings   int64   `json:"total_bookings"`
	PendingBookings int64   `json:"pending_bookings"`
	AverageRating   float64 `json:"average_rating"`
}

// RevenuePoint is one 7-day revenue window, already normalized for the bar
// chart.
type RevenuePoint struct {
	Label   string  `json:"label"`
	Value   float64 `json:"value"`
	Percent int     `json:"percent"`
}

// DailyCount is one day's booking count labeled by weekday abbreviation.
type DailyCount struct {
	Label string `json:"label"`
	Value int64  `json:"value"`
}

// SourceSlice is one acquisition channel's share of bookings.
type SourceSlice struct {
	Key     string `json:"key"`
	Label   string `json:"label"`
	Count   int64  `json:"count"`
	Percent int    `json:"percent"`
	Color   string `json:"color"`

	rawPercent float64
}

// PackagePerformance ranks a package by demand.
type PackagePerformance struct {
	catalog.Package
	BookingCount int64   `json:"booking_count"`
	AvgRating    float64 `json:"avg_rating"`
}

// Dashboard is the full view model for /vendor/dashboard/.
type Dashboard struct {
	Stats            HeadlineStats        `json:"stats"`
	WeeklyRevenue    []RevenuePoint       `json:"weekly_revenue"`
	DailyCounts      []DailyCount         `json:"daily_counts"`
	LinePoints       string               `json:"line_points"`
	SourceBreakdown  []SourceSlice        `json:"source_breakdown"`
	PieGradient      string               `json:"pie_gradient"`
	UpcomingBookings []catalog.Booking    `json:"upcoming_bookings"`
	TopPackages      []PackagePerformance `json:"top_packages"`
}

// Summary backs the /vendor/analytics/ page.
type Summary struct {
	Packages  int64   `json:"packages"`
	Bookings  int64   `json:"bookings"`
	Revenue   float64 `json:"revenue"`
	Reviews   int64   `json:"reviews"`
	AvgRating float64 `json:"avg_rating"`
}

// Dashboard assembles every dashboard metric for the vendor as of now.
func (s *Service) Dashboard(vendorID uint) (*Dashboard, error) {
	today := now.BeginningOfDay()

	stats, err := s.Headline(vendorID)
	if err != nil {
		return nil, err
	}

	weekly, err := s.WeeklyRevenue(vendorID, today)
	if err != nil {
		return nil, err
	}

	daily, err := s.DailyBookingCounts(vendorID, today)
	if err != nil {
		return nil, err
	}

	values := make([]int64, len(daily))
	for i, d := range daily {
		values[i] = d.Value
	}

	breakdown, gradient, err := s.SourceBreakdown(vendorID)
	if err != nil {
		return nil, err
	}

	upcoming, err := s.UpcomingBookings(vendorID, today)
	if err != nil {
		return nil, err
	}

	top, err := s.TopPackages(vendorID)
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		Stats:            *stats,
		WeeklyRevenue:    weekly,
		DailyCounts:      daily,
		LinePoints:       LineChartPoints(values),
		SourceBreakdown:  breakdown,
		PieGradient:      gradient,
		UpcomingBookings: upcoming,
		TopPackages:      top,
	}, nil
}

// vendorBookings scopes the bookings table to one vendor's packages.
func (s *Service) vendorBookings(vendorID uint) *gorm.DB {
	return s.DB.Model(&catalog.Booking{}).
		Joins("JOIN packages ON packages.id = bookings.package_id").
		Where("packages.vendor_id = ?", vendorID)
}

// Headline computes the top-line cards.
func (s *Service) Headline(vendorID uint) (*HeadlineStats, error) {
	var stats HeadlineStats

	err := s.vendorBookings(vendorID).
		Where("bookings.status = ?", catalog.BookingStatusConfirmed).
		Select("COALESCE(SUM(bookings.total_price), 0)").
		Row().Scan(&stats.TotalRevenue)
	if err != nil {
		return nil, fmt.Errorf("failed to sum confirmed revenue: %w", err)
	}

	err = s.DB.Model(&catalog.Package{}).
		Where("vendor_id = ? AND is_active = ?", vendorID, true).
		Count(&stats.ActivePackages).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count active packages: %w", err)
	}

	if err := s.vendorBookings(vendorID).Count(&stats.TotalBookings).Error; err != nil {
		return nil, fmt.Errorf("failed to count bookings: %w", err)
	}

	err = s.vendorBookings(vendorID).
		Where("bookings.status = ?", catalog.BookingStatusPending).
		Count(&stats.PendingBookings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count pending bookings: %w", err)
	}

	avg, err := s.averageRating(vendorID)
	if err != nil {
		return nil, err
	}
	stats.AverageRating = math.Round(avg*10) / 10

	return &stats, nil
}

func (s *Service) averageRating(vendorID uint) (float64, error) {
	var avg float64
	err := s.DB.Model(&catalog.Review{}).
		Joins("JOIN packages ON packages.id = reviews.package_id").
		Where("packages.vendor_id = ?", vendorID).
		Select("COALESCE(AVG(reviews.rating), 0)").
		Row().Scan(&avg)
	if err != nil {
		return 0, fmt.Errorf("failed to average ratings: %w", err)
	}
	return avg, nil
}

// WeeklyRevenue sums confirmed revenue over four trailing 7-day windows
// ending today, oldest first.
func (s *Service) WeeklyRevenue(vendorID uint, today time.Time) ([]RevenuePoint, error) {
	type window struct{ start, end time.Time }

	windows := make([]window, 0, 4)
	end := today
	for i := 0; i < 4; i++ {
		start := end.AddDate(0, 0, -6)
		windows = append(windows, window{start: start, end: end})
		end = start.AddDate(0, 0, -1)
	}
	// oldest first
	for i, j := 0, len(windows)-1; i < j; i, j = i+1, j-1 {
		windows[i], windows[j] = windows[j], windows[i]
	}

	points := make([]RevenuePoint, 0, 4)
	maxRevenue := 0.0
	for index, w := range windows {
		var total float64
		err := s.vendorBookings(vendorID).
			Where("bookings.status = ?", catalog.BookingStatusConfirmed).
			Where("bookings.created_at >= ? AND bookings.created_at < ?", w.start, w.end.AddDate(0, 0, 1)).
			Select("COALESCE(SUM(bookings.total_price), 0)").
			Row().Scan(&total)
		if err != nil {
			return nil, fmt.Errorf("failed to sum weekly revenue: %w", err)
		}

		if total > maxRevenue {
			maxRevenue = total
		}
		points = append(points, RevenuePoint{
			Label: fmt.Sprintf("Week %d", index+1),
			Value: total,
		})
	}

	for i := range points {
		points[i].Percent = barPercent(points[i].Value, maxRevenue)
	}

	return points, nil
}

// DailyBookingCounts counts bookings created on each of the seven trailing
// days, today inclusive.
func (s *Service) DailyBookingCounts(vendorID uint, today time.Time) ([]DailyCount, error) {
	counts := make([]DailyCount, 0, 7)
	for i := 6; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)

		var count int64
		err := s.vendorBookings(vendorID).
			Where("bookings.created_at >= ? AND bookings.created_at < ?", day, day.AddDate(0, 0, 1)).
			Count(&count).Error
		if err != nil {
			return nil, fmt.Errorf("failed to count daily bookings: %w", err)
		}

		counts = append(counts, DailyCount{
			Label: day.Format("Mon"),
			Value: count,
		})
	}

	return counts, nil
}

// SourceBreakdown counts bookings per acquisition channel in fixed order and
// returns both the table rows and the pie gradient spec.
func (s *Service) SourceBreakdown(vendorID uint) ([]SourceSlice, string, error) {
	totals := make(map[catalog.BookingSource]int64)

	rows, err := s.vendorBookings(vendorID).
		Select("bookings.source, COUNT(bookings.id)").
		Group("bookings.source").
		Rows()
	if err != nil {
		return nil, "", fmt.Errorf("failed to group bookings by source: %w", err)
	}
	defer rows.Close()

	var totalSources int64
	for rows.Next() {
		var source catalog.BookingSource
		var count int64
		if err := rows.Scan(&source, &count); err != nil {
			return nil, "", fmt.Errorf("failed to scan source row: %w", err)
		}
		totals[source] = count
		totalSources += count
	}

	slices := make([]SourceSlice, 0, 4)
	for _, source := range catalog.AllBookingSources() {
		count := totals[source]
		percent := 0.0
		if totalSources > 0 {
			percent = float64(count) / float64(totalSources) * 100
		}
		slices = append(slices, SourceSlice{
			Key:        source.String(),
			Label:      titleCase(source.String()),
			Count:      count,
			Percent:    int(math.Round(percent)),
			Color:      sourceColors[source.String()],
			rawPercent: percent,
		})
	}

	return slices, pieGradient(slices), nil
}

// UpcomingBookings returns the next three non-cancelled departures within a
// fortnight of today.
func (s *Service) UpcomingBookings(vendorID uint, today time.Time) ([]catalog.Booking, error) {
	var bookings []catalog.Booking
	err := s.DB.
		Joins("JOIN packages ON packages.id = bookings.package_id").
		Where("packages.vendor_id = ?", vendorID).
		Where("bookings.start_date >= ? AND bookings.start_date <= ?", today, today.AddDate(0, 0, 14)).
		Where("bookings.status <> ?", catalog.BookingStatusCancelled).
		Order("bookings.start_date ASC").
		Limit(3).
		Preload("Package").
		Find(&bookings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load upcoming bookings: %w", err)
	}
	return bookings, nil
}

// TopPackages ranks the vendor's three busiest packages, ties broken by view
// count.
func (s *Service) TopPackages(vendorID uint) ([]PackagePerformance, error) {
	var top []PackagePerformance
	err := s.DB.Model(&catalog.Package{}).
		Select(`packages.*,
			COUNT(DISTINCT bookings.id) AS booking_count,
			COALESCE(AVG(reviews.rating), 0) AS avg_rating`).
		Joins("LEFT JOIN bookings ON bookings.package_id = packages.id").
		Joins("LEFT JOIN reviews ON reviews.package_id = packages.id").
		Where("packages.vendor_id = ?", vendorID).
		Group("packages.id").
		Order("booking_count DESC, packages.views_count DESC").
		Limit(3).
		Find(&top).Error
	if err != nil {
		return nil, fmt.Errorf("failed to rank packages: %w", err)
	}
	return top, nil
}

// AnalyticsSummary backs the lighter /vendor/analytics/ page.
func (s *Service) AnalyticsSummary(vendorID uint) (*Summary, error) {
	var summary Summary

	err := s.DB.Model(&catalog.Package{}).
		Where("vendor_id = ?", vendorID).
		Count(&summary.Packages).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count packages: %w", err)
	}

	if err := s.vendorBookings(vendorID).Count(&summary.Bookings).Error; err != nil {
		return nil, fmt.Errorf("failed to count bookings: %w", err)
	}

	err = s.vendorBookings(vendorID).
		Where("bookings.status = ?", catalog.BookingStatusConfirmed).
		Select("COALESCE(SUM(bookings.total_price), 0)").
		Row().Scan(&summary.Revenue)
	if err != nil {
		return nil, fmt.Errorf("failed to sum revenue: %w", err)
	}

	err = s.DB.Model(&catalog.Review{}).
		Joins("JOIN packages ON packages.id = reviews.package_id").
		Where("packages.vendor_id = ?", vendorID).
		Count(&summary.Reviews).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count reviews: %w", err)
	}

	avg, err := s.averageRating(vendorID)
	if err != nil {
		return nil, err
	}
	summary.AvgRating = avg

	return &summary, nil
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
