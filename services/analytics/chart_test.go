package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLineChartPointsFlatSeriesCentersVertically(t *testing.T) {
	points := LineChartPoints([]int64{3, 3, 3})
	assert.Equal(t, "10,80 160,80 310,80", points)
}

func TestLineChartPointsSpansCanvas(t *testing.T) {
	points := LineChartPoints([]int64{0, 10})
	// min maps to the bottom padding line, max to the top one
	assert.Equal(t, "10,140 310,20", points)
}

func TestLineChartPointsEmpty(t *testing.T) {
	assert.Equal(t, "", LineChartPoints(nil))
}

func TestLineChartPointsSingleValue(t *testing.T) {
	// A single point is a flat series: centered
	assert.Equal(t, "10,80", LineChartPoints([]int64{42}))
}

func TestBarPercentFloorsAtTwelve(t *testing.T) {
	assert.Equal(t, 12, barPercent(0, 1000))
	assert.Equal(t, 12, barPercent(50, 1000))
	assert.Equal(t, 100, barPercent(1000, 1000))
	assert.Equal(t, 50, barPercent(500, 1000))
}

func TestBarPercentAllZeroWindows(t *testing.T) {
	assert.Equal(t, 12, barPercent(0, 0))
}

func TestBarPercentRoundsHalfUp(t *testing.T) {
	// 125/1000 = 12.5% rounds to 13, above the floor
	assert.Equal(t, 13, barPercent(125, 1000))
}

func TestPieGradientEmptyIsNeutral(t *testing.T) {
	slices := []SourceSlice{
		{Color: "#1d4ed8", rawPercent: 0},
		{Color: "#1e3a8a", rawPercent: 0},
	}
	assert.Equal(t, "conic-gradient(#e5e7eb 0 100%)", pieGradient(slices))
}

func TestPieGradientSkipsZeroSlicesAndCloses(t *testing.T) {
	slices := []SourceSlice{
		{Color: "#1d4ed8", rawPercent: 66.66666666666667},
		{Color: "#1e3a8a", rawPercent: 0},
		{Color: "#60a5fa", rawPercent: 33.333333333333336},
		{Color: "#bfdbfe", rawPercent: 0},
	}
	got := pieGradient(slices)
	assert.Equal(t, "conic-gradient(#1d4ed8 0.0% 66.7%, #60a5fa 66.7% 100.0%)", got)
}

func TestPieGradientClosesDespiteFloatDust(t *testing.T) {
	// Two thirds plus one third lands at 99.999... — the circle must close
	// without a zero-width neutral segment.
	slices := []SourceSlice{
		{Color: "#1d4ed8", rawPercent: 2.0 / 3.0 * 100},
		{Color: "#60a5fa", rawPercent: 1.0 / 3.0 * 100},
	}
	got := pieGradient(slices)
	assert.Equal(t, "conic-gradient(#1d4ed8 0.0% 66.7%, #60a5fa 66.7% 100.0%)", got)
}

func TestPieGradientAppendsNeutralRemainder(t *testing.T) {
	slices := []SourceSlice{
		{Color: "#1d4ed8", rawPercent: 40},
		{Color: "#60a5fa", rawPercent: 35},
	}
	got := pieGradient(slices)
	assert.Equal(t, "conic-gradient(#1d4ed8 0.0% 40.0%, #60a5fa 40.0% 75.0%, #e5e7eb 75.0% 100%)", got)
}
