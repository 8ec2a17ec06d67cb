package analytics

import (
	"fmt"
	"math"
	"strings"
)

// Line chart canvas. The coordinates are embedded directly in an SVG
// polyline, so they are emitted as whole numbers.
const (
	chartWidth    = 320.0
	chartHeight   = 160.0
	chartPaddingX = 10.0
	chartPaddingY = 20.0
)

const neutralColor = "#e5e7eb"

var sourceColors = map[string]string{
	"direct":      "#1d4ed8",
	"partner":     "#1e3a8a",
	"social":      "#60a5fa",
	"marketplace": "#bfdbfe",
}

// LineChartPoints spreads the values evenly across the canvas and
// interpolates y between the observed min and max, inverted so larger values
// plot higher. A flat series sits on the vertical center line rather than
// dividing by zero.
func LineChartPoints(values []int64) string {
	if len(values) == 0 {
		return ""
	}

	maxValue := values[0]
	minValue := values[0]
	for _, v := range values {
		if v > maxValue {
			maxValue = v
		}
		if v < minValue {
			minValue = v
		}
	}

	step := (chartWidth - chartPaddingX*2) / math.Max(float64(len(values)-1), 1)

	points := make([]string, 0, len(values))
	for idx, value := range values {
		x := chartPaddingX + float64(idx)*step
		y := chartHeight / 2
		if maxValue != minValue {
			ratio := float64(value-minValue) / float64(maxValue-minValue)
			y = chartHeight - chartPaddingY - ratio*(chartHeight-chartPaddingY*2)
		}
		points = append(points, fmt.Sprintf("%.0f,%.0f", x, y))
	}

	return strings.Join(points, " ")
}

// barPercent normalizes a revenue window against the largest one. The floor
// of 12 keeps zero-value bars visible; an all-zero trend renders every bar at
// exactly 12.
func barPercent(value, maxValue float64) int {
	if maxValue == 0 {
		return 12
	}
	percent := int(math.Round(value / maxValue * 100))
	if percent < 12 {
		return 12
	}
	return percent
}

// pieGradient builds a conic-gradient spec from the raw (unrounded) slice
// percentages, appending a neutral remainder so the circle always closes at
// 100%. With no bookings at all the whole circle is neutral.
func pieGradient(slices []SourceSlice) string {
	var segments []string
	current := 0.0
	for _, slice := range slices {
		if slice.rawPercent > 0 {
			next := current + slice.rawPercent
			segments = append(segments, fmt.Sprintf("%s %.1f%% %.1f%%", slice.Color, current, next))
			current = next
		}
	}

	if len(segments) == 0 {
		return fmt.Sprintf("conic-gradient(%s 0 100%%)", neutralColor)
	}
	// Raw thirds sum to 99.999... in float64; treat that as a closed circle
	// instead of emitting a zero-width remainder segment.
	if current < 100-1e-9 {
		segments = append(segments, fmt.Sprintf("%s %.1f%% 100%%", neutralColor, current))
	}
	return fmt.Sprintf("conic-gradient(%s)", strings.Join(segments, ", "))
}
