package series

import (
	"time"
)

// Default y-axis bounds in °C and the margin added around outliers.
const (
	AxisFloor  = 35.0
	AxisCeil   = 42.0
	AxisMargin = 0.5
)

// ChartPoint is a reading projected into display coordinates.
type ChartPoint struct {
	LocalTime   time.Time `json:"localTime"`
	Temperature float64   `json:"temperature"`
	Annotation  *string   `json:"annotation,omitempty"` // medication text, nil when none
}

// Marked reports whether the point should be drawn with the medication marker.
func (p ChartPoint) Marked() bool {
	return p.Annotation != nil
}

// AxisRange is the y-axis extent of a chart.
type AxisRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Span returns Max - Min.
func (a AxisRange) Span() float64 {
	return a.Max - a.Min
}
