package series

import (
	"math"
	"time"

	"github.com/penwyp/go-temp-monitor/internal/core/model"
)

// Build projects log into chart points in the display zone, oldest first.
// The storage zone of each reading is irrelevant: only the instant is kept.
// A nil zone means UTC.
func Build(log model.ReadingLog, displayZone *time.Location) []ChartPoint {
	if displayZone == nil {
		displayZone = time.UTC
	}

	sorted := log.Sorted()
	points := make([]ChartPoint, 0, len(sorted))
	for _, r := range sorted {
		point := ChartPoint{
			LocalTime:   r.Timestamp.In(displayZone),
			Temperature: r.Temperature,
		}
		if r.HasMedication() {
			annotation := r.MedicationLabel()
			point.Annotation = &annotation
		}
		points = append(points, point)
	}
	return points
}

// YRange returns the y-axis range for log. The axis always covers
// [AxisFloor, AxisCeil] and widens by AxisMargin around readings outside it.
// ok is false for an empty log, where no axis should be drawn.
func YRange(log model.ReadingLog) (AxisRange, bool) {
	if len(log) == 0 {
		return AxisRange{}, false
	}

	lo, hi := log[0].Temperature, log[0].Temperature
	for _, r := range log[1:] {
		lo = math.Min(lo, r.Temperature)
		hi = math.Max(hi, r.Temperature)
	}

	return AxisRange{
		Min: model.RoundTemperature(math.Min(AxisFloor, lo-AxisMargin)),
		Max: model.RoundTemperature(math.Max(AxisCeil, hi+AxisMargin)),
	}, true
}
