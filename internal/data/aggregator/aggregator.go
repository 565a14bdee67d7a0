package aggregator

import (
	"sort"
	"time"

	"github.com/penwyp/go-temp-monitor/internal/core/model"
)

// Stats holds summary statistics of a reading log, each rounded to one
// decimal place. An empty log yields the all-zero sentinel with Count 0.
type Stats struct {
	Mean  float64 `json:"mean"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Count int     `json:"count"`
}

// Empty reports whether the stats are the sentinel for an empty log.
// An all-zero Mean/Min/Max alone does not imply emptiness.
func (s Stats) Empty() bool {
	return s.Count == 0
}

// Statistics computes mean, minimum and maximum temperature of log.
func Statistics(log model.ReadingLog) Stats {
	if len(log) == 0 {
		return Stats{}
	}

	temps := log.Temperatures()
	minTemp, maxTemp := temps[0], temps[0]
	var sum float64
	for _, t := range temps {
		sum += t
		if t < minTemp {
			minTemp = t
		}
		if t > maxTemp {
			maxTemp = t
		}
	}

	return Stats{
		Mean:  model.RoundTemperature(sum / float64(len(temps))),
		Min:   model.RoundTemperature(minTemp),
		Max:   model.RoundTemperature(maxTemp),
		Count: len(temps),
	}
}

// Latest returns the most recent reading by timestamp.
func Latest(log model.ReadingLog) (model.Reading, bool) {
	if len(log) == 0 {
		return model.Reading{}, false
	}
	latest := log[0]
	for _, r := range log[1:] {
		if !r.Timestamp.Before(latest.Timestamp) {
			latest = r
		}
	}
	return latest, true
}

// DailyStats is the summary of readings taken on one calendar day.
type DailyStats struct {
	Date      string `json:"date"` // YYYY-MM-DD in the grouping zone
	Stats     Stats  `json:"stats"`
	Medicated int    `json:"medicated"` // readings with a medication note
}

// ByDay groups readings by calendar day as seen in loc and returns one
// summary per day, oldest first.
func ByDay(log model.ReadingLog, loc *time.Location) []DailyStats {
	if loc == nil {
		loc = time.UTC
	}

	groups := make(map[string]model.ReadingLog)
	medicated := make(map[string]int)
	for _, r := range log {
		day := r.Timestamp.In(loc).Format("2006-01-02")
		groups[day] = append(groups[day], r)
		if r.HasMedication() {
			medicated[day]++
		}
	}

	days := make([]string, 0, len(groups))
	for day := range groups {
		days = append(days, day)
	}
	sort.Strings(days)

	out := make([]DailyStats, 0, len(days))
	for _, day := range days {
		out = append(out, DailyStats{
			Date:      day,
			Stats:     Statistics(groups[day]),
			Medicated: medicated[day],
		})
	}
	return out
}
