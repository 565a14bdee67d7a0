package model

import (
	"math"
	"sort"
	"strings"
	"time"
)

// Temperature bounds accepted by the entry form, in °C.
const (
	MinTemperature     = 35.0
	MaxTemperature     = 42.0
	DefaultTemperature = 37.0
)

// Reading is a single timestamped body temperature observation.
type Reading struct {
	Timestamp   time.Time `json:"timestamp"`
	Temperature float64   `json:"temperature"`
	Medication  *string   `json:"medication,omitempty"` // nil when no medication was recorded
}

// ReadingLog is the full set of readings, ascending by timestamp once persisted.
type ReadingLog []Reading

// NewReading builds a reading with the temperature rounded to one decimal place.
// An empty medication string is kept as an empty (non-nil) annotation.
func NewReading(ts time.Time, temperature float64, medication *string) Reading {
	return Reading{
		Timestamp:   ts,
		Temperature: RoundTemperature(temperature),
		Medication:  medication,
	}
}

// HasMedication reports whether the reading carries a non-empty medication note.
func (r Reading) HasMedication() bool {
	return r.Medication != nil && strings.TrimSpace(*r.Medication) != ""
}

// MedicationLabel returns the medication text, or "" for absent and empty values alike.
func (r Reading) MedicationLabel() string {
	if !r.HasMedication() {
		return ""
	}
	return *r.Medication
}

// RoundTemperature rounds to one decimal place, half away from zero.
func RoundTemperature(v float64) float64 {
	return math.Round(v*10) / 10
}

// Sorted returns a copy of the log ordered ascending by timestamp.
// Readings with equal timestamps keep their relative order.
func (l ReadingLog) Sorted() ReadingLog {
	out := make(ReadingLog, len(l))
	copy(out, l)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out
}

// Temperatures extracts the temperature column.
func (l ReadingLog) Temperatures() []float64 {
	temps := make([]float64, len(l))
	for i, r := range l {
		temps[i] = r.Temperature
	}
	return temps
}

// StringPtr is a helper for building optional medication values.
func StringPtr(s string) *string {
	return &s
}
