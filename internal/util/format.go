package util

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatTemperature renders a value with one decimal and the °C unit.
func FormatTemperature(v float64) string {
	return fmt.Sprintf("%.1f°C", v)
}

// ParseTemperature parses a user-entered temperature, accepting a comma as
// the decimal separator and an optional °C / C suffix.
func ParseTemperature(s string) (float64, error) {
	clean := strings.TrimSpace(s)
	clean = strings.TrimSuffix(clean, "°C")
	clean = strings.TrimSuffix(clean, "C")
	clean = strings.TrimSuffix(clean, "°")
	clean = strings.ReplaceAll(strings.TrimSpace(clean), ",", ".")
	v, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid temperature %q", s)
	}
	return v, nil
}

// Truncate shortens s to at most width display columns, adding an ellipsis.
func Truncate(s string, width int) string {
	if GetDisplayWidth(s) <= width {
		return s
	}
	if width <= 1 {
		return "…"
	}
	out := []rune{}
	for _, r := range s {
		if GetDisplayWidth(string(append(out, r)))+1 > width {
			break
		}
		out = append(out, r)
	}
	return string(out) + "…"
}
