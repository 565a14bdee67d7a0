package fixtures

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	fileTimestampLayout = "2006-01-02 15:04:05-0700"
	currentHeader       = "timestamp,temperature,medication"
	legacyHeader        = "timestamp,temperature"
)

// FeverReading is one row of a generated fever course.
type FeverReading struct {
	Offset      time.Duration
	Temperature float64
	Medication  string
}

// FeverCourse is a two day fever that peaks on the first evening and is
// treated twice.
var FeverCourse = []FeverReading{
	{Offset: 0, Temperature: 37.4},
	{Offset: 4 * time.Hour, Temperature: 38.1},
	{Offset: 8 * time.Hour, Temperature: 39.2, Medication: "paracetamol 500mg"},
	{Offset: 12 * time.Hour, Temperature: 38.4},
	{Offset: 24 * time.Hour, Temperature: 38.6, Medication: "ibuprofen 400mg"},
	{Offset: 28 * time.Hour, Temperature: 37.6},
	{Offset: 32 * time.Hour, Temperature: 36.9},
}

// ReadingFileGenerator writes reading log CSV files for tests.
type ReadingFileGenerator struct {
	baseDir string
}

func NewReadingFileGenerator(baseDir string) *ReadingFileGenerator {
	return &ReadingFileGenerator{
		baseDir: baseDir,
	}
}

// WriteFile writes the given lines verbatim, one per line, and returns the
// file path.
func (g *ReadingFileGenerator) WriteFile(name string, lines ...string) (string, error) {
	path := filepath.Join(g.baseDir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", err
	}
	content := strings.Join(lines, "\n") + "\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", err
	}
	return path, nil
}

// GenerateFeverCourse writes FeverCourse starting at start, rows in the
// zone of start.
func (g *ReadingFileGenerator) GenerateFeverCourse(name string, start time.Time) (string, error) {
	lines := []string{currentHeader}
	for _, r := range FeverCourse {
		lines = append(lines, fmt.Sprintf("%s,%.1f,%s",
			start.Add(r.Offset).Format(fileTimestampLayout), r.Temperature, r.Medication))
	}
	return g.WriteFile(name, lines...)
}

// GenerateLegacyFile writes a file without the medication column, one
// reading per hour from start.
func (g *ReadingFileGenerator) GenerateLegacyFile(name string, start time.Time, temps ...float64) (string, error) {
	lines := []string{legacyHeader}
	for i, temp := range temps {
		lines = append(lines, fmt.Sprintf("%s,%.1f",
			start.Add(time.Duration(i)*time.Hour).Format(fileTimestampLayout), temp))
	}
	return g.WriteFile(name, lines...)
}

// GenerateNaiveTimestampFile writes a file whose second data row has no
// zone offset.
func (g *ReadingFileGenerator) GenerateNaiveTimestampFile(name string) (string, error) {
	return g.WriteFile(name,
		currentHeader,
		"2024-03-01 08:00:00+0000,37.0,",
		"2024-03-01 09:00:00,37.2,",
	)
}
