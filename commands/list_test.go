package commands

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/penwyp/go-temp-monitor/internal/core/series"
)

func TestNewestFirst(t *testing.T) {
	base := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	points := []series.ChartPoint{
		{LocalTime: base, Temperature: 36.5},
		{LocalTime: base.Add(time.Hour), Temperature: 37.0},
		{LocalTime: base.Add(2 * time.Hour), Temperature: 37.5},
	}

	tests := []struct {
		name     string
		limit    int
		expected []float64
	}{
		{"unlimited", 0, []float64{37.5, 37.0, 36.5}},
		{"limited", 2, []float64{37.5, 37.0}},
		{"limit above length", 10, []float64{37.5, 37.0, 36.5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := newestFirst(points, tt.limit)
			temps := make([]float64, len(got))
			for i, p := range got {
				temps[i] = p.Temperature
			}
			assert.Equal(t, tt.expected, temps)
		})
	}

	assert.Empty(t, newestFirst(nil, 0))
}

func TestList(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun(t, "add", "36.5", "--at", "2024-03-01 08:00")
	env.mustRun(t, "add", "38.2", "--at", "2024-03-01 14:00", "--medication", "ibuprofen")
	env.mustRun(t, "add", "37.0", "--at", "2024-03-01 20:00")

	out := env.mustRun(t, "list")

	first := strings.Index(out, "2024-03-01 20:00")
	middle := strings.Index(out, "2024-03-01 14:00")
	last := strings.Index(out, "2024-03-01 08:00")
	require.True(t, first >= 0 && middle >= 0 && last >= 0, out)
	assert.Less(t, first, middle)
	assert.Less(t, middle, last)
	assert.Contains(t, out, "ibuprofen")
	assert.Contains(t, out, "Times shown in UTC")
}

func TestListLimit(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun(t, "add", "36.5", "--at", "2024-03-01 08:00")
	env.mustRun(t, "add", "37.0", "--at", "2024-03-01 20:00")

	out := env.mustRun(t, "list", "--limit", "1")

	assert.Contains(t, out, "2024-03-01 20:00")
	assert.NotContains(t, out, "2024-03-01 08:00")
}

func TestListEmpty(t *testing.T) {
	env := newTestEnv(t)

	out := env.mustRun(t, "list")
	assert.Contains(t, out, "No temperature readings yet.")
}

func TestListRejectsNegativeLimit(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run(t, "list", "--limit", "-3")
	assert.Error(t, err)
}
