package formatter

import (
	"io"
	"time"

	"github.com/penwyp/go-temp-monitor/internal/core/model"
	"github.com/penwyp/go-temp-monitor/internal/core/series"
	"github.com/penwyp/go-temp-monitor/internal/data/aggregator"
)

// View is everything a formatter needs to render one screen of the log.
type View struct {
	Zone     *time.Location
	Stats    aggregator.Stats
	Latest   *model.Reading // nil for an empty log
	Daily    []aggregator.DailyStats
	Points   []series.ChartPoint
	Range    series.AxisRange
	HasRange bool
	Color    bool
}

// Formatter renders a View.
type Formatter interface {
	Format(w io.Writer, view View) error
}

const displayTimeLayout = "2006-01-02 15:04"

func zoneOrUTC(loc *time.Location) *time.Location {
	if loc == nil {
		return time.UTC
	}
	return loc
}

func zoneName(loc *time.Location) string {
	return zoneOrUTC(loc).String()
}
