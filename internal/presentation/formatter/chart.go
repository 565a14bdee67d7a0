package formatter

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/penwyp/go-temp-monitor/internal/util"
)

const (
	DefaultChartWidth  = 72
	DefaultChartHeight = 12

	minPlotWidth    = 10
	minChartHeight  = 3
	axisLabelWidth  = 7 // "42.0 ┤"
	labelEveryNRows = 3
	chartTimeLayout = "01-02 15:04"

	pointRune  = '•'
	markerRune = '◆'
)

// ChartFormatter draws the series as a terminal scatter plot. Points with a
// medication annotation use a distinct marker.
type ChartFormatter struct {
	width  int
	height int
}

// NewChartFormatter creates a chart formatter. A width of 0 uses
// DefaultChartWidth.
func NewChartFormatter(width, height int) *ChartFormatter {
	if width <= 0 {
		width = DefaultChartWidth
	}
	if height < minChartHeight {
		height = DefaultChartHeight
	}
	return &ChartFormatter{width: width, height: height}
}

func (f *ChartFormatter) Format(w io.Writer, view View) error {
	if len(view.Points) == 0 || !view.HasRange {
		_, err := fmt.Fprintln(w, "No temperature readings yet. Add your first reading with `add`.")
		return err
	}

	plotWidth := f.width - axisLabelWidth
	if plotWidth < minPlotWidth {
		plotWidth = minPlotWidth
	}

	grid := make([][]rune, f.height)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", plotWidth))
	}

	first := view.Points[0].LocalTime
	span := view.Points[len(view.Points)-1].LocalTime.Sub(first)
	for _, p := range view.Points {
		col := plotWidth / 2
		if span > 0 {
			col = int(math.Round(float64(p.LocalTime.Sub(first)) / float64(span) * float64(plotWidth-1)))
		}
		row := f.rowFor(p.Temperature, view)

		if p.Marked() {
			grid[row][col] = markerRune
		} else if grid[row][col] != markerRune {
			grid[row][col] = pointRune
		}
	}

	var b strings.Builder
	title := "Temperature Over Time"
	if view.Color {
		title = util.FormatHeaderTitle(title)
	}
	b.WriteString(title + "\n")
	b.WriteString("Temperature (°C)\n")

	step := view.Range.Span() / float64(f.height-1)
	for i, line := range grid {
		if i%labelEveryNRows == 0 || i == f.height-1 {
			fmt.Fprintf(&b, "%5.1f ┤", view.Range.Max-float64(i)*step)
		} else {
			b.WriteString("      │")
		}
		b.WriteString(f.colorLine(line, view.Color))
		b.WriteString("\n")
	}
	b.WriteString("      └" + strings.Repeat("─", plotWidth) + "\n")

	startLabel := first.Format(chartTimeLayout)
	endLabel := view.Points[len(view.Points)-1].LocalTime.Format(chartTimeLayout)
	axis := strings.Repeat(" ", axisLabelWidth) + startLabel
	if span > 0 {
		gap := plotWidth - util.GetDisplayWidth(startLabel) - util.GetDisplayWidth(endLabel)
		if gap < 1 {
			gap = 1
		}
		axis += strings.Repeat(" ", gap) + endLabel
	}
	b.WriteString(axis + "\n")
	fmt.Fprintf(&b, "%c reading  %c medication   times in %s\n", pointRune, markerRune, zoneName(view.Zone))

	_, err := io.WriteString(w, b.String())
	return err
}

func (f *ChartFormatter) rowFor(temp float64, view View) int {
	span := view.Range.Span()
	if span <= 0 {
		return f.height / 2
	}
	row := int(math.Round((view.Range.Max - temp) / span * float64(f.height-1)))
	if row < 0 {
		row = 0
	}
	if row > f.height-1 {
		row = f.height - 1
	}
	return row
}

func (f *ChartFormatter) colorLine(line []rune, color bool) string {
	if !color {
		return string(line)
	}
	var b strings.Builder
	for _, r := range line {
		switch r {
		case pointRune:
			b.WriteString(util.Colorize(string(r), util.ColorBlue, true))
		case markerRune:
			b.WriteString(util.Colorize(string(r), util.ColorRed, true))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
