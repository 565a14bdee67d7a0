package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/penwyp/go-temp-monitor/internal/util"
)

// SummaryFormatter prints the statistics block.
type SummaryFormatter struct{}

func NewSummaryFormatter() *SummaryFormatter {
	return &SummaryFormatter{}
}

func (f *SummaryFormatter) Format(w io.Writer, view View) error {
	var b strings.Builder

	title := "Statistics"
	b.WriteString(util.FormatSectionSeparator() + "\n")
	if view.Color {
		b.WriteString(util.FormatHeaderTitle(title) + "\n")
	} else {
		b.WriteString(title + "\n")
	}
	b.WriteString(util.FormatSectionSeparator() + "\n")

	// The all-zero triple is a sentinel, not data
	if view.Stats.Empty() {
		b.WriteString("No temperature readings yet. Add your first reading with `add`.\n")
		_, err := io.WriteString(w, b.String())
		return err
	}

	writeLine(&b, "Average:", util.FormatTemperature(view.Stats.Mean))
	writeLine(&b, "Minimum:", util.FormatTemperature(view.Stats.Min))
	writeLine(&b, "Maximum:", util.FormatTemperature(view.Stats.Max))
	writeLine(&b, "Readings:", fmt.Sprintf("%d", view.Stats.Count))
	if view.Latest != nil {
		latest := fmt.Sprintf("%s at %s",
			util.FormatTemperature(view.Latest.Temperature),
			view.Latest.Timestamp.In(zoneOrUTC(view.Zone)).Format(displayTimeLayout))
		if view.Latest.HasMedication() {
			latest += " (" + util.Truncate(view.Latest.MedicationLabel(), maxMedicationWidth) + ")"
		}
		writeLine(&b, "Latest:", latest)
	}

	if n := len(view.Points); n > 0 {
		first, last := view.Points[0], view.Points[n-1]
		writeLine(&b, "Period:", fmt.Sprintf("%s to %s (%s)",
			first.LocalTime.Format(displayTimeLayout),
			last.LocalTime.Format(displayTimeLayout),
			zoneName(view.Zone)))

		medicated := 0
		for _, p := range view.Points {
			if p.Marked() {
				medicated++
			}
		}
		writeLine(&b, "Medicated:", fmt.Sprintf("%d", medicated))
	}

	if len(view.Daily) > 0 {
		b.WriteString("\nBy day:\n")
		for _, d := range view.Daily {
			fmt.Fprintf(&b, "  %s  avg %s  min %s  max %s  %s",
				d.Date,
				util.FormatTemperature(d.Stats.Mean),
				util.FormatTemperature(d.Stats.Min),
				util.FormatTemperature(d.Stats.Max),
				util.PadString(fmt.Sprintf("(%d)", d.Stats.Count), 5, false))
			if d.Medicated > 0 {
				fmt.Fprintf(&b, "  medicated %d", d.Medicated)
			}
			b.WriteString("\n")
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeLine(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "  %-10s %s\n", label, value)
}
