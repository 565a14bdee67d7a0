package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/penwyp/go-temp-monitor/internal/util"
)

const maxMedicationWidth = 32

// TableFormatter prints chart points as a boxed table in the order given.
type TableFormatter struct {
	headers []string
}

func NewTableFormatter() *TableFormatter {
	return &TableFormatter{
		headers: []string{"Time", "Temperature", "Medication"},
	}
}

func (f *TableFormatter) Format(w io.Writer, view View) error {
	if len(view.Points) == 0 {
		_, err := fmt.Fprintln(w, "No temperature readings yet.")
		return err
	}

	rows := make([][]string, 0, len(view.Points))
	marked := make([]bool, 0, len(view.Points))
	for _, p := range view.Points {
		med := "-"
		if p.Marked() {
			med = util.Truncate(*p.Annotation, maxMedicationWidth)
		}
		rows = append(rows, []string{
			p.LocalTime.Format(displayTimeLayout),
			util.FormatTemperature(p.Temperature),
			med,
		})
		marked = append(marked, p.Marked())
	}

	widths := f.calculateColumnWidths(rows)
	var b strings.Builder

	f.writeBorder(&b, widths, "top")
	f.writeRow(&b, f.headers, widths, "")
	f.writeBorder(&b, widths, "middle")
	for i, row := range rows {
		color := ""
		if view.Color && marked[i] {
			color = util.ColorRed
		}
		f.writeRow(&b, row, widths, color)
	}
	f.writeBorder(&b, widths, "bottom")
	fmt.Fprintf(&b, "Times shown in %s\n", zoneName(view.Zone))

	_, err := io.WriteString(w, b.String())
	return err
}

func (f *TableFormatter) calculateColumnWidths(rows [][]string) []int {
	widths := make([]int, len(f.headers))
	for i, h := range f.headers {
		widths[i] = util.GetDisplayWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := util.GetDisplayWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}

func (f *TableFormatter) writeBorder(b *strings.Builder, widths []int, borderType string) {
	var left, middle, right string
	switch borderType {
	case "top":
		left, middle, right = "┌", "┬", "┐"
	case "middle":
		left, middle, right = "├", "┼", "┤"
	default:
		left, middle, right = "└", "┴", "┘"
	}

	b.WriteString(left)
	for i, width := range widths {
		b.WriteString(strings.Repeat("─", width+2))
		if i < len(widths)-1 {
			b.WriteString(middle)
		}
	}
	b.WriteString(right)
	b.WriteString("\n")
}

// writeRow writes one row; the temperature column is right-aligned.
func (f *TableFormatter) writeRow(b *strings.Builder, values []string, widths []int, color string) {
	b.WriteString("│")
	for i, value := range values {
		cell := util.PadString(value, widths[i], i != 1)
		if color != "" {
			cell = util.Colorize(cell, color, true)
		}
		b.WriteString(" " + cell + " │")
	}
	b.WriteString("\n")
}
