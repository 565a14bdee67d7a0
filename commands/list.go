package commands

import (
	"fmt"

	"github.com/penwyp/go-temp-monitor/internal/core/series"
	"github.com/penwyp/go-temp-monitor/internal/presentation/formatter"
	"github.com/penwyp/go-temp-monitor/internal/presentation/layout"
	"github.com/spf13/cobra"
)

var listLimit int

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List readings, newest first",
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 0,
		"Limit result count (0 = unlimited)")
}

// newestFirst returns the points in reverse order, cut to limit when
// limit is positive.
func newestFirst(points []series.ChartPoint, limit int) []series.ChartPoint {
	n := len(points)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]series.ChartPoint, 0, n)
	for i := len(points) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, points[i])
	}
	return out
}

func runList(cmd *cobra.Command, args []string) error {
	if listLimit < 0 {
		return fmt.Errorf("limit must be >= 0, got %d", listLimit)
	}

	log, err := loadLog()
	if err != nil {
		return err
	}

	view := buildView(log, colorEnabled(layout.NewSizer()))
	view.Points = newestFirst(view.Points, listLimit)
	return formatter.NewTableFormatter().Format(cmd.OutOrStdout(), view)
}
