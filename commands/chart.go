package commands

import (
	"fmt"

	"github.com/penwyp/go-temp-monitor/internal/presentation/formatter"
	"github.com/penwyp/go-temp-monitor/internal/presentation/layout"
	"github.com/spf13/cobra"
)

var (
	chartWidth  int
	chartHeight int
)

var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Plot temperature over time",
	Long: `Plot temperature over time in the display timezone. The y axis always covers
35.0 to 42.0 °C and widens to fit readings outside that range. Readings with a
medication note are drawn with a distinct marker.`,
	RunE: runChart,
}

func init() {
	rootCmd.AddCommand(chartCmd)

	chartCmd.Flags().IntVar(&chartWidth, "width", 0,
		"Chart width in columns (0 = fit the terminal)")
	chartCmd.Flags().IntVar(&chartHeight, "height", formatter.DefaultChartHeight,
		"Chart height in rows")
}

func runChart(cmd *cobra.Command, args []string) error {
	if chartWidth < 0 {
		return fmt.Errorf("width must be >= 0, got %d", chartWidth)
	}

	log, err := loadLog()
	if err != nil {
		return err
	}

	width := cfg.ChartWidth
	if cmd.Flags().Changed("width") {
		width = chartWidth
	}
	sizer := layout.NewSizer()

	view := buildView(log, colorEnabled(sizer))
	return formatter.NewChartFormatter(sizer.ChartWidth(width), chartHeight).
		Format(cmd.OutOrStdout(), view)
}
