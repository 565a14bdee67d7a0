package commands

import (
	"github.com/penwyp/go-temp-monitor/internal/data/aggregator"
	"github.com/penwyp/go-temp-monitor/internal/presentation/formatter"
	"github.com/penwyp/go-temp-monitor/internal/presentation/layout"
	"github.com/penwyp/go-temp-monitor/internal/util"
	"github.com/spf13/cobra"
)

var statsDaily bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show average, minimum and maximum temperature",
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)

	statsCmd.Flags().BoolVar(&statsDaily, "daily", false,
		"Also show statistics per calendar day (display timezone)")
}

func runStats(cmd *cobra.Command, args []string) error {
	log, err := loadLog()
	if err != nil {
		return err
	}

	view := buildView(log, colorEnabled(layout.NewSizer()))
	if statsDaily {
		view.Daily = aggregator.ByDay(log, util.GetTimeProvider().Location())
	}
	return formatter.NewSummaryFormatter().Format(cmd.OutOrStdout(), view)
}
