package commands

import (
	"fmt"
	"io"

	"github.com/penwyp/go-temp-monitor/internal/core/model"
	"github.com/penwyp/go-temp-monitor/internal/core/series"
	"github.com/penwyp/go-temp-monitor/internal/data/aggregator"
	"github.com/penwyp/go-temp-monitor/internal/presentation/formatter"
	"github.com/penwyp/go-temp-monitor/internal/presentation/layout"
	"github.com/penwyp/go-temp-monitor/internal/util"
	"github.com/spf13/cobra"
)

// loadLog reads the current reading log from the configured store.
func loadLog() (model.ReadingLog, error) {
	s, err := newStore()
	if err != nil {
		return nil, err
	}
	log, err := s.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load readings: %w", err)
	}
	util.LogDebug("Readings loaded", util.F("path", s.Path()), util.F("count", len(log)))
	return log, nil
}

// buildView derives statistics and the chart series from log.
func buildView(log model.ReadingLog, color bool) formatter.View {
	zone := util.GetTimeProvider().Location()
	rng, ok := series.YRange(log)
	view := formatter.View{
		Zone:     zone,
		Stats:    aggregator.Statistics(log),
		Points:   series.Build(log, zone),
		Range:    rng,
		HasRange: ok,
		Color:    color,
	}
	if latest, ok := aggregator.Latest(log); ok {
		view.Latest = &latest
	}
	return view
}

// renderOverview writes the statistics block followed by the chart.
func renderOverview(w io.Writer, log model.ReadingLog, width, height int, color bool) error {
	view := buildView(log, color)
	if err := formatter.NewSummaryFormatter().Format(w, view); err != nil {
		return err
	}
	if view.Stats.Empty() {
		return nil
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	return formatter.NewChartFormatter(width, height).Format(w, view)
}

func runOverview(cmd *cobra.Command, args []string) error {
	log, err := loadLog()
	if err != nil {
		return err
	}
	sizer := layout.NewSizer()
	return renderOverview(cmd.OutOrStdout(), log,
		sizer.ChartWidth(cfg.ChartWidth), formatter.DefaultChartHeight, colorEnabled(sizer))
}
