package commands

import (
	"context"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/penwyp/go-temp-monitor/internal/core/watcher"
	"github.com/penwyp/go-temp-monitor/internal/presentation/display"
	"github.com/penwyp/go-temp-monitor/internal/presentation/formatter"
	"github.com/penwyp/go-temp-monitor/internal/presentation/layout"
	"github.com/penwyp/go-temp-monitor/internal/util"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Show statistics and chart, redrawing when the data file changes",
	Long: `Similar to Linux watch, keeps the statistics and chart on screen and redraws
them whenever the data file is rewritten, for example by "add" in another
terminal. Press Ctrl+C to exit.`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return watchLoop(ctx, cmd.OutOrStdout())
}

// watchLoop redraws on every change of the data file until ctx is done.
func watchLoop(ctx context.Context, w io.Writer) error {
	fw, err := watcher.NewFileWatcher(cfg.DataFile)
	if err != nil {
		return err
	}
	defer fw.Close()

	sizer := layout.NewSizer()
	color := colorEnabled(sizer)
	screen := display.NewScreen(w, color)
	screen.Enter()
	defer screen.Exit()

	redraw := func() {
		if err := screen.Draw(renderWatchFrame(sizer.ChartWidth(cfg.ChartWidth), color)); err != nil {
			util.LogError("Render failed", util.F("error", err.Error()))
		}
	}

	redraw()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.Events():
			if !ok {
				return nil
			}
			util.LogDebug("Redrawing after change", util.F("op", ev.Operation))
			redraw()
		}
	}
}

// renderWatchFrame loads the log and renders one screen. Load errors are
// shown instead of ending the watch, since the next write may fix the file.
func renderWatchFrame(width int, color bool) string {
	var b strings.Builder
	log, err := loadLog()
	if err != nil {
		util.LogWarn("Failed to reload readings", util.F("error", err.Error()))
		b.WriteString("Error: " + err.Error() + "\n")
	} else if err := renderOverview(&b, log, width, formatter.DefaultChartHeight, color); err != nil {
		b.WriteString("Error: " + err.Error() + "\n")
	}
	b.WriteString("\nWatching " + cfg.DataFile + " (Ctrl+C to exit)\n")
	return b.String()
}
