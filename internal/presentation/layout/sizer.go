package layout

import (
	"os"

	"golang.org/x/term"

	"github.com/penwyp/go-temp-monitor/internal/util"
)

const (
	fallbackWidth = 74
	minWidth      = 40
	maxWidth      = 160
	margin        = 2
)

// Sizer works out how wide terminal output may be.
type Sizer struct {
	fd int
}

// NewSizer measures the terminal attached to stdout.
func NewSizer() *Sizer {
	return &Sizer{fd: int(os.Stdout.Fd())}
}

// terminalWidth returns the terminal width, or false when fd is not a terminal.
func (s *Sizer) terminalWidth() (int, bool) {
	if !term.IsTerminal(s.fd) {
		return 0, false
	}
	width, _, err := term.GetSize(s.fd)
	if err != nil || width <= 0 {
		return 0, false
	}
	return width, true
}

// ChartWidth returns the width to draw charts at. A positive configured
// width is used as is; otherwise the terminal width minus a margin, clamped
// to a sane range.
func (s *Sizer) ChartWidth(configured int) int {
	if configured > 0 {
		return configured
	}

	width, ok := s.terminalWidth()
	if !ok {
		return fallbackWidth
	}
	width -= margin
	if width < minWidth {
		width = minWidth
	}
	if width > maxWidth {
		width = maxWidth
	}

	util.LogDebugf("ChartWidth %d", width)
	return width
}

// IsTerminal reports whether output goes to a terminal; colors are only
// useful there.
func (s *Sizer) IsTerminal() bool {
	return term.IsTerminal(s.fd)
}
