package display

import (
	"io"
	"strings"
	"sync"
)

const (
	enterAlternateScreen = "\033[?1049h"
	exitAlternateScreen  = "\033[?1049l"
	hideCursor           = "\033[?25l"
	showCursor           = "\033[?25h"
	clearScreen          = "\033[2J"
	moveCursorHome       = "\033[H"
	clearToLineEnd       = "\033[K"
	clearToScreenEnd     = "\033[J"
)

// Screen redraws a full frame of text in place. With a terminal it uses
// the alternate screen buffer and overwrites the previous frame line by
// line; otherwise frames are simply appended to the writer, separated by a
// blank line.
type Screen struct {
	w           io.Writer
	interactive bool

	mu            sync.Mutex
	inAlternate   bool
	isFirstRender bool
}

func NewScreen(w io.Writer, interactive bool) *Screen {
	return &Screen{w: w, interactive: interactive, isFirstRender: true}
}

// Enter switches to the alternate screen buffer and hides the cursor.
func (s *Screen) Enter() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.interactive || s.inAlternate {
		return
	}
	io.WriteString(s.w, enterAlternateScreen+hideCursor+clearScreen+moveCursorHome)
	s.inAlternate = true
	s.isFirstRender = true
}

// Exit restores the normal screen buffer and the cursor.
func (s *Screen) Exit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.inAlternate {
		return
	}
	io.WriteString(s.w, clearScreen+moveCursorHome+showCursor+exitAlternateScreen)
	s.inAlternate = false
}

// Draw replaces the current frame with frame.
func (s *Screen) Draw(frame string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.interactive {
		if !s.isFirstRender {
			if _, err := io.WriteString(s.w, "\n"); err != nil {
				return err
			}
		}
		s.isFirstRender = false
		_, err := io.WriteString(s.w, frame)
		return err
	}

	var b strings.Builder
	if s.isFirstRender {
		b.WriteString(clearScreen)
		s.isFirstRender = false
	}
	b.WriteString(moveCursorHome)
	// Overwrite in place and clear leftovers of a longer previous frame
	lines := strings.Split(strings.TrimSuffix(frame, "\n"), "\n")
	for i, line := range lines {
		b.WriteString(line)
		b.WriteString(clearToLineEnd)
		if i < len(lines)-1 {
			b.WriteString("\n")
		}
	}
	b.WriteString("\n" + clearToScreenEnd)

	_, err := io.WriteString(s.w, b.String())
	return err
}
