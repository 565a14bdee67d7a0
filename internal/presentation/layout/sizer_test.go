package layout

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChartWidthConfigured(t *testing.T) {
	s := NewSizer()
	assert.Equal(t, 90, s.ChartWidth(90))
	assert.Equal(t, 20, s.ChartWidth(20))
}

func TestChartWidthNotATerminal(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "out.txt"))
	require.NoError(t, err)
	defer f.Close()

	s := &Sizer{fd: int(f.Fd())}

	assert.False(t, s.IsTerminal())
	assert.Equal(t, fallbackWidth, s.ChartWidth(0))
	assert.Equal(t, fallbackWidth, s.ChartWidth(-1))
}
