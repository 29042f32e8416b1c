package terminal

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFeedAndVisualLine(t *testing.T) {
	term := New(Options{Columns: 10, Rows: 2})
	term.Feed([]byte("hi"))

	line := term.VisualLine(0)
	require.Equal(t, "h", line.Cells[0].Text)
	require.Equal(t, "i", line.Cells[1].Text)
}

// A grapheme cluster still pending when Feed returns must still reach
// the grid: the facade must not bypass Screen.Feed's end-of-chunk
// flush.
func TestFeedFlushesPendingClusterAtChunkEnd(t *testing.T) {
	term := New(Options{Columns: 10, Rows: 2})
	term.Feed([]byte("é")) // 'e' + combining acute, nothing follows

	line := term.VisualLine(0)
	require.Equal(t, "é", line.Cells[0].Text)
}

func TestCursorRenderInfoDefaultsVisible(t *testing.T) {
	term := New(Options{Columns: 10, Rows: 2})
	ci := term.CursorRenderInfo()
	require.True(t, ci.Visible)
	require.Equal(t, 0, ci.X)
	require.Equal(t, 0, ci.Y)

	term.Feed([]byte("\x1b[?25l"))
	require.False(t, term.CursorRenderInfo().Visible)
}

func TestResizeRewrapsThroughFacade(t *testing.T) {
	term := New(Options{Columns: 10, Rows: 4, HistorySize: 100})
	term.Feed([]byte("hello world"))

	term.Resize(5, 4)
	term.Resize(10, 4)

	require.Equal(t, 10, term.Columns())
	require.Equal(t, 4, term.Rows())

	var all []byte
	for y := 0; y < term.Rows(); y++ {
		for _, c := range term.VisualLine(y).Cells {
			all = append(all, []byte(c.Text)...)
		}
	}
	require.Contains(t, string(all), "hello world")
}

func TestDirtyRegionsClearsAfterRead(t *testing.T) {
	term := New(Options{Columns: 10, Rows: 2})
	term.Feed([]byte("x"))

	dirty := term.DirtyRegions()
	require.Contains(t, dirty, 0)

	require.Empty(t, term.DirtyRegions())
}

func TestHistoryCountTracksScrollback(t *testing.T) {
	term := New(Options{Columns: 10, Rows: 2, HistorySize: 50})
	for i := 0; i < 5; i++ {
		term.Feed([]byte("\n"))
	}
	require.Equal(t, 4, term.HistoryCount())
}
