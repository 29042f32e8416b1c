package screen

import "github.com/kovidgoyal/kittycore/internal/cellbuf"

// CursorShape is a presentational hint consumed by the renderer.
type CursorShape int

const (
	CursorBlock CursorShape = iota
	CursorUnderline
	CursorBar
)

// Cursor is a Screen's single live cursor: position plus pending style
// for the next cell written. fg/bg/deco carry the same ColorRef values
// StyleCell does, so Cursor.Style() can be stamped straight onto a cell.
type Cursor struct {
	X, Y  int
	Attrs cellbuf.AttrWord
	FG, BG, Decoration cellbuf.ColorRef
	Shape CursorShape
	Blink bool

	// pendingWrap is the VT100 "deferred autowrap" flag: set once a
	// character fills the last column, consumed (and cleared) by the
	// next cell written rather than wrapping immediately, so cursor
	// motion commands issued in between can cancel the wrap.
	pendingWrap bool
}

// Style returns the StyleCell a character written under this cursor
// should carry (width is overwritten by Line.SetChar).
func (c Cursor) Style() cellbuf.StyleCell {
	return cellbuf.StyleCell{FG: c.FG, BG: c.BG, Decoration: c.Decoration, Attrs: c.Attrs}
}

// bgStyle returns a StyleCell carrying only this cursor's background,
// used for the blanks left behind by erase/shift/scroll operations
// (foreground and text attributes of a blank are irrelevant, but its
// background must match what DECSTBM/ED/EL would show).
func (c Cursor) bgStyle() cellbuf.StyleCell {
	return cellbuf.StyleCell{BG: c.BG}
}

// Savepoint is the frozen state DECSC pushes and DECRC pops: the
// cursor itself plus the handful of modes ECMA-48 defines as
// save/restore-scoped rather than screen-global.
type Savepoint struct {
	Cursor        Cursor
	CharsetG      int // active Gn selector (0-3)
	OriginMode    bool
	AutowrapMode  bool
	ReverseVideo  bool
}

// maxSavepoints bounds the per-buffer DECSC stack; the oldest entry is
// evicted FIFO on overflow rather than growing unbounded.
const maxSavepoints = 256

// savepointStack is a bounded FIFO-eviction stack of Savepoints, one
// instance per screen buffer (main/alt).
type savepointStack struct {
	entries []Savepoint
}

func (s *savepointStack) push(sp Savepoint) {
	if len(s.entries) >= maxSavepoints {
		s.entries = s.entries[1:]
	}
	s.entries = append(s.entries, sp)
}

func (s *savepointStack) pop() (Savepoint, bool) {
	if len(s.entries) == 0 {
		return Savepoint{}, false
	}
	sp := s.entries[len(s.entries)-1]
	s.entries = s.entries[:len(s.entries)-1]
	return sp, true
}
