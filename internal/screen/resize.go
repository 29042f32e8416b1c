package screen

import "github.com/kovidgoyal/kittycore/internal/cellbuf"

// Resize changes the screen's dimensions, rewrapping both the main and
// alt grids at the new width and feeding rows that no longer fit on
// the main screen into history (per spec §4.8's Resize operation).
// Columns/rows below 1 are coerced to 1 (§7 geometry-error handling).
func (s *Screen) Resize(newXNum, newYNum int) {
	if newXNum < 1 {
		newXNum = 1
	}
	if newYNum < 1 {
		newYNum = 1
	}
	if newXNum == s.xnum && newYNum == s.ynum {
		return
	}

	newMain := cellbuf.NewLineBuf(newXNum, newYNum, s.marks)
	newAlt := cellbuf.NewLineBuf(newXNum, newYNum, s.marks)

	// Only the currently active buffer's cursor position is meaningful;
	// the inactive buffer's saved cursor (from the 1049 savepoint) is
	// left for its own rewrap pass with a neutral position.
	mainCursorX, mainCursorY := -1, -1
	altCursorX, altCursorY := -1, -1
	if s.onAltScreen {
		altCursorX, altCursorY = s.cursor.X, s.cursor.Y
	} else {
		mainCursorX, mainCursorY = s.cursor.X, s.cursor.Y
	}

	// Main always rewraps into history regardless of which buffer is
	// active, since main is what accumulates scrollback.
	newMainCX, newMainCY := s.main.Rewrap(newMain, s.history, mainCursorX, mainCursorY)
	newAltCX, newAltCY := s.alt.Rewrap(newAlt, nil, altCursorX, altCursorY)

	s.history.Rewrap(newXNum)

	if s.top == 0 && s.bottom == s.ynum-1 {
		// whole-screen scroll region: keep tracking "whole screen" at
		// the new size.
		s.top, s.bottom = 0, newYNum-1
	} else {
		if s.bottom > newYNum-1 {
			s.bottom = newYNum - 1
		}
		if s.top > s.bottom {
			s.top = 0
		}
	}

	s.main = newMain
	s.alt = newAlt
	if s.onAltScreen {
		s.active = s.alt
		s.cursor.X, s.cursor.Y = newAltCX, newAltCY
	} else {
		s.active = s.main
		s.cursor.X, s.cursor.Y = newMainCX, newMainCY
	}
	if s.cursor.X > newXNum {
		s.cursor.X = newXNum
	}
	if s.cursor.Y >= newYNum {
		s.cursor.Y = newYNum - 1
	}
	s.cursor.pendingWrap = false

	s.xnum, s.ynum = newXNum, newYNum
	s.resetTabStops()
	s.lineDirty = make([]bool, newYNum)
	s.markAllDirty()
}
