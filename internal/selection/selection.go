// Package selection implements cell/word/line/rectangle text selection
// over a screen's visible grid and scrollback, in a single coordinate
// space that folds history and the active grid together.
package selection

import (
	"strings"

	"github.com/kovidgoyal/kittycore/internal/cellbuf"
)

// Mode is the selection's extend granularity.
type Mode int

const (
	Cell Mode = iota
	Word
	Line
	Rectangle
)

// Point is one selection endpoint. Y follows the unified coordinate
// space: 0 is the topmost visible row, negative values index into
// scrollback (-1 is the youngest history line), in [-historyCount,
// ynum). InLeftHalf distinguishes the left/right half of a
// double-width cell for sub-cell-accurate anchoring.
type Point struct {
	X          int
	Y          int
	InLeftHalf bool
}

// Config supplies the caller-defined policy selection needs but does
// not own: which codepoints count as part of a word.
type Config struct {
	IsWordChar func(r rune) bool
}

func (c Config) wordChar(r rune) bool {
	if c.IsWordChar != nil {
		return c.IsWordChar(r)
	}
	return defaultIsWordChar(r)
}

func defaultIsWordChar(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '_':
		return true
	}
	return false
}

// Source is the minimal view selection needs into a screen's buffers:
// enough to walk lines in the unified Y space without selection
// depending on cellbuf.LineBuf/histbuf.HistoryBuf directly.
type Source interface {
	XNum() int
	YNum() int
	HistoryCount() int
	LineAt(y int) cellbuf.Line
}

// Selection tracks one in-progress or completed text selection.
type Selection struct {
	cfg Config

	InProgress bool
	Mode       Mode
	Anchor     Point
	Head       Point
}

// New returns an idle Selection using cfg's word-character policy.
func New(cfg Config) *Selection {
	return &Selection{cfg: cfg}
}

// Config returns the word-class configuration this Selection was
// constructed with, so a caller resetting its owning Screen (RIS) can
// carry it into the fresh Selection rather than losing it.
func (s *Selection) Config() Config { return s.cfg }

// Start begins a new selection at (x, y), resetting anchor and head to
// the same point.
func (s *Selection) Start(x, y int, inLeft bool, mode Mode) {
	p := Point{X: x, Y: y, InLeftHalf: inLeft}
	s.InProgress = true
	s.Mode = mode
	s.Anchor = p
	s.Head = p
}

// Update moves the selection head to (x, y). ended marks the final
// call of a drag (selection stays addressable but is no longer live).
func (s *Selection) Update(x, y int, inLeft bool, ended bool) {
	if !s.InProgress && !ended {
		return
	}
	s.Head = Point{X: x, Y: y, InLeftHalf: inLeft}
	if ended {
		s.InProgress = false
	}
}

// Clear drops the current selection entirely.
func (s *Selection) Clear() {
	*s = Selection{cfg: s.cfg}
}

// Active reports whether a selection exists (in progress or completed
// but not cleared).
func (s *Selection) Active() bool {
	return s.Anchor != (Point{}) || s.Head != (Point{}) || s.InProgress
}

// Bounds returns the selection's normalized corners: start before end
// in reading order (top-to-bottom, then left-to-right).
func (s *Selection) Bounds() (start, end Point) {
	a, h := s.Anchor, s.Head
	if a.Y > h.Y || (a.Y == h.Y && a.X > h.X) {
		a, h = h, a
	}
	return a, h
}

// CellInSelection reports whether (x, y) in the unified coordinate
// space falls within the current selection.
func (s *Selection) CellInSelection(x, y int) bool {
	if !s.Active() {
		return false
	}
	start, end := s.Bounds()
	switch s.Mode {
	case Rectangle:
		lo, hi := start.X, end.X
		if lo > hi {
			lo, hi = hi, lo
		}
		return y >= start.Y && y <= end.Y && x >= lo && x <= hi
	default:
		if y < start.Y || y > end.Y {
			return false
		}
		if y == start.Y && x < start.X {
			return false
		}
		if y == end.Y && x > end.X {
			return false
		}
		return true
	}
}

// snappedBounds applies mode-specific endpoint snapping (word/line
// extension) before materializing text, without mutating the
// selection's own anchor/head.
func (s *Selection) snappedBounds(src Source) (start, end Point) {
	start, end = s.Bounds()
	switch s.Mode {
	case Word:
		start = snapWordStart(src, s.cfg, start)
		end = snapWordEnd(src, s.cfg, end)
	case Line:
		start.X = 0
		end.X = src.XNum() - 1
		start = snapLineStart(src, start)
		end = snapLineEnd(src, end)
	}
	return start, end
}

func snapWordStart(src Source, cfg Config, p Point) Point {
	line := src.LineAt(p.Y)
	for p.X > 0 && p.X < line.Len() && cfg.wordChar(line.Content[p.X-1].Base) {
		p.X--
	}
	return p
}

func snapWordEnd(src Source, cfg Config, p Point) Point {
	line := src.LineAt(p.Y)
	for p.X+1 < line.Len() && cfg.wordChar(line.Content[p.X+1].Base) {
		p.X++
	}
	return p
}

// snapLineStart walks upward while the current row continues the
// logical line started by the row above it (this row has IsContinued
// set, i.e. the text wraps across the boundary).
func snapLineStart(src Source, p Point) Point {
	for p.Y > -src.HistoryCount() {
		line := src.LineAt(p.Y)
		if line.Attrs == nil || !line.Attrs.IsContinued() {
			break
		}
		p.Y--
	}
	return p
}

func snapLineEnd(src Source, p Point) Point {
	for p.Y+1 < src.YNum() {
		next := src.LineAt(p.Y + 1)
		if next.Attrs == nil || !next.Attrs.IsContinued() {
			break
		}
		p.Y++
	}
	return p
}

// Text materializes the selected text in reading order. Consecutive
// physical rows are joined without an inserted newline when the
// earlier row wrapped into the next (Attrs.WasWrapped-equivalent via
// the next row's IsContinued bit), matching real terminal copy
// behavior for long wrapped lines.
func (s *Selection) Text(src Source) string {
	if !s.Active() {
		return ""
	}
	start, end := s.snappedBounds(src)

	var b strings.Builder
	for y := start.Y; y <= end.Y; y++ {
		line := src.LineAt(y)
		lo, hi := 0, line.Len()-1
		switch s.Mode {
		case Rectangle:
			lo, hi = start.X, end.X
			if lo > hi {
				lo, hi = hi, lo
			}
		default:
			if y == start.Y {
				lo = start.X
			}
			if y == end.Y {
				hi = end.X
			}
		}
		if hi >= line.Len() {
			hi = line.Len() - 1
		}
		rowText := rowRunes(line, lo, hi)
		b.WriteString(strings.TrimRight(rowText, " \x00"))

		if y == end.Y {
			break
		}
		wraps := false
		if s.Mode != Rectangle && y+1 < src.YNum() {
			next := src.LineAt(y + 1)
			wraps = next.Attrs != nil && next.Attrs.IsContinued()
		}
		if !wraps {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func rowRunes(line cellbuf.Line, lo, hi int) string {
	var b strings.Builder
	for x := lo; x <= hi && x >= 0 && x < line.Len(); x++ {
		c := line.Content[x]
		if c.Base == 0 {
			b.WriteByte(' ')
			continue
		}
		b.WriteRune(c.Base)
	}
	return b.String()
}
