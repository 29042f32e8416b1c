// Package terminal is the facade a real front-end embeds: it owns a
// Screen and its Parser, exposes the byte-stream ingest entry point
// and the presenter queries a renderer polls, and routes the Screen's
// write-to-child/title/clipboard/bell callbacks through a single
// Callbacks struct supplied at construction (spec §6).
package terminal

import (
	"strings"

	"github.com/kovidgoyal/kittycore/internal/cellbuf"
	"github.com/kovidgoyal/kittycore/internal/colorprofile"
	"github.com/kovidgoyal/kittycore/internal/grapheme"
	"github.com/kovidgoyal/kittycore/internal/screen"
	"github.com/kovidgoyal/kittycore/internal/selection"
	"github.com/kovidgoyal/kittycore/internal/vtparser"
)

// Callbacks are the core's outward calls (spec §6 "Callbacks out").
// Any left nil are no-ops.
type Callbacks struct {
	WriteToChild     func([]byte)
	SetTitle         func(string)
	SetIconName      func(string)
	SetClipboard     func(selector byte, data string)
	Bell             func()
	RequestAttention func()
}

// Options configures a new Terminal.
type Options struct {
	Columns, Rows      int
	HistorySize        int
	AmbiguousWidthMode grapheme.AmbiguousWidthMode
	SelectionConfig    selection.Config
	Callbacks          Callbacks
}

// Terminal ties a Screen and Parser together behind the external
// interface spec §6 names: Feed for ingest, Resize for geometry
// changes, and the VisualLine/CursorRenderInfo/DirtyRegions presenter
// queries a renderer polls on its own schedule.
type Terminal struct {
	screen *screen.Screen
	parser *vtparser.Parser
}

// New returns a Terminal sized opts.Columns x opts.Rows.
func New(opts Options) *Terminal {
	cb := opts.Callbacks
	s := screen.New(screen.Options{
		XNum: opts.Columns, YNum: opts.Rows,
		HistorySize:        opts.HistorySize,
		AmbiguousWidthMode: opts.AmbiguousWidthMode,
		SelectionConfig:    opts.SelectionConfig,
		WriteToChild:       cb.WriteToChild,
		SetTitle:           cb.SetTitle,
		SetIconName:        cb.SetIconName,
		SetClipboard:       cb.SetClipboard,
		Bell:               cb.Bell,
		RequestAttention:   cb.RequestAttention,
	})
	return &Terminal{screen: s, parser: vtparser.New()}
}

// Feed parses and applies a chunk of child-process output. The feeder
// may deliver any slice boundary; no framing is assumed (spec §6).
func (t *Terminal) Feed(data []byte) {
	t.screen.Feed(data, t.parser)
}

// Resize changes the terminal's geometry, rewrapping content and
// scrollback as spec §4.8's Resize operation describes.
func (t *Terminal) Resize(columns, rows int) {
	t.screen.Resize(columns, rows)
}

// Columns and Rows report the current grid geometry.
func (t *Terminal) Columns() int { return t.screen.XNum() }
func (t *Terminal) Rows() int    { return t.screen.YNum() }

// HistoryCount reports how many lines are currently held in
// scrollback.
func (t *Terminal) HistoryCount() int { return t.screen.HistoryCount() }

// LineView is a read-only, render-ready snapshot of one visual row:
// its rune content (combining marks resolved and concatenated onto
// their base codepoint) and per-cell style.
type LineView struct {
	Cells []CellView
	// Continued reports whether this row wraps from the previous
	// physical row (LineAttrs.is_continued).
	Continued bool
}

// CellView is one renderable cell: text (base rune plus any combining
// marks, pre-resolved from the combining pool; empty for a cell whose
// base codepoint is 0) and style.
type CellView struct {
	Text       string
	FG, BG, Decoration cellbuf.ColorRef
	Bold, Italic, Reverse, Strike, Dim bool
	Width      int
	Hyperlink  uint16
}

// VisualLine returns row y's renderable content. y ranges over
// [-HistoryCount(), Rows()-1]: non-negative indexes the active grid,
// negative indexes scrollback (-1 is the youngest scrollback line),
// per spec §6/§9's unified coordinate space.
func (t *Terminal) VisualLine(y int) LineView {
	line := t.screen.LineAt(y)
	return toLineView(line)
}

func toLineView(line cellbuf.Line) LineView {
	out := LineView{Cells: make([]CellView, line.Len())}
	if line.Attrs != nil {
		out.Continued = line.Attrs.IsContinued()
	}
	for i := 0; i < line.Len(); i++ {
		c := line.Content[i]
		st := line.Style[i]
		var text strings.Builder
		if c.Base != 0 {
			text.WriteRune(c.Base)
		}
		if line.Marks != nil {
			for _, m := range c.Marks {
				if m != 0 {
					text.WriteRune(line.Marks.Lookup(m))
				}
			}
		}
		out.Cells[i] = CellView{
			Text:       text.String(),
			FG:         st.FG,
			BG:         st.BG,
			Decoration: st.Decoration,
			Bold:       st.Attrs.Bold(),
			Italic:     st.Attrs.Italic(),
			Reverse:    st.Attrs.Reverse(),
			Strike:     st.Attrs.Strike(),
			Dim:        st.Attrs.Dim(),
			Width:      st.Attrs.Width(),
			Hyperlink:  c.Hyperlink,
		}
	}
	return out
}

// CursorInfo is what a renderer needs to draw the cursor.
type CursorInfo struct {
	Visible        bool
	Shape          screen.CursorShape
	X, Y           int
	Blink          bool
	FG, BG, Deco   cellbuf.ColorRef
}

// CursorRenderInfo reports the cursor's current renderable state.
func (t *Terminal) CursorRenderInfo() CursorInfo {
	c := t.screen.Cursor()
	return CursorInfo{
		Visible: t.CursorVisible(),
		Shape:   c.Shape,
		X:       c.X, Y: c.Y,
		Blink: c.Blink,
		FG:    c.FG, BG: c.BG, Deco: c.Decoration,
	}
}

// CursorVisible reports DECTCEM state.
func (t *Terminal) CursorVisible() bool { return t.screen.Modes().DECTCEM }

// DirtyRegions returns, and clears, the set of rows touched since the
// last call. A full presenter would further slice each row into
// changed column ranges; the core only tracks line-level dirtiness
// and keeps no per-cell dirty bitmap.
func (t *Terminal) DirtyRegions() []int {
	return t.screen.DirtyLines()
}

// Selection exposes the underlying selection engine (spec §4.9) so a
// front-end can drive mouse-based selection directly.
func (t *Terminal) Selection() *selection.Selection { return t.screen.Selection() }

// Colors exposes the color profile (spec §4.6) for palette queries.
func (t *Terminal) Colors() *colorprofile.Profile { return t.screen.Colors() }

// EncodeKey translates a logical key event into the byte sequence the
// child process should receive, honoring the active keyboard protocol
// (spec §6).
func (t *Terminal) EncodeKey(ev screen.KeyEvent) []byte { return t.screen.EncodeKey(ev) }

// EncodeMouse translates a mouse event into the byte sequence for the
// active mouse-reporting protocol, or nil if the event is not
// currently reported (spec §6).
func (t *Terminal) EncodeMouse(ev screen.MouseEvent) []byte { return t.screen.EncodeMouse(ev) }
