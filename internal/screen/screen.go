// Package screen implements the Screen state machine: the component
// that ties the cell grid, scrollback, grapheme segmentation, color
// profile and selection engine together and interprets the semantic
// events a vtparser.Parser produces against them.
package screen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kovidgoyal/kittycore/internal/cellbuf"
	"github.com/kovidgoyal/kittycore/internal/colorprofile"
	"github.com/kovidgoyal/kittycore/internal/grapheme"
	"github.com/kovidgoyal/kittycore/internal/histbuf"
	"github.com/kovidgoyal/kittycore/internal/selection"
	"github.com/kovidgoyal/kittycore/internal/vtparser"
)

// protectedMarkClass is the AttrWord mark-class value DECSCA (selective
// erase protection) stamps onto a cell; erase operations skip cells
// carrying it.
const protectedMarkClass = 3

// Options configures a new Screen. Callback fields follow the
// teacher's pattern of plain function fields set once at construction
// rather than a separate registration step; any left nil are no-ops.
type Options struct {
	XNum, YNum         int
	HistorySize        int
	AmbiguousWidthMode grapheme.AmbiguousWidthMode
	SelectionConfig    selection.Config

	WriteToChild     func([]byte)
	SetTitle         func(string)
	SetIconName      func(string)
	SetClipboard     func(selector byte, data string)
	Bell             func()
	RequestAttention func()
}

// Screen is the authority tying cellbuf/histbuf/grapheme/vtparser/
// colorprofile/selection together; it implements vtparser.Handler and
// selection.Source.
type Screen struct {
	xnum, ynum int
	top, bottom int // scroll region margins, inclusive, 0-based

	main, alt    *cellbuf.LineBuf
	active       *cellbuf.LineBuf
	onAltScreen  bool
	history      *histbuf.HistoryBuf

	cursor    Cursor
	modes     Modes
	tabStops  []bool
	charsetG  [4]byte // charset designated to G0..G3 ('B' ascii, '0' DEC special graphics, ...)
	activeG   int

	decoder *grapheme.Decoder
	seg     *grapheme.Segmenter
	ambiguousWidth grapheme.AmbiguousWidthMode
	pending        pendingCluster

	colors *colorprofile.Profile
	sel    *selection.Selection

	mainSave, altSave savepointStack
	keyboardFlagStack []KeyboardFlags
	simpleSaveX, simpleSaveY int

	marks      *cellbuf.CombiningPool
	hyperlinks *cellbuf.HyperlinkPool
	openHyperlinkID uint16

	lineDirty []bool

	writeToChild     func([]byte)
	setTitle         func(string)
	setIconName      func(string)
	setClipboard     func(selector byte, data string)
	bell             func()
	requestAttention func()
}

type pendingCluster struct {
	has   bool
	base  rune
	marks []rune
}

// New returns a Screen sized xnum x ynum with a scrollback of
// opts.HistorySize lines.
func New(opts Options) *Screen {
	xnum, ynum := opts.XNum, opts.YNum
	if xnum < 1 {
		xnum = 1
	}
	if ynum < 1 {
		ynum = 1
	}
	marks := cellbuf.NewCombiningPool()
	s := &Screen{
		xnum: xnum, ynum: ynum,
		bottom:         ynum - 1,
		main:           cellbuf.NewLineBuf(xnum, ynum, marks),
		alt:            cellbuf.NewLineBuf(xnum, ynum, marks),
		history:        histbuf.New(xnum, opts.HistorySize),
		modes:          NewModes(),
		charsetG:       [4]byte{'B', 'B', 'B', 'B'},
		decoder:        &grapheme.Decoder{},
		seg:            grapheme.NewSegmenter(),
		ambiguousWidth: opts.AmbiguousWidthMode,
		colors:         colorprofile.New(),
		sel:            selection.New(opts.SelectionConfig),
		marks:          marks,
		hyperlinks:     cellbuf.NewHyperlinkPool(),
		lineDirty:      make([]bool, ynum),

		writeToChild:     opts.WriteToChild,
		setTitle:         opts.SetTitle,
		setIconName:      opts.SetIconName,
		setClipboard:     opts.SetClipboard,
		bell:             opts.Bell,
		requestAttention: opts.RequestAttention,
	}
	s.active = s.main
	s.resetTabStops()
	return s
}

func (s *Screen) XNum() int { return s.xnum }
func (s *Screen) YNum() int { return s.ynum }
func (s *Screen) HistoryCount() int { return s.history.Count() }
func (s *Screen) Cursor() Cursor { return s.cursor }
func (s *Screen) Selection() *selection.Selection { return s.sel }
func (s *Screen) Colors() *colorprofile.Profile { return s.colors }
func (s *Screen) Modes() Modes { return s.modes }

// LineAt implements selection.Source: y >= 0 indexes the active grid,
// y < 0 indexes history (-1 is the youngest scrollback line).
func (s *Screen) LineAt(y int) cellbuf.Line {
	if y >= 0 {
		if y >= s.ynum {
			y = s.ynum - 1
		}
		return s.active.LineAt(y)
	}
	return s.history.LineAt(-y - 1)
}

func (s *Screen) activeLine(y int) cellbuf.Line { return s.active.LineAt(y) }

func (s *Screen) resetTabStops() {
	s.tabStops = make([]bool, s.xnum)
	for x := 8; x < s.xnum; x += 8 {
		s.tabStops[x] = true
	}
}

func (s *Screen) markDirty(y int) {
	if y >= 0 && y < len(s.lineDirty) {
		s.lineDirty[y] = true
	}
}

func (s *Screen) markAllDirty() {
	for i := range s.lineDirty {
		s.lineDirty[i] = true
	}
}

// DirtyLines returns, and clears, the set of rows touched since the
// last call.
func (s *Screen) DirtyLines() []int {
	var out []int
	for i, dirty := range s.lineDirty {
		if dirty {
			out = append(out, i)
			s.lineDirty[i] = false
		}
	}
	return out
}

// Feed parses and applies data to the screen's state. Any grapheme
// cluster still pending at the end of data is flushed: a cluster
// boundary can only be confirmed by the codepoint that follows it, so
// without this a chunk ending mid-cluster (the common case — a whole
// write(2) almost always completes any cluster it starts) would never
// reach the grid. A combining mark split across two Feed calls is the
// one case this can misjudge; real terminals make the same per-chunk
// tradeoff.
func (s *Screen) Feed(data []byte, p *vtparser.Parser) {
	p.Parse(data, s)
	s.flushPending()
}

// ---- vtparser.Handler ----

func (s *Screen) Print(b byte) {
	state, cp := s.decoder.Feed(b)
	switch state {
	case grapheme.Accept:
		s.ingest(cp)
	case grapheme.Reject:
		s.ingest(cp) // cp is U+FFFD
	case grapheme.Consuming:
	}
}

func (s *Screen) ingest(cp rune) {
	if s.charsetG[s.activeG] == '0' {
		cp = decSpecialGraphics(cp)
	}
	isBreak := s.seg.Step(cp)
	if isBreak {
		s.flushPending()
		s.pending = pendingCluster{has: true, base: cp}
	} else {
		s.pending.marks = append(s.pending.marks, cp)
	}
}

func (s *Screen) flushPending() {
	if !s.pending.has {
		return
	}
	p := s.pending
	s.pending = pendingCluster{}
	var cluster strings.Builder
	cluster.WriteRune(p.base)
	for _, m := range p.marks {
		cluster.WriteRune(m)
	}
	width := grapheme.Width(cluster.String(), s.ambiguousWidth)
	s.draw(p.base, p.marks, width)
}

// draw implements the five-step text-ingest algorithm: pending wrap,
// zero-width attachment, insert-mode shift, write, and pending-wrap
// arming.
func (s *Screen) draw(base rune, marks []rune, width int) {
	if s.cursor.pendingWrap {
		s.cursor.pendingWrap = false
		if s.modes.DECAWM {
			s.wrapToNextLine()
		} else {
			// Auto-wrap disabled: stay at the last column and
			// overwrite it instead of running off the grid.
			s.cursor.X = s.xnum - 1
		}
	}
	if width <= 0 {
		s.attachCombiningBeforeCursor(base, marks)
		return
	}
	if s.modes.IRM {
		s.activeLine(s.cursor.Y).RightShift(s.cursor.X, width, s.cursor.bgStyle())
	}
	if width == 2 && s.cursor.X == s.xnum-1 {
		line := s.activeLine(s.cursor.Y)
		line.Clear(s.cursor.X, 1, ' ', s.cursor.bgStyle())
		s.markDirty(s.cursor.Y)
		s.wrapToNextLine()
	}
	line := s.activeLine(s.cursor.Y)
	line.SetChar(s.cursor.X, base, width, s.cursor.Style())
	for _, m := range marks {
		line.AddCombiningChar(s.cursor.X, m)
	}
	if id := s.openHyperlinkID; id != 0 {
		line.Content[s.cursor.X].Hyperlink = id
		if width == 2 && s.cursor.X+1 < line.Len() {
			line.Content[s.cursor.X+1].Hyperlink = id
		}
	}
	s.markDirty(s.cursor.Y)
	s.cursor.X += width
	if s.cursor.X >= s.xnum {
		lastX := s.xnum - 1
		line.Style[lastX].Attrs = line.Style[lastX].Attrs.SetWasWrapped(true)
		s.cursor.X = s.xnum
		s.cursor.pendingWrap = true
	}
}

func (s *Screen) attachCombiningBeforeCursor(base rune, marks []rune) {
	x, y := s.cursor.X-1, s.cursor.Y
	if x < 0 {
		if y == 0 {
			return
		}
		y--
		x = s.xnum - 1
	}
	line := s.activeLine(y)
	line.AddCombiningChar(x, base)
	for _, m := range marks {
		line.AddCombiningChar(x, m)
	}
}

// decSpecialGraphics maps ASCII to the DEC Special Graphics line-drawing
// set when G0/G1 is designated '0' (ESC ( 0 / ESC ) 0).
func decSpecialGraphics(r rune) rune {
	if r < 0x60 || r > 0x7e {
		return r
	}
	const tbl = "◆▒␉␌␍␊°±␤␋┘┐┌└┼⎺⎻─⎼⎽├┤┴┬│≤≥π≠£·"
	runes := []rune(tbl)
	idx := int(r - 0x60)
	if idx < 0 || idx >= len(runes) {
		return r
	}
	return runes[idx]
}

func (s *Screen) Execute(b byte) {
	s.flushPending()
	switch b {
	case '\r':
		s.cursor.X = 0
		s.cursor.pendingWrap = false
	case '\n', '\v', '\f':
		s.advanceLine()
	case '\b':
		if s.cursor.X > 0 {
			s.cursor.X--
		}
		s.cursor.pendingWrap = false
	case '\t':
		s.tabForward(1)
	case 0x07: // BEL
		if s.bell != nil {
			s.bell()
		}
	case 0x0e: // SO: invoke G1
		s.activeG = 1
	case 0x0f: // SI: invoke G0
		s.activeG = 0
	}
}

func (s *Screen) tabForward(n int) {
	for ; n > 0; n-- {
		x := s.cursor.X + 1
		for x < s.xnum && !s.tabStops[x] {
			x++
		}
		if x >= s.xnum {
			x = s.xnum - 1
		}
		s.cursor.X = x
	}
}

func (s *Screen) tabBackward(n int) {
	for ; n > 0; n-- {
		x := s.cursor.X - 1
		for x > 0 && !s.tabStops[x] {
			x--
		}
		if x < 0 {
			x = 0
		}
		s.cursor.X = x
	}
}

func (s *Screen) EscDispatch(intermediates []byte, final byte) {
	s.flushPending()
	switch {
	case len(intermediates) == 0 && final == 'c': // RIS
		s.reset()
	case len(intermediates) == 0 && final == '7': // DECSC
		s.saveCursor()
	case len(intermediates) == 0 && final == '8': // DECRC
		s.restoreCursor()
	case len(intermediates) == 0 && final == 'D': // IND
		s.advanceLine()
	case len(intermediates) == 0 && final == 'M': // RI
		s.reverseIndex()
	case len(intermediates) == 0 && final == 'E': // NEL
		s.advanceLine()
		s.cursor.X = 0
		s.cursor.pendingWrap = false
	case len(intermediates) == 0 && final == 'H': // HTS
		if s.cursor.X >= 0 && s.cursor.X < s.xnum {
			s.tabStops[s.cursor.X] = true
		}
	case len(intermediates) == 1 && (intermediates[0] == '(' || intermediates[0] == ')' || intermediates[0] == '*' || intermediates[0] == '+'):
		g := map[byte]int{'(': 0, ')': 1, '*': 2, '+': 3}[intermediates[0]]
		s.charsetG[g] = final
	}
}

func (s *Screen) reverseIndex() {
	if s.cursor.Y == s.top {
		s.active.ReverseIndex(s.top, s.bottom, s.cursor.bgStyle())
		s.markAllDirty()
	} else if s.cursor.Y > 0 {
		s.cursor.Y--
	}
}

func (s *Screen) advanceLine() {
	if s.cursor.Y == s.bottom {
		s.scrollUp(1)
	} else if s.cursor.Y < s.ynum-1 {
		s.cursor.Y++
	}
}

func (s *Screen) wrapToNextLine() {
	s.advanceLine()
	s.cursor.X = 0
	line := s.activeLine(s.cursor.Y)
	line.Attrs.SetContinued(true)
}

func (s *Screen) scrollUp(n int) {
	wholeScreen := s.top == 0 && s.bottom == s.ynum-1
	onMain := s.active == s.main
	for i := 0; i < n; i++ {
		evicted := s.active.Index(s.top, s.bottom, s.cursor.bgStyle())
		if wholeScreen && onMain {
			s.history.AddLine(evicted.Content, evicted.Style, *evicted.Attrs)
		}
	}
	s.markAllDirty()
}

func (s *Screen) reset() {
	*s = *New(Options{
		XNum: s.xnum, YNum: s.ynum, HistorySize: s.history.MaxSize(),
		AmbiguousWidthMode: s.ambiguousWidth,
		SelectionConfig:    s.sel.Config(),
		WriteToChild:       s.writeToChild, SetTitle: s.setTitle, SetIconName: s.setIconName,
		SetClipboard: s.setClipboard, Bell: s.bell, RequestAttention: s.requestAttention,
	})
}

func (s *Screen) saveCursor() {
	sp := Savepoint{
		Cursor: s.cursor, CharsetG: s.activeG,
		OriginMode: s.modes.DECOM, AutowrapMode: s.modes.DECAWM, ReverseVideo: s.modes.DECSCNM,
	}
	s.savepoints().push(sp)
}

func (s *Screen) restoreCursor() {
	sp, ok := s.savepoints().pop()
	if !ok {
		return
	}
	s.cursor = sp.Cursor
	s.activeG = sp.CharsetG
	s.modes.DECOM = sp.OriginMode
	s.modes.DECAWM = sp.AutowrapMode
	s.modes.DECSCNM = sp.ReverseVideo
}

func (s *Screen) savepoints() *savepointStack {
	if s.onAltScreen {
		return &s.altSave
	}
	return &s.mainSave
}

func (s *Screen) CSIDispatch(params []vtparser.Param, private byte, intermediates []byte, final byte) {
	s.flushPending()
	if len(intermediates) == 1 && intermediates[0] == '"' && final == 'q' {
		s.decsca(vtparser.ParamInt(params, 0, 0))
		return
	}
	if private == '?' {
		s.csiPrivate(params, final)
		return
	}
	if private == '>' && final == 'u' {
		s.PushKeyboardFlags(KeyboardFlags(vtparser.ParamInt(params, 0, 0)))
		return
	}
	if private == '<' && final == 'u' {
		s.PopKeyboardFlags(vtparser.ParamInt(params, 0, 1))
		return
	}
	switch final {
	case 'H', 'f':
		s.moveCursorTo(vtparser.ParamInt(params, 0, 1), vtparser.ParamInt(params, 1, 1))
	case 'A':
		s.cursorUp(intDefault1(params, 0))
	case 'B':
		s.cursorDown(intDefault1(params, 0))
	case 'C':
		s.cursorForward(intDefault1(params, 0))
	case 'D':
		s.cursorBack(intDefault1(params, 0))
	case 'G', '`':
		s.hpa(vtparser.ParamInt(params, 0, 1))
	case 'd':
		s.vpa(vtparser.ParamInt(params, 0, 1))
	case 'E':
		s.cursorDown(intDefault1(params, 0))
		s.cursor.X = 0
	case 'F':
		s.cursorUp(intDefault1(params, 0))
		s.cursor.X = 0
	case 'J':
		s.eraseInDisplay(vtparser.ParamInt(params, 0, 0))
	case 'K':
		s.eraseInLine(vtparser.ParamInt(params, 0, 0))
	case 'L':
		s.active.InsertLines(intDefault1(params, 0), s.cursor.Y, s.bottom, s.cursor.bgStyle())
		s.markAllDirty()
	case 'M':
		s.active.DeleteLines(intDefault1(params, 0), s.cursor.Y, s.bottom, s.cursor.bgStyle())
		s.markAllDirty()
	case 'P':
		s.activeLine(s.cursor.Y).LeftShift(s.cursor.X, intDefault1(params, 0), s.cursor.bgStyle())
		s.markDirty(s.cursor.Y)
	case '@':
		s.activeLine(s.cursor.Y).RightShift(s.cursor.X, intDefault1(params, 0), s.cursor.bgStyle())
		s.markDirty(s.cursor.Y)
	case 'X':
		n := intDefault1(params, 0)
		line := s.activeLine(s.cursor.Y)
		line.Clear(s.cursor.X, n, ' ', s.cursor.bgStyle())
		s.markDirty(s.cursor.Y)
	case 'I':
		s.tabForward(intDefault1(params, 0))
	case 'Z':
		s.tabBackward(intDefault1(params, 0))
	case 'g':
		s.clearTabStops(vtparser.ParamInt(params, 0, 0))
	case 'r':
		s.setScrollRegion(vtparser.ParamInt(params, 0, 1), vtparser.ParamInt(params, 1, s.ynum))
	case 'm':
		s.applySGR(params)
	case 's':
		s.cursorSaveSimple()
	case 'u':
		s.cursorRestoreSimple()
	case 'n':
		s.reportDSR(vtparser.ParamInt(params, 0, 0))
	case 'c':
		s.reportDA1()
	case 'h', 'l':
		set := final == 'h'
		for _, p := range params {
			s.setANSIMode(p.Base, set)
		}
	}
}

// setANSIMode dispatches the non-private "CSI Pm h/l" (SM/RM) forms,
// distinct from the "CSI ? Pm h/l" (DECSET/DECRST) private forms
// setPrivateMode handles.
func (s *Screen) setANSIMode(mode int, set bool) {
	switch mode {
	case 4:
		s.modes.IRM = set
	}
}

func intDefault1(params []vtparser.Param, i int) int {
	n := vtparser.ParamInt(params, i, 1)
	if n == 0 {
		n = 1
	}
	return n
}

func (s *Screen) decsca(mode int) {
	protected := mode == 1
	if protected {
		s.cursor.Attrs = s.cursor.Attrs.SetMarkClass(protectedMarkClass)
	} else {
		s.cursor.Attrs = s.cursor.Attrs.SetMarkClass(0)
	}
}

func (s *Screen) clearTabStops(mode int) {
	switch mode {
	case 0:
		if s.cursor.X < len(s.tabStops) {
			s.tabStops[s.cursor.X] = false
		}
	case 3:
		for i := range s.tabStops {
			s.tabStops[i] = false
		}
	}
}

func (s *Screen) setScrollRegion(top, bottom int) {
	if bottom > s.ynum {
		bottom = s.ynum
	}
	if top < 1 {
		top = 1
	}
	if top >= bottom {
		s.top, s.bottom = 0, s.ynum-1
	} else {
		s.top, s.bottom = top-1, bottom-1
	}
	s.moveCursorTo(1, 1)
}

func (s *Screen) cursorSaveSimple() { s.simpleSaveX, s.simpleSaveY = s.cursor.X, s.cursor.Y }
func (s *Screen) cursorRestoreSimple() {
	s.cursor.X, s.cursor.Y = s.simpleSaveX, s.simpleSaveY
	s.cursor.pendingWrap = false
}

func (s *Screen) reportDSR(code int) {
	if code != 6 || s.writeToChild == nil {
		return
	}
	row, col := s.cursor.Y+1, s.cursor.X+1
	if s.modes.DECOM {
		row -= s.top
	}
	s.writeToChild([]byte(fmt.Sprintf("\x1b[%d;%dR", row, col)))
}

func (s *Screen) reportDA1() {
	if s.writeToChild == nil {
		return
	}
	s.writeToChild([]byte("\x1b[?62;22c"))
}

func (s *Screen) cursorTopBottom() (int, int) {
	if s.modes.DECOM {
		return s.top, s.bottom
	}
	return 0, s.ynum - 1
}

func (s *Screen) moveCursorTo(row, col int) {
	lo, hi := s.cursorTopBottom()
	y := lo + row - 1
	if y < lo {
		y = lo
	}
	if y > hi {
		y = hi
	}
	x := col - 1
	if x < 0 {
		x = 0
	}
	if x >= s.xnum {
		x = s.xnum - 1
	}
	s.cursor.X, s.cursor.Y = x, y
	s.cursor.pendingWrap = false
}

func (s *Screen) cursorUp(n int) {
	lo, _ := s.cursorTopBottom()
	s.cursor.Y -= n
	if s.cursor.Y < lo {
		s.cursor.Y = lo
	}
	s.cursor.pendingWrap = false
}

func (s *Screen) cursorDown(n int) {
	_, hi := s.cursorTopBottom()
	s.cursor.Y += n
	if s.cursor.Y > hi {
		s.cursor.Y = hi
	}
	s.cursor.pendingWrap = false
}

func (s *Screen) cursorForward(n int) {
	s.cursor.X += n
	if s.cursor.X >= s.xnum {
		s.cursor.X = s.xnum - 1
	}
	s.cursor.pendingWrap = false
}

func (s *Screen) cursorBack(n int) {
	s.cursor.X -= n
	if s.cursor.X < 0 {
		s.cursor.X = 0
	}
	s.cursor.pendingWrap = false
}

func (s *Screen) hpa(col int) {
	x := col - 1
	if x < 0 {
		x = 0
	}
	if x >= s.xnum {
		x = s.xnum - 1
	}
	s.cursor.X = x
	s.cursor.pendingWrap = false
}

func (s *Screen) vpa(row int) {
	lo, hi := s.cursorTopBottom()
	y := lo + row - 1
	if y < lo {
		y = lo
	}
	if y > hi {
		y = hi
	}
	s.cursor.Y = y
	s.cursor.pendingWrap = false
}

func (s *Screen) eraseCells(line cellbuf.Line, lo, hi int) {
	bg := s.cursor.bgStyle()
	for x := lo; x < hi && x >= 0 && x < line.Len(); x++ {
		if line.Style[x].Attrs.MarkClass() == protectedMarkClass {
			continue
		}
		line.Content[x] = cellbuf.ContentCell{Base: ' '}
		st := bg
		st.Attrs = st.Attrs.SetWidth(cellbuf.WidthSingle)
		line.Style[x] = st
	}
}

func (s *Screen) eraseInLine(mode int) {
	line := s.activeLine(s.cursor.Y)
	switch mode {
	case 1:
		s.eraseCells(line, 0, s.cursor.X+1)
	case 2:
		s.eraseCells(line, 0, s.xnum)
	default:
		s.eraseCells(line, s.cursor.X, s.xnum)
	}
	line.Attrs.SetDirtyText(true)
	s.markDirty(s.cursor.Y)
}

func (s *Screen) eraseInDisplay(mode int) {
	switch mode {
	case 1:
		for y := 0; y < s.cursor.Y; y++ {
			s.eraseCells(s.activeLine(y), 0, s.xnum)
		}
		s.eraseCells(s.activeLine(s.cursor.Y), 0, s.cursor.X+1)
	case 2, 3:
		for y := 0; y < s.ynum; y++ {
			s.eraseCells(s.activeLine(y), 0, s.xnum)
		}
		if mode == 3 {
			s.history.Clear()
		}
	default:
		s.eraseCells(s.activeLine(s.cursor.Y), s.cursor.X, s.xnum)
		for y := s.cursor.Y + 1; y < s.ynum; y++ {
			s.eraseCells(s.activeLine(y), 0, s.xnum)
		}
	}
	s.markAllDirty()
}

// csiPrivate dispatches "CSI ? Pm h/l" mode set/reset sequences.
func (s *Screen) csiPrivate(params []vtparser.Param, final byte) {
	set := final == 'h'
	if final != 'h' && final != 'l' {
		return
	}
	for _, p := range params {
		s.setPrivateMode(p.Base, set)
	}
}

func (s *Screen) setPrivateMode(mode int, set bool) {
	switch mode {
	case 1:
		s.modes.ApplicationCursorKeys = set
	case 7:
		s.modes.DECAWM = set
	case 9:
		if set {
			s.modes.MouseTracking, s.modes.MouseProtocol = MouseTrackingX10Compat, MouseProtocolX10
		} else {
			s.modes.MouseTracking = MouseTrackingNone
		}
	case 25:
		s.modes.DECTCEM = set
	case 45:
		// reverse-wraparound: not separately modeled, accept and ignore.
	case 66:
		s.modes.ApplicationKeypad = set
	case 1000:
		s.setMouseTracking(set, MouseTrackingNormal, MouseProtocolX10)
	case 1002:
		s.setMouseTracking(set, MouseTrackingButton, MouseProtocolX10)
	case 1003:
		s.setMouseTracking(set, MouseTrackingAny, MouseProtocolX10)
	case 1004:
		s.modes.FocusTracking = set
	case 1005:
		if set {
			s.modes.MouseProtocol = MouseProtocolUTF8
		}
	case 1006:
		if set {
			s.modes.MouseProtocol = MouseProtocolSGR
		} else if s.modes.MouseProtocol == MouseProtocolSGR {
			s.modes.MouseProtocol = MouseProtocolX10
		}
	case 1015:
		if set {
			s.modes.MouseProtocol = MouseProtocolURXVT
		}
	case 1016:
		if set {
			s.modes.MouseProtocol = MouseProtocolSGRPixel
		}
	case 2004:
		s.modes.BracketedPaste = set
	case 6:
		s.modes.DECOM = set
		s.moveCursorTo(1, 1)
	case 3:
		s.modes.DECCOLM = set
	case 5:
		s.modes.DECSCNM = set
	case 47, 1047:
		s.switchAltScreen(set, false)
	case 1049:
		s.switchAltScreen(set, true)
	}
}

func (s *Screen) setMouseTracking(set bool, mode MouseTrackingMode, defaultProtocol MouseProtocol) {
	if set {
		s.modes.MouseTracking = mode
		if s.modes.MouseProtocol == MouseProtocolNone {
			s.modes.MouseProtocol = defaultProtocol
		}
	} else {
		s.modes.MouseTracking = MouseTrackingNone
	}
}

func (s *Screen) switchAltScreen(enter, saveCursor bool) {
	if enter == s.onAltScreen {
		return
	}
	if enter {
		if saveCursor {
			s.saveCursor()
		}
		s.onAltScreen = true
		s.active = s.alt
		for y := 0; y < s.ynum; y++ {
			s.active.ClearLine(y, s.cursor.bgStyle())
		}
		s.cursor.X, s.cursor.Y = 0, 0
	} else {
		s.onAltScreen = false
		s.active = s.main
		if saveCursor {
			s.restoreCursor()
		}
	}
	s.markAllDirty()
}

func (s *Screen) OSCDispatch(payload []byte) {
	s.flushPending()
	s.handleOSC(string(payload))
}

func (s *Screen) handleOSC(payload string) {
	sep := strings.IndexByte(payload, ';')
	code := payload
	rest := ""
	if sep >= 0 {
		code = payload[:sep]
		rest = payload[sep+1:]
	}
	switch code {
	case "0", "2":
		if s.setTitle != nil {
			s.setTitle(rest)
		}
	case "1":
		if s.setIconName != nil {
			s.setIconName(rest)
		}
	case "4":
		s.oscSetPalette(rest)
	case "104":
		s.colors.ResetPalette()
	case "8":
		s.oscHyperlink(rest)
	case "52":
		s.oscSetClipboard(rest)
	default:
		if n, ok := parseInt(code); ok {
			if n >= 10 && n <= 19 {
				s.oscSetDynamicColor(n, rest)
			} else if n >= 110 && n <= 119 {
				s.oscResetDynamicColor(n)
			}
		}
	}
}

func parseInt(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	return n, err == nil
}

func (s *Screen) oscSetPalette(rest string) {
	parts := strings.Split(rest, ";")
	for i := 0; i+1 < len(parts); i += 2 {
		idx, err := strconv.Atoi(parts[i])
		if err != nil || idx < 0 || idx > 255 {
			continue
		}
		if rgb, ok := colorprofile.ParseColorSpec(parts[i+1]); ok {
			s.colors.SetPaletteEntry(uint8(idx), rgb)
		}
	}
}

func (s *Screen) oscSetDynamicColor(slot int, spec string) {
	rgb, ok := colorprofile.ParseColorSpec(spec)
	if !ok {
		return
	}
	c := colorprofile.DynColor{Kind: colorprofile.TrueColor, RGB: rgb}
	switch slot {
	case 10:
		s.colors.SetDefaultFG(c)
	case 11:
		s.colors.SetDefaultBG(c)
	case 12:
		s.colors.SetCursor(c)
	case 13:
		s.colors.SetHighlightFG(c)
	case 14:
		s.colors.SetHighlightBG(c)
	case 17:
		s.colors.SetCursorText(c)
	}
}

func (s *Screen) oscResetDynamicColor(slot int) {
	c := colorprofile.DynColor{Kind: colorprofile.NotSet}
	switch slot - 100 {
	case 10:
		s.colors.SetDefaultFG(c)
	case 11:
		s.colors.SetDefaultBG(c)
	case 12:
		s.colors.SetCursor(c)
	case 13:
		s.colors.SetHighlightFG(c)
	case 14:
		s.colors.SetHighlightBG(c)
	case 17:
		s.colors.SetCursorText(c)
	}
}

func (s *Screen) oscSetClipboard(rest string) {
	parts := strings.SplitN(rest, ";", 2)
	if len(parts) != 2 || s.setClipboard == nil {
		return
	}
	selector := byte('c')
	if len(parts[0]) > 0 {
		selector = parts[0][0]
	}
	s.setClipboard(selector, parts[1])
}

// oscHyperlink implements OSC 8;params;URL: an empty URL closes the
// currently open link.
func (s *Screen) oscHyperlink(rest string) {
	parts := strings.SplitN(rest, ";", 2)
	url := ""
	if len(parts) == 2 {
		url = parts[1]
	}
	if url == "" {
		s.openHyperlinkID = 0
		return
	}
	s.openHyperlinkID = s.hyperlinks.Open(url)
}

func (s *Screen) DCSStart(params []vtparser.Param, private byte, intermediates []byte, final byte) {
	s.flushPending()
}

func (s *Screen) DCSPut(b byte) {}

func (s *Screen) DCSEnd() {}

func (s *Screen) APCDispatch(payload []byte) { s.flushPending() }
func (s *Screen) PMDispatch(payload []byte)  { s.flushPending() }
func (s *Screen) SOSDispatch(payload []byte) { s.flushPending() }
