package cellbuf

// PromptKind classifies a logical line's shell-integration role.
type PromptKind uint8

const (
	PromptUnknown PromptKind = iota
	PromptStart
	SecondaryPrompt
	OutputStart
)

// LineAttrs packs a row's one-byte attribute set:
//
//	bit 0    is_continued   (this row wraps from the previous logical line)
//	bit 1    has_dirty_text
//	bit 2    has_image_placeholders
//	bits 3-4 prompt_kind
type LineAttrs uint8

const (
	continuedBit      = 0
	dirtyTextBit       = 1
	imagePlaceholderBit = 2
	promptKindShift    = 3
	promptKindMask     = 0x3
)

func (a LineAttrs) IsContinued() bool { return bitSet8(a, continuedBit) }
func (a *LineAttrs) SetContinued(v bool) { *a = withBit8(*a, continuedBit, v) }

func (a LineAttrs) HasDirtyText() bool { return bitSet8(a, dirtyTextBit) }
func (a *LineAttrs) SetDirtyText(v bool) { *a = withBit8(*a, dirtyTextBit, v) }

func (a LineAttrs) HasImagePlaceholders() bool { return bitSet8(a, imagePlaceholderBit) }
func (a *LineAttrs) SetImagePlaceholders(v bool) { *a = withBit8(*a, imagePlaceholderBit, v) }

func (a LineAttrs) PromptKind() PromptKind {
	return PromptKind((a >> promptKindShift) & promptKindMask)
}

func (a *LineAttrs) SetPromptKind(k PromptKind) {
	*a = (*a &^ (promptKindMask << promptKindShift)) | LineAttrs(k&promptKindMask)<<promptKindShift
}

func bitSet8(w LineAttrs, bit uint) bool { return w&(1<<bit) != 0 }

func withBit8(w LineAttrs, bit uint, v bool) LineAttrs {
	if v {
		return w | (1 << bit)
	}
	return w &^ (1 << bit)
}

// Line is a transient view over one row's worth of cells, exactly
// `xnum` cells long, plus its owning LineAttrs. It is never allocated
// independently — callers get one from a LineBuf/HistoryBuf
// and it stays valid only until the next structural mutation
// (Index/ReverseIndex/Rewrap) of the owner.
type Line struct {
	Content []ContentCell
	Style   []StyleCell
	Attrs   *LineAttrs
	Marks   *CombiningPool
}

func (l Line) Len() int { return len(l.Content) }

// SetChar writes a base codepoint at column x using cursorStyle,
// following set_char semantics for wide characters.
func (l Line) SetChar(x int, cp rune, width int, cursorStyle StyleCell) {
	if x < 0 || x >= l.Len() {
		return
	}
	l.Content[x] = ContentCell{Base: cp}
	st := cursorStyle
	st.Attrs = st.Attrs.SetWidth(WidthSingle)
	if width == 2 {
		if x+1 < l.Len() {
			st.Attrs = st.Attrs.SetWidth(WidthWideFirst)
			l.Style[x] = st
			second := cursorStyle
			second.Attrs = second.Attrs.SetWidth(WidthEmpty)
			l.Content[x+1] = ContentCell{}
			l.Style[x+1] = second
			return
		}
		// wide char does not fit at the last column: write a blank
		// instead.
		l.Content[x] = ContentCell{Base: ' '}
		l.Style[x] = st
		return
	}
	l.Style[x] = st
}

// AddCombiningChar appends cp to cell x's combining-mark list. If the
// list already holds MaxCombiningMarks entries the mark is dropped
// silently.
func (l Line) AddCombiningChar(x int, cp rune) {
	if x < 0 || x >= l.Len() || l.Marks == nil {
		return
	}
	marks := &l.Content[x].Marks
	last := uint32(noMark)
	lastSlot := -1
	for i := 0; i < MaxCombiningMarks; i++ {
		if marks[i] == noMark {
			break
		}
		last = marks[i]
		lastSlot = i
	}
	if lastSlot >= 0 && l.Marks.Lookup(last) == cp {
		// applying the same mark twice is a no-op.
		return
	}
	for i := 0; i < MaxCombiningMarks; i++ {
		if marks[i] == noMark {
			marks[i] = l.Marks.Intern(cp)
			return
		}
	}
	// all mark slots of the cell are in use: drop silently, base glyph
	// is preserved.
}

// RightShift moves cells [at, xnum-n) right by n, filling [at, at+n)
// with blanks carrying bgStyle.
func (l Line) RightShift(at, n int, bgStyle StyleCell) {
	width := l.Len()
	if n <= 0 || at < 0 || at >= width {
		return
	}
	if at+n > width {
		n = width - at
	}
	copy(l.Content[at+n:width], l.Content[at:width-n])
	copy(l.Style[at+n:width], l.Style[at:width-n])
	l.Clear(at, n, ' ', bgStyle)
}

// LeftShift moves cells [at+n, xnum) left by n. A wide pair that the
// deleted range [at, at+n) splits is cleared: both halves when the range
// ends on its first half, and the surviving first half when the range
// starts on its second half.
func (l Line) LeftShift(at, n int, bgStyle StyleCell) {
	width := l.Len()
	if n <= 0 || at < 0 || at >= width {
		return
	}
	if at+n > width {
		n = width - at
	}
	// The range starts on a wide pair's second half: its first half at
	// at-1 would be left without a partner.
	if at > 0 && l.Style[at-1].Attrs.IsWideFirst() {
		l.Clear(at-1, 1, ' ', bgStyle)
	}
	// If the cell about to be shifted away (at at+n-... boundary) is a
	// wide-first whose second half is going to be split across the
	// shift boundary, clear both halves of that pair first.
	if at+n-1 >= 0 && at+n-1 < width && l.Style[at+n-1].Attrs.IsWideFirst() {
		l.Clear(at+n-1, 2, ' ', bgStyle)
	}
	copy(l.Content[at:width-n], l.Content[at+n:width])
	copy(l.Style[at:width-n], l.Style[at+n:width])
	l.Clear(width-n, n, ' ', bgStyle)
}

// Clear overwrites n cells starting at `at` with eraseChar (typically
// a space, or 0 for a true "BLANK" with no glyph at all) using the
// cursor's current background.
func (l Line) Clear(at, n int, eraseChar rune, bgStyle StyleCell) {
	width := l.Len()
	if at < 0 {
		at = 0
	}
	end := at + n
	if end > width {
		end = width
	}
	style := bgStyle
	style.Attrs = style.Attrs.SetWidth(WidthSingle)
	for i := at; i < end; i++ {
		l.Content[i] = ContentCell{Base: eraseChar}
		l.Style[i] = style
	}
}
