package cellbuf

// LineBuf is the two-dimensional grid of ynum x xnum cells backing a
// screen's active main or alt buffer. Content and
// style live in parallel flat arrays; a per-row lineMap indirection
// lets scroll-region shifts rotate row indices in O(height) instead of
// memmove-ing whole cell rows.
type LineBuf struct {
	xnum, ynum int
	content    []ContentCell // len == xnum*ynum, row-major by physical slot
	style      []StyleCell
	attrs      []LineAttrs // len == ynum, by physical slot
	lineMap    []uint16    // len == ynum; lineMap[y] = physical slot holding logical row y
	scratch    []uint16    // reused during region rotations
	marks      *CombiningPool
}

func NewLineBuf(xnum, ynum int, marks *CombiningPool) *LineBuf {
	if xnum < 1 {
		xnum = 1
	}
	if ynum < 1 {
		ynum = 1
	}
	lb := &LineBuf{
		xnum:    xnum,
		ynum:    ynum,
		content: make([]ContentCell, xnum*ynum),
		style:   make([]StyleCell, xnum*ynum),
		attrs:   make([]LineAttrs, ynum),
		lineMap: make([]uint16, ynum),
		scratch: make([]uint16, ynum),
		marks:   marks,
	}
	for i := range lb.lineMap {
		lb.lineMap[i] = uint16(i)
	}
	return lb
}

func (lb *LineBuf) XNum() int { return lb.xnum }
func (lb *LineBuf) YNum() int { return lb.ynum }

// LineAt returns a view of logical row y.
func (lb *LineBuf) LineAt(y int) Line {
	slot := int(lb.lineMap[y])
	start := slot * lb.xnum
	return Line{
		Content: lb.content[start : start+lb.xnum],
		Style:   lb.style[start : start+lb.xnum],
		Attrs:   &lb.attrs[slot],
		Marks:   lb.marks,
	}
}

// ClearLine zeros row y's content (base codepoint 0) and gives every
// cell bgStyle.
func (lb *LineBuf) ClearLine(y int, bgStyle StyleCell) {
	line := lb.LineAt(y)
	line.Clear(0, lb.xnum, 0, bgStyle)
	*line.Attrs = 0
}

// rotate performs the permutation common to Index/ReverseIndex: within
// logical rows [top, bottom], move the row at one end of the range to
// the other end (bottom to top when down is set, top to bottom
// otherwise) and shift the rest by one, without copying any cell data.
func (lb *LineBuf) rotate(top, bottom int, down bool) {
	if top < 0 {
		top = 0
	}
	if bottom >= lb.ynum {
		bottom = lb.ynum - 1
	}
	if top >= bottom {
		return
	}
	n := bottom - top + 1
	scratch := lb.scratch[:n]
	if down {
		// row `bottom` becomes scratch fodder (caller reclaims it as
		// the row flushed to history or simply cleared); everything
		// else shifts down by one.
		scratch[0] = lb.lineMap[bottom]
		copy(scratch[1:], lb.lineMap[top:bottom])
		copy(lb.lineMap[top+1:bottom+1], scratch[1:])
		lb.lineMap[top] = scratch[0]
	} else {
		saved := lb.lineMap[top]
		copy(scratch[:n-1], lb.lineMap[top+1:bottom+1])
		copy(lb.lineMap[top:bottom], scratch[:n-1])
		lb.lineMap[bottom] = saved
	}
}

// Index scrolls the region [top, bottom] down by one line (the
// terminal's "scroll up" / IND direction): row top moves out (its
// physical slot is recycled as the new bottom row and cleared), every
// other row shifts up by one. Returns the evicted row's Line view
// BEFORE it is cleared, so the caller (Screen) can push it to history
// first.
func (lb *LineBuf) Index(top, bottom int, bgStyle StyleCell) Line {
	evictedSlot := lb.lineMap[top]
	evicted := lb.lineAtSlot(int(evictedSlot))
	lb.rotate(top, bottom, false)
	lb.ClearLine(bottom, bgStyle)
	return evicted
}

// ReverseIndex is the inverse of Index: row `bottom` moves out, every
// other row shifts down by one, row `top` is cleared.
func (lb *LineBuf) ReverseIndex(top, bottom int, bgStyle StyleCell) {
	lb.rotate(top, bottom, true)
	lb.ClearLine(top, bgStyle)
}

func (lb *LineBuf) lineAtSlot(slot int) Line {
	start := slot * lb.xnum
	attrs := lb.attrs[slot]
	return Line{
		Content: append([]ContentCell(nil), lb.content[start:start+lb.xnum]...),
		Style:   append([]StyleCell(nil), lb.style[start:start+lb.xnum]...),
		Attrs:   &attrs,
		Marks:   lb.marks,
	}
}

// InsertLines inserts n blank lines at y within [y, bottom], pushing
// the existing [y, bottom-n] rows down.
func (lb *LineBuf) InsertLines(n, y, bottom int, bgStyle StyleCell) {
	for i := 0; i < n && y <= bottom; i++ {
		lb.ReverseIndex(y, bottom, bgStyle)
	}
}

// DeleteLines deletes n lines at y within [y, bottom], pulling the
// rows below up to fill the gap.
func (lb *LineBuf) DeleteLines(n, y, bottom int, bgStyle StyleCell) {
	for i := 0; i < n && y <= bottom; i++ {
		lb.Index(y, bottom, bgStyle)
	}
}
