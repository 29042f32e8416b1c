package cellbuf

// HistorySink is the minimal interface LineBuf.Rewrap needs from a
// scrollback buffer: append one fully-formed row that has been pushed
// out of the visible grid by a resize. Defined here (rather than
// importing the histbuf package) to avoid an import cycle — histbuf
// already depends on cellbuf for Line/ContentCell/StyleCell.
type HistorySink interface {
	AppendRow(content []ContentCell, style []StyleCell, attrs LineAttrs)
}

type logicalLine struct {
	content []ContentCell
	style   []StyleCell
	// cursorOffset, if >= 0, is the flattened cell offset of the
	// cursor within this logical line (set only for the line the
	// cursor occupied before rewrap).
	cursorOffset int
}

// Rewrap resizes the grid into `other`'s dimensions, re-flowing
// wrapped logical lines at the new width and flushing rows that no
// longer fit on screen into `history`. `cursorX`/`cursorY`
// describe the cursor's position in `lb` before the resize; Rewrap
// returns where the cursor should land in `other`.
func (lb *LineBuf) Rewrap(other *LineBuf, history HistorySink, cursorX, cursorY int) (newCursorX, newCursorY int) {
	logicals := lb.flattenLogicalLines(cursorX, cursorY)

	type rewrapped struct {
		content []ContentCell
		style   []StyleCell
		attrs   LineAttrs
	}
	var rows []rewrapped
	cursorRowIdx, cursorColIdx := -1, 0

	for _, ll := range logicals {
		total := len(ll.content)
		start := 0
		first := true
		if total == 0 {
			rows = append(rows, rewrapped{
				content: make([]ContentCell, other.xnum),
				style:   make([]StyleCell, other.xnum),
			})
			if ll.cursorOffset >= 0 {
				cursorRowIdx = len(rows) - 1
				cursorColIdx = 0
			}
			continue
		}
		for start < total {
			end := start + other.xnum
			if end > total {
				end = total
			}
			row := rewrapped{
				content: make([]ContentCell, other.xnum),
				style:   make([]StyleCell, other.xnum),
			}
			copy(row.content, ll.content[start:end])
			copy(row.style, ll.style[start:end])
			if !first {
				row.attrs.SetContinued(true)
			}
			rows = append(rows, row)
			if ll.cursorOffset >= start && ll.cursorOffset < end {
				cursorRowIdx = len(rows) - 1
				cursorColIdx = ll.cursorOffset - start
			} else if ll.cursorOffset == total && end == total {
				// cursor sat exactly at end-of-line (pending wrap)
				cursorRowIdx = len(rows) - 1
				cursorColIdx = end - start
			}
			start = end
			first = false
		}
	}

	// Trailing blank rows below the cursor are dropped before any
	// content row is pushed into history.
	for len(rows) > other.ynum && len(rows)-1 > cursorRowIdx {
		blank := true
		for _, c := range rows[len(rows)-1].content {
			if c.Base != 0 && c.Base != ' ' {
				blank = false
				break
			}
		}
		if !blank {
			break
		}
		rows = rows[:len(rows)-1]
	}

	// Oldest rows spill into history until the remainder fits other.ynum.
	spill := len(rows) - other.ynum
	if spill > 0 {
		for i := 0; i < spill; i++ {
			if history != nil {
				history.AppendRow(rows[i].content, rows[i].style, rows[i].attrs)
			}
			if cursorRowIdx >= 0 {
				cursorRowIdx--
			}
		}
		rows = rows[spill:]
	}

	// Lay remaining rows into `other`, bottom-anchored so the newest
	// content stays on screen (matches real terminals: content grows
	// from the bottom after a resize).
	pad := other.ynum - len(rows)
	if pad < 0 {
		pad = 0
	}
	for i := 0; i < other.ynum; i++ {
		slot := int(other.lineMap[i])
		start := slot * other.xnum
		if i < pad {
			for j := 0; j < other.xnum; j++ {
				other.content[start+j] = ContentCell{}
				other.style[start+j] = StyleCell{}
			}
			other.attrs[slot] = 0
			continue
		}
		r := rows[i-pad]
		copy(other.content[start:start+other.xnum], r.content)
		copy(other.style[start:start+other.xnum], r.style)
		other.attrs[slot] = r.attrs
	}

	if cursorRowIdx < 0 {
		return 0, 0
	}
	newCursorY = cursorRowIdx + pad
	if newCursorY >= other.ynum {
		newCursorY = other.ynum - 1
	}
	if newCursorY < 0 {
		newCursorY = 0
	}
	newCursorX = cursorColIdx
	if newCursorX > other.xnum {
		newCursorX = other.xnum
	}
	return newCursorX, newCursorY
}

// flattenLogicalLines walks lb's rows in logical (lineMap) order,
// grouping maximal runs of rows linked by IsContinued() into single
// logical lines.
func (lb *LineBuf) flattenLogicalLines(cursorX, cursorY int) []logicalLine {
	var out []logicalLine
	y := 0
	for y < lb.ynum {
		ll := logicalLine{cursorOffset: -1}
		rowStart := y
		for {
			line := lb.LineAt(y)
			offset := len(ll.content)
			ll.content = append(ll.content, line.Content...)
			ll.style = append(ll.style, line.Style...)
			if y == cursorY {
				cx := cursorX
				if cx > lb.xnum {
					cx = lb.xnum
				}
				ll.cursorOffset = offset + cx
			}
			y++
			if y >= lb.ynum {
				break
			}
			if !lb.LineAt(y).Attrs.IsContinued() {
				break
			}
		}
		_ = rowStart
		out = append(out, ll)
	}
	return out
}
