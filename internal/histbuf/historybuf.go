// Package histbuf implements the segmented, append-only scrollback
// buffer that sits below a terminal's visible grid.
package histbuf

import (
	"hash/fnv"

	"github.com/kovidgoyal/kittycore/internal/cellbuf"
	"github.com/kovidgoyal/kittycore/internal/termlog"
)

// segmentSize is the number of rows held per physical segment. Fixed
// segments (rather than one giant contiguous slice) avoid the
// large-reallocation cost for a buffer that can grow to tens of
// thousands of lines.
const segmentSize = 1024

// row is one stored scrollback line: fixed-width content/style slices
// plus its LineAttrs (continuation/prompt-kind bits survive into
// history so rewrap can still find logical-line boundaries there).
type row struct {
	content []cellbuf.ContentCell
	style   []cellbuf.StyleCell
	attrs   cellbuf.LineAttrs
}

// HistoryBuf is a logical ring of up to maxsz lines, physically backed
// by fixed-size segments.
type HistoryBuf struct {
	xnum         int
	maxsz        int
	segments     [][]row // each inner slice has capacity segmentSize
	startOfData  int     // logical index, within the ring, of the oldest line
	count        int     // number of lines currently present
	pagerhist    []rune  // optional character-oriented rewrap buffer
	pagerhistCap int

	cache Cache        // optional disk-backed scrollback cache (§9), NopCache unless AttachCache is called
	log   termlog.Logger
}

func New(xnum, maxsz int) *HistoryBuf {
	if xnum < 1 {
		xnum = 1
	}
	if maxsz < 0 {
		maxsz = 0
	}
	return &HistoryBuf{xnum: xnum, maxsz: maxsz, pagerhistCap: 1 << 20, cache: NopCache{}, log: termlog.Nop()}
}

func (h *HistoryBuf) Count() int { return h.count }
func (h *HistoryBuf) MaxSize() int { return h.maxsz }

func (h *HistoryBuf) segmentIndex(ring int) (seg, off int) {
	return ring / segmentSize, ring % segmentSize
}

func (h *HistoryBuf) ensureSegment(seg int) {
	for len(h.segments) <= seg {
		h.segments = append(h.segments, make([]row, segmentSize))
	}
}

// AddLine appends a line to the youngest end of the history. If the
// ring is at capacity the oldest line is evicted first (startOfData
// advances).
func (h *HistoryBuf) AddLine(content []cellbuf.ContentCell, style []cellbuf.StyleCell, attrs cellbuf.LineAttrs) {
	if h.maxsz == 0 {
		return
	}
	ring := (h.startOfData + h.count) % h.maxsz
	if h.count == h.maxsz {
		// full: the slot we are about to write already holds the
		// current oldest line, which is exactly the one being evicted.
		h.evictToCache(ring)
		h.startOfData = (h.startOfData + 1) % h.maxsz
	} else {
		h.count++
	}
	seg, off := h.segmentIndex(ring)
	h.ensureSegment(seg)
	h.segments[seg][off] = row{
		content: append([]cellbuf.ContentCell(nil), content...),
		style:   append([]cellbuf.StyleCell(nil), style...),
		attrs:   attrs,
	}
}

// evictToCache hands the row about to be overwritten at ring to the
// disk-backed cache (if any) before it is lost, keyed by a fingerprint
// of its base codepoints. Best-effort: Put errors are not surfaced,
// matching the core's "no diagnostic to the wire" error posture (§7).
func (h *HistoryBuf) evictToCache(ring int) {
	seg, off := h.segmentIndex(ring)
	if seg >= len(h.segments) {
		return
	}
	r := &h.segments[seg][off]
	if len(r.content) == 0 {
		return
	}
	key := fingerprint(r.content)
	h.cache.Put(key, encodeRow(r.content))
	h.log.Debug().Uint64("key", key).Msg("scrollback line evicted to cache")
}

func fingerprint(content []cellbuf.ContentCell) uint64 {
	hasher := fnv.New64a()
	buf := make([]byte, 4)
	for _, c := range content {
		buf[0] = byte(c.Base)
		buf[1] = byte(c.Base >> 8)
		buf[2] = byte(c.Base >> 16)
		buf[3] = byte(c.Base >> 24)
		hasher.Write(buf)
	}
	return hasher.Sum64()
}

func encodeRow(content []cellbuf.ContentCell) []byte {
	out := make([]byte, 0, len(content)*4)
	for _, c := range content {
		out = append(out, byte(c.Base), byte(c.Base>>8), byte(c.Base>>16), byte(c.Base>>24))
	}
	return out
}

// AppendRow implements cellbuf.HistorySink so LineBuf.Rewrap can push
// displaced rows directly into history during a resize.
func (h *HistoryBuf) AppendRow(content []cellbuf.ContentCell, style []cellbuf.StyleCell, attrs cellbuf.LineAttrs) {
	h.AddLine(content, style, attrs)
}

// LineAt returns the k-th most recent line, k=0 being the youngest.
func (h *HistoryBuf) LineAt(k int) cellbuf.Line {
	if k < 0 || k >= h.count {
		return cellbuf.Line{}
	}
	ringFromOldest := h.count - 1 - k
	ring := (h.startOfData + ringFromOldest) % h.maxsz
	seg, off := h.segmentIndex(ring)
	r := &h.segments[seg][off]
	return cellbuf.Line{
		Content: r.content,
		Style:   r.style,
		Attrs:   &r.attrs,
	}
}

// PushPagerHist appends a logical line's plain-text rendering to the
// optional character-oriented rewrap buffer, used only across resize
// to allow arbitrary-width reflow of scrollback.
func (h *HistoryBuf) PushPagerHist(text string) {
	if h.pagerhistCap == 0 {
		return
	}
	h.pagerhist = append(h.pagerhist, []rune(text)...)
	h.pagerhist = append(h.pagerhist, '\n')
	if len(h.pagerhist) > h.pagerhistCap {
		h.pagerhist = h.pagerhist[len(h.pagerhist)-h.pagerhistCap:]
	}
}

func (h *HistoryBuf) PagerHist() string { return string(h.pagerhist) }

// Clear empties the history.
func (h *HistoryBuf) Clear() {
	h.segments = nil
	h.startOfData = 0
	h.count = 0
	h.pagerhist = nil
}

// Rewrap re-flows the entire history at a new column width. It
// mirrors LineBuf.Rewrap's contract (maximal IsContinued()
// runs are logical lines) but operates over every stored row instead
// of one fixed-height grid, and feeds the flattened text through
// PushPagerHist so a caller with unlimited-width needs (e.g. a "show
// full scrollback unwrapped" view) can still recover logical lines.
func (h *HistoryBuf) Rewrap(newXNum int) {
	if newXNum < 1 {
		newXNum = 1
	}
	if h.count == 0 {
		h.xnum = newXNum
		return
	}
	type logical struct {
		content []cellbuf.ContentCell
		style   []cellbuf.StyleCell
	}
	var logicals []logical
	// Walk oldest -> youngest accumulating logical-line runs.
	var cur *logical
	for i := 0; i < h.count; i++ {
		line := h.LineAt(h.count - 1 - i) // k = count-1-i yields oldest-first iteration
		if cur == nil || !line.Attrs.IsContinued() {
			logicals = append(logicals, logical{})
			cur = &logicals[len(logicals)-1]
		}
		cur.content = append(cur.content, line.Content...)
		cur.style = append(cur.style, line.Style...)
	}

	h.segments = nil
	h.startOfData = 0
	h.count = 0
	h.xnum = newXNum

	for _, ll := range logicals {
		text := make([]rune, 0, len(ll.content))
		for _, c := range ll.content {
			if c.Base != 0 {
				text = append(text, c.Base)
			}
		}
		h.PushPagerHist(string(text))
		start := 0
		first := true
		total := len(ll.content)
		if total == 0 {
			h.AddLine(make([]cellbuf.ContentCell, newXNum), make([]cellbuf.StyleCell, newXNum), 0)
			continue
		}
		for start < total {
			end := start + newXNum
			if end > total {
				end = total
			}
			content := make([]cellbuf.ContentCell, newXNum)
			style := make([]cellbuf.StyleCell, newXNum)
			copy(content, ll.content[start:end])
			copy(style, ll.style[start:end])
			var attrs cellbuf.LineAttrs
			if !first {
				attrs.SetContinued(true)
			}
			h.AddLine(content, style, attrs)
			start = end
			first = false
		}
	}
}
