package cellbuf

// MaxCombiningMarks is the number of combining-mark slots a single
// cell carries inline.
const MaxCombiningMarks = 3

// noMark is the pool index sentinel meaning "no mark in this slot".
const noMark = 0

// ContentCell is the render-irrelevant half of a cell: the base
// codepoint, its combining marks (indices into a shared CombiningPool)
// and its hyperlink id. Kept separate from StyleCell so the render
// path can walk style data without touching content.
type ContentCell struct {
	Base      rune
	Marks     [MaxCombiningMarks]uint32
	Hyperlink uint16 // 0 = none
}

// StyleCell is the render-relevant half of a cell: resolved colors,
// sprite coordinates (filled in by the renderer, opaque to the core)
// and the packed attribute word.
type StyleCell struct {
	FG, BG, Decoration ColorRef
	SpriteX, SpriteY, SpriteZ uint16
	Attrs                     AttrWord
}

// Cell is a convenience, non-packed view combining one ContentCell and
// one StyleCell, returned by Line accessors. The packed representation
// used for storage is the parallel-array split in LineBuf; Cell exists
// only as a value type for callers that want "one cell" without caring
// about the storage split.
type Cell struct {
	Content ContentCell
	Style   StyleCell
}

// CombiningPool interns combining-mark codepoints so cells only need
// to store small stable indices. It is shared across a screen's
// buffers but only ever touched from the single core thread, so it
// needs no locking.
type CombiningPool struct {
	marks []rune
}

func NewCombiningPool() *CombiningPool {
	// index 0 is reserved as the "no mark" sentinel.
	return &CombiningPool{marks: []rune{0}}
}

// Intern returns a stable index for r, allocating a new slot if r has
// not been seen before.
func (p *CombiningPool) Intern(r rune) uint32 {
	for i, existing := range p.marks {
		if existing == r {
			return uint32(i)
		}
	}
	p.marks = append(p.marks, r)
	return uint32(len(p.marks) - 1)
}

func (p *CombiningPool) Lookup(idx uint32) rune {
	if int(idx) >= len(p.marks) {
		return 0
	}
	return p.marks[idx]
}

// Compact rebuilds the pool keeping only marks referenced by cells,
// rewriting their indices via the touch callback for every affected
// cell; a compaction revisits all cells.
func (p *CombiningPool) Compact(touch func(remap func(old uint32) uint32)) {
	used := make(map[uint32]bool)
	remap := make(map[uint32]uint32)
	fresh := []rune{0}

	// First pass (performed by the caller via touch, which must scan
	// and record usage) is combined with rewriting below by having
	// touch invoke remap lazily the first time an old index is seen.
	touch(func(old uint32) uint32 {
		if old == noMark {
			return noMark
		}
		if _, ok := used[old]; !ok {
			used[old] = true
			fresh = append(fresh, p.Lookup(old))
			remap[old] = uint32(len(fresh) - 1)
		}
		return remap[old]
	})
	p.marks = fresh
}

// HyperlinkPool interns hyperlink target URLs behind 16-bit ids
// (0 = none).
type HyperlinkPool struct {
	ids  map[string]uint16
	urls []string // urls[0] unused, urls[id] is the target for id
	next uint16
}

func NewHyperlinkPool() *HyperlinkPool {
	return &HyperlinkPool{ids: make(map[string]uint16), urls: []string{""}, next: 1}
}

// Open returns the id for url, reusing an existing id if the same URL
// is already interned. Once ids are exhausted (65535 distinct live
// links) the pool returns 0 (no hyperlink) rather than erroring.
func (p *HyperlinkPool) Open(url string) uint16 {
	if url == "" {
		return 0
	}
	if id, ok := p.ids[url]; ok {
		return id
	}
	if p.next == 0 { // wrapped past uint16 range
		return 0
	}
	id := p.next
	p.ids[url] = id
	p.urls = append(p.urls, url)
	p.next++
	return id
}

func (p *HyperlinkPool) URL(id uint16) string {
	if int(id) >= len(p.urls) {
		return ""
	}
	return p.urls[id]
}
