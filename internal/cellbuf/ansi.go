package cellbuf

import (
	"fmt"
	"strconv"
	"strings"
)

// AsANSI serializes the line back into a byte sequence. An SGR sequence
// is written only where the style differs from the previous cell's, and
// each one is a full reset followed by the new style's attributes, not
// a minimal transition from the previous style. Rewrap and selection do
// not go through it: they copy cells and read codepoints directly.
func (l Line) AsANSI(buf *strings.Builder, marks *CombiningPool) {
	var prev StyleCell
	havePrev := false
	for i := 0; i < l.Len(); i++ {
		st := l.Style[i]
		if st.Attrs.Width() == WidthEmpty {
			continue
		}
		if !havePrev || sgrDiffers(prev, st) {
			writeSGR(buf, prev, st, havePrev)
			prev = st
			havePrev = true
		}
		c := l.Content[i]
		buf.WriteRune(c.Base)
		if marks != nil {
			for _, m := range c.Marks {
				if m != noMark {
					buf.WriteRune(marks.Lookup(m))
				}
			}
		}
	}
	if havePrev {
		buf.WriteString("\x1b[0m")
	}
}

func sgrDiffers(a, b StyleCell) bool {
	return a.FG != b.FG || a.BG != b.BG || a.Decoration != b.Decoration ||
		a.Attrs.Bold() != b.Attrs.Bold() || a.Attrs.Italic() != b.Attrs.Italic() ||
		a.Attrs.Reverse() != b.Attrs.Reverse() || a.Attrs.Strike() != b.Attrs.Strike() ||
		a.Attrs.Dim() != b.Attrs.Dim() || a.Attrs.Decoration() != b.Attrs.Decoration()
}

func writeSGR(buf *strings.Builder, prev, st StyleCell, havePrev bool) {
	params := make([]string, 0, 8)
	if !havePrev || sgrDiffers(prev, st) {
		params = append(params, "0")
		if st.Attrs.Bold() {
			params = append(params, "1")
		}
		if st.Attrs.Dim() {
			params = append(params, "2")
		}
		if st.Attrs.Italic() {
			params = append(params, "3")
		}
		if st.Attrs.Decoration() != 0 {
			params = append(params, "4")
		}
		if st.Attrs.Reverse() {
			params = append(params, "7")
		}
		if st.Attrs.Strike() {
			params = append(params, "9")
		}
		params = append(params, colorSGR(st.FG, true), colorSGR(st.BG, false))
	}
	buf.WriteString("\x1b[")
	buf.WriteString(strings.Join(params, ";"))
	buf.WriteString("m")
}

func colorSGR(c ColorRef, isFG bool) string {
	base := 30
	if !isFG {
		base = 40
	}
	switch c.Kind() {
	case ColorDefault:
		if isFG {
			return "39"
		}
		return "49"
	case ColorIndexed:
		idx := int(c.Index())
		if idx < 8 {
			return strconv.Itoa(base + idx)
		}
		if idx < 16 {
			if isFG {
				return strconv.Itoa(90 + idx - 8)
			}
			return strconv.Itoa(100 + idx - 8)
		}
		sel := 38
		if !isFG {
			sel = 48
		}
		return fmt.Sprintf("%d;5;%d", sel, idx)
	case ColorRGB:
		r, g, b := c.RGB()
		sel := 38
		if !isFG {
			sel = 48
		}
		return fmt.Sprintf("%d;2;%d;%d;%d", sel, r, g, b)
	default:
		if isFG {
			return "39"
		}
		return "49"
	}
}
