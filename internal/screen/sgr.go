package screen

import (
	"github.com/kovidgoyal/kittycore/internal/cellbuf"
	"github.com/kovidgoyal/kittycore/internal/vtparser"
)

// applySGR applies one CSI "m" sequence's parameters, left to right, to
// the cursor's pending style. An empty params slice means bare "CSI m",
// equivalent to a single explicit 0 (full reset).
//
// Parameter 38/48/58 (set fg/bg/decoration color) can introduce its
// extended-color arguments either `;`-separated (each a top-level
// parameter: "38;5;idx" or "38;2;r;g;b") or `:`-separated (packed into
// one parameter's Subs: "38:5:idx" or "38:2::r:g:b", the colon form
// some clients also interleave an empty colorspace-id field into).
// Both forms are accepted and treated identically.
func (s *Screen) applySGR(params []vtparser.Param) {
	if len(params) == 0 {
		s.resetSGR()
		return
	}
	for i := 0; i < len(params); i++ {
		p := params[i]
		switch p.Base {
		case 0:
			s.resetSGR()
		case 1:
			s.cursor.Attrs = s.cursor.Attrs.SetBold(true)
		case 2:
			s.cursor.Attrs = s.cursor.Attrs.SetDim(true)
		case 3:
			s.cursor.Attrs = s.cursor.Attrs.SetItalic(true)
		case 4:
			s.cursor.Attrs = s.cursor.Attrs.SetDecoration(1)
		case 7:
			s.cursor.Attrs = s.cursor.Attrs.SetReverse(true)
		case 9:
			s.cursor.Attrs = s.cursor.Attrs.SetStrike(true)
		case 21:
			s.cursor.Attrs = s.cursor.Attrs.SetDecoration(2) // double underline
		case 22:
			// bold and dim share one reset code but are independent bits.
			s.cursor.Attrs = s.cursor.Attrs.SetBold(false).SetDim(false)
		case 23:
			s.cursor.Attrs = s.cursor.Attrs.SetItalic(false)
		case 24:
			s.cursor.Attrs = s.cursor.Attrs.SetDecoration(0)
		case 27:
			s.cursor.Attrs = s.cursor.Attrs.SetReverse(false)
		case 29:
			s.cursor.Attrs = s.cursor.Attrs.SetStrike(false)
		case 38, 48, 58:
			var ref cellbuf.ColorRef
			var consumed int
			ref, consumed = parseExtendedColor(p, params[i+1:])
			i += consumed
			switch p.Base {
			case 38:
				s.cursor.FG = ref
			case 48:
				s.cursor.BG = ref
			case 58:
				s.cursor.Decoration = ref
			}
		case 39:
			s.cursor.FG = cellbuf.ColorRef(cellbuf.ColorDefault) << 24
		case 49:
			s.cursor.BG = cellbuf.ColorRef(cellbuf.ColorDefault) << 24
		case 59:
			s.cursor.Decoration = cellbuf.ColorRef(cellbuf.ColorDefault) << 24
		default:
			if idx, ok := ansiForegroundIndex(p.Base); ok {
				s.cursor.FG = cellbuf.NewIndexedColor(idx)
			} else if idx, ok := ansiBackgroundIndex(p.Base); ok {
				s.cursor.BG = cellbuf.NewIndexedColor(idx)
			}
		}
	}
}

func (s *Screen) resetSGR() {
	s.cursor.Attrs = 0
	s.cursor.FG = 0
	s.cursor.BG = 0
	s.cursor.Decoration = 0
}

// parseExtendedColor reads the mode (5=indexed, 2=truecolor) and its
// payload either from p.Subs (colon form) or from rest (semicolon
// form, top-level parameters following p). consumed is how many
// entries of rest were used, so the caller can skip past them.
func parseExtendedColor(p vtparser.Param, rest []vtparser.Param) (cellbuf.ColorRef, int) {
	if len(p.Subs) > 0 {
		mode := p.Subs[0]
		switch mode {
		case 5:
			if len(p.Subs) >= 2 {
				return cellbuf.NewIndexedColor(uint8(p.Subs[1])), 0
			}
		case 2:
			// some encoders interleave an empty colorspace-id: 2:<cs>:r:g:b.
			vals := p.Subs[1:]
			if len(vals) == 4 {
				vals = vals[1:]
			}
			if len(vals) >= 3 {
				return cellbuf.NewRGBColor(uint8(vals[0]), uint8(vals[1]), uint8(vals[2])), 0
			}
		}
		return 0, 0
	}
	if len(rest) == 0 {
		return 0, 0
	}
	switch rest[0].Base {
	case 5:
		if len(rest) >= 2 {
			return cellbuf.NewIndexedColor(uint8(rest[1].Base)), 2
		}
		return 0, 1
	case 2:
		if len(rest) >= 4 {
			return cellbuf.NewRGBColor(uint8(rest[1].Base), uint8(rest[2].Base), uint8(rest[3].Base)), 4
		}
		return 0, len(rest)
	}
	return 0, 1
}

func ansiForegroundIndex(code int) (uint8, bool) {
	switch {
	case code >= 30 && code <= 37:
		return uint8(code - 30), true
	case code >= 90 && code <= 97:
		return uint8(code - 90 + 8), true
	}
	return 0, false
}

func ansiBackgroundIndex(code int) (uint8, bool) {
	switch {
	case code >= 40 && code <= 47:
		return uint8(code - 40), true
	case code >= 100 && code <= 107:
		return uint8(code - 100 + 8), true
	}
	return 0, false
}
