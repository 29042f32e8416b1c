// Package colorprofile implements the 256-entry palette, dynamic
// color slots and color stack backing a screen's color resolution.
package colorprofile

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// RGB24 is a resolved, render-ready 24-bit color.
type RGB24 struct{ R, G, B uint8 }

// DynKind tags a dynamic color slot's state.
type DynKind uint8

const (
	NotSet DynKind = iota
	Special
	Indexed
	TrueColor
)

// DynColor is one of the Screen's dynamic colors (default_fg,
// default_bg, cursor, cursor_text, highlight_fg, highlight_bg,
// visual_bell), tagged {NOT_SET | SPECIAL | INDEX | RGB}.
type DynColor struct {
	Kind  DynKind
	Index uint8
	RGB   RGB24
}

// ANSIColorsRGB is the default 16-color ANSI palette (standard xterm
// values).
var ANSIColorsRGB = [16]RGB24{
	{0, 0, 0}, {205, 0, 0}, {0, 205, 0}, {205, 205, 0},
	{0, 0, 238}, {205, 0, 205}, {0, 205, 205}, {229, 229, 229},
	{127, 127, 127}, {255, 0, 0}, {0, 255, 0}, {255, 255, 0},
	{92, 92, 255}, {255, 0, 255}, {0, 255, 255}, {255, 255, 255},
}

func defaultPalette() [256]RGB24 {
	var p [256]RGB24
	copy(p[:16], ANSIColorsRGB[:])
	// 216-color cube, indices 16-231.
	steps := [6]uint8{0, 95, 135, 175, 215, 255}
	i := 16
	for r := 0; r < 6; r++ {
		for g := 0; g < 6; g++ {
			for b := 0; b < 6; b++ {
				p[i] = RGB24{steps[r], steps[g], steps[b]}
				i++
			}
		}
	}
	// grayscale ramp, indices 232-255.
	for g := 0; g < 24; g++ {
		v := uint8(8 + g*10)
		p[232+g] = RGB24{v, v, v}
	}
	return p
}

// Profile holds the mutable palette, its immutable original snapshot
// (for OSC 104 reset), dynamic colors and the bounded XTPUSHCOLORS
// stack.
type Profile struct {
	palette     [256]RGB24
	origPalette [256]RGB24

	defaultFG, defaultBG                 DynColor
	cursor, cursorText                   DynColor
	highlightFG, highlightBG, visualBell DynColor

	stack []snapshot
}

const maxColorStackDepth = 10

type snapshot struct {
	palette                              [256]RGB24
	defaultFG, defaultBG                 DynColor
	cursor, cursorText                   DynColor
	highlightFG, highlightBG, visualBell DynColor
}

func New() *Profile {
	pal := defaultPalette()
	return &Profile{
		palette:     pal,
		origPalette: pal,
		defaultFG:   DynColor{Kind: Special},
		defaultBG:   DynColor{Kind: Special},
		cursor:      DynColor{Kind: Special},
		cursorText:  DynColor{Kind: Special},
	}
}

// SetPaletteEntry implements OSC 4: set palette[index].
func (p *Profile) SetPaletteEntry(index uint8, rgb RGB24) { p.palette[index] = rgb }

// PaletteEntry returns palette[index].
func (p *Profile) PaletteEntry(index uint8) RGB24 { return p.palette[index] }

// ResetPalette implements OSC 104: it resets the 256 indexed palette
// colors to their startup values; dynamic color slots are left as they
// are.
func (p *Profile) ResetPalette() { p.palette = p.origPalette }

// Resolve implements resolve(entry, defval) -> rgb24: RGB
// entries return their own value, INDEX entries look up the palette,
// and SPECIAL/NOT_SET fall back to defval.
func (p *Profile) Resolve(c DynColor, defval RGB24) RGB24 {
	switch c.Kind {
	case TrueColor:
		return c.RGB
	case Indexed:
		return p.palette[c.Index]
	default:
		return defval
	}
}

func (p *Profile) DefaultFG() DynColor      { return p.defaultFG }
func (p *Profile) SetDefaultFG(c DynColor)  { p.defaultFG = c }
func (p *Profile) DefaultBG() DynColor      { return p.defaultBG }
func (p *Profile) SetDefaultBG(c DynColor)  { p.defaultBG = c }
func (p *Profile) Cursor() DynColor         { return p.cursor }
func (p *Profile) SetCursor(c DynColor)     { p.cursor = c }
func (p *Profile) CursorText() DynColor     { return p.cursorText }
func (p *Profile) SetCursorText(c DynColor) { p.cursorText = c }
func (p *Profile) HighlightFG() DynColor     { return p.highlightFG }
func (p *Profile) SetHighlightFG(c DynColor) { p.highlightFG = c }
func (p *Profile) HighlightBG() DynColor     { return p.highlightBG }
func (p *Profile) SetHighlightBG(c DynColor) { p.highlightBG = c }
func (p *Profile) VisualBell() DynColor      { return p.visualBell }
func (p *Profile) SetVisualBell(c DynColor)  { p.visualBell = c }

// PushColors implements XTPUSHCOLORS: snapshot palette + dynamic
// colors onto a bounded stack.
func (p *Profile) PushColors() {
	if len(p.stack) >= maxColorStackDepth {
		// oldest entries evicted FIFO, mirroring Savepoint's stack
		// overflow policy.
		p.stack = p.stack[1:]
	}
	p.stack = append(p.stack, snapshot{
		palette:     p.palette,
		defaultFG:   p.defaultFG,
		defaultBG:   p.defaultBG,
		cursor:      p.cursor,
		cursorText:  p.cursorText,
		highlightFG: p.highlightFG,
		highlightBG: p.highlightBG,
		visualBell:  p.visualBell,
	})
}

// PopColors implements XTPOPCOLORS.
func (p *Profile) PopColors() {
	if len(p.stack) == 0 {
		return
	}
	s := p.stack[len(p.stack)-1]
	p.stack = p.stack[:len(p.stack)-1]
	p.palette = s.palette
	p.defaultFG, p.defaultBG = s.defaultFG, s.defaultBG
	p.cursor, p.cursorText = s.cursor, s.cursorText
	p.highlightFG, p.highlightBG, p.visualBell = s.highlightFG, s.highlightBG, s.visualBell
}

// ParseColorSpec parses an OSC color-set payload (OSC 4/10-19's
// "rgb:R/G/B" form with 1-4 hex digits per component, or "#RRGGBB")
// into an RGB24. The "#" form is parsed with go-colorful; the "rgb:"
// form is parsed here. No other form is accepted.
func ParseColorSpec(spec string) (RGB24, bool) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return RGB24{}, false
	}
	if strings.HasPrefix(spec, "#") {
		c, err := colorful.Hex(spec)
		if err != nil {
			return RGB24{}, false
		}
		r, g, b := c.RGB255()
		return RGB24{r, g, b}, true
	}
	if strings.HasPrefix(spec, "rgb:") {
		parts := strings.Split(spec[4:], "/")
		if len(parts) != 3 {
			return RGB24{}, false
		}
		vals := make([]uint8, 3)
		for i, part := range parts {
			v, err := strconv.ParseUint(part, 16, 32)
			if err != nil {
				return RGB24{}, false
			}
			// X11 rgb: components may carry 1-4 hex digits; scale to 8 bits.
			maxVal := uint64(1)<<(4*len(part)) - 1
			vals[i] = uint8(uint64(v) * 255 / maxVal)
		}
		return RGB24{vals[0], vals[1], vals[2]}, true
	}
	return RGB24{}, false
}

// FormatColorSpec renders an RGB24 the way a DSR/color-query response
// does: "rgb:RRRR/GGGG/BBBB" (16-bit-per-channel X11 form).
func FormatColorSpec(c RGB24) string {
	return fmt.Sprintf("rgb:%02x%02x/%02x%02x/%02x%02x", c.R, c.R, c.G, c.G, c.B, c.B)
}
