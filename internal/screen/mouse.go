package screen

import "fmt"

// MouseButton is a physical button or wheel direction.
type MouseButton int

const (
	MouseButtonLeft MouseButton = iota
	MouseButtonMiddle
	MouseButtonRight
	MouseButtonNone // motion with no button held
	MouseWheelUp
	MouseWheelDown
	MouseButton8
	MouseButton9
	MouseButton10
	MouseButton11
)

// MouseEventKind distinguishes press/release/motion for encoding
// purposes (SGR needs a trailing 'M'/'m'; X10 only ever sends press).
type MouseEventKind int

const (
	MousePress MouseEventKind = iota
	MouseRelease
	MouseMotion
)

// MouseEvent is a logical pointer event the host UI reports to the
// Screen for encoding, in 1-based terminal cell coordinates (and, for
// the SGR-pixel protocol, PixelX/PixelY in device pixels).
type MouseEvent struct {
	Button        MouseButton
	Kind          MouseEventKind
	X, Y          int
	PixelX, PixelY int
	Mods          Mod
}

// mouseReported decides whether ev should be sent at all under the active
// tracking mode.
func (s *Screen) mouseReported(ev MouseEvent) bool {
	switch s.modes.MouseTracking {
	case MouseTrackingNone:
		return false
	case MouseTrackingX10Compat:
		return ev.Kind == MousePress
	case MouseTrackingNormal:
		return ev.Kind != MouseMotion
	case MouseTrackingButton:
		return ev.Kind != MouseMotion || ev.Button != MouseButtonNone
	case MouseTrackingAny:
		return true
	}
	return false
}

// buttonCode packs the button/modifier/event bits per the shared
// xterm encoding: bits 0-1 button index, bit 2 shift, bit 3 alt (meta),
// bit 4 control, bit 5 motion, bit 6 wheel, bit 7 extra buttons 8-11.
func buttonCode(ev MouseEvent) int {
	var code int
	switch {
	case ev.Button == MouseWheelUp:
		code = 0x40 | 0
	case ev.Button == MouseWheelDown:
		code = 0x40 | 1
	case ev.Button >= MouseButton8:
		code = 0x80 | int(ev.Button-MouseButton8)
	case ev.Button == MouseButtonNone:
		code = 3
	default:
		code = int(ev.Button)
	}
	if ev.Kind == MouseMotion {
		code |= 0x20
	}
	if ev.Mods&ModShift != 0 {
		code |= 0x04
	}
	if ev.Mods&ModAlt != 0 {
		code |= 0x08
	}
	if ev.Mods&ModCtrl != 0 {
		code |= 0x10
	}
	return code
}

// EncodeMouse renders ev as the bytes written to the child process
// under the current mouse tracking mode and wire protocol, or nil if
// the event should not be reported at all.
func (s *Screen) EncodeMouse(ev MouseEvent) []byte {
	if !s.mouseReported(ev) {
		return nil
	}
	code := buttonCode(ev)
	switch s.modes.MouseProtocol {
	case MouseProtocolSGR, MouseProtocolSGRPixel:
		x, y := ev.X, ev.Y
		if s.modes.MouseProtocol == MouseProtocolSGRPixel {
			x, y = ev.PixelX, ev.PixelY
		}
		final := byte('M')
		if ev.Kind == MouseRelease {
			final = 'm'
		}
		return []byte(fmt.Sprintf("\x1b[<%d;%d;%d%c", code, x, y, final))
	case MouseProtocolURXVT:
		return []byte(fmt.Sprintf("\x1b[%d;%d;%dM", code+32, ev.X, ev.Y))
	case MouseProtocolUTF8:
		return encodeUTF8MouseCoord(code, ev.X, ev.Y)
	default: // X10
		return encodeX10MouseCoord(code, ev.X, ev.Y)
	}
}

// encodeX10MouseCoord is the original X10 encoding: button/coordinates
// are single bytes offset by 32, capping at 255 (coordinates beyond
// 223 cannot be represented and are clamped).
func encodeX10MouseCoord(code, x, y int) []byte {
	clamp := func(v int) byte {
		v += 32
		if v > 255 {
			v = 255
		}
		return byte(v)
	}
	return []byte{0x1b, '[', 'M', byte(code + 32), clamp(x), clamp(y)}
}

// encodeUTF8MouseCoord extends X10 coordinates past 223 by encoding
// them as UTF-8 runes instead of raw bytes.
func encodeUTF8MouseCoord(code, x, y int) []byte {
	out := []byte{0x1b, '[', 'M', byte(code + 32)}
	out = append(out, []byte(string(rune(x+32)))...)
	out = append(out, []byte(string(rune(y+32)))...)
	return out
}
