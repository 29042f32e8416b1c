package screen

import "fmt"

// Mod is a keyboard modifier bitmask, matching the CSI-u / xterm
// modifier parameter encoding (1 + bits, bit0=shift, bit1=alt,
// bit2=ctrl, bit3=super, bit4=hyper, bit5=meta, bit6=caps-lock,
// bit7=num-lock).
type Mod uint16

const (
	ModShift Mod = 1 << iota
	ModAlt
	ModCtrl
	ModSuper
	ModHyper
	ModMeta
	ModCapsLock
	ModNumLock
)

// xtermParam returns the CSI modifier parameter, 1 plus the low seven
// modifier bits (Shift alone gives 2, emitted as e.g. "1;2"), or 0 when no
// modifiers are present at all (the common case that omits the
// parameter entirely).
func (m Mod) xtermParam() int {
	if m == 0 {
		return 0
	}
	return 1 + int(m&0x7F)
}

// KeyAction distinguishes a key press from its release and from
// autorepeat, meaningful only under the progressive-enhancement
// protocol's "report event types" flag.
type KeyAction int

const (
	KeyPress KeyAction = iota
	KeyRepeat
	KeyRelease
)

// Keysym names a logical key independent of any encoding; values below
// cover the keys classic VT/xterm sequences and the CSI-u protocol both
// need to encode.
type Keysym int

const (
	KeyUnknown Keysym = iota
	KeyUp
	KeyDown
	KeyRight
	KeyLeft
	KeyHome
	KeyEnd
	KeyInsert
	KeyDelete
	KeyPageUp
	KeyPageDown
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyEnter
	KeyTab
	KeyBackspace
	KeyEscape
	KeyRune // Rune holds the actual character
)

// KeyEvent is a logical key press/release the caller (a host UI)
// translates into wire bytes via Screen.EncodeKey.
type KeyEvent struct {
	Key    Keysym
	Rune   rune
	Mods   Mod
	Action KeyAction
}

// KeyboardFlags mirrors the CSI > 1 u progressive-enhancement flags
// (kitty keyboard protocol): each bit, once pushed, changes how keys
// are encoded until popped.
type KeyboardFlags uint8

const (
	KeyboardDisambiguateEscape KeyboardFlags = 1 << iota
	KeyboardReportEventTypes
	KeyboardReportAlternateKeys
	KeyboardReportAllKeysAsEscape
	KeyboardReportAssociatedText
)

var legacyArrowFinal = map[Keysym]byte{
	KeyUp: 'A', KeyDown: 'B', KeyRight: 'C', KeyLeft: 'D',
	KeyHome: 'H', KeyEnd: 'F',
}

var legacyTildeCode = map[Keysym]int{
	KeyInsert: 2, KeyDelete: 3, KeyPageUp: 5, KeyPageDown: 6,
	KeyF5: 15, KeyF6: 17, KeyF7: 18, KeyF8: 19,
	KeyF9: 20, KeyF10: 21, KeyF11: 23, KeyF12: 24,
}

var legacySS3Final = map[Keysym]byte{
	KeyF1: 'P', KeyF2: 'Q', KeyF3: 'R', KeyF4: 'S',
}

// csiUCode maps keys that have no dedicated legacy final byte to their
// CSI-u codepoint per the kitty keyboard protocol's functional key
// table. Arrows/Home/End/Insert/Delete/function keys are not listed:
// under CSI-u they keep their legacy final-byte and tilde forms.
var csiUCode = map[Keysym]int{
	KeyEscape: 27, KeyEnter: 13, KeyTab: 9, KeyBackspace: 127,
}

// EncodeKey renders ev as the bytes written to the child process,
// honoring the active keyboard flags and cursor-key mode.
func (s *Screen) EncodeKey(ev KeyEvent) []byte {
	if s.modes.KeyboardFlags&KeyboardReportEventTypes == 0 && ev.Action == KeyRelease {
		return nil
	}
	if s.modes.KeyboardFlags != 0 {
		return s.encodeCSIu(ev)
	}
	return s.encodeLegacy(ev)
}

func (s *Screen) encodeLegacy(ev KeyEvent) []byte {
	mod := ev.Mods.xtermParam()
	if final, ok := legacyArrowFinal[ev.Key]; ok {
		if mod == 0 {
			introducer := byte('[')
			if s.modes.ApplicationCursorKeys {
				introducer = 'O'
			}
			return []byte{0x1b, introducer, final}
		}
		return []byte(fmt.Sprintf("\x1b[1;%d%c", mod, final))
	}
	if code, ok := legacyTildeCode[ev.Key]; ok {
		if mod == 0 {
			return []byte(fmt.Sprintf("\x1b[%d~", code))
		}
		return []byte(fmt.Sprintf("\x1b[%d;%d~", code, mod))
	}
	if final, ok := legacySS3Final[ev.Key]; ok && mod == 0 {
		return []byte{0x1b, 'O', final}
	}
	if final, ok := legacySS3Final[ev.Key]; ok {
		return []byte(fmt.Sprintf("\x1b[1;%d%c", mod, final))
	}
	switch ev.Key {
	case KeyEnter:
		return []byte{'\r'}
	case KeyTab:
		return []byte{'\t'}
	case KeyBackspace:
		return []byte{0x7f}
	case KeyEscape:
		return []byte{0x1b}
	case KeyRune:
		return encodeRuneWithMods(ev.Rune, ev.Mods)
	}
	return nil
}

func encodeRuneWithMods(r rune, mods Mod) []byte {
	if mods&ModCtrl != 0 && r >= '@' && r <= '_' {
		return []byte{byte(r - '@')}
	}
	if mods&ModCtrl != 0 && r >= 'a' && r <= 'z' {
		return []byte{byte(r - 'a' + 1)}
	}
	out := []byte(string(r))
	if mods&ModAlt != 0 {
		out = append([]byte{0x1b}, out...)
	}
	return out
}

// encodeCSIu implements the kitty keyboard protocol's CSI-u form:
// "CSI unicode-key-code:alternate ; modifiers:event-type u", falling
// back to the legacy SS3/tilde forms for keys that are neither runes
// nor listed in csiUCode, whatever the active flags.
func (s *Screen) encodeCSIu(ev KeyEvent) []byte {
	code, ok := csiUCode[ev.Key]
	if !ok {
		if ev.Key == KeyRune {
			code = int(ev.Rune)
		} else {
			return s.encodeLegacy(ev)
		}
	}
	mod := ev.Mods.xtermParam()
	if mod == 0 && s.modes.KeyboardFlags&KeyboardReportEventTypes == 0 {
		return []byte(fmt.Sprintf("\x1b[%du", code))
	}
	eventType := 1
	switch ev.Action {
	case KeyRepeat:
		eventType = 2
	case KeyRelease:
		eventType = 3
	}
	if mod == 0 {
		mod = 1
	}
	if s.modes.KeyboardFlags&KeyboardReportEventTypes != 0 {
		return []byte(fmt.Sprintf("\x1b[%d;%d:%du", code, mod, eventType))
	}
	return []byte(fmt.Sprintf("\x1b[%d;%du", code, mod))
}

// PushKeyboardFlags implements CSI > flags u: push the current flags
// and adopt the new ones.
func (s *Screen) PushKeyboardFlags(flags KeyboardFlags) {
	s.keyboardFlagStack = append(s.keyboardFlagStack, s.modes.KeyboardFlags)
	s.modes.KeyboardFlags = flags
}

// PopKeyboardFlags implements CSI < n u: pop n saved flag states.
func (s *Screen) PopKeyboardFlags(n int) {
	if n <= 0 {
		n = 1
	}
	for ; n > 0 && len(s.keyboardFlagStack) > 0; n-- {
		last := len(s.keyboardFlagStack) - 1
		s.modes.KeyboardFlags = s.keyboardFlagStack[last]
		s.keyboardFlagStack = s.keyboardFlagStack[:last]
	}
}
