package screen

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeKeyLegacyArrows(t *testing.T) {
	s := New(Options{XNum: 10, YNum: 2})
	got := s.EncodeKey(KeyEvent{Key: KeyUp, Action: KeyPress})
	require.Equal(t, "\x1b[A", string(got))

	feed(s, "\x1b[?1h") // DECCKM: application cursor keys
	got = s.EncodeKey(KeyEvent{Key: KeyUp, Action: KeyPress})
	require.Equal(t, "\x1bOA", string(got))
}

func TestEncodeKeyLegacyModifiers(t *testing.T) {
	s := New(Options{XNum: 10, YNum: 2})
	got := s.EncodeKey(KeyEvent{Key: KeyUp, Mods: ModShift, Action: KeyPress})
	require.Equal(t, "\x1b[1;2A", string(got))
}

func TestEncodeKeyCtrlRune(t *testing.T) {
	s := New(Options{XNum: 10, YNum: 2})
	got := s.EncodeKey(KeyEvent{Key: KeyRune, Rune: 'c', Mods: ModCtrl, Action: KeyPress})
	require.Equal(t, []byte{0x03}, got)
}

func TestEncodeKeyCSIuProtocol(t *testing.T) {
	s := New(Options{XNum: 10, YNum: 2})
	s.PushKeyboardFlags(KeyboardDisambiguateEscape)

	got := s.EncodeKey(KeyEvent{Key: KeyRune, Rune: 'a', Action: KeyPress})
	require.Equal(t, "\x1b[97u", string(got))

	got = s.EncodeKey(KeyEvent{Key: KeyRune, Rune: 'a', Mods: ModShift, Action: KeyPress})
	require.Equal(t, "\x1b[97;2u", string(got))
}

func TestKeyboardFlagsPushPop(t *testing.T) {
	s := New(Options{XNum: 10, YNum: 2})
	require.Equal(t, KeyboardFlags(0), s.modes.KeyboardFlags)

	s.PushKeyboardFlags(KeyboardReportEventTypes)
	require.Equal(t, KeyboardReportEventTypes, s.modes.KeyboardFlags)

	s.PushKeyboardFlags(KeyboardDisambiguateEscape)
	require.Equal(t, KeyboardDisambiguateEscape, s.modes.KeyboardFlags)

	s.PopKeyboardFlags(1)
	require.Equal(t, KeyboardReportEventTypes, s.modes.KeyboardFlags)

	s.PopKeyboardFlags(1)
	require.Equal(t, KeyboardFlags(0), s.modes.KeyboardFlags)
}

// Progressive-enhancement keyboard flags are pushed/popped via CSI
// sequences too (CSI > flags u / CSI < n u).
func TestKeyboardFlagsViaCSI(t *testing.T) {
	s := New(Options{XNum: 10, YNum: 2})
	feed(s, "\x1b[>1u")
	require.Equal(t, KeyboardDisambiguateEscape, s.modes.KeyboardFlags)
	feed(s, "\x1b[<u")
	require.Equal(t, KeyboardFlags(0), s.modes.KeyboardFlags)
}
