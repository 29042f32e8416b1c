package screen

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeMouseNotReportedWhenTrackingOff(t *testing.T) {
	s := New(Options{XNum: 10, YNum: 2})
	got := s.EncodeMouse(MouseEvent{Button: MouseButtonLeft, Kind: MousePress, X: 3, Y: 4})
	require.Nil(t, got)
}

func TestEncodeMouseSGR(t *testing.T) {
	s := New(Options{XNum: 10, YNum: 2})
	feed(s, "\x1b[?1000h") // normal tracking
	feed(s, "\x1b[?1006h") // SGR protocol

	got := s.EncodeMouse(MouseEvent{Button: MouseButtonLeft, Kind: MousePress, X: 3, Y: 4})
	require.Equal(t, "\x1b[<0;3;4M", string(got))

	got = s.EncodeMouse(MouseEvent{Button: MouseButtonLeft, Kind: MouseRelease, X: 3, Y: 4})
	require.Equal(t, "\x1b[<0;3;4m", string(got))
}

func TestEncodeMouseX10Compat(t *testing.T) {
	s := New(Options{XNum: 10, YNum: 2})
	feed(s, "\x1b[?9h")

	got := s.EncodeMouse(MouseEvent{Button: MouseButtonLeft, Kind: MousePress, X: 1, Y: 1})
	require.Equal(t, []byte{0x1b, '[', 'M', 32, 33, 33}, got)

	// X10-compat only reports presses.
	got = s.EncodeMouse(MouseEvent{Button: MouseButtonLeft, Kind: MouseRelease, X: 1, Y: 1})
	require.Nil(t, got)
}

func TestEncodeMouseMotionRequiresAnyTracking(t *testing.T) {
	s := New(Options{XNum: 10, YNum: 2})
	feed(s, "\x1b[?1002h\x1b[?1006h") // button-event tracking

	// motion with no button held is not reported under button tracking.
	got := s.EncodeMouse(MouseEvent{Button: MouseButtonNone, Kind: MouseMotion, X: 1, Y: 1})
	require.Nil(t, got)

	feed(s, "\x1b[?1003h") // any-motion tracking
	got = s.EncodeMouse(MouseEvent{Button: MouseButtonNone, Kind: MouseMotion, X: 1, Y: 1})
	require.NotNil(t, got)
}
