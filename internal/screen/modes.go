package screen

// MouseProtocol selects which mouse-reporting wire format button/motion
// events are encoded as (Modes.MouseProtocol).
type MouseProtocol int

const (
	MouseProtocolNone MouseProtocol = iota
	MouseProtocolX10
	MouseProtocolUTF8
	MouseProtocolSGR
	MouseProtocolURXVT
	MouseProtocolSGRPixel
)

// MouseTrackingMode selects which events are reported at all, independent
// of which wire protocol encodes them.
type MouseTrackingMode int

const (
	MouseTrackingNone MouseTrackingMode = iota
	MouseTrackingX10Compat // report button-press only (mode 9)
	MouseTrackingNormal    // press+release (mode 1000)
	MouseTrackingButton    // press+release+drag while a button is held (mode 1002)
	MouseTrackingAny       // press+release+all motion (mode 1003)
)

// Modes is the ScreenModes bitset: every boolean mode a terminal tracks
// plus the current mouse tracking mode/protocol pair.
type Modes struct {
	IRM             bool // insert/replace mode
	DECTCEM         bool // cursor visible
	DECSCNM         bool // reverse video (whole screen)
	DECOM           bool // origin mode: cursor addressing relative to margins
	DECAWM          bool // autowrap
	DECCOLM         bool // 80/132 column mode
	BracketedPaste  bool
	FocusTracking   bool
	MouseTracking   MouseTrackingMode
	MouseProtocol   MouseProtocol
	KeyboardFlags   KeyboardFlags // progressive-enhancement keyboard protocol bits
	ApplicationCursorKeys bool
	ApplicationKeypad     bool
}

// NewModes returns the power-on default mode set: cursor visible,
// autowrap on, everything else off.
func NewModes() Modes {
	return Modes{DECTCEM: true, DECAWM: true}
}
