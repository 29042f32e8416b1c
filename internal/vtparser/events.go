// Package vtparser implements the byte-to-semantic-event VT state
// machine: GROUND/ESCAPE/CSI*/OSC/DCS*/APC/SOS_PM_STRING
// per the VT500 diagram with xterm extensions.
package vtparser

// Param is one CSI/DCS parameter with its optional colon-separated
// subparameters, e.g. "38:2:255:128:0" becomes {Base: 38, Subs: [2,
// 255, 128, 0]} — general enough for any CSI/DCS parameter, not just SGR.
type Param struct {
	Base int
	Subs []int
}

// Handler receives the semantic events the parser produces. Each
// terminated sequence produces exactly one dispatch call.
// Implementations must not retain the byte slices passed to OSC/DCS/
// APC/PM/SOS handlers beyond the call — the parser reuses its
// accumulation buffer.
type Handler interface {
	// Print is called for a GROUND-state byte that is not part of any
	// control sequence; codepoint decoding happens at the next stage
	// up.
	Print(b byte)

	// Execute is called for a C0 control character executed
	// immediately (BEL, BS, TAB, LF, CR, …).
	Execute(b byte)

	// EscDispatch is called for a terminated ESC sequence (one that is
	// not a CSI/OSC/DCS/APC/PM/SOS introducer).
	EscDispatch(intermediates []byte, final byte)

	// CSIDispatch is called for a terminated CSI sequence. private is
	// one of 0, '?', '>', '=', '<'.
	CSIDispatch(params []Param, private byte, intermediates []byte, final byte)

	// OSCDispatch is called with the full OSC payload (the bytes
	// between "ESC ]" and the terminator, ST or BEL).
	OSCDispatch(payload []byte)

	// DCSStart/DCSPut/DCSEnd bracket a Device Control String: Start
	// carries the same parameter/private/intermediate/final shape as
	// CSI (the DCS introducer ends with a final byte the way CSI
	// does), Put streams payload bytes, End marks termination.
	DCSStart(params []Param, private byte, intermediates []byte, final byte)
	DCSPut(b byte)
	DCSEnd()

	// APCDispatch, PMDispatch and SOSDispatch carry the payload of an
	// Application Program Command / Privacy Message / Start Of String
	// sequence respectively.
	APCDispatch(payload []byte)
	PMDispatch(payload []byte)
	SOSDispatch(payload []byte)
}
