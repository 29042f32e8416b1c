package vtparser

type state int

const (
	stateGround state = iota
	stateEscape
	stateEscapeIntermediate
	stateCSIEntry
	stateCSIParam
	stateCSIIntermediate
	stateCSIIgnore
	stateOSCString
	stateDCSEntry
	stateDCSParam
	stateDCSIntermediate
	stateDCSPassthrough
	stateDCSIgnore
	stateAPCString
	stateSOSPMString
	stateStringMaybeST // after ESC inside a string sequence, awaiting '\' to confirm ST
)

// stringKind records which string-collecting sequence stateStringMaybeST
// should resume or terminate, since several string states share that
// one "saw ESC, is it ST?" sub-state.
type stringKind int

const (
	stringNone stringKind = iota
	stringOSC
	stringDCS
	stringAPC
	stringPM
	stringSOS
)

// oscCap is the hard cap on OSC payload size; sequences exceeding it are discarded silently.
const oscCap = 1 << 20

// Parser is the byte-to-event VT state machine described by the
// VT500 diagram with xterm extensions. It never fails hard: unknown
// or malformed sequences are discarded without invoking any Handler
// method that would mutate caller state.
type Parser struct {
	st state

	params    []Param
	curSubs   []int
	haveParam bool
	private   byte
	inters    []byte

	strBuf     []byte
	strKind    stringKind
	strDiscard bool // set once strBuf exceeds oscCap
}

// New returns a Parser ready to process bytes from GROUND.
func New() *Parser { return &Parser{st: stateGround} }

// Parse feeds a byte slice through the state machine, invoking h for
// every recognized event. The feeder may deliver any slice boundary
// — Parse carries no requirement about boundaries aligning
// with sequences.
func (p *Parser) Parse(data []byte, h Handler) {
	for _, b := range data {
		p.step(b, h)
	}
}

func (p *Parser) step(b byte, h Handler) {
	// C0 controls other than ESC are "executed" from (almost) any
	// state per the VT500 ANYWHERE transitions, except while inside a
	// string-collecting state where none is executed (CAN/SUB abort,
	// ESC/BEL terminate, and the rest are collected as payload) so
	// embedded control bytes in, e.g., a DCS payload don't leak through
	// as executed controls.
	if p.inStringState() {
		p.stepString(b, h)
		return
	}

	switch {
	case b == 0x1B: // ESC
		p.resetAccumulators()
		p.st = stateEscape
		return
	case b == 0x18 || b == 0x1A: // CAN, SUB: abort to ground
		p.resetAccumulators()
		p.st = stateGround
		return
	case b < 0x20 && b != 0x1B:
		// C0 control: executes immediately without disturbing whatever
		// sequence is mid-flight (matches real terminals tolerating
		// stray control bytes inside CSI sequences).
		h.Execute(b)
		return
	}

	switch p.st {
	case stateGround:
		h.Print(b)
	case stateEscape:
		p.handleEscape(b, h)
	case stateEscapeIntermediate:
		p.handleEscapeIntermediate(b, h)
	case stateCSIEntry, stateCSIParam:
		p.handleCSI(b, h)
	case stateCSIIntermediate:
		p.handleCSIIntermediate(b, h)
	case stateCSIIgnore:
		p.handleCSIIgnore(b)
	case stateDCSEntry, stateDCSParam:
		p.handleDCSHeader(b, h)
	case stateDCSIntermediate:
		p.handleDCSIntermediate(b, h)
	default:
		// Shouldn't happen; fail safe to ground rather than panic.
		p.st = stateGround
	}
}

func (p *Parser) inStringState() bool {
	switch p.st {
	case stateOSCString, stateDCSPassthrough, stateDCSIgnore, stateAPCString, stateSOSPMString, stateStringMaybeST:
		return true
	}
	return false
}

func (p *Parser) resetAccumulators() {
	p.params = p.params[:0]
	p.curSubs = p.curSubs[:0]
	p.haveParam = false
	p.private = 0
	p.inters = p.inters[:0]
}

func (p *Parser) resetString() {
	p.strBuf = p.strBuf[:0]
	p.strDiscard = false
}

// --- ESCAPE ---

func (p *Parser) handleEscape(b byte, h Handler) {
	switch {
	case b == '[':
		p.st = stateCSIEntry
	case b == ']':
		p.strKind = stringOSC
		p.resetString()
		p.st = stateOSCString
	case b == 'P':
		p.strKind = stringDCS
		p.resetAccumulators()
		p.resetString()
		p.st = stateDCSEntry
	case b == '_':
		p.strKind = stringAPC
		p.resetString()
		p.st = stateAPCString
	case b == '^':
		p.strKind = stringPM
		p.resetString()
		p.st = stateSOSPMString
	case b == 'X':
		p.strKind = stringSOS
		p.resetString()
		p.st = stateSOSPMString
	case b >= 0x20 && b <= 0x2F:
		p.inters = append(p.inters, b)
		p.st = stateEscapeIntermediate
	case b >= 0x30 && b <= 0x7E:
		h.EscDispatch(append([]byte(nil), p.inters...), b)
		p.st = stateGround
	default:
		p.st = stateGround
	}
}

func (p *Parser) handleEscapeIntermediate(b byte, h Handler) {
	switch {
	case b >= 0x20 && b <= 0x2F:
		p.inters = append(p.inters, b)
	case b >= 0x30 && b <= 0x7E:
		h.EscDispatch(append([]byte(nil), p.inters...), b)
		p.st = stateGround
	default:
		p.st = stateGround
	}
}

// --- CSI ---

func (p *Parser) handleCSI(b byte, h Handler) {
	switch {
	case b == '?' || b == '>' || b == '=' || b == '<':
		if len(p.params) == 0 && !p.haveParam && p.private == 0 {
			p.private = b
			p.st = stateCSIParam
			return
		}
		p.st = stateCSIIgnore
	case b >= '0' && b <= '9':
		p.haveParam = true
		p.curSubs = appendDigit(p.curSubs, b)
		p.st = stateCSIParam
	case b == ':':
		p.flushSub()
		p.st = stateCSIParam
	case b == ';':
		p.flushParamSep()
		p.st = stateCSIParam
	case b >= 0x20 && b <= 0x2F:
		p.flushParamFinal()
		p.inters = append(p.inters, b)
		p.st = stateCSIIntermediate
	case b >= 0x40 && b <= 0x7E:
		p.flushParamFinal()
		h.CSIDispatch(append([]Param(nil), p.params...), p.private, append([]byte(nil), p.inters...), b)
		p.st = stateGround
	default:
		p.st = stateCSIIgnore
	}
}

func (p *Parser) handleCSIIntermediate(b byte, h Handler) {
	switch {
	case b >= 0x20 && b <= 0x2F:
		p.inters = append(p.inters, b)
	case b >= 0x40 && b <= 0x7E:
		p.flushParamFinal()
		h.CSIDispatch(append([]Param(nil), p.params...), p.private, append([]byte(nil), p.inters...), b)
		p.st = stateGround
	default:
		p.st = stateCSIIgnore
	}
}

func (p *Parser) handleCSIIgnore(b byte) {
	if b >= 0x40 && b <= 0x7E {
		p.st = stateGround
	}
}

// appendDigit folds an ASCII digit into the last (or a new, on first
// call since curSubs was cleared) accumulator slot, base-10.
func appendDigit(subs []int, b byte) []int {
	d := int(b - '0')
	if len(subs) == 0 {
		return []int{d}
	}
	subs[len(subs)-1] = subs[len(subs)-1]*10 + d
	return subs
}

// flushSub closes the current subparameter (on ':') and opens a new
// accumulator slot within the same base parameter.
func (p *Parser) flushSub() {
	p.curSubs = append(p.curSubs, 0)
}

// closeParam appends the currently-accumulated parameter (if any) to
// params and clears the accumulator.
func (p *Parser) closeParam() {
	if len(p.curSubs) == 0 {
		p.curSubs = []int{0}
	}
	param := Param{Base: p.curSubs[0]}
	if len(p.curSubs) > 1 {
		param.Subs = append([]int(nil), p.curSubs[1:]...)
	}
	p.params = append(p.params, param)
	p.curSubs = p.curSubs[:0]
	p.haveParam = false
}

// flushParamSep handles a ';' separator: it always closes a parameter
// slot, defaulting to 0 when nothing was typed since the previous
// separator.
func (p *Parser) flushParamSep() {
	p.closeParam()
}

// flushParamFinal handles the parameter-accumulation boundary at an
// intermediate or final byte: unlike a ';' separator, reaching the end
// of the parameter string with nothing typed at all yields zero
// parameters rather than a spurious single zero (e.g. plain "CSI m").
func (p *Parser) flushParamFinal() {
	if !p.haveParam && len(p.curSubs) == 0 {
		return
	}
	p.closeParam()
}

// --- DCS ---

func (p *Parser) handleDCSHeader(b byte, h Handler) {
	switch {
	case b == '?' || b == '>' || b == '=' || b == '<':
		if len(p.params) == 0 && !p.haveParam && p.private == 0 {
			p.private = b
			p.st = stateDCSParam
			return
		}
		p.st = stateDCSIgnore
	case b >= '0' && b <= '9':
		p.haveParam = true
		p.curSubs = appendDigit(p.curSubs, b)
		p.st = stateDCSParam
	case b == ':':
		p.flushSub()
		p.st = stateDCSParam
	case b == ';':
		p.flushParamSep()
		p.st = stateDCSParam
	case b >= 0x20 && b <= 0x2F:
		p.flushParamFinal()
		p.inters = append(p.inters, b)
		p.st = stateDCSIntermediate
	case b >= 0x40 && b <= 0x7E:
		p.flushParamFinal()
		h.DCSStart(append([]Param(nil), p.params...), p.private, append([]byte(nil), p.inters...), b)
		p.resetString()
		p.st = stateDCSPassthrough
	default:
		p.st = stateDCSIgnore
	}
}

func (p *Parser) handleDCSIntermediate(b byte, h Handler) {
	switch {
	case b >= 0x20 && b <= 0x2F:
		p.inters = append(p.inters, b)
	case b >= 0x40 && b <= 0x7E:
		p.flushParamFinal()
		h.DCSStart(append([]Param(nil), p.params...), p.private, append([]byte(nil), p.inters...), b)
		p.resetString()
		p.st = stateDCSPassthrough
	default:
		p.st = stateDCSIgnore
	}
}

// --- string-collecting states (OSC/DCS passthrough/APC/SOS-PM) ---

func (p *Parser) stepString(b byte, h Handler) {
	if p.st == stateStringMaybeST {
		if b == '\\' {
			p.finishString(h)
			p.st = stateGround
			return
		}
		// Not a valid ST after all: the ESC we saw starts a fresh
		// sequence. Abandon the string, discarding its payload, and
		// reprocess b from ESCAPE state as if ESC had just been seen.
		p.resetAccumulators()
		p.st = stateEscape
		p.step2AfterAbandonedST(b, h)
		return
	}

	switch b {
	case 0x1B: // possible ST
		p.st = stateStringMaybeST
		return
	case 0x07: // BEL also terminates string sequences
		p.finishString(h)
		p.st = stateGround
		return
	case 0x18, 0x1A: // CAN, SUB abort
		p.resetString()
		p.st = stateGround
		return
	}

	if p.st == stateDCSIgnore {
		return
	}
	if p.strDiscard {
		return
	}
	if len(p.strBuf) >= oscCap {
		p.strDiscard = true
		p.strBuf = p.strBuf[:0]
		return
	}
	p.strBuf = append(p.strBuf, b)
	if p.st == stateDCSPassthrough {
		h.DCSPut(b)
	}
}

// step2AfterAbandonedST reprocesses b as the first byte after a fresh
// ESC, for the rare case where ESC appeared inside a string sequence
// but was not followed by '\'.
func (p *Parser) step2AfterAbandonedST(b byte, h Handler) {
	p.handleEscape(b, h)
}

func (p *Parser) finishString(h Handler) {
	if p.strDiscard {
		if p.strKind == stringDCS {
			h.DCSEnd()
		}
		return
	}
	payload := append([]byte(nil), p.strBuf...)
	switch p.strKind {
	case stringOSC:
		h.OSCDispatch(payload)
	case stringDCS:
		h.DCSEnd()
	case stringAPC:
		h.APCDispatch(payload)
	case stringPM:
		h.PMDispatch(payload)
	case stringSOS:
		h.SOSDispatch(payload)
	}
}

// ParamInt returns params[i].Base, or def if params has no entry at
// index i or that entry's value is 0.
func ParamInt(params []Param, i, def int) int {
	if i < 0 || i >= len(params) {
		return def
	}
	if params[i].Base == 0 {
		return def
	}
	return params[i].Base
}

// ParamRaw returns the raw (possibly-zero) base value at index i, or
// def if there's no such parameter at all (distinguishing "explicit
// 0" from "absent" where a CSI handler needs that, e.g. SGR 0 vs no
// parameters).
func ParamRaw(params []Param, i, def int) int {
	if i < 0 || i >= len(params) {
		return def
	}
	return params[i].Base
}
