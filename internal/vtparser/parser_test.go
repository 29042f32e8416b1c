package vtparser

import "testing"

type event struct {
	kind    string
	b       byte
	params  []Param
	private byte
	inters  []byte
	final   byte
	payload string
}

type recorder struct {
	events []event
	dcsBuf []byte
}

func (r *recorder) Print(b byte) { r.events = append(r.events, event{kind: "print", b: b}) }
func (r *recorder) Execute(b byte) { r.events = append(r.events, event{kind: "execute", b: b}) }
func (r *recorder) EscDispatch(inters []byte, final byte) {
	r.events = append(r.events, event{kind: "esc", inters: inters, final: final})
}
func (r *recorder) CSIDispatch(params []Param, private byte, inters []byte, final byte) {
	r.events = append(r.events, event{kind: "csi", params: params, private: private, inters: inters, final: final})
}
func (r *recorder) OSCDispatch(payload []byte) {
	r.events = append(r.events, event{kind: "osc", payload: string(payload)})
}
func (r *recorder) DCSStart(params []Param, private byte, inters []byte, final byte) {
	r.dcsBuf = r.dcsBuf[:0]
	r.events = append(r.events, event{kind: "dcsstart", params: params, private: private, inters: inters, final: final})
}
func (r *recorder) DCSPut(b byte) { r.dcsBuf = append(r.dcsBuf, b) }
func (r *recorder) DCSEnd() {
	r.events = append(r.events, event{kind: "dcsend", payload: string(r.dcsBuf)})
}
func (r *recorder) APCDispatch(payload []byte) {
	r.events = append(r.events, event{kind: "apc", payload: string(payload)})
}
func (r *recorder) PMDispatch(payload []byte) {
	r.events = append(r.events, event{kind: "pm", payload: string(payload)})
}
func (r *recorder) SOSDispatch(payload []byte) {
	r.events = append(r.events, event{kind: "sos", payload: string(payload)})
}

func lastEvent(r *recorder) event {
	if len(r.events) == 0 {
		return event{}
	}
	return r.events[len(r.events)-1]
}

func TestParserPrintsGroundBytes(t *testing.T) {
	p := New()
	r := &recorder{}
	p.Parse([]byte("hi"), r)
	if len(r.events) != 2 || r.events[0].kind != "print" || r.events[0].b != 'h' || r.events[1].b != 'i' {
		t.Fatalf("events = %+v", r.events)
	}
}

func TestParserExecutesC0Control(t *testing.T) {
	p := New()
	r := &recorder{}
	p.Parse([]byte("a\nb"), r)
	if len(r.events) != 3 || r.events[1].kind != "execute" || r.events[1].b != '\n' {
		t.Fatalf("events = %+v", r.events)
	}
}

func TestParserBasicCSIDispatch(t *testing.T) {
	p := New()
	r := &recorder{}
	p.Parse([]byte("\x1b[31m"), r)
	ev := lastEvent(r)
	if ev.kind != "csi" || ev.final != 'm' || len(ev.params) != 1 || ev.params[0].Base != 31 {
		t.Fatalf("event = %+v", ev)
	}
}

func TestParserCSIMultipleParams(t *testing.T) {
	p := New()
	r := &recorder{}
	p.Parse([]byte("\x1b[1;31;40m"), r)
	ev := lastEvent(r)
	if len(ev.params) != 3 || ev.params[0].Base != 1 || ev.params[1].Base != 31 || ev.params[2].Base != 40 {
		t.Fatalf("params = %+v", ev.params)
	}
}

func TestParserCSISubparameters(t *testing.T) {
	p := New()
	r := &recorder{}
	p.Parse([]byte("\x1b[38:2:255:128:0m"), r)
	ev := lastEvent(r)
	if len(ev.params) != 1 {
		t.Fatalf("params = %+v", ev.params)
	}
	got := ev.params[0]
	if got.Base != 38 || len(got.Subs) != 4 || got.Subs[0] != 2 || got.Subs[1] != 255 || got.Subs[2] != 128 || got.Subs[3] != 0 {
		t.Fatalf("param = %+v", got)
	}
}

func TestParserCSIPrivateMarker(t *testing.T) {
	p := New()
	r := &recorder{}
	p.Parse([]byte("\x1b[?25h"), r)
	ev := lastEvent(r)
	if ev.private != '?' || ev.final != 'h' || ev.params[0].Base != 25 {
		t.Fatalf("event = %+v", ev)
	}
}

func TestParserCSIEmptyParamDefaultsZero(t *testing.T) {
	p := New()
	r := &recorder{}
	p.Parse([]byte("\x1b[;5m"), r)
	ev := lastEvent(r)
	if len(ev.params) != 2 || ev.params[0].Base != 0 || ev.params[1].Base != 5 {
		t.Fatalf("params = %+v", ev.params)
	}
}

func TestParserEscDispatch(t *testing.T) {
	p := New()
	r := &recorder{}
	p.Parse([]byte("\x1bc"), r)
	ev := lastEvent(r)
	if ev.kind != "esc" || ev.final != 'c' {
		t.Fatalf("event = %+v", ev)
	}
}

func TestParserOSCWithSTTerminator(t *testing.T) {
	p := New()
	r := &recorder{}
	p.Parse([]byte("\x1b]0;title\x1b\\"), r)
	ev := lastEvent(r)
	if ev.kind != "osc" || ev.payload != "0;title" {
		t.Fatalf("event = %+v", ev)
	}
}

func TestParserOSCWithBELTerminator(t *testing.T) {
	p := New()
	r := &recorder{}
	p.Parse([]byte("\x1b]0;title\x07"), r)
	ev := lastEvent(r)
	if ev.kind != "osc" || ev.payload != "0;title" {
		t.Fatalf("event = %+v", ev)
	}
}

func TestParserOSCOverflowDiscardedSilently(t *testing.T) {
	p := New()
	r := &recorder{}
	big := make([]byte, oscCap+10)
	for i := range big {
		big[i] = 'x'
	}
	p.Parse([]byte("\x1b]"), r)
	p.Parse(big, r)
	p.Parse([]byte("\x1b\\"), r)
	for _, ev := range r.events {
		if ev.kind == "osc" {
			t.Fatalf("expected oversized OSC to be discarded, got payload of len %d", len(ev.payload))
		}
	}
}

func TestParserDCSRoundTrip(t *testing.T) {
	p := New()
	r := &recorder{}
	p.Parse([]byte("\x1bP1$rhello\x1b\\"), r)
	var start, end *event
	for i := range r.events {
		if r.events[i].kind == "dcsstart" {
			start = &r.events[i]
		}
		if r.events[i].kind == "dcsend" {
			end = &r.events[i]
		}
	}
	if start == nil || end == nil {
		t.Fatalf("events = %+v", r.events)
	}
	if start.final != 'r' || start.params[0].Base != 1 {
		t.Fatalf("start = %+v", *start)
	}
	if end.payload != "hello" {
		t.Fatalf("end payload = %q", end.payload)
	}
}

func TestParserAPCDispatch(t *testing.T) {
	p := New()
	r := &recorder{}
	p.Parse([]byte("\x1b_Gpayload\x1b\\"), r)
	ev := lastEvent(r)
	if ev.kind != "apc" || ev.payload != "Gpayload" {
		t.Fatalf("event = %+v", ev)
	}
}

func TestParserPMAndSOSDispatch(t *testing.T) {
	p := New()
	r := &recorder{}
	p.Parse([]byte("\x1b^pm-data\x1b\\"), r)
	ev := lastEvent(r)
	if ev.kind != "pm" || ev.payload != "pm-data" {
		t.Fatalf("pm event = %+v", ev)
	}

	p2 := New()
	r2 := &recorder{}
	p2.Parse([]byte("\x1bXsos-data\x1b\\"), r2)
	ev2 := lastEvent(r2)
	if ev2.kind != "sos" || ev2.payload != "sos-data" {
		t.Fatalf("sos event = %+v", ev2)
	}
}

func TestParserCANAbortsMidSequence(t *testing.T) {
	p := New()
	r := &recorder{}
	p.Parse([]byte("\x1b[31\x18m"), r)
	for _, ev := range r.events {
		if ev.kind == "csi" {
			t.Fatalf("CAN should abort the CSI sequence, got %+v", ev)
		}
	}
	// 'm' after the abort is printed in GROUND.
	found := false
	for _, ev := range r.events {
		if ev.kind == "print" && ev.b == 'm' {
			found = true
		}
	}
	if !found {
		t.Fatalf("events = %+v", r.events)
	}
}

func TestParserFeedAcrossArbitraryChunkBoundaries(t *testing.T) {
	p := New()
	r := &recorder{}
	whole := []byte("\x1b[1;31mhello")
	for i := 0; i < len(whole); i++ {
		p.Parse(whole[i:i+1], r)
	}
	var csi *event
	var printed []byte
	for i := range r.events {
		if r.events[i].kind == "csi" {
			csi = &r.events[i]
		}
		if r.events[i].kind == "print" {
			printed = append(printed, r.events[i].b)
		}
	}
	if csi == nil || len(csi.params) != 2 {
		t.Fatalf("csi = %+v", csi)
	}
	if string(printed) != "hello" {
		t.Fatalf("printed = %q", printed)
	}
}

func TestParserEscInsideStringNotFollowedByBackslashStartsNewSequence(t *testing.T) {
	p := New()
	r := &recorder{}
	// OSC payload containing an ESC that turns out to start a fresh
	// CSI sequence rather than terminating via ST.
	p.Parse([]byte("\x1b]0;abc\x1b[31m"), r)
	var csi *event
	for i := range r.events {
		if r.events[i].kind == "csi" {
			csi = &r.events[i]
		}
	}
	if csi == nil || csi.final != 'm' {
		t.Fatalf("events = %+v", r.events)
	}
}
