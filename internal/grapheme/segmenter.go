package grapheme

import (
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// Segmenter implements a per-codepoint grapheme-cluster boundary
// primitive ("step(cp) -> is_break", "reset() restores the segmenter
// to start-of-text") on top of rivo/uniseg's incremental
// grapheme-cluster state machine (uniseg.FirstGraphemeCluster), rather
// than hand-maintaining UAX#29 break tables (Indic conjuncts, emoji
// modifier sequences, regional-indicator parity, …) ourselves.
//
// uniseg's API segments whole byte buffers; we adapt it to streaming
// single-codepoint input by growing a pending-cluster buffer one
// codepoint at a time and asking uniseg whether the cluster is still
// open. Unicode grapheme boundaries never require look-ahead beyond
// the immediately following codepoint, so this adaptation never needs
// to revise a boundary decision once made.
type Segmenter struct {
	pending []byte
	state   int
}

// NewSegmenter returns a Segmenter positioned at start-of-text.
func NewSegmenter() *Segmenter {
	return &Segmenter{state: -1}
}

// Step reports whether a grapheme cluster boundary falls immediately
// before cp (i.e. cp starts a new display cluster rather than
// extending the previous one).
func (s *Segmenter) Step(cp rune) (isBreak bool) {
	buf := make([]byte, utf8.RuneLen(cp))
	utf8.EncodeRune(buf, cp)

	if len(s.pending) == 0 {
		s.pending = buf
		return true // nothing preceded cp: it trivially starts a cluster
	}

	trial := append(append([]byte(nil), s.pending...), buf...)
	cluster, _, _, newState := uniseg.FirstGraphemeCluster(trial, s.state)
	if len(cluster) <= len(s.pending) {
		// The first cluster of `trial` ended at (or before) the
		// previously pending bytes: cp begins a new cluster.
		s.state = newState
		s.pending = buf
		return true
	}
	// cp extends the cluster still in progress.
	s.state = newState
	s.pending = trial
	return false
}

// Reset restores the segmenter to start-of-text.
func (s *Segmenter) Reset() {
	s.pending = nil
	s.state = -1
}
