package grapheme

import (
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/width"
)

// AmbiguousWidthMode controls how East-Asian-Width "Ambiguous" class
// codepoints are measured, backed by the real Unicode property tables
// (golang.org/x/text/width, github.com/mattn/go-runewidth) instead of
// a hand-maintained range list.
type AmbiguousWidthMode int

const (
	AmbiguousWidthAuto AmbiguousWidthMode = iota
	AmbiguousWidthNarrow
	AmbiguousWidthWide
)

// Width returns the on-screen cell width (0, 1 or 2) of a finished
// grapheme cluster, per its base codepoint's East Asian Width
// property.
func Width(cluster string, mode AmbiguousWidthMode) int {
	r, _ := utf8.DecodeRuneInString(cluster)
	if r == utf8.RuneError && len(cluster) == 0 {
		return 0
	}
	// Unambiguously wide/fullwidth codepoints are always 2 cells wide,
	// independent of mode; only the Ambiguous class is policy-driven.
	if k := width.LookupRune(r).Kind(); k == width.EastAsianWide || k == width.EastAsianFullwidth {
		return 2
	}

	cond := runewidth.NewCondition()
	switch mode {
	case AmbiguousWidthWide:
		cond.EastAsianWidth = true
	case AmbiguousWidthNarrow:
		cond.EastAsianWidth = false
	default:
		// Auto: ambiguous-width characters stay narrow unless the
		// caller opts into AmbiguousWidthWide.
		cond.EastAsianWidth = false
	}
	return cond.RuneWidth(r)
}
