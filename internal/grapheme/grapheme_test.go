package grapheme

import "testing"

func TestSegmenterBasicBreaks(t *testing.T) {
	s := NewSegmenter()
	breaks := []bool{
		s.Step('a'),
		s.Step('b'),
	}
	if !breaks[0] || !breaks[1] {
		t.Fatalf("independent ASCII letters should each start a new cluster: %v", breaks)
	}
}

func TestSegmenterCombiningMarkNoBreak(t *testing.T) {
	s := NewSegmenter()
	if !s.Step('e') {
		t.Fatal("first codepoint must start a cluster")
	}
	if s.Step(0x0301) { // combining acute accent
		t.Fatal("combining mark must not start a new cluster")
	}
}

func TestSegmenterCRLFNoBreak(t *testing.T) {
	s := NewSegmenter()
	if !s.Step('\r') {
		t.Fatal("CR should start a cluster")
	}
	if s.Step('\n') {
		t.Fatal("no break inside CRLF")
	}
}

func TestSegmenterResetReturnsToStartOfText(t *testing.T) {
	s := NewSegmenter()
	s.Step('e')
	s.Step(0x0301)
	s.Reset()
	if !s.Step('a') {
		t.Fatal("after reset, next codepoint should start a fresh cluster")
	}
}

func TestWidthNarrowASCII(t *testing.T) {
	if w := Width("a", AmbiguousWidthAuto); w != 1 {
		t.Fatalf("width('a') = %d, want 1", w)
	}
}

func TestWidthWideCJK(t *testing.T) {
	if w := Width("猫", AmbiguousWidthAuto); w != 2 {
		t.Fatalf("width('猫') = %d, want 2", w)
	}
}

func TestWidthCombiningMarkIsZero(t *testing.T) {
	if w := Width("́", AmbiguousWidthAuto); w != 0 {
		t.Fatalf("width of a combining mark alone = %d, want 0", w)
	}
}
