package cellbuf

import "testing"

func newTestLine(xnum int) (Line, *CombiningPool) {
	pool := NewCombiningPool()
	var attrs LineAttrs
	return Line{
		Content: make([]ContentCell, xnum),
		Style:   make([]StyleCell, xnum),
		Attrs:   &attrs,
		Marks:   pool,
	}, pool
}

func TestLineSetCharWideAtRightEdge(t *testing.T) {
	// 3-cell line: a wide char written at the last column does not fit
	// and is replaced by a single blank rather than split across the
	// edge (moving it to the next row is the Screen's job).
	line, _ := newTestLine(3)
	line.SetChar(0, 'A', 1, StyleCell{})
	line.SetChar(2, '猫', 2, StyleCell{}) // doesn't fit: x=2, xnum-1=2

	if line.Content[2].Base != ' ' {
		t.Fatalf("wide char at last column should fall back to blank, got %q", line.Content[2].Base)
	}
}

func TestLineSetCharWideCreatesSecondHalf(t *testing.T) {
	line, _ := newTestLine(3)
	line.SetChar(0, '猫', 2, StyleCell{})

	if line.Content[0].Base != '猫' {
		t.Fatalf("base cell mismatch: %q", line.Content[0].Base)
	}
	if line.Style[0].Attrs.Width() != WidthWideFirst {
		t.Fatalf("expected wide-first, got width %d", line.Style[0].Attrs.Width())
	}
	if line.Style[1].Attrs.Width() != WidthEmpty {
		t.Fatalf("expected second half width=0, got %d", line.Style[1].Attrs.Width())
	}
}

func TestLineAddCombiningCharIdempotent(t *testing.T) {
	line, pool := newTestLine(3)
	line.SetChar(0, 'e', 1, StyleCell{})
	line.AddCombiningChar(0, 0x0301)
	line.AddCombiningChar(0, 0x0301) // applying the same mark twice is a no-op

	count := 0
	for _, m := range line.Content[0].Marks {
		if m != noMark {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("duplicate mark should not occupy a second slot, got %d filled slots", count)
	}
	if pool.Lookup(line.Content[0].Marks[0]) != 0x0301 {
		t.Fatal("first mark should be U+0301")
	}
}

func TestLineAddCombiningCharDropsWhenFull(t *testing.T) {
	line, _ := newTestLine(2)
	line.SetChar(0, 'a', 1, StyleCell{})
	for _, r := range []rune{0x0300, 0x0301, 0x0302, 0x0303} {
		line.AddCombiningChar(0, r)
	}
	for i, m := range line.Content[0].Marks {
		if m == noMark {
			t.Fatalf("slot %d unexpectedly empty", i)
		}
	}
}

func TestLineRightShiftAndLeftShift(t *testing.T) {
	line, _ := newTestLine(5)
	for i, r := range []rune{'a', 'b', 'c', 'd', 'e'} {
		line.SetChar(i, r, 1, StyleCell{})
	}
	line.RightShift(1, 2, StyleCell{})
	want := []rune{'a', ' ', ' ', 'b', 'c'}
	for i, w := range want {
		if line.Content[i].Base != w {
			t.Fatalf("after RightShift: cell %d = %q, want %q", i, line.Content[i].Base, w)
		}
	}

	line2, _ := newTestLine(5)
	for i, r := range []rune{'a', 'b', 'c', 'd', 'e'} {
		line2.SetChar(i, r, 1, StyleCell{})
	}
	line2.LeftShift(1, 2, StyleCell{})
	want2 := []rune{'a', 'd', 'e', ' ', ' '}
	for i, w := range want2 {
		if line2.Content[i].Base != w {
			t.Fatalf("after LeftShift: cell %d = %q, want %q", i, line2.Content[i].Base, w)
		}
	}
}

func TestLineLeftShiftClearsSplitWidePair(t *testing.T) {
	line, _ := newTestLine(4)
	line.SetChar(0, 'a', 1, StyleCell{})
	line.SetChar(1, '猫', 2, StyleCell{}) // occupies columns 1-2
	line.SetChar(3, 'd', 1, StyleCell{})

	line.LeftShift(2, 1, StyleCell{}) // would otherwise expose the second half alone

	if line.Content[1].Base == '猫' && line.Style[1].Attrs.Width() == WidthWideFirst {
		t.Fatal("wide pair split across shift boundary should have been cleared")
	}
}

func TestLineClear(t *testing.T) {
	line, _ := newTestLine(4)
	for i, r := range []rune{'a', 'b', 'c', 'd'} {
		line.SetChar(i, r, 1, StyleCell{})
	}
	line.Clear(1, 2, ' ', StyleCell{})
	if line.Content[0].Base != 'a' || line.Content[3].Base != 'd' {
		t.Fatal("Clear touched cells outside its range")
	}
	if line.Content[1].Base != ' ' || line.Content[2].Base != ' ' {
		t.Fatal("Clear did not blank its range")
	}
}
