package cellbuf

import "testing"

func TestLineBufLineMapIsPermutation(t *testing.T) {
	lb := NewLineBuf(10, 5, NewCombiningPool())
	seen := make(map[uint16]bool)
	for _, slot := range lb.lineMap {
		if seen[slot] {
			t.Fatalf("line_map is not a permutation: slot %d repeats", slot)
		}
		seen[slot] = true
	}
	if len(seen) != 5 {
		t.Fatalf("expected 5 distinct slots, got %d", len(seen))
	}
}

func TestLineBufIndexScrollsWithoutCopyingCells(t *testing.T) {
	lb := NewLineBuf(3, 3, NewCombiningPool())
	lb.LineAt(0).SetChar(0, 'A', 1, StyleCell{})
	lb.LineAt(1).SetChar(0, 'B', 1, StyleCell{})
	lb.LineAt(2).SetChar(0, 'C', 1, StyleCell{})

	evicted := lb.Index(0, 2, StyleCell{})
	if evicted.Content[0].Base != 'A' {
		t.Fatalf("evicted row should be the old top row, got %q", evicted.Content[0].Base)
	}
	if lb.LineAt(0).Content[0].Base != 'B' || lb.LineAt(1).Content[0].Base != 'C' {
		t.Fatal("rows did not shift up correctly")
	}
	if lb.LineAt(2).Content[0].Base != ' ' && lb.LineAt(2).Content[0].Base != 0 {
		t.Fatalf("new bottom row should be blank, got %q", lb.LineAt(2).Content[0].Base)
	}
}

func TestLineBufReverseIndexIsInverse(t *testing.T) {
	lb := NewLineBuf(3, 3, NewCombiningPool())
	lb.LineAt(0).SetChar(0, 'A', 1, StyleCell{})
	lb.LineAt(1).SetChar(0, 'B', 1, StyleCell{})
	lb.LineAt(2).SetChar(0, 'C', 1, StyleCell{})

	lb.Index(0, 2, StyleCell{})
	lb.ReverseIndex(0, 2, StyleCell{})

	if lb.LineAt(1).Content[0].Base != 'B' || lb.LineAt(2).Content[0].Base != 'C' {
		t.Fatal("reverse-index did not restore B/C rows")
	}
}

func TestLineBufInsertDeleteLines(t *testing.T) {
	lb := NewLineBuf(3, 4, NewCombiningPool())
	for y, r := range []rune{'A', 'B', 'C', 'D'} {
		lb.LineAt(y).SetChar(0, r, 1, StyleCell{})
	}
	lb.InsertLines(1, 1, 3, StyleCell{})
	if lb.LineAt(0).Content[0].Base != 'A' {
		t.Fatal("row 0 should be untouched by an insert at row 1")
	}
	if lb.LineAt(2).Content[0].Base != 'B' {
		t.Fatalf("row 2 should now hold old row 1's content, got %q", lb.LineAt(2).Content[0].Base)
	}

	lb.DeleteLines(1, 1, 3, StyleCell{})
	if lb.LineAt(1).Content[0].Base != 'B' {
		t.Fatalf("deleting the inserted blank should restore B at row 1, got %q", lb.LineAt(1).Content[0].Base)
	}
}

func TestLineBufRewrapReflowsLogicalLine(t *testing.T) {
	pool := NewCombiningPool()
	src := NewLineBuf(3, 2, pool)
	// Row 0: "ABC", Row 1 continues it: "DEF" (one logical line "ABCDEF")
	for i, r := range []rune{'A', 'B', 'C'} {
		src.LineAt(0).SetChar(i, r, 1, StyleCell{})
	}
	for i, r := range []rune{'D', 'E', 'F'} {
		src.LineAt(1).SetChar(i, r, 1, StyleCell{})
	}
	attrs := src.LineAt(1).Attrs
	attrs.SetContinued(true)

	dst := NewLineBuf(6, 1, pool)
	sink := &fakeSink{}
	_, _ = src.Rewrap(dst, sink, 0, 0)

	got := string(dst.LineAt(0).Content[0].Base) + string(dst.LineAt(0).Content[1].Base) +
		string(dst.LineAt(0).Content[2].Base) + string(dst.LineAt(0).Content[3].Base) +
		string(dst.LineAt(0).Content[4].Base) + string(dst.LineAt(0).Content[5].Base)
	if got != "ABCDEF" {
		t.Fatalf("rewrap did not re-flow logical line correctly, got %q", got)
	}
}

type fakeSink struct {
	rows [][]ContentCell
}

func (f *fakeSink) AppendRow(content []ContentCell, style []StyleCell, attrs LineAttrs) {
	f.rows = append(f.rows, content)
}
