package selection

import (
	"strings"
	"testing"

	"github.com/kovidgoyal/kittycore/internal/cellbuf"
)

// fakeGrid is a flat, in-memory Source for testing: rows[0] is the
// oldest history line, rows[history:] are the visible grid.
type fakeGrid struct {
	xnum, ynum, history int
	rows                []string
	continued           map[int]bool // row index (0-based, oldest-first) -> IsContinued
}

func newFakeGrid(xnum, ynum int, rows []string, continued map[int]bool) *fakeGrid {
	return &fakeGrid{xnum: xnum, ynum: ynum, history: len(rows) - ynum, rows: rows, continued: continued}
}

func (g *fakeGrid) XNum() int          { return g.xnum }
func (g *fakeGrid) YNum() int          { return g.ynum }
func (g *fakeGrid) HistoryCount() int  { return g.history }
func (g *fakeGrid) LineAt(y int) cellbuf.Line {
	idx := y + g.history
	content := make([]cellbuf.ContentCell, g.xnum)
	s := g.rows[idx]
	for i, r := range []rune(s) {
		if i >= g.xnum {
			break
		}
		content[i] = cellbuf.ContentCell{Base: r}
	}
	for i := len(s); i < g.xnum; i++ {
		content[i] = cellbuf.ContentCell{Base: ' '}
	}
	var attrs cellbuf.LineAttrs
	if g.continued[idx] {
		attrs.SetContinued(true)
	}
	return cellbuf.Line{Content: content, Style: make([]cellbuf.StyleCell, g.xnum), Attrs: &attrs}
}

func TestSelectionCellModeSingleRow(t *testing.T) {
	grid := newFakeGrid(10, 2, []string{"hello world", "second line"}, nil)
	sel := New(Config{})
	sel.Start(1, 0, false, Cell)
	sel.Update(4, 0, false, true)
	got := sel.Text(grid)
	if got != "ello" {
		t.Fatalf("got %q", got)
	}
}

func TestSelectionCellModeMultiRow(t *testing.T) {
	grid := newFakeGrid(5, 2, []string{"abcde", "fghij"}, nil)
	sel := New(Config{})
	sel.Start(3, 0, false, Cell)
	sel.Update(1, 1, false, true)
	got := sel.Text(grid)
	if got != "de\nfg" {
		t.Fatalf("got %q", got)
	}
}

func TestSelectionJoinsWrappedRowsWithoutNewline(t *testing.T) {
	grid := newFakeGrid(3, 2, []string{"abc", "def"}, map[int]bool{1: true})
	sel := New(Config{})
	sel.Start(0, 0, false, Cell)
	sel.Update(2, 1, false, true)
	got := sel.Text(grid)
	if got != "abcdef" {
		t.Fatalf("wrapped rows should join without newline, got %q", got)
	}
}

func TestSelectionWordModeSnapsToBoundaries(t *testing.T) {
	grid := newFakeGrid(20, 1, []string{"the quick brown fox"}, nil)
	sel := New(Config{})
	sel.Start(6, 0, false, Word) // inside "quick"
	sel.Update(6, 0, false, true)
	got := sel.Text(grid)
	if got != "quick" {
		t.Fatalf("got %q", got)
	}
}

func TestSelectionLineModeSelectsWholeLogicalLine(t *testing.T) {
	grid := newFakeGrid(3, 2, []string{"abc", "def"}, map[int]bool{1: true})
	sel := New(Config{})
	sel.Start(1, 0, false, Line)
	sel.Update(1, 0, false, true)
	got := sel.Text(grid)
	if got != "abcdef" {
		t.Fatalf("got %q", got)
	}
}

func TestSelectionRectangleMode(t *testing.T) {
	grid := newFakeGrid(5, 3, []string{"abcde", "fghij", "klmno"}, nil)
	sel := New(Config{})
	sel.Start(1, 0, false, Rectangle)
	sel.Update(3, 2, false, true)
	got := sel.Text(grid)
	want := strings.Join([]string{"bcd", "ghi", "lmn"}, "\n")
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestSelectionIncludesScrollback(t *testing.T) {
	grid := newFakeGrid(5, 1, []string{"older", "newer"}, nil)
	sel := New(Config{})
	sel.Start(0, -1, false, Cell)
	sel.Update(4, 0, false, true)
	got := sel.Text(grid)
	if got != "older\nnewer" {
		t.Fatalf("got %q", got)
	}
}

func TestCellInSelectionRespectsNormalizedBounds(t *testing.T) {
	grid := newFakeGrid(5, 2, []string{"abcde", "fghij"}, nil)
	sel := New(Config{})
	sel.Start(3, 1, false, Cell) // anchor after head in reading order
	sel.Update(1, 0, false, true)
	_ = grid
	if !sel.CellInSelection(2, 0) {
		t.Fatal("expected (2,0) inside normalized selection")
	}
	if !sel.CellInSelection(0, 1) {
		t.Fatal("row 1 is the end row: columns before end.X are still selected")
	}
	if sel.CellInSelection(4, 1) {
		t.Fatal("(4,1) is past the selection end on its row")
	}
}

func TestDetectURLBasic(t *testing.T) {
	grid := newFakeGrid(30, 1, []string{"see https://example.com/path here"}, nil)
	r := DetectURL(grid, 10, 0, nil)
	if !r.Found {
		t.Fatal("expected URL detected")
	}
	line := grid.LineAt(0)
	var b strings.Builder
	for x := r.StartX; x <= r.EndX; x++ {
		b.WriteRune(line.Content[x].Base)
	}
	if b.String() != "https://example.com/path" {
		t.Fatalf("got %q", b.String())
	}
}

func TestDetectURLBracketSentinelShortensEnd(t *testing.T) {
	grid := newFakeGrid(30, 1, []string{"see (https://example.com) here"}, nil)
	// ')' counts as a URL character here (as it legitimately does in
	// some URLs) but '(' does not, so the naive forward scan swallows
	// the trailing paren and relies on the bracket sentinel to drop it.
	isURLChar := func(r rune) bool { return r == ')' || DefaultIsURLChar(r) }
	r := DetectURL(grid, 6, 0, isURLChar) // inside the URL, just after '('
	if !r.Found {
		t.Fatal("expected URL detected")
	}
	line := grid.LineAt(0)
	var b strings.Builder
	for x := r.StartX; x <= r.EndX; x++ {
		b.WriteRune(line.Content[x].Base)
	}
	if b.String() != "https://example.com" {
		t.Fatalf("got %q, bracket sentinel should have trimmed the trailing paren", b.String())
	}
}

func TestDetectURLNotAURLChar(t *testing.T) {
	grid := newFakeGrid(10, 1, []string{"   hello  "}, nil)
	r := DetectURL(grid, 0, 0, nil)
	if r.Found {
		t.Fatal("whitespace should not be detected as a URL")
	}
}

func TestDetectURLSpansWrappedRow(t *testing.T) {
	grid := newFakeGrid(10, 2, []string{"https://ex", "ample.com/"}, map[int]bool{1: true})
	r := DetectURL(grid, 0, 0, nil)
	if !r.Found {
		t.Fatal("expected URL detected")
	}
	if r.EndY != 1 {
		t.Fatalf("expected URL to continue into wrapped row, EndY=%d", r.EndY)
	}
}
