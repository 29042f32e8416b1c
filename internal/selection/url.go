package selection

// URLRange is a cell span, inclusive at both ends, in the unified
// coordinate space, possibly spanning multiple wrapped rows.
type URLRange struct {
	StartX, StartY int
	EndX, EndY     int
	Found          bool
}

var bracketPairs = map[rune]rune{
	'(': ')',
	'[': ']',
	'{': '}',
	'<': '>',
	'"': '"',
	'\'': '\'',
}

// DefaultIsURLChar is the URL character-class predicate used when the
// caller does not supply one: unreserved URI characters plus the
// common punctuation found inside query strings and paths, excluding
// whitespace and the bracket sentinels themselves (those terminate
// rather than extend a URL).
func DefaultIsURLChar(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	}
	switch r {
	case '-', '.', '_', '~', ':', '/', '?', '#', '@', '!', '$', '&',
		'*', '+', ',', ';', '=', '%':
		return true
	}
	return false
}

// DetectURL scans outward from (x, y) while the cell's codepoint
// satisfies isURLChar, extending across wrapped rows (a row continues
// the scan into the next when that next row's start keeps producing
// URL characters and the current row was itself wrapped). If the URL
// opens with a bracket sentinel ('(', '[', '{', '<', '"', '\'') found
// before the scan's start, the end is shortened to stop just before its
// first matching close bracket. Returns Found=false if (x, y) is not
// itself a URL character.
func DetectURL(src Source, x, y int, isURLChar func(rune) bool) URLRange {
	if isURLChar == nil {
		isURLChar = DefaultIsURLChar
	}
	line := src.LineAt(y)
	if x < 0 || x >= line.Len() || !isURLChar(line.Content[x].Base) {
		return URLRange{}
	}

	startX, startY := scanBackward(src, x, y, isURLChar)
	endX, endY := scanForward(src, x, y, isURLChar)

	if open, ok := bracketBefore(src, startX, startY); ok {
		if cx, cy, found := findMatchingClose(src, startX, startY, endX, endY, bracketPairs[open]); found {
			endX, endY = prevCell(src, cx, cy, startX, startY)
		}
	}

	return URLRange{StartX: startX, StartY: startY, EndX: endX, EndY: endY, Found: true}
}

func scanBackward(src Source, x, y int, isURLChar func(rune) bool) (int, int) {
	for {
		if x > 0 {
			line := src.LineAt(y)
			if x-1 < line.Len() && isURLChar(line.Content[x-1].Base) {
				x--
				continue
			}
			return x, y
		}
		// at column 0: continue into the previous row only if this row
		// is itself a continuation of it.
		line := src.LineAt(y)
		if line.Attrs == nil || !line.Attrs.IsContinued() || y <= -src.HistoryCount() {
			return x, y
		}
		prev := src.LineAt(y - 1)
		if prev.Len() == 0 || !isURLChar(prev.Content[prev.Len()-1].Base) {
			return x, y
		}
		y--
		x = prev.Len() - 1
	}
}

func scanForward(src Source, x, y int, isURLChar func(rune) bool) (int, int) {
	for {
		line := src.LineAt(y)
		if x+1 < line.Len() && isURLChar(line.Content[x+1].Base) {
			x++
			continue
		}
		// at row end: continue into the next row only if that row
		// continues this one and keeps producing URL characters.
		if y+1 >= src.YNum() {
			return x, y
		}
		next := src.LineAt(y + 1)
		if next.Attrs == nil || !next.Attrs.IsContinued() {
			return x, y
		}
		if next.Len() == 0 || !isURLChar(next.Content[0].Base) {
			return x, y
		}
		y++
		x = 0
	}
}

func bracketBefore(src Source, x, y int) (rune, bool) {
	if x == 0 {
		return 0, false
	}
	line := src.LineAt(y)
	if x-1 < 0 || x-1 >= line.Len() {
		return 0, false
	}
	r := line.Content[x-1].Base
	_, ok := bracketPairs[r]
	return r, ok
}

// prevCell steps one cell backward in reading order from (x, y), never
// stepping before (floorX, floorY). Used to exclude a matching close
// bracket itself from a detected URL's end.
func prevCell(src Source, x, y, floorX, floorY int) (int, int) {
	if x > 0 {
		return x - 1, y
	}
	if y > floorY {
		prev := src.LineAt(y - 1)
		if prev.Len() > 0 {
			return prev.Len() - 1, y - 1
		}
	}
	return x, y
}

func findMatchingClose(src Source, startX, startY, endX, endY int, close rune) (int, int, bool) {
	for y := startY; y <= endY; y++ {
		line := src.LineAt(y)
		lo, hi := 0, line.Len()-1
		if y == startY {
			lo = startX
		}
		if y == endY {
			hi = endX
		}
		for x := lo; x <= hi && x < line.Len(); x++ {
			if line.Content[x].Base == close {
				return x, y, true
			}
		}
	}
	return 0, 0, false
}
