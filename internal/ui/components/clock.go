package components

import "strings"

// ClockHeight is the number of rows in a big clock rendering.
const ClockHeight = 5

var glyphs = map[rune][ClockHeight]string{
	'0': {"███", "█ █", "█ █", "█ █", "███"},
	'1': {"  █", "  █", "  █", "  █", "  █"},
	'2': {"███", "  █", "███", "█  ", "███"},
	'3': {"███", "  █", "███", "  █", "███"},
	'4': {"█ █", "█ █", "███", "  █", "  █"},
	'5': {"███", "█  ", "███", "  █", "███"},
	'6': {"███", "█  ", "███", "█ █", "███"},
	'7': {"███", "  █", "  █", "  █", "  █"},
	'8': {"███", "█ █", "███", "█ █", "███"},
	'9': {"███", "█ █", "███", "  █", "███"},
	':': {" ", "█", " ", "█", " "},
	'.': {" ", " ", " ", " ", "█"},
}

var blankGlyph = [ClockHeight]string{"   ", "   ", "   ", "   ", "   "}

// RenderBigClock draws text such as "01:02:03.45" in block digits. Runes
// without a glyph render as blank cells.
func RenderBigClock(text string) string {
	var rows [ClockHeight]strings.Builder

	for i, r := range []rune(text) {
		g, ok := glyphs[r]
		if !ok {
			g = blankGlyph
		}
		for row := range ClockHeight {
			if i > 0 {
				rows[row].WriteByte(' ')
			}
			rows[row].WriteString(g[row])
		}
	}

	lines := make([]string, ClockHeight)
	for row := range ClockHeight {
		lines[row] = rows[row].String()
	}
	return strings.Join(lines, "\n")
}

// BigClockWidth returns the cell width RenderBigClock needs for text.
func BigClockWidth(text string) int {
	width := 0
	for i, r := range []rune(text) {
		if i > 0 {
			width++
		}
		g, ok := glyphs[r]
		if !ok {
			g = blankGlyph
		}
		width += len([]rune(g[0]))
	}
	return width
}
