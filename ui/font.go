package ui

import "strings"

// glyphHeight is the row count of every block glyph
const glyphHeight = 5

// blockFont renders the time display in large block digits
var blockFont = map[rune][glyphHeight]string{
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
}

// BlockLines renders s in the block font, one glyph column of spacing
// Runes missing from the font are skipped
func BlockLines(s string) [glyphHeight]string {
	var rows [glyphHeight]strings.Builder
	first := true
	for _, r := range s {
		glyph, ok := blockFont[r]
		if !ok {
			continue
		}
		for i := range rows {
			if !first {
				rows[i].WriteByte(' ')
			}
			rows[i].WriteString(glyph[i])
		}
		first = false
	}

	var out [glyphHeight]string
	for i := range rows {
		out[i] = rows[i].String()
	}
	return out
}

// blockWidth returns the cell width of BlockLines(s)
func blockWidth(s string) int {
	lines := BlockLines(s)
	return len([]rune(lines[0]))
}
