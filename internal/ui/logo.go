package ui

import "strings"

type font struct {
	height  int
	gap     int // columns between letters
	letters map[rune][]string
}

var fontBlock = font{
	height: 3,
	gap:    1,
	letters: map[rune][]string{
		'T': {"▀█▀", " █ ", " ▀ "},
		'E': {"█▀▀", "█▀▀", "▀▀▀"},
		'A': {"▄▀▄", "█▀█", "▀ ▀"},
		'M': {"█▄ ▄█", "█ ▀ █", "▀   ▀"},
		'P': {"█▀▄", "█▀ ", "▀  "},
		'U': {"█ █", "█ █", "▀▀▀"},
		'L': {"█  ", "█  ", "▀▀▀"},
		'S': {"▄▀▀", " ▀▄", "▀▀ "},
		' ': {"  ", "  ", "  "},
	},
}

func wordWidth(word string, f font) int {
	w := 0
	for i, ch := range []rune(word) {
		if rows := f.letters[ch]; len(rows) > 0 {
			w += runeWidth(rows[0])
		}
		if i > 0 {
			w += f.gap
		}
	}
	return w
}

// runeWidth counts each rune as one column.
func runeWidth(s string) int {
	return len([]rune(s))
}

func render(word string, f font) string {
	rows := make([]strings.Builder, f.height)
	for i, ch := range []rune(word) {
		glyph := f.letters[ch]
		for row := 0; row < f.height; row++ {
			if i > 0 {
				rows[row].WriteString(strings.Repeat(" ", f.gap))
			}
			if row < len(glyph) {
				rows[row].WriteString(glyph[row])
			}
		}
	}
	lines := make([]string, f.height)
	for i := range rows {
		lines[i] = rows[i].String()
	}
	return strings.Join(lines, "\n")
}

// renderLogo draws the block logo when it fits in maxWidth columns and a
// plain title otherwise.
func renderLogo(maxWidth int) string {
	const word = "TEAM PULSE"
	if w := wordWidth(word, fontBlock) + 1; w <= maxWidth {
		return " " + strings.ReplaceAll(render(word, fontBlock), "\n", "\n ")
	}
	return " TeamPulse"
}
