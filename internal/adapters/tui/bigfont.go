package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const glyphHeight = 3

// glyphs maps each clock character to a 3-line box-drawing glyph.
// Digits are 3 cells wide, the colon 1 cell.
var glyphs = map[rune][glyphHeight]string{
	'0': {"┏━┓", "┃ ┃", "┗━┛"},
	'1': {" ┓ ", " ┃ ", " ┻ "},
	'2': {"━━┓", "┏━┛", "┗━━"},
	'3': {"━━┓", " ━┫", "━━┛"},
	'4': {"╻ ╻", "┗━┫", "  ╹"},
	'5': {"┏━━", "┗━┓", "━━┛"},
	'6': {"┏━━", "┣━┓", "┗━┛"},
	'7': {"━━┓", "  ┃", "  ╹"},
	'8': {"┏━┓", "┣━┫", "┗━┛"},
	'9': {"┏━┓", "┗━┫", "━━┛"},
	':': {"•", " ", "•"},
}

// minBigClockWidth is the narrowest terminal that gets the large clock.
const minBigClockWidth = 30

// renderClock renders an MM:SS string in the large font, or as a single
// bold line when the terminal is narrower than minBigClockWidth.
func renderClock(clock string, style lipgloss.Style, width int) string {
	if width < minBigClockWidth {
		return style.Bold(true).Render(clock)
	}

	var rows [glyphHeight]strings.Builder
	first := true
	for _, ch := range clock {
		glyph, ok := glyphs[ch]
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

	lines := make([]string, glyphHeight)
	for i := range rows {
		lines[i] = style.Bold(true).Render(rows[i].String())
	}
	return strings.Join(lines, "\n")
}
