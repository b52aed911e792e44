package render

import (
	"strings"
	"unicode/utf8"
)

// Wrap greedily packs the whitespace-separated words of text into lines of
// at most maxWidth characters. A word longer than maxWidth is never split;
// it gets a line of its own. Empty or all-whitespace text yields no lines.
func Wrap(text string, maxWidth int) []string {
	var lines []string
	var line strings.Builder
	lineLen := 0

	for _, word := range strings.Fields(text) {
		wordLen := utf8.RuneCountInString(word)
		if lineLen > 0 && lineLen+wordLen+1 > maxWidth {
			lines = append(lines, line.String())
			line.Reset()
			lineLen = 0
		}
		if lineLen > 0 {
			line.WriteByte(' ')
			lineLen++
		}
		line.WriteString(word)
		lineLen += wordLen
	}
	if lineLen > 0 {
		lines = append(lines, line.String())
	}

	return lines
}
