package parser

import (
	"strings"

	"github.com/time-gift24/mdflow/internal/repair"
)

// incompleteTail reports whether the trailing block of text is provisional.
// The signals are structural: an unterminated code or math fence anywhere in
// the text, or a final line that is a bare block marker with no content yet.
// Checked against the raw accumulated text, before any repair.
func incompleteTail(text string) bool {
	if text == "" {
		return false
	}
	if repair.HasUnterminatedFence(text) {
		return true
	}
	if oddMathFences(text) {
		return true
	}

	last := strings.TrimSpace(lastLine(text))
	if last == "" {
		return false
	}
	return bareHeadingMarker(last) || bareListMarker(last) ||
		bareOrderedMarker(last) || bareQuoteMarker(last)
}

func lastLine(text string) string {
	if i := strings.LastIndexByte(text, '\n'); i >= 0 {
		return text[i+1:]
	}
	return text
}

// oddMathFences reports an unbalanced count of $$ delimiters outside fenced
// code regions.
func oddMathFences(text string) bool {
	fences := repair.FencedRanges(text)
	count := 0
	for i := 0; i+1 < len(text); i++ {
		if text[i] == '$' && text[i+1] == '$' && !repair.Inside(fences, i) {
			count++
			i++
		}
	}
	return count%2 == 1
}

// bareHeadingMarker matches a line of one to six '#' with nothing after.
func bareHeadingMarker(line string) bool {
	if len(line) == 0 || len(line) > 6 {
		return false
	}
	for i := 0; i < len(line); i++ {
		if line[i] != '#' {
			return false
		}
	}
	return true
}

// bareListMarker matches a lone unordered list marker.
func bareListMarker(line string) bool {
	return line == "-" || line == "*" || line == "+"
}

// bareOrderedMarker matches digits followed by '.' or ')' and nothing else.
func bareOrderedMarker(line string) bool {
	i := 0
	for i < len(line) && i < 9 && line[i] >= '0' && line[i] <= '9' {
		i++
	}
	if i == 0 || i >= len(line) {
		return false
	}
	if line[i] != '.' && line[i] != ')' {
		return false
	}
	return i+1 == len(line)
}

// bareQuoteMarker matches one or more '>' (possibly nested, space separated)
// with no content after.
func bareQuoteMarker(line string) bool {
	seen := false
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '>':
			seen = true
		case ' ', '\t':
		default:
			return false
		}
	}
	return seen
}
