// Package repair self-heals partially streamed markdown. Given a text
// fragment cut off at an arbitrary point, Repair closes any formatting
// markers left dangling at the end so a downstream tokenizer always sees
// well-formed input. Repair is idempotent and never alters the body of a
// correctly closed fenced code block.
package repair

import "strings"

// Span is a half-open byte range [Start, End) of the input that belongs to a
// fenced code block, including the fence delimiter lines. Content inside a
// span is protected from every repair pass.
type Span struct {
	Start int
	End   int
}

// Contains reports whether pos falls inside the span.
func (s Span) Contains(pos int) bool {
	return pos >= s.Start && pos < s.End
}

// Inside reports whether pos falls inside any of the given spans.
func Inside(spans []Span, pos int) bool {
	for _, s := range spans {
		if s.Contains(pos) {
			return true
		}
	}
	return false
}

// StableBoundary returns the offset just past the last blank-line block
// separator outside any fenced region, or 0 when there is none. A blank line
// is a hard block terminator in markdown: everything before it is final and
// cannot be altered by appended text.
func StableBoundary(text string) int {
	return tailStart(text, FencedRanges(text))
}

// tailStart returns the offset just past the last blank-line block separator
// outside any fenced region, or 0 when there is none. Inline constructs
// cannot span a blank line, so passes that close them scan only from here.
func tailStart(text string, fences []Span) int {
	idx := len(text)
	for {
		i := strings.LastIndex(text[:idx], "\n\n")
		if i < 0 {
			return 0
		}
		if !Inside(fences, i+1) {
			return i + 2
		}
		idx = i + 1
	}
}

// fenceAfter reports whether any fenced region starts at or after pos.
// Passes that truncate the tail must refuse when this is true.
func fenceAfter(fences []Span, pos int) bool {
	for _, f := range fences {
		if f.Start >= pos {
			return true
		}
	}
	return false
}

// Pass is a single repair rule: pure, order-dependent, given the full text
// plus the precomputed fenced ranges, returning the repaired text. A pass
// may only append to the text, insert immediately before the final line, or
// truncate the tail; fenced ranges stay valid under all three.
type Pass func(text string, fences []Span) string

// Repair runs the full repair pipeline in its fixed priority order:
// setext disambiguation, link/image closing, asterisk then underscore
// emphasis, inline code, strikethrough, math fence, and the code fence
// last. The fence ranges are computed once and shared by every pass.
func Repair(text string) string {
	if text == "" {
		return text
	}

	fences := FencedRanges(text)

	passes := []Pass{
		SetextGuard,
		CloseLinks,
		closeEmphasis('*', 1),
		closeEmphasis('_', 1),
		closeBackticks,
		closeEmphasis('~', 2),
		CloseMathFence,
		CloseCodeFence,
	}

	for _, p := range passes {
		text = p(text, fences)
	}
	return text
}

// FencedRanges scans text for fenced code blocks (``` or ~~~) and returns
// their byte ranges. An opened fence with no closer consumes the rest of the
// text.
func FencedRanges(text string) []Span {
	var spans []Span

	open := false
	openStart := 0
	var fenceChar byte
	var fenceLen, fenceIndent int

	pos := 0
	for pos <= len(text) {
		lineEnd := len(text)
		if nl := strings.IndexByte(text[pos:], '\n'); nl >= 0 {
			lineEnd = pos + nl
		}
		line := text[pos:lineEnd]

		if !open {
			if ch, n, indent, ok := openingFence(line); ok {
				open = true
				openStart = pos
				fenceChar, fenceLen, fenceIndent = ch, n, indent
			}
		} else if closesFence(line, fenceChar, fenceLen, fenceIndent) {
			open = false
			end := lineEnd
			if end < len(text) {
				end++ // include the newline terminating the closing fence
			}
			spans = append(spans, Span{Start: openStart, End: end})
		}

		if lineEnd == len(text) {
			break
		}
		pos = lineEnd + 1
	}

	if open {
		spans = append(spans, Span{Start: openStart, End: len(text)})
	}
	return spans
}

// openingFence parses a fence opening line, returning the fence character,
// run length and indent.
func openingFence(line string) (ch byte, length, indent int, ok bool) {
	indent = countLeadingSpaces(line)
	trimmed := strings.TrimLeft(line, " \t")
	if len(trimmed) < 3 {
		return 0, 0, 0, false
	}
	c := trimmed[0]
	if c != '`' && c != '~' {
		return 0, 0, 0, false
	}
	n := 0
	for n < len(trimmed) && trimmed[n] == c {
		n++
	}
	if n < 3 {
		return 0, 0, 0, false
	}
	// An info string on a backtick fence must not itself contain backticks.
	if c == '`' && strings.IndexByte(trimmed[n:], '`') >= 0 {
		return 0, 0, 0, false
	}
	return c, n, indent, true
}

// closesFence reports whether line closes a fence opened with the given
// character, run length and indent.
func closesFence(line string, openChar byte, openLen, openIndent int) bool {
	indent := countLeadingSpaces(line)
	if indent > 3 && indent > openIndent+3 {
		return false
	}
	trimmed := strings.TrimLeft(line, " \t")
	if len(trimmed) == 0 || trimmed[0] != openChar {
		return false
	}
	n := 0
	for i := 0; i < len(trimmed); i++ {
		c := trimmed[i]
		if c == openChar {
			n++
			continue
		}
		if c == ' ' || c == '\t' || c == '\r' {
			break
		}
		return false
	}
	return n >= openLen
}

// countLeadingSpaces counts leading spaces, treating a tab as one column.
func countLeadingSpaces(line string) int {
	count := 0
	for i := 0; i < len(line); i++ {
		if line[i] != ' ' && line[i] != '\t' {
			break
		}
		count++
	}
	return count
}
