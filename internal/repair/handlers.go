package repair

import "strings"

// SetextGuard inserts a blank line before a trailing dashes-only line when
// the line above it reads as prose. Without it, the tokenizer would promote
// the prose line to a setext heading the moment the dashes of an upcoming
// thematic break start streaming in.
func SetextGuard(text string, fences []Span) string {
	body := text
	hadNL := false
	if strings.HasSuffix(body, "\n") {
		body = body[:len(body)-1]
		hadNL = true
	}

	cut := strings.LastIndexByte(body, '\n')
	if cut < 0 {
		return text
	}
	if Inside(fences, cut+1) {
		return text
	}

	last := strings.TrimSpace(body[cut+1:])
	if !dashesOnly(last) {
		return text
	}

	prevStart := strings.LastIndexByte(body[:cut], '\n') + 1
	prev := strings.TrimSpace(body[prevStart:cut])
	if !looksLikeProse(prev) {
		return text
	}

	repaired := body[:cut] + "\n\n" + body[cut+1:]
	if hadNL {
		repaired += "\n"
	}
	return repaired
}

// dashesOnly reports whether s is two or more '-' characters and nothing
// else. A single dash is left alone: it is more likely a list marker being
// typed than a thematic break.
func dashesOnly(s string) bool {
	if len(s) < 2 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] != '-' {
			return false
		}
	}
	return true
}

// looksLikeProse reports whether a line reads as running prose rather than a
// heading candidate: non-empty, no block marker prefix, and ending in
// sentence punctuation. A short bare phrase above dashes is kept eligible
// for setext promotion.
func looksLikeProse(line string) bool {
	if line == "" {
		return false
	}
	switch line[0] {
	case '#', '>', '-', '*', '+', '`', '~', '|':
		return false
	}
	return strings.ContainsRune(".,:;!?)", rune(line[len(line)-1]))
}

// CloseLinks completes a trailing "[text](url" with its missing ")". A
// trailing incomplete image is dropped outright instead: a partial image URL
// is not useful to render.
func CloseLinks(text string, fences []Span) string {
	n := len(text)

	openAt := -1 // start of the unclosed construct ('!' for images)
	isImage := false
	inURL := false

	i := tailStart(text, fences)
	for i < n {
		if Inside(fences, i) {
			i++
			continue
		}
		if text[i] == '\\' && i+1 < n {
			i += 2
			continue
		}

		if inURL {
			if text[i] == ')' {
				inURL = false
				openAt = -1
				isImage = false
			}
			i++
			continue
		}

		switch text[i] {
		case '[':
			openAt = i
			isImage = false
			if i > 0 && text[i-1] == '!' && !Inside(fences, i-1) {
				openAt = i - 1
				isImage = true
			}
			i++
		case ']':
			if openAt < 0 {
				i++
				continue
			}
			if i+1 < n && text[i+1] == '(' {
				inURL = true
				i += 2
			} else if i+1 == n {
				// "[text]" at the very end: the URL part has not
				// arrived yet. Treat like a construct with no URL.
				inURL = false
				i++
			} else {
				// Plain bracketed text, nothing to repair.
				openAt = -1
				isImage = false
				i++
			}
		default:
			i++
		}
	}

	if openAt < 0 {
		return text
	}
	if fenceAfter(fences, openAt) {
		return text
	}

	if inURL {
		if isImage {
			return strings.TrimRight(text[:openAt], " ")
		}
		return text + ")"
	}

	// Unclosed "[text" or "![alt": only the image form is removed; bare
	// bracketed text tokenizes as literal text and needs no help.
	if isImage {
		return strings.TrimRight(text[:openAt], " ")
	}
	return text
}

// closeEmphasis builds a pass that balances emphasis-style delimiter runs of
// one character, pooled in units of the marker's width. For asterisks and
// underscores the unit is 1: a run of length n is a pool of n delimiters, so
// ``***`` opens bold+italic at once and a trailing ``***`` can close an
// earlier ``**`` plus an earlier ``*``. For tildes the unit is 2: the only
// tilde marker is ``~~``, so a lone ``~`` (an approximate number, x~y) is
// literal text. Pool matching is what keeps the repair idempotent: the
// closers a pass appends are consumed exactly by the opens a re-scan finds.
//
// Flanking is approximated: a run preceded by whitespace cannot close, a run
// followed by whitespace (or end of text) cannot open. A run that can do
// neither is literal text.
func closeEmphasis(ch byte, unit int) Pass {
	return func(text string, fences []Span) string {
		n := len(text)
		var stack []int // remaining open delimiter units
		trailingLiteral := false

		tail := tailStart(text, fences)
		i := tail
		for i < n {
			if Inside(fences, i) {
				i++
				continue
			}
			if text[i] == '\\' && i+1 < n {
				i += 2
				continue
			}
			if text[i] != ch {
				i++
				continue
			}

			start := i
			for i < n && text[i] == ch && !Inside(fences, i) {
				i++
			}
			units := (i - start) / unit
			rem := (i - start) % unit
			canClose := start > 0 && !isSpaceByte(text[start-1])
			canOpen := i < n && !isSpaceByte(text[i])

			if canClose {
				for units > 0 && len(stack) > 0 {
					top := len(stack) - 1
					d := units
					if stack[top] < d {
						d = stack[top]
					}
					stack[top] -= d
					units -= d
					if stack[top] == 0 {
						stack = stack[:top]
					}
				}
			}
			if units > 0 {
				if canOpen {
					stack = append(stack, units)
				} else if i == n {
					trailingLiteral = true
				}
			}
			// A below-unit leftover at end of text would merge with any
			// appended closer and change meaning on the next repair.
			if rem > 0 && i == n {
				trailingLiteral = true
			}
		}

		if len(stack) == 0 {
			// Orphaned marker-only fragment: a bare *** is force-closed by
			// doubling it. Legacy policy, preserved for compatibility.
			if unit == 1 {
				if marker := strings.Repeat(string(ch), 3); text[tail:] == marker {
					return text + marker
				}
			}
			return text
		}
		if trailingLiteral {
			return text
		}
		if eofProtected(text, fences) {
			return text
		}

		var closers strings.Builder
		for top := len(stack) - 1; top >= 0; top-- {
			for k := 0; k < stack[top]*unit; k++ {
				closers.WriteByte(ch)
			}
		}
		return text + closers.String()
	}
}

// closeBackticks balances inline code spans. A span opened with a run of n
// backticks closes only with a run of at least n; shorter runs are literal
// inside the span.
func closeBackticks(text string, fences []Span) string {
	n := len(text)
	open := 0 // length of the open backtick string, 0 = none

	i := tailStart(text, fences)
	for i < n {
		if Inside(fences, i) {
			i++
			continue
		}
		if text[i] == '\\' && i+1 < n {
			i += 2
			continue
		}
		if text[i] != '`' {
			i++
			continue
		}

		start := i
		for i < n && text[i] == '`' && !Inside(fences, i) {
			i++
		}
		run := i - start

		if open == 0 {
			open = run
			continue
		}
		if run >= open {
			open = 0
		}
	}

	if open == 0 {
		return text
	}
	if eofProtected(text, fences) {
		return text
	}
	// A short trailing run completes to the opening length instead of
	// appending a full new run, so the closer pairs with the opener.
	trailing := 0
	for j := n - 1; j >= 0 && text[j] == '`'; j-- {
		trailing++
	}
	need := open - trailing
	if need <= 0 {
		return text
	}
	return text + strings.Repeat("`", need)
}

func isSpaceByte(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// eofProtected reports whether the end of text falls inside a fenced region,
// in which case no pass may append a closer there.
func eofProtected(text string, fences []Span) bool {
	return len(text) > 0 && Inside(fences, len(text)-1)
}

// CloseMathFence balances $$ block-math delimiters. The closer goes on a
// fresh line when the text does not already end in one.
func CloseMathFence(text string, fences []Span) string {
	open := false
	n := len(text)
	i := 0
	for i < n {
		if Inside(fences, i) {
			i++
			continue
		}
		if text[i] == '\\' && i+1 < n {
			i += 2
			continue
		}
		if text[i] == '$' && i+1 < n && text[i+1] == '$' {
			open = !open
			i += 2
			continue
		}
		i++
	}
	if !open {
		return text
	}
	if strings.HasSuffix(text, "\n") {
		return text + "$$"
	}
	return text + "\n$$"
}

// CloseCodeFence terminates an unclosed fenced code block. It runs last so
// every other pass sees the unterminated fence body as protected.
func CloseCodeFence(text string, fences []Span) string {
	ch, openLen, ok := openFenceAtEOF(text)
	if !ok {
		return text
	}
	closer := strings.Repeat(string(ch), openLen)
	if strings.HasSuffix(text, "\n") {
		return text + closer
	}
	return text + "\n" + closer
}

// HasUnterminatedFence reports whether text ends inside an unclosed fenced
// code block.
func HasUnterminatedFence(text string) bool {
	_, _, ok := openFenceAtEOF(text)
	return ok
}

// openFenceAtEOF rescans the fence structure and reports the fence left open
// at end of text, if any.
func openFenceAtEOF(text string) (ch byte, openLen int, ok bool) {
	open := false
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
			if c, n, indent, isFence := openingFence(line); isFence {
				open = true
				fenceChar, fenceLen, fenceIndent = c, n, indent
			}
		} else if closesFence(line, fenceChar, fenceLen, fenceIndent) {
			open = false
		}

		if lineEnd == len(text) {
			break
		}
		pos = lineEnd + 1
	}

	if !open {
		return 0, 0, false
	}
	return fenceChar, fenceLen, true
}
