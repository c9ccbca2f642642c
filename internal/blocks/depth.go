package blocks

// MaxNestDepth bounds recursive nesting of lists and blockquotes.
const MaxNestDepth = 2

// CanNest reports whether a block of the given kind may be placed at depth.
// Only lists and blockquotes nest. Depth equal to MaxNestDepth is still
// allowed one more level; the rejection condition is strictly greater-than.
// AtMaxDepth is the separate "no further nesting offered" check.
func CanNest(kind Kind, depth int) bool {
	if depth > MaxNestDepth {
		return false
	}
	return kind == KindList || kind == KindBlockquote
}

// AtMaxDepth reports whether depth has reached the nesting ceiling.
func AtMaxDepth(depth int) bool {
	return depth >= MaxNestDepth
}
