package blocks

import "testing"

func TestCanNest(t *testing.T) {
	tests := []struct {
		name  string
		kind  Kind
		depth int
		want  bool
	}{
		{"list at root", KindList, 0, true},
		{"list at depth 1", KindList, 1, true},
		{"list at max depth", KindList, MaxNestDepth, true},
		{"list past max depth", KindList, MaxNestDepth + 1, false},
		{"blockquote at depth 1", KindBlockquote, 1, true},
		{"blockquote past max", KindBlockquote, 3, false},
		{"paragraph never nests", KindParagraph, 0, false},
		{"code never nests", KindCode, 1, false},
		{"table never nests", KindTable, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanNest(tt.kind, tt.depth); got != tt.want {
				t.Errorf("CanNest(%q, %d) = %v, want %v", tt.kind, tt.depth, got, tt.want)
			}
		})
	}
}

// TestAtMaxDepth pins the asymmetry against CanNest: AtMaxDepth flags the
// limit itself, CanNest refuses only past it.
func TestAtMaxDepth(t *testing.T) {
	tests := []struct {
		depth int
		want  bool
	}{
		{0, false},
		{1, false},
		{MaxNestDepth, true},
		{MaxNestDepth + 1, true},
	}
	for _, tt := range tests {
		if got := AtMaxDepth(tt.depth); got != tt.want {
			t.Errorf("AtMaxDepth(%d) = %v, want %v", tt.depth, got, tt.want)
		}
	}
	if !CanNest(KindList, MaxNestDepth) || !AtMaxDepth(MaxNestDepth) {
		t.Errorf("depth %d must be nestable yet flagged as the limit", MaxNestDepth)
	}
}
