package repair

import (
	"strings"
	"testing"
)

func TestRepair(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"well formed", "**bold** and *em*", "**bold** and *em*"},
		{"unclosed bold", "This is **bold text without closing", "This is **bold text without closing**"},
		{"unclosed italic", "some *emphasis", "some *emphasis*"},
		{"nested bold italic", "a **b *c", "a **b *c***"},
		{"bold italic run", "***a", "***a***"},
		{"partially closed run", "***a*", "***a***"},
		{"orphaned triple", "***", "******"},
		{"unclosed underscore", "an __important", "an __important__"},
		{"unclosed strikethrough", "~~strike", "~~strike~~"},
		{"approximate number tilde", "approx ~5 items", "approx ~5 items"},
		{"approximate duration tilde", "takes ~10 minutes to run", "takes ~10 minutes to run"},
		{"intra-word tilde", "x~y", "x~y"},
		{"lone trailing tilde", "~~a~", "~~a~"},
		{"unclosed inline code", "`code span", "`code span`"},
		{"double backtick span", "``a`", "``a``"},
		{"unclosed link", "[Go](https://go.dev", "[Go](https://go.dev)"},
		{"incomplete image dropped", "Look: ![diagram](https://example.com/d.pn", "Look:"},
		{"bare link text kept", "[pending", "[pending"},
		{"unclosed code fence", "```typescript\nconst x = 1;", "```typescript\nconst x = 1;\n```"},
		{"unclosed tilde fence", "~~~\ntext", "~~~\ntext\n~~~"},
		{"closed fence untouched", "```\n**not closed\n```", "```\n**not closed\n```"},
		{"marker stranded by open fence", "**bold\n```\ncode", "**bold\n```\ncode\n```"},
		{"unclosed math fence", "$$\nE = mc^2", "$$\nE = mc^2\n$$"},
		{"math fence trailing newline", "$$\nx^2\n", "$$\nx^2\n$$"},
		{"setext guard", "The break is coming.\n---", "The break is coming.\n\n---"},
		{"setext intended", "Heading\n---", "Heading\n---"},
		{"single dash untouched", "Text.\n-", "Text.\n-"},
		{"marker in earlier paragraph", "**a\n\nb", "**a\n\nb"},
		{"literal asterisks", "a * b * c", "a * b * c"},
		{"trailing bare marker run", "text **", "text **"},
		{"lone asterisk", "*", "*"},
		{"link before fence refused", "[x](y\n```\ngo", "[x](y\n```\ngo\n```"},
		{"list item bold", "- item with **bold", "- item with **bold**"},
		{"quote emphasis", "> quote *em", "> quote *em*"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Repair(tt.input)
			if got != tt.want {
				t.Errorf("Repair(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// TestRepairIdempotent verifies repair(repair(x)) == repair(x) over a spread
// of partial inputs, including ones where closers would merge into adjacent
// marker runs.
func TestRepairIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"plain text",
		"This is **bold text without closing",
		"a **b *c",
		"***",
		"***a*",
		"*a ***",
		"**bold *and",
		"*",
		"**",
		"text **",
		"a *b **c `d",
		"`code",
		"``a`",
		"~~strike",
		"~~a~",
		"approx ~5 items",
		"x~y",
		"$$$",
		"$$\nE = mc^2",
		"[Go](https://go.dev",
		"Look: ![diagram](https://example.com/d.pn",
		"```typescript\nconst x = 1;",
		"**bold\n```\ncode",
		"```go\nfunc main() {\n\n}\n```\n**tail",
		"The break is coming.\n---",
		"| a | b |\n|---|---|\n| *x | y |",
		"_snake_case",
		"- item with **bold",
	}

	for _, input := range inputs {
		once := Repair(input)
		twice := Repair(once)
		if once != twice {
			t.Errorf("not idempotent for %q:\nonce:  %q\ntwice: %q", input, once, twice)
		}
	}
}

// TestRepairPreservesFenceBodies verifies that the bytes inside a correctly
// closed fence survive every pass even when the surrounding text is repaired.
func TestRepairPreservesFenceBodies(t *testing.T) {
	body := "**raw $$ [x]( `tick\n"
	input := "```\n" + body + "```\n**tail"

	got := Repair(input)
	if !strings.Contains(got, body) {
		t.Fatalf("fence body altered:\ninput: %q\ngot:   %q", input, got)
	}
	if want := input + "**"; got != want {
		t.Errorf("Repair(%q) = %q, want %q", input, got, want)
	}
}

func TestFencedRanges(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Span
	}{
		{"no fence", "just text\n", nil},
		{"closed fence", "```\nx\n```\n", []Span{{Start: 0, End: 10}}},
		{"unterminated fence", "```go\nx", []Span{{Start: 0, End: 7}}},
		{"fence after paragraph", "para\n\n```\nx\n```", []Span{{Start: 6, End: 15}}},
		{"tilde fence", "~~~\nx\n~~~\n", []Span{{Start: 0, End: 10}}},
		{"backtick info string rejected", "``` `x`\ntext\n", nil},
		{"two fences", "```\na\n```\nmid\n```\nb\n```\n", []Span{{Start: 0, End: 10}, {Start: 14, End: 24}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FencedRanges(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("FencedRanges(%q) = %v, want %v", tt.input, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("span %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestHasUnterminatedFence(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"", false},
		{"plain", false},
		{"```go\nx", true},
		{"```go\nx\n```", false},
		{"```go\nx\n```\nafter", false},
		{"~~~\n", true},
		{"text\n\n```\nbody", true},
	}

	for _, tt := range tests {
		if got := HasUnterminatedFence(tt.input); got != tt.want {
			t.Errorf("HasUnterminatedFence(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestInside(t *testing.T) {
	spans := []Span{{Start: 2, End: 5}, {Start: 8, End: 10}}

	tests := []struct {
		pos  int
		want bool
	}{
		{0, false}, {1, false}, {2, true}, {4, true}, {5, false},
		{7, false}, {8, true}, {9, true}, {10, false},
	}
	for _, tt := range tests {
		if got := Inside(spans, tt.pos); got != tt.want {
			t.Errorf("Inside(%d) = %v, want %v", tt.pos, got, tt.want)
		}
	}
}
