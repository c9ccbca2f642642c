package stream

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/glamour"
)

func testOpts() []glamour.TermRendererOption {
	return []glamour.TermRendererOption{
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(80),
	}
}

// renderSegments renders each segment through a plain glamour renderer and
// concatenates the results, mirroring what the streaming path should emit.
func renderSegments(t *testing.T, segments ...string) string {
	t.Helper()
	tr, err := glamour.NewTermRenderer(testOpts()...)
	if err != nil {
		t.Fatalf("glamour: %v", err)
	}
	var sb strings.Builder
	for _, seg := range segments {
		out, err := tr.Render(seg)
		if err != nil {
			t.Fatalf("render %q: %v", seg, err)
		}
		sb.WriteString(out)
	}
	return sb.String()
}

func streamBytes(t *testing.T, input string, chunk int) string {
	t.Helper()
	var buf bytes.Buffer
	r, err := NewRenderer(&buf, testOpts()...)
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	for pos := 0; pos < len(input); pos += chunk {
		end := pos + chunk
		if end > len(input) {
			end = len(input)
		}
		if _, err := r.Write([]byte(input[pos:end])); err != nil {
			t.Fatalf("Write: %v", err)
		}
	}
	if err := r.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	return buf.String()
}

func TestStreamRendersStablePrefixThenTail(t *testing.T) {
	got := streamBytes(t, "# Hello\n\nWorld\n", 1)
	want := renderSegments(t, "# Hello\n\n", "World\n")
	if got != want {
		t.Errorf("stream output mismatch\ngot:  %q\nwant: %q", got, want)
	}
}

func TestStreamChunkingInvariant(t *testing.T) {
	input := "# Title\n\nFirst paragraph.\n\n- a\n- b\n\nLast.\n"

	whole := streamBytes(t, input, len(input))
	for _, chunk := range []int{1, 2, 3, 7} {
		if got := streamBytes(t, input, chunk); got != whole {
			t.Errorf("chunk size %d diverged\ngot:  %q\nwant: %q", chunk, got, whole)
		}
	}
}

func TestStreamKeepsFenceWhole(t *testing.T) {
	input := "```go\na\n\nb\n```\n\ntail.\n"
	got := streamBytes(t, input, 1)
	want := renderSegments(t, "```go\na\n\nb\n```\n\n", "tail.\n")
	if got != want {
		t.Errorf("fence split across renders\ngot:  %q\nwant: %q", got, want)
	}
}

func TestStreamHealsOpenFenceOnClose(t *testing.T) {
	got := streamBytes(t, "```go\nprintln(1)", 4)
	want := renderSegments(t, "```go\nprintln(1)\n```")
	if got != want {
		t.Errorf("unterminated fence not healed\ngot:  %q\nwant: %q", got, want)
	}
}

func TestStreamHealsOpenEmphasisOnClose(t *testing.T) {
	got := streamBytes(t, "some **bold", 3)
	want := renderSegments(t, "some **bold**")
	if got != want {
		t.Errorf("unclosed bold not healed\ngot:  %q\nwant: %q", got, want)
	}
}

func TestWriteAfterClose(t *testing.T) {
	var buf bytes.Buffer
	r, err := NewRenderer(&buf, testOpts()...)
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if _, err := r.Write([]byte("x")); err != io.ErrClosedPipe {
		t.Errorf("Write after Close = %v, want io.ErrClosedPipe", err)
	}
	if err := r.Close(); err != nil {
		t.Errorf("second Close = %v, want nil", err)
	}
}
