// Package stream renders markdown to a terminal as it arrives. Input is
// buffered until a blank-line block separator makes a prefix final; finalized
// markdown goes through glamour exactly once and is never rewritten. The
// unstable tail is held back until Close, where it is healed and rendered.
package stream

import (
	"bytes"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/time-gift24/mdflow/internal/repair"
)

// Renderer is an io.Writer accepting raw markdown chunks of any size,
// including mid-word or mid-marker splits. Not safe for concurrent use.
type Renderer struct {
	tr  *glamour.TermRenderer
	out io.Writer

	buf     bytes.Buffer // accumulated markdown
	flushed int          // bytes of buf already rendered
	closed  bool
}

// NewRenderer creates a streaming renderer writing to w. Options are passed
// through to glamour.NewTermRenderer.
func NewRenderer(w io.Writer, opts ...glamour.TermRendererOption) (*Renderer, error) {
	tr, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return nil, err
	}
	return &Renderer{tr: tr, out: w}, nil
}

// Write buffers p and renders any markdown that became final with it.
func (r *Renderer) Write(p []byte) (int, error) {
	if r.closed {
		return 0, io.ErrClosedPipe
	}
	r.buf.Write(p)
	if err := r.flushStable(); err != nil {
		return len(p), err
	}
	return len(p), nil
}

// Close renders the remaining tail, healing any markers the stream left
// open. The renderer cannot be written to afterwards.
func (r *Renderer) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true

	tail := r.buf.String()[r.flushed:]
	if strings.TrimSpace(tail) == "" {
		return nil
	}
	return r.render(repair.Repair(tail))
}

// flushStable renders every block finalized since the last flush, one block
// separator at a time so the emitted output does not depend on how the input
// was chunked. Blank lines inside a fenced code block do not terminate a
// block, so a fence is always rendered whole.
func (r *Renderer) flushStable() error {
	text := r.buf.String()
	fences := repair.FencedRanges(text)

	for i := r.flushed; i+1 < len(text); i++ {
		if text[i] != '\n' || text[i+1] != '\n' {
			continue
		}
		if repair.Inside(fences, i+1) {
			continue
		}

		segment := text[r.flushed : i+2]
		r.flushed = i + 2
		if strings.TrimSpace(segment) == "" {
			continue
		}
		if err := r.render(segment); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) render(markdown string) error {
	out, err := r.tr.Render(markdown)
	if err != nil {
		return err
	}
	_, err = io.WriteString(r.out, out)
	return err
}
