package parser

import (
	"fmt"

	"github.com/time-gift24/mdflow/internal/blocks"
)

// Extension intercepts a token kind before the built-in mapping runs. The
// handler may return a replacement block, or nil to fall through. A handler
// panic is recovered, recorded and routed to Fallback; it never reaches the
// parse caller.
type Extension struct {
	// Name identifies the extension for Unregister.
	Name string
	// Kind is the token type this extension intercepts.
	Kind string
	// Match filters tokens of the kind; nil matches all.
	Match func(tok Token) bool
	// Handler produces the replacement block. base is the built-in mapping's
	// result (possibly nil for unknown tokens) and must not be mutated.
	Handler func(tok Token, base *blocks.Block, ctx *Context) *blocks.Block
	// Validate optionally vets the handler's result.
	Validate func(b *blocks.Block) bool
	// Fallback runs when Handler panics or Validate rejects.
	Fallback func(tok Token, base *blocks.Block) *blocks.Block
}

// Context carries per-parse information handed to extension handlers.
type Context struct {
	// Position is the document position the produced block will occupy.
	Position int
	// Source is the repaired fragment being tokenized.
	Source string
}

// Registry holds ordered extensions keyed by token kind. Registration order
// is evaluation order.
type Registry struct {
	exts map[string][]Extension
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{exts: make(map[string][]Extension)}
}

// Register appends an extension for its token kind.
func (r *Registry) Register(ext Extension) {
	r.exts[ext.Kind] = append(r.exts[ext.Kind], ext)
}

// Unregister removes all extensions with the given kind and name.
func (r *Registry) Unregister(kind, name string) {
	list := r.exts[kind]
	kept := list[:0]
	for _, e := range list {
		if e.Name != name {
			kept = append(kept, e)
		}
	}
	if len(kept) == 0 {
		delete(r.exts, kind)
		return
	}
	r.exts[kind] = kept
}

// apply runs the registered extensions for a token in order and returns the
// first produced block. ok is false when no extension produced one and the
// built-in mapping should be used.
func (r *Registry) apply(tok Token, base *blocks.Block, ctx *Context, events *Events) (result *blocks.Block, ok bool) {
	for _, ext := range r.exts[tok.Kind] {
		if ext.Match != nil && !ext.Match(tok) {
			continue
		}

		b, err := runHandler(ext, tok, base, ctx)
		if err != nil {
			events.recordExtension(err)
			if ext.Fallback != nil {
				if fb := ext.Fallback(tok, base); fb != nil {
					return fb, true
				}
			}
			continue
		}
		if b == nil {
			continue
		}
		if ext.Validate != nil && !ext.Validate(b) {
			if ext.Fallback != nil {
				if fb := ext.Fallback(tok, base); fb != nil {
					return fb, true
				}
			}
			continue
		}
		return b, true
	}
	return nil, false
}

// runHandler invokes an extension handler with panic recovery.
func runHandler(ext Extension, tok Token, base *blocks.Block, ctx *Context) (b *blocks.Block, err error) {
	defer func() {
		if r := recover(); r != nil {
			b = nil
			err = fmt.Errorf("extension %q: %v", ext.Name, r)
		}
	}()
	return ext.Handler(tok, base, ctx), nil
}

// Events counts faults recovered during parsing. The zero value is ready to
// use; values only grow until Reset.
type Events struct {
	TokenizerFailures int
	ExtensionFailures int
	LastError         string
}

func (e *Events) recordTokenizer(err error) {
	e.TokenizerFailures++
	e.LastError = err.Error()
}

func (e *Events) recordExtension(err error) {
	e.ExtensionFailures++
	e.LastError = err.Error()
}
