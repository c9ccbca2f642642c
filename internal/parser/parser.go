package parser

import (
	"strings"

	"github.com/time-gift24/mdflow/internal/blocks"
	"github.com/time-gift24/mdflow/internal/repair"
)

// incrementalCache is the parser's only state: the text seen so far, the
// blocks known to be final, and the boundary splitting them from the tail.
// It is replaced wholesale on every parse, never mutated field by field.
type incrementalCache struct {
	stableText     string
	stableBlocks   []blocks.Block
	stableBoundary int
}

// Parser is the incremental coordinator. One instance owns one logical
// stream; sharing an instance across unrelated streams reuses a stale
// stability boundary and is a correctness bug. Instances are not safe for
// concurrent use.
type Parser struct {
	tokenizer Tokenizer
	registry  *Registry
	cache     incrementalCache
	events    Events
}

// New creates a parser backed by the default goldmark tokenizer.
func New() *Parser {
	return NewWithTokenizer(newGoldmarkTokenizer())
}

// NewWithTokenizer creates a parser with a substitute lexer.
func NewWithTokenizer(t Tokenizer) *Parser {
	return &Parser{tokenizer: t, registry: NewRegistry()}
}

// Extensions exposes the registry for intercepting token kinds.
func (p *Parser) Extensions() *Registry {
	return p.registry
}

// Events returns a snapshot of the fault counters.
func (p *Parser) Events() Events {
	return p.events
}

// Reset clears the incremental cache and the fault counters. Call it when
// the logical input source changes.
func (p *Parser) Reset() {
	p.cache = incrementalCache{}
	p.events = Events{}
}

// Parse runs a full parse of text, ignoring any cached state. The cache is
// refreshed so subsequent incremental calls can extend this text.
func (p *Parser) Parse(text string) blocks.ParseResult {
	p.cache = incrementalCache{}
	return p.run(text)
}

// ParseIncremental is the streaming entry point. newText must be the full
// accumulated text; when it does not extend previousText the cache is
// silently discarded and a full parse runs instead.
func (p *Parser) ParseIncremental(previousText, newText string) blocks.ParseResult {
	if previousText == "" || !strings.HasPrefix(newText, previousText) {
		p.cache = incrementalCache{}
	}
	return p.run(newText)
}

// run splits text at the stability boundary, reuses or recomputes the stable
// blocks, tokenizes only the tail, and republishes the cache.
func (p *Parser) run(text string) blocks.ParseResult {
	boundary := stableBoundary(text)

	var stable []blocks.Block
	if boundary > 0 {
		if p.cache.stableBoundary == boundary &&
			len(p.cache.stableText) >= boundary &&
			p.cache.stableText[:boundary] == text[:boundary] {
			stable = p.cache.stableBlocks
		} else {
			stable = p.parseFragment(text[:boundary], 0)
		}
	}

	tail := p.parseFragment(text[boundary:], len(stable))

	all := make([]blocks.Block, 0, len(stable)+len(tail))
	all = append(all, stable...)
	all = append(all, tail...)

	incomplete := incompleteTail(text)
	if incomplete && len(all) > 0 {
		all[len(all)-1].Complete = false
	}

	p.cache = incrementalCache{
		stableText:     text,
		stableBlocks:   stable,
		stableBoundary: boundary,
	}

	return blocks.ParseResult{Blocks: all, HasIncompleteBlock: incomplete}
}

// parseFragment runs repair, tokenize and assemble over one text fragment,
// numbering blocks from startPos. A tokenizer failure degrades to zero
// blocks; it is recorded, never propagated.
func (p *Parser) parseFragment(fragment string, startPos int) []blocks.Block {
	if strings.TrimSpace(fragment) == "" {
		return nil
	}

	repaired := repair.Repair(fragment)
	toks, err := p.tokenizer.Tokenize(repaired)
	if err != nil {
		p.events.recordTokenizer(err)
		return nil
	}

	var out []blocks.Block
	pos := startPos
	ctx := &Context{Source: repaired}
	for _, tok := range toks {
		ctx.Position = pos
		b := p.tokenToBlock(tok, pos, ctx)
		if b == nil {
			continue
		}
		out = append(out, *b)
		pos++
	}
	return out
}

// tokenToBlock maps one token to a block, consulting registered extensions
// before the built-in mapping.
func (p *Parser) tokenToBlock(tok Token, position int, ctx *Context) *blocks.Block {
	base := assemble(tok, position)
	if b, ok := p.registry.apply(tok, base, ctx, &p.events); ok {
		return b
	}
	return base
}

// stableBoundary is repair.StableBoundary; blank lines inside fenced code
// regions do not terminate a block and are skipped.
func stableBoundary(text string) int {
	return repair.StableBoundary(text)
}
