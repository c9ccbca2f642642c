// Package parser turns accumulated markdown text into the block model. The
// streaming entry point re-tokenizes only the unstable tail of the text on
// each update, so per-update work stays proportional to the tail instead of
// the whole document.
package parser

import (
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// Token is one top-level node from the markdown lexer together with the
// source bytes its segments index into.
type Token struct {
	Kind   string
	Node   ast.Node
	Source []byte
}

// Tokenizer converts a markdown string into a flat token stream. The
// goldmark-backed implementation is the default; any CommonMark lexer
// producing the same shape can substitute.
type Tokenizer interface {
	Tokenize(input string) ([]Token, error)
}

type goldmarkTokenizer struct {
	md goldmark.Markdown
}

func newGoldmarkTokenizer() *goldmarkTokenizer {
	return &goldmarkTokenizer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.Table, extension.Strikethrough),
		),
	}
}

// Tokenize parses input and returns the document's top-level nodes. Lexer
// panics are converted to errors so a malformed tail can never take down the
// stream.
func (t *goldmarkTokenizer) Tokenize(input string) (toks []Token, err error) {
	defer func() {
		if r := recover(); r != nil {
			toks = nil
			err = fmt.Errorf("tokenizer panic: %v", r)
		}
	}()

	source := []byte(input)
	doc := t.md.Parser().Parse(text.NewReader(source))
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		toks = append(toks, Token{Kind: tokenKind(n), Node: n, Source: source})
	}
	return toks, nil
}

// tokenKind maps a goldmark node to the lexer-neutral token type strings the
// extension registry is keyed by.
func tokenKind(n ast.Node) string {
	switch n.(type) {
	case *ast.Heading:
		return "heading"
	case *ast.Paragraph, *ast.TextBlock:
		return "paragraph"
	case *ast.FencedCodeBlock, *ast.CodeBlock:
		return "code"
	case *ast.List:
		return "list"
	case *ast.Blockquote:
		return "blockquote"
	case *ast.ThematicBreak:
		return "hr"
	case *ast.HTMLBlock:
		return "html"
	case *east.Table:
		return "table"
	default:
		return "unknown"
	}
}
