package parser

import (
	"strings"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"

	"github.com/time-gift24/mdflow/internal/blocks"
)

// inlinesOf converts a node's inline children into the Inline model.
func inlinesOf(n ast.Node, source []byte) []blocks.Inline {
	var out []blocks.Inline
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		out = append(out, inlineNode(c, source)...)
	}
	return out
}

// inlineNode maps one goldmark inline node. Literal content is preserved
// byte-for-byte; escaping is the rendering layer's concern.
func inlineNode(n ast.Node, source []byte) []blocks.Inline {
	switch t := n.(type) {
	case *ast.Text:
		var spans []blocks.Inline
		if content := string(t.Segment.Value(source)); content != "" {
			spans = append(spans, blocks.Inline{Kind: blocks.InlineText, Content: content})
		}
		if t.HardLineBreak() {
			spans = append(spans, blocks.Inline{Kind: blocks.InlineHardBreak})
		} else if t.SoftLineBreak() {
			spans = append(spans, blocks.Inline{Kind: blocks.InlineText, Content: "\n"})
		}
		return spans

	case *ast.String:
		return []blocks.Inline{{Kind: blocks.InlineText, Content: string(t.Value)}}

	case *ast.Emphasis:
		kind := blocks.InlineItalic
		if t.Level >= 2 {
			kind = blocks.InlineBold
		}
		return []blocks.Inline{{Kind: kind, Children: inlinesOf(n, source)}}

	case *east.Strikethrough:
		return []blocks.Inline{{Kind: blocks.InlineStrikethrough, Children: inlinesOf(n, source)}}

	case *ast.CodeSpan:
		return []blocks.Inline{{Kind: blocks.InlineCode, Content: textOf(n, source)}}

	case *ast.Link:
		return []blocks.Inline{{
			Kind:     blocks.InlineLink,
			Href:     string(t.Destination),
			Children: inlinesOf(n, source),
		}}

	case *ast.AutoLink:
		url := string(t.URL(source))
		return []blocks.Inline{{Kind: blocks.InlineLink, Href: url, Content: string(t.Label(source))}}

	case *ast.Image:
		return []blocks.Inline{{
			Kind: blocks.InlineImage,
			Src:  string(t.Destination),
			Alt:  textOf(n, source),
		}}

	case *ast.RawHTML:
		var sb strings.Builder
		for i := 0; i < t.Segments.Len(); i++ {
			seg := t.Segments.At(i)
			sb.Write(seg.Value(source))
		}
		return []blocks.Inline{{Kind: blocks.InlineText, Content: sb.String()}}

	default:
		if txt := textOf(n, source); txt != "" {
			return []blocks.Inline{{Kind: blocks.InlineText, Content: txt}}
		}
		return nil
	}
}

// textOf flattens a node subtree to its literal text.
func textOf(n ast.Node, source []byte) string {
	var sb strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			sb.Write(t.Segment.Value(source))
			if t.SoftLineBreak() || t.HardLineBreak() {
				sb.WriteByte('\n')
			}
		case *ast.String:
			sb.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return sb.String()
}
