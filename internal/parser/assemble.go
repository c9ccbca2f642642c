package parser

import (
	"strings"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
	gtext "github.com/yuin/goldmark/text"

	"github.com/time-gift24/mdflow/internal/blocks"
)

// assemble is the built-in token-to-block mapping. It returns nil for tokens
// that produce no output (blank or unrecognized nodes); that is never an
// error. Pure and synchronous.
func assemble(tok Token, position int) *blocks.Block {
	source := tok.Source

	switch n := tok.Node.(type) {
	case *ast.Heading:
		b := blocks.New(blocks.KindHeading, position, rawText(n, source))
		level := n.Level
		if level < 1 {
			level = 1
		}
		b.Heading = &blocks.HeadingData{Level: level}
		b.Content = textOf(n, source)
		b.Inlines = inlinesOf(n, source)
		return &b

	case *ast.Paragraph:
		return assembleParagraph(n, source, position)

	case *ast.TextBlock:
		return assembleParagraph(n, source, position)

	case *ast.FencedCodeBlock:
		body := linesValue(n, source)
		b := blocks.New(blocks.KindCode, position, body)
		lang := ""
		if l := n.Language(source); l != nil {
			lang = string(l)
		}
		b.Code = &blocks.CodeData{Language: lang, Content: body}
		b.Content = body
		return &b

	case *ast.CodeBlock:
		body := linesValue(n, source)
		b := blocks.New(blocks.KindCode, position, body)
		b.Code = &blocks.CodeData{Content: body}
		b.Content = body
		return &b

	case *ast.List:
		b := blocks.New(blocks.KindList, position, rawText(n, source))
		b.List = assembleList(n, source, 0)
		return &b

	case *ast.Blockquote:
		content := flattenBlocks(n, source)
		b := blocks.New(blocks.KindBlockquote, position, rawText(n, source))
		b.Blockquote = &blocks.BlockquoteData{Content: content}
		b.Content = content
		return &b

	case *ast.ThematicBreak:
		b := blocks.New(blocks.KindThematicBreak, position, "---")
		return &b

	case *ast.HTMLBlock:
		body := htmlBlockValue(n, source)
		b := blocks.New(blocks.KindHTML, position, body)
		b.Content = body
		return &b

	case *east.Table:
		b := blocks.New(blocks.KindTable, position, rawText(n, source))
		b.Table = assembleTable(n, source)
		return &b

	default:
		return nil
	}
}

func assembleParagraph(n ast.Node, source []byte, position int) *blocks.Block {
	content := textOf(n, source)
	if strings.TrimSpace(content) == "" {
		return nil
	}
	b := blocks.New(blocks.KindParagraph, position, rawText(n, source))
	b.Content = content
	b.Inlines = inlinesOf(n, source)
	return &b
}

// assembleList materializes list items, embedding one nested list level per
// item. Nesting past the depth guard is flattened into the item's text.
func assembleList(n *ast.List, source []byte, depth int) *blocks.ListData {
	data := &blocks.ListData{Ordered: n.IsOrdered()}

	for item := n.FirstChild(); item != nil; item = item.NextSibling() {
		var li blocks.ListItem
		var parts []string

		for c := item.FirstChild(); c != nil; c = c.NextSibling() {
			if sub, ok := c.(*ast.List); ok {
				if blocks.CanNest(blocks.KindList, depth+1) {
					li.Nested = assembleList(sub, source, depth+1)
				} else {
					parts = append(parts, textOf(sub, source))
				}
				continue
			}
			if txt := textOf(c, source); txt != "" {
				parts = append(parts, txt)
			}
			li.Inlines = append(li.Inlines, inlinesOf(c, source)...)
		}

		li.Content = strings.Join(parts, "\n")
		data.Items = append(data.Items, li)
	}
	return data
}

func assembleTable(n ast.Node, source []byte) *blocks.TableData {
	data := &blocks.TableData{}

	for row := n.FirstChild(); row != nil; row = row.NextSibling() {
		var cells []string
		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			cells = append(cells, textOf(cell, source))
		}

		switch row.(type) {
		case *east.TableHeader:
			data.Header = cells
			for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
				if tc, ok := cell.(*east.TableCell); ok {
					data.Alignments = append(data.Alignments, alignmentString(tc.Alignment))
				}
			}
		case *east.TableRow:
			data.Rows = append(data.Rows, cells)
		}
	}
	return data
}

func alignmentString(a east.Alignment) string {
	switch a {
	case east.AlignLeft:
		return "left"
	case east.AlignRight:
		return "right"
	case east.AlignCenter:
		return "center"
	}
	return ""
}

// flattenBlocks joins the text of a container's child blocks, one segment
// per block. Used for the blockquote's flattened representation.
func flattenBlocks(n ast.Node, source []byte) string {
	var parts []string
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if txt := textOf(c, source); txt != "" {
			parts = append(parts, txt)
		}
	}
	return strings.Join(parts, "\n")
}

// rawText recovers the original source substring covered by a node's line
// segments, descending into children for container nodes.
func rawText(n ast.Node, source []byte) string {
	start, stop := -1, -1
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering || c.Type() != ast.TypeBlock {
			return ast.WalkContinue, nil
		}
		lines := c.Lines()
		if lines == nil || lines.Len() == 0 {
			return ast.WalkContinue, nil
		}
		first, last := lines.At(0), lines.At(lines.Len()-1)
		if start < 0 || first.Start < start {
			start = first.Start
		}
		if last.Stop > stop {
			stop = last.Stop
		}
		return ast.WalkContinue, nil
	})
	if start < 0 || stop > len(source) {
		return ""
	}
	return string(source[start:stop])
}

// linesValue concatenates a block node's line segments.
func linesValue(n ast.Node, source []byte) string {
	lines := n.Lines()
	if lines == nil || lines.Len() == 0 {
		return ""
	}
	var sb strings.Builder
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		sb.Write(seg.Value(source))
	}
	return sb.String()
}

func htmlBlockValue(n *ast.HTMLBlock, source []byte) string {
	var sb strings.Builder
	sb.WriteString(linesValue(n, source))
	if n.HasClosure() {
		sb.Write(closureValue(n.ClosureLine, source))
	}
	return sb.String()
}

func closureValue(seg gtext.Segment, source []byte) []byte {
	if seg.Start < 0 || seg.Stop > len(source) || seg.Start >= seg.Stop {
		return nil
	}
	return seg.Value(source)
}
