// Package blocks defines the structured block tree produced by the streaming
// markdown parser. A Block is the unit of rendering granularity: the parser
// emits a flat list of blocks with stable identities so a UI layer can diff
// successive parses cheaply.
package blocks

import "fmt"

// Kind discriminates block types. Extensions may introduce additional kinds;
// the core only ever emits the constants below.
type Kind string

const (
	KindParagraph     Kind = "paragraph"
	KindHeading       Kind = "heading"
	KindCode          Kind = "code"
	KindList          Kind = "list"
	KindBlockquote    Kind = "blockquote"
	KindTable         Kind = "table"
	KindThematicBreak Kind = "thematic-break"
	KindHTML          Kind = "html"
	KindFootnoteDef   Kind = "footnote-definition"
	KindUnknown       Kind = "unknown"
	KindRaw           Kind = "raw"
)

// Block is one structural unit of a markdown document. Exactly one payload
// pointer is non-nil, matching Kind; all other payloads stay nil.
type Block struct {
	ID       string `json:"id"`
	Kind     Kind   `json:"type"`
	Raw      string `json:"raw"`
	Content  string `json:"content,omitempty"`
	Complete bool   `json:"complete"`
	Position int    `json:"position"`

	Inlines []Inline `json:"inlines,omitempty"`

	Heading    *HeadingData    `json:"heading,omitempty"`
	Code       *CodeData       `json:"code,omitempty"`
	List       *ListData       `json:"list,omitempty"`
	Blockquote *BlockquoteData `json:"blockquote,omitempty"`
	Table      *TableData      `json:"table,omitempty"`
}

// HeadingData carries the heading level (1-6).
type HeadingData struct {
	Level int `json:"level"`
}

// CodeData carries the fence body before any highlighting is applied.
// Language is empty when the fence had no info string.
type CodeData struct {
	Language string `json:"language,omitempty"`
	Content  string `json:"content"`
}

// ListData carries list items and the ordered/unordered subtype.
type ListData struct {
	Ordered bool       `json:"ordered"`
	Items   []ListItem `json:"items"`
}

// ListItem is a paragraph-shaped list entry. Nested holds at most one
// embedded sub-list, bounded by the depth guard.
type ListItem struct {
	Content string    `json:"content"`
	Inlines []Inline  `json:"inlines,omitempty"`
	Nested  *ListData `json:"nested,omitempty"`
}

// BlockquoteData carries the quote's flattened text content. Nested block
// decomposition is deliberately not modeled; see DESIGN.md.
type BlockquoteData struct {
	Content string `json:"content"`
}

// TableData carries header cells, body rows and per-column alignment
// ("left", "center", "right" or "" for unset).
type TableData struct {
	Header     []string   `json:"header"`
	Rows       [][]string `json:"rows"`
	Alignments []string   `json:"alignments"`
}

// ID derives the stable block identifier. It is a pure function of kind and
// position so re-parsing identical content yields identical ids.
func ID(kind Kind, position int) string {
	return fmt.Sprintf("%s-%d", kind, position)
}

// New creates a block with its derived id. Payloads are attached by the
// caller after construction.
func New(kind Kind, position int, raw string) Block {
	return Block{
		ID:       ID(kind, position),
		Kind:     kind,
		Raw:      raw,
		Complete: true,
		Position: position,
	}
}

// ParseResult is the parser's output: the block list plus a flag marking the
// trailing block as provisional. Plain data, safe to serialize.
type ParseResult struct {
	Blocks             []Block `json:"blocks"`
	HasIncompleteBlock bool    `json:"hasIncompleteBlock"`
}
