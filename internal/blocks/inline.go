package blocks

// InlineKind discriminates rich-text span types inside block content.
type InlineKind string

const (
	InlineText          InlineKind = "text"
	InlineBold          InlineKind = "bold"
	InlineItalic        InlineKind = "italic"
	InlineStrikethrough InlineKind = "strikethrough"
	InlineCode          InlineKind = "code"
	InlineLink          InlineKind = "link"
	InlineImage         InlineKind = "image"
	InlineHardBreak     InlineKind = "hard-break"
	InlineSuperscript   InlineKind = "superscript"
	InlineSubscript     InlineKind = "subscript"
	InlineFootnoteRef   InlineKind = "footnote-reference"
)

// Inline is a recursive rich-text span. A leaf (no children) renders its
// Content literally; a container with children renders by expanding them.
// Content is preserved byte-for-byte, no escaping at this layer.
type Inline struct {
	Kind     InlineKind `json:"type"`
	Content  string     `json:"content,omitempty"`
	Href     string     `json:"href,omitempty"`
	Src      string     `json:"src,omitempty"`
	Alt      string     `json:"alt,omitempty"`
	Children []Inline   `json:"children,omitempty"`
}
