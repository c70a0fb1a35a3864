package model

// BlockKind identifies the concrete type of a Block.
type BlockKind int

const (
	BlockKindUnknown BlockKind = iota
	BlockKindParagraph
	BlockKindHeading
	BlockKindList
	BlockKindTable
	BlockKindImage
)

func (bk BlockKind) String() string {
	switch bk {
	case BlockKindParagraph:
		return "paragraph"
	case BlockKindHeading:
		return "heading"
	case BlockKindList:
		return "list"
	case BlockKindTable:
		return "table"
	case BlockKindImage:
		return "image"
	default:
		return "unknown"
	}
}

// Block is the interface implemented by all block-level IR nodes.
type Block interface {
	Kind() BlockKind
}

// Run is a contiguous span of text sharing one character style.
type Run struct {
	Text  string    `json:"text"`
	Style *RunStyle `json:"style,omitempty"`
}

// Paragraph is a body paragraph. Runs may be empty: paragraphs without text
// still occupy vertical space and are preserved by the importer.
type Paragraph struct {
	Runs  []Run           `json:"runs"`
	Style *ParagraphStyle `json:"paragraphStyle,omitempty"`
}

func (p *Paragraph) Kind() BlockKind { return BlockKindParagraph }

// Text returns the concatenated run text.
func (p *Paragraph) Text() string {
	var s string
	for _, r := range p.Runs {
		s += r.Text
	}
	return s
}

// Heading is a paragraph whose style resolved to a heading level 1-9.
type Heading struct {
	Level int             `json:"level"`
	Runs  []Run           `json:"runs"`
	Style *ParagraphStyle `json:"paragraphStyle,omitempty"`
}

func (h *Heading) Kind() BlockKind { return BlockKindHeading }

// Text returns the concatenated run text.
func (h *Heading) Text() string {
	var s string
	for _, r := range h.Runs {
		s += r.Text
	}
	return s
}

// ListItem is a single item of a List. Item content is a nested block
// sequence; in practice one paragraph per source list paragraph.
type ListItem struct {
	Blocks []Block `json:"blocks"`
}

// List groups consecutive numbered paragraphs into one block.
type List struct {
	Ordered bool       `json:"ordered"`
	Items   []ListItem `json:"items"`
	// NumID records the numbering instance of the first grouped paragraph.
	NumID string `json:"numId,omitempty"`
}

func (l *List) Kind() BlockKind { return BlockKindList }

// TableCell holds recursively imported cell content; cells may legally
// contain lists and nested tables.
type TableCell struct {
	Blocks []Block `json:"blocks"`
}

// TableRow is one row of a Table.
type TableRow struct {
	Cells []TableCell `json:"cells"`
}

// Table is an imported w:tbl element.
type Table struct {
	Rows []TableRow `json:"rows"`
}

func (t *Table) Kind() BlockKind { return BlockKindTable }

// Image is an inline drawing with a relationship reference. Extents stay in
// EMU; conversion to display units is the renderer's concern.
type Image struct {
	EmbedID   string `json:"embedId"`
	WidthEMU  int64  `json:"widthEmu"`
	HeightEMU int64  `json:"heightEmu"`
}

func (i *Image) Kind() BlockKind { return BlockKindImage }
