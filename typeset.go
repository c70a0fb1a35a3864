// Package typeset converts pre-extracted OOXML wordprocessing parts into
// a style-resolved block tree and keeps a paginated layout view of that
// tree current under edits.
//
// Basic usage:
//
//	pkg := typeset.ParsePackage(typeset.Parts{
//	    DocumentXML: docXML,
//	    StylesXML:   stylesXML,
//	})
//	store := docstore.NewStore(nil)
//	store.Open("report.docx", pkg.OpenInput())
//
// The lower-level docx, docstore, and relayout packages remain available
// for callers that need finer control.
package typeset

import (
	"github.com/swilloughby/typeset/docstore"
	"github.com/swilloughby/typeset/docx"
	"github.com/swilloughby/typeset/model"
)

// Parts carries the XML of the individual package parts plus the package
// maps, as produced by the host's archive extractor. Absent parts stay
// empty.
type Parts struct {
	DocumentXML  string
	StylesXML    string
	NumberingXML string
	HeaderXML    string
	FooterXML    string

	Relationships map[string]string
	Media         map[string][]byte
	StyleRefs     map[string]string
}

// ParsedPackage is the import result for one document package.
type ParsedPackage struct {
	Blocks       []model.Block
	HeaderBlocks []model.Block
	FooterBlocks []model.Block
	PageStyle    *model.PageStyle // nil when the document has no section properties
	Styles       *docx.StyleMap

	parts Parts
}

// ParsePackage imports every supplied part. Parsing is tolerant
// throughout: malformed parts yield empty results, never errors.
func ParsePackage(parts Parts) ParsedPackage {
	styles := docx.ParseStyles(parts.StylesXML)
	numbering := docx.ParseNumbering(parts.NumberingXML)

	out := ParsedPackage{
		Styles: styles,
		parts:  parts,
	}
	out.Blocks = docx.ParseDocument(parts.DocumentXML, styles, docx.WithNumbering(numbering))
	if parts.HeaderXML != "" {
		out.HeaderBlocks = docx.ParseHeaderFooter(parts.HeaderXML, styles, docx.WithNumbering(numbering))
	}
	if parts.FooterXML != "" {
		out.FooterBlocks = docx.ParseHeaderFooter(parts.FooterXML, styles, docx.WithNumbering(numbering))
	}
	out.PageStyle = docx.ParseSection(parts.DocumentXML)
	return out
}

// OpenInput adapts the parse result for docstore.Store.Open.
func (p ParsedPackage) OpenInput() docstore.OpenInput {
	return docstore.OpenInput{
		Blocks:        p.Blocks,
		HeaderBlocks:  p.HeaderBlocks,
		FooterBlocks:  p.FooterBlocks,
		Relationships: p.parts.Relationships,
		Media:         p.parts.Media,
		StyleRefs:     p.parts.StyleRefs,
	}
}
