package docx

import (
	"strings"

	"github.com/beevik/etree"

	"github.com/swilloughby/typeset/model"
	"github.com/swilloughby/typeset/units"
)

// Option configures the importer.
type Option func(*importer)

// WithNumbering supplies a parsed numbering.xml so list blocks can derive
// ordered versus bullet from the referenced numbering definition. Without
// it every list imports as unordered.
func WithNumbering(nm *NumberingMap) Option {
	return func(imp *importer) {
		imp.numbering = nm
	}
}

type importer struct {
	styles    *StyleMap
	numbering *NumberingMap
}

// ParseDocument imports a document.xml part into a block tree. Styles may
// be nil, in which case only inline properties are resolved. Malformed XML
// yields an empty tree.
func ParseDocument(xmlStr string, styles *StyleMap, opts ...Option) []model.Block {
	imp := &importer{styles: styles}
	for _, opt := range opts {
		opt(imp)
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromString(xmlStr); err != nil {
		return nil
	}
	root := doc.Root()
	if root == nil || root.Tag != "document" {
		return nil
	}
	body := childElem(root, "body")
	if body == nil {
		return nil
	}

	return imp.parseBlocks(flattenStructured(body.ChildElements()))
}

// flattenStructured expands sdt wrappers into their content children so
// the block walk and list grouping see one uninterrupted element stream.
func flattenStructured(children []*etree.Element) []*etree.Element {
	var out []*etree.Element
	for _, el := range children {
		if el.Tag == "sdt" {
			if content := childElem(el, "sdtContent"); content != nil {
				out = append(out, flattenStructured(content.ChildElements())...)
			}
			continue
		}
		out = append(out, el)
	}
	return out
}

// parseBlocks walks body-level elements in document order, grouping
// consecutive numbered paragraphs into list blocks. It is reused
// recursively for table cell content.
func (imp *importer) parseBlocks(children []*etree.Element) []model.Block {
	var blocks []model.Block
	var list *model.List

	for _, el := range children {
		switch el.Tag {
		case "p":
			pp := imp.parseParagraph(el)
			if pp.inList {
				// Uninterrupted numbered paragraphs merge into one
				// list even across numId changes; the list keeps the
				// first paragraph's numId.
				if list == nil {
					list = &model.List{
						Ordered: imp.numbering.Ordered(pp.numID),
						NumID:   pp.numID,
					}
					blocks = append(blocks, list)
				}
				if pp.block != nil {
					list.Items = append(list.Items, model.ListItem{Blocks: []model.Block{pp.block}})
				}
			} else {
				list = nil
				if pp.block != nil {
					blocks = append(blocks, pp.block)
				}
			}
			blocks = append(blocks, pp.images...)
		case "tbl":
			list = nil
			blocks = append(blocks, imp.parseTable(el))
		case "sectPr":
			// Page geometry is ParseSection's concern.
		}
	}

	return blocks
}

// parsedParagraph is the outcome of importing one w:p element.
type parsedParagraph struct {
	block  model.Block   // *model.Paragraph or *model.Heading; nil for drawing-only paragraphs
	images []model.Block // image blocks extracted from the paragraph's runs
	inList bool
	numID  string
}

func (imp *importer) parseParagraph(p *etree.Element) parsedParagraph {
	pPr := childElem(p, "pPr")
	styleID := childVal(pPr, "pStyle")

	out := parsedParagraph{}
	if numPr := childElem(pPr, "numPr"); numPr != nil {
		out.inList = true
		out.numID = childVal(numPr, "numId")
	}

	style := imp.resolveParagraph(styleID, paragraphStyleFromPPr(pPr))
	runs, images := imp.parseRuns(p, styleID)
	out.images = images

	// Paragraphs that produced only images contribute no text block; all
	// others are kept, runs or not. Empty paragraphs are
	// layout-significant vertical space.
	if len(runs) == 0 && len(images) > 0 {
		return out
	}

	if level := HeadingLevel(styleID); level > 0 {
		out.block = &model.Heading{Level: level, Runs: runs, Style: style}
	} else {
		out.block = &model.Paragraph{Runs: runs, Style: style}
	}
	return out
}

func (imp *importer) resolveParagraph(styleID string, inline *model.ParagraphStyle) *model.ParagraphStyle {
	if imp.styles == nil {
		if inline.IsZero() {
			return nil
		}
		return inline
	}
	return imp.styles.ResolveParagraph(styleID, inline)
}

func (imp *importer) resolveRun(paraStyleID, charStyleID string, inline *model.RunStyle) *model.RunStyle {
	if imp.styles == nil {
		if inline.IsZero() {
			return nil
		}
		return inline
	}
	return imp.styles.ResolveRun(paraStyleID, charStyleID, inline)
}

// parseRuns collects the paragraph's text runs and any inline images.
// Hyperlink wrappers are transparent: their runs import like any other.
func (imp *importer) parseRuns(p *etree.Element, paraStyleID string) ([]model.Run, []model.Block) {
	var runs []model.Run
	var images []model.Block

	for _, child := range p.ChildElements() {
		switch child.Tag {
		case "r":
			imp.appendRun(child, paraStyleID, &runs, &images)
		case "hyperlink":
			for _, r := range childElems(child, "r") {
				imp.appendRun(r, paraStyleID, &runs, &images)
			}
		}
	}

	return runs, images
}

// appendRun imports one w:r element. Text-producing children (w:t, w:tab,
// w:br) concatenate into a single run in document order; a run boundary or
// differing style is what splits runs, never the children themselves.
func (imp *importer) appendRun(r *etree.Element, paraStyleID string, runs *[]model.Run, images *[]model.Block) {
	rPr := childElem(r, "rPr")
	charStyleID := childVal(rPr, "rStyle")

	var text strings.Builder
	for _, c := range r.ChildElements() {
		switch c.Tag {
		case "t":
			text.WriteString(c.Text())
		case "tab":
			text.WriteString("\t")
		case "br", "cr":
			text.WriteString("\n")
		case "drawing":
			if img := imageFromDrawing(c); img != nil {
				*images = append(*images, img)
			}
		}
	}

	if text.Len() == 0 {
		return
	}
	*runs = append(*runs, model.Run{
		Text:  text.String(),
		Style: imp.resolveRun(paraStyleID, charStyleID, runStyleFromRPr(rPr)),
	})
}

// imageFromDrawing extracts an image block from a w:drawing element.
// Extents stay in EMU. Drawings without a relationship reference are
// dropped: there is nothing to render without a target part.
func imageFromDrawing(drawing *etree.Element) model.Block {
	holder := findFirst(drawing, "inline", "anchor")
	if holder == nil {
		return nil
	}

	blip := findDeep(holder, "blip")
	embed := attrVal(blip, "embed")
	if embed == "" {
		return nil
	}

	img := &model.Image{EmbedID: embed}
	if extent := childElem(holder, "extent"); extent != nil {
		if w, ok := units.ParseEMU(attrVal(extent, "cx")); ok {
			img.WidthEMU = w
		}
		if h, ok := units.ParseEMU(attrVal(extent, "cy")); ok {
			img.HeightEMU = h
		}
	}
	return img
}
