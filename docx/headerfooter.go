package docx

import (
	"github.com/beevik/etree"

	"github.com/swilloughby/typeset/model"
)

// ParseHeaderFooter imports a header or footer part (w:hdr / w:ftr root).
// The body grammar applies unchanged; only the root element differs.
func ParseHeaderFooter(xmlStr string, styles *StyleMap, opts ...Option) []model.Block {
	imp := &importer{styles: styles}
	for _, opt := range opts {
		opt(imp)
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromString(xmlStr); err != nil {
		return nil
	}
	root := doc.Root()
	if root == nil || (root.Tag != "hdr" && root.Tag != "ftr") {
		return nil
	}

	return imp.parseBlocks(flattenStructured(root.ChildElements()))
}
