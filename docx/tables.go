package docx

import (
	"github.com/beevik/etree"

	"github.com/swilloughby/typeset/model"
)

// parseTable imports a w:tbl element. Cell content goes back through the
// block walker, so cells containing lists or nested tables import with the
// same grammar as the body.
func (imp *importer) parseTable(tbl *etree.Element) *model.Table {
	t := &model.Table{}

	for _, tr := range childElems(tbl, "tr") {
		row := model.TableRow{}
		for _, tc := range childElems(tr, "tc") {
			row.Cells = append(row.Cells, model.TableCell{
				Blocks: imp.parseBlocks(flattenStructured(tc.ChildElements())),
			})
		}
		t.Rows = append(t.Rows, row)
	}

	return t
}
