package docx

import (
	"github.com/beevik/etree"

	"github.com/swilloughby/typeset/model"
	"github.com/swilloughby/typeset/units"
)

// ParseSection extracts page geometry from a document.xml part's section
// properties (w:sectPr). All lengths convert from twips to millimeters.
// It returns nil when the part has no section properties; callers choose
// their own default page size, this function never substitutes one.
func ParseSection(xmlStr string) *model.PageStyle {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(xmlStr); err != nil {
		return nil
	}
	root := doc.Root()
	if root == nil {
		return nil
	}

	sectPr := findDeep(root, "sectPr")
	if sectPr == nil {
		return nil
	}

	ps := &model.PageStyle{}
	if pgSz := childElem(sectPr, "pgSz"); pgSz != nil {
		if v, ok := units.ParseTwipsToMillimeters(attrVal(pgSz, "w")); ok {
			ps.WidthMM = v
		}
		if v, ok := units.ParseTwipsToMillimeters(attrVal(pgSz, "h")); ok {
			ps.HeightMM = v
		}
	}
	if pgMar := childElem(sectPr, "pgMar"); pgMar != nil {
		if v, ok := units.ParseTwipsToMillimeters(attrVal(pgMar, "top")); ok {
			ps.Margins.TopMM = v
		}
		if v, ok := units.ParseTwipsToMillimeters(attrVal(pgMar, "right")); ok {
			ps.Margins.RightMM = v
		}
		if v, ok := units.ParseTwipsToMillimeters(attrVal(pgMar, "bottom")); ok {
			ps.Margins.BottomMM = v
		}
		if v, ok := units.ParseTwipsToMillimeters(attrVal(pgMar, "left")); ok {
			ps.Margins.LeftMM = v
		}
		if v, ok := units.ParseTwipsToMillimeters(attrVal(pgMar, "header")); ok {
			ps.Margins.HeaderMM = v
		}
		if v, ok := units.ParseTwipsToMillimeters(attrVal(pgMar, "footer")); ok {
			ps.Margins.FooterMM = v
		}
	}

	return ps
}
