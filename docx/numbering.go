package docx

import "github.com/beevik/etree"

// NumberingMap resolves numbering instances (numId) to their list kind.
// It is built from numbering.xml: numId maps to an abstractNumId, whose
// level-0 numFmt decides ordered versus bullet.
type NumberingMap struct {
	ordered map[string]bool
}

// ParseNumbering parses a numbering.xml part. Malformed XML yields an
// empty map; every lookup then reports an unordered list.
func ParseNumbering(xmlStr string) *NumberingMap {
	nm := &NumberingMap{ordered: make(map[string]bool)}

	doc := etree.NewDocument()
	if err := doc.ReadFromString(xmlStr); err != nil {
		return nm
	}
	root := doc.Root()
	if root == nil || root.Tag != "numbering" {
		return nm
	}

	// abstractNumId -> ordered, from the first defined level's numFmt.
	abstractOrdered := make(map[string]bool)
	for _, abs := range childElems(root, "abstractNum") {
		id := attrVal(abs, "abstractNumId")
		if id == "" {
			continue
		}
		lvl := childElem(abs, "lvl")
		if lvl == nil {
			continue
		}
		abstractOrdered[id] = numFmtOrdered(childVal(lvl, "numFmt"))
	}

	for _, num := range childElems(root, "num") {
		numID := attrVal(num, "numId")
		absID := childVal(num, "abstractNumId")
		if numID == "" || absID == "" {
			continue
		}
		nm.ordered[numID] = abstractOrdered[absID]
	}

	return nm
}

// numFmtOrdered maps a w:numFmt value to ordered/unordered.
func numFmtOrdered(fmtVal string) bool {
	switch fmtVal {
	case "decimal", "decimalZero", "lowerLetter", "upperLetter",
		"lowerRoman", "upperRoman", "ordinal", "cardinalText", "ordinalText":
		return true
	default:
		// bullet, none, unknown formats
		return false
	}
}

// Ordered reports whether numId refers to an ordered (numbered) list.
// Unknown ids, including every id when no numbering part was supplied,
// report false: the safe default is a bullet list.
func (nm *NumberingMap) Ordered(numID string) bool {
	if nm == nil {
		return false
	}
	return nm.ordered[numID]
}
