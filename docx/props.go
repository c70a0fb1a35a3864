package docx

import (
	"sort"

	"github.com/beevik/etree"

	"github.com/swilloughby/typeset/model"
	"github.com/swilloughby/typeset/units"
)

// normalizeAlignment maps OOXML justification values onto the model's
// alignment vocabulary. Unrecognized values are dropped, not defaulted.
func normalizeAlignment(val string) (string, bool) {
	switch val {
	case "left", "start":
		return model.AlignLeft, true
	case "right", "end":
		return model.AlignRight, true
	case "center":
		return model.AlignCenter, true
	case "both", "justify", "distribute":
		return model.AlignJustify, true
	default:
		return "", false
	}
}

// paragraphStyleFromPPr extracts the paragraph properties present on a
// w:pPr element. It returns nil when the element carries nothing the model
// represents.
func paragraphStyleFromPPr(pPr *etree.Element) *model.ParagraphStyle {
	if pPr == nil {
		return nil
	}
	ps := &model.ParagraphStyle{}

	if jc := childVal(pPr, "jc"); jc != "" {
		if norm, ok := normalizeAlignment(jc); ok {
			ps.Alignment = model.String(norm)
		}
	}

	if spacing := childElem(pPr, "spacing"); spacing != nil {
		if v, ok := units.ParseTwipsToPoints(attrVal(spacing, "before")); ok {
			ps.SpacingBeforePt = model.Float(v)
		}
		if v, ok := units.ParseTwipsToPoints(attrVal(spacing, "after")); ok {
			ps.SpacingAfterPt = model.Float(v)
		}
		if lineAttr := attrVal(spacing, "line"); lineAttr != "" {
			rule := attrVal(spacing, "lineRule")
			switch rule {
			case "exact", "atLeast":
				if v, ok := units.ParseTwipsToPoints(lineAttr); ok {
					ps.LineHeight = model.Float(v)
					ps.LineHeightRule = model.String(rule)
				}
			default:
				// auto (or absent): w:line counts 240ths of a line.
				if v, ok := units.ParseFloat(lineAttr); ok {
					ps.LineHeight = model.Float(v / 240)
					ps.LineHeightRule = model.String(model.LineRuleAuto)
				}
			}
		}
	}

	if ind := childElem(pPr, "ind"); ind != nil {
		if v, ok := units.ParseTwipsToPoints(firstAttr(ind, "left", "start")); ok {
			ps.IndentLeftPt = model.Float(v)
		}
		if v, ok := units.ParseTwipsToPoints(firstAttr(ind, "right", "end")); ok {
			ps.IndentRightPt = model.Float(v)
		}
		// firstLine and hanging are mutually exclusive; firstLine wins
		// when both are present. Hanging becomes a negative first-line
		// indent.
		if v, ok := units.ParseTwipsToPoints(attrVal(ind, "firstLine")); ok {
			ps.IndentFirstLine = model.Float(v)
		} else if v, ok := units.ParseTwipsToPoints(attrVal(ind, "hanging")); ok {
			ps.IndentFirstLine = model.Float(-v)
		}
	}

	if tabs := childElem(pPr, "tabs"); tabs != nil {
		var stops []float64
		for _, tab := range childElems(tabs, "tab") {
			if v, ok := units.ParseTwipsToPoints(attrVal(tab, "pos")); ok && v > 0 {
				stops = append(stops, v)
			}
		}
		sort.Float64s(stops)
		ps.TabStopsPt = stops
	}

	if ps.IsZero() {
		return nil
	}
	return ps
}

// runStyleFromRPr extracts the character properties present on a w:rPr
// element. Toggle properties follow Word semantics: a bare element means
// true, val="false"/"0"/"none" means an explicit off.
func runStyleFromRPr(rPr *etree.Element) *model.RunStyle {
	if rPr == nil {
		return nil
	}
	rs := &model.RunStyle{}

	if fonts := childElem(rPr, "rFonts"); fonts != nil {
		name := attrVal(fonts, "ascii")
		if name == "" {
			name = attrVal(fonts, "hAnsi")
		}
		if name != "" {
			rs.Font = model.String(name)
		}
	}
	if v, ok := units.ParseHalfPointsToPoints(childVal(rPr, "sz")); ok {
		rs.SizePt = model.Float(v)
	}
	if b := childElem(rPr, "b"); b != nil {
		rs.Bold = model.Bool(toggleOn(attrVal(b, "val")))
	}
	if i := childElem(rPr, "i"); i != nil {
		rs.Italic = model.Bool(toggleOn(attrVal(i, "val")))
	}
	if u := childElem(rPr, "u"); u != nil {
		rs.Underline = model.Bool(toggleOn(attrVal(u, "val")))
	}
	if s := childElem(rPr, "strike"); s != nil {
		rs.Strikethrough = model.Bool(toggleOn(attrVal(s, "val")))
	}

	if rs.IsZero() {
		return nil
	}
	return rs
}

// toggleOn interprets an OOXML toggle attribute value.
func toggleOn(val string) bool {
	switch val {
	case "false", "0", "none", "off":
		return false
	default:
		return true
	}
}

// firstAttr returns the first non-empty attribute among the candidate
// local keys.
func firstAttr(el *etree.Element, keys ...string) string {
	for _, key := range keys {
		if v := attrVal(el, key); v != "" {
			return v
		}
	}
	return ""
}
