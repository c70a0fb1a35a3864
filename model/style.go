package model

// Alignment values are normalized during import: OOXML "start" maps to
// "left", "end" to "right", "both" and "distribute" to "justify".
const (
	AlignLeft    = "left"
	AlignRight   = "right"
	AlignCenter  = "center"
	AlignJustify = "justify"
)

// Line height rules. With RuleAuto, LineHeight is a multiple of the single
// line height; with RuleExact and RuleAtLeast it is a size in points.
const (
	LineRuleAuto    = "auto"
	LineRuleExact   = "exact"
	LineRuleAtLeast = "atLeast"
)

// RunStyle holds character-level formatting. Nil fields mean
// "inherit/unspecified", not false or zero.
type RunStyle struct {
	Font          *string  `json:"font,omitempty"`
	SizePt        *float64 `json:"sizePt,omitempty"`
	Bold          *bool    `json:"bold,omitempty"`
	Italic        *bool    `json:"italic,omitempty"`
	Underline     *bool    `json:"underline,omitempty"`
	Strikethrough *bool    `json:"strikethrough,omitempty"`
}

// IsZero reports whether no field is set.
func (rs *RunStyle) IsZero() bool {
	return rs == nil || (rs.Font == nil && rs.SizePt == nil && rs.Bold == nil &&
		rs.Italic == nil && rs.Underline == nil && rs.Strikethrough == nil)
}

// Clone returns a copy sharing no pointers with the receiver.
func (rs *RunStyle) Clone() *RunStyle {
	if rs == nil {
		return nil
	}
	out := &RunStyle{}
	out.Font = cloneString(rs.Font)
	out.SizePt = cloneFloat(rs.SizePt)
	out.Bold = cloneBool(rs.Bold)
	out.Italic = cloneBool(rs.Italic)
	out.Underline = cloneBool(rs.Underline)
	out.Strikethrough = cloneBool(rs.Strikethrough)
	return out
}

// Merge overlays src's present fields onto a copy of the receiver.
func (rs *RunStyle) Merge(src *RunStyle) *RunStyle {
	if rs == nil {
		return src.Clone()
	}
	out := rs.Clone()
	if src == nil {
		return out
	}
	if src.Font != nil {
		out.Font = cloneString(src.Font)
	}
	if src.SizePt != nil {
		out.SizePt = cloneFloat(src.SizePt)
	}
	if src.Bold != nil {
		out.Bold = cloneBool(src.Bold)
	}
	if src.Italic != nil {
		out.Italic = cloneBool(src.Italic)
	}
	if src.Underline != nil {
		out.Underline = cloneBool(src.Underline)
	}
	if src.Strikethrough != nil {
		out.Strikethrough = cloneBool(src.Strikethrough)
	}
	return out
}

// ParagraphStyle holds paragraph-level formatting. Nil fields mean
// "inherit/unspecified".
type ParagraphStyle struct {
	Alignment       *string   `json:"alignment,omitempty"`
	SpacingBeforePt *float64  `json:"spacingBeforePt,omitempty"`
	SpacingAfterPt  *float64  `json:"spacingAfterPt,omitempty"`
	LineHeight      *float64  `json:"lineHeight,omitempty"`
	LineHeightRule  *string   `json:"lineHeightRule,omitempty"`
	IndentFirstLine *float64  `json:"indentFirstLinePt,omitempty"`
	IndentLeftPt    *float64  `json:"indentLeftPt,omitempty"`
	IndentRightPt   *float64  `json:"indentRightPt,omitempty"`
	TabStopsPt      []float64 `json:"tabStopsPt,omitempty"`
}

// IsZero reports whether no field is set.
func (ps *ParagraphStyle) IsZero() bool {
	return ps == nil || (ps.Alignment == nil && ps.SpacingBeforePt == nil &&
		ps.SpacingAfterPt == nil && ps.LineHeight == nil && ps.LineHeightRule == nil &&
		ps.IndentFirstLine == nil && ps.IndentLeftPt == nil && ps.IndentRightPt == nil &&
		len(ps.TabStopsPt) == 0)
}

// Clone returns a copy sharing no pointers with the receiver.
func (ps *ParagraphStyle) Clone() *ParagraphStyle {
	if ps == nil {
		return nil
	}
	out := &ParagraphStyle{}
	out.Alignment = cloneString(ps.Alignment)
	out.SpacingBeforePt = cloneFloat(ps.SpacingBeforePt)
	out.SpacingAfterPt = cloneFloat(ps.SpacingAfterPt)
	out.LineHeight = cloneFloat(ps.LineHeight)
	out.LineHeightRule = cloneString(ps.LineHeightRule)
	out.IndentFirstLine = cloneFloat(ps.IndentFirstLine)
	out.IndentLeftPt = cloneFloat(ps.IndentLeftPt)
	out.IndentRightPt = cloneFloat(ps.IndentRightPt)
	if len(ps.TabStopsPt) > 0 {
		out.TabStopsPt = append([]float64(nil), ps.TabStopsPt...)
	}
	return out
}

// Merge overlays src's present fields onto a copy of the receiver.
func (ps *ParagraphStyle) Merge(src *ParagraphStyle) *ParagraphStyle {
	if ps == nil {
		return src.Clone()
	}
	out := ps.Clone()
	if src == nil {
		return out
	}
	if src.Alignment != nil {
		out.Alignment = cloneString(src.Alignment)
	}
	if src.SpacingBeforePt != nil {
		out.SpacingBeforePt = cloneFloat(src.SpacingBeforePt)
	}
	if src.SpacingAfterPt != nil {
		out.SpacingAfterPt = cloneFloat(src.SpacingAfterPt)
	}
	if src.LineHeight != nil {
		out.LineHeight = cloneFloat(src.LineHeight)
	}
	if src.LineHeightRule != nil {
		out.LineHeightRule = cloneString(src.LineHeightRule)
	}
	if src.IndentFirstLine != nil {
		out.IndentFirstLine = cloneFloat(src.IndentFirstLine)
	}
	if src.IndentLeftPt != nil {
		out.IndentLeftPt = cloneFloat(src.IndentLeftPt)
	}
	if src.IndentRightPt != nil {
		out.IndentRightPt = cloneFloat(src.IndentRightPt)
	}
	if len(src.TabStopsPt) > 0 {
		out.TabStopsPt = append([]float64(nil), src.TabStopsPt...)
	}
	return out
}

func cloneString(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneFloat(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneBool(p *bool) *bool {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// String returns a pointer to s, for building style literals.
func String(s string) *string { return &s }

// Float returns a pointer to f, for building style literals.
func Float(f float64) *float64 { return &f }

// Bool returns a pointer to b, for building style literals.
func Bool(b bool) *bool { return &b }
