package model

import "math"

// PageMargins holds section margins in millimeters.
type PageMargins struct {
	TopMM    float64 `json:"topMm"`
	RightMM  float64 `json:"rightMm"`
	BottomMM float64 `json:"bottomMm"`
	LeftMM   float64 `json:"leftMm"`
	HeaderMM float64 `json:"headerMm"`
	FooterMM float64 `json:"footerMm"`
}

// PageStyle holds the page geometry extracted from section properties,
// in millimeters.
type PageStyle struct {
	WidthMM  float64     `json:"widthMm"`
	HeightMM float64     `json:"heightMm"`
	Margins  PageMargins `json:"margins"`
}

// DefaultPageStyle returns A4 with 25mm margins and 12mm header/footer
// bands. Section parsing never falls back to this implicitly; callers that
// get a nil PageStyle choose their own default.
func DefaultPageStyle() PageStyle {
	return PageStyle{
		WidthMM:  210,
		HeightMM: 297,
		Margins: PageMargins{
			TopMM:    25,
			RightMM:  25,
			BottomMM: 25,
			LeftMM:   25,
			HeaderMM: 12,
			FooterMM: 12,
		},
	}
}

// BodyWidthMM returns the horizontal extent available to body text.
func (ps PageStyle) BodyWidthMM() float64 {
	w := ps.WidthMM - math.Max(ps.Margins.LeftMM, 0) - math.Max(ps.Margins.RightMM, 0)
	return math.Max(w, 0)
}

// BodyHeightMM returns the vertical extent available to body text, after
// margins and the header/footer bands.
func (ps PageStyle) BodyHeightMM() float64 {
	h := ps.HeightMM - math.Max(ps.Margins.TopMM, 0) - math.Max(ps.Margins.BottomMM, 0) -
		math.Max(ps.Margins.HeaderMM, 0) - math.Max(ps.Margins.FooterMM, 0)
	return math.Max(h, 0)
}

// BodyHeightPx converts BodyHeightMM to pixels at the given DPI.
func (ps PageStyle) BodyHeightPx(dpi float64) float64 {
	const mmPerInch = 25.4
	if dpi <= 0 {
		return 0
	}
	return ps.BodyHeightMM() / mmPerInch * dpi
}

// BodyWidthPx converts BodyWidthMM to pixels at the given DPI.
func (ps PageStyle) BodyWidthPx(dpi float64) float64 {
	const mmPerInch = 25.4
	if dpi <= 0 {
		return 0
	}
	return ps.BodyWidthMM() / mmPerInch * dpi
}
