package model

import "time"

// Region identifies an independently laid-out text region of a document.
type Region string

const (
	RegionBody   Region = "body"
	RegionHeader Region = "header"
	RegionFooter Region = "footer"
)

// Regions lists all layout regions in a stable order.
func Regions() []Region {
	return []Region{RegionBody, RegionHeader, RegionFooter}
}

// LineLayout is one visual line returned by the layout engine, in
// top-to-bottom order. Start/End are rune indices into the projected text;
// StartByte/EndByte are UTF-8 byte offsets, required whenever the text is
// not purely ASCII.
type LineLayout struct {
	Start     int     `json:"start"`
	End       int     `json:"end"`
	StartByte int     `json:"startByte"`
	EndByte   int     `json:"endByte"`
	WidthPx   float64 `json:"widthPx"`
	XOffsetPx float64 `json:"xOffsetPx"`
	YOffsetPx float64 `json:"yOffsetPx"`
}

// LayoutCache is the derived layout summary for one region. It is never
// hand-edited: block replacement invalidates it, and only a successful
// layout run writes a new one.
type LayoutCache struct {
	LineCount       int       `json:"lineCount"`
	ContentHeightPx float64   `json:"contentHeightPx"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// ContentHeight computes the region content height from engine lines:
// max(YOffsetPx) + lineHeightPx over all lines, or 0 when there are none.
func ContentHeight(lines []LineLayout, lineHeightPx float64) float64 {
	if len(lines) == 0 {
		return 0
	}
	maxY := 0.0
	for _, ln := range lines {
		if ln.YOffsetPx > maxY {
			maxY = ln.YOffsetPx
		}
	}
	return maxY + lineHeightPx
}
