// Package units converts between the length units found in OOXML documents
// (twips, half-points, EMU) and the point/millimeter/pixel units used by
// the layout pipeline.
//
// Attribute parsers return (value, ok) instead of propagating NaN: OOXML
// attributes are free-form strings and garbage input is expected.
package units

import (
	"math"
	"strconv"
)

const (
	// TwipsPerPoint is the number of twips in one point (1/20in per 1/72in).
	TwipsPerPoint = 20
	// MMPerPoint converts points to millimeters.
	MMPerPoint = 0.352778
	// EMUPerInch is the number of English Metric Units per inch. Image
	// extents stay in EMU on the block tree; renderers convert.
	EMUPerInch = 914400
	// MMPerInch converts inches to millimeters.
	MMPerInch = 25.4
)

// TwipsToPoints converts twentieths of a point to points.
func TwipsToPoints(twips float64) float64 {
	return twips / TwipsPerPoint
}

// TwipsToMillimeters converts twips to millimeters.
func TwipsToMillimeters(twips float64) float64 {
	return TwipsToPoints(twips) * MMPerPoint
}

// HalfPointsToPoints converts half-points (font sizes) to points.
func HalfPointsToPoints(halfPoints float64) float64 {
	return halfPoints / 2
}

// PointsToPixels converts points to pixels at the given DPI.
func PointsToPixels(points, dpi float64) float64 {
	if dpi <= 0 {
		return 0
	}
	return points / 72 * dpi
}

// MillimetersToPixels converts millimeters to pixels at the given DPI.
func MillimetersToPixels(mm, dpi float64) float64 {
	if dpi <= 0 {
		return 0
	}
	return mm / MMPerInch * dpi
}

// parseFinite parses s as a float and rejects NaN and infinities.
func parseFinite(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// ParseTwipsToPoints parses a twips attribute and converts it to points.
func ParseTwipsToPoints(s string) (float64, bool) {
	v, ok := parseFinite(s)
	if !ok {
		return 0, false
	}
	return TwipsToPoints(v), true
}

// ParseTwipsToMillimeters parses a twips attribute and converts it to
// millimeters.
func ParseTwipsToMillimeters(s string) (float64, bool) {
	v, ok := parseFinite(s)
	if !ok {
		return 0, false
	}
	return TwipsToMillimeters(v), true
}

// ParseHalfPointsToPoints parses a half-point attribute and converts it to
// points.
func ParseHalfPointsToPoints(s string) (float64, bool) {
	v, ok := parseFinite(s)
	if !ok {
		return 0, false
	}
	return HalfPointsToPoints(v), true
}

// ParseFloat parses a plain numeric attribute, rejecting non-finite input.
func ParseFloat(s string) (float64, bool) {
	return parseFinite(s)
}

// ParseEMU parses an EMU attribute as an integer. EMU values are kept
// as-is on image blocks.
func ParseEMU(s string) (int64, bool) {
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
