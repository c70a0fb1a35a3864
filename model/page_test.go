package model

import (
	"math"
	"testing"
)

func TestDefaultPageStyle(t *testing.T) {
	ps := DefaultPageStyle()
	if ps.WidthMM != 210 || ps.HeightMM != 297 {
		t.Errorf("page = %vx%v mm, want A4", ps.WidthMM, ps.HeightMM)
	}
	if ps.BodyWidthMM() != 160 {
		t.Errorf("BodyWidthMM = %v, want 160", ps.BodyWidthMM())
	}
	// 297 - 25 - 25 - 12 - 12
	if ps.BodyHeightMM() != 223 {
		t.Errorf("BodyHeightMM = %v, want 223", ps.BodyHeightMM())
	}
}

func TestPageStyle_PixelConversion(t *testing.T) {
	ps := DefaultPageStyle()

	wantW := 160.0 / 25.4 * 96
	if got := ps.BodyWidthPx(96); math.Abs(got-wantW) > 0.001 {
		t.Errorf("BodyWidthPx(96) = %v, want %v", got, wantW)
	}
	if got := ps.BodyWidthPx(0); got != 0 {
		t.Errorf("BodyWidthPx(0) = %v, want 0", got)
	}
	if got := ps.BodyHeightPx(-72); got != 0 {
		t.Errorf("BodyHeightPx(-72) = %v, want 0", got)
	}
}

func TestPageStyle_DegenerateGeometry(t *testing.T) {
	ps := PageStyle{
		WidthMM:  100,
		HeightMM: 50,
		Margins:  PageMargins{LeftMM: 70, RightMM: 70, TopMM: 40, BottomMM: 40},
	}
	if got := ps.BodyWidthMM(); got != 0 {
		t.Errorf("oversized margins gave body width %v, want 0", got)
	}
	if got := ps.BodyHeightMM(); got != 0 {
		t.Errorf("oversized margins gave body height %v, want 0", got)
	}

	neg := PageStyle{WidthMM: 100, Margins: PageMargins{LeftMM: -10, RightMM: 20}}
	if got := neg.BodyWidthMM(); got != 80 {
		t.Errorf("negative margin not clamped: body width %v, want 80", got)
	}
}

func TestContentHeight(t *testing.T) {
	tests := []struct {
		name  string
		lines []LineLayout
		lineH float64
		want  float64
	}{
		{"no lines", nil, 14, 0},
		{"single line", []LineLayout{{YOffsetPx: 0}}, 14, 14},
		{"stacked", []LineLayout{{YOffsetPx: 0}, {YOffsetPx: 14}, {YOffsetPx: 28}}, 14, 42},
		{"unordered offsets", []LineLayout{{YOffsetPx: 28}, {YOffsetPx: 0}}, 14, 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ContentHeight(tt.lines, tt.lineH); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}
