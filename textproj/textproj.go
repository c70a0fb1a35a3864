// Package textproj builds the plain-text projection of a block region
// that is handed to the external layout engine.
//
// The engine addresses lines by UTF-8 byte offset while the block tree
// uses rune indices, so the projection tracks both per top-level block.
// Text is NFC-normalized before projection; composed and decomposed
// source runs must project to identical engine input.
package textproj

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/swilloughby/typeset/model"
)

// BlockSpan locates one top-level block inside the projected text.
type BlockSpan struct {
	Block     int // index into the projected block slice
	StartByte int
	EndByte   int
	StartRune int
	EndRune   int
}

// Projection is a region's engine-ready text plus the offsets needed to
// map engine lines back onto blocks.
type Projection struct {
	Text  string
	Spans []BlockSpan
}

// Project flattens a block region to plain text, one block per line.
func Project(blocks []model.Block) Projection {
	var sb strings.Builder
	spans := make([]BlockSpan, 0, len(blocks))

	bytePos := 0
	runePos := 0
	for i, b := range blocks {
		if i > 0 {
			sb.WriteByte('\n')
			bytePos++
			runePos++
		}
		text := norm.NFC.String(BlockText(b))
		sb.WriteString(text)

		span := BlockSpan{
			Block:     i,
			StartByte: bytePos,
			EndByte:   bytePos + len(text),
			StartRune: runePos,
			EndRune:   runePos + utf8.RuneCountInString(text),
		}
		spans = append(spans, span)
		bytePos = span.EndByte
		runePos = span.EndRune
	}

	return Projection{Text: sb.String(), Spans: spans}
}

// BlockText returns the plain text of a single block. Images project as
// empty text: their extent is geometry, not characters.
func BlockText(b model.Block) string {
	switch v := b.(type) {
	case *model.Paragraph:
		return v.Text()
	case *model.Heading:
		return v.Text()
	case *model.List:
		var lines []string
		for _, item := range v.Items {
			var parts []string
			for _, ib := range item.Blocks {
				parts = append(parts, BlockText(ib))
			}
			lines = append(lines, strings.Join(parts, "\n"))
		}
		return strings.Join(lines, "\n")
	case *model.Table:
		var rows []string
		for _, row := range v.Rows {
			var cells []string
			for _, cell := range row.Cells {
				var parts []string
				for _, cb := range cell.Blocks {
					parts = append(parts, BlockText(cb))
				}
				cells = append(cells, strings.ReplaceAll(strings.Join(parts, "\n"), "\n", " "))
			}
			rows = append(rows, strings.Join(cells, "\t"))
		}
		return strings.Join(rows, "\n")
	default:
		return ""
	}
}

// ByteOffset converts a rune index into text to its UTF-8 byte offset.
// Indexes past the end clamp to len(text).
func ByteOffset(text string, runeIndex int) int {
	if runeIndex <= 0 {
		return 0
	}
	seen := 0
	for i := range text {
		if seen == runeIndex {
			return i
		}
		seen++
	}
	return len(text)
}

// RuneOffset converts a UTF-8 byte offset into text to its rune index.
// Offsets inside a rune round down to the rune's start.
func RuneOffset(text string, byteOffset int) int {
	if byteOffset <= 0 {
		return 0
	}
	if byteOffset > len(text) {
		byteOffset = len(text)
	}
	count := 0
	for i := range text {
		if i == byteOffset {
			return count
		}
		if i > byteOffset {
			return count - 1
		}
		count++
	}
	if byteOffset < len(text) {
		return count - 1
	}
	return count
}
