package docx

import (
	"testing"

	"github.com/swilloughby/typeset/model"
)

const cascadeStylesXML = `<?xml version="1.0"?>
<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:docDefaults>
    <w:rPrDefault>
      <w:rPr>
        <w:rFonts w:ascii="Calibri"/>
        <w:sz w:val="22"/>
      </w:rPr>
    </w:rPrDefault>
    <w:pPrDefault>
      <w:pPr>
        <w:spacing w:after="160"/>
      </w:pPr>
    </w:pPrDefault>
  </w:docDefaults>
  <w:style w:type="paragraph" w:styleId="Normal">
    <w:rPr><w:sz w:val="24"/></w:rPr>
  </w:style>
  <w:style w:type="paragraph" w:styleId="Heading1">
    <w:basedOn w:val="Normal"/>
    <w:pPr><w:spacing w:before="240"/></w:pPr>
    <w:rPr><w:b/><w:sz w:val="32"/></w:rPr>
  </w:style>
  <w:style w:type="paragraph" w:styleId="Heading2">
    <w:basedOn w:val="Normal"/>
    <w:rPr><w:b/></w:rPr>
  </w:style>
  <w:style w:type="character" w:styleId="Emphasis">
    <w:rPr><w:i/></w:rPr>
  </w:style>
</w:styles>`

func TestResolveRun_CascadePrecedence(t *testing.T) {
	m := ParseStyles(cascadeStylesXML)

	tests := []struct {
		name       string
		paraStyle  string
		wantSizePt float64
	}{
		// Heading1 declares sz=32 half-points, overriding Normal.
		{"heading overrides base", "Heading1", 16},
		// Heading2 declares no size; Normal's sz=24 applies.
		{"base fills gap", "Heading2", 12},
		// Unknown style falls back to docDefaults.
		{"defaults only", "Missing", 11},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rs := m.ResolveRun(tt.paraStyle, "", nil)
			if rs == nil || rs.SizePt == nil {
				t.Fatalf("ResolveRun(%q) has no size", tt.paraStyle)
			}
			if *rs.SizePt != tt.wantSizePt {
				t.Errorf("size = %v pt, want %v", *rs.SizePt, tt.wantSizePt)
			}
		})
	}
}

func TestResolveRun_InlineWins(t *testing.T) {
	m := ParseStyles(cascadeStylesXML)

	inline := &model.RunStyle{SizePt: model.Float(9)}
	rs := m.ResolveRun("Heading1", "", inline)
	if rs == nil || rs.SizePt == nil || *rs.SizePt != 9 {
		t.Fatalf("inline size did not win: %+v", rs)
	}
	// The cascade's bold survives alongside the inline override.
	if rs.Bold == nil || !*rs.Bold {
		t.Error("Heading1 bold lost during inline merge")
	}
}

func TestResolveRun_CharacterStyle(t *testing.T) {
	m := ParseStyles(cascadeStylesXML)

	rs := m.ResolveRun("Normal", "Emphasis", nil)
	if rs == nil || rs.Italic == nil || !*rs.Italic {
		t.Fatalf("character style italic not applied: %+v", rs)
	}
	if rs.SizePt == nil || *rs.SizePt != 12 {
		t.Errorf("paragraph style size lost: %+v", rs)
	}
}

func TestResolveParagraph_Cascade(t *testing.T) {
	m := ParseStyles(cascadeStylesXML)

	ps := m.ResolveParagraph("Heading1", nil)
	if ps == nil {
		t.Fatal("ResolveParagraph returned nil")
	}
	if ps.SpacingBeforePt == nil || *ps.SpacingBeforePt != 12 {
		t.Errorf("SpacingBeforePt = %v, want 12", ps.SpacingBeforePt)
	}
	// From docDefaults: after=160 twips = 8pt.
	if ps.SpacingAfterPt == nil || *ps.SpacingAfterPt != 8 {
		t.Errorf("SpacingAfterPt = %v, want 8", ps.SpacingAfterPt)
	}
}

func TestResolve_DeclarationOrderIndependent(t *testing.T) {
	reordered := `<?xml version="1.0"?>
<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:style w:type="paragraph" w:styleId="Heading1">
    <w:basedOn w:val="Normal"/>
    <w:pPr><w:spacing w:before="240"/></w:pPr>
    <w:rPr><w:b/><w:sz w:val="32"/></w:rPr>
  </w:style>
  <w:style w:type="character" w:styleId="Emphasis">
    <w:rPr><w:i/></w:rPr>
  </w:style>
  <w:style w:type="paragraph" w:styleId="Heading2">
    <w:basedOn w:val="Normal"/>
    <w:rPr><w:b/></w:rPr>
  </w:style>
  <w:style w:type="paragraph" w:styleId="Normal">
    <w:rPr><w:sz w:val="24"/></w:rPr>
  </w:style>
  <w:docDefaults>
    <w:rPrDefault>
      <w:rPr>
        <w:rFonts w:ascii="Calibri"/>
        <w:sz w:val="22"/>
      </w:rPr>
    </w:rPrDefault>
    <w:pPrDefault>
      <w:pPr>
        <w:spacing w:after="160"/>
      </w:pPr>
    </w:pPrDefault>
  </w:docDefaults>
</w:styles>`

	a := ParseStyles(cascadeStylesXML)
	b := ParseStyles(reordered)

	for _, styleID := range []string{"Normal", "Heading1", "Heading2", "Missing"} {
		ra := a.ResolveRun(styleID, "", nil)
		rb := b.ResolveRun(styleID, "", nil)
		if (ra == nil) != (rb == nil) {
			t.Fatalf("style %q: nil mismatch", styleID)
		}
		if ra == nil {
			continue
		}
		if *ra.SizePt != *rb.SizePt {
			t.Errorf("style %q: size %v vs %v", styleID, *ra.SizePt, *rb.SizePt)
		}
	}
}

func TestResolve_BasedOnCycleTerminates(t *testing.T) {
	cyclic := `<?xml version="1.0"?>
<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:style w:type="paragraph" w:styleId="A">
    <w:basedOn w:val="B"/>
    <w:rPr><w:sz w:val="20"/></w:rPr>
  </w:style>
  <w:style w:type="paragraph" w:styleId="B">
    <w:basedOn w:val="A"/>
    <w:rPr><w:b/></w:rPr>
  </w:style>
</w:styles>`

	m := ParseStyles(cyclic)

	// Must terminate, applying each ancestor once.
	rs := m.ResolveRun("A", "", nil)
	if rs == nil {
		t.Fatal("cycle resolution returned nil")
	}
	if rs.SizePt == nil || *rs.SizePt != 10 {
		t.Errorf("A's own size lost: %+v", rs)
	}
	if rs.Bold == nil || !*rs.Bold {
		t.Errorf("B's bold not inherited: %+v", rs)
	}

	// Self-reference is the degenerate cycle.
	selfRef := `<?xml version="1.0"?>
<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:style w:type="paragraph" w:styleId="Loop">
    <w:basedOn w:val="Loop"/>
    <w:rPr><w:i/></w:rPr>
  </w:style>
</w:styles>`
	rs = ParseStyles(selfRef).ResolveRun("Loop", "", nil)
	if rs == nil || rs.Italic == nil || !*rs.Italic {
		t.Errorf("self-referencing style not resolved: %+v", rs)
	}
}

func TestResolve_NilAndEmptyMaps(t *testing.T) {
	var m *StyleMap
	if got := m.ResolveRun("Normal", "", nil); got != nil {
		t.Errorf("nil map resolution = %+v, want nil", got)
	}

	inline := &model.RunStyle{Bold: model.Bool(true)}
	got := m.ResolveRun("Normal", "", inline)
	if got == nil || got.Bold == nil || !*got.Bold {
		t.Errorf("nil map dropped inline style: %+v", got)
	}

	if got := ParseStyles("not xml at all").ResolveParagraph("X", nil); got != nil {
		t.Errorf("malformed styles part resolution = %+v, want nil", got)
	}
}

func TestHeadingLevel(t *testing.T) {
	tests := []struct {
		styleID string
		want    int
	}{
		{"Heading1", 1},
		{"heading3", 3},
		{"Heading9", 9},
		{"Heading10", 0},
		{"Heading0", 0},
		{"Title", 1},
		{"Normal", 0},
		{"", 0},
	}

	for _, tt := range tests {
		if got := HeadingLevel(tt.styleID); got != tt.want {
			t.Errorf("HeadingLevel(%q) = %d, want %d", tt.styleID, got, tt.want)
		}
	}
}
