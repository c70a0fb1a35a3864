package docx

import (
	"regexp"
	"strconv"

	"github.com/swilloughby/typeset/model"
)

// Cascade order, lowest to highest precedence: docDefaults, then the
// basedOn chain applied root-first so descendants override ancestors, then
// the element's own inline properties. A visited-id set guards against
// basedOn cycles: resolution silently stops at the first repeated id.

// inheritanceChain returns style definitions from the root ancestor down
// to styleID, looked up in the given map. Unknown ids terminate the walk,
// so a missing style reference degrades to "no named style".
func inheritanceChain(styles map[string]*StyleDefinition, styleID string) []*StyleDefinition {
	var chain []*StyleDefinition
	visited := make(map[string]bool)

	current := styleID
	for current != "" && !visited[current] {
		visited[current] = true
		def, ok := styles[current]
		if !ok {
			break
		}
		chain = append([]*StyleDefinition{def}, chain...)
		current = def.BasedOn
	}

	return chain
}

// ResolveParagraph produces the effective paragraph style for a paragraph
// referencing styleID with the given inline pPr properties. The result
// contains only keys actually specified somewhere in the cascade; it is
// nil when nothing at all is specified.
func (m *StyleMap) ResolveParagraph(styleID string, inline *model.ParagraphStyle) *model.ParagraphStyle {
	var merged *model.ParagraphStyle
	if m != nil {
		merged = m.Defaults.Paragraph.Clone()
		for _, def := range inheritanceChain(m.Paragraph, styleID) {
			merged = merged.Merge(def.Paragraph)
		}
	}
	merged = merged.Merge(inline)
	if merged.IsZero() {
		return nil
	}
	return merged
}

// ResolveRun produces the effective run style for a run inside a paragraph
// referencing paraStyleID, itself referencing character style charStyleID,
// with the given inline rPr properties. Paragraph-style run properties
// cascade below character-style ones, which cascade below the inline
// overrides.
func (m *StyleMap) ResolveRun(paraStyleID, charStyleID string, inline *model.RunStyle) *model.RunStyle {
	var merged *model.RunStyle
	if m != nil {
		merged = m.Defaults.Run.Clone()
		for _, def := range inheritanceChain(m.Paragraph, paraStyleID) {
			merged = merged.Merge(def.Run)
		}
		for _, def := range inheritanceChain(m.Character, charStyleID) {
			merged = merged.Merge(def.Run)
		}
	}
	merged = merged.Merge(inline)
	if merged.IsZero() {
		return nil
	}
	return merged
}

var headingIDPattern = regexp.MustCompile(`(?i)^heading([1-9])$`)

// HeadingLevel reports the heading level encoded in a paragraph style id,
// or 0 when the id is not a heading style. "Title" counts as level 1.
func HeadingLevel(styleID string) int {
	if mm := headingIDPattern.FindStringSubmatch(styleID); mm != nil {
		level, err := strconv.Atoi(mm[1])
		if err == nil {
			return level
		}
	}
	if styleID == "Title" || styleID == "title" {
		return 1
	}
	return 0
}
