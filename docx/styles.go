package docx

import (
	"github.com/beevik/etree"

	"github.com/swilloughby/typeset/model"
)

// StyleDefinition is one named style from styles.xml, with its properties
// already converted to model types.
type StyleDefinition struct {
	ID        string
	Type      string // "paragraph" or "character"
	BasedOn   string
	Paragraph *model.ParagraphStyle
	Run       *model.RunStyle
}

// StyleDefaults holds the docDefaults of styles.xml.
type StyleDefaults struct {
	Paragraph *model.ParagraphStyle
	Run       *model.RunStyle
}

// StyleMap is the explicit style registry passed into every resolution
// call. There is no hidden global: two documents resolve against two
// independent maps.
type StyleMap struct {
	Paragraph map[string]*StyleDefinition
	Character map[string]*StyleDefinition
	Defaults  StyleDefaults
}

// NewStyleMap returns an empty style map.
func NewStyleMap() *StyleMap {
	return &StyleMap{
		Paragraph: make(map[string]*StyleDefinition),
		Character: make(map[string]*StyleDefinition),
	}
}

// ParseStyles parses a styles.xml part. Malformed XML yields an empty map;
// resolution then falls back to inline properties only.
func ParseStyles(xmlStr string) *StyleMap {
	m := NewStyleMap()

	doc := etree.NewDocument()
	if err := doc.ReadFromString(xmlStr); err != nil {
		return m
	}
	root := doc.Root()
	if root == nil || root.Tag != "styles" {
		return m
	}

	if defaults := childElem(root, "docDefaults"); defaults != nil {
		if rd := childElem(defaults, "rPrDefault"); rd != nil {
			m.Defaults.Run = runStyleFromRPr(childElem(rd, "rPr"))
		}
		if pd := childElem(defaults, "pPrDefault"); pd != nil {
			m.Defaults.Paragraph = paragraphStyleFromPPr(childElem(pd, "pPr"))
		}
	}

	for _, styleEl := range childElems(root, "style") {
		id := attrVal(styleEl, "styleId")
		if id == "" {
			continue
		}
		def := &StyleDefinition{
			ID:        id,
			Type:      attrVal(styleEl, "type"),
			BasedOn:   childVal(styleEl, "basedOn"),
			Paragraph: paragraphStyleFromPPr(childElem(styleEl, "pPr")),
			Run:       runStyleFromRPr(childElem(styleEl, "rPr")),
		}
		switch def.Type {
		case "character":
			m.Character[id] = def
		case "paragraph", "":
			m.Paragraph[id] = def
		default:
			// table and numbering styles are outside the model
		}
	}

	return m
}
