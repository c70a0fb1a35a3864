// Package htmlpreview renders a block tree to an HTML fragment for the
// editor's preview pane. The output is structural: headings, paragraphs,
// lists, tables, inline emphasis, and image placeholders keyed by embed
// id. Pixel-accurate rendering stays with the layout engine.
package htmlpreview

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/swilloughby/typeset/model"
)

// Render returns the HTML fragment for a block tree.
func Render(blocks []model.Block) (string, error) {
	container := elem(atom.Div, "div")
	container.Attr = []html.Attribute{{Key: "class", Val: "doc-preview"}}

	for _, b := range blocks {
		container.AppendChild(blockNode(b))
	}

	var sb strings.Builder
	if err := html.Render(&sb, container); err != nil {
		return "", fmt.Errorf("htmlpreview: rendering fragment: %w", err)
	}
	return sb.String(), nil
}

func blockNode(b model.Block) *html.Node {
	switch v := b.(type) {
	case *model.Paragraph:
		n := elem(atom.P, "p")
		appendRuns(n, v.Runs)
		return n
	case *model.Heading:
		level := v.Level
		if level < 1 {
			level = 1
		}
		if level > 6 {
			// h7-h9 have no HTML element; clamp for the preview.
			level = 6
		}
		tag := fmt.Sprintf("h%d", level)
		n := elem(atom.Lookup([]byte(tag)), tag)
		appendRuns(n, v.Runs)
		return n
	case *model.List:
		tag := "ul"
		a := atom.Ul
		if v.Ordered {
			tag = "ol"
			a = atom.Ol
		}
		n := elem(a, tag)
		for _, item := range v.Items {
			li := elem(atom.Li, "li")
			for _, ib := range item.Blocks {
				li.AppendChild(blockNode(ib))
			}
			n.AppendChild(li)
		}
		return n
	case *model.Table:
		n := elem(atom.Table, "table")
		for _, row := range v.Rows {
			tr := elem(atom.Tr, "tr")
			for _, cell := range row.Cells {
				td := elem(atom.Td, "td")
				for _, cb := range cell.Blocks {
					td.AppendChild(blockNode(cb))
				}
				tr.AppendChild(td)
			}
			n.AppendChild(tr)
		}
		return n
	case *model.Image:
		n := elem(atom.Img, "img")
		n.Attr = []html.Attribute{{Key: "data-embed-id", Val: v.EmbedID}}
		return n
	default:
		return elem(atom.Div, "div")
	}
}

func appendRuns(parent *html.Node, runs []model.Run) {
	for _, run := range runs {
		var node *html.Node = text(run.Text)
		if s := run.Style; s != nil {
			if s.Strikethrough != nil && *s.Strikethrough {
				node = wrap(atom.S, "s", node)
			}
			if s.Underline != nil && *s.Underline {
				node = wrap(atom.U, "u", node)
			}
			if s.Italic != nil && *s.Italic {
				node = wrap(atom.Em, "em", node)
			}
			if s.Bold != nil && *s.Bold {
				node = wrap(atom.Strong, "strong", node)
			}
		}
		parent.AppendChild(node)
	}
}

func elem(a atom.Atom, tag string) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: tag}
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func wrap(a atom.Atom, tag string, child *html.Node) *html.Node {
	n := elem(a, tag)
	n.AppendChild(child)
	return n
}
