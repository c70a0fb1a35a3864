package docx

import "github.com/beevik/etree"

// DOCX parts in the wild mix "w:"-prefixed and unprefixed tag names
// depending on the producer. All tag and attribute matching goes through
// the helpers below, which compare local names only, so namespace quirks
// stay out of the importer itself.

// childElem returns the first direct child whose local tag matches.
func childElem(el *etree.Element, tag string) *etree.Element {
	if el == nil {
		return nil
	}
	for _, c := range el.ChildElements() {
		if c.Tag == tag {
			return c
		}
	}
	return nil
}

// childElems returns all direct children whose local tag matches.
func childElems(el *etree.Element, tag string) []*etree.Element {
	if el == nil {
		return nil
	}
	var out []*etree.Element
	for _, c := range el.ChildElements() {
		if c.Tag == tag {
			out = append(out, c)
		}
	}
	return out
}

// findFirst returns the first direct child matching any of the candidate
// local tags, in candidate order.
func findFirst(el *etree.Element, tags ...string) *etree.Element {
	for _, tag := range tags {
		if c := childElem(el, tag); c != nil {
			return c
		}
	}
	return nil
}

// findDeep returns the first descendant with the given local tag,
// depth-first in document order.
func findDeep(el *etree.Element, tag string) *etree.Element {
	if el == nil {
		return nil
	}
	for _, c := range el.ChildElements() {
		if c.Tag == tag {
			return c
		}
		if found := findDeep(c, tag); found != nil {
			return found
		}
	}
	return nil
}

// attrVal returns the value of the attribute with the given local key,
// ignoring its namespace prefix. Missing attributes yield "".
func attrVal(el *etree.Element, key string) string {
	if el == nil {
		return ""
	}
	for _, a := range el.Attr {
		if a.Key == key {
			return a.Value
		}
	}
	return ""
}

// childVal returns the "val" attribute of the first child with the given
// local tag, the usual shape of OOXML property elements.
func childVal(el *etree.Element, tag string) string {
	return attrVal(childElem(el, tag), "val")
}
