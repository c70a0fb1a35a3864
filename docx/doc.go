// Package docx imports OOXML wordprocessing parts into the typed block
// tree defined by the model package.
//
// Input is the already-extracted XML of individual parts (document.xml,
// styles.xml, numbering.xml, header/footer parts); archive handling is the
// caller's concern. Parsing is tolerant: malformed XML yields an empty
// result rather than an error, so one corrupt part never takes down the
// whole document view.
package docx
