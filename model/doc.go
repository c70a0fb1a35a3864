// Package model provides the intermediate representation (IR) for imported
// word-processing documents.
//
// This package defines the data structures shared by the importer, the
// document store, and the layout pipeline: the Block tree produced from
// OOXML parts, the resolved style types attached to it, page geometry, and
// the layout cache written back by the re-layout manager.
//
// Values in this package are plain data. Blocks and styles are immutable
// once produced by import; the only block-tree mutation anywhere is
// whole-document replacement through the document store.
package model
