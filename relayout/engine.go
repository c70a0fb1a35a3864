package relayout

import (
	"context"

	"github.com/swilloughby/typeset/model"
)

// Engine is the external layout service: it takes plain text plus
// constraints and returns line geometry. Implementations perform the
// actual shaping and line breaking; this package only schedules calls and
// reconciles their results.
//
// Calls may complete in any order relative to each other. The manager
// cancels the context when a newer run supersedes an in-flight one, but an
// implementation is free to ignore that and complete anyway; the stale
// result is discarded on arrival either way.
type Engine interface {
	LayoutText(ctx context.Context, req LayoutRequest) (*LayoutResult, error)
}

// Constraints are the geometric inputs to a layout call, supplied by the
// renderer (page geometry is not this package's concern).
type Constraints struct {
	MaxWidthPx   float64
	LineHeightPx float64
	FontSizePt   float64
	Align        string
}

// LayoutRequest is one engine call for one region's projected text.
type LayoutRequest struct {
	Text string
	Constraints
}

// LayoutResult is the engine's response: one LineLayout per visual line,
// top to bottom.
type LayoutResult struct {
	Lines []model.LineLayout
}
