// Package docstore holds the parsed state of every open document and
// exposes the only mutation entry points: whole-region block replacement,
// style-reference merging, and layout-cache writes.
//
// The store is the single piece of shared mutable state in the pipeline.
// Every mutation happens under one lock, so an edit and its cache
// invalidation are never observable half-applied.
package docstore

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/swilloughby/typeset/model"
)

// ErrNotOpen is returned for operations on a path with no open document.
var ErrNotOpen = errors.New("docstore: document not open")

// Document is the parsed state of one open file, keyed by its path.
type Document struct {
	Path         string
	Blocks       []model.Block
	HeaderBlocks []model.Block
	FooterBlocks []model.Block

	// Relationships maps embed ids to target part paths; Media maps part
	// paths to raw bytes. Both come from the external package extractor.
	Relationships map[string]string
	Media         map[string][]byte

	Dirty     bool
	StyleRefs map[string]string

	// Layout holds the per-region derived layout summaries. Written only
	// through UpdateLayoutCache; block replacement clears the affected
	// region's entry.
	Layout map[model.Region]*model.LayoutCache
}

// OpenInput carries the parsed parts for a newly opened document.
type OpenInput struct {
	Blocks        []model.Block
	HeaderBlocks  []model.Block
	FooterBlocks  []model.Block
	Relationships map[string]string
	Media         map[string][]byte
	StyleRefs     map[string]string
}

// Store is the registry of open documents.
type Store struct {
	mu     sync.RWMutex
	docs   map[string]*Document
	logger *slog.Logger
}

// NewStore creates an empty store. A nil logger falls back to
// slog.Default().
func NewStore(logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		docs:   make(map[string]*Document),
		logger: logger,
	}
}

// Open registers a document under path. Reopening a path replaces the
// previous state wholesale.
func (s *Store) Open(path string, in OpenInput) {
	doc := &Document{
		Path:          path,
		Blocks:        in.Blocks,
		HeaderBlocks:  in.HeaderBlocks,
		FooterBlocks:  in.FooterBlocks,
		Relationships: copyStringMap(in.Relationships),
		Media:         copyBytesMap(in.Media),
		StyleRefs:     copyStringMap(in.StyleRefs),
		Layout:        make(map[model.Region]*model.LayoutCache),
	}

	s.mu.Lock()
	s.docs[path] = doc
	s.mu.Unlock()

	s.logger.Info("docstore: opened",
		slog.String("path", path),
		slog.Int("blocks", len(in.Blocks)))
}

// Close drops all state for path. Closing an unknown path is a no-op.
func (s *Store) Close(path string) {
	s.mu.Lock()
	_, ok := s.docs[path]
	delete(s.docs, path)
	s.mu.Unlock()

	if ok {
		s.logger.Info("docstore: closed", slog.String("path", path))
	}
}

// Paths returns the paths of all open documents.
func (s *Store) Paths() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.docs))
	for p := range s.docs {
		out = append(out, p)
	}
	return out
}

// Snapshot returns a copy of the document state. Block slices are shared:
// blocks are immutable after import, so sharing is safe.
func (s *Store) Snapshot(path string) (Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.docs[path]
	if !ok {
		return Document{}, ErrNotOpen
	}

	out := Document{
		Path:          doc.Path,
		Blocks:        doc.Blocks,
		HeaderBlocks:  doc.HeaderBlocks,
		FooterBlocks:  doc.FooterBlocks,
		Relationships: copyStringMap(doc.Relationships),
		Media:         doc.Media,
		Dirty:         doc.Dirty,
		StyleRefs:     copyStringMap(doc.StyleRefs),
		Layout:        make(map[model.Region]*model.LayoutCache, len(doc.Layout)),
	}
	for region, cache := range doc.Layout {
		c := *cache
		out.Layout[region] = &c
	}
	return out, nil
}

// RegionBlocks returns the block slice of one region.
func (s *Store) RegionBlocks(path string, region model.Region) ([]model.Block, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.docs[path]
	if !ok {
		return nil, ErrNotOpen
	}
	switch region {
	case model.RegionHeader:
		return doc.HeaderBlocks, nil
	case model.RegionFooter:
		return doc.FooterBlocks, nil
	default:
		return doc.Blocks, nil
	}
}

// UpdateBlocks replaces a region's block tree wholesale. It marks the
// document dirty and invalidates the region's layout cache; the cache
// stays absent until the next successful layout run.
func (s *Store) UpdateBlocks(path string, region model.Region, blocks []model.Block) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.docs[path]
	if !ok {
		return ErrNotOpen
	}
	switch region {
	case model.RegionHeader:
		doc.HeaderBlocks = blocks
	case model.RegionFooter:
		doc.FooterBlocks = blocks
	default:
		doc.Blocks = blocks
	}
	doc.Dirty = true
	delete(doc.Layout, region)
	return nil
}

// UpdateStyleRefs merges partial into the document's style references.
// Existing keys not present in partial are kept.
func (s *Store) UpdateStyleRefs(path string, partial map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.docs[path]
	if !ok {
		return ErrNotOpen
	}
	if doc.StyleRefs == nil {
		doc.StyleRefs = make(map[string]string, len(partial))
	}
	for k, v := range partial {
		doc.StyleRefs[k] = v
	}
	doc.Dirty = true
	return nil
}

// UpdateLayoutCache writes a region's derived layout summary. The cache is
// derived state: writing it never changes document dirtiness.
func (s *Store) UpdateLayoutCache(path string, region model.Region, cache *model.LayoutCache) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.docs[path]
	if !ok {
		return ErrNotOpen
	}
	if cache == nil {
		delete(doc.Layout, region)
		return nil
	}
	c := *cache
	doc.Layout[region] = &c
	return nil
}

// LayoutCache returns a copy of a region's layout cache, or nil when none
// has been computed since the last invalidation.
func (s *Store) LayoutCache(path string, region model.Region) (*model.LayoutCache, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.docs[path]
	if !ok {
		return nil, ErrNotOpen
	}
	cache, ok := doc.Layout[region]
	if !ok {
		return nil, nil
	}
	c := *cache
	return &c, nil
}

// IsDirty reports the document's dirty flag.
func (s *Store) IsDirty(path string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.docs[path]
	if !ok {
		return false, ErrNotOpen
	}
	return doc.Dirty, nil
}

// MarkClean clears the dirty flag, typically after a successful save by
// the host application.
func (s *Store) MarkClean(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.docs[path]
	if !ok {
		return ErrNotOpen
	}
	doc.Dirty = false
	return nil
}

func copyStringMap(in map[string]string) map[string]string {
	if in == nil {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func copyBytesMap(in map[string][]byte) map[string][]byte {
	if in == nil {
		return nil
	}
	out := make(map[string][]byte, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
