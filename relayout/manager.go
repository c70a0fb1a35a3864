// Package relayout keeps every open document's layout cache in step with
// its edits.
//
// Each (document, region) pair runs an independent little state machine:
// an edit arms a debounce timer; when the timer fires one engine call goes
// out carrying a run id captured at request time; when the response comes
// back it is applied only if no newer run has been issued meanwhile.
// Out-of-order completions can therefore never regress the cache to an
// earlier edit's layout.
package relayout

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/swilloughby/typeset/docstore"
	"github.com/swilloughby/typeset/model"
	"github.com/swilloughby/typeset/textproj"
)

// DefaultDebounce is the edit-settling delay before a layout run is
// issued.
const DefaultDebounce = 350 * time.Millisecond

// ErrClosed is returned for operations on a closed manager.
var ErrClosed = errors.New("relayout: manager closed")

// ConstraintsFunc supplies per-region layout constraints. The renderer
// owns page geometry; the manager just forwards what it is given.
type ConstraintsFunc func(path string, region model.Region) Constraints

// ErrorFunc observes engine failures. Failures are recoverable: the
// region's previous cache is retained as last known good.
type ErrorFunc func(path string, region model.Region, err error)

// Option configures a Manager.
type Option func(*Manager)

// WithDebounce overrides the debounce interval.
func WithDebounce(d time.Duration) Option {
	return func(m *Manager) {
		if d > 0 {
			m.debounce = d
		}
	}
}

// WithLogger sets the manager's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithConstraints sets the per-region constraints source.
func WithConstraints(fn ConstraintsFunc) Option {
	return func(m *Manager) {
		if fn != nil {
			m.constraints = fn
		}
	}
}

// WithErrorHandler sets the engine-failure observer.
func WithErrorHandler(fn ErrorFunc) Option {
	return func(m *Manager) {
		m.onError = fn
	}
}

type regionKey struct {
	path   string
	region model.Region
}

// regionState is the per-region half of the state machine. runID advances
// on every edit and every issued run; a response applies only when its
// captured id still equals runID on arrival.
type regionState struct {
	runID  uint64
	timer  *time.Timer
	cancel context.CancelFunc
}

// Manager drives debounced re-layout for all documents in a store.
type Manager struct {
	store       *docstore.Store
	engine      Engine
	debounce    time.Duration
	logger      *slog.Logger
	constraints ConstraintsFunc
	onError     ErrorFunc

	mu      sync.Mutex
	regions map[regionKey]*regionState
	closed  bool
}

// NewManager creates a manager over store and engine.
func NewManager(store *docstore.Store, engine Engine, opts ...Option) *Manager {
	m := &Manager{
		store:       store,
		engine:      engine,
		debounce:    DefaultDebounce,
		logger:      slog.Default(),
		constraints: defaultConstraints,
		regions:     make(map[regionKey]*regionState),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// defaultConstraints lays out against an A4 body at 96 DPI with a 14.4pt
// line. Real callers install their renderer's geometry via
// WithConstraints.
func defaultConstraints(string, model.Region) Constraints {
	page := model.DefaultPageStyle()
	return Constraints{
		MaxWidthPx:   page.BodyWidthPx(96),
		LineHeightPx: 14.4 / 72 * 96,
		FontSizePt:   12,
		Align:        model.AlignLeft,
	}
}

// ApplyEdit replaces a region's blocks and schedules its re-layout in one
// step. The run id advances before the store write completes, so an
// in-flight response for the old blocks can never land on the new ones.
func (m *Manager) ApplyEdit(path string, region model.Region, blocks []model.Block) error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ErrClosed
	}
	st := m.regionLocked(path, region)
	m.supersedeLocked(st)
	if err := m.store.UpdateBlocks(path, region, blocks); err != nil {
		m.mu.Unlock()
		return err
	}
	m.armLocked(path, region, st)
	m.mu.Unlock()
	return nil
}

// NotifyEdit schedules a debounced re-layout for one region without
// touching the block tree, for triggers like initial load or constraint
// changes.
func (m *Manager) NotifyEdit(path string, region model.Region) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	st := m.regionLocked(path, region)
	m.supersedeLocked(st)
	m.armLocked(path, region, st)
}

// regionLocked returns the state for a region, creating it on first use.
func (m *Manager) regionLocked(path string, region model.Region) *regionState {
	key := regionKey{path: path, region: region}
	st, ok := m.regions[key]
	if !ok {
		st = &regionState{}
		m.regions[key] = st
	}
	return st
}

// supersedeLocked advances the run id, making every in-flight response
// stale, and cancels the in-flight call and any pending timer. Superseded
// timers are stopped, not left to fire, so one settled edit burst issues
// exactly one request.
func (m *Manager) supersedeLocked(st *regionState) {
	st.runID++
	if st.cancel != nil {
		st.cancel()
		st.cancel = nil
	}
	if st.timer != nil {
		st.timer.Stop()
		st.timer = nil
	}
}

// armLocked starts the debounce timer for a region.
func (m *Manager) armLocked(path string, region model.Region, st *regionState) {
	key := regionKey{path: path, region: region}
	st.timer = time.AfterFunc(m.debounce, func() {
		m.fire(key)
	})
}

// fire transitions a region from pending to requesting: it captures the
// current run id, projects the region's text, and issues the engine call.
func (m *Manager) fire(key regionKey) {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	st, ok := m.regions[key]
	if !ok {
		m.mu.Unlock()
		return
	}
	st.timer = nil
	st.runID++
	runID := st.runID

	ctx, cancel := context.WithCancel(context.Background())
	st.cancel = cancel
	m.mu.Unlock()

	blocks, err := m.store.RegionBlocks(key.path, key.region)
	if err != nil {
		// Document closed between edit and timer fire.
		cancel()
		m.mu.Lock()
		if st, ok := m.regions[key]; ok && st.runID == runID {
			st.cancel = nil
		}
		m.mu.Unlock()
		return
	}

	req := LayoutRequest{
		Text:        textproj.Project(blocks).Text,
		Constraints: m.constraints(key.path, key.region),
	}

	go m.run(ctx, key, runID, req)
}

// run performs one engine call and reconciles its result.
func (m *Manager) run(ctx context.Context, key regionKey, runID uint64, req LayoutRequest) {
	res, err := m.engine.LayoutText(ctx, req)

	m.mu.Lock()
	defer m.mu.Unlock()

	st, ok := m.regions[key]
	if !ok || st.runID != runID {
		// A newer edit superseded this run while it was in flight.
		m.logger.Debug("relayout: stale response discarded",
			slog.String("path", key.path),
			slog.String("region", string(key.region)),
			slog.Uint64("run", runID))
		return
	}
	st.cancel = nil

	if err != nil {
		// Recoverable: keep the last known good cache for this region.
		m.logger.Warn("relayout: engine failure",
			slog.String("path", key.path),
			slog.String("region", string(key.region)),
			slog.String("error", err.Error()))
		if m.onError != nil {
			m.onError(key.path, key.region, err)
		}
		return
	}

	cache := &model.LayoutCache{
		LineCount:       len(res.Lines),
		ContentHeightPx: model.ContentHeight(res.Lines, req.LineHeightPx),
		UpdatedAt:       time.Now().UTC(),
	}
	if err := m.store.UpdateLayoutCache(key.path, key.region, cache); err != nil {
		return
	}

	m.logger.Debug("relayout: cache updated",
		slog.String("path", key.path),
		slog.String("region", string(key.region)),
		slog.Uint64("run", runID),
		slog.Int("lines", cache.LineCount))
}

// FlushAll lays out every region of a document immediately, bypassing the
// debounce. Regions run concurrently; the first engine error is returned
// but successful regions still commit their caches.
func (m *Manager) FlushAll(ctx context.Context, path string) error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ErrClosed
	}
	type flushRun struct {
		key   regionKey
		runID uint64
	}
	var runs []flushRun
	for _, region := range model.Regions() {
		st := m.regionLocked(path, region)
		m.supersedeLocked(st)
		st.runID++
		runs = append(runs, flushRun{key: regionKey{path: path, region: region}, runID: st.runID})
	}
	m.mu.Unlock()

	g, ctx := errgroup.WithContext(ctx)
	for _, r := range runs {
		r := r
		g.Go(func() error {
			blocks, err := m.store.RegionBlocks(r.key.path, r.key.region)
			if err != nil {
				return err
			}
			req := LayoutRequest{
				Text:        textproj.Project(blocks).Text,
				Constraints: m.constraints(r.key.path, r.key.region),
			}
			res, err := m.engine.LayoutText(ctx, req)

			m.mu.Lock()
			defer m.mu.Unlock()
			st, ok := m.regions[r.key]
			if !ok || st.runID != r.runID {
				return nil
			}
			if err != nil {
				if m.onError != nil {
					m.onError(r.key.path, r.key.region, err)
				}
				return err
			}
			cache := &model.LayoutCache{
				LineCount:       len(res.Lines),
				ContentHeightPx: model.ContentHeight(res.Lines, req.Constraints.LineHeightPx),
				UpdatedAt:       time.Now().UTC(),
			}
			return m.store.UpdateLayoutCache(r.key.path, r.key.region, cache)
		})
	}
	return g.Wait()
}

// Forget drops all scheduling state for a document, typically alongside
// closing it in the store. In-flight responses become stale.
func (m *Manager) Forget(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, region := range model.Regions() {
		key := regionKey{path: path, region: region}
		if st, ok := m.regions[key]; ok {
			m.supersedeLocked(st)
			delete(m.regions, key)
		}
	}
}

// Close stops all timers and cancels all in-flight calls. The manager
// accepts no further work.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	m.closed = true
	for key, st := range m.regions {
		m.supersedeLocked(st)
		delete(m.regions, key)
	}
}

// PageCount derives the page count for a region cache against the page
// content height supplied by the renderer. An empty or missing cache is
// one page; a document never has zero pages.
func PageCount(cache *model.LayoutCache, pageContentHeightPx float64) int {
	if cache == nil || pageContentHeightPx <= 0 || cache.ContentHeightPx <= 0 {
		return 1
	}
	pages := int(math.Ceil(cache.ContentHeightPx / pageContentHeightPx))
	if pages < 1 {
		return 1
	}
	return pages
}
