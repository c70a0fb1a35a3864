package relayout

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/swilloughby/typeset/docstore"
	"github.com/swilloughby/typeset/model"
)

// engineCall is one in-flight fake engine request. The test resolves it by
// sending on respond; until then the call blocks like a real engine would.
type engineCall struct {
	req     LayoutRequest
	respond chan engineResponse
}

type engineResponse struct {
	res *LayoutResult
	err error
}

type fakeEngine struct {
	started chan *engineCall

	mu    sync.Mutex
	calls int
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{started: make(chan *engineCall, 16)}
}

func (e *fakeEngine) LayoutText(_ context.Context, req LayoutRequest) (*LayoutResult, error) {
	e.mu.Lock()
	e.calls++
	e.mu.Unlock()

	call := &engineCall{req: req, respond: make(chan engineResponse, 1)}
	e.started <- call
	r := <-call.respond
	return r.res, r.err
}

func (e *fakeEngine) callCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.calls
}

// lines builds a layout result with n stacked lines.
func lines(n int, lineHeightPx float64) *LayoutResult {
	res := &LayoutResult{}
	for i := 0; i < n; i++ {
		res.Lines = append(res.Lines, model.LineLayout{
			YOffsetPx: float64(i) * lineHeightPx,
			WidthPx:   100,
		})
	}
	return res
}

func testConstraints(string, model.Region) Constraints {
	return Constraints{MaxWidthPx: 500, LineHeightPx: 10, FontSizePt: 12, Align: model.AlignLeft}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func paragraphs(texts ...string) []model.Block {
	var out []model.Block
	for _, s := range texts {
		out = append(out, &model.Paragraph{Runs: []model.Run{{Text: s}}})
	}
	return out
}

func waitCall(t *testing.T, e *fakeEngine) *engineCall {
	t.Helper()
	select {
	case call := <-e.started:
		return call
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for an engine call")
		return nil
	}
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func newTestManager(t *testing.T, opts ...Option) (*docstore.Store, *fakeEngine, *Manager) {
	t.Helper()
	store := docstore.NewStore(testLogger())
	engine := newFakeEngine()
	opts = append([]Option{
		WithDebounce(time.Millisecond),
		WithLogger(testLogger()),
		WithConstraints(testConstraints),
	}, opts...)
	m := NewManager(store, engine, opts...)
	t.Cleanup(m.Close)
	return store, engine, m
}

func TestManager_EditProducesCache(t *testing.T) {
	store, engine, m := newTestManager(t)
	store.Open("doc.docx", docstore.OpenInput{Blocks: paragraphs("hello world")})

	if err := m.ApplyEdit("doc.docx", model.RegionBody, paragraphs("hello", "world")); err != nil {
		t.Fatalf("ApplyEdit: %v", err)
	}

	call := waitCall(t, engine)
	if call.req.Text != "hello\nworld" {
		t.Errorf("engine saw text %q, want the edited blocks", call.req.Text)
	}
	if call.req.MaxWidthPx != 500 || call.req.LineHeightPx != 10 {
		t.Errorf("engine constraints = %+v", call.req.Constraints)
	}
	call.respond <- engineResponse{res: lines(2, 10)}

	waitFor(t, "cache write", func() bool {
		c, _ := store.LayoutCache("doc.docx", model.RegionBody)
		return c != nil
	})
	cache, _ := store.LayoutCache("doc.docx", model.RegionBody)
	if cache.LineCount != 2 {
		t.Errorf("LineCount = %d, want 2", cache.LineCount)
	}
	if cache.ContentHeightPx != 20 {
		t.Errorf("ContentHeightPx = %v, want 20", cache.ContentHeightPx)
	}
	if cache.UpdatedAt.IsZero() {
		t.Error("UpdatedAt not set")
	}

	// The engine request must never dirty the document or the layout write.
	dirty, _ := store.IsDirty("doc.docx")
	if !dirty {
		t.Error("ApplyEdit did not dirty the document")
	}
}

func TestManager_StaleResponseDiscarded(t *testing.T) {
	store, engine, m := newTestManager(t)
	store.Open("doc.docx", docstore.OpenInput{Blocks: paragraphs("v1")})

	// Run A goes out and stays in flight.
	m.NotifyEdit("doc.docx", model.RegionBody)
	callA := waitCall(t, engine)

	// A newer edit supersedes it and issues run B.
	if err := m.ApplyEdit("doc.docx", model.RegionBody, paragraphs("v2")); err != nil {
		t.Fatalf("ApplyEdit: %v", err)
	}
	callB := waitCall(t, engine)
	if callB.req.Text != "v2" {
		t.Errorf("run B saw %q, want v2", callB.req.Text)
	}

	// B completes first and commits.
	callB.respond <- engineResponse{res: lines(3, 10)}
	waitFor(t, "run B cache", func() bool {
		c, _ := store.LayoutCache("doc.docx", model.RegionBody)
		return c != nil && c.LineCount == 3
	})

	// A's late response must be dropped, not regress the cache.
	callA.respond <- engineResponse{res: lines(7, 10)}
	time.Sleep(50 * time.Millisecond)
	cache, _ := store.LayoutCache("doc.docx", model.RegionBody)
	if cache == nil || cache.LineCount != 3 {
		t.Fatalf("stale run overwrote the cache: %+v", cache)
	}
}

func TestManager_StaleCompletionAfterNewCommit(t *testing.T) {
	// Same race, other arrival order: the old run completes while the new
	// run is still pending; its result must not fill the invalidated cache.
	store, engine, m := newTestManager(t)
	store.Open("doc.docx", docstore.OpenInput{Blocks: paragraphs("v1")})

	m.NotifyEdit("doc.docx", model.RegionBody)
	callA := waitCall(t, engine)

	if err := m.ApplyEdit("doc.docx", model.RegionBody, paragraphs("v2")); err != nil {
		t.Fatalf("ApplyEdit: %v", err)
	}

	callA.respond <- engineResponse{res: lines(7, 10)}
	callB := waitCall(t, engine)
	time.Sleep(50 * time.Millisecond)
	if cache, _ := store.LayoutCache("doc.docx", model.RegionBody); cache != nil {
		t.Fatalf("stale run filled the invalidated cache: %+v", cache)
	}

	callB.respond <- engineResponse{res: lines(1, 10)}
	waitFor(t, "run B cache", func() bool {
		c, _ := store.LayoutCache("doc.docx", model.RegionBody)
		return c != nil && c.LineCount == 1
	})
}

func TestManager_DebounceCoalesces(t *testing.T) {
	store, engine, m := newTestManager(t, WithDebounce(60*time.Millisecond))
	store.Open("doc.docx", docstore.OpenInput{Blocks: paragraphs("text")})

	for i := 0; i < 10; i++ {
		m.NotifyEdit("doc.docx", model.RegionBody)
		time.Sleep(2 * time.Millisecond)
	}

	call := waitCall(t, engine)
	call.respond <- engineResponse{res: lines(1, 10)}

	// The settled burst produced exactly one request.
	time.Sleep(120 * time.Millisecond)
	if n := engine.callCount(); n != 1 {
		t.Errorf("burst of 10 edits issued %d engine calls, want 1", n)
	}
}

func TestManager_EngineFailureKeepsLastGood(t *testing.T) {
	var failMu sync.Mutex
	var failures []error
	store, engine, m := newTestManager(t, WithErrorHandler(func(_ string, _ model.Region, err error) {
		failMu.Lock()
		failures = append(failures, err)
		failMu.Unlock()
	}))
	store.Open("doc.docx", docstore.OpenInput{Blocks: paragraphs("text")})

	m.NotifyEdit("doc.docx", model.RegionBody)
	waitCall(t, engine).respond <- engineResponse{res: lines(5, 10)}
	waitFor(t, "first cache", func() bool {
		c, _ := store.LayoutCache("doc.docx", model.RegionBody)
		return c != nil && c.LineCount == 5
	})

	m.NotifyEdit("doc.docx", model.RegionBody)
	waitCall(t, engine).respond <- engineResponse{err: errors.New("engine unavailable")}

	waitFor(t, "error handler", func() bool {
		failMu.Lock()
		defer failMu.Unlock()
		return len(failures) == 1
	})
	cache, _ := store.LayoutCache("doc.docx", model.RegionBody)
	if cache == nil || cache.LineCount != 5 {
		t.Errorf("failure clobbered the last good cache: %+v", cache)
	}
}

func TestManager_RegionsIndependent(t *testing.T) {
	store, engine, m := newTestManager(t)
	store.Open("doc.docx", docstore.OpenInput{
		Blocks:       paragraphs("body"),
		HeaderBlocks: paragraphs("header"),
	})

	m.NotifyEdit("doc.docx", model.RegionBody)
	waitCall(t, engine).respond <- engineResponse{res: lines(4, 10)}
	waitFor(t, "body cache", func() bool {
		c, _ := store.LayoutCache("doc.docx", model.RegionBody)
		return c != nil
	})

	// A header edit invalidates and relays out only the header.
	if err := m.ApplyEdit("doc.docx", model.RegionHeader, paragraphs("new header")); err != nil {
		t.Fatalf("ApplyEdit: %v", err)
	}
	call := waitCall(t, engine)
	if call.req.Text != "new header" {
		t.Errorf("header run saw %q", call.req.Text)
	}
	call.respond <- engineResponse{res: lines(1, 10)}

	waitFor(t, "header cache", func() bool {
		c, _ := store.LayoutCache("doc.docx", model.RegionHeader)
		return c != nil
	})
	body, _ := store.LayoutCache("doc.docx", model.RegionBody)
	if body == nil || body.LineCount != 4 {
		t.Errorf("header edit disturbed the body cache: %+v", body)
	}
}

func TestManager_FlushAll(t *testing.T) {
	store, engine, m := newTestManager(t)
	store.Open("doc.docx", docstore.OpenInput{
		Blocks:       paragraphs("body text"),
		HeaderBlocks: paragraphs("hdr"),
		FooterBlocks: paragraphs("ftr"),
	})

	done := make(chan error, 1)
	go func() { done <- m.FlushAll(context.Background(), "doc.docx") }()

	for i := 0; i < 3; i++ {
		waitCall(t, engine).respond <- engineResponse{res: lines(i+1, 10)}
	}
	if err := <-done; err != nil {
		t.Fatalf("FlushAll: %v", err)
	}

	for _, region := range model.Regions() {
		cache, err := store.LayoutCache("doc.docx", region)
		if err != nil || cache == nil {
			t.Errorf("region %s has no cache after FlushAll (err %v)", region, err)
		}
	}
}

func TestManager_FlushAllPropagatesFailure(t *testing.T) {
	store, engine, m := newTestManager(t)
	store.Open("doc.docx", docstore.OpenInput{Blocks: paragraphs("body")})

	done := make(chan error, 1)
	go func() { done <- m.FlushAll(context.Background(), "doc.docx") }()

	engineErr := errors.New("shaper crashed")
	for i := 0; i < 3; i++ {
		call := waitCall(t, engine)
		if i == 0 {
			call.respond <- engineResponse{err: engineErr}
		} else {
			call.respond <- engineResponse{res: lines(2, 10)}
		}
	}

	if err := <-done; !errors.Is(err, engineErr) {
		t.Errorf("FlushAll err = %v, want the engine failure", err)
	}
}

func TestManager_ForgetDropsInFlight(t *testing.T) {
	store, engine, m := newTestManager(t)
	store.Open("doc.docx", docstore.OpenInput{Blocks: paragraphs("text")})

	m.NotifyEdit("doc.docx", model.RegionBody)
	call := waitCall(t, engine)

	m.Forget("doc.docx")
	call.respond <- engineResponse{res: lines(9, 10)}

	time.Sleep(50 * time.Millisecond)
	if cache, _ := store.LayoutCache("doc.docx", model.RegionBody); cache != nil {
		t.Errorf("forgotten region committed a cache: %+v", cache)
	}
}

func TestManager_Closed(t *testing.T) {
	store, _, m := newTestManager(t)
	store.Open("doc.docx", docstore.OpenInput{})
	m.Close()

	if err := m.ApplyEdit("doc.docx", model.RegionBody, nil); !errors.Is(err, ErrClosed) {
		t.Errorf("ApplyEdit after Close = %v, want ErrClosed", err)
	}
	if err := m.FlushAll(context.Background(), "doc.docx"); !errors.Is(err, ErrClosed) {
		t.Errorf("FlushAll after Close = %v, want ErrClosed", err)
	}
	// Close is idempotent.
	m.Close()
}

func TestPageCount(t *testing.T) {
	tests := []struct {
		name  string
		cache *model.LayoutCache
		pageH float64
		want  int
	}{
		{"nil cache", nil, 700, 1},
		{"empty region", &model.LayoutCache{ContentHeightPx: 0}, 700, 1},
		{"under one page", &model.LayoutCache{ContentHeightPx: 300}, 700, 1},
		{"exactly one page", &model.LayoutCache{ContentHeightPx: 700}, 700, 1},
		{"just over", &model.LayoutCache{ContentHeightPx: 700.5}, 700, 2},
		{"many pages", &model.LayoutCache{ContentHeightPx: 7000}, 700, 10},
		{"bad page height", &model.LayoutCache{ContentHeightPx: 300}, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PageCount(tt.cache, tt.pageH); got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}
