package pager

import (
	"context"
	"sync"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/hnscope/pkg/domain"
)

// Phase of the incremental list
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseReady
	PhaseLoadingMore
	PhaseExhausted
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	case PhaseLoadingMore:
		return "loading-more"
	case PhaseExhausted:
		return "exhausted"
	}
	return "unknown"
}

// State is a snapshot of the accumulated list, safe to keep and read after the call
type State struct {
	FeedKey   domain.FeedKey
	Phase     Phase
	Items     []domain.Item
	Pages     []Window
	Exhausted bool
	Loading   bool
	Err       error
}

// Controller accumulates pages of one feed or thread for a presentation layer.
// LoadMore is idempotent while a window is in flight or the list is exhausted,
// so windows are fetched one at a time and appended in order.
// Changing the feed key drops everything, completions of older keys are discarded.
type Controller struct {
	source    IDSource
	assembler PageAssembler
	pageSize  int

	mu       sync.Mutex
	gen      uint64 // bumped on every reset, guards against stale completions
	st       listState
	cancel   context.CancelFunc // cancels the in-flight window
	closed   bool
	inflight sync.WaitGroup
	changes  chan struct{}
}

// ControllerParams configures Controller
type ControllerParams struct {
	Source    IDSource
	Assembler PageAssembler
	PageSize  int
}

type listState struct {
	key       domain.FeedKey
	ids       []int64
	resolved  bool
	pages     []Window
	items     []domain.Item
	exhausted bool
	phase     Phase
	loading   bool
	err       error
}

// DefaultPageSize is used when ControllerParams.PageSize is not set
const DefaultPageSize = 10

// NewController makes a controller without a feed, call SetFeed to start loading
func NewController(p ControllerParams) *Controller {
	if p.PageSize <= 0 {
		p.PageSize = DefaultPageSize
	}
	return &Controller{
		source:    p.Source,
		assembler: p.Assembler,
		pageSize:  p.PageSize,
		changes:   make(chan struct{}, 1),
	}
}

// SetFeed switches the controller to key and starts loading its first page.
// Setting the current key again does nothing, use Reset to reload it.
func (c *Controller) SetFeed(ctx context.Context, key domain.FeedKey) {
	c.mu.Lock()
	if c.closed || (c.st.key == key && !key.IsZero()) {
		c.mu.Unlock()
		return
	}
	c.resetLocked(key)
	c.mu.Unlock()

	c.LoadMore(ctx)
}

// Reset drops the accumulated state of the current key and loads its first page again
func (c *Controller) Reset(ctx context.Context) {
	c.mu.Lock()
	if c.closed || c.st.key.IsZero() {
		c.mu.Unlock()
		return
	}
	c.resetLocked(c.st.key)
	c.mu.Unlock()

	c.LoadMore(ctx)
}

// LoadMore starts fetching the next window in background and reports if it did.
// It is a no-op while a window is loading, once the list is exhausted, without a feed
// and after Close.
func (c *Controller) LoadMore(ctx context.Context) bool {
	c.mu.Lock()
	if c.closed || c.st.key.IsZero() || c.st.loading || c.st.exhausted {
		c.mu.Unlock()
		return false
	}

	gen := c.gen
	key := c.st.key
	w := WindowAt(len(c.st.pages), c.pageSize)
	ids, resolved := c.st.ids, c.st.resolved

	c.st.loading = true
	c.st.phase = PhaseLoadingMore
	if len(c.st.pages) == 0 {
		c.st.phase = PhaseLoading
	}
	ctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.inflight.Add(1)
	c.notifyLocked()
	c.mu.Unlock()

	lgr.Printf("[DEBUG] load %s page %d", key, w.Page())
	go func() {
		defer c.inflight.Done()
		defer cancel()
		c.load(ctx, gen, key, w, ids, resolved)
	}()
	return true
}

// Wait blocks until all started windows settled
func (c *Controller) Wait() {
	c.inflight.Wait()
}

// State returns a snapshot of the accumulated list
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	items := make([]domain.Item, len(c.st.items))
	copy(items, c.st.items)
	pages := make([]Window, len(c.st.pages))
	copy(pages, c.st.pages)

	return State{
		FeedKey:   c.st.key,
		Phase:     c.st.phase,
		Items:     items,
		Pages:     pages,
		Exhausted: c.st.exhausted,
		Loading:   c.st.loading,
		Err:       c.st.err,
	}
}

// Changes returns a channel signaled after every state change.
// Signals are coalesced, the channel is closed by Close.
func (c *Controller) Changes() <-chan struct{} {
	return c.changes
}

// Close tears the controller down, cancels the in-flight window and discards its result
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.gen++
	if c.cancel != nil {
		c.cancel()
	}
	close(c.changes)
}

// load resolves the id list if needed and assembles window w, running in its own goroutine
func (c *Controller) load(ctx context.Context, gen uint64, key domain.FeedKey, w Window, ids []int64, resolved bool) {
	if !resolved {
		fetched, err := c.source.FetchIDs(ctx, key)
		if err != nil {
			lgr.Printf("[WARN] failed to get ids for %s: %v", key, err)
			c.finish(gen, w, nil, false, nil, err)
			return
		}
		ids = fetched
		lgr.Printf("[DEBUG] got %d ids for %s", len(ids), key)
	}

	if len(ids) == 0 {
		c.finish(gen, w, ids, true, []domain.Item{}, nil)
		return
	}

	items, err := c.assembler.Assemble(ctx, ids, w)
	if err != nil {
		lgr.Printf("[WARN] failed to assemble %s page %d: %v", key, w.Page(), err)
	}
	c.finish(gen, w, ids, true, items, err)
}

// finish applies a settled window unless the state moved to another generation
func (c *Controller) finish(gen uint64, w Window, ids []int64, resolved bool, items []domain.Item, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.gen {
		lgr.Printf("[DEBUG] discard stale page %d", w.Page())
		return
	}

	c.st.loading = false
	c.cancel = nil
	if resolved && !c.st.resolved {
		c.st.ids, c.st.resolved = ids, true
	}

	if err != nil {
		c.st.err = err
		c.st.phase = PhaseReady
		if len(c.st.pages) == 0 {
			c.st.phase = PhaseIdle
		}
		c.notifyLocked()
		return
	}

	c.st.err = nil
	c.st.items = append(c.st.items, items...)
	c.st.pages = append(c.st.pages, w.Clamp(len(c.st.ids)))
	c.st.phase = PhaseReady
	if w.End() >= len(c.st.ids) {
		c.st.exhausted = true
		c.st.phase = PhaseExhausted
	}
	c.notifyLocked()
}

func (c *Controller) resetLocked(key domain.FeedKey) {
	c.gen++
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.st = listState{key: key, phase: PhaseIdle}
	c.notifyLocked()
}

// notifyLocked signals a change without blocking, caller holds mu
func (c *Controller) notifyLocked() {
	if c.closed {
		return
	}
	select {
	case c.changes <- struct{}{}:
	default:
	}
}
