package state

import (
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/five82/pokesearch/internal/prefs"
	"github.com/five82/pokesearch/internal/search"
)

// Request is a resolver invocation the caller must run and report back through
// OnResolved with the same Seq.
type Request struct {
	Seq   uint64
	Query search.Query
}

// Controller owns the View and its transitions. Transitions that need data
// return a Request instead of performing I/O.
type Controller struct {
	mu     sync.RWMutex
	view   View
	seq    uint64
	store  prefs.TermStore
	logger *zap.Logger
}

// New restores the persisted term and starts in the loading state.
// limit <= 0 uses search.DefaultLimit.
func New(store prefs.TermStore, limit int, logger *zap.Logger) *Controller {
	if store == nil {
		store = prefs.NewMemoryStore("")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if limit <= 0 {
		limit = search.DefaultLimit
	}
	term := strings.TrimSpace(store.Get())
	return &Controller{
		view: View{
			SearchTerm: term,
			InputValue: term,
			Loading:    true,
			Page:       1,
			Limit:      limit,
		},
		store:  store,
		logger: logger,
	}
}

// Mount returns the first request: the restored term at page 1.
func (c *Controller) Mount() Request {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.view.Page = 1
	return c.beginLocked()
}

// SetInput records what the user has typed without searching.
func (c *Controller) SetInput(value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.view.InputValue = value
}

// Submit commits the trimmed input as the search term. An empty input clears
// the term and the persisted copy and returns to browse mode.
func (c *Controller) Submit() Request {
	c.mu.Lock()
	defer c.mu.Unlock()

	cleaned := strings.TrimSpace(c.view.InputValue)
	if cleaned == "" {
		if err := c.store.Delete(); err != nil {
			c.logger.Warn("clear persisted search term", zap.Error(err))
		}
	} else if err := c.store.Set(cleaned); err != nil {
		c.logger.Warn("persist search term", zap.String("term", cleaned), zap.Error(err))
	}

	c.view.SearchTerm = cleaned
	c.view.Page = 1
	return c.beginLocked()
}

// NavigatePrev moves back one page. ok is false when already on the first page.
func (c *Controller) NavigatePrev() (req Request, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.view.CanPrev() {
		return Request{}, false
	}
	c.view.Page--
	return c.beginLocked(), true
}

// NavigateNext moves forward one page. ok is false when already on the last page.
func (c *Controller) NavigateNext() (req Request, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.view.CanNext() {
		return Request{}, false
	}
	c.view.Page++
	return c.beginLocked(), true
}

// OnResolved applies the outcome of request seq. Outcomes for anything but the
// most recent request are dropped and false is returned.
func (c *Controller) OnResolved(seq uint64, out search.Outcome) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if seq != c.seq {
		c.logger.Debug("dropping stale outcome", zap.Uint64("seq", seq), zap.Uint64("latest", c.seq))
		return false
	}

	c.view.Loading = false
	if out.Failed() {
		c.view.Items = nil
		c.view.Count = 0
		c.view.Error = out.Error
		return true
	}

	c.view.Items = cloneItems(out.Items)
	c.view.Count = out.Count
	c.view.Error = ""
	if out.Page >= 1 {
		c.view.Page = out.Page
	}
	return true
}

// Pending reports whether a request is outstanding.
func (c *Controller) Pending() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.view.Loading
}

// Snapshot returns a copy of the current view.
func (c *Controller) Snapshot() View {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.view.clone()
}

func (c *Controller) beginLocked() Request {
	c.seq++
	c.view.Loading = true
	return Request{
		Seq: c.seq,
		Query: search.Query{
			Term:  c.view.SearchTerm,
			Page:  c.view.Page,
			Limit: c.view.Limit,
		},
	}
}
