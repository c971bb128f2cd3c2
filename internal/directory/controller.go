package directory

import (
	"sync"
	"time"

	"github.com/csdept/deptsite-api/internal/models"
	"github.com/csdept/deptsite-api/pkg/clock"
	"github.com/csdept/deptsite-api/pkg/debounce"
	"github.com/csdept/deptsite-api/pkg/metrics"
)

// DefaultSearchDebounce is the quiet period before a typed search is applied
const DefaultSearchDebounce = 300 * time.Millisecond

// Options configures a Controller
type Options struct {
	Clock    clock.Clock
	Debounce time.Duration
	// OnChange is called, outside the controller lock, after every recompute.
	// Calls from the debounce timer can race with calls from the caller's
	// goroutine; compare Version to drop stale results.
	OnChange func(models.DirectoryResult)
}

// Controller keeps a live filtered view over a fixed set of entries
type Controller struct {
	mu         sync.Mutex
	entries    []models.FacultyMember
	query      models.FilterQuery
	pending    models.FilterQuery
	result     models.DirectoryResult
	recomputes int

	search   *debounce.Debouncer
	onChange func(models.DirectoryResult)
}

// NewController creates a controller over entries with an empty "all" query.
// The initial view is computed immediately.
func NewController(entries []models.FacultyMember, opts Options) *Controller {
	if opts.Clock == nil {
		opts.Clock = clock.New()
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultSearchDebounce
	}

	owned := make([]models.FacultyMember, len(entries))
	copy(owned, entries)

	c := &Controller{
		entries:  owned,
		query:    models.FilterQuery{Category: models.CategoryAll},
		search:   debounce.New(opts.Clock, opts.Debounce),
		onChange: opts.OnChange,
	}
	c.pending = c.query
	c.result = Result(c.entries, c.query)
	return c
}

// SetQuery replaces the whole query and recomputes immediately. A pending
// debounced search is dropped.
func (c *Controller) SetQuery(searchText, category string) models.DirectoryResult {
	c.search.Cancel()

	c.mu.Lock()
	c.pending = models.FilterQuery{SearchText: searchText, Category: category}
	res := c.recomputeLocked()
	c.mu.Unlock()

	c.notify(res)
	return res
}

// SetSearchText records typed search text. The recompute happens once input
// has been quiet for the debounce period, using the last text.
func (c *Controller) SetSearchText(text string) {
	c.mu.Lock()
	c.pending.SearchText = text
	c.mu.Unlock()

	c.search.Trigger(c.flushSearch)
}

// SetCategory applies a category change immediately, together with any
// pending search text.
func (c *Controller) SetCategory(category string) models.DirectoryResult {
	c.search.Cancel()

	c.mu.Lock()
	c.pending.Category = category
	res := c.recomputeLocked()
	c.mu.Unlock()

	c.notify(res)
	return res
}

// Result returns the current view
func (c *Controller) Result() models.DirectoryResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.result
}

// Query returns the query the current view was computed with
func (c *Controller) Query() models.FilterQuery {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.query
}

// Recomputes returns how many times the view has been recomputed since
// construction, excluding the initial computation
func (c *Controller) Recomputes() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.recomputes
}

// Close drops a pending debounced search
func (c *Controller) Close() {
	c.search.Cancel()
}

func (c *Controller) flushSearch() {
	c.mu.Lock()
	res := c.recomputeLocked()
	c.mu.Unlock()

	c.notify(res)
}

func (c *Controller) recomputeLocked() models.DirectoryResult {
	c.query = c.pending
	c.result = Result(c.entries, c.query)
	c.recomputes++
	c.result.Version = uint64(c.recomputes)
	metrics.DirectoryRecomputes.Inc()
	return c.result
}

func (c *Controller) notify(res models.DirectoryResult) {
	if c.onChange != nil {
		c.onChange(res)
	}
}
