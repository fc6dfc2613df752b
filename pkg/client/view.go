package client

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/gamedexapp/gamedex/pkg/models"
	"github.com/gamedexapp/gamedex/pkg/query"
	"github.com/google/uuid"
)

// State is the view's position in its fetch lifecycle.
type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateReady   State = "ready"
	StateErrored State = "errored"
)

// DefaultDebounceInterval is how long search input must be quiet before the
// buffered text commits into the query. It bounds request volume under fast
// typing.
const DefaultDebounceInterval = 800 * time.Millisecond

// Snapshot is an immutable copy of the view's displayable state.
type Snapshot struct {
	State       State
	Spec        query.Spec
	SearchInput string
	Items       []*models.Game
	Total       int
	TotalPages  int
	Count       int
	Err         error
}

type Option func(*View)

func WithDebounceInterval(d time.Duration) Option {
	return func(v *View) { v.debounce = d }
}

func WithLimit(limit int) Option {
	return func(v *View) { v.limit = clampLimit(limit) }
}

func WithSort(dir query.Direction) Option {
	return func(v *View) { v.sort = normalizeSort(dir) }
}

// WithOnUpdate registers a callback invoked with a fresh snapshot after
// every state change. It may be called from multiple goroutines; rely on
// Snapshot ordering via State rather than call order.
func WithOnUpdate(fn func(Snapshot)) Option {
	return func(v *View) { v.onUpdate = fn }
}

// View owns the current query selection for one mounted catalog view and
// drives refetching as the selection changes. Any filter, sort, or committed
// search mutation resets the page to 1, since changing the result set
// invalidates the previous page position.
//
// Every issued fetch carries a request token. A response is applied only
// when its token still matches the latest issued one; responses to
// superseded specs are discarded even when they arrive last, so a slow fetch
// can never regress the view to stale data.
type View struct {
	fetcher  Fetcher
	debounce time.Duration
	onUpdate func(Snapshot)

	mu          sync.Mutex
	state       State
	page        int
	limit       int
	filters     map[string][]string
	search      string
	sort        query.Direction
	searchInput string
	searchTimer *time.Timer
	latestToken string
	lastFetched *query.Spec
	items       []*models.Game
	total       int
	totalPages  int
	count       int
	err         error
	closed      bool
}

func NewView(fetcher Fetcher, opts ...Option) *View {
	v := &View{
		fetcher:  fetcher,
		debounce: DefaultDebounceInterval,
		state:    StateIdle,
		page:     query.DefaultPage,
		limit:    query.DefaultLimit,
		filters:  map[string][]string{},
		sort:     query.DefaultSort,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Mount issues the initial fetch.
func (v *View) Mount() {
	v.mutate(func() {})
}

// SetPage moves to the given page without touching the rest of the
// selection.
func (v *View) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	v.mutate(func() {
		v.page = page
	})
}

// SetLimit changes the page size and resets to the first page.
func (v *View) SetLimit(limit int) {
	limit = clampLimit(limit)
	v.mutate(func() {
		v.limit = limit
		v.page = 1
	})
}

// SetFilter replaces the accepted values for one filter key. Empty or
// whitespace-only values are dropped; calling with no surviving values
// removes the constraint entirely.
func (v *View) SetFilter(key string, values ...string) {
	compacted := compactValues(values)
	v.mutate(func() {
		if len(compacted) == 0 {
			delete(v.filters, key)
		} else {
			v.filters[key] = compacted
		}
		v.page = 1
	})
}

// SetSort changes the sort direction; unknown directions fall back to the
// default.
func (v *View) SetSort(dir query.Direction) {
	dir = normalizeSort(dir)
	v.mutate(func() {
		v.sort = dir
		v.page = 1
	})
}

// TypeSearch records one keystroke of search input. The text is buffered;
// it only commits into the query after the debounce interval passes with no
// further keystrokes. Each keystroke fully cancels the previous timer, so
// exactly one commit fires per quiescence period.
func (v *View) TypeSearch(text string) {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return
	}
	v.searchInput = text
	if v.searchTimer != nil {
		v.searchTimer.Stop()
	}
	v.searchTimer = time.AfterFunc(v.debounce, v.commitSearch)
	snap := v.snapshotLocked()
	v.mu.Unlock()

	v.notify(snap)
}

// CommitSearch flushes any buffered search input immediately instead of
// waiting out the debounce interval.
func (v *View) CommitSearch() {
	v.commitSearch()
}

// Snapshot returns a copy of the current displayable state.
func (v *View) Snapshot() Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.snapshotLocked()
}

// Close stops the debounce timer and invalidates any in-flight fetches.
// The view must not be used afterwards.
func (v *View) Close() {
	v.mu.Lock()
	v.closed = true
	if v.searchTimer != nil {
		v.searchTimer.Stop()
		v.searchTimer = nil
	}
	v.latestToken = ""
	v.mu.Unlock()
}

// mutate applies one selection edit and refetches if the derived spec
// actually changed, so unrelated edits never trigger requests.
func (v *View) mutate(fn func()) {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return
	}
	fn()
	token, spec, started := v.startFetchLocked()
	snap := v.snapshotLocked()
	v.mu.Unlock()

	if started {
		go v.execute(token, spec)
	}
	v.notify(snap)
}

func (v *View) commitSearch() {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return
	}
	if v.searchTimer != nil {
		v.searchTimer.Stop()
		v.searchTimer = nil
	}
	committed := strings.TrimSpace(v.searchInput)
	if committed == v.search {
		v.mu.Unlock()
		return
	}
	v.search = committed
	v.page = 1
	token, spec, started := v.startFetchLocked()
	snap := v.snapshotLocked()
	v.mu.Unlock()

	if started {
		go v.execute(token, spec)
	}
	v.notify(snap)
}

// startFetchLocked transitions to loading and registers a new request token
// when the current spec differs from the last fetched one. Callers must hold
// v.mu.
func (v *View) startFetchLocked() (string, query.Spec, bool) {
	spec := v.specLocked()
	if v.lastFetched != nil && spec.Equal(*v.lastFetched) {
		return "", spec, false
	}

	v.state = StateLoading
	token := uuid.NewString()
	v.latestToken = token
	fetched := spec
	v.lastFetched = &fetched

	return token, spec, true
}

func (v *View) execute(token string, spec query.Spec) {
	envelope, err := v.fetcher.Fetch(context.Background(), spec)

	v.mu.Lock()
	if v.closed || token != v.latestToken {
		// A newer spec was issued while this fetch was in flight; its
		// response must not reach the display.
		v.mu.Unlock()
		return
	}
	if err != nil {
		// Keep the previous items and metadata for display continuity.
		v.state = StateErrored
		v.err = err
	} else {
		v.state = StateReady
		v.err = nil
		v.items = envelope.Items
		v.total = envelope.Total
		v.totalPages = envelope.TotalPages
		v.count = envelope.Count
	}
	snap := v.snapshotLocked()
	v.mu.Unlock()

	v.notify(snap)
}

func (v *View) specLocked() query.Spec {
	spec := query.Spec{
		Page:   v.page,
		Limit:  v.limit,
		Search: v.search,
		Sort:   v.sort,
	}
	if len(v.filters) > 0 {
		filters := make(map[string][]string, len(v.filters))
		for key, values := range v.filters {
			filters[key] = append([]string(nil), values...)
		}
		spec.Filters = filters
	}
	return spec
}

func (v *View) snapshotLocked() Snapshot {
	items := make([]*models.Game, len(v.items))
	copy(items, v.items)

	return Snapshot{
		State:       v.state,
		Spec:        v.specLocked(),
		SearchInput: v.searchInput,
		Items:       items,
		Total:       v.total,
		TotalPages:  v.totalPages,
		Count:       v.count,
		Err:         v.err,
	}
}

func (v *View) notify(snap Snapshot) {
	if v.onUpdate != nil {
		v.onUpdate(snap)
	}
}

func clampLimit(limit int) int {
	if limit < 1 {
		return 1
	}
	if limit > query.MaxLimit {
		return query.MaxLimit
	}
	return limit
}

func normalizeSort(dir query.Direction) query.Direction {
	if dir == query.SortAscending || dir == query.SortDescending {
		return dir
	}
	return query.DefaultSort
}

func compactValues(raw []string) []string {
	var values []string
	seen := map[string]bool{}
	for _, value := range raw {
		value = strings.TrimSpace(value)
		if value == "" || seen[value] {
			continue
		}
		seen[value] = true
		values = append(values, value)
	}
	return values
}
