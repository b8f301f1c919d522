package prefetch

import (
	"context"
	"log/slog"

	infra_metrics "github.com/humanbelnik/moviematch/internal/infra/metrics"
	"github.com/humanbelnik/moviematch/internal/model"
	"github.com/humanbelnik/moviematch/internal/service/deck"
)

const (
	DefaultThreshold = 3
	// Matches the backend page granularity.
	DefaultPageSize = 20
)

//go:generate mockery --name=Fetcher --output=./mocks --filename=fetcher.go
type Fetcher interface {
	Discover(ctx context.Context, q model.DiscoverQuery) (model.DiscoverPage, error)
}

// Dispatcher runs f on the goroutine that owns the deck.
type Dispatcher interface {
	Post(f func()) bool
}

type Result struct {
	Key model.PageKey
	// Applied is false for failures and for pages that arrived stale.
	Applied bool
	// Stale is set when the fetch was issued before the last Rescope, even if
	// the scope has since been selected again.
	Stale bool
	Err   error
}

// flight is one issued request. gen tells apart two selections of the same
// scope.
type flight struct {
	key model.PageKey
	gen uint64
}

type Controller struct {
	fetcher    Fetcher
	dispatcher Dispatcher

	threshold int
	pageSize  int

	query    model.DiscoverQuery
	scope    model.Scope
	gen      uint64
	inflight map[flight]struct{}

	settled func(Result)
	logger  *slog.Logger
}

type Option func(*Controller)

func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

func WithThreshold(n int) Option {
	return func(c *Controller) {
		if n > 0 {
			c.threshold = n
		}
	}
}

func WithPageSize(n int) Option {
	return func(c *Controller) {
		if n > 0 {
			c.pageSize = n
		}
	}
}

// OnSettled registers a callback run on the dispatcher after every fetch
// completes, whatever its outcome.
func OnSettled(f func(Result)) Option {
	return func(c *Controller) {
		c.settled = f
	}
}

func New(fetcher Fetcher, dispatcher Dispatcher, opts ...Option) *Controller {
	c := &Controller{
		fetcher:    fetcher,
		dispatcher: dispatcher,
		threshold:  DefaultThreshold,
		pageSize:   DefaultPageSize,
		inflight:   make(map[flight]struct{}),
		settled:    func(Result) {},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Rescope switches the query future fetches are issued for. Responses that
// are still in flight from before the call will be discarded, including
// those for a scope equal to the new one.
func (c *Controller) Rescope(q model.DiscoverQuery) {
	if q.SortBy == "" {
		q.SortBy = model.DefaultSortBy
	}
	c.query = q
	c.scope = model.NewScope(q.Type, q.Genres)
	c.gen++
}

func (c *Controller) Scope() model.Scope {
	return c.scope
}

// InFlight reports whether key is being fetched since the last Rescope.
func (c *Controller) InFlight(key model.PageKey) bool {
	_, ok := c.inflight[flight{key: key, gen: c.gen}]
	return ok
}

// Outstanding reports whether any fetch for the current scope is in flight.
func (c *Controller) Outstanding() bool {
	for f := range c.inflight {
		if f.gen == c.gen {
			return true
		}
	}
	return false
}

// NextPage reports the page to fetch when the deck is running low.
func (c *Controller) NextPage(d *deck.Deck) (int, bool) {
	if d.Remaining() >= c.threshold {
		return 0, false
	}
	return d.Cursor()/c.pageSize + 2, true
}

// CheckAndFetch is consulted after every advance. At most one request per
// key is outstanding at any time.
func (c *Controller) CheckAndFetch(ctx context.Context, d *deck.Deck) (model.PageKey, bool) {
	page, ok := c.NextPage(d)
	if !ok {
		return model.PageKey{}, false
	}
	return c.fetch(ctx, d, page)
}

// FetchFirst loads page one of the current scope. On success the deck is
// reset to its results.
func (c *Controller) FetchFirst(ctx context.Context, d *deck.Deck) (model.PageKey, bool) {
	return c.fetch(ctx, d, deck.FirstPage)
}

func (c *Controller) fetch(ctx context.Context, d *deck.Deck, page int) (model.PageKey, bool) {
	key := model.PageKey{Scope: c.scope, Page: page}
	if c.InFlight(key) {
		return key, false
	}
	f := flight{key: key, gen: c.gen}
	c.inflight[f] = struct{}{}

	q := c.query
	q.Page = page

	c.logger.Debug("fetching page",
		slog.String("content_type", string(q.Type)),
		slog.String("genres", key.Genres),
		slog.Int("page", page),
	)

	go func() {
		res, err := c.fetcher.Discover(ctx, q)
		posted := c.dispatcher.Post(func() {
			c.settle(d, f, res.Results, err)
		})
		if !posted {
			c.logger.Debug("page dropped, session closed", slog.Int("page", page))
		}
	}()

	return key, true
}

func (c *Controller) settle(d *deck.Deck, f flight, items []model.ContentItem, err error) {
	delete(c.inflight, f)

	key := f.key
	res := Result{Key: key, Err: err, Stale: f.gen != c.gen}
	switch {
	case err != nil:
		c.logger.Error("failed to fetch page",
			slog.String("content_type", string(key.Type)),
			slog.Int("page", key.Page),
			slog.String("error", err.Error()),
		)
		infra_metrics.PrefetchRequests.WithLabelValues("failure").Inc()
	case res.Stale:
		infra_metrics.PrefetchRequests.WithLabelValues("stale").Inc()
	case key.Page == deck.FirstPage:
		d.Reset(items)
		res.Applied = true
	default:
		res.Applied = d.AppendPage(items, key.Page)
	}

	if res.Applied {
		infra_metrics.PrefetchRequests.WithLabelValues("applied").Inc()
	} else if err == nil && !res.Stale {
		infra_metrics.PrefetchRequests.WithLabelValues("stale").Inc()
	}

	c.settled(res)
}
