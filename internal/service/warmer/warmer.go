package warmer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/humanbelnik/moviematch/internal/model"
)

const jobTimeout = 5 * time.Minute

//go:generate mockery --name=Catalog --output=./mocks --filename=catalog.go
type Catalog interface {
	WarmGenres(ctx context.Context) error
	Discover(ctx context.Context, q model.DiscoverQuery) (model.DiscoverPage, error)
}

//go:generate mockery --name=Invalidator --output=./mocks --filename=invalidator.go
type Invalidator interface {
	Invalidate(ctx context.Context, t model.ContentType) error
}

// Warmer periodically drops cached TMDB replies and refills the ones every
// session starts with: both genre lists and the unfiltered first pages.
type Warmer struct {
	catalog Catalog
	cache   Invalidator
	cron    *cron.Cron
	logger  *slog.Logger
}

type Option func(*Warmer)

func WithLogger(logger *slog.Logger) Option {
	return func(w *Warmer) {
		w.logger = logger
	}
}

func New(catalog Catalog, cache Invalidator, opts ...Option) *Warmer {
	w := &Warmer{
		catalog: catalog,
		cache:   cache,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}

	l := cronLogger{w.logger}
	w.cron = cron.New(
		cron.WithLogger(l),
		cron.WithChain(cron.Recover(l), cron.SkipIfStillRunning(l)),
	)
	return w
}

// Schedule registers the refresh under a standard cron spec or a
// descriptor like "@every 6h".
func (w *Warmer) Schedule(spec string) error {
	_, err := w.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		start := time.Now()
		if err := w.RunNow(ctx); err != nil {
			w.logger.Error("cache warm-up failed", slog.String("error", err.Error()))
			return
		}
		w.logger.Info("cache warm-up done", slog.Duration("took", time.Since(start)))
	})
	if err != nil {
		return fmt.Errorf("failed to schedule warm-up %q: %w", spec, err)
	}
	return nil
}

func (w *Warmer) Start() {
	w.cron.Start()
}

// Stop waits for a running refresh to finish.
func (w *Warmer) Stop() {
	<-w.cron.Stop().Done()
}

func (w *Warmer) RunNow(ctx context.Context) error {
	var errs []error
	types := []model.ContentType{model.ContentTypeMovie, model.ContentTypeSeries}

	for _, t := range types {
		if err := w.cache.Invalidate(ctx, t); err != nil {
			errs = append(errs, fmt.Errorf("invalidate %s: %w", t, err))
		}
	}
	if err := w.catalog.WarmGenres(ctx); err != nil {
		errs = append(errs, err)
	}
	for _, t := range types {
		if _, err := w.catalog.Discover(ctx, model.DiscoverQuery{Type: t, Page: 1}); err != nil {
			errs = append(errs, fmt.Errorf("first %s page: %w", t, err))
		}
	}
	return errors.Join(errs...)
}

type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error(msg, append(keysAndValues, slog.String("error", err.Error()))...)
}
