package usecase_discover

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/humanbelnik/moviematch/internal/model"
	"golang.org/x/sync/singleflight"
)

var (
	ErrInvalidContentType = errors.New("content_type must be 'movie' or 'series'")
	ErrCatalogUnavailable = errors.New("catalog unavailable")
)

//go:generate mockery --name=Catalog --output=./mocks --filename=catalog.go
type Catalog interface {
	Genres(ctx context.Context, t model.ContentType) ([]model.Genre, error)
	Discover(ctx context.Context, q model.DiscoverQuery) (model.DiscoverPage, error)
}

//go:generate mockery --name=PageCache --output=./mocks --filename=page_cache.go
type PageCache interface {
	GetGenres(ctx context.Context, t model.ContentType) ([]model.Genre, bool, error)
	SetGenres(ctx context.Context, t model.ContentType, genres []model.Genre) error
	GetPage(ctx context.Context, q model.DiscoverQuery) (model.DiscoverPage, bool, error)
	SetPage(ctx context.Context, q model.DiscoverQuery, page model.DiscoverPage) error
}

type Usecase struct {
	catalog Catalog
	cache   PageCache
	group   singleflight.Group
	logger  *slog.Logger
}

type Option func(*Usecase)

func WithLogger(logger *slog.Logger) Option {
	return func(u *Usecase) {
		u.logger = logger
	}
}

func New(
	catalog Catalog,
	cache PageCache,
	opts ...Option,
) *Usecase {
	u := &Usecase{
		catalog: catalog,
		cache:   cache,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

func (u *Usecase) Genres(ctx context.Context, t model.ContentType) ([]model.Genre, error) {
	if !t.Valid() {
		return nil, ErrInvalidContentType
	}

	genres, ok, err := u.cache.GetGenres(ctx, t)
	if err != nil {
		u.logger.Warn("genre cache lookup failed", slog.String("content_type", string(t)), slog.String("error", err.Error()))
	}
	if ok {
		return genres, nil
	}

	v, err, _ := u.group.Do("genres:"+string(t), func() (any, error) {
		return u.loadGenres(ctx, t)
	})
	if err != nil {
		return nil, err
	}
	return v.([]model.Genre), nil
}

func (u *Usecase) Discover(ctx context.Context, q model.DiscoverQuery) (model.DiscoverPage, error) {
	if !q.Type.Valid() {
		return model.DiscoverPage{}, ErrInvalidContentType
	}
	if q.Page < 1 {
		q.Page = 1
	}
	if q.SortBy == "" {
		q.SortBy = model.DefaultSortBy
	}
	q.Genres = model.NewGenreFilter(q.Genres...)

	page, ok, err := u.cache.GetPage(ctx, q)
	if err != nil {
		u.logger.Warn("page cache lookup failed", slog.Int("page", q.Page), slog.String("error", err.Error()))
	}
	if ok {
		return page, nil
	}

	key := fmt.Sprintf("discover:%s:%s:%d:%s", q.Type, q.Genres.Key(), q.Page, q.SortBy)
	v, err, _ := u.group.Do(key, func() (any, error) {
		page, err := u.catalog.Discover(ctx, q)
		if err != nil {
			return nil, errors.Join(ErrCatalogUnavailable, err)
		}
		if err := u.cache.SetPage(ctx, q, page); err != nil {
			u.logger.Warn("failed to cache page", slog.Int("page", q.Page), slog.String("error", err.Error()))
		}
		return page, nil
	})
	if err != nil {
		return model.DiscoverPage{}, err
	}
	return v.(model.DiscoverPage), nil
}

// WarmGenres refreshes the cached genre lists of every content type.
func (u *Usecase) WarmGenres(ctx context.Context) error {
	var errs []error
	for _, t := range []model.ContentType{model.ContentTypeMovie, model.ContentTypeSeries} {
		if _, err := u.loadGenres(ctx, t); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (u *Usecase) loadGenres(ctx context.Context, t model.ContentType) ([]model.Genre, error) {
	genres, err := u.catalog.Genres(ctx, t)
	if err != nil {
		return nil, errors.Join(ErrCatalogUnavailable, err)
	}
	if err := u.cache.SetGenres(ctx, t, genres); err != nil {
		u.logger.Warn("failed to cache genres", slog.String("content_type", string(t)), slog.String("error", err.Error()))
	}
	return genres, nil
}
