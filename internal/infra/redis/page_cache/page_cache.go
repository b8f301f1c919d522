package infra_page_cache

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis"
	"github.com/goccy/go-json"

	infra_metrics "github.com/humanbelnik/moviematch/internal/infra/metrics"
	"github.com/humanbelnik/moviematch/internal/model"
)

const (
	kindGenres   = "genres"
	kindDiscover = "discover"
)

// Driver keeps TMDB replies for a while. Every stored key is also indexed in
// a per-type set so all pages of a type can be dropped at once.
type Driver struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

func New(
	client *redis.Client,
	key string,
	ttl time.Duration,
) *Driver {
	return &Driver{
		client: client,
		key:    key,
		ttl:    ttl,
	}
}

func (d *Driver) GetGenres(ctx context.Context, t model.ContentType) ([]model.Genre, bool, error) {
	var genres []model.Genre
	ok, err := d.get(kindGenres, d.genresKey(t), &genres)
	return genres, ok, err
}

func (d *Driver) SetGenres(ctx context.Context, t model.ContentType, genres []model.Genre) error {
	return d.set(t, d.genresKey(t), genres)
}

func (d *Driver) GetPage(ctx context.Context, q model.DiscoverQuery) (model.DiscoverPage, bool, error) {
	var page model.DiscoverPage
	ok, err := d.get(kindDiscover, d.pageKey(q), &page)
	return page, ok, err
}

func (d *Driver) SetPage(ctx context.Context, q model.DiscoverQuery, page model.DiscoverPage) error {
	return d.set(q.Type, d.pageKey(q), page)
}

// Invalidate drops every cached reply of the type.
func (d *Driver) Invalidate(ctx context.Context, t model.ContentType) error {
	index := d.indexKey(t)
	keys, err := d.client.SMembers(index).Result()
	if err != nil {
		return err
	}
	keys = append(keys, index)
	return d.client.Del(keys...).Err()
}

func (d *Driver) get(kind, key string, out any) (bool, error) {
	raw, err := d.client.Get(key).Bytes()
	if err == redis.Nil {
		infra_metrics.CacheLookups.WithLabelValues(kind, "miss").Inc()
		return false, nil
	}
	if err != nil {
		infra_metrics.CacheLookups.WithLabelValues(kind, "error").Inc()
		return false, err
	}

	if err := json.Unmarshal(raw, out); err != nil {
		infra_metrics.CacheLookups.WithLabelValues(kind, "error").Inc()
		return false, fmt.Errorf("decode cached %s: %w", key, err)
	}
	infra_metrics.CacheLookups.WithLabelValues(kind, "hit").Inc()
	return true, nil
}

func (d *Driver) set(t model.ContentType, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}

	// The index outlives each of its entries by at most one ttl.
	index := d.indexKey(t)
	pipe := d.client.TxPipeline()
	pipe.Set(key, raw, d.ttl)
	pipe.SAdd(index, key)
	pipe.Expire(index, d.ttl)
	_, err = pipe.Exec()
	return err
}

func (d *Driver) genresKey(t model.ContentType) string {
	return d.getFullKey(kindGenres + ":" + string(t))
}

func (d *Driver) pageKey(q model.DiscoverQuery) string {
	sortBy := q.SortBy
	if sortBy == "" {
		sortBy = model.DefaultSortBy
	}
	return d.getFullKey(fmt.Sprintf("%s:%s:%s:%d:%s", kindDiscover, q.Type, q.Genres.Key(), q.Page, sortBy))
}

func (d *Driver) indexKey(t model.ContentType) string {
	return d.getFullKey("index:" + string(t))
}

func (d *Driver) getFullKey(key string) string {
	if d.key != "" {
		return d.key + ":" + key
	}
	return key
}
