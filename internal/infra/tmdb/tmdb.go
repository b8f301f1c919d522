package infra_tmdb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/humanbelnik/moviematch/internal/config"
	infra_metrics "github.com/humanbelnik/moviematch/internal/infra/metrics"
	"github.com/humanbelnik/moviematch/internal/model"
)

var (
	ErrMissingAPIKey = errors.New("tmdb api key is not set")
	ErrRequest       = errors.New("tmdb request failed")
)

const (
	posterSize   = "w500"
	backdropSize = "w1280"
)

type Client struct {
	baseURL      string
	imageBaseURL string
	apiKey       string
	limiter      *rate.Limiter
	httpClient   *http.Client
}

func New(cfg config.TMDB) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}
	return &Client{
		baseURL:      strings.TrimSuffix(cfg.BaseURL, "/"),
		imageBaseURL: cfg.ImageBaseURL,
		apiKey:       cfg.APIKey,
		limiter:      rate.NewLimiter(limit, max(cfg.Burst, 1)),
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}, nil
}

type genreList struct {
	Genres []struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"genres"`
}

// Movies carry title/release_date, tv shows name/first_air_date.
type discoverItem struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title"`
	Name         string  `json:"name"`
	ReleaseDate  string  `json:"release_date"`
	FirstAirDate string  `json:"first_air_date"`
	PosterPath   string  `json:"poster_path"`
	BackdropPath string  `json:"backdrop_path"`
	VoteAverage  float64 `json:"vote_average"`
	Overview     string  `json:"overview"`
}

type discoverList struct {
	Page         int            `json:"page"`
	Results      []discoverItem `json:"results"`
	TotalPages   int            `json:"total_pages"`
	TotalResults int            `json:"total_results"`
}

func endpointType(t model.ContentType) string {
	if t == model.ContentTypeSeries {
		return "tv"
	}
	return "movie"
}

func (c *Client) Genres(ctx context.Context, t model.ContentType) ([]model.Genre, error) {
	var list genreList
	if err := c.get(ctx, "/genre/"+endpointType(t)+"/list", nil, &list); err != nil {
		return nil, err
	}

	genres := make([]model.Genre, 0, len(list.Genres))
	for _, g := range list.Genres {
		genres = append(genres, model.Genre{ID: g.ID, Name: g.Name})
	}
	return genres, nil
}

func (c *Client) Discover(ctx context.Context, q model.DiscoverQuery) (model.DiscoverPage, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(max(q.Page, 1)))
	sortBy := q.SortBy
	if sortBy == "" {
		sortBy = model.DefaultSortBy
	}
	params.Set("sort_by", sortBy)
	if !q.Genres.Empty() {
		params.Set("with_genres", q.Genres.Key())
	}

	var list discoverList
	if err := c.get(ctx, "/discover/"+endpointType(q.Type), params, &list); err != nil {
		return model.DiscoverPage{}, err
	}

	page := model.DiscoverPage{
		Page:         list.Page,
		TotalPages:   list.TotalPages,
		TotalResults: list.TotalResults,
		Results:      make([]model.ContentItem, 0, len(list.Results)),
	}
	for _, r := range list.Results {
		page.Results = append(page.Results, c.toContent(q.Type, r))
	}
	return page, nil
}

func (c *Client) toContent(t model.ContentType, r discoverItem) model.ContentItem {
	item := model.ContentItem{
		ID:          r.ID,
		Type:        t,
		PosterURL:   c.ImageURL(r.PosterPath, posterSize),
		BackdropURL: c.ImageURL(r.BackdropPath, backdropSize),
		VoteAverage: r.VoteAverage,
		Overview:    r.Overview,
	}
	if t == model.ContentTypeSeries {
		item.DisplayTitle = r.Name
		item.ReleaseYear = model.ReleaseYearOf(r.FirstAirDate)
	} else {
		item.DisplayTitle = r.Title
		item.ReleaseYear = model.ReleaseYearOf(r.ReleaseDate)
	}
	return item
}

// ImageURL returns "" for a missing path.
func (c *Client) ImageURL(path, size string) string {
	if path == "" {
		return ""
	}
	return c.imageBaseURL + size + path
}

func (c *Client) get(ctx context.Context, endpoint string, params url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrRequest, err)
	}

	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint+"?"+params.Encode(), http.NoBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	label := metricLabel(endpoint)
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	infra_metrics.TMDBRequestDuration.WithLabelValues(label).Observe(time.Since(start).Seconds())
	if err != nil {
		infra_metrics.TMDBRequests.WithLabelValues(label, "failure").Inc()
		return fmt.Errorf("%w: %w", ErrRequest, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		infra_metrics.TMDBRequests.WithLabelValues(label, "failure").Inc()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: %s returned status %d: %s", ErrRequest, endpoint, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		infra_metrics.TMDBRequests.WithLabelValues(label, "failure").Inc()
		return fmt.Errorf("%w: decode %s: %w", ErrRequest, endpoint, err)
	}
	infra_metrics.TMDBRequests.WithLabelValues(label, "success").Inc()
	return nil
}

// metricLabel keeps label cardinality fixed: "/discover/tv" -> "discover".
func metricLabel(endpoint string) string {
	trimmed := strings.TrimPrefix(endpoint, "/")
	if i := strings.IndexByte(trimmed, '/'); i >= 0 {
		return trimmed[:i]
	}
	return trimmed
}
