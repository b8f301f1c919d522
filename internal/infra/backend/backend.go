package infra_backend

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/goccy/go-json"

	"github.com/humanbelnik/moviematch/internal/config"
	"github.com/humanbelnik/moviematch/internal/model"
)

var (
	// ErrNetwork covers transport failures and non-2xx replies alike.
	ErrNetwork       = errors.New("backend unreachable")
	ErrInvalidReply  = errors.New("unexpected backend reply")
	ErrUnknownStatus = errors.New("backend returned non-2xx status")
)

// Client speaks the discovery API served by cmd/app.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(cfg config.Backend) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

type genreDTO struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type genresResponse struct {
	Genres []genreDTO `json:"genres"`
}

type discoverRequest struct {
	ContentType string `json:"content_type"`
	GenreIDs    []int  `json:"genre_ids"`
	Page        int    `json:"page"`
	SortBy      string `json:"sort_by,omitempty"`
}

type contentDTO struct {
	ID          int64   `json:"id"`
	ContentType string  `json:"content_type"`
	Title       string  `json:"title"`
	ReleaseYear int     `json:"release_year"`
	PosterURL   string  `json:"poster_url"`
	BackdropURL string  `json:"backdrop_url"`
	VoteAverage float64 `json:"vote_average"`
	Overview    string  `json:"overview"`
}

type discoverResponse struct {
	Page         int          `json:"page"`
	Results      []contentDTO `json:"results"`
	TotalPages   int          `json:"total_pages"`
	TotalResults int          `json:"total_results"`
}

type swipeRequest struct {
	ContentID   int64  `json:"content_id"`
	ContentType string `json:"content_type"`
	Action      string `json:"action"`
	UserID      string `json:"user_id"`
}

type statsDTO struct {
	TotalSwipes    int `json:"total_swipes"`
	LikedCount     int `json:"liked_count"`
	DislikedCount  int `json:"disliked_count"`
	WatchingCount  int `json:"watching_count"`
	CompletedCount int `json:"completed_count"`
}

type statsResponse struct {
	Stats statsDTO `json:"stats"`
}

func (c *Client) Genres(ctx context.Context, t model.ContentType) ([]model.Genre, error) {
	var resp genresResponse
	if err := c.do(ctx, http.MethodGet, "/genres/"+t.GenrePath(), nil, &resp); err != nil {
		return nil, err
	}

	genres := make([]model.Genre, 0, len(resp.Genres))
	for _, g := range resp.Genres {
		genres = append(genres, model.Genre{ID: g.ID, Name: g.Name})
	}
	return genres, nil
}

func (c *Client) Discover(ctx context.Context, q model.DiscoverQuery) (model.DiscoverPage, error) {
	req := discoverRequest{
		ContentType: string(q.Type),
		Page:        q.Page,
		SortBy:      q.SortBy,
	}
	// nil encodes as null, meaning unfiltered.
	if !q.Genres.Empty() {
		req.GenreIDs = q.Genres
	}

	var resp discoverResponse
	if err := c.do(ctx, http.MethodPost, "/discover", req, &resp); err != nil {
		return model.DiscoverPage{}, err
	}

	page := model.DiscoverPage{
		Page:         resp.Page,
		TotalPages:   resp.TotalPages,
		TotalResults: resp.TotalResults,
		Results:      make([]model.ContentItem, 0, len(resp.Results)),
	}
	for _, r := range resp.Results {
		ct, err := model.ParseContentType(r.ContentType)
		if err != nil {
			ct = q.Type
		}
		page.Results = append(page.Results, model.ContentItem{
			ID:           r.ID,
			Type:         ct,
			DisplayTitle: r.Title,
			ReleaseYear:  r.ReleaseYear,
			PosterURL:    r.PosterURL,
			BackdropURL:  r.BackdropURL,
			VoteAverage:  r.VoteAverage,
			Overview:     r.Overview,
		})
	}
	return page, nil
}

func (c *Client) RecordSwipe(ctx context.Context, d model.SwipeDecision) error {
	req := swipeRequest{
		ContentID:   d.ContentID,
		ContentType: string(d.ContentType),
		Action:      string(d.Action),
		UserID:      d.UserID,
	}
	return c.do(ctx, http.MethodPost, "/swipe", req, nil)
}

func (c *Client) Stats(ctx context.Context, userID model.UserID) (model.StatsSnapshot, error) {
	var resp statsResponse
	if err := c.do(ctx, http.MethodGet, "/stats/"+url.PathEscape(userID), nil, &resp); err != nil {
		return model.StatsSnapshot{}, err
	}
	return model.StatsSnapshot{
		TotalSwipes:    resp.Stats.TotalSwipes,
		LikedCount:     resp.Stats.LikedCount,
		DislikedCount:  resp.Stats.DislikedCount,
		WatchingCount:  resp.Stats.WatchingCount,
		CompletedCount: resp.Stats.CompletedCount,
	}, nil
}

func (c *Client) do(ctx context.Context, method, endpoint string, body, out any) error {
	var reader io.Reader = http.NoBody
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNetwork, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: %w: %s %s returned %d: %s",
			ErrNetwork, ErrUnknownStatus, method, endpoint, resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %w: %w", ErrNetwork, ErrInvalidReply, err)
	}
	return nil
}
