package infra_tmdb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/humanbelnik/moviematch/internal/config"
	"github.com/humanbelnik/moviematch/internal/model"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type TMDBClientSuite struct {
	suite.Suite
}

func newTestClient(t provider.T, srv *httptest.Server) *Client {
	c, err := New(config.TMDB{
		APIKey:       "key",
		BaseURL:      srv.URL,
		ImageBaseURL: "https://image.tmdb.org/t/p/",
		Timeout:      time.Second,
	})
	require.NoError(t, err)
	return c
}

func (s *TMDBClientSuite) TestNew(t provider.T) {
	t.Run("Should require an api key", func(t provider.T) {
		_, err := New(config.TMDB{BaseURL: "http://localhost"})

		assert.ErrorIs(t, err, ErrMissingAPIKey)
	})
}

func (s *TMDBClientSuite) TestDiscover(t provider.T) {
	t.Run("Should map movie fields and build image urls", func(t provider.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/discover/movie", r.URL.Path)
			assert.Equal(t, "key", r.URL.Query().Get("api_key"))
			assert.Equal(t, "2", r.URL.Query().Get("page"))
			assert.Equal(t, "popularity.desc", r.URL.Query().Get("sort_by"))
			assert.Equal(t, "28,35", r.URL.Query().Get("with_genres"))
			_, _ = w.Write([]byte(`{"page":2,"total_pages":5,"total_results":100,"results":[
				{"id":550,"title":"Fight Club","release_date":"1999-10-15","poster_path":"/p.jpg","backdrop_path":"/b.jpg","vote_average":8.4,"overview":"..."}
			]}`))
		}))
		defer srv.Close()

		page, err := newTestClient(t, srv).Discover(context.Background(), model.DiscoverQuery{
			Type:   model.ContentTypeMovie,
			Genres: model.NewGenreFilter(35, 28),
			Page:   2,
		})

		require.NoError(t, err)
		require.Len(t, page.Results, 1)
		assert.Equal(t, model.ContentItem{
			ID:           550,
			Type:         model.ContentTypeMovie,
			DisplayTitle: "Fight Club",
			ReleaseYear:  1999,
			PosterURL:    "https://image.tmdb.org/t/p/w500/p.jpg",
			BackdropURL:  "https://image.tmdb.org/t/p/w1280/b.jpg",
			VoteAverage:  8.4,
			Overview:     "...",
		}, page.Results[0])
		assert.Equal(t, 5, page.TotalPages)
	})

	t.Run("Should map series fields and omit genre filter", func(t provider.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/discover/tv", r.URL.Path)
			assert.False(t, r.URL.Query().Has("with_genres"))
			_, _ = w.Write([]byte(`{"page":1,"results":[{"id":1399,"name":"Game of Thrones","first_air_date":"","vote_average":8.5}]}`))
		}))
		defer srv.Close()

		page, err := newTestClient(t, srv).Discover(context.Background(), model.DiscoverQuery{
			Type: model.ContentTypeSeries,
			Page: 1,
		})

		require.NoError(t, err)
		require.Len(t, page.Results, 1)
		assert.Equal(t, "Game of Thrones", page.Results[0].DisplayTitle)
		assert.Zero(t, page.Results[0].ReleaseYear)
		assert.Empty(t, page.Results[0].PosterURL)
	})

	t.Run("Should fail on non-200 status", func(t provider.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer srv.Close()

		_, err := newTestClient(t, srv).Discover(context.Background(), model.DiscoverQuery{Type: model.ContentTypeMovie})

		assert.ErrorIs(t, err, ErrRequest)
	})
}

func (s *TMDBClientSuite) TestGenres(t provider.T) {
	t.Run("Should list genres of the type", func(t provider.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/genre/tv/list", r.URL.Path)
			_, _ = w.Write([]byte(`{"genres":[{"id":18,"name":"Drama"},{"id":35,"name":"Comedy"}]}`))
		}))
		defer srv.Close()

		genres, err := newTestClient(t, srv).Genres(context.Background(), model.ContentTypeSeries)

		require.NoError(t, err)
		assert.Equal(t, []model.Genre{{ID: 18, Name: "Drama"}, {ID: 35, Name: "Comedy"}}, genres)
	})
}

func (s *TMDBClientSuite) TestBreaker(t provider.T) {
	t.Run("Should open after repeated failures and reject calls", func(t provider.T) {
		var hits atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits.Add(1)
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		bc := NewBreakerClient(newTestClient(t, srv), BreakerSettings{
			MaxRequests:  1,
			Interval:     time.Minute,
			Timeout:      time.Minute,
			MinRequests:  3,
			FailureRatio: 0.5,
		}, nil)

		for range 3 {
			_, err := bc.Genres(context.Background(), model.ContentTypeMovie)
			assert.ErrorIs(t, err, ErrRequest)
		}
		assert.Equal(t, gobreaker.StateOpen, bc.State())

		_, err := bc.Discover(context.Background(), model.DiscoverQuery{Type: model.ContentTypeMovie})

		assert.ErrorIs(t, err, ErrUnavailable)
		assert.Equal(t, int32(3), hits.Load())
	})
}

func TestTMDBClientSuite(t *testing.T) {
	suite.RunSuite(t, new(TMDBClientSuite))
}
