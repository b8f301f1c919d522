package infra_page_cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis"
	"github.com/humanbelnik/moviematch/internal/model"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type PageCacheSuite struct {
	suite.Suite

	mr     *miniredis.Miniredis
	driver *Driver
	ctx    context.Context
}

func (s *PageCacheSuite) BeforeEach(t provider.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	s.mr = mr
	s.driver = New(redis.NewClient(&redis.Options{Addr: mr.Addr()}), "moviematch", time.Minute)
	s.ctx = context.Background()
}

func (s *PageCacheSuite) AfterEach(t provider.T) {
	s.mr.Close()
}

func validPage() model.DiscoverPage {
	return model.DiscoverPage{
		Page:       2,
		TotalPages: 9,
		Results: []model.ContentItem{
			{ID: 550, Type: model.ContentTypeMovie, DisplayTitle: "Fight Club", ReleaseYear: 1999},
		},
	}
}

func (s *PageCacheSuite) TestPage(t provider.T) {
	t.Run("Should miss on empty cache", func(t provider.T) {
		_, ok, err := s.driver.GetPage(s.ctx, model.DiscoverQuery{Type: model.ContentTypeMovie, Page: 1})

		assert.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Should return stored page for the same query", func(t provider.T) {
		q := model.DiscoverQuery{Type: model.ContentTypeMovie, Genres: model.NewGenreFilter(28), Page: 2}
		require.NoError(t, s.driver.SetPage(s.ctx, q, validPage()))

		page, ok, err := s.driver.GetPage(s.ctx, q)

		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, validPage(), page)
		assert.True(t, s.mr.Exists("moviematch:discover:movie:28:2:popularity.desc"))
	})

	t.Run("Should keep queries with other genres apart", func(t provider.T) {
		_, ok, err := s.driver.GetPage(s.ctx, model.DiscoverQuery{Type: model.ContentTypeMovie, Page: 2})

		assert.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Should expire after ttl", func(t provider.T) {
		s.mr.FastForward(2 * time.Minute)

		_, ok, err := s.driver.GetPage(s.ctx, model.DiscoverQuery{Type: model.ContentTypeMovie, Genres: model.NewGenreFilter(28), Page: 2})

		assert.NoError(t, err)
		assert.False(t, ok)
	})
}

func (s *PageCacheSuite) TestGenres(t provider.T) {
	t.Run("Should store genres per type", func(t provider.T) {
		genres := []model.Genre{{ID: 18, Name: "Drama"}}
		require.NoError(t, s.driver.SetGenres(s.ctx, model.ContentTypeSeries, genres))

		got, ok, err := s.driver.GetGenres(s.ctx, model.ContentTypeSeries)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, genres, got)

		_, ok, err = s.driver.GetGenres(s.ctx, model.ContentTypeMovie)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Should report corrupted entries", func(t provider.T) {
		require.NoError(t, s.mr.Set("moviematch:genres:movie", "{not json"))

		_, ok, err := s.driver.GetGenres(s.ctx, model.ContentTypeMovie)

		assert.Error(t, err)
		assert.False(t, ok)
	})
}

func (s *PageCacheSuite) TestInvalidate(t provider.T) {
	t.Run("Should drop every entry of the type only", func(t provider.T) {
		movieQ := model.DiscoverQuery{Type: model.ContentTypeMovie, Page: 1}
		seriesQ := model.DiscoverQuery{Type: model.ContentTypeSeries, Page: 1}
		require.NoError(t, s.driver.SetPage(s.ctx, movieQ, validPage()))
		require.NoError(t, s.driver.SetGenres(s.ctx, model.ContentTypeMovie, []model.Genre{{ID: 28, Name: "Action"}}))
		require.NoError(t, s.driver.SetPage(s.ctx, seriesQ, validPage()))

		require.NoError(t, s.driver.Invalidate(s.ctx, model.ContentTypeMovie))

		_, ok, _ := s.driver.GetPage(s.ctx, movieQ)
		assert.False(t, ok)
		_, ok, _ = s.driver.GetGenres(s.ctx, model.ContentTypeMovie)
		assert.False(t, ok)
		_, ok, _ = s.driver.GetPage(s.ctx, seriesQ)
		assert.True(t, ok)
	})
}

func (s *PageCacheSuite) TestIndexExpiry(t provider.T) {
	t.Run("Should expire the type index together with its entries", func(t provider.T) {
		q := model.DiscoverQuery{Type: model.ContentTypeMovie, Genres: model.NewGenreFilter(12), Page: 3}
		require.NoError(t, s.driver.SetPage(s.ctx, q, validPage()))

		assert.Equal(t, time.Minute, s.mr.TTL("moviematch:index:movie"))

		s.mr.FastForward(2 * time.Minute)

		assert.False(t, s.mr.Exists("moviematch:index:movie"))
	})
}

func TestPageCacheSuite(t *testing.T) {
	suite.RunSuite(t, new(PageCacheSuite))
}
