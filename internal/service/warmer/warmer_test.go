package warmer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/humanbelnik/moviematch/internal/model"
	"github.com/humanbelnik/moviematch/internal/service/warmer/mocks"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type WarmerUnitSuite struct {
	suite.Suite

	catalog *mocks.Catalog
	cache   *mocks.Invalidator
	warmer  *Warmer
	ctx     context.Context
}

func (s *WarmerUnitSuite) BeforeEach(t provider.T) {
	s.catalog = mocks.NewCatalog(t)
	s.cache = mocks.NewInvalidator(t)
	s.warmer = New(s.catalog, s.cache)
	s.ctx = context.Background()
}

func (s *WarmerUnitSuite) AfterEach(t provider.T) {
	s.catalog.AssertExpectations(t)
	s.cache.AssertExpectations(t)
}

func (s *WarmerUnitSuite) TestRunNow(t provider.T) {
	t.Run("Should refill genres and first pages", func(t provider.T) {
		s.cache.On("Invalidate", s.ctx, model.ContentTypeMovie).Return(nil).Once()
		s.cache.On("Invalidate", s.ctx, model.ContentTypeSeries).Return(nil).Once()
		s.catalog.On("WarmGenres", s.ctx).Return(nil).Once()
		s.catalog.On("Discover", s.ctx, model.DiscoverQuery{Type: model.ContentTypeMovie, Page: 1}).
			Return(model.DiscoverPage{Page: 1}, nil).Once()
		s.catalog.On("Discover", s.ctx, model.DiscoverQuery{Type: model.ContentTypeSeries, Page: 1}).
			Return(model.DiscoverPage{Page: 1}, nil).Once()

		assert.NoError(t, s.warmer.RunNow(s.ctx))
	})

	t.Run("Should keep going and join failures", func(t provider.T) {
		errRedis := errors.New("redis down")
		errTMDB := errors.New("tmdb down")
		s.cache.On("Invalidate", s.ctx, mock.Anything).Return(errRedis).Twice()
		s.catalog.On("WarmGenres", s.ctx).Return(errTMDB).Once()
		s.catalog.On("Discover", s.ctx, mock.Anything).Return(model.DiscoverPage{}, nil).Twice()

		err := s.warmer.RunNow(s.ctx)

		assert.ErrorIs(t, err, errRedis)
		assert.ErrorIs(t, err, errTMDB)
	})
}

func (s *WarmerUnitSuite) TestSchedule(t provider.T) {
	t.Run("Should reject malformed cron expression", func(t provider.T) {
		assert.Error(t, s.warmer.Schedule("every now and then"))
	})

	t.Run("Should run on schedule", func(t provider.T) {
		ran := make(chan struct{}, 1)
		s.cache.On("Invalidate", mock.Anything, mock.Anything).Return(nil)
		s.catalog.On("WarmGenres", mock.Anything).Return(nil).Run(func(mock.Arguments) {
			select {
			case ran <- struct{}{}:
			default:
			}
		})
		s.catalog.On("Discover", mock.Anything, mock.Anything).Return(model.DiscoverPage{}, nil)

		require.NoError(t, s.warmer.Schedule("@every 1s"))
		s.warmer.Start()
		defer s.warmer.Stop()

		select {
		case <-ran:
		case <-time.After(3 * time.Second):
			require.FailNowf(t, "timed out", "warm-up did not run")
		}
	})
}

func TestWarmerUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(WarmerUnitSuite))
}
