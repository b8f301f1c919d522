package infra_tmdb

import (
	"context"
	"errors"
	"log/slog"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	infra_metrics "github.com/humanbelnik/moviematch/internal/infra/metrics"
	"github.com/humanbelnik/moviematch/internal/model"
)

var ErrUnavailable = errors.New("tmdb temporarily unavailable")

const breakerName = "tmdb-api"

type BreakerSettings struct {
	MaxRequests uint32
	Interval    time.Duration
	Timeout     time.Duration
	MinRequests uint32
	// Failure ratio at which the breaker opens.
	FailureRatio float64
}

func DefaultBreakerSettings() BreakerSettings {
	return BreakerSettings{
		MaxRequests:  3,
		Interval:     time.Minute,
		Timeout:      30 * time.Second,
		MinRequests:  10,
		FailureRatio: 0.6,
	}
}

// BreakerClient stops calling TMDB for a while once it keeps failing.
type BreakerClient struct {
	client *Client
	cb     *gobreaker.CircuitBreaker[any]
	logger *slog.Logger
}

func NewBreakerClient(client *Client, s BreakerSettings, logger *slog.Logger) *BreakerClient {
	if logger == nil {
		logger = slog.Default()
	}
	infra_metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0)

	bc := &BreakerClient{client: client, logger: logger}
	bc.cb = gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: s.MaxRequests,
		Interval:    s.Interval,
		Timeout:     s.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < s.MinRequests {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= s.FailureRatio
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				slog.String("name", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
			infra_metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
		},
	})
	return bc
}

func stateToFloat(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateOpen:
		return 1
	case gobreaker.StateHalfOpen:
		return 2
	default:
		return 0
	}
}

func (bc *BreakerClient) State() gobreaker.State {
	return bc.cb.State()
}

func (bc *BreakerClient) execute(endpoint string, fn func() (any, error)) (any, error) {
	res, err := bc.cb.Execute(fn)
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		infra_metrics.TMDBRequests.WithLabelValues(endpoint, "rejected").Inc()
		return nil, errors.Join(ErrUnavailable, err)
	}
	return res, err
}

func (bc *BreakerClient) Genres(ctx context.Context, t model.ContentType) ([]model.Genre, error) {
	res, err := bc.execute("genre", func() (any, error) {
		return bc.client.Genres(ctx, t)
	})
	if err != nil {
		return nil, err
	}
	genres, ok := res.([]model.Genre)
	if !ok {
		return nil, errors.New("circuit breaker: unexpected result type for Genres")
	}
	return genres, nil
}

func (bc *BreakerClient) Discover(ctx context.Context, q model.DiscoverQuery) (model.DiscoverPage, error) {
	res, err := bc.execute("discover", func() (any, error) {
		return bc.client.Discover(ctx, q)
	})
	if err != nil {
		return model.DiscoverPage{}, err
	}
	page, ok := res.(model.DiscoverPage)
	if !ok {
		return model.DiscoverPage{}, errors.New("circuit breaker: unexpected result type for Discover")
	}
	return page, nil
}
