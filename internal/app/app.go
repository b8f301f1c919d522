package app

import (
	"context"
	"log"
	"log/slog"
	"time"

	"github.com/humanbelnik/moviematch/internal/config"
	http_catalog "github.com/humanbelnik/moviematch/internal/delivery/http/catalog"
	http_deck "github.com/humanbelnik/moviematch/internal/delivery/http/deck"
	http_init "github.com/humanbelnik/moviematch/internal/delivery/http/init"
	http_access_middleware "github.com/humanbelnik/moviematch/internal/delivery/http/middleware/access"
	http_metrics "github.com/humanbelnik/moviematch/internal/delivery/http/metrics"
	http_progress "github.com/humanbelnik/moviematch/internal/delivery/http/progress"
	http_swagger "github.com/humanbelnik/moviematch/internal/delivery/http/swagger"
	http_swipe "github.com/humanbelnik/moviematch/internal/delivery/http/swipe"
	ws_deck "github.com/humanbelnik/moviematch/internal/delivery/ws/deck"
	infra_backend "github.com/humanbelnik/moviematch/internal/infra/backend"
	infra_pg_init "github.com/humanbelnik/moviematch/internal/infra/postgres/init"
	infra_postgres_progress "github.com/humanbelnik/moviematch/internal/infra/postgres/progress"
	infra_postgres_swipe "github.com/humanbelnik/moviematch/internal/infra/postgres/swipe"
	infra_redis_init "github.com/humanbelnik/moviematch/internal/infra/redis/init"
	infra_page_cache "github.com/humanbelnik/moviematch/internal/infra/redis/page_cache"
	infra_tmdb "github.com/humanbelnik/moviematch/internal/infra/tmdb"
	"github.com/humanbelnik/moviematch/internal/service/gesture"
	"github.com/humanbelnik/moviematch/internal/service/warmer"
	usecase_discover "github.com/humanbelnik/moviematch/internal/usecase/discover"
	usecase_library "github.com/humanbelnik/moviematch/internal/usecase/library"
	usecase_session "github.com/humanbelnik/moviematch/internal/usecase/session"
)

// Go serves the discovery API: TMDB proxy, swipes, progress and stats.
func Go(cfg *config.Config) {
	logger := slog.Default()

	redisConn := infra_redis_init.MustEstablishConn(cfg.Redis)
	pgConn := infra_pg_init.MustEstablishConn(cfg.Postgres)
	infra_pg_init.MustMigrate(pgConn)

	tmdbClient, err := infra_tmdb.New(cfg.TMDB)
	if err != nil {
		log.Fatal(err)
	}
	catalog := infra_tmdb.NewBreakerClient(tmdbClient, infra_tmdb.DefaultBreakerSettings(), logger)
	pageCache := infra_page_cache.New(redisConn, "moviematch", cfg.TMDB.CacheTTL)

	swipeRepository := infra_postgres_swipe.New(pgConn)
	progressRepository := infra_postgres_progress.New(pgConn)

	discoverUC := usecase_discover.New(catalog, pageCache, usecase_discover.WithLogger(logger))
	libraryUC := usecase_library.New(swipeRepository, progressRepository)

	w := warmer.New(discoverUC, pageCache, warmer.WithLogger(logger))
	if err := w.Schedule(cfg.Warmer.Spec); err != nil {
		log.Fatal(err)
	}
	w.Start()
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if err := discoverUC.WarmGenres(ctx); err != nil {
			logger.Warn("initial genre warm-up failed", slog.String("error", err.Error()))
		}
	}()

	controllerPool := http_init.NewControllerPool(http_access_middleware.CORS())
	controllerPool.Add(http_swagger.New())
	controllerPool.Add(http_metrics.New())
	controllerPool.Add(http_catalog.New(discoverUC, http_catalog.WithLogger(logger)))
	controllerPool.Add(http_swipe.New(libraryUC, http_swipe.WithLogger(logger)))
	controllerPool.Add(http_progress.New(libraryUC, http_progress.WithLogger(logger)))

	controllerPool.Register()
	controllerPool.RunAll(cfg.HTTP.Port)
}

// Deck serves swipe sessions over websockets, backed by the discovery API.
func Deck(cfg *config.Config) {
	logger := slog.Default()

	backend := infra_backend.New(cfg.Backend)

	settings := gesture.DefaultSettings()
	if cfg.Deck.SwipeThreshold > 0 {
		settings.Threshold = cfg.Deck.SwipeThreshold
	}

	hub := ws_deck.New(backend, logger,
		usecase_session.WithUserID(cfg.Deck.UserID),
		usecase_session.WithGestureSettings(settings),
		usecase_session.WithPrefetch(cfg.Deck.PrefetchThreshold, cfg.Deck.PageSize),
	)
	defer hub.Close()

	controllerPool := http_init.NewControllerPool(http_access_middleware.CORS())
	controllerPool.Add(http_metrics.New())
	controllerPool.Add(http_deck.New(hub, http_deck.WithLogger(logger)))

	controllerPool.Register()
	controllerPool.RunAll(cfg.Deck.Port)
}
