package usecase_session

import (
	"context"
	"errors"
	"log/slog"

	"github.com/humanbelnik/moviematch/internal/model"
	"github.com/humanbelnik/moviematch/internal/service/deck"
	"github.com/humanbelnik/moviematch/internal/service/gesture"
	"github.com/humanbelnik/moviematch/internal/service/loop"
	"github.com/humanbelnik/moviematch/internal/service/prefetch"
	"github.com/humanbelnik/moviematch/internal/service/recorder"
)

var ErrClosed = errors.New("session closed")

//go:generate mockery --name=Backend --output=./mocks --filename=backend.go
type Backend interface {
	Genres(ctx context.Context, t model.ContentType) ([]model.Genre, error)
	Discover(ctx context.Context, q model.DiscoverQuery) (model.DiscoverPage, error)
	RecordSwipe(ctx context.Context, d model.SwipeDecision) error
	Stats(ctx context.Context, userID model.UserID) (model.StatsSnapshot, error)
}

type dispatcher interface {
	Post(f func()) bool
}

// Session is the state of one viewer: the deck, the gesture in progress,
// the active scope and the last stats. Everything below the exported input
// methods runs on the session goroutine only.
type Session struct {
	backend    Backend
	publisher  Publisher
	dispatcher dispatcher
	loop       *loop.Loop

	tracker  *gesture.Tracker
	drag     *gesture.Drag
	deck     *deck.Deck
	prefetch *prefetch.Controller
	recorder *recorder.Recorder

	contentType model.ContentType
	filter      model.GenreFilter
	genres      []model.Genre
	// A fetch for the current scope has completed, whatever its outcome.
	attempted bool
	loading   bool

	ctx context.Context

	settings  gesture.Settings
	userID    model.UserID
	threshold int
	pageSize  int
	logger    *slog.Logger
}

type Option func(*Session)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

func WithUserID(id model.UserID) Option {
	return func(s *Session) {
		s.userID = id
	}
}

func WithGestureSettings(settings gesture.Settings) Option {
	return func(s *Session) {
		s.settings = settings
	}
}

func WithPrefetch(threshold, pageSize int) Option {
	return func(s *Session) {
		s.threshold = threshold
		s.pageSize = pageSize
	}
}

func WithContentType(t model.ContentType) Option {
	return func(s *Session) {
		if t.Valid() {
			s.contentType = t
		}
	}
}

func New(backend Backend, publisher Publisher, opts ...Option) *Session {
	l := loop.New()
	s := newSession(backend, publisher, l, opts...)
	s.loop = l
	return s
}

func newSession(backend Backend, publisher Publisher, d dispatcher, opts ...Option) *Session {
	s := &Session{
		backend:     backend,
		publisher:   publisher,
		dispatcher:  d,
		deck:        deck.New(),
		contentType: model.ContentTypeMovie,
		ctx:         context.Background(),
		settings:    gesture.DefaultSettings(),
		userID:      model.DefaultUserID,
		threshold:   prefetch.DefaultThreshold,
		pageSize:    prefetch.DefaultPageSize,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.tracker = gesture.New(s.settings)
	s.prefetch = prefetch.New(backend, d,
		prefetch.WithLogger(s.logger),
		prefetch.WithThreshold(s.threshold),
		prefetch.WithPageSize(s.pageSize),
		prefetch.OnSettled(s.onSettled),
	)
	s.recorder = recorder.New(backend, d,
		recorder.WithLogger(s.logger),
		recorder.WithUserID(s.userID),
		recorder.OnStats(func(stats model.StatsSnapshot) {
			s.publish(Event{Kind: EventStats, Stats: &stats})
		}),
	)
	return s
}

// Run loads the initial scope and serves inputs until ctx is cancelled.
func (s *Session) Run(ctx context.Context) error {
	if s.loop == nil {
		return ErrClosed
	}
	s.ctx = ctx
	s.loop.Post(s.start)

	err := s.loop.Run(ctx)

	s.tracker.Abort()
	s.drag = nil
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (s *Session) PointerDown(p model.Point) error {
	return s.post(func() { s.onPointerDown(p) })
}

func (s *Session) PointerMove(p model.Point) error {
	return s.post(func() { s.onPointerMove(p) })
}

func (s *Session) PointerUp() error {
	return s.post(s.onPointerUp)
}

// Choose commits the current card without a drag (like/pass buttons).
func (s *Session) Choose(action model.Action) error {
	if _, err := model.ParseAction(string(action)); err != nil {
		return err
	}
	return s.post(func() { s.onChoose(action) })
}

func (s *Session) ChangeContentType(t model.ContentType) error {
	if !t.Valid() {
		return model.ErrUnknownContentType
	}
	return s.post(func() { s.onContentTypeChanged(t) })
}

func (s *Session) ToggleGenre(id int) error {
	return s.post(func() { s.onGenreFilterChanged(s.filter.Toggle(id)) })
}

func (s *Session) SetGenres(ids []int) error {
	f := model.NewGenreFilter(ids...)
	return s.post(func() { s.onGenreFilterChanged(f) })
}

func (s *Session) Reload() error {
	return s.post(s.rescope)
}

func (s *Session) post(f func()) error {
	if !s.dispatcher.Post(f) {
		return ErrClosed
	}
	return nil
}

func (s *Session) publish(e Event) {
	s.publisher.Publish(e)
}

func (s *Session) start() {
	s.loadGenres()
	s.recorder.Refresh(s.ctx)
	s.rescope()
}

// rescope empties the deck and fetches page one of the active scope.
func (s *Session) rescope() {
	s.tracker.Abort()
	s.drag = nil

	s.deck.Reset(nil)
	s.attempted = false
	s.prefetch.Rescope(model.DiscoverQuery{
		Type:   s.contentType,
		Genres: s.filter,
	})
	s.publishCards()

	if _, issued := s.prefetch.FetchFirst(s.ctx, s.deck); issued {
		s.setLoading(true)
	}
}

func (s *Session) onContentTypeChanged(t model.ContentType) {
	if t == s.contentType {
		return
	}
	s.logger.Info("content type changed", slog.String("content_type", string(t)))

	// Genre ids are specific to a content type.
	s.contentType = t
	s.filter = nil
	s.genres = nil

	s.loadGenres()
	s.recorder.Refresh(s.ctx)
	s.rescope()
}

func (s *Session) onGenreFilterChanged(f model.GenreFilter) {
	s.filter = f
	s.rescope()
}

func (s *Session) onPointerDown(p model.Point) {
	if _, ok := s.deck.Current(); !ok {
		return
	}
	if drag, ok := s.tracker.PointerDown(p); ok {
		s.drag = drag
	}
}

func (s *Session) onPointerMove(p model.Point) {
	if s.drag == nil {
		return
	}
	v, err := s.drag.Move(p)
	if err != nil {
		s.drag = nil
		return
	}
	s.publish(Event{Kind: EventDrag, Visual: &v})
}

func (s *Session) onPointerUp() {
	if s.drag == nil {
		return
	}
	rel, err := s.drag.Up()
	s.drag = nil
	if err != nil {
		return
	}

	if !rel.Committed() {
		v := s.settings.Visual(gesture.Offset{})
		s.publish(Event{Kind: EventSnapBack, Visual: &v})
		return
	}
	s.commit(rel.Action)
}

func (s *Session) onChoose(action model.Action) {
	if s.tracker.Phase() != gesture.PhaseIdle {
		return
	}
	s.commit(action)
}

func (s *Session) commit(action model.Action) {
	item, ok := s.deck.Current()
	if !ok {
		return
	}
	s.deck.Advance()

	d := s.recorder.Decision(item, action)
	s.recorder.Record(s.ctx, d)
	s.publish(Event{Kind: EventCommitted, Decision: &d, Cursor: s.deck.Cursor()})

	s.prefetch.CheckAndFetch(s.ctx, s.deck)
	s.rearm()
	s.publishCards()
	s.checkExhausted()
}

// rearm lets the tracker accept a new gesture once there is a card to drag.
func (s *Session) rearm() {
	if _, ok := s.deck.Current(); ok {
		s.tracker.Rearm()
	}
}

func (s *Session) onSettled(r prefetch.Result) {
	if r.Stale {
		return
	}
	s.attempted = true

	if r.Key.Page == deck.FirstPage && s.loading {
		s.setLoading(false)
	}
	if r.Applied {
		s.rearm()
		s.publishCards()
	}
	s.checkExhausted()
}

func (s *Session) setLoading(v bool) {
	s.loading = v
	s.publish(Event{Kind: EventLoading, Loading: v})
}

func (s *Session) publishCards() {
	e := Event{Kind: EventCards, Cursor: s.deck.Cursor(), ContentType: s.contentType, Filter: s.filter}
	if cur, ok := s.deck.Current(); ok {
		e.Current = &cur
	}
	if next, ok := s.deck.Lookahead(); ok {
		e.Lookahead = &next
	}
	s.publish(e)
}

func (s *Session) exhausted() bool {
	_, ok := s.deck.Current()
	return !ok && s.attempted && !s.prefetch.Outstanding()
}

func (s *Session) checkExhausted() {
	if s.exhausted() {
		s.publish(Event{Kind: EventExhausted, ContentType: s.contentType, Filter: s.filter})
	}
}

func (s *Session) loadGenres() {
	t := s.contentType
	go func() {
		genres, err := s.backend.Genres(s.ctx, t)
		if err != nil {
			s.logger.Error("failed to load genres",
				slog.String("content_type", string(t)),
				slog.String("error", err.Error()),
			)
			return
		}
		s.dispatcher.Post(func() {
			if t != s.contentType {
				return
			}
			s.genres = genres
			s.publish(Event{Kind: EventGenres, ContentType: t, Genres: genres, Filter: s.filter})
		})
	}()
}
