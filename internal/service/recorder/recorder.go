package recorder

import (
	"context"
	"log/slog"

	infra_metrics "github.com/humanbelnik/moviematch/internal/infra/metrics"
	"github.com/humanbelnik/moviematch/internal/model"
)

//go:generate mockery --name=Backend --output=./mocks --filename=backend.go
type Backend interface {
	RecordSwipe(ctx context.Context, d model.SwipeDecision) error
	Stats(ctx context.Context, userID model.UserID) (model.StatsSnapshot, error)
}

type Dispatcher interface {
	Post(f func()) bool
}

// Recorder sends decisions at most once. A failed send is logged and
// dropped, the stats refresh fires either way.
type Recorder struct {
	backend    Backend
	dispatcher Dispatcher
	userID     model.UserID

	stats  model.StatsSnapshot
	onSend func(model.SwipeDecision, error)
	onStat func(model.StatsSnapshot)
	logger *slog.Logger
}

type Option func(*Recorder)

func WithLogger(logger *slog.Logger) Option {
	return func(r *Recorder) {
		r.logger = logger
	}
}

func WithUserID(id model.UserID) Option {
	return func(r *Recorder) {
		if id != "" {
			r.userID = id
		}
	}
}

// OnStats is run on the dispatcher every time a refresh replaces the snapshot.
func OnStats(f func(model.StatsSnapshot)) Option {
	return func(r *Recorder) {
		r.onStat = f
	}
}

// OnSent is run on the dispatcher when a send completes.
func OnSent(f func(model.SwipeDecision, error)) Option {
	return func(r *Recorder) {
		r.onSend = f
	}
}

func New(backend Backend, dispatcher Dispatcher, opts ...Option) *Recorder {
	r := &Recorder{
		backend:    backend,
		dispatcher: dispatcher,
		userID:     model.DefaultUserID,
		onSend:     func(model.SwipeDecision, error) {},
		onStat:     func(model.StatsSnapshot) {},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Recorder) UserID() model.UserID {
	return r.userID
}

// Stats returns the last snapshot the backend reported.
func (r *Recorder) Stats() model.StatsSnapshot {
	return r.stats
}

// Decision builds the decision for item under the recorder's user.
func (r *Recorder) Decision(item model.ContentItem, action model.Action) model.SwipeDecision {
	return model.SwipeDecision{
		ContentID:   item.ID,
		ContentType: item.Type,
		Action:      action,
		UserID:      r.userID,
	}
}

// Record returns immediately.
func (r *Recorder) Record(ctx context.Context, d model.SwipeDecision) {
	go func() {
		err := r.backend.RecordSwipe(ctx, d)
		if err != nil {
			r.logger.Error("failed to record swipe",
				slog.Int64("content_id", d.ContentID),
				slog.String("action", string(d.Action)),
				slog.String("error", err.Error()),
			)
			infra_metrics.SwipeSendFailures.Inc()
		}
		r.dispatcher.Post(func() {
			r.onSend(d, err)
		})

		r.refresh(ctx)
	}()
}

// Refresh fetches the aggregate without recording anything.
func (r *Recorder) Refresh(ctx context.Context) {
	go r.refresh(ctx)
}

// Responses are applied in arrival order, so a slow reply to an earlier
// refresh may overwrite a newer one.
func (r *Recorder) refresh(ctx context.Context) {
	stats, err := r.backend.Stats(ctx, r.userID)
	if err != nil {
		r.logger.Error("failed to refresh stats", slog.String("error", err.Error()))
		return
	}
	r.dispatcher.Post(func() {
		r.stats = stats
		r.onStat(stats)
	})
}
