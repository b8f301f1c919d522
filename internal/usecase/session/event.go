package usecase_session

import (
	"github.com/humanbelnik/moviematch/internal/model"
	"github.com/humanbelnik/moviematch/internal/service/gesture"
)

type EventKind string

const (
	EventCards     EventKind = "CARDS"
	EventDrag      EventKind = "DRAG"
	EventSnapBack  EventKind = "SNAP_BACK"
	EventCommitted EventKind = "COMMITTED"
	EventExhausted EventKind = "EXHAUSTED"
	EventLoading   EventKind = "LOADING"
	EventStats     EventKind = "STATS"
	EventGenres    EventKind = "GENRES"
)

// Event is one presentation update. Only the fields relevant to Kind are set.
type Event struct {
	Kind EventKind

	Current   *model.ContentItem
	Lookahead *model.ContentItem
	Cursor    int

	Visual   *gesture.Visual
	Decision *model.SwipeDecision
	Stats    *model.StatsSnapshot

	ContentType model.ContentType
	Genres      []model.Genre
	Filter      model.GenreFilter

	Loading bool
}

// Publisher receives events on the session goroutine and must not block.
type Publisher interface {
	Publish(e Event)
}

type PublisherFunc func(e Event)

func (f PublisherFunc) Publish(e Event) {
	f(e)
}
