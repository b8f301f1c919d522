package ws_deck

import (
	"errors"
	"fmt"

	"github.com/humanbelnik/moviematch/internal/model"
	usecase_session "github.com/humanbelnik/moviematch/internal/usecase/session"
)

const (
	MessagePointerDown = "POINTER_DOWN"
	MessagePointerMove = "POINTER_MOVE"
	MessagePointerUp   = "POINTER_UP"
	MessageChoose      = "CHOOSE"
	MessageContentType = "CONTENT_TYPE"
	MessageToggleGenre = "TOGGLE_GENRE"
	MessageSetGenres   = "SET_GENRES"
	MessageReload      = "RELOAD"
	MessagePing        = "PING"

	EventPong  = "PONG"
	EventError = "ERROR"
)

var ErrUnknownMessage = errors.New("unknown message type")

// ClientMessage is one input sent by the browser. Fields irrelevant to Type
// are ignored.
type ClientMessage struct {
	Type        string  `json:"type"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Action      string  `json:"action"`
	ContentType string  `json:"content_type"`
	GenreID     int     `json:"genre_id"`
	GenreIDs    []int   `json:"genre_ids"`
}

type Event struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// dispatch forwards msg to the session. Returns false for PING, which the
// client answers itself.
func dispatch(s *usecase_session.Session, msg ClientMessage) (bool, error) {
	switch msg.Type {
	case MessagePointerDown:
		return true, s.PointerDown(model.Point{X: msg.X, Y: msg.Y})
	case MessagePointerMove:
		return true, s.PointerMove(model.Point{X: msg.X, Y: msg.Y})
	case MessagePointerUp:
		return true, s.PointerUp()
	case MessageChoose:
		a, err := model.ParseAction(msg.Action)
		if err != nil {
			return true, err
		}
		return true, s.Choose(a)
	case MessageContentType:
		t, err := model.ParseContentType(msg.ContentType)
		if err != nil {
			return true, err
		}
		return true, s.ChangeContentType(t)
	case MessageToggleGenre:
		return true, s.ToggleGenre(msg.GenreID)
	case MessageSetGenres:
		return true, s.SetGenres(msg.GenreIDs)
	case MessageReload:
		return true, s.Reload()
	case MessagePing:
		return false, nil
	}
	return true, fmt.Errorf("%w: %q", ErrUnknownMessage, msg.Type)
}

type cardDTO struct {
	ID          int64   `json:"id"`
	ContentType string  `json:"content_type"`
	Title       string  `json:"title"`
	ReleaseYear int     `json:"release_year,omitempty"`
	PosterURL   string  `json:"poster_url,omitempty"`
	BackdropURL string  `json:"backdrop_url,omitempty"`
	VoteAverage float64 `json:"vote_average"`
	Overview    string  `json:"overview,omitempty"`
}

func toCard(item *model.ContentItem) *cardDTO {
	if item == nil {
		return nil
	}
	return &cardDTO{
		ID:          item.ID,
		ContentType: string(item.Type),
		Title:       item.DisplayTitle,
		ReleaseYear: item.ReleaseYear,
		PosterURL:   item.PosterURL,
		BackdropURL: item.BackdropURL,
		VoteAverage: item.VoteAverage,
		Overview:    item.Overview,
	}
}

type cardsPayload struct {
	Current   *cardDTO `json:"current"`
	Lookahead *cardDTO `json:"lookahead"`
	Cursor    int      `json:"cursor"`
}

type visualPayload struct {
	DX        float64 `json:"dx"`
	DY        float64 `json:"dy"`
	Rotation  float64 `json:"rotation"`
	Opacity   float64 `json:"opacity"`
	Indicator string  `json:"indicator,omitempty"`
}

type decisionPayload struct {
	ContentID   int64  `json:"content_id"`
	ContentType string `json:"content_type"`
	Action      string `json:"action"`
}

type statsPayload struct {
	TotalSwipes    int `json:"total_swipes"`
	LikedCount     int `json:"liked_count"`
	DislikedCount  int `json:"disliked_count"`
	WatchingCount  int `json:"watching_count"`
	CompletedCount int `json:"completed_count"`
}

type genreDTO struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Selected bool   `json:"selected"`
}

type genresPayload struct {
	ContentType string     `json:"content_type"`
	Genres      []genreDTO `json:"genres"`
}

type loadingPayload struct {
	Loading bool `json:"loading"`
}

type errorPayload struct {
	Message string `json:"message"`
}

func toEvent(e usecase_session.Event) Event {
	out := Event{Type: string(e.Kind)}

	switch e.Kind {
	case usecase_session.EventCards:
		out.Payload = cardsPayload{
			Current:   toCard(e.Current),
			Lookahead: toCard(e.Lookahead),
			Cursor:    e.Cursor,
		}
	case usecase_session.EventDrag, usecase_session.EventSnapBack:
		if e.Visual != nil {
			out.Payload = visualPayload{
				DX:        e.Visual.Offset.DX,
				DY:        e.Visual.Offset.DY,
				Rotation:  e.Visual.Rotation,
				Opacity:   e.Visual.Opacity,
				Indicator: string(e.Visual.Indicator),
			}
		}
	case usecase_session.EventCommitted:
		if e.Decision != nil {
			out.Payload = decisionPayload{
				ContentID:   e.Decision.ContentID,
				ContentType: string(e.Decision.ContentType),
				Action:      string(e.Decision.Action),
			}
		}
	case usecase_session.EventStats:
		if e.Stats != nil {
			out.Payload = statsPayload{
				TotalSwipes:    e.Stats.TotalSwipes,
				LikedCount:     e.Stats.LikedCount,
				DislikedCount:  e.Stats.DislikedCount,
				WatchingCount:  e.Stats.WatchingCount,
				CompletedCount: e.Stats.CompletedCount,
			}
		}
	case usecase_session.EventGenres:
		p := genresPayload{
			ContentType: string(e.ContentType),
			Genres:      make([]genreDTO, 0, len(e.Genres)),
		}
		for _, g := range e.Genres {
			p.Genres = append(p.Genres, genreDTO{ID: g.ID, Name: g.Name, Selected: e.Filter.Contains(g.ID)})
		}
		out.Payload = p
	case usecase_session.EventLoading:
		out.Payload = loadingPayload{Loading: e.Loading}
	}
	return out
}
