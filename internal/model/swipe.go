package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrUnknownAction         = errors.New("unknown action")
	ErrUnknownProgressStatus = errors.New("unknown progress status")
)

type UserID = string

const DefaultUserID UserID = "default_user"

type Action string

const (
	ActionLike    Action = "like"
	ActionDislike Action = "dislike"
)

func ParseAction(s string) (Action, error) {
	switch Action(s) {
	case ActionLike, ActionDislike:
		return Action(s), nil
	}
	return "", ErrUnknownAction
}

type SwipeDecision struct {
	ContentID   ContentID
	ContentType ContentType
	Action      Action
	UserID      UserID
}

type Swipe struct {
	ID uuid.UUID
	SwipeDecision
	CreatedAt time.Time
	UpdatedAt time.Time
}

type StatsSnapshot struct {
	TotalSwipes    int
	LikedCount     int
	DislikedCount  int
	WatchingCount  int
	CompletedCount int
}

type ProgressStatus string

const (
	StatusWatching    ProgressStatus = "watching"
	StatusCompleted   ProgressStatus = "completed"
	StatusWantToWatch ProgressStatus = "want_to_watch"
)

func ParseProgressStatus(s string) (ProgressStatus, error) {
	switch ProgressStatus(s) {
	case StatusWatching, StatusCompleted, StatusWantToWatch:
		return ProgressStatus(s), nil
	}
	return "", ErrUnknownProgressStatus
}

type Progress struct {
	ID          uuid.UUID
	ContentID   ContentID
	ContentType ContentType
	Status      ProgressStatus
	// Episode number for series.
	Progress  int
	UserID    UserID
	UpdatedAt time.Time
}
