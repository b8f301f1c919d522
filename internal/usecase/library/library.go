package usecase_library

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	infra_metrics "github.com/humanbelnik/moviematch/internal/infra/metrics"
	"github.com/humanbelnik/moviematch/internal/model"
)

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrUnableToSaveSwipe     = errors.New("unable to save swipe")
	ErrUnableToGetLiked      = errors.New("unable to get liked content")
	ErrUnableToSaveProgress  = errors.New("unable to save progress")
	ErrUnableToGetProgress   = errors.New("unable to get progress")
	ErrUnableToGetStatistics = errors.New("unable to get stats")
)

//go:generate mockery --name=SwipeRepository --output=./mocks --filename=swipe_repository.go
type SwipeRepository interface {
	Upsert(ctx context.Context, s model.Swipe) error
	Liked(ctx context.Context, userID model.UserID) ([]model.Swipe, error)
	Counts(ctx context.Context, userID model.UserID) (total, liked, disliked int, err error)
}

//go:generate mockery --name=ProgressRepository --output=./mocks --filename=progress_repository.go
type ProgressRepository interface {
	Upsert(ctx context.Context, p model.Progress) error
	List(ctx context.Context, userID model.UserID) ([]model.Progress, error)
	Counts(ctx context.Context, userID model.UserID) (watching, completed int, err error)
}

type Usecase struct {
	swipeRepository    SwipeRepository
	progressRepository ProgressRepository

	now func() time.Time
}

func New(
	s SwipeRepository,
	p ProgressRepository,
) *Usecase {
	return &Usecase{
		swipeRepository:    s,
		progressRepository: p,
		now:                time.Now,
	}
}

func userOrDefault(id model.UserID) model.UserID {
	if id == "" {
		return model.DefaultUserID
	}
	return id
}

func (u *Usecase) RecordSwipe(ctx context.Context, d model.SwipeDecision) error {
	if _, err := model.ParseAction(string(d.Action)); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if !d.ContentType.Valid() {
		return fmt.Errorf("%w: %w", ErrInvalidInput, model.ErrUnknownContentType)
	}
	if d.ContentID <= 0 {
		return fmt.Errorf("%w: content id must be positive", ErrInvalidInput)
	}
	d.UserID = userOrDefault(d.UserID)

	now := u.now().UTC()
	swipe := model.Swipe{
		ID:            uuid.New(),
		SwipeDecision: d,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := u.swipeRepository.Upsert(ctx, swipe); err != nil {
		return fmt.Errorf("%w: %w", ErrUnableToSaveSwipe, err)
	}

	infra_metrics.SwipesRecorded.WithLabelValues(string(d.ContentType), string(d.Action)).Inc()
	return nil
}

func (u *Usecase) Liked(ctx context.Context, userID model.UserID) ([]model.Swipe, error) {
	liked, err := u.swipeRepository.Liked(ctx, userOrDefault(userID))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnableToGetLiked, err)
	}
	return liked, nil
}

func (u *Usecase) UpdateProgress(ctx context.Context, p model.Progress) error {
	if _, err := model.ParseProgressStatus(string(p.Status)); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if !p.ContentType.Valid() {
		return fmt.Errorf("%w: %w", ErrInvalidInput, model.ErrUnknownContentType)
	}
	if p.ContentID <= 0 || p.Progress < 0 {
		return fmt.Errorf("%w: content id must be positive and progress non-negative", ErrInvalidInput)
	}
	p.UserID = userOrDefault(p.UserID)
	p.ID = uuid.New()
	p.UpdatedAt = u.now().UTC()

	if err := u.progressRepository.Upsert(ctx, p); err != nil {
		return fmt.Errorf("%w: %w", ErrUnableToSaveProgress, err)
	}
	return nil
}

func (u *Usecase) Progress(ctx context.Context, userID model.UserID) ([]model.Progress, error) {
	list, err := u.progressRepository.List(ctx, userOrDefault(userID))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnableToGetProgress, err)
	}
	return list, nil
}

func (u *Usecase) Stats(ctx context.Context, userID model.UserID) (model.StatsSnapshot, error) {
	userID = userOrDefault(userID)

	total, liked, disliked, err := u.swipeRepository.Counts(ctx, userID)
	if err != nil {
		return model.StatsSnapshot{}, errors.Join(ErrUnableToGetStatistics, err)
	}
	watching, completed, err := u.progressRepository.Counts(ctx, userID)
	if err != nil {
		return model.StatsSnapshot{}, errors.Join(ErrUnableToGetStatistics, err)
	}

	return model.StatsSnapshot{
		TotalSwipes:    total,
		LikedCount:     liked,
		DislikedCount:  disliked,
		WatchingCount:  watching,
		CompletedCount: completed,
	}, nil
}
