package infra_postgres_swipe

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/humanbelnik/moviematch/internal/model"
	"github.com/jmoiron/sqlx"
)

type Driver struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Driver {
	return &Driver{db: db}
}

type swipeDTO struct {
	ID          uuid.UUID `db:"id"`
	UserID      string    `db:"user_id"`
	ContentID   int64     `db:"content_id"`
	ContentType string    `db:"content_type"`
	Action      string    `db:"action"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

type countsDTO struct {
	Total    int `db:"total"`
	Liked    int `db:"liked"`
	Disliked int `db:"disliked"`
}

// Upsert stores the decision. A repeated swipe on the same content replaces
// the action and keeps the original id and creation time.
func (d *Driver) Upsert(ctx context.Context, s model.Swipe) error {
	query := `
		INSERT INTO swipes (id, user_id, content_id, content_type, action, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id, content_id, content_type)
		DO UPDATE SET action = EXCLUDED.action, updated_at = EXCLUDED.updated_at
	`

	_, err := d.db.ExecContext(ctx, query,
		s.ID,
		s.UserID,
		s.ContentID,
		string(s.ContentType),
		string(s.Action),
		s.CreatedAt,
		s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert swipe: %w", err)
	}
	return nil
}

func (d *Driver) Liked(ctx context.Context, userID model.UserID) ([]model.Swipe, error) {
	var rows []swipeDTO

	query := `
		SELECT id, user_id, content_id, content_type, action, created_at, updated_at
		FROM swipes
		WHERE user_id = $1 AND action = 'like'
		ORDER BY updated_at DESC
	`

	if err := d.db.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, fmt.Errorf("failed to load liked content: %w", err)
	}

	swipes := make([]model.Swipe, 0, len(rows))
	for _, r := range rows {
		swipes = append(swipes, model.Swipe{
			ID: r.ID,
			SwipeDecision: model.SwipeDecision{
				ContentID:   r.ContentID,
				ContentType: model.ContentType(r.ContentType),
				Action:      model.Action(r.Action),
				UserID:      r.UserID,
			},
			CreatedAt: r.CreatedAt,
			UpdatedAt: r.UpdatedAt,
		})
	}
	return swipes, nil
}

func (d *Driver) Counts(ctx context.Context, userID model.UserID) (total, liked, disliked int, err error) {
	var c countsDTO

	query := `
		SELECT
			COUNT(*) AS total,
			COUNT(*) FILTER (WHERE action = 'like') AS liked,
			COUNT(*) FILTER (WHERE action = 'dislike') AS disliked
		FROM swipes
		WHERE user_id = $1
	`

	if err := d.db.GetContext(ctx, &c, query, userID); err != nil {
		return 0, 0, 0, fmt.Errorf("failed to count swipes: %w", err)
	}
	return c.Total, c.Liked, c.Disliked, nil
}
