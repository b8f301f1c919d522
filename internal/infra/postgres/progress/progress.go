package infra_postgres_progress

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

type progressDTO struct {
	ID          uuid.UUID `db:"id"`
	UserID      string    `db:"user_id"`
	ContentID   int64     `db:"content_id"`
	ContentType string    `db:"content_type"`
	Status      string    `db:"status"`
	Progress    int       `db:"progress"`
	UpdatedAt   time.Time `db:"updated_at"`
}

type countsDTO struct {
	Watching  int `db:"watching"`
	Completed int `db:"completed"`
}

func (d *Driver) Upsert(ctx context.Context, p model.Progress) error {
	query := `
		INSERT INTO progress (id, user_id, content_id, content_type, status, progress, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id, content_id, content_type)
		DO UPDATE SET status = EXCLUDED.status, progress = EXCLUDED.progress, updated_at = EXCLUDED.updated_at
	`

	_, err := d.db.ExecContext(ctx, query,
		p.ID,
		p.UserID,
		p.ContentID,
		string(p.ContentType),
		string(p.Status),
		p.Progress,
		p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert progress: %w", err)
	}
	return nil
}

func (d *Driver) List(ctx context.Context, userID model.UserID) ([]model.Progress, error) {
	var rows []progressDTO

	query := `
		SELECT id, user_id, content_id, content_type, status, progress, updated_at
		FROM progress
		WHERE user_id = $1
		ORDER BY updated_at DESC
	`

	if err := d.db.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, fmt.Errorf("failed to load progress: %w", err)
	}

	out := make([]model.Progress, 0, len(rows))
	for _, r := range rows {
		out = append(out, model.Progress{
			ID:          r.ID,
			ContentID:   r.ContentID,
			ContentType: model.ContentType(r.ContentType),
			Status:      model.ProgressStatus(r.Status),
			Progress:    r.Progress,
			UserID:      r.UserID,
			UpdatedAt:   r.UpdatedAt,
		})
	}
	return out, nil
}

func (d *Driver) Counts(ctx context.Context, userID model.UserID) (watching, completed int, err error) {
	var c countsDTO

	query := `
		SELECT
			COUNT(*) FILTER (WHERE status = 'watching') AS watching,
			COUNT(*) FILTER (WHERE status = 'completed') AS completed
		FROM progress
		WHERE user_id = $1
	`

	if err := d.db.GetContext(ctx, &c, query, userID); err != nil {
		return 0, 0, fmt.Errorf("failed to count progress: %w", err)
	}
	return c.Watching, c.Completed, nil
}
