package infra_postgres_progress

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/humanbelnik/moviematch/internal/model"
	"github.com/jmoiron/sqlx"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ProgressInfraUnitSuite struct {
	suite.Suite
}

type resources struct {
	db     *sqlx.DB
	mock   sqlmock.Sqlmock
	driver *Driver
	ctx    context.Context
}

func initResources(t provider.T) *resources {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")

	return &resources{
		db:     sqlxDB,
		mock:   mock,
		driver: New(sqlxDB),
		ctx:    context.Background(),
	}
}

func validProgress() model.Progress {
	return model.Progress{
		ID:          uuid.New(),
		ContentID:   1399,
		ContentType: model.ContentTypeSeries,
		Status:      model.StatusWatching,
		Progress:    4,
		UserID:      model.DefaultUserID,
		UpdatedAt:   time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (s *ProgressInfraUnitSuite) TestUpsert(t provider.T) {
	t.Run("Should upsert progress successfully", func(t provider.T) {
		r := initResources(t)
		defer r.db.Close()
		p := validProgress()

		r.mock.ExpectExec("INSERT INTO progress .* ON CONFLICT").
			WithArgs(p.ID, p.UserID, p.ContentID, "series", "watching", 4, p.UpdatedAt).
			WillReturnResult(sqlmock.NewResult(1, 1))

		err := r.driver.Upsert(r.ctx, p)

		assert.NoError(t, err)
		assert.NoError(t, r.mock.ExpectationsWereMet())
	})

	t.Run("Should wrap insert failure", func(t provider.T) {
		r := initResources(t)
		defer r.db.Close()

		r.mock.ExpectExec("INSERT INTO progress").WillReturnError(errors.New("deadlock"))

		err := r.driver.Upsert(r.ctx, validProgress())

		assert.ErrorContains(t, err, "failed to upsert progress")
	})
}

func (s *ProgressInfraUnitSuite) TestList(t provider.T) {
	t.Run("Should map progress rows", func(t provider.T) {
		r := initResources(t)
		defer r.db.Close()
		p := validProgress()

		rows := sqlmock.NewRows([]string{"id", "user_id", "content_id", "content_type", "status", "progress", "updated_at"}).
			AddRow(p.ID.String(), p.UserID, p.ContentID, "series", "watching", 4, p.UpdatedAt)
		r.mock.ExpectQuery("FROM progress WHERE user_id = \\$1").
			WithArgs(model.DefaultUserID).
			WillReturnRows(rows)

		list, err := r.driver.List(r.ctx, model.DefaultUserID)

		require.NoError(t, err)
		assert.Equal(t, []model.Progress{p}, list)
	})
}

func (s *ProgressInfraUnitSuite) TestCounts(t provider.T) {
	t.Run("Should count watching and completed", func(t provider.T) {
		r := initResources(t)
		defer r.db.Close()

		r.mock.ExpectQuery("FROM progress").
			WithArgs(model.DefaultUserID).
			WillReturnRows(sqlmock.NewRows([]string{"watching", "completed"}).AddRow(2, 5))

		watching, completed, err := r.driver.Counts(r.ctx, model.DefaultUserID)

		require.NoError(t, err)
		assert.Equal(t, 2, watching)
		assert.Equal(t, 5, completed)
	})
}

func TestProgressInfraUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(ProgressInfraUnitSuite))
}
