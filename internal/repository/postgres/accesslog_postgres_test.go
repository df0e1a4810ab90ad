package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"campusdocs/internal/model"
)

func TestAccessLogPostgres_Append(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewAccessLogPostgres(db)
	now := time.Now()

	t.Run("full entry", func(t *testing.T) {
		entry := &model.AccessLogEntry{
			ID:         "log-1",
			ContentID:  "content-1",
			UserID:     "user-1",
			Action:     model.ActionStream,
			IPAddress:  "10.0.0.1",
			UserAgent:  "Mozilla/5.0",
			OccurredAt: now,
		}

		mock.ExpectExec("INSERT INTO access_log").
			WithArgs("log-1", "content-1", "user-1", model.ActionStream,
				sql.NullString{String: "10.0.0.1", Valid: true},
				sql.NullString{String: "Mozilla/5.0", Valid: true}, now).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Append(context.Background(), entry))
	})

	t.Run("entry without client metadata stores NULLs", func(t *testing.T) {
		entry := &model.AccessLogEntry{
			ID:         "log-2",
			ContentID:  "content-1",
			UserID:     "user-1",
			Action:     model.ActionView,
			OccurredAt: now,
		}

		mock.ExpectExec("INSERT INTO access_log").
			WithArgs("log-2", "content-1", "user-1", model.ActionView,
				sql.NullString{}, sql.NullString{}, now).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Append(context.Background(), entry))
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccessLogPostgres_Counts(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewAccessLogPostgres(db)
	since := time.Date(2026, 8, 31, 0, 0, 0, 0, time.Local)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM access_log WHERE user_id").
		WithArgs("user-1", model.ActionStream, since).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(42))

	n, err := repo.CountByUserSince(context.Background(), "user-1", model.ActionStream, since)
	assert.NoError(t, err)
	assert.Equal(t, 42, n)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM access_log WHERE user_id = (.+) AND content_id").
		WithArgs("user-1", "content-1", model.ActionStream, since).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	n, err = repo.CountByUserContentSince(context.Background(), "user-1", "content-1", model.ActionStream, since)
	assert.NoError(t, err)
	assert.Equal(t, 7, n)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccessLogPostgres_Stats(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewAccessLogPostgres(db)
	since := time.Date(2026, 8, 31, 0, 0, 0, 0, time.Local)

	mock.ExpectQuery("SELECT (.+) FROM access_log\\s+WHERE user_id").
		WithArgs("user-1", since).
		WillReturnRows(sqlmock.NewRows([]string{"total", "today", "distinct"}).AddRow(100, 5, 12))

	us, err := repo.UserStats(context.Background(), "user-1", since)
	assert.NoError(t, err)
	assert.Equal(t, 100, us.Total)
	assert.Equal(t, 5, us.Today)
	assert.Equal(t, 12, us.DistinctCount)

	mock.ExpectQuery("SELECT (.+) FROM access_log\\s+WHERE content_id").
		WithArgs("content-1", since).
		WillReturnRows(sqlmock.NewRows([]string{"total", "today", "distinct"}).AddRow(30, 2, 9))

	cs, err := repo.ContentStats(context.Background(), "content-1", since)
	assert.NoError(t, err)
	assert.Equal(t, 30, cs.Total)
	assert.Equal(t, 9, cs.DistinctCount)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMembershipPostgres_IsMember(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewMembershipPostgres(db)

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("user-1", "subj-1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	ok, err := repo.IsMember(context.Background(), "user-1", "subj-1")
	assert.NoError(t, err)
	assert.True(t, ok)

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("user-2", "subj-1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	ok, err = repo.IsMember(context.Background(), "user-2", "subj-1")
	assert.NoError(t, err)
	assert.False(t, ok)
}
