package savedjobinfra

import (
	"context"
	"testing"
	"time"

	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/errx"
	"github.com/Brainstorm-collab/CareerFlow-sub002/recruitment/savedjob"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (*PostgresSavedJobRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresSavedJobRepository(sqlx.NewDb(db, "postgres")), mock
}

func TestPostgresSavedJobRepositoryCreateDuplicate(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("INSERT INTO saved_jobs").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "saved_jobs_user_id_job_id_key"})

	err := repo.Create(context.Background(), savedjob.New("u-1", "j-1"))
	require.Error(t, err)
	assert.True(t, errx.IsConflict(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSavedJobRepositoryExists(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("u-1", "j-1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	ok, err := repo.Exists(context.Background(), "u-1", "j-1")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestPostgresSavedJobRepositoryListByJob(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now().UTC()

	mock.ExpectQuery("SELECT .+ FROM saved_jobs WHERE job_id = \\$1").
		WithArgs("j-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "job_id", "saved_at"}).
			AddRow("s-1", "u-1", "j-1", now).
			AddRow("s-2", "u-2", "j-1", now.Add(-time.Minute)))

	saved, err := repo.ListByJob(context.Background(), "j-1")
	require.NoError(t, err)
	require.Len(t, saved, 2)
	assert.Equal(t, "u-2", saved[1].UserID.String())
}

func TestPostgresSavedJobRepositoryDeleteMissing(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("DELETE FROM saved_jobs WHERE user_id = \\$1 AND job_id = \\$2").
		WithArgs("u-1", "j-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "u-1", "j-1")
	assert.True(t, errx.IsNotFound(err))
}

func TestMemorySavedJobRepositoryBulkDeletes(t *testing.T) {
	repo := NewMemorySavedJobRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, savedjob.New("u-1", "j-1")))
	require.NoError(t, repo.Create(ctx, savedjob.New("u-2", "j-1")))
	require.NoError(t, repo.Create(ctx, savedjob.New("u-1", "j-2")))
	assert.True(t, errx.IsConflict(repo.Create(ctx, savedjob.New("u-1", "j-1"))))

	n, err := repo.DeleteByUser(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.Equal(t, 1, repo.Count())
}
