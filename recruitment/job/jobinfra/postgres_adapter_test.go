package jobinfra

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/errx"
	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/kernel"
	"github.com/Brainstorm-collab/CareerFlow-sub002/recruitment/job"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (*PostgresJobRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresJobRepository(sqlx.NewDb(db, "postgres")), mock
}

var jobColumnNames = []string{
	"id", "title", "slug", "description", "requirements", "responsibilities", "benefits",
	"skills_required", "skills_preferred", "status", "is_open", "location", "remote_work",
	"job_type", "experience_level", "salary_min", "salary_max", "salary_currency", "salary_period",
	"application_deadline", "start_date", "application_count", "view_count",
	"is_featured", "is_urgent", "tags", "recruiter_id", "company_id", "created_at", "updated_at",
}

func jobRow(rows *sqlmock.Rows, id string, location any, created time.Time) *sqlmock.Rows {
	return rows.AddRow(
		id, "Backend Engineer", "backend-engineer", "Build APIs", "", "", "",
		"{go,postgres}", "{}", "open", true, location, true,
		"full-time", "mid", int64(100000), nil, "USD", "yearly",
		nil, nil, 3, 42,
		false, true, "{}", "user_2abc", "c-1", created, created,
	)
}

func TestPostgresJobRepositoryListOpen(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now().UTC()

	rows := sqlmock.NewRows(jobColumnNames)
	jobRow(rows, "j-2", "Seattle, WA", now)
	jobRow(rows, "j-1", nil, now.Add(-time.Hour))

	mock.ExpectQuery("SELECT .+ FROM jobs WHERE status = 'open' AND is_open ORDER BY created_at DESC, id DESC LIMIT \\$1").
		WithArgs(40).
		WillReturnRows(rows)

	jobs, err := repo.ListOpen(context.Background(), 40)
	require.NoError(t, err)
	require.Len(t, jobs, 2)

	first := jobs[0]
	assert.Equal(t, kernel.JobID("j-2"), first.ID)
	assert.Equal(t, kernel.ExternalIdentity("user_2abc"), first.RecruiterID)
	assert.Equal(t, []string{"go", "postgres"}, first.SkillsRequired)
	require.NotNil(t, first.Location)
	assert.Equal(t, "Seattle, WA", *first.Location)
	require.NotNil(t, first.Salary.Min)
	assert.Equal(t, 100000, *first.Salary.Min)
	assert.Nil(t, first.Salary.Max)
	assert.Equal(t, 42, first.ViewCount)

	assert.Nil(t, jobs[1].Location)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresJobRepositoryListOpenZero(t *testing.T) {
	repo, mock := newMockRepo(t)

	jobs, err := repo.ListOpen(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, jobs)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresJobRepositoryIncrementViewCountIsAtomic(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("UPDATE jobs SET view_count = view_count \\+ 1, updated_at = now\\(\\) WHERE id = \\$1").
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.IncrementViewCount(context.Background(), "missing"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresJobRepositoryGetByIDNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT .+ FROM jobs WHERE id = \\$1").
		WithArgs("j-9").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "j-9")
	assert.True(t, errx.IsNotFound(err))
}

func TestPostgresJobRepositoryUpdateSyncsStatusColumns(t *testing.T) {
	repo, mock := newMockRepo(t)

	j := &job.Job{ID: "j-1", Title: "Engineer", Slug: "engineer"}
	require.NoError(t, j.SetStatus(job.JobStatusPaused))

	mock.ExpectExec("UPDATE jobs SET").
		WithArgs(
			"Engineer", "engineer", sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
			sqlmock.AnyArg(), sqlmock.AnyArg(), "paused", false, sqlmock.AnyArg(), sqlmock.AnyArg(),
			sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
			sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
			"j-1",
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Update(context.Background(), "j-1", j))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMemoryJobRepositoryListOpenNewestFirst(t *testing.T) {
	repo := NewMemoryJobRepository()
	ctx := context.Background()
	now := time.Now()

	for i := 0; i < 5; i++ {
		j := &job.Job{ID: kernel.JobID(fmt.Sprintf("j-%d", i)), CreatedAt: now}
		require.NoError(t, j.SetStatus(job.JobStatusOpen))
		if i == 2 {
			require.NoError(t, j.SetStatus(job.JobStatusClosed))
		}
		require.NoError(t, repo.Create(ctx, j))
	}

	jobs, err := repo.ListOpen(ctx, 3)
	require.NoError(t, err)
	require.Len(t, jobs, 3)
	assert.Equal(t, kernel.JobID("j-4"), jobs[0].ID)
	assert.Equal(t, kernel.JobID("j-3"), jobs[1].ID)
	assert.Equal(t, kernel.JobID("j-1"), jobs[2].ID)
}

func TestMemoryJobRepositoryConcurrentViews(t *testing.T) {
	repo := NewMemoryJobRepository()
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, &job.Job{ID: "j-1"}))

	const k = 200
	var wg sync.WaitGroup
	for i := 0; i < k; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, repo.IncrementViewCount(ctx, "j-1"))
		}()
	}
	wg.Wait()

	j, err := repo.GetByID(ctx, "j-1")
	require.NoError(t, err)
	assert.Equal(t, k, j.ViewCount)

	// a missing job is a silent no-op
	assert.NoError(t, repo.IncrementViewCount(ctx, "missing"))
}
