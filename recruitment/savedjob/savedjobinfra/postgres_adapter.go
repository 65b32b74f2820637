package savedjobinfra

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/errx"
	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/kernel"
	"github.com/Brainstorm-collab/CareerFlow-sub002/recruitment/savedjob"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// PostgresSavedJobRepository implements savedjob.Repository using PostgreSQL
type PostgresSavedJobRepository struct {
	db *sqlx.DB
}

func NewPostgresSavedJobRepository(db *sqlx.DB) *PostgresSavedJobRepository {
	return &PostgresSavedJobRepository{db: db}
}

// ============================================================================
// Database Models
// ============================================================================

const savedJobColumns = `id, user_id, job_id, saved_at`

type savedJobModel struct {
	ID      string    `db:"id"`
	UserID  string    `db:"user_id"`
	JobID   string    `db:"job_id"`
	SavedAt time.Time `db:"saved_at"`
}

func (m *savedJobModel) toEntity() *savedjob.SavedJob {
	return &savedjob.SavedJob{
		ID:      kernel.SavedJobID(m.ID),
		UserID:  kernel.UserID(m.UserID),
		JobID:   kernel.JobID(m.JobID),
		SavedAt: m.SavedAt,
	}
}

// ============================================================================
// Repository Implementation
// ============================================================================

// Create relies on the (user_id, job_id) unique index
func (r *PostgresSavedJobRepository) Create(ctx context.Context, s *savedjob.SavedJob) error {
	query := `INSERT INTO saved_jobs (` + savedJobColumns + `) VALUES (:id, :user_id, :job_id, :saved_at)`

	model := savedJobModel{
		ID:      s.ID.String(),
		UserID:  s.UserID.String(),
		JobID:   s.JobID.String(),
		SavedAt: s.SavedAt,
	}
	if _, err := r.db.NamedExecContext(ctx, query, model); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return savedjob.ErrAlreadySaved().WithDetail("job_id", s.JobID.String())
		}
		return errx.Wrap(err, "failed to save job", errx.TypeInternal)
	}
	return nil
}

func (r *PostgresSavedJobRepository) Get(ctx context.Context, userID kernel.UserID, jobID kernel.JobID) (*savedjob.SavedJob, error) {
	var model savedJobModel
	query := `SELECT ` + savedJobColumns + ` FROM saved_jobs WHERE user_id = $1 AND job_id = $2`
	if err := r.db.GetContext(ctx, &model, query, userID.String(), jobID.String()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, savedjob.ErrSavedJobNotFound()
		}
		return nil, errx.Wrap(err, "failed to get saved job", errx.TypeInternal)
	}
	return model.toEntity(), nil
}

func (r *PostgresSavedJobRepository) Exists(ctx context.Context, userID kernel.UserID, jobID kernel.JobID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM saved_jobs WHERE user_id = $1 AND job_id = $2)`
	if err := r.db.GetContext(ctx, &exists, query, userID.String(), jobID.String()); err != nil {
		return false, errx.Wrap(err, "failed to check saved job", errx.TypeInternal)
	}
	return exists, nil
}

func (r *PostgresSavedJobRepository) Delete(ctx context.Context, userID kernel.UserID, jobID kernel.JobID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM saved_jobs WHERE user_id = $1 AND job_id = $2`, userID.String(), jobID.String())
	if err != nil {
		return errx.Wrap(err, "failed to delete saved job", errx.TypeInternal)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return errx.Wrap(err, "failed to get rows affected", errx.TypeInternal)
	}
	if rows == 0 {
		return savedjob.ErrSavedJobNotFound().WithDetail("job_id", jobID.String())
	}
	return nil
}

func (r *PostgresSavedJobRepository) ListByUser(ctx context.Context, userID kernel.UserID) ([]*savedjob.SavedJob, error) {
	query := `SELECT ` + savedJobColumns + ` FROM saved_jobs WHERE user_id = $1 ORDER BY saved_at DESC, id DESC`
	return r.selectMany(ctx, query, userID.String())
}

func (r *PostgresSavedJobRepository) ListByJob(ctx context.Context, jobID kernel.JobID) ([]*savedjob.SavedJob, error) {
	query := `SELECT ` + savedJobColumns + ` FROM saved_jobs WHERE job_id = $1 ORDER BY saved_at DESC, id DESC`
	return r.selectMany(ctx, query, jobID.String())
}

func (r *PostgresSavedJobRepository) DeleteByJob(ctx context.Context, jobID kernel.JobID) (int64, error) {
	return r.deleteWhere(ctx, `DELETE FROM saved_jobs WHERE job_id = $1`, jobID.String())
}

func (r *PostgresSavedJobRepository) DeleteByUser(ctx context.Context, userID kernel.UserID) (int64, error) {
	return r.deleteWhere(ctx, `DELETE FROM saved_jobs WHERE user_id = $1`, userID.String())
}

// ============================================================================
// Helper Methods
// ============================================================================

func (r *PostgresSavedJobRepository) selectMany(ctx context.Context, query string, arg string) ([]*savedjob.SavedJob, error) {
	var models []savedJobModel
	if err := r.db.SelectContext(ctx, &models, query, arg); err != nil {
		return nil, errx.Wrap(err, "failed to list saved jobs", errx.TypeInternal)
	}
	out := make([]*savedjob.SavedJob, 0, len(models))
	for i := range models {
		out = append(out, models[i].toEntity())
	}
	return out, nil
}

func (r *PostgresSavedJobRepository) deleteWhere(ctx context.Context, query string, arg string) (int64, error) {
	result, err := r.db.ExecContext(ctx, query, arg)
	if err != nil {
		return 0, errx.Wrap(err, "failed to delete saved jobs", errx.TypeInternal)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, errx.Wrap(err, "failed to get rows affected", errx.TypeInternal)
	}
	return rows, nil
}

var _ savedjob.Repository = (*PostgresSavedJobRepository)(nil)
