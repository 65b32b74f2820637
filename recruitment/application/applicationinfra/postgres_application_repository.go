package applicationinfra

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/errx"
	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/kernel"
	"github.com/Brainstorm-collab/CareerFlow-sub002/recruitment/application"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// PostgresApplicationRepository implements application.Repository using PostgreSQL
type PostgresApplicationRepository struct {
	db *sqlx.DB
}

// NewPostgresApplicationRepository creates a new PostgreSQL application repository
func NewPostgresApplicationRepository(db *sqlx.DB) *PostgresApplicationRepository {
	return &PostgresApplicationRepository{
		db: db,
	}
}

// ============================================================================
// Database Models
// ============================================================================

const applicationColumns = `
	id, candidate_id, job_id, status, cover_letter, resume_url, notes, rating,
	candidate_name, candidate_email, candidate_phone, candidate_location,
	candidate_skills, candidate_experience, candidate_linkedin_url, candidate_portfolio_url,
	applied_at, updated_at`

type applicationModel struct {
	ID                    string         `db:"id"`
	CandidateID           string         `db:"candidate_id"`
	JobID                 string         `db:"job_id"`
	Status                string         `db:"status"`
	CoverLetter           string         `db:"cover_letter"`
	ResumeURL             string         `db:"resume_url"`
	Notes                 string         `db:"notes"`
	Rating                sql.NullInt64  `db:"rating"`
	CandidateName         string         `db:"candidate_name"`
	CandidateEmail        string         `db:"candidate_email"`
	CandidatePhone        string         `db:"candidate_phone"`
	CandidateLocation     string         `db:"candidate_location"`
	CandidateSkills       pq.StringArray `db:"candidate_skills"`
	CandidateExperience   string         `db:"candidate_experience"`
	CandidateLinkedInURL  string         `db:"candidate_linkedin_url"`
	CandidatePortfolioURL string         `db:"candidate_portfolio_url"`
	AppliedAt             time.Time      `db:"applied_at"`
	UpdatedAt             time.Time      `db:"updated_at"`
}

// toEntity converts database model to domain entity
func (m *applicationModel) toEntity() *application.Application {
	var rating *int
	if m.Rating.Valid {
		r := int(m.Rating.Int64)
		rating = &r
	}

	return &application.Application{
		ID:          kernel.ApplicationID(m.ID),
		CandidateID: kernel.UserID(m.CandidateID),
		JobID:       kernel.JobID(m.JobID),
		Status:      application.ApplicationStatus(m.Status),
		CoverLetter: m.CoverLetter,
		ResumeURL:   m.ResumeURL,
		Notes:       m.Notes,
		Rating:      rating,
		Candidate: application.CandidateSnapshot{
			FullName:     m.CandidateName,
			Email:        kernel.Email(m.CandidateEmail),
			Phone:        kernel.Phone(m.CandidatePhone),
			Location:     m.CandidateLocation,
			Skills:       []string(m.CandidateSkills),
			Experience:   m.CandidateExperience,
			LinkedInURL:  m.CandidateLinkedInURL,
			PortfolioURL: m.CandidatePortfolioURL,
		},
		AppliedAt: m.AppliedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// fromEntity converts domain entity to database model
func fromEntity(app *application.Application) *applicationModel {
	var rating sql.NullInt64
	if app.Rating != nil {
		rating = sql.NullInt64{Int64: int64(*app.Rating), Valid: true}
	}

	return &applicationModel{
		ID:                    app.ID.String(),
		CandidateID:           app.CandidateID.String(),
		JobID:                 app.JobID.String(),
		Status:                string(app.Status),
		CoverLetter:           app.CoverLetter,
		ResumeURL:             app.ResumeURL,
		Notes:                 app.Notes,
		Rating:                rating,
		CandidateName:         app.Candidate.FullName,
		CandidateEmail:        app.Candidate.Email.String(),
		CandidatePhone:        string(app.Candidate.Phone),
		CandidateLocation:     app.Candidate.Location,
		CandidateSkills:       pq.StringArray(app.Candidate.Skills),
		CandidateExperience:   app.Candidate.Experience,
		CandidateLinkedInURL:  app.Candidate.LinkedInURL,
		CandidatePortfolioURL: app.Candidate.PortfolioURL,
		AppliedAt:             app.AppliedAt,
		UpdatedAt:             app.UpdatedAt,
	}
}

// ============================================================================
// Repository Implementation
// ============================================================================

// Create creates a new application
func (r *PostgresApplicationRepository) Create(ctx context.Context, app *application.Application) error {
	query := `
		INSERT INTO applications (` + applicationColumns + `
		) VALUES (
			:id, :candidate_id, :job_id, :status, :cover_letter, :resume_url, :notes, :rating,
			:candidate_name, :candidate_email, :candidate_phone, :candidate_location,
			:candidate_skills, :candidate_experience, :candidate_linkedin_url, :candidate_portfolio_url,
			:applied_at, :updated_at
		)
	`

	if _, err := r.db.NamedExecContext(ctx, query, fromEntity(app)); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" { // unique_violation
			return application.ErrAlreadyApplied().
				WithDetail("job_id", app.JobID.String())
		}
		return errx.Wrap(err, "failed to create application", errx.TypeInternal)
	}
	return nil
}

// Update updates the mutable fields of an application
func (r *PostgresApplicationRepository) Update(ctx context.Context, id kernel.ApplicationID, app *application.Application) error {
	model := fromEntity(app)
	model.ID = id.String()

	query := `
		UPDATE applications SET
			status = :status,
			cover_letter = :cover_letter,
			resume_url = :resume_url,
			notes = :notes,
			rating = :rating,
			updated_at = :updated_at
		WHERE id = :id
	`

	result, err := r.db.NamedExecContext(ctx, query, model)
	if err != nil {
		return errx.Wrap(err, "failed to update application", errx.TypeInternal)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errx.Wrap(err, "failed to get rows affected", errx.TypeInternal)
	}
	if rows == 0 {
		return application.ErrApplicationNotFound().WithDetail("application_id", id.String())
	}
	return nil
}

// GetByID retrieves an application by ID
func (r *PostgresApplicationRepository) GetByID(ctx context.Context, id kernel.ApplicationID) (*application.Application, error) {
	return r.getOne(ctx, `SELECT `+applicationColumns+` FROM applications WHERE id = $1`, id.String())
}

// GetByCandidateAndJob retrieves the application of a candidate to a job
func (r *PostgresApplicationRepository) GetByCandidateAndJob(ctx context.Context, candidateID kernel.UserID, jobID kernel.JobID) (*application.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE candidate_id = $1 AND job_id = $2`
	return r.getOne(ctx, query, candidateID.String(), jobID.String())
}

// Delete deletes an application by ID
func (r *PostgresApplicationRepository) Delete(ctx context.Context, id kernel.ApplicationID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM applications WHERE id = $1`, id.String())
	if err != nil {
		return errx.Wrap(err, "failed to delete application", errx.TypeInternal)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errx.Wrap(err, "failed to get rows affected", errx.TypeInternal)
	}
	if rows == 0 {
		return application.ErrApplicationNotFound().WithDetail("application_id", id.String())
	}
	return nil
}

// ListByJob uses idx_applications_job
func (r *PostgresApplicationRepository) ListByJob(ctx context.Context, jobID kernel.JobID) ([]*application.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE job_id = $1 ORDER BY applied_at DESC, id DESC`
	return r.selectMany(ctx, query, jobID.String())
}

// ListByCandidate uses idx_applications_candidate
func (r *PostgresApplicationRepository) ListByCandidate(ctx context.Context, candidateID kernel.UserID) ([]*application.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE candidate_id = $1 ORDER BY applied_at DESC, id DESC`
	return r.selectMany(ctx, query, candidateID.String())
}

// DeleteByJob deletes every application for a job
func (r *PostgresApplicationRepository) DeleteByJob(ctx context.Context, jobID kernel.JobID) (int64, error) {
	return r.deleteWhere(ctx, `DELETE FROM applications WHERE job_id = $1`, jobID.String())
}

// DeleteByCandidate deletes every application of a candidate
func (r *PostgresApplicationRepository) DeleteByCandidate(ctx context.Context, candidateID kernel.UserID) (int64, error) {
	return r.deleteWhere(ctx, `DELETE FROM applications WHERE candidate_id = $1`, candidateID.String())
}

// ============================================================================
// Helper Methods
// ============================================================================

func (r *PostgresApplicationRepository) getOne(ctx context.Context, query string, args ...any) (*application.Application, error) {
	var model applicationModel
	if err := r.db.GetContext(ctx, &model, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, application.ErrApplicationNotFound()
		}
		return nil, errx.Wrap(err, "failed to get application", errx.TypeInternal)
	}
	return model.toEntity(), nil
}

func (r *PostgresApplicationRepository) selectMany(ctx context.Context, query string, args ...any) ([]*application.Application, error) {
	var models []applicationModel
	if err := r.db.SelectContext(ctx, &models, query, args...); err != nil {
		return nil, errx.Wrap(err, "failed to list applications", errx.TypeInternal)
	}

	apps := make([]*application.Application, 0, len(models))
	for i := range models {
		apps = append(apps, models[i].toEntity())
	}
	return apps, nil
}

func (r *PostgresApplicationRepository) deleteWhere(ctx context.Context, query string, arg string) (int64, error) {
	result, err := r.db.ExecContext(ctx, query, arg)
	if err != nil {
		return 0, errx.Wrap(err, "failed to delete applications", errx.TypeInternal)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, errx.Wrap(err, "failed to get rows affected", errx.TypeInternal)
	}
	return rows, nil
}

var _ application.Repository = (*PostgresApplicationRepository)(nil)
