package jobinfra

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/errx"
	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/kernel"
	"github.com/Brainstorm-collab/CareerFlow-sub002/recruitment/job"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// PostgresJobRepository implements job.Repository using PostgreSQL
type PostgresJobRepository struct {
	db *sqlx.DB
}

// NewPostgresJobRepository creates a new PostgreSQL job repository
func NewPostgresJobRepository(db *sqlx.DB) *PostgresJobRepository {
	return &PostgresJobRepository{
		db: db,
	}
}

// ============================================================================
// Database Model
// ============================================================================

const jobColumns = `
	id, title, slug, description, requirements, responsibilities, benefits,
	skills_required, skills_preferred, status, is_open, location, remote_work,
	job_type, experience_level, salary_min, salary_max, salary_currency, salary_period,
	application_deadline, start_date, application_count, view_count,
	is_featured, is_urgent, tags, recruiter_id, company_id, created_at, updated_at`

type jobModel struct {
	ID                  string         `db:"id"`
	Title               string         `db:"title"`
	Slug                string         `db:"slug"`
	Description         string         `db:"description"`
	Requirements        string         `db:"requirements"`
	Responsibilities    string         `db:"responsibilities"`
	Benefits            string         `db:"benefits"`
	SkillsRequired      pq.StringArray `db:"skills_required"`
	SkillsPreferred     pq.StringArray `db:"skills_preferred"`
	Status              string         `db:"status"`
	IsOpen              bool           `db:"is_open"`
	Location            sql.NullString `db:"location"`
	RemoteWork          bool           `db:"remote_work"`
	JobType             string         `db:"job_type"`
	ExperienceLevel     string         `db:"experience_level"`
	SalaryMin           sql.NullInt64  `db:"salary_min"`
	SalaryMax           sql.NullInt64  `db:"salary_max"`
	SalaryCurrency      string         `db:"salary_currency"`
	SalaryPeriod        string         `db:"salary_period"`
	ApplicationDeadline sql.NullTime   `db:"application_deadline"`
	StartDate           sql.NullTime   `db:"start_date"`
	ApplicationCount    int            `db:"application_count"`
	ViewCount           int            `db:"view_count"`
	IsFeatured          bool           `db:"is_featured"`
	IsUrgent            bool           `db:"is_urgent"`
	Tags                pq.StringArray `db:"tags"`
	RecruiterID         string         `db:"recruiter_id"`
	CompanyID           string         `db:"company_id"`
	CreatedAt           time.Time      `db:"created_at"`
	UpdatedAt           time.Time      `db:"updated_at"`
}

// toEntity converts database model to domain entity
func (m *jobModel) toEntity() *job.Job {
	j := &job.Job{
		ID:               kernel.JobID(m.ID),
		Title:            m.Title,
		Slug:             m.Slug,
		Description:      m.Description,
		Requirements:     m.Requirements,
		Responsibilities: m.Responsibilities,
		Benefits:         m.Benefits,
		SkillsRequired:   []string(m.SkillsRequired),
		SkillsPreferred:  []string(m.SkillsPreferred),
		Status:           job.JobStatus(m.Status),
		IsOpen:           m.IsOpen,
		RemoteWork:       m.RemoteWork,
		JobType:          job.JobType(m.JobType),
		ExperienceLevel:  job.ExperienceLevel(m.ExperienceLevel),
		Salary: job.Salary{
			Min:      intPtr(m.SalaryMin),
			Max:      intPtr(m.SalaryMax),
			Currency: m.SalaryCurrency,
			Period:   m.SalaryPeriod,
		},
		ApplicationCount: m.ApplicationCount,
		ViewCount:        m.ViewCount,
		IsFeatured:       m.IsFeatured,
		IsUrgent:         m.IsUrgent,
		Tags:             []string(m.Tags),
		RecruiterID:      kernel.ExternalIdentity(m.RecruiterID),
		CompanyID:        kernel.CompanyID(m.CompanyID),
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
	if m.Location.Valid {
		loc := m.Location.String
		j.Location = &loc
	}
	if m.ApplicationDeadline.Valid {
		t := m.ApplicationDeadline.Time
		j.ApplicationDeadline = &t
	}
	if m.StartDate.Valid {
		t := m.StartDate.Time
		j.StartDate = &t
	}
	return j
}

// fromEntity converts domain entity to database model
func fromEntity(j *job.Job) *jobModel {
	m := &jobModel{
		ID:               j.ID.String(),
		Title:            j.Title,
		Slug:             j.Slug,
		Description:      j.Description,
		Requirements:     j.Requirements,
		Responsibilities: j.Responsibilities,
		Benefits:         j.Benefits,
		SkillsRequired:   pq.StringArray(nonNil(j.SkillsRequired)),
		SkillsPreferred:  pq.StringArray(nonNil(j.SkillsPreferred)),
		Status:           string(j.Status),
		IsOpen:           j.IsOpen,
		RemoteWork:       j.RemoteWork,
		JobType:          string(j.JobType),
		ExperienceLevel:  string(j.ExperienceLevel),
		SalaryCurrency:   j.Salary.Currency,
		SalaryPeriod:     j.Salary.Period,
		ApplicationCount: j.ApplicationCount,
		ViewCount:        j.ViewCount,
		IsFeatured:       j.IsFeatured,
		IsUrgent:         j.IsUrgent,
		Tags:             pq.StringArray(nonNil(j.Tags)),
		RecruiterID:      j.RecruiterID.String(),
		CompanyID:        j.CompanyID.String(),
		CreatedAt:        j.CreatedAt,
		UpdatedAt:        j.UpdatedAt,
	}
	if j.Location != nil {
		m.Location = sql.NullString{String: *j.Location, Valid: true}
	}
	if j.Salary.Min != nil {
		m.SalaryMin = sql.NullInt64{Int64: int64(*j.Salary.Min), Valid: true}
	}
	if j.Salary.Max != nil {
		m.SalaryMax = sql.NullInt64{Int64: int64(*j.Salary.Max), Valid: true}
	}
	if j.ApplicationDeadline != nil {
		m.ApplicationDeadline = sql.NullTime{Time: *j.ApplicationDeadline, Valid: true}
	}
	if j.StartDate != nil {
		m.StartDate = sql.NullTime{Time: *j.StartDate, Valid: true}
	}
	return m
}

// ============================================================================
// Repository Implementation
// ============================================================================

// Create creates a new job
func (r *PostgresJobRepository) Create(ctx context.Context, j *job.Job) error {
	query := `
		INSERT INTO jobs (` + jobColumns + `
		) VALUES (
			:id, :title, :slug, :description, :requirements, :responsibilities, :benefits,
			:skills_required, :skills_preferred, :status, :is_open, :location, :remote_work,
			:job_type, :experience_level, :salary_min, :salary_max, :salary_currency, :salary_period,
			:application_deadline, :start_date, :application_count, :view_count,
			:is_featured, :is_urgent, :tags, :recruiter_id, :company_id, :created_at, :updated_at
		)
	`

	if _, err := r.db.NamedExecContext(ctx, query, fromEntity(j)); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return job.ErrJobAlreadyExists().WithDetail("job_id", j.ID.String())
		}
		return errx.Wrap(err, "failed to create job", errx.TypeInternal)
	}
	return nil
}

// Update writes the editable columns. Counters are only changed by the increment methods.
func (r *PostgresJobRepository) Update(ctx context.Context, id kernel.JobID, j *job.Job) error {
	model := fromEntity(j)
	model.ID = id.String()

	query := `
		UPDATE jobs SET
			title = :title,
			slug = :slug,
			description = :description,
			requirements = :requirements,
			responsibilities = :responsibilities,
			benefits = :benefits,
			skills_required = :skills_required,
			skills_preferred = :skills_preferred,
			status = :status,
			is_open = :is_open,
			location = :location,
			remote_work = :remote_work,
			job_type = :job_type,
			experience_level = :experience_level,
			salary_min = :salary_min,
			salary_max = :salary_max,
			salary_currency = :salary_currency,
			salary_period = :salary_period,
			application_deadline = :application_deadline,
			start_date = :start_date,
			is_featured = :is_featured,
			is_urgent = :is_urgent,
			tags = :tags,
			updated_at = :updated_at
		WHERE id = :id
	`

	result, err := r.db.NamedExecContext(ctx, query, model)
	if err != nil {
		return errx.Wrap(err, "failed to update job", errx.TypeInternal)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errx.Wrap(err, "failed to get rows affected", errx.TypeInternal)
	}
	if rows == 0 {
		return job.ErrJobNotFound().WithDetail("job_id", id.String())
	}
	return nil
}

// GetByID retrieves a job by ID
func (r *PostgresJobRepository) GetByID(ctx context.Context, id kernel.JobID) (*job.Job, error) {
	var model jobModel
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1`
	if err := r.db.GetContext(ctx, &model, query, id.String()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, job.ErrJobNotFound().WithDetail("job_id", id.String())
		}
		return nil, errx.Wrap(err, "failed to get job", errx.TypeInternal)
	}
	return model.toEntity(), nil
}

// Delete deletes a job by ID
func (r *PostgresJobRepository) Delete(ctx context.Context, id kernel.JobID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM jobs WHERE id = $1`, id.String())
	if err != nil {
		return errx.Wrap(err, "failed to delete job", errx.TypeInternal)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errx.Wrap(err, "failed to get rows affected", errx.TypeInternal)
	}
	if rows == 0 {
		return job.ErrJobNotFound().WithDetail("job_id", id.String())
	}
	return nil
}

// ListOpen uses idx_jobs_listing (status, is_open, created_at DESC)
func (r *PostgresJobRepository) ListOpen(ctx context.Context, n int) ([]*job.Job, error) {
	if n <= 0 {
		return []*job.Job{}, nil
	}
	query := `
		SELECT ` + jobColumns + ` FROM jobs
		WHERE status = 'open' AND is_open
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`
	return r.selectMany(ctx, query, n)
}

// ListByRecruiter uses idx_jobs_recruiter
func (r *PostgresJobRepository) ListByRecruiter(ctx context.Context, recruiterID kernel.ExternalIdentity) ([]*job.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE recruiter_id = $1 ORDER BY created_at DESC, id DESC`
	return r.selectMany(ctx, query, recruiterID.String())
}

// ListByCompany uses idx_jobs_company
func (r *PostgresJobRepository) ListByCompany(ctx context.Context, companyID kernel.CompanyID) ([]*job.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE company_id = $1 ORDER BY created_at DESC, id DESC`
	return r.selectMany(ctx, query, companyID.String())
}

// IncrementViewCount is a single UPDATE, so concurrent callers never lose a view
func (r *PostgresJobRepository) IncrementViewCount(ctx context.Context, id kernel.JobID) error {
	query := `UPDATE jobs SET view_count = view_count + 1, updated_at = now() WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id.String()); err != nil {
		return errx.Wrap(err, "failed to increment view count", errx.TypeInternal)
	}
	return nil
}

// IncrementApplicationCount bumps the denormalized application counter
func (r *PostgresJobRepository) IncrementApplicationCount(ctx context.Context, id kernel.JobID) error {
	query := `UPDATE jobs SET application_count = application_count + 1, updated_at = now() WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id.String())
	if err != nil {
		return errx.Wrap(err, "failed to increment application count", errx.TypeInternal)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return errx.Wrap(err, "failed to get rows affected", errx.TypeInternal)
	}
	if rows == 0 {
		return job.ErrJobNotFound().WithDetail("job_id", id.String())
	}
	return nil
}

// ============================================================================
// Helper Methods
// ============================================================================

func (r *PostgresJobRepository) selectMany(ctx context.Context, query string, args ...any) ([]*job.Job, error) {
	var models []jobModel
	if err := r.db.SelectContext(ctx, &models, query, args...); err != nil {
		return nil, errx.Wrap(err, "failed to list jobs", errx.TypeInternal)
	}

	jobs := make([]*job.Job, 0, len(models))
	for i := range models {
		jobs = append(jobs, models[i].toEntity())
	}
	return jobs, nil
}

func intPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

var _ job.Repository = (*PostgresJobRepository)(nil)
