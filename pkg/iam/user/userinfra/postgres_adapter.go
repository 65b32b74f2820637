package userinfra

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/errx"
	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/iam/user"
	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/kernel"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// PostgresUserRepository implements user.Repository using PostgreSQL
type PostgresUserRepository struct {
	db *sqlx.DB
}

// NewPostgresUserRepository creates a new PostgreSQL user repository
func NewPostgresUserRepository(db *sqlx.DB) *PostgresUserRepository {
	return &PostgresUserRepository{
		db: db,
	}
}

// ============================================================================
// Database Model
// ============================================================================

const userColumns = `
	id, external_id, provider, email, first_name, last_name, full_name,
	profile_image, role, phone, location, bio, skills, experience, education,
	resume_url, linkedin_url, github_url, portfolio_url,
	is_active, name_customized, created_at, updated_at`

type userModel struct {
	ID             string         `db:"id"`
	ExternalID     sql.NullString `db:"external_id"`
	Provider       string         `db:"provider"`
	Email          string         `db:"email"`
	FirstName      string         `db:"first_name"`
	LastName       string         `db:"last_name"`
	FullName       string         `db:"full_name"`
	ProfileImage   string         `db:"profile_image"`
	Role           string         `db:"role"`
	Phone          string         `db:"phone"`
	Location       string         `db:"location"`
	Bio            string         `db:"bio"`
	Skills         pq.StringArray `db:"skills"`
	Experience     string         `db:"experience"`
	Education      string         `db:"education"`
	ResumeURL      string         `db:"resume_url"`
	LinkedInURL    string         `db:"linkedin_url"`
	GitHubURL      string         `db:"github_url"`
	PortfolioURL   string         `db:"portfolio_url"`
	IsActive       bool           `db:"is_active"`
	NameCustomized bool           `db:"name_customized"`
	CreatedAt      time.Time      `db:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at"`
}

// toEntity converts database model to domain entity
func (m *userModel) toEntity() *user.User {
	return &user.User{
		ID:             kernel.UserID(m.ID),
		ExternalID:     kernel.ExternalIdentity(m.ExternalID.String),
		Provider:       m.Provider,
		Email:          kernel.Email(m.Email),
		FirstName:      kernel.FirstName(m.FirstName),
		LastName:       kernel.LastName(m.LastName),
		FullName:       m.FullName,
		ProfileImage:   m.ProfileImage,
		Role:           user.Role(m.Role),
		Phone:          kernel.Phone(m.Phone),
		Location:       m.Location,
		Bio:            m.Bio,
		Skills:         []string(m.Skills),
		Experience:     m.Experience,
		Education:      m.Education,
		ResumeURL:      m.ResumeURL,
		LinkedInURL:    m.LinkedInURL,
		GitHubURL:      m.GitHubURL,
		PortfolioURL:   m.PortfolioURL,
		IsActive:       m.IsActive,
		NameCustomized: m.NameCustomized,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

// fromEntity converts domain entity to database model
func fromEntity(u *user.User) *userModel {
	return &userModel{
		ID:             u.ID.String(),
		ExternalID:     sql.NullString{String: u.ExternalID.String(), Valid: !u.ExternalID.IsEmpty()},
		Provider:       u.Provider,
		Email:          u.Email.Normalize().String(),
		FirstName:      string(u.FirstName),
		LastName:       string(u.LastName),
		FullName:       u.FullName,
		ProfileImage:   u.ProfileImage,
		Role:           string(u.Role),
		Phone:          string(u.Phone),
		Location:       u.Location,
		Bio:            u.Bio,
		Skills:         pq.StringArray(u.Skills),
		Experience:     u.Experience,
		Education:      u.Education,
		ResumeURL:      u.ResumeURL,
		LinkedInURL:    u.LinkedInURL,
		GitHubURL:      u.GitHubURL,
		PortfolioURL:   u.PortfolioURL,
		IsActive:       u.IsActive,
		NameCustomized: u.NameCustomized,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

// ============================================================================
// Repository Implementation
// ============================================================================

// Create creates a new user
func (r *PostgresUserRepository) Create(ctx context.Context, u *user.User) error {
	query := `
		INSERT INTO users (` + userColumns + `
		) VALUES (
			:id, :external_id, :provider, :email, :first_name, :last_name, :full_name,
			:profile_image, :role, :phone, :location, :bio, :skills, :experience, :education,
			:resume_url, :linkedin_url, :github_url, :portfolio_url,
			:is_active, :name_customized, :created_at, :updated_at
		)
	`

	if _, err := r.db.NamedExecContext(ctx, query, fromEntity(u)); err != nil {
		return mapWriteError(err, "failed to create user")
	}
	return nil
}

// Update updates an existing user
func (r *PostgresUserRepository) Update(ctx context.Context, id kernel.UserID, u *user.User) error {
	model := fromEntity(u)
	model.ID = id.String()

	query := `
		UPDATE users SET
			external_id = :external_id,
			provider = :provider,
			email = :email,
			first_name = :first_name,
			last_name = :last_name,
			full_name = :full_name,
			profile_image = :profile_image,
			role = :role,
			phone = :phone,
			location = :location,
			bio = :bio,
			skills = :skills,
			experience = :experience,
			education = :education,
			resume_url = :resume_url,
			linkedin_url = :linkedin_url,
			github_url = :github_url,
			portfolio_url = :portfolio_url,
			is_active = :is_active,
			name_customized = :name_customized,
			updated_at = :updated_at
		WHERE id = :id
	`

	result, err := r.db.NamedExecContext(ctx, query, model)
	if err != nil {
		return mapWriteError(err, "failed to update user")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errx.Wrap(err, "failed to get rows affected", errx.TypeInternal)
	}
	if rows == 0 {
		return user.ErrUserNotFound().WithDetail("user_id", id.String())
	}
	return nil
}

// GetByID retrieves a user by ID
func (r *PostgresUserRepository) GetByID(ctx context.Context, id kernel.UserID) (*user.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id.String())
}

// GetByExternalID retrieves a user through the external_id unique index
func (r *PostgresUserRepository) GetByExternalID(ctx context.Context, ext kernel.ExternalIdentity) (*user.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE external_id = $1`, ext.String())
}

// GetByEmail retrieves a user by email
func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email kernel.Email) (*user.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email.Normalize().String())
}

// Delete deletes a user by ID
func (r *PostgresUserRepository) Delete(ctx context.Context, id kernel.UserID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id.String())
	if err != nil {
		return errx.Wrap(err, "failed to delete user", errx.TypeInternal)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errx.Wrap(err, "failed to get rows affected", errx.TypeInternal)
	}
	if rows == 0 {
		return user.ErrUserNotFound().WithDetail("user_id", id.String())
	}
	return nil
}

// Exists checks if a user exists by ID
func (r *PostgresUserRepository) Exists(ctx context.Context, id kernel.UserID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`
	if err := r.db.GetContext(ctx, &exists, query, id.String()); err != nil {
		return false, errx.Wrap(err, "failed to check user existence", errx.TypeInternal)
	}
	return exists, nil
}

// List retrieves users with pagination
func (r *PostgresUserRepository) List(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[user.User], error) {
	pagination = pagination.Normalize()

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM users`); err != nil {
		return nil, errx.Wrap(err, "failed to count users", errx.TypeInternal)
	}

	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2`

	var models []userModel
	if err := r.db.SelectContext(ctx, &models, query, pagination.PageSize, pagination.Offset()); err != nil {
		return nil, errx.Wrap(err, "failed to list users", errx.TypeInternal)
	}

	users := make([]user.User, 0, len(models))
	for i := range models {
		users = append(users, *models[i].toEntity())
	}

	return kernel.NewPaginated(users, pagination, total), nil
}

// ============================================================================
// Helper Methods
// ============================================================================

func (r *PostgresUserRepository) getOne(ctx context.Context, query string, arg any) (*user.User, error) {
	var model userModel
	if err := r.db.GetContext(ctx, &model, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, user.ErrUserNotFound()
		}
		return nil, errx.Wrap(err, "failed to get user", errx.TypeInternal)
	}
	return model.toEntity(), nil
}

func mapWriteError(err error, msg string) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" { // unique_violation
		if strings.Contains(pqErr.Constraint, "external_id") {
			return user.ErrExternalIDAlreadyExists()
		}
		return user.ErrEmailAlreadyExists()
	}
	return errx.Wrap(err, msg, errx.TypeInternal)
}

var _ user.Repository = (*PostgresUserRepository)(nil)
