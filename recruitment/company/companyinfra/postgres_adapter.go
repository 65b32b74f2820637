package companyinfra

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/errx"
	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/kernel"
	"github.com/Brainstorm-collab/CareerFlow-sub002/recruitment/company"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// PostgresCompanyRepository implements company.Repository using PostgreSQL
type PostgresCompanyRepository struct {
	db *sqlx.DB
}

// NewPostgresCompanyRepository creates a new PostgreSQL company repository
func NewPostgresCompanyRepository(db *sqlx.DB) *PostgresCompanyRepository {
	return &PostgresCompanyRepository{
		db: db,
	}
}

// ============================================================================
// Database Model
// ============================================================================

const companyColumns = `
	id, name, slug, description, logo_url, cover_image_url, website, industry,
	size, founded_year, headquarters, remote_policy, benefits, culture_tags,
	social_links, is_verified, is_active, created_by, created_at, updated_at`

type companyModel struct {
	ID            string          `db:"id"`
	Name          string          `db:"name"`
	Slug          string          `db:"slug"`
	Description   string          `db:"description"`
	LogoURL       string          `db:"logo_url"`
	CoverImageURL string          `db:"cover_image_url"`
	Website       string          `db:"website"`
	Industry      string          `db:"industry"`
	Size          string          `db:"size"`
	FoundedYear   sql.NullInt64   `db:"founded_year"`
	Headquarters  string          `db:"headquarters"`
	RemotePolicy  string          `db:"remote_policy"`
	Benefits      pq.StringArray  `db:"benefits"`
	CultureTags   pq.StringArray  `db:"culture_tags"`
	SocialLinks   json.RawMessage `db:"social_links"`
	IsVerified    bool            `db:"is_verified"`
	IsActive      bool            `db:"is_active"`
	CreatedBy     string          `db:"created_by"`
	CreatedAt     time.Time       `db:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at"`
}

// toEntity converts database model to domain entity
func (m *companyModel) toEntity() (*company.Company, error) {
	var links kernel.SocialLinks
	if len(m.SocialLinks) > 0 {
		if err := json.Unmarshal(m.SocialLinks, &links); err != nil {
			return nil, fmt.Errorf("failed to unmarshal social links: %w", err)
		}
	}

	var founded *int
	if m.FoundedYear.Valid {
		year := int(m.FoundedYear.Int64)
		founded = &year
	}

	return &company.Company{
		ID:            kernel.CompanyID(m.ID),
		Name:          m.Name,
		Slug:          m.Slug,
		Description:   m.Description,
		LogoURL:       m.LogoURL,
		CoverImageURL: m.CoverImageURL,
		Website:       m.Website,
		Industry:      m.Industry,
		Size:          m.Size,
		FoundedYear:   founded,
		Headquarters:  m.Headquarters,
		RemotePolicy:  m.RemotePolicy,
		Benefits:      []string(m.Benefits),
		CultureTags:   []string(m.CultureTags),
		SocialLinks:   links,
		IsVerified:    m.IsVerified,
		IsActive:      m.IsActive,
		CreatedBy:     kernel.UserID(m.CreatedBy),
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}, nil
}

// fromEntity converts domain entity to database model
func fromEntity(c *company.Company) (*companyModel, error) {
	links, err := json.Marshal(c.SocialLinks)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal social links: %w", err)
	}

	var founded sql.NullInt64
	if c.FoundedYear != nil {
		founded = sql.NullInt64{Int64: int64(*c.FoundedYear), Valid: true}
	}

	return &companyModel{
		ID:            c.ID.String(),
		Name:          c.Name,
		Slug:          c.Slug,
		Description:   c.Description,
		LogoURL:       c.LogoURL,
		CoverImageURL: c.CoverImageURL,
		Website:       c.Website,
		Industry:      c.Industry,
		Size:          c.Size,
		FoundedYear:   founded,
		Headquarters:  c.Headquarters,
		RemotePolicy:  c.RemotePolicy,
		Benefits:      pq.StringArray(c.Benefits),
		CultureTags:   pq.StringArray(c.CultureTags),
		SocialLinks:   links,
		IsVerified:    c.IsVerified,
		IsActive:      c.IsActive,
		CreatedBy:     c.CreatedBy.String(),
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}, nil
}

// ============================================================================
// Repository Implementation
// ============================================================================

// Create creates a new company
func (r *PostgresCompanyRepository) Create(ctx context.Context, c *company.Company) error {
	model, err := fromEntity(c)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO companies (` + companyColumns + `
		) VALUES (
			:id, :name, :slug, :description, :logo_url, :cover_image_url, :website, :industry,
			:size, :founded_year, :headquarters, :remote_policy, :benefits, :culture_tags,
			:social_links, :is_verified, :is_active, :created_by, :created_at, :updated_at
		)
	`

	if _, err := r.db.NamedExecContext(ctx, query, model); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return company.ErrCompanyAlreadyExists()
		}
		return errx.Wrap(err, "failed to create company", errx.TypeInternal)
	}
	return nil
}

// Update updates an existing company
func (r *PostgresCompanyRepository) Update(ctx context.Context, id kernel.CompanyID, c *company.Company) error {
	model, err := fromEntity(c)
	if err != nil {
		return err
	}
	model.ID = id.String()

	query := `
		UPDATE companies SET
			name = :name,
			slug = :slug,
			description = :description,
			logo_url = :logo_url,
			cover_image_url = :cover_image_url,
			website = :website,
			industry = :industry,
			size = :size,
			founded_year = :founded_year,
			headquarters = :headquarters,
			remote_policy = :remote_policy,
			benefits = :benefits,
			culture_tags = :culture_tags,
			social_links = :social_links,
			is_verified = :is_verified,
			is_active = :is_active,
			updated_at = :updated_at
		WHERE id = :id
	`

	result, err := r.db.NamedExecContext(ctx, query, model)
	if err != nil {
		return errx.Wrap(err, "failed to update company", errx.TypeInternal)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errx.Wrap(err, "failed to get rows affected", errx.TypeInternal)
	}
	if rows == 0 {
		return company.ErrCompanyNotFound().WithDetail("company_id", id.String())
	}
	return nil
}

// GetByID retrieves a company by ID
func (r *PostgresCompanyRepository) GetByID(ctx context.Context, id kernel.CompanyID) (*company.Company, error) {
	return r.getOne(ctx, `SELECT `+companyColumns+` FROM companies WHERE id = $1`, id.String())
}

// GetBySlug retrieves the oldest company with the given slug
func (r *PostgresCompanyRepository) GetBySlug(ctx context.Context, slug string) (*company.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE slug = $1 ORDER BY created_at ASC LIMIT 1`
	return r.getOne(ctx, query, slug)
}

// Delete deletes a company by ID
func (r *PostgresCompanyRepository) Delete(ctx context.Context, id kernel.CompanyID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM companies WHERE id = $1`, id.String())
	if err != nil {
		return errx.Wrap(err, "failed to delete company", errx.TypeInternal)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errx.Wrap(err, "failed to get rows affected", errx.TypeInternal)
	}
	if rows == 0 {
		return company.ErrCompanyNotFound().WithDetail("company_id", id.String())
	}
	return nil
}

// ListActive retrieves active companies with pagination
func (r *PostgresCompanyRepository) ListActive(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[company.Company], error) {
	pagination = pagination.Normalize()

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM companies WHERE is_active`); err != nil {
		return nil, errx.Wrap(err, "failed to count companies", errx.TypeInternal)
	}

	query := `SELECT ` + companyColumns + ` FROM companies WHERE is_active ORDER BY name ASC, id ASC LIMIT $1 OFFSET $2`
	companies, err := r.selectMany(ctx, query, pagination.PageSize, pagination.Offset())
	if err != nil {
		return nil, err
	}

	items := make([]company.Company, 0, len(companies))
	for _, c := range companies {
		items = append(items, *c)
	}
	return kernel.NewPaginated(items, pagination, total), nil
}

// ListByCreator retrieves every company created by a user
func (r *PostgresCompanyRepository) ListByCreator(ctx context.Context, userID kernel.UserID) ([]*company.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE created_by = $1 ORDER BY created_at DESC`
	return r.selectMany(ctx, query, userID.String())
}

// ============================================================================
// Helper Methods
// ============================================================================

func (r *PostgresCompanyRepository) getOne(ctx context.Context, query string, args ...any) (*company.Company, error) {
	var model companyModel
	if err := r.db.GetContext(ctx, &model, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, company.ErrCompanyNotFound()
		}
		return nil, errx.Wrap(err, "failed to get company", errx.TypeInternal)
	}
	return model.toEntity()
}

func (r *PostgresCompanyRepository) selectMany(ctx context.Context, query string, args ...any) ([]*company.Company, error) {
	var models []companyModel
	if err := r.db.SelectContext(ctx, &models, query, args...); err != nil {
		return nil, errx.Wrap(err, "failed to list companies", errx.TypeInternal)
	}

	companies := make([]*company.Company, 0, len(models))
	for i := range models {
		c, err := models[i].toEntity()
		if err != nil {
			return nil, err
		}
		companies = append(companies, c)
	}
	return companies, nil
}

var _ company.Repository = (*PostgresCompanyRepository)(nil)
