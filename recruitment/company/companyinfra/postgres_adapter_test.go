package companyinfra

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/errx"
	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/kernel"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var companyColumnNames = []string{
	"id", "name", "slug", "description", "logo_url", "cover_image_url", "website", "industry",
	"size", "founded_year", "headquarters", "remote_policy", "benefits", "culture_tags",
	"social_links", "is_verified", "is_active", "created_by", "created_at", "updated_at",
}

func newMockRepo(t *testing.T) (*PostgresCompanyRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresCompanyRepository(sqlx.NewDb(db, "postgres")), mock
}

func TestPostgresCompanyRepositoryGetByID(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now().UTC()

	mock.ExpectQuery("SELECT .+ FROM companies WHERE id = \\$1").
		WithArgs("c-1").
		WillReturnRows(sqlmock.NewRows(companyColumnNames).AddRow(
			"c-1", "Acme Corp", "acme-corp", "", "", "", "https://acme.test", "Software",
			"51-200", int64(1999), "Seattle, WA", "hybrid", "{401k,dental}", "{}",
			[]byte(`{"linkedin":"https://linkedin.com/company/acme"}`), true, true, "u-1", now, now,
		))

	got, err := repo.GetByID(context.Background(), "c-1")
	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", got.Name)
	require.NotNil(t, got.FoundedYear)
	assert.Equal(t, 1999, *got.FoundedYear)
	assert.Equal(t, []string{"401k", "dental"}, got.Benefits)
	assert.Equal(t, "https://linkedin.com/company/acme", got.SocialLinks.LinkedIn)
	assert.Equal(t, kernel.UserID("u-1"), got.CreatedBy)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCompanyRepositoryGetByIDNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT .+ FROM companies WHERE id = \\$1").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "missing")
	assert.True(t, errx.IsNotFound(err))
}

func TestPostgresCompanyRepositoryListByCreator(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now().UTC()

	rows := sqlmock.NewRows(companyColumnNames).
		AddRow("c-1", "A", "a", "", "", "", "", "", "", nil, "", "", "{}", "{}", []byte(`{}`), false, true, "u-1", now, now).
		AddRow("c-2", "B", "b", "", "", "", "", "", "", nil, "", "", "{}", "{}", []byte(`{}`), false, true, "u-1", now, now)
	mock.ExpectQuery("SELECT .+ FROM companies WHERE created_by = \\$1").
		WithArgs("u-1").
		WillReturnRows(rows)

	got, err := repo.ListByCreator(context.Background(), "u-1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Nil(t, got[0].FoundedYear)
	require.NoError(t, mock.ExpectationsWereMet())
}
