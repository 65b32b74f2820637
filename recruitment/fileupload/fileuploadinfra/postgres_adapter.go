package fileuploadinfra

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/errx"
	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/kernel"
	"github.com/Brainstorm-collab/CareerFlow-sub002/recruitment/fileupload"
	"github.com/jmoiron/sqlx"
)

// PostgresFileUploadRepository implements fileupload.Repository using PostgreSQL
type PostgresFileUploadRepository struct {
	db *sqlx.DB
}

func NewPostgresFileUploadRepository(db *sqlx.DB) *PostgresFileUploadRepository {
	return &PostgresFileUploadRepository{db: db}
}

// ============================================================================
// Database Models
// ============================================================================

const fileUploadColumns = `id, file_name, file_type, file_size, file_url, storage_key, uploaded_by, uploaded_at`

type fileUploadModel struct {
	ID         string    `db:"id"`
	FileName   string    `db:"file_name"`
	FileType   string    `db:"file_type"`
	FileSize   int64     `db:"file_size"`
	FileURL    string    `db:"file_url"`
	StorageKey string    `db:"storage_key"`
	UploadedBy string    `db:"uploaded_by"`
	UploadedAt time.Time `db:"uploaded_at"`
}

func (m *fileUploadModel) toEntity() *fileupload.FileUpload {
	return &fileupload.FileUpload{
		ID:         kernel.FileUploadID(m.ID),
		FileName:   m.FileName,
		FileType:   m.FileType,
		FileSize:   m.FileSize,
		FileURL:    m.FileURL,
		StorageKey: kernel.StorageKey(m.StorageKey),
		UploadedBy: kernel.UserID(m.UploadedBy),
		UploadedAt: m.UploadedAt,
	}
}

func fromEntity(f *fileupload.FileUpload) *fileUploadModel {
	return &fileUploadModel{
		ID:         f.ID.String(),
		FileName:   f.FileName,
		FileType:   f.FileType,
		FileSize:   f.FileSize,
		FileURL:    f.FileURL,
		StorageKey: f.StorageKey.String(),
		UploadedBy: f.UploadedBy.String(),
		UploadedAt: f.UploadedAt,
	}
}

// ============================================================================
// Repository Implementation
// ============================================================================

func (r *PostgresFileUploadRepository) Create(ctx context.Context, f *fileupload.FileUpload) error {
	query := `
		INSERT INTO file_uploads (` + fileUploadColumns + `)
		VALUES (:id, :file_name, :file_type, :file_size, :file_url, :storage_key, :uploaded_by, :uploaded_at)
	`
	if _, err := r.db.NamedExecContext(ctx, query, fromEntity(f)); err != nil {
		return errx.Wrap(err, "failed to create file upload", errx.TypeInternal)
	}
	return nil
}

func (r *PostgresFileUploadRepository) GetByID(ctx context.Context, id kernel.FileUploadID) (*fileupload.FileUpload, error) {
	var model fileUploadModel
	query := `SELECT ` + fileUploadColumns + ` FROM file_uploads WHERE id = $1`
	if err := r.db.GetContext(ctx, &model, query, id.String()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fileupload.ErrFileNotFound()
		}
		return nil, errx.Wrap(err, "failed to get file upload", errx.TypeInternal)
	}
	return model.toEntity(), nil
}

// FindByName uses idx_file_uploads_user_name on (uploaded_by, lower(file_name))
func (r *PostgresFileUploadRepository) FindByName(ctx context.Context, userID kernel.UserID, fileName string) ([]*fileupload.FileUpload, error) {
	query := `
		SELECT ` + fileUploadColumns + ` FROM file_uploads
		WHERE uploaded_by = $1 AND lower(file_name) = lower($2)
		ORDER BY uploaded_at DESC
	`
	return r.selectMany(ctx, query, userID.String(), fileName)
}

func (r *PostgresFileUploadRepository) Delete(ctx context.Context, id kernel.FileUploadID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM file_uploads WHERE id = $1`, id.String())
	if err != nil {
		return errx.Wrap(err, "failed to delete file upload", errx.TypeInternal)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return errx.Wrap(err, "failed to get rows affected", errx.TypeInternal)
	}
	if rows == 0 {
		return fileupload.ErrFileNotFound().WithDetail("file_id", id.String())
	}
	return nil
}

func (r *PostgresFileUploadRepository) ListByUser(ctx context.Context, userID kernel.UserID) ([]*fileupload.FileUpload, error) {
	query := `SELECT ` + fileUploadColumns + ` FROM file_uploads WHERE uploaded_by = $1 ORDER BY uploaded_at DESC, id DESC`
	return r.selectMany(ctx, query, userID.String())
}

func (r *PostgresFileUploadRepository) ListUploaders(ctx context.Context) ([]kernel.UserID, error) {
	var ids []string
	if err := r.db.SelectContext(ctx, &ids, `SELECT DISTINCT uploaded_by FROM file_uploads`); err != nil {
		return nil, errx.Wrap(err, "failed to list uploaders", errx.TypeInternal)
	}
	out := make([]kernel.UserID, 0, len(ids))
	for _, id := range ids {
		out = append(out, kernel.UserID(id))
	}
	return out, nil
}

func (r *PostgresFileUploadRepository) DeleteByUser(ctx context.Context, userID kernel.UserID) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM file_uploads WHERE uploaded_by = $1`, userID.String())
	if err != nil {
		return 0, errx.Wrap(err, "failed to delete file uploads", errx.TypeInternal)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, errx.Wrap(err, "failed to get rows affected", errx.TypeInternal)
	}
	return rows, nil
}

func (r *PostgresFileUploadRepository) selectMany(ctx context.Context, query string, args ...any) ([]*fileupload.FileUpload, error) {
	var models []fileUploadModel
	if err := r.db.SelectContext(ctx, &models, query, args...); err != nil {
		return nil, errx.Wrap(err, "failed to list file uploads", errx.TypeInternal)
	}
	out := make([]*fileupload.FileUpload, 0, len(models))
	for i := range models {
		out = append(out, models[i].toEntity())
	}
	return out, nil
}

var _ fileupload.Repository = (*PostgresFileUploadRepository)(nil)
