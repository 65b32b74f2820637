package migrations

import (
	"context"
	"database/sql"
	"embed"
	"io/fs"

	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/errx"
	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/logx"
	"github.com/pressly/goose/v3"
)

//go:embed sql/*.sql
var files embed.FS

const dir = "sql"

// Files exposes the embedded migration scripts
func Files() fs.FS {
	return files
}

// Up applies every pending migration. A nil database is a no-op.
func Up(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return nil
	}

	goose.SetBaseFS(files)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect("postgres"); err != nil {
		return errx.Wrap(err, "failed to set migration dialect", errx.TypeInternal)
	}
	if err := goose.UpContext(ctx, db, dir); err != nil {
		return errx.Wrap(err, "failed to apply migrations", errx.TypeInternal)
	}

	version, err := goose.GetDBVersion(db)
	if err != nil {
		return errx.Wrap(err, "failed to read schema version", errx.TypeInternal)
	}
	logx.Infof("database schema at version %d", version)
	return nil
}
