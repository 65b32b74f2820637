package fileupload

import (
	"context"
	"time"

	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/kernel"
)

type Repository interface {
	// Create stores upload metadata
	Create(ctx context.Context, f *FileUpload) error

	// GetByID retrieves an upload by ID
	GetByID(ctx context.Context, id kernel.FileUploadID) (*FileUpload, error)

	// FindByName retrieves the uploads of a user whose name matches case-insensitively
	FindByName(ctx context.Context, userID kernel.UserID, fileName string) ([]*FileUpload, error)

	// Delete deletes an upload by ID
	Delete(ctx context.Context, id kernel.FileUploadID) error

	// ListByUser retrieves the uploads of a user, newest first
	ListByUser(ctx context.Context, userID kernel.UserID) ([]*FileUpload, error)

	// ListUploaders returns the distinct uploader IDs
	ListUploaders(ctx context.Context) ([]kernel.UserID, error)

	// DeleteByUser removes every upload record of a user
	DeleteByUser(ctx context.Context, userID kernel.UserID) (int64, error)
}

// CleanupQueue holds storage deletions that failed and must be retried
type CleanupQueue interface {
	Enqueue(ctx context.Context, task CleanupTask) error
	EnqueueDelayed(ctx context.Context, task CleanupTask, delay time.Duration) error

	// Dequeue blocks up to timeout. It returns nil, nil when nothing is ready.
	Dequeue(ctx context.Context, timeout time.Duration) (*CleanupTask, error)

	// MoveDelayedToReady promotes delayed tasks whose time has come
	MoveDelayedToReady(ctx context.Context) (int, error)

	Stats(ctx context.Context) (map[string]any, error)
}
