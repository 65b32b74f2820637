package fileuploadsrv

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"
	"time"

	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/errx"
	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/fsx"
	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/iam/user"
	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/kernel"
	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/logx"
	"github.com/Brainstorm-collab/CareerFlow-sub002/recruitment/fileupload"
)

const (
	uploadsRoot = "uploads"

	// MaxCleanupAttempts bounds retries of a failed object deletion
	MaxCleanupAttempts = 5

	defaultPresignTTL = 15 * time.Minute
)

// Service provides business operations for uploaded files
type Service struct {
	repo       fileupload.Repository
	fs         fsx.FileSystem
	queue      fileupload.CleanupQueue
	userRepo   user.Repository
	presignTTL time.Duration
}

func NewService(
	repo fileupload.Repository,
	fs fsx.FileSystem,
	queue fileupload.CleanupQueue,
	userRepo user.Repository,
) *Service {
	return &Service{
		repo:       repo,
		fs:         fs,
		queue:      queue,
		userRepo:   userRepo,
		presignTTL: defaultPresignTTL,
	}
}

// ============================================================================
// Upload
// ============================================================================

// Upload stores a new file for userID. A previous file with the same name
// (ignoring case) is replaced only after the new object and its record exist.
func (s *Service) Upload(ctx context.Context, userID kernel.UserID, fileName, fileType string, size int64, r io.Reader) (*fileupload.FileUpload, error) {
	name := fileupload.CleanFileName(fileName)
	if name == "" {
		return nil, fileupload.ErrInvalidFileName().WithDetail("file_name", fileName)
	}
	if size <= 0 {
		return nil, fileupload.ErrEmptyFile()
	}
	if size > fileupload.MaxFileSize {
		return nil, fileupload.ErrFileTooLarge().WithDetail("size", size)
	}

	id := kernel.NewFileUploadID(kernel.NewID())
	key := s.objectKey(userID, id, name)

	if err := s.fs.WriteFileStream(ctx, key.String(), io.LimitReader(r, fileupload.MaxFileSize)); err != nil {
		return nil, fileupload.ErrStorageFailed().WithCause(err).WithDetail("operation", "write")
	}

	return s.register(ctx, &fileupload.FileUpload{
		ID:         id,
		FileName:   name,
		FileType:   fileType,
		FileSize:   size,
		StorageKey: key,
		UploadedBy: userID,
	})
}

// GenerateUploadURL returns a presigned PUT the client uploads to directly
func (s *Service) GenerateUploadURL(ctx context.Context, userID kernel.UserID, req fileupload.UploadURLRequest) (*fileupload.UploadURLResponse, error) {
	name := fileupload.CleanFileName(req.FileName)
	if name == "" {
		return nil, fileupload.ErrInvalidFileName().WithDetail("file_name", req.FileName)
	}

	key := s.objectKey(userID, kernel.NewFileUploadID(kernel.NewID()), name)
	url, err := s.fs.PresignUpload(ctx, key.String(), req.FileType, s.presignTTL)
	if err != nil {
		if errors.Is(err, fsx.ErrNotSupported) {
			return nil, fileupload.ErrPresignNotSupported()
		}
		return nil, fileupload.ErrStorageFailed().WithCause(err).WithDetail("operation", "presign")
	}

	return &fileupload.UploadURLResponse{
		UploadURL:  url,
		StorageKey: key.String(),
		ExpiresAt:  time.Now().Add(s.presignTTL).UTC(),
	}, nil
}

// ConfirmUpload records an object the client uploaded through GenerateUploadURL
func (s *Service) ConfirmUpload(ctx context.Context, userID kernel.UserID, req fileupload.ConfirmUploadRequest) (*fileupload.FileUpload, error) {
	name := fileupload.CleanFileName(req.FileName)
	if name == "" {
		return nil, fileupload.ErrInvalidFileName().WithDetail("file_name", req.FileName)
	}
	if req.FileSize > fileupload.MaxFileSize {
		return nil, fileupload.ErrFileTooLarge().WithDetail("size", req.FileSize)
	}

	// Keys are issued under the caller's own prefix
	if !ownsKey(userID, req.StorageKey) {
		return nil, fileupload.ErrInsufficientPermissions().WithDetail("storage_key", req.StorageKey)
	}

	exists, err := s.fs.Exists(ctx, req.StorageKey)
	if err != nil {
		return nil, fileupload.ErrStorageFailed().WithCause(err).WithDetail("operation", "stat")
	}
	if !exists {
		return nil, fileupload.ErrFileNotFound().WithDetail("storage_key", req.StorageKey)
	}

	return s.register(ctx, &fileupload.FileUpload{
		ID:         kernel.NewFileUploadID(kernel.NewID()),
		FileName:   name,
		FileType:   req.FileType,
		FileSize:   req.FileSize,
		StorageKey: kernel.StorageKey(req.StorageKey),
		UploadedBy: userID,
	})
}

// ownsKey accepts only canonical keys below uploads/<user>/
func ownsKey(userID kernel.UserID, key string) bool {
	if userID.IsEmpty() || key == "" || path.Clean(key) != key {
		return false
	}
	for _, segment := range strings.Split(key, "/") {
		if segment == ".." || segment == "." {
			return false
		}
	}
	return strings.HasPrefix(key, uploadsRoot+"/"+userID.String()+"/")
}

// register inserts the new record first, then retires files it supersedes
func (s *Service) register(ctx context.Context, f *fileupload.FileUpload) (*fileupload.FileUpload, error) {
	superseded, err := s.repo.FindByName(ctx, f.UploadedBy, f.FileName)
	if err != nil {
		s.removeObject(ctx, f.StorageKey, "register_failed")
		return nil, errx.Wrap(err, "failed to look up existing files", errx.TypeInternal)
	}

	url, err := s.fs.URL(ctx, f.StorageKey.String())
	if err != nil {
		s.removeObject(ctx, f.StorageKey, "register_failed")
		return nil, fileupload.ErrStorageFailed().WithCause(err).WithDetail("operation", "url")
	}
	f.FileURL = url
	f.UploadedAt = time.Now()

	if err := s.repo.Create(ctx, f); err != nil {
		s.removeObject(ctx, f.StorageKey, "register_failed")
		return nil, errx.Wrap(err, "failed to save file upload", errx.TypeInternal)
	}

	for _, old := range superseded {
		if old.ID == f.ID {
			continue
		}
		if err := s.repo.Delete(ctx, old.ID); err != nil && !errx.IsNotFound(err) {
			logx.WithFields(logx.Fields{
				"file_id": old.ID.String(),
				"error":   err.Error(),
			}).Warn("failed to delete superseded file record")
			continue
		}
		if old.StorageKey != f.StorageKey {
			s.removeObject(ctx, old.StorageKey, "superseded")
		}
	}

	return f, nil
}

// ============================================================================
// Read / Delete
// ============================================================================

// GetURL returns a fresh download URL for a file
func (s *Service) GetURL(ctx context.Context, id kernel.FileUploadID) (*fileupload.FileURLResponse, error) {
	f, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	url, err := s.fs.URL(ctx, f.StorageKey.String())
	if err != nil {
		return nil, fileupload.ErrStorageFailed().WithCause(err).WithDetail("operation", "url")
	}
	return &fileupload.FileURLResponse{URL: url}, nil
}

// ListByUser lists the files of a user
func (s *Service) ListByUser(ctx context.Context, userID kernel.UserID) ([]*fileupload.FileUpload, error) {
	files, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list files", errx.TypeInternal)
	}
	return files, nil
}

// Delete removes a file owned by userID
func (s *Service) Delete(ctx context.Context, userID kernel.UserID, id kernel.FileUploadID) error {
	f, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !f.IsOwnedBy(userID) {
		return fileupload.ErrInsufficientPermissions().WithDetail("file_id", id.String())
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.removeObject(ctx, f.StorageKey, "deleted")
	return nil
}

// DeleteUserFiles removes every file of a user. Missing files are not an error.
func (s *Service) DeleteUserFiles(ctx context.Context, userID kernel.UserID) error {
	files, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return errx.Wrap(err, "failed to list files", errx.TypeInternal)
	}
	if _, err := s.repo.DeleteByUser(ctx, userID); err != nil {
		return errx.Wrap(err, "failed to delete file records", errx.TypeInternal)
	}
	for _, f := range files {
		s.removeObject(ctx, f.StorageKey, "user_deleted")
	}
	return nil
}

// ============================================================================
// Cleanup
// ============================================================================

// Sweep removes uploads whose uploader no longer exists
func (s *Service) Sweep(ctx context.Context) (*fileupload.SweepResult, error) {
	uploaders, err := s.repo.ListUploaders(ctx)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list uploaders", errx.TypeInternal)
	}

	result := &fileupload.SweepResult{}
	for _, userID := range uploaders {
		exists, err := s.userRepo.Exists(ctx, userID)
		if err != nil {
			return result, errx.Wrap(err, "failed to check uploader", errx.TypeInternal)
		}
		if exists {
			continue
		}

		files, err := s.repo.ListByUser(ctx, userID)
		if err != nil {
			return result, errx.Wrap(err, "failed to list orphaned files", errx.TypeInternal)
		}
		n, err := s.repo.DeleteByUser(ctx, userID)
		if err != nil {
			return result, errx.Wrap(err, "failed to delete orphaned files", errx.TypeInternal)
		}

		result.OrphanedUsers++
		result.DeletedRecords += n
		for _, f := range files {
			if s.removeObject(ctx, f.StorageKey, "orphaned") {
				result.DeletedObjects++
			} else {
				result.QueuedForRetry++
			}
		}
	}

	if result.OrphanedUsers > 0 {
		logx.WithFields(logx.Fields{
			"orphaned_users":  result.OrphanedUsers,
			"deleted_records": result.DeletedRecords,
			"deleted_objects": result.DeletedObjects,
		}).Info("file sweep finished")
	}
	return result, nil
}

// ProcessCleanupTask retries an object deletion taken off the queue
func (s *Service) ProcessCleanupTask(ctx context.Context, task *fileupload.CleanupTask) error {
	err := s.fs.DeleteFile(ctx, task.StorageKey.String())
	if err == nil {
		return nil
	}

	next := *task
	next.Attempt++
	if next.Attempt >= MaxCleanupAttempts {
		logx.WithFields(logx.Fields{
			"storage_key": task.StorageKey.String(),
			"attempts":    next.Attempt,
			"error":       err.Error(),
		}).Error("giving up on object cleanup")
		return err
	}

	if qerr := s.queue.EnqueueDelayed(ctx, next, Backoff(next.Attempt)); qerr != nil {
		return errors.Join(err, qerr)
	}
	return err
}

// Backoff is the delay before retry number attempt
func Backoff(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	if attempt > 8 {
		attempt = 8
	}
	d := 30 * time.Second << (attempt - 1)
	if d > 30*time.Minute {
		d = 30 * time.Minute
	}
	return d
}

// QueueStats exposes the cleanup queue counters
func (s *Service) QueueStats(ctx context.Context) (map[string]any, error) {
	return s.queue.Stats(ctx)
}

// removeObject deletes key from storage. On failure the deletion is queued and false is returned.
func (s *Service) removeObject(ctx context.Context, key kernel.StorageKey, reason string) bool {
	err := s.fs.DeleteFile(ctx, key.String())
	if err == nil {
		return true
	}

	logx.WithFields(logx.Fields{
		"storage_key": key.String(),
		"reason":      reason,
		"error":       err.Error(),
	}).Warn("object deletion failed, queued for retry")

	task := fileupload.CleanupTask{StorageKey: key, Reason: reason, EnqueuedAt: time.Now().UTC()}
	if qerr := s.queue.Enqueue(ctx, task); qerr != nil {
		logx.Errorf("failed to queue cleanup of %s: %v", key, qerr)
	}
	return false
}

func (s *Service) objectKey(userID kernel.UserID, id kernel.FileUploadID, name string) kernel.StorageKey {
	return kernel.StorageKey(s.fs.Join(uploadsRoot, userID.String(), id.String(), name))
}
