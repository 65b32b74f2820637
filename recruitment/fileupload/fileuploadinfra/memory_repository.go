package fileuploadinfra

import (
	"context"
	"sort"
	"sync"

	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/kernel"
	"github.com/Brainstorm-collab/CareerFlow-sub002/recruitment/fileupload"
)

// MemoryFileUploadRepository keeps upload metadata in process memory
type MemoryFileUploadRepository struct {
	mu    sync.RWMutex
	files map[kernel.FileUploadID]fileupload.FileUpload
}

func NewMemoryFileUploadRepository() *MemoryFileUploadRepository {
	return &MemoryFileUploadRepository{files: make(map[kernel.FileUploadID]fileupload.FileUpload)}
}

func (r *MemoryFileUploadRepository) Create(ctx context.Context, f *fileupload.FileUpload) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.files[f.ID] = *f
	return nil
}

func (r *MemoryFileUploadRepository) GetByID(ctx context.Context, id kernel.FileUploadID) (*fileupload.FileUpload, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.files[id]
	if !ok {
		return nil, fileupload.ErrFileNotFound()
	}
	return &f, nil
}

func (r *MemoryFileUploadRepository) FindByName(ctx context.Context, userID kernel.UserID, fileName string) ([]*fileupload.FileUpload, error) {
	return r.list(ctx, func(f *fileupload.FileUpload) bool {
		return f.UploadedBy == userID && f.SameName(fileName)
	})
}

func (r *MemoryFileUploadRepository) Delete(ctx context.Context, id kernel.FileUploadID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.files[id]; !ok {
		return fileupload.ErrFileNotFound().WithDetail("file_id", id.String())
	}
	delete(r.files, id)
	return nil
}

func (r *MemoryFileUploadRepository) ListByUser(ctx context.Context, userID kernel.UserID) ([]*fileupload.FileUpload, error) {
	return r.list(ctx, func(f *fileupload.FileUpload) bool { return f.UploadedBy == userID })
}

func (r *MemoryFileUploadRepository) ListUploaders(ctx context.Context) ([]kernel.UserID, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[kernel.UserID]struct{})
	out := make([]kernel.UserID, 0)
	for _, f := range r.files {
		if _, ok := seen[f.UploadedBy]; ok {
			continue
		}
		seen[f.UploadedBy] = struct{}{}
		out = append(out, f.UploadedBy)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

func (r *MemoryFileUploadRepository) DeleteByUser(ctx context.Context, userID kernel.UserID) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for id, f := range r.files {
		if f.UploadedBy == userID {
			delete(r.files, id)
			n++
		}
	}
	return n, nil
}

func (r *MemoryFileUploadRepository) list(ctx context.Context, match func(*fileupload.FileUpload) bool) ([]*fileupload.FileUpload, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	out := make([]*fileupload.FileUpload, 0)
	for _, f := range r.files {
		if match(&f) {
			found := f
			out = append(out, &found)
		}
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].UploadedAt.Equal(out[j].UploadedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].UploadedAt.After(out[j].UploadedAt)
	})
	return out, nil
}

// Count returns the number of stored uploads
func (r *MemoryFileUploadRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.files)
}

var _ fileupload.Repository = (*MemoryFileUploadRepository)(nil)
