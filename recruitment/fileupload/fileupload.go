package fileupload

import (
	"path"
	"strings"
	"time"

	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/kernel"
)

// MaxFileSize is the largest accepted upload
const MaxFileSize int64 = 10 << 20

// FileUpload is the metadata of one stored object owned by a user
type FileUpload struct {
	ID         kernel.FileUploadID `json:"id"`
	FileName   string              `json:"file_name"`
	FileType   string              `json:"file_type"`
	FileSize   int64               `json:"file_size"`
	FileURL    string              `json:"file_url"`
	StorageKey kernel.StorageKey   `json:"-"`
	UploadedBy kernel.UserID       `json:"uploaded_by"`
	UploadedAt time.Time           `json:"uploaded_at"`
}

// SameName reports whether name refers to the same current file, ignoring case
func (f *FileUpload) SameName(name string) bool {
	return strings.EqualFold(f.FileName, name)
}

// IsOwnedBy checks whether userID uploaded the file
func (f *FileUpload) IsOwnedBy(userID kernel.UserID) bool {
	return f.UploadedBy == userID
}

// CleanFileName strips any directory component a client may send
func CleanFileName(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = path.Base(strings.TrimSpace(name))
	if name == "." || name == "/" {
		return ""
	}
	return name
}

// CleanupTask asks the worker to remove an object that is no longer referenced
type CleanupTask struct {
	StorageKey kernel.StorageKey `json:"storage_key"`
	Attempt    int               `json:"attempt"`
	Reason     string            `json:"reason,omitempty"`
	EnqueuedAt time.Time         `json:"enqueued_at"`
}
