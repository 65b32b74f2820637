package fileupload

import "time"

// UploadURLRequest - DTO for requesting a presigned upload
type UploadURLRequest struct {
	FileName string `json:"file_name"`
	FileType string `json:"file_type"`
}

// UploadURLResponse carries the presigned PUT and the key to confirm with
type UploadURLResponse struct {
	UploadURL  string    `json:"upload_url"`
	StorageKey string    `json:"storage_key"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// ConfirmUploadRequest registers an object uploaded through a presigned URL
type ConfirmUploadRequest struct {
	StorageKey string `json:"storage_key"`
	FileName   string `json:"file_name"`
	FileType   string `json:"file_type"`
	FileSize   int64  `json:"file_size"`
}

type FileURLResponse struct {
	URL string `json:"url"`
}

// SweepResult summarises one cleanup sweep
type SweepResult struct {
	OrphanedUsers  int   `json:"orphaned_users"`
	DeletedRecords int64 `json:"deleted_records"`
	DeletedObjects int   `json:"deleted_objects"`
	QueuedForRetry int   `json:"queued_for_retry"`
}
