package savedjob

import (
	"context"

	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/kernel"
)

type Repository interface {
	// Create stores a saved job. A second save of the same (user, job) pair is a conflict.
	Create(ctx context.Context, s *SavedJob) error

	// Get retrieves the saved job of a user for a job
	Get(ctx context.Context, userID kernel.UserID, jobID kernel.JobID) (*SavedJob, error)

	// Exists reports whether the user saved the job
	Exists(ctx context.Context, userID kernel.UserID, jobID kernel.JobID) (bool, error)

	// Delete removes the saved job of a user for a job
	Delete(ctx context.Context, userID kernel.UserID, jobID kernel.JobID) error

	// ListByUser retrieves the saved jobs of a user, newest first
	ListByUser(ctx context.Context, userID kernel.UserID) ([]*SavedJob, error)

	// ListByJob retrieves every saved job record referencing a job
	ListByJob(ctx context.Context, jobID kernel.JobID) ([]*SavedJob, error)

	// DeleteByJob removes every saved job record referencing a job
	DeleteByJob(ctx context.Context, jobID kernel.JobID) (int64, error)

	// DeleteByUser removes every saved job of a user
	DeleteByUser(ctx context.Context, userID kernel.UserID) (int64, error)
}
