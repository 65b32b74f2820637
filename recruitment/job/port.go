package job

import (
	"context"

	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/kernel"
)

type Repository interface {
	// Create creates a new job
	Create(ctx context.Context, j *Job) error

	// Update updates an existing job
	Update(ctx context.Context, id kernel.JobID, j *Job) error

	// GetByID retrieves a job by ID
	GetByID(ctx context.Context, id kernel.JobID) (*Job, error)

	// Delete deletes a job by ID
	Delete(ctx context.Context, id kernel.JobID) error

	// ListOpen returns up to n listed jobs (status open and is_open), newest first
	ListOpen(ctx context.Context, n int) ([]*Job, error)

	// ListByRecruiter retrieves every job posted by a recruiter identity, newest first
	ListByRecruiter(ctx context.Context, recruiterID kernel.ExternalIdentity) ([]*Job, error)

	// ListByCompany retrieves every job of a company
	ListByCompany(ctx context.Context, companyID kernel.CompanyID) ([]*Job, error)

	// IncrementViewCount atomically adds one view. A missing job is not an error.
	IncrementViewCount(ctx context.Context, id kernel.JobID) error

	// IncrementApplicationCount atomically adds one application
	IncrementApplicationCount(ctx context.Context, id kernel.JobID) error
}
