package application

import (
	"context"

	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/kernel"
)

type Repository interface {
	// Create creates a new application. A second application of the same
	// candidate to the same job is a conflict.
	Create(ctx context.Context, application *Application) error

	// Update updates an existing application
	Update(ctx context.Context, id kernel.ApplicationID, application *Application) error

	// GetByID retrieves an application by ID
	GetByID(ctx context.Context, id kernel.ApplicationID) (*Application, error)

	// GetByCandidateAndJob retrieves the application of a candidate to a job
	GetByCandidateAndJob(ctx context.Context, candidateID kernel.UserID, jobID kernel.JobID) (*Application, error)

	// Delete deletes an application by ID
	Delete(ctx context.Context, id kernel.ApplicationID) error

	// ListByJob retrieves every application for a job, newest first
	ListByJob(ctx context.Context, jobID kernel.JobID) ([]*Application, error)

	// ListByCandidate retrieves every application of a candidate, newest first
	ListByCandidate(ctx context.Context, candidateID kernel.UserID) ([]*Application, error)

	// DeleteByJob deletes every application for a job and returns how many were removed
	DeleteByJob(ctx context.Context, jobID kernel.JobID) (int64, error)

	// DeleteByCandidate deletes every application of a candidate
	DeleteByCandidate(ctx context.Context, candidateID kernel.UserID) (int64, error)
}
