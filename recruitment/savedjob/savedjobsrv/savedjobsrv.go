package savedjobsrv

import (
	"context"

	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/errx"
	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/kernel"
	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/logx"
	"github.com/Brainstorm-collab/CareerFlow-sub002/recruitment/job"
	"github.com/Brainstorm-collab/CareerFlow-sub002/recruitment/savedjob"
)

// SavedJobWithJob is a saved job with the job it points at
type SavedJobWithJob struct {
	*savedjob.SavedJob
	Job *job.Job `json:"job"`
}

// Service provides business operations for saved jobs
type Service struct {
	repo    savedjob.Repository
	jobRepo job.Repository
}

func NewService(repo savedjob.Repository, jobRepo job.Repository) *Service {
	return &Service{
		repo:    repo,
		jobRepo: jobRepo,
	}
}

// Save bookmarks an existing job. Saving twice is a conflict.
func (s *Service) Save(ctx context.Context, userID kernel.UserID, jobID kernel.JobID) (*savedjob.SavedJob, error) {
	if jobID.IsEmpty() {
		return nil, savedjob.ErrInvalidRequest().WithDetail("job_id", "required")
	}
	if _, err := s.jobRepo.GetByID(ctx, jobID); err != nil {
		return nil, err
	}

	exists, err := s.repo.Exists(ctx, userID, jobID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, savedjob.ErrAlreadySaved().WithDetail("job_id", jobID.String())
	}

	saved := savedjob.New(userID, jobID)
	if err := s.repo.Create(ctx, saved); err != nil {
		return nil, err
	}
	return saved, nil
}

// Unsave removes the bookmark
func (s *Service) Unsave(ctx context.Context, userID kernel.UserID, jobID kernel.JobID) error {
	return s.repo.Delete(ctx, userID, jobID)
}

// Toggle flips the saved state and reports the new one
func (s *Service) Toggle(ctx context.Context, userID kernel.UserID, jobID kernel.JobID) (*savedjob.ToggleResponse, error) {
	exists, err := s.repo.Exists(ctx, userID, jobID)
	if err != nil {
		return nil, err
	}

	if exists {
		if err := s.repo.Delete(ctx, userID, jobID); err != nil && !errx.IsNotFound(err) {
			return nil, err
		}
		return &savedjob.ToggleResponse{JobID: jobID, Saved: false}, nil
	}

	if _, err := s.Save(ctx, userID, jobID); err != nil {
		// lost a race with a concurrent save; the job is saved either way
		if !errx.IsConflict(err) {
			return nil, err
		}
	}
	return &savedjob.ToggleResponse{JobID: jobID, Saved: true}, nil
}

// IsSaved reports whether the user saved the job
func (s *Service) IsSaved(ctx context.Context, userID kernel.UserID, jobID kernel.JobID) (bool, error) {
	return s.repo.Exists(ctx, userID, jobID)
}

// ListByUser lists the user's saved jobs, newest first. Saved jobs whose job
// no longer exists are skipped.
func (s *Service) ListByUser(ctx context.Context, userID kernel.UserID) ([]*SavedJobWithJob, error) {
	saved, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]*SavedJobWithJob, 0, len(saved))
	for _, sj := range saved {
		j, err := s.jobRepo.GetByID(ctx, sj.JobID)
		if err != nil {
			if errx.IsNotFound(err) {
				logx.Debugf("skipping saved job %s: job %s is gone", sj.ID, sj.JobID)
				continue
			}
			return nil, err
		}
		out = append(out, &SavedJobWithJob{SavedJob: sj, Job: j})
	}
	return out, nil
}
