package applicationsrv

import (
	"context"
	"time"

	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/errx"
	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/iam/user"
	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/kernel"
	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/logx"
	"github.com/Brainstorm-collab/CareerFlow-sub002/recruitment/application"
	"github.com/Brainstorm-collab/CareerFlow-sub002/recruitment/job"
)

// ApplicationWithJob is a candidate's application together with the job it
// targets. Job is nil when the job no longer exists.
type ApplicationWithJob struct {
	*application.Application
	Job *job.Job `json:"job,omitempty"`
}

// ApplicationService provides business operations for applications
type ApplicationService struct {
	applicationRepo application.Repository
	jobRepo         job.Repository
	userRepo        user.Repository
	now             func() time.Time
}

// NewApplicationService creates a new instance of the application service
func NewApplicationService(
	applicationRepo application.Repository,
	jobRepo job.Repository,
	userRepo user.Repository,
) *ApplicationService {
	return &ApplicationService{
		applicationRepo: applicationRepo,
		jobRepo:         jobRepo,
		userRepo:        userRepo,
		now:             time.Now,
	}
}

// Apply submits the caller's application to an open job. The candidate
// profile is copied onto the application as it is now.
func (s *ApplicationService) Apply(ctx context.Context, actor kernel.Actor, req application.ApplyRequest) (*application.Application, error) {
	if actor.UserID.IsEmpty() {
		return nil, application.ErrInsufficientPermissions().WithDetail("reason", "user not registered")
	}
	if req.JobID.IsEmpty() {
		return nil, application.ErrInvalidRequest().WithDetail("job_id", "required")
	}

	target, err := s.jobRepo.GetByID(ctx, req.JobID)
	if err != nil {
		return nil, err
	}
	if !target.AcceptsApplications(s.now()) {
		return nil, application.ErrJobNotOpen().
			WithDetail("job_id", req.JobID.String()).
			WithDetail("status", string(target.Status))
	}

	candidate, err := s.userRepo.GetByID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}

	if _, err := s.applicationRepo.GetByCandidateAndJob(ctx, actor.UserID, req.JobID); err == nil {
		return nil, application.ErrAlreadyApplied().WithDetail("job_id", req.JobID.String())
	} else if !errx.IsNotFound(err) {
		return nil, err
	}

	app := application.New(actor.UserID, req, snapshotOf(candidate))
	if app.ResumeURL == "" {
		app.ResumeURL = candidate.ResumeURL
	}

	if err := s.applicationRepo.Create(ctx, app); err != nil {
		return nil, err
	}

	if err := s.jobRepo.IncrementApplicationCount(ctx, req.JobID); err != nil {
		logx.WithFields(logx.Fields{
			"job_id":         req.JobID.String(),
			"application_id": app.ID.String(),
			"error":          err.Error(),
		}).Warn("failed to bump application count")
	}

	logx.Infof("application %s submitted for job %s", app.ID, req.JobID)
	return app, nil
}

// Get returns an application visible to its candidate, the job's recruiter or an admin
func (s *ApplicationService) Get(ctx context.Context, actor kernel.Actor, id kernel.ApplicationID) (*application.Application, error) {
	app, err := s.applicationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.Owns(app.CandidateID) {
		return app, nil
	}
	if err := s.requireRecruiter(ctx, actor, app.JobID); err != nil {
		return nil, err
	}
	return app, nil
}

// ListByJob lists the applications of a job for its recruiter
func (s *ApplicationService) ListByJob(ctx context.Context, actor kernel.Actor, jobID kernel.JobID) ([]*application.Application, error) {
	if err := s.requireRecruiter(ctx, actor, jobID); err != nil {
		return nil, err
	}
	return s.applicationRepo.ListByJob(ctx, jobID)
}

// ListByCandidate lists the caller's applications with their jobs
func (s *ApplicationService) ListByCandidate(ctx context.Context, candidateID kernel.UserID) ([]*ApplicationWithJob, error) {
	apps, err := s.applicationRepo.ListByCandidate(ctx, candidateID)
	if err != nil {
		return nil, err
	}

	out := make([]*ApplicationWithJob, 0, len(apps))
	for _, app := range apps {
		view := &ApplicationWithJob{Application: app}
		j, err := s.jobRepo.GetByID(ctx, app.JobID)
		switch {
		case err == nil:
			view.Job = j
		case !errx.IsNotFound(err):
			return nil, err
		}
		out = append(out, view)
	}
	return out, nil
}

// Review updates status, notes or rating. Only the job's recruiter may review.
func (s *ApplicationService) Review(ctx context.Context, actor kernel.Actor, id kernel.ApplicationID, req application.UpdateApplicationRequest) (*application.Application, error) {
	app, err := s.applicationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.requireRecruiter(ctx, actor, app.JobID); err != nil {
		return nil, err
	}

	if err := app.ApplyReview(req); err != nil {
		return nil, err
	}
	if err := s.applicationRepo.Update(ctx, id, app); err != nil {
		return nil, err
	}
	return app, nil
}

// Withdraw deletes the caller's own application
func (s *ApplicationService) Withdraw(ctx context.Context, actor kernel.Actor, id kernel.ApplicationID) error {
	app, err := s.applicationRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !actor.Owns(app.CandidateID) {
		return application.ErrInsufficientPermissions().WithDetail("application_id", id.String())
	}
	return s.applicationRepo.Delete(ctx, id)
}

// ============================================================================
// Helper Methods
// ============================================================================

func (s *ApplicationService) requireRecruiter(ctx context.Context, actor kernel.Actor, jobID kernel.JobID) error {
	if actor.Admin {
		return nil
	}
	j, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		if errx.IsNotFound(err) {
			return application.ErrInsufficientPermissions().WithDetail("job_id", jobID.String())
		}
		return err
	}
	if !actor.IsExternal(j.RecruiterID) {
		return application.ErrInsufficientPermissions().WithDetail("job_id", jobID.String())
	}
	return nil
}

func snapshotOf(u *user.User) application.CandidateSnapshot {
	return application.CandidateSnapshot{
		FullName:     u.DisplayName(),
		Email:        u.Email,
		Phone:        u.Phone,
		Location:     u.Location,
		Skills:       append([]string(nil), u.Skills...),
		Experience:   u.Experience,
		LinkedInURL:  u.LinkedInURL,
		PortfolioURL: u.PortfolioURL,
	}
}
