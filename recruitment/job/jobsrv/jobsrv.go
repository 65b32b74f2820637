package jobsrv

import (
	"context"

	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/errx"
	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/iam/user"
	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/kernel"
	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/logx"
	"github.com/Brainstorm-collab/CareerFlow-sub002/recruitment/application"
	"github.com/Brainstorm-collab/CareerFlow-sub002/recruitment/company"
	"github.com/Brainstorm-collab/CareerFlow-sub002/recruitment/job"
	"github.com/Brainstorm-collab/CareerFlow-sub002/recruitment/savedjob"
	"golang.org/x/sync/errgroup"
)

// DefaultOverFetchMultiplier is how many candidates per requested row the
// listing pulls from the index before filtering
const DefaultOverFetchMultiplier = 2

// JobDeleter runs the delete cascade of a job
type JobDeleter interface {
	DeleteJob(ctx context.Context, id kernel.JobID) error
}

// JobService provides business operations for jobs
type JobService struct {
	jobRepo         job.Repository
	companyRepo     company.Repository
	applicationRepo application.Repository
	savedJobRepo    savedjob.Repository
	resolver        *Resolver
	deleter         JobDeleter
	overFetch       int
}

// Option configures a JobService
type Option func(*JobService)

// WithOverFetchMultiplier overrides DefaultOverFetchMultiplier. Values below 1 are ignored.
func WithOverFetchMultiplier(n int) Option {
	return func(s *JobService) {
		if n >= 1 {
			s.overFetch = n
		}
	}
}

// WithResolveConcurrency bounds the parallel lookups of the resolver
func WithResolveConcurrency(n int) Option {
	return func(s *JobService) {
		s.resolver.concurrency = max(n, 1)
	}
}

// NewJobService creates a new instance of the job service
func NewJobService(
	jobRepo job.Repository,
	companyRepo company.Repository,
	userRepo user.Repository,
	applicationRepo application.Repository,
	savedJobRepo savedjob.Repository,
	deleter JobDeleter,
	opts ...Option,
) *JobService {
	s := &JobService{
		jobRepo:         jobRepo,
		companyRepo:     companyRepo,
		applicationRepo: applicationRepo,
		savedJobRepo:    savedJobRepo,
		resolver:        NewResolver(companyRepo, userRepo, defaultResolveConcurrency),
		deleter:         deleter,
		overFetch:       DefaultOverFetchMultiplier,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ============================================================================
// Queries
// ============================================================================

// ListJobs runs the listing pipeline: fetch overFetch*limit open jobs newest
// first, resolve companies and recruiters, apply the criteria filters, then
// cut the [offset, offset+limit) window out of what is left.
func (s *JobService) ListJobs(ctx context.Context, criteria job.ListCriteria) ([]*job.EnrichedJob, error) {
	offset, limit := criteria.Window()

	candidates, err := s.jobRepo.ListOpen(ctx, s.overFetch*limit)
	if err != nil {
		return nil, err
	}

	enriched, err := s.resolver.Resolve(ctx, candidates)
	if err != nil {
		return nil, err
	}

	filtered := job.ApplyFilters(enriched, job.BuildFilters(criteria))

	logx.WithFields(logx.Fields{
		"fetched": len(candidates),
		"matched": len(filtered),
		"offset":  offset,
		"limit":   limit,
		"search":  criteria.SearchQuery,
	}).Debug("listed jobs")

	return kernel.Window(filtered, offset, limit), nil
}

// GetJobDetail returns the job with its company, recruiter, applications and
// saved jobs. A job that does not exist yields nil and no error.
func (s *JobService) GetJobDetail(ctx context.Context, id kernel.JobID) (*job.JobDetail, error) {
	j, err := s.jobRepo.GetByID(ctx, id)
	if err != nil {
		if errx.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	detail := &job.JobDetail{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		enriched, err := s.resolver.Resolve(gctx, []*job.Job{j})
		if err != nil {
			return err
		}
		detail.EnrichedJob = *enriched[0]
		return nil
	})
	g.Go(func() error {
		apps, err := s.applicationRepo.ListByJob(gctx, id)
		if err != nil {
			return err
		}
		detail.Applications = apps
		return nil
	})
	g.Go(func() error {
		saved, err := s.savedJobRepo.ListByJob(gctx, id)
		if err != nil {
			return err
		}
		detail.SavedJobs = saved
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return detail, nil
}

// GetJobsByRecruiter lists every job posted under a recruiter identity with its company
func (s *JobService) GetJobsByRecruiter(ctx context.Context, recruiterID kernel.ExternalIdentity) ([]*job.EnrichedJob, error) {
	if recruiterID.IsEmpty() {
		return nil, job.ErrInvalidRequest().WithDetail("recruiter_id", "required")
	}

	jobs, err := s.jobRepo.ListByRecruiter(ctx, recruiterID)
	if err != nil {
		return nil, err
	}
	return s.resolver.ResolveCompanies(ctx, jobs)
}

// ============================================================================
// Commands
// ============================================================================

// CreateJob posts a job for an existing company under the caller's identity
func (s *JobService) CreateJob(ctx context.Context, actor kernel.Actor, req job.CreateJobRequest) (*job.Job, error) {
	req.RecruiterID = actor.ExternalID

	if !req.CompanyID.IsEmpty() {
		if _, err := s.companyRepo.GetByID(ctx, req.CompanyID); err != nil {
			if errx.IsNotFound(err) {
				return nil, job.ErrCompanyRequired().WithDetail("company_id", req.CompanyID.String())
			}
			return nil, err
		}
	}

	newJob, err := job.NewJob(req)
	if err != nil {
		return nil, err
	}

	if err := s.jobRepo.Create(ctx, newJob); err != nil {
		return nil, err
	}

	logx.WithFields(logx.Fields{
		"job_id":       newJob.ID.String(),
		"company_id":   newJob.CompanyID.String(),
		"recruiter_id": newJob.RecruiterID.String(),
	}).Info("job created")

	return newJob, nil
}

// UpdateJob applies a partial update. Only the posting recruiter or an admin may update.
func (s *JobService) UpdateJob(ctx context.Context, actor kernel.Actor, id kernel.JobID, req job.UpdateJobRequest) (*job.Job, error) {
	existing, err := s.loadOwned(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if err := existing.ApplyUpdate(req); err != nil {
		return nil, err
	}

	if err := s.jobRepo.Update(ctx, id, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// DeleteJob removes the job with its applications and saved jobs
func (s *JobService) DeleteJob(ctx context.Context, actor kernel.Actor, id kernel.JobID) error {
	if _, err := s.loadOwned(ctx, actor, id); err != nil {
		return err
	}

	if err := s.deleter.DeleteJob(ctx, id); err != nil {
		return err
	}

	logx.Infof("job %s deleted", id)
	return nil
}

// IncrementViewCount adds one view. Missing jobs are ignored.
func (s *JobService) IncrementViewCount(ctx context.Context, id kernel.JobID) error {
	return s.jobRepo.IncrementViewCount(ctx, id)
}

// ============================================================================
// Helper Methods
// ============================================================================

func (s *JobService) loadOwned(ctx context.Context, actor kernel.Actor, id kernel.JobID) (*job.Job, error) {
	existing, err := s.jobRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsExternal(existing.RecruiterID) {
		return nil, job.ErrUnauthorizedUpdate().
			WithDetail("job_id", id.String())
	}
	return existing, nil
}
