package jobsrv

import (
	"context"
	"sync"

	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/errx"
	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/iam/user"
	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/kernel"
	"github.com/Brainstorm-collab/CareerFlow-sub002/recruitment/company"
	"github.com/Brainstorm-collab/CareerFlow-sub002/recruitment/job"
	"golang.org/x/sync/errgroup"
)

const defaultResolveConcurrency = 8

// Resolver attaches companies and recruiters to a batch of jobs with one
// lookup per distinct reference.
type Resolver struct {
	companies   company.Repository
	users       user.Repository
	concurrency int
}

func NewResolver(companies company.Repository, users user.Repository, concurrency int) *Resolver {
	if concurrency <= 0 {
		concurrency = defaultResolveConcurrency
	}
	return &Resolver{
		companies:   companies,
		users:       users,
		concurrency: concurrency,
	}
}

// Resolve enriches jobs with their company and recruiter. References that no
// longer resolve are left nil; any other lookup error fails the batch.
func (r *Resolver) Resolve(ctx context.Context, jobs []*job.Job) ([]*job.EnrichedJob, error) {
	return r.resolve(ctx, jobs, true)
}

// ResolveCompanies enriches jobs with their company only
func (r *Resolver) ResolveCompanies(ctx context.Context, jobs []*job.Job) ([]*job.EnrichedJob, error) {
	return r.resolve(ctx, jobs, false)
}

func (r *Resolver) resolve(ctx context.Context, jobs []*job.Job, withRecruiters bool) ([]*job.EnrichedJob, error) {
	companyIDs := make(map[kernel.CompanyID]struct{})
	recruiterIDs := make(map[kernel.ExternalIdentity]struct{})
	for _, j := range jobs {
		if !j.CompanyID.IsEmpty() {
			companyIDs[j.CompanyID] = struct{}{}
		}
		if withRecruiters && !j.RecruiterID.IsEmpty() {
			recruiterIDs[j.RecruiterID] = struct{}{}
		}
	}

	var (
		mu         sync.Mutex
		companies  = make(map[kernel.CompanyID]*company.Company, len(companyIDs))
		recruiters = make(map[kernel.ExternalIdentity]*user.User, len(recruiterIDs))
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)

	for id := range companyIDs {
		id := id
		g.Go(func() error {
			c, err := r.companies.GetByID(gctx, id)
			if err != nil {
				if errx.IsNotFound(err) {
					return nil
				}
				return errx.Wrap(err, "failed to resolve company", errx.TypeInternal).
					WithDetail("company_id", id.String())
			}
			mu.Lock()
			companies[id] = c
			mu.Unlock()
			return nil
		})
	}

	for ext := range recruiterIDs {
		ext := ext
		g.Go(func() error {
			u, err := r.users.GetByExternalID(gctx, ext)
			if err != nil {
				if errx.IsNotFound(err) {
					return nil
				}
				return errx.Wrap(err, "failed to resolve recruiter", errx.TypeInternal).
					WithDetail("recruiter_id", ext.String())
			}
			mu.Lock()
			recruiters[ext] = u
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	enriched := make([]*job.EnrichedJob, len(jobs))
	for i, j := range jobs {
		enriched[i] = &job.EnrichedJob{
			Job:       j,
			Company:   companies[j.CompanyID],
			Recruiter: recruiters[j.RecruiterID],
		}
	}
	return enriched, nil
}
