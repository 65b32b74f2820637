package cascade

import (
	"context"
	"fmt"

	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/errx"
	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/iam/user"
	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/kernel"
	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/logx"
	"github.com/Brainstorm-collab/CareerFlow-sub002/recruitment/application"
	"github.com/Brainstorm-collab/CareerFlow-sub002/recruitment/company"
	"github.com/Brainstorm-collab/CareerFlow-sub002/recruitment/job"
	"github.com/Brainstorm-collab/CareerFlow-sub002/recruitment/savedjob"
)

// Step is one idempotent delete of a plan
type Step struct {
	Name string
	Run  func(ctx context.Context) error
}

// Plan is an ordered list of steps, dependents before the root entity
type Plan struct {
	Root  string
	Steps []Step
}

// Names returns the step names in execution order
func (p *Plan) Names() []string {
	names := make([]string, len(p.Steps))
	for i, s := range p.Steps {
		names[i] = s.Name
	}
	return names
}

func (p *Plan) add(steps ...Step) {
	p.Steps = append(p.Steps, steps...)
}

// FileRemover deletes the uploaded files of a user together with their objects
type FileRemover interface {
	DeleteUserFiles(ctx context.Context, userID kernel.UserID) error
}

// Planner builds delete plans over the repositories
type Planner struct {
	jobs         job.Repository
	companies    company.Repository
	users        user.Repository
	applications application.Repository
	savedJobs    savedjob.Repository
	files        FileRemover
}

func NewPlanner(
	jobs job.Repository,
	companies company.Repository,
	users user.Repository,
	applications application.Repository,
	savedJobs savedjob.Repository,
	files FileRemover,
) *Planner {
	return &Planner{
		jobs:         jobs,
		companies:    companies,
		users:        users,
		applications: applications,
		savedJobs:    savedJobs,
		files:        files,
	}
}

// ============================================================================
// Plans
// ============================================================================

// JobPlan: applications, saved jobs, job
func (p *Planner) JobPlan(id kernel.JobID) *Plan {
	plan := &Plan{Root: "job:" + id.String()}
	p.addJobSteps(plan, id)
	return plan
}

// CompanyPlan: every job of the company (job plan each), then the company
func (p *Planner) CompanyPlan(ctx context.Context, id kernel.CompanyID) (*Plan, error) {
	plan := &Plan{Root: "company:" + id.String()}
	if err := p.addCompanySteps(ctx, plan, id, map[kernel.JobID]bool{}); err != nil {
		return nil, err
	}
	return plan, nil
}

// UserPlan: applications and saved jobs of the user, jobs posted under the
// user's external identity, companies created by the user, uploaded files,
// then the user. A user that is already gone still gets the dependent steps.
func (p *Planner) UserPlan(ctx context.Context, id kernel.UserID) (*Plan, error) {
	plan := &Plan{Root: "user:" + id.String()}

	u, err := p.users.GetByID(ctx, id)
	if err != nil && !errx.IsNotFound(err) {
		return nil, err
	}

	plan.add(
		Step{
			Name: "applications(candidate=" + id.String() + ")",
			Run: func(ctx context.Context) error {
				_, err := p.applications.DeleteByCandidate(ctx, id)
				return err
			},
		},
		Step{
			Name: "saved_jobs(user=" + id.String() + ")",
			Run: func(ctx context.Context) error {
				_, err := p.savedJobs.DeleteByUser(ctx, id)
				return err
			},
		},
	)

	seen := map[kernel.JobID]bool{}
	if u != nil && !u.ExternalID.IsEmpty() {
		posted, err := p.jobs.ListByRecruiter(ctx, u.ExternalID)
		if err != nil {
			return nil, err
		}
		for _, j := range posted {
			if !seen[j.ID] {
				seen[j.ID] = true
				p.addJobSteps(plan, j.ID)
			}
		}
	}

	owned, err := p.companies.ListByCreator(ctx, id)
	if err != nil {
		return nil, err
	}
	for _, c := range owned {
		if err := p.addCompanySteps(ctx, plan, c.ID, seen); err != nil {
			return nil, err
		}
	}

	if p.files != nil {
		plan.add(Step{
			Name: "file_uploads(user=" + id.String() + ")",
			Run: func(ctx context.Context) error {
				return p.files.DeleteUserFiles(ctx, id)
			},
		})
	}

	plan.add(Step{
		Name: "user(" + id.String() + ")",
		Run: func(ctx context.Context) error {
			return ignoreNotFound(p.users.Delete(ctx, id))
		},
	})
	return plan, nil
}

// ============================================================================
// Execution
// ============================================================================

// Execute runs the steps in order and stops at the first failure. The
// returned error names the failing step; steps already run stay applied.
func Execute(ctx context.Context, plan *Plan) error {
	for i, step := range plan.Steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := step.Run(ctx); err != nil {
			logx.WithFields(logx.Fields{
				"root":      plan.Root,
				"step":      step.Name,
				"completed": i,
				"error":     err.Error(),
			}).Error("cascade step failed")

			return errx.Wrap(err, fmt.Sprintf("cascade step %s failed", step.Name), errx.TypeInternal).
				WithDetail("step", step.Name).
				WithDetail("completed_steps", i)
		}
	}
	logx.Debugf("cascade %s completed (%d steps)", plan.Root, len(plan.Steps))
	return nil
}

// DeleteJob runs the job plan
func (p *Planner) DeleteJob(ctx context.Context, id kernel.JobID) error {
	return Execute(ctx, p.JobPlan(id))
}

// DeleteCompany builds and runs the company plan
func (p *Planner) DeleteCompany(ctx context.Context, id kernel.CompanyID) error {
	plan, err := p.CompanyPlan(ctx, id)
	if err != nil {
		return err
	}
	return Execute(ctx, plan)
}

// DeleteUser builds and runs the user plan
func (p *Planner) DeleteUser(ctx context.Context, id kernel.UserID) error {
	plan, err := p.UserPlan(ctx, id)
	if err != nil {
		return err
	}
	return Execute(ctx, plan)
}

// ============================================================================
// Helper Methods
// ============================================================================

func (p *Planner) addJobSteps(plan *Plan, id kernel.JobID) {
	plan.add(
		Step{
			Name: "applications(job=" + id.String() + ")",
			Run: func(ctx context.Context) error {
				_, err := p.applications.DeleteByJob(ctx, id)
				return err
			},
		},
		Step{
			Name: "saved_jobs(job=" + id.String() + ")",
			Run: func(ctx context.Context) error {
				_, err := p.savedJobs.DeleteByJob(ctx, id)
				return err
			},
		},
		Step{
			Name: "job(" + id.String() + ")",
			Run: func(ctx context.Context) error {
				return ignoreNotFound(p.jobs.Delete(ctx, id))
			},
		},
	)
}

func (p *Planner) addCompanySteps(ctx context.Context, plan *Plan, id kernel.CompanyID, seen map[kernel.JobID]bool) error {
	jobs, err := p.jobs.ListByCompany(ctx, id)
	if err != nil {
		return err
	}
	for _, j := range jobs {
		if seen[j.ID] {
			continue
		}
		seen[j.ID] = true
		p.addJobSteps(plan, j.ID)
	}

	plan.add(Step{
		Name: "company(" + id.String() + ")",
		Run: func(ctx context.Context) error {
			return ignoreNotFound(p.companies.Delete(ctx, id))
		},
	})
	return nil
}

func ignoreNotFound(err error) error {
	if err != nil && errx.IsNotFound(err) {
		return nil
	}
	return err
}
