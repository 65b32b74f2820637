package cascade

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/errx"
	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/iam/user"
	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/iam/user/userinfra"
	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/kernel"
	"github.com/Brainstorm-collab/CareerFlow-sub002/recruitment/application"
	"github.com/Brainstorm-collab/CareerFlow-sub002/recruitment/application/applicationinfra"
	"github.com/Brainstorm-collab/CareerFlow-sub002/recruitment/company"
	"github.com/Brainstorm-collab/CareerFlow-sub002/recruitment/company/companyinfra"
	"github.com/Brainstorm-collab/CareerFlow-sub002/recruitment/job"
	"github.com/Brainstorm-collab/CareerFlow-sub002/recruitment/job/jobinfra"
	"github.com/Brainstorm-collab/CareerFlow-sub002/recruitment/savedjob"
	"github.com/Brainstorm-collab/CareerFlow-sub002/recruitment/savedjob/savedjobinfra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	jobs         *jobinfra.MemoryJobRepository
	companies    *companyinfra.MemoryCompanyRepository
	users        *userinfra.MemoryUserRepository
	applications *applicationinfra.MemoryApplicationRepository
	savedJobs    *savedjobinfra.MemorySavedJobRepository
	files        *recordingFiles
}

type recordingFiles struct {
	deleted []kernel.UserID
}

func (r *recordingFiles) DeleteUserFiles(_ context.Context, userID kernel.UserID) error {
	r.deleted = append(r.deleted, userID)
	return nil
}

func newFixture() *fixture {
	return &fixture{
		jobs:         jobinfra.NewMemoryJobRepository(),
		companies:    companyinfra.NewMemoryCompanyRepository(),
		users:        userinfra.NewMemoryUserRepository(),
		applications: applicationinfra.NewMemoryApplicationRepository(),
		savedJobs:    savedjobinfra.NewMemorySavedJobRepository(),
		files:        &recordingFiles{},
	}
}

func (f *fixture) planner() *Planner {
	return NewPlanner(f.jobs, f.companies, f.users, f.applications, f.savedJobs, f.files)
}

// seedCompany creates a company with two jobs, each with one application and one saved job
func (f *fixture) seedCompany(t *testing.T, ctx context.Context) {
	t.Helper()
	now := time.Now()

	require.NoError(t, f.users.Create(ctx, &user.User{ID: "u-rec", ExternalID: "ext_rec", Email: "rec@example.com", Role: user.RoleRecruiter}))
	require.NoError(t, f.users.Create(ctx, &user.User{ID: "u-cand", ExternalID: "ext_cand", Email: "cand@example.com", Role: user.RoleCandidate}))
	require.NoError(t, f.companies.Create(ctx, &company.Company{ID: "c-1", Name: "Acme", Slug: "acme", CreatedBy: "u-rec", IsActive: true}))

	for _, id := range []kernel.JobID{"j-1", "j-2"} {
		require.NoError(t, f.jobs.Create(ctx, &job.Job{
			ID: id, Title: "Engineer", Status: job.JobStatusOpen, IsOpen: true,
			RecruiterID: "ext_rec", CompanyID: "c-1", CreatedAt: now,
		}))
		require.NoError(t, f.applications.Create(ctx, &application.Application{
			ID: kernel.ApplicationID("a-" + id), CandidateID: "u-cand", JobID: id, AppliedAt: now,
		}))
		require.NoError(t, f.savedJobs.Create(ctx, savedjob.New("u-cand", id)))
	}
}

func TestJobPlanOrder(t *testing.T) {
	f := newFixture()
	plan := f.planner().JobPlan("j-1")
	assert.Equal(t, []string{"applications(job=j-1)", "saved_jobs(job=j-1)", "job(j-1)"}, plan.Names())
}

func TestDeleteCompanyRemovesEverything(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.seedCompany(t, ctx)
	p := f.planner()

	plan, err := p.CompanyPlan(ctx, "c-1")
	require.NoError(t, err)
	assert.Len(t, plan.Steps, 7)
	assert.Equal(t, "company(c-1)", plan.Steps[len(plan.Steps)-1].Name)

	require.NoError(t, Execute(ctx, plan))
	assert.Zero(t, f.jobs.Count())
	assert.Zero(t, f.applications.Count())
	assert.Zero(t, f.savedJobs.Count())
	assert.Zero(t, f.companies.Count())
	assert.Equal(t, 2, f.users.Count())

	// rerun of a finished plan is a no-op
	require.NoError(t, Execute(ctx, plan))
	require.NoError(t, p.DeleteCompany(ctx, "c-1"))
}

func TestDeleteUserRemovesPostedJobsAndCompanies(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.seedCompany(t, ctx)
	// a job the recruiter posted for someone else's company
	require.NoError(t, f.companies.Create(ctx, &company.Company{ID: "c-2", Name: "Other", Slug: "other", CreatedBy: "u-cand"}))
	require.NoError(t, f.jobs.Create(ctx, &job.Job{ID: "j-3", RecruiterID: "ext_rec", CompanyID: "c-2", Status: job.JobStatusOpen}))

	p := f.planner()
	plan, err := p.UserPlan(ctx, "u-rec")
	require.NoError(t, err)

	names := plan.Names()
	assert.Equal(t, "applications(candidate=u-rec)", names[0])
	assert.Equal(t, "user(u-rec)", names[len(names)-1])
	assert.Equal(t, "file_uploads(user=u-rec)", names[len(names)-2])

	require.NoError(t, Execute(ctx, plan))
	assert.Zero(t, f.jobs.Count())
	assert.Equal(t, 1, f.companies.Count())
	assert.Equal(t, 1, f.users.Count())
	assert.Equal(t, []kernel.UserID{"u-rec"}, f.files.deleted)

	// the user is gone; a second run still succeeds
	require.NoError(t, p.DeleteUser(ctx, "u-rec"))
}

func TestDeleteUserAsCandidate(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.seedCompany(t, ctx)

	require.NoError(t, f.planner().DeleteUser(ctx, "u-cand"))
	assert.Zero(t, f.applications.Count())
	assert.Zero(t, f.savedJobs.Count())
	assert.Equal(t, 2, f.jobs.Count())
	assert.Equal(t, 1, f.users.Count())
}

type flakySavedJobs struct {
	*savedjobinfra.MemorySavedJobRepository
	failures int
}

func (r *flakySavedJobs) DeleteByJob(ctx context.Context, jobID kernel.JobID) (int64, error) {
	if r.failures > 0 {
		r.failures--
		return 0, errors.New("connection reset")
	}
	return r.MemorySavedJobRepository.DeleteByJob(ctx, jobID)
}

func TestExecuteStopsAtFailingStepAndRerunCompletes(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.seedCompany(t, ctx)
	saved := &flakySavedJobs{MemorySavedJobRepository: f.savedJobs, failures: 1}
	p := NewPlanner(f.jobs, f.companies, f.users, f.applications, saved, f.files)

	err := p.DeleteJob(ctx, "j-1")
	require.Error(t, err)
	assert.True(t, errx.IsType(err, errx.TypeInternal))
	assert.Contains(t, err.Error(), "saved_jobs(job=j-1)")

	// the first step ran, the job itself is still there
	assert.Equal(t, 1, f.applications.Count())
	assert.Equal(t, 2, f.jobs.Count())

	require.NoError(t, p.DeleteJob(ctx, "j-1"))
	assert.Equal(t, 1, f.jobs.Count())
	assert.Equal(t, 1, f.savedJobs.Count())
}
