package companysrv

import (
	"context"
	"testing"

	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/errx"
	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/iam/user"
	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/iam/user/userinfra"
	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/kernel"
	"github.com/Brainstorm-collab/CareerFlow-sub002/recruitment/application/applicationinfra"
	"github.com/Brainstorm-collab/CareerFlow-sub002/recruitment/cascade"
	"github.com/Brainstorm-collab/CareerFlow-sub002/recruitment/company"
	"github.com/Brainstorm-collab/CareerFlow-sub002/recruitment/company/companyinfra"
	"github.com/Brainstorm-collab/CareerFlow-sub002/recruitment/job"
	"github.com/Brainstorm-collab/CareerFlow-sub002/recruitment/job/jobinfra"
	"github.com/Brainstorm-collab/CareerFlow-sub002/recruitment/savedjob/savedjobinfra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type env struct {
	svc       *CompanyService
	companies *companyinfra.MemoryCompanyRepository
	jobs      *jobinfra.MemoryJobRepository
	owner     kernel.Actor
}

func newEnv(t *testing.T) *env {
	t.Helper()
	ctx := context.Background()

	users := userinfra.NewMemoryUserRepository()
	companies := companyinfra.NewMemoryCompanyRepository()
	jobs := jobinfra.NewMemoryJobRepository()
	planner := cascade.NewPlanner(jobs, companies, users,
		applicationinfra.NewMemoryApplicationRepository(),
		savedjobinfra.NewMemorySavedJobRepository(),
		nil,
	)

	owner, err := user.NewUser(user.RegisterUserRequest{
		ExternalID: "ext_owner",
		Email:      "owner@example.com",
		Role:       user.RoleRecruiter,
	})
	require.NoError(t, err)
	require.NoError(t, users.Create(ctx, owner))

	return &env{
		svc:       NewCompanyService(companies, users, planner),
		companies: companies,
		jobs:      jobs,
		owner:     kernel.Actor{UserID: owner.ID, ExternalID: owner.ExternalID},
	}
}

func TestCreateCompany(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	c, err := e.svc.Create(ctx, e.owner, company.CreateCompanyRequest{Name: "Acme Corp"})
	require.NoError(t, err)
	assert.Equal(t, "acme-corp", c.Slug)
	assert.Equal(t, e.owner.UserID, c.CreatedBy)

	found, err := e.svc.GetBySlug(ctx, "acme-corp")
	require.NoError(t, err)
	assert.Equal(t, c.ID, found.ID)

	second, err := e.svc.Create(ctx, e.owner, company.CreateCompanyRequest{Name: "ACME  corp"})
	require.NoError(t, err)
	assert.Equal(t, "acme-corp-2", second.Slug)

	third, err := e.svc.Create(ctx, e.owner, company.CreateCompanyRequest{Name: "Acme, Corp."})
	require.NoError(t, err)
	assert.Equal(t, "acme-corp-3", third.Slug)

	found, err = e.svc.GetBySlug(ctx, "acme-corp")
	require.NoError(t, err)
	assert.Equal(t, c.ID, found.ID)

	_, err = e.svc.Create(ctx, kernel.Actor{ExternalID: "ext_anon"}, company.CreateCompanyRequest{Name: "Other"})
	assert.True(t, errx.IsType(err, errx.TypeAuthorization))

	_, err = e.svc.Create(ctx, kernel.Actor{UserID: "ghost"}, company.CreateCompanyRequest{Name: "Other"})
	assert.True(t, errx.IsNotFound(err))
}

func TestUpdateCompany(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	acme, err := e.svc.Create(ctx, e.owner, company.CreateCompanyRequest{Name: "Acme"})
	require.NoError(t, err)
	_, err = e.svc.Create(ctx, e.owner, company.CreateCompanyRequest{Name: "Globex"})
	require.NoError(t, err)

	name := "Initech"
	_, err = e.svc.Update(ctx, kernel.Actor{UserID: "intruder"}, acme.ID, company.UpdateCompanyRequest{Name: &name})
	assert.True(t, errx.IsType(err, errx.TypeAuthorization))

	updated, err := e.svc.Update(ctx, e.owner, acme.ID, company.UpdateCompanyRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "initech", updated.Slug)

	taken := "Globex"
	renamed, err := e.svc.Update(ctx, kernel.Actor{Admin: true}, acme.ID, company.UpdateCompanyRequest{Name: &taken})
	require.NoError(t, err)
	assert.Equal(t, "globex-2", renamed.Slug)

	// renaming to the same name keeps the suffixed slug it already holds
	desc := "widgets"
	same, err := e.svc.Update(ctx, e.owner, acme.ID, company.UpdateCompanyRequest{Name: &taken, Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, "globex-2", same.Slug)

	mine, err := e.svc.ListByCreator(ctx, e.owner.UserID)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	page, err := e.svc.ListActive(ctx, kernel.PaginationOptions{Page: 1, PageSize: 1})
	require.NoError(t, err)
	assert.Len(t, page.Items, 1)
	assert.Equal(t, 2, page.Page.Total)
}

func TestDeleteCompanyCascades(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	c, err := e.svc.Create(ctx, e.owner, company.CreateCompanyRequest{Name: "Acme"})
	require.NoError(t, err)
	require.NoError(t, e.jobs.Create(ctx, &job.Job{ID: "j-1", CompanyID: c.ID, RecruiterID: e.owner.ExternalID}))

	err = e.svc.Delete(ctx, kernel.Actor{UserID: "intruder"}, c.ID)
	assert.True(t, errx.IsType(err, errx.TypeAuthorization))

	require.NoError(t, e.svc.Delete(ctx, e.owner, c.ID))
	assert.Zero(t, e.companies.Count())
	assert.Zero(t, e.jobs.Count())

	assert.True(t, errx.IsNotFound(e.svc.Delete(ctx, e.owner, c.ID)))
}
