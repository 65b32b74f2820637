package companyapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/errx"
	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/iam/auth"
	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/iam/user"
	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/iam/user/userinfra"
	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/kernel"
	"github.com/Brainstorm-collab/CareerFlow-sub002/recruitment/company"
	"github.com/Brainstorm-collab/CareerFlow-sub002/recruitment/company/companyinfra"
	"github.com/Brainstorm-collab/CareerFlow-sub002/recruitment/company/companysrv"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type repoResolver struct{ users user.Repository }

func (r repoResolver) ResolveIdentity(ctx context.Context, ext kernel.ExternalIdentity) (kernel.UserID, string, error) {
	u, err := r.users.GetByExternalID(ctx, ext)
	if err != nil {
		if errx.IsNotFound(err) {
			return "", "", nil
		}
		return "", "", err
	}
	return u.ID, string(u.Role), nil
}

type repoDeleter struct{ companies company.Repository }

func (d repoDeleter) DeleteCompany(ctx context.Context, id kernel.CompanyID) error {
	return d.companies.Delete(ctx, id)
}

func TestCompanyRoutes(t *testing.T) {
	ctx := context.Background()
	users := userinfra.NewMemoryUserRepository()
	for _, req := range []user.RegisterUserRequest{
		{ExternalID: "ext_rec", Email: "rec@example.com", Role: user.RoleRecruiter},
		{ExternalID: "ext_other", Email: "other@example.com", Role: user.RoleRecruiter},
		{ExternalID: "ext_cand", Email: "cand@example.com"},
	} {
		u, err := user.NewUser(req)
		require.NoError(t, err)
		require.NoError(t, users.Create(ctx, u))
	}

	companies := companyinfra.NewMemoryCompanyRepository()
	service := companysrv.NewCompanyService(companies, users, repoDeleter{companies: companies})
	tokens := auth.NewJWTService("secret", "", time.Minute)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var e *errx.Error
			if errors.As(err, &e) {
				return c.Status(e.HTTPStatus).JSON(e.ToHTTPResponse())
			}
			return c.SendStatus(http.StatusInternalServerError)
		},
	})
	RegisterRoutes(app, NewHandlers(service), auth.NewTokenMiddleware(tokens, repoResolver{users: users}))

	call := func(method, path, subject, body string) (int, []byte) {
		var reader io.Reader
		if body != "" {
			reader = strings.NewReader(body)
		}
		req := httptest.NewRequest(method, path, reader)
		req.Header.Set("Content-Type", "application/json")
		if subject != "" {
			token, err := tokens.GenerateToken(kernel.ExternalIdentity(subject), auth.Claims{})
			require.NoError(t, err)
			req.Header.Set("Authorization", "Bearer "+token)
		}
		resp, err := app.Test(req)
		require.NoError(t, err)
		raw, _ := io.ReadAll(resp.Body)
		return resp.StatusCode, raw
	}

	status, _ := call(http.MethodPost, "/api/companies", "", `{"name":"Acme"}`)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = call(http.MethodPost, "/api/companies", "ext_cand", `{"name":"Acme"}`)
	assert.Equal(t, http.StatusForbidden, status)

	status, body := call(http.MethodPost, "/api/companies", "ext_rec", `{"name":"Acme Labs"}`)
	require.Equal(t, http.StatusCreated, status, string(body))
	var created company.Company
	require.NoError(t, json.Unmarshal(body, &created))
	assert.Equal(t, "acme-labs", created.Slug)

	status, body = call(http.MethodGet, "/api/companies/slug/acme-labs", "", "")
	require.Equal(t, http.StatusOK, status)
	var bySlug company.Company
	require.NoError(t, json.Unmarshal(body, &bySlug))
	assert.Equal(t, created.ID, bySlug.ID)

	status, _ = call(http.MethodGet, "/api/companies/missing", "", "")
	assert.Equal(t, http.StatusNotFound, status)

	status, body = call(http.MethodGet, "/api/companies", "", "")
	require.Equal(t, http.StatusOK, status)
	var page company.PaginatedCompaniesResponse
	require.NoError(t, json.Unmarshal(body, &page))
	assert.Len(t, page.Items, 1)

	status, body = call(http.MethodGet, "/api/companies/mine", "ext_rec", "")
	require.Equal(t, http.StatusOK, status)
	var mine []company.Company
	require.NoError(t, json.Unmarshal(body, &mine))
	assert.Len(t, mine, 1)

	status, _ = call(http.MethodPatch, "/api/companies/"+created.ID.String(), "ext_other", `{"name":"Hijacked"}`)
	assert.Equal(t, http.StatusForbidden, status)

	status, body = call(http.MethodPatch, "/api/companies/"+created.ID.String(), "ext_rec", `{"name":"Acme Research"}`)
	require.Equal(t, http.StatusOK, status)
	var updated company.Company
	require.NoError(t, json.Unmarshal(body, &updated))
	assert.Equal(t, "acme-research", updated.Slug)

	status, _ = call(http.MethodDelete, "/api/companies/"+created.ID.String(), "ext_rec", "")
	assert.Equal(t, http.StatusNoContent, status)
	assert.Zero(t, companies.Count())
}
