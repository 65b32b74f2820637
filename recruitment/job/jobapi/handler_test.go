package jobapi

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
	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/iam/user/userinfra"
	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/kernel"
	"github.com/Brainstorm-collab/CareerFlow-sub002/recruitment/application"
	"github.com/Brainstorm-collab/CareerFlow-sub002/recruitment/application/applicationinfra"
	"github.com/Brainstorm-collab/CareerFlow-sub002/recruitment/cascade"
	"github.com/Brainstorm-collab/CareerFlow-sub002/recruitment/company"
	"github.com/Brainstorm-collab/CareerFlow-sub002/recruitment/company/companyinfra"
	"github.com/Brainstorm-collab/CareerFlow-sub002/recruitment/job"
	"github.com/Brainstorm-collab/CareerFlow-sub002/recruitment/job/jobinfra"
	"github.com/Brainstorm-collab/CareerFlow-sub002/recruitment/job/jobsrv"
	"github.com/Brainstorm-collab/CareerFlow-sub002/recruitment/savedjob"
	"github.com/Brainstorm-collab/CareerFlow-sub002/recruitment/savedjob/savedjobinfra"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type roleResolver map[kernel.ExternalIdentity]string

func (r roleResolver) ResolveIdentity(_ context.Context, ext kernel.ExternalIdentity) (kernel.UserID, string, error) {
	role, ok := r[ext]
	if !ok {
		return "", "", nil
	}
	return kernel.UserID("u-" + ext.String()), role, nil
}

type testServer struct {
	app    *fiber.App
	jobs   *jobinfra.MemoryJobRepository
	apps   *applicationinfra.MemoryApplicationRepository
	saved  *savedjobinfra.MemorySavedJobRepository
	tokens *auth.JWTService
}

func newTestServer(t *testing.T, viewsPerMinute int) *testServer {
	t.Helper()
	jobs := jobinfra.NewMemoryJobRepository()
	companies := companyinfra.NewMemoryCompanyRepository()
	users := userinfra.NewMemoryUserRepository()
	apps := applicationinfra.NewMemoryApplicationRepository()
	saved := savedjobinfra.NewMemorySavedJobRepository()

	planner := cascade.NewPlanner(jobs, companies, users, apps, saved, nil)
	service := jobsrv.NewJobService(jobs, companies, users, apps, saved, planner)

	tokens := auth.NewJWTService("test-secret", "", time.Minute)
	middleware := auth.NewTokenMiddleware(tokens, roleResolver{
		"rec_1":  auth.RoleRecruiter,
		"cand_1": auth.RoleCandidate,
		"adm_1":  auth.RoleAdmin,
	})

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var e *errx.Error
			if errors.As(err, &e) {
				return c.Status(e.HTTPStatus).JSON(e.ToHTTPResponse())
			}
			return c.SendStatus(http.StatusInternalServerError)
		},
	})
	RegisterRoutes(app, NewHandlers(service, NewViewLimiter(viewsPerMinute)), middleware)

	ctx := context.Background()
	require.NoError(t, companies.Create(ctx, &company.Company{ID: "c-1", Name: "Acme", Slug: "acme", IsActive: true}))
	base := time.Now().Add(-time.Hour)
	for i, id := range []kernel.JobID{"j-1", "j-2", "j-3"} {
		require.NoError(t, jobs.Create(ctx, &job.Job{
			ID: id, Title: "Engineer", Status: job.JobStatusOpen, IsOpen: true,
			RemoteWork: i%2 == 0, JobType: job.JobTypeFullTime,
			CompanyID: "c-1", RecruiterID: "rec_1", CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	return &testServer{app: app, jobs: jobs, apps: apps, saved: saved, tokens: tokens}
}

func (s *testServer) do(t *testing.T, method, path, subject, body string) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if subject != "" {
		token, err := s.tokens.GenerateToken(kernel.ExternalIdentity(subject), auth.Claims{})
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.app.Test(req)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func TestListJobsQueryParsing(t *testing.T) {
	s := newTestServer(t, 0)

	tests := []struct {
		name   string
		query  string
		status int
		count  int
	}{
		{name: "defaults", query: "", status: http.StatusOK, count: 3},
		{name: "limit", query: "?limit=2", status: http.StatusOK, count: 2},
		{name: "remote all", query: "?remote_work=all", status: http.StatusOK, count: 3},
		{name: "remote true", query: "?remote_work=true", status: http.StatusOK, count: 2},
		{name: "company name", query: "?company_name=acm", status: http.StatusOK, count: 3},
		{name: "offset past end", query: "?offset=10", status: http.StatusOK, count: 0},
		{name: "bad limit", query: "?limit=ten", status: http.StatusBadRequest},
		{name: "bad remote", query: "?remote_work=maybe", status: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := s.do(t, http.MethodGet, "/api/jobs"+tt.query, "", "")
			require.Equal(t, tt.status, resp.StatusCode, string(body))
			if tt.status != http.StatusOK {
				return
			}
			var items []map[string]any
			require.NoError(t, json.Unmarshal(body, &items))
			assert.Len(t, items, tt.count)
		})
	}
}

func TestGetJobDetailMissingIsNull(t *testing.T) {
	s := newTestServer(t, 0)

	resp, body := s.do(t, http.MethodGet, "/api/jobs/nope", "", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "null", strings.TrimSpace(string(body)))

	resp, body = s.do(t, http.MethodGet, "/api/jobs/j-1", "", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var detail map[string]any
	require.NoError(t, json.Unmarshal(body, &detail))
	assert.Equal(t, "j-1", detail["id"])
	assert.NotNil(t, detail["company"])
}

func TestGetJobDetailHidesApplicantsFromOthers(t *testing.T) {
	s := newTestServer(t, 0)
	ctx := context.Background()

	require.NoError(t, s.apps.Create(ctx, &application.Application{
		ID: "a-1", CandidateID: "u-cand_1", JobID: "j-1", Status: application.ApplicationStatusPending,
		Candidate: application.CandidateSnapshot{FullName: "Jane Roe", Email: "jane@example.com", Phone: "555-0100"},
		AppliedAt: time.Now(),
	}))
	require.NoError(t, s.saved.Create(ctx, &savedjob.SavedJob{ID: "s-1", UserID: "u-cand_1", JobID: "j-1", SavedAt: time.Now()}))

	tests := []struct {
		name    string
		subject string
		visible int
	}{
		{name: "anonymous", subject: "", visible: 0},
		{name: "candidate", subject: "cand_1", visible: 0},
		{name: "other recruiter", subject: "rec_2", visible: 0},
		{name: "posting recruiter", subject: "rec_1", visible: 1},
		{name: "admin", subject: "adm_1", visible: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := s.do(t, http.MethodGet, "/api/jobs/j-1", tt.subject, "")
			require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

			var detail struct {
				ID           string           `json:"id"`
				Applications []map[string]any `json:"applications"`
				SavedJobs    []map[string]any `json:"saved_jobs"`
			}
			require.NoError(t, json.Unmarshal(body, &detail))
			assert.Equal(t, "j-1", detail.ID)
			assert.Len(t, detail.Applications, tt.visible)
			assert.Len(t, detail.SavedJobs, tt.visible)
			if tt.visible == 0 {
				assert.NotContains(t, string(body), "jane@example.com")
			}
		})
	}
}

func TestCreateJobAuthorization(t *testing.T) {
	s := newTestServer(t, 0)
	payload := `{"title":"Data Engineer","description":"pipelines","job_type":"full-time","experience_level":"mid","company_id":"c-1"}`

	resp, _ := s.do(t, http.MethodPost, "/api/jobs", "", payload)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = s.do(t, http.MethodPost, "/api/jobs", "cand_1", payload)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, body := s.do(t, http.MethodPost, "/api/jobs", "rec_1", payload)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	var created job.JobIDResponse
	require.NoError(t, json.Unmarshal(body, &created))
	stored, err := s.jobs.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, kernel.ExternalIdentity("rec_1"), stored.RecruiterID)
	assert.Equal(t, "data-engineer", stored.Slug)
}

func TestUpdateAndDeleteJob(t *testing.T) {
	s := newTestServer(t, 0)

	resp, _ := s.do(t, http.MethodPatch, "/api/jobs/j-1", "rec_1", `{"status":"closed"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	stored, err := s.jobs.GetByID(context.Background(), "j-1")
	require.NoError(t, err)
	assert.False(t, stored.IsOpen)

	resp, _ = s.do(t, http.MethodPatch, "/api/jobs/j-1", "rec_1", `{"status":"archived"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = s.do(t, http.MethodDelete, "/api/jobs/j-1", "rec_1", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 2, s.jobs.Count())

	resp, _ = s.do(t, http.MethodDelete, "/api/jobs/j-1", "rec_1", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestIncrementViewCountRateLimited(t *testing.T) {
	s := newTestServer(t, 2)

	for i := 0; i < 2; i++ {
		resp, _ := s.do(t, http.MethodPost, "/api/jobs/j-1/views", "", "")
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	}
	resp, _ := s.do(t, http.MethodPost, "/api/jobs/j-1/views", "", "")
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)

	// identified callers get their own bucket
	resp, _ = s.do(t, http.MethodPost, "/api/jobs/j-1/views", "cand_1", "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	stored, err := s.jobs.GetByID(context.Background(), "j-1")
	require.NoError(t, err)
	assert.Equal(t, 3, stored.ViewCount)

	resp, _ = s.do(t, http.MethodPost, "/api/jobs/missing/views", "cand_1", "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestViewLimiterRefills(t *testing.T) {
	l := NewViewLimiter(60)
	now := time.Now()
	l.now = func() time.Time { return now }

	for i := 0; i < 60; i++ {
		require.True(t, l.Allow("a"))
	}
	assert.False(t, l.Allow("a"))
	assert.True(t, l.Allow("b"))

	now = now.Add(time.Second)
	assert.True(t, l.Allow("a"))

	assert.True(t, NewViewLimiter(0).Allow("anyone"))
}
