package savedjobapi

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
	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/kernel"
	"github.com/Brainstorm-collab/CareerFlow-sub002/recruitment/job"
	"github.com/Brainstorm-collab/CareerFlow-sub002/recruitment/job/jobinfra"
	"github.com/Brainstorm-collab/CareerFlow-sub002/recruitment/savedjob"
	"github.com/Brainstorm-collab/CareerFlow-sub002/recruitment/savedjob/savedjobinfra"
	"github.com/Brainstorm-collab/CareerFlow-sub002/recruitment/savedjob/savedjobsrv"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedResolver struct{}

func (fixedResolver) ResolveIdentity(_ context.Context, ext kernel.ExternalIdentity) (kernel.UserID, string, error) {
	if ext == "ghost" {
		return "", "", nil
	}
	return kernel.UserID("u-" + ext.String()), auth.RoleCandidate, nil
}

func TestSavedJobRoutes(t *testing.T) {
	jobs := jobinfra.NewMemoryJobRepository()
	require.NoError(t, jobs.Create(context.Background(), &job.Job{ID: "j-1", Status: job.JobStatusOpen, IsOpen: true}))
	service := savedjobsrv.NewService(savedjobinfra.NewMemorySavedJobRepository(), jobs)

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
	RegisterRoutes(app, NewHandlers(service), auth.NewTokenMiddleware(tokens, fixedResolver{}))

	call := func(method, path, subject, body string) (int, []byte) {
		var reader io.Reader
		if body != "" {
			reader = strings.NewReader(body)
		}
		req := httptest.NewRequest(method, path, reader)
		req.Header.Set("Content-Type", "application/json")
		token, err := tokens.GenerateToken(kernel.ExternalIdentity(subject), auth.Claims{})
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req)
		require.NoError(t, err)
		raw, _ := io.ReadAll(resp.Body)
		return resp.StatusCode, raw
	}

	status, _ := call(http.MethodPost, "/api/saved-jobs", "cand", `{"job_id":"j-1"}`)
	assert.Equal(t, http.StatusCreated, status)

	status, _ = call(http.MethodPost, "/api/saved-jobs", "cand", `{"job_id":"j-1"}`)
	assert.Equal(t, http.StatusConflict, status)

	status, body := call(http.MethodGet, "/api/saved-jobs/j-1", "cand", "")
	require.Equal(t, http.StatusOK, status)
	var is savedjob.IsSavedResponse
	require.NoError(t, json.Unmarshal(body, &is))
	assert.True(t, is.Saved)

	status, body = call(http.MethodPost, "/api/saved-jobs/toggle", "cand", `{"job_id":"j-1"}`)
	require.Equal(t, http.StatusOK, status)
	var toggled savedjob.ToggleResponse
	require.NoError(t, json.Unmarshal(body, &toggled))
	assert.False(t, toggled.Saved)

	status, body = call(http.MethodGet, "/api/saved-jobs", "cand", "")
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `[]`, string(body))

	status, _ = call(http.MethodDelete, "/api/saved-jobs/j-1", "cand", "")
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = call(http.MethodGet, "/api/saved-jobs", "ghost", "")
	assert.Equal(t, http.StatusForbidden, status)
}
