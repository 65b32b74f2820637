package main

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Brainstorm-collab/CareerFlow-sub002/internal/config"
	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/iam/auth"
	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/kernel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memoryConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Port:  "0",
		Store: config.StoreMemory,
		Storage: config.StorageConfig{
			Driver:   config.ObjectStoreLocal,
			LocalDir: t.TempDir(),
			BaseURL:  "/files",
		},
		Auth:    config.AuthConfig{JWTSecret: "test-secret"},
		HTTP:    config.HTTPConfig{CORSAllowOrigins: "*", ViewRatePerMinute: 10},
		Listing: config.ListingConfig{OverFetchMultiplier: 2},
		Cleanup: config.CleanupConfig{Workers: 1},
	}
}

func TestServerEndToEnd(t *testing.T) {
	container, err := NewContainer(context.Background(), memoryConfig(t))
	require.NoError(t, err)
	t.Cleanup(container.Close)
	app := newApp(container)

	call := func(method, path, subject string, claims auth.Claims, body string) (int, map[string]any) {
		var reader io.Reader
		if body != "" {
			reader = strings.NewReader(body)
		}
		req := httptest.NewRequest(method, path, reader)
		req.Header.Set("Content-Type", "application/json")
		if subject != "" {
			token, err := container.TokenService.GenerateToken(kernel.ExternalIdentity(subject), claims)
			require.NoError(t, err)
			req.Header.Set("Authorization", "Bearer "+token)
		}
		resp, err := app.Test(req, int((5 * time.Second).Milliseconds()))
		require.NoError(t, err)
		raw, _ := io.ReadAll(resp.Body)
		var out map[string]any
		_ = json.Unmarshal(raw, &out)
		return resp.StatusCode, out
	}

	status, health := call(http.MethodGet, "/health", "", auth.Claims{}, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "memory", health["store"])

	recruiter := auth.Claims{Email: "rec@example.com", GivenName: "Rita"}
	status, _ = call(http.MethodPost, "/api/users/sync", "ext_rec", recruiter, `{"role":"recruiter"}`)
	require.Equal(t, http.StatusCreated, status)

	status, created := call(http.MethodPost, "/api/companies", "ext_rec", recruiter, `{"name":"Acme"}`)
	require.Equal(t, http.StatusCreated, status)
	companyID := created["id"].(string)

	status, posted := call(http.MethodPost, "/api/jobs", "ext_rec", recruiter,
		`{"title":"Backend Engineer","company_id":"`+companyID+`","job_type":"full-time","experience_level":"senior","location":"Seattle, WA"}`)
	require.Equal(t, http.StatusCreated, status, posted)

	req := httptest.NewRequest(http.MethodGet, "/api/jobs?location=seattle", nil)
	resp, err := app.Test(req, int((5 * time.Second).Milliseconds()))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var listing []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&listing))
	require.Len(t, listing, 1)
	assert.Equal(t, "Backend Engineer", listing[0]["title"])

	status, notFound := call(http.MethodGet, "/api/companies/missing", "", auth.Claims{}, "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "COMPANY_NOT_FOUND", notFound["code"])

	status, _ = call(http.MethodGet, "/api/nowhere", "", auth.Claims{}, "")
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = call(http.MethodDelete, "/api/companies/"+companyID, "ext_rec", recruiter, "")
	assert.Equal(t, http.StatusNoContent, status)
	assert.Zero(t, container.JobRepo.(interface{ Count() int }).Count())
}
