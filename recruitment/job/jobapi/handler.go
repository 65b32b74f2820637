package jobapi

import (
	"strconv"
	"strings"

	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/iam/auth"
	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/kernel"
	"github.com/Brainstorm-collab/CareerFlow-sub002/recruitment/application"
	"github.com/Brainstorm-collab/CareerFlow-sub002/recruitment/job"
	"github.com/Brainstorm-collab/CareerFlow-sub002/recruitment/job/jobsrv"
	"github.com/Brainstorm-collab/CareerFlow-sub002/recruitment/savedjob"
	"github.com/gofiber/fiber/v2"
)

// Handlers provides HTTP handlers for job operations
type Handlers struct {
	service *jobsrv.JobService
	views   *ViewLimiter
}

// NewHandlers creates a new job handlers instance
func NewHandlers(service *jobsrv.JobService, views *ViewLimiter) *Handlers {
	if views == nil {
		views = NewViewLimiter(0)
	}
	return &Handlers{
		service: service,
		views:   views,
	}
}

// ListJobs runs the listing pipeline
// GET /api/jobs
func (h *Handlers) ListJobs(c *fiber.Ctx) error {
	criteria, err := parseListCriteria(c)
	if err != nil {
		return err
	}

	jobs, err := h.service.ListJobs(c.UserContext(), criteria)
	if err != nil {
		return err
	}
	return c.JSON(jobs)
}

// GetJobDetail returns the job detail, or null when the job does not exist
// GET /api/jobs/:id
func (h *Handlers) GetJobDetail(c *fiber.Ctx) error {
	jobID := kernel.JobID(c.Params("id"))
	if jobID.IsEmpty() {
		return job.ErrInvalidRequest().WithDetail("id", "missing or empty")
	}

	detail, err := h.service.GetJobDetail(c.UserContext(), jobID)
	if err != nil {
		return err
	}
	if detail != nil && !canSeeApplicants(c, detail.RecruiterID) {
		detail.Applications = []*application.Application{}
		detail.SavedJobs = []*savedjob.SavedJob{}
	}
	return c.JSON(detail)
}

// canSeeApplicants is true for the posting recruiter and admins
func canSeeApplicants(c *fiber.Ctx, recruiterID kernel.ExternalIdentity) bool {
	actor, err := auth.Actor(c)
	if err != nil {
		return false
	}
	return actor.IsExternal(recruiterID)
}

// GetJobsByRecruiter lists the jobs posted by a recruiter identity
// GET /api/jobs/by-recruiter/:recruiterId
func (h *Handlers) GetJobsByRecruiter(c *fiber.Ctx) error {
	recruiterID := kernel.NewExternalIdentity(c.Params("recruiterId"))

	jobs, err := h.service.GetJobsByRecruiter(c.UserContext(), recruiterID)
	if err != nil {
		return err
	}
	return c.JSON(jobs)
}

// CreateJob posts a job
// POST /api/jobs
func (h *Handlers) CreateJob(c *fiber.Ctx) error {
	actor, err := auth.Actor(c)
	if err != nil {
		return err
	}

	var req job.CreateJobRequest
	if err := c.BodyParser(&req); err != nil {
		return job.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	created, err := h.service.CreateJob(c.UserContext(), actor, req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(job.JobIDResponse{ID: created.ID})
}

// UpdateJob applies a partial update
// PATCH /api/jobs/:id
func (h *Handlers) UpdateJob(c *fiber.Ctx) error {
	actor, err := auth.Actor(c)
	if err != nil {
		return err
	}

	var req job.UpdateJobRequest
	if err := c.BodyParser(&req); err != nil {
		return job.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	updated, err := h.service.UpdateJob(c.UserContext(), actor, kernel.JobID(c.Params("id")), req)
	if err != nil {
		return err
	}
	return c.JSON(job.JobIDResponse{ID: updated.ID})
}

// DeleteJob removes a job with its applications and saved jobs
// DELETE /api/jobs/:id
func (h *Handlers) DeleteJob(c *fiber.Ctx) error {
	actor, err := auth.Actor(c)
	if err != nil {
		return err
	}

	jobID := kernel.JobID(c.Params("id"))
	if err := h.service.DeleteJob(c.UserContext(), actor, jobID); err != nil {
		return err
	}
	return c.JSON(job.JobIDResponse{ID: jobID})
}

// IncrementViewCount records one view
// POST /api/jobs/:id/views
func (h *Handlers) IncrementViewCount(c *fiber.Ctx) error {
	if !h.views.Allow(clientKey(c)) {
		return job.ErrTooManyViews()
	}

	if err := h.service.IncrementViewCount(c.UserContext(), kernel.JobID(c.Params("id"))); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ============================================================================
// Helper Methods
// ============================================================================

func parseListCriteria(c *fiber.Ctx) (job.ListCriteria, error) {
	criteria := job.ListCriteria{
		Location:        c.Query("location"),
		CompanyName:     c.Query("company_name"),
		SearchQuery:     c.Query("search"),
		JobType:         c.Query("job_type"),
		ExperienceLevel: c.Query("experience_level"),
	}

	var err error
	if criteria.Limit, err = queryInt(c, "limit"); err != nil {
		return criteria, err
	}
	if criteria.Offset, err = queryInt(c, "offset"); err != nil {
		return criteria, err
	}

	switch raw := strings.ToLower(strings.TrimSpace(c.Query("remote_work"))); raw {
	case "", job.AllSentinel:
	default:
		remote, err := strconv.ParseBool(raw)
		if err != nil {
			return criteria, job.ErrInvalidRequest().WithDetail("remote_work", raw)
		}
		criteria.RemoteWork = &remote
	}
	return criteria, nil
}

func queryInt(c *fiber.Ctx, key string) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, job.ErrInvalidRequest().WithDetail(key, raw)
	}
	return n, nil
}

// clientKey identifies the caller for rate limiting: the identity when
// authenticated, the address otherwise
func clientKey(c *fiber.Ctx) string {
	if authCtx, ok := auth.GetAuthContext(c); ok && !authCtx.ExternalID.IsEmpty() {
		return "ext:" + authCtx.ExternalID.String()
	}
	return "ip:" + c.IP()
}

// ============================================================================
// Routes
// ============================================================================

// RegisterRoutes registers all job routes
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.TokenMiddleware) {
	api := app.Group("/api/jobs")

	api.Get("/",
		authMiddleware.Optional(),
		handlers.ListJobs,
	)

	api.Get("/by-recruiter/:recruiterId",
		authMiddleware.Optional(),
		handlers.GetJobsByRecruiter,
	)

	api.Get("/:id",
		authMiddleware.Optional(),
		handlers.GetJobDetail,
	)

	api.Post("/:id/views",
		authMiddleware.Optional(),
		handlers.IncrementViewCount,
	)

	api.Post("/",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeJobsWrite),
		handlers.CreateJob,
	)

	api.Patch("/:id",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeJobsWrite),
		handlers.UpdateJob,
	)

	api.Delete("/:id",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeJobsDelete),
		handlers.DeleteJob,
	)
}
