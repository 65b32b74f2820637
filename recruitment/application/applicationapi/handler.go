package applicationapi

import (
	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/iam/auth"
	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/kernel"
	"github.com/Brainstorm-collab/CareerFlow-sub002/recruitment/application"
	"github.com/Brainstorm-collab/CareerFlow-sub002/recruitment/application/applicationsrv"
	"github.com/gofiber/fiber/v2"
)

// Handlers provides HTTP handlers for application operations
type Handlers struct {
	service *applicationsrv.ApplicationService
}

// NewHandlers creates a new application handlers instance
func NewHandlers(service *applicationsrv.ApplicationService) *Handlers {
	return &Handlers{
		service: service,
	}
}

// Apply submits an application for the caller
// POST /api/applications
func (h *Handlers) Apply(c *fiber.Ctx) error {
	actor, err := auth.Actor(c)
	if err != nil {
		return err
	}

	var req application.ApplyRequest
	if err := c.BodyParser(&req); err != nil {
		return application.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	app, err := h.service.Apply(c.UserContext(), actor, req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(app)
}

// GetApplication retrieves an application by ID
// GET /api/applications/:id
func (h *Handlers) GetApplication(c *fiber.Ctx) error {
	actor, err := auth.Actor(c)
	if err != nil {
		return err
	}

	app, err := h.service.Get(c.UserContext(), actor, kernel.ApplicationID(c.Params("id")))
	if err != nil {
		return err
	}
	return c.JSON(app)
}

// ListMine lists the caller's applications with their jobs
// GET /api/applications/mine
func (h *Handlers) ListMine(c *fiber.Ctx) error {
	userID, err := auth.CurrentUserID(c)
	if err != nil {
		return err
	}

	apps, err := h.service.ListByCandidate(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(apps)
}

// ListByJob lists the applications of a job
// GET /api/applications/by-job/:jobId
func (h *Handlers) ListByJob(c *fiber.Ctx) error {
	actor, err := auth.Actor(c)
	if err != nil {
		return err
	}

	apps, err := h.service.ListByJob(c.UserContext(), actor, kernel.JobID(c.Params("jobId")))
	if err != nil {
		return err
	}
	return c.JSON(apps)
}

// Review updates status, notes or rating
// PATCH /api/applications/:id
func (h *Handlers) Review(c *fiber.Ctx) error {
	actor, err := auth.Actor(c)
	if err != nil {
		return err
	}

	var req application.UpdateApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return application.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	app, err := h.service.Review(c.UserContext(), actor, kernel.ApplicationID(c.Params("id")), req)
	if err != nil {
		return err
	}
	return c.JSON(app)
}

// Withdraw deletes the caller's application
// DELETE /api/applications/:id
func (h *Handlers) Withdraw(c *fiber.Ctx) error {
	actor, err := auth.Actor(c)
	if err != nil {
		return err
	}

	if err := h.service.Withdraw(c.UserContext(), actor, kernel.ApplicationID(c.Params("id"))); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// RegisterRoutes registers all application routes
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.TokenMiddleware) {
	api := app.Group("/api/applications", authMiddleware.Authenticate())

	api.Post("/",
		authMiddleware.RequireScope(auth.ScopeApplicationsApply),
		handlers.Apply,
	)

	api.Get("/mine",
		authMiddleware.RequireScope(auth.ScopeApplicationsRead),
		handlers.ListMine,
	)

	api.Get("/by-job/:jobId",
		authMiddleware.RequireScope(auth.ScopeApplicationsReview),
		handlers.ListByJob,
	)

	api.Get("/:id",
		authMiddleware.RequireScope(auth.ScopeApplicationsRead),
		handlers.GetApplication,
	)

	api.Patch("/:id",
		authMiddleware.RequireScope(auth.ScopeApplicationsReview),
		handlers.Review,
	)

	api.Delete("/:id",
		authMiddleware.RequireScope(auth.ScopeApplicationsApply),
		handlers.Withdraw,
	)
}
