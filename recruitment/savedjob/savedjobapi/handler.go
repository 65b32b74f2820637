package savedjobapi

import (
	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/iam/auth"
	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/kernel"
	"github.com/Brainstorm-collab/CareerFlow-sub002/recruitment/savedjob"
	"github.com/Brainstorm-collab/CareerFlow-sub002/recruitment/savedjob/savedjobsrv"
	"github.com/gofiber/fiber/v2"
)

// Handlers provides HTTP handlers for saved jobs
type Handlers struct {
	service *savedjobsrv.Service
}

func NewHandlers(service *savedjobsrv.Service) *Handlers {
	return &Handlers{service: service}
}

// Save bookmarks a job
// POST /api/saved-jobs
func (h *Handlers) Save(c *fiber.Ctx) error {
	userID, err := auth.CurrentUserID(c)
	if err != nil {
		return err
	}

	var req savedjob.SaveJobRequest
	if err := c.BodyParser(&req); err != nil {
		return savedjob.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	saved, err := h.service.Save(c.UserContext(), userID, req.JobID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(saved)
}

// Toggle flips the saved state
// POST /api/saved-jobs/toggle
func (h *Handlers) Toggle(c *fiber.Ctx) error {
	userID, err := auth.CurrentUserID(c)
	if err != nil {
		return err
	}

	var req savedjob.SaveJobRequest
	if err := c.BodyParser(&req); err != nil {
		return savedjob.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	resp, err := h.service.Toggle(c.UserContext(), userID, req.JobID)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// List returns the caller's saved jobs
// GET /api/saved-jobs
func (h *Handlers) List(c *fiber.Ctx) error {
	userID, err := auth.CurrentUserID(c)
	if err != nil {
		return err
	}

	saved, err := h.service.ListByUser(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(saved)
}

// IsSaved reports whether the caller saved a job
// GET /api/saved-jobs/:jobId
func (h *Handlers) IsSaved(c *fiber.Ctx) error {
	userID, err := auth.CurrentUserID(c)
	if err != nil {
		return err
	}

	saved, err := h.service.IsSaved(c.UserContext(), userID, kernel.JobID(c.Params("jobId")))
	if err != nil {
		return err
	}
	return c.JSON(savedjob.IsSavedResponse{Saved: saved})
}

// Unsave removes a bookmark
// DELETE /api/saved-jobs/:jobId
func (h *Handlers) Unsave(c *fiber.Ctx) error {
	userID, err := auth.CurrentUserID(c)
	if err != nil {
		return err
	}

	if err := h.service.Unsave(c.UserContext(), userID, kernel.JobID(c.Params("jobId"))); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// RegisterRoutes registers all saved job routes
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.TokenMiddleware) {
	api := app.Group("/api/saved-jobs",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeSavedJobsAll),
	)

	api.Get("/", handlers.List)
	api.Post("/", handlers.Save)
	api.Post("/toggle", handlers.Toggle)
	api.Get("/:jobId", handlers.IsSaved)
	api.Delete("/:jobId", handlers.Unsave)
}
