package companyapi

import (
	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/iam/auth"
	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/kernel"
	"github.com/Brainstorm-collab/CareerFlow-sub002/recruitment/company"
	"github.com/Brainstorm-collab/CareerFlow-sub002/recruitment/company/companysrv"
	"github.com/gofiber/fiber/v2"
)

// Handlers provides HTTP handlers for company operations
type Handlers struct {
	service *companysrv.CompanyService
}

func NewHandlers(service *companysrv.CompanyService) *Handlers {
	return &Handlers{service: service}
}

// CreateCompany registers a company owned by the caller
// POST /api/companies
func (h *Handlers) CreateCompany(c *fiber.Ctx) error {
	actor, err := auth.Actor(c)
	if err != nil {
		return err
	}

	var req company.CreateCompanyRequest
	if err := c.BodyParser(&req); err != nil {
		return company.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	created, err := h.service.Create(c.UserContext(), actor, req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// ListCompanies lists active companies
// GET /api/companies
func (h *Handlers) ListCompanies(c *fiber.Ctx) error {
	page, err := h.service.ListActive(c.UserContext(), kernel.PaginationOptions{
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("page_size", kernel.DefaultLimit),
	})
	if err != nil {
		return err
	}
	return c.JSON(page)
}

// ListMine lists the companies created by the caller
// GET /api/companies/mine
func (h *Handlers) ListMine(c *fiber.Ctx) error {
	userID, err := auth.CurrentUserID(c)
	if err != nil {
		return err
	}

	companies, err := h.service.ListByCreator(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(companies)
}

// GetBySlug retrieves a company by slug
// GET /api/companies/slug/:slug
func (h *Handlers) GetBySlug(c *fiber.Ctx) error {
	found, err := h.service.GetBySlug(c.UserContext(), c.Params("slug"))
	if err != nil {
		return err
	}
	return c.JSON(found)
}

// GetCompany retrieves a company by ID
// GET /api/companies/:id
func (h *Handlers) GetCompany(c *fiber.Ctx) error {
	found, err := h.service.GetByID(c.UserContext(), kernel.CompanyID(c.Params("id")))
	if err != nil {
		return err
	}
	return c.JSON(found)
}

// UpdateCompany edits a company
// PATCH /api/companies/:id
func (h *Handlers) UpdateCompany(c *fiber.Ctx) error {
	actor, err := auth.Actor(c)
	if err != nil {
		return err
	}

	var req company.UpdateCompanyRequest
	if err := c.BodyParser(&req); err != nil {
		return company.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	updated, err := h.service.Update(c.UserContext(), actor, kernel.CompanyID(c.Params("id")), req)
	if err != nil {
		return err
	}
	return c.JSON(updated)
}

// DeleteCompany removes a company with its jobs
// DELETE /api/companies/:id
func (h *Handlers) DeleteCompany(c *fiber.Ctx) error {
	actor, err := auth.Actor(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.UserContext(), actor, kernel.CompanyID(c.Params("id"))); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// RegisterRoutes registers all company routes
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.TokenMiddleware) {
	api := app.Group("/api/companies")

	api.Get("/", handlers.ListCompanies)
	api.Get("/mine",
		authMiddleware.Authenticate(),
		authMiddleware.RequireUser(),
		handlers.ListMine,
	)
	api.Get("/slug/:slug", handlers.GetBySlug)
	api.Get("/:id", handlers.GetCompany)

	api.Post("/",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeCompaniesWrite),
		handlers.CreateCompany,
	)
	api.Patch("/:id",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeCompaniesWrite),
		handlers.UpdateCompany,
	)
	api.Delete("/:id",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeCompaniesDelete),
		handlers.DeleteCompany,
	)
}
