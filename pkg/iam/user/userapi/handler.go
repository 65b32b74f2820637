package userapi

import (
	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/iam/auth"
	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/iam/user"
	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/iam/user/usersrv"
	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/kernel"
	"github.com/gofiber/fiber/v2"
)

// Handlers provides HTTP handlers for user operations
type Handlers struct {
	service *usersrv.UserService
}

func NewHandlers(service *usersrv.UserService) *Handlers {
	return &Handlers{service: service}
}

// Sync upserts the caller from the token claims
// POST /api/users/sync
func (h *Handlers) Sync(c *fiber.Ctx) error {
	authCtx, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrUnauthorized()
	}

	var body struct {
		Role     user.Role `json:"role"`
		Provider string    `json:"provider"`
	}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&body); err != nil {
			return user.ErrInvalidRequest().WithDetail("parse_error", err.Error())
		}
	}

	u, created, err := h.service.SyncFromIdentity(c.UserContext(), user.SyncIdentityRequest{
		ExternalID:   authCtx.ExternalID,
		Provider:     body.Provider,
		Email:        kernel.Email(authCtx.Email),
		FirstName:    kernel.FirstName(authCtx.GivenName),
		LastName:     kernel.LastName(authCtx.FamilyName),
		FullName:     authCtx.Name,
		ProfileImage: authCtx.Picture,
		Role:         body.Role,
	})
	if err != nil {
		return err
	}

	status := fiber.StatusOK
	if created {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(u)
}

// Register creates the caller's user explicitly
// POST /api/users/register
func (h *Handlers) Register(c *fiber.Ctx) error {
	authCtx, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrUnauthorized()
	}

	var req user.RegisterUserRequest
	if err := c.BodyParser(&req); err != nil {
		return user.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}
	req.ExternalID = authCtx.ExternalID

	u, err := h.service.Register(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(u)
}

// Me returns the caller's profile
// GET /api/users/me
func (h *Handlers) Me(c *fiber.Ctx) error {
	userID, err := auth.CurrentUserID(c)
	if err != nil {
		return err
	}

	u, err := h.service.GetByID(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(u)
}

// GetUser retrieves a user by ID. Callers without users:read only see themselves.
// GET /api/users/:id
func (h *Handlers) GetUser(c *fiber.Ctx) error {
	authCtx, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrUnauthorized()
	}
	id := kernel.UserID(c.Params("id"))

	self := authCtx.IsRegistered() && *authCtx.UserID == id
	if !self && !authCtx.HasScope(auth.ScopeUsersRead) {
		return auth.ErrInsufficientScope().WithDetail("required_scope", auth.ScopeUsersRead)
	}

	u, err := h.service.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(u)
}

// ListUsers lists users page by page
// GET /api/users
func (h *Handlers) ListUsers(c *fiber.Ctx) error {
	page, err := h.service.List(c.UserContext(), kernel.PaginationOptions{
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("page_size", kernel.DefaultLimit),
	})
	if err != nil {
		return err
	}
	return c.JSON(page)
}

// UpdateProfile edits a profile
// PATCH /api/users/me, PATCH /api/users/:id
func (h *Handlers) UpdateProfile(c *fiber.Ctx) error {
	actor, id, err := target(c)
	if err != nil {
		return err
	}

	var req user.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return user.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	u, err := h.service.UpdateProfile(c.UserContext(), actor, id, req)
	if err != nil {
		return err
	}
	return c.JSON(u)
}

// DeleteUser removes a user and everything referencing it
// DELETE /api/users/me, DELETE /api/users/:id
func (h *Handlers) DeleteUser(c *fiber.Ctx) error {
	actor, id, err := target(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteUser(c.UserContext(), actor, id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// target resolves the :id param, or the caller on /me routes
func target(c *fiber.Ctx) (kernel.Actor, kernel.UserID, error) {
	actor, err := auth.Actor(c)
	if err != nil {
		return actor, "", err
	}
	if id := c.Params("id"); id != "" {
		return actor, kernel.UserID(id), nil
	}
	if actor.UserID.IsEmpty() {
		return actor, "", auth.ErrUserNotRegistered()
	}
	return actor, actor.UserID, nil
}

// RegisterRoutes registers all user routes
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.TokenMiddleware) {
	api := app.Group("/api/users", authMiddleware.Authenticate())

	api.Post("/sync", handlers.Sync)
	api.Post("/register", handlers.Register)

	me := api.Group("/me", authMiddleware.RequireScope(auth.ScopeProfileAll))
	me.Get("/", handlers.Me)
	me.Patch("/", handlers.UpdateProfile)
	me.Delete("/", handlers.DeleteUser)

	api.Get("/",
		authMiddleware.RequireScope(auth.ScopeUsersRead),
		handlers.ListUsers,
	)

	api.Get("/:id", handlers.GetUser)

	api.Patch("/:id",
		authMiddleware.RequireScope(auth.ScopeProfileAll),
		handlers.UpdateProfile,
	)

	api.Delete("/:id",
		authMiddleware.RequireScope(auth.ScopeProfileAll),
		handlers.DeleteUser,
	)
}
