package fileuploadapi

import (
	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/iam/auth"
	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/kernel"
	"github.com/Brainstorm-collab/CareerFlow-sub002/recruitment/fileupload"
	"github.com/Brainstorm-collab/CareerFlow-sub002/recruitment/fileupload/fileuploadsrv"
	"github.com/gofiber/fiber/v2"
)

// Handlers provides HTTP handlers for file uploads
type Handlers struct {
	service *fileuploadsrv.Service
}

func NewHandlers(service *fileuploadsrv.Service) *Handlers {
	return &Handlers{service: service}
}

// Upload stores a multipart file
// POST /api/files
func (h *Handlers) Upload(c *fiber.Ctx) error {
	userID, err := auth.CurrentUserID(c)
	if err != nil {
		return err
	}

	header, err := c.FormFile("file")
	if err != nil {
		return fileupload.ErrInvalidFileName().WithDetail("parse_error", err.Error())
	}
	if header.Size > fileupload.MaxFileSize {
		return fileupload.ErrFileTooLarge().WithDetail("size", header.Size)
	}

	file, err := header.Open()
	if err != nil {
		return fileupload.ErrInvalidFileName().WithDetail("parse_error", err.Error())
	}
	defer file.Close()

	name := c.FormValue("file_name", header.Filename)
	up, err := h.service.Upload(c.UserContext(), userID, name, header.Header.Get(fiber.HeaderContentType), header.Size, file)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(up)
}

// GenerateUploadURL returns a presigned PUT URL
// POST /api/files/upload-url
func (h *Handlers) GenerateUploadURL(c *fiber.Ctx) error {
	userID, err := auth.CurrentUserID(c)
	if err != nil {
		return err
	}

	var req fileupload.UploadURLRequest
	if err := c.BodyParser(&req); err != nil {
		return fileupload.ErrInvalidFileName().WithDetail("parse_error", err.Error())
	}

	resp, err := h.service.GenerateUploadURL(c.UserContext(), userID, req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// ConfirmUpload registers an object uploaded through a presigned URL
// POST /api/files/confirm
func (h *Handlers) ConfirmUpload(c *fiber.Ctx) error {
	userID, err := auth.CurrentUserID(c)
	if err != nil {
		return err
	}

	var req fileupload.ConfirmUploadRequest
	if err := c.BodyParser(&req); err != nil {
		return fileupload.ErrInvalidFileName().WithDetail("parse_error", err.Error())
	}

	up, err := h.service.ConfirmUpload(c.UserContext(), userID, req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(up)
}

// ListMine lists the caller's files
// GET /api/files
func (h *Handlers) ListMine(c *fiber.Ctx) error {
	userID, err := auth.CurrentUserID(c)
	if err != nil {
		return err
	}

	files, err := h.service.ListByUser(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(files)
}

// GetURL returns a download URL
// GET /api/files/:id/url
func (h *Handlers) GetURL(c *fiber.Ctx) error {
	id := kernel.FileUploadID(c.Params("id"))
	if id.IsEmpty() {
		return fileupload.ErrFileNotFound().WithDetail("id", "missing or empty")
	}

	resp, err := h.service.GetURL(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// Delete removes one of the caller's files
// DELETE /api/files/:id
func (h *Handlers) Delete(c *fiber.Ctx) error {
	userID, err := auth.CurrentUserID(c)
	if err != nil {
		return err
	}

	id := kernel.FileUploadID(c.Params("id"))
	if err := h.service.Delete(c.UserContext(), userID, id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Sweep runs the orphan cleanup on demand
// POST /api/files/sweep
func (h *Handlers) Sweep(c *fiber.Ctx) error {
	result, err := h.service.Sweep(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(result)
}

// QueueStats reports the cleanup queue sizes
// GET /api/files/cleanup-stats
func (h *Handlers) QueueStats(c *fiber.Ctx) error {
	stats, err := h.service.QueueStats(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(stats)
}

// RegisterRoutes registers all file routes
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.TokenMiddleware) {
	api := app.Group("/api/files", authMiddleware.Authenticate())

	api.Get("/",
		authMiddleware.RequireScope(auth.ScopeFilesRead),
		handlers.ListMine,
	)

	api.Post("/",
		authMiddleware.RequireScope(auth.ScopeFilesWrite),
		handlers.Upload,
	)

	api.Post("/upload-url",
		authMiddleware.RequireScope(auth.ScopeFilesWrite),
		handlers.GenerateUploadURL,
	)

	api.Post("/confirm",
		authMiddleware.RequireScope(auth.ScopeFilesWrite),
		handlers.ConfirmUpload,
	)

	api.Post("/sweep",
		authMiddleware.RequireScope(auth.ScopeAll),
		handlers.Sweep,
	)

	api.Get("/cleanup-stats",
		authMiddleware.RequireScope(auth.ScopeAll),
		handlers.QueueStats,
	)

	api.Get("/:id/url",
		authMiddleware.RequireScope(auth.ScopeFilesRead),
		handlers.GetURL,
	)

	api.Delete("/:id",
		authMiddleware.RequireScope(auth.ScopeFilesWrite),
		handlers.Delete,
	)
}
