package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Brainstorm-collab/CareerFlow-sub002/internal/config"
	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/errx"
	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/iam/user/userapi"
	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/logx"
	"github.com/Brainstorm-collab/CareerFlow-sub002/recruitment/application/applicationapi"
	"github.com/Brainstorm-collab/CareerFlow-sub002/recruitment/company/companyapi"
	"github.com/Brainstorm-collab/CareerFlow-sub002/recruitment/fileupload/fileuploadapi"
	"github.com/Brainstorm-collab/CareerFlow-sub002/recruitment/job/jobapi"
	"github.com/Brainstorm-collab/CareerFlow-sub002/recruitment/savedjob/savedjobapi"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.Load()
	if err != nil {
		logx.Fatalf("Invalid configuration: %v", err)
	}

	// 2. Initialize Logger
	logx.SetOutput(os.Stdout, cfg.IsProduction())
	logx.SetLevel(logx.ParseLevel(cfg.LogLevel))
	logx.Info("Starting CareerFlow API Server...")

	// 3. Initialize Dependency Container
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	container, err := NewContainer(ctx, cfg)
	if err != nil {
		logx.Fatalf("Failed to initialize dependencies: %v", err)
	}
	defer container.Close()

	// 4. Create Fiber App
	app := newApp(container)

	// 5. Background Workers
	workerCtx, cancelWorkers := context.WithCancel(context.Background())
	container.CleanupWorker.Start(workerCtx)

	// 6. Start Server with Graceful Shutdown
	go func() {
		logx.Infof("Server listening on port %s", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			logx.Fatalf("Server error: %v", err)
		}
	}()

	<-ctx.Done()
	logx.Info("Shutting down server...")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logx.Errorf("Server forced to shutdown: %v", err)
	}
	cancelWorkers()
	container.CleanupWorker.Wait()

	logx.Info("Server exited")
}

// newApp builds the fiber app with middleware and every route registered
func newApp(container *Container) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "CareerFlow API",
		DisableStartupMessage: true,
		ErrorHandler:          globalErrorHandler,
		BodyLimit:             20 * 1024 * 1024,
	})

	// Global Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: container.Config.HTTP.CORSAllowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, PATCH, HEAD",
	}))
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	// Health Check
	app.Get("/health", func(c *fiber.Ctx) error {
		status := fiber.Map{
			"status": "ok",
			"store":  container.Config.Store,
		}
		if container.DB != nil {
			status["db"] = container.DB.PingContext(c.UserContext()) == nil
		}
		if container.Redis != nil {
			status["redis"] = container.Redis.Ping(c.UserContext()).Err() == nil
		}
		return c.JSON(status)
	})

	// Local object storage is served from the configured base URL
	if container.S3Client == nil && container.Config.Storage.BaseURL != "" {
		app.Static(container.Config.Storage.BaseURL, container.Config.Storage.LocalDir)
	}

	// Routes
	userapi.RegisterRoutes(app, container.UserHandlers, container.AuthMiddleware)
	companyapi.RegisterRoutes(app, container.CompanyHandlers, container.AuthMiddleware)
	jobapi.RegisterRoutes(app, container.JobHandlers, container.AuthMiddleware)
	applicationapi.RegisterRoutes(app, container.ApplicationHandlers, container.AuthMiddleware)
	savedjobapi.RegisterRoutes(app, container.SavedJobHandlers, container.AuthMiddleware)
	fileuploadapi.RegisterRoutes(app, container.FileUploadHandlers, container.AuthMiddleware)

	return app
}

// globalErrorHandler converts internal errors to standard HTTP responses
func globalErrorHandler(c *fiber.Ctx, err error) error {
	// If it's a Fiber error (e.g., 404 handler not found)
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(fiber.Map{
			"error": fe.Message,
			"code":  fe.Code,
		})
	}

	// If it's our custom errx.Error
	var e *errx.Error
	if errors.As(err, &e) {
		if e.HTTPStatus >= fiber.StatusInternalServerError {
			logx.WithFields(logx.Fields{
				"path":   c.Path(),
				"method": c.Method(),
				"code":   e.Code,
			}).Error(e.Error())
		}
		return c.Status(e.HTTPStatus).JSON(e.ToHTTPResponse())
	}

	// Default unknown error
	logx.Errorf("Internal Server Error: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error":   "Internal Server Error",
		"type":    "INTERNAL",
		"code":    "INTERNAL_ERROR",
		"message": "An unexpected error occurred",
	})
}
