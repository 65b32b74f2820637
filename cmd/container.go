package main

import (
	"context"
	"time"

	"github.com/Brainstorm-collab/CareerFlow-sub002/internal/config"
	"github.com/Brainstorm-collab/CareerFlow-sub002/internal/migrations"
	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/fsx"
	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/fsx/fsxlocal"
	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/fsx/fsxs3"
	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/iam/auth"
	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/iam/user"
	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/iam/user/userapi"
	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/iam/user/userinfra"
	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/iam/user/usersrv"
	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/logx"
	"github.com/Brainstorm-collab/CareerFlow-sub002/recruitment/application"
	"github.com/Brainstorm-collab/CareerFlow-sub002/recruitment/application/applicationapi"
	"github.com/Brainstorm-collab/CareerFlow-sub002/recruitment/application/applicationinfra"
	"github.com/Brainstorm-collab/CareerFlow-sub002/recruitment/application/applicationsrv"
	"github.com/Brainstorm-collab/CareerFlow-sub002/recruitment/cascade"
	"github.com/Brainstorm-collab/CareerFlow-sub002/recruitment/company"
	"github.com/Brainstorm-collab/CareerFlow-sub002/recruitment/company/companyapi"
	"github.com/Brainstorm-collab/CareerFlow-sub002/recruitment/company/companyinfra"
	"github.com/Brainstorm-collab/CareerFlow-sub002/recruitment/company/companysrv"
	"github.com/Brainstorm-collab/CareerFlow-sub002/recruitment/fileupload"
	"github.com/Brainstorm-collab/CareerFlow-sub002/recruitment/fileupload/fileuploadapi"
	"github.com/Brainstorm-collab/CareerFlow-sub002/recruitment/fileupload/fileuploadinfra"
	"github.com/Brainstorm-collab/CareerFlow-sub002/recruitment/fileupload/fileuploadsrv"
	"github.com/Brainstorm-collab/CareerFlow-sub002/recruitment/fileupload/worker"
	"github.com/Brainstorm-collab/CareerFlow-sub002/recruitment/job"
	"github.com/Brainstorm-collab/CareerFlow-sub002/recruitment/job/jobapi"
	"github.com/Brainstorm-collab/CareerFlow-sub002/recruitment/job/jobinfra"
	"github.com/Brainstorm-collab/CareerFlow-sub002/recruitment/job/jobsrv"
	"github.com/Brainstorm-collab/CareerFlow-sub002/recruitment/savedjob"
	"github.com/Brainstorm-collab/CareerFlow-sub002/recruitment/savedjob/savedjobapi"
	"github.com/Brainstorm-collab/CareerFlow-sub002/recruitment/savedjob/savedjobinfra"
	"github.com/Brainstorm-collab/CareerFlow-sub002/recruitment/savedjob/savedjobsrv"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
)

const cleanupQueueName = "careerflow:file_cleanup"

// Container holds all application dependencies
type Container struct {
	Config *config.Config

	// Infrastructure
	DB           *sqlx.DB
	Redis        *redis.Client
	FileSystem   fsx.FileSystem
	S3Client     *s3.Client
	CleanupQueue fileupload.CleanupQueue

	// Repositories
	UserRepo        user.Repository
	CompanyRepo     company.Repository
	JobRepo         job.Repository
	ApplicationRepo application.Repository
	SavedJobRepo    savedjob.Repository
	FileUploadRepo  fileupload.Repository

	// Services
	TokenService       *auth.JWTService
	Planner            *cascade.Planner
	UserService        *usersrv.UserService
	CompanyService     *companysrv.CompanyService
	JobService         *jobsrv.JobService
	ApplicationService *applicationsrv.ApplicationService
	SavedJobService    *savedjobsrv.Service
	FileUploadService  *fileuploadsrv.Service
	CleanupWorker      *worker.CleanupWorker

	// API Handlers
	UserHandlers        *userapi.Handlers
	CompanyHandlers     *companyapi.Handlers
	JobHandlers         *jobapi.Handlers
	ApplicationHandlers *applicationapi.Handlers
	SavedJobHandlers    *savedjobapi.Handlers
	FileUploadHandlers  *fileuploadapi.Handlers

	// Middleware
	AuthMiddleware *auth.TokenMiddleware
}

// NewContainer initializes the dependency injection container
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	c := &Container{Config: cfg}
	if err := c.initInfrastructure(ctx); err != nil {
		c.Close()
		return nil, err
	}
	c.initRepositories()
	c.initServices()
	return c, nil
}

// Close releases the database and Redis connections
func (c *Container) Close() {
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			logx.Warnf("Failed to close database: %v", err)
		}
	}
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			logx.Warnf("Failed to close Redis: %v", err)
		}
	}
}

func (c *Container) initInfrastructure(ctx context.Context) error {
	cfg := c.Config

	// 1. Database Connection
	if cfg.Store == config.StorePostgres {
		db, err := sqlx.ConnectContext(ctx, "postgres", cfg.Database.DSN())
		if err != nil {
			return err
		}
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)
		c.DB = db

		if cfg.Database.MigrateOnStart {
			if err := migrations.Up(ctx, db.DB); err != nil {
				return err
			}
		}
	} else {
		logx.Warn("STORE_DRIVER=memory: data is kept in process memory only")
	}

	// 2. Redis Connection
	if cfg.Redis.Enabled() {
		c.Redis = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       0,
		})
		if err := c.Redis.Ping(ctx).Err(); err != nil {
			logx.Warnf("Failed to connect to Redis: %v", err)
		}
		c.CleanupQueue = fileuploadinfra.NewRedisCleanupQueue(c.Redis, cleanupQueueName)
	} else {
		c.CleanupQueue = fileuploadinfra.NewMemoryCleanupQueue()
	}

	// 3. Object Storage
	switch cfg.Storage.Driver {
	case config.ObjectStoreS3:
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Storage.Region))
		if err != nil {
			return err
		}
		c.S3Client = s3.NewFromConfig(awsCfg)
		c.FileSystem = fsxs3.NewS3FileSystem(c.S3Client, cfg.Storage.Bucket, cfg.Storage.Prefix)
	default:
		local, err := fsxlocal.NewLocalFileSystem(cfg.Storage.LocalDir, cfg.Storage.BaseURL)
		if err != nil {
			return err
		}
		c.FileSystem = local
	}

	// 4. Tokens
	if cfg.UsingDevSecret() {
		logx.Warn("JWT_SECRET is not set, using the development secret")
	}
	c.TokenService = auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, 0)
	return nil
}

func (c *Container) initRepositories() {
	if c.DB == nil {
		c.UserRepo = userinfra.NewMemoryUserRepository()
		c.CompanyRepo = companyinfra.NewMemoryCompanyRepository()
		c.JobRepo = jobinfra.NewMemoryJobRepository()
		c.ApplicationRepo = applicationinfra.NewMemoryApplicationRepository()
		c.SavedJobRepo = savedjobinfra.NewMemorySavedJobRepository()
		c.FileUploadRepo = fileuploadinfra.NewMemoryFileUploadRepository()
		return
	}

	c.UserRepo = userinfra.NewPostgresUserRepository(c.DB)
	c.CompanyRepo = companyinfra.NewPostgresCompanyRepository(c.DB)
	c.JobRepo = jobinfra.NewPostgresJobRepository(c.DB)
	c.ApplicationRepo = applicationinfra.NewPostgresApplicationRepository(c.DB)
	c.SavedJobRepo = savedjobinfra.NewPostgresSavedJobRepository(c.DB)
	c.FileUploadRepo = fileuploadinfra.NewPostgresFileUploadRepository(c.DB)
}

func (c *Container) initServices() {
	cfg := c.Config

	// --- Supporting Services ---
	c.FileUploadService = fileuploadsrv.NewService(c.FileUploadRepo, c.FileSystem, c.CleanupQueue, c.UserRepo)
	c.Planner = cascade.NewPlanner(
		c.JobRepo,
		c.CompanyRepo,
		c.UserRepo,
		c.ApplicationRepo,
		c.SavedJobRepo,
		c.FileUploadService,
	)

	// --- Domain Services ---
	c.UserService = usersrv.NewUserService(c.UserRepo, c.Planner)
	c.CompanyService = companysrv.NewCompanyService(c.CompanyRepo, c.UserRepo, c.Planner)
	c.JobService = jobsrv.NewJobService(
		c.JobRepo,
		c.CompanyRepo,
		c.UserRepo,
		c.ApplicationRepo,
		c.SavedJobRepo,
		c.Planner,
		jobsrv.WithOverFetchMultiplier(cfg.Listing.OverFetchMultiplier),
	)
	c.ApplicationService = applicationsrv.NewApplicationService(c.ApplicationRepo, c.JobRepo, c.UserRepo)
	c.SavedJobService = savedjobsrv.NewService(c.SavedJobRepo, c.JobRepo)

	c.CleanupWorker = worker.NewCleanupWorker(c.FileUploadService, c.CleanupQueue, worker.Options{
		Workers: cfg.Cleanup.Workers,
	})

	// --- Handlers ---
	c.UserHandlers = userapi.NewHandlers(c.UserService)
	c.CompanyHandlers = companyapi.NewHandlers(c.CompanyService)
	c.JobHandlers = jobapi.NewHandlers(c.JobService, jobapi.NewViewLimiter(cfg.HTTP.ViewRatePerMinute))
	c.ApplicationHandlers = applicationapi.NewHandlers(c.ApplicationService)
	c.SavedJobHandlers = savedjobapi.NewHandlers(c.SavedJobService)
	c.FileUploadHandlers = fileuploadapi.NewHandlers(c.FileUploadService)

	// --- Middleware ---
	c.AuthMiddleware = auth.NewTokenMiddleware(c.TokenService, c.UserService)
}
