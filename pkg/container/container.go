package container

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"portfolio-backend/internal/config"
	authHandler "portfolio-backend/internal/domains/auth/handler"
	experienceHandler "portfolio-backend/internal/domains/experience/handler"
	experienceService "portfolio-backend/internal/domains/experience/service"
	mediaHandler "portfolio-backend/internal/domains/media/handler"
	mediaService "portfolio-backend/internal/domains/media/service"
	projectHandler "portfolio-backend/internal/domains/project/handler"
	projectService "portfolio-backend/internal/domains/project/service"
	resumeHandler "portfolio-backend/internal/domains/resume/handler"
	resumeService "portfolio-backend/internal/domains/resume/service"
	skillHandler "portfolio-backend/internal/domains/skill/handler"
	skillService "portfolio-backend/internal/domains/skill/service"
	infraCache "portfolio-backend/internal/infrastructure/cache"
	"portfolio-backend/internal/infrastructure/database"
	"portfolio-backend/internal/infrastructure/identity"
	"portfolio-backend/internal/infrastructure/storage"
	"portfolio-backend/internal/session"
	"portfolio-backend/pkg/cache"
	"portfolio-backend/pkg/docstore"
	"portfolio-backend/pkg/logger"
)

// Container wires every component of the application together.
// Construction order matters: infrastructure first, then services,
// then handlers.
type Container struct {
	Config *config.Config

	Pool       *pgxpool.Pool
	Docs       docstore.Store
	Cache      cache.Cache
	redisCache *infraCache.RedisCache
	Objects    storage.ObjectStore
	Verifier   identity.Verifier
	Sessions   *session.Manager
	Guard      session.Guard

	ProjectService    projectService.Service
	ExperienceService experienceService.Service
	SkillService      skillService.Service
	ResumeService     resumeService.Service
	MediaService      mediaService.Service

	AuthHandler       *authHandler.AuthHandler
	ProjectHandler    *projectHandler.ProjectHandler
	ExperienceHandler *experienceHandler.ExperienceHandler
	SkillHandler      *skillHandler.SkillHandler
	ResumeHandler     *resumeHandler.ResumeHandler
	MediaHandler      *mediaHandler.MediaHandler
}

func NewContainer() (*Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	c := &Container{Config: cfg}
	ctx := context.Background()

	if err := c.initDocstore(ctx); err != nil {
		return nil, err
	}
	c.initCache()
	if err := c.initStorage(); err != nil {
		return nil, err
	}
	if err := c.initAuth(); err != nil {
		return nil, err
	}
	c.initServices()
	c.initHandlers()

	return c, nil
}

func (c *Container) initDocstore(ctx context.Context) error {
	switch c.Config.Docstore.Driver {
	case "postgres":
		pool, err := database.Connect(ctx, c.Config.Database)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		store := database.NewDocumentStore(pool)
		if err := store.EnsureSchema(ctx); err != nil {
			pool.Close()
			return fmt.Errorf("failed to ensure document schema: %w", err)
		}
		c.Pool = pool
		c.Docs = store
	case "memory":
		logger.Warn("using in-memory document store, data will not survive restarts", nil)
		c.Docs = docstore.NewMemory()
	default:
		return fmt.Errorf("unknown docstore driver %q", c.Config.Docstore.Driver)
	}
	return nil
}

func (c *Container) initCache() {
	switch c.Config.Cache.Driver {
	case "redis":
		rc, err := infraCache.NewRedisCache(c.Config.Cache.Host, c.Config.Cache.Password, c.Config.Cache.DB)
		if err != nil {
			logger.Warn("redis unavailable, falling back to in-memory cache", err)
			c.Cache = infraCache.NewMemoryCache()
			return
		}
		c.redisCache = rc
		c.Cache = rc
	default:
		c.Cache = infraCache.NewMemoryCache()
	}
}

func (c *Container) initStorage() error {
	store, err := storage.NewMinIOStorage(storage.Config{
		Endpoint:  c.Config.MinIO.Endpoint,
		AccessKey: c.Config.MinIO.AccessKey,
		SecretKey: c.Config.MinIO.SecretKey,
		Bucket:    c.Config.MinIO.Bucket,
		UseSSL:    c.Config.MinIO.UseSSL,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize object storage: %w", err)
	}
	c.Objects = store
	return nil
}

func (c *Container) initAuth() error {
	switch c.Config.Identity.Provider {
	case "rest":
		c.Verifier = identity.NewRESTVerifier(c.Config.Identity.Endpoint, c.Config.Identity.APIKey)
	case "static":
		c.Verifier = identity.NewStaticVerifier(c.Config.Identity.AdminEmail, c.Config.Identity.AdminPasswordHash)
	default:
		return fmt.Errorf("unknown identity provider %q", c.Config.Identity.Provider)
	}

	c.Sessions = session.NewManager(c.Config.Session.Secret, c.Config.Session.TTL)
	c.Guard = session.NewGuard()
	return nil
}

func (c *Container) initServices() {
	c.ProjectService = projectService.NewProjectService(c.Docs, c.Guard, c.Cache)
	c.ExperienceService = experienceService.NewExperienceService(c.Docs, c.Guard, c.Cache)
	c.SkillService = skillService.NewSkillService(c.Docs, c.Guard, c.Cache)
	c.ResumeService = resumeService.NewResumeService(c.Docs, c.Objects, c.Guard)
	c.MediaService = mediaService.NewMediaService(c.Objects, storage.NewImageProcessor(), c.Guard)
}

func (c *Container) initHandlers() {
	c.AuthHandler = authHandler.NewAuthHandler(c.Verifier, c.Sessions, c.Config.Session.SecureCookie)
	c.ProjectHandler = projectHandler.NewProjectHandler(c.ProjectService)
	c.ExperienceHandler = experienceHandler.NewExperienceHandler(c.ExperienceService)
	c.SkillHandler = skillHandler.NewSkillHandler(c.SkillService)
	c.ResumeHandler = resumeHandler.NewResumeHandler(c.ResumeService)
	c.MediaHandler = mediaHandler.NewMediaHandler(c.MediaService)
}

// Cleanup releases infrastructure connections. Called on shutdown.
func (c *Container) Cleanup() {
	if c.redisCache != nil {
		if err := c.redisCache.Close(); err != nil {
			logger.Warn("failed to close redis connection", err)
		}
	}
	if c.Pool != nil {
		c.Pool.Close()
	}
}
