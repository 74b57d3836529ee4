package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"portfolio-backend/internal/shared/middleware"
	"portfolio-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(c.Config.App.AllowOrigin),
		middleware.ClientIP(),
		middleware.SessionLoader(c.Sessions),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupAuthRoutes(v1, c)
		setupProjectRoutes(v1, c)
		setupExperienceRoutes(v1, c)
		setupSkillRoutes(v1, c)
		setupResumeRoutes(v1, c)
		setupMediaRoutes(v1, c)
	}

	return router
}

// ========================================
// AUTH ROUTES
// ========================================
func setupAuthRoutes(v1 *gin.RouterGroup, c *container.Container) {
	auth := v1.Group("/auth")
	{
		auth.POST("/session", c.AuthHandler.CreateSession)
		auth.GET("/session", c.AuthHandler.GetSession)
		auth.DELETE("/session", c.AuthHandler.DeleteSession)
	}
}

// ========================================
// PROJECT ROUTES
// ========================================
// Writes are guarded inside the service layer, so the routes carry no
// auth middleware of their own.
func setupProjectRoutes(v1 *gin.RouterGroup, c *container.Container) {
	projects := v1.Group("/projects")
	{
		projects.GET("", c.ProjectHandler.GetAll)
		projects.POST("", c.ProjectHandler.Create)
		projects.PUT("", c.ProjectHandler.Update)
		projects.DELETE("", c.ProjectHandler.Delete)
		projects.POST("/reorder", c.ProjectHandler.Reorder)
		projects.POST("/:id/feature", c.ProjectHandler.ToggleFeatured)
	}
}

// ========================================
// EXPERIENCE ROUTES
// ========================================
func setupExperienceRoutes(v1 *gin.RouterGroup, c *container.Container) {
	experience := v1.Group("/experience")
	{
		experience.GET("", c.ExperienceHandler.GetAll)
		experience.POST("", c.ExperienceHandler.Create)
		experience.PUT("", c.ExperienceHandler.Update)
		experience.DELETE("", c.ExperienceHandler.Delete)
		experience.POST("/reorder", c.ExperienceHandler.Reorder)
	}
}

// ========================================
// SKILL ROUTES
// ========================================
func setupSkillRoutes(v1 *gin.RouterGroup, c *container.Container) {
	skills := v1.Group("/skills")
	{
		skills.GET("", c.SkillHandler.GetAll)
		skills.POST("", c.SkillHandler.Create)
		skills.PUT("", c.SkillHandler.Update)
		skills.DELETE("", c.SkillHandler.Delete)
		skills.POST("/reorder", c.SkillHandler.Reorder)
		skills.POST("/bulk", c.SkillHandler.BulkReplace)
	}
}

// ========================================
// RESUME ROUTES
// ========================================
func setupResumeRoutes(v1 *gin.RouterGroup, c *container.Container) {
	resume := v1.Group("/resume")
	{
		resume.GET("", c.ResumeHandler.Get)
		resume.POST("", c.ResumeHandler.Upload)
		resume.POST("/download", c.ResumeHandler.Track)
		resume.GET("/downloads/export", c.ResumeHandler.Export)
	}
}

// ========================================
// MEDIA ROUTES
// ========================================
func setupMediaRoutes(v1 *gin.RouterGroup, c *container.Container) {
	media := v1.Group("/media")
	{
		media.POST("/images", c.MediaHandler.UploadImage)
	}
}

// ========================================
// HEALTH CHECK HANDLER
// ========================================
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
		}

		dbStatus := "ok"
		if appCtx.Pool == nil {
			dbStatus = "memory"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.Pool.Ping(ctx); err != nil {
				dbStatus = fmt.Sprintf("error: %v", err)
				health["status"] = "degraded"
			}
		}

		cacheStatus := "ok"
		if appCtx.Cache == nil {
			cacheStatus = "disconnected"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.Cache.Ping(ctx); err != nil {
				cacheStatus = fmt.Sprintf("error: %v", err)
			}
		}

		health["services"] = gin.H{
			"docstore": dbStatus,
			"cache":    cacheStatus,
		}

		statusCode := http.StatusOK
		if health["status"] != "ok" {
			statusCode = http.StatusServiceUnavailable
		}
		c.JSON(statusCode, health)
	}
}
