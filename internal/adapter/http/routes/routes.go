package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	adapterhttp "todolist/internal/adapter/http"
	"todolist/internal/adapter/http/middleware"
	"todolist/pkg/config"
)

// SetupRouter assembles the full middleware chain and route table.
func SetupRouter(container *adapterhttp.Container, cfg *config.Config, logger zerolog.Logger) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(container.Metrics.Middleware())
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	if cfg.RateLimitEnabled {
		router.Use(middleware.NewRateLimiter(logger).Middleware())
	}

	if cfg.Storage.Enabled() {
		router.Static("/static/images", cfg.Storage.UploadDir)
	}

	setupPublicRoutes(router, container)
	setupProtectedRoutes(router, container)

	return router
}

// SetupRouterForTests skips rate limiting and the recovery wrapper so test
// failures surface as panics, not 500s.
func SetupRouterForTests(container *adapterhttp.Container) *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(container.Metrics.Middleware())

	setupPublicRoutes(router, container)
	setupProtectedRoutes(router, container)

	return router
}

func setupPublicRoutes(router *gin.Engine, container *adapterhttp.Container) {
	router.POST("/signup", container.AuthHandler.Register)
	router.POST("/auth", container.AuthHandler.Login)

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET("/metrics", gin.WrapH(container.Metrics.Handler()))
}

func setupProtectedRoutes(router *gin.Engine, container *adapterhttp.Container) {
	protected := router.Group("/api/v1")
	protected.Use(container.Guard.RequireAPI())
	{
		protected.GET("/todos", container.TodoHandler.List)
		protected.POST("/todos", container.TodoHandler.Create)
		protected.GET("/todos/:id", container.TodoHandler.Get)
		protected.PATCH("/todos/:id", container.TodoHandler.Update)
		protected.DELETE("/todos/:id", container.TodoHandler.Delete)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
