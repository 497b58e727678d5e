package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"sparked/handlers"
	"sparked/middleware"
	"sparked/ratelimit"
)

func SetupRouter(h *handlers.Handler, limiter *ratelimit.Limiter) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "Sparked API running",
			"service": "healthy",
		})
	})
	router.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	router.Use(cors.New(cors.Config{
		AllowOrigins:     h.Cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Locally stored avatars are referenced by relative URL.
	router.Static("/uploads", h.Cfg.UploadDir)

	api := router.Group("/api")
	if limiter != nil {
		api.Use(middleware.RateLimit(limiter, h.Log))
	}

	// Public routes
	api.POST("/register", h.Register)
	api.POST("/login", h.Login)

	// Protected routes
	protected := api.Group("")
	protected.Use(middleware.JWTAuth(h.Cfg.JWTSecret))

	protected.GET("/users/me", h.GetMe)
	protected.PUT("/users/me", h.UpdateMe)
	protected.GET("/users", h.ListCandidates)
	protected.GET("/users/all", h.ListAllUsers)

	protected.POST("/like", h.Like)
	protected.GET("/matches", h.ListMatches)

	router.NoRoute(func(c *gin.Context) {
		if len(c.Request.URL.Path) >= 4 && c.Request.URL.Path[:4] == "/api" {
			c.JSON(404, gin.H{
				"error": "Endpoint not found",
				"path":  c.Request.URL.Path,
			})
			return
		}
		c.Next()
	})

	return router
}
