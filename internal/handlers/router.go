package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/orgdir/orgdir/internal/config"
	"github.com/orgdir/orgdir/internal/middleware"
)

// NewRouter builds the gin engine with all routes and middleware wired.
func NewRouter(cfg *config.Config, users *UserHandler, companies *CompanyHandler, docs *DocsHandler) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware(cfg.Server.CORSOrigin))
	router.Use(middleware.RequestLogMiddleware())

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.GET("/", docs.Root)

	v1 := router.Group("/v1")

	// Mutating endpoints are rate limited per client IP.
	limited := middleware.RateLimitMiddleware(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst)

	userRoutes := v1.Group("/users")
	userRoutes.GET("", users.ListUsers)
	userRoutes.GET("/:id", users.GetUser)
	userRoutes.POST("", limited, users.CreateUser)
	userRoutes.PUT("/:id", limited, users.UpdateUser)
	userRoutes.PATCH("/:id", limited, users.UpdateUser)
	userRoutes.DELETE("/:id", limited, users.DeleteUser)
	userRoutes.POST("/search", users.SearchUsers)

	companyRoutes := v1.Group("/companies")
	companyRoutes.GET("", companies.ListCompanies)
	companyRoutes.GET("/:id", companies.GetCompany)
	companyRoutes.POST("", limited, companies.CreateCompany)
	companyRoutes.PUT("/:id", limited, companies.UpdateCompany)
	companyRoutes.PATCH("/:id", limited, companies.UpdateCompany)
	companyRoutes.DELETE("/:id", limited, companies.DeleteCompany)
	companyRoutes.POST("/search", companies.SearchCompanies)

	docsRoutes := v1.Group("/docs")
	docsRoutes.GET("", docs.Docs)
	docsRoutes.GET("/examples", docs.ListExamples)
	docsRoutes.GET("/examples/:name", docs.GetExample)

	v1.POST("/search/entities", docs.ExtractEntities)

	return router
}
