package app

import (
	"time"

	"vidyamitra_backend/docs"
	"vidyamitra_backend/internal/config"
	"vidyamitra_backend/internal/middleware"
	"vidyamitra_backend/pkg/monitoring"
	"vidyamitra_backend/pkg/security"
	"vidyamitra_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())
	router.GET("/health", c.health.HealthCheck)

	router.POST("/api/register", c.auth.Register)
	router.POST("/api/login", c.auth.Login)
	router.POST("/api/refresh", c.auth.Refresh)

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		authGroup.GET("/profile", c.auth.Profile)

		interviews := authGroup.Group("/interviews")
		{
			interviews.POST("/start", c.interview.Start)
			interviews.POST("/:id/submit-answers", c.interview.SubmitAnswers)
			interviews.POST("/:id/evaluate", c.interview.Evaluate)
			interviews.GET("/history", c.interview.History)
		}

		quizzes := authGroup.Group("/quizzes")
		{
			quizzes.POST("/generate", c.quiz.Generate)
			quizzes.POST("/submit", c.quiz.Submit)
			quizzes.GET("/history", c.quiz.History)
		}

		roadmaps := authGroup.Group("/roadmaps")
		{
			roadmaps.POST("/generate", c.roadmap.Generate)
			roadmaps.GET("/history", c.roadmap.History)
		}

		plans := authGroup.Group("/plans")
		{
			plans.POST("/generate", c.plan.Generate)
			plans.GET("/history", c.plan.History)
		}

		resumes := authGroup.Group("/resumes")
		{
			resumes.POST("/analyze", c.resume.Analyze)
			resumes.GET("/history", c.resume.History)
		}

		jobs := authGroup.Group("/jobs")
		{
			jobs.POST("/save", c.job.Save)
			jobs.GET("/saved", c.job.Saved)
		}

		authGroup.GET("/progress/dashboard", c.progress.Dashboard)
	}
}
