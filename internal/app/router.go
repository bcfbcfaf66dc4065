package app

import (
	"studyquest_backend/internal/config"
	"studyquest_backend/internal/middleware"
	"studyquest_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	router.GET("/metrics", monitoring.PrometheusHandler())

	api := router.Group("/api")
	// Token可选：带了就解析成真实用户，没带按演示账号处理
	api.Use(middleware.TryAuth(cfg.JWT.Secret))
	{
		api.GET("/health", c.health.HealthCheck)

		api.POST("/auth/signup", c.auth.Signup)
		api.POST("/auth/login", c.auth.Login)
		api.GET("/user", c.user.GetCurrentUser)
		api.PUT("/user/profile", c.user.UpdateProfile)

		api.GET("/study-materials", c.material.ListMaterials)
		api.POST("/study-materials", c.material.CreateMaterial)
		api.POST("/study-materials/upload", c.material.UploadMaterial)
		api.DELETE("/study-materials/:id", c.material.DeleteMaterial)

		api.GET("/quiz-sessions", c.quiz.ListSessions)
		api.POST("/quiz-sessions", c.quiz.CreateSession)
		api.POST("/quiz-sessions/:id/answers", c.quiz.RecordAnswer)

		api.GET("/materials/:materialId/questions", c.question.ListByMaterial)
		api.GET("/questions", c.question.Practice)

		api.GET("/achievements", c.achievement.ListAchievements)
		api.GET("/dashboard-stats", c.dashboard.Stats)
		api.GET("/progress", c.dashboard.Progress)

		api.POST("/ai/chat", c.ai.Chat)
		api.POST("/ai/summarize", c.ai.Summarize)
	}
}
