package app

import (
	"tiku_backend/internal/config"
	"tiku_backend/internal/middleware"
	"tiku_backend/internal/model"
	"tiku_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	a.registerPublicRoutes(router, c)

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware())
	{
		a.registerStudentRoutes(authGroup, c)
		a.registerTeacherRoutes(authGroup, c)
	}

	// 3. 管理员相关接口
	a.registerAdminRoutes(router, c)
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/auth/register", c.user.Register)
		public.POST("/auth/login", c.user.Login)
	}
}

func (a *App) registerStudentRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/user/profile", c.user.Profile)
	rg.GET("/user/answer-records", c.user.AnswerHistory)

	// 学科与章节
	rg.GET("/subjects", c.subject.List)
	rg.GET("/subjects/:id/chapters", c.subject.ListChapters)

	// 题库浏览
	rg.GET("/questions", c.question.List)
	rg.GET("/questions/:id", c.question.Get)

	// 刷题与判题
	rg.GET("/practice/modes", c.practice.Modes)
	rg.POST("/practice/start", c.practice.Start)
	rg.POST("/grading/submit", c.grading.Submit)
	rg.POST("/grading/batch-submit", c.grading.BatchSubmit)

	// 错题本
	rg.GET("/wrong-questions", c.wrongQuestion.List)
	rg.GET("/wrong-questions/stats", c.wrongQuestion.Stats)
	rg.PUT("/wrong-questions/:questionId/master", c.wrongQuestion.MarkMastered)
	rg.DELETE("/wrong-questions/:questionId", c.wrongQuestion.Remove)
	rg.POST("/wrong-questions/batch-remove", c.wrongQuestion.BatchRemove)

	// 收藏
	rg.GET("/favorites", c.favorite.List)
	rg.POST("/favorites", c.favorite.Add)
	rg.DELETE("/favorites/:questionId", c.favorite.Remove)
}

func (a *App) registerTeacherRoutes(rg *gin.RouterGroup, c *controllers) {
	teacher := rg.Group("/admin")
	teacher.Use(middleware.RoleMiddleware(model.Teacher))
	{
		// 题库维护
		teacher.POST("/questions", c.question.Create)
		teacher.PUT("/questions/:id", c.question.Update)
		teacher.DELETE("/questions/:id", c.question.Delete)
		teacher.POST("/questions/attachments", c.question.UploadAttachment)

		// AI判题复核
		teacher.GET("/ai-grading/pending", c.aiGrading.ListPending)
		teacher.GET("/ai-grading/stats", c.aiGrading.Stats)
		teacher.PUT("/ai-grading/:id/review", c.aiGrading.Review)
		teacher.POST("/ai-grading/batch-approve", c.aiGrading.BatchApprove)
		teacher.DELETE("/ai-grading/:id", c.aiGrading.Delete)
	}
}

func (a *App) registerAdminRoutes(router *gin.Engine, c *controllers) {
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware(model.Admin))
	{
		// 学科与章节维护
		admin.POST("/subjects", c.subject.Create)
		admin.PUT("/subjects/:id", c.subject.Update)
		admin.DELETE("/subjects/:id", c.subject.Delete)
		admin.POST("/chapters", c.subject.CreateChapter)
		admin.PUT("/chapters/:id", c.subject.UpdateChapter)
		admin.DELETE("/chapters/:id", c.subject.DeleteChapter)

		// 系统配置（AI服务地址、密钥、模型等）
		admin.GET("/configs", c.systemConfig.List)
		admin.PUT("/configs", c.systemConfig.Set)
	}
}
