package app

import (
	"hacklab_backend/internal/config"
	"hacklab_backend/internal/middleware"
	"hacklab_backend/internal/model"
	"hacklab_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/auth/register", c.auth.Register)
		public.POST("/auth/login", c.auth.Login)
	}

	// 2. 可选认证路由：目录匿名可浏览，带令牌则按本人状态展示
	optionalGroup := router.Group("/api")
	optionalGroup.Use(middleware.TryAuthMiddleware(cfg, repos.session))
	{
		optionalGroup.GET("/modules", c.module.List)
	}

	// 3. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg, repos.session), middleware.ActivityMiddleware(repos.user))
	{
		authGroup.GET("/auth/me", c.auth.Me)
		authGroup.POST("/auth/logout", c.auth.Logout)

		authGroup.GET("/modules/:id", c.module.Get)
		authGroup.POST("/modules/:id/unlock", c.module.Unlock)
		authGroup.GET("/modules/:id/pages", c.page.ListByModule)

		authGroup.GET("/pages/:id", c.page.Get)
		authGroup.GET("/pages/:id/questions", c.question.ListByPage)
		authGroup.POST("/pages/:id/complete", c.progress.MarkPageComplete)

		authGroup.POST("/questions/:id/submit", c.question.Submit)

		authGroup.POST("/gift-codes/redeem", c.giftCode.Redeem)

		authGroup.GET("/progress", c.progress.Overview)
	}

	// 4. 管理员相关接口
	adminGroup := router.Group("/api/admin")
	adminGroup.Use(middleware.AuthMiddleware(cfg, repos.session), middleware.RoleMiddleware(model.RoleAdmin))
	{
		adminGroup.POST("/modules", c.module.Create)
		adminGroup.PUT("/modules/:id", c.module.Update)
		adminGroup.DELETE("/modules/:id", c.module.Delete)

		adminGroup.POST("/pages", c.page.Create)
		adminGroup.PUT("/pages/:id", c.page.Update)
		adminGroup.DELETE("/pages/:id", c.page.Delete)

		adminGroup.POST("/questions", c.question.Create)
		adminGroup.PUT("/questions/:id", c.question.Update)
		adminGroup.DELETE("/questions/:id", c.question.Delete)

		adminGroup.GET("/gift-codes", c.giftCode.List)
		adminGroup.POST("/gift-codes", c.giftCode.Create)
		adminGroup.PUT("/gift-codes/:id", c.giftCode.Update)
		adminGroup.DELETE("/gift-codes/:id", c.giftCode.Delete)

		adminGroup.GET("/users", c.user.List)
		adminGroup.PUT("/users/:id/role", c.user.UpdateRole)
		adminGroup.POST("/users/:id/cubes", c.user.GrantCubes)

		adminGroup.POST("/uploads/image", c.upload.UploadImage)
	}
}
