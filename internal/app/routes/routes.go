package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/placement-portal/internal/app/controllers"
	"github.com/yigit/placement-portal/internal/app/models"
	"github.com/yigit/placement-portal/internal/middleware"
)

// Controllers groups the handlers mounted by SetupRouter
type Controllers struct {
	Auth    *controllers.AuthController
	Student *controllers.StudentController
	Admin   *controllers.AdminController
	Health  *controllers.HealthController
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, ctrl Controllers, authMiddleware *middleware.AuthMiddleware) {
	router.GET("/", ctrl.Health.Banner)
	router.GET("/health", ctrl.Health.Health)

	api := router.Group("/api")

	// --- Public Auth routes ---
	auth := api.Group("/auth")
	{
		auth.POST("/login", ctrl.Auth.Login)
		auth.GET("/me", authMiddleware.JWTAuth(), ctrl.Auth.Me)
	}

	// --- Admin routes ---
	admin := api.Group("/admin")
	admin.Use(authMiddleware.JWTAuth(), authMiddleware.RoleRequired(models.RoleAdmin))
	{
		admin.GET("/students", ctrl.Admin.ListStudents)
		admin.GET("/students/:id", ctrl.Admin.GetStudent)
		admin.GET("/analytics", ctrl.Admin.GetAnalytics)
		admin.GET("/export", ctrl.Admin.Export)
	}

	// --- Student routes ---
	student := api.Group("/student")
	student.Use(authMiddleware.JWTAuth(), authMiddleware.RoleRequired(models.RoleStudent))
	{
		student.GET("/profile", ctrl.Student.GetProfile)
		student.POST("/profile", ctrl.Student.UpsertProfile)
	}
}
