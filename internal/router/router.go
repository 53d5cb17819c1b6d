package router

import (
	"github.com/gin-gonic/gin"
	"github.com/mizuki-dev/project-management-api/internal/config"
	"github.com/mizuki-dev/project-management-api/internal/handlers"
	"github.com/mizuki-dev/project-management-api/internal/middleware"
	"github.com/mizuki-dev/project-management-api/internal/repository"
	"github.com/mizuki-dev/project-management-api/internal/services"
	"gorm.io/gorm"
)

// New wires repositories, services and handlers onto a gin engine. Guard
// middleware is attached per route: reads need authentication, mutations
// need the manager role.
func New(db *gorm.DB, cfg *config.Config) *gin.Engine {
	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	authService := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL)
	userService := services.NewUserService(userRepo)
	projectService := services.NewProjectService(projectRepo)
	taskService := services.NewTaskService(taskRepo, projectRepo, userRepo)

	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService, cfg.MaxPerPage)
	projectHandler := handlers.NewProjectHandler(projectService, cfg.MaxPerPage)
	taskHandler := handlers.NewTaskHandler(taskService, cfg.MaxPerPage)

	requireAuth := middleware.RequireAuth(userRepo, cfg.JWTSecret)
	requireManager := middleware.RequireManager(userRepo, cfg.JWTSecret)

	r := gin.Default()

	api := r.Group("/api")
	{
		api.GET("/health", handlers.Health)
		api.POST("/auth/login", authHandler.Login)

		api.GET("/users", requireAuth, userHandler.List)
		api.POST("/users", requireManager, userHandler.Create)
		api.GET("/users/:id", requireAuth, userHandler.Get)
		api.PUT("/users/:id", requireManager, userHandler.Update)
		api.DELETE("/users/:id", requireManager, userHandler.Delete)

		api.GET("/projects", requireAuth, projectHandler.List)
		api.POST("/projects", requireManager, projectHandler.Create)
		api.GET("/projects/:id", requireAuth, projectHandler.Get)
		api.PUT("/projects/:id", requireManager, projectHandler.Update)
		api.DELETE("/projects/:id", requireManager, projectHandler.Delete)

		api.GET("/projects/:id/tasks", requireAuth, taskHandler.List)
		api.POST("/projects/:id/tasks", requireManager, taskHandler.Create)
		api.PUT("/projects/:id/tasks/:taskID", requireManager, taskHandler.Update)
	}

	return r
}
