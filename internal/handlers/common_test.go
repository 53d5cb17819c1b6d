package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mizuki-dev/project-management-api/internal/middleware"
	"github.com/mizuki-dev/project-management-api/internal/models"
	"github.com/mizuki-dev/project-management-api/internal/repository"
	"github.com/mizuki-dev/project-management-api/internal/services"
	"github.com/mizuki-dev/project-management-api/internal/token"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const (
	testSecret     = "test-secret"
	testMaxPerPage = 100
)

type testEnv struct {
	db *gorm.DB
	r  *gin.Engine
}

// setupTestEnv builds the full pipeline against an in-memory database with
// the same route and guard wiring as the production router.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Project{}, &models.Task{}))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	authService := services.NewAuthService(userRepo, testSecret, time.Hour)
	userService := services.NewUserService(userRepo)
	projectService := services.NewProjectService(projectRepo)
	taskService := services.NewTaskService(taskRepo, projectRepo, userRepo)

	authHandler := NewAuthHandler(authService)
	userHandler := NewUserHandler(userService, testMaxPerPage)
	projectHandler := NewProjectHandler(projectService, testMaxPerPage)
	taskHandler := NewTaskHandler(taskService, testMaxPerPage)

	requireAuth := middleware.RequireAuth(userRepo, testSecret)
	requireManager := middleware.RequireManager(userRepo, testSecret)

	r := gin.New()
	api := r.Group("/api")
	api.GET("/health", Health)
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

	return &testEnv{db: db, r: r}
}

func (env *testEnv) createUser(t *testing.T, name, email string, role models.UserRole, password string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{Name: name, Email: email, Role: role, PasswordHash: string(hash)}
	require.NoError(t, env.db.Create(user).Error)
	return user
}

func (env *testEnv) createManager(t *testing.T) *models.User {
	t.Helper()
	return env.createUser(t, "Manager", "manager@example.com", models.RoleManager, "Sup3r-Secret-Pw!")
}

func (env *testEnv) createEmployee(t *testing.T) *models.User {
	t.Helper()
	return env.createUser(t, "Employee", "employee@example.com", models.RoleEmployee, "Sup3r-Secret-Pw!")
}

func (env *testEnv) tokenFor(t *testing.T, user *models.User) string {
	t.Helper()
	accessToken, err := token.Generate(user, testSecret, time.Hour)
	require.NoError(t, err)
	return accessToken
}

func (env *testEnv) do(t *testing.T, method, path, bearer string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(encoded)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	w := httptest.NewRecorder()
	env.r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func dataField(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	data, ok := decodeBody(t, w)["data"].(map[string]any)
	require.True(t, ok)
	return data
}
