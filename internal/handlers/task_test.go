package handlers

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/mizuki-dev/project-management-api/internal/models"
	"github.com/stretchr/testify/require"
)

func isoDate(d time.Time) string {
	return d.Format("2006-01-02")
}

func (env *testEnv) createTask(t *testing.T, projectID uint, title string) *models.Task {
	t.Helper()
	task := &models.Task{Title: title, Status: models.TaskStatusTodo, ProjectID: projectID}
	require.NoError(t, env.db.Create(task).Error)
	return task
}

func TestCreateTaskDefaultsStatus(t *testing.T) {
	env := setupTestEnv(t)
	manager := env.createManager(t)
	project := env.createProject(t, "Board", nil)

	w := env.do(t, http.MethodPost, fmt.Sprintf("/api/projects/%d/tasks", project.ID), env.tokenFor(t, manager), map[string]any{
		"title": "First task",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	data := dataField(t, w)
	require.Equal(t, "First task", data["title"])
	require.Equal(t, "todo", data["status"])
	require.Equal(t, float64(project.ID), data["project_id"])
	require.Nil(t, data["due_date"])
	require.Nil(t, data["assigned_to"])
}

func TestCreateTaskWithFutureDueDate(t *testing.T) {
	env := setupTestEnv(t)
	manager := env.createManager(t)
	employee := env.createEmployee(t)
	project := env.createProject(t, "Board", nil)
	tomorrow := isoDate(time.Now().AddDate(0, 0, 1))

	w := env.do(t, http.MethodPost, fmt.Sprintf("/api/projects/%d/tasks", project.ID), env.tokenFor(t, manager), map[string]any{
		"title":       "Planned",
		"status":      "in_progress",
		"due_date":    tomorrow,
		"assigned_to": employee.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	data := dataField(t, w)
	require.Equal(t, "in_progress", data["status"])
	require.Equal(t, tomorrow, data["due_date"])
	require.Equal(t, float64(employee.ID), data["assigned_to"])
}

func TestCreateTaskRejectsPastDueDate(t *testing.T) {
	env := setupTestEnv(t)
	manager := env.createManager(t)
	project := env.createProject(t, "Board", nil)
	yesterday := isoDate(time.Now().AddDate(0, 0, -1))

	w := env.do(t, http.MethodPost, fmt.Sprintf("/api/projects/%d/tasks", project.ID), env.tokenFor(t, manager), map[string]any{
		"title":    "Too late",
		"due_date": yesterday,
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	body := decodeBody(t, w)
	require.Equal(t, "validation_error", body["error"])
	messages, ok := body["messages"].(map[string]any)
	require.True(t, ok)
	require.Contains(t, messages, "due_date")
}

func TestCreateTaskUnknownProject(t *testing.T) {
	env := setupTestEnv(t)
	manager := env.createManager(t)

	w := env.do(t, http.MethodPost, "/api/projects/404/tasks", env.tokenFor(t, manager), map[string]any{
		"title": "Homeless",
	})
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, "Project with ID 404 does not exist.", decodeBody(t, w)["message"])
}

func TestCreateTaskUnknownAssignee(t *testing.T) {
	env := setupTestEnv(t)
	manager := env.createManager(t)
	project := env.createProject(t, "Board", nil)

	w := env.do(t, http.MethodPost, fmt.Sprintf("/api/projects/%d/tasks", project.ID), env.tokenFor(t, manager), map[string]any{
		"title":       "Unassignable",
		"assigned_to": 777,
	})
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, "User with ID 777 does not exist.", decodeBody(t, w)["message"])
}

func TestListTasksScopedToProject(t *testing.T) {
	env := setupTestEnv(t)
	employee := env.createEmployee(t)
	first := env.createProject(t, "First", nil)
	second := env.createProject(t, "Second", nil)
	env.createTask(t, first.ID, "Mine")
	env.createTask(t, second.ID, "Other")

	w := env.do(t, http.MethodGet, fmt.Sprintf("/api/projects/%d/tasks", first.ID), env.tokenFor(t, employee), nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	data, ok := body["data"].([]any)
	require.True(t, ok)
	require.Len(t, data, 1)
	require.Equal(t, "Mine", data[0].(map[string]any)["title"])

	meta, ok := body["meta"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, float64(1), meta["total"])
}

func TestTaskMutationsRequireManagerRole(t *testing.T) {
	env := setupTestEnv(t)
	employee := env.createEmployee(t)
	project := env.createProject(t, "Board", nil)
	task := env.createTask(t, project.ID, "Untouchable")
	bearer := env.tokenFor(t, employee)

	w := env.do(t, http.MethodPost, fmt.Sprintf("/api/projects/%d/tasks", project.ID), bearer, map[string]any{"title": "Nope"})
	require.Equal(t, http.StatusForbidden, w.Code)

	w = env.do(t, http.MethodPut, fmt.Sprintf("/api/projects/%d/tasks/%d", project.ID, task.ID), bearer, map[string]any{"status": "done"})
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestUpdateTask(t *testing.T) {
	env := setupTestEnv(t)
	manager := env.createManager(t)
	project := env.createProject(t, "Board", nil)
	task := env.createTask(t, project.ID, "In flight")

	w := env.do(t, http.MethodPut, fmt.Sprintf("/api/projects/%d/tasks/%d", project.ID, task.ID), env.tokenFor(t, manager), map[string]any{
		"status":      "done",
		"description": "wrapped up",
	})
	require.Equal(t, http.StatusOK, w.Code)

	data := dataField(t, w)
	require.Equal(t, "done", data["status"])
	require.Equal(t, "wrapped up", data["description"])
	require.Equal(t, "In flight", data["title"])
}

func TestUpdateTaskRejectsPastDueDate(t *testing.T) {
	env := setupTestEnv(t)
	manager := env.createManager(t)
	project := env.createProject(t, "Board", nil)
	task := env.createTask(t, project.ID, "Slipping")
	yesterday := isoDate(time.Now().AddDate(0, 0, -1))

	// The rule applies on update exactly as it does on create.
	w := env.do(t, http.MethodPut, fmt.Sprintf("/api/projects/%d/tasks/%d", project.ID, task.ID), env.tokenFor(t, manager), map[string]any{
		"due_date": yesterday,
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	messages, ok := decodeBody(t, w)["messages"].(map[string]any)
	require.True(t, ok)
	require.Contains(t, messages, "due_date")
}

func TestUpdateTaskImmutableProjectID(t *testing.T) {
	env := setupTestEnv(t)
	manager := env.createManager(t)
	project := env.createProject(t, "Board", nil)
	other := env.createProject(t, "Elsewhere", nil)
	task := env.createTask(t, project.ID, "Stuck")

	w := env.do(t, http.MethodPut, fmt.Sprintf("/api/projects/%d/tasks/%d", project.ID, task.ID), env.tokenFor(t, manager), map[string]any{
		"project_id": other.ID,
	})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	body := decodeBody(t, w)
	require.Equal(t, "Attempted to update immutable fields.", body["message"])
	require.Equal(t, []any{"project_id"}, body["fields"])
}

func TestUpdateTaskWrongProject(t *testing.T) {
	env := setupTestEnv(t)
	manager := env.createManager(t)
	project := env.createProject(t, "Board", nil)
	other := env.createProject(t, "Elsewhere", nil)
	task := env.createTask(t, project.ID, "Misrouted")

	w := env.do(t, http.MethodPut, fmt.Sprintf("/api/projects/%d/tasks/%d", other.ID, task.ID), env.tokenFor(t, manager), map[string]any{
		"status": "done",
	})
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, fmt.Sprintf("Task with ID %d does not belong to project %d.", task.ID, other.ID), decodeBody(t, w)["message"])
}

func TestUpdateTaskClearsAssignee(t *testing.T) {
	env := setupTestEnv(t)
	manager := env.createManager(t)
	employee := env.createEmployee(t)
	project := env.createProject(t, "Board", nil)

	assigneeID := employee.ID
	task := &models.Task{Title: "Handover", Status: models.TaskStatusTodo, ProjectID: project.ID, AssignedTo: &assigneeID}
	require.NoError(t, env.db.Create(task).Error)

	w := env.do(t, http.MethodPut, fmt.Sprintf("/api/projects/%d/tasks/%d", project.ID, task.ID), env.tokenFor(t, manager), map[string]any{
		"assigned_to": nil,
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.Nil(t, dataField(t, w)["assigned_to"])
}
