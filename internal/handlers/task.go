package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mizuki-dev/project-management-api/internal/dto"
	apierrors "github.com/mizuki-dev/project-management-api/internal/errors"
	"github.com/mizuki-dev/project-management-api/internal/schemas"
	"github.com/mizuki-dev/project-management-api/internal/services"
	"github.com/mizuki-dev/project-management-api/internal/utils"
)

type TaskHandler struct {
	taskService *services.TaskService
	maxPerPage  int
}

func NewTaskHandler(taskService *services.TaskService, maxPerPage int) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		maxPerPage:  maxPerPage,
	}
}

// Create creates a task within a project.
func (h *TaskHandler) Create(c *gin.Context) {
	projectID, err := pathID(c, "id")
	if err != nil {
		apierrors.Respond(c, err)
		return
	}
	payload, err := bindPayload(c)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}
	input, err := schemas.LoadTask(payload, false)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	task, err := h.taskService.Create(projectID, input)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": dto.ToTaskDTO(*task)})
}

// List returns paginated tasks for a project.
func (h *TaskHandler) List(c *gin.Context) {
	projectID, err := pathID(c, "id")
	if err != nil {
		apierrors.Respond(c, err)
		return
	}
	page, perPage, err := utils.GetPaginationParams(c, h.maxPerPage)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	tasks, meta, err := h.taskService.List(projectID, page, perPage)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": dto.ToTaskDTOs(tasks), "meta": meta})
}

// Update updates a task ensuring it belongs to the project in the path.
func (h *TaskHandler) Update(c *gin.Context) {
	projectID, err := pathID(c, "id")
	if err != nil {
		apierrors.Respond(c, err)
		return
	}
	taskID, err := pathID(c, "taskID")
	if err != nil {
		apierrors.Respond(c, err)
		return
	}
	payload, err := bindPayload(c)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}
	input, err := schemas.LoadTask(payload, true)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	task, err := h.taskService.Update(projectID, taskID, payload, input)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": dto.ToTaskDTO(*task)})
}
