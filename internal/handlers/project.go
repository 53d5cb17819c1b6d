package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mizuki-dev/project-management-api/internal/dto"
	apierrors "github.com/mizuki-dev/project-management-api/internal/errors"
	"github.com/mizuki-dev/project-management-api/internal/middleware"
	"github.com/mizuki-dev/project-management-api/internal/schemas"
	"github.com/mizuki-dev/project-management-api/internal/services"
	"github.com/mizuki-dev/project-management-api/internal/utils"
)

type ProjectHandler struct {
	projectService *services.ProjectService
	maxPerPage     int
}

func NewProjectHandler(projectService *services.ProjectService, maxPerPage int) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		maxPerPage:     maxPerPage,
	}
}

// Create creates a new project owned by the acting user.
func (h *ProjectHandler) Create(c *gin.Context) {
	payload, err := bindPayload(c)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}
	input, err := schemas.LoadProject(payload, false)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	actor, _ := middleware.CurrentUser(c)
	project, err := h.projectService.Create(input, actor)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": dto.ToProjectDTO(*project)})
}

// List returns paginated projects.
func (h *ProjectHandler) List(c *gin.Context) {
	page, perPage, err := utils.GetPaginationParams(c, h.maxPerPage)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	projects, meta, err := h.projectService.List(page, perPage)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": dto.ToProjectDTOs(projects), "meta": meta})
}

// Get fetches a single project.
func (h *ProjectHandler) Get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	project, err := h.projectService.Get(id)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": dto.ToProjectDTO(*project)})
}

// Update updates an existing project.
func (h *ProjectHandler) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		apierrors.Respond(c, err)
		return
	}
	payload, err := bindPayload(c)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}
	input, err := schemas.LoadProject(payload, true)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	project, err := h.projectService.Update(id, payload, input)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": dto.ToProjectDTO(*project)})
}

// Delete removes a project and its tasks.
func (h *ProjectHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	if err := h.projectService.Delete(id); err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Project deleted."})
}
