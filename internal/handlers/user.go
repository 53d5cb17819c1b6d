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

type UserHandler struct {
	userService *services.UserService
	maxPerPage  int
}

func NewUserHandler(userService *services.UserService, maxPerPage int) *UserHandler {
	return &UserHandler{
		userService: userService,
		maxPerPage:  maxPerPage,
	}
}

// Create creates a new user.
func (h *UserHandler) Create(c *gin.Context) {
	payload, err := bindPayload(c)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}
	input, err := schemas.LoadUser(payload, false)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	user, err := h.userService.Create(input)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": dto.ToUserDTO(*user)})
}

// List returns paginated users.
func (h *UserHandler) List(c *gin.Context) {
	page, perPage, err := utils.GetPaginationParams(c, h.maxPerPage)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	users, meta, err := h.userService.List(page, perPage)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": dto.ToUserDTOs(users), "meta": meta})
}

// Get fetches a single user.
func (h *UserHandler) Get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	user, err := h.userService.Get(id)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": dto.ToUserDTO(*user)})
}

// Update updates an existing user.
func (h *UserHandler) Update(c *gin.Context) {
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
	input, err := schemas.LoadUser(payload, true)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	user, err := h.userService.Update(id, payload, input)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": dto.ToUserDTO(*user)})
}

// Delete removes a user.
func (h *UserHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	if err := h.userService.Delete(id); err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted."})
}
