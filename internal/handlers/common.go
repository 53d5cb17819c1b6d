package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	apierrors "github.com/mizuki-dev/project-management-api/internal/errors"
)

// bindPayload decodes the request body into a raw map so schemas can drop
// unknown fields and services can inspect the raw keys. A missing body is an
// empty payload; a malformed one is a bad request.
func bindPayload(c *gin.Context) (map[string]any, error) {
	payload := map[string]any{}
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return payload, nil
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		return nil, apierrors.BadRequest("Bad request.")
	}
	return payload, nil
}

// pathID parses a numeric path parameter. Non-numeric IDs resolve to no
// resource.
func pathID(c *gin.Context, name string) (uint, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, apierrors.NotFound("Resource not found.")
	}
	return uint(id), nil
}
