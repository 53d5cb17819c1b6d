package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Health exposes a minimal liveness endpoint.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
