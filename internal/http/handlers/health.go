package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Health reports whether the database answers a ping.
func (a *API) Health(c *gin.Context) {
	if err := a.db.Ping(c.Request.Context()); err != nil {
		a.log.Warn(c.Request.Context(), "health check failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
