package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// APIRoot is the discovery endpoint: links to the primary collections,
// fully qualified against the incoming request.
func APIRoot(c *gin.Context) {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	base := fmt.Sprintf("%s://%s", scheme, c.Request.Host)

	c.JSON(http.StatusOK, gin.H{
		"users":    base + "/users/",
		"snippets": base + "/snippets/",
	})
}

func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
