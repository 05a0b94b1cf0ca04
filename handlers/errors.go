package handlers

import (
	"errors"
	"net/http"

	"pollsnip/services"
	"pollsnip/validation"

	"github.com/gin-gonic/gin"
)

// writeServiceError maps service failures onto the response taxonomy:
// validation failures carry the per-field message map, missing records
// are 404, ownership denials are 403, anything else is internal.
func writeServiceError(c *gin.Context, err error) {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"errors": verr.Fields})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, services.ErrNotOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to perform this action"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := parseUint(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID"})
		return 0, false
	}
	return id, true
}
