package httpapi

import (
	"net/http"

	"github.com/dspetrov/payportal/internal/server/validation"
	"github.com/gin-gonic/gin"
)

func abortError(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"ok": false, "error": msg})
}

func abortValidation(c *gin.Context, violations validation.Violations) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
		"ok":      false,
		"error":   "validation_error",
		"details": violations,
	})
}
