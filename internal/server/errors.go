package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"framediff/internal/archive"
	"framediff/internal/query"
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, archive.ErrTargetNotFound),
		errors.Is(err, query.ErrBuildNotFound),
		errors.Is(err, query.ErrFrameNotFound):
		return http.StatusNotFound
	case errors.Is(err, archive.ErrOutsideRoot):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeError(c *gin.Context, err error) {
	status := statusFor(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		message = "internal error"
	}
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}
