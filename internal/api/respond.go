package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Dev-Mayuresh/resto-mania-backend/internal/repository"
)

func jsonError(c *gin.Context, status int, err error) {
	c.JSON(status, gin.H{"error": err.Error()})
}

// statusFor maps repository errors onto HTTP statuses. Anything
// unmapped is an internal error.
func statusFor(err error) int {
	switch {
	case errors.Is(err, repository.ErrOrderNotFound),
		errors.Is(err, repository.ErrSessionNotFound),
		errors.Is(err, repository.ErrUserNotFound),
		errors.Is(err, repository.ErrBillNotFound),
		errors.Is(err, repository.ErrFeedbackNotFound):
		return http.StatusNotFound
	case errors.Is(err, repository.ErrTableNotFound),
		errors.Is(err, repository.ErrEmptyOrder),
		errors.Is(err, repository.ErrUnknownMenuItem),
		errors.Is(err, repository.ErrTableFull),
		errors.Is(err, repository.ErrOrderNotActive),
		errors.Is(err, repository.ErrNoCompletedSession),
		errors.Is(err, repository.ErrCancelNotAllowed),
		errors.Is(err, repository.ErrInvalidStatus):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
