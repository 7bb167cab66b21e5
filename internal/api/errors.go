package api

import (
	"errors"   // Sentinel matching
	"net/http" // HTTP status codes

	"storefront/internal/domain" // Domain errors
	"storefront/internal/media"  // Upload errors

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logrus for structured logging
)

// statusFor maps a service error to its HTTP status code
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotAuthenticated), errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrProductNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrDuplicateSKU), errors.Is(err, domain.ErrUsernameTaken), errors.Is(err, domain.ErrPurchaseInProgress):
		return http.StatusConflict
	case errors.Is(err, domain.ErrConfirmationDeclined):
		return http.StatusPreconditionFailed
	case errors.Is(err, media.ErrTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, domain.ErrInsufficientFunds),
		errors.Is(err, domain.ErrProductUnavailable),
		errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrInvalidDirection),
		errors.Is(err, domain.ErrInvalidPrice),
		errors.Is(err, domain.ErrInvalidProduct),
		errors.Is(err, domain.ErrProductFieldLength),
		errors.Is(err, domain.ErrInvalidUsername),
		errors.Is(err, domain.ErrInvalidPassword),
		errors.Is(err, domain.ErrPasswordMismatch),
		errors.Is(err, domain.ErrUnknownCollection),
		errors.Is(err, domain.ErrUnknownSettingsField),
		errors.Is(err, media.ErrEmptyUpload),
		errors.Is(err, media.ErrNotAnImage):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// respondError writes the JSON error body. Unexpected errors are logged and hidden behind msg.
func respondError(c *gin.Context, err error, msg string) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logrus.WithFields(logrus.Fields{
			"path":  c.FullPath(), // Matched route
			"error": err.Error(),  // Underlying error
		}).Error(msg)
		c.JSON(status, gin.H{"error": msg})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// badRequest answers a request whose body or parameters could not be bound
func badRequest(c *gin.Context) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
}
