package handlers

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jafarshop/storefront/internal/api/middleware"
	"github.com/jafarshop/storefront/pkg/errors"
)

// respond writes body with the toasts raised while serving the request
func respond(c *gin.Context, status int, body gin.H) {
	body["notifications"] = middleware.DrainNotifications(c)
	c.JSON(status, body)
}

// respondError maps the typed errors to a status and writes them
func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	body := gin.H{"error": err.Error()}

	var vErr *errors.ErrValidation
	if stderrors.As(err, &vErr) {
		body["missingFields"] = vErr.Missing
		body["invalidFields"] = vErr.Invalid
	}
	if status >= http.StatusInternalServerError {
		body["error"] = "internal error"
	}
	respond(c, status, body)
}

func statusFor(err error) int {
	var (
		sessionErr  *errors.ErrSessionRequired
		unauthErr   *errors.ErrUnauthorized
		validErr    *errors.ErrValidation
		quantityErr *errors.ErrInvalidQuantity
		notFoundErr *errors.ErrNotFound
		busyErr     *errors.ErrBusy
		cancelErr   *errors.ErrCancelled
		apiErr      *errors.ErrAPI
	)
	switch {
	case stderrors.As(err, &sessionErr), stderrors.As(err, &unauthErr):
		return http.StatusUnauthorized
	case stderrors.As(err, &validErr), stderrors.As(err, &quantityErr):
		return http.StatusUnprocessableEntity
	case stderrors.As(err, &notFoundErr):
		return http.StatusNotFound
	case stderrors.As(err, &busyErr), stderrors.As(err, &cancelErr):
		return http.StatusConflict
	case stderrors.As(err, &apiErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
