package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/Domenick1991/skyjourney/internal/admin"
	"github.com/Domenick1991/skyjourney/internal/auth"
	"github.com/Domenick1991/skyjourney/internal/catalog"
	"github.com/Domenick1991/skyjourney/internal/domain"
	"github.com/Domenick1991/skyjourney/internal/handoff"
	"github.com/Domenick1991/skyjourney/internal/service/booking"
	"github.com/Domenick1991/skyjourney/internal/wizard"
	"github.com/gin-gonic/gin"
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, wizard.ErrSessionNotFound),
		errors.Is(err, handoff.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrUnknownField),
		errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, wizard.ErrPassengerIndex),
		errors.Is(err, wizard.ErrPassengerCount),
		errors.Is(err, wizard.ErrNoFlight),
		errors.Is(err, booking.ErrPassengerLimit),
		errors.Is(err, catalog.ErrUnknownSortField),
		errors.Is(err, catalog.ErrInvalidDirection),
		errors.Is(err, auth.ErrMissingFields):
		return http.StatusBadRequest
	case errors.Is(err, wizard.ErrNotReadyToSubmit),
		errors.Is(err, wizard.ErrDiscarded),
		errors.Is(err, wizard.ErrWrongStage):
		return http.StatusConflict
	case errors.Is(err, admin.ErrNotConfirmed):
		return http.StatusPreconditionRequired
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}

func abortWithError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(statusFor(err), gin.H{"error": err.Error()})
}
