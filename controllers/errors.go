package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cafereservas/booking-app/services"
	"github.com/cafereservas/booking-app/utils"
)

// respondServiceError maps the service error taxonomy onto HTTP statuses:
// validation 400, forbidden 403, unknown ids 404, booking conflicts 409.
func respondServiceError(c *gin.Context, err error) {
	var vErr *services.ValidationError

	switch {
	case errors.As(err, &vErr):
		utils.RespondError(c, http.StatusBadRequest, err)
	case errors.Is(err, services.ErrForbidden):
		utils.RespondError(c, http.StatusForbidden, err)
	case errors.Is(err, services.ErrTableNotFound),
		errors.Is(err, services.ErrBookingNotFound):
		utils.RespondError(c, http.StatusNotFound, err)
	case errors.Is(err, services.ErrOverlap),
		errors.Is(err, services.ErrOutsideHours),
		errors.Is(err, services.ErrPastDate),
		errors.Is(err, services.ErrDuplicateBooking),
		errors.Is(err, services.ErrNoTableAvailable),
		errors.Is(err, services.ErrTableHasBookings):
		utils.RespondError(c, http.StatusConflict, err)
	default:
		utils.RespondError(c, http.StatusInternalServerError, err)
	}
}

// isAdmin reads the capability flag the auth middleware left in the context.
func isAdmin(c *gin.Context) bool {
	role, _ := c.Get("role")
	return role == "admin"
}
