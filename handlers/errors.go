package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/freshkart/freshkart-backend-go/services"
)

// respondServiceError translates service-layer errors into the JSON
// error bodies the UI displays. Forbidden and not-found stay distinct.
func respondServiceError(c echo.Context, err error) error {
	if ve, ok := services.IsValidation(err); ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": ve.Error()})
	}

	switch {
	case errors.Is(err, services.ErrInvalidID),
		errors.Is(err, services.ErrInvalidStatus):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, services.ErrForbidden):
		return c.JSON(http.StatusForbidden, map[string]string{"error": "You do not have access to this resource"})
	case errors.Is(err, services.ErrAgentNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": services.ErrAgentNotFound.Error()})
	case errors.Is(err, services.ErrNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Resource not found"})
	case errors.Is(err, services.ErrInvalidTransition),
		errors.Is(err, services.ErrDuplicatePhone):
		return c.JSON(http.StatusConflict, map[string]string{"error": err.Error()})
	}

	log.Printf("internal error: %v", err)
	return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Something went wrong"})
}
