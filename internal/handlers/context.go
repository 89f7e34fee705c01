package handlers

import (
	"github.com/HasanApplore/Harmony.AI/internal/models"
	"github.com/labstack/echo/v4"
)

// getUserIDFromContext extracts the acting user's ID from the JWT claims the
// auth middleware stored in the request context. Returns 0 when unauthenticated.
func getUserIDFromContext(c echo.Context) uint {
	claims, ok := c.Get("user").(*models.JwtCustomClaims)
	if !ok || claims == nil {
		return 0
	}
	return claims.UserID
}
