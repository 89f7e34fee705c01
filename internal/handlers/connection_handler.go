package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/HasanApplore/Harmony.AI/internal/models"
	"github.com/HasanApplore/Harmony.AI/internal/repositories"
	"github.com/HasanApplore/Harmony.AI/internal/services"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// ConnectionHandler handles HTTP requests for the connection workflow
type ConnectionHandler struct {
	connectionService services.ConnectionService
}

// NewConnectionHandler creates a new ConnectionHandler
func NewConnectionHandler(connectionService services.ConnectionService) *ConnectionHandler {
	return &ConnectionHandler{connectionService: connectionService}
}

// RegisterConnectionRoutes registers connection-related routes
func (h *ConnectionHandler) RegisterConnectionRoutes(g *echo.Group) {
	g.GET("/connections", h.ListConnections)
	g.GET("/connections/pending", h.ListPending)
	g.POST("/connections", h.SendRequest)
	g.PATCH("/connections/:id", h.RespondToRequest)
}

// SendRequest creates a pending connection request from the acting user
func (h *ConnectionHandler) SendRequest(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.CreateConnectionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	conn, err := h.connectionService.SendRequest(c.Request().Context(), currentUserID, currentUserID, req.ReceiverID)
	if err != nil {
		return connectionErrorToHTTP(err)
	}
	return c.JSON(http.StatusOK, conn)
}

// RespondToRequest applies the receiver's accept/reject decision
func (h *ConnectionHandler) RespondToRequest(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	connectionID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid connection ID")
	}

	var req models.UpdateConnectionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	conn, err := h.connectionService.RespondToRequest(c.Request().Context(), uint(connectionID), currentUserID, req.Status)
	if err != nil {
		return connectionErrorToHTTP(err)
	}
	return c.JSON(http.StatusOK, conn)
}

// ListConnections returns the acting user's accepted connections
func (h *ConnectionHandler) ListConnections(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	conns, err := h.connectionService.ListConnections(currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, conns)
}

// ListPending returns the pending requests directed at the acting user
func (h *ConnectionHandler) ListPending(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	conns, err := h.connectionService.ListPending(currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, conns)
}

// connectionErrorToHTTP maps the workflow error taxonomy onto client-visible
// HTTP statuses.
func connectionErrorToHTTP(err error) error {
	switch {
	case errors.Is(err, repositories.ErrSelfConnection):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, repositories.ErrDuplicateConnection),
		errors.Is(err, repositories.ErrInvalidTransition):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, repositories.ErrConnectionNotFound),
		errors.Is(err, repositories.ErrUserNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrUnauthorized):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
