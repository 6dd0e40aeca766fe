package handlers

import (
	"net/http"
	"strconv"

	"github.com/campuswall/backend/internal/models"
	"github.com/campuswall/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// RequestHandler handles marketplace item requests
type RequestHandler struct {
	requestRepository repositories.RequestRepository
}

// NewRequestHandler creates a new RequestHandler
func NewRequestHandler(requestRepo repositories.RequestRepository) *RequestHandler {
	return &RequestHandler{requestRepository: requestRepo}
}

// RegisterRequestRoutes registers routes for registered requesters
func (h *RequestHandler) RegisterRequestRoutes(g *echo.Group) {
	g.POST("/requests", h.CreateRequest)
	g.GET("/requests/mine", h.GetOwnRequests)
	g.PUT("/requests/:id/close", h.CloseRequest)
}

// RegisterPublicRoutes registers the guest request route
func (h *RequestHandler) RegisterPublicRoutes(g *echo.Group) {
	g.POST("/guest/requests", h.CreateGuestRequest)
}

// CreateRequest opens an item request for the authenticated user
func (h *RequestHandler) CreateRequest(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.CreateItemRequestRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	request := &models.ItemRequest{
		RequesterID: &currentUserID,
		CategoryID:  req.CategoryID,
		Description: req.Description,
		Open:        true,
	}
	if err := h.requestRepository.CreateRequest(request); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": request})
}

// CreateGuestRequest opens an item request for an unregistered visitor,
// identified only by email
func (h *RequestHandler) CreateGuestRequest(c echo.Context) error {
	var req models.CreateItemRequestRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.GuestEmail == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Guest requests require an email address")
	}

	request := &models.ItemRequest{
		GuestEmail:  req.GuestEmail,
		CategoryID:  req.CategoryID,
		Description: req.Description,
		Open:        true,
	}
	if err := h.requestRepository.CreateRequest(request); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": request})
}

// GetOwnRequests returns the authenticated user's open requests
func (h *RequestHandler) GetOwnRequests(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	requests, err := h.requestRepository.GetOpenByRequesterID(currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"requests": requests}})
}

// CloseRequest closes the authenticated user's own request
func (h *RequestHandler) CloseRequest(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request ID")
	}

	request, err := h.requestRepository.GetRequestByID(uint(id))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Request not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if !request.HasRequester() || *request.RequesterID != currentUserID {
		return echo.NewHTTPError(http.StatusForbidden, "Not your request")
	}

	if err := h.requestRepository.CloseRequest(uint(id)); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"open": false}})
}
