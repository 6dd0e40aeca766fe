package handlers

import (
	"net/http"
	"strconv"

	"github.com/campuswall/backend/internal/models"
	"github.com/campuswall/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// BroadcastHandler handles announcement banners and per-session read tracking
type BroadcastHandler struct {
	broadcastRepository repositories.BroadcastRepository
}

// NewBroadcastHandler creates a new BroadcastHandler
func NewBroadcastHandler(broadcastRepo repositories.BroadcastRepository) *BroadcastHandler {
	return &BroadcastHandler{broadcastRepository: broadcastRepo}
}

// RegisterBroadcastRoutes registers the public banner routes
func (h *BroadcastHandler) RegisterBroadcastRoutes(g *echo.Group) {
	g.GET("/broadcasts", h.GetUnreadBroadcasts)
	g.GET("/broadcasts/unread-count", h.GetUnreadCount)
	g.POST("/broadcasts/:id/dismiss", h.DismissBroadcast)
}

// RegisterAdminRoutes registers broadcast management routes
func (h *BroadcastHandler) RegisterAdminRoutes(g *echo.Group) {
	g.POST("/broadcasts", h.CreateBroadcast)
	g.PUT("/broadcasts/:id/deactivate", h.DeactivateBroadcast)
}

// GetUnreadBroadcasts returns active broadcasts the session has not dismissed,
// highest priority first
func (h *BroadcastHandler) GetUnreadBroadcasts(c echo.Context) error {
	sessionID := getAnonSessionFromContext(c)
	if sessionID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing anonymous session")
	}

	broadcasts, err := h.broadcastRepository.GetActiveUnread(c.Request().Context(), sessionID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"broadcasts": broadcasts}})
}

// GetUnreadCount returns how many active broadcasts the session has not seen
func (h *BroadcastHandler) GetUnreadCount(c echo.Context) error {
	sessionID := getAnonSessionFromContext(c)
	if sessionID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing anonymous session")
	}

	count, err := h.broadcastRepository.UnreadCount(c.Request().Context(), sessionID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"count": count}})
}

// DismissBroadcast marks a broadcast as seen by the session. Dismissing the
// same broadcast twice is a no-op.
func (h *BroadcastHandler) DismissBroadcast(c echo.Context) error {
	sessionID := getAnonSessionFromContext(c)
	if sessionID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing anonymous session")
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid broadcast ID")
	}

	if err := h.broadcastRepository.MarkRead(uint(id), sessionID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"dismissed": true}})
}

// CreateBroadcast publishes a new announcement
func (h *BroadcastHandler) CreateBroadcast(c echo.Context) error {
	var req models.CreateBroadcastRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	broadcast := &models.Broadcast{
		Title:     req.Title,
		Body:      req.Body,
		Priority:  req.Priority,
		IsActive:  true,
		ExpiresAt: req.ExpiresAt,
	}
	if err := h.broadcastRepository.CreateBroadcast(broadcast); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": broadcast})
}

// DeactivateBroadcast takes an announcement out of rotation
func (h *BroadcastHandler) DeactivateBroadcast(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid broadcast ID")
	}

	if err := h.broadcastRepository.Deactivate(uint(id)); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"active": false}})
}
