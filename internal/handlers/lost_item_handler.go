package handlers

import (
	"net/http"
	"strconv"

	"github.com/campuswall/backend/internal/models"
	"github.com/campuswall/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// LostItemHandler handles lost & found HTTP requests
type LostItemHandler struct {
	lostItemRepository repositories.LostItemRepository
}

// NewLostItemHandler creates a new LostItemHandler
func NewLostItemHandler(lostItemRepo repositories.LostItemRepository) *LostItemHandler {
	return &LostItemHandler{lostItemRepository: lostItemRepo}
}

// RegisterLostItemRoutes registers lost & found routes
func (h *LostItemHandler) RegisterLostItemRoutes(g *echo.Group) {
	g.POST("/lost-items", h.CreateReport)
	g.GET("/lost-items", h.GetOpenReports)
	g.PUT("/lost-items/:id/resolve", h.ResolveReport)
}

// CreateReport files a new lost or found report
func (h *LostItemHandler) CreateReport(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.CreateLostItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	item := &models.LostItem{
		ReporterID:  currentUserID,
		Kind:        req.Kind,
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
	}
	if err := h.lostItemRepository.CreateLostItem(item); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": item})
}

// GetOpenReports lists unresolved reports, optionally filtered by kind
func (h *LostItemHandler) GetOpenReports(c echo.Context) error {
	kind := c.QueryParam("kind")
	if kind != "" && kind != models.LostItemKindLost && kind != models.LostItemKindFound {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid report kind")
	}

	items, err := h.lostItemRepository.GetOpenReports(kind)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"items": items}})
}

// ResolveReport closes the authenticated user's own report
func (h *LostItemHandler) ResolveReport(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid report ID")
	}

	if err := h.lostItemRepository.Resolve(uint(id), currentUserID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"resolved": true}})
}
