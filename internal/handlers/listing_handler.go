package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/campuswall/backend/internal/models"
	"github.com/campuswall/backend/internal/notify"
	"github.com/campuswall/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// ListingHandler handles marketplace listing HTTP requests
type ListingHandler struct {
	listingRepository      repositories.ListingRepository
	notificationRepository repositories.NotificationRepository
	fanout                 *notify.Fanout
}

// NewListingHandler creates a new ListingHandler
func NewListingHandler(listingRepo repositories.ListingRepository, notifRepo repositories.NotificationRepository, fanout *notify.Fanout) *ListingHandler {
	return &ListingHandler{
		listingRepository:      listingRepo,
		notificationRepository: notifRepo,
		fanout:                 fanout,
	}
}

// RegisterListingRoutes registers seller-facing listing routes
func (h *ListingHandler) RegisterListingRoutes(g *echo.Group) {
	g.POST("/listings", h.CreateListing)
	g.GET("/listings/mine", h.GetOwnListings)
	g.PUT("/listings/:id/sold", h.MarkSold)
}

// RegisterPublicRoutes registers the public marketplace routes
func (h *ListingHandler) RegisterPublicRoutes(g *echo.Group) {
	g.GET("/listings", h.GetListings)
}

// RegisterAdminRoutes registers the listing review routes
func (h *ListingHandler) RegisterAdminRoutes(g *echo.Group) {
	g.GET("/listings/pending", h.GetPendingListings)
	g.PUT("/listings/:id/approve", h.ApproveListing)
	g.PUT("/listings/:id/reject", h.RejectListing)
}

// CreateListing creates a pending listing and alerts admins for review
func (h *ListingHandler) CreateListing(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.CreateListingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	listing := &models.Listing{
		SellerID:    currentUserID,
		Title:       req.Title,
		Description: req.Description,
		PriceCents:  req.PriceCents,
		CategoryID:  req.CategoryID,
		Status:      models.ListingStatusPending,
	}
	if err := h.listingRepository.CreateListing(listing); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if _, err := h.fanout.NotifyAdmins(
		models.NotificationMessage,
		"New listing awaiting review",
		listing.Title,
		"/admin/listings/pending",
	); err != nil {
		log.Printf("Failed to notify admins about pending listing %d: %v", listing.ID, err)
	}

	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": listing})
}

// GetListings returns active listings with pagination
func (h *ListingHandler) GetListings(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 20
	}

	listings, total, err := h.listingRepository.GetActiveListings(page, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"listings": listings},
		"meta":    echo.Map{"currentPage": page, "totalItems": total, "itemsPerPage": limit},
	})
}

// GetOwnListings returns the authenticated seller's listings
func (h *ListingHandler) GetOwnListings(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	listings, err := h.listingRepository.GetListingsBySellerID(currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"listings": listings}})
}

// GetPendingListings returns listings awaiting admin review
func (h *ListingHandler) GetPendingListings(c echo.Context) error {
	listings, err := h.listingRepository.GetPendingListings()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"listings": listings}})
}

// ApproveListing activates a pending listing, tells the seller, and fans out
// suggestion matches to open requests in the listing's category.
func (h *ListingHandler) ApproveListing(c echo.Context) error {
	listing, err := h.loadListing(c)
	if err != nil {
		return err
	}

	if err := h.listingRepository.UpdateStatus(listing.ID, models.ListingStatusActive); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h.notifySeller(listing, models.NotificationListingApproved, "Your listing was approved")

	result, err := h.fanout.NotifyMatchingRequests(listing.ID, listing.Title, listing.CategoryID)
	if err != nil {
		log.Printf("Suggestion matching failed for listing %d: %v", listing.ID, err)
	} else {
		// Guest contacts go to the email collaborator; this service only
		// collects them.
		for _, contact := range result.GuestEmails {
			log.Printf("Queueing suggestion email for request %d to %s", contact.RequestID, contact.Email)
		}
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"status": models.ListingStatusActive}})
}

// RejectListing declines a pending listing and tells the seller
func (h *ListingHandler) RejectListing(c echo.Context) error {
	listing, err := h.loadListing(c)
	if err != nil {
		return err
	}

	if err := h.listingRepository.UpdateStatus(listing.ID, models.ListingStatusRejected); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h.notifySeller(listing, models.NotificationListingRejected, "Your listing was rejected")

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"status": models.ListingStatusRejected}})
}

// MarkSold lets the seller close their own active listing
func (h *ListingHandler) MarkSold(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	listing, err := h.loadListing(c)
	if err != nil {
		return err
	}
	if listing.SellerID != currentUserID {
		return echo.NewHTTPError(http.StatusForbidden, "Not your listing")
	}

	if err := h.listingRepository.UpdateStatus(listing.ID, models.ListingStatusSold); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h.notifySeller(listing, models.NotificationListingSold, "Your listing was marked as sold")

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"status": models.ListingStatusSold}})
}

func (h *ListingHandler) loadListing(c echo.Context) (*models.Listing, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "Invalid listing ID")
	}

	listing, err := h.listingRepository.GetListingByID(uint(id))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, echo.NewHTTPError(http.StatusNotFound, "Listing not found")
		}
		return nil, echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return listing, nil
}

func (h *ListingHandler) notifySeller(listing *models.Listing, notifType, title string) {
	notif := &models.Notification{
		RecipientID: listing.SellerID,
		Type:        notifType,
		Title:       title,
		Body:        listing.Title,
		Link:        fmt.Sprintf("/marketplace/listings/%d", listing.ID),
	}
	if err := h.notificationRepository.CreateNotification(notif); err != nil {
		log.Printf("Failed to notify seller %d: %v", listing.SellerID, err)
	}
}
