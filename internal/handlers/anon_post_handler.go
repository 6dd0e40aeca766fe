package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/campuswall/backend/internal/models"
	"github.com/campuswall/backend/internal/moderation"
	"github.com/campuswall/backend/internal/notify"
	"github.com/campuswall/backend/internal/ratelimit"
	"github.com/campuswall/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// pendingNotifTypes maps a post kind to the admin notification type raised
// when it enters the review queue.
var pendingNotifTypes = map[string]string{
	models.PostKindConfession: models.NotificationConfessionPending,
	models.PostKindCrush:      models.NotificationCrushPending,
	models.PostKindSpotted:    models.NotificationSpottedPending,
}

// AnonPostHandler handles the anonymous feed (confessions, crushes, spotted)
type AnonPostHandler struct {
	postRepository repositories.AnonPostRepository
	fanout         *notify.Fanout
	limiter        *ratelimit.Limiter
}

// NewAnonPostHandler creates a new AnonPostHandler
func NewAnonPostHandler(postRepo repositories.AnonPostRepository, fanout *notify.Fanout, limiter *ratelimit.Limiter) *AnonPostHandler {
	return &AnonPostHandler{
		postRepository: postRepo,
		fanout:         fanout,
		limiter:        limiter,
	}
}

// RegisterFeedRoutes registers the public feed routes
func (h *AnonPostHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/feed", h.GetFeed)
	g.POST("/feed", h.SubmitPost)
}

// RegisterAdminRoutes registers the moderation queue routes
func (h *AnonPostHandler) RegisterAdminRoutes(g *echo.Group) {
	g.GET("/anon-posts/pending", h.GetPending)
	g.PUT("/anon-posts/:id/approve", h.ApprovePost)
	g.PUT("/anon-posts/:id/reject", h.RejectPost)
}

// SubmitPost accepts an anonymous confession/crush/spotted submission.
// Blocked text is refused outright; everything else is stored filtered, as
// pending, and admins are notified of the new review item.
func (h *AnonPostHandler) SubmitPost(c echo.Context) error {
	var req models.SubmitAnonPostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ip := c.RealIP()
	ctx := c.Request().Context()

	status, err := h.limiter.Check(ctx, ip)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Something went wrong, please try again")
	}
	if status.Limited {
		return c.JSON(http.StatusTooManyRequests, echo.Map{
			"success":           false,
			"error":             "Daily message limit reached. Register for unlimited access.",
			"messagesRemaining": 0,
		})
	}

	if moderation.Classify(req.Body) == moderation.VerdictBlocked {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{
			"success": false,
			"error":   "Your post contains prohibited content and was not submitted.",
		})
	}

	post := &models.AnonPost{
		Kind:   req.Kind,
		Body:   moderation.Filter(req.Body),
		Status: models.PostStatusPending,
	}
	if err := h.postRepository.CreatePost(ctx, post); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Something went wrong, please try again")
	}

	if err := h.limiter.Consume(ctx, ip); err != nil {
		log.Printf("Failed to count submission for %s: %v", ip, err)
	}

	notified, err := h.fanout.NotifyAdmins(
		pendingNotifTypes[req.Kind],
		"New "+req.Kind+" awaiting review",
		"",
		"/admin/anon-posts/pending",
	)
	if err != nil {
		// The post is stored and stays queued; admins will see it on their
		// next queue visit even without the notification.
		log.Printf("Failed to notify admins about pending %s: %v", req.Kind, err)
	} else if notified == 0 {
		log.Printf("No admins to notify about pending %s", req.Kind)
	}

	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": post})
}

// GetFeed returns approved posts, optionally filtered by kind
func (h *AnonPostHandler) GetFeed(c echo.Context) error {
	kind := c.QueryParam("kind")
	if kind != "" && pendingNotifTypes[kind] == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post kind")
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 20
	}

	skip := int64((page - 1) * limit)
	posts, err := h.postRepository.GetApproved(c.Request().Context(), kind, skip, int64(limit))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"posts": posts}})
}

// GetPending returns the moderation queue, oldest submissions first
func (h *AnonPostHandler) GetPending(c echo.Context) error {
	posts, err := h.postRepository.GetPending(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"posts": posts}})
}

// ApprovePost makes a pending post publicly visible
func (h *AnonPostHandler) ApprovePost(c echo.Context) error {
	return h.setStatus(c, models.PostStatusApproved)
}

// RejectPost removes a pending post from the queue without publishing it
func (h *AnonPostHandler) RejectPost(c echo.Context) error {
	return h.setStatus(c, models.PostStatusRejected)
}

func (h *AnonPostHandler) setStatus(c echo.Context, status string) error {
	id := c.Param("id")
	if err := h.postRepository.UpdateStatus(c.Request().Context(), id, status); err != nil {
		if err.Error() == "post not found" {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"status": status}})
}
