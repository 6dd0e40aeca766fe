package handlers

import (
	"log"
	"net/http"

	"github.com/campuswall/backend/internal/models"
	"github.com/campuswall/backend/internal/moderation"
	"github.com/campuswall/backend/internal/ratelimit"
	"github.com/campuswall/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// ChatHandler handles the anonymous campus chat
type ChatHandler struct {
	chatRepository repositories.ChatRepository
	limiter        *ratelimit.Limiter
}

// NewChatHandler creates a new ChatHandler
func NewChatHandler(chatRepo repositories.ChatRepository, limiter *ratelimit.Limiter) *ChatHandler {
	return &ChatHandler{
		chatRepository: chatRepo,
		limiter:        limiter,
	}
}

// RegisterChatRoutes registers campus chat routes
func (h *ChatHandler) RegisterChatRoutes(g *echo.Group) {
	g.GET("/chat/messages", h.GetMessages)
	g.POST("/chat/messages", h.SendMessage)
}

// SendMessage accepts an anonymous chat message. The sender's IP is checked
// against the daily limit first, then the text is classified; only messages
// that pass both are filtered, stored and counted against the limit.
func (h *ChatHandler) SendMessage(c echo.Context) error {
	var req models.SendChatMessageRequest
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
			"error":   "Your message contains prohibited content and was not sent.",
		})
	}

	message := &models.ChatMessage{
		Alias: req.Alias,
		Body:  moderation.Filter(req.Body),
	}
	if err := h.chatRepository.CreateMessage(ctx, message); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Something went wrong, please try again")
	}

	if err := h.limiter.Consume(ctx, ip); err != nil {
		// The message is already stored; the missed count only loosens the
		// soft limit by one.
		log.Printf("Failed to count message for %s: %v", ip, err)
	}

	remaining := status.Remaining - 1
	if remaining < 0 {
		remaining = 0
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"data": echo.Map{
			"message":           message,
			"messagesRemaining": remaining,
		},
	})
}

// GetMessages returns the most recent chat messages
func (h *ChatHandler) GetMessages(c echo.Context) error {
	messages, err := h.chatRepository.GetRecentMessages(c.Request().Context(), 50)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"messages": messages}})
}
