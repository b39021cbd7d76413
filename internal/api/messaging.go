package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/deeppatel632/ThinkVerse-social-site/internal/apperror"
	"github.com/deeppatel632/ThinkVerse-social-site/internal/auth"
	"github.com/deeppatel632/ThinkVerse-social-site/internal/service"
	"github.com/deeppatel632/ThinkVerse-social-site/pkg/telemetry"
)

// MessagingHandlers serves direct-message endpoints
type MessagingHandlers struct {
	messaging *service.Messaging
}

// NewMessagingHandlers creates the messaging handler set
func NewMessagingHandlers(messaging *service.Messaging) *MessagingHandlers {
	return &MessagingHandlers{messaging: messaging}
}

func conversationIDParam(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, apperror.Validation("id", "invalid conversation id")
	}
	return id, nil
}

// List handles GET /api/messages/conversations
func (h *MessagingHandlers) List(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "messaging.conversations")
	defer span.End()

	callerID, _ := auth.Caller(c)
	views, err := h.messaging.Conversations(ctx, callerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"conversations": views})
}

// Start handles POST /api/messages/conversations/:username
func (h *MessagingHandlers) Start(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "messaging.start")
	defer span.End()

	callerID, _ := auth.Caller(c)
	view, err := h.messaging.StartConversation(ctx, callerID, c.Param("username"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Messages handles GET /api/messages/:id
func (h *MessagingHandlers) Messages(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "messaging.messages")
	defer span.End()

	conversationID, err := conversationIDParam(c)
	if err != nil {
		respondError(c, err)
		return
	}

	callerID, _ := auth.Caller(c)
	views, err := h.messaging.Messages(ctx, callerID, conversationID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": views})
}

type sendMessageRequest struct {
	Content string `json:"content"`
}

// Send handles POST /api/messages/:id
func (h *MessagingHandlers) Send(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "messaging.send")
	defer span.End()

	conversationID, err := conversationIDParam(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, invalidBody(err))
		return
	}

	callerID, _ := auth.Caller(c)
	view, err := h.messaging.SendMessage(ctx, callerID, conversationID, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}
