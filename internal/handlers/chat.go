package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/atharvakonge/tradedesk/internal/chat"
)

// ChatRequest is one message typed into the assistant.
type ChatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

// SendChat handles POST /api/chat
func (a *API) SendChat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ex, err := a.sessions.Send(c.Request.Context(), req.SessionID, req.Message)
	switch {
	case errors.Is(err, chat.ErrEmptyMessage):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message is empty"})
	case err != nil:
		a.logger.Warn("Chat reply aborted", zap.Error(err))
		c.JSON(http.StatusRequestTimeout, gin.H{"error": "Reply cancelled"})
	default:
		c.JSON(http.StatusOK, ex)
	}
}

// GetChat handles GET /api/chat/:session
func (a *API) GetChat(c *gin.Context) {
	msgs, err := a.sessions.Transcript(c.Param("session"))
	if errors.Is(err, chat.ErrSessionNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"session_id": c.Param("session"), "transcript": msgs})
}
