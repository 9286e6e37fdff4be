// File: handlers/chat.go
package handlers

import (
	"bytes"
	"encoding/xml"
	"net/http"

	"guestdesk/models"
	"guestdesk/services/concierge"
	"guestdesk/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ChatHandler exposes the concierge over the messaging transport.
type ChatHandler struct {
	svc concierge.ConciergeService
}

func NewChatHandler(svc concierge.ConciergeService) *ChatHandler {
	return &ChatHandler{svc: svc}
}

// TwilioWebhookHandler accepts the Twilio inbound-message form post and
// answers with TwiML.
func (h *ChatHandler) TwilioWebhookHandler(c *gin.Context) {
	logger := utils.GetLogger()

	requestID := uuid.NewString()
	from := c.PostForm("From")
	body := c.PostForm("Body")
	logger.Debug("Inbound webhook message",
		zap.String("requestId", requestID),
		zap.String("from", from),
	)

	reply := h.svc.HandleMessage(c.Request.Context(), from, body)

	c.Header("Content-Type", "text/xml")
	c.String(http.StatusOK, twiML(reply))
}

// twiML wraps a reply in the Twilio messaging response envelope.
func twiML(reply string) string {
	var escaped bytes.Buffer
	_ = xml.EscapeText(&escaped, []byte(reply))
	return `<?xml version="1.0" encoding="UTF-8"?><Response><Message>` + escaped.String() + `</Message></Response>`
}

// ChatTestHandler is the JSON test console endpoint: no Twilio involved.
func (h *ChatHandler) ChatTestHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid chat request", zap.Error(err))
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}
	if req.Phone == "" {
		req.Phone = "tester"
	}

	reply := h.svc.HandleMessage(c.Request.Context(), req.Phone, req.Text)
	c.JSON(http.StatusOK, models.ChatResponse{Reply: reply})
}
