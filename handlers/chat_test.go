package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type conciergeStub struct {
	handleFn func(ctx context.Context, callerID, text string) string
}

func (s *conciergeStub) HandleMessage(ctx context.Context, callerID, text string) string {
	return s.handleFn(ctx, callerID, text)
}

func newRouter(h *ChatHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/webhook", h.TwilioWebhookHandler)
	r.POST("/api/chat", h.ChatTestHandler)
	return r
}

func TestTwilioWebhookHandler(t *testing.T) {
	var gotFrom, gotBody string
	h := NewChatHandler(&conciergeStub{handleFn: func(_ context.Context, callerID, text string) string {
		gotFrom, gotBody = callerID, text
		return "Ciao! Dimmi pure <qui>"
	}})
	r := newRouter(h)

	form := "From=whatsapp%3A%2B393331234567&Body=ciao"
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(form))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "whatsapp:+393331234567", gotFrom)
	assert.Equal(t, "ciao", gotBody)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/xml")
	assert.Contains(t, w.Body.String(), "<Response><Message>")
	// Reply text is XML-escaped inside the envelope.
	assert.Contains(t, w.Body.String(), "&lt;qui&gt;")
}

func TestChatTestHandler(t *testing.T) {
	h := NewChatHandler(&conciergeStub{handleFn: func(_ context.Context, callerID, text string) string {
		assert.Equal(t, "393331234567", callerID)
		return "ok: " + text
	}})
	r := newRouter(h)

	req := httptest.NewRequest(http.MethodPost, "/api/chat",
		strings.NewReader(`{"phone":"393331234567","text":"dove parcheggio?"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"reply":"ok: dove parcheggio?"}`, w.Body.String())
}

func TestChatTestHandlerDefaultsPhone(t *testing.T) {
	var gotCaller string
	h := NewChatHandler(&conciergeStub{handleFn: func(_ context.Context, callerID, _ string) string {
		gotCaller = callerID
		return "ok"
	}})
	r := newRouter(h)

	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"text":"ciao"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "tester", gotCaller)
}

func TestChatTestHandlerRejectsBadJSON(t *testing.T) {
	h := NewChatHandler(&conciergeStub{handleFn: func(context.Context, string, string) string {
		t.Fatal("service must not be called on invalid input")
		return ""
	}})
	r := newRouter(h)

	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
