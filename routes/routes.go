package routes

import (
	"net/http"
	"time"

	"guestdesk/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups the endpoint handlers wired in main.
type HandlerBundle struct {
	Chat *handlers.ChatHandler
}

// RegisterChatRoutes registers the messaging endpoints.
func RegisterChatRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.POST("/webhook", hb.Chat.TwilioWebhookHandler)

	api := r.Group("/api")
	{
		api.POST("/chat", hb.Chat.ChatTestHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm GuestDesk"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterChatRoutes(r, hb)
	RegisterHealthRoute(r)
}
