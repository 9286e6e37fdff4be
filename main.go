// File: guestdesk/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"guestdesk/config"
	"guestdesk/handlers"
	"guestdesk/kb"
	"guestdesk/middleware"
	"guestdesk/routes"
	"guestdesk/services/ciaobooking"
	"guestdesk/services/concierge"
	ai "guestdesk/services/intelligence"
	"guestdesk/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	knowledge, err := kb.Load(config.AppConfig.KnowledgeBasePath)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to load knowledge base: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// External collaborators.
	bookingClient := ciaobooking.NewClient(
		config.AppConfig.CiaoBookingBaseURL,
		config.AppConfig.CiaoBookingEmail,
		config.AppConfig.CiaoBookingPassword,
		config.AppConfig.CiaoBookingSource,
	)

	var fallback ai.Responder
	if key := config.AppConfig.GeminiAPIKey; key != "" {
		responder, err := ai.NewGeminiResponder(key)
		if err != nil {
			logger.Sugar().Warnf("main: Gemini responder unavailable: %v", err)
		} else {
			fallback = responder
		}
	}

	sessionTTL := time.Duration(config.AppConfig.SessionTTLMinutes) * time.Minute
	sessions := concierge.NewRedisSessionStore(utils.GetSessionCacheClient(), sessionTTL)

	conciergeService := concierge.NewConciergeService(
		bookingClient,
		sessions,
		knowledge,
		fallback,
		concierge.DisclosurePolicy{RequireArrived: config.AppConfig.DisclosureRequireArrived},
	)

	handlerBundle := &routes.HandlerBundle{
		Chat: handlers.NewChatHandler(conciergeService),
	}
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
