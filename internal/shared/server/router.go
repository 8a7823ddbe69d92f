package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-chat-backend/internal/chat"
	"resume-chat-backend/internal/generatedresumes"
	"resume-chat-backend/internal/shared/config"
	"resume-chat-backend/internal/shared/metrics"
	"resume-chat-backend/internal/shared/server/middleware"
	"resume-chat-backend/internal/shared/server/respond"
)

// RouterDeps carries the handlers and config the router wires together.
type RouterDeps struct {
	Config        config.Config
	ChatHandler   *chat.Handler
	ResumeHandler *generatedresumes.Handler
	RateLimiter   *middleware.RateLimiter
	ChatRateRule  middleware.RateLimitRule
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	r.GET("/api/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	r.GET("/api/metrics", metrics.Handler())

	if deps.ChatHandler != nil {
		chatRoutes := r.Group("/")
		if deps.RateLimiter != nil && deps.ChatRateRule.Rate > 0 {
			chatRoutes.Use(middleware.RateLimit(deps.ChatRateRule, deps.RateLimiter))
		}
		deps.ChatHandler.RegisterRoutes(chatRoutes)
	}
	if deps.ResumeHandler != nil {
		deps.ResumeHandler.RegisterRoutes(r)
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
